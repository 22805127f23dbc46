package services

import (
	"errors"
	"log"

	"creditApp/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Границы кредитного рейтинга
var (
	scoreFloor        = 300
	scoreCeiling      = 900
	highBalanceLevel  = decimal.NewFromInt(1000000)
	lowBalanceLevel   = decimal.NewFromInt(10000)
	pointsPerInterval = decimal.NewFromInt(10)
	balanceInterval   = decimal.NewFromInt(15000)
)

// CreditScoreService рассчитывает кредитный рейтинг по истории операций.
// Расчет идет асинхронно: запросы ставятся в очередь и обрабатываются
// одной горутиной.
type CreditScoreService struct {
	db    *gorm.DB
	queue chan string
}

// NewCreditScoreService создает новый экземпляр CreditScoreService
func NewCreditScoreService(db *gorm.DB) *CreditScoreService {
	return &CreditScoreService{
		db:    db,
		queue: make(chan string, 100),
	}
}

// Start запускает обработчик очереди расчета рейтинга
func (s *CreditScoreService) Start() {
	go func() {
		for aadharHMAC := range s.queue {
			if err := s.Calculate(aadharHMAC); err != nil {
				log.Printf("Ошибка при расчете кредитного рейтинга: %v", err)
			}
		}
	}()
}

// Enqueue ставит расчет рейтинга в очередь, не блокируя вызывающего
func (s *CreditScoreService) Enqueue(aadharHMAC string) {
	select {
	case s.queue <- aadharHMAC:
	default:
		log.Printf("Очередь расчета рейтинга переполнена, запрос отброшен")
	}
}

// Calculate пересчитывает рейтинг заемщика по суммарному балансу операций:
// от 300 (баланс <= 10 000) до 900 (баланс >= 1 000 000),
// между границами 10 пунктов за каждые 15 000
func (s *CreditScoreService) Calculate(aadharHMAC string) error {
	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return errors.New("ошибка при начале транзакции")
	}

	var transactions []models.Transaction
	if err := tx.Where("aadhar_hmac = ?", aadharHMAC).Find(&transactions).Error; err != nil {
		tx.Rollback()
		return errors.New("ошибка при получении операций")
	}

	total := decimal.Zero
	for _, txn := range transactions {
		if txn.Type == models.TransactionTypeCredit {
			total = total.Add(txn.Amount)
		} else {
			total = total.Sub(txn.Amount)
		}
	}

	score := s.scoreForBalance(total)

	var user models.User
	if err := tx.Where("aadhar_hmac = ?", aadharHMAC).First(&user).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return errors.New("ошибка при поиске пользователя")
	}

	user.CreditScore = &score
	if err := tx.Save(&user).Error; err != nil {
		tx.Rollback()
		return errors.New("ошибка при обновлении рейтинга")
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return errors.New("ошибка при подтверждении транзакции")
	}

	return nil
}

// scoreForBalance переводит суммарный баланс в рейтинг
func (s *CreditScoreService) scoreForBalance(total decimal.Decimal) int {
	if total.GreaterThanOrEqual(highBalanceLevel) {
		return scoreCeiling
	}
	if total.LessThanOrEqual(lowBalanceLevel) {
		return scoreFloor
	}

	// Неполные интервалы дают пропорциональные пункты,
	// дробная часть отбрасывается после умножения
	points := total.Sub(lowBalanceLevel).Mul(pointsPerInterval).Div(balanceInterval)
	score := scoreFloor + int(points.IntPart())
	if score > scoreCeiling {
		score = scoreCeiling
	}
	return score
}
