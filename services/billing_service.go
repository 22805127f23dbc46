package services

import (
	"errors"
	"log"
	"time"

	"creditApp/models"
	"creditApp/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// principalShare — доля основного долга в минимальном платеже (3%)
var principalShare = decimal.NewFromInt(3)

// BillingService формирует расчетные периоды по кредитам
type BillingService struct {
	db    *gorm.DB
	email *EmailService
	cache StatementCache
}

// NewBillingService создает новый экземпляр BillingService
func NewBillingService(db *gorm.DB, email *EmailService, cache StatementCache) *BillingService {
	return &BillingService{
		db:    db,
		email: email,
		cache: cache,
	}
}

// GenerateBillingCycle формирует очередной расчетный период по одному кредиту
func (s *BillingService) GenerateBillingCycle(loanID uuid.UUID) (*models.BillingCycle, error) {
	today := utils.DateOnly(time.Now())

	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, errors.New("ошибка при начале транзакции")
	}

	cycle, err := s.generateCycle(tx, loanID, today)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return nil, errors.New("ошибка при подтверждении транзакции")
	}

	s.afterCycleCreated(cycle)
	return cycle, nil
}

// generateCycle рассчитывает и сохраняет расчетный период внутри транзакции.
// Даты: биллинг через 30 дней после предыдущего (или после выдачи),
// срок оплаты через 15 дней после даты биллинга.
func (s *BillingService) generateCycle(tx *gorm.DB, loanID uuid.UUID, today time.Time) (*models.BillingCycle, error) {
	// Получаем кредит
	var loan models.Loan
	if err := tx.Preload("User").First(&loan, "id = ?", loanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, errors.New("ошибка при поиске кредита")
	}

	if !loan.IsActive {
		return nil, ErrNoPendingObligation
	}

	// Находим последний расчетный период
	var last models.BillingCycle
	hasLast := true
	if err := tx.Where("loan_id = ?", loan.ID).Order("billing_date DESC").First(&last).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("ошибка при поиске расчетных периодов")
		}
		hasLast = false
	}

	var billingDate time.Time
	var daysElapsed int
	if hasLast {
		billingDate = utils.AddDays(last.BillingDate, 30)
		daysElapsed = utils.DaysBetween(last.BillingDate, today)
	} else {
		billingDate = utils.AddDays(loan.DisbursementDate, 30)
		daysElapsed = utils.DaysBetween(loan.DisbursementDate, today)
	}

	// Защита от двойного биллинга: в текущем окне период уже есть
	if billingDate.After(today) {
		return nil, ErrCycleAlreadyBilled
	}

	// Простые (не сложные) проценты за прошедшие дни.
	// Дневная ставка в процентах, округлена до 3 знаков.
	dailyRate := utils.DailyRate(loan.InterestRate)
	interest := utils.PercentOf(loan.PrincipalBalance, dailyRate).
		Mul(decimal.NewFromInt(int64(daysElapsed)))

	// Минимальный платеж: 3% основного долга + начисленные проценты
	principalPortion := utils.PercentOf(loan.PrincipalBalance, principalShare)
	minDue := principalPortion.Add(interest)

	cycle := &models.BillingCycle{
		LoanID:           loan.ID,
		BillingDate:      billingDate,
		DueDate:          utils.AddDays(billingDate, 15),
		MinDue:           utils.Round2(minDue),
		PrincipalPortion: utils.Round2(principalPortion),
		InterestPortion:  utils.Round2(interest),
		IsPaid:           false,
		PastDue:          decimal.Zero,
	}

	if err := tx.Create(cycle).Error; err != nil {
		return nil, errors.New("ошибка при создании расчетного периода")
	}

	cycle.Loan = loan
	return cycle, nil
}

// ProcessBilling обходит все активные кредиты, выданные не менее 30 дней назад.
// Каждый кредит обрабатывается в собственной транзакции: сбой одного
// не прерывает обход остальных.
func (s *BillingService) ProcessBilling() {
	today := utils.DateOnly(time.Now())
	cutoff := utils.AddDays(today, -30)

	var loans []models.Loan
	if err := s.db.Where("is_active = ? AND disbursement_date <= ?", true, cutoff).Find(&loans).Error; err != nil {
		log.Printf("Ошибка при получении кредитов для биллинга: %v", err)
		return
	}

	for _, loan := range loans {
		tx := s.db.Begin()
		if tx.Error != nil {
			log.Printf("Ошибка при начале транзакции для кредита %s: %v", loan.ID, tx.Error)
			continue
		}

		cycle, err := s.generateCycle(tx, loan.ID, today)
		if err != nil {
			tx.Rollback()
			// Период текущего окна уже сформирован, пропускаем
			if errors.Is(err, ErrCycleAlreadyBilled) {
				continue
			}
			log.Printf("Ошибка биллинга по кредиту %s: %v", loan.ID, err)
			utils.GetMetrics().RecordError(err)
			continue
		}

		if err := tx.Commit().Error; err != nil {
			log.Printf("Ошибка при подтверждении транзакции для кредита %s: %v", loan.ID, err)
			continue
		}

		s.afterCycleCreated(cycle)
	}
}

// afterCycleCreated обновляет метрики, сбрасывает кеш выписки
// и уведомляет заемщика. Ошибки здесь не откатывают биллинг.
func (s *BillingService) afterCycleCreated(cycle *models.BillingCycle) {
	utils.GetMetrics().RecordBillingCycle()

	if s.cache != nil {
		if err := s.cache.Delete(statementCacheKey(cycle.LoanID)); err != nil {
			log.Printf("Ошибка инвалидации кеша выписки: %v", err)
		}
	}

	if s.email != nil && cycle.Loan.User.Email != "" {
		if err := s.email.SendBillingCycleNotification(cycle.Loan.User.Email, cycle.LoanID, cycle.MinDue, cycle.DueDate); err != nil {
			log.Printf("Ошибка при отправке уведомления: %v", err)
		}
	}
}
