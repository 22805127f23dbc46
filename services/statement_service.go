package services

import (
	"encoding/json"
	"errors"
	"log"

	"creditApp/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PastTransactionDTO представляет прошедший платеж в выписке
type PastTransactionDTO struct {
	Date       string          `json:"date"`
	Principal  decimal.Decimal `json:"principal"`
	Interest   decimal.Decimal `json:"interest"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
}

// UpcomingTransactionDTO представляет предстоящее обязательство в выписке
type UpcomingTransactionDTO struct {
	Date      string          `json:"date"`
	AmountDue decimal.Decimal `json:"amount_due"`
}

// StatementDTO представляет выписку по кредиту
type StatementDTO struct {
	LoanID               string                   `json:"loan_id"`
	PastTransactions     []PastTransactionDTO     `json:"past_transactions"`
	UpcomingTransactions []UpcomingTransactionDTO `json:"upcoming_transactions"`
}

// StatementService собирает выписки по кредитам. Только чтение.
type StatementService struct {
	db    *gorm.DB
	cache StatementCache
}

// NewStatementService создает новый экземпляр StatementService
func NewStatementService(db *gorm.DB, cache StatementCache) *StatementService {
	return &StatementService{
		db:    db,
		cache: cache,
	}
}

// GetStatement возвращает выписку: прошедшие платежи и предстоящие обязательства
func (s *StatementService) GetStatement(loanID uuid.UUID) (*StatementDTO, error) {
	key := statementCacheKey(loanID)

	// Пробуем кеш; битые или отсутствующие значения игнорируем
	if s.cache != nil {
		if raw, ok := s.cache.Get(key); ok {
			var cached StatementDTO
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	// Проверяем существование кредита
	var loan models.Loan
	if err := s.db.First(&loan, "id = ?", loanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, errors.New("ошибка при поиске кредита")
	}

	// Прошедшие платежи с разбивкой периода на основной долг и проценты
	var payments []models.Payment
	if err := s.db.
		Joins("JOIN billing_cycles ON billing_cycles.id = payments.billing_cycle_id").
		Where("billing_cycles.loan_id = ?", loan.ID).
		Preload("BillingCycle").
		Order("payments.payment_date ASC, payments.id ASC").
		Find(&payments).Error; err != nil {
		return nil, errors.New("ошибка при получении платежей")
	}

	past := make([]PastTransactionDTO, 0, len(payments))
	for _, p := range payments {
		past = append(past, PastTransactionDTO{
			Date:       p.PaymentDate.Format("2006-01-02"),
			Principal:  p.BillingCycle.PrincipalPortion,
			Interest:   p.BillingCycle.InterestPortion,
			AmountPaid: p.Amount,
		})
	}

	// Неоплаченные периоды: к оплате минимальный платеж + просрочка
	var cycles []models.BillingCycle
	if err := s.db.Where("loan_id = ? AND is_paid = ?", loan.ID, false).
		Order("billing_date ASC").
		Find(&cycles).Error; err != nil {
		return nil, errors.New("ошибка при получении расчетных периодов")
	}

	upcoming := make([]UpcomingTransactionDTO, 0, len(cycles))
	for _, c := range cycles {
		upcoming = append(upcoming, UpcomingTransactionDTO{
			Date:      c.DueDate.Format("2006-01-02"),
			AmountDue: c.MinDue.Add(c.PastDue),
		})
	}

	statement := &StatementDTO{
		LoanID:               loan.ID.String(),
		PastTransactions:     past,
		UpcomingTransactions: upcoming,
	}

	if s.cache != nil {
		if raw, err := json.Marshal(statement); err == nil {
			if err := s.cache.Set(key, string(raw)); err != nil {
				log.Printf("Ошибка записи выписки в кеш: %v", err)
			}
		}
	}

	return statement, nil
}
