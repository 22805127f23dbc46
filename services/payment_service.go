package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"creditApp/models"
	"creditApp/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MakePaymentDTO представляет данные платежа по кредиту
type MakePaymentDTO struct {
	LoanID string  `json:"loan_id" validate:"required,uuid"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// PaymentService распределяет входящие платежи по кредитам
type PaymentService struct {
	db        *gorm.DB
	validator *validator.Validate
	email     *EmailService
	cache     StatementCache
}

// NewPaymentService создает новый экземпляр PaymentService
func NewPaymentService(db *gorm.DB, email *EmailService, cache StatementCache) *PaymentService {
	return &PaymentService{
		db:        db,
		validator: validator.New(),
		email:     email,
		cache:     cache,
	}
}

// MakePayment валидирует запрос и проводит платеж
func (s *PaymentService) MakePayment(dto MakePaymentDTO) (*models.Payment, error) {
	// Валидируем DTO
	if err := s.validator.Struct(dto); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				errorMessages = append(errorMessages, "поле "+e.Field()+" обязательно")
			case "gt":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть больше 0")
			case "uuid":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть идентификатором UUID")
			}
		}
		return nil, errors.New(strings.Join(errorMessages, "; "))
	}

	loanID, err := uuid.Parse(dto.LoanID)
	if err != nil {
		return nil, errors.New("некорректный идентификатор кредита")
	}

	return s.AllocatePayment(loanID, decimal.NewFromFloat(dto.Amount))
}

// AllocatePayment распределяет платеж в порядке:
// просрочка -> минимальный платеж -> основной долг.
// Все изменения выполняются в одной транзакции.
func (s *PaymentService) AllocatePayment(loanID uuid.UUID, amount decimal.Decimal) (*models.Payment, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, errors.New("ошибка при начале транзакции")
	}

	// Получаем кредит
	var loan models.Loan
	if err := tx.Preload("User").First(&loan, "id = ?", loanID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, errors.New("ошибка при поиске кредита")
	}

	if !loan.IsActive {
		tx.Rollback()
		return nil, ErrNoPendingObligation
	}

	// Платеж всегда идет в самый ранний неоплаченный расчетный период
	var cycle models.BillingCycle
	if err := tx.Where("loan_id = ? AND is_paid = ?", loan.ID, false).
		Order("billing_date ASC").
		First(&cycle).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoPendingObligation
		}
		return nil, errors.New("ошибка при поиске расчетного периода")
	}

	working := amount

	// Сначала платеж обязан полностью закрыть просрочку
	if cycle.PastDue.GreaterThan(decimal.Zero) {
		if working.LessThan(cycle.PastDue) {
			tx.Rollback()
			return nil, ErrInsufficientForPastDue
		}
		working = working.Sub(cycle.PastDue)
		cycle.PastDue = decimal.Zero
	}

	// Сверяем остаток с минимальным платежом
	if working.LessThan(cycle.MinDue) {
		// Недоплата переносится как просрочка на следующий платеж,
		// период при этом закрывается
		cycle.PastDue = utils.Round2(cycle.MinDue.Sub(working))
		working = decimal.Zero
	} else {
		working = working.Sub(cycle.MinDue)
	}

	cycle.IsPaid = true
	if err := tx.Save(&cycle).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("ошибка при обновлении расчетного периода")
	}

	// Фиксируем платеж на полную внесенную сумму
	payment := &models.Payment{
		BillingCycleID:     cycle.ID,
		Amount:             amount,
		PaymentDate:        utils.DateOnly(time.Now()),
		IsPrincipalPayment: working.GreaterThan(decimal.Zero),
	}
	if err := tx.Create(payment).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("ошибка при создании платежа")
	}

	// Излишек уменьшает основной долг
	loanClosed := false
	if working.GreaterThan(decimal.Zero) {
		loan.PrincipalBalance = loan.PrincipalBalance.Sub(working)

		// Баланс не может стать отрицательным; при нуле кредит закрывается
		if loan.PrincipalBalance.LessThanOrEqual(decimal.Zero) {
			loan.PrincipalBalance = decimal.Zero
			loan.IsActive = false
			loanClosed = true
		}

		if err := tx.Save(&loan).Error; err != nil {
			tx.Rollback()
			return nil, errors.New("ошибка при обновлении баланса кредита")
		}
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return nil, errors.New("ошибка при подтверждении транзакции")
	}

	utils.GetMetrics().RecordPayment(payment.IsPrincipalPayment)

	if s.cache != nil {
		if err := s.cache.Delete(statementCacheKey(loan.ID)); err != nil {
			log.Printf("Ошибка инвалидации кеша выписки: %v", err)
		}
	}

	if loanClosed {
		utils.GetMetrics().RecordLoanClosed()
		if s.email != nil {
			if err := s.email.SendLoanPaidNotification(loan.User.Email, loan.ID); err != nil {
				// Логируем ошибку, но платеж уже проведен
				log.Printf("Ошибка при отправке уведомления: %v", err)
			}
		}
	}

	return payment, nil
}
