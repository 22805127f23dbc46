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

// Пороги одобрения кредита
var (
	minCreditScore  = 450
	minAnnualIncome = decimal.NewFromInt(150000)
	maxLoanAmount   = decimal.NewFromInt(5000)
	minInterestRate = decimal.NewFromInt(12)
)

// ApplyLoanDTO представляет заявку на кредит
type ApplyLoanDTO struct {
	UserID           uint    `json:"unique_user_id" validate:"required"`
	LoanType         string  `json:"loan_type" validate:"required,oneof=CREDIT_CARD"`
	LoanAmount       float64 `json:"loan_amount" validate:"required,gt=0"`
	InterestRate     float64 `json:"interest_rate" validate:"required,gt=0"`
	TermPeriod       int     `json:"term_period" validate:"required,gt=0"`
	DisbursementDate string  `json:"disbursement_date" validate:"required,datetime=2006-01-02"`
}

// ApplyLoanResponseDTO представляет ответ на заявку
type ApplyLoanResponseDTO struct {
	LoanID   uuid.UUID     `json:"loan_id"`
	DueDates []EMIEntryDTO `json:"due_dates"`
}

// LoanService оформляет кредиты
type LoanService struct {
	db              *gorm.DB
	validator       *validator.Validate
	emi             *EMIService
	email           *EmailService
	defaultBaseRate decimal.Decimal
}

// NewLoanService создает новый экземпляр LoanService
func NewLoanService(db *gorm.DB, emi *EMIService, email *EmailService, defaultBaseRate float64) *LoanService {
	return &LoanService{
		db:              db,
		validator:       validator.New(),
		emi:             emi,
		email:           email,
		defaultBaseRate: decimal.NewFromFloat(defaultBaseRate),
	}
}

// Create оформляет кредит: проверяет право заемщика, сохраняет кредит
// и возвращает график аннуитетных платежей
func (s *LoanService) Create(dto ApplyLoanDTO) (*ApplyLoanResponseDTO, error) {
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
			case "oneof":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть одним из: "+e.Param())
			case "datetime":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть датой в формате ГГГГ-ММ-ДД")
			}
		}
		return nil, errors.New(strings.Join(errorMessages, "; "))
	}

	disbursementDate, err := time.Parse("2006-01-02", dto.DisbursementDate)
	if err != nil {
		return nil, errors.New("некорректная дата выдачи")
	}
	disbursementDate = utils.DateOnly(disbursementDate)
	if disbursementDate.Before(utils.DateOnly(time.Now())) {
		return nil, errors.New("дата выдачи не может быть в прошлом")
	}

	amount := decimal.NewFromFloat(dto.LoanAmount).Round(2)
	rate := decimal.NewFromFloat(dto.InterestRate).Round(2)

	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, errors.New("ошибка при начале транзакции")
	}

	// Получаем заемщика
	var user models.User
	if err := tx.First(&user, dto.UserID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errors.New("ошибка при поиске пользователя")
	}

	// Проверяем право на кредит
	if err := s.checkEligibility(&user, amount, rate); err != nil {
		tx.Rollback()
		return nil, err
	}

	// График платежей рассчитываем до сохранения: некорректные
	// параметры не должны оставить кредит в базе
	schedule, err := s.emi.Schedule(amount, rate, dto.TermPeriod, disbursementDate)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// Базовая ставка ЦБ записывается справочно; недоступность
	// внешнего сервиса не блокирует выдачу
	baseRate, err := GetCentralBankRate()
	if err != nil {
		log.Printf("Ошибка при получении ставки центрального банка: %v", err)
		baseRate = s.defaultBaseRate
	}

	loan := &models.Loan{
		ID:               uuid.New(),
		UserID:           user.ID,
		LoanType:         models.LoanType(dto.LoanType),
		LoanAmount:       amount,
		PrincipalBalance: amount,
		InterestRate:     rate,
		BaseRate:         baseRate,
		TermPeriod:       dto.TermPeriod,
		DisbursementDate: disbursementDate,
		IsActive:         true,
	}

	if err := tx.Create(loan).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("ошибка при создании кредита")
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return nil, errors.New("ошибка при подтверждении транзакции")
	}

	utils.GetMetrics().RecordLoanIssued()

	if s.email != nil {
		if err := s.email.SendLoanIssuedNotification(user.Email, loan.ID, amount, dto.TermPeriod); err != nil {
			log.Printf("Ошибка при отправке уведомления: %v", err)
		}
	}

	return &ApplyLoanResponseDTO{
		LoanID:   loan.ID,
		DueDates: schedule,
	}, nil
}

// checkEligibility проверяет пороги одобрения
func (s *LoanService) checkEligibility(user *models.User, amount, rate decimal.Decimal) error {
	if user.CreditScore == nil {
		return ErrScoreNotReady
	}
	if *user.CreditScore < minCreditScore {
		return ErrLowCreditScore
	}
	if user.AnnualIncome.LessThan(minAnnualIncome) {
		return ErrLowIncome
	}
	if amount.GreaterThan(maxLoanAmount) {
		return ErrAmountTooHigh
	}
	if rate.LessThan(minInterestRate) {
		return ErrRateTooLow
	}
	return nil
}

// GetLoanByID возвращает кредит по идентификатору
func (s *LoanService) GetLoanByID(id uuid.UUID) (*models.Loan, error) {
	var loan models.Loan
	if err := s.db.Preload("User").First(&loan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, errors.New("ошибка при поиске кредита")
	}
	return &loan, nil
}
