package services

import (
	"errors"
	"strings"
	"time"

	"creditApp/config"
	"creditApp/models"
	"creditApp/utils"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RegisterUserDTO представляет данные для регистрации заемщика
type RegisterUserDTO struct {
	Name         string  `json:"name" validate:"required,min=2,max=100"`
	Email        string  `json:"email" validate:"required,email"`
	AadharID     string  `json:"aadhar_id" validate:"required,len=12,numeric"`
	AnnualIncome float64 `json:"annual_income" validate:"required,gt=0"`
}

// RegisterUserResponseDTO представляет ответ на регистрацию
type RegisterUserResponseDTO struct {
	UniqueUserID uint `json:"unique_user_id"`
}

// RecordTransactionDTO представляет операцию по счету заемщика
type RecordTransactionDTO struct {
	AadharID string  `json:"aadhar_id" validate:"required,len=12,numeric"`
	Date     string  `json:"date" validate:"required,datetime=2006-01-02"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Type     string  `json:"type" validate:"required,oneof=DEBIT CREDIT"`
}

// UserService регистрирует заемщиков и ведет историю операций
type UserService struct {
	db        *gorm.DB
	validator *validator.Validate
	scores    *CreditScoreService
	hmacKey   []byte
	publicKey string
}

// NewUserService создает новый экземпляр UserService
func NewUserService(db *gorm.DB, scores *CreditScoreService, cfg *config.Config) *UserService {
	return &UserService{
		db:        db,
		validator: validator.New(),
		scores:    scores,
		hmacKey:   []byte(cfg.AadharHMACKey),
		publicKey: cfg.AadharPublicKey,
	}
}

// Register создает заемщика и ставит расчет кредитного рейтинга в очередь.
// Номер Aadhar хранится зашифрованным, поиск идет по HMAC.
func (s *UserService) Register(dto RegisterUserDTO) (*RegisterUserResponseDTO, error) {
	// Валидируем DTO
	if err := s.validator.Struct(dto); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				errorMessages = append(errorMessages, "поле "+e.Field()+" обязательно")
			case "min":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно содержать минимум "+e.Param()+" символов")
			case "max":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно содержать максимум "+e.Param()+" символов")
			case "email":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть корректным email")
			case "len":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно содержать "+e.Param()+" символов")
			case "numeric":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно содержать только цифры")
			case "gt":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть больше 0")
			}
		}
		return nil, errors.New(strings.Join(errorMessages, "; "))
	}

	aadharHMAC := utils.GenerateHMAC(dto.AadharID, s.hmacKey)

	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, errors.New("ошибка при начале транзакции")
	}

	// Проверяем, нет ли заемщика с таким email или номером Aadhar
	var existing models.User
	if err := tx.Where("LOWER(email) = LOWER(?) OR aadhar_hmac = ?", dto.Email, aadharHMAC).
		First(&existing).Error; err == nil {
		tx.Rollback()
		return nil, errors.New("пользователь с таким email или номером Aadhar уже существует")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		return nil, errors.New("ошибка при поиске пользователя")
	}

	// Шифруем номер Aadhar; без настроенного ключа храним только HMAC
	aadharEncrypted := aadharHMAC
	if s.publicKey != "" {
		encrypted, err := utils.PGPEncrypt(dto.AadharID, s.publicKey)
		if err != nil {
			tx.Rollback()
			return nil, errors.New("ошибка при шифровании номера Aadhar")
		}
		aadharEncrypted = encrypted
	}

	user := &models.User{
		Name:            dto.Name,
		Email:           dto.Email,
		AadharEncrypted: aadharEncrypted,
		AadharHMAC:      aadharHMAC,
		AnnualIncome:    decimal.NewFromFloat(dto.AnnualIncome).Round(2),
	}

	if err := tx.Create(user).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("ошибка при создании пользователя")
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return nil, errors.New("ошибка при подтверждении транзакции")
	}

	// Рейтинг считается асинхронно
	s.scores.Enqueue(aadharHMAC)

	return &RegisterUserResponseDTO{UniqueUserID: user.ID}, nil
}

// RecordTransaction сохраняет операцию по счету и ставит
// пересчет кредитного рейтинга в очередь
func (s *UserService) RecordTransaction(dto RecordTransactionDTO) error {
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
			case "len":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно содержать "+e.Param()+" символов")
			case "numeric":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно содержать только цифры")
			case "oneof":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть одним из: "+e.Param())
			case "datetime":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть датой в формате ГГГГ-ММ-ДД")
			}
		}
		return errors.New(strings.Join(errorMessages, "; "))
	}

	date, err := time.Parse("2006-01-02", dto.Date)
	if err != nil {
		return errors.New("некорректная дата операции")
	}

	txn := &models.Transaction{
		AadharHMAC: utils.GenerateHMAC(dto.AadharID, s.hmacKey),
		Date:       utils.DateOnly(date),
		Amount:     decimal.NewFromFloat(dto.Amount).Round(2),
		Type:       models.TransactionType(dto.Type),
	}

	if err := s.db.Create(txn).Error; err != nil {
		return errors.New("ошибка при сохранении операции")
	}

	s.scores.Enqueue(txn.AadharHMAC)
	return nil
}
