package services

import (
	"testing"

	"creditApp/config"
	"creditApp/models"

	"github.com/shopspring/decimal"
)

func newTestUserService(t *testing.T) (*UserService, *CreditScoreService) {
	t.Helper()

	db := setupTestDB(t)
	scores := NewCreditScoreService(db)
	cfg := &config.Config{AadharHMACKey: "test-hmac-key"}
	return NewUserService(db, scores, cfg), scores
}

func TestRegister(t *testing.T) {
	s, _ := newTestUserService(t)

	resp, err := s.Register(RegisterUserDTO{
		Name:         "Иван Иванов",
		Email:        "ivan@example.com",
		AadharID:     "123456789012",
		AnnualIncome: 200000,
	})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if resp.UniqueUserID == 0 {
		t.Error("идентификатор пользователя не присвоен")
	}

	// Номер Aadhar не хранится открытым текстом
	var user models.User
	if err := s.db.First(&user, resp.UniqueUserID).Error; err != nil {
		t.Fatalf("пользователь не найден: %v", err)
	}
	if user.AadharEncrypted == "123456789012" {
		t.Error("номер Aadhar хранится открытым текстом")
	}
	if user.AadharHMAC == "" {
		t.Error("HMAC номера Aadhar не рассчитан")
	}
	if !user.AnnualIncome.Equal(decimal.NewFromInt(200000)) {
		t.Errorf("годовой доход: ожидалось 200000, получено %s", user.AnnualIncome)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	s, _ := newTestUserService(t)

	dto := RegisterUserDTO{
		Name:         "Иван Иванов",
		Email:        "ivan@example.com",
		AadharID:     "123456789012",
		AnnualIncome: 200000,
	}
	if _, err := s.Register(dto); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	// Повторный email
	dup := dto
	dup.AadharID = "210987654321"
	if _, err := s.Register(dup); err == nil {
		t.Error("ожидалась ошибка для повторного email")
	}

	// Повторный номер Aadhar
	dup = dto
	dup.Email = "other@example.com"
	if _, err := s.Register(dup); err == nil {
		t.Error("ожидалась ошибка для повторного номера Aadhar")
	}

	// Отклоненные регистрации не оставляют записей
	var count int64
	s.db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Errorf("ожидался 1 пользователь, найдено %d", count)
	}
}

func TestRegisterValidation(t *testing.T) {
	s, _ := newTestUserService(t)

	cases := []struct {
		name string
		dto  RegisterUserDTO
	}{
		{"пустое имя", RegisterUserDTO{Email: "a@b.com", AadharID: "123456789012", AnnualIncome: 100}},
		{"некорректный email", RegisterUserDTO{Name: "Иван", Email: "not-an-email", AadharID: "123456789012", AnnualIncome: 100}},
		{"короткий Aadhar", RegisterUserDTO{Name: "Иван", Email: "a@b.com", AadharID: "12345", AnnualIncome: 100}},
		{"нечисловой Aadhar", RegisterUserDTO{Name: "Иван", Email: "a@b.com", AadharID: "12345678901x", AnnualIncome: 100}},
		{"нулевой доход", RegisterUserDTO{Name: "Иван", Email: "a@b.com", AadharID: "123456789012"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.Register(tc.dto); err == nil {
				t.Error("ожидалась ошибка валидации")
			}
		})
	}
}

func TestRecordTransaction(t *testing.T) {
	s, _ := newTestUserService(t)

	if _, err := s.Register(RegisterUserDTO{
		Name:         "Иван Иванов",
		Email:        "ivan@example.com",
		AadharID:     "123456789012",
		AnnualIncome: 200000,
	}); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	err := s.RecordTransaction(RecordTransactionDTO{
		AadharID: "123456789012",
		Date:     "2026-08-01",
		Amount:   50000,
		Type:     "CREDIT",
	})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	var txn models.Transaction
	if err := s.db.First(&txn).Error; err != nil {
		t.Fatalf("операция не найдена: %v", err)
	}
	if txn.Type != models.TransactionTypeCredit {
		t.Errorf("тип операции: ожидалось CREDIT, получено %s", txn.Type)
	}
	if !txn.Amount.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("сумма: ожидалось 50000, получено %s", txn.Amount)
	}
}

func TestRecordTransactionValidation(t *testing.T) {
	s, _ := newTestUserService(t)

	cases := []struct {
		name string
		dto  RecordTransactionDTO
	}{
		{"некорректный тип", RecordTransactionDTO{AadharID: "123456789012", Date: "2026-08-01", Amount: 100, Type: "TRANSFER"}},
		{"некорректная дата", RecordTransactionDTO{AadharID: "123456789012", Date: "01.08.2026", Amount: 100, Type: "DEBIT"}},
		{"нулевая сумма", RecordTransactionDTO{AadharID: "123456789012", Date: "2026-08-01", Type: "DEBIT"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := s.RecordTransaction(tc.dto); err == nil {
				t.Error("ожидалась ошибка валидации")
			}
		})
	}
}
