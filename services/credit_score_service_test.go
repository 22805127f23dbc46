package services

import (
	"errors"
	"testing"
	"time"

	"creditApp/models"
	"creditApp/utils"

	"github.com/shopspring/decimal"
)

func TestScoreForBalance(t *testing.T) {
	s := NewCreditScoreService(nil)

	cases := []struct {
		name    string
		balance int64
		want    int
	}{
		{"низкий баланс", 5000, 300},
		{"граница низкого баланса", 10000, 300},
		{"высокий баланс", 2000000, 900},
		{"граница высокого баланса", 1000000, 900},
		{"один интервал", 25000, 310},
		{"середина диапазона", 505000, 630},
		{"неполный интервал дает пропорциональные пункты", 30000, 313},
		{"дробная часть отбрасывается после умножения", 17500, 305},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := s.scoreForBalance(decimal.NewFromInt(tc.balance))
			if got != tc.want {
				t.Errorf("баланс %d: ожидался рейтинг %d, получено %d", tc.balance, tc.want, got)
			}
		})
	}
}

func TestCalculate(t *testing.T) {
	db := setupTestDB(t)
	s := NewCreditScoreService(db)

	user := createTestUser(t, db, "score@example.com", "hmac-score-1", 0)
	user.CreditScore = nil
	db.Save(user)

	// CREDIT увеличивает баланс, DEBIT уменьшает
	transactions := []models.Transaction{
		{AadharHMAC: "hmac-score-1", Date: utils.DateOnly(time.Now()), Amount: decimal.NewFromInt(50000), Type: models.TransactionTypeCredit},
		{AadharHMAC: "hmac-score-1", Date: utils.DateOnly(time.Now()), Amount: decimal.NewFromInt(10000), Type: models.TransactionTypeDebit},
	}
	for i := range transactions {
		if err := db.Create(&transactions[i]).Error; err != nil {
			t.Fatalf("не удалось создать операцию: %v", err)
		}
	}

	if err := s.Calculate("hmac-score-1"); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	// Баланс 40 000: 300 + 10 * ((40000 - 10000) / 15000) = 320
	var updated models.User
	db.First(&updated, user.ID)
	if updated.CreditScore == nil || *updated.CreditScore != 320 {
		t.Errorf("рейтинг: ожидалось 320, получено %v", updated.CreditScore)
	}
}

func TestCalculateNoTransactions(t *testing.T) {
	db := setupTestDB(t)
	s := NewCreditScoreService(db)

	user := createTestUser(t, db, "score@example.com", "hmac-score-2", 0)

	if err := s.Calculate("hmac-score-2"); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	// Без операций баланс нулевой, рейтинг минимальный
	var updated models.User
	db.First(&updated, user.ID)
	if updated.CreditScore == nil || *updated.CreditScore != 300 {
		t.Errorf("рейтинг: ожидалось 300, получено %v", updated.CreditScore)
	}
}

func TestCalculateUserNotFound(t *testing.T) {
	db := setupTestDB(t)
	s := NewCreditScoreService(db)

	if err := s.Calculate("no-such-hmac"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("ожидалась ошибка ErrUserNotFound, получено %v", err)
	}
}
