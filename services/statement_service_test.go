package services

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"creditApp/models"
	"creditApp/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestGetStatement(t *testing.T) {
	db := setupTestDB(t)
	cache := newFakeCache()
	s := NewStatementService(db, cache)

	user := createTestUser(t, db, "stmt@example.com", "hmac-stmt-1", 700)
	loan := createTestLoan(t, db, user.ID, decimal.NewFromInt(1000), decimal.NewFromInt(12), 90)

	// Оплаченный период с платежом
	paid := createTestCycle(t, db, loan.ID, decimal.NewFromFloat(39.90), decimal.Zero)
	db.Model(paid).Updates(map[string]interface{}{
		"is_paid":      true,
		"billing_date": utils.AddDays(time.Now(), -60),
	})
	payment := &models.Payment{
		BillingCycleID: paid.ID,
		Amount:         decimal.NewFromFloat(39.90),
		PaymentDate:    utils.AddDays(time.Now(), -50),
	}
	if err := db.Create(payment).Error; err != nil {
		t.Fatalf("не удалось создать платеж: %v", err)
	}

	// Неоплаченный период с просрочкой
	unpaid := createTestCycle(t, db, loan.ID, decimal.NewFromFloat(39.90), decimal.NewFromInt(10))

	statement, err := s.GetStatement(loan.ID)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if statement.LoanID != loan.ID.String() {
		t.Errorf("идентификатор кредита: ожидалось %s, получено %s", loan.ID, statement.LoanID)
	}

	if len(statement.PastTransactions) != 1 {
		t.Fatalf("ожидался 1 прошедший платеж, получено %d", len(statement.PastTransactions))
	}
	past := statement.PastTransactions[0]
	if !past.AmountPaid.Equal(decimal.NewFromFloat(39.90)) {
		t.Errorf("внесенная сумма: ожидалось 39.90, получено %s", past.AmountPaid)
	}

	// К оплате: минимальный платеж + просрочка
	if len(statement.UpcomingTransactions) != 1 {
		t.Fatalf("ожидалось 1 предстоящее обязательство, получено %d", len(statement.UpcomingTransactions))
	}
	upcoming := statement.UpcomingTransactions[0]
	if !upcoming.AmountDue.Equal(decimal.NewFromFloat(49.90)) {
		t.Errorf("к оплате: ожидалось 49.90, получено %s", upcoming.AmountDue)
	}
	if upcoming.Date != unpaid.DueDate.Format("2006-01-02") {
		t.Errorf("дата обязательства: ожидалось %s, получено %s", unpaid.DueDate.Format("2006-01-02"), upcoming.Date)
	}

	// Выписка попала в кеш
	if _, ok := cache.Get(statementCacheKey(loan.ID)); !ok {
		t.Error("выписка должна быть сохранена в кеше")
	}
}

func TestGetStatementFromCache(t *testing.T) {
	db := setupTestDB(t)
	cache := newFakeCache()
	s := NewStatementService(db, cache)

	// Кредита в базе нет, но выписка лежит в кеше
	loanID := uuid.New()
	cached := StatementDTO{
		LoanID:               loanID.String(),
		PastTransactions:     []PastTransactionDTO{},
		UpcomingTransactions: []UpcomingTransactionDTO{},
	}
	raw, _ := json.Marshal(cached)
	cache.Set(statementCacheKey(loanID), string(raw))

	statement, err := s.GetStatement(loanID)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if statement.LoanID != loanID.String() {
		t.Errorf("выписка должна прийти из кеша: %s", statement.LoanID)
	}
}

func TestGetStatementCorruptedCacheIgnored(t *testing.T) {
	db := setupTestDB(t)
	cache := newFakeCache()
	s := NewStatementService(db, cache)

	user := createTestUser(t, db, "stmt@example.com", "hmac-stmt-2", 700)
	loan := createTestLoan(t, db, user.ID, decimal.NewFromInt(1000), decimal.NewFromInt(12), 30)

	// Битое значение в кеше игнорируется, выписка строится заново
	cache.Set(statementCacheKey(loan.ID), "{broken json")

	statement, err := s.GetStatement(loan.ID)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if statement.LoanID != loan.ID.String() {
		t.Errorf("идентификатор кредита: ожидалось %s, получено %s", loan.ID, statement.LoanID)
	}
}

func TestGetStatementLoanNotFound(t *testing.T) {
	db := setupTestDB(t)
	s := NewStatementService(db, newFakeCache())

	if _, err := s.GetStatement(uuid.New()); !errors.Is(err, ErrLoanNotFound) {
		t.Errorf("ожидалась ошибка ErrLoanNotFound, получено %v", err)
	}
}

func TestGetStatementEmpty(t *testing.T) {
	db := setupTestDB(t)
	s := NewStatementService(db, newFakeCache())

	user := createTestUser(t, db, "stmt@example.com", "hmac-stmt-3", 700)
	loan := createTestLoan(t, db, user.ID, decimal.NewFromInt(1000), decimal.NewFromInt(12), 5)

	statement, err := s.GetStatement(loan.ID)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(statement.PastTransactions) != 0 || len(statement.UpcomingTransactions) != 0 {
		t.Errorf("выписка нового кредита должна быть пустой: %+v", statement)
	}
}
