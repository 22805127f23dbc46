package services

import (
	"testing"
	"time"

	"creditApp/database"
	"creditApp/models"
	"creditApp/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB создает базу данных в памяти для тестов
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("не удалось открыть тестовую базу данных: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("не удалось выполнить миграцию: %v", err)
	}

	return db
}

// fakeCache реализует StatementCache в памяти
type fakeCache struct {
	data    map[string]string
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (c *fakeCache) Get(key string) (string, bool) {
	val, ok := c.data[key]
	return val, ok
}

func (c *fakeCache) Set(key string, value string) error {
	c.data[key] = value
	return nil
}

func (c *fakeCache) Delete(key string) error {
	delete(c.data, key)
	c.deleted = append(c.deleted, key)
	return nil
}

// createTestUser создает заемщика с заданным рейтингом
func createTestUser(t *testing.T, db *gorm.DB, email, aadharHMAC string, score int) *models.User {
	t.Helper()

	user := &models.User{
		Name:            "Тестовый Заемщик",
		Email:           email,
		AadharEncrypted: aadharHMAC,
		AadharHMAC:      aadharHMAC,
		AnnualIncome:    decimal.NewFromInt(200000),
		CreditScore:     &score,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("не удалось создать пользователя: %v", err)
	}
	return user
}

// createTestLoan создает активный кредит с выдачей daysAgo дней назад
func createTestLoan(t *testing.T, db *gorm.DB, userID uint, principal decimal.Decimal, aprPercent decimal.Decimal, daysAgo int) *models.Loan {
	t.Helper()

	loan := &models.Loan{
		ID:               uuid.New(),
		UserID:           userID,
		LoanType:         models.LoanTypeCreditCard,
		LoanAmount:       principal,
		PrincipalBalance: principal,
		InterestRate:     aprPercent,
		BaseRate:         decimal.NewFromInt(16),
		TermPeriod:       12,
		DisbursementDate: utils.AddDays(time.Now(), -daysAgo),
		IsActive:         true,
	}
	if err := db.Create(loan).Error; err != nil {
		t.Fatalf("не удалось создать кредит: %v", err)
	}
	return loan
}

// createTestCycle создает неоплаченный расчетный период
func createTestCycle(t *testing.T, db *gorm.DB, loanID uuid.UUID, minDue, pastDue decimal.Decimal) *models.BillingCycle {
	t.Helper()

	cycle := &models.BillingCycle{
		LoanID:           loanID,
		BillingDate:      utils.AddDays(time.Now(), -5),
		DueDate:          utils.AddDays(time.Now(), 10),
		MinDue:           minDue,
		PrincipalPortion: utils.Round2(minDue.Mul(decimal.NewFromFloat(0.6))),
		InterestPortion:  utils.Round2(minDue.Mul(decimal.NewFromFloat(0.4))),
		IsPaid:           false,
		PastDue:          pastDue,
	}
	if err := db.Create(cycle).Error; err != nil {
		t.Fatalf("не удалось создать расчетный период: %v", err)
	}
	return cycle
}
