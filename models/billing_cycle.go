package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillingCycle представляет расчетный период по кредиту (~30 дней)
type BillingCycle struct {
	ID               uint            `gorm:"primaryKey;autoIncrement"`
	LoanID           uuid.UUID       `gorm:"column:loan_id;type:uuid;not null;index"`
	Loan             Loan            `gorm:"foreignKey:LoanID;references:ID"`
	BillingDate      time.Time       `gorm:"column:billing_date;type:date;not null;index"`
	DueDate          time.Time       `gorm:"column:due_date;type:date;not null"` // Всегда billing_date + 15 дней
	MinDue           decimal.Decimal `gorm:"column:min_due;type:decimal(12,2);not null"`
	PrincipalPortion decimal.Decimal `gorm:"column:principal_portion;type:decimal(12,2);not null"`
	InterestPortion  decimal.Decimal `gorm:"column:interest_portion;type:decimal(12,2);not null"`
	IsPaid           bool            `gorm:"column:is_paid;not null;default:false"`
	PastDue          decimal.Decimal `gorm:"column:past_due;type:decimal(12,2);not null;default:0"` // Недоплата, перенесенная на следующий платеж
	CreatedAt        time.Time       `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
}

func (BillingCycle) TableName() string {
	return "billing_cycles"
}
