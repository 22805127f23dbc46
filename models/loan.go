package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LoanType представляет тип кредитной линии
type LoanType string

const (
	LoanTypeCreditCard LoanType = "CREDIT_CARD"
)

// Loan представляет кредитную линию
type Loan struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID           uint            `gorm:"column:user_id;not null;index"`
	User             User            `gorm:"foreignKey:UserID;references:ID"`
	LoanType         LoanType        `gorm:"column:loan_type;type:varchar(20);not null"`
	LoanAmount       decimal.Decimal `gorm:"column:loan_amount;type:decimal(12,2);not null"`
	PrincipalBalance decimal.Decimal `gorm:"column:principal_balance;type:decimal(12,2);not null"` // Остаток основного долга, не может быть отрицательным
	InterestRate     decimal.Decimal `gorm:"column:interest_rate;type:decimal(5,2);not null"`      // Годовая ставка (APR), в процентах
	BaseRate         decimal.Decimal `gorm:"column:base_rate;type:decimal(5,2);not null"`          // Ключевая ставка ЦБ на момент выдачи
	TermPeriod       int             `gorm:"column:term_period;not null"`                          // Срок в месяцах
	DisbursementDate time.Time       `gorm:"column:disbursement_date;type:date;not null"`
	IsActive         bool            `gorm:"column:is_active;not null;default:true"`
	BillingCycles    []BillingCycle  `gorm:"foreignKey:LoanID"`
	CreatedAt        time.Time       `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;default:CURRENT_TIMESTAMP"`
}

func (Loan) TableName() string {
	return "loans"
}

// BeforeCreate хук для присвоения идентификатора
func (l *Loan) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
