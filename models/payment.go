package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment представляет платеж по расчетному периоду.
// Записи неизменяемы: платеж создается один раз и никогда не редактируется.
type Payment struct {
	ID                 uint            `gorm:"primaryKey;autoIncrement"`
	BillingCycleID     uint            `gorm:"column:billing_cycle_id;not null;index"`
	BillingCycle       BillingCycle    `gorm:"foreignKey:BillingCycleID;references:ID"`
	Amount             decimal.Decimal `gorm:"column:amount;type:decimal(12,2);not null"` // Полная внесенная сумма
	PaymentDate        time.Time       `gorm:"column:payment_date;type:date;not null"`
	IsPrincipalPayment bool            `gorm:"column:is_principal_payment;not null;default:false"` // Часть платежа пошла на погашение основного долга
	CreatedAt          time.Time       `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
}

func (Payment) TableName() string {
	return "payments"
}
