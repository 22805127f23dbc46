package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType представляет тип операции по банковскому счету
type TransactionType string

const (
	TransactionTypeDebit  TransactionType = "DEBIT"
	TransactionTypeCredit TransactionType = "CREDIT"
)

// Transaction представляет операцию по счету заемщика.
// История операций служит источником для расчета кредитного рейтинга.
type Transaction struct {
	ID         uint            `gorm:"primaryKey;autoIncrement"`
	AadharHMAC string          `gorm:"column:aadhar_hmac;not null;size:64;index"`
	Date       time.Time       `gorm:"column:date;type:date;not null"`
	Amount     decimal.Decimal `gorm:"column:amount;type:decimal(12,2);not null"`
	Type       TransactionType `gorm:"column:type;type:varchar(6);not null"`
	CreatedAt  time.Time       `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
}

func (Transaction) TableName() string {
	return "transactions"
}
