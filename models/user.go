package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User представляет заемщика
type User struct {
	ID              uint            `gorm:"primaryKey;autoIncrement"`
	Name            string          `gorm:"column:name;not null;size:100"`
	Email           string          `gorm:"column:email;unique;not null;size:100;index"`
	AadharEncrypted string          `gorm:"column:aadhar_encrypted;not null"`                 // Номер Aadhar, зашифрованный PGP
	AadharHMAC      string          `gorm:"column:aadhar_hmac;unique;not null;size:64;index"` // HMAC номера Aadhar для поиска
	AnnualIncome    decimal.Decimal `gorm:"column:annual_income;type:decimal(12,2);not null"`
	CreditScore     *int            `gorm:"column:credit_score"` // nil, пока рейтинг не рассчитан
	CreatedAt       time.Time       `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;default:CURRENT_TIMESTAMP"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate хук для валидации перед созданием
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if len(u.Name) < 2 || len(u.Name) > 100 {
		return errors.New("name must be between 2 and 100 characters")
	}
	if len(u.Email) < 3 || len(u.Email) > 100 {
		return errors.New("email must be between 3 and 100 characters")
	}
	if u.AadharHMAC == "" {
		return errors.New("aadhar hmac is required")
	}
	return nil
}
