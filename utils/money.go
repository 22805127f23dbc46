package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	daysInYear   = decimal.NewFromInt(365)
	monthsFactor = decimal.NewFromInt(1200) // 12 месяцев * 100 (ставка в процентах)
	hundred      = decimal.NewFromInt(100)
)

// MonthlyRate возвращает месячную ставку в долях от годовой ставки в процентах
func MonthlyRate(aprPercent decimal.Decimal) decimal.Decimal {
	return aprPercent.Div(monthsFactor)
}

// DailyRate возвращает дневную ставку в процентах, округленную до 3 знаков
func DailyRate(aprPercent decimal.Decimal) decimal.Decimal {
	return aprPercent.Div(daysInYear).Round(3)
}

// PercentOf возвращает величину percent процентов от amount
func PercentOf(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Div(hundred)
}

// Round2 округляет денежную величину до 2 знаков.
// Единая точка округления: значения округляются один раз, при сохранении.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// DateOnly отбрасывает время, оставляя только дату (UTC)
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays возвращает дату через n дней
func AddDays(t time.Time, n int) time.Time {
	return DateOnly(t).AddDate(0, 0, n)
}

// DaysBetween возвращает количество полных дней между двумя датами
func DaysBetween(from, to time.Time) int {
	return int(DateOnly(to).Sub(DateOnly(from)).Hours() / 24)
}
