package services

import (
	"time"

	"creditApp/utils"

	"github.com/shopspring/decimal"
)

// EMIEntryDTO представляет один платеж графика погашения
type EMIEntryDTO struct {
	Date      string          `json:"date"`
	AmountDue decimal.Decimal `json:"amount_due"`
}

// EMIService рассчитывает график аннуитетных платежей
type EMIService struct{}

// NewEMIService создает новый экземпляр EMIService
func NewEMIService() *EMIService {
	return &EMIService{}
}

// Schedule строит график из termMonths платежей с шагом в 30 дней
// от даты выдачи. Суммы округляются до 2 знаков только для отображения.
func (s *EMIService) Schedule(principal, aprPercent decimal.Decimal, termMonths int, disbursementDate time.Time) ([]EMIEntryDTO, error) {
	if termMonths <= 0 || principal.LessThanOrEqual(decimal.Zero) || aprPercent.IsNegative() {
		return nil, ErrArithmetic
	}

	emi, err := s.calculateInstallment(principal, aprPercent, termMonths)
	if err != nil {
		return nil, err
	}

	// Формируем даты платежей: дата выдачи + 30*k дней
	entries := make([]EMIEntryDTO, termMonths)
	for k := 1; k <= termMonths; k++ {
		entries[k-1] = EMIEntryDTO{
			Date:      utils.AddDays(disbursementDate, 30*k).Format("2006-01-02"),
			AmountDue: utils.Round2(emi),
		}
	}

	return entries, nil
}

// calculateInstallment рассчитывает размер аннуитетного платежа:
// EMI = P * r * (1+r)^n / ((1+r)^n - 1), где r — месячная ставка в долях
func (s *EMIService) calculateInstallment(principal, aprPercent decimal.Decimal, termMonths int) (decimal.Decimal, error) {
	monthlyRate := utils.MonthlyRate(aprPercent)
	term := decimal.NewFromInt(int64(termMonths))

	// При нулевой ставке формула вырождается в P / n
	if monthlyRate.IsZero() {
		return principal.Div(term), nil
	}

	one := decimal.NewFromInt(1)
	compound := one.Add(monthlyRate).Pow(term)
	denominator := compound.Sub(one)
	if denominator.IsZero() {
		return decimal.Zero, ErrArithmetic
	}

	return principal.Mul(monthlyRate).Mul(compound).Div(denominator), nil
}
