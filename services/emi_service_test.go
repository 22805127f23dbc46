package services

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestEMISchedule(t *testing.T) {
	s := NewEMIService()
	disbursement := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	entries, err := s.Schedule(decimal.NewFromInt(1200), decimal.NewFromInt(12), 12, disbursement)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if len(entries) != 12 {
		t.Fatalf("ожидалось 12 платежей, получено %d", len(entries))
	}

	// EMI = 1200 * 0.01 * 1.01^12 / (1.01^12 - 1) = 106.62
	want := decimal.NewFromFloat(106.62)
	for i, e := range entries {
		if !e.AmountDue.Equal(want) {
			t.Errorf("платеж %d: ожидалось %s, получено %s", i+1, want, e.AmountDue)
		}
	}

	// Даты с шагом 30 дней от даты выдачи
	if entries[0].Date != "2026-01-31" {
		t.Errorf("первый платеж: ожидалось 2026-01-31, получено %s", entries[0].Date)
	}
	first, _ := time.Parse("2006-01-02", entries[0].Date)
	for i := 1; i < len(entries); i++ {
		cur, _ := time.Parse("2006-01-02", entries[i].Date)
		if int(cur.Sub(first).Hours()/24) != 30*i {
			t.Errorf("платеж %d: дата %s не через %d дней от первого", i+1, entries[i].Date, 30*i)
		}
	}
}

func TestEMIScheduleZeroRate(t *testing.T) {
	s := NewEMIService()
	disbursement := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	entries, err := s.Schedule(decimal.NewFromInt(1200), decimal.Zero, 12, disbursement)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	// При нулевой ставке платеж равен P / n
	want := decimal.NewFromInt(100)
	for i, e := range entries {
		if !e.AmountDue.Equal(want) {
			t.Errorf("платеж %d: ожидалось %s, получено %s", i+1, want, e.AmountDue)
		}
	}
}

func TestEMIScheduleInvalidInput(t *testing.T) {
	s := NewEMIService()
	disbursement := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		principal decimal.Decimal
		rate      decimal.Decimal
		term      int
	}{
		{"нулевой срок", decimal.NewFromInt(1200), decimal.NewFromInt(12), 0},
		{"отрицательный срок", decimal.NewFromInt(1200), decimal.NewFromInt(12), -1},
		{"нулевая сумма", decimal.Zero, decimal.NewFromInt(12), 12},
		{"отрицательная ставка", decimal.NewFromInt(1200), decimal.NewFromInt(-1), 12},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.Schedule(tc.principal, tc.rate, tc.term, disbursement); !errors.Is(err, ErrArithmetic) {
				t.Errorf("ожидалась ошибка ErrArithmetic, получено %v", err)
			}
		})
	}
}
