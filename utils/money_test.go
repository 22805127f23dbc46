package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestMonthlyRate(t *testing.T) {
	rate := MonthlyRate(decimal.NewFromInt(12))
	if !rate.Equal(decimal.NewFromFloat(0.01)) {
		t.Errorf("месячная ставка: ожидалось 0.01, получено %s", rate)
	}
}

func TestDailyRate(t *testing.T) {
	cases := []struct {
		apr  float64
		want float64
	}{
		{12, 0.033},  // 12/365 = 0.0328... -> 0.033
		{15, 0.041},  // 15/365 = 0.0410...
		{36.5, 0.1},  // ровно 0.1
		{0, 0},
	}

	for _, tc := range cases {
		got := DailyRate(decimal.NewFromFloat(tc.apr))
		if !got.Equal(decimal.NewFromFloat(tc.want)) {
			t.Errorf("APR %v: ожидалось %v, получено %s", tc.apr, tc.want, got)
		}
	}
}

func TestPercentOf(t *testing.T) {
	got := PercentOf(decimal.NewFromInt(1000), decimal.NewFromInt(3))
	if !got.Equal(decimal.NewFromInt(30)) {
		t.Errorf("3%% от 1000: ожидалось 30, получено %s", got)
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{9.899, 9.90},
		{9.895, 9.90},
		{9.894, 9.89},
		{10, 10},
	}

	for _, tc := range cases {
		got := Round2(decimal.NewFromFloat(tc.in))
		if !got.Equal(decimal.NewFromFloat(tc.want)) {
			t.Errorf("Round2(%v): ожидалось %v, получено %s", tc.in, tc.want, got)
		}
	}
}

func TestDateHelpers(t *testing.T) {
	base := time.Date(2026, 8, 30, 15, 42, 7, 0, time.Local)

	day := DateOnly(base)
	if day.Hour() != 0 || day.Minute() != 0 || day.Second() != 0 {
		t.Errorf("DateOnly должна отбрасывать время: %s", day)
	}

	next := AddDays(base, 30)
	if DaysBetween(base, next) != 30 {
		t.Errorf("DaysBetween: ожидалось 30, получено %d", DaysBetween(base, next))
	}

	if DaysBetween(next, base) != -30 {
		t.Errorf("DaysBetween в обратную сторону: ожидалось -30, получено %d", DaysBetween(next, base))
	}

	// Переход через границу месяца
	jan := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := AddDays(jan, 30)
	if feb.Format("2006-01-02") != "2026-02-14" {
		t.Errorf("AddDays через месяц: получено %s", feb.Format("2006-01-02"))
	}
}
