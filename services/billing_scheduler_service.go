package services

import (
	"time"
)

// BillingSchedulerService запускает периодический обход биллинга
type BillingSchedulerService struct {
	billing  *BillingService
	interval time.Duration
}

// NewBillingSchedulerService создает новый экземпляр BillingSchedulerService
func NewBillingSchedulerService(billing *BillingService, interval time.Duration) *BillingSchedulerService {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &BillingSchedulerService{
		billing:  billing,
		interval: interval,
	}
}

// Start запускает обход биллинга по расписанию
func (s *BillingSchedulerService) Start() {
	ticker := time.NewTicker(s.interval)
	go func() {
		for {
			select {
			case <-ticker.C:
				s.billing.ProcessBilling()
			}
		}
	}()
}
