package utils

import (
	"sync"
	"time"
)

// Metrics содержит метрики приложения
type Metrics struct {
	mu sync.RWMutex

	// Метрики запросов
	TotalRequests   int64
	FailedRequests  int64
	RequestLatency  time.Duration
	AverageLatency  time.Duration
	LastRequestTime time.Time

	// Метрики кредитного портфеля
	LoansIssued         int64
	LoansClosed         int64
	PaymentsAllocated   int64
	PrincipalPayments   int64
	BillingCyclesIssued int64
	LastSweepTime       time.Time

	// Метрики ошибок
	ErrorCount    int64
	LastErrorTime time.Time
	ErrorTypes    map[string]int64
}

var (
	metrics     *Metrics
	metricsOnce sync.Once
)

// GetMetrics возвращает экземпляр метрик
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			ErrorTypes: make(map[string]int64),
		}
	})
	return metrics
}

// RecordRequest записывает метрики запроса
func (m *Metrics) RecordRequest(duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalRequests++
	m.RequestLatency += duration
	m.AverageLatency = m.RequestLatency / time.Duration(m.TotalRequests)
	m.LastRequestTime = time.Now()

	if err != nil {
		m.FailedRequests++
		m.recordError(err)
	}
}

// RecordLoanIssued записывает выдачу кредита
func (m *Metrics) RecordLoanIssued() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoansIssued++
}

// RecordLoanClosed записывает погашение кредита
func (m *Metrics) RecordLoanClosed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoansClosed++
}

// RecordPayment записывает обработанный платеж
func (m *Metrics) RecordPayment(principalReduced bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PaymentsAllocated++
	if principalReduced {
		m.PrincipalPayments++
	}
}

// RecordBillingCycle записывает сформированный расчетный период
func (m *Metrics) RecordBillingCycle() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BillingCyclesIssued++
	m.LastSweepTime = time.Now()
}

// RecordError записывает метрики ошибки
func (m *Metrics) RecordError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordError(err)
}

func (m *Metrics) recordError(err error) {
	m.ErrorCount++
	m.LastErrorTime = time.Now()

	errorType := "unknown"
	if err != nil {
		errorType = err.Error()
	}
	m.ErrorTypes[errorType]++
}

// GetMetricsSnapshot возвращает снимок текущих метрик
func (m *Metrics) GetMetricsSnapshot() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"total_requests":        m.TotalRequests,
		"failed_requests":       m.FailedRequests,
		"average_latency":       m.AverageLatency,
		"loans_issued":          m.LoansIssued,
		"loans_closed":          m.LoansClosed,
		"payments_allocated":    m.PaymentsAllocated,
		"principal_payments":    m.PrincipalPayments,
		"billing_cycles_issued": m.BillingCyclesIssued,
		"last_sweep_time":       m.LastSweepTime,
		"error_count":           m.ErrorCount,
		"last_error_time":       m.LastErrorTime,
		"error_types":           m.ErrorTypes,
	}
}

// ResetMetrics сбрасывает все метрики
func (m *Metrics) ResetMetrics() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalRequests = 0
	m.FailedRequests = 0
	m.RequestLatency = 0
	m.AverageLatency = 0
	m.LoansIssued = 0
	m.LoansClosed = 0
	m.PaymentsAllocated = 0
	m.PrincipalPayments = 0
	m.BillingCyclesIssued = 0
	m.ErrorCount = 0
	m.ErrorTypes = make(map[string]int64)
}
