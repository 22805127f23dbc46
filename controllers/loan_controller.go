package controllers

import (
	"encoding/json"
	"net/http"

	"creditApp/services"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// LoanController обрабатывает запросы, связанные с кредитами
type LoanController struct {
	loans   *services.LoanService
	billing *services.BillingService
}

// NewLoanController создает новый экземпляр LoanController
func NewLoanController(loans *services.LoanService, billing *services.BillingService) *LoanController {
	return &LoanController{
		loans:   loans,
		billing: billing,
	}
}

// ApplyLoan обрабатывает заявку на кредит
func (c *LoanController) ApplyLoan(w http.ResponseWriter, r *http.Request) {
	var dto services.ApplyLoanDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := c.loans.Create(dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"loan_id":   resp.LoanID,
		"due_dates": resp.DueDates,
	})
}

// GenerateBillingCycle формирует расчетный период по кредиту вручную.
// Тот же код выполняет ежедневный планировщик.
func (c *LoanController) GenerateBillingCycle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	loanID, err := uuid.Parse(vars["id"])
	if err != nil {
		http.Error(w, "Invalid loan ID", http.StatusBadRequest)
		return
	}

	cycle, err := c.billing.GenerateBillingCycle(loanID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"billing_date": cycle.BillingDate.Format("2006-01-02"),
		"due_date":     cycle.DueDate.Format("2006-01-02"),
		"min_due":      cycle.MinDue,
	})
}
