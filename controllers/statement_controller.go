package controllers

import (
	"net/http"

	"creditApp/services"

	"github.com/google/uuid"
)

// StatementController отдает выписки по кредитам
type StatementController struct {
	statements *services.StatementService
}

// NewStatementController создает новый экземпляр StatementController
func NewStatementController(statements *services.StatementService) *StatementController {
	return &StatementController{statements: statements}
}

// GetStatement обрабатывает запрос выписки по кредиту
func (c *StatementController) GetStatement(w http.ResponseWriter, r *http.Request) {
	loanID, err := uuid.Parse(r.URL.Query().Get("loan_id"))
	if err != nil {
		http.Error(w, "Invalid loan ID", http.StatusBadRequest)
		return
	}

	statement, err := c.statements.GetStatement(loanID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"past_transactions":     statement.PastTransactions,
		"upcoming_transactions": statement.UpcomingTransactions,
	})
}
