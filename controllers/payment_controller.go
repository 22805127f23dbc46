package controllers

import (
	"encoding/json"
	"net/http"

	"creditApp/services"
)

// PaymentController обрабатывает платежи по кредитам
type PaymentController struct {
	payments *services.PaymentService
}

// NewPaymentController создает новый экземпляр PaymentController
func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{payments: payments}
}

// MakePayment обрабатывает запрос на платеж по кредиту
func (c *PaymentController) MakePayment(w http.ResponseWriter, r *http.Request) {
	var dto services.MakePaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if _, err := c.payments.MakePayment(dto); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, nil)
}
