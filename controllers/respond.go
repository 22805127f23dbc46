package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"creditApp/services"
)

// writeJSON отправляет успешный ответ. Поле error всегда присутствует
// и равно null при успехе.
func writeJSON(w http.ResponseWriter, status int, payload map[string]interface{}) {
	body := map[string]interface{}{"error": nil}
	for k, v := range payload {
		body[k] = v
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError отправляет ответ с ошибкой, подбирая HTTP-статус
// по типу ошибки сервиса
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, services.ErrLoanNotFound),
		errors.Is(err, services.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrNoPendingObligation),
		errors.Is(err, services.ErrInsufficientForPastDue),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrArithmetic),
		errors.Is(err, services.ErrCycleAlreadyBilled):
		status = http.StatusBadRequest
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{"error": err.Error()})
}
