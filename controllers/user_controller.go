package controllers

import (
	"encoding/json"
	"net/http"

	"creditApp/services"
)

// UserController обрабатывает запросы регистрации и операций по счету
type UserController struct {
	users *services.UserService
}

// NewUserController создает новый экземпляр UserController
func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// RegisterUser обрабатывает запрос на регистрацию заемщика
func (c *UserController) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var dto services.RegisterUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := c.users.Register(dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"unique_user_id": resp.UniqueUserID,
	})
}

// RecordTransaction обрабатывает запрос на сохранение операции по счету
func (c *UserController) RecordTransaction(w http.ResponseWriter, r *http.Request) {
	var dto services.RecordTransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := c.users.RecordTransaction(dto); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, nil)
}
