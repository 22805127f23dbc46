package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"creditApp/config"
	"creditApp/controllers"
	"creditApp/database"
	"creditApp/middleware"
	"creditApp/services"

	"github.com/gorilla/mux"
)

// homeHandler возвращает список доступных эндпоинтов
func homeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Credit Service API",
		"endpoints": map[string]string{
			"register":      "/api/register-user",
			"transactions":  "/api/transactions",
			"apply_loan":    "/api/apply-loan",
			"make_payment":  "/api/make-payment",
			"get_statement": "/api/get-statement",
		},
	})
}

func main() {
	// Инициализируем конфигурацию
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Инициализируем подключение к базе данных
	db, err := database.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer db.Close()

	// Инициализируем вспомогательные сервисы
	emailService := services.NewEmailService(cfg)
	cache := services.NewRedisCache(cfg.Redis.Addr)

	// Сервис кредитного рейтинга с асинхронной очередью
	scoreService := services.NewCreditScoreService(db.DB)
	scoreService.Start()
	log.Println("Обработчик кредитного рейтинга запущен")

	// Сервисы ядра
	emiService := services.NewEMIService()
	userService := services.NewUserService(db.DB, scoreService, cfg)
	loanService := services.NewLoanService(db.DB, emiService, emailService, cfg.Rates.DefaultBaseRate)
	billingService := services.NewBillingService(db.DB, emailService, cache)
	paymentService := services.NewPaymentService(db.DB, emailService, cache)
	statementService := services.NewStatementService(db.DB, cache)

	// Запускаем планировщик биллинга
	scheduler := services.NewBillingSchedulerService(billingService, cfg.Billing.SweepInterval)
	scheduler.Start()
	log.Println("Планировщик биллинга запущен")

	// Создаем роутер
	router := mux.NewRouter()
	router.Use(middleware.RecoveryMiddleware)
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.RateLimitMiddleware)

	// Инициализируем контроллеры
	userController := controllers.NewUserController(userService)
	loanController := controllers.NewLoanController(loanService, billingService)
	paymentController := controllers.NewPaymentController(paymentService)
	statementController := controllers.NewStatementController(statementService)

	// Маршруты
	router.HandleFunc("/", homeHandler).Methods("GET")
	router.HandleFunc("/api/register-user", userController.RegisterUser).Methods("POST")
	router.HandleFunc("/api/transactions", userController.RecordTransaction).Methods("POST")
	router.HandleFunc("/api/apply-loan", loanController.ApplyLoan).Methods("POST")
	router.HandleFunc("/api/loans/{id}/billing-cycle", loanController.GenerateBillingCycle).Methods("POST")
	router.HandleFunc("/api/make-payment", paymentController.MakePayment).Methods("POST")
	router.HandleFunc("/api/get-statement", statementController.GetStatement).Methods("GET")

	// Запускаем сервер
	port := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на порту %s", port)
	if err := http.ListenAndServe(port, router); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
