package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelReservationHandler "github.com/kovaldn/ArenaBookingService/internal/api/handlers/cancel_reservation"
	checkAvailabilityHandler "github.com/kovaldn/ArenaBookingService/internal/api/handlers/check_availability"
	createBlockedPeriodHandler "github.com/kovaldn/ArenaBookingService/internal/api/handlers/create_blocked_period"
	createReservationHandler "github.com/kovaldn/ArenaBookingService/internal/api/handlers/create_reservation"
	deleteBlockedPeriodHandler "github.com/kovaldn/ArenaBookingService/internal/api/handlers/delete_blocked_period"
	getAvailabilityHandler "github.com/kovaldn/ArenaBookingService/internal/api/handlers/get_availability"
	getReservationHandler "github.com/kovaldn/ArenaBookingService/internal/api/handlers/get_reservation"
	getSiteReservationsHandler "github.com/kovaldn/ArenaBookingService/internal/api/handlers/get_site_reservations"
	getUserReservationsHandler "github.com/kovaldn/ArenaBookingService/internal/api/handlers/get_user_reservations"
	paymentWebhookHandler "github.com/kovaldn/ArenaBookingService/internal/api/handlers/payment_webhook"
	updateOpeningHoursHandler "github.com/kovaldn/ArenaBookingService/internal/api/handlers/update_opening_hours"
	"github.com/kovaldn/ArenaBookingService/internal/api/middleware"
	"github.com/kovaldn/ArenaBookingService/internal/config"
	courtRepo "github.com/kovaldn/ArenaBookingService/internal/infra/storage/court"
	paymentRepo "github.com/kovaldn/ArenaBookingService/internal/infra/storage/payment"
	reservationRepo "github.com/kovaldn/ArenaBookingService/internal/infra/storage/reservation"
	siteRepo "github.com/kovaldn/ArenaBookingService/internal/infra/storage/site"
	paymentGatewayClient "github.com/kovaldn/ArenaBookingService/internal/integrations/paymentgateway"
	userServiceClient "github.com/kovaldn/ArenaBookingService/internal/integrations/userservice"
	paymentsService "github.com/kovaldn/ArenaBookingService/internal/service/payments"
	reservationsService "github.com/kovaldn/ArenaBookingService/internal/service/reservations"
	scheduleService "github.com/kovaldn/ArenaBookingService/internal/service/schedule"
	createReservationUC "github.com/kovaldn/ArenaBookingService/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/kovaldn/ArenaBookingService/internal/usecase/get_availability"
	"github.com/kovaldn/ArenaBookingService/pkg/dbmetrics"
	"github.com/kovaldn/ArenaBookingService/pkg/logger"
	"github.com/kovaldn/ArenaBookingService/pkg/metrics"
	"github.com/kovaldn/ArenaBookingService/pkg/simpletxmanager"
	"github.com/kovaldn/ArenaBookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting ArenaBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	gatewayClient := paymentGatewayClient.NewClient(
		cfg.PaymentGateway.SecretKey,
		cfg.PaymentGateway.WebhookSecret,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		siteRepository        *siteRepo.Repository
		courtRepository       *courtRepo.Repository
		reservationRepository *reservationRepo.Repository
		paymentRepository     *paymentRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		siteRepository = siteRepo.NewRepository(wrappedDB)
		courtRepository = courtRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		siteRepository = siteRepo.NewRepository(db)
		courtRepository = courtRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		courtRepository,
		siteRepository,
		paymentRepository,
		gatewayClient,
		userClient,
		&reservationsService.RealTimeProvider{},
		log,
	)
	scheduleSvc := scheduleService.NewService(
		siteRepository,
		courtRepository,
		userClient,
		txMgr,
		log,
	)
	paymentsSvc := paymentsService.NewService(
		paymentRepository,
		reservationRepository,
		txMgr,
		&paymentsService.RealTimeProvider{},
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		courtRepository,
		paymentRepository,
		gatewayClient,
		txMgr,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.New(
		reservationRepository,
		courtRepository,
		siteRepository,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationsSvc, log)
	getSiteReservations := getSiteReservationsHandler.NewHandler(reservationsSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	updateOpeningHours := updateOpeningHoursHandler.NewHandler(scheduleSvc, log)
	createBlockedPeriod := createBlockedPeriodHandler.NewHandler(scheduleSvc, log)
	deleteBlockedPeriod := deleteBlockedPeriodHandler.NewHandler(scheduleSvc, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(gatewayClient, paymentsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные интервалы площадки
	api.HandleFunc("/courts/{courtId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Точечная проверка слота
	api.HandleFunc("/courts/{courtId}/check-availability", checkAvailability.Handle).Methods(http.MethodPost)

	// Нотификации платежного шлюза (подпись проверяется в обработчике)
	api.HandleFunc("/payments/webhook", paymentWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Управление комплексом (для менеджеров) ---
	protected.HandleFunc("/sites/{siteId}/reservations", getSiteReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/sites/{siteId}/opening-hours", updateOpeningHours.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/courts/{courtId}/blocked-periods", createBlockedPeriod.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/courts/{courtId}/blocked-periods/{periodId}", deleteBlockedPeriod.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
