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
	"github.com/redis/go-redis/v9"

	confirmPaymentHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/confirm_payment"
	createReservationHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/create_reservation"
	getNotificationsHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/get_notifications"
	getOfferAvailabilityHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/get_offer_availability"
	getOffersAvailabilityHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/get_offers_availability"
	getReservationHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/get_reservation"
	getReservationStatsHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/get_reservation_stats"
	getReservationsHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/get_reservations"
	getUnreconciledHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/get_unreconciled_payments"
	initiatePaymentHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/initiate_payment"
	markMessageReadHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/mark_message_read"
	markNotificationReadHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/mark_notification_read"
	unsubscribeNotificationsHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/unsubscribe_notifications"
	verifyPaymentHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/verify_payment"
	"github.com/m04kA/SMC-TourBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TourBookingService/internal/config"
	confirmationRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/confirmation"
	readStateRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/readstate"
	backendClient "github.com/m04kA/SMC-TourBookingService/internal/integrations/backend"
	notificationsService "github.com/m04kA/SMC-TourBookingService/internal/service/notifications"
	reservationsService "github.com/m04kA/SMC-TourBookingService/internal/service/reservations"
	confirmPaymentUC "github.com/m04kA/SMC-TourBookingService/internal/usecase/confirm_payment"
	createReservationUC "github.com/m04kA/SMC-TourBookingService/internal/usecase/create_reservation"
	getOfferAvailabilityUC "github.com/m04kA/SMC-TourBookingService/internal/usecase/get_offer_availability"
	initiatePaymentUC "github.com/m04kA/SMC-TourBookingService/internal/usecase/initiate_payment"
	verifyPaymentUC "github.com/m04kA/SMC-TourBookingService/internal/usecase/verify_payment"
	"github.com/m04kA/SMC-TourBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TourBookingService/pkg/logger"
	"github.com/m04kA/SMC-TourBookingService/pkg/metrics"
	"github.com/m04kA/SMC-TourBookingService/pkg/migrator"
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

	log.Info("Starting SMC-TourBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены). При выключенных метриках
	// коллектор остается nil, его методы ничего не делают.
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных журнала подтверждений
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

	if err := migrator.RunMigrations(db, cfg.Database.MigrationsDir); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Migrations applied from %s", cfg.Database.MigrationsDir)

	// Подключаемся к Redis (прочитанные уведомления и сообщения)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		pingCancel()
		log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
	}
	pingCancel()
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	// Инициализируем клиента бэкенда
	backend := backendClient.NewClient(
		cfg.Backend.URL,
		time.Duration(cfg.Backend.Timeout)*time.Second,
		log,
	)
	log.Info("Backend client initialized (url=%s, timeout=%ds)", cfg.Backend.URL, cfg.Backend.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var ledger *confirmationRepo.Repository
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
		ledger = confirmationRepo.NewRepository(wrappedDB)
	} else {
		ledger = confirmationRepo.NewRepository(db)
	}
	readState := readStateRepo.NewRepository(redisClient)

	// Инициализируем use cases
	getOfferAvailabilityUseCase := getOfferAvailabilityUC.NewUseCase(backend, log)
	createReservationUseCase := createReservationUC.NewUseCase(backend, metricsCollector, cfg.Reservations.TTL(), log)
	initiatePaymentUseCase := initiatePaymentUC.NewUseCase(backend, log)
	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(backend, ledger, metricsCollector, log)
	verifyPaymentUseCase := verifyPaymentUC.NewUseCase(backend, ledger, confirmPaymentUseCase, log)

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(backend, log)

	pollers := notificationsService.NewRegistry(
		backend,
		readState,
		metricsCollector,
		cfg.Notifications.PollInterval(),
		cfg.Notifications.IdleTimeout(),
		log,
	)
	notificationSvc := notificationsService.NewService(pollers, readState, log)
	log.Info("Notification pollers: interval=%s, idle timeout=%s",
		cfg.Notifications.PollInterval(), cfg.Notifications.IdleTimeout())

	// Инициализируем handlers
	getOffersAvailability := getOffersAvailabilityHandler.NewHandler(getOfferAvailabilityUseCase, log)
	getOfferAvailability := getOfferAvailabilityHandler.NewHandler(getOfferAvailabilityUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservations := getReservationsHandler.NewHandler(reservationSvc, log)
	getReservationStats := getReservationStatsHandler.NewHandler(reservationSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	initiatePayment := initiatePaymentHandler.NewHandler(initiatePaymentUseCase, log)
	confirmPayment := confirmPaymentHandler.NewHandler(confirmPaymentUseCase, log)
	verifyPayment := verifyPaymentHandler.NewHandler(verifyPaymentUseCase, log)
	getUnreconciled := getUnreconciledHandler.NewHandler(verifyPaymentUseCase, log)
	getNotifications := getNotificationsHandler.NewHandler(notificationSvc, log)
	unsubscribeNotifications := unsubscribeNotificationsHandler.NewHandler(notificationSvc, log)
	markNotificationRead := markNotificationReadHandler.NewHandler(notificationSvc, log)
	markMessageRead := markMessageReadHandler.NewHandler(notificationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Остаток мест по предложениям
	api.HandleFunc("/offers/availability", getOffersAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/offers/{offerId}/availability", getOfferAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID и X-User-Role)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations", getReservations.Handle).Methods(http.MethodGet)
	// stats регистрируется раньше {reservationId}
	protected.HandleFunc("/reservations/stats", getReservationStats.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId:[0-9]+}", getReservation.Handle).Methods(http.MethodGet)

	// --- Платежи ---
	protected.HandleFunc("/payments", initiatePayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/payments/{paymentId}/confirm", confirmPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/payments/{paymentId}/verify", verifyPayment.Handle).Methods(http.MethodPost)

	// --- Уведомления ---
	protected.HandleFunc("/notifications", getNotifications.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/subscription", unsubscribeNotifications.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/notifications/{notificationId}/read", markNotificationRead.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/messages/{messageId}/read", markMessageRead.Handle).Methods(http.MethodPost)

	// --- Администрирование ---
	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/payments/unreconciled", getUnreconciled.Handle).Methods(http.MethodGet)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем опросчики уведомлений
	pollers.Close()
	log.Info("Notification pollers stopped")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
