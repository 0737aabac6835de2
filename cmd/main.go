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

	createAbsenceHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/create_absence"
	createBookingHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/create_booking"
	createClosureHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/create_closure"
	createRuleHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/create_rule"
	getAccountBookingsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_account_bookings"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_booking"
	getRuleHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_rule"
	listServiceRulesHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/list_service_rules"
	rejectBookingHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/reject_booking"
	setRuleEnabledHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/set_rule_enabled"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/catalog"
	conflictRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/conflict"
	ruleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/rule"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/notifications"
	bookingsService "github.com/m04kA/SMC-AvailabilityService/internal/service/bookings"
	scheduleService "github.com/m04kA/SMC-AvailabilityService/internal/service/schedule"
	slotsService "github.com/m04kA/SMC-AvailabilityService/internal/service/slots"
	createBookingUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

// bookingNotifier публикует события о бронированиях
type bookingNotifier interface {
	createBookingUC.Notifier
	bookingsService.Notifier
	Close() error
}

func main() {
	// Загружаем конфигурацию
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-AvailabilityService...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Booking.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	// При выключенных метриках коллектор остаётся nil
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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем публикатор событий
	var notifier bookingNotifier = notifications.Noop{}
	if cfg.Notifications.Enabled {
		publisher, err := notifications.Dial(
			cfg.Notifications.URL,
			cfg.Notifications.Exchange,
			time.Duration(cfg.Notifications.Timeout)*time.Second,
			log,
		)
		if err != nil {
			log.Fatal("Failed to connect to message broker: %v", err)
		}
		notifier = publisher
		log.Info("Booking events are published to exchange %q", cfg.Notifications.Exchange)
	}
	defer notifier.Close()

	// Инициализируем репозитории
	ruleRepository := ruleRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	closureRepository := conflictRepo.NewClosureRepository(wrappedDB)
	absenceRepository := conflictRepo.NewAbsenceRepository(wrappedDB)

	// Инициализируем сервисы
	slotsSvc := slotsService.NewService(
		ruleRepository,
		closureRepository,
		absenceRepository,
		bookingRepository,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		notifier,
		txMgr,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		ruleRepository,
		closureRepository,
		absenceRepository,
		catalogRepository,
		location,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		slotsSvc,
		catalogRepository,
		metricsCollector,
		getAvailableSlotsUC.WindowPolicy{
			MinNoticeDays: cfg.Booking.MinNoticeDays,
			HorizonDays:   cfg.Booking.HorizonDays,
			MaxWindowDays: cfg.Booking.MaxWindowDays,
			Location:      location,
		},
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		ruleRepository,
		bookingRepository,
		slotsSvc,
		notifier,
		metricsCollector,
		txMgr,
		createBookingUC.Policy{
			MinNoticeDays: cfg.Booking.MinNoticeDays,
			HorizonDays:   cfg.Booking.HorizonDays,
			Location:      location,
		},
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, location, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	rejectBooking := rejectBookingHandler.NewHandler(bookingSvc, log)
	getAccountBookings := getAccountBookingsHandler.NewHandler(bookingSvc, log)
	createRule := createRuleHandler.NewHandler(scheduleSvc, log)
	getRule := getRuleHandler.NewHandler(scheduleSvc, log)
	setRuleEnabled := setRuleEnabledHandler.NewHandler(scheduleSvc, log)
	listServiceRules := listServiceRulesHandler.NewHandler(scheduleSvc, log)
	createClosure := createClosureHandler.NewHandler(scheduleSvc, log)
	createAbsence := createAbsenceHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

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

	// Получение доступных слотов услуги
	var slotsHandler http.Handler = http.HandlerFunc(getAvailableSlots.Handle)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, metricsCollector, log)
		slotsHandler = limiter.Middleware(slotsHandler)
		log.Info("Rate limiter enabled for available slots (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	api.Handle("/services/{serviceId}/available-slots", slotsHandler).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/reject", rejectBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/accounts/{accountId}/bookings", getAccountBookings.Handle).Methods(http.MethodGet)

	// --- Расписание (для сотрудников) ---
	protected.HandleFunc("/rules", createRule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/rules/{ruleId}", getRule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/rules/{ruleId}/enabled", setRuleEnabled.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/services/{serviceId}/rules", listServiceRules.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/closures", createClosure.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/absences", createAbsence.Handle).Methods(http.MethodPost)

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
	close(stopMetricsCh)

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
