package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/bookflow/bookflow-api/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/bookflow/bookflow-api/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/bookflow/bookflow-api/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/bookflow/bookflow-api/internal/api/handlers/get_booking"
	listBookingsHandler "github.com/bookflow/bookflow-api/internal/api/handlers/list_bookings"
	listEmployeesHandler "github.com/bookflow/bookflow-api/internal/api/handlers/list_employees"
	listLocationsHandler "github.com/bookflow/bookflow-api/internal/api/handlers/list_locations"
	listServicesHandler "github.com/bookflow/bookflow-api/internal/api/handlers/list_services"
	updateBookingStatusHandler "github.com/bookflow/bookflow-api/internal/api/handlers/update_booking_status"
	"github.com/bookflow/bookflow-api/internal/api/middleware"
	"github.com/bookflow/bookflow-api/internal/config"
	"github.com/bookflow/bookflow-api/internal/domain"
	bookingRepo "github.com/bookflow/bookflow-api/internal/infra/storage/booking"
	catalogRepo "github.com/bookflow/bookflow-api/internal/infra/storage/catalog"
	"github.com/bookflow/bookflow-api/internal/infra/storage/memstore"
	bookingsService "github.com/bookflow/bookflow-api/internal/service/bookings"
	catalogService "github.com/bookflow/bookflow-api/internal/service/catalog"
	createBookingUC "github.com/bookflow/bookflow-api/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/bookflow/bookflow-api/internal/usecase/get_available_slots"
	"github.com/bookflow/bookflow-api/pkg/dbmetrics"
	"github.com/bookflow/bookflow-api/pkg/logger"
	"github.com/bookflow/bookflow-api/pkg/metrics"
	"github.com/bookflow/bookflow-api/pkg/simpletxmanager"
	"github.com/bookflow/bookflow-api/pkg/txmanager"
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

	log.Info("Starting bookflow-api...")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled for service %s", cfg.Metrics.ServiceName)
	}

	// Зависимости, различающиеся между Postgres и demo-режимом
	var (
		catalogStoreSlots  getAvailableSlotsUC.CatalogStore
		bookingStoreSlots  getAvailableSlotsUC.BookingStore
		catalogStoreCreate createBookingUC.CatalogStore
		bookingStoreCreate createBookingUC.BookingStore
		txMgr              createBookingUC.TransactionManager
		bookingsRepository bookingsService.BookingRepository
		catalogRepository  catalogService.CatalogRepository
	)

	if cfg.Database.InMemory() {
		// Demo-режим: in-memory хранилище с предзаполненным каталогом
		store := memstore.NewWithFixtures()
		catalogStoreSlots = store
		bookingStoreSlots = store
		catalogStoreCreate = store
		bookingStoreCreate = store
		txMgr = store
		bookingsRepository = store
		catalogRepository = store
		log.Warn("Database host is empty, running in demo mode with in-memory storage")
	} else {
		// Подключаемся к базе данных
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)

		if cfg.Metrics.Enabled {
			wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
			log.Info("Database metrics collection started")

			bookings := bookingRepo.NewRepository(wrappedDB)
			catalog := catalogRepo.NewRepository(wrappedDB)
			catalogStoreSlots = catalog
			bookingStoreSlots = bookings
			catalogStoreCreate = catalog
			bookingStoreCreate = bookings
			bookingsRepository = bookings
			catalogRepository = catalog
			txMgr = txmanager.NewTransactionManager(wrappedDB)
		} else {
			bookings := bookingRepo.NewRepository(db)
			catalog := catalogRepo.NewRepository(db)
			catalogStoreSlots = catalog
			bookingStoreSlots = bookings
			catalogStoreCreate = catalog
			bookingStoreCreate = bookings
			bookingsRepository = bookings
			catalogRepository = catalog
			txMgr = simpletxmanager.NewTransactionManager(db)
		}
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingsRepository, log)
	catalogSvc := catalogService.NewService(catalogRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		catalogStoreCreate,
		bookingStoreCreate,
		txMgr,
		domain.BookingStatus(cfg.Booking.DefaultStatus),
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		catalogStoreSlots,
		bookingStoreSlots,
		cfg.Booking.StepMinutes,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	listEmployees := listEmployeesHandler.NewHandler(catalogSvc, log)
	listLocations := listLocationsHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.NewMetrics(metricsCollector).Middleware)
		r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at /metrics")
	}

	// Health check (публичный, без аутентификации)
	r.HandleFunc("/health", handleHealth).Methods(http.MethodGet)

	// Все API-маршруты требуют API-ключ и подчиняются общему лимиту запросов
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.NewAuth(cfg.Auth.APIKeys, log).Middleware)
	api.Use(middleware.NewRateLimiter(cfg.Booking.RateLimitPerMinute, log).Middleware)

	// Каталог
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/employees", listEmployees.Handle).Methods(http.MethodGet)
	api.HandleFunc("/locations", listLocations.Handle).Methods(http.MethodGet)

	// Доступные слоты
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования под отдельным, более жестким лимитом
	bookingWrite := api.PathPrefix("/bookings").Subrouter()
	bookingWrite.Use(middleware.NewRateLimiter(cfg.Booking.BookingRateLimitPerMinute, log).Middleware)
	bookingWrite.HandleFunc("", createBooking.Handle).Methods(http.MethodPost)

	// Чтение и управление бронированиями
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", updateBookingStatus.Handle).Methods(http.MethodPut)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
