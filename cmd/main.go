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

	cancelBookingHandler "github.com/lotos-studio/LOTOS-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/lotos-studio/LOTOS-BookingService/internal/api/handlers/create_booking"
	createServiceHandler "github.com/lotos-studio/LOTOS-BookingService/internal/api/handlers/create_service"
	deleteServiceHandler "github.com/lotos-studio/LOTOS-BookingService/internal/api/handlers/delete_service"
	getAvailableSlotsHandler "github.com/lotos-studio/LOTOS-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/lotos-studio/LOTOS-BookingService/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/lotos-studio/LOTOS-BookingService/internal/api/handlers/get_client_bookings"
	getSettingsHandler "github.com/lotos-studio/LOTOS-BookingService/internal/api/handlers/get_settings"
	getSiteInfoHandler "github.com/lotos-studio/LOTOS-BookingService/internal/api/handlers/get_site_info"
	getStudioBookingsHandler "github.com/lotos-studio/LOTOS-BookingService/internal/api/handlers/get_studio_bookings"
	listClientsHandler "github.com/lotos-studio/LOTOS-BookingService/internal/api/handlers/list_clients"
	listServicesHandler "github.com/lotos-studio/LOTOS-BookingService/internal/api/handlers/list_services"
	revenueReportHandler "github.com/lotos-studio/LOTOS-BookingService/internal/api/handlers/revenue_report"
	updateBookingHandler "github.com/lotos-studio/LOTOS-BookingService/internal/api/handlers/update_booking"
	updateClientHandler "github.com/lotos-studio/LOTOS-BookingService/internal/api/handlers/update_client"
	updateServiceHandler "github.com/lotos-studio/LOTOS-BookingService/internal/api/handlers/update_service"
	updateSettingsHandler "github.com/lotos-studio/LOTOS-BookingService/internal/api/handlers/update_settings"
	"github.com/lotos-studio/LOTOS-BookingService/internal/api/middleware"
	"github.com/lotos-studio/LOTOS-BookingService/internal/config"
	"github.com/lotos-studio/LOTOS-BookingService/internal/infra/cache"
	bookingRepo "github.com/lotos-studio/LOTOS-BookingService/internal/infra/storage/booking"
	clientRepo "github.com/lotos-studio/LOTOS-BookingService/internal/infra/storage/client"
	serviceRepo "github.com/lotos-studio/LOTOS-BookingService/internal/infra/storage/service"
	settingsRepo "github.com/lotos-studio/LOTOS-BookingService/internal/infra/storage/settings"
	bookingsService "github.com/lotos-studio/LOTOS-BookingService/internal/service/bookings"
	catalogService "github.com/lotos-studio/LOTOS-BookingService/internal/service/catalog"
	clientsService "github.com/lotos-studio/LOTOS-BookingService/internal/service/clients"
	settingsService "github.com/lotos-studio/LOTOS-BookingService/internal/service/settings"
	createBookingUC "github.com/lotos-studio/LOTOS-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/lotos-studio/LOTOS-BookingService/internal/usecase/get_available_slots"
	"github.com/lotos-studio/LOTOS-BookingService/pkg/dbmetrics"
	"github.com/lotos-studio/LOTOS-BookingService/pkg/logger"
	"github.com/lotos-studio/LOTOS-BookingService/pkg/metrics"
	"github.com/lotos-studio/LOTOS-BookingService/pkg/simpletxmanager"
	"github.com/lotos-studio/LOTOS-BookingService/pkg/txmanager"
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

	log.Info("Starting LOTOS-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		serviceRepository  *serviceRepo.Repository
		settingsRepository *settingsRepo.Repository
		clientRepository   *clientRepo.Repository
		txMgr              settingsService.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		clientRepository = clientRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		clientRepository = clientRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Redis-кэш для настроек и каталога (опционален)
	catalogStore := catalogService.ServiceRepository(serviceRepository)
	settingsStore := settingsService.SettingsRepository(settingsRepository)

	if cfg.Cache.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		settingsStore = cache.NewSettingsCache(settingsRepository, redisClient,
			time.Duration(cfg.Cache.ConfigTTL)*time.Second, log)
		catalogStore = cache.NewCatalogCache(serviceRepository, redisClient,
			time.Duration(cfg.Cache.CatalogTTL)*time.Second, log)
		log.Info("Redis cache enabled (addr=%s, config_ttl=%ds, catalog_ttl=%ds)",
			cfg.Cache.Addr, cfg.Cache.ConfigTTL, cfg.Cache.CatalogTTL)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	catalogSvc := catalogService.NewService(catalogStore, log)
	settingsSvc := settingsService.NewService(settingsStore, txMgr, log)
	clientsSvc := clientsService.NewService(clientRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		catalogStore,
		settingsSvc,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogStore,
		clientRepository,
		settingsSvc,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	getStudioBookings := getStudioBookingsHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	revenueReport := revenueReportHandler.NewHandler(bookingSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	getSiteInfo := getSiteInfoHandler.NewHandler(settingsSvc, log)
	listClients := listClientsHandler.NewHandler(clientsSvc, log)
	updateClient := updateClientHandler.NewHandler(clientsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог услуг студии
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)

	// Доступные слоты для записи
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Публичная информация о студии
	api.HandleFunc("/site-info", getSiteInfo.Handle).Methods(http.MethodGet)

	// ============================================================
	// CLIENT ROUTES (требуют X-Client-Email header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования клиентом
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/my/bookings", getClientBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Server.AdminToken))

	// --- Бронирования ---
	admin.HandleFunc("/bookings", getStudioBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Каталог услуг ---
	admin.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/services/{serviceId}", updateService.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)

	// --- Настройки студии ---
	admin.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)

	// --- Отчеты ---
	admin.HandleFunc("/reports/revenue", revenueReport.Handle).Methods(http.MethodGet)

	// --- Клиентская база ---
	admin.HandleFunc("/clients", listClients.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/clients/{clientId}", updateClient.Handle).Methods(http.MethodPut)

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
