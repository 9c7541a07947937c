package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelReservationHandler "github.com/m04kA/SMC-MachineReservations/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/SMC-MachineReservations/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/m04kA/SMC-MachineReservations/internal/api/handlers/get_available_slots"
	getBusinessRulesHandler "github.com/m04kA/SMC-MachineReservations/internal/api/handlers/get_business_rules"
	getReservationHandler "github.com/m04kA/SMC-MachineReservations/internal/api/handlers/get_reservation"
	listReservationsHandler "github.com/m04kA/SMC-MachineReservations/internal/api/handlers/list_reservations"
	updateBusinessRuleHandler "github.com/m04kA/SMC-MachineReservations/internal/api/handlers/update_business_rule"
	"github.com/m04kA/SMC-MachineReservations/internal/api/middleware"
	"github.com/m04kA/SMC-MachineReservations/internal/config"
	reservationsService "github.com/m04kA/SMC-MachineReservations/internal/service/reservations"
	rulesService "github.com/m04kA/SMC-MachineReservations/internal/service/rules"
	admitReservationUC "github.com/m04kA/SMC-MachineReservations/internal/usecase/admit_reservation"
	cancelReservationUC "github.com/m04kA/SMC-MachineReservations/internal/usecase/cancel_reservation"
	getAvailableSlotsUC "github.com/m04kA/SMC-MachineReservations/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-MachineReservations/pkg/keymutex"
	"github.com/m04kA/SMC-MachineReservations/pkg/logger"
	"github.com/m04kA/SMC-MachineReservations/pkg/metrics"
)

const defaultConfigPath = "config.toml"

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	// Загружаем конфигурацию
	cfg, err := config.LoadOptional(configPath)
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

	log.Info("Starting SMC-MachineReservations...")
	log.Info("Configuration loaded (path=%s, driver=%s, timezone=%s)",
		configPath, cfg.Database.Driver, cfg.Reservations.Timezone)

	// Validate уже проверил часовой пояс и правила
	loc, _ := cfg.Location()
	defaultRules, _ := cfg.BusinessRules()

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	// Подключаем хранилище
	store, err := openStorage(startupCtx, cfg, loc, metricsCollector, stopMetricsCh, log)
	if err != nil {
		log.Fatal("Failed to open storage: %v", err)
	}
	defer store.close()

	// Загружаем бизнес-правила: значения из БД поверх значений из конфигурации
	rulesStore := rulesService.NewStore(store.rules, defaultRules, metricsCollector, log)
	if _, err := rulesStore.Load(startupCtx); err != nil {
		log.Fatal("Failed to load business rules: %v", err)
	}

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(store.reservations, loc, log)

	// Инициализируем use cases
	admitReservationUseCase := admitReservationUC.NewUseCase(
		store.reservations,
		rulesStore,
		store.txManager,
		keymutex.New(),
		metricsCollector,
		loc,
		log,
	)

	cancelReservationUseCase := cancelReservationUC.NewUseCase(
		store.reservations,
		rulesStore,
		store.txManager,
		metricsCollector,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		store.reservations,
		rulesStore,
		loc,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(admitReservationUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBusinessRules := getBusinessRulesHandler.NewHandler(rulesStore, log)
	updateBusinessRule := updateBusinessRuleHandler.NewHandler(rulesStore, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Бронирования ---
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId}", cancelReservation.Handle).Methods(http.MethodDelete)

	// Доступность машины по слотам на день
	api.HandleFunc("/machines/{machine}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Бизнес-правила ---
	api.HandleFunc("/business-rules", getBusinessRules.Handle).Methods(http.MethodGet)
	api.HandleFunc("/business-rules/{rule}", getBusinessRules.HandleByName).Methods(http.MethodGet)
	api.HandleFunc("/business-rules", updateBusinessRule.Handle).Methods(http.MethodPost)

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
