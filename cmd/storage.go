package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-MachineReservations/internal/config"
	"github.com/m04kA/SMC-MachineReservations/internal/domain"
	"github.com/m04kA/SMC-MachineReservations/internal/infra/storage/memory"
	reservationRepo "github.com/m04kA/SMC-MachineReservations/internal/infra/storage/reservation"
	rulesRepo "github.com/m04kA/SMC-MachineReservations/internal/infra/storage/rules"
	"github.com/m04kA/SMC-MachineReservations/internal/infra/storage/schema"
	"github.com/m04kA/SMC-MachineReservations/pkg/dbmetrics"
	"github.com/m04kA/SMC-MachineReservations/pkg/logger"
	"github.com/m04kA/SMC-MachineReservations/pkg/metrics"
	"github.com/m04kA/SMC-MachineReservations/pkg/sqlbuilder"
	"github.com/m04kA/SMC-MachineReservations/pkg/txmanager"
)

// reservationRepository объединение интерфейсов, которые use cases и сервисы ждут от хранилища
type reservationRepository interface {
	Insert(ctx context.Context, res *domain.Reservation) error
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	Delete(ctx context.Context, id string) error
	FindOverlapping(ctx context.Context, interval domain.TimeInterval, machine *domain.MachineType) ([]*domain.Reservation, error)
	FindByCustomer(ctx context.Context, interval domain.TimeInterval, customer string, machine *domain.MachineType) ([]*domain.Reservation, error)
	LockAdmission(ctx context.Context, key string) error
}

type rulesRepository interface {
	LoadAll(ctx context.Context) (map[string]string, error)
	Upsert(ctx context.Context, name, value string) error
}

type transactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadCommitted(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage хранилище, выбранное по database.driver
type storage struct {
	reservations reservationRepository
	rules        rulesRepository
	txManager    transactionManager
	close        func()
}

func openStorage(
	ctx context.Context,
	cfg *config.Config,
	loc *time.Location,
	metricsCollector *metrics.Metrics,
	stopMetricsCh <-chan struct{},
	log *logger.Logger,
) (*storage, error) {
	if cfg.Database.Driver == config.DriverMemory {
		log.Warn("Using in-memory storage, reservations are lost on restart")
		return &storage{
			reservations: memory.NewReservationRepository(),
			rules:        memory.NewRulesRepository(nil),
			txManager:    memory.TxManager{},
			close:        func() {},
		}, nil
	}

	dialect, err := sqlbuilder.ParseDialect(cfg.Database.Driver)
	if err != nil {
		return nil, err
	}

	db, err := openDB(cfg.Database, dialect)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if dialect == sqlbuilder.Postgres {
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	} else {
		log.Info("Successfully opened sqlite database %s", cfg.Database.SQLitePath)
	}

	if cfg.Database.AutoMigrate {
		if err := schema.Apply(ctx, db, dialect); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		log.Info("Database migrations applied (%s)", dialect)
	}

	// Оборачиваем соединение метриками (если включены)
	var wrappedDB *dbmetrics.DB
	if metricsCollector != nil {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	var txOpts []txmanager.Option
	if dialect == sqlbuilder.SQLite {
		txOpts = append(txOpts, txmanager.WithoutIsolationLevels())
	}

	return &storage{
		reservations: reservationRepo.NewRepository(wrappedDB, dialect, loc),
		rules:        rulesRepo.NewRepository(wrappedDB, dialect),
		txManager:    txmanager.NewTransactionManager(wrappedDB, txOpts...),
		close: func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close database: %v", err)
			}
		},
	}, nil
}

func openDB(cfg config.DatabaseConfig, dialect sqlbuilder.Dialect) (*sql.DB, error) {
	switch dialect {
	case sqlbuilder.Postgres:
		db, err := sql.Open("postgres", cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
		return db, nil

	default:
		db, err := sql.Open("sqlite", cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		// SQLite допускает одного писателя, а :memory: живёт в пределах одного соединения
		db.SetMaxOpenConns(1)
		return db, nil
	}
}
