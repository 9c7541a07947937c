package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/m04kA/SMC-MachineReservations/internal/domain"
	"github.com/m04kA/SMC-MachineReservations/pkg/types"
)

// Поддерживаемые драйверы хранилища
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

var (
	// ErrInvalidConfig возвращается, когда конфигурация не проходит проверку
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig           `toml:"server"`
	Database     DatabaseConfig         `toml:"database"`
	Logs         LogsConfig             `toml:"logs"`
	Metrics      MetricsConfig          `toml:"metrics"`
	Reservations ReservationsConfig     `toml:"reservations"`
	Rules        map[string]interface{} `toml:"rules"` // начальные значения бизнес-правил
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"SERVER_HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    int `toml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout     int `toml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
	ShutdownTimeout int `toml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig настройки хранилища
type DatabaseConfig struct {
	Driver          string `toml:"driver" env:"DATABASE_DRIVER"`
	Host            string `toml:"host" env:"DATABASE_HOST"`
	Port            int    `toml:"port" env:"DATABASE_PORT"`
	User            string `toml:"user" env:"DATABASE_USER"`
	Password        string `toml:"password" env:"DATABASE_PASSWORD"`
	DBName          string `toml:"dbname" env:"DATABASE_NAME"`
	SSLMode         string `toml:"sslmode" env:"DATABASE_SSLMODE"`
	SQLitePath      string `toml:"sqlite_path" env:"DATABASE_SQLITE_PATH"`
	MaxOpenConns    int    `toml:"max_open_conns" env:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" env:"DATABASE_MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" env:"DATABASE_CONN_MAX_LIFETIME"` // секунды
	AutoMigrate     bool   `toml:"auto_migrate" env:"DATABASE_AUTO_MIGRATE"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level" env:"LOGS_LEVEL"`
	File  string `toml:"file" env:"LOGS_FILE"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"METRICS_ENABLED"`
	Path        string `toml:"path" env:"METRICS_PATH"`
	ServiceName string `toml:"service_name" env:"METRICS_SERVICE_NAME"`
}

// ReservationsConfig настройки бронирований
type ReservationsConfig struct {
	// Timezone часовой пояс, в котором разбираются интервалы и определяется день недели
	Timezone string `toml:"timezone" env:"RESERVATIONS_TIMEZONE"`
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Driver:          DriverSQLite,
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			SQLitePath:      "reservations.db",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			AutoMigrate:     true,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "machine-reservations",
		},
		Reservations: ReservationsConfig{
			Timezone: "UTC",
		},
	}
}

// Load читает конфигурацию: значения по умолчанию, затем TOML файл, затем переменные окружения.
// Пустой path означает "без файла".
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode config file %s: %w", path, err)
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read config from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOptional как Load, но отсутствующий файл не является ошибкой
func LoadOptional(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Load("")
	}
	return Load(path)
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("%w: unknown database driver %q, expected postgres, sqlite or memory",
			ErrInvalidConfig, c.Database.Driver)
	}

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: http_port %d is out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}

	if c.Database.Driver == DriverSQLite && c.Database.SQLitePath == "" {
		return fmt.Errorf("%w: sqlite_path is required for the sqlite driver", ErrInvalidConfig)
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if _, err := c.BusinessRules(); err != nil {
		return fmt.Errorf("%w: rules: %v", ErrInvalidConfig, err)
	}

	return nil
}

// DSN строка подключения к postgres
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Location часовой пояс бронирований
func (c *Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Reservations.Timezone)
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", name, err)
	}
	return loc, nil
}

// BusinessRules правила по умолчанию с наложенной секцией [rules]
func (c *Config) BusinessRules() (domain.BusinessRules, error) {
	rules := domain.DefaultBusinessRules()

	names := make([]string, 0, len(c.Rules))
	for name := range c.Rules {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, raw := range names {
		name, err := domain.ParseRuleName(raw)
		if err != nil {
			return domain.BusinessRules{}, err
		}
		if err := rules.Set(name, types.ParseRuleValue(fmt.Sprint(c.Rules[raw]))); err != nil {
			return domain.BusinessRules{}, err
		}
	}

	if err := rules.Validate(); err != nil {
		return domain.BusinessRules{}, err
	}
	return rules, nil
}
