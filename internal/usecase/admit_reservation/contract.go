package admit_reservation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-MachineReservations/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	FindOverlapping(ctx context.Context, interval domain.TimeInterval, machine *domain.MachineType) ([]*domain.Reservation, error)
	Insert(ctx context.Context, res *domain.Reservation) error
	LockAdmission(ctx context.Context, key string) error
}

// RulesProvider источник актуального снимка бизнес-правил
type RulesProvider interface {
	Snapshot() domain.BusinessRules
}

// TransactionManager интерфейс для управления транзакциями.
// Допуск идёт в READ COMMITTED: группу сериализует advisory-блокировка, а чтение после неё
// должно видеть бронирования, зафиксированные пока транзакция ждала блокировку.
type TransactionManager interface {
	DoReadCommitted(ctx context.Context, fn func(ctx context.Context) error) error
}

// AdmissionLocker блокировка в процессе по ключу группы машин
type AdmissionLocker interface {
	Lock(key string) (unlock func())
}

// MetricsCollector интерфейс для метрик допуска
type MetricsCollector interface {
	ObserveAdmission(machine, outcome string)
}

// IDGenerator генератор идентификаторов бронирований
type IDGenerator interface {
	NewID() string
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// UUIDGenerator выдаёт случайные UUID v4, идентификаторы никогда не переиспользуются
type UUIDGenerator struct{}

// NewID возвращает новый UUID
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
