package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MachineReservations/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// FindOverlapping все бронирования, пересекающиеся с интервалом (machine == nil - любых машин)
	FindOverlapping(ctx context.Context, interval domain.TimeInterval, machine *domain.MachineType) ([]*domain.Reservation, error)
}

// RulesProvider источник актуального снимка бизнес-правил
type RulesProvider interface {
	Snapshot() domain.BusinessRules
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
