package reservations

import (
	"context"

	"github.com/m04kA/SMC-MachineReservations/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований (только чтение)
type ReservationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	FindOverlapping(ctx context.Context, interval domain.TimeInterval, machine *domain.MachineType) ([]*domain.Reservation, error)
	FindByCustomer(ctx context.Context, interval domain.TimeInterval, customer string, machine *domain.MachineType) ([]*domain.Reservation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
