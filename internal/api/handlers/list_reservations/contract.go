package list_reservations

import (
	"context"

	"github.com/m04kA/SMC-MachineReservations/internal/service/reservations/models"
)

type ReservationService interface {
	ListByDate(ctx context.Context, start, end string) (*models.ReservationListResponse, error)
	ListByMachine(ctx context.Context, start, end, machine string) (*models.ReservationListResponse, error)
	ListByCustomer(ctx context.Context, start, end, customer string) (*models.ReservationListResponse, error)
	ListByMachineAndCustomer(ctx context.Context, start, end, machine, customer string) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
