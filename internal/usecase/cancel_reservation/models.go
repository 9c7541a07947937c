package cancel_reservation

import (
	"time"

	"github.com/m04kA/SMC-MachineReservations/internal/domain"
)

// Response результат отмены: удалённое бронирование и сумма возврата
type Response struct {
	Reservation *domain.Reservation
	Refund      float64
	CancelledAt time.Time
}

// исходы для метрик
const (
	outcomeCancelled = "cancelled"
	outcomeNotFound  = "not_found"
	outcomeError     = "error"
)
