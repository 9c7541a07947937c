package cancel_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-MachineReservations/internal/service/reservations/models"
	cancelReservation "github.com/m04kA/SMC-MachineReservations/internal/usecase/cancel_reservation"
)

// CancelReservationResponse HTTP response model
type CancelReservationResponse struct {
	ID          string                      `json:"id"`
	Refund      float64                     `json:"refund"`
	Message     string                      `json:"message"`
	CancelledAt string                      `json:"cancelledAt"`
	Reservation *models.ReservationResponse `json:"reservation"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelReservation.Response) *CancelReservationResponse {
	return &CancelReservationResponse{
		ID:          resp.Reservation.ID,
		Refund:      resp.Refund,
		Message:     fmt.Sprintf("бронирование %s отменено, возврат %.2f", resp.Reservation.ID, resp.Refund),
		CancelledAt: resp.CancelledAt.Format(time.RFC3339),
		Reservation: models.FromDomainReservation(resp.Reservation),
	}
}
