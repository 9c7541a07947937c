package models

import (
	"time"

	"github.com/m04kA/SMC-MachineReservations/internal/domain"
)

// ListRequest запрос списка бронирований за период.
// Machine и Customer опциональны и сужают выборку.
type ListRequest struct {
	Start    string
	End      string
	Machine  *string
	Customer *string
}

// ReservationResponse бронирование в ответе API
type ReservationResponse struct {
	ID          string    `json:"id"`
	Customer    string    `json:"customer"`
	Machine     string    `json:"machine"`
	Start       string    `json:"start"`
	End         string    `json:"end"`
	Cost        float64   `json:"cost"`
	DownPayment float64   `json:"downPayment"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	Total        int                    `json:"total"`
}

// FromDomainReservation конвертирует domain.Reservation в ответ
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:          r.ID,
		Customer:    r.Customer,
		Machine:     r.Machine.String(),
		Start:       r.Interval.Start().Format(domain.IntervalLayout),
		End:         r.Interval.End().Format(domain.IntervalLayout),
		Cost:        r.Cost,
		DownPayment: r.DownPayment,
		CreatedAt:   r.CreatedAt,
	}
}

// FromDomainReservations конвертирует список бронирований
func FromDomainReservations(list []*domain.Reservation) *ReservationListResponse {
	result := make([]*ReservationResponse, 0, len(list))
	for _, r := range list {
		result = append(result, FromDomainReservation(r))
	}
	return &ReservationListResponse{Reservations: result, Total: len(result)}
}
