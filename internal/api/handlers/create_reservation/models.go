package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-MachineReservations/internal/domain"
	admitReservation "github.com/m04kA/SMC-MachineReservations/internal/usecase/admit_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	Customer string `json:"customer"`
	Machine  string `json:"machine"` // harvester, scanner, scooper
	Start    string `json:"start"`   // "2024-06-10 09:00"
	End      string `json:"end"`     // "2024-06-10 12:00"
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID          string  `json:"id"`
	Customer    string  `json:"customer"`
	Machine     string  `json:"machine"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	BasePrice   float64 `json:"basePrice"`
	Discount    float64 `json:"discount"`
	Cost        float64 `json:"cost"`
	DownPayment float64 `json:"downPayment"`
	CreatedAt   string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (разбор интервала делает use case)
func (r *CreateReservationRequest) ToUseCaseRequest() *admitReservation.Request {
	return &admitReservation.Request{
		Customer: r.Customer,
		Machine:  r.Machine,
		Start:    r.Start,
		End:      r.End,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *admitReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:          resp.ID,
		Customer:    resp.Customer,
		Machine:     resp.Machine.String(),
		Start:       resp.Start.Format(domain.IntervalLayout),
		End:         resp.End.Format(domain.IntervalLayout),
		BasePrice:   resp.BasePrice,
		Discount:    resp.Discount,
		Cost:        resp.Cost,
		DownPayment: resp.DownPayment,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
}
