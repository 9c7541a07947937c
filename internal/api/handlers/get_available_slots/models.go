package get_available_slots

import (
	"github.com/m04kA/SMC-MachineReservations/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-MachineReservations/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date    string         `json:"date"`
	Machine string         `json:"machine"`
	IsOpen  bool           `json:"isOpen"`
	OpenAt  *string        `json:"openAt,omitempty"`
	CloseAt *string        `json:"closeAt,omitempty"`
	Slots   []SlotResponse `json:"slots"`
}

// SlotResponse HTTP модель слота
type SlotResponse struct {
	Start          string `json:"start"`
	End            string `json:"end"`
	AvailableSpots int    `json:"availableSpots"`
	TotalSpots     int    `json:"totalSpots"`
}

// ToUseCaseRequest формирует запрос к use case
func ToUseCaseRequest(machine, date string) *getAvailableSlots.Request {
	return &getAvailableSlots.Request{Machine: machine, Date: date}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			Start:          s.Start.Format(domain.IntervalLayout),
			End:            s.End.Format(domain.IntervalLayout),
			AvailableSpots: s.AvailableSpots,
			TotalSpots:     s.TotalSpots,
		})
	}

	result := &AvailableSlotsResponse{
		Date:    resp.Date.Format(domain.DateFormat),
		Machine: resp.Machine.String(),
		IsOpen:  resp.IsOpen,
		Slots:   slots,
	}
	if resp.IsOpen {
		openAt, closeAt := resp.OpenAt.String(), resp.CloseAt.String()
		result.OpenAt = &openAt
		result.CloseAt = &closeAt
	}
	return result
}
