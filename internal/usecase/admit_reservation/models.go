package admit_reservation

import (
	"time"

	"github.com/m04kA/SMC-MachineReservations/internal/domain"
)

// Request запрос на бронирование машины.
// Start и End в формате YYYY-MM-DD HH:MM в часовом поясе сервиса.
type Request struct {
	Customer string
	Machine  string
	Start    string
	End      string
}

// Response созданное бронирование
type Response struct {
	ID          string
	Customer    string
	Machine     domain.MachineType
	Start       time.Time
	End         time.Time
	BasePrice   float64
	Discount    float64
	Cost        float64
	DownPayment float64
	CreatedAt   time.Time
}

// admission разобранный и проверенный запрос
type admission struct {
	customer string
	machine  domain.MachineType
	interval domain.TimeInterval
}

// исходы для метрик
const (
	outcomeAdmitted         = "admitted"
	outcomeRejectedInput    = "rejected_input"
	outcomeRejectedSchedule = "rejected_schedule"
	outcomeRejectedCapacity = "rejected_capacity"
	outcomeError            = "error"
)
