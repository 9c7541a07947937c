package get_available_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-MachineReservations/internal/domain"
)

// validateRequest разбирает тип машины и дату
func validateRequest(req *Request, loc *time.Location) (domain.MachineType, time.Time, error) {
	machine, err := domain.ParseMachineType(req.Machine)
	if err != nil {
		return "", time.Time{}, err
	}

	date, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(req.Date), loc)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: date %q, expected YYYY-MM-DD", domain.ErrMalformedInput, req.Date)
	}

	return machine, date, nil
}
