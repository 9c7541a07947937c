package admit_reservation

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-MachineReservations/internal/domain"
)

// validateRequest разбирает запрос: клиент, тип машины, интервал
func validateRequest(req *Request, loc *time.Location) (*admission, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", domain.ErrMalformedInput)
	}

	if err := domain.ValidateCustomer(req.Customer); err != nil {
		return nil, err
	}

	machine, err := domain.ParseMachineType(req.Machine)
	if err != nil {
		return nil, err
	}

	interval, err := domain.ParseTimeInterval(req.Start, req.End, loc)
	if err != nil {
		return nil, err
	}

	return &admission{
		customer: strings.TrimSpace(req.Customer),
		machine:  machine,
		interval: interval,
	}, nil
}
