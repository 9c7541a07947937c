package cancel_reservation

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-MachineReservations/internal/domain"
)

func validateID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: reservation id is required", domain.ErrMalformedInput)
	}
	return id, nil
}
