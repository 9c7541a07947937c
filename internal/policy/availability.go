package policy

import (
	"fmt"

	"github.com/m04kA/SMC-MachineReservations/internal/domain"
)

// occupancy is the tally of machines already booked over the candidate interval
type occupancy struct {
	scanners  int
	scoopers  int
	harvester bool
}

func tally(overlapping []*domain.Reservation) occupancy {
	var o occupancy
	for _, r := range overlapping {
		switch r.Machine {
		case domain.MachineScanner:
			o.scanners++
		case domain.MachineScooper:
			o.scoopers++
		case domain.MachineHarvester:
			o.harvester = true
		}
	}
	return o
}

// CheckAvailability decides whether one more machine of the candidate type fits next to the
// reservations overlapping its interval. Scanners and the harvester exclude each other.
func CheckAvailability(candidate domain.MachineType, overlapping []*domain.Reservation, rules domain.BusinessRules) error {
	o := tally(overlapping)

	switch candidate {
	case domain.MachineScanner:
		if o.harvester {
			return fmt.Errorf("%w: scanners cannot be reserved while the harvester is booked", domain.ErrCapacityViolation)
		}
		if o.scanners >= rules.MaxScanners {
			return fmt.Errorf("%w: all %d scanners are already booked for this time", domain.ErrCapacityViolation, rules.MaxScanners)
		}
	case domain.MachineHarvester:
		if o.scanners > 0 {
			return fmt.Errorf("%w: the harvester cannot be reserved while scanners are booked", domain.ErrCapacityViolation)
		}
		if o.harvester {
			return fmt.Errorf("%w: the harvester is already booked for this time", domain.ErrCapacityViolation)
		}
	case domain.MachineScooper:
		if o.scoopers >= rules.MaxScoopers {
			return fmt.Errorf("%w: all %d scoopers are already booked for this time", domain.ErrCapacityViolation, rules.MaxScoopers)
		}
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownMachineType, candidate)
	}

	return nil
}

// Remaining returns how many more machines of the type can be booked next to the overlapping
// reservations, and how many exist in total
func Remaining(machine domain.MachineType, overlapping []*domain.Reservation, rules domain.BusinessRules) (free, total int) {
	o := tally(overlapping)

	switch machine {
	case domain.MachineScanner:
		total = rules.MaxScanners
		if o.harvester {
			return 0, total
		}
		free = total - o.scanners
	case domain.MachineHarvester:
		total = domain.HarvesterCapacity
		if o.harvester || o.scanners > 0 {
			return 0, total
		}
		free = total
	case domain.MachineScooper:
		total = rules.MaxScoopers
		free = total - o.scoopers
	}

	if free < 0 {
		free = 0
	}
	return free, total
}
