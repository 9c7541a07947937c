package policy

import (
	"fmt"
	"math"
	"time"

	"github.com/m04kA/SMC-MachineReservations/internal/domain"
)

// Quote is the price of a reservation
type Quote struct {
	BasePrice   float64
	Discount    float64
	Cost        float64
	DownPayment float64
}

// Price computes the cost of reserving the machine for the interval.
// The harvester is a flat fee, scanners and scoopers are paid per whole hour.
// Reservations starting more than EarlyBirdThresholdDays ahead get the early bird discount.
func Price(machine domain.MachineType, interval domain.TimeInterval, rules domain.BusinessRules, now time.Time) (Quote, error) {
	var base float64

	switch machine {
	case domain.MachineHarvester:
		base = rules.HarvesterPrice
	case domain.MachineScooper:
		base = float64(interval.DurationHours()) * rules.ScooperPricePerHour
	case domain.MachineScanner:
		base = float64(interval.DurationHours()) * rules.ScannerPricePerHour
	default:
		return Quote{}, fmt.Errorf("%w: %q", domain.ErrUnknownMachineType, machine)
	}

	var discount float64
	if AdvanceDays(now, interval.Start()) > domain.EarlyBirdThresholdDays {
		discount = base * domain.EarlyBirdDiscount
	}

	cost := base - discount
	return Quote{
		BasePrice:   base,
		Discount:    discount,
		Cost:        cost,
		DownPayment: domain.DownPaymentFor(cost),
	}, nil
}

// AdvanceDays returns the whole days from now until t, rounded down.
// A start one hour in the past is -1 day.
func AdvanceDays(now, t time.Time) int {
	return int(math.Floor(t.Sub(now).Hours() / 24))
}
