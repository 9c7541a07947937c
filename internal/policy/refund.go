package policy

import (
	"time"

	"github.com/m04kA/SMC-MachineReservations/internal/domain"
)

// Refund returns the part of the down payment paid back when a reservation starting at start
// is cancelled at now. Fractions come from the rules in force at cancellation.
func Refund(downPayment float64, start time.Time, rules domain.BusinessRules, now time.Time) float64 {
	switch days := AdvanceDays(now, start); {
	case days >= domain.WeekAdvanceRefundDays:
		return downPayment * rules.WeekAdvanceRefundFraction
	case days >= domain.ShortAdvanceRefundDays:
		return downPayment * rules.ShortAdvanceRefundFraction
	default:
		return 0
	}
}
