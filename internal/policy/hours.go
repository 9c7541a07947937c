package policy

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-MachineReservations/internal/domain"
	"github.com/m04kA/SMC-MachineReservations/pkg/types"
)

// ValidateOperatingHours checks the interval against the opening hours of its day
// and against the advance booking window. A reservation must start and end on the same
// calendar day, so it can never cover a Sunday or the hours the site is closed overnight.
// Weekdays follow time.Weekday: Sunday is closed, Saturday uses the weekend hours,
// Monday to Friday the weekday hours.
func ValidateOperatingHours(interval domain.TimeInterval, rules domain.BusinessRules, now time.Time) error {
	start, end := interval.Start(), interval.End()
	from, to := interval.StartTimeOfDay(), interval.EndTimeOfDay()

	if !sameDay(start, end) {
		return fmt.Errorf("%w: reservation %s must start and end on the same day",
			domain.ErrSchedulingViolation, interval)
	}

	switch start.Weekday() {
	case time.Sunday:
		return fmt.Errorf("%w: reservations cannot be made on Sundays", domain.ErrSchedulingViolation)
	case time.Saturday:
		if !from.Between(rules.WeekendOpen, rules.WeekendClose) || !to.Between(rules.WeekendOpen, rules.WeekendClose) {
			return fmt.Errorf("%w: reservations on Saturdays must be between %s and %s",
				domain.ErrSchedulingViolation, rules.WeekendOpen, rules.WeekendClose)
		}
	default:
		if from.IsBefore(rules.WeekdayOpen) || to.IsAfter(rules.WeekdayClose) {
			return fmt.Errorf("%w: reservations on weekdays must be between %s and %s",
				domain.ErrSchedulingViolation, rules.WeekdayOpen, rules.WeekdayClose)
		}
	}

	if start.Before(now) {
		return fmt.Errorf("%w: reservation start %s is in the past",
			domain.ErrSchedulingViolation, start.Format(domain.IntervalLayout))
	}

	if days := CalendarDaysUntil(now, start); days > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: reservations cannot be made more than %d days in advance",
			domain.ErrSchedulingViolation, domain.MaxAdvanceBookingDays)
	}

	return nil
}

func sameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// CalendarDaysUntil counts calendar days between the date of now and the date of t,
// both taken in the location of t
func CalendarDaysUntil(now, t time.Time) int {
	n := now.In(t.Location())
	today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(day.Sub(today) / (24 * time.Hour))
}

// OpeningHours returns the opening hours of the day; ok is false on Sundays
func OpeningHours(day time.Time, rules domain.BusinessRules) (openAt, closeAt types.TimeString, ok bool) {
	switch day.Weekday() {
	case time.Sunday:
		return types.TimeString{}, types.TimeString{}, false
	case time.Saturday:
		return rules.WeekendOpen, rules.WeekendClose, true
	default:
		return rules.WeekdayOpen, rules.WeekdayClose, true
	}
}
