package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-MachineReservations/pkg/types"
)

// TimeInterval is a booked time span with minute precision.
// Overlap uses inclusive boundaries: an interval ending exactly when another starts overlaps it.
type TimeInterval struct {
	start time.Time
	end   time.Time
}

// NewTimeInterval truncates both ends to the minute and requires start < end
func NewTimeInterval(start, end time.Time) (TimeInterval, error) {
	start = start.Truncate(time.Minute)
	end = end.Truncate(time.Minute)

	if start.IsZero() || end.IsZero() {
		return TimeInterval{}, fmt.Errorf("%w: start and end are required", ErrMalformedInput)
	}
	if !start.Before(end) {
		return TimeInterval{}, fmt.Errorf("%w: start %s must be before end %s",
			ErrMalformedInput, start.Format(IntervalLayout), end.Format(IntervalLayout))
	}

	return TimeInterval{start: start, end: end}, nil
}

// ParseTimeInterval parses two "YYYY-MM-DD HH:MM" strings in the given location
func ParseTimeInterval(start, end string, loc *time.Location) (TimeInterval, error) {
	if loc == nil {
		loc = time.UTC
	}

	s, err := time.ParseInLocation(IntervalLayout, strings.TrimSpace(start), loc)
	if err != nil {
		return TimeInterval{}, fmt.Errorf("%w: start %q, expected YYYY-MM-DD HH:MM", ErrMalformedInput, start)
	}

	e, err := time.ParseInLocation(IntervalLayout, strings.TrimSpace(end), loc)
	if err != nil {
		return TimeInterval{}, fmt.Errorf("%w: end %q, expected YYYY-MM-DD HH:MM", ErrMalformedInput, end)
	}

	return NewTimeInterval(s, e)
}

// MustParseTimeInterval panics on malformed input, for tests and fixtures
func MustParseTimeInterval(start, end string) TimeInterval {
	ti, err := ParseTimeInterval(start, end, time.UTC)
	if err != nil {
		panic(err)
	}
	return ti
}

func (ti TimeInterval) Start() time.Time {
	return ti.start
}

func (ti TimeInterval) End() time.Time {
	return ti.end
}

// IsZero returns true for an interval that was never constructed
func (ti TimeInterval) IsZero() bool {
	return ti.start.IsZero() && ti.end.IsZero()
}

// Overlaps reports a.start <= b.end && a.end >= b.start
func (ti TimeInterval) Overlaps(other TimeInterval) bool {
	return !ti.start.After(other.end) && !ti.end.Before(other.start)
}

// DurationHours returns whole hours, any partial hour is dropped
func (ti TimeInterval) DurationHours() int {
	return int(ti.end.Sub(ti.start) / time.Hour)
}

// Duration returns the exact length of the interval
func (ti TimeInterval) Duration() time.Duration {
	return ti.end.Sub(ti.start)
}

// StartTimeOfDay returns the wall clock time of the start
func (ti TimeInterval) StartTimeOfDay() types.TimeString {
	return types.NewTimeString(ti.start)
}

// EndTimeOfDay returns the wall clock time of the end
func (ti TimeInterval) EndTimeOfDay() types.TimeString {
	return types.NewTimeString(ti.end)
}

// In returns the same instants expressed in loc
func (ti TimeInterval) In(loc *time.Location) TimeInterval {
	return TimeInterval{start: ti.start.In(loc), end: ti.end.In(loc)}
}

func (ti TimeInterval) String() string {
	return fmt.Sprintf("%s - %s", ti.start.Format(IntervalLayout), ti.end.Format(IntervalLayout))
}
