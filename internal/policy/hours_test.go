package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-MachineReservations/internal/domain"
	"github.com/m04kA/SMC-MachineReservations/pkg/types"
)

// вторник, 21 мая 2024
var testNow = time.Date(2024, 5, 21, 9, 0, 0, 0, time.UTC)

func TestValidateOperatingHours(t *testing.T) {
	rules := domain.DefaultBusinessRules()

	cases := []struct {
		name       string
		start, end string
		wantErr    bool
	}{
		{"monday within hours", "2024-06-10 09:00", "2024-06-10 11:00", false},
		{"weekday full day", "2024-06-11 09:00", "2024-06-11 18:00", false},
		{"weekday opens too early", "2024-06-11 08:59", "2024-06-11 11:00", true},
		{"weekday closes too late", "2024-06-11 16:00", "2024-06-11 18:01", true},
		{"saturday within hours", "2024-06-15 10:00", "2024-06-15 16:00", false},
		{"saturday weekday hours", "2024-06-15 09:00", "2024-06-15 11:00", true},
		{"saturday ends late", "2024-06-15 15:00", "2024-06-15 17:00", true},
		{"sunday within hours", "2024-06-16 10:00", "2024-06-16 12:00", true},
		{"sunday whole day", "2024-06-16 00:00", "2024-06-16 23:59", true},
		{"exactly 30 days ahead", "2024-06-20 09:00", "2024-06-20 10:00", false},
		{"31 days ahead", "2024-06-21 09:00", "2024-06-21 10:00", true},
		{"starts in the past", "2024-05-20 09:00", "2024-05-20 10:00", true},
		{"starts now", "2024-05-21 09:00", "2024-05-21 10:00", false},
		{"saturday to monday", "2024-06-15 15:00", "2024-06-17 11:00", true},
		{"overnight on weekdays", "2024-06-10 17:00", "2024-06-11 10:00", true},
		{"monday to sunday", "2024-06-10 09:00", "2024-06-16 10:00", true},
		{"weekday to next weekday within hours", "2024-06-10 09:00", "2024-06-11 18:00", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			interval := domain.MustParseTimeInterval(tc.start, tc.end)
			err := ValidateOperatingHours(interval, rules, testNow)
			if tc.wantErr {
				assert.ErrorIs(t, err, domain.ErrSchedulingViolation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateOperatingHours_HarvesterOnSunday(t *testing.T) {
	interval := domain.MustParseTimeInterval("2024-06-16 11:00", "2024-06-16 12:00")

	err := ValidateOperatingHours(interval, domain.DefaultBusinessRules(), testNow)
	assert.ErrorIs(t, err, domain.ErrSchedulingViolation)
	assert.Contains(t, err.Error(), "Sundays")
}

func TestValidateOperatingHours_MultiDayInLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	// 10:00 - 23:00 в UTC+3 укладываются в один день, хотя в UTC конец приходится на 20:00
	interval, err := domain.ParseTimeInterval("2024-06-11 10:00", "2024-06-11 23:00", loc)
	assert.NoError(t, err)

	rules := domain.DefaultBusinessRules()
	rules.WeekdayClose = types.MustTimeString("23:00")
	assert.NoError(t, ValidateOperatingHours(interval, rules, testNow))

	interval, err = domain.ParseTimeInterval("2024-06-11 10:00", "2024-06-12 01:00", loc)
	assert.NoError(t, err)
	err = ValidateOperatingHours(interval, rules, testNow)
	assert.ErrorIs(t, err, domain.ErrSchedulingViolation)
	assert.Contains(t, err.Error(), "same day")
}

func TestValidateOperatingHours_UsesCurrentRules(t *testing.T) {
	interval := domain.MustParseTimeInterval("2024-06-11 07:00", "2024-06-11 08:00")
	rules := domain.DefaultBusinessRules()

	assert.ErrorIs(t, ValidateOperatingHours(interval, rules, testNow), domain.ErrSchedulingViolation)

	rules.WeekdayOpen = types.MustTimeString("07:00")
	assert.NoError(t, ValidateOperatingHours(interval, rules, testNow))
}

func TestCalendarDaysUntil(t *testing.T) {
	now := time.Date(2024, 5, 21, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, 0, CalendarDaysUntil(now, time.Date(2024, 5, 21, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, CalendarDaysUntil(now, time.Date(2024, 5, 22, 0, 1, 0, 0, time.UTC)))
	assert.Equal(t, 30, CalendarDaysUntil(now, time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)))
}

func TestOpeningHours(t *testing.T) {
	rules := domain.DefaultBusinessRules()

	open, closeAt, ok := OpeningHours(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), rules)
	assert.True(t, ok)
	assert.Equal(t, "09:00", open.String())
	assert.Equal(t, "18:00", closeAt.String())

	open, closeAt, ok = OpeningHours(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), rules)
	assert.True(t, ok)
	assert.Equal(t, "10:00", open.String())
	assert.Equal(t, "16:00", closeAt.String())

	_, _, ok = OpeningHours(time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC), rules)
	assert.False(t, ok)
}
