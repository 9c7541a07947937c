package get_available_slots

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MachineReservations/pkg/types"
)

func TestGenerateSlots_DaylightSavingDays(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// 31 марта 2024 часы переводятся вперёд, 27 октября назад
	for _, day := range []time.Time{
		time.Date(2024, 3, 31, 0, 0, 0, 0, berlin),
		time.Date(2024, 10, 27, 0, 0, 0, 0, berlin),
	} {
		t.Run(day.Format("2006-01-02"), func(t *testing.T) {
			slots := generateSlots(day, types.MustTimeString("09:00"), types.MustTimeString("18:00"), time.Time{})
			require.Len(t, slots, 9)

			for i, slot := range slots {
				assert.Equal(t, 9+i, slot.Start().Hour())
				assert.Equal(t, 0, slot.Start().Minute())
				assert.Equal(t, day.Day(), slot.Start().Day())
			}
			assert.Equal(t, "18:00", slots[8].EndTimeOfDay().String())
		})
	}
}

func TestAt_UsesWallClock(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	day := time.Date(2024, 3, 31, 0, 0, 0, 0, berlin)
	got := at(day, types.MustTimeString("10:30"))

	assert.Equal(t, time.Date(2024, 3, 31, 10, 30, 0, 0, berlin), got)
	assert.Equal(t, 9*time.Hour+30*time.Minute, got.Sub(day))
}
