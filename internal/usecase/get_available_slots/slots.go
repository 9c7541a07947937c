package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-MachineReservations/internal/domain"
	"github.com/m04kA/SMC-MachineReservations/internal/policy"
	"github.com/m04kA/SMC-MachineReservations/pkg/types"
)

// at переводит время дня в момент внутри date по часам её часового пояса
// (в дни перехода на летнее время это не то же самое, что полночь плюс минуты)
func at(date time.Time, t types.TimeString) time.Time {
	m := t.Minutes()
	return time.Date(date.Year(), date.Month(), date.Day(), m/60, m%60, 0, 0, date.Location())
}

// generateSlots режет рабочий день на слоты по SlotDuration.
// Слоты, начавшиеся до now, и хвост короче SlotDuration отбрасываются.
func generateSlots(date time.Time, openAt, closeAt types.TimeString, now time.Time) []domain.TimeInterval {
	dayEnd := at(date, closeAt)

	slots := make([]domain.TimeInterval, 0)
	for start := at(date, openAt); !start.Add(SlotDuration).After(dayEnd); start = start.Add(SlotDuration) {
		if start.Before(now) {
			continue
		}
		slot, err := domain.NewTimeInterval(start, start.Add(SlotDuration))
		if err != nil {
			continue
		}
		slots = append(slots, slot)
	}
	return slots
}

// calculateAvailableSpots считает свободные машины в каждом слоте.
// Пересечение включает границы так же, как при допуске бронирования.
func calculateAvailableSpots(
	machine domain.MachineType,
	slots []domain.TimeInterval,
	reservations []*domain.Reservation,
	rules domain.BusinessRules,
) []Slot {
	result := make([]Slot, 0, len(slots))

	for _, slot := range slots {
		overlapping := make([]*domain.Reservation, 0)
		for _, r := range reservations {
			if r.Interval.Overlaps(slot) {
				overlapping = append(overlapping, r)
			}
		}

		free, total := policy.Remaining(machine, overlapping, rules)
		result = append(result, Slot{
			Start:          slot.Start(),
			End:            slot.End(),
			AvailableSpots: free,
			TotalSpots:     total,
		})
	}

	return result
}
