package reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-MachineReservations/internal/domain"
)

// createdAtLayout формат хранения времени создания
const createdAtLayout = "2006-01-02 15:04:05"

// wallTime сканирует колонку времени без часового пояса.
// Postgres (TIMESTAMP) отдаёт time.Time в UTC с настенными часами, SQLite (TEXT) отдаёт строку.
// В обоих случаях настенное время интерпретируется в часовом поясе сервиса.
type wallTime struct {
	loc *time.Location
	t   *time.Time
}

func (w wallTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*w.t = time.Date(v.Year(), v.Month(), v.Day(), v.Hour(), v.Minute(), v.Second(), 0, w.loc)
		return nil
	case string:
		return w.parse(v)
	case []byte:
		return w.parse(string(v))
	default:
		return fmt.Errorf("wallTime: cannot scan %T", src)
	}
}

func (w wallTime) parse(s string) error {
	for _, layout := range []string{createdAtLayout, domain.IntervalLayout, time.RFC3339} {
		t, err := time.ParseInLocation(layout, s, w.loc)
		if err == nil {
			*w.t = t
			return nil
		}
	}
	return fmt.Errorf("wallTime: unexpected time value %q", s)
}

func formatWall(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(domain.IntervalLayout)
}
