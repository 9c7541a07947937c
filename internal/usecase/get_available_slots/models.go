package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-MachineReservations/internal/domain"
	"github.com/m04kA/SMC-MachineReservations/pkg/types"
)

// SlotDuration шаг сетки слотов
const SlotDuration = time.Hour

// Request модель запроса доступности машины на день
type Request struct {
	Machine string // harvester, scanner, scooper
	Date    string // YYYY-MM-DD в часовом поясе сервиса
}

// Response модель ответа со списком слотов
type Response struct {
	Date    time.Time          // Полночь запрошенного дня
	Machine domain.MachineType // Тип машины
	IsOpen  bool               // false по воскресеньям
	OpenAt  types.TimeString   // Время открытия (если IsOpen)
	CloseAt types.TimeString   // Время закрытия (если IsOpen)
	Slots   []Slot             // Слоты, которые ещё не начались
}

// Slot модель временного слота
type Slot struct {
	Start          time.Time
	End            time.Time
	AvailableSpots int // Сколько машин ещё можно забронировать на весь слот
	TotalSpots     int // Сколько машин этого типа существует
}
