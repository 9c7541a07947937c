package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MachineReservations/internal/domain"
	"github.com/m04kA/SMC-MachineReservations/internal/policy"
)

// UseCase use case для получения доступности машины по слотам на день
type UseCase struct {
	reservationRepo ReservationRepository
	rules           RulesProvider
	timeProvider    TimeProvider
	loc             *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	rules RulesProvider,
	loc *time.Location,
	logger Logger,
) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		rules:           rules,
		timeProvider:    &RealTimeProvider{},
		loc:             loc,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Результат справочный: допуск бронирования всё равно перепроверяется при создании.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	machine, date, err := validateRequest(req, uc.loc)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: machine=%s, date=%s", machine, date.Format(domain.DateFormat))

	// 2. Текущее время и снимок правил
	now := uc.timeProvider.Now().In(uc.loc)
	rules := uc.rules.Snapshot()

	response := &Response{Date: date, Machine: machine, Slots: []Slot{}}

	// 3. Окно бронирования
	days := policy.CalendarDaysUntil(now, date)
	if days > domain.MaxAdvanceBookingDays {
		uc.logger.Warn("GetAvailableSlots: date %s is %d days ahead", date.Format(domain.DateFormat), days)
		return nil, fmt.Errorf("%w: reservations cannot be made more than %d days in advance",
			domain.ErrSchedulingViolation, domain.MaxAdvanceBookingDays)
	}

	// 4. Рабочие часы дня
	openAt, closeAt, ok := policy.OpeningHours(date, rules)
	if !ok {
		uc.logger.Info("GetAvailableSlots: closed on %s", date.Format(domain.DateFormat))
		return response, nil
	}
	response.IsOpen = true
	response.OpenAt = openAt
	response.CloseAt = closeAt

	// Прошедший день: слотов нет
	if days < 0 {
		return response, nil
	}

	// 5. Все бронирования за рабочий день (любых машин: сканеры и комбайн исключают друг друга)
	workday, err := domain.NewTimeInterval(at(date, openAt), at(date, closeAt))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid opening hours %s-%s: %v", openAt, closeAt, err)
		return nil, fmt.Errorf("%w: invalid opening hours: %v", ErrInternal, err)
	}

	reservations, err := uc.reservationRepo.FindOverlapping(ctx, workday, nil)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 6. Доступность по слотам
	response.Slots = calculateAvailableSpots(machine, generateSlots(date, openAt, closeAt, now), reservations, rules)

	uc.logger.Info("GetAvailableSlots: generated %d slots for machine=%s, date=%s",
		len(response.Slots), machine, date.Format(domain.DateFormat))

	return response, nil
}
