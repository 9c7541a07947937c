package admit_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MachineReservations/internal/domain"
	"github.com/m04kA/SMC-MachineReservations/internal/policy"
)

// UseCase use case допуска бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	rules           RulesProvider
	txManager       TransactionManager
	locker          AdmissionLocker
	metrics         MetricsCollector
	idGenerator     IDGenerator
	timeProvider    TimeProvider
	loc             *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// loc - часовой пояс, в котором разбираются интервалы и считаются дни недели.
func NewUseCase(
	reservationRepo ReservationRepository,
	rules RulesProvider,
	txManager TransactionManager,
	locker AdmissionLocker,
	metrics MetricsCollector,
	loc *time.Location,
	logger Logger,
) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		rules:           rules,
		txManager:       txManager,
		locker:          locker,
		metrics:         metrics,
		idGenerator:     UUIDGenerator{},
		timeProvider:    &RealTimeProvider{},
		loc:             loc,
		logger:          logger,
	}
}

// Execute проверяет и сохраняет бронирование.
// Чтение пересекающихся бронирований и вставка выполняются в одной транзакции под блокировкой
// группы машин (в процессе и в БД), поэтому два конкурентных запроса не превысят вместимость,
// даже если они пришли в разные экземпляры сервиса.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	adm, err := validateRequest(req, uc.loc)
	if err != nil {
		uc.logger.Warn("AdmitReservation: validation failed: %v", err)
		uc.observe(machineLabel(req), outcomeRejectedInput)
		return nil, err
	}

	uc.logger.Info("AdmitReservation: customer=%s, machine=%s, interval=%s", adm.customer, adm.machine, adm.interval)

	// 2. Снимок правил и текущее время
	now := uc.timeProvider.Now().In(uc.loc)
	rules := uc.rules.Snapshot()

	// 3. Рабочие часы и окно бронирования
	if err := policy.ValidateOperatingHours(adm.interval, rules, now); err != nil {
		uc.logger.Warn("AdmitReservation: %v", err)
		uc.observe(adm.machine.String(), outcomeRejectedSchedule)
		return nil, err
	}

	// 4. Сериализуем допуск внутри процесса для группы машин
	lockKey := adm.machine.AdmissionGroup()
	unlock := uc.locker.Lock(lockKey)
	defer unlock()

	var result *domain.Reservation
	var quote policy.Quote

	// 5. Проверка доступности и вставка в одной транзакции
	err = uc.txManager.DoReadCommitted(ctx, func(txCtx context.Context) error {
		// 5.1. Блокировка группы на уровне БД (postgres). Снимок для следующих запросов
		// берётся уже после неё, так что видны вставки прежнего владельца блокировки.
		if err := uc.reservationRepo.LockAdmission(txCtx, lockKey); err != nil {
			uc.logger.Error("AdmitReservation: failed to lock %s: %v", lockKey, err)
			return fmt.Errorf("%w: failed to lock admission: %v", ErrInternal, err)
		}

		// 5.2. Все бронирования, пересекающиеся с интервалом (любых машин)
		overlapping, err := uc.reservationRepo.FindOverlapping(txCtx, adm.interval, nil)
		if err != nil {
			uc.logger.Error("AdmitReservation: failed to get overlapping reservations: %v", err)
			return fmt.Errorf("%w: failed to get overlapping reservations: %v", ErrInternal, err)
		}

		// 5.3. Вместимость и взаимоисключение машин
		if err := policy.CheckAvailability(adm.machine, overlapping, rules); err != nil {
			uc.logger.Warn("AdmitReservation: %v (%d overlapping)", err, len(overlapping))
			return err
		}

		// 5.4. Стоимость
		quote, err = policy.Price(adm.machine, adm.interval, rules, now)
		if err != nil {
			return err
		}

		// 5.5. Сохраняем
		res, err := domain.NewReservation(uc.idGenerator.NewID(), adm.customer, adm.machine, adm.interval, quote.Cost, now)
		if err != nil {
			return err
		}

		if err := uc.reservationRepo.Insert(txCtx, res); err != nil {
			uc.logger.Error("AdmitReservation: failed to insert reservation: %v", err)
			return fmt.Errorf("%w: failed to insert reservation: %v", ErrInternal, err)
		}

		result = res
		return nil
	})

	if err != nil {
		uc.observe(adm.machine.String(), outcomeFor(err))
		if !isRejection(err) && !errors.Is(err, ErrInternal) {
			uc.logger.Error("AdmitReservation: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.observe(adm.machine.String(), outcomeAdmitted)
	uc.logger.Info("AdmitReservation: admitted reservation id=%s, cost=%.2f, downPayment=%.2f",
		result.ID, result.Cost, result.DownPayment)

	return &Response{
		ID:          result.ID,
		Customer:    result.Customer,
		Machine:     result.Machine,
		Start:       result.Interval.Start(),
		End:         result.Interval.End(),
		BasePrice:   quote.BasePrice,
		Discount:    quote.Discount,
		Cost:        result.Cost,
		DownPayment: result.DownPayment,
		CreatedAt:   result.CreatedAt,
	}, nil
}

func (uc *UseCase) observe(machine, outcome string) {
	if uc.metrics != nil {
		uc.metrics.ObserveAdmission(machine, outcome)
	}
}

func outcomeFor(err error) string {
	if errors.Is(err, domain.ErrCapacityViolation) {
		return outcomeRejectedCapacity
	}
	return outcomeError
}

// isRejection отказ по правилам, а не сбой инфраструктуры
func isRejection(err error) bool {
	for _, kind := range []error{
		domain.ErrMalformedInput,
		domain.ErrSchedulingViolation,
		domain.ErrCapacityViolation,
		domain.ErrUnknownMachineType,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

// machineLabel метка машины для метрик: только известные типы, чтобы не раздувать кардинальность
func machineLabel(req *Request) string {
	if req == nil {
		return "unknown"
	}
	m, err := domain.ParseMachineType(req.Machine)
	if err != nil {
		return "unknown"
	}
	return m.String()
}
