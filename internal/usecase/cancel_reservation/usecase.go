package cancel_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MachineReservations/internal/domain"
	reservationRepo "github.com/m04kA/SMC-MachineReservations/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-MachineReservations/internal/policy"
)

// UseCase use case отмены бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	rules           RulesProvider
	txManager       TransactionManager
	metrics         MetricsCollector
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	rules RulesProvider,
	txManager TransactionManager,
	metrics MetricsCollector,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		rules:           rules,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute удаляет бронирование и возвращает сумму возврата.
// Возврат считается по текущим правилам и текущему времени, а не по тем, что действовали при бронировании.
// Повторная отмена возвращает domain.ErrNotFound и ничего не меняет.
func (uc *UseCase) Execute(ctx context.Context, id string) (*Response, error) {
	// 1. Валидация
	id, err := validateID(id)
	if err != nil {
		uc.logger.Warn("CancelReservation: %v", err)
		return nil, err
	}

	uc.logger.Info("CancelReservation: id=%s", id)

	now := uc.timeProvider.Now()
	var result *Response

	// 2. Поиск, расчёт возврата и удаление в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Находим бронирование (на postgres строка блокируется)
		res, err := uc.reservationRepo.GetByID(txCtx, id)
		if err != nil {
			return uc.translate("get reservation", id, err)
		}

		// 2.2. Возврат по текущим правилам
		refund := policy.Refund(res.DownPayment, res.Interval.Start(), uc.rules.Snapshot(), now)

		// 2.3. Удаляем
		if err := uc.reservationRepo.Delete(txCtx, id); err != nil {
			return uc.translate("delete reservation", id, err)
		}

		result = &Response{Reservation: res, Refund: refund, CancelledAt: now}
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.observe(outcomeNotFound, 0)
			return nil, err
		}
		uc.observe(outcomeError, 0)
		if !errors.Is(err, ErrInternal) {
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.observe(outcomeCancelled, result.Refund)
	uc.logger.Info("CancelReservation: cancelled reservation id=%s, refund=%.2f", id, result.Refund)
	return result, nil
}

func (uc *UseCase) translate(op, id string, err error) error {
	if errors.Is(err, reservationRepo.ErrReservationNotFound) {
		uc.logger.Warn("CancelReservation: reservation id=%s not found", id)
		return fmt.Errorf("%w: id=%s", domain.ErrNotFound, id)
	}
	uc.logger.Error("CancelReservation: failed to %s id=%s: %v", op, id, err)
	return fmt.Errorf("%w: failed to %s: %v", ErrInternal, op, err)
}

func (uc *UseCase) observe(outcome string, refund float64) {
	if uc.metrics != nil {
		uc.metrics.ObserveCancellation(outcome, refund)
	}
}
