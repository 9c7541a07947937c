package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MachineReservations/internal/domain"
	reservationRepo "github.com/m04kA/SMC-MachineReservations/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-MachineReservations/internal/service/reservations/models"
	"github.com/m04kA/SMC-MachineReservations/pkg/ptr"
)

// Service запросы на чтение бронирований. Бизнес-логики нет, только разбор фильтра
// и делегирование запросам пересечения в репозитории.
type Service struct {
	repo   ReservationRepository
	loc    *time.Location
	logger Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(repo ReservationRepository, loc *time.Location, logger Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, loc: loc, logger: logger}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.ReservationResponse, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%s not found", id)
			return nil, fmt.Errorf("%w: id=%s", domain.ErrNotFound, id)
		}
		s.logger.Error("GetByID: repository error for reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(res), nil
}

// ListByDate все бронирования, пересекающиеся с периодом
func (s *Service) ListByDate(ctx context.Context, start, end string) (*models.ReservationListResponse, error) {
	return s.List(ctx, models.ListRequest{Start: start, End: end})
}

// ListByMachine бронирования одного типа машин за период
func (s *Service) ListByMachine(ctx context.Context, start, end, machine string) (*models.ReservationListResponse, error) {
	return s.List(ctx, models.ListRequest{Start: start, End: end, Machine: ptr.Ptr(machine)})
}

// ListByCustomer бронирования клиента за период
func (s *Service) ListByCustomer(ctx context.Context, start, end, customer string) (*models.ReservationListResponse, error) {
	return s.List(ctx, models.ListRequest{Start: start, End: end, Customer: ptr.Ptr(customer)})
}

// ListByMachineAndCustomer бронирования клиента на один тип машин за период
func (s *Service) ListByMachineAndCustomer(ctx context.Context, start, end, machine, customer string) (*models.ReservationListResponse, error) {
	return s.List(ctx, models.ListRequest{Start: start, End: end, Machine: ptr.Ptr(machine), Customer: ptr.Ptr(customer)})
}

// List общий запрос с опциональными фильтрами
func (s *Service) List(ctx context.Context, req models.ListRequest) (*models.ReservationListResponse, error) {
	interval, err := domain.ParseTimeInterval(req.Start, req.End, s.loc)
	if err != nil {
		s.logger.Warn("List: invalid period: %v", err)
		return nil, err
	}

	var machine *domain.MachineType
	if req.Machine != nil {
		m, err := domain.ParseMachineType(*req.Machine)
		if err != nil {
			s.logger.Warn("List: %v", err)
			return nil, err
		}
		machine = &m
	}

	var list []*domain.Reservation
	if req.Customer != nil {
		list, err = s.repo.FindByCustomer(ctx, interval, *req.Customer, machine)
	} else {
		list, err = s.repo.FindOverlapping(ctx, interval, machine)
	}
	if err != nil {
		s.logger.Error("List: repository error for period %s: %v", interval, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservations(list), nil
}
