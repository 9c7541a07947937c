package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/m04kA/SMC-MachineReservations/internal/domain"
	"github.com/m04kA/SMC-MachineReservations/internal/infra/storage/reservation"
)

// ReservationRepository хранилище бронирований в памяти процесса.
// Возвращает те же ошибки, что и SQL-репозиторий, поэтому взаимозаменяемо с ним.
type ReservationRepository struct {
	mu    sync.RWMutex
	items map[string]domain.Reservation
}

// NewReservationRepository создает пустое хранилище
func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{items: make(map[string]domain.Reservation)}
}

func (r *ReservationRepository) Insert(_ context.Context, res *domain.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[res.ID]; ok {
		return fmt.Errorf("%w: Insert - duplicate id %s", reservation.ErrExecQuery, res.ID)
	}
	r.items[res.ID] = *res
	return nil
}

func (r *ReservationRepository) GetByID(_ context.Context, id string) (*domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.items[id]
	if !ok {
		return nil, reservation.ErrReservationNotFound
	}
	return &res, nil
}

func (r *ReservationRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return reservation.ErrReservationNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *ReservationRepository) FindOverlapping(_ context.Context, interval domain.TimeInterval, machine *domain.MachineType) ([]*domain.Reservation, error) {
	return r.find(domain.ReservationFilter{Interval: interval, Machine: machine}), nil
}

func (r *ReservationRepository) FindByCustomer(_ context.Context, interval domain.TimeInterval, customer string, machine *domain.MachineType) ([]*domain.Reservation, error) {
	return r.find(domain.ReservationFilter{Interval: interval, Machine: machine, Customer: &customer}), nil
}

// LockAdmission ничего не делает: допуск сериализуется блокировкой в процессе
func (r *ReservationRepository) LockAdmission(context.Context, string) error {
	return nil
}

// Len количество бронирований
func (r *ReservationRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func (r *ReservationRepository) find(filter domain.ReservationFilter) []*domain.Reservation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Reservation, 0)
	for _, item := range r.items {
		res := item
		if filter.Matches(&res) {
			result = append(result, &res)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i].Interval.Start(), result[j].Interval.Start()
		if !a.Equal(b) {
			return a.Before(b)
		}
		return result[i].ID < result[j].ID
	})

	return result
}
