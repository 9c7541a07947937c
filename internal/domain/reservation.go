package domain

import (
	"fmt"
	"strings"
	"time"
)

// Reservation is an admitted booking of one machine for one interval
type Reservation struct {
	ID          string
	Customer    string
	Machine     MachineType
	Interval    TimeInterval
	Cost        float64
	DownPayment float64
	CreatedAt   time.Time
}

// NewReservation builds a reservation from a quote; the down payment is always derived from the cost
func NewReservation(id, customer string, machine MachineType, interval TimeInterval, cost float64, createdAt time.Time) (*Reservation, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: reservation id is required", ErrMalformedInput)
	}
	if err := ValidateCustomer(customer); err != nil {
		return nil, err
	}
	if !machine.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMachineType, machine)
	}
	if interval.IsZero() {
		return nil, fmt.Errorf("%w: interval is required", ErrMalformedInput)
	}
	if cost < 0 {
		return nil, fmt.Errorf("%w: cost must not be negative", ErrMalformedInput)
	}

	return &Reservation{
		ID:          id,
		Customer:    strings.TrimSpace(customer),
		Machine:     machine,
		Interval:    interval,
		Cost:        cost,
		DownPayment: DownPaymentFor(cost),
		CreatedAt:   createdAt,
	}, nil
}

// DownPaymentFor returns the down payment owed for a cost
func DownPaymentFor(cost float64) float64 {
	return cost * DownPaymentFraction
}

// ValidateCustomer checks the customer name
func ValidateCustomer(customer string) error {
	name := strings.TrimSpace(customer)
	if name == "" {
		return fmt.Errorf("%w: customer is required", ErrMalformedInput)
	}
	if len(name) > MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name is longer than %d characters", ErrMalformedInput, MaxCustomerNameLength)
	}
	return nil
}

// ReservationFilter selects reservations overlapping an interval, optionally narrowed
// to a machine type and a customer
type ReservationFilter struct {
	Interval TimeInterval
	Machine  *MachineType
	Customer *string
}

// Matches applies the filter to a single reservation
func (f ReservationFilter) Matches(r *Reservation) bool {
	if !r.Interval.Overlaps(f.Interval) {
		return false
	}
	if f.Machine != nil && r.Machine != *f.Machine {
		return false
	}
	if f.Customer != nil && r.Customer != *f.Customer {
		return false
	}
	return true
}
