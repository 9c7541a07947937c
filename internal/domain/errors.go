package domain

import "errors"

// Error kinds of the reservation rule engine. Callers match them with errors.Is,
// details are attached with fmt.Errorf("%w: ...").
var (
	// ErrMalformedInput is returned when interval text fails to parse, start >= end,
	// or a rule value does not fit its field
	ErrMalformedInput = errors.New("malformed input")

	// ErrSchedulingViolation is returned when an operating-hours or advance-window rule is broken
	ErrSchedulingViolation = errors.New("scheduling violation")

	// ErrCapacityViolation is returned when a machine availability constraint is broken
	ErrCapacityViolation = errors.New("capacity violation")

	// ErrUnknownMachineType is returned for machine types outside harvester, scanner, scooper
	ErrUnknownMachineType = errors.New("unknown machine type")

	// ErrUnknownRule is returned for business rule names that are not recognized
	ErrUnknownRule = errors.New("unknown business rule")

	// ErrNotFound is returned when a reservation does not exist
	ErrNotFound = errors.New("reservation not found")
)
