package domain

import (
	"fmt"
	"strings"
)

// MachineType is the kind of machine being reserved
type MachineType string

const (
	MachineHarvester MachineType = "harvester"
	MachineScanner   MachineType = "scanner"
	MachineScooper   MachineType = "scooper"
)

// MachineTypes lists every supported machine type
var MachineTypes = []MachineType{MachineHarvester, MachineScanner, MachineScooper}

// ParseMachineType normalizes and validates a machine name
func ParseMachineType(s string) (MachineType, error) {
	m := MachineType(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", fmt.Errorf("%w: %q, expected one of harvester, scanner, scooper", ErrUnknownMachineType, s)
	}
	return m, nil
}

// IsValid returns true for supported machine types
func (m MachineType) IsValid() bool {
	switch m {
	case MachineHarvester, MachineScanner, MachineScooper:
		return true
	default:
		return false
	}
}

// AdmissionGroup returns the key of the machines whose admissions must be serialized together.
// Harvester and scanners exclude each other, so they share one group.
func (m MachineType) AdmissionGroup() string {
	switch m {
	case MachineHarvester, MachineScanner:
		return "harvester-scanner"
	default:
		return string(m)
	}
}

func (m MachineType) String() string {
	return string(m)
}
