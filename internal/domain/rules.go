package domain

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-MachineReservations/pkg/types"
)

// BusinessRules is the mutable configuration table: prices, capacities,
// operating hours and refund fractions
type BusinessRules struct {
	HarvesterPrice      float64
	ScooperPricePerHour float64
	ScannerPricePerHour float64

	MaxScanners int
	MaxScoopers int

	WeekdayOpen  types.TimeString
	WeekdayClose types.TimeString
	WeekendOpen  types.TimeString
	WeekendClose types.TimeString

	WeekAdvanceRefundFraction  float64
	ShortAdvanceRefundFraction float64
}

// DefaultBusinessRules returns the rules the service starts with when nothing is persisted
func DefaultBusinessRules() BusinessRules {
	return BusinessRules{
		HarvesterPrice:             DefaultHarvesterPrice,
		ScooperPricePerHour:        DefaultScooperPricePerHour,
		ScannerPricePerHour:        DefaultScannerPricePerHour,
		MaxScanners:                DefaultMaxScanners,
		MaxScoopers:                DefaultMaxScoopers,
		WeekdayOpen:                types.MustTimeString(DefaultWeekdayOpen),
		WeekdayClose:               types.MustTimeString(DefaultWeekdayClose),
		WeekendOpen:                types.MustTimeString(DefaultWeekendOpen),
		WeekendClose:               types.MustTimeString(DefaultWeekendClose),
		WeekAdvanceRefundFraction:  DefaultWeekAdvanceRefundFraction,
		ShortAdvanceRefundFraction: DefaultShortAdvanceRefundFraction,
	}
}

// Validate checks the invariants: prices >= 0, capacities >= 1, fractions in [0,1], open < close
func (r BusinessRules) Validate() error {
	prices := map[RuleName]float64{
		RuleHarvesterPrice:      r.HarvesterPrice,
		RuleScooperPricePerHour: r.ScooperPricePerHour,
		RuleScannerPricePerHour: r.ScannerPricePerHour,
	}
	for name, price := range prices {
		if price < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrMalformedInput, name)
		}
	}

	if r.MaxScanners < 1 {
		return fmt.Errorf("%w: %s must be at least 1", ErrMalformedInput, RuleMaxScanners)
	}
	if r.MaxScoopers < 1 {
		return fmt.Errorf("%w: %s must be at least 1", ErrMalformedInput, RuleMaxScoopers)
	}

	fractions := map[RuleName]float64{
		RuleWeekAdvanceRefund:  r.WeekAdvanceRefundFraction,
		RuleShortAdvanceRefund: r.ShortAdvanceRefundFraction,
	}
	for name, f := range fractions {
		if f < 0 || f > 1 {
			return fmt.Errorf("%w: %s must be within [0, 1]", ErrMalformedInput, name)
		}
	}

	if err := validateHours(RuleWeekdayOpen, r.WeekdayOpen, r.WeekdayClose); err != nil {
		return err
	}
	return validateHours(RuleWeekendOpen, r.WeekendOpen, r.WeekendClose)
}

func validateHours(name RuleName, open, close types.TimeString) error {
	if err := open.Validate(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedInput, name, err)
	}
	if err := close.Validate(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedInput, name, err)
	}
	if !open.IsBefore(close) {
		return fmt.Errorf("%w: %s %s must be before closing time %s", ErrMalformedInput, name, open, close)
	}
	return nil
}

// RuleName is the public name of a business rule field
type RuleName string

const (
	RuleHarvesterPrice      RuleName = "harvester_price"
	RuleScooperPricePerHour RuleName = "scooper_price_per_hour"
	RuleScannerPricePerHour RuleName = "scanner_price_per_hour"
	RuleMaxScanners         RuleName = "number_of_scanners"
	RuleMaxScoopers         RuleName = "number_of_scoopers"
	RuleWeekdayOpen         RuleName = "weekday_start"
	RuleWeekdayClose        RuleName = "weekday_end"
	RuleWeekendOpen         RuleName = "weekend_start"
	RuleWeekendClose        RuleName = "weekend_end"
	RuleWeekAdvanceRefund   RuleName = "week_refund"
	RuleShortAdvanceRefund  RuleName = "two_day_refund"
)

// RuleNames lists every rule in display order
var RuleNames = []RuleName{
	RuleHarvesterPrice,
	RuleScooperPricePerHour,
	RuleScannerPricePerHour,
	RuleMaxScanners,
	RuleMaxScoopers,
	RuleWeekdayOpen,
	RuleWeekdayClose,
	RuleWeekendOpen,
	RuleWeekendClose,
	RuleWeekAdvanceRefund,
	RuleShortAdvanceRefund,
}

// ParseRuleName rejects names outside the closed set of rules
func ParseRuleName(s string) (RuleName, error) {
	name := RuleName(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := ruleFields[name]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRule, s)
	}
	return name, nil
}

// Get returns the typed value of a rule field
func (r BusinessRules) Get(name RuleName) (types.RuleValue, error) {
	field, ok := ruleFields[name]
	if !ok {
		return types.RuleValue{}, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	return field.get(r), nil
}

// Set assigns a typed value to a rule field. Cross-field invariants are checked by Validate.
func (r *BusinessRules) Set(name RuleName, value types.RuleValue) error {
	field, ok := ruleFields[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	if err := field.set(r, value); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedInput, name, err)
	}
	return nil
}

type ruleField struct {
	get func(BusinessRules) types.RuleValue
	set func(*BusinessRules, types.RuleValue) error
}

var ruleFields = map[RuleName]ruleField{
	RuleHarvesterPrice: numberField(func(r *BusinessRules) *float64 { return &r.HarvesterPrice }),
	RuleScooperPricePerHour: numberField(func(r *BusinessRules) *float64 {
		return &r.ScooperPricePerHour
	}),
	RuleScannerPricePerHour: numberField(func(r *BusinessRules) *float64 {
		return &r.ScannerPricePerHour
	}),
	RuleMaxScanners:        intField(func(r *BusinessRules) *int { return &r.MaxScanners }),
	RuleMaxScoopers:        intField(func(r *BusinessRules) *int { return &r.MaxScoopers }),
	RuleWeekdayOpen:        timeField(func(r *BusinessRules) *types.TimeString { return &r.WeekdayOpen }),
	RuleWeekdayClose:       timeField(func(r *BusinessRules) *types.TimeString { return &r.WeekdayClose }),
	RuleWeekendOpen:        timeField(func(r *BusinessRules) *types.TimeString { return &r.WeekendOpen }),
	RuleWeekendClose:       timeField(func(r *BusinessRules) *types.TimeString { return &r.WeekendClose }),
	RuleWeekAdvanceRefund:  numberField(func(r *BusinessRules) *float64 { return &r.WeekAdvanceRefundFraction }),
	RuleShortAdvanceRefund: numberField(func(r *BusinessRules) *float64 { return &r.ShortAdvanceRefundFraction }),
}

func numberField(ref func(*BusinessRules) *float64) ruleField {
	return ruleField{
		get: func(r BusinessRules) types.RuleValue {
			return types.FloatRuleValue(*ref(&r))
		},
		set: func(r *BusinessRules, v types.RuleValue) error {
			n, ok := v.Number()
			if !ok {
				return fmt.Errorf("expected a number, got %q", v.Str)
			}
			*ref(r) = n
			return nil
		},
	}
}

func intField(ref func(*BusinessRules) *int) ruleField {
	return ruleField{
		get: func(r BusinessRules) types.RuleValue {
			return types.IntRuleValue(int64(*ref(&r)))
		},
		set: func(r *BusinessRules, v types.RuleValue) error {
			if v.Kind != types.RuleValueInt {
				return fmt.Errorf("expected a whole number, got %q", v.String())
			}
			*ref(r) = int(v.Int)
			return nil
		},
	}
}

func timeField(ref func(*BusinessRules) *types.TimeString) ruleField {
	return ruleField{
		get: func(r BusinessRules) types.RuleValue {
			return types.StringRuleValue(ref(&r).String())
		},
		set: func(r *BusinessRules, v types.RuleValue) error {
			if v.Kind != types.RuleValueString {
				return fmt.Errorf("expected a time of day HH:MM, got %q", v.String())
			}
			ts, err := types.NewTimeStringFromString(strings.TrimSpace(v.Str))
			if err != nil {
				return err
			}
			*ref(r) = ts
			return nil
		},
	}
}
