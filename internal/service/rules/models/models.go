package models

import (
	"github.com/m04kA/SMC-MachineReservations/internal/domain"
	"github.com/m04kA/SMC-MachineReservations/pkg/types"
)

// Rule бизнес-правило с типизированным значением
type Rule struct {
	Name  domain.RuleName
	Value types.RuleValue
}

// FromBusinessRules раскладывает правила в список в порядке domain.RuleNames
func FromBusinessRules(r domain.BusinessRules) []Rule {
	result := make([]Rule, 0, len(domain.RuleNames))
	for _, name := range domain.RuleNames {
		value, err := r.Get(name)
		if err != nil {
			continue
		}
		result = append(result, Rule{Name: name, Value: value})
	}
	return result
}
