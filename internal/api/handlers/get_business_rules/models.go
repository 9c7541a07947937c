package get_business_rules

import (
	"github.com/m04kA/SMC-MachineReservations/internal/service/rules/models"
)

// RuleResponse правило в ответе API. Value - число или строка HH:MM.
type RuleResponse struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

// RuleListResponse все правила
type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
	Total int            `json:"total"`
}

func FromRule(r models.Rule) RuleResponse {
	return RuleResponse{Name: string(r.Name), Value: r.Value.Interface()}
}

func FromRules(rules []models.Rule) *RuleListResponse {
	result := make([]RuleResponse, 0, len(rules))
	for _, r := range rules {
		result = append(result, FromRule(r))
	}
	return &RuleListResponse{Rules: result, Total: len(result)}
}
