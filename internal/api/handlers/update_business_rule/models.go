package update_business_rule

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/m04kA/SMC-MachineReservations/internal/service/rules/models"
)

// UpdateRuleRequest HTTP request model.
// Value принимается и числом (0.75), и строкой ("0.75", "09:00").
type UpdateRuleRequest struct {
	Rule  string          `json:"rule"`
	Value json.RawMessage `json:"value"`
}

// RuleResponse HTTP response model
type RuleResponse struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

// RawValue возвращает значение как текст, который разбирает хранилище правил
func (r *UpdateRuleRequest) RawValue() (string, error) {
	raw := bytes.TrimSpace(r.Value)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", errors.New("value is required")
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", errors.New("value must be a number or a string")
	}
	return n.String(), nil
}

func FromRule(r models.Rule) *RuleResponse {
	return &RuleResponse{Name: string(r.Name), Value: r.Value.Interface()}
}
