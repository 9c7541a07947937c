package update_business_rule

import (
	"context"

	"github.com/m04kA/SMC-MachineReservations/internal/service/rules/models"
)

type RulesService interface {
	Set(ctx context.Context, name, raw string) (models.Rule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
