package get_business_rules

import (
	"github.com/m04kA/SMC-MachineReservations/internal/service/rules/models"
)

type RulesService interface {
	All() []models.Rule
	Get(name string) (models.Rule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
