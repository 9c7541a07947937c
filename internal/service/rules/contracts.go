package rules

import "context"

// RulesRepository интерфейс хранилища бизнес-правил (имя -> значение в каноническом виде)
type RulesRepository interface {
	LoadAll(ctx context.Context) (map[string]string, error)
	Upsert(ctx context.Context, name, value string) error
}

// MetricsCollector интерфейс для метрик изменения правил
type MetricsCollector interface {
	ObserveRuleUpdate(rule string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
