package rules

import (
	"context"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-MachineReservations/internal/domain"
	"github.com/m04kA/SMC-MachineReservations/internal/service/rules/models"
	"github.com/m04kA/SMC-MachineReservations/pkg/types"
)

// Store живой снимок бизнес-правил.
// Читатели получают копию под RLock, поэтому никогда не видят частично обновлённые правила.
// Запись сериализуется writeMu: проверка, сохранение в БД и подмена снимка идут одним шагом.
type Store struct {
	repo    RulesRepository
	metrics MetricsCollector
	logger  Logger

	writeMu sync.Mutex
	mu      sync.RWMutex
	rules   domain.BusinessRules
}

// NewStore создает хранилище правил, до вызова Load в нём лежат defaults
func NewStore(repo RulesRepository, defaults domain.BusinessRules, metrics MetricsCollector, logger Logger) *Store {
	return &Store{
		repo:    repo,
		metrics: metrics,
		logger:  logger,
		rules:   defaults,
	}
}

// Load накладывает сохранённые значения на текущие и делает результат живым снимком.
// Неизвестные имена в хранилище пропускаются с предупреждением.
func (s *Store) Load(ctx context.Context) (domain.BusinessRules, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	persisted, err := s.repo.LoadAll(ctx)
	if err != nil {
		s.logger.Error("Load: repository error: %v", err)
		return domain.BusinessRules{}, fmt.Errorf("%w: Load - repository error: %v", ErrInternal, err)
	}

	rules := s.Snapshot()
	for raw, value := range persisted {
		name, err := domain.ParseRuleName(raw)
		if err != nil {
			s.logger.Warn("Load: skipping unknown rule %q", raw)
			continue
		}
		if err := rules.Set(name, types.ParseRuleValue(value)); err != nil {
			s.logger.Error("Load: persisted rule %s=%q is invalid: %v", name, value, err)
			return domain.BusinessRules{}, err
		}
	}

	if err := rules.Validate(); err != nil {
		s.logger.Error("Load: persisted rules are inconsistent: %v", err)
		return domain.BusinessRules{}, err
	}

	s.swap(rules)
	s.logger.Info("Load: loaded business rules, %d persisted values", len(persisted))
	return rules, nil
}

// Snapshot возвращает копию текущих правил
func (s *Store) Snapshot() domain.BusinessRules {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rules
}

// Get возвращает значение одного правила
func (s *Store) Get(name string) (models.Rule, error) {
	ruleName, err := domain.ParseRuleName(name)
	if err != nil {
		return models.Rule{}, err
	}

	value, err := s.Snapshot().Get(ruleName)
	if err != nil {
		return models.Rule{}, err
	}
	return models.Rule{Name: ruleName, Value: value}, nil
}

// All возвращает все правила
func (s *Store) All() []models.Rule {
	return models.FromBusinessRules(s.Snapshot())
}

// Set типизирует значение, проверяет инварианты на копии, сохраняет и только потом
// подменяет живой снимок. При ошибке снимок не меняется.
func (s *Store) Set(ctx context.Context, name, raw string) (models.Rule, error) {
	ruleName, err := domain.ParseRuleName(name)
	if err != nil {
		s.logger.Warn("Set: %v", err)
		return models.Rule{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	// 1. Применяем значение к копии
	updated := s.Snapshot()
	if err := updated.Set(ruleName, types.ParseRuleValue(raw)); err != nil {
		s.logger.Warn("Set: rejected %s=%q: %v", ruleName, raw, err)
		return models.Rule{}, err
	}

	// 2. Проверяем инварианты всего набора
	if err := updated.Validate(); err != nil {
		s.logger.Warn("Set: rejected %s=%q: %v", ruleName, raw, err)
		return models.Rule{}, err
	}

	// 3. Сохраняем каноническое значение
	value, _ := updated.Get(ruleName)
	if err := s.repo.Upsert(ctx, string(ruleName), value.String()); err != nil {
		s.logger.Error("Set: repository error for %s: %v", ruleName, err)
		return models.Rule{}, fmt.Errorf("%w: Set - repository error: %v", ErrInternal, err)
	}

	// 4. Подменяем живой снимок
	s.swap(updated)
	if s.metrics != nil {
		s.metrics.ObserveRuleUpdate(string(ruleName))
	}

	s.logger.Info("Set: rule %s updated to %s", ruleName, value)
	return models.Rule{Name: ruleName, Value: value}, nil
}

func (s *Store) swap(rules domain.BusinessRules) {
	s.mu.Lock()
	s.rules = rules
	s.mu.Unlock()
}
