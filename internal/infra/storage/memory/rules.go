package memory

import (
	"context"
	"sync"
)

// RulesRepository хранилище бизнес-правил в памяти
type RulesRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewRulesRepository создает хранилище, seed может быть nil
func NewRulesRepository(seed map[string]string) *RulesRepository {
	values := make(map[string]string, len(seed))
	for k, v := range seed {
		values[k] = v
	}
	return &RulesRepository{values: values}
}

func (r *RulesRepository) LoadAll(context.Context) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]string, len(r.values))
	for k, v := range r.values {
		result[k] = v
	}
	return result, nil
}

func (r *RulesRepository) Upsert(_ context.Context, name, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[name] = value
	return nil
}
