package rules

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-MachineReservations/pkg/dbmetrics"
	"github.com/m04kA/SMC-MachineReservations/pkg/sqlbuilder"
)

const table = "business_rules"

// Repository хранилище бизнес-правил в виде пар имя/значение
type Repository struct {
	db      DBExecutor
	dialect sqlbuilder.Dialect
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db DBExecutor, dialect sqlbuilder.Dialect) *Repository {
	return &Repository{db: db, dialect: dialect}
}

// LoadAll возвращает все сохранённые правила
func (r *Repository) LoadAll(ctx context.Context) (map[string]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Builder().
		Select("name", "value").
		From(table).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: LoadAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: LoadAll - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("%w: LoadAll - scan rule: %v", ErrScanRow, err)
		}
		result[name] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: LoadAll - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// Upsert сохраняет значение правила, перезаписывая предыдущее.
// ON CONFLICT ... DO UPDATE поддерживают и postgres, и sqlite.
func (r *Repository) Upsert(ctx context.Context, name, value string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Builder().
		Insert(table).
		Columns("name", "value").
		Values(name, value).
		Suffix("ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
