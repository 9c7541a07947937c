package sqlbuilder

import (
	"fmt"

	"github.com/Masterminds/squirrel"
)

// Dialect диалект SQL, под который строятся запросы
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// ParseDialect проверяет название диалекта
func ParseDialect(s string) (Dialect, error) {
	switch Dialect(s) {
	case Postgres, SQLite:
		return Dialect(s), nil
	default:
		return "", fmt.Errorf("sqlbuilder: unsupported dialect %q", s)
	}
}

// Builder squirrel-билдер с плейсхолдерами нужного диалекта
func (d Dialect) Builder() squirrel.StatementBuilderType {
	if d == Postgres {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

// SupportsRowLocks поддерживает ли диалект SELECT ... FOR UPDATE
func (d Dialect) SupportsRowLocks() bool {
	return d == Postgres
}

// SupportsAdvisoryLocks поддерживает ли диалект pg_advisory_xact_lock
func (d Dialect) SupportsAdvisoryLocks() bool {
	return d == Postgres
}
