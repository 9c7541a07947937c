package schema

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MachineReservations/pkg/sqlbuilder"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationFiles embed.FS

const migrationsLockID int64 = 734019265

// Apply применяет встроенные миграции диалекта в порядке имён файлов.
// Применённые миграции записываются в schema_migrations, повторный вызов ничего не делает.
func Apply(ctx context.Context, db *sql.DB, dialect sqlbuilder.Dialect) error {
	dir := path.Join("migrations", string(dialect))

	entries, err := migrationFiles.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read migrations %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire conn: %w", err)
	}
	defer conn.Close()

	if dialect == sqlbuilder.Postgres {
		if _, err := conn.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, migrationsLockID); err != nil {
			return fmt.Errorf("acquire migration lock: %w", err)
		}
		defer func() {
			_, _ = conn.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, migrationsLockID)
		}()
	}

	if _, err := conn.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
	name TEXT PRIMARY KEY
)`); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	builder := dialect.Builder()
	for _, name := range names {
		applied, err := isApplied(ctx, conn, builder, name)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", name, err)
		}
		if applied {
			continue
		}

		body, err := migrationFiles.ReadFile(path.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}

		for _, stmt := range statements(string(body)) {
			if _, err := conn.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("exec migration %s: %w", name, err)
			}
		}

		query, args, err := builder.Insert("schema_migrations").Columns("name").Values(name).ToSql()
		if err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
		if _, err := conn.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
	}

	return nil
}

func isApplied(ctx context.Context, conn *sql.Conn, builder squirrel.StatementBuilderType, name string) (bool, error) {
	query, args, err := builder.Select("COUNT(*)").
		From("schema_migrations").
		Where(squirrel.Eq{"name": name}).
		ToSql()
	if err != nil {
		return false, err
	}

	var n int
	if err := conn.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// statements режет файл миграции по ";" - не все драйверы выполняют несколько запросов за раз
func statements(body string) []string {
	parts := strings.Split(body, ";")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			result = append(result, s)
		}
	}
	return result
}
