package rules

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-MachineReservations/internal/infra/storage/schema"
	"github.com/m04kA/SMC-MachineReservations/pkg/dbmetrics"
	"github.com/m04kA/SMC-MachineReservations/pkg/sqlbuilder"
)

func TestRepository_UpsertAndLoadAll(t *testing.T) {
	ctx := context.Background()

	raw, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	raw.SetMaxOpenConns(1)
	defer raw.Close()
	require.NoError(t, schema.Apply(ctx, raw, sqlbuilder.SQLite))

	repo := NewRepository(dbmetrics.Wrap(raw, nil), sqlbuilder.SQLite)

	values, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, values)

	require.NoError(t, repo.Upsert(ctx, "week_refund", "0.75"))
	require.NoError(t, repo.Upsert(ctx, "number_of_scanners", "4"))
	require.NoError(t, repo.Upsert(ctx, "week_refund", "0.8"))

	values, err = repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"week_refund": "0.8", "number_of_scanners": "4"}, values)
}
