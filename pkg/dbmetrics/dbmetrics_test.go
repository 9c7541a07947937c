package dbmetrics

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

type recordingCollector struct {
	mu         sync.Mutex
	operations []string
	failed     []string
	pools      int
}

func (c *recordingCollector) ObserveDBQuery(operation string, err error, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.operations = append(c.operations, operation)
	if err != nil {
		c.failed = append(c.failed, operation)
	}
}

func (c *recordingCollector) ObservePool(sql.DBStats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pools++
}

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDB_ObservesQueries(t *testing.T) {
	collector := &recordingCollector{}
	db := Wrap(openSQLite(t), collector)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `CREATE TABLE t (v INTEGER)`)
	require.NoError(t, err)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	_, err = tx.ExecContext(ctx, `INSERT INTO t (v) VALUES (1)`)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	var v int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT v FROM t`).Scan(&v))
	assert.Equal(t, 1, v)

	_, err = db.ExecContext(ctx, `SELECT * FROM missing`)
	assert.Error(t, err)

	assert.Equal(t, []string{"exec", "begin", "tx_exec", "commit", "query_row", "exec"}, collector.operations)
	assert.Equal(t, []string{"exec"}, collector.failed)
}

func TestDB_NilCollector(t *testing.T) {
	db := Wrap(openSQLite(t), nil)

	_, err := db.ExecContext(context.Background(), `SELECT 1`)
	assert.NoError(t, err)
}

func TestWrapWithDefault_CollectsPoolStats(t *testing.T) {
	collector := &recordingCollector{}
	stopCh := make(chan struct{})
	defer close(stopCh)

	WrapWithDefault(openSQLite(t), collector, stopCh)

	assert.Eventually(t, func() bool {
		collector.mu.Lock()
		defer collector.mu.Unlock()
		return collector.pools > 0
	}, time.Second, 10*time.Millisecond)
}

func TestGetExecutor(t *testing.T) {
	db := Wrap(openSQLite(t), nil)
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, tx, GetExecutor(txCtx, db))
}
