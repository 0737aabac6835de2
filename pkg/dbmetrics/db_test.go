package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct {
	DBExecutor
}

func (f *fakeTx) Commit() error   { return nil }
func (f *fakeTx) Rollback() error { return nil }

func TestQueryOperation(t *testing.T) {
	assert.Equal(t, "select", queryOperation("SELECT id FROM bookings"))
	assert.Equal(t, "insert", queryOperation("\n  INSERT INTO bookings (id) VALUES ($1)"))
	assert.Equal(t, "unknown", queryOperation("   "))
}

func TestGetExecutor(t *testing.T) {
	db := Wrap(nil, nil)
	ctx := context.Background()

	assert.Same(t, db, GetExecutor(ctx, db))
	assert.False(t, IsInTransaction(ctx))

	tx := &fakeTx{}
	txCtx := WithTx(ctx, tx)

	assert.Same(t, tx, GetExecutor(txCtx, db))
	assert.True(t, IsInTransaction(txCtx))
}

func TestNoRowsIsNotError(t *testing.T) {
	assert.NoError(t, noRowsIsNotError(sql.ErrNoRows))
	assert.Error(t, noRowsIsNotError(sql.ErrConnDone))
}
