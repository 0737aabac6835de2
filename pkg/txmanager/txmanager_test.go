package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
)

type mockTx struct {
	dbmetrics.DBExecutor
	committed  bool
	rolledBack bool
	commitErr  error
}

func (m *mockTx) Commit() error {
	m.committed = true
	return m.commitErr
}

func (m *mockTx) Rollback() error {
	m.rolledBack = true
	return nil
}

type mockBeginner struct {
	tx       *mockTx
	beginErr error
	opts     *sql.TxOptions
	calls    int
}

func (m *mockBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	m.calls++
	m.opts = opts
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	return m.tx, nil
}

func TestTransactionManager_Commit(t *testing.T) {
	beginner := &mockBeginner{tx: &mockTx{}}
	mgr := NewTransactionManager(beginner)

	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, beginner.tx.committed)
	assert.False(t, beginner.tx.rolledBack)
	assert.Equal(t, sql.LevelSerializable, beginner.opts.Isolation)
}

func TestTransactionManager_RollbackOnError(t *testing.T) {
	beginner := &mockBeginner{tx: &mockTx{}}
	mgr := NewTransactionManager(beginner)
	wantErr := errors.New("slot taken")

	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	assert.True(t, beginner.tx.rolledBack)
	assert.False(t, beginner.tx.committed)
}

func TestTransactionManager_RollbackOnPanic(t *testing.T) {
	beginner := &mockBeginner{tx: &mockTx{}}
	mgr := NewTransactionManager(beginner)

	assert.Panics(t, func() {
		_ = mgr.Do(context.Background(), func(ctx context.Context) error {
			panic("boom")
		})
	})
	assert.True(t, beginner.tx.rolledBack)
}

func TestTransactionManager_Nested(t *testing.T) {
	beginner := &mockBeginner{tx: &mockTx{}}
	mgr := NewTransactionManager(beginner)

	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		return mgr.DoReadOnly(ctx, func(ctx context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Equal(t, 1, beginner.calls)
}

func TestTransactionManager_BeginAndCommitErrors(t *testing.T) {
	mgr := NewTransactionManager(&mockBeginner{beginErr: errors.New("conn refused")})
	err := mgr.Do(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrBeginTx)

	mgr = NewTransactionManager(&mockBeginner{tx: &mockTx{commitErr: errors.New("serialization failure")}})
	err = mgr.Do(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrCommitTx)
}
