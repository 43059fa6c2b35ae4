package driver

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
	commitErr  error
}

func (s *stubTx) Commit(context.Context) error {
	s.committed = true
	return s.commitErr
}

func (s *stubTx) Rollback(context.Context) error {
	s.rolledBack = true
	return nil
}

type stubPool struct {
	PostgresPool
	tx       *stubTx
	beginErr error
}

func (s *stubPool) Begin(context.Context) (pgx.Tx, error) {
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	return s.tx, nil
}

func TestExecuteTransactionCommits(t *testing.T) {
	pool := &stubPool{tx: &stubTx{}}
	tm := NewTransactionManager(pool, zap.NewNop())

	var seen pgx.Tx
	err := tm.ExecuteTransaction(context.Background(), func(tx pgx.Tx) error {
		seen = tx
		return nil
	})
	require.NoError(t, err)
	assert.Same(t, pool.tx, seen)
	assert.True(t, pool.tx.committed)
	assert.False(t, pool.tx.rolledBack)
}

func TestExecuteTransactionRollsBackOnError(t *testing.T) {
	pool := &stubPool{tx: &stubTx{}}
	tm := NewTransactionManager(pool, zap.NewNop())
	boom := errors.New("boom")

	err := tm.ExecuteTransaction(context.Background(), func(pgx.Tx) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, pool.tx.committed)
	assert.True(t, pool.tx.rolledBack)
}

func TestExecuteTransactionRollsBackOnPanic(t *testing.T) {
	pool := &stubPool{tx: &stubTx{}}
	tm := NewTransactionManager(pool, zap.NewNop())

	assert.PanicsWithValue(t, "kaboom", func() {
		_ = tm.ExecuteTransaction(context.Background(), func(pgx.Tx) error { panic("kaboom") })
	})
	assert.True(t, pool.tx.rolledBack)
}

func TestExecuteTransactionBeginFailure(t *testing.T) {
	beginErr := errors.New("pool closed")
	tm := NewTransactionManager(&stubPool{beginErr: beginErr}, zap.NewNop())

	called := false
	err := tm.ExecuteTransaction(context.Background(), func(pgx.Tx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, beginErr)
	assert.False(t, called)
}

func TestExecuteTransactionCommitFailure(t *testing.T) {
	commitErr := errors.New("serialization failure")
	pool := &stubPool{tx: &stubTx{commitErr: commitErr}}
	tm := NewTransactionManager(pool, zap.NewNop())

	err := tm.ExecuteTransaction(context.Background(), func(pgx.Tx) error { return nil })
	assert.ErrorIs(t, err, commitErr)
}
