package driver

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Transactor runs fn inside a database transaction.
type Transactor interface {
	ExecuteTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error
}

var _ Transactor = (*TransactionManager)(nil)

type TransactionManager struct {
	conn   PostgresPool
	logger *zap.Logger
}

func NewTransactionManager(conn PostgresPool, logger *zap.Logger) *TransactionManager {
	return &TransactionManager{
		conn:   conn,
		logger: logger,
	}
}

// ExecuteTransaction commits when fn returns nil and rolls back on error or panic.
func (tm *TransactionManager) ExecuteTransaction(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := tm.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tm.rollback(ctx, tx)
			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		tm.rollback(ctx, tx)
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (tm *TransactionManager) rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		tm.logger.Error("failed to rollback transaction", zap.Error(err))
	}
}
