package simpletxmanager

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kovaldn/ArenaBookingService/pkg/dbmetrics"
	"github.com/kovaldn/ArenaBookingService/pkg/txmanager"
)

const maxAttempts = 3

// TransactionManager вариант transaction manager поверх голого *sql.DB,
// используется когда метрики отключены
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager создает transaction manager без метрик
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// DoSerializable выполняет fn в SERIALIZABLE транзакции с повтором при 40001.
// Семантика идентична txmanager.TransactionManager.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := m.runOnce(ctx, fn)
		if err == nil {
			return nil
		}

		if !txmanager.IsSerializationFailure(err) {
			return err
		}

		lastErr = err
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 10 * time.Millisecond):
		}
	}

	return fmt.Errorf("simpletxmanager: serializable transaction failed after %d attempts: %w", maxAttempts, lastErr)
}

func (m *TransactionManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("simpletxmanager: begin transaction: %w", err)
	}

	txCtx := dbmetrics.WithExecutor(ctx, plainTx{tx})

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("simpletxmanager: commit transaction: %w", err)
	}

	return nil
}

// plainTx адаптер *sql.Tx под dbmetrics.TxExecutor
type plainTx struct {
	*sql.Tx
}
