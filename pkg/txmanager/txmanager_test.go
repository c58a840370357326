package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovaldn/ArenaBookingService/pkg/dbmetrics"
)

type fakeTx struct {
	commitErrs []error
	commits    int
	rollbacks  int
}

func (t *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) Commit() error {
	t.commits++
	if len(t.commitErrs) > 0 {
		err := t.commitErrs[0]
		t.commitErrs = t.commitErrs[1:]
		return err
	}
	return nil
}

func (t *fakeTx) Rollback() error {
	t.rollbacks++
	return nil
}

type fakeDB struct {
	tx     *fakeTx
	begins int
}

func (d *fakeDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	d.begins++
	return d.tx, nil
}

func serializationErr() error {
	return &pq.Error{Code: "40001"}
}

func TestDoSerializable_RetriesInTxSerializationFailure(t *testing.T) {
	tx := &fakeTx{}
	db := &fakeDB{tx: tx}
	manager := NewTransactionManager(db)

	attempts := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts == 1 {
			return serializationErr()
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, 2, db.begins)
	assert.Equal(t, 1, tx.rollbacks)
	assert.Equal(t, 1, tx.commits)
}

func TestDoSerializable_RetriesCommitSerializationFailure(t *testing.T) {
	tx := &fakeTx{commitErrs: []error{serializationErr()}}
	db := &fakeDB{tx: tx}
	manager := NewTransactionManager(db)

	attempts := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, 2, tx.commits)
}

func TestDoSerializable_DoesNotRetryOtherErrors(t *testing.T) {
	tx := &fakeTx{}
	db := &fakeDB{tx: tx}
	manager := NewTransactionManager(db)

	sentinel := errors.New("boom")
	attempts := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return sentinel
	})

	require.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, tx.rollbacks)
	assert.Equal(t, 0, tx.commits)
}

func TestDoSerializable_GivesUpAfterMaxAttempts(t *testing.T) {
	tx := &fakeTx{}
	db := &fakeDB{tx: tx}
	manager := NewTransactionManager(db)

	attempts := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return serializationErr()
	})

	require.Error(t, err)
	assert.Equal(t, maxAttempts, attempts)

	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr)
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
}

func TestDoSerializable_PassesTransactionThroughContext(t *testing.T) {
	tx := &fakeTx{}
	db := &fakeDB{tx: tx}
	manager := NewTransactionManager(db)

	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
}

func TestIsSerializationFailure(t *testing.T) {
	assert.True(t, IsSerializationFailure(serializationErr()))
	assert.True(t, IsSerializationFailure(fmt.Errorf("txmanager: commit transaction: %w", serializationErr())))

	assert.False(t, IsSerializationFailure(&pq.Error{Code: "23P01"}))
	assert.False(t, IsSerializationFailure(errors.New("boom")))
	assert.False(t, IsSerializationFailure(nil))
}
