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

	"github.com/bookflow/bookflow-api/pkg/dbmetrics"
)

type fakeTx struct{}

func (fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}
func (fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}
func (fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row { return nil }
func (fakeTx) Commit() error                                                   { return nil }
func (fakeTx) Rollback() error                                                 { return nil }

type fakeBeginner struct {
	begins int
}

func (f *fakeBeginner) BeginTx(context.Context, *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	f.begins++
	return fakeTx{}, nil
}

// serialization failure так, как он приходит из usecase: pq.Error, обернутый
// дважды через %w (репозиторий, затем usecase)
func wrappedSerializationFailure() error {
	cause := &pq.Error{Code: "40001"}
	repoErr := fmt.Errorf("%w: ListActiveByEmployeeAndDate - execute query: %w",
		errors.New("storage: execute query"), cause)
	return fmt.Errorf("%w: failed to get bookings: %w", errors.New("internal error"), repoErr)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"serialization failure", &pq.Error{Code: "40001"}, true},
		{"deadlock", &pq.Error{Code: "40P01"}, true},
		{"other pq code", &pq.Error{Code: "23505"}, false},
		{"wrapped through repository and usecase", wrappedSerializationFailure(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}

func TestDoSerializable_RetriesSerializationFailure(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner)

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return wrappedSerializationFailure()
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 3, beginner.begins)
}

func TestDoSerializable_NonRetryableFailsImmediately(t *testing.T) {
	m := NewTransactionManager(&fakeBeginner{})

	cause := errors.New("constraint violation")
	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return cause
	})

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, attempts)
}

func TestDoSerializable_ExhaustsRetries(t *testing.T) {
	m := NewTransactionManager(&fakeBeginner{})

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return wrappedSerializationFailure()
	})

	require.Error(t, err)
	assert.Equal(t, serializationRetries+1, attempts)

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr), "cause stays visible through the wraps")
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
}
