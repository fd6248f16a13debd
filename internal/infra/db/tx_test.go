//go:build unit

package db

import (
	"testing"

	"dental-clinic-api/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryableError(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		retryable bool
	}{
		{name: "serialization failure", err: &pgconn.PgError{Code: "40001"}, retryable: true},
		{name: "deadlock detected", err: &pgconn.PgError{Code: "40P01"}, retryable: true},
		{name: "unique violation is terminal", err: &pgconn.PgError{Code: "23505"}, retryable: false},
		{name: "wrapped serialization failure", err: errs.Wrap(&pgconn.PgError{Code: "40001"}, "insert appointment"), retryable: true},
		{name: "plain error", err: errs.New("boom"), retryable: false},
		{name: "business conflict", err: ErrMaxRetriesExceeded, retryable: false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.retryable, isRetryableError(c.err))
		})
	}
}
