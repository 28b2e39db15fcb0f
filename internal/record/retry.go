package record

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/ledger/internal/kv"
)

// RetryPolicy bounds how often a conflicting write is retried. Attempt n
// (starting at 1) waits n × Backoff before re-reading.
type RetryPolicy struct {
	MaxRetries int
	Backoff    time.Duration
}

var DefaultRetryPolicy = RetryPolicy{MaxRetries: 5, Backoff: 10 * time.Millisecond}

// withRetries runs op until it succeeds, fails with something other than a
// version conflict, or the retries are used up.
func withRetries(ctx context.Context, p RetryPolicy, op func() error) error {
	var err error

	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		err = op()
		if err == nil {
			return nil
		}

		if !errors.Is(err, kv.ErrConflict) {
			return err
		}

		if attempt == p.MaxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt+1) * p.Backoff):
		}
	}

	return fmt.Errorf("%w: %w", ErrConflict, err)
}
