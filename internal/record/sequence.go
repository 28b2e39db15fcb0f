package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/MrJamesThe3rd/ledger/internal/kv"
)

// Sequence is a counter persisted under its own key. On a kv.Versioned
// medium every value it hands out is unique across writers.
type Sequence struct {
	medium kv.Medium
	key    string
	retry  RetryPolicy
	mu     sync.Mutex
}

func NewSequence(medium kv.Medium, key string) *Sequence {
	return &Sequence{medium: medium, key: key, retry: DefaultRetryPolicy}
}

func (s *Sequence) WithRetry(p RetryPolicy) *Sequence {
	s.retry = p
	return s
}

// Next advances the counter to max(current, floor) + 1 and returns it. floor
// lets callers account for numbers assigned outside the sequence.
func (s *Sequence) Next(ctx context.Context, floor int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	versioned, ok := s.medium.(kv.Versioned)
	if !ok {
		current, err := s.medium.Get(ctx, s.key)
		if err != nil && !errors.Is(err, kv.ErrNotFound) {
			return 0, fmt.Errorf("reading %s: %w", s.key, err)
		}

		next := max(s.decode(current), floor) + 1
		if err := s.medium.Set(ctx, s.key, []byte(fmt.Sprint(next))); err != nil {
			return 0, fmt.Errorf("%w %s: %w", ErrWrite, s.key, err)
		}

		return next, nil
	}

	var next int

	err := withRetries(ctx, s.retry, func() error {
		current, version, err := versioned.GetVersioned(ctx, s.key)
		if err != nil && !errors.Is(err, kv.ErrNotFound) {
			return fmt.Errorf("reading %s: %w", s.key, err)
		}

		next = max(s.decode(current), floor) + 1

		err = versioned.CompareAndSet(ctx, s.key, []byte(fmt.Sprint(next)), version)
		if err != nil && !errors.Is(err, kv.ErrConflict) {
			return fmt.Errorf("%w %s: %w", ErrWrite, s.key, err)
		}

		return err
	})
	if err != nil {
		return 0, err
	}

	return next, nil
}

func (s *Sequence) decode(raw []byte) int {
	if len(raw) == 0 {
		return 0
	}

	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		slog.Warn("resetting unreadable sequence", "key", s.key, "error", err)
		return 0
	}

	return n
}
