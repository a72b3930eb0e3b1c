package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lborup/dinkhouse/internal/storage"
)

const (
	// DefaultKey is the well-known location of the generation lock token.
	DefaultKey = "rankings.lock"
	// DefaultTimeout bounds the acquisition retry loop.
	DefaultTimeout = 30 * time.Second
	// DefaultPollInterval is the sleep between acquisition attempts.
	DefaultPollInterval = 500 * time.Millisecond
)

// Lock implements Locker over a storage backend's exclusive create. On the
// local backend that is O_EXCL; on GCS it is a DoesNotExist conditional
// write, which makes the same protocol safe without filesystem semantics.
type Lock struct {
	backend storage.Backend
	key     string
	timeout time.Duration
	poll    time.Duration
	clock   func() time.Time
}

// New creates a Lock at the given key. An empty key and zero timeout/poll
// pick the defaults.
func New(backend storage.Backend, key string, timeout, poll time.Duration) *Lock {
	if key == "" {
		key = DefaultKey
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	return &Lock{
		backend: backend,
		key:     key,
		timeout: timeout,
		poll:    poll,
		clock:   time.Now,
	}
}

// Acquire attempts the exclusive create, sleeping the poll interval between
// attempts, until it succeeds or the timeout elapses. The token content is a
// human-readable acquisition timestamp; only the token's existence carries
// meaning.
func (l *Lock) Acquire(ctx context.Context) error {
	deadline := l.clock().Add(l.timeout)
	for {
		token := []byte(l.clock().UTC().Format(time.RFC3339))
		err := l.backend.CreateExclusive(ctx, l.key, token)
		if err == nil {
			log.Debug("Acquired generation lock", "key", l.key)
			return nil
		}
		if !errors.Is(err, storage.ErrAlreadyExists) {
			return fmt.Errorf("failed to acquire lock %s: %w", l.key, err)
		}
		if l.clock().After(deadline) {
			return fmt.Errorf("%w: %s after %s", ErrTimeout, l.key, l.timeout)
		}
		log.Debug("Lock held by another run, retrying", "key", l.key, "poll", l.poll)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.poll):
		}
	}
}

// Release deletes the lock token.
func (l *Lock) Release(ctx context.Context) error {
	if err := l.backend.Delete(ctx, l.key); err != nil {
		return fmt.Errorf("failed to release lock %s: %w", l.key, err)
	}
	log.Debug("Released generation lock", "key", l.key)
	return nil
}
