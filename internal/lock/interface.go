package lock

import (
	"context"
	"errors"
)

// ErrTimeout is returned when the lock could not be acquired within the
// configured timeout. The caller never held the lock and must not release it.
var ErrTimeout = errors.New("lock: acquisition timed out")

// Locker guards a generation run against concurrent invocations. It is a
// cooperative protocol: it only excludes processes that honor the same
// token, and the local backend's exclusive-create is not trustworthy on
// network filesystems.
type Locker interface {
	// Acquire blocks with bounded retry until the lock is held, the timeout
	// elapses (ErrTimeout), or ctx is done.
	Acquire(ctx context.Context) error
	// Release removes the lock token. Safe to call only after a successful
	// Acquire.
	Release(ctx context.Context) error
}
