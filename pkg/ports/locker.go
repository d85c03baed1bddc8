package ports

import (
	"context"
	"time"
)

// UnlockFunc is a function that releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker defines the interface for distributed concurrency control.
// The session manager takes it around every signal so that two replicas
// never interleave transitions of the same reading session.
type DistributedLocker interface {
	// Lock blocks until the lock for key is held or ctx is done.
	// ttl bounds how long a crashed holder can keep it.
	// Returns an UnlockFunc that MUST be called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
