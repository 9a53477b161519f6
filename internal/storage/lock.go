package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"lrn/internal/structures"
)

var ErrLockTimeout = errors.New("timed out waiting for store lock")

const lockRetryDelay = 100 * time.Millisecond

// Lock is the single-writer guard around the store and send cache. It is an
// advisory lock on "<store path>.lock", so it also serializes separate processes.
type Lock struct {
	flock   *flock.Flock
	timeout time.Duration
}

func NewLock(conf *structures.Config) *Lock {
	return &Lock{
		flock:   flock.New(conf.Persistence.StorePath + ".lock"),
		timeout: conf.Persistence.LockTimeout,
	}
}

func (l *Lock) Path() string {
	return l.flock.Path()
}

// Acquire blocks until the lock is held, the timeout elapses or ctx is done.
func (l *Lock) Acquire(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(l.flock.Path()), 0755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	locked, err := l.flock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s", ErrLockTimeout, l.flock.Path())
		}
		return fmt.Errorf("lock %s: %w", l.flock.Path(), err)
	}
	if !locked {
		return fmt.Errorf("%w: %s", ErrLockTimeout, l.flock.Path())
	}
	return nil
}

func (l *Lock) Release() error {
	return l.flock.Unlock()
}
