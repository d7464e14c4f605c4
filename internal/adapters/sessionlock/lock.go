// Package sessionlock keeps two bootstrap sessions from running at once.
package sessionlock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// FileName is the lock file created in the cache directory.
const FileName = "startquantum.lock"

// ErrLocked is returned when another session holds the lock.
var ErrLocked = errors.New("another startquantum session is running")

// Lock is a held session lock.
type Lock struct {
	fl *flock.Flock
}

// Acquire takes the session lock in dir. It waits up to wait for a running
// session to finish; a zero wait fails immediately.
func Acquire(ctx context.Context, dir string, wait time.Duration) (*Lock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	fl := flock.New(filepath.Join(dir, FileName))

	var (
		locked bool
		err    error
	)
	if wait <= 0 {
		locked, err = fl.TryLock()
	} else {
		lockCtx, cancel := context.WithTimeout(ctx, wait)
		defer cancel()
		locked, err = fl.TryLockContext(lockCtx, 100*time.Millisecond)
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			locked, err = false, nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to acquire session lock %s: %w", fl.Path(), err)
	}
	if !locked {
		return nil, fmt.Errorf("%w (lock file %s)", ErrLocked, fl.Path())
	}

	return &Lock{fl: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.fl.Path()
}

// Release unlocks the session lock.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}
