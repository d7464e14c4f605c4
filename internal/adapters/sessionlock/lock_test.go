package sessionlock

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquire_Exclusive(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "cache")
	ctx := context.Background()

	first, err := Acquire(ctx, dir, 0)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), first.Path())

	_, err = Acquire(ctx, dir, 0)
	require.ErrorIs(t, err, ErrLocked)

	require.NoError(t, first.Release())

	second, err := Acquire(ctx, dir, 0)
	require.NoError(t, err)
	require.NoError(t, second.Release())
}

func TestAcquire_WaitTimesOut(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()

	held, err := Acquire(ctx, dir, 0)
	require.NoError(t, err)
	defer func() { _ = held.Release() }()

	start := time.Now()
	_, err = Acquire(ctx, dir, 300*time.Millisecond)
	require.ErrorIs(t, err, ErrLocked)
	assert.GreaterOrEqual(t, time.Since(start), 200*time.Millisecond)
}

func TestAcquire_WaitSucceedsAfterRelease(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()

	held, err := Acquire(ctx, dir, 0)
	require.NoError(t, err)

	go func() {
		time.Sleep(150 * time.Millisecond)
		_ = held.Release()
	}()

	lock, err := Acquire(ctx, dir, 5*time.Second)
	require.NoError(t, err)
	require.NoError(t, lock.Release())
}

func TestRelease_Nil(t *testing.T) {
	t.Parallel()

	var lock *Lock
	assert.NoError(t, lock.Release())
}
