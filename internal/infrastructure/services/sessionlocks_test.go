package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tempus/internal/shared/errors"
)

func TestSessionLocks_AcquireAndRelease(t *testing.T) {
	locks := NewSessionLocks(50 * time.Millisecond)
	ctx := context.Background()

	release, err := locks.Acquire(ctx, 1)
	require.NoError(t, err)
	release()

	release, err = locks.Acquire(ctx, 1)
	require.NoError(t, err)
	release()
}

func TestSessionLocks_ContendedReturnsBusy(t *testing.T) {
	locks := NewSessionLocks(20 * time.Millisecond)
	ctx := context.Background()

	release, err := locks.Acquire(ctx, 1)
	require.NoError(t, err)
	defer release()

	_, err = locks.Acquire(ctx, 1)
	assert.True(t, apperrors.IsBusyError(err))
}

func TestSessionLocks_IndependentSessions(t *testing.T) {
	locks := NewSessionLocks(20 * time.Millisecond)
	ctx := context.Background()

	release1, err := locks.Acquire(ctx, 1)
	require.NoError(t, err)
	defer release1()

	release2, err := locks.Acquire(ctx, 2)
	require.NoError(t, err)
	defer release2()
}

func TestSessionLocks_WaitsForRelease(t *testing.T) {
	locks := NewSessionLocks(500 * time.Millisecond)
	ctx := context.Background()

	release, err := locks.Acquire(ctx, 1)
	require.NoError(t, err)

	go func() {
		time.Sleep(20 * time.Millisecond)
		release()
	}()

	release2, err := locks.Acquire(ctx, 1)
	require.NoError(t, err)
	release2()
}

func TestSessionLocks_ContextCancellation(t *testing.T) {
	locks := NewSessionLocks(time.Second)

	release, err := locks.Acquire(context.Background(), 1)
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = locks.Acquire(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
