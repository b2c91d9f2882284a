package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoeShih716/go-rinha-ledger/internal/app/core/domain"
)

func TestNewAccountStore(t *testing.T) {
	store, err := NewAccountStore(domain.DefaultAccountSeeds())
	require.NoError(t, err)

	assert.Equal(t, 5, store.Len())
	assert.Equal(t, []uint8{1, 2, 3, 4, 5}, store.IDs())

	_, ok := store.Get(99)
	assert.False(t, ok)
	_, ok = store.Get(0)
	assert.False(t, ok)
}

func TestNewAccountStore_DuplicateID(t *testing.T) {
	_, err := NewAccountStore([]domain.AccountSeed{{ID: 1, Limit: 10}, {ID: 1, Limit: 20}})
	assert.ErrorIs(t, err, domain.ErrAccountAlreadyExists)
}

func TestNewAccountStore_NegativeLimit(t *testing.T) {
	_, err := NewAccountStore([]domain.AccountSeed{{ID: 1, Limit: -10}})
	assert.ErrorIs(t, err, domain.ErrNegativeLimit)
}

func TestAccountHandle_UpdateCancelledBeforeStart(t *testing.T) {
	store, err := NewAccountStore([]domain.AccountSeed{{ID: 1, Limit: 100}})
	require.NoError(t, err)
	handle, ok := store.Get(1)
	require.True(t, ok)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err = handle.Update(ctx, func(a *domain.Account) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)

	// 鎖必須已釋放
	require.NoError(t, handle.Update(context.Background(), func(a *domain.Account) error { return nil }))
}

func TestAccountHandle_CancelledWhileWaiting(t *testing.T) {
	store, err := NewAccountStore([]domain.AccountSeed{{ID: 1, Limit: 100}})
	require.NoError(t, err)
	handle, _ := store.Get(1)

	holding := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = handle.Update(context.Background(), func(a *domain.Account) error {
			close(holding)
			<-release
			return nil
		})
	}()
	<-holding

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	called := false
	go func() {
		done <- handle.Update(ctx, func(a *domain.Account) error {
			called = true
			return nil
		})
	}()

	cancel()
	close(release)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	case <-time.After(2 * time.Second):
		t.Fatal("waiting update never returned")
	}
}

func TestAccountHandle_UpdateReleasesLockOnError(t *testing.T) {
	store, err := NewAccountStore([]domain.AccountSeed{{ID: 1, Limit: 0}})
	require.NoError(t, err)
	handle, _ := store.Get(1)

	boom := errors.New("boom")
	err = handle.Update(context.Background(), func(a *domain.Account) error { return boom })
	assert.ErrorIs(t, err, boom)

	err = handle.View(context.Background(), func(a *domain.Account) {})
	assert.NoError(t, err)
}

func TestAccountHandle_ReadersShareLock(t *testing.T) {
	store, err := NewAccountStore([]domain.AccountSeed{{ID: 1, Limit: 0}})
	require.NoError(t, err)
	handle, _ := store.Get(1)

	inside := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = handle.View(context.Background(), func(a *domain.Account) {
			close(inside)
			<-release
		})
	}()
	<-inside

	// 第一個讀者還持有讀鎖時，第二個讀者也能進入
	done := make(chan struct{})
	go func() {
		_ = handle.View(context.Background(), func(a *domain.Account) {})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("second reader blocked by first reader")
	}
	close(release)
}
