package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FabioCLima/healthbot-project/pkg/adapters/memory"
	"github.com/FabioCLima/healthbot-project/pkg/domain"
	"github.com/FabioCLima/healthbot-project/pkg/ports"
	"github.com/FabioCLima/healthbot-project/pkg/session"
)

func TestManager_SaveLoadDelete(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx := context.Background()

	state := domain.NewState("s1", domain.StepAskTopic)
	state.Topic = "asthma"

	require.NoError(t, mgr.Save(ctx, "s1", state))

	loaded, err := mgr.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "asthma", loaded.Topic)

	ids, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, "s1")

	require.NoError(t, mgr.Delete(ctx, "s1"))
	_, err = mgr.Load(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_WithLockSerializesSameSession(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx := context.Background()

	var active, maxActive int
	var mu sync.Mutex

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := mgr.WithLock(ctx, "same-session", func(ctx context.Context) error {
				mu.Lock()
				active++
				if active > maxActive {
					maxActive = active
				}
				mu.Unlock()

				time.Sleep(5 * time.Millisecond)

				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Never more than one holder per session.
	assert.Equal(t, 1, maxActive)
}

func TestManager_IndependentSessionsProceedInParallel(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx := context.Background()

	release := make(chan struct{})
	holding := make(chan struct{})

	go func() {
		_ = mgr.WithLock(ctx, "session-a", func(ctx context.Context) error {
			close(holding)
			<-release
			return nil
		})
	}()

	<-holding

	// session-b is not blocked by session-a's lock.
	done := make(chan struct{})
	go func() {
		_ = mgr.WithLock(ctx, "session-b", func(ctx context.Context) error {
			return nil
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("independent session was blocked by an unrelated lock")
	}
	close(release)
}

// recordingLocker records lock/unlock calls to verify the distributed path.
type recordingLocker struct {
	mu       sync.Mutex
	locked   []string
	unlocked []string
}

func (r *recordingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	r.mu.Lock()
	r.locked = append(r.locked, key)
	r.mu.Unlock()
	return func(ctx context.Context) error {
		r.mu.Lock()
		r.unlocked = append(r.unlocked, key)
		r.mu.Unlock()
		return nil
	}, nil
}

func TestManager_UsesDistributedLocker(t *testing.T) {
	locker := &recordingLocker{}
	mgr := session.NewManager(memory.NewStore(), session.WithLocker(locker))
	ctx := context.Background()

	require.NoError(t, mgr.Save(ctx, "s1", domain.NewState("s1", domain.StepAskTopic)))

	assert.Equal(t, []string{"s1"}, locker.locked)
	assert.Equal(t, []string{"s1"}, locker.unlocked)
}
