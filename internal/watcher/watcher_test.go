package watcher

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gamebeacon/internal/a2s"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// cyclingSource returns the given snapshots in order, forever.
func cyclingSource(infos ...*a2s.Info) *a2s.QuerierMock {
	var i atomic.Int32
	return &a2s.QuerierMock{
		InfoFunc: func(ctx context.Context) (*a2s.Info, error) {
			n := int(i.Add(1)-1) % len(infos)
			return infos[n], nil
		},
	}
}

func snapshots() []*a2s.Info {
	return []*a2s.Info{
		{Name: "srv", Map: "FFA_Courtyard", Players: 1, MaxPlayers: 64},
		{Name: "srv", Map: "FFA_Courtyard", Players: 2, MaxPlayers: 64},
		{Name: "srv", Map: "TO_Falmire", Players: 2, MaxPlayers: 64},
		{Name: "srv", Map: "TO_Falmire", Players: 3, MaxPlayers: 64},
	}
}

func TestWatcher_PollCount(t *testing.T) {
	var received atomic.Int32
	source := cyclingSource(snapshots()...)

	w := New(source, func(ctx context.Context, info *a2s.Info) {
		received.Add(1)
	}, 500*time.Millisecond, newTestLogger())

	time.Sleep(4 * time.Second)
	w.Close()

	assert.InDelta(t, 8, received.Load(), 1)
	assert.Equal(t, len(source.InfoCalls()), int(received.Load()))
}

func TestWatcher_LastInfoIsLatest(t *testing.T) {
	infos := snapshots()
	source := cyclingSource(infos...)

	var mu sync.Mutex
	var seen []*a2s.Info
	w := New(source, func(ctx context.Context, info *a2s.Info) {
		mu.Lock()
		seen = append(seen, info)
		mu.Unlock()
	}, 10*time.Millisecond, newTestLogger())

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) >= 6
	}, 2*time.Second, 5*time.Millisecond)
	w.Close()
	time.Sleep(30 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Same(t, seen[len(seen)-1], w.LastInfo())
	assert.Same(t, infos[(len(seen)-1)%len(infos)], w.LastInfo())
}

func TestWatcher_Health(t *testing.T) {
	errDown := errors.New("server down")
	var fail atomic.Bool
	source := &a2s.QuerierMock{
		InfoFunc: func(ctx context.Context) (*a2s.Info, error) {
			if fail.Load() {
				return nil, errDown
			}
			return &a2s.Info{Name: "srv"}, nil
		},
	}

	w := New(source, nil, 20*time.Millisecond, newTestLogger())
	defer w.Close()

	assert.Eventually(t, w.Healthy, time.Second, 5*time.Millisecond)

	fail.Store(true)
	assert.Eventually(t, func() bool { return !w.Healthy() }, time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, w.LastError(), errDown)
	assert.NotNil(t, w.LastInfo())

	fail.Store(false)
	assert.Eventually(t, w.Healthy, time.Second, 5*time.Millisecond)
}

func TestWatcher_FailureWaitsFullInterval(t *testing.T) {
	source := &a2s.QuerierMock{
		InfoFunc: func(ctx context.Context) (*a2s.Info, error) {
			return nil, a2s.ErrTimeout
		},
	}

	w := New(source, nil, 100*time.Millisecond, newTestLogger())
	time.Sleep(450 * time.Millisecond)
	w.Close()

	// без горячего цикла: ~5 попыток, а не сотни
	assert.InDelta(t, 5, len(source.InfoCalls()), 1)
	assert.False(t, w.Healthy())
	assert.Nil(t, w.LastInfo())
}

func TestWatcher_Close(t *testing.T) {
	var received atomic.Int32
	w := New(cyclingSource(snapshots()...), func(ctx context.Context, info *a2s.Info) {
		received.Add(1)
	}, 10*time.Millisecond, newTestLogger())

	require.Eventually(t, func() bool { return received.Load() > 0 }, time.Second, 5*time.Millisecond)
	w.Close()
	time.Sleep(20 * time.Millisecond)
	after := received.Load()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, after, received.Load())
	assert.False(t, w.Healthy())
	assert.Equal(t, 10*time.Millisecond, w.Interval())
}
