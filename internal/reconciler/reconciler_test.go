package reconciler

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gamebeacon/internal/a2s"
	"github.com/iudanet/gamebeacon/internal/browser"
	"github.com/iudanet/gamebeacon/internal/history"
	"github.com/iudanet/gamebeacon/internal/registration"
	"github.com/iudanet/gamebeacon/internal/storage"
	"github.com/iudanet/gamebeacon/pkg/api"
)

const testInterval = 20 * time.Millisecond

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fixedSource always returns a snapshot with the given player count.
func fixedSource(players *atomic.Int32) *a2s.QuerierMock {
	return &a2s.QuerierMock{
		InfoFunc: func(ctx context.Context) (*a2s.Info, error) {
			return &a2s.Info{
				Name:       "Chivalry 2 Server",
				Map:        "FFA_Courtyard",
				Players:    byte(players.Load()),
				MaxPlayers: 64,
			}, nil
		},
	}
}

func deadSource() *a2s.QuerierMock {
	return &a2s.QuerierMock{
		InfoFunc: func(ctx context.Context) (*a2s.Info, error) {
			return nil, a2s.ErrTimeout
		},
	}
}

// newBackend grants hour-long leases with sequential ids.
func newBackend() *browser.BrowserMock {
	var ids atomic.Int32
	refresh := func() float64 { return float64(time.Now().Unix()) + 3600 }
	return &browser.BrowserMock{
		RegisterFunc: func(ctx context.Context, localIP string, info api.ServerInfo) (*api.RegisterServerResponse, error) {
			id := ids.Add(1)
			return &api.RegisterServerResponse{
				Key:           "key",
				RefreshBefore: refresh(),
				Server: api.ResponseServer{
					UniqueServerInfo: api.UniqueServerInfo{ServerInfo: info, UniqueID: fmt.Sprintf("srv-%d", id)},
				},
			}, nil
		},
		UpdateFunc: func(ctx context.Context, server api.ResponseServer, key string) (float64, error) {
			return refresh(), nil
		},
		HeartbeatFunc: func(ctx context.Context, server api.ResponseServer, key string) (float64, error) {
			return refresh(), nil
		},
		DeleteFunc: func(ctx context.Context, server api.ResponseServer, key string) error {
			return nil
		},
	}
}

func newFactory(b browser.Browser) *registration.Factory {
	return registration.NewFactory(b, api.StaticServerInfo{Description: "test"}, "10.0.0.1", registration.DefaultMargin, newTestLogger())
}

// eventLog is an in-memory history.Recorder.
type eventLog struct {
	events []history.Event
	mu     sync.Mutex
}

func (l *eventLog) recorder() *history.RecorderMock {
	return &history.RecorderMock{
		RecordFunc: func(ctx context.Context, event *history.Event) error {
			l.mu.Lock()
			defer l.mu.Unlock()
			l.events = append(l.events, *event)
			return nil
		},
	}
}

func (l *eventLog) kinds() []history.EventKind {
	l.mu.Lock()
	defer l.mu.Unlock()
	kinds := make([]history.EventKind, 0, len(l.events))
	for _, e := range l.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

func TestReconciler_RegistersAndUpdates(t *testing.T) {
	var players atomic.Int32
	players.Store(1)
	backend := newBackend()
	events := &eventLog{}

	r := New(fixedSource(&players), newFactory(backend), testInterval, newTestLogger(),
		WithRecorder(events.recorder()))
	defer r.Close(context.Background())

	require.Eventually(t, func() bool {
		return r.Status().Registered
	}, time.Second, 5*time.Millisecond)

	// без изменений обновлений нет
	time.Sleep(5 * testInterval)
	assert.Empty(t, backend.UpdateCalls())

	players.Store(7)
	require.Eventually(t, func() bool {
		return len(backend.UpdateCalls()) == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(5 * testInterval)
	assert.Len(t, backend.UpdateCalls(), 1)
	assert.Len(t, backend.RegisterCalls(), 1)
	assert.Equal(t, 7, backend.UpdateCalls()[0].Server.PlayerCount)
	assert.Equal(t, []history.EventKind{history.EventRegistered, history.EventUpdated}, events.kinds())

	status := r.Status()
	assert.True(t, status.Healthy)
	require.NotNil(t, status.Server)
	assert.Equal(t, "srv-1", status.Server.UniqueID)
	assert.Equal(t, 7, status.Server.PlayerCount)
	require.NotNil(t, status.LastInfo)
	assert.Empty(t, status.LastProbeError)
}

func TestReconciler_RegistrationRetried(t *testing.T) {
	var players atomic.Int32
	backend := newBackend()
	register := backend.RegisterFunc
	var attempts atomic.Int32
	backend.RegisterFunc = func(ctx context.Context, localIP string, info api.ServerInfo) (*api.RegisterServerResponse, error) {
		if attempts.Add(1) <= 2 {
			return nil, browser.ErrTransport
		}
		return register(ctx, localIP, info)
	}

	r := New(fixedSource(&players), newFactory(backend), testInterval, newTestLogger())
	defer r.Close(context.Background())

	require.Eventually(t, func() bool {
		return r.Status().Registered
	}, time.Second, 5*time.Millisecond)

	assert.Len(t, backend.RegisterCalls(), 3)
}

// TestReconciler_LeaseLost проверяет, что потерянная аренда удаляется и
// сервер регистрируется заново
func TestReconciler_LeaseLost(t *testing.T) {
	var players atomic.Int32
	backend := newBackend()
	register := backend.RegisterFunc
	// первая аренда уже истекает: heartbeat уходит сразу и получает 404
	backend.RegisterFunc = func(ctx context.Context, localIP string, info api.ServerInfo) (*api.RegisterServerResponse, error) {
		resp, err := register(ctx, localIP, info)
		if err == nil && resp.Server.UniqueID == "srv-1" {
			resp.RefreshBefore = float64(time.Now().Unix())
		}
		return resp, err
	}
	backend.HeartbeatFunc = func(ctx context.Context, server api.ResponseServer, key string) (float64, error) {
		return 0, &browser.StatusError{StatusCode: 404, Message: "server not found"}
	}
	events := &eventLog{}

	r := New(fixedSource(&players), newFactory(backend), testInterval, newTestLogger(),
		WithRecorder(events.recorder()))
	defer r.Close(context.Background())

	require.Eventually(t, func() bool {
		status := r.Status()
		return status.Registered && status.Server.UniqueID == "srv-2"
	}, 2*time.Second, 5*time.Millisecond)

	assert.Len(t, backend.HeartbeatCalls(), 1)
	require.Len(t, backend.DeleteCalls(), 1)
	assert.Equal(t, "srv-1", backend.DeleteCalls()[0].Server.UniqueID)
	assert.ElementsMatch(t, []history.EventKind{
		history.EventRegistered,
		history.EventLeaseLost,
		history.EventDeleted,
		history.EventRegistered,
	}, events.kinds())
}

func TestReconciler_UpdateFailureDropsLease(t *testing.T) {
	var players atomic.Int32
	backend := newBackend()
	backend.UpdateFunc = func(ctx context.Context, server api.ResponseServer, key string) (float64, error) {
		return 0, browser.ErrTransport
	}

	r := New(fixedSource(&players), newFactory(backend), testInterval, newTestLogger())
	defer r.Close(context.Background())

	require.Eventually(t, func() bool {
		return r.Status().Registered
	}, time.Second, 5*time.Millisecond)

	players.Store(3)

	require.Eventually(t, func() bool {
		return len(backend.RegisterCalls()) >= 2
	}, time.Second, 5*time.Millisecond)

	require.GreaterOrEqual(t, len(backend.DeleteCalls()), 1)
	assert.Equal(t, "srv-1", backend.DeleteCalls()[0].Server.UniqueID)
	assert.Len(t, backend.UpdateCalls(), 1)
}

func TestReconciler_CloseDeletesOnce(t *testing.T) {
	var players atomic.Int32
	backend := newBackend()

	r := New(fixedSource(&players), newFactory(backend), testInterval, newTestLogger())

	require.Eventually(t, func() bool {
		return r.Status().Registered
	}, time.Second, 5*time.Millisecond)

	r.Close(context.Background())
	r.Close(context.Background())

	time.Sleep(5 * testInterval)
	require.Len(t, backend.DeleteCalls(), 1)
	assert.Len(t, backend.RegisterCalls(), 1)
	assert.False(t, r.Status().Registered)
}

func TestReconciler_CloseWithoutRegistration(t *testing.T) {
	backend := newBackend()

	r := New(deadSource(), newFactory(backend), testInterval, newTestLogger())

	require.Eventually(t, func() bool {
		return r.Status().LastProbeError != ""
	}, time.Second, 5*time.Millisecond)

	r.Close(context.Background())

	assert.Empty(t, backend.RegisterCalls())
	assert.Empty(t, backend.DeleteCalls())
	assert.False(t, r.Status().Healthy)
}

func TestReconciler_StaleDeathKeepsNewerRegistration(t *testing.T) {
	backend := newBackend()
	factory := newFactory(backend)

	r := New(deadSource(), factory, time.Hour, newTestLogger())
	defer r.Close(context.Background())

	info := &a2s.Info{Map: "FFA_Courtyard", MaxPlayers: 64}
	older, err := factory.Make(context.Background(), info, nil)
	require.NoError(t, err)
	newer, err := factory.Make(context.Background(), info, nil)
	require.NoError(t, err)

	r.mu.Lock()
	r.current = newer
	r.active.Store(newer)
	r.mu.Unlock()

	r.DropRegistration(context.Background(), older)

	assert.True(t, older.IsDead())
	assert.False(t, newer.IsDead())
	assert.True(t, r.Status().Registered)
	require.Len(t, backend.DeleteCalls(), 1)
	assert.Equal(t, older.Server().UniqueID, backend.DeleteCalls()[0].Server.UniqueID)

	r.DropRegistration(context.Background(), newer)
	assert.True(t, newer.IsDead())
	assert.False(t, r.Status().Registered)
	assert.Len(t, backend.DeleteCalls(), 2)
}

func TestReconciler_PersistsLease(t *testing.T) {
	var players atomic.Int32
	backend := newBackend()
	leases := &storage.LeaseStorageMock{
		SaveLeaseFunc: func(ctx context.Context, lease *storage.Lease) error {
			return nil
		},
		DeleteLeaseFunc: func(ctx context.Context) error {
			return nil
		},
	}

	r := New(fixedSource(&players), newFactory(backend), testInterval, newTestLogger(),
		WithLeaseStorage(leases, "https://browser.example.com/api/v1"))

	require.Eventually(t, func() bool {
		return r.Status().Registered
	}, time.Second, 5*time.Millisecond)

	require.Len(t, leases.SaveLeaseCalls(), 1)
	lease := leases.SaveLeaseCalls()[0].Lease
	assert.Equal(t, "key", lease.Key)
	assert.Equal(t, "srv-1", lease.Server.UniqueID)
	assert.Equal(t, "https://browser.example.com/api/v1", lease.BackendURL)
	assert.NotZero(t, lease.RefreshBefore)

	r.Close(context.Background())
	assert.Len(t, leases.DeleteLeaseCalls(), 1)
}
