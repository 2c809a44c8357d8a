package status

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gamebeacon/internal/reconciler"
)

type switchSource struct {
	healthy atomic.Bool
}

func (s *switchSource) Status() reconciler.Status {
	return reconciler.Status{Healthy: s.healthy.Load()}
}

func newTestServer() (*Server, *switchSource) {
	source := &switchSource{}
	s := New(source, nil, "test", slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.interval = 20 * time.Millisecond
	return s, source
}

func TestServer_Routes(t *testing.T) {
	s, _ := newTestServer()

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{name: "Health", method: http.MethodGet, path: "/api/v1/health", expectedStatus: http.StatusOK},
		{name: "Status", method: http.MethodGet, path: "/api/v1/status", expectedStatus: http.StatusOK},
		{name: "Events", method: http.MethodGet, path: "/api/v1/events", expectedStatus: http.StatusOK},
		{name: "Wrong method", method: http.MethodPost, path: "/api/v1/status", expectedStatus: http.StatusMethodNotAllowed},
		{name: "Unknown path", method: http.MethodGet, path: "/api/v1/nope", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestServer_ServePushesChanges(t *testing.T) {
	s, source := newTestServer()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Serve(ctx, ln)
	}()

	url := "ws://" + ln.Addr().String() + "/api/v1/status/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer func() {
		_ = conn.Close()
	}()

	read := func() reconciler.Status {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var st reconciler.Status
		require.NoError(t, conn.ReadJSON(&st))
		return st
	}

	assert.False(t, read().Healthy)

	source.healthy.Store(true)
	assert.True(t, read().Healthy)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(6 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_ListenError(t *testing.T) {
	s, _ := newTestServer()

	err := s.ListenAndServe(context.Background(), "256.0.0.1:0")
	assert.Error(t, err)
}
