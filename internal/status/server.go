// Package status serves the local status surface: JSON snapshots, the event
// journal and a websocket push of status changes.
package status

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/iudanet/gamebeacon/internal/history"
	"github.com/iudanet/gamebeacon/internal/status/handlers"
	"github.com/iudanet/gamebeacon/internal/status/middleware"
	"github.com/iudanet/gamebeacon/internal/status/ws"
)

const (
	// DefaultPushInterval - как часто проверяется изменение статуса
	DefaultPushInterval = time.Second

	shutdownTimeout = 5 * time.Second
)

// Server - HTTP сервер статуса
type Server struct {
	source   handlers.StatusSource
	logger   *slog.Logger
	hub      *ws.Hub
	limiter  *middleware.RateLimiter
	handler  http.Handler
	interval time.Duration
}

// New создает status-сервер. recorder может быть nil
func New(source handlers.StatusSource, recorder history.Recorder, version string, logger *slog.Logger) *Server {
	s := &Server{
		source:   source,
		logger:   logger,
		hub:      ws.NewHub(logger),
		limiter:  middleware.NewRateLimiter(20, 40, logger),
		interval: DefaultPushInterval,
	}

	health := handlers.NewHealthHandler(version, logger)
	status := handlers.NewStatusHandler(source, recorder, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/health", health.Health)
	mux.HandleFunc("GET /api/v1/status", status.Status)
	mux.HandleFunc("GET /api/v1/status/ws", s.hub.ServeWs)
	mux.HandleFunc("GET /api/v1/events", status.Events)

	var h http.Handler = mux
	h = s.limiter.Middleware(h)
	h = middleware.LoggingWithSkip(logger, []string{"/api/v1/health"})(h)
	h = middleware.RecoveryMiddleware(logger)(h)
	s.handler = h

	return s
}

// Handler возвращает HTTP handler со всеми middleware
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Serve принимает соединения на ln до отмены ctx, затем выполняет graceful shutdown
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go s.hub.Run()
	defer s.hub.Stop()
	defer s.limiter.Stop()

	pushCtx, stopPush := context.WithCancel(ctx)
	defer stopPush()
	go s.push(pushCtx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()
	s.logger.Info("Status server started", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return fmt.Errorf("status server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("status server shutdown failed: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("status server failed: %w", err)
	}

	s.logger.Info("Status server stopped")
	return nil
}

// ListenAndServe слушает addr и вызывает Serve
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// push рассылает статус при каждом изменении
func (s *Server) push(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var last []byte
	for {
		data, err := json.Marshal(s.source.Status())
		if err != nil {
			s.logger.Error("failed to encode status", "error", err)
		} else if !bytes.Equal(data, last) {
			s.hub.Broadcast(data)
			last = data
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
