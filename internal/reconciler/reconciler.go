// Package reconciler keeps at most one backend listing in sync with the
// liveness poller: it registers when a server shows up, pushes changes, and
// replaces a listing whose lease was lost.
package reconciler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iudanet/gamebeacon/internal/a2s"
	"github.com/iudanet/gamebeacon/internal/history"
	"github.com/iudanet/gamebeacon/internal/registration"
	"github.com/iudanet/gamebeacon/internal/storage"
	"github.com/iudanet/gamebeacon/internal/watcher"
)

// Factory создает регистрации. Реализуется registration.Factory
type Factory interface {
	Make(ctx context.Context, info *a2s.Info, onDeath registration.DeathFunc) (*registration.Registration, error)
}

// Option configures a Reconciler
type Option func(*Reconciler)

// WithLeaseStorage сохраняет активную аренду, чтобы после падения её можно
// было удалить. backendURL сохраняется вместе с ней
func WithLeaseStorage(leases storage.LeaseStorage, backendURL string) Option {
	return func(r *Reconciler) {
		r.leases = leases
		r.backendURL = backendURL
	}
}

// WithRecorder включает журнал событий листинга
func WithRecorder(recorder history.Recorder) Option {
	return func(r *Reconciler) {
		r.recorder = recorder
	}
}

// Reconciler владеет опросом и текущей регистрацией
type Reconciler struct {
	factory    Factory
	leases     storage.LeaseStorage
	recorder   history.Recorder
	logger     *slog.Logger
	watcher    *watcher.Watcher
	backendURL string

	// active дублирует current для чтения статуса без блокировки
	active atomic.Pointer[registration.Registration]

	mu      sync.Mutex
	current *registration.Registration
	closed  bool
}

// New создает reconciler и запускает опрос source каждые interval
func New(source a2s.Querier, factory Factory, interval time.Duration, logger *slog.Logger, opts ...Option) *Reconciler {
	r := &Reconciler{
		factory: factory,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.watcher = watcher.New(source, r.onInfo, interval, logger)
	return r
}

func (r *Reconciler) onInfo(ctx context.Context, info *a2s.Info) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// закрытый reconciler не должен создавать новую регистрацию
	if r.closed {
		return
	}

	// Нет регистрации или она погибла: старая удаляется до создания новой
	if r.current == nil || r.current.IsDead() {
		if r.current != nil {
			r.dropLocked(ctx)
		}
		r.registerLocked(ctx, info)
		return
	}

	changed, err := r.current.UpdateIfChanged(ctx, info)
	if err != nil {
		// Ошибка update означает потерю листинга, на следующем опросе зарегистрируемся заново
		r.logger.Error("Failed to update listing, dropping registration", "error", err)
		r.record(ctx, history.EventUpdateFailed, r.current.Server().UniqueID, info, err)
		r.dropLocked(ctx)
		return
	}
	if changed {
		r.record(ctx, history.EventUpdated, r.current.Server().UniqueID, info, nil)
	}
}

func (r *Reconciler) registerLocked(ctx context.Context, info *a2s.Info) {
	reg, err := r.factory.Make(ctx, info, r.onDeath)
	if err != nil {
		// повторим на следующем опросе
		r.logger.Error("Failed to register server", "error", err)
		r.record(ctx, history.EventRegisterFailed, "", info, err)
		return
	}

	r.current = reg
	r.active.Store(reg)

	server := reg.Server()
	r.record(ctx, history.EventRegistered, server.UniqueID, info, nil)

	// Сохраняем аренду для очистки после падения процесса
	if r.leases == nil {
		return
	}
	lease := &storage.Lease{
		Server:        server,
		Key:           reg.Key(),
		BackendURL:    r.backendURL,
		RefreshBefore: reg.RefreshBefore(),
		SavedAt:       time.Now().Unix(),
	}
	if err := r.leases.SaveLease(ctx, lease); err != nil {
		r.logger.Warn("Failed to persist lease", "error", err)
	}
}

// onDeath - callback гибели для всех регистраций этого reconciler
func (r *Reconciler) onDeath(reg *registration.Registration, err error) {
	r.record(context.Background(), history.EventLeaseLost, reg.Server().UniqueID, nil, err)
	r.DropRegistration(context.Background(), reg)
}

// DropRegistration закрывает reg, если она все еще текущая.
// Более новая регистрация никогда не удаляется
func (r *Reconciler) DropRegistration(ctx context.Context, reg *registration.Registration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Устаревшее уведомление: закрываем только reg, текущую не трогаем
	if r.current != reg {
		reg.Close(ctx)
		return
	}
	r.dropLocked(ctx)
}

// dropLocked закрывает текущую регистрацию и забывает её
func (r *Reconciler) dropLocked(ctx context.Context) {
	reg := r.current
	r.current = nil
	r.active.Store(nil)

	r.closeRegistration(ctx, reg)
}

func (r *Reconciler) closeRegistration(ctx context.Context, reg *registration.Registration) {
	reg.Close(ctx)
	r.record(ctx, history.EventDeleted, reg.Server().UniqueID, nil, nil)

	if r.leases == nil {
		return
	}
	if err := r.leases.DeleteLease(ctx); err != nil && !errors.Is(err, storage.ErrLeaseNotFound) {
		r.logger.Warn("Failed to clear persisted lease", "error", err)
	}
}

func (r *Reconciler) record(ctx context.Context, kind history.EventKind, serverID string, info *a2s.Info, cause error) {
	if r.recorder == nil {
		return
	}

	// Журнал необязателен, ошибки записи только логируются
	event := &history.Event{Kind: kind, ServerID: serverID}
	if info != nil {
		event.Map = info.Map
		event.Players = int(info.Players)
		event.MaxPlayers = int(info.MaxPlayers)
	}
	if cause != nil {
		event.Message = cause.Error()
	}

	if err := r.recorder.Record(ctx, event); err != nil {
		r.logger.Warn("Failed to record event", "kind", kind, "error", err)
	}
}

// Close останавливает опрос и удаляет текущий листинг.
// Опрос в полете может завершиться, но новую регистрацию не создаст
func (r *Reconciler) Close(ctx context.Context) {
	r.watcher.Close()

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	reg := r.current
	r.current = nil
	r.active.Store(nil)
	r.mu.Unlock()

	if reg != nil {
		r.closeRegistration(ctx, reg)
	}
	r.logger.Info("Reconciler closed")
}
