// Package registration keeps one backend listing alive: it renews the lease
// before it expires and pushes live field changes.
package registration

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/gamebeacon/internal/a2s"
	"github.com/iudanet/gamebeacon/internal/browser"
	"github.com/iudanet/gamebeacon/internal/scheduler"
	"github.com/iudanet/gamebeacon/pkg/api"
)

// DeathFunc вызывается один раз, когда heartbeat не удался и листинг потерян.
// Выполняется в горутине heartbeat
type DeathFunc func(reg *Registration, err error)

// liveFields - поля листинга, которые меняются вместе с сервером
type liveFields struct {
	Map        string
	Name       string
	Players    int
	MaxPlayers int
}

// Registration is an active listing with its heartbeat schedule.
type Registration struct {
	browser browser.Browser
	onDeath DeathFunc
	logger  *slog.Logger
	now     func() time.Time
	runner  *scheduler.Runner

	key       string
	fixedName string
	margin    time.Duration

	mu            sync.Mutex
	server        api.ResponseServer
	pushed        liveFields
	refreshBefore float64
	dead          bool
	closed        bool
}

func newRegistration(b browser.Browser, resp *api.RegisterServerResponse, info *a2s.Info, fixedName string,
	margin time.Duration, now func() time.Time, onDeath DeathFunc, logger *slog.Logger,
) *Registration {
	r := &Registration{
		browser:       b,
		onDeath:       onDeath,
		logger:        logger.With("server_id", resp.Server.UniqueID),
		now:           now,
		key:           resp.Key,
		fixedName:     fixedName,
		margin:        margin,
		server:        resp.Server,
		refreshBefore: resp.RefreshBefore,
	}
	// первые отправленные значения - те, с которыми сервер зарегистрирован
	r.pushed = r.fieldsOf(info)
	r.runner = scheduler.New(r.heartbeat,
		scheduler.WithErrorHandler(r.onHeartbeatError),
		scheduler.WithInitialDelay(HeartbeatDelay(resp.RefreshBefore, now(), margin)),
		scheduler.WithLogger(logger),
		scheduler.WithName("heartbeat"),
	)
	return r
}

func (r *Registration) heartbeat(ctx context.Context) (time.Duration, error) {
	r.mu.Lock()
	server := r.server
	r.mu.Unlock()

	refreshBefore, err := r.browser.Heartbeat(ctx, server, r.key)
	if err != nil {
		// решение о гибели листинга принимает onHeartbeatError
		return 0, err
	}

	r.mu.Lock()
	r.refreshBefore = refreshBefore
	r.mu.Unlock()

	delay := HeartbeatDelay(refreshBefore, r.now(), r.margin)
	r.logger.Debug("Heartbeat sent", "refresh_before", refreshBefore, "next_in", delay)
	return delay, nil
}

func (r *Registration) onHeartbeatError(ctx context.Context, err error) scheduler.Outcome {
	r.mu.Lock()
	closed := r.closed
	r.dead = true
	r.mu.Unlock()

	// Close уже вызван: onDeath не нужен
	if closed {
		return scheduler.Stop()
	}

	r.logger.Error("Heartbeat failed, listing lost", "error", err)
	if r.onDeath != nil {
		r.onDeath(r, err)
	}
	return scheduler.Stop()
}

func (r *Registration) fieldsOf(info *a2s.Info) liveFields {
	// статическое имя из конфигурации важнее имени из A2S
	name := r.fixedName
	if name == "" {
		name = info.Name
	}
	return liveFields{
		Map:        info.Map,
		Name:       name,
		Players:    int(info.Players),
		MaxPlayers: int(info.MaxPlayers),
	}
}

// UpdateIfChanged отправляет живые поля info, если они отличаются от
// последних отправленных, и возвращает true, если отправил.
// Без изменений запрос к бэкенду не выполняется
func (r *Registration) UpdateIfChanged(ctx context.Context, info *a2s.Info) (bool, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return false, ErrClosed
	}
	fields := r.fieldsOf(info)
	if fields == r.pushed {
		r.mu.Unlock()
		return false, nil
	}
	server := r.server
	r.mu.Unlock()

	// Обновляем копию записи, общая запись меняется только после успеха
	server.CurrentMap = fields.Map
	server.Name = fields.Name
	server.PlayerCount = fields.Players
	server.MaxPlayers = fields.MaxPlayers

	refreshBefore, err := r.browser.Update(ctx, server, r.key)
	if err != nil {
		return false, fmt.Errorf("failed to update listing: %w", err)
	}

	r.mu.Lock()
	r.server = server
	r.pushed = fields
	r.refreshBefore = refreshBefore
	r.mu.Unlock()

	r.logger.Info("Listing updated",
		"map", fields.Map,
		"players", fields.Players,
		"max_players", fields.MaxPlayers)
	return true, nil
}

// Close останавливает heartbeat и удаляет листинг.
// Ошибки удаления только логируются. Повторный вызов ничего не делает
func (r *Registration) Close(ctx context.Context) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.dead = true
	server := r.server
	r.mu.Unlock()

	r.runner.Close()

	// Удаление best-effort: листинг все равно истечет по сроку аренды
	if err := r.browser.Delete(ctx, server, r.key); err != nil {
		r.logger.Warn("Failed to delete listing", "error", err)
		return
	}
	r.logger.Info("Listing deleted")
}

// IsDead возвращает true, если листинг потерян или закрыт
func (r *Registration) IsDead() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dead
}

// LastError возвращает ошибку heartbeat, из-за которой листинг потерян
func (r *Registration) LastError() error {
	return r.runner.LastError()
}

// Key возвращает секретный ключ листинга
func (r *Registration) Key() string {
	return r.key
}

// Server возвращает текущую запись листинга
func (r *Registration) Server() api.ResponseServer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.server
}

// RefreshBefore возвращает срок аренды (unix timestamp в секундах)
func (r *Registration) RefreshBefore() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refreshBefore
}
