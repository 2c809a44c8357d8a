// Package watcher polls an A2S endpoint at a fixed interval and hands every
// successful snapshot to a callback.
package watcher

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/iudanet/gamebeacon/internal/a2s"
	"github.com/iudanet/gamebeacon/internal/scheduler"
)

// DefaultInterval - интервал опроса по умолчанию
const DefaultInterval = time.Second

// OnInfoFunc получает каждый успешный снимок.
// Следующий опрос планируется только после его возврата
type OnInfoFunc func(ctx context.Context, info *a2s.Info)

// Watcher keeps the latest snapshot and a health flag for one endpoint.
// The readers are independent; no cross-field consistency is promised.
type Watcher struct {
	source   a2s.Querier
	onInfo   OnInfoFunc
	logger   *slog.Logger
	runner   *scheduler.Runner
	last     atomic.Pointer[a2s.Info]
	interval time.Duration
	healthy  atomic.Bool
}

// New создает watcher и сразу начинает опрос
func New(source a2s.Querier, onInfo OnInfoFunc, interval time.Duration, logger *slog.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	w := &Watcher{
		source:   source,
		onInfo:   onInfo,
		logger:   logger,
		interval: interval,
	}
	// runner создаётся последним: опрос начинается сразу
	w.runner = scheduler.New(w.fetch,
		scheduler.WithErrorHandler(w.onError),
		scheduler.WithLogger(logger),
		scheduler.WithName("a2s-watcher"),
	)
	return w
}

func (w *Watcher) fetch(ctx context.Context) (time.Duration, error) {
	info, err := w.source.Info(ctx)
	if err != nil {
		return 0, err
	}

	w.last.Store(info)
	w.healthy.Store(true)
	if w.onInfo != nil {
		w.onInfo(ctx, info)
	}

	return w.interval, nil
}

// onError продолжает опрос всегда, но ждёт полный интервал
func (w *Watcher) onError(ctx context.Context, err error) scheduler.Outcome {
	w.healthy.Store(false)
	w.logger.Warn("A2S poll failed", "error", err, "retry_in", w.interval)
	return scheduler.Continue(w.interval)
}

// LastInfo возвращает последний успешный снимок или nil
func (w *Watcher) LastInfo() *a2s.Info {
	return w.last.Load()
}

// LastError возвращает последнюю ошибку опроса или nil
func (w *Watcher) LastError() error {
	return w.runner.LastError()
}

// Healthy возвращает true, если последний опрос успешен
func (w *Watcher) Healthy() bool {
	return w.healthy.Load()
}

// Interval возвращает интервал опроса
func (w *Watcher) Interval() time.Duration {
	return w.interval
}

// Close останавливает опрос. Текущий опрос завершится, но следующего не будет
func (w *Watcher) Close() {
	w.runner.Close()
	w.healthy.Store(false)
}
