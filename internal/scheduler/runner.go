// Package scheduler provides Runner, a single-flight periodic executor.
//
// The executed operation decides when it wants to run next by returning a
// delay. A run is always fully finished, including its error handling, before
// the next one starts.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ExecuteFunc - один запуск операции. Возвращает задержку до следующего
// запуска; отрицательная задержка считается нулевой.
type ExecuteFunc func(ctx context.Context) (time.Duration, error)

// ErrorHandler решает, что делать с расписанием после неудачного запуска
type ErrorHandler func(ctx context.Context, err error) Outcome

// Option configures a Runner
type Option func(*Runner)

// WithErrorHandler задаёт обработчик ошибок.
// Без него runner останавливается на первой ошибке
func WithErrorHandler(h ErrorHandler) Option {
	return func(r *Runner) {
		if h != nil {
			r.onError = h
		}
	}
}

// WithInitialDelay откладывает первый запуск
func WithInitialDelay(d time.Duration) Option {
	return func(r *Runner) {
		r.initialDelay = d
	}
}

// WithLogger sets the logger used for schedule transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithName задаёт имя runner для логов
func WithName(name string) Option {
	return func(r *Runner) {
		r.name = name
	}
}

// Runner runs an operation over and over, each run scheduling the next one.
//
// Every armed schedule is served by one goroutine that waits, runs and
// computes the next wait. Runs from different schedules (after Stop and
// Resume) are serialized by execMu, so no two runs ever overlap.
type Runner struct {
	execute ExecuteFunc
	onError ErrorHandler
	logger  *slog.Logger
	name    string

	initialDelay time.Duration

	// execMu удерживается весь запуск, включая обработчик ошибок
	execMu sync.Mutex

	mu      sync.Mutex
	lastErr error
	cancel  context.CancelFunc
	gen     uint64
	ticking bool
	closed  bool
}

// New создает runner и планирует первый запуск сразу
// или через WithInitialDelay
func New(execute ExecuteFunc, opts ...Option) *Runner {
	r := &Runner{
		execute: execute,
		onError: stopOnError,
		logger:  slog.New(slog.DiscardHandler),
		name:    "runner",
	}
	for _, opt := range opts {
		opt(r)
	}

	r.mu.Lock()
	r.armLocked(r.initialDelay)
	r.mu.Unlock()

	return r
}

func stopOnError(context.Context, error) Outcome {
	return Stop()
}

// IsTicking возвращает true, если следующий запуск запланирован
func (r *Runner) IsTicking() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ticking
}

// LastError возвращает ошибку последнего неудачного запуска
func (r *Runner) LastError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// Resume снова запускает остановленный runner через after.
// На работающем или закрытом runner ничего не делает
func (r *Runner) Resume(after time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ticking || r.closed {
		return
	}
	r.armLocked(after)
}

// Stop отменяет ожидающий запуск. Уже выполняющийся запуск не прерывается,
// но следующий он не запланирует
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

// Close останавливает runner навсегда. Не ждёт текущий запуск,
// поэтому его можно вызывать из самой операции или из обработчика ошибок
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	r.stopLocked()
	r.logger.Debug("Runner closed", "runner", r.name)
}

func (r *Runner) stopLocked() {
	if !r.ticking {
		return
	}
	r.cancel()
	r.ticking = false
}

func (r *Runner) armLocked(after time.Duration) {
	ctx, cancel := context.WithCancel(context.Background())
	r.gen++
	r.cancel = cancel
	r.ticking = true
	go r.loop(ctx, r.gen, max(after, 0))
}

func (r *Runner) loop(ctx context.Context, gen uint64, delay time.Duration) {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		next, ok := r.tick(ctx, gen)
		if !ok {
			return
		}
		timer.Reset(next)
	}
}

// tick выполняет один запуск и возвращает задержку до следующего
// или false, если расписание завершено
func (r *Runner) tick(ctx context.Context, gen uint64) (time.Duration, bool) {
	r.execMu.Lock()
	defer r.execMu.Unlock()

	// расписание могли остановить, пока ждали предыдущий запуск
	if ctx.Err() != nil {
		return 0, false
	}

	// Stop и Close отменяют расписание, но не текущий запуск
	runCtx := context.WithoutCancel(ctx)

	delay, err := r.execute(runCtx)
	if err != nil {
		r.mu.Lock()
		r.lastErr = err
		r.mu.Unlock()

		outcome := r.onError(runCtx, err)
		if outcome.Stopped() {
			r.endSchedule(gen)
			r.logger.Debug("Runner stopped after error", "runner", r.name, "error", err)
			return 0, false
		}
		delay = outcome.Delay()
	}

	if ctx.Err() != nil {
		return 0, false
	}
	return max(delay, 0), true
}

// endSchedule останавливает runner, если gen все еще активное расписание
func (r *Runner) endSchedule(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gen == gen {
		r.stopLocked()
	}
}
