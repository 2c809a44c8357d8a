package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/iudanet/gamebeacon/internal/a2s"
	"github.com/iudanet/gamebeacon/internal/browser"
	"github.com/iudanet/gamebeacon/internal/config"
	"github.com/iudanet/gamebeacon/internal/history"
	historysqlite "github.com/iudanet/gamebeacon/internal/history/sqlite"
	"github.com/iudanet/gamebeacon/internal/netutil"
	"github.com/iudanet/gamebeacon/internal/reconciler"
	"github.com/iudanet/gamebeacon/internal/registration"
	"github.com/iudanet/gamebeacon/internal/status"
	"github.com/iudanet/gamebeacon/internal/storage"
	"github.com/iudanet/gamebeacon/internal/storage/boltdb"
)

const shutdownTimeout = 10 * time.Second

// runFlags - флаги команды run, переопределяющие файл конфигурации
type runFlags struct {
	a2sAddress   string
	backendURL   string
	localIP      string
	statusAddr   string
	leaseDB      string
	historyDB    string
	pollInterval config.Duration
}

func newRunCommand(opts *rootOptions, build BuildInfo) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Watch the game server and keep its listing registered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			flags.apply(cmd.Flags(), cfg)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			logger, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg, build, logger)
		},
	}

	flags.bind(cmd.Flags())

	return cmd
}

func (f *runFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.a2sAddress, "a2s", "", "A2S query address (host:port)")
	fs.StringVar(&f.backendURL, "backend", "", "Server browser API URL; empty runs without a backend")
	fs.StringVar(&f.localIP, "local-ip", "", "Address reported to the backend; detected when empty")
	fs.StringVar(&f.statusAddr, "status-addr", "", "Status server listen address; empty disables it")
	fs.StringVar(&f.leaseDB, "lease-db", "", "Lease database path; empty disables lease persistence")
	fs.StringVar(&f.historyDB, "history-db", "", "Event journal path; empty disables the journal")
	fs.Var(&f.pollInterval, "poll-interval", "Delay between A2S probes, e.g. 1s")
}

// apply переносит в cfg только явно заданные флаги
func (f *runFlags) apply(fs *pflag.FlagSet, cfg *config.Config) {
	changed := fs.Changed
	if changed("a2s") {
		cfg.A2SAddress = f.a2sAddress
	}
	if changed("backend") {
		cfg.BackendURL = f.backendURL
	}
	if changed("local-ip") {
		cfg.LocalIP = f.localIP
	}
	if changed("status-addr") {
		cfg.StatusAddr = f.statusAddr
	}
	if changed("lease-db") {
		cfg.LeaseDBPath = f.leaseDB
	}
	if changed("history-db") {
		cfg.HistoryDBPath = f.historyDB
	}
	if changed("poll-interval") {
		cfg.PollInterval = f.pollInterval
	}
}

// run собирает демон и блокируется до отмены ctx
func run(ctx context.Context, cfg *config.Config, build BuildInfo, logger *slog.Logger) error {
	logger.Info("Starting gamebeacon",
		"version", build.Version,
		"a2s", cfg.A2SAddress,
		"backend", cfg.BackendURL,
	)

	// Определяем локальный IP, если он не задан в конфигурации
	localIP := cfg.LocalIP
	if localIP == "" {
		ip, err := netutil.LocalIP(ctx)
		if err != nil {
			return fmt.Errorf("failed to detect local IP: %w", err)
		}
		localIP = ip
		logger.Info("Detected local IP", "ip", localIP)
	}

	b, err := newBrowser(cfg, logger)
	if err != nil {
		return err
	}

	var opts []reconciler.Option

	// Хранилище аренды (BoltDB)

	if cfg.LeaseDBPath != "" {
		leases, err := boltdb.New(ctx, cfg.LeaseDBPath)
		if err != nil {
			return fmt.Errorf("failed to open lease storage: %w", err)
		}
		defer func() {
			if err := leases.Close(); err != nil {
				logger.Error("Failed to close lease storage", "error", err)
			}
		}()

		// Удаляем листинг, оставшийся после падения предыдущего процесса
		cleanupStaleLease(ctx, leases, func(url string) (browser.Browser, error) {
			return browser.NewClient(url, cfg.BackendTimeout.Std(), logger)
		}, logger)

		opts = append(opts, reconciler.WithLeaseStorage(leases, cfg.BackendURL))
	}

	// Журнал событий (SQLite). Интерфейсная переменная остаётся nil, если журнал отключен
	var recorder history.Recorder
	if cfg.HistoryDBPath != "" {
		journal, err := historysqlite.New(ctx, cfg.HistoryDBPath)
		if err != nil {
			return fmt.Errorf("failed to open event journal: %w", err)
		}
		defer func() {
			if err := journal.Close(); err != nil {
				logger.Error("Failed to close event journal", "error", err)
			}
		}()

		// Очищаем старые события
		if cfg.HistoryRetention > 0 {
			pruned, err := journal.Prune(ctx, time.Now().Add(-cfg.HistoryRetention.Std()))
			if err != nil {
				logger.Warn("Failed to prune event journal", "error", err)
			} else if pruned > 0 {
				logger.Info("Pruned event journal", "removed", pruned)
			}
		}

		recorder = journal
		opts = append(opts, reconciler.WithRecorder(journal))
	}

	// Собираем опрос, фабрику регистраций и reconciler
	source := a2s.NewClient(cfg.A2SAddress, cfg.QueryTimeout.Std(), logger)
	factory := registration.NewFactory(b, cfg.Server, localIP, cfg.HeartbeatMargin.Std(), logger)
	rec := reconciler.New(source, factory, cfg.PollInterval.Std(), logger, opts...)

	// статус-сервер останавливается вместе с ctx или отдельным stopStatus
	statusCtx, stopStatus := context.WithCancel(ctx)
	defer stopStatus()

	var statusErr chan error
	if cfg.StatusAddr != "" {
		statusErr = make(chan error, 1)
		srv := status.New(rec, recorder, build.Version, logger)
		go func() {
			statusErr <- srv.ListenAndServe(statusCtx, cfg.StatusAddr)
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
	case err := <-statusErr:
		// канал прочитан, ждать его при остановке больше не нужно
		statusErr = nil
		if err != nil {
			runErr = fmt.Errorf("status server: %w", err)
			logger.Error("Status server failed", "error", err)
		}
	}

	closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	rec.Close(closeCtx)

	// хранилища закрываются в defer, поэтому сервер должен завершиться раньше
	stopStatus()
	if err := waitStatus(closeCtx, statusErr); err != nil {
		logger.Error("Status server shutdown failed", "error", err)
		if runErr == nil {
			runErr = fmt.Errorf("status server: %w", err)
		}
	}

	return runErr
}

// waitStatus waits for the status server goroutine to return. A nil channel
// means there is nothing to wait for.
func waitStatus(ctx context.Context, statusErr <-chan error) error {
	if statusErr == nil {
		return nil
	}
	select {
	case err := <-statusErr:
		return err
	case <-ctx.Done():
		return fmt.Errorf("status server did not stop: %w", ctx.Err())
	}
}

// newBrowser выбирает бэкенд: NullBrowser без URL, иначе HTTP клиент,
// обёрнутый в Throttled при заданном лимите
func newBrowser(cfg *config.Config, logger *slog.Logger) (browser.Browser, error) {
	if cfg.BackendURL == "" {
		logger.Warn("No backend URL configured, listings stay local")
		return browser.NewNullBrowser(cfg.NullRefresh.Std().Seconds()), nil
	}

	client, err := browser.NewClient(cfg.BackendURL, cfg.BackendTimeout.Std(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}
	if cfg.BackendRate <= 0 {
		return client, nil
	}
	return browser.NewThrottled(client, cfg.BackendRate, cfg.BackendBurst), nil
}

// cleanupStaleLease удаляет листинг, оставшийся от предыдущего запуска,
// с того бэкенда, где он был зарегистрирован. Ошибки только логируются,
// сохранённая аренда удаляется в любом случае
func cleanupStaleLease(ctx context.Context, leases storage.LeaseStorage, dial func(url string) (browser.Browser, error), logger *slog.Logger) {
	lease, err := leases.GetLease(ctx)
	if errors.Is(err, storage.ErrLeaseNotFound) {
		return
	}
	if err != nil {
		logger.Warn("Failed to read stored lease", "error", err)
		return
	}

	log := logger.With("server_id", lease.Server.UniqueID, "backend", lease.BackendURL)
	log.Info("Found listing from a previous run, deleting it")

	if lease.BackendURL != "" {
		b, err := dial(lease.BackendURL)
		if err != nil {
			log.Warn("Failed to create client for stale lease", "error", err)
		} else if err := b.Delete(ctx, lease.Server, lease.Key); err != nil {
			log.Warn("Failed to delete stale listing", "error", err)
		}
	}

	if err := leases.DeleteLease(ctx); err != nil && !errors.Is(err, storage.ErrLeaseNotFound) {
		log.Warn("Failed to remove stored lease", "error", err)
	}
}
