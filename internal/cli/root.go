// Package cli implements the gamebeacon command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/iudanet/gamebeacon/internal/config"
	"github.com/iudanet/gamebeacon/internal/logging"
)

// BuildInfo заполняется через ldflags в main
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

// rootOptions - глобальные флаги
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

// NewRootCommand создает дерево команд
func NewRootCommand(build BuildInfo) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "gamebeacon",
		Short:         "Keeps a server browser listing in sync with a local game server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to JSON config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format: auto, text, json")

	root.AddCommand(
		newRunCommand(opts, build),
		newQueryCommand(opts),
		newVersionCommand(build),
	)

	return root
}

// Execute выполняет командную строку с ctx
func Execute(ctx context.Context, build BuildInfo, args []string, stdout, stderr io.Writer) error {
	root := NewRootCommand(build)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

// load читает файл конфигурации и применяет глобальные флаги
func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.logFormat != "" {
		cfg.LogFormat = o.logFormat
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	logger, err := logging.New(w, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}
