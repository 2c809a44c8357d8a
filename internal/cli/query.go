package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/gamebeacon/internal/a2s"
)

func newQueryCommand(opts *rootOptions) *cobra.Command {
	var (
		addr    string
		timeout string
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query the game server once and print the A2S info as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("a2s") {
				cfg.A2SAddress = addr
			}
			if cmd.Flags().Changed("timeout") {
				if err := cfg.QueryTimeout.Set(timeout); err != nil {
					return fmt.Errorf("invalid timeout: %w", err)
				}
			}

			logger, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			client := a2s.NewClient(cfg.A2SAddress, cfg.QueryTimeout.Std(), logger)
			info, err := client.Info(cmd.Context())
			if err != nil {
				return fmt.Errorf("query %s failed: %w", cfg.A2SAddress, err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		},
	}

	cmd.Flags().StringVar(&addr, "a2s", "", "A2S query address (host:port)")
	cmd.Flags().StringVar(&timeout, "timeout", "", "Query timeout, e.g. 1s")

	return cmd
}
