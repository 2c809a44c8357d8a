package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCommand(build BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "gamebeacon\n")
			fmt.Fprintf(out, "Version:    %s\n", build.Version)
			fmt.Fprintf(out, "Build Date: %s\n", build.BuildDate)
			fmt.Fprintf(out, "Git Commit: %s\n", build.GitCommit)
		},
	}
}
