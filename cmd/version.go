package cmd

import (
	"fmt"

	"github.com/dracalusb/dusb/internal/runtime"

	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print dusb version",
		Long:  `Print dusb version`,
		RunE: func(cmd *cobra.Command, args []string) error {
			commit := runtime.GitCommit
			if commit == "" {
				commit = "unknown"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "dusb version: %s (commit: %s)\n", runtime.VersionString(), commit)
			return nil
		},
	}
}
