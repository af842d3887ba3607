package cmd

import (
	"github.com/dracalusb/dusb/internal/builder"
	"github.com/dracalusb/dusb/internal/table"
	"github.com/dracalusb/dusb/internal/tty"

	"github.com/spf13/cobra"
)

func newUnitsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "units",
		Short: "List units and options",
		Long:  `List the units accepted by -T, -P, -M, -F and -C and the options accepted by -o.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			descriptors := builder.Descriptors()
			if tty.IsInteractive() {
				table.Units(cmd.OutOrStdout(), descriptors)
				return nil
			}
			rows := make([][]string, 0, len(descriptors))
			for _, d := range descriptors {
				rows = append(rows, []string{d.Flag, d.Kind, d.Name, d.Code})
			}
			table.Columns(cmd.OutOrStdout(), rows)
			return nil
		},
	}
}
