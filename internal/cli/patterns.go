package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/censor/internal/patterns"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Inspect built-in pattern presets",
}

var patternsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List preset names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range patterns.PresetNames() {
			p, err := patterns.Preset(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %d patterns\n", name, len(p))
		}
		return nil
	},
}

var patternsShowCmd = &cobra.Command{
	Use:   "show <preset>",
	Short: "Print a preset's patterns in application order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := patterns.Preset(args[0])
		if err != nil {
			return err
		}
		for _, expr := range p {
			fmt.Fprintln(cmd.OutOrStdout(), expr)
		}
		return nil
	},
}

func init() {
	patternsCmd.AddCommand(patternsListCmd)
	patternsCmd.AddCommand(patternsShowCmd)
}
