package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/kralicky/mcsetup/pkg/config"
	"github.com/spf13/cobra"
)

func BuildConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := table.NewWriter()
			w.SetStyle(table.StyleColoredDark)
			w.AppendHeader(table.Row{"KEY", "VALUE"})
			for _, key := range config.Keys() {
				value, err := config.Get(key)
				if err != nil {
					return err
				}
				w.AppendRow(table.Row{key, value})
			}
			fmt.Fprintln(cmd.OutOrStdout(), w.Render())
			return nil
		},
	}
	return cmd
}

func BuildConfigSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Change a setting",
		Args:      cobra.ExactArgs(2),
		ValidArgs: config.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := config.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			return nil
		},
	}
	return cmd
}
