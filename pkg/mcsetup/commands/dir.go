package commands

import (
	"fmt"

	"github.com/kralicky/mcsetup/pkg/provision"
	"github.com/spf13/cobra"
)

// BuildDirCmd prints the directory where game files are stored
func BuildDirCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dir",
		Short: "Print the directory where game files are stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := provision.DataDir()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
	return cmd
}
