package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/kralicky/mcsetup/pkg/config"
	"github.com/spf13/cobra"
)

func BuildVersionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "versions",
		Aliases: []string{"ls"},
		Short:   "List available game versions",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, err := clientFor(cmd).DownloadVersionManifest(cmd.Context())
			if err != nil {
				return err
			}

			w := table.NewWriter()
			w.SetStyle(table.StyleColoredDark)
			w.AppendHeader(table.Row{"VERSION", "TYPE", "RELEASED"})
			for _, v := range manifest.Sorted(boolSetting(cmd, "snapshots", config.IncludeSnapshots())) {
				id := v.ID
				switch id {
				case manifest.Latest.Release:
					id = text.Colors{text.FgGreen}.Sprint(id + " (latest)")
				case manifest.Latest.Snapshot:
					id = text.Colors{text.FgYellow}.Sprint(id + " (snapshot)")
				}
				w.AppendRow(table.Row{id, v.Type, v.ReleaseTime.Local().Format("2006-01-02")})
			}
			fmt.Fprintln(cmd.OutOrStdout(), w.Render())
			return nil
		},
	}
	cmd.Flags().Bool("snapshots", false, "include snapshots and old alpha/beta versions")
	return cmd
}
