package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/kralicky/mcsetup/pkg/meta"
	"github.com/kralicky/mcsetup/pkg/platform"
	"github.com/spf13/cobra"
)

func BuildLibrariesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "libraries <version>",
		Short: "Show which libraries a version needs on this platform",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := loadVersion(cmd, clientFor(cmd), args[0])
			if err != nil {
				return err
			}
			hostOS := hostPlatform(cmd)

			w := table.NewWriter()
			w.SetStyle(table.StyleColoredDark)
			w.SetTitle("%s on %s (%s-bit)", desc.ID, hostOS, platform.Arch())
			w.AppendHeader(table.Row{"LIBRARY", "APPLICABLE", "DOWNLOAD", "PATH"})
			for i := range desc.Libraries {
				lib := &desc.Libraries[i]
				w.AppendRow(libraryRow(lib, hostOS))
			}
			w.AppendFooter(table.Row{"", "", "", len(desc.Libraries)})
			fmt.Fprintln(cmd.OutOrStdout(), w.Render())
			return nil
		},
	}
	cmd.Flags().Bool("offline", false, "only use files that are already downloaded")
	return cmd
}

func libraryRow(lib *meta.Library, hostOS string) table.Row {
	if !lib.IsApplicable(hostOS) {
		return table.Row{lib.Name, text.Colors{text.FgRed}.Sprint("no"), "", ""}
	}
	applicable := text.Colors{text.FgGreen}.Sprint("yes")
	if lib.HasPlatformNativeArtifact(hostOS) {
		classifier, err := lib.NativeArtifact(hostOS)
		if err != nil {
			return table.Row{lib.Name, applicable, "native", text.Colors{text.FgRed}.Sprint(err.Error())}
		}
		return table.Row{lib.Name, applicable, "native", classifier.Path}
	}
	if lib.HasNatives() {
		return table.Row{lib.Name, applicable, "native", text.Colors{text.FgHiBlack}.Sprint("none for " + hostOS)}
	}
	if artifact, ok := lib.PrimaryArtifact(); ok {
		return table.Row{lib.Name, applicable, "artifact", artifact.Path}
	}
	return table.Row{lib.Name, applicable, "", ""}
}
