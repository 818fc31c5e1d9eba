package mcsetup

import (
	"fmt"
	"path/filepath"

	"github.com/kralicky/mcsetup/pkg/config"
	"github.com/kralicky/mcsetup/pkg/mcsetup/commands"
	"github.com/kralicky/mcsetup/pkg/provision"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func BuildRootCmd() *cobra.Command {
	var verbose bool
	rootCmd := &cobra.Command{
		Use:   "mcsetup",
		Short: "Download and verify the files a Minecraft version needs",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
			dataDir, err := provision.UpsertDataDir()
			if err != nil {
				return fmt.Errorf("failed to create data directory: %w", err)
			}
			configFile := filepath.Join(dataDir, "cli-config.yaml")
			return config.Load(configFile)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("platform", "", "platform to resolve libraries for (windows, osx or linux)")

	configCmd := commands.BuildConfigCmd()
	configCmd.AddCommand(commands.BuildConfigSetCmd())

	rootCmd.AddCommand(commands.BuildVersionsCmd())
	rootCmd.AddCommand(commands.BuildLibrariesCmd())
	rootCmd.AddCommand(commands.BuildSyncCmd())
	rootCmd.AddCommand(commands.BuildNativesCmd())
	rootCmd.AddCommand(commands.BuildDirCmd())
	rootCmd.AddCommand(configCmd)

	return rootCmd
}
