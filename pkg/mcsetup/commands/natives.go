package commands

import (
	"fmt"

	"github.com/kralicky/mcsetup/pkg/config"
	"github.com/kralicky/mcsetup/pkg/provision"
	"github.com/spf13/cobra"
)

func BuildNativesCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "natives <version>",
		Short: "Download and extract the native libraries of a version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFor(cmd)
			desc, err := loadVersion(cmd, client, args[0])
			if err != nil {
				return err
			}
			set := provision.Resolve(desc, hostPlatform(cmd))
			if err := set.Err(); err != nil {
				return err
			}
			if len(set.Natives) == 0 {
				return provision.ErrNoPlatformNatives
			}

			layout, err := dataLayout()
			if err != nil {
				return err
			}
			syncer := &provision.Syncer{
				Client:   client,
				Layout:   layout,
				Workers:  config.Workers(),
				Offline:  boolSetting(cmd, "offline", config.Offline()),
				Refresh:  force,
				Progress: cmd.ErrOrStderr(),
			}
			if err := syncer.SyncNatives(cmd.Context(), set); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), layout.NativesDir(desc.ID))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "download and extract even if the natives are up to date")
	cmd.Flags().Bool("offline", false, "only use files that are already downloaded")
	return cmd
}
