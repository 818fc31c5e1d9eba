package commands

import (
	"errors"
	"fmt"

	"github.com/kralicky/mcsetup/pkg/config"
	"github.com/kralicky/mcsetup/pkg/provision"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func BuildSyncCmd() *cobra.Command {
	var opts provision.SyncOptions
	var workers int
	cmd := &cobra.Command{
		Use:   "sync [version]",
		Short: "Download and verify every file a version needs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFor(cmd)
			offline := boolSetting(cmd, "offline", config.Offline())

			var id string
			if len(args) == 1 {
				id = args[0]
			} else if offline {
				return errors.New("a version is required when offline")
			} else {
				var err error
				id, err = selectVersion(cmd.Context(), client, config.IncludeSnapshots())
				if err != nil {
					return err
				}
			}

			layout, err := dataLayout()
			if err != nil {
				return err
			}
			desc, err := provision.LoadVersion(cmd.Context(), client, layout, id, offline)
			if err != nil {
				return err
			}
			set := provision.Resolve(desc, hostPlatform(cmd))
			for _, u := range set.Unresolved {
				log.Errorf("%s: %v", u.Name, u.Err)
			}
			log.Debugf("%s on %s: %d libraries, %d natives, %d skipped",
				set.Version, set.Platform, len(set.Libraries), len(set.Natives), len(set.Skipped))

			if !cmd.Flags().Changed("workers") {
				workers = config.Workers()
			}
			syncer := &provision.Syncer{
				Client:   client,
				Layout:   layout,
				Workers:  workers,
				Offline:  offline,
				Refresh:  boolSetting(cmd, "refresh", config.Refresh()),
				Progress: cmd.ErrOrStderr(),
			}
			if err := syncer.Sync(cmd.Context(), desc, set, opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is ready in %s\n", desc.ID, layout.VersionDir(desc.ID))
			return nil
		},
	}
	cmd.Flags().Bool("offline", false, "only use files that are already downloaded")
	cmd.Flags().Bool("refresh", false, "download every file again")
	cmd.Flags().IntVarP(&workers, "workers", "j", config.DefaultWorkers, "number of concurrent downloads")
	cmd.Flags().BoolVar(&opts.SkipAssets, "skip-assets", false, "do not download assets")
	cmd.Flags().BoolVar(&opts.SkipNatives, "skip-natives", false, "do not download or extract natives")
	return cmd
}
