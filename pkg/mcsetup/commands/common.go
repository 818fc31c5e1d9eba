package commands

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/kralicky/mcsetup/pkg/api"
	"github.com/kralicky/mcsetup/pkg/config"
	"github.com/kralicky/mcsetup/pkg/meta"
	"github.com/kralicky/mcsetup/pkg/platform"
	"github.com/kralicky/mcsetup/pkg/provision"
	"github.com/spf13/cobra"
)

type clientKey struct{}

// WithClient makes commands executed with ctx use client instead of the
// default Mojang endpoints.
func WithClient(ctx context.Context, client api.Client) context.Context {
	return context.WithValue(ctx, clientKey{}, client)
}

func clientFor(cmd *cobra.Command) api.Client {
	if client, ok := cmd.Context().Value(clientKey{}).(api.Client); ok {
		return client
	}
	return api.NewClient()
}

func dataLayout() (provision.Layout, error) {
	dir, err := provision.DataDir()
	if err != nil {
		return provision.Layout{}, err
	}
	return provision.Layout{Root: dir}, nil
}

// hostPlatform returns the --platform flag, then the configured platform,
// then the running system.
func hostPlatform(cmd *cobra.Command) string {
	if name, _ := cmd.Flags().GetString("platform"); name != "" {
		return platform.Normalize(name)
	}
	if name := config.Platform(); name != "" {
		return platform.Normalize(name)
	}
	return platform.Current()
}

func boolSetting(cmd *cobra.Command, flag string, fallback bool) bool {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetBool(flag)
		return v
	}
	return fallback
}

func loadVersion(cmd *cobra.Command, client api.Client, id string) (*meta.VersionDescriptor, error) {
	layout, err := dataLayout()
	if err != nil {
		return nil, err
	}
	return provision.LoadVersion(cmd.Context(), client, layout, id, boolSetting(cmd, "offline", config.Offline()))
}

// selectVersion prompts for a version from the manifest, defaulting to the
// latest release.
func selectVersion(ctx context.Context, client api.ManifestClient, includeSnapshots bool) (string, error) {
	manifest, err := client.DownloadVersionManifest(ctx)
	if err != nil {
		return "", err
	}
	entries := manifest.Sorted(includeSnapshots)
	if len(entries) == 0 {
		return "", errors.New("no versions available")
	}
	options := make([]string, len(entries))
	for i, e := range entries {
		options[i] = e.ID
	}
	prompt := &survey.Select{
		Message:  "Select version:",
		Options:  options,
		PageSize: 15,
	}
	if _, ok := manifest.Find(manifest.Latest.Release); ok {
		prompt.Default = manifest.Latest.Release
	}
	var id string
	if err := survey.AskOne(prompt, &id); err != nil {
		return "", err
	}
	return id, nil
}
