package cmd

import (
	"context"
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// githubRepository hosts alertctl's release binaries.
const githubRepository = "alertctl-dev/alertctl"

// release is the part of a GitHub release self-update acts on.
type release struct {
	Version   string
	AssetURL  string
	AssetName string
}

// Replaced in tests.
var (
	detectLatestRelease = func(ctx context.Context) (release, bool, error) {
		latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(githubRepository))
		if err != nil || !found {
			return release{}, found, err
		}
		return release{Version: latest.Version(), AssetURL: latest.AssetURL, AssetName: latest.AssetName}, true, nil
	}
	installRelease = func(ctx context.Context, rel release) error {
		exe, err := selfupdate.ExecutablePath()
		if err != nil {
			return fmt.Errorf("failed to locate executable path: %w", err)
		}
		return selfupdate.UpdateTo(ctx, rel.AssetURL, rel.AssetName, exe)
	}
)

func newSelfUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "self-update",
		Short: "Update alertctl to the latest release",
		Long: `Checks GitHub for the latest alertctl release and replaces the running
binary with it when it is newer than the installed version.`,
		Args: cobra.NoArgs,
		RunE: runSelfUpdate,
	}
}

func runSelfUpdate(cmd *cobra.Command, args []string) error {
	currentVersion := rootCmd.Version
	if currentVersion == "" || currentVersion == "dev" {
		return fmt.Errorf("cannot self-update a development version")
	}
	current, err := semver.NewVersion(currentVersion)
	if err != nil {
		return fmt.Errorf("invalid current version %q: %w", currentVersion, err)
	}

	ctx := commandContext(cmd)
	out := rootCmd.OutOrStdout()
	if cmd != nil {
		out = cmd.OutOrStdout()
	}

	latest, found, err := detectLatestRelease(ctx)
	if err != nil {
		return fmt.Errorf("failed to detect latest version: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s/%s in %s", runtime.GOOS, runtime.GOARCH, githubRepository)
	}
	latestVersion, err := semver.NewVersion(latest.Version)
	if err != nil {
		return fmt.Errorf("invalid release version %q: %w", latest.Version, err)
	}

	if !latestVersion.GreaterThan(current) {
		fmt.Fprintf(out, "Current version (%s) is the latest\n", currentVersion)
		return nil
	}

	if err := installRelease(ctx, latest); err != nil {
		return fmt.Errorf("failed to update binary: %w", err)
	}
	fmt.Fprintf(out, "Successfully updated to version %s\n", latest.Version)
	return nil
}
