package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReleases struct {
	latest     release
	found      bool
	detectErr  error
	installErr error
	installed  []release
}

func stubReleases(t *testing.T, currentVersion string, f *fakeReleases) {
	t.Helper()
	origDetect, origInstall, origVersion := detectLatestRelease, installRelease, rootCmd.Version
	t.Cleanup(func() {
		detectLatestRelease, installRelease, rootCmd.Version = origDetect, origInstall, origVersion
	})

	rootCmd.Version = currentVersion
	detectLatestRelease = func(context.Context) (release, bool, error) {
		return f.latest, f.found, f.detectErr
	}
	installRelease = func(_ context.Context, rel release) error {
		f.installed = append(f.installed, rel)
		return f.installErr
	}
}

func runSelfUpdateCmd(t *testing.T) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	c := newSelfUpdateCmd()
	c.SetOut(&buf)
	c.SetErr(&buf)
	c.SetArgs([]string{})
	err := c.Execute()
	return buf.String(), err
}

func TestSelfUpdate_RefusesDevelopmentVersions(t *testing.T) {
	for _, v := range []string{"", "dev"} {
		f := &fakeReleases{}
		stubReleases(t, v, f)

		err := runSelfUpdate(nil, nil)
		assert.ErrorContains(t, err, "cannot self-update a development version")
		assert.Empty(t, f.installed)
	}
}

func TestSelfUpdate_AlreadyLatest(t *testing.T) {
	for _, latest := range []string{"1.4.0", "1.3.9"} {
		f := &fakeReleases{latest: release{Version: latest}, found: true}
		stubReleases(t, "v1.4.0", f)

		out, err := runSelfUpdateCmd(t)
		require.NoError(t, err)
		assert.Equal(t, "Current version (v1.4.0) is the latest\n", out)
		assert.Empty(t, f.installed)
	}
}

func TestSelfUpdate_InstallsNewerRelease(t *testing.T) {
	newer := release{Version: "1.5.0", AssetURL: "https://example.test/alertctl.tar.gz", AssetName: "alertctl.tar.gz"}
	f := &fakeReleases{latest: newer, found: true}
	stubReleases(t, "1.4.0", f)

	out, err := runSelfUpdateCmd(t)
	require.NoError(t, err)
	assert.Equal(t, "Successfully updated to version 1.5.0\n", out)
	assert.Equal(t, []release{newer}, f.installed)
}

func TestSelfUpdate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		current string
		fake    fakeReleases
		wantErr string
	}{
		{name: "lookup fails", current: "1.0.0", fake: fakeReleases{detectErr: errors.New("rate limited")}, wantErr: "failed to detect latest version: rate limited"},
		{name: "no release for platform", current: "1.0.0", fake: fakeReleases{}, wantErr: "no release found"},
		{name: "install fails", current: "1.0.0", fake: fakeReleases{latest: release{Version: "1.1.0"}, found: true, installErr: errors.New("permission denied")}, wantErr: "failed to update binary: permission denied"},
		{name: "unparsable current version", current: "nightly", fake: fakeReleases{}, wantErr: "invalid current version"},
		{name: "unparsable release version", current: "1.0.0", fake: fakeReleases{latest: release{Version: "latest"}, found: true}, wantErr: "invalid release version"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.fake
			stubReleases(t, tt.current, &f)

			_, err := runSelfUpdateCmd(t)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
