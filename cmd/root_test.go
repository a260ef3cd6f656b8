package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"alertctl/internal/alerting"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetVersion(t *testing.T) {
	original := rootCmd.Version
	defer func() { rootCmd.Version = original }()

	testVersion := "1.2.3-test"
	SetVersion(testVersion)

	if rootCmd.Version != testVersion {
		t.Errorf("Expected version to be %s, got %s", testVersion, rootCmd.Version)
	}
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "alertctl" {
		t.Errorf("Expected Use to be 'alertctl', got %s", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("Expected Short description to be set")
	}

	if rootCmd.Long == "" {
		t.Error("Expected Long description to be set")
	}

	if !rootCmd.SilenceUsage {
		t.Error("Expected SilenceUsage to be true")
	}
}

func TestVersionTemplate(t *testing.T) {
	testCmd := &cobra.Command{
		Use:     "test",
		Version: "1.0.0",
	}
	testCmd.SetVersionTemplate(`{{printf "alertctl version %s\n" .Version}}`)

	var buf bytes.Buffer
	testCmd.SetOut(&buf)
	testCmd.SetArgs([]string{"--version"})
	require.NoError(t, testCmd.Execute())

	assert.Equal(t, "alertctl version 1.0.0\n", buf.String())
}

func TestSubcommands(t *testing.T) {
	found := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		found[c.Name()] = true
	}

	for _, expected := range []string{"version", "self-update", "gen-config", "demo", "logs", "demo-alert"} {
		if !found[expected] {
			t.Errorf("Expected subcommand %s to be registered", expected)
		}
	}
}

func TestPersistentFlags(t *testing.T) {
	for _, name := range []string{"kubeconfig", "context", "request-timeout", "debug"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "flag %s", name)
	}
}

func TestPrintError(t *testing.T) {
	t.Run("plain error", func(t *testing.T) {
		var buf bytes.Buffer
		printError(&buf, errors.New("boom"))

		out := buf.String()
		assert.Contains(t, out, "Error:")
		assert.Contains(t, out, "boom")
		assert.Equal(t, 1, strings.Count(out, "\n"))
	})

	t.Run("hinted error", func(t *testing.T) {
		var buf bytes.Buffer
		err := fmt.Errorf("sending alert: %w", &alerting.DiscoveryError{Selectors: []string{"app=alertmanager"}})
		printError(&buf, err)

		out := buf.String()
		assert.Contains(t, out, "sending alert")
		assert.Contains(t, out, "--routing-url")
		assert.Equal(t, 2, strings.Count(out, "\n"))
	})
}

func TestCommandContextWithoutCommand(t *testing.T) {
	assert.NotNil(t, commandContext(nil))
	assert.NotNil(t, commandContext(&cobra.Command{}))
}

func TestVersionCommand(t *testing.T) {
	original := rootCmd.Version
	defer func() { rootCmd.Version = original }()
	SetVersion("0.4.2")

	var buf bytes.Buffer
	versionCmd := newVersionCmd()
	versionCmd.SetOut(&buf)
	versionCmd.SetArgs([]string{})
	require.NoError(t, versionCmd.Execute())

	assert.Equal(t, "alertctl version 0.4.2\n", buf.String())
}
