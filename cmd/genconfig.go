package cmd

import (
	"fmt"
	"io"
	"strings"

	"alertctl/internal/config"
	"alertctl/internal/kube"
	"alertctl/internal/prompt"
	"alertctl/pkg/logging"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

// Replaced in tests.
var (
	currentContext  = kube.CurrentContext
	copyToClipboard = clipboard.WriteAll
	newPrompter     = func(cmd *cobra.Command) prompt.Prompter {
		return prompt.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout())
	}
)

type genConfigOptions struct {
	clusterName           string
	slackAPIKey           string
	slackChannel          string
	msTeamsWebhook        string
	uiToken               string
	enablePrometheusStack bool
	disableCloudRouting   bool
	enableCrashReport     bool
	smallCluster          bool
	outputPath            string
	nonInteractive        bool
	copyCommand           bool
}

func newGenConfigCmd() *cobra.Command {
	opts := &genConfigOptions{}
	cmd := &cobra.Command{
		Use:   "gen-config",
		Short: "Generate a Helm values file for installing the platform",
		Long: `Generates the Helm values file used to install the alerting platform.

Values not given as flags are asked for interactively. Sinks whose credential is
left empty are not configured. A fresh signing key and account id are generated
on every run, and the output file is replaced.

When a UI token is given, the account id is taken from it, the UI sink is
listed first, platform playbooks are enabled and cloud routing stays on.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd)
			if opts.nonInteractive {
				p = prompt.Defaults{}
			}
			return runGenConfig(cmd, opts, p)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.clusterName, "cluster-name", "", "Cluster name shown in notifications (defaults to the kubeconfig context)")
	f.StringVar(&opts.slackAPIKey, "slack-api-key", "", "Slack bot token for the Slack sink")
	f.StringVar(&opts.slackChannel, "slack-channel", "", "Slack channel the Slack sink posts to")
	f.StringVar(&opts.msTeamsWebhook, "msteams-webhook", "", "Incoming webhook URL for the MS Teams sink")
	f.StringVar(&opts.uiToken, "ui-token", "", "Token for the platform UI sink")
	f.BoolVar(&opts.enablePrometheusStack, "enable-prometheus-stack", false, "Install the bundled Prometheus stack")
	f.BoolVar(&opts.disableCloudRouting, "disable-cloud-routing", false, "Do not route alerts through the cloud service")
	f.BoolVar(&opts.enableCrashReport, "enable-crash-report", false, "Let the runner send exception reports")
	f.BoolVar(&opts.smallCluster, "small-cluster", false, "Use reduced resource requests (detected from the context name when not set)")
	f.StringVar(&opts.outputPath, "output-path", config.DefaultValuesPath, "Where to write the values file")
	f.BoolVar(&opts.nonInteractive, "non-interactive", false, "Do not prompt; use flags and defaults only")
	f.BoolVar(&opts.copyCommand, "copy", false, "Copy the helm install command to the clipboard")
	return cmd
}

func runGenConfig(cmd *cobra.Command, opts *genConfigOptions, p prompt.Prompter) error {
	flags := cmd.Flags()
	out := cmd.OutOrStdout()

	ctxName, err := currentContext(clientOptions())
	if err != nil {
		logging.Debug("GenConfig", "Could not determine current context: %v", err)
	}

	if !flags.Changed("cluster-name") {
		if opts.clusterName, err = p.Ask("Cluster name", ctxName, false); err != nil {
			return err
		}
	}
	if opts.clusterName == "" {
		return fmt.Errorf("cluster name is required: pass --cluster-name or select a kubeconfig context")
	}

	if !flags.Changed("slack-api-key") {
		if opts.slackAPIKey, err = p.Ask("Slack API key (leave empty to skip Slack)", "", true); err != nil {
			return err
		}
	}
	opts.slackChannel = normalizeSlackChannel(opts.slackChannel)
	if opts.slackAPIKey != "" && opts.slackChannel == "" {
		channel, err := p.Ask("Slack channel", "", false)
		if err != nil {
			return err
		}
		opts.slackChannel = normalizeSlackChannel(channel)
		if opts.slackChannel == "" {
			return fmt.Errorf("a Slack channel is required when a Slack API key is set")
		}
	}
	if !flags.Changed("msteams-webhook") {
		if opts.msTeamsWebhook, err = p.Ask("MS Teams webhook URL (leave empty to skip MS Teams)", "", true); err != nil {
			return err
		}
	}
	if !flags.Changed("ui-token") {
		if opts.uiToken, err = p.Ask("Platform UI token (leave empty to skip the UI sink)", "", true); err != nil {
			return err
		}
	}
	if !flags.Changed("enable-prometheus-stack") {
		if opts.enablePrometheusStack, err = p.Confirm("Install the bundled Prometheus stack?", false); err != nil {
			return err
		}
	}
	// A UI token keeps cloud routing on.
	if opts.uiToken != "" {
		opts.disableCloudRouting = false
	} else if !flags.Changed("disable-cloud-routing") {
		if opts.disableCloudRouting, err = p.Confirm("Disable cloud routing of alerts?", false); err != nil {
			return err
		}
	}
	if !flags.Changed("enable-crash-report") {
		if opts.enableCrashReport, err = p.Confirm("Send exception reports to help improve the platform?", false); err != nil {
			return err
		}
	}
	if !flags.Changed("small-cluster") {
		opts.smallCluster = kube.IsSmallCluster(ctxName)
	}

	inputs := config.SinkInputs{
		SlackAPIKey:    opts.slackAPIKey,
		SlackChannel:   opts.slackChannel,
		MSTeamsWebhook: opts.msTeamsWebhook,
		UIToken:        opts.uiToken,
	}
	values, err := config.NewValues(config.Options{
		ClusterName:           opts.clusterName,
		Sinks:                 inputs,
		SmallCluster:          opts.smallCluster,
		EnablePrometheusStack: opts.enablePrometheusStack,
		DisableCloudRouting:   opts.disableCloudRouting,
		SendCrashReports:      opts.enableCrashReport,
	})
	if err != nil {
		return err
	}
	sinks := values.SinksConfig

	if err := config.WriteValues(opts.outputPath, values); err != nil {
		return err
	}
	logging.Debug("GenConfig", "Wrote values for cluster %s with %d sinks", values.ClusterName, len(sinks))

	fmt.Fprintln(out, prompt.SuccessStyle.Render("Saved configuration to "+opts.outputPath))
	if len(sinks) == 0 {
		fmt.Fprintln(out, prompt.HintStyle.Render("No sinks configured; alerts will only be visible in the runner logs."))
	} else {
		writeSinkSummary(out, sinks)
	}

	install := helmInstallCommand(opts.outputPath)
	fmt.Fprintln(out)
	fmt.Fprintln(out, prompt.TitleStyle.Render("Install with:"))
	fmt.Fprintln(out, "  helm repo add robusta https://robusta-charts.storage.googleapis.com && helm repo update")
	fmt.Fprintln(out, "  "+install)

	if opts.copyCommand {
		if err := copyToClipboard(install); err != nil {
			logging.Warn("GenConfig", "Could not copy to clipboard: %v", err)
		} else {
			fmt.Fprintln(out, prompt.MutedStyle.Render("(install command copied to clipboard)"))
		}
	}
	return nil
}

// normalizeSlackChannel accepts channels typed with or without the leading '#'.
func normalizeSlackChannel(channel string) string {
	return strings.TrimPrefix(strings.TrimSpace(channel), "#")
}

func helmInstallCommand(valuesPath string) string {
	return fmt.Sprintf("helm install robusta robusta/robusta -f %s", valuesPath)
}

// writeSinkSummary prints the configured sinks as an aligned table with
// credentials masked.
func writeSinkSummary(w io.Writer, sinks []config.Sink) {
	header := []string{"SINK", "TYPE", "CREDENTIAL"}
	rows := [][]string{header}
	for _, s := range sinks {
		rows = append(rows, []string{s.Name(), s.Kind(), maskSecret(s.Secret())})
	}

	widths := make([]int, len(header))
	for _, row := range rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i == len(row)-1 {
				cells[i] = cell
				continue
			}
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
		fmt.Fprintln(w, "  "+strings.Join(cells, "  "))
	}
}

// maskSecret keeps just enough of a credential to recognise it.
func maskSecret(s string) string {
	r := []rune(s)
	if len(r) <= 12 {
		return strings.Repeat("*", 8)
	}
	return string(r[:4]) + "…" + string(r[len(r)-4:])
}
