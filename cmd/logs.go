package cmd

import (
	"time"

	"alertctl/internal/config"
	"alertctl/internal/runnerlogs"

	"github.com/spf13/cobra"
)

func newLogsCmd() *cobra.Command {
	opts := runnerlogs.Options{}
	var since time.Duration

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Stream the runner's logs",
		Long: `Streams the logs of the platform's runner pod. The namespace defaults to
$INSTALLATION_NAMESPACE, or "robusta" when that is unset.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Namespace == "" {
				env, err := config.LoadEnv()
				if err != nil {
					return err
				}
				opts.Namespace = env.InstallationNamespace
			}
			opts.Since = since

			clientset, err := newClientset()
			if err != nil {
				return err
			}
			return runnerlogs.Stream(commandContext(cmd), clientset, opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&opts.Namespace, "namespace", "n", "", "Namespace the platform is installed in")
	cmd.Flags().BoolVarP(&opts.Follow, "follow", "f", false, "Keep streaming new log lines")
	cmd.Flags().DurationVar(&since, "since", 0, "Only show logs newer than this duration (e.g. 10m)")
	cmd.Flags().Int64Var(&opts.Tail, "tail", 0, "Only show the last N lines")
	cmd.Flags().StringVar(&opts.ResourceName, "resource-name", "", "Runner pod or deployment to read, e.g. deployment/robusta-runner (found by label when empty)")
	return cmd
}
