package cmd

import (
	"fmt"
	"time"

	"alertctl/internal/crashdemo"

	"github.com/spf13/cobra"
)

func newDemoCmd() *cobra.Command {
	var (
		namespace string
		wait      time.Duration
		keep      bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Deploy a crashing pod to see the platform react",
		Long: `Deploys a Deployment whose pod crash-loops, waits for the platform to
notice, then removes it. Use --keep to leave it running and 'demo remove'
to delete it later.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientset, err := newClientset()
			if err != nil {
				return err
			}
			return crashdemo.New(clientset, namespace).Run(commandContext(cmd), wait, keep, cmd.OutOrStdout())
		},
	}
	cmd.PersistentFlags().StringVarP(&namespace, "namespace", "n", crashdemo.DefaultNamespace, "Namespace for the crashing workload")
	cmd.Flags().DurationVar(&wait, "wait", 30*time.Second, "How long to leave the crashing pod running")
	cmd.Flags().BoolVar(&keep, "keep", false, "Leave the crashing pod running")

	cmd.AddCommand(&cobra.Command{
		Use:   "remove",
		Short: "Remove the crashing demo pod",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientset, err := newClientset()
			if err != nil {
				return err
			}
			if err := crashdemo.New(clientset, namespace).Remove(commandContext(cmd)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed deployment/%s from namespace %s\n", crashdemo.DeploymentName, namespace)
			return nil
		},
	})
	return cmd
}
