package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alertctl/internal/kube"
	"alertctl/internal/prompt"
	"alertctl/pkg/logging"

	"github.com/spf13/cobra"
	"k8s.io/client-go/kubernetes"
)

// Global flags shared by every command that talks to the cluster.
var (
	kubeconfigPath string
	kubeContext    string
	requestTimeout time.Duration
	debugLogging   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "alertctl",
	Short: "Onboarding and operations helper for the Kubernetes alerting platform",
	Long: `alertctl helps install and exercise the alerting platform on a Kubernetes cluster.

It generates the Helm values file for an installation, streams the runner's logs,
deploys a crashing demo workload and sends demo alerts through the cluster's
alert-routing service.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. invalid arguments, failed connections)
	SilenceUsage: true,
	// Errors are printed by Execute so that hints can be attached.
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logging.LevelInfo
		if debugLogging {
			level = logging.LevelDebug
		}
		logging.InitForCLI(level, cmd.ErrOrStderr())
	},
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "alertctl version %s\n" .Version}}`)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

// hinter is implemented by errors that know which flag fixes them.
type hinter interface {
	Hint() string
}

// printError reports err to the operator. Errors carrying a hint get a title
// and the corrective suggestion instead of a bare message.
func printError(w io.Writer, err error) {
	var h hinter
	if errors.As(err, &h) {
		fmt.Fprintln(w, prompt.ErrorStyle.Render("Error: "+err.Error()))
		fmt.Fprintln(w, prompt.HintStyle.Render(h.Hint()))
		return
	}
	fmt.Fprintln(w, prompt.ErrorStyle.Render("Error:"), err.Error())
}

func clientOptions() kube.ClientOptions {
	return kube.ClientOptions{
		Kubeconfig: kubeconfigPath,
		Context:    kubeContext,
		Timeout:    requestTimeout,
	}
}

// newClientset is a variable so command tests can inject a fake clientset.
var newClientset = func() (kubernetes.Interface, error) {
	return kube.NewClientset(clientOptions())
}

// commandContext returns the command's context, which Execute wires to
// SIGINT/SIGTERM.
func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&kubeconfigPath, "kubeconfig", "", "Path to the kubeconfig file (defaults to $KUBECONFIG or ~/.kube/config)")
	rootCmd.PersistentFlags().StringVar(&kubeContext, "context", "", "Kubeconfig context to use (defaults to the current context)")
	rootCmd.PersistentFlags().DurationVar(&requestTimeout, "request-timeout", 0, "Timeout for individual Kubernetes API requests (0 uses the client default)")
	rootCmd.PersistentFlags().BoolVar(&debugLogging, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newDemoCmd())
	rootCmd.AddCommand(newLogsCmd())
	rootCmd.AddCommand(newDemoAlertCmd())
}
