package cmd

import (
	"context"
	"fmt"
	"time"

	"alertctl/internal/alerting"
	"alertctl/internal/config"
	"alertctl/internal/discovery"
	"alertctl/internal/portforwarding"
	"alertctl/internal/trust"

	"github.com/spf13/cobra"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/client-go/kubernetes"
)

// forwardService is replaced in tests.
var forwardService = func(ctx context.Context, clientset kubernetes.Interface, svc corev1.Service) (routingURL string, stop func(), err error) {
	restConfig, err := clientOptions().RESTConfig()
	if err != nil {
		return "", nil, err
	}
	session, err := portforwarding.Forward(ctx, restConfig, clientset, svc)
	if err != nil {
		return "", nil, err
	}
	return session.URL(), session.Close, nil
}

// directPostTimeout bounds the whole HTTP exchange in --direct mode.
const directPostTimeout = 30 * time.Second

func newDemoAlertCmd() *cobra.Command {
	var (
		req           alerting.Request
		clusterDomain string
		direct        bool
	)

	cmd := &cobra.Command{
		Use:   "demo-alert",
		Short: "Send a demo alert through the cluster's alert-routing service",
		Long: `Sends a firing demo alert about an existing pod to the alert-routing service
(Alertmanager API v1).

By default the routing service is discovered by probing well-known labels, and
the alert is posted from inside the cluster by a short-lived Job that deletes
itself once finished. With --direct the alert is posted from this machine
instead. Without --routing-url, direct mode discovers the routing service and
reaches it through a temporary port-forward. The CERTIFICATE environment variable may hold an extra
base64-encoded PEM certificate to trust in --direct mode.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := config.LoadEnv()
			if err != nil {
				return err
			}
			if clusterDomain == "" {
				clusterDomain = env.ClusterDomain
			}

			clientset, err := newClientset()
			if err != nil {
				return err
			}
			ctx := commandContext(cmd)
			out := cmd.OutOrStdout()

			if direct {
				if req.RoutingURL == "" {
					svc, found, err := discovery.NewDiscoverer(clientset, clusterDomain).
						FindService(ctx, discovery.AlertManagerSelectors, discovery.AlertManagerNotFoundMessage)
					if err != nil {
						return err
					}
					if !found {
						return &alerting.DiscoveryError{Selectors: discovery.AlertManagerSelectors}
					}
					localURL, stop, err := forwardService(ctx, clientset, svc)
					if err != nil {
						return err
					}
					defer stop()
					req.RoutingURL = localURL
				}
				httpClient, err := trust.NewHTTPClient(env.Certificate, directPostTimeout)
				if err != nil {
					return err
				}
				res, err := alerting.SubmitDirect(ctx, clientset, alerting.NewPoster(httpClient), req)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Sent alert %s for pod %s in namespace %s to %s\n",
					alertName(req), res.PodName, res.Namespace, alerting.AlertsEndpoint(res.RoutingURL))
				return nil
			}

			res, err := alerting.NewSubmitter(clientset, clusterDomain).Submit(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Created job %s in namespace %s: alert %s for pod %s, routed to %s\n",
				res.JobName, res.Namespace, alertName(req), res.PodName, res.RoutingURL)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.RoutingURL, "routing-url", "", "Alert-routing service URL, e.g. http://alertmanager.monitoring.svc.cluster.local:9093 (discovered when empty)")
	f.StringSliceVar(&req.Namespaces, "namespaces", alerting.DefaultNamespaces, "Namespaces searched, in order, for a pod to attach the alert to")
	f.StringVar(&req.AlertName, "alert", alerting.DefaultAlertName, "Value of the alertname label")
	f.StringVar(&req.ExtraLabels, "labels", "", "Extra labels as key=value pairs separated by commas, e.g. env=prod,team=infra")
	f.StringVar(&req.Image, "image", alerting.DefaultImage, "Image used by the job to post the alert")
	f.StringVar(&clusterDomain, "cluster-domain", "", "Cluster DNS domain for discovered URLs (defaults to $CLUSTER_DOMAIN or cluster.local)")
	f.BoolVar(&direct, "direct", false, "Post the alert from this machine instead of from a job in the cluster")
	return cmd
}

func alertName(req alerting.Request) string {
	if req.AlertName == "" {
		return alerting.DefaultAlertName
	}
	return req.AlertName
}
