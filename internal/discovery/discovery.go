package discovery

import (
	"context"
	"fmt"

	"alertctl/pkg/logging"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// DefaultClusterDomain is the in-cluster DNS suffix used when none is configured.
const DefaultClusterDomain = "cluster.local"

const subsystem = "Discovery"

// Discoverer finds in-cluster services by probing label selectors.
type Discoverer struct {
	clientset     kubernetes.Interface
	clusterDomain string
}

// NewDiscoverer returns a Discoverer that lists services through clientset
// and builds URLs under clusterDomain. An empty domain means DefaultClusterDomain.
func NewDiscoverer(clientset kubernetes.Interface, clusterDomain string) *Discoverer {
	if clusterDomain == "" {
		clusterDomain = DefaultClusterDomain
	}
	return &Discoverer{clientset: clientset, clusterDomain: clusterDomain}
}

// FindURL tries each selector in order and returns the URL of the first
// service matched. Selectors are passed to the API server verbatim.
//
// When nothing matches, found is false, err is nil and fallbackMessage is
// logged at debug level.
func (d *Discoverer) FindURL(ctx context.Context, selectors []string, fallbackMessage string) (url string, found bool, err error) {
	svc, found, err := d.FindService(ctx, selectors, fallbackMessage)
	if err != nil || !found {
		return "", found, err
	}
	url, ok := ServiceURL(svc, d.clusterDomain)
	if !ok {
		return "", false, nil
	}
	logging.Debug(subsystem, "Routing URL for %s/%s: %s", svc.Namespace, svc.Name, url)
	return url, true, nil
}

// FindService is FindURL without the URL step. A matched service without
// ports cannot be addressed, so it is logged and the next selector is tried.
func (d *Discoverer) FindService(ctx context.Context, selectors []string, fallbackMessage string) (corev1.Service, bool, error) {
	for _, selector := range selectors {
		services, err := d.clientset.CoreV1().Services(metav1.NamespaceAll).List(ctx, metav1.ListOptions{LabelSelector: selector})
		if err != nil {
			return corev1.Service{}, false, fmt.Errorf("failed to list services for selector %q: %w", selector, err)
		}
		if len(services.Items) == 0 {
			continue
		}

		svc := services.Items[0]
		if len(svc.Spec.Ports) == 0 {
			logging.Debug(subsystem, "Service %s/%s matched selector %q but declares no ports, skipping", svc.Namespace, svc.Name, selector)
			continue
		}

		logging.Debug(subsystem, "Selector %q matched service %s/%s", selector, svc.Namespace, svc.Name)
		return svc, true, nil
	}

	logging.Debug(subsystem, "%s", fallbackMessage)
	return corev1.Service{}, false, nil
}

// ServiceURL composes http://{name}.{namespace}.svc.{domain}:{port} from the
// service's first declared port. It reports false for a service without ports.
func ServiceURL(svc corev1.Service, clusterDomain string) (string, bool) {
	if len(svc.Spec.Ports) == 0 {
		return "", false
	}
	return fmt.Sprintf("http://%s.%s.svc.%s:%d", svc.Name, svc.Namespace, clusterDomain, svc.Spec.Ports[0].Port), true
}
