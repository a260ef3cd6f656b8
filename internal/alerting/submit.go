package alerting

import (
	"context"
	"fmt"

	"alertctl/internal/discovery"
	"alertctl/pkg/logging"

	"github.com/google/uuid"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

const subsystem = "DemoAlert"

// DefaultNamespaces are searched for a pod to attach the demo alert to.
var DefaultNamespaces = []string{"robusta", "default"}

// DefaultAlertName is the alertname label used when none is given.
const DefaultAlertName = "KubePodNotReady"

// newJobSuffix is swapped in tests for deterministic job names.
var newJobSuffix = func() string {
	return uuid.NewString()[:8]
}

// Request describes one demo alert submission.
type Request struct {
	// RoutingURL is the alert-routing service base URL. Empty means discover it.
	RoutingURL string
	// Namespaces are scanned in order for a pod to reference in the alert.
	Namespaces []string
	AlertName  string
	// ExtraLabels is a comma-separated key=value list applied over the seeded labels.
	ExtraLabels string
	// Image runs curl inside the Job.
	Image string
}

// Result reports what was submitted.
type Result struct {
	RoutingURL string
	PodName    string
	Namespace  string
	JobName    string
}

// Submitter creates demo alert Jobs in the cluster.
type Submitter struct {
	clientset  kubernetes.Interface
	discoverer *discovery.Discoverer
}

// NewSubmitter returns a Submitter that discovers the routing service under clusterDomain.
func NewSubmitter(clientset kubernetes.Interface, clusterDomain string) *Submitter {
	return &Submitter{
		clientset:  clientset,
		discoverer: discovery.NewDiscoverer(clientset, clusterDomain),
	}
}

// ResolveRoutingURL returns url when set, otherwise discovers the routing
// service with discovery.AlertManagerSelectors.
func (s *Submitter) ResolveRoutingURL(ctx context.Context, url string) (string, error) {
	if url != "" {
		return url, nil
	}
	found, ok, err := s.discoverer.FindURL(ctx, discovery.AlertManagerSelectors, discovery.AlertManagerNotFoundMessage)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &DiscoveryError{Selectors: discovery.AlertManagerSelectors}
	}
	return found, nil
}

// Submit builds the demo alert and creates the Job that delivers it. It does
// not wait for the Job to run.
func (s *Submitter) Submit(ctx context.Context, req Request) (Result, error) {
	routingURL, err := s.ResolveRoutingURL(ctx, req.RoutingURL)
	if err != nil {
		return Result{}, err
	}

	pod, err := FirstPod(ctx, s.clientset, req.Namespaces)
	if err != nil {
		return Result{}, err
	}

	alert, err := alertForPod(req, pod)
	if err != nil {
		return Result{}, err
	}
	body, err := EncodeAlerts(alert)
	if err != nil {
		return Result{}, err
	}

	image := req.Image
	if image == "" {
		image = DefaultImage
	}
	job := BuildJob(jobNamePrefix+newJobSuffix(), pod.Namespace, image, routingURL, body)

	logging.Debug(subsystem, "Creating job %s/%s targeting %s", job.Namespace, job.Name, AlertsEndpoint(routingURL))
	created, err := s.clientset.BatchV1().Jobs(pod.Namespace).Create(ctx, job, metav1.CreateOptions{})
	if err != nil {
		return Result{}, fmt.Errorf("failed to create job %s/%s: %w", job.Namespace, job.Name, err)
	}

	return Result{
		RoutingURL: routingURL,
		PodName:    pod.Name,
		Namespace:  pod.Namespace,
		JobName:    created.Name,
	}, nil
}

// FirstPod returns the first pod listed in the first namespace that has any.
// Pods are taken in the order the API server returns them.
func FirstPod(ctx context.Context, clientset kubernetes.Interface, namespaces []string) (corev1.Pod, error) {
	for _, ns := range namespaces {
		pods, err := clientset.CoreV1().Pods(ns).List(ctx, metav1.ListOptions{})
		if err != nil {
			return corev1.Pod{}, fmt.Errorf("failed to list pods in namespace %s: %w", ns, err)
		}
		if len(pods.Items) == 0 {
			logging.Debug(subsystem, "No pods in namespace %s", ns)
			continue
		}
		pod := pods.Items[0]
		if pod.Namespace == "" {
			pod.Namespace = ns
		}
		return pod, nil
	}
	return corev1.Pod{}, &NoPodFoundError{Namespaces: namespaces}
}

func alertForPod(req Request, pod corev1.Pod) (DemoAlert, error) {
	extra, err := ParseLabels(req.ExtraLabels)
	if err != nil {
		return DemoAlert{}, err
	}
	name := req.AlertName
	if name == "" {
		name = DefaultAlertName
	}
	return NewDemoAlert(name, pod.Name, pod.Namespace, extra), nil
}
