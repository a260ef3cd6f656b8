// Package runnerlogs streams the logs of the platform's runner pod.
package runnerlogs

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"alertctl/pkg/logging"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

const (
	// RunnerSelector matches the runner Deployment's pods.
	RunnerSelector = "app=robusta-runner"
	// ContainerName is the runner container within the pod.
	ContainerName = "runner"

	subsystem = "RunnerLogs"
)

// Options controls which logs are streamed.
type Options struct {
	Namespace string
	Follow    bool
	// Since limits output to entries newer than this. Zero means no limit.
	Since time.Duration
	// Tail limits output to the last N lines. Zero or less means all lines.
	Tail int64
	// ResourceName names the runner directly as "<pod>", "pod/<name>" or
	// "deployment/<name>". Empty means look the pod up by RunnerSelector.
	ResourceName string
}

// NoRunnerPodError means no runner pod exists in the namespace.
type NoRunnerPodError struct {
	Namespace string
}

func (e *NoRunnerPodError) Error() string {
	return fmt.Sprintf("no runner pod matching %q found in namespace %s", RunnerSelector, e.Namespace)
}

// Hint tells the operator how to proceed.
func (e *NoRunnerPodError) Hint() string {
	return "Pass the namespace the platform is installed in with --namespace"
}

// FindRunnerPod returns the first pod matching RunnerSelector in namespace.
func FindRunnerPod(ctx context.Context, clientset kubernetes.Interface, namespace string) (string, error) {
	pods, err := clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{LabelSelector: RunnerSelector})
	if err != nil {
		return "", fmt.Errorf("failed to list runner pods in namespace %s: %w", namespace, err)
	}
	if len(pods.Items) == 0 {
		return "", &NoRunnerPodError{Namespace: namespace}
	}
	return pods.Items[0].Name, nil
}

// ResolvePod returns the name of the pod whose logs are streamed.
func ResolvePod(ctx context.Context, clientset kubernetes.Interface, o Options) (string, error) {
	if o.ResourceName == "" {
		return FindRunnerPod(ctx, clientset, o.Namespace)
	}

	kind, name, qualified := strings.Cut(o.ResourceName, "/")
	if !qualified {
		return o.ResourceName, nil
	}
	if name == "" {
		return "", fmt.Errorf("invalid resource name %q, expected <kind>/<name>", o.ResourceName)
	}
	switch strings.ToLower(kind) {
	case "pod", "pods", "po":
		return name, nil
	case "deployment", "deployments", "deploy":
		return deploymentPod(ctx, clientset, o.Namespace, name)
	default:
		return "", fmt.Errorf("unsupported resource kind %q in %q, use pod or deployment", kind, o.ResourceName)
	}
}

func deploymentPod(ctx context.Context, clientset kubernetes.Interface, namespace, name string) (string, error) {
	deployment, err := clientset.AppsV1().Deployments(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to get deployment %s/%s: %w", namespace, name, err)
	}
	selector, err := metav1.LabelSelectorAsSelector(deployment.Spec.Selector)
	if err != nil {
		return "", fmt.Errorf("invalid selector on deployment %s/%s: %w", namespace, name, err)
	}
	pods, err := clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{LabelSelector: selector.String()})
	if err != nil {
		return "", fmt.Errorf("failed to list pods of deployment %s/%s: %w", namespace, name, err)
	}
	if len(pods.Items) == 0 {
		return "", fmt.Errorf("deployment %s/%s has no pods", namespace, name)
	}
	return pods.Items[0].Name, nil
}

func (o Options) podLogOptions() *corev1.PodLogOptions {
	opts := &corev1.PodLogOptions{
		Container: ContainerName,
		Follow:    o.Follow,
	}
	if o.Since > 0 {
		secs := int64(o.Since.Seconds())
		if secs < 1 {
			secs = 1
		}
		opts.SinceSeconds = &secs
	}
	if o.Tail > 0 {
		tail := o.Tail
		opts.TailLines = &tail
	}
	return opts
}

// Stream copies the runner's logs to out until the stream ends or ctx is cancelled.
func Stream(ctx context.Context, clientset kubernetes.Interface, o Options, out io.Writer) error {
	podName, err := ResolvePod(ctx, clientset, o)
	if err != nil {
		return err
	}
	logging.Debug(subsystem, "Streaming logs from %s/%s (follow=%t)", o.Namespace, podName, o.Follow)

	stream, err := clientset.CoreV1().Pods(o.Namespace).GetLogs(podName, o.podLogOptions()).Stream(ctx)
	if err != nil {
		return fmt.Errorf("failed to open log stream for %s/%s: %w", o.Namespace, podName, err)
	}
	defer stream.Close()

	if _, err := io.Copy(out, stream); err != nil && ctx.Err() == nil {
		return fmt.Errorf("failed to read log stream for %s/%s: %w", o.Namespace, podName, err)
	}
	return nil
}
