// Package crashdemo deploys a Deployment whose pod crash-loops, so operators
// can watch the alerting platform react to it.
package crashdemo

import (
	"context"
	"fmt"
	"io"
	"time"

	"alertctl/pkg/logging"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/utils/ptr"
)

const (
	// DeploymentName is the name of the crashing workload.
	DeploymentName = "crashpod"
	// DefaultNamespace is where the demo runs unless told otherwise.
	DefaultNamespace = "default"

	image     = "busybox:1.36"
	subsystem = "CrashDemo"
)

// Deployment returns the crash-looping Deployment manifest.
func Deployment(namespace string) *appsv1.Deployment {
	labels := map[string]string{"app": DeploymentName}
	return &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{
			Name:      DeploymentName,
			Namespace: namespace,
			Labels:    labels,
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: ptr.To(int32(1)),
			Selector: &metav1.LabelSelector{MatchLabels: labels},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: labels},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{
						{
							Name:    "crasher",
							Image:   image,
							Command: []string{"sh", "-c", "echo 'going to crash. This is a demo'; sleep 5; exit 1"},
						},
					},
				},
			},
		},
	}
}

// Demo manages the crashing workload in one namespace.
type Demo struct {
	clientset kubernetes.Interface
	namespace string
}

// New returns a Demo for namespace. An empty namespace means DefaultNamespace.
func New(clientset kubernetes.Interface, namespace string) *Demo {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Demo{clientset: clientset, namespace: namespace}
}

// Deploy creates the Deployment. An existing one is left as is.
func (d *Demo) Deploy(ctx context.Context) error {
	_, err := d.clientset.AppsV1().Deployments(d.namespace).Create(ctx, Deployment(d.namespace), metav1.CreateOptions{})
	if apierrors.IsAlreadyExists(err) {
		logging.Debug(subsystem, "Deployment %s/%s already exists", d.namespace, DeploymentName)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create deployment %s/%s: %w", d.namespace, DeploymentName, err)
	}
	return nil
}

// Remove deletes the Deployment. A missing one is not an error.
func (d *Demo) Remove(ctx context.Context) error {
	err := d.clientset.AppsV1().Deployments(d.namespace).Delete(ctx, DeploymentName, metav1.DeleteOptions{})
	if apierrors.IsNotFound(err) {
		logging.Debug(subsystem, "Deployment %s/%s not found", d.namespace, DeploymentName)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete deployment %s/%s: %w", d.namespace, DeploymentName, err)
	}
	return nil
}

// Run deploys the workload, waits for wait, then removes it unless keep is
// set. Progress is written to out. Cancelling ctx during the wait still
// removes the workload.
func (d *Demo) Run(ctx context.Context, wait time.Duration, keep bool, out io.Writer) error {
	fmt.Fprintf(out, "Creating a crashing pod in namespace %s...\n", d.namespace)
	if err := d.Deploy(ctx); err != nil {
		return err
	}

	if keep {
		fmt.Fprintf(out, "Leaving deployment/%s running. Remove it with 'alertctl demo remove'.\n", DeploymentName)
		return nil
	}

	if wait > 0 {
		fmt.Fprintf(out, "Waiting %s for the platform to notice...\n", wait)
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			logging.Info(subsystem, "Wait interrupted, cleaning up")
		}
	}

	fmt.Fprintf(out, "Deleting the crashing pod...\n")
	// Cleanup must not be skipped because the wait was cancelled.
	if err := d.Remove(context.WithoutCancel(ctx)); err != nil {
		return err
	}
	fmt.Fprintln(out, "Complete.")
	return nil
}
