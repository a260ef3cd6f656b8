package portforwarding

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/client-go/kubernetes"
)

// ReadyPod returns a running, ready pod selected by svc.
func ReadyPod(ctx context.Context, clientset kubernetes.Interface, svc corev1.Service) (corev1.Pod, error) {
	if len(svc.Spec.Selector) == 0 {
		return corev1.Pod{}, fmt.Errorf("service %s/%s has no selector, cannot find backing pods", svc.Namespace, svc.Name)
	}

	selector := labels.SelectorFromSet(svc.Spec.Selector)
	podList, err := clientset.CoreV1().Pods(svc.Namespace).List(ctx, metav1.ListOptions{LabelSelector: selector.String()})
	if err != nil {
		return corev1.Pod{}, fmt.Errorf("failed to list pods for service %s/%s: %w", svc.Namespace, svc.Name, err)
	}
	if len(podList.Items) == 0 {
		return corev1.Pod{}, fmt.Errorf("no pods found for service %s/%s with selector %s", svc.Namespace, svc.Name, selector.String())
	}

	for _, pod := range podList.Items {
		if isReady(pod) {
			return pod, nil
		}
	}
	return corev1.Pod{}, fmt.Errorf("no ready pods found for service %s/%s (selector: %s)", svc.Namespace, svc.Name, selector.String())
}

func isReady(pod corev1.Pod) bool {
	if pod.Status.Phase != corev1.PodRunning {
		return false
	}
	for _, cond := range pod.Status.Conditions {
		if cond.Type == corev1.PodReady {
			return cond.Status == corev1.ConditionTrue
		}
	}
	return false
}

// TargetPort resolves the pod port behind the service's first port. Named
// target ports are looked up in the pod's container ports; an unset target
// port means the service port itself.
func TargetPort(svc corev1.Service, pod corev1.Pod) (int32, error) {
	if len(svc.Spec.Ports) == 0 {
		return 0, fmt.Errorf("service %s/%s declares no ports", svc.Namespace, svc.Name)
	}
	sp := svc.Spec.Ports[0]

	switch {
	case sp.TargetPort.Type == intstr.String && sp.TargetPort.StrVal != "":
		for _, c := range pod.Spec.Containers {
			for _, cp := range c.Ports {
				if cp.Name == sp.TargetPort.StrVal {
					return cp.ContainerPort, nil
				}
			}
		}
		return 0, fmt.Errorf("pod %s/%s has no container port named %q", pod.Namespace, pod.Name, sp.TargetPort.StrVal)
	case sp.TargetPort.Type == intstr.Int && sp.TargetPort.IntVal != 0:
		return sp.TargetPort.IntVal, nil
	default:
		return sp.Port, nil
	}
}
