package alerting

import (
	"strings"

	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"
)

const (
	// DefaultImage is the container image that issues the POST.
	DefaultImage = "curlimages/curl"

	alertsPath    = "/api/v1/alerts"
	containerName = "alert-curl"
	jobNamePrefix = "alert-job-"
	runAsUser     = int64(2000)
)

// AlertsEndpoint returns the alerts API URL under routingURL.
func AlertsEndpoint(routingURL string) string {
	return strings.TrimRight(routingURL, "/") + alertsPath
}

// BuildJob returns a run-once Job that POSTs body to the routing service.
// The cluster deletes it as soon as it finishes.
func BuildJob(name, namespace, image, routingURL string, body []byte) *batchv1.Job {
	command := []string{
		"curl",
		"-X", "POST",
		AlertsEndpoint(routingURL),
		"-H", "Content-Type: application/json",
		"-d", string(body),
	}

	return &batchv1.Job{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			Labels: map[string]string{
				"app.kubernetes.io/managed-by": "alertctl",
			},
		},
		Spec: batchv1.JobSpec{
			Completions:             ptr.To(int32(1)),
			BackoffLimit:            ptr.To(int32(0)),
			TTLSecondsAfterFinished: ptr.To(int32(0)),
			Template: corev1.PodTemplateSpec{
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{
						{
							Name:    containerName,
							Image:   image,
							Command: command,
						},
					},
					RestartPolicy: corev1.RestartPolicyNever,
					SecurityContext: &corev1.PodSecurityContext{
						RunAsUser: ptr.To(runAsUser),
					},
				},
			},
		},
	}
}
