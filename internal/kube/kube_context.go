package kube

import (
	"fmt"
	"strings"
)

// CurrentContext returns the context the client will use: the override from
// the options if set, otherwise the kubeconfig's current-context.
func CurrentContext(o ClientOptions) (string, error) {
	if o.Context != "" {
		return o.Context, nil
	}
	raw, err := o.clientConfig().RawConfig()
	if err != nil {
		return "", fmt.Errorf("failed to load kubeconfig: %w", err)
	}
	if raw.CurrentContext == "" {
		return "", fmt.Errorf("current kubeconfig context is not set")
	}
	return raw.CurrentContext, nil
}

// localClusterMarkers are substrings of context names used by local
// single-node distributions.
var localClusterMarkers = []string{"kind", "minikube", "docker-desktop", "k3d", "colima"}

// IsSmallCluster guesses from the context name whether the cluster is a local
// development cluster with limited resources.
func IsSmallCluster(contextName string) bool {
	lower := strings.ToLower(contextName)
	for _, marker := range localClusterMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
