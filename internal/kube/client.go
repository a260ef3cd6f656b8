package kube

import (
	"fmt"
	"time"

	"k8s.io/client-go/kubernetes"
	_ "k8s.io/client-go/plugin/pkg/client/auth" // Important for various auth providers
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// ClientOptions selects which kubeconfig and context a clientset talks to.
type ClientOptions struct {
	// Kubeconfig is an explicit kubeconfig path. Empty means the default
	// loading rules ($KUBECONFIG, then ~/.kube/config).
	Kubeconfig string
	// Context overrides the kubeconfig's current-context when set.
	Context string
	// Timeout is passed through to rest.Config. Zero keeps client-go's default.
	Timeout time.Duration
}

func (o ClientOptions) clientConfig() clientcmd.ClientConfig {
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	if o.Kubeconfig != "" {
		loadingRules.ExplicitPath = o.Kubeconfig
	}
	configOverrides := &clientcmd.ConfigOverrides{}
	if o.Context != "" {
		configOverrides.CurrentContext = o.Context
	}
	return clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, configOverrides)
}

// RESTConfig resolves the REST config for the selected context.
func (o ClientOptions) RESTConfig() (*rest.Config, error) {
	restConfig, err := o.clientConfig().ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get REST config for context %q: %w", o.Context, err)
	}
	if o.Timeout > 0 {
		restConfig.Timeout = o.Timeout
	}
	return restConfig, nil
}

// NewClientset builds a Kubernetes clientset for the selected context.
// It is a variable so command tests can swap in a fake clientset.
var NewClientset = func(o ClientOptions) (kubernetes.Interface, error) {
	restConfig, err := o.RESTConfig()
	if err != nil {
		return nil, err
	}
	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kubernetes clientset for context %q: %w", o.Context, err)
	}
	return clientset, nil
}
