// Package kube builds Kubernetes clients for alertctl.
//
// All cluster access goes through a kubernetes.Interface built by
// NewClientset from a ClientOptions value. The options mirror kubectl's own
// selection flags:
//
//   - Kubeconfig: explicit kubeconfig file, otherwise the default loading rules
//   - Context: context override, otherwise the kubeconfig's current-context
//   - Timeout: per-request timeout handed to rest.Config
//
// Packages that talk to the cluster accept kubernetes.Interface so tests can
// use k8s.io/client-go/kubernetes/fake instead of a live API server.
//
// # Usage Example
//
//	clientset, err := kube.NewClientset(kube.ClientOptions{Context: "kind-dev"})
//	if err != nil {
//	    return err
//	}
//	ctxName, _ := kube.CurrentContext(kube.ClientOptions{})
//	small := kube.IsSmallCluster(ctxName)
package kube
