// Package discovery locates in-cluster services by label selector.
//
// A Discoverer walks an ordered list of selectors, lists services across all
// namespaces for each one, and stops at the first non-empty result. The first
// service returned by the API server wins; results are never sorted, merged or
// ranked. The winning service is turned into a cluster-internal URL of the form
//
//	http://{name}.{namespace}.svc.{cluster-domain}:{first-port}
//
// AlertManagerSelectors holds the selectors used to find the alert-routing
// service when the operator does not pass a URL.
package discovery
