package alerting

import (
	"fmt"
	"strings"
)

// DiscoveryError means no routing URL was supplied and none could be discovered.
type DiscoveryError struct {
	Selectors []string
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("alert routing service not found (tried %d selectors)", len(e.Selectors))
}

// Hint tells the operator how to proceed.
func (e *DiscoveryError) Hint() string {
	return "Pass the routing service URL explicitly with --routing-url"
}

// RoutingURLRequiredError means direct mode was asked to post without a routing URL.
type RoutingURLRequiredError struct{}

func (e *RoutingURLRequiredError) Error() string {
	return "routing URL required in direct mode"
}

// Hint tells the operator how to proceed.
func (e *RoutingURLRequiredError) Hint() string {
	return "Pass the routing service URL with --routing-url, or omit it to port-forward to the discovered service"
}

// NoPodFoundError means none of the candidate namespaces contains a pod.
type NoPodFoundError struct {
	Namespaces []string
}

func (e *NoPodFoundError) Error() string {
	return fmt.Sprintf("no pod found in namespaces [%s]", strings.Join(e.Namespaces, ", "))
}

// Hint tells the operator how to proceed.
func (e *NoPodFoundError) Hint() string {
	return "Pass a namespace that contains pods with --namespaces"
}
