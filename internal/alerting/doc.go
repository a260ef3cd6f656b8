// Package alerting sends a demo alert through the cluster's alert-routing service.
//
// Submitter.Submit resolves the routing URL (explicit, or discovered with
// discovery.AlertManagerSelectors), picks the first pod of the first candidate
// namespace that has any, builds a firing DemoAlert about that pod and creates
// a run-once Job whose container POSTs the alert with curl. The Job is removed
// by the cluster when it finishes; Submit does not wait for it.
//
// SubmitDirect sends the same payload from the local machine with a Poster,
// for routing services that are port-forwarded or otherwise reachable.
//
// DiscoveryError and NoPodFoundError carry a Hint naming the flag that fixes
// the problem.
package alerting
