package discovery

// AlertManagerSelectors lists label selectors of known Alertmanager-compatible
// routing services, highest priority first. The order is part of the
// behaviour: discovery stops at the first selector that matches.
var AlertManagerSelectors = []string{
	"app=kube-prometheus-stack-alertmanager",
	"app=prometheus,component=alertmanager",
	"app=rancher-monitoring-alertmanager",
	"app=prometheus-alertmanager",
	"operated-alertmanager=true",
	"app.kubernetes.io/name=alertmanager",
	"app.kubernetes.io/name=vmalertmanager",
	"app=alertmanager",
	"app.kubernetes.io/component=alertmanager",
}

// AlertManagerNotFoundMessage is logged when none of AlertManagerSelectors match.
const AlertManagerNotFoundMessage = "Alertmanager service could not be discovered with any known selector"
