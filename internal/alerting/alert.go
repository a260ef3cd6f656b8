package alerting

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/prometheus/common/model"
)

const (
	demoSummary     = "This is a demo alert"
	demoDescription = "Demo alert sent by alertctl to test the alerting pipeline"
)

// DemoAlert is one element of the Alertmanager v1 alerts payload.
type DemoAlert struct {
	Status      model.AlertStatus `json:"status"`
	Labels      model.LabelSet    `json:"labels"`
	Annotations model.LabelSet    `json:"annotations"`
}

// NewDemoAlert builds a firing alert about pod. Extra labels are applied
// last, so they override the seeded alertname, severity, pod and namespace.
func NewDemoAlert(alertName, pod, namespace string, extra map[string]string) DemoAlert {
	labels := model.LabelSet{
		model.AlertNameLabel: model.LabelValue(alertName),
		"severity":           "critical",
		"pod":                model.LabelValue(pod),
		"namespace":          model.LabelValue(namespace),
	}
	for k, v := range extra {
		labels[model.LabelName(k)] = model.LabelValue(v)
	}

	return DemoAlert{
		Status: model.AlertFiring,
		Labels: labels,
		Annotations: model.LabelSet{
			"summary":     demoSummary,
			"description": demoDescription,
		},
	}
}

// EncodeAlerts renders alerts as the JSON array the routing API expects.
func EncodeAlerts(alerts ...DemoAlert) ([]byte, error) {
	if alerts == nil {
		alerts = []DemoAlert{}
	}
	data, err := json.Marshal(alerts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode alerts: %w", err)
	}
	return data, nil
}

// ParseLabels parses "k1=v1, k2 = v2" into a map. Whitespace around keys and
// values is trimmed and later pairs win. Only the first '=' splits, so values
// may contain '='. An empty string yields an empty map.
func ParseLabels(raw string) (map[string]string, error) {
	labels := map[string]string{}
	if strings.TrimSpace(raw) == "" {
		return labels, nil
	}
	for _, pair := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid label %q, expected key=value", strings.TrimSpace(pair))
		}
		labels[key] = strings.TrimSpace(value)
	}
	return labels, nil
}
