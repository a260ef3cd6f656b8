package config

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// newID is swapped in tests for deterministic output.
var newID = uuid.NewString

// smallClusterPrometheusMemory caps the bundled Prometheus on local clusters.
const smallClusterPrometheusMemory = "300Mi"

// SinkInputs are the operator-supplied sink credentials. Empty credentials
// mean the sink is not configured.
type SinkInputs struct {
	SlackAPIKey    string
	SlackChannel   string
	MSTeamsWebhook string
	UIToken        string
}

// Sinks returns the configured sinks in a fixed order: UI, Slack, MS Teams.
// The chart expects the UI sink first when it is present.
func (in SinkInputs) Sinks() []Sink {
	var sinks []Sink
	if in.UIToken != "" {
		sinks = append(sinks, Sink{UI: &UISink{
			Name:  UISinkName,
			Token: in.UIToken,
		}})
	}
	if in.SlackAPIKey != "" {
		sinks = append(sinks, Sink{Slack: &SlackSink{
			Name:         SlackSinkName,
			SlackChannel: in.SlackChannel,
			APIKey:       in.SlackAPIKey,
		}})
	}
	if in.MSTeamsWebhook != "" {
		sinks = append(sinks, Sink{MSTeams: &MSTeamsSink{
			Name:       MSTeamsSinkName,
			WebhookURL: in.MSTeamsWebhook,
		}})
	}
	return sinks
}

// uiToken is the decoded payload of a UI sink token.
type uiToken struct {
	AccountID string `json:"account_id"`
}

// AccountIDFromToken returns the account id carried by a base64-encoded JSON
// UI token. A token without an account id yields "".
func AccountIDFromToken(token string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("failed to decode UI token: %w", err)
	}
	var t uiToken
	if err := json.Unmarshal(raw, &t); err != nil {
		return "", fmt.Errorf("failed to parse UI token: %w", err)
	}
	return t.AccountID, nil
}

// Options are the operator's answers that shape a values document.
type Options struct {
	ClusterName           string
	Sinks                 SinkInputs
	SmallCluster          bool
	EnablePrometheusStack bool
	DisableCloudRouting   bool
	SendCrashReports      bool
}

// NewValues builds the values document for o with a fresh signing key.
//
// With a UI token the account id is taken from the token, platform playbooks
// are enabled and cloud routing stays on regardless of DisableCloudRouting.
// Without one the account id is a fresh UUID. Small clusters get a memory
// cap on the bundled Prometheus.
func NewValues(o Options) (Values, error) {
	sinks := o.Sinks.Sinks()
	if sinks == nil {
		sinks = []Sink{}
	}

	v := Values{
		ClusterName:    o.ClusterName,
		IsSmallCluster: o.SmallCluster,
		GlobalConfig: GlobalConfig{
			SigningKey: newID(),
			AccountID:  newID(),
		},
		SinksConfig:           sinks,
		EnablePrometheusStack: o.EnablePrometheusStack,
		DisableCloudRouting:   o.DisableCloudRouting,
		Runner: RunnerConfig{
			SendAdditionalTelemetry: o.SendCrashReports,
		},
	}

	if o.Sinks.UIToken != "" {
		accountID, err := AccountIDFromToken(o.Sinks.UIToken)
		if err != nil {
			return Values{}, err
		}
		if accountID != "" {
			v.GlobalConfig.AccountID = accountID
		}
		v.EnablePlatformPlaybooks = true
		v.DisableCloudRouting = false
	}

	if o.SmallCluster {
		limits := map[string]string{"memory": smallClusterPrometheusMemory}
		v.KubePrometheusStack = &KubePrometheusStack{
			Prometheus: PrometheusValues{
				PrometheusSpec: PrometheusSpec{
					Resources: ResourceRequirements{
						Requests: limits,
						Limits:   limits,
					},
				},
			},
		}
	}
	return v, nil
}
