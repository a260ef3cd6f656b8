package config

// Values is the Helm values document produced by gen-config.
type Values struct {
	ClusterName             string       `yaml:"clusterName"`
	IsSmallCluster          bool         `yaml:"isSmallCluster"`
	GlobalConfig            GlobalConfig `yaml:"globalConfig"`
	SinksConfig             []Sink       `yaml:"sinksConfig"`
	EnablePrometheusStack   bool         `yaml:"enablePrometheusStack"`
	EnablePlatformPlaybooks bool         `yaml:"enablePlatformPlaybooks"`
	DisableCloudRouting     bool         `yaml:"disableCloudRouting"`
	Runner                  RunnerConfig `yaml:"runner"`
	// KubePrometheusStack overrides the bundled Prometheus chart. Only set
	// for small clusters.
	KubePrometheusStack *KubePrometheusStack `yaml:"kube-prometheus-stack,omitempty"`
}

type KubePrometheusStack struct {
	Prometheus PrometheusValues `yaml:"prometheus"`
}

type PrometheusValues struct {
	PrometheusSpec PrometheusSpec `yaml:"prometheusSpec"`
}

type PrometheusSpec struct {
	Resources ResourceRequirements `yaml:"resources"`
}

// ResourceRequirements mirrors a container's requests and limits.
type ResourceRequirements struct {
	Requests map[string]string `yaml:"requests"`
	Limits   map[string]string `yaml:"limits"`
}

// GlobalConfig holds the per-installation identity generated once at config time.
type GlobalConfig struct {
	SigningKey string `yaml:"signing_key"`
	AccountID  string `yaml:"account_id"`
}

// RunnerConfig holds settings for the in-cluster runner.
type RunnerConfig struct {
	SendAdditionalTelemetry bool `yaml:"sendAdditionalTelemetry"`
}

// Sink is one entry of sinksConfig. Exactly one field is set; the chart
// identifies the sink type by the key it is nested under.
type Sink struct {
	Slack   *SlackSink   `yaml:"slack_sink,omitempty"`
	MSTeams *MSTeamsSink `yaml:"ms_teams_sink,omitempty"`
	UI      *UISink      `yaml:"robusta_sink,omitempty"`
}

type SlackSink struct {
	Name         string `yaml:"name"`
	SlackChannel string `yaml:"slack_channel"`
	APIKey       string `yaml:"api_key"`
}

type MSTeamsSink struct {
	Name       string `yaml:"name"`
	WebhookURL string `yaml:"webhook_url"`
}

type UISink struct {
	Name  string `yaml:"name"`
	Token string `yaml:"token"`
}

// Sink names used by the chart's default playbooks.
const (
	SlackSinkName   = "main_slack_sink"
	MSTeamsSinkName = "main_ms_teams_sink"
	UISinkName      = "robusta_ui_sink"
)

// Kind returns the sinksConfig key this sink is written under.
func (s Sink) Kind() string {
	switch {
	case s.Slack != nil:
		return "slack_sink"
	case s.MSTeams != nil:
		return "ms_teams_sink"
	case s.UI != nil:
		return "robusta_sink"
	default:
		return ""
	}
}

// Name returns the configured sink name.
func (s Sink) Name() string {
	switch {
	case s.Slack != nil:
		return s.Slack.Name
	case s.MSTeams != nil:
		return s.MSTeams.Name
	case s.UI != nil:
		return s.UI.Name
	default:
		return ""
	}
}

// Secret returns the credential stored in the sink.
func (s Sink) Secret() string {
	switch {
	case s.Slack != nil:
		return s.Slack.APIKey
	case s.MSTeams != nil:
		return s.MSTeams.WebhookURL
	case s.UI != nil:
		return s.UI.Token
	default:
		return ""
	}
}
