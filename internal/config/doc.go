// Package config defines the documents alertctl reads and writes.
//
// Values is the Helm values file produced by gen-config. It is built once per
// invocation with NewValues, which generates a fresh signing key and takes the
// account id from the UI token when one is given, and written with WriteValues. There is no update-in-place: running
// gen-config again replaces the file.
//
//	clusterName: kind-dev
//	isSmallCluster: true
//	globalConfig:
//	  signing_key: 2f0c...
//	  account_id: 8e41...
//	sinksConfig:
//	  - slack_sink:
//	      name: main_slack_sink
//	      slack_channel: alerts
//	      api_key: xoxb-...
//	enablePrometheusStack: false
//	enablePlatformPlaybooks: false
//	disableCloudRouting: false
//	runner:
//	  sendAdditionalTelemetry: false
//	kube-prometheus-stack:
//	  prometheus:
//	    prometheusSpec:
//	      resources:
//	        requests:
//	          memory: 300Mi
//	        limits:
//	          memory: 300Mi
//
// Env holds settings that come from the process environment (CERTIFICATE,
// CLUSTER_DOMAIN, INSTALLATION_NAMESPACE) and is loaded with envconfig.
package config
