package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Env holds settings read from the process environment.
type Env struct {
	// Certificate is an extra base64-encoded PEM certificate to trust for
	// outbound HTTPS.
	Certificate string `envconfig:"CERTIFICATE"`
	// ClusterDomain is the in-cluster DNS suffix used for discovered URLs.
	ClusterDomain string `envconfig:"CLUSTER_DOMAIN" default:"cluster.local"`
	// InstallationNamespace is where the platform's runner is installed.
	InstallationNamespace string `envconfig:"INSTALLATION_NAMESPACE" default:"robusta"`
}

// LoadEnv reads Env from the environment.
func LoadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return Env{}, fmt.Errorf("failed to process environment: %w", err)
	}
	return env, nil
}
