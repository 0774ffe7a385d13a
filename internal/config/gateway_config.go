package config

import "time"

const (
	apiURLEnvVar     = "IMS_API_URL"
	apiTimeoutEnvVar = "IMS_API_TIMEOUT"
)

type Gateway struct{}

var _ GatewayConfig = Gateway{}

// GetAPIBaseURL returns the base address of the remote inventory API
func (Gateway) GetAPIBaseURL() string {
	return GetEnv(apiURLEnvVar, "http://localhost:5000/api")
}

func (Gateway) GetAPITimeout() time.Duration {
	d, err := time.ParseDuration(GetEnv(apiTimeoutEnvVar, "30s"))
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}
