package config

import "time"

type Config interface {
	EnvConfig
	SessionConfig
	GatewayConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type SessionConfig interface {
	GetProfileSecret() string
	GetRememberMeMaxAge() time.Duration
}

type GatewayConfig interface {
	GetAPIBaseURL() string
	GetAPITimeout() time.Duration
}

type mainConfig struct {
	EnvVars
	Session
	Gateway
}

func New() Config {
	return mainConfig{}
}
