package config

import (
	"strconv"
	"time"
)

const (
	profileSecretEnvVar  = "IMS_PROFILE_SECRET"
	rememberMeDaysEnvVar = "IMS_REMEMBER_ME_DAYS"
)

type Session struct{}

var _ SessionConfig = Session{}

// GetProfileSecret returns the HMAC secret used to sign the persisted profile.
// An empty value means the server generates a per-process secret.
func (Session) GetProfileSecret() string {
	return GetEnv(profileSecretEnvVar, "")
}

// GetRememberMeMaxAge is how long the credential cookies outlive the browser
// session when the user ticks "remember me".
func (Session) GetRememberMeMaxAge() time.Duration {
	days, err := strconv.Atoi(GetEnv(rememberMeDaysEnvVar, "30"))
	if err != nil || days <= 0 {
		days = 30
	}
	return time.Duration(days) * 24 * time.Hour
}
