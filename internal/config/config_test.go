package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/ims-console/internal/config"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "APP_NAME", "ENV", "LOG_LEVEL", "IMS_API_URL", "IMS_API_TIMEOUT", "IMS_PROFILE_SECRET", "IMS_REMEMBER_ME_DAYS"} {
		t.Setenv(k, "")
	}
	c := config.New()

	require.Equal(t, ":8080", c.GetPort())
	require.Equal(t, "Inventory MS", c.GetAppName())
	require.Equal(t, "DEV", c.GetEnv())
	require.Equal(t, "info", c.GetLogLevel())
	require.Equal(t, "http://localhost:5000/api", c.GetAPIBaseURL())
	require.Equal(t, 30*time.Second, c.GetAPITimeout())
	require.Empty(t, c.GetProfileSecret())
	require.Equal(t, 30*24*time.Hour, c.GetRememberMeMaxAge())
}

func TestConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", ":9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("IMS_API_URL", "https://api.example.com/api")
	t.Setenv("IMS_API_TIMEOUT", "5s")
	t.Setenv("IMS_REMEMBER_ME_DAYS", "7")
	c := config.New()

	require.Equal(t, ":9090", c.GetPort())
	require.Equal(t, "debug", c.GetLogLevel())
	require.Equal(t, "https://api.example.com/api", c.GetAPIBaseURL())
	require.Equal(t, 5*time.Second, c.GetAPITimeout())
	require.Equal(t, 7*24*time.Hour, c.GetRememberMeMaxAge())
}

func TestConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("IMS_API_TIMEOUT", "soon")
	t.Setenv("IMS_REMEMBER_ME_DAYS", "-3")
	c := config.New()

	require.Equal(t, 30*time.Second, c.GetAPITimeout())
	require.Equal(t, 30*24*time.Hour, c.GetRememberMeMaxAge())
}
