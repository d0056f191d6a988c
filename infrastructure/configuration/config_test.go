package configuration

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigurationDefaults(t *testing.T) {
	t.Run("app_port_default", func(t *testing.T) {
		require.NotZero(t, C.App.Port, "App.Port should have a default")
	})

	t.Run("verifier_defaults", func(t *testing.T) {
		require.Greater(t, C.Verifier.Concurrency, 0)
		require.Greater(t, C.Verifier.TimeoutSeconds, 0)
		require.Greater(t, C.Verifier.MaxRetries, 0)
	})

	t.Run("database_defaults", func(t *testing.T) {
		require.NotEmpty(t, C.Database.Psql.Host)
		require.NotEmpty(t, C.Database.Psql.Port)
	})
}

func TestGetConfigValue(t *testing.T) {
	t.Run("placeholder_is_skipped", func(t *testing.T) {
		require.Equal(t, "fallback", getConfigValue("YOUR_API_KEY", "UNSET_ENV_KEY_FOR_TEST", "fallback"))
	})

	t.Run("config_value_wins_over_default", func(t *testing.T) {
		require.Equal(t, "real-key", getConfigValue("real-key", "UNSET_ENV_KEY_FOR_TEST", "fallback"))
	})
}
