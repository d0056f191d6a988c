package configuration

import (
	"strings"

	"media-catalog/domain/model"
)

// YouTubeConfig represents YouTube Data API configuration.
// It is constructed and validated once by the host application and injected
// into the platform client; a missing key surfaces as a ConfigurationError
// from the constructor rather than failing the whole process at load time.
type YouTubeConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// GetYouTubeConfig resolves the API key from JSON config with environment
// variable fallback.
func GetYouTubeConfig() *YouTubeConfig {
	return &YouTubeConfig{
		APIKey: getConfigValue(C.YouTube.APIKey, "YOUTUBE_API_KEY", ""),
	}
}

// Validate reports whether the configuration is usable.
func (c *YouTubeConfig) Validate() error {
	if c.APIKey == "" {
		return &model.ConfigurationError{Key: "youtube.apiKey", Reason: "API key is required"}
	}
	return nil
}

// getConfigValue gets value from environment first, then config, then default
func getConfigValue(configValue, envKey, defaultValue string) string {
	if v := getEnv(envKey, ""); v != "" {
		return v
	}
	if configValue != "" && !strings.HasPrefix(configValue, "YOUR_") {
		return configValue
	}
	return defaultValue
}
