package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/de-tools/finreport/pkg/models/domain"
)

const EnvPrefix = "FINREPORT"

var providerKeyEnv = map[string]string{
	"openai": "OPENAI_API_KEY",
	"gemini": "GEMINI_API_KEY",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.rate_limit", 2.0)
	v.SetDefault("server.rate_burst", 5)
	v.SetDefault("server.max_upload_bytes", int64(5<<20))

	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.timeout", 60*time.Second)

	v.SetDefault("report.currency", "₹")
}

// LoadSettings reads the settings file at path, if any, with FINREPORT_*
// environment overrides, e.g. FINREPORT_SERVER_PORT or FINREPORT_LLM_MODEL.
// Without an explicit key the provider's usual environment variable is used.
func LoadSettings(path string) (*domain.Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var settings domain.Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	if settings.LLM.APIKey == "" {
		settings.LLM.APIKey = APIKeyFromEnv(settings.LLM.Provider)
	}

	return &settings, nil
}

// APIKeyFromEnv returns the conventional API key variable for a provider.
func APIKeyFromEnv(provider string) string {
	name, ok := providerKeyEnv[strings.ToLower(provider)]
	if !ok {
		return ""
	}
	return os.Getenv(name)
}
