package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSettings_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "from-env")

	settings, err := LoadSettings("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", settings.Server.Host)
	assert.Equal(t, "8080", settings.Server.Port)
	assert.Equal(t, 10*time.Second, settings.Server.ShutdownTimeout)
	assert.Equal(t, 5, settings.Server.RateBurst)
	assert.Equal(t, int64(5<<20), settings.Server.MaxUploadBytes)
	assert.Equal(t, "openai", settings.LLM.Provider)
	assert.Equal(t, "from-env", settings.LLM.APIKey)
	assert.Equal(t, 60*time.Second, settings.LLM.Timeout)
	assert.Equal(t, "₹", settings.Report.Currency)
}

func TestLoadSettings_File(t *testing.T) {
	path := writeFile(t, "finreport.yaml", `server:
  port: "9090"
  rate_limit: 10
llm:
  provider: gemini
  model: gemini-pro
  api_key: file-key
  timeout: 5s
report:
  currency: "$"
`)

	settings, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", settings.Server.Port)
	assert.Equal(t, 10.0, settings.Server.RateLimit)
	assert.Equal(t, "gemini", settings.LLM.Provider)
	assert.Equal(t, "gemini-pro", settings.LLM.Model)
	assert.Equal(t, "file-key", settings.LLM.APIKey)
	assert.Equal(t, 5*time.Second, settings.LLM.Timeout)
	assert.Equal(t, "$", settings.Report.Currency)
}

func TestLoadSettings_EnvOverrides(t *testing.T) {
	t.Setenv("FINREPORT_SERVER_PORT", "7000")
	t.Setenv("FINREPORT_LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "gemini-env")

	settings, err := LoadSettings("")
	require.NoError(t, err)

	assert.Equal(t, "7000", settings.Server.Port)
	assert.Equal(t, "gemini", settings.LLM.Provider)
	assert.Equal(t, "gemini-env", settings.LLM.APIKey)
}

func TestLoadSettings_MissingFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestAPIKeyFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	assert.Equal(t, "sk-test", APIKeyFromEnv("OpenAI"))
	assert.Empty(t, APIKeyFromEnv("static"))
}
