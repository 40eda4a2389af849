package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/finreport/pkg/models/domain"
)

const profilesFile = `[work]
provider = openai
model    = gpt-4o
api_key  = sk-work
timeout  = 30s

[offline]
provider = static

[broken]
model = something
`

func TestRegistry_GetProfiles(t *testing.T) {
	registry, err := NewRegistry(writeFile(t, "finreportcfg", profilesFile))
	require.NoError(t, err)

	profiles, err := registry.GetProfiles(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.ConfigProfile{
		{Name: "work", Provider: "openai"},
		{Name: "offline", Provider: "static"},
		{Name: "broken", Provider: ""},
	}, profiles)
}

func TestRegistry_GetConfig(t *testing.T) {
	registry, err := NewRegistry(writeFile(t, "finreportcfg", profilesFile))
	require.NoError(t, err)
	ctx := context.Background()

	settings, err := registry.GetConfig(ctx, "work")
	require.NoError(t, err)
	assert.Equal(t, &domain.LLMSettings{
		Provider: "openai",
		Model:    "gpt-4o",
		APIKey:   "sk-work",
		Timeout:  30 * time.Second,
	}, settings)

	_, err = registry.GetConfig(ctx, "missing")
	assert.ErrorContains(t, err, "profile missing not found")

	_, err = registry.GetConfig(ctx, "broken")
	assert.ErrorContains(t, err, "has no provider")
}

func TestNewRegistry_MissingFile(t *testing.T) {
	_, err := NewRegistry("/does/not/exist")
	assert.Error(t, err)
}

func TestApplyProfile(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	base := domain.LLMSettings{Provider: "openai", Model: "gpt-4o-mini", APIKey: "sk-base", Timeout: time.Minute}

	same := ApplyProfile(base, domain.LLMSettings{Provider: "openai", Model: "gpt-4o"})
	assert.Equal(t, "gpt-4o", same.Model)
	assert.Equal(t, "sk-base", same.APIKey)
	assert.Equal(t, time.Minute, same.Timeout)

	switched := ApplyProfile(base, domain.LLMSettings{Provider: "gemini"})
	assert.Equal(t, "gemini", switched.Provider)
	assert.Empty(t, switched.Model)
	assert.Empty(t, switched.APIKey)
}
