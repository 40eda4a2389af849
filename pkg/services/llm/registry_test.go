package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	factory := func(Config) (TextGenerator, error) { return Static("ok"), nil }

	require.NoError(t, r.Register("fixture", factory))
	assert.ErrorContains(t, r.Register("fixture", factory), "already registered")
	assert.Error(t, r.Register("", factory))
	assert.Error(t, r.Register("nil", nil))
	assert.Equal(t, []string{"fixture"}, r.ListProviders())
}

func TestRegistry_Create(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("fixture", func(cfg Config) (TextGenerator, error) {
		return Static(cfg.Model), nil
	}))

	gen, err := r.Create(Config{Provider: "fixture", Model: "echo"})
	require.NoError(t, err)

	text, err := gen.Generate(context.Background(), "ignored")
	require.NoError(t, err)
	assert.Equal(t, "echo", text)

	_, err = r.Create(Config{Provider: "unknown"})
	assert.ErrorContains(t, err, `provider "unknown" is not registered`)
}

func TestDefaultRegistry(t *testing.T) {
	r := NewDefaultRegistry()

	assert.Equal(t, []string{ProviderGemini, ProviderOpenAI, ProviderStatic}, r.ListProviders())

	gen, err := r.Create(Config{Provider: ProviderStatic})
	require.NoError(t, err)
	text, err := gen.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, OfflineText, text)

	_, err = r.Create(Config{Provider: ProviderOpenAI})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestGeneratorFunc(t *testing.T) {
	boom := errors.New("boom")
	gen := GeneratorFunc(func(_ context.Context, prompt string) (string, error) {
		if prompt == "" {
			return "", boom
		}
		return "got " + prompt, nil
	})

	text, err := gen.Generate(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "got x", text)

	_, err = gen.Generate(context.Background(), "")
	assert.ErrorIs(t, err, boom)
}
