package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/de-tools/finreport/pkg/adapters"
	"github.com/de-tools/finreport/pkg/models/domain"
	"github.com/de-tools/finreport/pkg/services/config"
	"github.com/de-tools/finreport/pkg/services/llm"
)

// Environment is the state shared by all commands: global flags, the provider
// registry and the logger.
type Environment struct {
	SettingsPath string
	EnvFiles     []string
	ProfilesPath string
	Profile      string
	Registry     llm.Registry
	Logger       zerolog.Logger
	Stdin        io.Reader
}

func (e *Environment) Context(ctx context.Context) context.Context {
	return e.Logger.WithContext(ctx)
}

// Settings loads env files and then the settings file.
func (e *Environment) Settings() (*domain.Settings, error) {
	if err := config.LoadEnv(e.EnvFiles...); err != nil {
		return nil, err
	}
	return config.LoadSettings(e.SettingsPath)
}

// Generator builds the text generator from settings, overlaid with the
// selected credential profile.
func (e *Environment) Generator(ctx context.Context, settings *domain.Settings) (llm.TextGenerator, error) {
	llmSettings := settings.LLM

	if e.Profile != "" {
		registry, err := config.NewRegistry(e.ProfilesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load profiles from %s: %w", e.ProfilesPath, err)
		}
		profile, err := registry.GetConfig(ctx, e.Profile)
		if err != nil {
			return nil, err
		}
		llmSettings = config.ApplyProfile(llmSettings, *profile)
	}

	zerolog.Ctx(ctx).Debug().
		Str("provider", llmSettings.Provider).
		Str("model", llmSettings.Model).
		Msg("creating text generator")

	return e.Registry.Create(adapters.MapLLMSettingsToConfig(llmSettings))
}

// Open returns the named file, or stdin for "-".
func (e *Environment) Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		stdin := e.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		return io.NopCloser(stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, nil
}
