package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"

	"github.com/de-tools/finreport/pkg/models/domain"
)

const profilesFileName = ".finreportcfg"

// DefaultProfilesPath is ~/.finreportcfg.
func DefaultProfilesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return profilesFileName
	}
	return filepath.Join(home, profilesFileName)
}

// Registry exposes the LLM credential profiles of an ini file such as
//
//	[work]
//	provider = openai
//	model    = gpt-4o-mini
//	api_key  = sk-...
type Registry interface {
	GetProfiles(ctx context.Context) ([]domain.ConfigProfile, error)
	GetConfig(ctx context.Context, profile string) (*domain.LLMSettings, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]domain.ConfigProfile, error) {
	var profiles []domain.ConfigProfile
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, domain.ConfigProfile{
				Name:     section.Name(),
				Provider: section.Key("provider").String(),
			})
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetConfig(_ context.Context, profile string) (*domain.LLMSettings, error) {
	section, err := cr.cfg.GetSection(profile)
	if err != nil || len(section.Keys()) == 0 {
		return nil, fmt.Errorf("profile %s not found", profile)
	}

	settings := &domain.LLMSettings{
		Provider: section.Key("provider").String(),
		Model:    section.Key("model").String(),
		APIKey:   section.Key("api_key").String(),
		BaseURL:  section.Key("base_url").String(),
		Timeout:  section.Key("timeout").MustDuration(0),
	}
	if settings.Provider == "" {
		return nil, fmt.Errorf("profile %s has no provider", profile)
	}
	return settings, nil
}

// ApplyProfile overlays the non-empty values of a profile on base.
func ApplyProfile(base domain.LLMSettings, profile domain.LLMSettings) domain.LLMSettings {
	out := base
	if profile.Provider != "" && profile.Provider != base.Provider {
		out.Provider = profile.Provider
		// a key for another provider is useless
		out.APIKey = ""
		out.Model = ""
	}
	if profile.Model != "" {
		out.Model = profile.Model
	}
	if profile.APIKey != "" {
		out.APIKey = profile.APIKey
	}
	if profile.BaseURL != "" {
		out.BaseURL = profile.BaseURL
	}
	if profile.Timeout > 0 {
		out.Timeout = profile.Timeout
	}
	if out.APIKey == "" {
		out.APIKey = APIKeyFromEnv(out.Provider)
	}
	return out
}
