package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.0-flash"

// Gemini generates text with the Gemini API.
type Gemini struct {
	config genai.ClientConfig
	model  string
}

func NewGemini(cfg Config) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: %w", ErrMissingAPIKey)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	clientConfig := genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.timeout()},
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions.BaseURL = cfg.BaseURL
	}

	return &Gemini{config: clientConfig, model: model}, nil
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	logger := zerolog.Ctx(ctx)

	config := g.config
	client, err := genai.NewClient(ctx, &config)
	if err != nil {
		return "", fmt.Errorf("failed to create GenAI client: %w", err)
	}

	logger.Debug().Str("model", g.model).Int("prompt_bytes", len(prompt)).Msg("sending gemini request")

	result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		logger.Warn().Err(err).Msg("gemini generation failed")
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	return result.Text(), nil
}
