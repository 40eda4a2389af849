package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

const (
	DefaultOpenAIModel   = "gpt-4o-mini"
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
)

var ErrMissingAPIKey = errors.New("api key is not configured")

// APIError is returned when the provider answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Body)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// OpenAI calls an OpenAI compatible chat completions endpoint.
type OpenAI struct {
	client  *http.Client
	apiKey  string
	model   string
	baseURL string
}

func NewOpenAI(cfg Config) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: %w", ErrMissingAPIKey)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}

	return &OpenAI{
		client:  &http.Client{Timeout: cfg.timeout()},
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	logger := zerolog.Ctx(ctx)

	payload, err := json.Marshal(chatRequest{
		Model:    o.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	url := o.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	logger.Debug().Str("model", o.model).Int("prompt_bytes", len(prompt)).Msg("sending chat completion request")

	resp, err := o.client.Do(req)
	if err != nil {
		logger.Warn().Err(err).Msg("chat completion request failed")
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Warn().Int("status", resp.StatusCode).Msg("chat completion returned an error status")
		return "", &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("chat response contains no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
