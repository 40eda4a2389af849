package llm

import (
	"context"
	"time"
)

// TextGenerator turns a prompt into generated text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a plain function to TextGenerator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Static always answers with the same text.
type Static string

func (s Static) Generate(_ context.Context, _ string) (string, error) {
	return string(s), nil
}

// Config selects and configures a provider.
type Config struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
}

const DefaultTimeout = 60 * time.Second

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}
