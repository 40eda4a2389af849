package domain

import (
	"fmt"
	"time"
)

// ConfigProfile names a set of text-generation credentials.
type ConfigProfile struct {
	Name     string
	Provider string
}

func (c ConfigProfile) String() string {
	return fmt.Sprintf("%s:%s", c.Provider, c.Name)
}

// LLMSettings configures the text-generation service.
type LLMSettings struct {
	Provider string        `mapstructure:"provider"`
	Model    string        `mapstructure:"model"`
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type ServerSettings struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RateLimit       float64       `mapstructure:"rate_limit"`
	RateBurst       int           `mapstructure:"rate_burst"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
}

type ReportSettings struct {
	Currency string `mapstructure:"currency"`
}

// Settings is the full application configuration.
type Settings struct {
	Server ServerSettings `mapstructure:"server"`
	LLM    LLMSettings    `mapstructure:"llm"`
	Report ReportSettings `mapstructure:"report"`
}
