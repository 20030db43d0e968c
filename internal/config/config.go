package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ServiceName = "Screenplay Editor API"
	Version     = "1.1.0"
)

type Config struct {
	Server ServerConfig
	LLM    LLMConfig
	TTS    TTSConfig
	Log    LogConfig
}

type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
	StaticDir      string
}

type LLMConfig struct {
	Provider         string // "anthropic" or "openai"
	Model            string
	AnthropicKey     string
	AnthropicBaseURL string
	OpenAIKey        string
	OpenAIBaseURL    string
	Timeout          time.Duration
}

type TTSConfig struct {
	NamesFile string // optional YAML name sets for the gender heuristic
}

type LogConfig struct {
	Level string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	timeoutSec, err := getEnvInt("SCENEBOARD_TIMEOUT_SECONDS", 60)
	if err != nil {
		return nil, fmt.Errorf("invalid SCENEBOARD_TIMEOUT_SECONDS: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           port,
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
			StaticDir:      getEnv("STATIC_DIR", "static"),
		},
		LLM: LLMConfig{
			Provider:         strings.ToLower(getEnv("SCENEBOARD_PROVIDER", "anthropic")),
			Model:            getEnv("SCENEBOARD_MODEL", "claude-sonnet-4-20250514"),
			AnthropicKey:     getEnv("ANTHROPIC_API_KEY", ""),
			AnthropicBaseURL: getEnv("ANTHROPIC_BASE_URL", ""),
			OpenAIKey:        getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", ""),
			Timeout:          time.Duration(timeoutSec) * time.Second,
		},
		TTS: TTSConfig{
			NamesFile: getEnv("TTS_NAMES_FILE", ""),
		},
		Log: LogConfig{
			Level: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "anthropic", "openai":
	default:
		return fmt.Errorf("unsupported SCENEBOARD_PROVIDER %q", c.LLM.Provider)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("SCENEBOARD_TIMEOUT_SECONDS must be positive")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Server.Port)
	}
	return nil
}

// APIKey returns the credential of the selected scene board provider.
func (c *Config) APIKey() string {
	if c.LLM.Provider == "openai" {
		return c.LLM.OpenAIKey
	}
	return c.LLM.AnthropicKey
}

// CORSWideOpen reports whether every origin is accepted.
func (c *Config) CORSWideOpen() bool {
	for _, o := range c.Server.AllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
