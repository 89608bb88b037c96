// Package config loads the textsum runtime configuration.
//
// Values are resolved in three layers: built-in defaults, an optional YAML file,
// and environment variables (highest precedence).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	envconfig "textsum/pkg/config"
)

// AppName is used for the XDG config directory.
const AppName = "textsum"

// Summarization providers.
const (
	ProviderHuggingFace = "huggingface"
	ProviderOpenAI      = "openai"
	ProviderClaude      = "claude"
	ProviderGemini      = "gemini"
	ProviderNoop        = "noop"
)

// Config is the complete runtime configuration.
type Config struct {
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
}

// SummarizerConfig selects and configures the summarization capability.
type SummarizerConfig struct {
	// Provider is one of huggingface, openai, claude, gemini, noop.
	Provider string `yaml:"provider"`
	// Model overrides the provider's default model.
	Model string `yaml:"model"`
	// Timeout bounds a single summarization call.
	Timeout time.Duration `yaml:"timeout"`
	// RetryAttempts is the total number of attempts per call. 1 disables retries.
	RetryAttempts int `yaml:"retry_attempts"`

	HuggingFace    HuggingFaceConfig    `yaml:"huggingface"`
	OpenAI         OpenAIConfig         `yaml:"openai"`
	Claude         ClaudeConfig         `yaml:"claude"`
	Gemini         GeminiConfig         `yaml:"gemini"`
	CircuitBreaker CircuitBreakerConfig `yaml:"circuit_breaker"`
}

// HuggingFaceConfig configures the Hugging Face Inference API client.
type HuggingFaceConfig struct {
	Endpoint string `yaml:"endpoint"`
	Token    string `yaml:"token"`
}

// OpenAIConfig configures the OpenAI client.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// ClaudeConfig configures the Anthropic client.
type ClaudeConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// GeminiConfig configures the Google Gemini client.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
}

// CircuitBreakerConfig for summarizer resilience.
type CircuitBreakerConfig struct {
	// MaxRequests in half-open state.
	MaxRequests uint32 `yaml:"max_requests"`
	// Interval for clearing failure counts.
	Interval time.Duration `yaml:"interval"`
	// Timeout before transitioning from open to half-open.
	Timeout time.Duration `yaml:"timeout"`
	// FailureThreshold ratio to trip circuit (0.0 to 1.0).
	FailureThreshold float64 `yaml:"failure_threshold"`
	// MinRequests before calculating failure ratio.
	MinRequests uint32 `yaml:"min_requests"`
}

// ServerConfig configures the HTTP form server.
type ServerConfig struct {
	Addr                string        `yaml:"addr"`
	MaxRequestBytes     int64         `yaml:"max_request_bytes"`
	SubmitRatePerSecond float64       `yaml:"submit_rate_per_second"`
	SubmitBurst         int           `yaml:"submit_burst"`
	ShutdownTimeout     time.Duration `yaml:"shutdown_timeout"`
	// TrustProxyHeaders keys the submit limiter by X-Forwarded-For.
	TrustProxyHeaders bool `yaml:"trust_proxy_headers"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Summarizer: SummarizerConfig{
			Provider:      ProviderHuggingFace,
			Timeout:       60 * time.Second,
			RetryAttempts: 1,
			HuggingFace: HuggingFaceConfig{
				Endpoint: "https://router.huggingface.co/hf-inference/models",
			},
			CircuitBreaker: CircuitBreakerConfig{
				MaxRequests:      3,
				Interval:         30 * time.Second,
				Timeout:          60 * time.Second,
				FailureThreshold: 0.6,
				MinRequests:      5,
			},
		},
		Server: ServerConfig{
			Addr:                ":8080",
			MaxRequestBytes:     1 << 20,
			SubmitRatePerSecond: 1,
			SubmitBurst:         3,
			ShutdownTimeout:     5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// DefaultModel returns the model used by a provider when none is configured.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderHuggingFace:
		return "facebook/bart-large-cnn"
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderClaude:
		return "claude-sonnet-4-5-20250929"
	case ProviderGemini:
		return "gemini-1.5-flash"
	default:
		return ""
	}
}

// ResolvePath picks the YAML file to load.
// An explicit path wins, then TEXTSUM_CONFIG, then $XDG_CONFIG_HOME/textsum/config.yaml
// when it exists. An empty result means no file.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := envconfig.GetEnvString("TEXTSUM_CONFIG", ""); p != "" {
		return p
	}
	p, err := xdg.SearchConfigFile(filepath.Join(AppName, "config.yaml"))
	if err != nil {
		return ""
	}
	return p
}

// Load builds the configuration from defaults, the YAML file at path (if non-empty)
// and the environment. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if cfg.Summarizer.Model == "" {
		cfg.Summarizer.Model = DefaultModel(cfg.Summarizer.Provider)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	// #nosec G304 -- path comes from a CLI flag, TEXTSUM_CONFIG or the XDG config dir
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	s := &c.Summarizer
	s.Provider = strings.ToLower(envconfig.GetEnvString("SUMMARIZER_PROVIDER", s.Provider))
	s.Model = envconfig.GetEnvString("SUMMARIZER_MODEL", s.Model)
	s.Timeout = envconfig.GetEnvDuration("SUMMARIZER_TIMEOUT", s.Timeout)
	s.RetryAttempts = envconfig.GetEnvInt("SUMMARIZER_RETRY_ATTEMPTS", s.RetryAttempts)

	s.HuggingFace.Endpoint = envconfig.GetEnvString("HF_ENDPOINT", s.HuggingFace.Endpoint)
	s.HuggingFace.Token = envconfig.GetEnvString("HF_API_TOKEN", s.HuggingFace.Token)
	s.OpenAI.APIKey = envconfig.GetEnvString("OPENAI_API_KEY", s.OpenAI.APIKey)
	s.OpenAI.BaseURL = envconfig.GetEnvString("OPENAI_BASE_URL", s.OpenAI.BaseURL)
	s.Claude.APIKey = envconfig.GetEnvString("ANTHROPIC_API_KEY", s.Claude.APIKey)
	s.Claude.BaseURL = envconfig.GetEnvString("ANTHROPIC_BASE_URL", s.Claude.BaseURL)
	s.Gemini.APIKey = envconfig.GetEnvString("GEMINI_API_KEY", s.Gemini.APIKey)

	cb := &s.CircuitBreaker
	cb.MaxRequests = uint32(envconfig.GetEnvInt("SUMMARIZER_CB_MAX_REQUESTS", int(cb.MaxRequests))) // #nosec G115
	cb.Interval = envconfig.GetEnvDuration("SUMMARIZER_CB_INTERVAL", cb.Interval)
	cb.Timeout = envconfig.GetEnvDuration("SUMMARIZER_CB_TIMEOUT", cb.Timeout)
	cb.FailureThreshold = envconfig.GetEnvFloat("SUMMARIZER_CB_FAILURE_THRESHOLD", cb.FailureThreshold)

	srv := &c.Server
	srv.Addr = envconfig.GetEnvString("HTTP_ADDR", srv.Addr)
	srv.MaxRequestBytes = int64(envconfig.GetEnvInt("MAX_REQUEST_BYTES", int(srv.MaxRequestBytes)))
	srv.SubmitRatePerSecond = envconfig.GetEnvFloat("SUBMIT_RATE_PER_SECOND", srv.SubmitRatePerSecond)
	srv.SubmitBurst = envconfig.GetEnvInt("SUBMIT_BURST", srv.SubmitBurst)
	srv.ShutdownTimeout = envconfig.GetEnvDuration("SHUTDOWN_TIMEOUT", srv.ShutdownTimeout)
	srv.TrustProxyHeaders = envconfig.GetEnvBool("TRUST_PROXY_HEADERS", srv.TrustProxyHeaders)

	c.Log.Level = strings.ToLower(envconfig.GetEnvString("LOG_LEVEL", c.Log.Level))
	c.Log.Format = strings.ToLower(envconfig.GetEnvString("LOG_FORMAT", c.Log.Format))
}

// Validate checks configuration correctness.
func (c *Config) Validate() error {
	s := c.Summarizer

	switch s.Provider {
	case ProviderHuggingFace:
		if s.HuggingFace.Endpoint == "" {
			return errors.New("HF_ENDPOINT cannot be empty")
		}
	case ProviderOpenAI:
		if s.OpenAI.APIKey == "" {
			return errors.New("OPENAI_API_KEY is required for the openai provider")
		}
	case ProviderClaude:
		if s.Claude.APIKey == "" {
			return errors.New("ANTHROPIC_API_KEY is required for the claude provider")
		}
	case ProviderGemini:
		if s.Gemini.APIKey == "" {
			return errors.New("GEMINI_API_KEY is required for the gemini provider")
		}
	case ProviderNoop:
	default:
		return fmt.Errorf("SUMMARIZER_PROVIDER must be one of huggingface, openai, claude, gemini, noop, got %q", s.Provider)
	}

	if err := envconfig.ValidatePositiveDuration("SUMMARIZER_TIMEOUT", s.Timeout); err != nil {
		return err
	}

	if s.RetryAttempts < 1 || s.RetryAttempts > 10 {
		return fmt.Errorf("SUMMARIZER_RETRY_ATTEMPTS must be between 1 and 10, got %d", s.RetryAttempts)
	}

	cb := s.CircuitBreaker
	if cb.MaxRequests == 0 {
		return errors.New("SUMMARIZER_CB_MAX_REQUESTS must be positive")
	}
	if err := envconfig.ValidatePositiveDuration("SUMMARIZER_CB_INTERVAL", cb.Interval); err != nil {
		return err
	}
	if err := envconfig.ValidatePositiveDuration("SUMMARIZER_CB_TIMEOUT", cb.Timeout); err != nil {
		return err
	}
	if cb.FailureThreshold <= 0 || cb.FailureThreshold > 1 {
		return fmt.Errorf("SUMMARIZER_CB_FAILURE_THRESHOLD must be in (0, 1], got %v", cb.FailureThreshold)
	}

	srv := c.Server
	if srv.Addr == "" {
		return errors.New("HTTP_ADDR cannot be empty")
	}
	if srv.MaxRequestBytes <= 0 {
		return errors.New("MAX_REQUEST_BYTES must be positive")
	}
	if srv.SubmitRatePerSecond <= 0 {
		return errors.New("SUBMIT_RATE_PER_SECOND must be positive")
	}
	if srv.SubmitBurst <= 0 {
		return errors.New("SUBMIT_BURST must be positive")
	}
	if err := envconfig.ValidateDurationRange("SHUTDOWN_TIMEOUT", srv.ShutdownTimeout, time.Second, 5*time.Minute); err != nil {
		return err
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.Log.Format)
	}

	return nil
}
