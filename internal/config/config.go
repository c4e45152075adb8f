package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Provider type constants (duplicated from the greeting package to avoid
// an import cycle).
const (
	ProviderDeepSeek = "deepseek"
	ProviderOllama   = "ollama"
)

type Config struct {
	Provider string         `koanf:"provider"`
	DeepSeek DeepSeekConfig `koanf:"deepseek"`
	Ollama   OllamaConfig   `koanf:"ollama"`
	Greeting GreetingConfig `koanf:"greeting"`
	Storage  StorageConfig  `koanf:"storage"`
	Calendar CalendarConfig `koanf:"calendar"`
	UI       UIConfig       `koanf:"ui"`
}

type DeepSeekConfig struct {
	APIKey  string `koanf:"api_key"`
	BaseURL string `koanf:"base_url"`
	Timeout int    `koanf:"timeout"`
}

type OllamaConfig struct {
	BaseURL string `koanf:"base_url"`
	Timeout int    `koanf:"timeout"`
}

// GreetingConfig holds model parameters for the generation collaborator.
type GreetingConfig struct {
	Model       string  `koanf:"model"`
	MaxTokens   int     `koanf:"max_tokens"`
	Temperature float64 `koanf:"temperature"`
	DefaultTone string  `koanf:"default_tone"`
}

type StorageConfig struct {
	DBPath   string `koanf:"db_path"`
	MediaDir string `koanf:"media_dir"`
}

// CalendarConfig tunes the occurrence projection done for calendar views.
type CalendarConfig struct {
	// MaxProjectionSteps caps cursor advances per wish per window. The
	// bound exists as a safety valve against corrupted base data; zero
	// selects the built-in default.
	MaxProjectionSteps int `koanf:"max_projection_steps"`
}

type UIConfig struct {
	ColoredOutput bool `koanf:"colored_output"`
}

// Load reads configuration in layers: built-in defaults, then the YAML
// file at configPath (if it exists), then WISHBOOK_* environment
// variables, with DEEPSEEK_API_KEY honored as a direct escape hatch.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		configPath = expandPath(configPath)

		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider("WISHBOOK_", ".", envKeyToPath), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if apiKey := os.Getenv("DEEPSEEK_API_KEY"); apiKey != "" {
		k.Set("deepseek.api_key", apiKey)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Storage.MediaDir = expandPath(cfg.Storage.MediaDir)

	return &cfg, nil
}

// envKeyToPath maps WISHBOOK_STORAGE_DB_PATH-style variables onto koanf
// paths. Only the first underscore separates the section; the rest of the
// key keeps its underscores (db_path, max_tokens, ...).
func envKeyToPath(s string) string {
	s = toLower(s[len("WISHBOOK_"):])
	for i := 0; i < len(s); i++ {
		if s[i] == '_' {
			return s[:i] + "." + s[i+1:]
		}
	}
	return s
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 32
		}
	}
	return string(b)
}

func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderDeepSeek:
		if c.DeepSeek.APIKey == "" {
			return fmt.Errorf("DeepSeek API key is required (set DEEPSEEK_API_KEY or add to config file)")
		}
	case ProviderOllama:
		if c.Ollama.BaseURL == "" {
			c.Ollama.BaseURL = "http://localhost:11434"
		}
	default:
		return fmt.Errorf("unknown provider: %s (supported: %s, %s)",
			c.Provider, ProviderDeepSeek, ProviderOllama)
	}

	if c.Greeting.Model == "" {
		return fmt.Errorf("greeting model name is required")
	}
	if c.Greeting.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive")
	}
	if c.Greeting.Temperature < 0 || c.Greeting.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	if c.Storage.DBPath == "" {
		return fmt.Errorf("storage db_path is required")
	}
	if c.Calendar.MaxProjectionSteps < 0 {
		return fmt.Errorf("max_projection_steps must not be negative")
	}

	return nil
}

// ProviderConfig contains provider-specific configuration for the
// greeting package.
type ProviderConfig struct {
	Type     string
	DeepSeek DeepSeekConfig
	Ollama   OllamaConfig
	Model    ModelSettings
}

// ModelSettings contains model parameters used by all providers.
type ModelSettings struct {
	Name        string
	MaxTokens   int
	Temperature float64
}

// GetProviderConfig returns the provider configuration for the greeting
// package.
func (c *Config) GetProviderConfig() *ProviderConfig {
	return &ProviderConfig{
		Type:     c.Provider,
		DeepSeek: c.DeepSeek,
		Ollama:   c.Ollama,
		Model: ModelSettings{
			Name:        c.Greeting.Model,
			MaxTokens:   c.Greeting.MaxTokens,
			Temperature: c.Greeting.Temperature,
		},
	}
}

func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}
