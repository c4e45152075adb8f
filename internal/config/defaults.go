package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"provider": "deepseek",
		"deepseek": map[string]interface{}{
			"api_key":  "",
			"base_url": "https://api.deepseek.com",
			"timeout":  120,
		},
		"ollama": map[string]interface{}{
			"base_url": "http://localhost:11434",
			"timeout":  120,
		},
		"greeting": map[string]interface{}{
			"model":        "deepseek-chat",
			"max_tokens":   1024,
			"temperature":  1.0,
			"default_tone": "warm",
		},
		"storage": map[string]interface{}{
			"db_path":   "~/.wishbook/wishbook.db",
			"media_dir": "~/.wishbook/media",
		},
		"calendar": map[string]interface{}{
			// 0 selects the projector's built-in ceiling.
			"max_projection_steps": 0,
		},
		"ui": map[string]interface{}{
			"colored_output": true,
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}

func GetDefaultConfigPath() string {
	return "~/.wishbook/config.yaml"
}
