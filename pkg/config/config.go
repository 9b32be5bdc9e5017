package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Provider  string          `mapstructure:"provider"` // Selected provider: github, anthropic, ollama
	Server    ServerConfig    `mapstructure:"server"`
	Backend   BackendConfig   `mapstructure:"backend"`
	Ollama    OllamaConfig    `mapstructure:"ollama"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	Tools     ToolsConfig     `mapstructure:"tools"`
	UI        UIConfig        `mapstructure:"ui"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	LogFile  string `mapstructure:"log_file"`
	Preserve bool   `mapstructure:"preserve"`
	Level    string `mapstructure:"level"`
}

// ServerConfig holds backend server configuration
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	SessionMax     int           `mapstructure:"session_max"`
	SessionTTL     time.Duration `mapstructure:"session_ttl"`
	MaxTurns       int           `mapstructure:"max_turns"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// BackendConfig tells the client where the chat backend lives
type BackendConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// OllamaConfig holds Ollama-specific configuration
type OllamaConfig struct {
	URL   string `mapstructure:"url"`
	Model string `mapstructure:"model"`
}

// OpenAIConfig holds settings for OpenAI-compatible endpoints (GitHub Models)
type OpenAIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
	Token   string `mapstructure:"token"`
}

// AnthropicConfig holds Anthropic API settings
type AnthropicConfig struct {
	Model string `mapstructure:"model"`
	Token string `mapstructure:"token"`
}

// ToolsConfig holds tool backend configuration
type ToolsConfig struct {
	ContactsFile string         `mapstructure:"contacts_file"`
	ACRCacheFile string         `mapstructure:"acr_cache_file"`
	Semantic     SemanticConfig `mapstructure:"semantic"`
}

// SemanticConfig gates the embedding-backed ACR topic search
type SemanticConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	EmbedderModel  string `mapstructure:"embedder_model"`
	EmbedderURL    string `mapstructure:"embedder_url"`
	PersistenceDir string `mapstructure:"persistence_dir"`
}

// UIConfig holds presentation settings
type UIConfig struct {
	ThinkingMinMs   int  `mapstructure:"thinking_min_ms"`
	ScrollThreshold int  `mapstructure:"scroll_threshold"`
	ShowFooter      bool `mapstructure:"show_footer"`
}

var (
	global *Config
	mu     sync.RWMutex
)

// Load unmarshals the current viper state into the global Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	mu.Lock()
	global = cfg
	mu.Unlock()
	return cfg, nil
}

// Get returns the global configuration, loading it on first use.
func Get() *Config {
	mu.RLock()
	cfg := global
	mu.RUnlock()
	if cfg != nil {
		return cfg
	}

	loaded, err := Load()
	if err != nil {
		// Viper defaults always unmarshal cleanly; an error here means a
		// malformed settings file. Fall back to an empty config.
		return &Config{}
	}
	return loaded
}

// ThinkingMinDuration returns the minimum display duration for the thinking
// indicator.
func (c *Config) ThinkingMinDuration() time.Duration {
	if c.UI.ThinkingMinMs <= 0 {
		return 800 * time.Millisecond
	}
	return time.Duration(c.UI.ThinkingMinMs) * time.Millisecond
}
