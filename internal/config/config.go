package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	ContentRoot     string `mapstructure:"content_root" yaml:"content_root"`
	DefaultLanguage string `mapstructure:"default_language" yaml:"default_language"`
	AltLanguage     string `mapstructure:"alt_language" yaml:"alt_language"`

	// Include resolution. IncludePolicy ("warn" or "elide") governs the
	// machine-consumption export surfaces; HTML pages always warn.
	IncludePolicy   string `mapstructure:"include_policy" yaml:"include_policy"`
	IncludeMaxDepth int    `mapstructure:"include_max_depth" yaml:"include_max_depth"`

	// HTTP server
	ServerAddr string `mapstructure:"server_addr" yaml:"server_addr"`

	// Search index
	IndexPath      string  `mapstructure:"index_path" yaml:"index_path"`
	SearchTopK     int     `mapstructure:"search_top_k" yaml:"search_top_k"`
	SearchMinScore float64 `mapstructure:"search_min_score" yaml:"search_min_score"`
	ChunkMaxTokens int     `mapstructure:"chunk_max_tokens" yaml:"chunk_max_tokens"`
	ChunkOverlap   int     `mapstructure:"chunk_overlap" yaml:"chunk_overlap"`

	// Upstream GitHub star counts
	StarsRepo   string `mapstructure:"stars_repo" yaml:"stars_repo"`
	StarsTTLSec int    `mapstructure:"stars_ttl_sec" yaml:"stars_ttl_sec"`

	// HTTP/Retry configuration for upstream calls
	HTTPTimeoutSec   int `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
	RetryMaxAttempts int `mapstructure:"retry_max_attempts" yaml:"retry_max_attempts"`
	RetryBaseDelayMs int `mapstructure:"retry_base_delay_ms" yaml:"retry_base_delay_ms"`
	RetryMaxDelayMs  int `mapstructure:"retry_max_delay_ms" yaml:"retry_max_delay_ms"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.moosedocs/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".moosedocs")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("MOOSEDOCS")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("content_root", "content")
	v.SetDefault("default_language", "typescript")
	v.SetDefault("alt_language", "python")
	v.SetDefault("include_policy", "elide")
	v.SetDefault("include_max_depth", 3)
	v.SetDefault("server_addr", ":8484")
	v.SetDefault("index_path", "")
	v.SetDefault("search_top_k", 10)
	v.SetDefault("search_min_score", 0.0)
	v.SetDefault("chunk_max_tokens", 400)
	v.SetDefault("chunk_overlap", 0)
	v.SetDefault("stars_repo", "514-labs/moose")
	v.SetDefault("stars_ttl_sec", 3600)
	// HTTP/retry defaults
	v.SetDefault("http_timeout_sec", 10)
	v.SetDefault("retry_max_attempts", 3)
	v.SetDefault("retry_base_delay_ms", 500)
	v.SetDefault("retry_max_delay_ms", 4000)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".moosedocs")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// IndexPathOrDefault returns the configured index path, or a default
// location next to the content root when unset.
func (c *Global) IndexPathOrDefault() string {
	if c.IndexPath != "" {
		return c.IndexPath
	}
	return filepath.Join(c.ContentRoot, ".moosedocs-index.json")
}
