// Package config loads the solrkit YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the gateway and client configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Solr      SolrConfig      `yaml:"solr"`
	Cache     CacheConfig     `yaml:"cache"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DefaultService is the service name stamped on every log entry.
const DefaultService = "solrkit"

// Log encodings.
const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Service string `yaml:"service"`
	Level   string `yaml:"level"`  // debug, info, warn, error (default: determined by env)
	Format  string `yaml:"format"` // json or console (default: json in prod, console elsewhere)
}

// AuthConfig holds gateway authentication settings. No keys disables auth.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds gateway server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// SolrConfig holds the engine connection settings.
type SolrConfig struct {
	BaseURL     string `yaml:"base_url"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	TimeoutSec  int    `yaml:"timeout_sec"`
	DefaultCore string `yaml:"default_core"`
	// Writer is the named list encoding: json (flat) or json-map.
	Writer         string `yaml:"writer"`
	MaxConcurrency int    `yaml:"max_concurrency"`
}

// Timeout returns TimeoutSec as a duration.
func (c SolrConfig) Timeout() time.Duration { return time.Duration(c.TimeoutSec) * time.Second }

// CacheConfig holds the response cache settings.
type CacheConfig struct {
	Enabled          bool     `yaml:"enabled"`
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	KeyPrefix        string   `yaml:"key_prefix"`
	TTLSec           int      `yaml:"ttl_sec"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// TTL returns TTLSec as a duration.
func (c CacheConfig) TTL() time.Duration { return time.Duration(c.TTLSec) * time.Second }

// EmbeddingConfig holds the embedding provider used for KNN text queries.
// An empty api key leaves KNN text queries unsupported.
type EmbeddingConfig struct {
	Provider         string `yaml:"provider"`
	APIKey           string `yaml:"api_key"`
	BaseURL          string `yaml:"base_url"`
	Model            string `yaml:"model"`
	Dimensions       int    `yaml:"dimensions"`
	QueryInstruction string `yaml:"query_instruction"`
}

// Enabled reports whether an embedding provider is configured.
func (c EmbeddingConfig) Enabled() bool { return c.APIKey != "" }

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse expands ${VAR} references in data, decodes it and applies defaults.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(expandEnvVars(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Solr.TimeoutSec <= 0 {
		c.Solr.TimeoutSec = 30
	}
	if c.Solr.Writer == "" {
		c.Solr.Writer = "json"
	}
	if c.Solr.MaxConcurrency <= 0 {
		c.Solr.MaxConcurrency = 4
	}
	if c.Cache.KeyPrefix == "" {
		c.Cache.KeyPrefix = "solrkit:"
	}
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 60
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "openai"
	}
	if c.Logging.Service == "" {
		c.Logging.Service = DefaultService
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Solr.BaseURL == "" {
		return fmt.Errorf("solr.base_url is required")
	}
	switch c.Solr.Writer {
	case "json", "json-map":
	default:
		return fmt.Errorf("solr.writer must be \"json\" or \"json-map\", got %q", c.Solr.Writer)
	}
	switch c.Logging.Format {
	case "", LogFormatJSON, LogFormatConsole:
	default:
		return fmt.Errorf("logging.format must be %q or %q, got %q", LogFormatJSON, LogFormatConsole, c.Logging.Format)
	}
	if c.Cache.Enabled && len(c.Cache.Addrs) == 0 {
		return fmt.Errorf("cache.addrs is required when the cache is enabled")
	}
	if c.Embedding.Enabled() && c.Embedding.Model == "" {
		return fmt.Errorf("embedding.model is required when embedding.api_key is set")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := env + ".yaml"

	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		name, def, hasDefault := strings.Cut(string(match[2:len(match)-1]), ":-")
		val := os.Getenv(name)
		if val == "" && hasDefault {
			val = def
		}
		return []byte(val)
	})
}
