package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		Solr: SolrConfig{BaseURL: "http://localhost:8983/solr", Writer: "json"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mod     func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"port", func(c *Config) { c.HTTP.Port = 70000 }, "http.port"},
		{"base url", func(c *Config) { c.Solr.BaseURL = "" }, "solr.base_url"},
		{"writer", func(c *Config) { c.Solr.Writer = "xml" }, `solr.writer must be "json" or "json-map", got "xml"`},
		{"cache addrs", func(c *Config) { c.Cache.Enabled = true }, "cache.addrs"},
		{"cache disabled", func(c *Config) { c.Cache.Addrs = nil }, ""},
		{"embedding model", func(c *Config) { c.Embedding.APIKey = "k" }, "embedding.model"},
		{"log format", func(c *Config) { c.Logging.Format = "logfmt" }, `logging.format must be "json" or "console", got "logfmt"`},
		{"log format console", func(c *Config) { c.Logging.Format = LogFormatConsole }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mod(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.HTTP.Port)
	}
	if cfg.HTTP.WriteTimeoutSec != 30 {
		t.Errorf("WriteTimeoutSec = %d, want 30", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Solr.Timeout() != 30*time.Second {
		t.Errorf("Solr.Timeout = %v, want 30s", cfg.Solr.Timeout())
	}
	if cfg.Solr.Writer != "json" {
		t.Errorf("Writer = %q, want json", cfg.Solr.Writer)
	}
	if cfg.Solr.MaxConcurrency != 4 {
		t.Errorf("MaxConcurrency = %d, want 4", cfg.Solr.MaxConcurrency)
	}
	if cfg.Cache.KeyPrefix != "solrkit:" {
		t.Errorf("KeyPrefix = %q, want solrkit:", cfg.Cache.KeyPrefix)
	}
	if cfg.Cache.TTL() != time.Minute {
		t.Errorf("Cache.TTL = %v, want 1m", cfg.Cache.TTL())
	}
	if cfg.Logging.Service != DefaultService {
		t.Errorf("Logging.Service = %q, want %q", cfg.Logging.Service, DefaultService)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:  HTTPConfig{Port: 9000, ReadTimeoutSec: 30},
		Solr:  SolrConfig{Writer: "json-map", MaxConcurrency: 16},
		Cache: CacheConfig{KeyPrefix: "custom:", TTLSec: 5},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 9000 || cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("HTTP = %+v", cfg.HTTP)
	}
	if cfg.Solr.Writer != "json-map" || cfg.Solr.MaxConcurrency != 16 {
		t.Errorf("Solr = %+v", cfg.Solr)
	}
	if cfg.Cache.KeyPrefix != "custom:" || cfg.Cache.TTLSec != 5 {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("SOLRKIT_TEST_URL", "http://solr:8983/solr")

	cfg, err := Parse([]byte(`
solr:
  base_url: ${SOLRKIT_TEST_URL}
  default_core: ${SOLRKIT_TEST_CORE:-books}
cache:
  enabled: false
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Solr.BaseURL != "http://solr:8983/solr" {
		t.Errorf("BaseURL = %q", cfg.Solr.BaseURL)
	}
	if cfg.Solr.DefaultCore != "books" {
		t.Errorf("DefaultCore = %q, want default books", cfg.Solr.DefaultCore)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("solr: [")); err == nil {
		t.Error("expected yaml error")
	}
	if _, err := Parse([]byte("http:\n  port: 80\n")); err == nil {
		t.Error("expected validation error for missing base_url")
	}
}
