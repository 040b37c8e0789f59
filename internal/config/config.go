// Package config resolves process configuration from command-line flags,
// environment variables, and an optional YAML file, in that precedence
// order. Missing credentials are a fatal configuration error reported
// before the server accepts any request.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"shopify-mcp/internal/errs"
)

// Environment variable names.
const (
	EnvAccessToken = "SHOPIFY_ACCESS_TOKEN"
	EnvStoreDomain = "MYSHOPIFY_DOMAIN"
	EnvPort        = "PORT"
	EnvToken       = "MCP_TOKEN"
	EnvCacheTTL    = "SHOPIFY_CACHE_TTL"
)

// DefaultPort is used when no listening port is configured.
const DefaultPort = "3000"

// Config contains the resolved server configuration.
type Config struct {
	// AccessToken is the Shopify Admin API access token. Required.
	AccessToken string `yaml:"access_token"`

	// StoreDomain is the myshopify store domain (e.g. "my-store.myshopify.com"). Required.
	StoreDomain string `yaml:"store_domain"`

	// Port is the HTTP listening port.
	Port string `yaml:"port"`

	// Token, when set, protects the HTTP /mcp endpoint with bearer auth.
	Token string `yaml:"mcp_token"`

	// CacheTTL enables response caching for read-only tools when positive.
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// Options carries values supplied on the command line. Empty fields fall
// back to environment variables, then to the config file.
type Options struct {
	AccessToken string
	StoreDomain string
	Port        string
	ConfigPath  string
}

// Load resolves configuration with flag > env > file precedence and
// validates the result.
func Load(opts Options) (*Config, error) {
	cfg := &Config{}
	if opts.ConfigPath != "" {
		loaded, err := loadFile(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	applyOverride(&cfg.AccessToken, os.Getenv(EnvAccessToken), opts.AccessToken)
	applyOverride(&cfg.StoreDomain, os.Getenv(EnvStoreDomain), opts.StoreDomain)
	applyOverride(&cfg.Port, os.Getenv(EnvPort), opts.Port)
	applyOverride(&cfg.Token, os.Getenv(EnvToken), "")
	if v := os.Getenv(EnvCacheTTL); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, errs.New("config.Load", errs.KindConfiguration, "%s: invalid duration %q", EnvCacheTTL, v)
		}
		cfg.CacheTTL = ttl
	}
	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that both required credentials are present, reporting
// every missing setting in one diagnostic.
func (c *Config) Validate() error {
	var missing []string
	if c.AccessToken == "" {
		missing = append(missing, fmt.Sprintf("--access-token or %s", EnvAccessToken))
	}
	if c.StoreDomain == "" {
		missing = append(missing, fmt.Sprintf("--store-domain or %s", EnvStoreDomain))
	}
	if len(missing) > 0 {
		return errs.New("config.Validate", errs.KindConfiguration,
			"missing required configuration: %s", strings.Join(missing, "; "))
	}
	return nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.New("config.Load", errs.KindConfiguration, "configuration file not found: %s", path)
		}
		return nil, errs.Wrap("config.Load", errs.KindConfiguration, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errs.Wrap("config.Load", errs.KindConfiguration, err)
	}
	return &cfg, nil
}

// applyOverride applies env then flag values over the file value, later
// sources winning.
func applyOverride(dst *string, envVal, flagVal string) {
	if envVal != "" {
		*dst = envVal
	}
	if flagVal != "" {
		*dst = flagVal
	}
}
