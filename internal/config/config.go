// Package config loads worker settings from LEASELITE_* environment
// variables.
package config

import (
	"fmt"
	"time"

	env "github.com/caarlos0/env/v11"
)

const Prefix = "LEASELITE_"

type Config struct {
	StoreURL string    `json:"store_url" env:"STORE_URL" envDefault:"sqlite://leaselite.db"`
	Engine   Engine    `json:"engine"`
	Log      LogConfig `json:"log" envPrefix:"LOG_"`
}

type Engine struct {
	MaxFailures     int           `json:"max_failures"     env:"MAX_FAILURES"     envDefault:"3"`
	TimeoutInterval time.Duration `json:"timeout_interval" env:"TIMEOUT_INTERVAL" envDefault:"60s"`
	PollInterval    time.Duration `json:"poll_interval"    env:"POLL_INTERVAL"    envDefault:"1s"`
	RetryInterval   time.Duration `json:"retry_interval"   env:"RETRY_INTERVAL"   envDefault:"60s"`
}

type LogConfig struct {
	Level  string `json:"level"  env:"LEVEL"  envDefault:"info"`
	Format string `json:"format" env:"FORMAT" envDefault:"pretty"`
	// OTelExporter enables the OTLP/HTTP pipeline when set to "otlp".
	OTelExporter string `json:"otel_exporter" env:"OTEL_EXPORTER"`
	OTelEndpoint string `json:"otel_endpoint" env:"OTEL_ENDPOINT"`
}

// Load reads the process environment.
func Load() (*Config, error) {
	return parse(env.Options{Prefix: Prefix})
}

// LoadFrom reads environ instead of the process environment.
func LoadFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Prefix: Prefix, Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	cfg := Config{}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.StoreURL == "" {
		return fmt.Errorf("config: empty store url")
	}
	switch c.Log.Format {
	case "text", "json", "pretty":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	switch c.Log.OTelExporter {
	case "", "none", "otlp":
	default:
		return fmt.Errorf("config: unknown otel exporter %q", c.Log.OTelExporter)
	}
	return nil
}
