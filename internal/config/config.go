package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rishabhm/dealscope/internal/common"
	"github.com/spf13/viper"
)

// WalmartConfig holds retail API credentials. The provider is optional:
// with no consumer ID configured the tier is simply skipped.
type WalmartConfig struct {
	ConsumerID     string
	PrivateKeyPath string
	KeyVersion     string
}

// Enabled reports whether the retail API tier should run.
func (c WalmartConfig) Enabled() bool {
	return c.ConsumerID != "" && c.PrivateKeyPath != ""
}

// Config is the full analyzer configuration.
type Config struct {
	Walmart            WalmartConfig
	CachePath          string // empty means in-memory only
	RateLimitInterval  time.Duration
	LookupTimeout      time.Duration
	TopN               int
	FallbackMultiplier float64
}

// Load reads configuration from Viper (config file plus DEALSCOPE_ env
// vars, bound by the CLI) and validates it.
//
// The only fatal condition is credentials that are configured but unusable:
// a consumer ID pointing at a missing or unreadable key file. Absent
// credentials merely disable the retail tier.
func Load() (*Config, error) {
	cfg := &Config{
		Walmart: WalmartConfig{
			ConsumerID:     viper.GetString("walmart.consumer_id"),
			PrivateKeyPath: ExpandPath(viper.GetString("walmart.private_key_path")),
			KeyVersion:     viper.GetString("walmart.key_version"),
		},
		CachePath:          ExpandPath(viper.GetString("cache.path")),
		RateLimitInterval:  viper.GetDuration("lookup.rate_limit_interval"),
		LookupTimeout:      viper.GetDuration("lookup.timeout"),
		TopN:               viper.GetInt("report.top_n"),
		FallbackMultiplier: viper.GetFloat64("fuzzy.fallback_multiplier"),
	}

	if cfg.RateLimitInterval <= 0 {
		cfg.RateLimitInterval = 100 * time.Millisecond
	}
	if cfg.LookupTimeout <= 0 {
		cfg.LookupTimeout = 10 * time.Second
	}
	if cfg.TopN <= 0 {
		cfg.TopN = 10
	}

	if cfg.Walmart.ConsumerID != "" {
		if cfg.Walmart.PrivateKeyPath == "" {
			return nil, fmt.Errorf("%w: walmart.private_key_path is required when walmart.consumer_id is set", common.ErrMissingConfig)
		}
		if _, err := os.Stat(cfg.Walmart.PrivateKeyPath); err != nil {
			return nil, fmt.Errorf("%w: walmart private key: %v", common.ErrInvalidConfig, err)
		}
	}

	return cfg, nil
}
