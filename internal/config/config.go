// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rovshanmuradov/swap-widget/internal/price"
	"github.com/rovshanmuradov/swap-widget/internal/swap"
	"github.com/spf13/viper"
)

// DefaultPath is used when no --config flag is given. A missing file at
// this path is not an error.
const DefaultPath = "configs/config.json"

// Config holds application settings loaded from config.json.
type Config struct {
	PriceAPIURL      string        `mapstructure:"price_api_url"`
	Currency         string        `mapstructure:"currency"`
	CurrencySymbol   string        `mapstructure:"currency_symbol"`
	RequestTimeout   time.Duration `mapstructure:"-"`
	RequestTimeoutMS int           `mapstructure:"request_timeout"`
	CacheRetention   time.Duration `mapstructure:"-"`
	CacheRetentionMS int           `mapstructure:"cache_retention"`
	Retries          int           `mapstructure:"retries"`

	FractionDigits     int `mapstructure:"fraction_digits"`
	RateFractionDigits int `mapstructure:"rate_fraction_digits"`

	Tokens      []swap.Token `mapstructure:"tokens"`
	DefaultFrom string       `mapstructure:"default_from"`
	DefaultInto string       `mapstructure:"default_into"`

	DebugLogging bool   `mapstructure:"debug_logging"`
	LogFile      string `mapstructure:"log_file"`
	MetricsAddr  string `mapstructure:"metrics_addr"`
}

const (
	DefaultRequestTimeout = 10000
	DefaultRetries        = 0
	DefaultLogFile        = "logs/swap.log"
)

// LoadConfig reads configuration from path, applies defaults and
// SWAP_WIDGET_* environment overrides, and validates the result.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	defaults := map[string]interface{}{
		"price_api_url":        price.DefaultBaseURL,
		"currency":             price.DefaultCurrency,
		"currency_symbol":      "$",
		"request_timeout":      DefaultRequestTimeout,
		"cache_retention":      0,
		"retries":              DefaultRetries,
		"fraction_digits":      swap.DefaultFraction,
		"rate_fraction_digits": swap.DefaultRateFraction,
		"default_from":         "ethereum",
		"default_into":         "tether",
		"debug_logging":        false,
		"log_file":             DefaultLogFile,
		"metrics_addr":         "",
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix("SWAP_WIDGET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = DefaultPath
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if !(path == DefaultPath && isNotExist(err)) {
			return nil, fmt.Errorf("read config error: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	// Convert ms to Duration
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutMS) * time.Millisecond
	cfg.CacheRetention = time.Duration(cfg.CacheRetentionMS) * time.Millisecond

	if len(cfg.Tokens) == 0 {
		cfg.Tokens = append([]swap.Token(nil), swap.DefaultTokens...)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate checks required fields and numeric ranges.
func (c *Config) validate() error {
	parsed, err := url.Parse(c.PriceAPIURL)
	if err != nil || parsed.Host == "" {
		return errors.New("invalid price_api_url")
	}
	if !strings.HasPrefix(parsed.Scheme, "http") {
		return errors.New("price_api_url must use http or https")
	}
	if c.Currency == "" {
		return errors.New("currency is required")
	}
	if c.RequestTimeoutMS <= 0 {
		return errors.New("invalid request_timeout")
	}
	if c.CacheRetentionMS < 0 {
		return errors.New("invalid cache_retention")
	}
	if c.Retries < 0 {
		return errors.New("invalid retries count")
	}
	if c.FractionDigits < 1 || c.FractionDigits > 18 {
		return errors.New("fraction_digits must be between 1 and 18")
	}
	if c.RateFractionDigits < 1 || c.RateFractionDigits > 18 {
		return errors.New("rate_fraction_digits must be between 1 and 18")
	}

	if _, err := c.Catalog().Pair(c.DefaultFrom, c.DefaultInto); err != nil {
		return fmt.Errorf("invalid default pair: %w", err)
	}
	return nil
}

// Catalog returns the configured token catalog.
func (c *Config) Catalog() *swap.Catalog {
	return swap.NewCatalog(c.Tokens)
}

// DefaultPair resolves default_from/default_into.
func (c *Config) DefaultPair() (swap.TokenPair, error) {
	return c.Catalog().Pair(c.DefaultFrom, c.DefaultInto)
}

// PriceOptions maps the configuration onto price client options.
func (c *Config) PriceOptions() price.Options {
	return price.Options{
		BaseURL:   c.PriceAPIURL,
		Currency:  c.Currency,
		Timeout:   c.RequestTimeout,
		Retries:   c.Retries,
		Retention: c.CacheRetention,
	}
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.Is(err, os.ErrNotExist) || errors.As(err, &notFound)
}
