package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rovshanmuradov/swap-widget/internal/price"
	"github.com/rovshanmuradov/swap-widget/internal/swap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `{}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, price.DefaultBaseURL, cfg.PriceAPIURL)
	assert.Equal(t, "usd", cfg.Currency)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, time.Duration(0), cfg.CacheRetention)
	assert.Equal(t, swap.DefaultFraction, cfg.FractionDigits)
	assert.Equal(t, swap.DefaultRateFraction, cfg.RateFractionDigits)
	assert.Len(t, cfg.Tokens, len(swap.DefaultTokens))

	pair, err := cfg.DefaultPair()
	require.NoError(t, err)
	assert.Equal(t, "ETH/USDT", pair.String())
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `{
		"price_api_url": "http://localhost:9999/api/v3",
		"currency": "eur",
		"request_timeout": 2500,
		"cache_retention": 60000,
		"retries": 2,
		"tokens": [
			{"id": "bitcoin", "symbol": "BTC", "decimals": 8},
			{"id": "tether", "symbol": "USDT", "decimals": 6}
		],
		"default_from": "bitcoin",
		"default_into": "tether"
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 2500*time.Millisecond, cfg.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.CacheRetention)
	assert.Equal(t, 2, cfg.Retries)
	assert.Equal(t, 2, cfg.Catalog().Len())

	opts := cfg.PriceOptions()
	assert.Equal(t, "eur", opts.Currency)
	assert.Equal(t, time.Minute, opts.Retention)
	assert.Equal(t, "http://localhost:9999/api/v3", opts.BaseURL)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SWAP_WIDGET_RETRIES", "4")
	t.Setenv("SWAP_WIDGET_CURRENCY", "gbp")

	cfg, err := LoadConfig(writeConfig(t, `{"retries": 1}`))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Retries)
	assert.Equal(t, "gbp", cfg.Currency)
}

func TestLoadConfigValidation(t *testing.T) {
	cases := map[string]string{
		"bad url":          `{"price_api_url": "not a url"}`,
		"bad scheme":       `{"price_api_url": "ftp://example.com"}`,
		"negative retry":   `{"retries": -1}`,
		"zero timeout":     `{"request_timeout": 0}`,
		"self pair":        `{"default_from": "tether", "default_into": "tether"}`,
		"unknown token":    `{"default_from": "nope"}`,
		"huge fraction":    `{"fraction_digits": 40}`,
		"zero fraction":    `{"fraction_digits": 0}`,
		"zero rate digits": `{"rate_fraction_digits": 0}`,
		"negative retain":  `{"cache_retention": -5}`,
	}
	for name, body := range cases {
		_, err := LoadConfig(writeConfig(t, body))
		assert.Error(t, err, name)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
