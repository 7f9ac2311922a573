package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

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

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestTokensCommandJSON(t *testing.T) {
	path := writeConfig(t, `{}`)

	out, err := execute(t, "tokens", "--config", path, "--json", "--symbol", "")
	require.NoError(t, err)

	var tokens []swap.Token
	require.NoError(t, json.Unmarshal([]byte(out), &tokens))
	assert.Len(t, tokens, len(swap.DefaultTokens))
}

func TestTokensCommandTable(t *testing.T) {
	path := writeConfig(t, `{}`)

	out, err := execute(t, "tokens", "--config", path, "--json=false", "--symbol", "us")
	require.NoError(t, err)
	assert.Contains(t, out, "USDT")
	assert.Contains(t, out, "(into)")
	assert.NotContains(t, out, "BTC")
}

func TestPriceCommandJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("ids")
		if id == "ethereum" {
			fmt.Fprint(w, `{"ethereum":{"usd":1834.27}}`)
			return
		}
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	path := writeConfig(t, fmt.Sprintf(`{"price_api_url": %q}`, srv.URL))

	out, err := execute(t, "price", "ethereum", "missing", "--config", path, "--json")
	require.NoError(t, err)

	var prices map[string]float64
	require.NoError(t, json.Unmarshal([]byte(out), &prices))
	assert.Equal(t, map[string]float64{"ethereum": 1834.27}, prices)

	_, err = execute(t, "price", "missing", "--config", path, "--json")
	assert.Error(t, err, "no price at all is an error")
}

func TestPriceCommandRequiresID(t *testing.T) {
	_, err := execute(t, "price", "--config", writeConfig(t, `{}`))
	assert.Error(t, err)
}

func TestBadConfigFails(t *testing.T) {
	_, err := execute(t, "tokens", "--config", writeConfig(t, `{"retries": -1}`))
	assert.Error(t, err)
}
