package state

import (
	"testing"

	"github.com/rovshanmuradov/swap-widget/internal/swap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModalLifecycle(t *testing.T) {
	ui := NewUI()
	assert.False(t, ui.Modal().Open())
	assert.False(t, ui.ScrollLocked())

	ui.OpenModal()
	ui.SetModalView(ViewSelectToken, SelectTokenProps{Origin: swap.Into})

	modal := ui.Modal()
	assert.True(t, modal.Open())
	assert.Equal(t, ViewSelectToken, modal.View)
	assert.Equal(t, SelectTokenProps{Origin: swap.Into}, modal.Props)
	assert.True(t, ui.ScrollLocked())

	ui.CloseModal()
	assert.Equal(t, ModalState{}, ui.Modal())
	assert.False(t, ui.ScrollLocked())

	// Closing twice keeps scrolling restored.
	ui.CloseModal()
	assert.False(t, ui.ScrollLocked())
}

func TestModalIgnoresUnknownView(t *testing.T) {
	ui := NewUI()
	ui.OpenModal()
	ui.SetModalView("SETTINGS_VIEW", nil)

	assert.True(t, ui.Modal().Display)
	assert.False(t, ui.Modal().Open())
}

func TestAlert(t *testing.T) {
	ui := NewUI()
	ui.Alert("Not available yet")
	assert.Equal(t, "Not available yet", ui.AlertText())
	ui.DismissAlert()
	assert.Empty(t, ui.AlertText())
}

func TestTokensSelect(t *testing.T) {
	catalog := swap.NewCatalog(swap.DefaultTokens)
	pair, err := catalog.Pair("ethereum", "tether")
	require.NoError(t, err)
	btc, err := catalog.Lookup("bitcoin")
	require.NoError(t, err)

	tokens := NewTokens(pair)

	assert.True(t, tokens.Select(swap.From, btc))
	assert.Equal(t, "BTC/USDT", tokens.Pair().String())

	// Picking the opposite token flips instead of producing a self-pair.
	assert.True(t, tokens.Select(swap.Into, btc))
	assert.Equal(t, "USDT/BTC", tokens.Pair().String())

	assert.False(t, tokens.Select(swap.Into, btc), "same token is a no-op")

	tokens.Flip()
	assert.Equal(t, "BTC/USDT", tokens.Pair().String())
}
