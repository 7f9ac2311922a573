package swap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenPairRejectsSelfPair(t *testing.T) {
	_, err := NewTokenPair(eth, eth)
	require.ErrorIs(t, err, ErrSamePair)

	_, err = NewTokenPair(Token{}, eth)
	require.Error(t, err)
}

func TestTokenPairWith(t *testing.T) {
	pair, err := NewTokenPair(eth, usdt)
	require.NoError(t, err)

	next := pair.With(Into, btc)
	assert.Equal(t, eth, next.From)
	assert.Equal(t, btc, next.Into)

	// Picking the opposite token flips instead of creating a self-pair.
	flipped := pair.With(From, usdt)
	assert.Equal(t, usdt, flipped.From)
	assert.Equal(t, eth, flipped.Into)
	assert.Equal(t, "USDT/ETH", flipped.String())

	same := pair.With(From, eth)
	assert.Equal(t, pair, same)
}

func TestSide(t *testing.T) {
	assert.Equal(t, Into, From.Other())
	assert.Equal(t, From, Into.Other())
	assert.Equal(t, "from", From.String())
	assert.Equal(t, "into", Into.String())
}

func TestCatalog(t *testing.T) {
	c := NewCatalog(append(DefaultTokens, Token{ID: "ethereum", Symbol: "DUP"}, Token{ID: "pepe"}))
	assert.Equal(t, len(DefaultTokens)+1, c.Len())

	tok, err := c.Lookup("ethereum")
	require.NoError(t, err)
	assert.Equal(t, "ETH", tok.Symbol)

	tok, err = c.Lookup("pepe")
	require.NoError(t, err)
	assert.Equal(t, "PEPE", tok.Symbol)

	_, err = c.Lookup("nope")
	assert.ErrorIs(t, err, ErrUnknownToken)

	found := c.Filter("us")
	require.Len(t, found, 2)
	assert.Equal(t, "USDT", found[0].Symbol)
	assert.Equal(t, "USDC", found[1].Symbol)
	assert.Len(t, c.Filter(""), c.Len())

	pair, err := c.Pair("bitcoin", "tether")
	require.NoError(t, err)
	assert.Equal(t, "BTC/USDT", pair.String())

	_, err = c.Pair("bitcoin", "bitcoin")
	assert.ErrorIs(t, err, ErrSamePair)
}
