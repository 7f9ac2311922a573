package swap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	eth  = Token{ID: "ethereum", Symbol: "ETH", Decimals: 18}
	usdt = Token{ID: "tether", Symbol: "USDT", Decimals: 6}
	btc  = Token{ID: "bitcoin", Symbol: "BTC", Decimals: 8}
)

func pricedEngine(t *testing.T, fromPrice, intoPrice float64) *Engine {
	t.Helper()
	pair, err := NewTokenPair(eth, usdt)
	require.NoError(t, err)

	e := NewEngine(pair)
	require.True(t, e.SetPrice(From, eth.ID, fromPrice))
	require.True(t, e.SetPrice(Into, usdt.ID, intoPrice))
	return e
}

func TestEngineEditFrom(t *testing.T) {
	cases := []struct {
		amount, fromPrice, intoPrice float64
	}{
		{1, 2000, 1},
		{0.5, 1834.27, 0.9998},
		{3.3333, 12.5, 7},
		{1000000, 0.0001, 3},
	}

	for _, tc := range cases {
		e := pricedEngine(t, tc.fromPrice, tc.intoPrice)
		e.SetAmount(From, tc.amount)

		expected := LimitDigits(tc.amount*tc.fromPrice/tc.intoPrice, DefaultFraction)
		assert.Equal(t, expected, e.Amount(Into), "into for %+v", tc)
		assert.Equal(t, tc.amount, e.Amount(From), "from must keep the user value")
	}
}

func TestEngineRoundTrip(t *testing.T) {
	e := pricedEngine(t, 1834.27, 0.9998)
	e.Edit(From, "2.5")
	into := e.Amount(Into)

	e.SetAmount(Into, into)
	assert.InDelta(t, 2.5, e.Amount(From), 0.01)
}

func TestActionDisabled(t *testing.T) {
	cases := []struct {
		from, into float64
		disabled   bool
	}{
		{0, 5, true},
		{5, 0, true},
		{0, 0, true},
		{3, 4, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.disabled, ActionDisabled(tc.from, tc.into), "(%v, %v)", tc.from, tc.into)
	}
}

func TestEngineDisabledFollowsAmounts(t *testing.T) {
	e := pricedEngine(t, 2, 1)
	assert.True(t, e.Disabled())

	e.Edit(From, "3")
	assert.False(t, e.Disabled())
	assert.Equal(t, 6.0, e.Amount(Into))

	e.Edit(From, "")
	assert.True(t, e.Disabled())
	assert.Equal(t, 0.0, e.Amount(Into))

	e.Edit(From, "abc")
	assert.True(t, e.Disabled())
	assert.Equal(t, 0.0, e.Amount(From))
}

func TestEngineIntoPriceUpdate(t *testing.T) {
	e := pricedEngine(t, 10, 2)
	e.Edit(Into, "5")
	require.Equal(t, 1.0, e.Amount(From))

	require.True(t, e.SetPrice(Into, usdt.ID, 4))
	assert.Equal(t, 5.0, e.Amount(Into))
	assert.Equal(t, LimitDigits(5*4/10.0, DefaultFraction), e.Amount(From))
}

func TestEngineIntoPriceChangeKeepsEditedFrom(t *testing.T) {
	e := pricedEngine(t, 10, 2)
	e.Edit(From, "1")
	require.Equal(t, 5.0, e.Amount(Into))

	// The edited from field stays put; into is derived again.
	require.True(t, e.SetPrice(Into, usdt.ID, 4))
	assert.Equal(t, 1.0, e.Amount(From))
	assert.Equal(t, 2.5, e.Amount(Into))
}

func TestEnginePriceUpdateBeforeEdit(t *testing.T) {
	pair, err := NewTokenPair(eth, usdt)
	require.NoError(t, err)
	e := NewEngine(pair)

	// No price yet: divisor unknown, counterpart stays zero.
	e.Edit(From, "2")
	assert.Equal(t, 0.0, e.Amount(Into))
	assert.True(t, e.PriceUnavailable())
	assert.True(t, e.Disabled())

	require.True(t, e.SetPrice(From, eth.ID, 100))
	assert.Equal(t, 0.0, e.Amount(Into))

	require.True(t, e.SetPrice(Into, usdt.ID, 1))
	assert.Equal(t, 200.0, e.Amount(Into))
	assert.False(t, e.PriceUnavailable())
	assert.False(t, e.Disabled())
}

func TestEngineFromPriceUpdateRecomputesInto(t *testing.T) {
	e := pricedEngine(t, 10, 1)
	e.Edit(From, "1")
	require.Equal(t, 10.0, e.Amount(Into))

	require.True(t, e.SetPrice(From, eth.ID, 12))
	assert.Equal(t, 1.0, e.Amount(From))
	assert.Equal(t, 12.0, e.Amount(Into))
}

func TestEngineDiscardsStalePrice(t *testing.T) {
	e := pricedEngine(t, 10, 1)
	e.Edit(From, "1")

	pair := e.Pair().With(Into, btc)
	e.SetPair(pair)

	// A late response for the previously selected token must not apply.
	assert.False(t, e.SetPrice(Into, usdt.ID, 7))
	assert.False(t, e.Quote(Into).Known)

	assert.True(t, e.SetPrice(Into, btc.ID, 50))
	assert.Equal(t, 0.2, e.Amount(Into))
}

func TestEngineZeroDivisor(t *testing.T) {
	e := pricedEngine(t, 10, 0)
	e.Edit(From, "1")
	assert.Equal(t, 0.0, e.Amount(Into))
	assert.True(t, e.PriceUnavailable())

	_, ok := e.Rate()
	assert.True(t, ok, "rate only needs a from price")

	e = pricedEngine(t, 0, 10)
	_, ok = e.Rate()
	assert.False(t, ok)
}

func TestEngineRate(t *testing.T) {
	e := pricedEngine(t, 3, 1)
	r, ok := e.Rate()
	require.True(t, ok)
	assert.Equal(t, 0.3333333, r)
}

func TestEngineFlipKeepsQuotes(t *testing.T) {
	e := pricedEngine(t, 2000, 1)
	e.Edit(From, "1")

	e.SetPair(e.Pair().Flipped())
	assert.Equal(t, 1.0, e.Quote(From).Price)
	assert.Equal(t, 2000.0, e.Quote(Into).Price)
	assert.Equal(t, 0.0, e.Amount(Into))
}

func TestEngineCustomFraction(t *testing.T) {
	pair, err := NewTokenPair(eth, usdt)
	require.NoError(t, err)
	e := NewEngine(pair, WithFraction(4))
	e.SetPrice(From, eth.ID, 1)
	e.SetPrice(Into, usdt.ID, 3)

	e.Edit(From, "1")
	assert.Equal(t, 0.3333, e.Amount(Into))
	assert.Equal(t, 4, e.Fraction())
}

func TestEngineNegativeInputIsZero(t *testing.T) {
	e := pricedEngine(t, 1, 1)
	e.Edit(Into, "-4")
	assert.Equal(t, 0.0, e.Amount(Into))
	assert.Equal(t, 0.0, e.Amount(From))
}
