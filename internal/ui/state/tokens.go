package state

import "github.com/rovshanmuradov/swap-widget/internal/swap"

// SelectTokenProps are the props of ViewSelectToken.
type SelectTokenProps struct {
	Origin swap.Side
}

// Tokens is the session-wide selected pair handle. Like UI it belongs to
// the update loop.
type Tokens struct {
	pair swap.TokenPair
}

// NewTokens starts from pair.
func NewTokens(pair swap.TokenPair) *Tokens {
	return &Tokens{pair: pair}
}

// Pair returns the selected pair.
func (t *Tokens) Pair() swap.TokenPair {
	return t.pair
}

// Select replaces the token for side. Picking the token already on the
// opposite side flips the pair. It reports whether the pair changed.
func (t *Tokens) Select(side swap.Side, token swap.Token) bool {
	next := t.pair.With(side, token)
	if next == t.pair {
		return false
	}
	t.pair = next
	return true
}

// Flip swaps the two sides.
func (t *Tokens) Flip() {
	t.pair = t.pair.Flipped()
}
