package ui

import (
	"github.com/rovshanmuradov/swap-widget/internal/swap"
)

// Tea message types for UI communication

// UnavailableText is the alert shown for features that are not implemented.
const UnavailableText = "Not available yet"

// PriceMsg carries the result of a price lookup issued for one side.
// TokenID is the identifier the request was made for, so a response that
// arrives after the side changed token can be discarded.
type PriceMsg struct {
	Side    swap.Side
	TokenID string
	Price   float64
	Err     error
}

// TokenChangedMsg is sent after the selected pair was changed.
type TokenChangedMsg struct {
	Pair swap.TokenPair
}
