package swap

// AmountPair holds the two linked input values.
type AmountPair struct {
	From float64 `json:"from"`
	Into float64 `json:"into"`
}

// Get returns the amount on the given side.
func (a AmountPair) Get(side Side) float64 {
	if side == Into {
		return a.Into
	}
	return a.From
}

// Quote is a unit price tagged with the identifier it was fetched for.
type Quote struct {
	TokenID string
	Price   float64
	Known   bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithFraction sets the fraction-digit limit for derived amounts.
func WithFraction(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.fraction = n
		}
	}
}

// WithRateFraction sets the fraction-digit limit for the rate ratio.
func WithRateFraction(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.rateFraction = n
		}
	}
}

// Engine keeps the from/into amounts consistent with the two unit prices,
// so that from*fromPrice == into*intoPrice up to rounding.
//
// The engine is not safe for concurrent use; it lives on the UI loop.
type Engine struct {
	pair    TokenPair
	amounts [2]float64
	quotes  [2]Quote

	// anchor is the side the user edited last. Until the first edit the
	// side whose price changed acts as the anchor.
	anchor Side
	edited bool

	fraction     int
	rateFraction int
}

// NewEngine creates an engine for the pair with both amounts at zero and
// both prices unknown.
func NewEngine(pair TokenPair, opts ...Option) *Engine {
	e := &Engine{
		pair:         pair,
		fraction:     DefaultFraction,
		rateFraction: DefaultRateFraction,
	}
	e.quotes[From] = Quote{TokenID: pair.From.ID}
	e.quotes[Into] = Quote{TokenID: pair.Into.ID}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Edit applies a manual edit to one field and recomputes the other.
// Text that is not a non-negative number counts as zero.
func (e *Engine) Edit(side Side, text string) {
	v, _ := ParseAmount(text)
	e.SetAmount(side, v)
}

// SetAmount is Edit for an already numeric value.
func (e *Engine) SetAmount(side Side, v float64) {
	if !isFinite(v) || v < 0 {
		v = 0
	}
	e.amounts[side] = v
	e.anchor = side
	e.edited = true
	e.recompute(side)
}

// SetPrice records a price for one side. The price is applied only when
// tokenID matches the token currently selected on that side; otherwise it
// is a stale response and SetPrice returns false.
func (e *Engine) SetPrice(side Side, tokenID string, price float64) bool {
	if tokenID != e.pair.Get(side).ID {
		return false
	}
	if !isFinite(price) || price < 0 {
		price = 0
	}
	e.quotes[side] = Quote{TokenID: tokenID, Price: price, Known: true}

	anchor := side
	if e.edited {
		anchor = e.anchor
	}
	if e.amounts[anchor] != 0 {
		e.recompute(anchor)
	}
	return true
}

// SetPair replaces the selected tokens. Quotes for identifiers that left
// the pair are dropped; a quote is kept when its token only moved sides.
func (e *Engine) SetPair(pair TokenPair) {
	old := e.quotes
	for _, side := range []Side{From, Into} {
		id := pair.Get(side).ID
		switch {
		case old[side].TokenID == id:
			e.quotes[side] = old[side]
		case old[side.Other()].TokenID == id:
			e.quotes[side] = old[side.Other()]
		default:
			e.quotes[side] = Quote{TokenID: id}
		}
	}
	e.pair = pair

	anchor := e.anchor
	if e.amounts[anchor] != 0 && e.quotes[From].Known && e.quotes[Into].Known {
		e.recompute(anchor)
	}
}

// recompute derives the field opposite to src from src.
func (e *Engine) recompute(src Side) {
	dst := src.Other()
	v, ok := Convert(e.amounts[src], e.quotes[src].Price, e.quotes[dst].Price)
	if !ok {
		e.amounts[dst] = 0
		return
	}
	e.amounts[dst] = LimitDigits(v, e.fraction)
}

// Convert returns amount*fromPrice/intoPrice. It reports false when the
// divisor is zero or the result is not finite.
func Convert(amount, fromPrice, intoPrice float64) (float64, bool) {
	if intoPrice == 0 || !isFinite(intoPrice) {
		return 0, false
	}
	v := amount * fromPrice / intoPrice
	if !isFinite(v) {
		return 0, false
	}
	return v, true
}

// ActionDisabled reports whether the primary action must be disabled:
// true whenever either amount is zero.
func ActionDisabled(from, into float64) bool {
	return from == 0 || into == 0 || !isFinite(from) || !isFinite(into)
}

// Disabled reports whether the primary action is disabled.
func (e *Engine) Disabled() bool {
	return ActionDisabled(e.amounts[From], e.amounts[Into])
}

// Rate returns how many FROM tokens one INTO token is worth, limited to the
// rate fraction-digit limit.
func (e *Engine) Rate() (float64, bool) {
	r, ok := Convert(1, e.quotes[Into].Price, e.quotes[From].Price)
	if !ok || !e.quotes[From].Known || !e.quotes[Into].Known {
		return 0, false
	}
	return LimitDigits(r, e.rateFraction), true
}

// PriceUnavailable reports whether either side lacks a usable price.
func (e *Engine) PriceUnavailable() bool {
	for _, q := range e.quotes {
		if !q.Known || q.Price <= 0 {
			return true
		}
	}
	return false
}

// Amounts returns both amounts.
func (e *Engine) Amounts() AmountPair {
	return AmountPair{From: e.amounts[From], Into: e.amounts[Into]}
}

// Amount returns the amount on one side.
func (e *Engine) Amount(side Side) float64 {
	return e.amounts[side]
}

// Quote returns the quote on one side.
func (e *Engine) Quote(side Side) Quote {
	return e.quotes[side]
}

// Pair returns the current pair.
func (e *Engine) Pair() TokenPair {
	return e.pair
}

// Anchor returns the last edited side and whether any edit happened yet.
func (e *Engine) Anchor() (Side, bool) {
	return e.anchor, e.edited
}

// Fraction returns the fraction-digit limit for amounts.
func (e *Engine) Fraction() int {
	return e.fraction
}
