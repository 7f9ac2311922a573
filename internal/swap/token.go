package swap

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSamePair is returned when both sides of a pair use one identifier.
	ErrSamePair = errors.New("token pair uses the same identifier on both sides")
	// ErrUnknownToken is returned when an identifier is not in the catalog.
	ErrUnknownToken = errors.New("unknown token")
)

// Token is a tradable asset. ID is the key used to query its price.
type Token struct {
	ID       string `mapstructure:"id" json:"id"`
	Symbol   string `mapstructure:"symbol" json:"symbol"`
	Decimals int    `mapstructure:"decimals" json:"decimals"`
}

// Side tags one half of a pair.
type Side int

const (
	From Side = iota
	Into
)

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == From {
		return Into
	}
	return From
}

// String returns the string representation of the side
func (s Side) String() string {
	switch s {
	case From:
		return "from"
	case Into:
		return "into"
	default:
		return "unknown"
	}
}

// TokenPair holds the two selected tokens.
type TokenPair struct {
	From Token `json:"from"`
	Into Token `json:"into"`
}

// NewTokenPair validates and builds a pair.
func NewTokenPair(from, into Token) (TokenPair, error) {
	if from.ID == "" || into.ID == "" {
		return TokenPair{}, fmt.Errorf("token pair: empty identifier")
	}
	if from.ID == into.ID {
		return TokenPair{}, fmt.Errorf("%w: %s", ErrSamePair, from.ID)
	}
	return TokenPair{From: from, Into: into}, nil
}

// Get returns the token on the given side.
func (p TokenPair) Get(side Side) Token {
	if side == Into {
		return p.Into
	}
	return p.From
}

// With replaces the token on one side. Picking the token that already sits
// on the other side flips the pair instead of producing a self-pair.
func (p TokenPair) With(side Side, t Token) TokenPair {
	other := p.Get(side.Other())
	if other.ID == t.ID {
		return p.Flipped()
	}
	if side == Into {
		p.Into = t
	} else {
		p.From = t
	}
	return p
}

// Flipped swaps the two sides.
func (p TokenPair) Flipped() TokenPair {
	return TokenPair{From: p.Into, Into: p.From}
}

// String returns "FROM/INTO".
func (p TokenPair) String() string {
	return p.From.Symbol + "/" + p.Into.Symbol
}

// DefaultTokens is the built-in catalog, keyed by CoinGecko identifiers.
var DefaultTokens = []Token{
	{ID: "ethereum", Symbol: "ETH", Decimals: 18},
	{ID: "tether", Symbol: "USDT", Decimals: 6},
	{ID: "bitcoin", Symbol: "BTC", Decimals: 8},
	{ID: "usd-coin", Symbol: "USDC", Decimals: 6},
	{ID: "solana", Symbol: "SOL", Decimals: 9},
	{ID: "binancecoin", Symbol: "BNB", Decimals: 18},
	{ID: "ripple", Symbol: "XRP", Decimals: 6},
	{ID: "dogecoin", Symbol: "DOGE", Decimals: 8},
	{ID: "cardano", Symbol: "ADA", Decimals: 6},
	{ID: "matic-network", Symbol: "MATIC", Decimals: 18},
}

// Catalog is an ordered, searchable token list.
type Catalog struct {
	tokens []Token
	byID   map[string]int
}

// NewCatalog builds a catalog. Duplicate identifiers keep the first entry.
func NewCatalog(tokens []Token) *Catalog {
	c := &Catalog{byID: make(map[string]int, len(tokens))}
	for _, t := range tokens {
		if t.ID == "" {
			continue
		}
		if _, dup := c.byID[t.ID]; dup {
			continue
		}
		if t.Symbol == "" {
			t.Symbol = strings.ToUpper(t.ID)
		}
		c.byID[t.ID] = len(c.tokens)
		c.tokens = append(c.tokens, t)
	}
	return c
}

// Lookup returns the token with the given identifier.
func (c *Catalog) Lookup(id string) (Token, error) {
	i, ok := c.byID[id]
	if !ok {
		return Token{}, fmt.Errorf("%w: %s", ErrUnknownToken, id)
	}
	return c.tokens[i], nil
}

// Tokens returns a copy of the catalog contents.
func (c *Catalog) Tokens() []Token {
	out := make([]Token, len(c.tokens))
	copy(out, c.tokens)
	return out
}

// Len returns the number of tokens.
func (c *Catalog) Len() int {
	return len(c.tokens)
}

// Filter returns tokens whose symbol or identifier contains query,
// case-insensitively. An empty query returns everything.
func (c *Catalog) Filter(query string) []Token {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.Tokens()
	}
	var out []Token
	for _, t := range c.tokens {
		if strings.Contains(strings.ToLower(t.Symbol), q) || strings.Contains(t.ID, q) {
			out = append(out, t)
		}
	}
	return out
}

// Pair resolves two identifiers into a validated pair.
func (c *Catalog) Pair(fromID, intoID string) (TokenPair, error) {
	from, err := c.Lookup(fromID)
	if err != nil {
		return TokenPair{}, err
	}
	into, err := c.Lookup(intoID)
	if err != nil {
		return TokenPair{}, err
	}
	return NewTokenPair(from, into)
}
