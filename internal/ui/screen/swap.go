package screen

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/swap-widget/internal/swap"
	"github.com/rovshanmuradov/swap-widget/internal/ui"
	"github.com/rovshanmuradov/swap-widget/internal/ui/component"
	"github.com/rovshanmuradov/swap-widget/internal/ui/router"
	"github.com/rovshanmuradov/swap-widget/internal/ui/state"
	"github.com/rovshanmuradov/swap-widget/internal/ui/style"
	"go.uber.org/zap"
)

const (
	defaultFetchTimeout = 10 * time.Second

	minInputWidth = 12
	maxInputWidth = 28
)

// PriceSource looks up the unit price of a token identifier.
type PriceSource interface {
	Price(ctx context.Context, id string) (float64, error)
}

// SwapOptions tunes the swap screen.
type SwapOptions struct {
	Formatter    swap.Formatter
	Timeout      time.Duration
	Fraction     int
	RateFraction int
}

// SwapScreen is the pair of linked amount inputs with token buttons,
// currency values, the rate line and the action button.
type SwapScreen struct {
	width  int
	height int
	keyMap ui.KeyMap

	helpBar *component.HelpBar
	styles  style.SwapStyles

	ui        *state.UI
	tokens    *state.Tokens
	engine    *swap.Engine
	prices    PriceSource
	formatter swap.Formatter
	timeout   time.Duration
	logger    *zap.Logger

	inputs  [2]*component.AmountInput
	focus   swap.Side
	loading [2]bool
	failed  [2]bool
}

// NewSwapScreen creates the swap screen for the pair held by tokens.
func NewSwapScreen(uiState *state.UI, tokens *state.Tokens, prices PriceSource, logger *zap.Logger, opts SwapOptions) *SwapScreen {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultFetchTimeout
	}
	if opts.Fraction <= 0 {
		opts.Fraction = swap.DefaultFraction
	}
	if opts.RateFraction <= 0 {
		opts.RateFraction = swap.DefaultRateFraction
	}
	if opts.Formatter.Fraction <= 0 {
		opts.Formatter.Fraction = opts.Fraction
	}

	keyMap := ui.DefaultKeyMap()
	s := &SwapScreen{
		keyMap:    keyMap,
		helpBar:   component.NewHelpBar().SetKeyBindings(keyMap.ContextualHelp(ui.ContextSwap)),
		styles:    style.NewSwapStyles(style.DefaultPalette()),
		ui:        uiState,
		tokens:    tokens,
		engine:    swap.NewEngine(tokens.Pair(), swap.WithFraction(opts.Fraction), swap.WithRateFraction(opts.RateFraction)),
		prices:    prices,
		formatter: opts.Formatter,
		timeout:   opts.Timeout,
		logger:    logger.Named("swap_screen"),
		inputs: [2]*component.AmountInput{
			component.NewAmountInput("0.0"),
			component.NewAmountInput("0.0"),
		},
		focus: swap.From,
	}
	s.inputs[swap.From].Focus()
	return s
}

// Init focuses the from field and requests both prices
func (s *SwapScreen) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		s.fetchPrice(swap.From),
		s.fetchPrice(swap.Into),
	)
}

// fetchPrice issues a lookup tagged with the identifier currently on side.
func (s *SwapScreen) fetchPrice(side swap.Side) tea.Cmd {
	id := s.engine.Pair().Get(side).ID
	s.loading[side] = true
	prices, timeout := s.prices, s.timeout

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		p, err := prices.Price(ctx, id)
		return ui.PriceMsg{Side: side, TokenID: id, Price: p, Err: err}
	}
}

// Update handles input, price results and pair changes
func (s *SwapScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.PriceMsg:
		s.applyPrice(msg)
		return s, nil

	case ui.TokenChangedMsg:
		return s, s.applyPair(msg.Pair)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keyMap.Tab), key.Matches(msg, s.keyMap.ShiftTab):
			return s, s.setFocus(s.focus.Other())

		case key.Matches(msg, s.keyMap.SelectToken):
			s.ui.OpenModal()
			s.ui.SetModalView(state.ViewSelectToken, state.SelectTokenProps{Origin: s.focus})
			return s, nil

		case key.Matches(msg, s.keyMap.Flip):
			s.tokens.Flip()
			return s, s.applyPair(s.tokens.Pair())

		case key.Matches(msg, s.keyMap.Swap):
			if !s.engine.Disabled() {
				s.logger.Info("Swap requested",
					zap.String("pair", s.engine.Pair().String()),
					zap.Float64("from", s.engine.Amount(swap.From)),
					zap.Float64("into", s.engine.Amount(swap.Into)))
				s.ui.Alert(ui.UnavailableText)
			}
			return s, nil

		case key.Matches(msg, s.keyMap.Settings):
			s.ui.Alert(ui.UnavailableText)
			return s, nil
		}

		cmd, changed := s.inputs[s.focus].Update(msg)
		if changed {
			s.engine.Edit(s.focus, s.inputs[s.focus].Value())
			s.syncCounterpart()
		}
		return s, cmd
	}

	cmd, _ := s.inputs[s.focus].Update(msg)
	return s, cmd
}

func (s *SwapScreen) setFocus(side swap.Side) tea.Cmd {
	s.inputs[s.focus].Blur()
	s.focus = side
	return s.inputs[side].Focus()
}

// applyPrice stores a lookup result. A result for an identifier the side
// no longer shows is dropped; a failed lookup counts as price 0.
func (s *SwapScreen) applyPrice(msg ui.PriceMsg) {
	price := msg.Price
	if msg.Err != nil {
		s.logger.Warn("Price fetch failed",
			zap.String("token", msg.TokenID),
			zap.Error(msg.Err))
		price = 0
	}

	if !s.engine.SetPrice(msg.Side, msg.TokenID, price) {
		s.logger.Debug("Discarding stale price",
			zap.String("side", msg.Side.String()),
			zap.String("token", msg.TokenID))
		return
	}
	s.loading[msg.Side] = false
	s.failed[msg.Side] = msg.Err != nil
	s.syncCounterpart()
}

// applyPair moves the engine to pair and fetches prices it does not hold.
func (s *SwapScreen) applyPair(pair swap.TokenPair) tea.Cmd {
	prev := s.engine.Pair()
	s.engine.SetPair(pair)
	if pair.From.ID == prev.Into.ID && pair.Into.ID == prev.From.ID {
		s.loading[swap.From], s.loading[swap.Into] = s.loading[swap.Into], s.loading[swap.From]
		s.failed[swap.From], s.failed[swap.Into] = s.failed[swap.Into], s.failed[swap.From]
	}

	var cmds []tea.Cmd
	for _, side := range []swap.Side{swap.From, swap.Into} {
		if !s.engine.Quote(side).Known {
			s.failed[side] = false
			cmds = append(cmds, s.fetchPrice(side))
		}
	}
	s.syncCounterpart()

	s.logger.Debug("Pair changed", zap.String("pair", pair.String()))
	return tea.Batch(cmds...)
}

// syncCounterpart rewrites the field derived from the last edited one.
// The edited field keeps the user's text as typed.
func (s *SwapScreen) syncCounterpart() {
	anchor, edited := s.engine.Anchor()
	if !edited {
		return
	}
	dst := anchor.Other()
	s.inputs[dst].SetValue(amountText(s.engine.Amount(dst)))
}

func amountText(v float64) string {
	if v == 0 {
		return ""
	}
	return swap.AmountText(v)
}

// View renders the swap card
func (s *SwapScreen) View() string {
	pair := s.engine.Pair()

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		s.styles.Header.Render("Swap"),
		"  ",
		style.MutedStyle.Render("⚙ ctrl+e"),
	)

	card := lipgloss.JoinVertical(lipgloss.Left,
		header,
		s.renderField(swap.From, pair.From),
		style.MutedStyle.Render("   ↓"),
		s.renderField(swap.Into, pair.Into),
		s.renderRate(pair),
		"",
		s.renderButton(),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.styles.Card.Render(card),
		s.helpBar.View(),
	)

	if s.width > 0 && s.height > 0 {
		return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func (s *SwapScreen) renderField(side swap.Side, token swap.Token) string {
	fieldStyle := s.styles.Field
	if side == s.focus {
		fieldStyle = s.styles.FieldFocused
	}

	input := lipgloss.JoinHorizontal(lipgloss.Center,
		s.inputs[side].View(),
		" ",
		s.styles.TokenButton.Render(token.Symbol+" ▾"),
	)

	var value string
	switch {
	case s.loading[side]:
		value = s.styles.Loading.Render("loading…")
	case s.failed[side]:
		value = s.styles.Unavailable.Render("price unavailable")
	default:
		value = s.styles.Currency.Render(s.formatter.Format(s.engine.Amount(side), s.engine.Quote(side).Price))
	}

	label := style.MutedStyle.Render(side.String())
	return fieldStyle.Render(lipgloss.JoinVertical(lipgloss.Left, label, input, value))
}

func (s *SwapScreen) renderRate(pair swap.TokenPair) string {
	if s.loading[swap.From] || s.loading[swap.Into] {
		return s.styles.Rate.Render(s.styles.Loading.Render("fetching prices…"))
	}
	rate, ok := s.engine.Rate()
	if !ok || s.engine.PriceUnavailable() {
		return s.styles.Rate.Render(s.styles.Unavailable.Render("price unavailable"))
	}
	return s.styles.Rate.Render(RateLine(pair, rate, s.engine.Quote(swap.Into).Price, s.formatter))
}

// RateLine renders "1 INTO = rate FROM (INTO unit value)".
func RateLine(pair swap.TokenPair, rate, intoPrice float64, f swap.Formatter) string {
	return fmt.Sprintf("1 %s = %s %s (%s)",
		pair.Into.Symbol,
		swap.AmountText(rate),
		pair.From.Symbol,
		f.FormatFraction(1, intoPrice, swap.DefaultRatePriceFraction))
}

func (s *SwapScreen) renderButton() string {
	if s.engine.Disabled() {
		return style.ButtonDisabledStyle.Render(ButtonLabel(true))
	}
	return style.ButtonStyle.Render(ButtonLabel(false))
}

// ButtonLabel returns the action button text.
func ButtonLabel(disabled bool) string {
	if disabled {
		return "Enter an amount"
	}
	return "Swap"
}

// SetSize sets the screen dimensions
func (s *SwapScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.helpBar.SetWidth(style.ClampWidth(style.AdaptiveWidth(width, 60), 40, 72))

	inputWidth := style.ClampWidth(width/3, minInputWidth, maxInputWidth)
	for _, in := range s.inputs {
		in.SetWidth(inputWidth)
	}
}

// Engine exposes the conversion state.
func (s *SwapScreen) Engine() *swap.Engine {
	return s.engine
}

// InputValue returns the text of one field.
func (s *SwapScreen) InputValue(side swap.Side) string {
	return s.inputs[side].Value()
}

// Focus returns the focused side.
func (s *SwapScreen) Focus() swap.Side {
	return s.focus
}

// Loading reports whether a price for side is in flight.
func (s *SwapScreen) Loading(side swap.Side) bool {
	return s.loading[side]
}
