package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/swap-widget/internal/swap"
	"github.com/rovshanmuradov/swap-widget/internal/ui"
	"github.com/rovshanmuradov/swap-widget/internal/ui/router"
	"github.com/rovshanmuradov/swap-widget/internal/ui/state"
	"github.com/rovshanmuradov/swap-widget/internal/ui/style"
)

const maxVisibleTokens = 8

// SelectTokenScreen is the token picker shown inside the modal.
type SelectTokenScreen struct {
	width  int
	height int
	keyMap ui.KeyMap

	catalog *swap.Catalog
	ui      *state.UI
	tokens  *state.Tokens
	origin  swap.Side

	filter   textinput.Model
	matches  []swap.Token
	selected int

	styles style.ModalStyles
}

// NewSelectTokenScreen creates a picker for the props' origin side.
func NewSelectTokenScreen(catalog *swap.Catalog, uiState *state.UI, tokens *state.Tokens, props any) *SelectTokenScreen {
	origin := swap.From
	if p, ok := props.(state.SelectTokenProps); ok {
		origin = p.Origin
	}

	filter := textinput.New()
	filter.Placeholder = "Search name or paste id"
	filter.Prompt = "🔍 "
	filter.CharLimit = 64
	filter.Width = 28

	s := &SelectTokenScreen{
		keyMap:  ui.DefaultKeyMap(),
		catalog: catalog,
		ui:      uiState,
		tokens:  tokens,
		origin:  origin,
		filter:  filter,
		styles:  style.NewModalStyles(style.DefaultPalette()),
	}
	s.refilter()

	// Start on the token that is currently selected for origin.
	current := tokens.Pair().Get(origin).ID
	for i, t := range s.matches {
		if t.ID == current {
			s.selected = i
			break
		}
	}
	return s
}

// SelectTokenFactory adapts the picker to the modal router.
func SelectTokenFactory(catalog *swap.Catalog, uiState *state.UI, tokens *state.Tokens) router.Factory {
	return func(props any) router.Screen {
		return NewSelectTokenScreen(catalog, uiState, tokens, props)
	}
}

// Init focuses the filter field
func (s *SelectTokenScreen) Init() tea.Cmd {
	return s.filter.Focus()
}

// Update handles list navigation, filtering and selection
func (s *SelectTokenScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keyMap.Up):
			s.move(-1)
			return s, nil
		case key.Matches(msg, s.keyMap.Down):
			s.move(1)
			return s, nil
		case key.Matches(msg, s.keyMap.Enter):
			return s, s.choose()
		}

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			s.move(-1)
		case tea.MouseButtonWheelDown:
			s.move(1)
		}
		return s, nil
	}

	before := s.filter.Value()
	var cmd tea.Cmd
	s.filter, cmd = s.filter.Update(msg)
	if s.filter.Value() != before {
		s.refilter()
	}
	return s, cmd
}

func (s *SelectTokenScreen) move(delta int) {
	if len(s.matches) == 0 {
		return
	}
	s.selected = (s.selected + delta + len(s.matches)) % len(s.matches)
}

func (s *SelectTokenScreen) refilter() {
	s.matches = s.catalog.Filter(s.filter.Value())
	if s.selected >= len(s.matches) {
		s.selected = 0
	}
}

// choose applies the highlighted token to the origin side and closes the
// modal. The page is told about the new pair only when it changed.
func (s *SelectTokenScreen) choose() tea.Cmd {
	token, ok := s.Selected()
	if !ok {
		return nil
	}
	changed := s.tokens.Select(s.origin, token)
	s.ui.CloseModal()
	if !changed {
		return nil
	}
	pair := s.tokens.Pair()
	return func() tea.Msg {
		return ui.TokenChangedMsg{Pair: pair}
	}
}

// Selected returns the highlighted token.
func (s *SelectTokenScreen) Selected() (swap.Token, bool) {
	if len(s.matches) == 0 {
		return swap.Token{}, false
	}
	return s.matches[s.selected], true
}

// Matches returns the tokens passing the current filter.
func (s *SelectTokenScreen) Matches() []swap.Token {
	return s.matches
}

// View renders the picker
func (s *SelectTokenScreen) View() string {
	var content strings.Builder

	content.WriteString(s.styles.Title.Render(fmt.Sprintf("Select a token (%s)", s.origin)))
	content.WriteString("\n")
	content.WriteString(s.styles.Filter.Render(s.filter.View()))
	content.WriteString("\n")

	if len(s.matches) == 0 {
		content.WriteString(s.styles.Muted.Render("No tokens found"))
		return content.String()
	}

	pair := s.tokens.Pair()
	start, end := visibleRange(s.selected, len(s.matches), maxVisibleTokens)
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		t := s.matches[i]
		marker := "  "
		switch t.ID {
		case pair.Get(s.origin).ID:
			marker = "● "
		case pair.Get(s.origin.Other()).ID:
			marker = "⇄ "
		}

		label := fmt.Sprintf("%s%-6s %s", marker, t.Symbol, s.styles.Muted.Render(t.ID))
		if i == s.selected {
			label = s.styles.Selected.Render(fmt.Sprintf("%s%-6s %s", marker, t.Symbol, t.ID))
		} else {
			label = s.styles.Item.Render(label)
		}
		rows = append(rows, label)
	}
	content.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))

	if len(s.matches) > maxVisibleTokens {
		content.WriteString("\n")
		content.WriteString(s.styles.Muted.Render(fmt.Sprintf("%d/%d", s.selected+1, len(s.matches))))
	}
	return content.String()
}

// SetSize sets the screen dimensions
func (s *SelectTokenScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// visibleRange returns a window of at most size rows that contains selected.
func visibleRange(selected, total, size int) (int, int) {
	if total <= size {
		return 0, total
	}
	start := selected - size/2
	if start < 0 {
		start = 0
	}
	if start+size > total {
		start = total - size
	}
	return start, start + size
}
