package component

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// AmountInput is a single-line numeric text field. Typed runes other than
// digits and one decimal point are dropped.
type AmountInput struct {
	input textinput.Model
}

// NewAmountInput creates an unfocused amount field.
func NewAmountInput(placeholder string) *AmountInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 32
	ti.Width = 24
	ti.Prompt = ""
	return &AmountInput{input: ti}
}

// Update forwards msg to the field and reports whether the text changed.
func (a *AmountInput) Update(msg tea.Msg) (tea.Cmd, bool) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyRunes {
		runes := a.accept(k.Runes)
		if len(runes) == 0 {
			return nil, false
		}
		k.Runes = runes
		msg = k
	}

	before := a.input.Value()
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return cmd, a.input.Value() != before
}

func (a *AmountInput) accept(runes []rune) []rune {
	hasDot := strings.Contains(a.input.Value(), ".")
	out := runes[:0:0]
	for _, r := range runes {
		switch {
		case r >= '0' && r <= '9':
			out = append(out, r)
		case r == '.' && !hasDot:
			hasDot = true
			out = append(out, r)
		}
	}
	return out
}

// Value returns the current text.
func (a *AmountInput) Value() string {
	return a.input.Value()
}

// SetValue replaces the text and moves the cursor to the end.
func (a *AmountInput) SetValue(s string) {
	a.input.SetValue(s)
	a.input.CursorEnd()
}

// Focus gives the field keyboard focus.
func (a *AmountInput) Focus() tea.Cmd {
	return a.input.Focus()
}

// Blur removes keyboard focus.
func (a *AmountInput) Blur() {
	a.input.Blur()
}

// Focused reports whether the field has focus.
func (a *AmountInput) Focused() bool {
	return a.input.Focused()
}

// SetWidth sets the visible width in cells.
func (a *AmountInput) SetWidth(w int) {
	a.input.Width = w
}

// Width returns the visible width in cells.
func (a *AmountInput) Width() int {
	return a.input.Width
}

// View renders the field.
func (a *AmountInput) View() string {
	return a.input.View()
}
