package component

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/swap-widget/internal/ui"
	"github.com/rovshanmuradov/swap-widget/internal/ui/style"
)

// ModalAction tells the owner what to do with a message while the modal is open.
type ModalAction int

const (
	// ModalForward passes the message to the dialog content.
	ModalForward ModalAction = iota
	// ModalClose closes the modal.
	ModalClose
	// ModalIgnore drops the message; the page behind the modal never sees it.
	ModalIgnore
)

// Rect is a cell-addressed rectangle.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Modal draws a dialog box centered on a shaded backdrop and classifies
// input against the box bounds.
type Modal struct {
	width  int
	height int
	box    Rect

	boxStyle lipgloss.Style
	backdrop lipgloss.Color
	back     key.Binding
}

// NewModal creates a modal with the dialog box style.
func NewModal() *Modal {
	styles := style.NewModalStyles(style.DefaultPalette())
	return &Modal{
		boxStyle: styles.Box,
		backdrop: styles.Backdrop,
		back:     ui.DefaultKeyMap().Back,
	}
}

// SetBackBinding replaces the binding that closes the modal.
func (m *Modal) SetBackBinding(b key.Binding) *Modal {
	m.back = b
	return m
}

// SetBoxStyle replaces the dialog box style.
func (m *Modal) SetBoxStyle(s lipgloss.Style) *Modal {
	m.boxStyle = s
	return m
}

// SetSize sets the backdrop size, normally the terminal size.
func (m *Modal) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Bounds returns where the box was drawn by the last Render.
func (m *Modal) Bounds() Rect {
	return m.box
}

// Render draws content inside the box and the box on the backdrop.
func (m *Modal) Render(content string) string {
	box := m.boxStyle.Render(content)
	w, h := lipgloss.Width(box), lipgloss.Height(box)

	if m.width <= w || m.height <= h {
		m.box = Rect{W: w, H: h}
		return box
	}

	// lipgloss centers with the smaller half of the gap on the leading side.
	m.box = Rect{X: (m.width - w) / 2, Y: (m.height - h) / 2, W: w, H: h}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceChars("░"),
		lipgloss.WithWhitespaceForeground(m.backdrop),
	)
}

// Route classifies msg. The back binding and a left click on the backdrop close the
// modal; other keys and clicks inside the box go to the content. Mouse
// wheel and motion over the backdrop are dropped.
func (m *Modal) Route(msg tea.Msg) ModalAction {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.back) {
			return ModalClose
		}
		return ModalForward

	case tea.MouseMsg:
		inside := m.box.Contains(msg.X, msg.Y)
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && !inside {
			return ModalClose
		}
		if inside {
			return ModalForward
		}
		return ModalIgnore
	}
	return ModalForward
}
