package router

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/swap-widget/internal/ui/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScreen struct {
	props   any
	updates int
	width   int
}

func (s *stubScreen) Init() tea.Cmd { return nil }

func (s *stubScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	s.updates++
	return s, nil
}

func (s *stubScreen) View() string { return "stub" }

func (s *stubScreen) SetSize(width, height int) { s.width = width }

func TestRouterSync(t *testing.T) {
	builds := 0
	r := New().Register(state.ViewSelectToken, func(props any) Screen {
		builds++
		return &stubScreen{props: props}
	})
	r.SetSize(100, 30)

	ui := state.NewUI()
	r.Sync(ui.Modal())
	assert.Nil(t, r.Current())
	assert.Empty(t, r.View())

	ui.OpenModal()
	ui.SetModalView(state.ViewSelectToken, "from")
	r.Sync(ui.Modal())
	require.NotNil(t, r.Current())
	stub := r.Current().(*stubScreen)
	assert.Equal(t, "from", stub.props)
	assert.Equal(t, 100, stub.width)
	assert.Equal(t, "stub", r.View())

	// Staying open keeps the same screen.
	r.Sync(ui.Modal())
	r.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, builds)
	assert.Equal(t, 1, stub.updates)

	ui.CloseModal()
	r.Sync(ui.Modal())
	assert.Nil(t, r.Current())
	assert.Nil(t, r.Update(tea.KeyMsg{Type: tea.KeyDown}))
}
