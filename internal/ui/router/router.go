package router

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/swap-widget/internal/ui/state"
)

// Screen represents a view that can be shown as a page or inside the modal
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Factory builds the screen for a modal view from its props.
type Factory func(props any) Screen

// Router resolves modal views to screens and keeps the one on display.
type Router struct {
	factories map[state.ModalView]Factory
	active    Screen
	view      state.ModalView
	width     int
	height    int
}

// New creates an empty router
func New() *Router {
	return &Router{factories: make(map[state.ModalView]Factory)}
}

// Register binds view to f.
func (r *Router) Register(view state.ModalView, f Factory) *Router {
	r.factories[view] = f
	return r
}

// Sync makes the active screen follow modal. A newly opened view is built
// and initialised; a closed modal drops the active screen.
func (r *Router) Sync(modal state.ModalState) tea.Cmd {
	if !modal.Open() {
		r.active = nil
		r.view = state.ViewNone
		return nil
	}
	if r.active != nil && r.view == modal.View {
		return nil
	}

	f, ok := r.factories[modal.View]
	if !ok {
		r.active = nil
		r.view = state.ViewNone
		return nil
	}
	r.active = f(modal.Props)
	r.view = modal.View
	r.active.SetSize(r.width, r.height)
	return r.active.Init()
}

// Update forwards msg to the active screen
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if r.active == nil {
		return nil
	}
	next, cmd := r.active.Update(msg)
	r.active = next
	return cmd
}

// View renders the active screen
func (r *Router) View() string {
	if r.active == nil {
		return ""
	}
	return r.active.View()
}

// SetSize sets the size for the router and current screen
func (r *Router) SetSize(width, height int) {
	r.width = width
	r.height = height
	if r.active != nil {
		r.active.SetSize(width, height)
	}
}

// Current returns the active screen, or nil
func (r *Router) Current() Screen {
	return r.active
}
