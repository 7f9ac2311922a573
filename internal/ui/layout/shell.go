package layout

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/swap-widget/internal/ui"
	"github.com/rovshanmuradov/swap-widget/internal/ui/component"
	"github.com/rovshanmuradov/swap-widget/internal/ui/router"
	"github.com/rovshanmuradov/swap-widget/internal/ui/state"
	"go.uber.org/zap"
)

// Shell is the composition root of the TUI. It owns no business logic: it
// renders the page with the modal and alert overlays and routes input to
// the alert first, then the modal, then the page.
type Shell struct {
	width  int
	height int
	keyMap ui.KeyMap

	ui     *state.UI
	tokens *state.Tokens

	page   router.Screen
	modals *router.Router
	modal  *component.Modal
	alert  *component.Alert
	help   *component.HelpBar

	logger *zap.Logger
}

// NewShell wires the page and the modal views around the state handles.
func NewShell(uiState *state.UI, tokens *state.Tokens, page router.Screen, modals *router.Router, logger *zap.Logger) *Shell {
	keyMap := ui.DefaultKeyMap()
	return &Shell{
		keyMap: keyMap,
		ui:     uiState,
		tokens: tokens,
		page:   page,
		modals: modals,
		modal:  component.NewModal().SetBackBinding(keyMap.Back),
		alert:  component.NewAlert(),
		help:   component.NewHelpBar(),
		logger: logger.Named("shell"),
	}
}

// Init initializes the page
func (s *Shell) Init() tea.Cmd {
	return tea.Batch(s.page.Init(), s.modals.Sync(s.ui.Modal()))
}

// Update routes msg and keeps the modal content in step with the UI state
func (s *Shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.SetSize(msg.Width, msg.Height)
		return s, nil

	case tea.KeyMsg:
		if key.Matches(msg, s.keyMap.Quit) {
			return s, tea.Quit
		}
		cmds = append(cmds, s.routeInput(msg))

	case tea.MouseMsg:
		cmds = append(cmds, s.routeInput(msg))

	default:
		// Results of async work always reach the page and the modal.
		_, cmd := s.page.Update(msg)
		cmds = append(cmds, cmd, s.modals.Update(msg))
	}

	cmds = append(cmds, s.syncModal())
	return s, tea.Batch(cmds...)
}

// routeInput delivers keyboard and mouse input to the topmost layer.
func (s *Shell) routeInput(msg tea.Msg) tea.Cmd {
	if s.ui.AlertText() != "" {
		if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, s.keyMap.Dismiss) {
			s.ui.DismissAlert()
		}
		return nil
	}

	if s.ui.Modal().Display {
		switch s.modal.Route(msg) {
		case component.ModalClose:
			s.ui.CloseModal()
			return nil
		case component.ModalForward:
			return s.modals.Update(msg)
		default:
			return nil
		}
	}

	if s.ui.ScrollLocked() {
		return nil
	}
	_, cmd := s.page.Update(msg)
	return cmd
}

func (s *Shell) syncModal() tea.Cmd {
	before := s.modals.Current()
	cmd := s.modals.Sync(s.ui.Modal())
	if after := s.modals.Current(); after != before {
		s.logger.Debug("Modal changed",
			zap.String("view", string(s.ui.Modal().View)),
			zap.Bool("open", after != nil))
	}
	return cmd
}

// View renders the page, or the top overlay when one is showing
func (s *Shell) View() string {
	if text := s.ui.AlertText(); text != "" {
		return s.alert.Render(text)
	}
	if s.ui.Modal().Display {
		body := s.modals.View() + "\n" + s.help.
			SetKeyBindings(s.keyMap.ContextualHelp(ui.ContextSelectToken)).
			SetCompact(true).
			View()
		return s.modal.Render(body)
	}
	return s.page.View()
}

// SetSize sets the size of every layer
func (s *Shell) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.page.SetSize(width, height)
	s.modals.SetSize(width, height)
	s.modal.SetSize(width, height)
	s.alert.SetSize(width, height)
	s.help.SetWidth(40)
}

// UI returns the UI state handle.
func (s *Shell) UI() *state.UI {
	return s.ui
}

// Tokens returns the selected pair handle.
func (s *Shell) Tokens() *state.Tokens {
	return s.tokens
}
