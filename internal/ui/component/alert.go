package component

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/swap-widget/internal/ui"
	"github.com/rovshanmuradov/swap-widget/internal/ui/style"
)

const alertHelpWidth = 32

// Alert is a blocking message box drawn over everything else.
type Alert struct {
	modal  *Modal
	help   *HelpBar
	styles style.AlertStyles
}

// NewAlert creates an alert box.
func NewAlert() *Alert {
	styles := style.NewAlertStyles(style.DefaultPalette())
	help := NewHelpBar().
		SetKeyBindings(ui.DefaultKeyMap().ContextualHelp(ui.ContextAlert)).
		SetWidth(alertHelpWidth)
	return &Alert{
		modal:  NewModal().SetBoxStyle(styles.Box),
		help:   help,
		styles: styles,
	}
}

// SetSize sets the area the alert is centered in.
func (a *Alert) SetSize(width, height int) {
	a.modal.SetSize(width, height)
}

// Render draws text with the dismiss bindings below it.
func (a *Alert) Render(text string) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		a.styles.Text.Render(text),
		a.help.View(),
	)
	return a.modal.Render(body)
}
