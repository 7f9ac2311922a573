package style

import (
	"github.com/charmbracelet/lipgloss"
)

// SwapStyles styles the swap card.
type SwapStyles struct {
	Card         lipgloss.Style
	Header       lipgloss.Style
	Field        lipgloss.Style
	FieldFocused lipgloss.Style
	TokenButton  lipgloss.Style
	Currency     lipgloss.Style
	Loading      lipgloss.Style
	Rate         lipgloss.Style
	Unavailable  lipgloss.Style
}

// NewSwapStyles creates swap card styles with the given palette
func NewSwapStyles(palette Palette) SwapStyles {
	return SwapStyles{
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Secondary).
			Padding(1, 2),

		Header: TitleStyle.
			MarginBottom(1),

		Field: PanelStyle,

		FieldFocused: ActivePanelStyle,

		TokenButton: lipgloss.NewStyle().
			Foreground(palette.Text).
			Background(palette.BackgroundAlt).
			Bold(true).
			Padding(0, 1),

		Currency: lipgloss.NewStyle().
			Foreground(palette.TextSecondary),

		Loading: WarningStyle.
			Bold(false).
			Italic(true),

		Rate: lipgloss.NewStyle().
			Foreground(palette.TextMuted).
			MarginTop(1),

		Unavailable: ErrorStyle,
	}
}

// ModalStyles styles the modal dialog and its backdrop.
type ModalStyles struct {
	Box      lipgloss.Style
	Title    lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Filter   lipgloss.Style
	Backdrop lipgloss.Color
}

// NewModalStyles creates modal styles with the given palette
func NewModalStyles(palette Palette) ModalStyles {
	return ModalStyles{
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Primary).
			Background(palette.Background).
			Padding(1, 2),

		Title: TitleStyle.
			MarginBottom(1),

		Item: lipgloss.NewStyle().
			Foreground(palette.Text).
			Padding(0, 1),

		Selected: lipgloss.NewStyle().
			Foreground(palette.Background).
			Background(palette.Primary).
			Padding(0, 1).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(palette.TextMuted),

		Filter: lipgloss.NewStyle().
			Foreground(palette.Text).
			MarginBottom(1),

		Backdrop: palette.Backdrop,
	}
}

// AlertStyles styles the blocking alert box.
type AlertStyles struct {
	Box  lipgloss.Style
	Text lipgloss.Style
}

// NewAlertStyles creates alert styles with the given palette
func NewAlertStyles(palette Palette) AlertStyles {
	return AlertStyles{
		Box: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(palette.Warning).
			Background(palette.Background).
			Padding(1, 3),

		Text: lipgloss.NewStyle().
			Foreground(palette.Text).
			Bold(true),
	}
}
