package theme

import (
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"tableflip.dev/outbreak/pkg/alert"
)

// Theme centralizes Lip Gloss styles for the dashboard.
type Theme struct {
	Title  lipgloss.Style
	Footer FooterTheme
	Card   CardTheme
	Panel  PanelTheme
	List   ListTheme
	Error  lipgloss.Style
	Muted  lipgloss.Style
}

// FooterTheme groups styles used by the bottom help/status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
}

// CardTheme styles the per-disease status cards.
type CardTheme struct {
	Frame    lipgloss.Style
	Name     lipgloss.Style
	Cases    lipgloss.Style
	Caption  lipgloss.Style
	Up       lipgloss.Style
	Down     lipgloss.Style
	Selected lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
	Label lipgloss.Style
}

// ListTheme styles the disease picker.
type ListTheme struct {
	Item     lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
}

// Default returns the built-in theme for dark terminals.
func Default() Theme {
	return build("252", "244", "240")
}

// Light returns the theme for light terminals.
func Light() Theme {
	return build("235", "242", "250")
}

// Detect picks a theme for the terminal's background.
func Detect() Theme {
	if termenv.HasDarkBackground() {
		return Default()
	}
	return Light()
}

func build(text, muted, border string) Theme {
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(muted))
	cardFrame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Width(20)
	return Theme{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#667eea")),
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: mutedStyle,
		},
		Card: CardTheme{
			Frame:    cardFrame,
			Name:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(text)),
			Cases:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#667eea")),
			Caption:  mutedStyle,
			Up:       lipgloss.NewStyle().Foreground(lipgloss.Color("#ff6b6b")),
			Down:     lipgloss.NewStyle().Foreground(lipgloss.Color("#51cf66")),
			Selected: cardFrame.BorderForeground(lipgloss.Color("#667eea")),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(border)).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
			Label: mutedStyle,
		},
		List: ListTheme{
			Item:     lipgloss.NewStyle().PaddingLeft(2),
			Cursor:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
			Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#667eea")),
		},
		Error: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff6b6b")),
		Muted: mutedStyle,
	}
}

// Banner styles the fleet banner with the tier's colors.
func Banner(t alert.Tier) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Padding(0, 2).
		Background(lipgloss.Color(t.Hint.Background)).
		Foreground(lipgloss.Color(t.Hint.Foreground))
}

// AlertBox frames the forecast alert with a border in the tier's color and
// a darker label.
func AlertBox(t alert.Tier) (frame, label lipgloss.Style) {
	frame = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color(t.Hint.Background)).
		PaddingLeft(1)
	label = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(Darken(t.Hint.Background, 0.25)))
	return frame, label
}

// Series styles a chart layer's glyphs in its color.
func Series(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

// Darken blends hex toward black by amount in [0,1].
func Darken(hex string, amount float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	return c.BlendLab(colorful.Color{}, amount).Clamped().Hex()
}
