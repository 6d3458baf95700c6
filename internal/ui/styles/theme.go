package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles for the application.
type Theme struct {
	// Brand/accent colors
	Primary   lipgloss.Color // Pink - logo start, headers
	Secondary lipgloss.Color // Cyan - station names
	Accent    lipgloss.Color // Yellow - "now playing" label

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color // Primary text (bright)
	FgMuted  lipgloss.Color // Secondary text (dimmed)
	FgSubtle lipgloss.Color // Tertiary text (very dim)

	// Backgrounds
	BgCursor lipgloss.Color // Table selection highlight

	// Borders
	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	// Status colors
	Success lipgloss.Color // Green - genre, added
	Error   lipgloss.Color // Red - errors, removed
	Warning lipgloss.Color // Orange - metadata errors
	Info    lipgloss.Color // Magenta - bitrate

	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base    lipgloss.Style // Default text
	Muted   lipgloss.Style // Dimmed text
	Subtle  lipgloss.Style // Very dim text
	Title   lipgloss.Style // Bold, bright
	Label   lipgloss.Style // "Now Playing" header
	Station lipgloss.Style // Station names
	Genre   lipgloss.Style
	Bitrate lipgloss.Style
	Playing lipgloss.Style // Current stream title
	Cursor  lipgloss.Style // Selection highlight
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#ff96ff"),
	Secondary: lipgloss.Color("#5fd7ff"),
	Accent:    lipgloss.Color("#ffd75f"),

	FgBase:   lipgloss.Color("#e0e0e0"),
	FgMuted:  lipgloss.Color("#8a8a8a"),
	FgSubtle: lipgloss.Color("#585858"),

	BgCursor: lipgloss.Color("#303030"),

	Border:      lipgloss.Color("#585858"),
	BorderFocus: lipgloss.Color("#5f87ff"),

	Success: lipgloss.Color("#5fd787"),
	Error:   lipgloss.Color("#ff5f5f"),
	Warning: lipgloss.Color("#ffaf5f"),
	Info:    lipgloss.Color("#d787d7"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:    base,
		Muted:   lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle:  lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:   base.Bold(true),
		Label:   lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Station: lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),
		Genre:   lipgloss.NewStyle().Foreground(t.Success),
		Bitrate: lipgloss.NewStyle().Foreground(t.Info),
		Playing: base.Bold(true),
		Cursor: lipgloss.NewStyle().
			Background(t.BgCursor).
			Foreground(t.Primary).
			Bold(true),
		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
	}
}
