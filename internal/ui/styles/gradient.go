package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// fallbackColor is used for colors that are not "#rrggbb" hex values.
var fallbackColor = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// ApplyGradient renders text with a horizontal color gradient.
func ApplyGradient(text string, from, to lipgloss.Color) string {
	return applyGradient(text, false, from, to)
}

// ApplyBoldGradient renders bold text with a horizontal color gradient.
func ApplyBoldGradient(text string, from, to lipgloss.Color) string {
	return applyGradient(text, true, from, to)
}

func applyGradient(text string, bold bool, from, to lipgloss.Color) string {
	clusters := graphemes(text)
	if len(clusters) == 0 {
		return ""
	}

	style := lipgloss.NewStyle().Bold(bold)
	if len(clusters) == 1 {
		return style.Foreground(from).Render(text)
	}

	colors := blendColors(len(clusters), from, to)

	var b strings.Builder
	for i, cluster := range clusters {
		// Blank cells carry no foreground, skip the escape codes.
		if strings.TrimSpace(cluster) == "" {
			b.WriteString(cluster)
			continue
		}
		b.WriteString(style.Foreground(lipgloss.Color(colors[i].Hex())).Render(cluster))
	}
	return b.String()
}

// graphemes splits text into user-perceived characters.
func graphemes(text string) []string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	return clusters
}

// blendColors returns size colors blended between from and to in HCL space,
// which keeps perceived brightness even across the gradient.
func blendColors(size int, from, to lipgloss.Color) []colorful.Color {
	c1, c2 := toColorful(from), toColorful(to)
	if size < 2 {
		return []colorful.Color{c1}
	}

	colors := make([]colorful.Color, size)
	for i := range size {
		t := float64(i) / float64(size-1)
		colors[i] = c1.BlendHcl(c2, t).Clamped()
	}
	return colors
}

func toColorful(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return fallbackColor
	}
	return col
}
