package menu

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"

	"github.com/llehouerou/fmcli/internal/catalog"
	"github.com/llehouerou/fmcli/internal/ui/render"
	"github.com/llehouerou/fmcli/internal/ui/styles"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// chromeHeight is the space taken by the title, status, hint and
	// table header.
	chromeHeight = 8
	minRows      = 3
)

// tableKeys keeps the table to cursor movement; letters used by menu
// actions (b, d, f, u) are left out of the default bindings.
var tableKeys = table.KeyMap{
	LineUp:       key.NewBinding(key.WithKeys("up", "k")),
	LineDown:     key.NewBinding(key.WithKeys("down", "j")),
	PageUp:       key.NewBinding(key.WithKeys("pgup")),
	PageDown:     key.NewBinding(key.WithKeys("pgdown")),
	HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
	HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
	GotoTop:      key.NewBinding(key.WithKeys("home", "g")),
	GotoBottom:   key.NewBinding(key.WithKeys("end", "G")),
}

func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(defaultHeight-chromeHeight),
		table.WithKeyMap(tableKeys),
	)

	theme := styles.T()
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderForeground(theme.Border).
		Foreground(theme.Primary).
		Bold(true)
	s.Selected = theme.S().Cursor
	t.SetStyles(s)
	return t
}

// split divides width between columns by weight.
func split(width int, weights ...int) []int {
	total := 0
	for _, w := range weights {
		total += w
	}
	// Each cell has one column of padding on both sides.
	avail := max(width-2*len(weights), len(weights))
	out := make([]int, len(weights))
	for i, w := range weights {
		out[i] = max(avail*w/total, 1)
	}
	return out
}

func resultColumns(width int) []table.Column {
	w := split(width, 4, 3, 3, 1)
	return []table.Column{
		{Title: "Station", Width: w[0]},
		{Title: "Location", Width: w[1]},
		{Title: "Genre", Width: w[2]},
		{Title: "Streams", Width: w[3]},
	}
}

func streamColumns(width int) []table.Column {
	w := split(width, 1, 2, 2, 7)
	return []table.Column{
		{Title: "#", Width: w[0]},
		{Title: "Bitrate", Width: w[1]},
		{Title: "Codec", Width: w[2]},
		{Title: "URL", Width: w[3]},
	}
}

func resultRows(stations []catalog.Station) []table.Row {
	rows := make([]table.Row, 0, len(stations))
	for _, st := range stations {
		rows = append(rows, table.Row{
			render.Sanitize(st.Name),
			render.Sanitize(st.Location),
			render.Sanitize(st.Genre),
			strconv.Itoa(len(st.Streams)),
		})
	}
	return rows
}

func streamRows(streams []catalog.Stream) []table.Row {
	rows := make([]table.Row, 0, len(streams))
	for i, s := range streams {
		codec := s.Codec
		if codec == "" {
			codec = catalog.Unknown
		}
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			s.BitrateLabel(),
			codec,
			s.URL,
		})
	}
	return rows
}

// layout sizes the tables and lists to the window.
func (m *Model) layout() {
	rows := max(m.height-chromeHeight, minRows)

	m.results.SetColumns(resultColumns(m.width))
	m.results.SetWidth(m.width)
	m.results.SetHeight(rows)

	m.streamTable.SetColumns(streamColumns(m.width))
	m.streamTable.SetWidth(m.width)
	m.streamTable.SetHeight(rows)

	m.favorites.SetHeight(rows)
	m.history.SetHeight(rows)

	m.input.Width = max(m.width-10, 10)
}
