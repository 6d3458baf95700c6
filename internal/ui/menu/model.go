// Package menu is the interactive station browser shown between playback
// sessions. It quits with a Selection when the user picks a stream.
package menu

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/fmcli/internal/catalog"
	"github.com/llehouerou/fmcli/internal/keymap"
	"github.com/llehouerou/fmcli/internal/state"
	"github.com/llehouerou/fmcli/internal/ui/confirm"
	"github.com/llehouerou/fmcli/internal/ui/list"
)

// Screen identifies one page of the menu.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenSearch
	ScreenResults
	ScreenStreams
	ScreenFavorites
	ScreenHistory
)

func (s Screen) String() string {
	switch s {
	case ScreenHome:
		return "home"
	case ScreenSearch:
		return "search"
	case ScreenResults:
		return "results"
	case ScreenStreams:
		return "streams"
	case ScreenFavorites:
		return "favorites"
	case ScreenHistory:
		return "history"
	default:
		return "unknown"
	}
}

// screenContexts lists the key binding contexts active on each screen.
// The search screen routes keys to the text input instead.
var screenContexts = map[Screen][]string{
	ScreenHome:      {keymap.ContextHome},
	ScreenResults:   {keymap.ContextList, keymap.ContextResults},
	ScreenStreams:   {keymap.ContextList, keymap.ContextStreams},
	ScreenFavorites: {keymap.ContextList, keymap.ContextFavorites},
	ScreenHistory:   {keymap.ContextList, keymap.ContextHistory},
}

// Catalog is the station directory. *catalog.Client implements it.
type Catalog interface {
	Search(ctx context.Context, query string, offset int) (catalog.Page, error)
	Lookup(ctx context.Context, name, location string) (catalog.Station, error)
}

// Deps are the services the menu talks to.
type Deps struct {
	Context context.Context
	Catalog Catalog
	State   state.Interface
	Logger  *zap.Logger
}

// Selection is the stream the user picked.
type Selection struct {
	Station catalog.Station
	Stream  catalog.Stream
}

// Model is the bubbletea model of the menu.
type Model struct {
	deps Deps

	screen        Screen
	width, height int

	input   textinput.Model
	spinner spinner.Model
	loading string // label of the running request, empty when idle
	seq     int    // responses with an older seq are stale

	page    catalog.Page
	results table.Model

	station     catalog.Station
	streams     []catalog.Stream
	streamTable table.Model
	streamsFrom Screen

	favorites list.Model[state.Favorite]
	history   list.Model[state.HistoryEntry]

	confirm   confirm.Model
	status    string
	statusErr bool

	resolvers map[Screen]*keymap.Resolver

	selection *Selection
	quitting  bool
}

// New builds the menu. The last search query is restored from state.
func New(deps Deps) Model {
	if deps.Context == nil {
		deps.Context = context.Background()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	deps.Logger = deps.Logger.With(zap.String("component", "menu"))

	input := textinput.New()
	input.Placeholder = "Station name"
	input.Prompt = "› "
	input.CharLimit = 120

	m := Model{
		deps:        deps,
		screen:      ScreenHome,
		width:       defaultWidth,
		height:      defaultHeight,
		input:       input,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		results:     newTable(resultColumns(defaultWidth)),
		streamTable: newTable(streamColumns(defaultWidth)),
		favorites:   list.New[state.Favorite](list.DefaultMargin),
		history:     list.New[state.HistoryEntry](list.DefaultMargin),
		confirm:     confirm.New(),
		resolvers:   make(map[Screen]*keymap.Resolver, len(screenContexts)),
	}
	for screen, contexts := range screenContexts {
		m.resolvers[screen] = keymap.InContexts(contexts...)
	}

	if deps.State != nil {
		if nav, err := deps.State.GetNavigation(); err != nil {
			deps.Logger.Warn("load navigation state", zap.Error(err))
		} else if nav != nil {
			m.input.SetValue(nav.LastQuery)
			m.input.CursorEnd()
		}
	}

	m.layout()
	return m
}

// Init reloads the list shown on the current screen.
func (m Model) Init() tea.Cmd {
	switch m.screen { //nolint:exhaustive // other screens hold no stored data
	case ScreenFavorites:
		return m.loadFavoritesCmd()
	case ScreenHistory:
		return m.loadHistoryCmd()
	case ScreenSearch:
		return textinput.Blink
	}
	return nil
}

// Selection returns the picked stream, or nil when the user quit.
func (m Model) Selection() *Selection {
	return m.selection
}

// Screen returns the current screen.
func (m Model) Screen() Screen {
	return m.screen
}

// Resume prepares the model to run again after a playback session.
func (m Model) Resume() Model {
	m.selection = nil
	m.quitting = false
	m.loading = ""
	return m
}
