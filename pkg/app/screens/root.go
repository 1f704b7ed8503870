package screens

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/mangaverse/pkg/app/styles"
	"github.com/kerbaras/mangaverse/pkg/data"
	"github.com/kerbaras/mangaverse/pkg/reader"
	"github.com/kerbaras/mangaverse/pkg/services"
	"github.com/rs/zerolog"
)

type screenType int

const (
	libraryView screenType = iota
	searchView
	profileView
	detailsView
	readingView
)

const tabCount = 3

// Options tune the reading screens.
type Options struct {
	Threshold    float64
	FetchTimeout time.Duration

	// Intent, when set, is opened as soon as the program starts.
	Intent *reader.Intent
}

// readingScreen is implemented by the paged and the infinite reader.
type readingScreen interface {
	tea.Model
	SetSize(width, height int)
	prefs() (zoom int, double bool)
	chapter() *data.Chapter
	close()
}

func (s *ReaderScreen) prefs() (int, bool)     { return s.reader.Zoom(), s.reader.DoublePage() }
func (s *ReaderScreen) chapter() *data.Chapter { return s.reader.Chapter() }
func (s *ReaderScreen) close()                 {}
func (s *ScrollScreen) prefs() (int, bool)     { return s.scroller.Zoom(), s.scroller.DoublePage() }
func (s *ScrollScreen) chapter() *data.Chapter { return s.scroller.Chapter() }
func (s *ScrollScreen) close()                 { s.Close() }

type inputCapturer interface {
	CapturesInput() bool
}

// RootScreen owns the tabs and routes navigation between screens.
type RootScreen struct {
	ctx        context.Context
	controller *services.MangaController
	opts       Options
	keys       KeyMap
	log        zerolog.Logger

	currentView screenType
	tab         screenType
	library     *LibraryScreen
	search      *SearchScreen
	profile     *ProfileScreen
	details     *DetailsScreen
	reading     readingScreen

	// carried across chapter transitions
	zoom   int
	double bool

	navSeq  uint64
	loading *reader.Intent
	err     error

	width  int
	height int
}

func NewRootScreen(ctx context.Context, controller *services.MangaController, opts Options) *RootScreen {
	if opts.Threshold <= 0 {
		opts.Threshold = reader.DefaultThreshold
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 10 * time.Second
	}

	return &RootScreen{
		ctx:         ctx,
		controller:  controller,
		opts:        opts,
		keys:        DefaultKeyMap(),
		log:         controller.Logger().With().Str("module", "tui").Logger(),
		currentView: libraryView,
		tab:         libraryView,
		library:     NewLibraryScreen(controller),
		search:      NewSearchScreen(controller),
		profile:     NewProfileScreen(controller),
		zoom:        reader.DefaultZoom,
	}
}

func (r *RootScreen) Init() tea.Cmd {
	if r.opts.Intent != nil {
		return tea.Batch(r.library.Init(), navigate(r.opts.Intent))
	}
	return r.library.Init()
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		r.library.SetSize(msg.Width, msg.Height-2)
		r.search.SetSize(msg.Width, msg.Height-2)
		r.profile.SetSize(msg.Width, msg.Height-2)
		if r.details != nil {
			r.details.SetSize(msg.Width, msg.Height)
		}
		if r.reading != nil {
			r.reading.SetSize(msg.Width, msg.Height-1)
		}
		return r, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			r.closeReading()
			return r, tea.Quit
		}
		if key.Matches(msg, r.keys.Quit) && !r.capturesInput() {
			r.closeReading()
			return r, tea.Quit
		}
		if key.Matches(msg, r.keys.Tab) && r.currentView < tabCount {
			return r, r.switchTab((r.currentView + 1) % tabCount)
		}
		r.err = nil

	case NavigateMsg:
		return r, r.navigate(msg.Intent)

	case chapterOpenedMsg:
		if msg.seq != r.navSeq {
			return r, nil
		}
		r.loading = nil
		if msg.err != nil {
			r.log.Error().Err(msg.err).Str("slug", msg.intent.MangaSlug).Int("chapter", msg.intent.Chapter).Msg("Failed to open chapter")
			r.err = msg.err
			return r, nil
		}
		return r, r.open(msg.intent, msg.chapter)

	case OpenDetailsMsg:
		r.navSeq++
		r.loading = nil
		r.closeReading()
		r.details = NewDetailsScreen(r.controller, msg.Slug)
		r.details.SetSize(r.width, r.height)
		r.currentView = detailsView
		return r, r.details.Init()

	case BackMsg:
		r.navSeq++
		r.loading = nil
		r.closeReading()
		return r, r.switchTab(r.tab)

	case SessionChangedMsg:
		_, cmd := r.library.Update(msg)
		return r, cmd
	}

	return r, r.forward(msg)
}

func (r *RootScreen) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch r.currentView {
	case libraryView:
		_, cmd = r.library.Update(msg)
	case searchView:
		_, cmd = r.search.Update(msg)
	case profileView:
		_, cmd = r.profile.Update(msg)
	case detailsView:
		if r.details != nil {
			_, cmd = r.details.Update(msg)
		}
	case readingView:
		if r.reading != nil {
			_, cmd = r.reading.Update(msg)
		}
	}
	return cmd
}

func (r *RootScreen) switchTab(tab screenType) tea.Cmd {
	r.tab = tab
	r.currentView = tab
	switch tab {
	case searchView:
		return r.search.Init()
	case profileView:
		return r.profile.Init()
	default:
		return r.library.Init()
	}
}

func (r *RootScreen) capturesInput() bool {
	var active any
	switch r.currentView {
	case searchView:
		active = r.search
	case profileView:
		active = r.profile
	}
	c, ok := active.(inputCapturer)
	return ok && c.CapturesInput()
}

// navigate handles a reader intent. Mode switches reuse the open chapter;
// everything else is fetched from the source first.
func (r *RootScreen) navigate(in reader.Intent) tea.Cmd {
	r.navSeq++
	r.err = nil
	r.keepPrefs()

	if in.Prefetched == nil && in.Kind == reader.NavigateToReaderMode && r.reading != nil {
		if ch := r.reading.chapter(); ch.MangaSlug == in.MangaSlug && ch.Number == in.Chapter {
			in.Prefetched = ch
		}
	}
	r.log.Debug().Str("slug", in.MangaSlug).Int("chapter", in.Chapter).Int("page", in.Page).Str("mode", in.Mode.String()).Msg("Navigate")

	if in.Prefetched != nil {
		return r.open(in, in.Prefetched)
	}

	intent := in
	r.loading = &intent
	seq := r.navSeq
	controller := r.controller
	ctx, cancel := context.WithTimeout(r.ctx, r.opts.FetchTimeout)
	return func() tea.Msg {
		defer cancel()
		ch, err := controller.GetChapter(ctx, intent.MangaSlug, intent.Chapter)
		return chapterOpenedMsg{seq: seq, intent: intent, chapter: ch, err: err}
	}
}

func (r *RootScreen) keepPrefs() {
	if r.reading != nil {
		r.zoom, r.double = r.reading.prefs()
	}
}

// open replaces the reading screen with one showing ch.
func (r *RootScreen) open(in reader.Intent, ch *data.Chapter) tea.Cmd {
	r.loading = nil
	opts := []reader.Option{
		reader.WithPage(reader.ResolvePage(in.Page, ch.PageCount)),
		reader.WithZoom(r.zoom),
		reader.WithDoublePage(r.double),
		reader.WithThreshold(r.opts.Threshold),
	}

	var next readingScreen
	switch in.Mode {
	case reader.InfiniteScroll:
		sc, err := reader.NewScroller(ch, r.controller, opts...)
		if err != nil {
			r.err = err
			return nil
		}
		next = NewScrollScreen(r.ctx, r.controller, sc, r.opts.FetchTimeout)
	default:
		rd, err := reader.New(ch, opts...)
		if err != nil {
			r.err = err
			return nil
		}
		next = NewReaderScreen(r.controller, rd)
	}

	r.closeReading()
	r.reading = next
	r.reading.SetSize(r.width, r.height-1)
	r.currentView = readingView
	return r.reading.Init()
}

func (r *RootScreen) closeReading() {
	if r.reading != nil {
		r.keepPrefs()
		r.reading.close()
		r.reading = nil
	}
}

func (r *RootScreen) View() string {
	var content string
	switch r.currentView {
	case libraryView:
		content = r.library.View()
	case searchView:
		content = r.search.View()
	case profileView:
		content = r.profile.View()
	case detailsView:
		if r.details != nil {
			content = r.details.View()
		}
	case readingView:
		if r.reading != nil {
			content = r.reading.View()
		}
	}

	var status string
	if r.loading != nil {
		status = styles.StatusOngoing.Render(fmt.Sprintf("Loading chapter %d...", r.loading.Chapter)) + "\n"
	}
	if r.err != nil {
		status = styles.StatusError.Render(fmt.Sprintf("Error: %s", r.err)) + "\n"
	}

	if r.currentView >= tabCount {
		return status + content
	}
	return fmt.Sprintf("%s\n\n%s%s", r.renderTabs(), status, content)
}

func (r *RootScreen) renderTabs() string {
	names := []string{"Library", "Search", "Profile"}
	tabs := make([]string, len(names))
	for i, name := range names {
		if screenType(i) == r.currentView {
			tabs[i] = styles.ActiveTabStyle.Render(name)
		} else {
			tabs[i] = styles.InactiveTabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
