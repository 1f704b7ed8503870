package screens

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/mangaverse/pkg/app/components"
	"github.com/kerbaras/mangaverse/pkg/app/styles"
	"github.com/kerbaras/mangaverse/pkg/reader"
	"github.com/kerbaras/mangaverse/pkg/services"
)

// sentinelHeight is the number of lines below the last page that stand in
// for the end-of-chapter marker.
const sentinelHeight = 4

// chrome is the number of lines around the viewport.
const scrollChrome = 7

type scrollLoadedMsg struct {
	scroller *reader.Scroller
	res      reader.Loaded
}

// ScrollScreen renders every page of a chapter in a viewport and loads the
// next chapter once the end sentinel scrolls into view.
type ScrollScreen struct {
	controller *services.MangaController
	scroller   *reader.Scroller
	keys       KeyMap
	viewport   viewport.Model

	ctx     context.Context
	timeout time.Duration
	cancel  context.CancelFunc

	status string
	err    error
	width  int
	height int
}

func NewScrollScreen(ctx context.Context, controller *services.MangaController, s *reader.Scroller, timeout time.Duration) *ScrollScreen {
	keys := DefaultKeyMap()
	vp := viewport.New(80, 20)
	vp.KeyMap = viewport.KeyMap{
		Up:       keys.Up,
		Down:     keys.Down,
		PageUp:   keys.PageUp,
		PageDown: keys.PageDown,
	}

	screen := &ScrollScreen{
		controller: controller,
		scroller:   s,
		keys:       keys,
		viewport:   vp,
		ctx:        ctx,
		timeout:    timeout,
	}
	screen.render()
	return screen
}

func (s *ScrollScreen) Init() tea.Cmd {
	return s.checkSentinel()
}

func (s *ScrollScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.viewport.Width = width
	s.viewport.Height = max(height-scrollChrome, 1)
	s.render()
}

func (s *ScrollScreen) Scroller() *reader.Scroller { return s.scroller }

// Close abandons any chapter fetch in flight.
func (s *ScrollScreen) Close() {
	s.scroller.Cancel()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *ScrollScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	sc := s.scroller

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.SetSize(msg.Width, msg.Height)
		return s, s.checkSentinel()

	case tea.KeyMsg:
		s.status = ""
		s.err = nil
		switch {
		case key.Matches(msg, s.keys.ZoomIn):
			sc.ZoomIn()
			s.render()
			return s, s.checkSentinel()
		case key.Matches(msg, s.keys.ZoomOut):
			sc.ZoomOut()
			s.render()
			return s, s.checkSentinel()
		case key.Matches(msg, s.keys.DoublePage):
			sc.ToggleDoublePage()
			s.render()
			return s, s.checkSentinel()
		case key.Matches(msg, s.keys.Retry):
			if load, ok := sc.Retry(); ok {
				s.render()
				return s, s.run(load)
			}
			return s, nil
		case key.Matches(msg, s.keys.NextChapter):
			if in := sc.NextChapter(); in != nil {
				s.Close()
				return s, navigate(in)
			}
			s.status = "This is the latest chapter"
			return s, nil
		case key.Matches(msg, s.keys.PrevChapter):
			if in := sc.PrevChapter(); in != nil {
				s.Close()
				return s, navigate(in)
			}
			s.status = "This is the first chapter"
			return s, nil
		case key.Matches(msg, s.keys.SwitchMode):
			s.Close()
			return s, navigate(sc.SwitchMode())
		case key.Matches(msg, s.keys.Bookmark):
			return s, toggleBookmark(s.controller, sc.Chapter())
		case key.Matches(msg, s.keys.Escape):
			s.Close()
			return s, openDetails(sc.Chapter().MangaSlug)
		}

	case scrollLoadedMsg:
		if msg.scroller != sc {
			return s, nil
		}
		in := sc.Complete(msg.res)
		s.render()
		if in != nil {
			return s, navigate(in)
		}
		return s, nil

	case bookmarkToggledMsg:
		s.status, s.err = bookmarkStatus(msg)
		return s, nil
	}

	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return s, tea.Batch(cmd, s.checkSentinel())
}

// SentinelVisibility reports the fraction of the sentinel inside the viewport.
func (s *ScrollScreen) SentinelVisibility() float64 {
	total := s.viewport.TotalLineCount()
	start := total - sentinelHeight
	top := s.viewport.YOffset
	bottom := min(top+s.viewport.Height, total)

	visible := bottom - max(top, start)
	if visible <= 0 {
		return 0
	}
	return float64(visible) / float64(sentinelHeight)
}

func (s *ScrollScreen) checkSentinel() tea.Cmd {
	if s.height == 0 {
		return nil
	}
	load, ok := s.scroller.ReachEnd(s.SentinelVisibility())
	if !ok {
		return nil
	}
	s.render()
	return s.run(load)
}

func (s *ScrollScreen) run(load reader.Load) tea.Cmd {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	s.cancel = cancel
	sc := s.scroller
	return func() tea.Msg {
		defer cancel()
		return scrollLoadedMsg{scroller: sc, res: load(ctx)}
	}
}

func (s *ScrollScreen) render() {
	sc := s.scroller
	ch := sc.Chapter()

	var b strings.Builder
	for _, row := range sc.Rows() {
		second := 0
		if len(row) == 2 {
			second = row[1]
		}
		spread := components.Spread(ch, row[0], second, sc.Zoom())
		if s.width > 0 {
			spread = lipgloss.PlaceHorizontal(s.width, lipgloss.Center, spread)
		}
		b.WriteString(spread)
		b.WriteString("\n")
	}
	b.WriteString(s.sentinel())

	s.viewport.SetContent(b.String())
}

// sentinel always renders exactly sentinelHeight lines.
func (s *ScrollScreen) sentinel() string {
	sc := s.scroller
	ch := sc.Chapter()

	var text string
	switch {
	case sc.Loading():
		text = fmt.Sprintf("Loading chapter %d...", ch.NextChapter)
	case sc.Err() != nil:
		text = styles.StatusError.Render(fmt.Sprintf("Failed to load chapter %d. Press r to retry.", ch.NextChapter))
	case !sc.HasNext():
		text = "End of series"
	default:
		text = fmt.Sprintf("Keep scrolling for chapter %d", ch.NextChapter)
	}

	lines := make([]string, sentinelHeight)
	lines[0] = strings.Repeat("─", max(s.width/2, 10))
	lines[1] = text
	return styles.SentinelStyle.Width(max(s.width, 1)).Render(strings.Join(lines, "\n"))
}

func (s *ScrollScreen) View() string {
	sc := s.scroller
	ch := sc.Chapter()

	header := styles.TitleStyle.Render(fmt.Sprintf("📜 %s", ch.MangaTitle))
	info := styles.MutedStyle.Render(fmt.Sprintf("Chapter %d: %s • %d pages • zoom %d%% • %s",
		ch.Number, ch.Title, ch.PageCount, sc.Zoom(), layoutLabel(sc.DoublePage())))

	status := statusLine(s.status, s.err)
	if status == "" && sc.Err() != nil {
		status = statusLine("", sc.Err())
	}

	help := styles.HelpStyle.Render(helpLine(
		s.keys.Up, s.keys.Down, s.keys.ZoomIn, s.keys.ZoomOut, s.keys.DoublePage,
		s.keys.Retry, s.keys.SwitchMode, s.keys.Escape,
	))

	return fmt.Sprintf("%s\n%s\n%s\n%s%s", header, info, s.viewport.View(), status, help)
}
