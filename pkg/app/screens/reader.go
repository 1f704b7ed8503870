package screens

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/mangaverse/pkg/app/components"
	"github.com/kerbaras/mangaverse/pkg/app/styles"
	"github.com/kerbaras/mangaverse/pkg/data"
	"github.com/kerbaras/mangaverse/pkg/reader"
	"github.com/kerbaras/mangaverse/pkg/services"
)

// ReaderScreen is the paged reader.
type ReaderScreen struct {
	controller *services.MangaController
	reader     *reader.Reader
	keys       KeyMap
	progress   *components.ReadingProgress

	status string
	err    error
	width  int
	height int
}

func NewReaderScreen(controller *services.MangaController, r *reader.Reader) *ReaderScreen {
	return &ReaderScreen{
		controller: controller,
		reader:     r,
		keys:       DefaultKeyMap(),
		progress:   components.NewReadingProgress(60),
	}
}

func (s *ReaderScreen) Init() tea.Cmd {
	return nil
}

func (s *ReaderScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.progress.Width = width - 4
}

func (s *ReaderScreen) Reader() *reader.Reader { return s.reader }

func (s *ReaderScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		s.status = ""
		s.err = nil
		r := s.reader
		switch {
		case key.Matches(msg, s.keys.Right):
			return s, navigate(r.NextPage())
		case key.Matches(msg, s.keys.Left):
			return s, navigate(r.PrevPage())
		case key.Matches(msg, s.keys.ZoomIn):
			r.ZoomIn()
		case key.Matches(msg, s.keys.ZoomOut):
			r.ZoomOut()
		case key.Matches(msg, s.keys.DoublePage):
			r.ToggleDoublePage()
		case key.Matches(msg, s.keys.NextChapter):
			if in := r.NextChapter(); in != nil {
				return s, navigate(in)
			}
			s.status = "This is the latest chapter"
		case key.Matches(msg, s.keys.PrevChapter):
			if in := r.PrevChapter(); in != nil {
				return s, navigate(in)
			}
			s.status = "This is the first chapter"
		case key.Matches(msg, s.keys.SwitchMode):
			return s, navigate(r.SwitchMode())
		case key.Matches(msg, s.keys.Bookmark):
			return s, toggleBookmark(s.controller, r.Chapter())
		case key.Matches(msg, s.keys.Escape):
			return s, openDetails(r.Chapter().MangaSlug)
		}

	case bookmarkToggledMsg:
		s.status, s.err = bookmarkStatus(msg)
	}

	return s, nil
}

func (s *ReaderScreen) View() string {
	r := s.reader
	ch := r.Chapter()
	first, second := r.Spread()

	pages := fmt.Sprintf("Page %d of %d", first, ch.PageCount)
	last := first
	if second != 0 {
		pages = fmt.Sprintf("Pages %d-%d of %d", first, second, ch.PageCount)
		last = second
	}
	s.progress.Set(last, ch.PageCount)

	header := styles.TitleStyle.Render(fmt.Sprintf("📖 %s", ch.MangaTitle))
	sub := styles.SubtitleStyle.Render(fmt.Sprintf("Chapter %d: %s", ch.Number, ch.Title))
	info := styles.MutedStyle.Render(fmt.Sprintf("%s • zoom %d%% • %s", pages, r.Zoom(), layoutLabel(r.DoublePage())))

	spread := components.Spread(ch, first, second, r.Zoom())
	if s.width > 0 {
		spread = lipgloss.PlaceHorizontal(s.width, lipgloss.Center, spread)
	}

	help := styles.HelpStyle.Render(helpLine(
		s.keys.Left, s.keys.Right, s.keys.ZoomIn, s.keys.ZoomOut, s.keys.DoublePage,
		s.keys.PrevChapter, s.keys.NextChapter, s.keys.SwitchMode, s.keys.Bookmark, s.keys.Escape,
	))

	return fmt.Sprintf("%s\n%s\n%s\n\n%s\n\n%s\n%s%s",
		header, sub, info, spread, s.progress.View(), statusLine(s.status, s.err), help)
}

func layoutLabel(double bool) string {
	if double {
		return "double page"
	}
	return "single page"
}

func statusLine(status string, err error) string {
	if err != nil {
		return styles.StatusError.Render(fmt.Sprintf("Error: %s", err)) + "\n"
	}
	if status != "" {
		return styles.StatusCompleted.Render(status) + "\n"
	}
	return ""
}

func toggleBookmark(controller *services.MangaController, ch *data.Chapter) tea.Cmd {
	slug, number := ch.MangaSlug, ch.Number
	return func() tea.Msg {
		on, err := controller.ToggleBookmark(context.Background(), slug, number)
		return bookmarkToggledMsg{slug: slug, on: on, err: err}
	}
}

func bookmarkStatus(msg bookmarkToggledMsg) (string, error) {
	switch {
	case msg.err == services.ErrLoginRequired:
		return "Log in from the Profile tab to bookmark", nil
	case msg.err != nil:
		return "", msg.err
	case msg.on:
		return "Bookmarked", nil
	default:
		return "Bookmark removed", nil
	}
}
