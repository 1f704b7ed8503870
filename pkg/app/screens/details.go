package screens

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/mangaverse/pkg/app/styles"
	"github.com/kerbaras/mangaverse/pkg/data"
	"github.com/kerbaras/mangaverse/pkg/reader"
	"github.com/kerbaras/mangaverse/pkg/services"
)

const chapterWindow = 10

type DetailsScreen struct {
	controller *services.MangaController
	keys       KeyMap
	slug       string
	manga      *data.Manga

	// 1-based chapter under the cursor
	selectedChapter int

	status string
	err    error
	width  int
	height int
}

func NewDetailsScreen(controller *services.MangaController, slug string) *DetailsScreen {
	return &DetailsScreen{
		controller:      controller,
		keys:            DefaultKeyMap(),
		slug:            slug,
		selectedChapter: 1,
	}
}

func (s *DetailsScreen) Init() tea.Cmd {
	return s.loadDetails
}

func (s *DetailsScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *DetailsScreen) Slug() string { return s.slug }

// chapterCount is at least 1 so sources without a chapter total can still
// be opened at the first chapter.
func (s *DetailsScreen) chapterCount() int {
	if s.manga == nil || s.manga.ChapterCount < 1 {
		return 1
	}
	return s.manga.ChapterCount
}

func (s *DetailsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		s.status = ""
		switch {
		case key.Matches(msg, s.keys.Up):
			s.moveCursor(-1)
		case key.Matches(msg, s.keys.Down):
			s.moveCursor(1)
		case key.Matches(msg, s.keys.PageUp):
			s.moveCursor(-chapterWindow)
		case key.Matches(msg, s.keys.PageDown):
			s.moveCursor(chapterWindow)
		case key.Matches(msg, s.keys.Enter):
			return s, s.read(reader.Paged)
		case key.Matches(msg, s.keys.Infinite):
			return s, s.read(reader.InfiniteScroll)
		case key.Matches(msg, s.keys.Bookmark):
			if s.manga == nil {
				return s, nil
			}
			if !s.controller.Session().LoggedIn() {
				s.status = "Log in from the Profile tab to bookmark"
				return s, nil
			}
			return s, s.toggleBookmark()
		case key.Matches(msg, s.keys.Retry):
			return s, s.loadDetails
		case key.Matches(msg, s.keys.Escape):
			return s, back
		}

	case detailsLoadedMsg:
		if msg.slug != s.slug {
			return s, nil
		}
		s.manga = msg.manga
		s.err = msg.err
		s.moveCursor(0)

	case bookmarkToggledMsg:
		s.status, s.err = bookmarkStatus(msg)
	}

	return s, nil
}

func (s *DetailsScreen) moveCursor(delta int) {
	s.selectedChapter += delta
	if s.selectedChapter < 1 {
		s.selectedChapter = 1
	}
	if n := s.chapterCount(); s.selectedChapter > n {
		s.selectedChapter = n
	}
}

func (s *DetailsScreen) read(mode reader.Mode) tea.Cmd {
	if s.manga == nil {
		return nil
	}
	return navigate(&reader.Intent{
		Kind:      reader.NavigateToChapter,
		MangaSlug: s.slug,
		Chapter:   s.selectedChapter,
		Page:      1,
		Mode:      mode,
	})
}

func (s *DetailsScreen) View() string {
	if s.manga == nil {
		if s.err != nil {
			return styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err)) + "\n" +
				styles.HelpStyle.Render(helpLine(s.keys.Retry, s.keys.Escape))
		}
		return "Loading..."
	}

	title := s.manga.Title
	if s.controller.Bookmarks().IsBookmarked(s.slug) {
		title = "★ " + title
	}
	header := styles.TitleStyle.Render(fmt.Sprintf("📖 %s", title))

	help := styles.HelpStyle.Render(helpLine(
		s.keys.Up, s.keys.Down, s.keys.Enter, s.keys.Infinite, s.keys.Bookmark, s.keys.Escape,
	))

	return fmt.Sprintf("%s\n\n%s%s\n%s\n%s",
		header,
		statusLine(s.status, s.err),
		s.renderMangaInfo(),
		s.renderChaptersList(),
		help,
	)
}

func (s *DetailsScreen) renderMangaInfo() string {
	m := s.manga

	desc := m.Description
	if len(desc) > 200 {
		desc = desc[:197] + "..."
	}

	meta := []string{}
	if m.Author != "" {
		meta = append(meta, m.Author)
	}
	if m.Status != "" {
		meta = append(meta, styles.StatusStyle(m.Status).Render(m.Status))
	}
	if m.Rating > 0 {
		meta = append(meta, styles.RatingStyle.Render(fmt.Sprintf("★ %.1f", m.Rating)))
	}

	info := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.TextStyle.Render(desc),
		"",
		strings.Join(meta, "  "),
		styles.MutedStyle.Render(strings.Join(m.Genres, ", ")),
		styles.MutedStyle.Render(fmt.Sprintf("Source: %s", m.Source)),
	)

	width := s.width - 4
	if width < 20 {
		width = 76
	}
	return styles.CardStyle.Width(width).Render(info)
}

func (s *DetailsScreen) renderChaptersList() string {
	total := s.chapterCount()

	var b strings.Builder
	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("Chapters (%d total):", total)))
	b.WriteString("\n\n")

	// window of chapterWindow chapters around the cursor
	start := s.selectedChapter - chapterWindow/2
	if start < 1 {
		start = 1
	}
	end := start + chapterWindow - 1
	if end > total {
		end = total
		start = max(end-chapterWindow+1, 1)
	}

	for n := start; n <= end; n++ {
		line := fmt.Sprintf("Ch. %d", n)
		if n == s.selectedChapter {
			line = styles.SelectedStyle.Render(line)
		} else {
			line = styles.MutedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if total > chapterWindow {
		b.WriteString("\n")
		b.WriteString(styles.MutedStyle.Render(
			fmt.Sprintf("Showing %d-%d of %d chapters", start, end, total),
		))
	}

	return b.String()
}

// Messages
type detailsLoadedMsg struct {
	slug  string
	manga *data.Manga
	err   error
}

// Commands
func (s *DetailsScreen) loadDetails() tea.Msg {
	manga, err := s.controller.GetManga(context.Background(), s.slug)
	return detailsLoadedMsg{slug: s.slug, manga: manga, err: err}
}

func (s *DetailsScreen) toggleBookmark() tea.Cmd {
	controller, slug := s.controller, s.slug
	return func() tea.Msg {
		on, err := controller.ToggleBookmark(context.Background(), slug, 0)
		return bookmarkToggledMsg{slug: slug, on: on, err: err}
	}
}
