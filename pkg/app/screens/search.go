package screens

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/mangaverse/pkg/app/styles"
	"github.com/kerbaras/mangaverse/pkg/data"
	"github.com/kerbaras/mangaverse/pkg/services"
)

type SearchScreen struct {
	controller *services.MangaController
	keys       KeyMap
	input      textinput.Model
	results    []*data.Manga
	selected   int
	searching  bool
	searched   bool
	width      int
	height     int
	err        error
}

func NewSearchScreen(controller *services.MangaController) *SearchScreen {
	ti := textinput.New()
	ti.Placeholder = "Search by title or genre..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 50

	return &SearchScreen{
		controller: controller,
		keys:       DefaultKeyMap(),
		input:      ti,
		results:    []*data.Manga{},
	}
}

func (s *SearchScreen) Init() tea.Cmd {
	return textinput.Blink
}

func (s *SearchScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// CapturesInput reports whether keystrokes go to the query field.
func (s *SearchScreen) CapturesInput() bool {
	return s.input.Focused()
}

func (s *SearchScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		// If searching, don't process keys
		if s.searching {
			return s, nil
		}

		switch {
		case key.Matches(msg, s.keys.Enter):
			if s.input.Focused() {
				query := strings.TrimSpace(s.input.Value())
				if query != "" {
					s.searching = true
					return s, s.performSearch(query)
				}
			} else if len(s.results) > 0 {
				return s, openDetails(s.results[s.selected].Slug)
			}
			return s, nil

		case key.Matches(msg, s.keys.Escape):
			// Switch focus between input and results
			if s.input.Focused() {
				s.input.Blur()
			} else {
				s.input.Focus()
				cmd = textinput.Blink
			}
			return s, cmd

		case !s.input.Focused() && key.Matches(msg, s.keys.Up):
			if len(s.results) > 0 {
				s.selected--
				if s.selected < 0 {
					s.selected = len(s.results) - 1
				}
			}
			return s, nil

		case !s.input.Focused() && key.Matches(msg, s.keys.Down):
			if len(s.results) > 0 {
				s.selected++
				if s.selected >= len(s.results) {
					s.selected = 0
				}
			}
			return s, nil
		}

	case searchResultMsg:
		s.searching = false
		s.searched = true
		s.results = msg.results
		s.selected = 0
		s.err = msg.err
		if len(s.results) > 0 {
			s.input.Blur()
		}
	}

	// Update text input
	if s.input.Focused() {
		s.input, cmd = s.input.Update(msg)
	}

	return s, cmd
}

func (s *SearchScreen) View() string {
	header := styles.TitleStyle.Render("🔍 Search Manga")

	inputStyle := styles.InputStyle
	if s.input.Focused() {
		inputStyle = styles.FocusedInputStyle
	}
	inputView := inputStyle.Render(s.input.View())

	var errorMsg string
	if s.err != nil {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err))
		errorMsg += "\n\n"
	}

	var resultsView string
	if s.searching {
		resultsView = styles.StatusOngoing.Render("Searching...")
	} else if len(s.results) > 0 {
		resultsView = s.renderResults()
	} else if s.searched && s.err == nil {
		resultsView = styles.MutedStyle.Render("No results found")
	}

	help := styles.HelpStyle.Render(helpLine(
		s.keys.Enter, s.keys.Escape, s.keys.Up, s.keys.Down, s.keys.Tab,
	))

	return fmt.Sprintf("%s\n\n%s\n\n%s%s\n\n%s",
		header,
		inputView,
		errorMsg,
		resultsView,
		help,
	)
}

func (s *SearchScreen) renderResults() string {
	var result strings.Builder
	result.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("Found %d results:", len(s.results))))
	result.WriteString("\n\n")

	width := s.width - 6
	if width < 20 {
		width = 74
	}

	for i, manga := range s.results {
		cardStyle := styles.CardStyle
		if i == s.selected && !s.input.Focused() {
			cardStyle = styles.ActiveCardStyle
		}

		title := manga.Title
		if s.controller.Bookmarks().IsBookmarked(manga.Slug) {
			title = "★ " + title
		}

		desc := manga.Description
		if len(desc) > 120 {
			desc = desc[:117] + "..."
		}

		meta := fmt.Sprintf("%s • %s", strings.Join(manga.Genres, ", "), manga.Slug)
		if manga.Rating > 0 {
			meta = fmt.Sprintf("★ %.1f • %s", manga.Rating, meta)
		}

		cardContent := lipgloss.JoinVertical(
			lipgloss.Left,
			styles.TitleStyle.Render(title),
			styles.TextStyle.Render(desc),
			styles.MutedStyle.Render(meta),
		)

		result.WriteString(cardStyle.Width(width).Render(cardContent))
		result.WriteString("\n")
	}

	return result.String()
}

// Messages
type searchResultMsg struct {
	results []*data.Manga
	err     error
}

// Commands
func (s *SearchScreen) performSearch(query string) tea.Cmd {
	controller := s.controller
	return func() tea.Msg {
		results, err := controller.SearchManga(context.Background(), query)
		return searchResultMsg{results: results, err: err}
	}
}
