package screens

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/mangaverse/pkg/app/components"
	"github.com/kerbaras/mangaverse/pkg/app/styles"
	"github.com/kerbaras/mangaverse/pkg/services"
)

// LibraryScreen lists the bookmarks of the logged in user.
type LibraryScreen struct {
	controller *services.MangaController
	keys       KeyMap
	mangaList  *components.MangaList
	width      int
	height     int
	err        error
}

func NewLibraryScreen(controller *services.MangaController) *LibraryScreen {
	list := components.NewMangaList()
	list.Empty = "No bookmarks yet. Press b on a manga to add one."
	return &LibraryScreen{
		controller: controller,
		keys:       DefaultKeyMap(),
		mangaList:  list,
	}
}

func (s *LibraryScreen) Init() tea.Cmd {
	return s.loadLibrary
}

func (s *LibraryScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.mangaList.Width = width - 4
	s.mangaList.Height = height - 10
}

func (s *LibraryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if !s.controller.Session().LoggedIn() {
			return s, nil
		}
		switch {
		case key.Matches(msg, s.keys.Up):
			s.mangaList.Prev()
		case key.Matches(msg, s.keys.Down):
			s.mangaList.Next()
		case key.Matches(msg, s.keys.Retry):
			return s, s.loadLibrary
		case key.Matches(msg, s.keys.Remove):
			if selected := s.mangaList.Selected(); selected != nil {
				return s, s.removeBookmark(selected.Slug)
			}
		case key.Matches(msg, s.keys.Enter):
			if selected := s.mangaList.Selected(); selected != nil {
				return s, openDetails(selected.Slug)
			}
		}

	case libraryLoadedMsg:
		s.mangaList.SetItems(msg.items)

	case bookmarkRemovedMsg:
		s.err = msg.err
		return s, s.loadLibrary

	case SessionChangedMsg:
		return s, s.loadLibrary
	}

	return s, nil
}

func (s *LibraryScreen) View() string {
	header := styles.TitleStyle.Render("📚 Bookmarks")

	if !s.controller.Session().LoggedIn() {
		return fmt.Sprintf("%s\n\n%s\n%s", header,
			styles.MutedStyle.Render("Log in from the Profile tab to see your bookmarks."),
			styles.HelpStyle.Render(helpLine(s.keys.Tab, s.keys.Quit)))
	}

	var errorMsg string
	if s.err != nil {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err))
		errorMsg += "\n\n"
	}

	help := styles.HelpStyle.Render(helpLine(
		s.keys.Up, s.keys.Down, s.keys.Enter, s.keys.Remove, s.keys.Retry, s.keys.Tab, s.keys.Quit,
	))

	return fmt.Sprintf("%s\n\n%s%s\n%s", header, errorMsg, s.mangaList.View(), help)
}

// Messages
type libraryLoadedMsg struct {
	items []components.MangaListItem
}

type bookmarkRemovedMsg struct {
	err error
}

// Commands
func (s *LibraryScreen) loadLibrary() tea.Msg {
	bookmarks := s.controller.Bookmarks().List()
	items := make([]components.MangaListItem, len(bookmarks))
	for i, b := range bookmarks {
		items[i] = components.ItemFromBookmark(b)
	}
	return libraryLoadedMsg{items: items}
}

func (s *LibraryScreen) removeBookmark(slug string) tea.Cmd {
	bookmarks := s.controller.Bookmarks()
	return func() tea.Msg {
		return bookmarkRemovedMsg{err: bookmarks.Remove(context.Background(), slug)}
	}
}
