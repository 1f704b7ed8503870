package screens

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/mangaverse/pkg/data"
	"github.com/kerbaras/mangaverse/pkg/reader"
)

// NavigateMsg asks the root screen to open a chapter or switch reader mode.
type NavigateMsg struct {
	Intent reader.Intent
}

// OpenDetailsMsg opens the details screen for a manga.
type OpenDetailsMsg struct {
	Slug string
}

// BackMsg returns to the active tab.
type BackMsg struct{}

// SessionChangedMsg is sent after a login, profile edit or logout.
type SessionChangedMsg struct{}

type chapterOpenedMsg struct {
	seq     uint64
	intent  reader.Intent
	chapter *data.Chapter
	err     error
}

type bookmarkToggledMsg struct {
	slug string
	on   bool
	err  error
}

func navigate(in *reader.Intent) tea.Cmd {
	if in == nil {
		return nil
	}
	intent := *in
	return func() tea.Msg {
		return NavigateMsg{Intent: intent}
	}
}

func openDetails(slug string) tea.Cmd {
	return func() tea.Msg {
		return OpenDetailsMsg{Slug: slug}
	}
}

func back() tea.Msg { return BackMsg{} }

func sessionChanged() tea.Msg { return SessionChangedMsg{} }
