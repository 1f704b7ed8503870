package screens

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/mangaverse/pkg/app/styles"
	"github.com/kerbaras/mangaverse/pkg/data"
	"github.com/kerbaras/mangaverse/pkg/services"
)

// ProfileScreen shows a login form when logged out and the profile, with
// edit and logout, when logged in.
type ProfileScreen struct {
	controller *services.MangaController
	keys       KeyMap

	nameInput  textinput.Model
	emailInput textinput.Model
	focusIndex int
	editing    bool

	status string
	err    error
	width  int
	height int
}

type sessionSavedMsg struct {
	status string
	err    error
}

func NewProfileScreen(controller *services.MangaController) *ProfileScreen {
	nameInput := textinput.New()
	nameInput.Placeholder = "name"
	nameInput.CharLimit = 50
	nameInput.Width = 30

	emailInput := textinput.New()
	emailInput.Placeholder = "email@example.com"
	emailInput.CharLimit = 100
	emailInput.Width = 30

	return &ProfileScreen{
		controller: controller,
		keys:       DefaultKeyMap(),
		nameInput:  nameInput,
		emailInput: emailInput,
	}
}

func (s *ProfileScreen) Init() tea.Cmd {
	s.status = ""
	s.err = nil
	if s.showForm() {
		return s.focus(0)
	}
	return nil
}

func (s *ProfileScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *ProfileScreen) CapturesInput() bool {
	return s.showForm()
}

func (s *ProfileScreen) showForm() bool {
	return s.editing || !s.controller.Session().LoggedIn()
}

func (s *ProfileScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.SetSize(msg.Width, msg.Height)
		return s, nil

	case sessionSavedMsg:
		s.status, s.err = msg.status, msg.err
		if msg.err != nil {
			return s, nil
		}
		s.editing = false
		s.nameInput.Blur()
		s.emailInput.Blur()
		if s.showForm() {
			s.nameInput.Reset()
			s.emailInput.Reset()
			return s, tea.Batch(sessionChanged, s.focus(0))
		}
		return s, sessionChanged

	case tea.KeyMsg:
		s.status = ""
		if !s.showForm() {
			switch {
			case key.Matches(msg, s.keys.Edit):
				p := s.controller.Session().Profile()
				if p != nil {
					s.nameInput.SetValue(p.Name)
					s.emailInput.SetValue(p.Email)
				}
				s.editing = true
				return s, s.focus(0)
			case key.Matches(msg, s.keys.Logout):
				return s, s.logout()
			}
			return s, nil
		}

		switch msg.String() {
		case "up", "shift+tab":
			return s, s.focus(s.focusIndex - 1)
		case "down":
			return s, s.focus(s.focusIndex + 1)
		case "esc":
			if s.editing {
				s.editing = false
				s.nameInput.Blur()
				s.emailInput.Blur()
			}
			return s, nil
		case "enter":
			if s.focusIndex == 0 {
				return s, s.focus(1)
			}
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	if s.focusIndex == 0 {
		s.nameInput, cmd = s.nameInput.Update(msg)
	} else {
		s.emailInput, cmd = s.emailInput.Update(msg)
	}
	return s, cmd
}

func (s *ProfileScreen) focus(i int) tea.Cmd {
	if i < 0 {
		i = 1
	}
	s.focusIndex = i % 2
	if s.focusIndex == 0 {
		s.emailInput.Blur()
		return s.nameInput.Focus()
	}
	s.nameInput.Blur()
	return s.emailInput.Focus()
}

func (s *ProfileScreen) submit() tea.Cmd {
	profile := data.Profile{Name: s.nameInput.Value(), Email: s.emailInput.Value()}
	session := s.controller.Session()
	editing := s.editing
	return func() tea.Msg {
		if editing {
			return sessionSavedMsg{status: "Profile updated", err: session.UpdateProfile(context.Background(), profile)}
		}
		return sessionSavedMsg{status: "Logged in", err: session.Login(context.Background(), profile)}
	}
}

func (s *ProfileScreen) logout() tea.Cmd {
	session := s.controller.Session()
	return func() tea.Msg {
		return sessionSavedMsg{status: "Logged out", err: session.Logout(context.Background())}
	}
}

func (s *ProfileScreen) View() string {
	header := styles.TitleStyle.Render("👤 Profile")
	status := statusLine(s.status, s.err)

	if !s.showForm() {
		p := s.controller.Session().Profile()
		card := styles.CardStyle.Render(fmt.Sprintf("%s\n%s\n\n%s",
			styles.TextStyle.Render(p.Name),
			styles.MutedStyle.Render(p.Email),
			styles.MutedStyle.Render(fmt.Sprintf("%d bookmarks", len(s.controller.Bookmarks().List()))),
		))
		help := styles.HelpStyle.Render(helpLine(s.keys.Edit, s.keys.Logout, s.keys.Tab, s.keys.Quit))
		return fmt.Sprintf("%s\n\n%s%s\n%s", header, status, card, help)
	}

	title := "Log in"
	if s.editing {
		title = "Edit profile"
	}

	nameStyle, emailStyle := styles.InputStyle, styles.FocusedInputStyle
	if s.focusIndex == 0 {
		nameStyle, emailStyle = styles.FocusedInputStyle, styles.InputStyle
	}

	help := styles.HelpStyle.Render("↑/↓: switch field • enter: next/submit • tab: switch view • ctrl+c: quit")
	return fmt.Sprintf("%s\n\n%s\n\n%s\n%s\n%s\n%s\n\n%s%s",
		header,
		styles.SubtitleStyle.Render(title),
		styles.MutedStyle.Render("Name"),
		nameStyle.Render(s.nameInput.View()),
		styles.MutedStyle.Render("Email"),
		emailStyle.Render(s.emailInput.View()),
		status,
		help,
	)
}
