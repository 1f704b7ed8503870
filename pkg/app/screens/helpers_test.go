package screens

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/mangaverse/pkg/data"
	"github.com/kerbaras/mangaverse/pkg/services"
	"github.com/kerbaras/mangaverse/pkg/sources"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T) *services.MangaController {
	t.Helper()
	static, err := sources.NewStatic()
	require.NoError(t, err)
	c := services.NewMangaControllerWith(static, data.NewMemoryStore(), zerolog.Nop())
	require.NoError(t, c.Load(context.Background()))
	return c
}

func login(t *testing.T, c *services.MangaController) {
	t.Helper()
	require.NoError(t, c.Session().Login(context.Background(), data.Profile{Name: "Luffy"}))
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "pgup":
		return tea.KeyMsg{Type: tea.KeyPgUp}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run executes cmd and returns its message, or nil.
func run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func chapter(t *testing.T, c *services.MangaController, slug string, number int) *data.Chapter {
	t.Helper()
	ch, err := c.GetChapter(context.Background(), slug, number)
	require.NoError(t, err)
	return ch
}
