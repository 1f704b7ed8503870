package screens

import (
	"testing"

	"github.com/kerbaras/mangaverse/pkg/data"
	"github.com/kerbaras/mangaverse/pkg/reader"
	"github.com/kerbaras/mangaverse/pkg/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedDetails(t *testing.T, c *services.MangaController, slug string) *DetailsScreen {
	t.Helper()
	s := NewDetailsScreen(c, slug)
	s.SetSize(120, 50)
	s.Update(run(s.Init()))
	require.NotNil(t, s.manga)
	return s
}

func TestDetailsScreenReads(t *testing.T) {
	c := newTestController(t)
	s := loadedDetails(t, c, "spy-x-family")

	s.Update(keyPress("down"))
	s.Update(keyPress("down"))
	_, cmd := s.Update(keyPress("enter"))
	nav, ok := run(cmd).(NavigateMsg)
	require.True(t, ok)
	assert.Equal(t, 3, nav.Intent.Chapter)
	assert.Equal(t, reader.Paged, nav.Intent.Mode)

	_, cmd = s.Update(keyPress("i"))
	nav = run(cmd).(NavigateMsg)
	assert.Equal(t, reader.InfiniteScroll, nav.Intent.Mode)
}

func TestDetailsScreenCursorClamps(t *testing.T) {
	c := newTestController(t)
	s := loadedDetails(t, c, "spy-x-family")

	s.Update(keyPress("up"))
	assert.Equal(t, 1, s.selectedChapter)

	for i := 0; i < 20; i++ {
		s.Update(keyPress("pgdown"))
	}
	assert.Equal(t, 92, s.selectedChapter)
	assert.Contains(t, s.View(), "Showing 83-92 of 92 chapters")
}

func TestDetailsScreenBookmarkNeedsLogin(t *testing.T) {
	c := newTestController(t)
	s := loadedDetails(t, c, "one-piece")

	_, cmd := s.Update(keyPress("b"))
	assert.Nil(t, cmd)
	assert.Contains(t, s.View(), "Log in")

	login(t, c)
	_, cmd = s.Update(keyPress("b"))
	s.Update(run(cmd))
	assert.True(t, c.Bookmarks().IsBookmarked("one-piece"))
	assert.Contains(t, s.View(), "★ One Piece")
}

func TestDetailsScreenNotFound(t *testing.T) {
	c := newTestController(t)
	s := NewDetailsScreen(c, "bleach")
	s.Update(run(s.Init()))

	assert.Nil(t, s.manga)
	assert.Contains(t, s.View(), "Error")

	_, cmd := s.Update(keyPress("enter"))
	assert.Nil(t, cmd)
}

func TestLibraryScreenRequiresLogin(t *testing.T) {
	c := newTestController(t)
	s := NewLibraryScreen(c)
	s.SetSize(120, 50)
	s.Update(run(s.Init()))

	assert.Contains(t, s.View(), "Log in")
}

func TestLibraryScreenListsAndRemoves(t *testing.T) {
	c := newTestController(t)
	login(t, c)
	_, err := c.ToggleBookmark(t.Context(), "one-piece", 0)
	require.NoError(t, err)
	_, err = c.ToggleBookmark(t.Context(), "chainsaw-man", 0)
	require.NoError(t, err)

	s := NewLibraryScreen(c)
	s.SetSize(120, 50)
	s.Update(run(s.Init()))
	assert.Contains(t, s.View(), "One Piece")
	assert.Contains(t, s.View(), "Chapter 1088")

	s.Update(keyPress("down"))
	_, cmd := s.Update(keyPress("enter"))
	assert.Equal(t, OpenDetailsMsg{Slug: "chainsaw-man"}, run(cmd))

	_, cmd = s.Update(keyPress("d"))
	_, cmd = s.Update(run(cmd))
	s.Update(run(cmd))
	assert.False(t, c.Bookmarks().IsBookmarked("chainsaw-man"))
	assert.NotContains(t, s.View(), "Chainsaw Man")
}

func TestSearchScreenFindsAndOpens(t *testing.T) {
	c := newTestController(t)
	s := NewSearchScreen(c)
	s.SetSize(120, 50)

	for _, r := range "superhero" {
		s.Update(keyPress(string(r)))
	}
	_, cmd := s.Update(keyPress("enter"))
	res, ok := run(cmd).(searchResultMsg)
	require.True(t, ok)
	s.Update(res)

	require.Len(t, s.results, 2)
	assert.False(t, s.CapturesInput())
	assert.Contains(t, s.View(), "Found 2 results")

	s.Update(keyPress("down"))
	_, cmd = s.Update(keyPress("enter"))
	assert.Equal(t, OpenDetailsMsg{Slug: "one-punch-man"}, run(cmd))
}

func TestProfileScreenLoginEditLogout(t *testing.T) {
	c := newTestController(t)
	s := NewProfileScreen(c)
	s.SetSize(120, 50)
	s.Init()
	assert.True(t, s.CapturesInput())

	for _, r := range "Luffy" {
		s.Update(keyPress(string(r)))
	}
	s.Update(keyPress("enter"))
	for _, r := range "luffy@example.com" {
		s.Update(keyPress(string(r)))
	}
	_, cmd := s.Update(keyPress("enter"))
	s.Update(run(cmd))

	require.True(t, c.Session().LoggedIn())
	assert.Equal(t, data.Profile{Name: "Luffy", Email: "luffy@example.com"}, *c.Session().Profile())
	assert.False(t, s.CapturesInput())
	assert.Contains(t, s.View(), "luffy@example.com")

	s.Update(keyPress("e"))
	assert.True(t, s.CapturesInput())
	assert.Equal(t, "Luffy", s.nameInput.Value())
	s.Update(keyPress("esc"))
	assert.False(t, s.CapturesInput())

	_, cmd = s.Update(keyPress("o"))
	s.Update(run(cmd))
	assert.False(t, c.Session().LoggedIn())
	assert.True(t, s.CapturesInput())
}
