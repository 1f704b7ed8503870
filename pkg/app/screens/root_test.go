package screens

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/mangaverse/pkg/reader"
	"github.com/kerbaras/mangaverse/pkg/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoot(t *testing.T) (*RootScreen, *services.MangaController) {
	t.Helper()
	c := newTestController(t)
	r := NewRootScreen(context.Background(), c, Options{})
	r.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	return r, c
}

// open sends a NavigateMsg and delivers the fetched chapter.
func open(t *testing.T, r *RootScreen, in reader.Intent) {
	t.Helper()
	_, cmd := r.Update(NavigateMsg{Intent: in})
	if msg, ok := run(cmd).(chapterOpenedMsg); ok {
		r.Update(msg)
	}
	require.NoError(t, r.err)
	require.Equal(t, readingView, r.currentView)
}

func TestRootStartsOnLibrary(t *testing.T) {
	r, _ := newRoot(t)
	assert.Equal(t, libraryView, r.currentView)
	assert.Contains(t, r.View(), "Library")
}

func TestRootTabCycles(t *testing.T) {
	r, _ := newRoot(t)

	r.Update(keyPress("tab"))
	assert.Equal(t, searchView, r.currentView)
	r.Update(keyPress("tab"))
	assert.Equal(t, profileView, r.currentView)
	r.Update(keyPress("tab"))
	assert.Equal(t, libraryView, r.currentView)
}

func TestRootQuitIgnoredWhileTyping(t *testing.T) {
	r, _ := newRoot(t)

	r.Update(keyPress("tab"))
	r.Update(keyPress("q"))
	assert.Equal(t, searchView, r.currentView)
	assert.Equal(t, "q", r.search.input.Value(), "q typed into the search box must not quit")

	// profile shows the login form, library captures nothing
	r.Update(keyPress("tab"))
	r.Update(keyPress("tab"))
	_, cmd := r.Update(keyPress("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestRootOpensPagedReader(t *testing.T) {
	r, _ := newRoot(t)

	open(t, r, reader.Intent{Kind: reader.NavigateToChapter, MangaSlug: "one-piece", Chapter: 1088, Page: 1})

	screen, ok := r.reading.(*ReaderScreen)
	require.True(t, ok)
	assert.Equal(t, 1088, screen.Reader().Chapter().Number)
	assert.Equal(t, 1, screen.Reader().Page())
}

func TestRootResolvesLastPage(t *testing.T) {
	r, _ := newRoot(t)

	open(t, r, reader.Intent{Kind: reader.NavigateToChapter, MangaSlug: "one-piece", Chapter: 1087, Page: reader.LastPage})

	screen := r.reading.(*ReaderScreen)
	assert.Equal(t, 18, screen.Reader().Page())
}

func TestRootPageOneBackwardsLandsOnPreviousLastPage(t *testing.T) {
	r, _ := newRoot(t)
	open(t, r, reader.Intent{Kind: reader.NavigateToChapter, MangaSlug: "one-piece", Chapter: 1088, Page: 1})

	_, cmd := r.Update(keyPress("left"))
	nav, ok := run(cmd).(NavigateMsg)
	require.True(t, ok)
	open(t, r, nav.Intent)

	screen := r.reading.(*ReaderScreen)
	assert.Equal(t, 1087, screen.Reader().Chapter().Number)
	assert.Equal(t, 18, screen.Reader().Page())
}

func TestRootCarriesPreferences(t *testing.T) {
	r, _ := newRoot(t)
	open(t, r, reader.Intent{Kind: reader.NavigateToChapter, MangaSlug: "one-piece", Chapter: 10, Page: 1})

	r.Update(keyPress("+"))
	r.Update(keyPress("d"))

	_, cmd := r.Update(keyPress("n"))
	nav, ok := run(cmd).(NavigateMsg)
	require.True(t, ok)
	open(t, r, nav.Intent)

	screen := r.reading.(*ReaderScreen)
	assert.Equal(t, 11, screen.Reader().Chapter().Number)
	assert.Equal(t, 110, screen.Reader().Zoom())
	assert.True(t, screen.Reader().DoublePage())
}

func TestRootSwitchModeReusesChapter(t *testing.T) {
	r, _ := newRoot(t)
	open(t, r, reader.Intent{Kind: reader.NavigateToChapter, MangaSlug: "one-piece", Chapter: 10, Page: 5})
	before := r.reading.chapter()

	_, cmd := r.Update(keyPress("m"))
	nav := run(cmd).(NavigateMsg)
	r.Update(nav)

	scroll, ok := r.reading.(*ScrollScreen)
	require.True(t, ok, "mode switch should open the infinite reader without a fetch")
	assert.Same(t, before, scroll.Scroller().Chapter())
	assert.Nil(t, r.loading)
}

func TestRootLeavingReaderCancelsScrollFetch(t *testing.T) {
	r, _ := newRoot(t)
	open(t, r, reader.Intent{Kind: reader.NavigateToChapter, MangaSlug: "chainsaw-man", Chapter: 1, Page: 1, Mode: reader.InfiniteScroll})

	scroll := r.reading.(*ScrollScreen)
	scroll.viewport.GotoBottom()
	load := scroll.checkSentinel()
	require.NotNil(t, load)

	r.Update(OpenDetailsMsg{Slug: "chainsaw-man"})
	assert.Equal(t, detailsView, r.currentView)
	assert.False(t, scroll.Scroller().Loading())

	// the late result is dropped
	_, cmd := r.Update(load())
	assert.Nil(t, cmd)
	assert.Equal(t, detailsView, r.currentView)
}

func TestRootIgnoresStaleChapter(t *testing.T) {
	r, _ := newRoot(t)

	_, cmd := r.Update(NavigateMsg{Intent: reader.Intent{MangaSlug: "one-piece", Chapter: 3, Page: 1}})
	msg := run(cmd)
	r.Update(BackMsg{})

	r.Update(msg)
	assert.Equal(t, libraryView, r.currentView)
	assert.Nil(t, r.reading)
}

func TestRootFetchError(t *testing.T) {
	r, _ := newRoot(t)

	_, cmd := r.Update(NavigateMsg{Intent: reader.Intent{MangaSlug: "one-piece", Chapter: 5000, Page: 1}})
	r.Update(run(cmd))

	assert.Error(t, r.err)
	assert.Equal(t, libraryView, r.currentView)
	assert.Contains(t, r.View(), "Error")
}

func TestRootInitialIntent(t *testing.T) {
	c := newTestController(t)
	in := reader.Intent{MangaSlug: "spy-x-family", Chapter: 92, Page: reader.LastPage}
	r := NewRootScreen(context.Background(), c, Options{Intent: &in})

	msgs := []tea.Msg{}
	for _, cmd := range run(r.Init()).(tea.BatchMsg) {
		if m := run(cmd); m != nil {
			msgs = append(msgs, m)
		}
	}
	for _, m := range msgs {
		if nav, ok := m.(NavigateMsg); ok {
			open(t, r, nav.Intent)
		}
	}

	screen := r.reading.(*ReaderScreen)
	assert.Equal(t, 92, screen.Reader().Chapter().Number)
	assert.Equal(t, 18, screen.Reader().Page())
}

func TestRootDetailsBackReturnsToTab(t *testing.T) {
	r, _ := newRoot(t)
	r.Update(keyPress("tab"))

	_, cmd := r.Update(OpenDetailsMsg{Slug: "one-piece"})
	r.Update(run(cmd))
	assert.Equal(t, detailsView, r.currentView)
	assert.Contains(t, r.View(), "One Piece")

	_, cmd = r.Update(keyPress("esc"))
	r.Update(run(cmd))
	assert.Equal(t, searchView, r.currentView)
}
