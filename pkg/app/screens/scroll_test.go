package screens

import (
	"context"
	"testing"
	"time"

	"github.com/kerbaras/mangaverse/pkg/reader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScrollScreen(t *testing.T, slug string, number int) *ScrollScreen {
	t.Helper()
	c := newTestController(t)
	sc, err := reader.NewScroller(chapter(t, c, slug, number), c)
	require.NoError(t, err)
	s := NewScrollScreen(context.Background(), c, sc, time.Second)
	s.SetSize(120, 40)
	return s
}

func TestScrollScreenSentinelHiddenAtTop(t *testing.T) {
	s := newScrollScreen(t, "chainsaw-man", 1)

	assert.Equal(t, 0.0, s.SentinelVisibility())
	assert.Nil(t, s.Init())
	assert.False(t, s.Scroller().Loading())
}

func TestScrollScreenLoadsNextChapterAtBottom(t *testing.T) {
	s := newScrollScreen(t, "chainsaw-man", 1)

	s.viewport.GotoBottom()
	assert.Equal(t, 1.0, s.SentinelVisibility())

	cmd := s.checkSentinel()
	require.NotNil(t, cmd)
	assert.True(t, s.Scroller().Loading())
	assert.Contains(t, s.viewport.View(), "Loading chapter 2")

	// a second trigger while loading is ignored
	assert.Nil(t, s.checkSentinel())

	loaded, ok := cmd().(scrollLoadedMsg)
	require.True(t, ok)

	_, next := s.Update(loaded)
	msg, ok := run(next).(NavigateMsg)
	require.True(t, ok)
	assert.Equal(t, 2, msg.Intent.Chapter)
	assert.Equal(t, reader.InfiniteScroll, msg.Intent.Mode)
	require.NotNil(t, msg.Intent.Prefetched)
	assert.Equal(t, 2, msg.Intent.Prefetched.Number)
}

func TestScrollScreenPartialSentinel(t *testing.T) {
	s := newScrollScreen(t, "chainsaw-man", 1)

	// one line of the sentinel on screen
	s.viewport.GotoBottom()
	s.viewport.SetYOffset(s.viewport.YOffset - (sentinelHeight - 1))
	assert.InDelta(t, 0.25, s.SentinelVisibility(), 0.001)
	assert.Nil(t, s.checkSentinel())

	// three lines, above the default threshold
	s.viewport.GotoBottom()
	s.viewport.SetYOffset(s.viewport.YOffset - 1)
	assert.InDelta(t, 0.75, s.SentinelVisibility(), 0.001)
	assert.NotNil(t, s.checkSentinel())
}

func TestScrollScreenCloseDropsPendingLoad(t *testing.T) {
	s := newScrollScreen(t, "chainsaw-man", 1)

	s.viewport.GotoBottom()
	cmd := s.checkSentinel()
	require.NotNil(t, cmd)

	s.Close()
	assert.False(t, s.Scroller().Loading())

	loaded := cmd()
	_, next := s.Update(loaded)
	assert.Nil(t, next)
}

func TestScrollScreenIgnoresOtherScrollers(t *testing.T) {
	a := newScrollScreen(t, "chainsaw-man", 1)
	b := newScrollScreen(t, "chainsaw-man", 1)

	a.viewport.GotoBottom()
	cmd := a.checkSentinel()
	require.NotNil(t, cmd)

	b.viewport.GotoBottom()
	require.NotNil(t, b.checkSentinel())

	_, next := b.Update(cmd())
	assert.Nil(t, next)
	assert.True(t, b.Scroller().Loading())
}

func TestScrollScreenSeriesEnd(t *testing.T) {
	s := newScrollScreen(t, "chainsaw-man", 156)

	s.viewport.GotoBottom()
	assert.Nil(t, s.checkSentinel())
	assert.Contains(t, s.viewport.View(), "End of series")
}

func TestScrollScreenZoomKeepsState(t *testing.T) {
	s := newScrollScreen(t, "chainsaw-man", 1)
	before := s.viewport.TotalLineCount()

	s.Update(keyPress("+"))
	assert.Equal(t, 110, s.Scroller().Zoom())
	assert.Greater(t, s.viewport.TotalLineCount(), before)

	s.Update(keyPress("d"))
	assert.True(t, s.Scroller().DoublePage())
	assert.Less(t, s.viewport.TotalLineCount(), before)
}

func TestScrollScreenSwitchMode(t *testing.T) {
	s := newScrollScreen(t, "chainsaw-man", 3)

	_, cmd := s.Update(keyPress("m"))
	msg, ok := run(cmd).(NavigateMsg)
	require.True(t, ok)
	assert.Equal(t, reader.NavigateToReaderMode, msg.Intent.Kind)
	assert.Equal(t, reader.Paged, msg.Intent.Mode)
}
