package components

import (
	"strings"
	"testing"

	"github.com/kerbaras/mangaverse/pkg/data"
)

func threeItems() []MangaListItem {
	return []MangaListItem{
		{Slug: "one-piece", Title: "One Piece"},
		{Slug: "jujutsu-kaisen", Title: "Jujutsu Kaisen"},
		{Slug: "chainsaw-man", Title: "Chainsaw Man"},
	}
}

func TestNewMangaList(t *testing.T) {
	list := NewMangaList()

	if list == nil {
		t.Fatal("Expected manga list to be created")
	}
	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex 0, got %d", list.SelectedIndex)
	}
	if len(list.Items) != 0 {
		t.Errorf("Expected 0 items, got %d", len(list.Items))
	}
}

func TestSetItemsClampsSelection(t *testing.T) {
	list := NewMangaList()
	list.SetItems(threeItems())
	list.SelectedIndex = 2

	list.SetItems(threeItems()[:1])
	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex to be clamped to 0, got %d", list.SelectedIndex)
	}

	list.SetItems(nil)
	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex 0 on empty list, got %d", list.SelectedIndex)
	}
}

func TestNextPrevWrap(t *testing.T) {
	list := NewMangaList()
	list.SetItems(threeItems())

	list.Next()
	list.Next()
	if list.SelectedIndex != 2 {
		t.Errorf("Expected SelectedIndex 2, got %d", list.SelectedIndex)
	}
	list.Next()
	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex to wrap to 0, got %d", list.SelectedIndex)
	}
	list.Prev()
	if list.SelectedIndex != 2 {
		t.Errorf("Expected SelectedIndex to wrap to 2, got %d", list.SelectedIndex)
	}
}

func TestNextPrevEmptyList(t *testing.T) {
	list := NewMangaList()

	// Should not panic with empty list
	list.Next()
	list.Prev()

	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex to remain 0, got %d", list.SelectedIndex)
	}
	if list.Selected() != nil {
		t.Error("Expected nil for empty list")
	}
}

func TestSelected(t *testing.T) {
	list := NewMangaList()
	list.SetItems(threeItems())

	if got := list.Selected().Slug; got != "one-piece" {
		t.Errorf("Expected selected slug 'one-piece', got '%s'", got)
	}
	list.Next()
	if got := list.Selected().Slug; got != "jujutsu-kaisen" {
		t.Errorf("Expected selected slug 'jujutsu-kaisen', got '%s'", got)
	}
}

func TestViewEmptyList(t *testing.T) {
	list := NewMangaList()
	list.Empty = "No bookmarks yet"

	if view := list.View(); !strings.Contains(view, "No bookmarks yet") {
		t.Error("Expected empty message in view")
	}
}

func TestViewWithItems(t *testing.T) {
	list := NewMangaList()
	list.SetItems([]MangaListItem{
		ItemFromManga(&data.Manga{
			Slug:        "one-piece",
			Title:       "One Piece",
			Description: "Pirates.",
			Status:      "ongoing",
			Rating:      4.9,
			Genres:      []string{"Action", "Adventure"},
		}, true),
	})

	view := list.View()
	for _, want := range []string{"★ One Piece", "Pirates.", "4.9", "ongoing", "Action, Adventure"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected %q in view", want)
		}
	}
}

func TestItemFromBookmark(t *testing.T) {
	item := ItemFromBookmark(data.Bookmark{Slug: "one-piece", Title: "One Piece", Chapter: "Chapter 1088"})

	if !item.Bookmarked {
		t.Error("Expected bookmark items to be marked")
	}
	if item.Chapter != "Chapter 1088" {
		t.Errorf("Expected chapter label, got %q", item.Chapter)
	}

	list := NewMangaList()
	list.SetItems([]MangaListItem{item})
	if !strings.Contains(list.View(), "Chapter 1088") {
		t.Error("Expected chapter label in view")
	}
}
