package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/mangaverse/pkg/app/styles"
	"github.com/kerbaras/mangaverse/pkg/data"
)

// MangaListItem is one card of a MangaList. Search results and bookmarks
// both render through it.
type MangaListItem struct {
	Slug        string
	Title       string
	Description string
	Status      string
	Rating      float64
	Genres      []string
	Chapter     string // bookmark label, e.g. "Chapter 1088"
	Bookmarked  bool
}

func ItemFromManga(m *data.Manga, bookmarked bool) MangaListItem {
	return MangaListItem{
		Slug:        m.Slug,
		Title:       m.Title,
		Description: m.Description,
		Status:      m.Status,
		Rating:      m.Rating,
		Genres:      m.Genres,
		Bookmarked:  bookmarked,
	}
}

func ItemFromBookmark(b data.Bookmark) MangaListItem {
	return MangaListItem{
		Slug:       b.Slug,
		Title:      b.Title,
		Rating:     b.Rating,
		Genres:     b.Genres,
		Chapter:    b.Chapter,
		Bookmarked: true,
	}
}

type MangaList struct {
	Items         []MangaListItem
	SelectedIndex int
	Width         int
	Height        int
	Empty         string
}

func NewMangaList() *MangaList {
	return &MangaList{
		Items:         []MangaListItem{},
		SelectedIndex: 0,
		Width:         80,
		Height:        20,
		Empty:         "Nothing here yet",
	}
}

func (m *MangaList) SetItems(items []MangaListItem) {
	m.Items = items
	if m.SelectedIndex >= len(items) && len(items) > 0 {
		m.SelectedIndex = len(items) - 1
	}
	if len(items) == 0 {
		m.SelectedIndex = 0
	}
}

func (m *MangaList) Next() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex++
	if m.SelectedIndex >= len(m.Items) {
		m.SelectedIndex = 0
	}
}

func (m *MangaList) Prev() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex--
	if m.SelectedIndex < 0 {
		m.SelectedIndex = len(m.Items) - 1
	}
}

func (m *MangaList) Selected() *MangaListItem {
	if len(m.Items) == 0 || m.SelectedIndex >= len(m.Items) {
		return nil
	}
	return &m.Items[m.SelectedIndex]
}

func (m *MangaList) View() string {
	if len(m.Items) == 0 {
		emptyMsg := styles.MutedStyle.Render(m.Empty)
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, emptyMsg)
	}

	var b strings.Builder
	for i, item := range m.Items {
		cardStyle := styles.CardStyle
		if i == m.SelectedIndex {
			cardStyle = styles.ActiveCardStyle
		}

		title := item.Title
		if item.Bookmarked {
			title = "★ " + title
		}
		lines := []string{styles.TitleStyle.Render(title)}

		if item.Description != "" {
			desc := item.Description
			if len(desc) > 80 {
				desc = desc[:77] + "..."
			}
			lines = append(lines, styles.TextStyle.Render(desc), "")
		}

		meta := []string{}
		if item.Rating > 0 {
			meta = append(meta, styles.RatingStyle.Render(fmt.Sprintf("★ %.1f", item.Rating)))
		}
		if item.Status != "" {
			meta = append(meta, styles.StatusStyle(item.Status).Render(item.Status))
		}
		if item.Chapter != "" {
			meta = append(meta, styles.MutedStyle.Render(item.Chapter))
		}
		if len(meta) > 0 {
			lines = append(lines, strings.Join(meta, "  "))
		}
		if len(item.Genres) > 0 {
			lines = append(lines, styles.MutedStyle.Render(strings.Join(item.Genres, ", ")))
		}

		card := cardStyle.Width(m.Width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
		b.WriteString(card)
		b.WriteString("\n")
	}

	return b.String()
}
