package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/mangaverse/pkg/app/styles"
	"github.com/kerbaras/mangaverse/pkg/data"
	"github.com/kerbaras/mangaverse/pkg/reader"
)

// Page frame size at 100% zoom, in cells.
const (
	PageWidth  = 24
	PageHeight = 12
)

// PageFrame draws a placeholder for a page image, sized by zoom.
func PageFrame(ch *data.Chapter, page, zoom int) string {
	z := reader.Zoom(zoom)
	w, h := z.Scale(PageWidth), z.Scale(PageHeight)

	ref := ch.Page(page)
	if len(ref) > w-2 && w > 5 {
		ref = "…" + ref[len(ref)-(w-3):]
	}
	body := lipgloss.JoinVertical(lipgloss.Center,
		fmt.Sprintf("Page %d", page),
		"",
		styles.MutedStyle.Render(ref),
	)
	return styles.PageStyle.Width(w).Height(h).Render(body)
}

// Spread renders one or two pages side by side. A second of 0 means none.
func Spread(ch *data.Chapter, first, second, zoom int) string {
	if second == 0 {
		return PageFrame(ch, first, zoom)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, PageFrame(ch, first, zoom), " ", PageFrame(ch, second, zoom))
}

// FrameHeight is the rendered height of a page frame, border included.
func FrameHeight(zoom int) int {
	return reader.Zoom(zoom).Scale(PageHeight) + 2
}
