package components

import (
	"fmt"
	"strings"

	"github.com/kerbaras/mangaverse/pkg/app/styles"
)

// ReadingProgress renders how far into a chapter the reader is. Last is the
// last page on screen, which differs from the current page on a spread.
type ReadingProgress struct {
	Last  int
	Total int
	Width int
}

func NewReadingProgress(width int) *ReadingProgress {
	return &ReadingProgress{Width: width}
}

func (p *ReadingProgress) Set(last, total int) {
	p.Last = last
	p.Total = total
}

func (p *ReadingProgress) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	pct := float64(p.Last) / float64(p.Total) * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}

func (p *ReadingProgress) View() string {
	if p.Total <= 0 {
		return ""
	}
	label := fmt.Sprintf(" %3.0f%%", p.Percent())
	return renderProgressBar(p.Last, p.Total, p.Width-len(label)) + styles.MutedStyle.Render(label)
}

func renderProgressBar(current, total, width int) string {
	if total == 0 || width <= 0 {
		return ""
	}

	filled := int(float64(current) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	return styles.ProgressBarStyle.Render(strings.Repeat("█", filled)) +
		styles.ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// SimpleProgress renders a simple progress bar
func SimpleProgress(current, total, width int) string {
	return renderProgressBar(current, total, width)
}
