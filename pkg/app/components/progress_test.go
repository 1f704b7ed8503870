package components

import (
	"strings"
	"testing"
)

func TestNewReadingProgress(t *testing.T) {
	p := NewReadingProgress(40)

	if p.Width != 40 {
		t.Errorf("Expected width 40, got %d", p.Width)
	}
	if p.View() != "" {
		t.Error("Expected empty view without a total")
	}
}

func TestReadingProgressPercent(t *testing.T) {
	tests := []struct {
		last, total int
		want        float64
	}{
		{1, 4, 25},
		{9, 18, 50},
		{18, 18, 100},
		{20, 18, 100},
		{3, 0, 0},
	}
	for _, tt := range tests {
		p := NewReadingProgress(40)
		p.Set(tt.last, tt.total)
		if got := p.Percent(); got != tt.want {
			t.Errorf("Percent(%d/%d) = %v, want %v", tt.last, tt.total, got, tt.want)
		}
	}
}

func TestReadingProgressView(t *testing.T) {
	p := NewReadingProgress(30)
	p.Set(9, 18)

	view := p.View()
	if !strings.Contains(view, "50%") {
		t.Errorf("Expected percentage in view, got %q", view)
	}
	if !strings.Contains(view, "█") || !strings.Contains(view, "░") {
		t.Error("Expected a half filled bar")
	}
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		name           string
		current, total int
		width          int
		wantFilled     int
	}{
		{"empty total", 5, 0, 10, 0},
		{"half", 5, 10, 10, 5},
		{"full", 10, 10, 10, 10},
		{"overflow", 15, 10, 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := renderProgressBar(tt.current, tt.total, tt.width)
			if got := strings.Count(bar, "█"); got != tt.wantFilled {
				t.Errorf("Expected %d filled cells, got %d", tt.wantFilled, got)
			}
		})
	}
}

func TestSimpleProgress(t *testing.T) {
	if SimpleProgress(0, 0, 10) != "" {
		t.Error("Expected empty bar for zero total")
	}
	if SimpleProgress(1, 2, 10) == "" {
		t.Error("Expected a bar")
	}
}
