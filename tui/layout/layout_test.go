package layout

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestComputeColumnWidths(t *testing.T) {
	tests := []struct {
		width    int
		main     int
		side     int
		showSide bool
	}{
		{80, 80, 0, false},
		{100, 69, 30, true},
		{151, 100, 50, true},
	}
	for _, tt := range tests {
		main, side, show := ComputeColumnWidths(tt.width)
		if main != tt.main || side != tt.side || show != tt.showSide {
			t.Errorf("ComputeColumnWidths(%d) = (%d, %d, %v), expected (%d, %d, %v)",
				tt.width, main, side, show, tt.main, tt.side, tt.showSide)
		}
	}
}

func TestJoinColumns(t *testing.T) {
	out := JoinColumns([]string{"a\nb", "c"}, []int{3, 2}, 3)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 6 {
			t.Errorf("Row %d: expected width 6, got %d", i, w)
		}
	}
}

func TestPadToWidth(t *testing.T) {
	if got := PadToWidth("abc", 5); got != "abc  " {
		t.Errorf("Expected padding, got %q", got)
	}
	if got := PadToWidth("abcdef", 3); got != "abc" {
		t.Errorf("Expected truncation, got %q", got)
	}
	if got := PadToWidth("abc", 0); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}

func TestContainerRender(t *testing.T) {
	c := Container{Width: 4, Height: 2}
	out := c.Render("1\n2\n3")
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[1], "↓") {
		t.Errorf("Expected scroll indicator on last line, got %q", lines[1])
	}
}
