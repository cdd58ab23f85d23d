package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/towerrun/internal/core"
)

func TestRenderScreenSkipsWideTail(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "🚪ab", core.ColorMagenta)
	s.DrawText(0, 1, "xy", core.ColorGreen)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if strings.ContainsRune(out, core.WideTail) {
		t.Error("output should not contain the wide-rune placeholder")
	}
	if !strings.Contains(lines[0], "🚪") || !strings.Contains(lines[0], "ab") {
		t.Errorf("first line = %q, want the door and ab", lines[0])
	}
}

func TestColorStylesCoverPalette(t *testing.T) {
	for c := core.ColorDefault; c <= core.ColorDim; c++ {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("no style for color %d", c)
		}
	}
}
