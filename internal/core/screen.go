package core

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// WideTail marks the cell covered by the right half of a double-width rune.
// Renderers skip it.
const WideTail rune = 0

// Cell is a single character position on the screen with its colour.
type Cell struct {
	Rune  rune
	Color Color
}

// Area is a rectangle measured in screen cells.
type Area struct {
	X, Y int
	W, H int
}

// Right returns the column just past the area.
func (a Area) Right() int {
	return a.X + a.W
}

// Bottom returns the row just past the area.
func (a Area) Bottom() int {
	return a.Y + a.H
}

// Screen is a 2D character buffer for rendering game graphics.
// It decouples the tower view from the terminal: the platform layer turns
// the buffer into styled output.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
	}
	s.allocate()
	s.Clear()
	return s
}

func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions. Content is discarded; the tower
// view redraws every frame.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width = width
	s.height = height
	s.allocate()
	s.Clear()
}

// Clear fills the entire screen with uncoloured spaces.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = Cell{Rune: ' '}
		}
	}
}

// Set places a rune at the given position with the default colour.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	s.SetColor(x, y, r, ColorDefault)
}

// SetColor places a coloured rune at the given position.
func (s *Screen) SetColor(x, y int, r rune, c Color) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = Cell{Rune: r, Color: c}
}

// Get returns the rune at the given position.
// Returns space for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at the given position.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Cell{Rune: ' '}
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y).
// Double-width runes (emoji icons) take two cells. Zero-width runes such as
// variation selectors are dropped. Characters beyond the screen are clipped.
func (s *Screen) DrawText(x, y int, text string, c Color) {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		switch w {
		case 0:
			continue
		case 2:
			if x+1 >= s.width {
				return
			}
			s.SetColor(x, y, r, c)
			s.SetColor(x+1, y, WideTail, c)
		default:
			s.SetColor(x, y, r, c)
		}
		x += w
	}
}

// TextWidth returns the number of cells text occupies.
func TextWidth(text string) int {
	return runewidth.StringWidth(text)
}

// DrawTextCentered draws text centered horizontally at the given y position.
func (s *Screen) DrawTextCentered(y int, text string, c Color) {
	x := (s.width - TextWidth(text)) / 2
	s.DrawText(x, y, text, c)
}

// FillArea fills a rectangular area with the given rune.
func (s *Screen) FillArea(a Area, fill rune, c Color) {
	for y := a.Y; y < a.Bottom(); y++ {
		for x := a.X; x < a.Right(); x++ {
			s.SetColor(x, y, fill, c)
		}
	}
}

// DrawBox draws a box outline using box-drawing characters.
func (s *Screen) DrawBox(a Area, c Color) {
	if a.W < 2 || a.H < 2 {
		return
	}
	s.SetColor(a.X, a.Y, '┌', c)
	s.SetColor(a.Right()-1, a.Y, '┐', c)
	s.SetColor(a.X, a.Bottom()-1, '└', c)
	s.SetColor(a.Right()-1, a.Bottom()-1, '┘', c)

	for x := a.X + 1; x < a.Right()-1; x++ {
		s.SetColor(x, a.Y, '─', c)
		s.SetColor(x, a.Bottom()-1, '─', c)
	}
	for y := a.Y + 1; y < a.Bottom()-1; y++ {
		s.SetColor(a.X, y, '│', c)
		s.SetColor(a.Right()-1, y, '│', c)
	}
}

// DrawHLine draws a horizontal line from (x, y) with the given length.
func (s *Screen) DrawHLine(x, y, length int, r rune, c Color) {
	for i := 0; i < length; i++ {
		s.SetColor(x+i, y, r, c)
	}
}

// String converts the screen buffer to plain text, rows joined by newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			if r := s.cells[y][x].Rune; r != WideTail {
				sb.WriteRune(r)
			}
		}
	}
	return sb.String()
}

// Row returns the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		if c.Rune != WideTail {
			sb.WriteRune(c.Rune)
		}
	}
	return sb.String()
}
