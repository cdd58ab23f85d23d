package core

// Color represents a foreground color for a screen cell.
// Values map to ANSI 256-color codes in the platform layer.
type Color uint8

// Base palette.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightBlue
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDim
)

// Tower palette, named after what is drawn with it.
const (
	ColorPlayer      = ColorBrightBlue
	ColorHazard      = ColorRed
	ColorGate        = ColorMagenta
	ColorCollectible = ColorGreen
	ColorTarget      = ColorBrightRed
	ColorPlatform    = ColorOrange
	ColorTile        = ColorCyan
	ColorGrid        = ColorDim
	ColorSafe        = ColorGreen
	ColorModerate    = ColorYellow
	ColorDangerous   = ColorRed
)
