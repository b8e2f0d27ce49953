package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/hexboard/internal/board"
)

// Palette maps each terrain to the style its cells are drawn in.
type Palette map[board.Terrain]tcell.Style

// DefaultPalette returns the standard terrain colors.
func DefaultPalette() Palette {
	fg := func(hex string) tcell.Style {
		return tcell.StyleDefault.Foreground(MustParseHexColor(hex))
	}
	return Palette{
		board.TerrainWood:   fg("#2E7D32"),
		board.TerrainBrick:  fg("#C0562F"),
		board.TerrainSheep:  fg("#9CCC65"),
		board.TerrainWheat:  fg("#F9C74F"),
		board.TerrainOre:    fg("#8D99AE"),
		board.TerrainDesert: fg("#E0C9A6"),
	}
}

// ParseHexColor converts "#RRGGBB" or "RRGGBB" to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %q", hex)
	}

	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return tcell.NewRGBColor(int32(rgb>>16&0xFF), int32(rgb>>8&0xFF), int32(rgb&0xFF)), nil
}

// MustParseHexColor is ParseHexColor, panicking on error.
func MustParseHexColor(hex string) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return color
}

// paint wraps s in the ANSI SGR sequence for style: a 24-bit foreground,
// then bold. Styles with nothing to show leave s as is.
func paint(s string, style tcell.Style) string {
	fg, _, attrs := style.Decompose()

	var params []string
	if fg != tcell.ColorDefault && fg.Valid() {
		r, g, b := fg.RGB()
		params = append(params, fmt.Sprintf("38;2;%d;%d;%d", r, g, b))
	}
	if attrs&tcell.AttrBold != 0 {
		params = append(params, "1")
	}
	if len(params) == 0 {
		return s
	}
	return "\x1b[" + strings.Join(params, ";") + "m" + s + "\x1b[0m"
}
