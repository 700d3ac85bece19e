// Package draw renders the play-field to ANSI terminals.
package draw

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ResetStyle clears any colour attributes.
const ResetStyle = "\033[0m"

// Named colours used by entities and cosmetics.
var (
	White  = mustHex("#ffffff")
	Yellow = mustHex("#ffff00")
	Gold   = mustHex("#ffd700")
	Orange = mustHex("#ffa500")
	Red    = mustHex("#ff0000")
	Lime   = mustHex("#00ff00")
	Green  = mustHex("#008000")
	Blue   = mustHex("#0000ff")
	Indigo = mustHex("#4b0082")
	Violet = mustHex("#ee82ee")
	Black  = mustHex("#000000")
)

var named = map[string]colorful.Color{
	"white":  White,
	"yellow": Yellow,
	"gold":   Gold,
	"orange": Orange,
	"red":    Red,
	"lime":   Lime,
	"green":  Green,
	"blue":   Blue,
	"indigo": Indigo,
	"violet": Violet,
	"black":  Black,
}

// NamedColor resolves a colour name (case-insensitive) or a #rrggbb hex string.
func NamedColor(name string) (colorful.Color, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if c, ok := named[name]; ok {
		return c, true
	}
	if strings.HasPrefix(name, "#") {
		c, err := colorful.Hex(name)
		if err == nil {
			return c, true
		}
	}
	return colorful.Color{}, false
}

// ColorOr resolves name with NamedColor, returning fallback when it is unknown.
func ColorOr(name string, fallback colorful.Color) colorful.Color {
	if c, ok := NamedColor(name); ok {
		return c
	}
	return fallback
}

// Colorize wraps s in a truecolour foreground escape.
func Colorize(s string, col colorful.Color) string {
	r, g, b := col.RGB255()
	return fmt.Sprintf("\033[38;2;%d;%d;%dm%s%s", r, g, b, s, ResetStyle)
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
