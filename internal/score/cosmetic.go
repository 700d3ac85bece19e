package score

import (
	"strings"

	"github.com/tomz197/invaders/internal/errors"
)

// Cosmetic is a projectile colour.
type Cosmetic string

// CosmeticDefault is used when nothing (or something unknown) is equipped.
const CosmeticDefault Cosmetic = "white"

// Purchasable colours.
const (
	CosmeticRed    Cosmetic = "red"
	CosmeticOrange Cosmetic = "orange"
	CosmeticYellow Cosmetic = "yellow"
	CosmeticGreen  Cosmetic = "green"
	CosmeticBlue   Cosmetic = "blue"
	CosmeticIndigo Cosmetic = "indigo"
	CosmeticViolet Cosmetic = "violet"
)

// Palette lists the colours that can be equipped, in rainbow order.
var Palette = []Cosmetic{
	CosmeticRed,
	CosmeticOrange,
	CosmeticYellow,
	CosmeticGreen,
	CosmeticBlue,
	CosmeticIndigo,
	CosmeticViolet,
}

// Valid reports whether c is the default or in the palette.
func (c Cosmetic) Valid() bool {
	if c == CosmeticDefault {
		return true
	}
	for _, p := range Palette {
		if c == p {
			return true
		}
	}
	return false
}

// ParseCosmetic accepts a colour name in any case.
func ParseCosmetic(s string) (Cosmetic, error) {
	c := Cosmetic(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", errors.InvalidArgumentf("unknown cosmetic %q", s)
	}
	return c, nil
}
