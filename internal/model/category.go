package model

import "fmt"

// Color is an RGB triple, stored in the database as "#RRGGBB".
type Color struct {
	R, G, B uint8
}

// ParseColor parses a "#RRGGBB" hex string.
func ParseColor(s string) (Color, error) {
	var c Color
	if len(s) != 7 || s[0] != '#' {
		return c, fmt.Errorf("invalid color %q: want #RRGGBB", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}

// Hex renders the color as "#RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Category tags events. Categories are created and edited by the category
// manager; the event editor only consumes them.
type Category struct {
	ID    string
	Name  string
	Color Color
}

// Equals reports structural equality: same name and color. Identity and list
// position are deliberately ignored so a category can be re-located in a
// refreshed list after a rename or recolor elsewhere.
func (c Category) Equals(other Category) bool {
	return c.Name == other.Name && c.Color == other.Color
}

// DefaultCategory returns the seeded fallback category. The store guarantees
// it always enumerates at least this one.
func DefaultCategory() Category {
	return Category{
		ID:    "default",
		Name:  "Default",
		Color: Color{R: 0x6C, G: 0x75, B: 0x7D},
	}
}
