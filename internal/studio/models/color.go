package models

import (
	"fmt"
	"strings"
)

// ============================================================
// Color
// ============================================================

type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

var (
	Black    = Color{R: 0, G: 0, B: 0}
	White    = Color{R: 255, G: 255, B: 255}
	Gray     = Color{R: 128, G: 128, B: 128}
	DarkGray = Color{R: 64, G: 64, B: 64}
	Lavender = Color{R: 230, G: 230, B: 250}
	LightOak = Color{R: 210, G: 180, B: 140}
)

// Hex возвращает цвет в виде #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex разбирает строку вида #rrggbb (решётка необязательна).
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}

	var c Color
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}
