package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ============================================================
// Furniture Types
// ============================================================

type FurnitureType string

const (
	Chair   FurnitureType = "Chair"
	Table   FurnitureType = "Table"
	Sofa    FurnitureType = "Sofa"
	Bed     FurnitureType = "Bed"
	Cabinet FurnitureType = "Cabinet"
)

// FurnitureDefaults задает габариты и цвет, которые получает новый предмет.
type FurnitureDefaults struct {
	Width  float64
	Depth  float64
	Height float64
	Color  Color
}

var furnitureDefaults = map[FurnitureType]FurnitureDefaults{
	Chair:   {Width: 0.5, Depth: 0.5, Height: 0.9, Color: Color{R: 139, G: 69, B: 19}},
	Table:   {Width: 1.2, Depth: 0.8, Height: 0.75, Color: Color{R: 101, G: 67, B: 33}},
	Sofa:    {Width: 2.0, Depth: 0.9, Height: 0.8, Color: Color{R: 72, G: 61, B: 139}},
	Bed:     {Width: 1.6, Depth: 2.0, Height: 0.5, Color: Color{R: 255, G: 250, B: 240}},
	Cabinet: {Width: 1.0, Depth: 0.5, Height: 1.8, Color: Color{R: 222, G: 184, B: 135}},
}

// FurnitureTypes возвращает все известные типы в порядке каталога.
func FurnitureTypes() []FurnitureType {
	return []FurnitureType{Chair, Table, Sofa, Bed, Cabinet}
}

// DefaultsFor возвращает значения по умолчанию для типа.
func DefaultsFor(t FurnitureType) (FurnitureDefaults, bool) {
	d, ok := furnitureDefaults[t]
	return d, ok
}

// ParseFurnitureType разбирает имя типа без учета регистра.
func ParseFurnitureType(s string) (FurnitureType, error) {
	for _, t := range FurnitureTypes() {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown furniture type %q", s)
}

func (t FurnitureType) String() string {
	return string(t)
}

// ============================================================
// Furniture Item
// ============================================================

type FurnitureItem struct {
	ID            string        `json:"id"`
	Type          FurnitureType `json:"type"`
	X             float64       `json:"x"`
	Y             float64       `json:"y"`
	Width         float64       `json:"width"`
	Depth         float64       `json:"depth"`
	Height        float64       `json:"height"`
	Color         Color         `json:"color"`
	RotationAngle float64       `json:"rotation"` // degrees
}

// NewFurnitureItem создает предмет в точке (x, y) с габаритами и цветом из таблицы типов.
func NewFurnitureItem(t FurnitureType, x, y float64) FurnitureItem {
	d := furnitureDefaults[t]
	return FurnitureItem{
		ID:     uuid.NewString(),
		Type:   t,
		X:      x,
		Y:      y,
		Width:  d.Width,
		Depth:  d.Depth,
		Height: d.Height,
		Color:  d.Color,
	}
}
