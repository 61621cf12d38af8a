package models

import (
	"encoding/json"
	"math"
)

// ============================================================
// Room Model
// ============================================================

// Room описывает размеры комнаты в метрах и цвета стен/пола.
type Room struct {
	Width      float64 `json:"width"`
	Length     float64 `json:"length"`
	Height     float64 `json:"height"`
	WallColor  Color   `json:"wall_color"`
	FloorColor Color   `json:"floor_color"`
}

// NewRoom создает комнату с цветами по умолчанию: белые стены, пол под светлое дерево.
func NewRoom(width, length, height float64) *Room {
	return &Room{
		Width:      width,
		Length:     length,
		Height:     height,
		WallColor:  White,
		FloorColor: LightOak,
	}
}

// UnmarshalJSON подставляет цвета по умолчанию, если они не переданы.
func (r *Room) UnmarshalJSON(data []byte) error {
	type plain Room
	room := plain(*NewRoom(0, 0, 0))
	if err := json.Unmarshal(data, &room); err != nil {
		return err
	}
	*r = Room(room)
	return nil
}

// Valid проверяет, что все размеры положительные и конечные.
func (r *Room) Valid() bool {
	if r == nil {
		return false
	}
	for _, v := range []float64{r.Width, r.Length, r.Height} {
		if !(v > 0) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Contains сообщает, лежит ли прямоугольник (x, y, w, d) внутри пола комнаты.
func (r *Room) Contains(x, y, w, d float64) bool {
	if r == nil {
		return false
	}
	return x >= 0 && y >= 0 && x+w <= r.Width && y+d <= r.Length
}
