package shading

import "furniture-studio/internal/studio/models"

// ============================================================
// Face Roles
// ============================================================

// FaceRole обозначает сторону коробки, которую представляет полигон.
type FaceRole string

const (
	Top   FaceRole = "top"
	Front FaceRole = "front"
	Back  FaceRole = "back"
	Left  FaceRole = "left"
	Right FaceRole = "right"
)

// ============================================================
// Shader
// ============================================================

// Фиксированные множители имитируют свет сверху-спереди.
var darkening = map[FaceRole]float64{
	Top:   1.0,
	Front: 0.8,
	Back:  0.8,
	Left:  0.6,
	Right: 0.4,
}

// Factor возвращает множитель затемнения для стороны (1.0 для неизвестной).
func Factor(role FaceRole) float64 {
	if f, ok := darkening[role]; ok {
		return f
	}
	return 1.0
}

// Shade затемняет базовый цвет поканально с усечением до целого и ограничением [0, 255].
func Shade(base models.Color, role FaceRole) models.Color {
	f := Factor(role)
	return models.Color{
		R: scale(base.R, f),
		G: scale(base.G, f),
		B: scale(base.B, f),
	}
}

func scale(c uint8, f float64) uint8 {
	v := int(float64(c) * f)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
