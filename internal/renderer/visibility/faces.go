package visibility

import (
	"furniture-studio/internal/renderer/projection"
	"furniture-studio/internal/renderer/shading"
)

// ============================================================
// Wall & face visibility
// ============================================================

// WallSet отмечает стены комнаты, которые рисуются. Передней стены нет:
// комната открыта со стороны зрителя.
type WallSet struct {
	Left  bool
	Right bool
	Back  bool
}

// Walls решает видимость боковых стен по знакам cos/sin азимута.
// Эвристика верна только для осевой коробки, на которую смотрят снаружи.
func Walls(cos, sin float64) WallSet {
	return WallSet{
		Left:  sin > 0,
		Right: cos < 0,
		Back:  true,
	}
}

// fillOrder задает порядок заливки сторон одного предмета.
var fillOrder = []shading.FaceRole{
	shading.Top,
	shading.Front,
	shading.Back,
	shading.Left,
	shading.Right,
}

// FaceVisible: верх и перед всегда, зад никогда, бока по тем же знакам, что и стены.
func FaceVisible(role shading.FaceRole, cos, sin float64) bool {
	switch role {
	case shading.Top, shading.Front:
		return true
	case shading.Left:
		return sin > 0
	case shading.Right:
		return cos < 0
	default:
		return false
	}
}

// Faces возвращает видимые стороны предмета в порядке заливки.
func Faces(cos, sin float64) []shading.FaceRole {
	out := make([]shading.FaceRole, 0, 4)
	for _, role := range fillOrder {
		if FaceVisible(role, cos, sin) {
			out = append(out, role)
		}
	}
	return out
}

// ============================================================
// Box geometry
// ============================================================

// Box хранит восемь спроецированных углов коробки: 0-3 низ, 4-7 верх,
// в одном порядке обхода начиная с опорного угла (x, y).
type Box struct {
	Corners [8]projection.Point
}

// faceCorners задает каждую сторону индексами углов в порядке обхода.
var faceCorners = map[shading.FaceRole][4]int{
	shading.Top:   {4, 5, 6, 7},
	shading.Front: {0, 1, 5, 4},
	shading.Back:  {2, 3, 7, 6},
	shading.Left:  {0, 3, 7, 4},
	shading.Right: {1, 2, 6, 5},
}

// ProjectBox проецирует осевую коробку с опорным углом (x, y) на полу.
// Все величины уже в пикселях.
func ProjectBox(p *projection.Projector, x, y, width, depth, height float64) Box {
	base := [4][2]float64{
		{x, y},
		{x + width, y},
		{x + width, y + depth},
		{x, y + depth},
	}

	var b Box
	for i, c := range base {
		b.Corners[i] = p.Project(c[0], c[1], 0)
		b.Corners[i+4] = p.Project(c[0], c[1], height)
	}
	return b
}

// Face возвращает полигон стороны.
func (b Box) Face(role shading.FaceRole) []projection.Point {
	idx, ok := faceCorners[role]
	if !ok {
		return nil
	}
	return b.pick(idx)
}

// Bottom и TopCorner возвращают i-й угол низа и верха.
func (b Box) Bottom(i int) projection.Point    { return b.Corners[i%4] }
func (b Box) TopCorner(i int) projection.Point { return b.Corners[4+i%4] }

// TopCenter возвращает целочисленное среднее углов верхней грани (точка подписи).
func (b Box) TopCenter() projection.Point {
	var sx, sy int
	for i := 4; i < 8; i++ {
		sx += b.Corners[i].X
		sy += b.Corners[i].Y
	}
	return projection.Point{X: sx / 4, Y: sy / 4}
}

func (b Box) pick(idx [4]int) []projection.Point {
	out := make([]projection.Point, 4)
	for i, k := range idx {
		out[i] = b.Corners[k]
	}
	return out
}
