package visibility

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"furniture-studio/internal/studio/models"
)

// ============================================================
// Painter's order
// ============================================================

type keyed struct {
	item  models.FurnitureItem
	depth float64
}

// Depth проецирует неповернутую позицию предмета на направление взгляда.
// Высота и габариты не учитываются: высокие предметы рядом могут перекрываться неверно.
func Depth(item models.FurnitureItem, cos, sin float64) float64 {
	return item.X*cos + item.Y*sin
}

// SortBackToFront возвращает новый список от дальних к ближним (по убыванию глубины).
// Равные глубины сохраняют исходный порядок; входной срез не меняется.
func SortBackToFront(items []models.FurnitureItem, cos, sin float64) []models.FurnitureItem {
	snapshot := make([]keyed, len(items))
	for i, item := range items {
		snapshot[i] = keyed{item: item, depth: Depth(item, cos, sin)}
	}

	sort.SliceStable(snapshot, func(i, j int) bool {
		return snapshot[i].depth > snapshot[j].depth
	})

	out := make([]models.FurnitureItem, len(snapshot))
	for i, k := range snapshot {
		out[i] = k.item
	}
	return out
}

// ============================================================
// Footprint
// ============================================================

// swapThreshold: при |sin(rot)| выше порога ширина и глубина меняются местами.
// Это приближение вместо честной повернутой коробки.
const swapThreshold = 0.7

// Footprint описывает коробку предмета в координатах от центра комнаты (метры).
type Footprint struct {
	X      float64
	Y      float64
	Width  float64
	Depth  float64
	Height float64
}

// FootprintOf переводит предмет в координаты от центра комнаты и применяет поворот:
// опорный угол поворачивается вокруг центра основания, а близкие к 90/270 градусам
// повороты меняют ширину и глубину местами.
func FootprintOf(item models.FurnitureItem, roomWidth, roomLength float64) Footprint {
	f := Footprint{
		X:      item.X - roomWidth/2,
		Y:      item.Y - roomLength/2,
		Width:  item.Width,
		Depth:  item.Depth,
		Height: item.Height,
	}

	if item.RotationAngle == 0 {
		return f
	}

	rad := mgl64.DegToRad(item.RotationAngle)
	cosRot := math.Cos(rad)
	sinRot := math.Sin(rad)

	cx := f.X + f.Width/2
	cy := f.Y + f.Depth/2
	f.X = cx - f.Width/2*cosRot + f.Depth/2*sinRot
	f.Y = cy - f.Width/2*sinRot - f.Depth/2*cosRot

	if SwapsExtent(item.RotationAngle) {
		f.Width, f.Depth = f.Depth, f.Width
	}
	return f
}

// SwapsExtent сообщает, меняет ли поворот ширину и глубину местами.
func SwapsExtent(rotationDeg float64) bool {
	return math.Abs(math.Sin(mgl64.DegToRad(rotationDeg))) > swapThreshold
}

// Scale переводит коробку в пиксели.
func (f Footprint) Scale(zoom float64) Footprint {
	return Footprint{
		X:      f.X * zoom,
		Y:      f.Y * zoom,
		Width:  f.Width * zoom,
		Depth:  f.Depth * zoom,
		Height: f.Height * zoom,
	}
}
