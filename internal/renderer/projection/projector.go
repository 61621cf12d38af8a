package projection

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"furniture-studio/internal/renderer/view"
)

// ============================================================
// Screen primitives
// ============================================================

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ============================================================
// Projector
// ============================================================

// Projector переводит точку комнаты (в пикселях, от центра комнаты; z от пола)
// в экранные координаты. Это косоугольная проекция: поворот по азимуту,
// сжатие повернутой оси Y синусом возвышения, высота вычитается из Y без искажения.
type Projector struct {
	rotation  mgl64.Mat2
	cos       float64
	sin       float64
	elevation float64
	origin    Point
}

// New строит проектор для снимка вида и экранного центра комнаты.
func New(vp view.Viewpoint, origin Point) *Projector {
	vp = vp.Normalize()
	theta := mgl64.DegToRad(vp.Azimuth)
	return &Projector{
		rotation:  mgl64.Rotate2D(theta),
		cos:       math.Cos(theta),
		sin:       math.Sin(theta),
		elevation: math.Sin(mgl64.DegToRad(vp.Elevation)),
		origin:    origin,
	}
}

// Project проецирует точку; округление только на последнем шаге.
func (p *Projector) Project(x, y, z float64) Point {
	r := p.rotation.Mul2x1(mgl64.Vec2{x, y})
	return Point{
		X: p.origin.X + round(r.X()),
		Y: p.origin.Y + round(r.Y()*p.elevation-z),
	}
}

// Cos и Sin отдают знаковые компоненты азимута для проверок видимости.
func (p *Projector) Cos() float64 { return p.cos }
func (p *Projector) Sin() float64 { return p.sin }

// ElevationFactor возвращает sin угла возвышения.
func (p *Projector) ElevationFactor() float64 { return p.elevation }

func (p *Projector) Origin() Point { return p.origin }

// Project проецирует одну точку без построения Projector.
func Project(x, y, z float64, vp view.Viewpoint, origin Point) Point {
	return New(vp, origin).Project(x, y, z)
}

func round(v float64) int {
	return int(math.Round(v))
}
