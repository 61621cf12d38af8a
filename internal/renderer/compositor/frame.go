package compositor

import (
	"math"

	"furniture-studio/internal/renderer/projection"
	"furniture-studio/internal/renderer/shading"
	"furniture-studio/internal/renderer/view"
	"furniture-studio/internal/renderer/visibility"
	"furniture-studio/internal/studio/models"
)

// ============================================================
// Frame Compositor
// ============================================================

const (
	PlaceholderText = "No design loaded. Create or open a design."
	ControlsHint    = "Drag to rotate view | +/- to zoom | Arrow keys to adjust elevation"

	placeholderFontSize = 16
	labelFontSize       = 10
	hintFontSize        = 12
	outlineWidth        = 1.0
)

type options struct {
	controlsHint bool
}

type Option func(*options)

// WithControlsHint добавляет в конец кадра строку-подсказку по управлению видом.
func WithControlsHint() Option {
	return func(o *options) { o.controlsHint = true }
}

// RenderFrame строит упорядоченный список команд для одного кадра.
// Чистая функция: комната и список мебели не изменяются, сортировка идет по копии.
func RenderFrame(room *models.Room, items []models.FurnitureItem, vp view.Viewpoint, screen Size, opts ...Option) Frame {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	frame := Frame{Width: screen.Width, Height: screen.Height}
	b := &builder{}

	switch {
	case room == nil:
		placeholder(b, screen)
	case screen.Width <= 0 || screen.Height <= 0 || !room.Valid():
		frame.Commands = []Command{}
		return frame
	default:
		renderScene(b, room, items, vp.Normalize(), screen)
	}

	if o.controlsHint {
		b.at(LayerOverlay, "hint", "").text(ControlsHint, projection.Point{X: 10, Y: screen.Height - 10}, models.DarkGray, hintFontSize)
	}

	frame.Commands = b.cmds
	return frame
}

func placeholder(b *builder, screen Size) {
	w := TextWidth(PlaceholderText, placeholderFontSize)
	pos := projection.Point{X: (screen.Width - w) / 2, Y: screen.Height / 2}
	b.at(LayerOverlay, "placeholder", "").text(PlaceholderText, pos, models.Gray, placeholderFontSize)
}

func renderScene(b *builder, room *models.Room, items []models.FurnitureItem, vp view.Viewpoint, screen Size) {
	p := projection.New(vp, projection.Point{X: screen.Width / 2, Y: screen.Height / 2})
	cos, sin := p.Cos(), p.Sin()

	shell := visibility.ProjectShell(p, room, vp.Zoom)
	walls := visibility.Walls(cos, sin).VisibleWalls()

	// Все заливки оболочки идут раньше контуров.
	b.at(LayerShell, "floor", "").fill(shell.Floor(), room.FloorColor)
	for _, w := range walls {
		b.at(LayerShell, "wall:"+string(w), "").fill(shell.Wall(w), room.WallColor)
	}

	b.at(LayerShell, "floor", "").stroke(shell.Floor(), models.Black, outlineWidth)
	for _, w := range walls {
		poly := shell.Wall(w)
		b.at(LayerShell, "wall:"+string(w), "")
		for i := range poly {
			b.line(poly[i], poly[(i+1)%len(poly)], models.Black, outlineWidth)
		}
	}

	for _, item := range visibility.SortBackToFront(items, cos, sin) {
		if !drawable(item) {
			continue
		}
		renderItem(b, p, room, item, vp.Zoom)
	}
}

func renderItem(b *builder, p *projection.Projector, room *models.Room, item models.FurnitureItem, zoom float64) {
	fp := visibility.FootprintOf(item, room.Width, room.Length).Scale(zoom)
	box := visibility.ProjectBox(p, fp.X, fp.Y, fp.Width, fp.Depth, fp.Height)
	faces := visibility.Faces(p.Cos(), p.Sin())

	for _, role := range faces {
		b.at(LayerItem, string(role), item.ID).fill(box.Face(role), shading.Shade(item.Color, role))
	}

	b.at(LayerItem, string(shading.Top), item.ID).stroke(box.Face(shading.Top), models.Black, outlineWidth)
	b.at(LayerItem, "edge", item.ID)
	for i := 0; i < 4; i++ {
		b.line(box.Bottom(i), box.TopCorner(i), models.Black, outlineWidth)
	}
	for _, role := range faces {
		if role == shading.Top {
			continue
		}
		b.at(LayerItem, string(role), item.ID).stroke(box.Face(role), models.Black, outlineWidth)
	}

	b.at(LayerItem, "label", item.ID).text(item.Type.String(), box.TopCenter(), models.Black, labelFontSize)
}

// drawable отсекает предметы с нечисловыми координатами или размерами.
func drawable(item models.FurnitureItem) bool {
	for _, v := range []float64{item.X, item.Y, item.Width, item.Depth, item.Height, item.RotationAngle} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
