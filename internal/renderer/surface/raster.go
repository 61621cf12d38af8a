package surface

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"furniture-studio/internal/renderer/compositor"
	"furniture-studio/internal/renderer/projection"
	"furniture-studio/internal/studio/models"
)

// ============================================================
// Raster surface
// ============================================================

// Rasterize исполняет команды кадра на RGBA изображении.
// Кадр нулевого размера дает изображение 1x1 с фоном, стороны больше
// compositor.MaxSide обрезаются до MaxSide.
func Rasterize(frame compositor.Frame) *image.RGBA {
	width, height := frame.Width, frame.Height
	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}
	width = min(width, compositor.MaxSide)
	height = min(height, compositor.MaxSide)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(rgba(Background)), image.Point{}, draw.Src)

	r := &rasterSurface{img: img, z: vector.NewRasterizer(0, 0)}
	for _, cmd := range frame.Commands {
		r.exec(cmd)
	}
	return img
}

// PNG кодирует кадр в PNG.
func PNG(w io.Writer, frame compositor.Frame) error {
	if err := png.Encode(w, Rasterize(frame)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// rasterSurface растеризует каждую фигуру только в пределах ее рамки:
// растеризатор и буфер маски общие на весь кадр.
type rasterSurface struct {
	img  *image.RGBA
	z    *vector.Rasterizer
	mask []uint8
}

func (r *rasterSurface) exec(cmd compositor.Command) {
	switch cmd.Kind {
	case compositor.FillPolygon:
		r.fillPolygon(cmd.Points, cmd.Color)
	case compositor.StrokePolygon:
		for i := range cmd.Points {
			r.line(cmd.Points[i], cmd.Points[(i+1)%len(cmd.Points)], cmd.Color, strokeWidth(cmd.Width))
		}
	case compositor.DrawLine:
		if cmd.From != nil && cmd.To != nil {
			r.line(*cmd.From, *cmd.To, cmd.Color, strokeWidth(cmd.Width))
		}
	case compositor.DrawText:
		if cmd.Position != nil {
			r.text(cmd.Text, *cmd.Position, cmd.Color, cmd.Part == "label")
		}
	}
}

func (r *rasterSurface) fillPolygon(points []projection.Point, c models.Color) {
	if len(points) < 3 {
		return
	}
	path := make([]vertex, len(points))
	for i, p := range points {
		path[i] = vertex{float32(p.X), float32(p.Y)}
	}
	r.fill(path, c)
}

// line рисует отрезок как узкий четырехугольник шириной width.
func (r *rasterSurface) line(from, to projection.Point, c models.Color, width float64) {
	dx := float64(to.X - from.X)
	dy := float64(to.Y - from.Y)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	nx := float32(-dy / length * width / 2)
	ny := float32(dx / length * width / 2)

	x0, y0 := float32(from.X)+0.5, float32(from.Y)+0.5
	x1, y1 := float32(to.X)+0.5, float32(to.Y)+0.5

	r.fill([]vertex{
		{x0 + nx, y0 + ny},
		{x1 + nx, y1 + ny},
		{x1 - nx, y1 - ny},
		{x0 - nx, y0 - ny},
	}, c)
}

type vertex struct{ x, y float32 }

// fill закрашивает замкнутый контур: маска строится в рамке контура,
// обрезанной по изображению, и накладывается со смещением.
func (r *rasterSurface) fill(path []vertex, c models.Color) {
	minX, minY := path[0].x, path[0].y
	maxX, maxY := minX, minY
	for _, v := range path[1:] {
		minX, maxX = min(minX, v.x), max(maxX, v.x)
		minY, maxY = min(minY, v.y), max(maxY, v.y)
	}
	rect := image.Rect(
		int(math.Floor(float64(minX))), int(math.Floor(float64(minY))),
		int(math.Ceil(float64(maxX))), int(math.Ceil(float64(maxY))),
	).Intersect(r.img.Bounds())
	if rect.Empty() {
		return
	}

	w, h := rect.Dx(), rect.Dy()
	ox, oy := float32(rect.Min.X), float32(rect.Min.Y)

	r.z.Reset(w, h)
	r.z.DrawOp = draw.Src
	r.z.MoveTo(path[0].x-ox, path[0].y-oy)
	for _, v := range path[1:] {
		r.z.LineTo(v.x-ox, v.y-oy)
	}
	r.z.ClosePath()

	mask := r.alphaMask(w, h)
	r.z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	draw.DrawMask(r.img, rect, image.NewUniform(rgba(c)), image.Point{}, mask, image.Point{}, draw.Over)
}

// alphaMask отдает маску w x h поверх общего буфера.
func (r *rasterSurface) alphaMask(w, h int) *image.Alpha {
	n := w * h
	if cap(r.mask) < n {
		r.mask = make([]uint8, n)
	}
	return &image.Alpha{Pix: r.mask[:n], Stride: w, Rect: image.Rect(0, 0, w, h)}
}

func (r *rasterSurface) text(s string, pos projection.Point, c models.Color, centered bool) {
	if s == "" {
		return
	}
	face := basicfont.Face7x13
	x := pos.X
	if centered {
		x -= font.MeasureString(face, s).Ceil() / 2
	}
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(rgba(c)),
		Face: face,
		Dot:  fixed.P(x, pos.Y),
	}
	d.DrawString(s)
}

func rgba(c models.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
