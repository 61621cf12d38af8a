package surface

import (
	"bytes"
	"image/png"
	"runtime"
	"strings"
	"testing"

	"furniture-studio/internal/renderer/compositor"
	"furniture-studio/internal/renderer/projection"
	"furniture-studio/internal/renderer/view"
	"furniture-studio/internal/studio/models"
)

var screen = compositor.Size{Width: 800, Height: 600}

func TestSVGExecutesCommandsInOrder(t *testing.T) {
	room := models.NewRoom(5, 6, 2.5)
	items := []models.FurnitureItem{models.NewFurnitureItem(models.Chair, 1, 1)}
	frame := compositor.RenderFrame(room, items, view.Default(), screen)

	svg := SVG(frame)
	if !strings.HasPrefix(svg, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Fatalf("missing xml header: %q", svg[:40])
	}
	if !strings.Contains(svg, `width="800" height="600"`) {
		t.Fatalf("missing size attributes")
	}
	if !strings.Contains(svg, `fill="#e6e6fa"`) {
		t.Fatalf("missing lavender background")
	}

	floor := strings.Index(svg, `fill="#d2b48c"`)
	label := strings.Index(svg, `>Chair</text>`)
	if floor < 0 || label < 0 || floor > label {
		t.Fatalf("floor at %d, label at %d", floor, label)
	}

	// каждая команда дает ровно один элемент, плюс фон
	lines := strings.Count(svg, "\n  <")
	if lines != len(frame.Commands)+1 {
		t.Fatalf("got %d elements for %d commands", lines, len(frame.Commands))
	}
}

func TestSVGEscapesText(t *testing.T) {
	frame := compositor.Frame{
		Width:  100,
		Height: 100,
		Commands: []compositor.Command{{
			Kind:     compositor.DrawText,
			Text:     "<b>&",
			Position: &projection.Point{X: 1, Y: 2},
			FontSize: 10,
		}},
	}
	svg := SVG(frame)
	if !strings.Contains(svg, "&lt;b&gt;&amp;") {
		t.Fatalf("text not escaped: %s", svg)
	}
}

func TestSVGPlaceholder(t *testing.T) {
	svg := SVG(compositor.RenderFrame(nil, nil, view.Default(), screen))
	if !strings.Contains(svg, compositor.PlaceholderText) {
		t.Fatalf("placeholder missing: %s", svg)
	}
	if !strings.Contains(svg, `fill="#808080"`) {
		t.Fatalf("placeholder must be gray")
	}
}

func TestPNGDecodesWithFrameSize(t *testing.T) {
	frame := compositor.RenderFrame(models.NewRoom(5, 6, 2.5), nil, view.Default(), screen)

	var buf bytes.Buffer
	if err := PNG(&buf, frame); err != nil {
		t.Fatalf("PNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 600 {
		t.Fatalf("bounds = %v", b)
	}
}

func TestRasterizeFillsFloorAndBackground(t *testing.T) {
	frame := compositor.RenderFrame(models.NewRoom(5, 6, 2.5), nil, view.Default(), screen)
	img := Rasterize(frame)

	if got := img.RGBAAt(400, 300); got.R != 210 || got.G != 180 || got.B != 140 {
		t.Fatalf("floor center = %+v, want light oak", got)
	}
	if got := img.RGBAAt(2, 2); got.R != 230 || got.G != 230 || got.B != 250 {
		t.Fatalf("corner = %+v, want lavender", got)
	}
}

func TestRasterizeZeroFrame(t *testing.T) {
	img := Rasterize(compositor.Frame{})
	if b := img.Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Fatalf("bounds = %v, want 1x1", b)
	}
}

func TestRasterizeClampsOversizedFrame(t *testing.T) {
	frame := compositor.Frame{Width: 3_000_000, Height: 20, Commands: []compositor.Command{{
		Kind:   compositor.FillPolygon,
		Points: []projection.Point{{X: 0, Y: 0}, {X: 3_000_000, Y: 0}, {X: 3_000_000, Y: 20}, {X: 0, Y: 20}},
		Color:  models.Black,
	}}}
	img := Rasterize(frame)
	if b := img.Bounds(); b.Dx() != compositor.MaxSide || b.Dy() != 20 {
		t.Fatalf("bounds = %v, want %dx20", b, compositor.MaxSide)
	}
	if got := img.RGBAAt(compositor.MaxSide-1, 10); got.R != 0 || got.G != 0 || got.B != 0 {
		t.Fatalf("last column = %+v, want black", got)
	}
}

func TestRasterizeClipsShapesToImage(t *testing.T) {
	frame := compositor.Frame{Width: 100, Height: 100, Commands: []compositor.Command{
		{
			Kind:   compositor.FillPolygon,
			Points: []projection.Point{{X: -50, Y: -50}, {X: 20, Y: -50}, {X: 20, Y: 20}, {X: -50, Y: 20}},
			Color:  models.Black,
		},
		{
			Kind:  compositor.DrawLine,
			From:  &projection.Point{X: 40, Y: 60},
			To:    &projection.Point{X: 90, Y: 60},
			Color: models.White,
			Width: 1,
		},
	}}
	img := Rasterize(frame)

	tests := []struct {
		name    string
		x, y    int
		r, g, b uint8
	}{
		{"inside clipped fill", 5, 5, 0, 0, 0},
		{"fill edge", 19, 19, 0, 0, 0},
		{"outside fill", 30, 30, 230, 230, 250},
		{"on line", 65, 60, 255, 255, 255},
		{"below line", 65, 62, 230, 230, 250},
		{"past line end", 95, 60, 230, 230, 250},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := img.RGBAAt(tt.x, tt.y)
			if got.R != tt.r || got.G != tt.g || got.B != tt.b {
				t.Fatalf("(%d,%d) = %+v, want (%d,%d,%d)", tt.x, tt.y, got, tt.r, tt.g, tt.b)
			}
		})
	}
}

func TestRasterizeAllocationsStayFrameSized(t *testing.T) {
	room := models.NewRoom(5, 6, 2.5)
	var items []models.FurnitureItem
	for i := 0; i < 4; i++ {
		items = append(items, models.NewFurnitureItem(models.Chair, float64(i), float64(i)))
	}
	frame := compositor.RenderFrame(room, items, view.Default(), compositor.Size{Width: 1920, Height: 1080})

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	Rasterize(frame)
	runtime.ReadMemStats(&after)

	// само изображение 1920x1080 RGBA весит около 8 MB
	if got := after.TotalAlloc - before.TotalAlloc; got > 32<<20 {
		t.Fatalf("allocated %d MB for %d commands", got>>20, len(frame.Commands))
	}
}
