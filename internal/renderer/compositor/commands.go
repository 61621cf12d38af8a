package compositor

import (
	"furniture-studio/internal/renderer/projection"
	"furniture-studio/internal/studio/models"
)

// ============================================================
// Draw commands
// ============================================================

type Kind string

const (
	FillPolygon   Kind = "fill_polygon"
	StrokePolygon Kind = "stroke_polygon"
	DrawLine      Kind = "line"
	DrawText      Kind = "text"
)

// Layer группирует команды: оболочка комнаты, мебель, служебный текст.
type Layer string

const (
	LayerShell   Layer = "shell"
	LayerItem    Layer = "item"
	LayerOverlay Layer = "overlay"
)

// Command описывает одну операцию для внешней 2D поверхности. Поверхность исполняет
// команды строго по порядку: поздние перекрывают ранние.
type Command struct {
	Kind     Kind               `json:"kind"`
	Points   []projection.Point `json:"points,omitempty"`
	From     *projection.Point  `json:"from,omitempty"`
	To       *projection.Point  `json:"to,omitempty"`
	Position *projection.Point  `json:"position,omitempty"`
	Color    models.Color       `json:"color"`
	Width    float64            `json:"width,omitempty"`
	Text     string             `json:"text,omitempty"`
	FontSize int                `json:"font_size,omitempty"`
	Layer    Layer              `json:"layer"`
	Part     string             `json:"part,omitempty"`
	ItemID   string             `json:"item_id,omitempty"`
}

// MaxSide ограничивает каждую сторону поверхности в пикселях.
const MaxSide = 4096

// Size задает размер поверхности в пикселях.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Fits сообщает, что ни одна сторона не превышает MaxSide.
func (s Size) Fits() bool {
	return s.Width <= MaxSide && s.Height <= MaxSide
}

// Frame хранит упорядоченный список команд одного кадра.
type Frame struct {
	Width    int       `json:"width"`
	Height   int       `json:"height"`
	Commands []Command `json:"commands"`
}

// ============================================================
// Builder
// ============================================================

type builder struct {
	cmds  []Command
	layer Layer
	part  string
	item  string
}

func (b *builder) at(layer Layer, part, itemID string) *builder {
	b.layer, b.part, b.item = layer, part, itemID
	return b
}

func (b *builder) fill(points []projection.Point, c models.Color) {
	b.push(Command{Kind: FillPolygon, Points: points, Color: c})
}

func (b *builder) stroke(points []projection.Point, c models.Color, width float64) {
	b.push(Command{Kind: StrokePolygon, Points: points, Color: c, Width: width})
}

func (b *builder) line(from, to projection.Point, c models.Color, width float64) {
	b.push(Command{Kind: DrawLine, From: &from, To: &to, Color: c, Width: width})
}

func (b *builder) text(s string, pos projection.Point, c models.Color, size int) {
	b.push(Command{Kind: DrawText, Text: s, Position: &pos, Color: c, FontSize: size})
}

func (b *builder) push(cmd Command) {
	cmd.Layer = b.layer
	cmd.Part = b.part
	cmd.ItemID = b.item
	b.cmds = append(b.cmds, cmd)
}
