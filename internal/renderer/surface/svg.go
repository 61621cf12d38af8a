package surface

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"furniture-studio/internal/renderer/compositor"
	"furniture-studio/internal/renderer/projection"
	"furniture-studio/internal/studio/models"
)

// ============================================================
// SVG surface
// ============================================================

// Background задает цвет фона кадра.
var Background = models.Lavender

// SVG исполняет команды кадра и собирает SVG документ.
func SVG(frame compositor.Frame) string {
	width, height := frame.Width, frame.Height
	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		width, height, width, height))
	builder.WriteString("\n")
	builder.WriteString(fmt.Sprintf(`  <rect x="0" y="0" width="%d" height="%d" fill="%s" />`, width, height, fill(Background)))
	builder.WriteString("\n")

	for _, cmd := range frame.Commands {
		elem := svgElement(cmd)
		if elem == "" {
			continue
		}
		builder.WriteString("  ")
		builder.WriteString(elem)
		builder.WriteString("\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String()
}

func svgElement(cmd compositor.Command) string {
	switch cmd.Kind {
	case compositor.FillPolygon:
		if len(cmd.Points) < 3 {
			return ""
		}
		return fmt.Sprintf(`<polygon points="%s" fill="%s" />`, formatPoints(cmd.Points), fill(cmd.Color))
	case compositor.StrokePolygon:
		if len(cmd.Points) < 2 {
			return ""
		}
		return fmt.Sprintf(`<polygon points="%s" fill="none" stroke="%s" stroke-width="%s" />`,
			formatPoints(cmd.Points), fill(cmd.Color), formatFloat(strokeWidth(cmd.Width)))
	case compositor.DrawLine:
		if cmd.From == nil || cmd.To == nil {
			return ""
		}
		return fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="%s" />`,
			cmd.From.X, cmd.From.Y, cmd.To.X, cmd.To.Y, fill(cmd.Color), formatFloat(strokeWidth(cmd.Width)))
	case compositor.DrawText:
		if cmd.Position == nil || cmd.Text == "" {
			return ""
		}
		anchor := "start"
		if cmd.Part == "label" {
			anchor = "middle"
		}
		return fmt.Sprintf(`<text x="%d" y="%d" font-family="monospace" font-size="%d" text-anchor="%s" fill="%s">%s</text>`,
			cmd.Position.X, cmd.Position.Y, cmd.FontSize, anchor, fill(cmd.Color), html.EscapeString(cmd.Text))
	default:
		return ""
	}
}

// ============================================================
// Formatting helpers
// ============================================================

func strokeWidth(w float64) float64 {
	if w <= 0 {
		return 1
	}
	return w
}

func fill(c models.Color) string {
	return c.Hex()
}

func formatPoints(points []projection.Point) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y)
	}
	return strings.Join(parts, " ")
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}
