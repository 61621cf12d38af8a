package surface

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"furniture-studio/internal/renderer/compositor"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
)

// ParseFormat разбирает ?format=; пустое значение означает json.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatSVG, FormatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q", s)
	}
}

// Encode исполняет кадр на выбранной поверхности и возвращает тело ответа с его типом.
func Encode(format Format, frame compositor.Frame) ([]byte, string, error) {
	switch format {
	case FormatSVG:
		return []byte(SVG(frame)), "image/svg+xml", nil
	case FormatPNG:
		var buf bytes.Buffer
		if err := PNG(&buf, frame); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/png", nil
	case FormatJSON, "":
		if frame.Commands == nil {
			frame.Commands = []compositor.Command{}
		}
		data, err := json.Marshal(frame)
		if err != nil {
			return nil, "", fmt.Errorf("encode frame: %w", err)
		}
		return data, "application/json", nil
	default:
		return nil, "", fmt.Errorf("unsupported format %q", format)
	}
}
