package view

import "fmt"

// ============================================================
// Gestures
// ============================================================

const (
	ZoomStep      = 1.1
	RotateStep    = 5.0
	ElevationStep = 5.0

	dragPixelsPerDegree = 4.0
)

type Key string

const (
	KeyZoomIn        Key = "zoom_in"
	KeyZoomOut       Key = "zoom_out"
	KeyRotateLeft    Key = "rotate_left"
	KeyRotateRight   Key = "rotate_right"
	KeyElevationUp   Key = "elevation_up"
	KeyElevationDown Key = "elevation_down"
	KeyReset         Key = "reset"
)

var keyActions = map[Key]func(Viewpoint) Viewpoint{
	KeyZoomIn:        func(v Viewpoint) Viewpoint { return v.ZoomBy(ZoomStep) },
	KeyZoomOut:       func(v Viewpoint) Viewpoint { return v.ZoomBy(1 / ZoomStep) },
	KeyRotateLeft:    func(v Viewpoint) Viewpoint { return v.RotateBy(-RotateStep) },
	KeyRotateRight:   func(v Viewpoint) Viewpoint { return v.RotateBy(RotateStep) },
	KeyElevationUp:   func(v Viewpoint) Viewpoint { return v.ElevateBy(ElevationStep) },
	KeyElevationDown: func(v Viewpoint) Viewpoint { return v.ElevateBy(-ElevationStep) },
	KeyReset:         func(v Viewpoint) Viewpoint { return v.Reset() },
}

// ApplyKey применяет клавиатурную команду управления видом.
func (v Viewpoint) ApplyKey(k Key) (Viewpoint, error) {
	action, ok := keyActions[k]
	if !ok {
		return v, fmt.Errorf("unknown view key %q", k)
	}
	return action(v), nil
}

// Drag поворачивает вид на горизонтальное смещение мыши: 4 пикселя на градус.
func (v Viewpoint) Drag(dxPixels float64) Viewpoint {
	return v.RotateBy(dxPixels / dragPixelsPerDegree)
}
