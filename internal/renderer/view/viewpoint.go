// Package view хранит состояние камеры 3D вида комнаты (азимут, возвышение,
// масштаб) и жесты, меняющие его между кадрами.
package view

import (
	"math"
	"sync"
)

// ============================================================
// Viewpoint
// ============================================================

const (
	DefaultAzimuth   = 45.0
	DefaultElevation = 30.0
	DefaultZoom      = 40.0 // пикселей на метр

	MinElevation = 10.0
	MaxElevation = 80.0
)

// Viewpoint хранит неизменяемый на время кадра снимок состояния камеры.
type Viewpoint struct {
	Azimuth   float64 `json:"azimuth"`
	Elevation float64 `json:"elevation"`
	Zoom      float64 `json:"zoom"`
}

func Default() Viewpoint {
	return Viewpoint{
		Azimuth:   DefaultAzimuth,
		Elevation: DefaultElevation,
		Zoom:      DefaultZoom,
	}
}

// Normalize приводит азимут к [0, 360), ограничивает высоту [10, 80]
// и заменяет некорректные значения значениями по умолчанию.
func (v Viewpoint) Normalize() Viewpoint {
	if !finite(v.Azimuth) {
		v.Azimuth = DefaultAzimuth
	}
	v.Azimuth = math.Mod(v.Azimuth, 360)
	if v.Azimuth < 0 {
		v.Azimuth += 360
	}
	if v.Azimuth >= 360 {
		v.Azimuth = 0
	}

	if !finite(v.Elevation) {
		v.Elevation = DefaultElevation
	}
	v.Elevation = clamp(v.Elevation, MinElevation, MaxElevation)

	if !finite(v.Zoom) || v.Zoom <= 0 {
		v.Zoom = DefaultZoom
	}
	return v
}

// RotateBy поворачивает вид вокруг вертикальной оси.
func (v Viewpoint) RotateBy(deltaDeg float64) Viewpoint {
	v.Azimuth += deltaDeg
	return v.Normalize()
}

// ZoomBy масштабирует вид; неположительный множитель игнорируется.
func (v Viewpoint) ZoomBy(factor float64) Viewpoint {
	if finite(factor) && factor > 0 {
		v.Zoom *= factor
	}
	return v.Normalize()
}

// ElevateBy меняет угол возвышения с ограничением диапазона.
func (v Viewpoint) ElevateBy(deltaDeg float64) Viewpoint {
	v.Elevation += deltaDeg
	return v.Normalize()
}

func (v Viewpoint) Reset() Viewpoint {
	return Default()
}

// ============================================================
// State
// ============================================================

// State хранит текущий вид под одной блокировкой: жесты меняют его
// между кадрами, кадр читает только Snapshot.
type State struct {
	mu sync.Mutex
	vp Viewpoint
}

func NewState(initial Viewpoint) *State {
	return &State{vp: initial.Normalize()}
}

func (s *State) Snapshot() Viewpoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vp
}

// Apply атомарно применяет изменение и возвращает новый вид.
func (s *State) Apply(fn func(Viewpoint) Viewpoint) Viewpoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vp = fn(s.vp).Normalize()
	return s.vp
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
