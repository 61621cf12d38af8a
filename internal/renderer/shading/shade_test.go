package shading

import (
	"testing"

	"furniture-studio/internal/studio/models"
)

func TestShadeTopIsIdentity(t *testing.T) {
	for _, c := range sampleColors() {
		if got := Shade(c, Top); got != c {
			t.Fatalf("Shade(%+v, top) = %+v", c, got)
		}
	}
}

func TestShadeFactors(t *testing.T) {
	base := models.Color{R: 200, G: 100, B: 50}

	tests := []struct {
		role FaceRole
		want models.Color
	}{
		{Front, models.Color{R: 160, G: 80, B: 40}},
		{Back, models.Color{R: 160, G: 80, B: 40}},
		{Left, models.Color{R: 120, G: 60, B: 30}},
		{Right, models.Color{R: 80, G: 40, B: 20}},
	}

	for _, tt := range tests {
		if got := Shade(base, tt.role); got != tt.want {
			t.Errorf("Shade(%s) = %+v, want %+v", tt.role, got, tt.want)
		}
	}
}

func TestShadeMonotonic(t *testing.T) {
	order := []FaceRole{Top, Front, Left, Right}

	for _, c := range sampleColors() {
		prev := Shade(c, order[0])
		for _, role := range order[1:] {
			cur := Shade(c, role)
			if cur.R > prev.R || cur.G > prev.G || cur.B > prev.B {
				t.Fatalf("%+v: %s shade %+v brighter than previous %+v", c, role, cur, prev)
			}
			prev = cur
		}
	}
}

func TestShadeTruncates(t *testing.T) {
	// 139 * 0.6 = 83.4, 69 * 0.4 = 27.6
	chair := models.Color{R: 139, G: 69, B: 19}
	if got := Shade(chair, Left).R; got != 83 {
		t.Fatalf("left R = %d, want 83", got)
	}
	if got := Shade(chair, Right).G; got != 27 {
		t.Fatalf("right G = %d, want 27", got)
	}
}

func sampleColors() []models.Color {
	var out []models.Color
	for r := 0; r <= 255; r += 51 {
		for g := 0; g <= 255; g += 85 {
			for b := 0; b <= 255; b += 17 {
				out = append(out, models.Color{R: uint8(r), G: uint8(g), B: uint8(b)})
			}
		}
	}
	return out
}
