package handlers

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"furniture-studio/internal/renderer/compositor"
	"furniture-studio/internal/renderer/service"
	"furniture-studio/internal/renderer/view"
	"furniture-studio/internal/studio/models"

	"github.com/gofiber/fiber/v3"
)

const sceneBody = `{
	"room": {"width": 5, "length": 6, "height": 2.5,
		"wall_color": {"r": 255, "g": 255, "b": 255},
		"floor_color": {"r": 210, "g": 180, "b": 140}},
	"items": [{"id": "c1", "type": "Chair", "x": 1, "y": 1, "width": 0.5, "depth": 0.5,
		"height": 0.9, "color": {"r": 139, "g": 69, "b": 19}, "rotation": 0}],
	"screen": {"width": 800, "height": 600}
}`

func newApp() *fiber.App {
	app := fiber.New()
	Register(app, NewViewsHandler(service.NewViewSessions()))
	return app
}

func do(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

func TestRenderJSON(t *testing.T) {
	app := newApp()
	resp, data := do(t, app, http.MethodPost, "/render", sceneBody)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, data)
	}

	var frame compositor.Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if frame.Width != 800 || frame.Height != 600 {
		t.Fatalf("frame size = %dx%d", frame.Width, frame.Height)
	}
	// 12 команд оболочки при 45 градусах и 11 команд стула
	if len(frame.Commands) != 23 {
		t.Fatalf("got %d commands, want 23", len(frame.Commands))
	}
	if last := frame.Commands[len(frame.Commands)-1]; last.Text != "Chair" {
		t.Fatalf("last command = %+v, want chair label", last)
	}
}

func TestRenderNullRoom(t *testing.T) {
	app := newApp()
	resp, data := do(t, app, http.MethodPost, "/render", `{"room": null, "screen": {"width": 640, "height": 480}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var frame compositor.Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		t.Fatal(err)
	}
	if len(frame.Commands) != 1 || frame.Commands[0].Text != compositor.PlaceholderText {
		t.Fatalf("commands = %+v", frame.Commands)
	}
}

func TestRenderZeroScreenReturnsEmptyList(t *testing.T) {
	app := newApp()
	body := strings.Replace(sceneBody, `"width": 800, "height": 600`, `"width": 0, "height": 0`, 1)
	_, data := do(t, app, http.MethodPost, "/render", body)
	if !strings.Contains(string(data), `"commands":[]`) {
		t.Fatalf("body = %s", data)
	}
}

func TestRenderFormats(t *testing.T) {
	app := newApp()

	resp, data := do(t, app, http.MethodPost, "/render?format=svg", sceneBody)
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Fatalf("svg content type = %q", ct)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Fatalf("not an svg: %.80s", data)
	}

	resp, data = do(t, app, http.MethodPost, "/render?format=png", sceneBody)
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("png content type = %q", ct)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 600 {
		t.Fatalf("png bounds = %v", b)
	}

	resp, _ = do(t, app, http.MethodPost, "/render?format=gif", sceneBody)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("gif status = %d, want 400", resp.StatusCode)
	}
}

func TestRenderBadRequests(t *testing.T) {
	app := newApp()
	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"broken json", `{"room":`},
		{"huge screen", `{"room": null, "screen": {"width": 3000000, "height": 3000000}}`},
		{"wide screen", `{"room": null, "screen": {"width": 4097, "height": 10}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := do(t, app, http.MethodPost, "/render?format=png", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			if !strings.Contains(string(data), `"error"`) {
				t.Fatalf("body = %s", data)
			}
		})
	}
}

func TestViewSessionFlow(t *testing.T) {
	app := newApp()

	resp, data := do(t, app, http.MethodPost, "/views", "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("open status = %d", resp.StatusCode)
	}
	var opened viewResponse
	if err := json.Unmarshal(data, &opened); err != nil {
		t.Fatal(err)
	}
	if opened.Viewpoint != view.Default() {
		t.Fatalf("initial view = %+v", opened.Viewpoint)
	}

	gestures := []struct {
		body string
		want view.Viewpoint
	}{
		{`{"key": "rotate_right"}`, view.Viewpoint{Azimuth: 50, Elevation: 30, Zoom: 40}},
		{`{"drag_dx": -20}`, view.Viewpoint{Azimuth: 45, Elevation: 30, Zoom: 40}},
		{`{"elevate": 100}`, view.Viewpoint{Azimuth: 45, Elevation: 80, Zoom: 40}},
		{`{"zoom": 2}`, view.Viewpoint{Azimuth: 45, Elevation: 80, Zoom: 80}},
		{`{"key": "reset"}`, view.Default()},
		{`{"rotate": -50}`, view.Viewpoint{Azimuth: 355, Elevation: 30, Zoom: 40}},
	}
	for _, g := range gestures {
		resp, data := do(t, app, http.MethodPost, "/views/"+opened.ID+"/gestures", g.body)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: status %d, body %s", g.body, resp.StatusCode, data)
		}
		var got viewResponse
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatal(err)
		}
		if got.Viewpoint != g.want {
			t.Fatalf("%s: view = %+v, want %+v", g.body, got.Viewpoint, g.want)
		}
	}

	resp, data = do(t, app, http.MethodGet, "/views/"+opened.ID, "")
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(data), `"azimuth":355`) {
		t.Fatalf("get: %d %s", resp.StatusCode, data)
	}

	_, data = do(t, app, http.MethodPost, "/views/"+opened.ID+"/render", `{"room": null, "screen": {"width": 100, "height": 100}}`)
	if !strings.Contains(string(data), compositor.PlaceholderText) {
		t.Fatalf("render: %s", data)
	}

	resp, _ = do(t, app, http.MethodDelete, "/views/"+opened.ID, "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}
	resp, _ = do(t, app, http.MethodGet, "/views/"+opened.ID, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete = %d", resp.StatusCode)
	}
}

func TestViewSessionRenderUsesSessionViewpoint(t *testing.T) {
	app := newApp()
	_, data := do(t, app, http.MethodPost, "/views", `{"azimuth": 0, "elevation": 30, "zoom": 40}`)
	var opened viewResponse
	if err := json.Unmarshal(data, &opened); err != nil {
		t.Fatal(err)
	}

	body := `{"room": {"width": 5, "length": 6, "height": 2.5}, "viewpoint": {"azimuth": 45}, "screen": {"width": 800, "height": 600}}`
	_, data = do(t, app, http.MethodPost, "/views/"+opened.ID+"/render", body)

	var frame compositor.Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		t.Fatal(err)
	}
	// азимут 0 из сессии: только пол и задняя стена
	if len(frame.Commands) != 7 {
		t.Fatalf("got %d commands, want 7", len(frame.Commands))
	}
}

func TestGestureValidation(t *testing.T) {
	app := newApp()
	_, data := do(t, app, http.MethodPost, "/views", "")
	var opened viewResponse
	if err := json.Unmarshal(data, &opened); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{"unknown key", "/views/" + opened.ID + "/gestures", `{"key": "jump"}`, http.StatusBadRequest},
		{"two gestures", "/views/" + opened.ID + "/gestures", `{"rotate": 1, "zoom": 2}`, http.StatusBadRequest},
		{"no gesture", "/views/" + opened.ID + "/gestures", `{}`, http.StatusBadRequest},
		{"unknown session", "/views/missing/gestures", `{"rotate": 1}`, http.StatusNotFound},
		{"unknown session render", "/views/missing/render", sceneBody, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := do(t, app, http.MethodPost, tt.target, tt.body)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d (%s)", resp.StatusCode, tt.status, data)
			}
		})
	}
}

func TestViewSessionRenderRejectsOversizedScreen(t *testing.T) {
	app := newApp()
	_, data := do(t, app, http.MethodPost, "/views", "")
	var opened viewResponse
	if err := json.Unmarshal(data, &opened); err != nil {
		t.Fatal(err)
	}

	body := `{"room": {"width": 5, "length": 6, "height": 2.5}, "screen": {"width": 800, "height": 3000000}}`
	resp, _ := do(t, app, http.MethodPost, "/views/"+opened.ID+"/render?format=png", body)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	body = `{"room": {"width": 5, "length": 6, "height": 2.5}, "screen": {"width": 4096, "height": 4096}}`
	resp, _ = do(t, app, http.MethodPost, "/views/"+opened.ID+"/render", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("max size: status = %d", resp.StatusCode)
	}
}

func TestRenderRoomWithoutColorsUsesDefaults(t *testing.T) {
	app := newApp()
	body := `{"room": {"width": 5, "length": 6, "height": 2.5}, "screen": {"width": 800, "height": 600}}`
	_, data := do(t, app, http.MethodPost, "/render", body)

	var frame compositor.Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		t.Fatal(err)
	}
	if len(frame.Commands) < 2 {
		t.Fatalf("got %d commands", len(frame.Commands))
	}
	if floor := frame.Commands[0]; floor.Color != models.LightOak {
		t.Fatalf("floor color = %+v, want light oak", floor.Color)
	}
	if wall := frame.Commands[1]; wall.Color != models.White {
		t.Fatalf("wall color = %+v, want white", wall.Color)
	}
}
