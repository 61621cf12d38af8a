package handlers

import (
	"errors"
	"log"
	"net/http"

	"furniture-studio/internal/renderer/compositor"
	"furniture-studio/internal/renderer/service"
	"furniture-studio/internal/renderer/view"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Views Handler
// ============================================================

type ViewsHandler struct {
	sessions *service.ViewSessions
}

func NewViewsHandler(sessions *service.ViewSessions) *ViewsHandler {
	return &ViewsHandler{sessions: sessions}
}

type viewResponse struct {
	ID        string         `json:"id"`
	Viewpoint view.Viewpoint `json:"viewpoint"`
}

// gestureRequest должен нести ровно одно из полей: клавиша, перетаскивание или прямое изменение.
type gestureRequest struct {
	Key     *view.Key `json:"key,omitempty"`
	DragDX  *float64  `json:"drag_dx,omitempty"`
	Rotate  *float64  `json:"rotate,omitempty"`
	Zoom    *float64  `json:"zoom,omitempty"`
	Elevate *float64  `json:"elevate,omitempty"`
}

// gesture переводит запрос в изменение вида.
func (g gestureRequest) gesture() (func(view.Viewpoint) view.Viewpoint, error) {
	var fns []func(view.Viewpoint) view.Viewpoint

	if g.Key != nil {
		key := *g.Key
		if _, err := view.Default().ApplyKey(key); err != nil {
			return nil, err
		}
		fns = append(fns, func(v view.Viewpoint) view.Viewpoint {
			out, _ := v.ApplyKey(key)
			return out
		})
	}
	if g.DragDX != nil {
		dx := *g.DragDX
		fns = append(fns, func(v view.Viewpoint) view.Viewpoint { return v.Drag(dx) })
	}
	if g.Rotate != nil {
		d := *g.Rotate
		fns = append(fns, func(v view.Viewpoint) view.Viewpoint { return v.RotateBy(d) })
	}
	if g.Zoom != nil {
		f := *g.Zoom
		fns = append(fns, func(v view.Viewpoint) view.Viewpoint { return v.ZoomBy(f) })
	}
	if g.Elevate != nil {
		d := *g.Elevate
		fns = append(fns, func(v view.Viewpoint) view.Viewpoint { return v.ElevateBy(d) })
	}

	if len(fns) != 1 {
		return nil, errors.New("exactly one gesture required")
	}
	return fns[0], nil
}

// Open создает сессию просмотра; тело с начальным видом необязательно.
func (h *ViewsHandler) Open(c fiber.Ctx) error {
	initial := view.Default()
	if len(c.Body()) > 0 {
		if err := decodeJSON(c, &initial); err != nil {
			return fail(c, http.StatusBadRequest, err.Error())
		}
	}

	id, vp := h.sessions.Open(initial)
	log.Printf("[VIEWS] Opened %s (az %.1f, el %.1f, zoom %.1f)", id, vp.Azimuth, vp.Elevation, vp.Zoom)

	return c.Status(http.StatusCreated).JSON(viewResponse{ID: id, Viewpoint: vp})
}

func (h *ViewsHandler) Get(c fiber.Ctx) error {
	id := c.Params("id")
	vp, err := h.sessions.Snapshot(id)
	if err != nil {
		return fail(c, http.StatusNotFound, err.Error())
	}
	return c.JSON(viewResponse{ID: id, Viewpoint: vp})
}

// Gesture применяет к сессии один жест управления видом.
func (h *ViewsHandler) Gesture(c fiber.Ctx) error {
	id := c.Params("id")

	var req gestureRequest
	if err := decodeJSON(c, &req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	fn, err := req.gesture()
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	vp, err := h.sessions.Apply(id, fn)
	if err != nil {
		return fail(c, http.StatusNotFound, err.Error())
	}
	return c.JSON(viewResponse{ID: id, Viewpoint: vp})
}

func (h *ViewsHandler) Close(c fiber.Ctx) error {
	id := c.Params("id")
	if !h.sessions.Close(id) {
		return fail(c, http.StatusNotFound, service.ErrSessionNotFound.Error())
	}
	log.Printf("[VIEWS] Closed %s", id)
	return c.SendStatus(http.StatusNoContent)
}

// Render строит кадр с видом из сессии; viewpoint в теле игнорируется.
func (h *ViewsHandler) Render(c fiber.Ctx) error {
	id := c.Params("id")

	vp, err := h.sessions.Snapshot(id)
	if err != nil {
		return fail(c, http.StatusNotFound, err.Error())
	}

	var req renderRequest
	if err := decodeJSON(c, &req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	if err := req.validate(); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	frame := compositor.RenderFrame(req.Room, req.Items, vp, req.Screen, req.options()...)
	return sendFrame(c, frame)
}
