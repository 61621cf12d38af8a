package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"furniture-studio/internal/renderer/compositor"
	"furniture-studio/internal/renderer/surface"
	"furniture-studio/internal/renderer/view"
	"furniture-studio/internal/studio/models"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Render Handler
// ============================================================

type renderRequest struct {
	Room         *models.Room           `json:"room"`
	Items        []models.FurnitureItem `json:"items"`
	Viewpoint    *view.Viewpoint        `json:"viewpoint,omitempty"`
	Screen       compositor.Size        `json:"screen"`
	ControlsHint bool                   `json:"controls_hint,omitempty"`
}

func (r renderRequest) options() []compositor.Option {
	if r.ControlsHint {
		return []compositor.Option{compositor.WithControlsHint()}
	}
	return nil
}

func (r renderRequest) validate() error {
	if !r.Screen.Fits() {
		return fmt.Errorf("screen side must not exceed %d px", compositor.MaxSide)
	}
	return nil
}

// Render строит кадр из комнаты и мебели, переданных в теле запроса.
func Render(c fiber.Ctx) error {
	log.Printf("[RENDER] Received request, Content-Length: %d", len(c.Body()))

	var req renderRequest
	if err := decodeJSON(c, &req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	if err := req.validate(); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	vp := view.Default()
	if req.Viewpoint != nil {
		vp = *req.Viewpoint
	}

	frame := compositor.RenderFrame(req.Room, req.Items, vp, req.Screen, req.options()...)
	return sendFrame(c, frame)
}

// ============================================================
// Helpers
// ============================================================

func decodeJSON(c fiber.Ctx, dst any) error {
	if len(c.Body()) == 0 {
		return errors.New("body required")
	}
	if err := json.Unmarshal(c.Body(), dst); err != nil {
		log.Printf("[RENDER] Decode error: %v", err)
		return errors.New("invalid JSON payload")
	}
	return nil
}

func fail(c fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// sendFrame отдает кадр в формате из ?format= (json по умолчанию).
func sendFrame(c fiber.Ctx, frame compositor.Frame) error {
	format, err := surface.ParseFormat(c.Query("format"))
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	body, contentType, err := surface.Encode(format, frame)
	if err != nil {
		log.Printf("[RENDER] Encode error: %v", err)
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	c.Set("Content-Type", contentType)
	return c.Send(body)
}
