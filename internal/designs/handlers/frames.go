package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"furniture-studio/internal/designs/service"
	"furniture-studio/internal/renderer/compositor"
	"furniture-studio/internal/renderer/surface"
	"furniture-studio/internal/renderer/view"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Frames & Thumbnails
// ============================================================

const (
	defaultFrameWidth  = 800
	defaultFrameHeight = 600
)

// Frame рисует сохраненный дизайн с видом из query параметров.
func (h *DesignsHandler) Frame(c fiber.Ctx) error {
	vp, screen, err := frameParams(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	format, err := surface.ParseFormat(c.Query("format"))
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	d, err := h.repo.Get(context.Background(), c.Params("id"))
	if err != nil {
		return h.repoError(c, err)
	}

	room, items := d.Snapshot()
	frame := compositor.RenderFrame(room, items, vp, screen)

	body, contentType, err := surface.Encode(format, frame)
	if err != nil {
		log.Printf("[DESIGNS] encode frame error: %v", err)
		return fail(c, http.StatusInternalServerError, err.Error())
	}
	c.Set("Content-Type", contentType)
	return c.Send(body)
}

// RenderThumbnail перерисовывает и сохраняет миниатюру дизайна.
func (h *DesignsHandler) RenderThumbnail(c fiber.Ctx) error {
	id := c.Params("id")
	d, err := h.repo.Get(context.Background(), id)
	if err != nil {
		return h.repoError(c, err)
	}

	data, err := service.RenderThumbnail(d)
	if err != nil {
		log.Printf("[DESIGNS] render thumbnail error: %v", err)
		return fail(c, http.StatusInternalServerError, "failed to render thumbnail")
	}

	path, err := h.thumbs.Save(d.ID, data)
	if err != nil {
		log.Printf("[DESIGNS] save thumbnail error: %v", err)
		return fail(c, http.StatusInternalServerError, "failed to save thumbnail")
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"path":   path,
		"width":  service.ThumbnailWidth,
		"height": service.ThumbnailHeight,
		"size":   len(data),
	})
}

func (h *DesignsHandler) GetThumbnail(c fiber.Ctx) error {
	data, err := h.thumbs.Load(c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrNoThumbnail) {
			return fail(c, http.StatusNotFound, err.Error())
		}
		log.Printf("[DESIGNS] load thumbnail error: %v", err)
		return fail(c, http.StatusInternalServerError, "failed to read thumbnail")
	}

	c.Set("Content-Type", "image/png")
	return c.Send(data)
}

// ============================================================
// Query parsing
// ============================================================

func frameParams(c fiber.Ctx) (view.Viewpoint, compositor.Size, error) {
	vp := view.Default()
	screen := compositor.Size{Width: defaultFrameWidth, Height: defaultFrameHeight}

	floats := []struct {
		key string
		dst *float64
	}{
		{"azimuth", &vp.Azimuth},
		{"elevation", &vp.Elevation},
		{"zoom", &vp.Zoom},
	}
	for _, f := range floats {
		raw := c.Query(f.key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return vp, screen, fmt.Errorf("invalid %s %q", f.key, raw)
		}
		*f.dst = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"width", &screen.Width},
		{"height", &screen.Height},
	}
	for _, f := range ints {
		raw := c.Query(f.key)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return vp, screen, fmt.Errorf("invalid %s %q", f.key, raw)
		}
		*f.dst = v
	}
	if !screen.Fits() {
		return vp, screen, fmt.Errorf("screen side must not exceed %d px", compositor.MaxSide)
	}

	return vp, screen, nil
}
