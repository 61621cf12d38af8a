package handlers

import (
	"context"
	"errors"
	"log"
	"math"
	"net/http"

	"furniture-studio/internal/designs/repository"
	"furniture-studio/internal/studio/models"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Furniture Items
// ============================================================

type addItemRequest struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// patchItemRequest меняет только переданные поля.
type patchItemRequest struct {
	X        *float64      `json:"x,omitempty"`
	Y        *float64      `json:"y,omitempty"`
	Width    *float64      `json:"width,omitempty"`
	Depth    *float64      `json:"depth,omitempty"`
	Height   *float64      `json:"height,omitempty"`
	Color    *models.Color `json:"color,omitempty"`
	Rotation *float64      `json:"rotation,omitempty"`
}

func (p patchItemRequest) apply(item *models.FurnitureItem) {
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&item.X, p.X)
	set(&item.Y, p.Y)
	set(&item.Width, p.Width)
	set(&item.Depth, p.Depth)
	set(&item.Height, p.Height)
	set(&item.RotationAngle, p.Rotation)
	if p.Color != nil {
		item.Color = *p.Color
	}
}

// AddItem ставит новый предмет с габаритами по умолчанию для его типа.
func (h *DesignsHandler) AddItem(c fiber.Ctx) error {
	var req addItemRequest
	if err := decodeJSON(c, &req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	typ, err := models.ParseFurnitureType(req.Type)
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	ctx := context.Background()
	id := c.Params("id")
	d, err := h.repo.Get(ctx, id)
	if err != nil {
		return h.repoError(c, err)
	}

	item := models.NewFurnitureItem(typ, req.X, req.Y)
	if err := validatePlacement(d.Room, item); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	if err := h.repo.AddItem(ctx, id, item); err != nil {
		return h.repoError(c, err)
	}
	log.Printf("[DESIGNS] Added %s %s to %s at (%.2f, %.2f)", item.Type, item.ID, id, item.X, item.Y)
	return c.Status(http.StatusCreated).JSON(item)
}

// UpdateItem двигает, поворачивает, перекрашивает или меняет габариты предмета.
func (h *DesignsHandler) UpdateItem(c fiber.Ctx) error {
	var req patchItemRequest
	if err := decodeJSON(c, &req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	ctx := context.Background()
	id := c.Params("id")
	d, err := h.repo.Get(ctx, id)
	if err != nil {
		return h.repoError(c, err)
	}
	item, ok := d.Item(c.Params("itemId"))
	if !ok {
		return fail(c, http.StatusNotFound, "item not found")
	}

	updated := *item
	req.apply(&updated)
	if err := validatePlacement(d.Room, updated); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	if err := h.repo.UpdateItem(ctx, id, updated); err != nil {
		return h.itemError(c, err)
	}
	return c.JSON(updated)
}

func (h *DesignsHandler) DeleteItem(c fiber.Ctx) error {
	if err := h.repo.DeleteItem(context.Background(), c.Params("id"), c.Params("itemId")); err != nil {
		return h.itemError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// ============================================================
// Validation
// ============================================================

// validatePlacement: положительные конечные габариты и основание внутри пола комнаты.
func validatePlacement(room *models.Room, item models.FurnitureItem) error {
	if room == nil {
		return errors.New("design has no room")
	}
	for _, v := range []float64{item.X, item.Y, item.Width, item.Depth, item.Height, item.RotationAngle} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("item values must be finite")
		}
	}
	if item.Width <= 0 || item.Depth <= 0 || item.Height <= 0 {
		return errors.New("item dimensions must be positive")
	}
	if !room.Contains(item.X, item.Y, item.Width, item.Depth) {
		return errors.New("item must stay within room bounds")
	}
	return nil
}

func (h *DesignsHandler) itemError(c fiber.Ctx, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "item not found")
	}
	return h.repoError(c, err)
}
