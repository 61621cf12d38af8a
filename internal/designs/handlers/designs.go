package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"furniture-studio/internal/designs/repository"
	"furniture-studio/internal/designs/service"
	"furniture-studio/internal/studio/models"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Designs Handler
// ============================================================

type DesignsHandler struct {
	repo   *repository.Repository
	thumbs *service.ThumbnailStorage
}

func NewDesignsHandler(repo *repository.Repository, thumbs *service.ThumbnailStorage) *DesignsHandler {
	return &DesignsHandler{
		repo:   repo,
		thumbs: thumbs,
	}
}

type createRequest struct {
	Name string          `json:"name"`
	Room json.RawMessage `json:"room,omitempty"`
}

type renameRequest struct {
	Name string `json:"name"`
}

// Create создает дизайн; комната необязательна.
func (h *DesignsHandler) Create(c fiber.Ctx) error {
	log.Printf("[DESIGNS] Create request")

	var req createRequest
	if err := decodeJSON(c, &req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return fail(c, http.StatusBadRequest, "name required")
	}

	var room *models.Room
	if len(req.Room) > 0 && string(req.Room) != "null" {
		r, err := parseRoom(req.Room)
		if err != nil {
			return fail(c, http.StatusBadRequest, err.Error())
		}
		room = r
	}

	d := models.NewDesign(name, room)
	if err := h.repo.Create(context.Background(), d); err != nil {
		log.Printf("[DESIGNS] create error: %v", err)
		return fail(c, http.StatusInternalServerError, "failed to create design")
	}

	return c.Status(http.StatusCreated).JSON(d)
}

func (h *DesignsHandler) List(c fiber.Ctx) error {
	list, err := h.repo.List(context.Background())
	if err != nil {
		log.Printf("[DESIGNS] list error: %v", err)
		return fail(c, http.StatusInternalServerError, "failed to list designs")
	}
	return c.JSON(list)
}

func (h *DesignsHandler) Get(c fiber.Ctx) error {
	d, err := h.repo.Get(context.Background(), c.Params("id"))
	if err != nil {
		return h.repoError(c, err)
	}
	return c.JSON(d)
}

func (h *DesignsHandler) Rename(c fiber.Ctx) error {
	var req renameRequest
	if err := decodeJSON(c, &req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return fail(c, http.StatusBadRequest, "name required")
	}

	id := c.Params("id")
	if err := h.repo.Rename(context.Background(), id, name); err != nil {
		return h.repoError(c, err)
	}
	return h.Get(c)
}

// UpdateRoom заменяет комнату; цвета, которых нет в теле, берутся по умолчанию.
func (h *DesignsHandler) UpdateRoom(c fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return fail(c, http.StatusBadRequest, "body required")
	}
	room, err := parseRoom(c.Body())
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	id := c.Params("id")
	if err := h.repo.UpdateRoom(context.Background(), id, room); err != nil {
		return h.repoError(c, err)
	}
	log.Printf("[DESIGNS] Room of %s set to %.2fx%.2fx%.2f", id, room.Width, room.Length, room.Height)
	return h.Get(c)
}

func (h *DesignsHandler) Delete(c fiber.Ctx) error {
	id := c.Params("id")
	if err := h.repo.Delete(context.Background(), id); err != nil {
		return h.repoError(c, err)
	}
	if err := h.thumbs.Remove(id); err != nil {
		log.Printf("[DESIGNS] remove thumbnail error: %v", err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// ============================================================
// Helpers
// ============================================================

func parseRoom(data []byte) (*models.Room, error) {
	room := &models.Room{}
	if err := json.Unmarshal(data, room); err != nil {
		return nil, errors.New("invalid room payload")
	}
	if !room.Valid() {
		return nil, errors.New("room dimensions must be positive")
	}
	return room, nil
}

func (h *DesignsHandler) repoError(c fiber.Ctx, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "design not found")
	}
	log.Printf("[DESIGNS] repository error: %v", err)
	return fail(c, http.StatusInternalServerError, "storage error")
}

func decodeJSON(c fiber.Ctx, dst any) error {
	if len(c.Body()) == 0 {
		return errors.New("body required")
	}
	if err := json.Unmarshal(c.Body(), dst); err != nil {
		log.Printf("[DESIGNS] Decode error: %v", err)
		return errors.New("invalid JSON payload")
	}
	return nil
}

func fail(c fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
