package handlers

import "github.com/gofiber/fiber/v3"

// Register вешает маршруты сервиса дизайнов на router.
func Register(router fiber.Router, h *DesignsHandler) {
	router.Post("/designs", h.Create)
	router.Get("/designs", h.List)
	router.Get("/designs/:id", h.Get)
	router.Patch("/designs/:id", h.Rename)
	router.Delete("/designs/:id", h.Delete)
	router.Put("/designs/:id/room", h.UpdateRoom)

	router.Post("/designs/:id/items", h.AddItem)
	router.Patch("/designs/:id/items/:itemId", h.UpdateItem)
	router.Delete("/designs/:id/items/:itemId", h.DeleteItem)

	router.Get("/designs/:id/frame", h.Frame)
	router.Post("/designs/:id/thumbnail", h.RenderThumbnail)
	router.Get("/designs/:id/thumbnail", h.GetThumbnail)
}
