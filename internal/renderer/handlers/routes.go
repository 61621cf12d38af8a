package handlers

import "github.com/gofiber/fiber/v3"

// Register вешает маршруты сервиса рендера на router.
func Register(router fiber.Router, views *ViewsHandler) {
	router.Post("/render", Render)

	router.Post("/views", views.Open)
	router.Get("/views/:id", views.Get)
	router.Delete("/views/:id", views.Close)
	router.Post("/views/:id/gestures", views.Gesture)
	router.Post("/views/:id/render", views.Render)
}
