package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

// ============================================================
// Logger Middleware
// ============================================================

// Logger возвращает middleware логирования запросов с именем сервиса в начале строки.
func Logger(service string) fiber.Handler {
	return logger.New(logger.Config{
		Format:     "[${time}] " + service + " ${status} - ${latency} ${method} ${path} | ${bytesSent} bytes | Content-Type: ${reqHeader:Content-Type}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	})
}
