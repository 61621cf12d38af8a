package config

import (
	"os"
	"strconv"
	"strings"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int

	// Design service
	DesignsDBPath string
	ThumbnailDir  string

	// Gateway
	RendererURL     string
	DesignsURL      string
	UpstreamTimeout int
	CORSOrigins     []string
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "3000"),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),

		DesignsDBPath: getEnv("DESIGNS_DB_PATH", "data/db/designs.db"),
		ThumbnailDir:  getEnv("THUMBNAIL_DIR", "data/thumbnails"),

		RendererURL:     getEnv("RENDERER_URL", "http://localhost:3001"),
		DesignsURL:      getEnv("DESIGNS_URL", "http://localhost:3002"),
		UpstreamTimeout: getEnvAsInt("UPSTREAM_TIMEOUT", 30),
		CORSOrigins:     getEnvAsList("CORS_ORIGINS", []string{"*"}),
	}
}

// PortOr подставляет порт сервиса, если PORT не задан явно.
func (c *Config) PortOr(defaultPort string) string {
	if os.Getenv("PORT") == "" {
		c.Port = defaultPort
	}
	return c.Port
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsList(key string, defaultVal []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
