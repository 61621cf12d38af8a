package proxy

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Upstream
// ============================================================

// hopHeaders не копируются из ответа сервиса.
var hopHeaders = map[string]bool{
	"Connection":        true,
	"Content-Length":    true,
	"Keep-Alive":        true,
	"Transfer-Encoding": true,
}

// Upstream описывает сервис за гейтвеем.
type Upstream struct {
	Name    string
	baseURL string
	client  *http.Client
}

func NewUpstream(name, baseURL string, timeout time.Duration) *Upstream {
	return &Upstream{
		Name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (u *Upstream) URL(path string) string {
	return u.baseURL + path
}

// StripPrefix проксирует запрос, отрезав prefix от пути; метод, query и тело сохраняются.
func (u *Upstream) StripPrefix(prefix string) fiber.Handler {
	return func(c fiber.Ctx) error {
		target := u.URL(strings.TrimPrefix(c.Path(), prefix))
		if qs := c.Request().URI().QueryString(); len(qs) > 0 {
			target += "?" + string(qs)
		}
		return u.Forward(c, target)
	}
}

// Forward проксирует запрос по переданному URL.
func (u *Upstream) Forward(c fiber.Ctx, targetURL string) error {
	log.Printf("[PROXY] %s %s -> %s (%d bytes)", c.Method(), c.Path(), targetURL, len(c.Body()))

	req, err := http.NewRequest(c.Method(), targetURL, bytes.NewReader(c.Body()))
	if err != nil {
		log.Printf("[PROXY] build request error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "proxy failed"})
	}

	if ct := c.Get("Content-Type"); ct != "" {
		req.Header.Set("Content-Type", ct)
	}
	if accept := c.Get("Accept"); accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		log.Printf("[PROXY] %s error: %v", u.Name, err)
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "failed to reach upstream service"})
	}
	defer resp.Body.Close()

	return copyResponse(c, resp)
}

// Ping проверяет /health/ready сервиса.
func (u *Upstream) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.URL("/health/ready"), nil)
	if err != nil {
		return err
	}
	resp, err := u.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", u.Name, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: status %d", u.Name, resp.StatusCode)
	}
	return nil
}

func copyResponse(c fiber.Ctx, resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[PROXY] Read response error: %v", err)
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "invalid upstream response"})
	}

	for key, values := range resp.Header {
		if hopHeaders[http.CanonicalHeaderKey(key)] || len(values) == 0 {
			continue
		}
		c.Set(key, values[0])
	}

	c.Status(resp.StatusCode)
	return c.Send(data)
}
