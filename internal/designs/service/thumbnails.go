package service

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"furniture-studio/internal/renderer/compositor"
	"furniture-studio/internal/renderer/surface"
	"furniture-studio/internal/renderer/view"
	"furniture-studio/internal/studio/models"
)

// ============================================================
// Thumbnail Storage
// ============================================================

const (
	ThumbnailWidth  = 320
	ThumbnailHeight = 240
)

var ErrNoThumbnail = errors.New("thumbnail not found")

type ThumbnailStorage struct {
	root string
}

func NewThumbnailStorage(root string) *ThumbnailStorage {
	return &ThumbnailStorage{root: root}
}

func (s *ThumbnailStorage) DesignDir(designID string) string {
	return filepath.Join(s.root, filepath.Base(designID))
}

func (s *ThumbnailStorage) Path(designID string) string {
	return filepath.Join(s.DesignDir(designID), "thumbnail.png")
}

func (s *ThumbnailStorage) EnsureDir(designID string) error {
	if err := os.MkdirAll(s.DesignDir(designID), 0o755); err != nil {
		return fmt.Errorf("mkdir design dir: %w", err)
	}
	return nil
}

func (s *ThumbnailStorage) Save(designID string, data []byte) (string, error) {
	if err := s.EnsureDir(designID); err != nil {
		return "", err
	}
	path := s.Path(designID)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write thumbnail: %w", err)
	}
	return path, nil
}

func (s *ThumbnailStorage) Load(designID string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(designID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoThumbnail
		}
		return nil, fmt.Errorf("read thumbnail: %w", err)
	}
	return data, nil
}

// Remove удаляет папку дизайна вместе с миниатюрой; отсутствие папки не ошибка.
func (s *ThumbnailStorage) Remove(designID string) error {
	if err := os.RemoveAll(s.DesignDir(designID)); err != nil {
		return fmt.Errorf("remove design dir: %w", err)
	}
	return nil
}

// ============================================================
// Thumbnail rendering
// ============================================================

// RenderThumbnail рисует дизайн с видом по умолчанию в PNG 320x240.
func RenderThumbnail(d *models.Design) ([]byte, error) {
	room, items := d.Snapshot()
	frame := compositor.RenderFrame(room, items, view.Default(), compositor.Size{
		Width:  ThumbnailWidth,
		Height: ThumbnailHeight,
	})

	var buf bytes.Buffer
	if err := surface.PNG(&buf, frame); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
