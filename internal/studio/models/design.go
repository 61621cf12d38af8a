package models

import (
	"time"

	"github.com/google/uuid"
)

// ============================================================
// Design Model
// ============================================================

// Design владеет одной комнатой и упорядоченным списком мебели.
// Список хранится в порядке добавления, а не в порядке отрисовки.
type Design struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Room      *Room           `json:"room"`
	Items     []FurnitureItem `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func NewDesign(name string, room *Room) *Design {
	now := time.Now().UTC()
	return &Design{
		ID:        uuid.NewString(),
		Name:      name,
		Room:      room,
		Items:     []FurnitureItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (d *Design) AddItem(item FurnitureItem) {
	d.Items = append(d.Items, item)
	d.Touch()
}

// RemoveItem удаляет предмет по id, возвращает false если такого нет.
func (d *Design) RemoveItem(id string) bool {
	for i, item := range d.Items {
		if item.ID == id {
			d.Items = append(d.Items[:i], d.Items[i+1:]...)
			d.Touch()
			return true
		}
	}
	return false
}

// Item возвращает указатель на предмет внутри дизайна.
func (d *Design) Item(id string) (*FurnitureItem, bool) {
	for i := range d.Items {
		if d.Items[i].ID == id {
			return &d.Items[i], true
		}
	}
	return nil, false
}

func (d *Design) Touch() {
	d.UpdatedAt = time.Now().UTC()
}

// Snapshot возвращает копию комнаты и списка мебели для отрисовки кадра.
func (d *Design) Snapshot() (*Room, []FurnitureItem) {
	if d == nil {
		return nil, nil
	}
	var room *Room
	if d.Room != nil {
		cp := *d.Room
		room = &cp
	}
	items := make([]FurnitureItem, len(d.Items))
	copy(items, d.Items)
	return room, items
}
