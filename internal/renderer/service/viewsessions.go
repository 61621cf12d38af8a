package service

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"furniture-studio/internal/renderer/view"
)

// ============================================================
// View Sessions
// ============================================================

var ErrSessionNotFound = errors.New("view session not found")

// ViewSessions хранит состояние камеры для каждого открытого окна просмотра.
type ViewSessions struct {
	mu    sync.Mutex
	views map[string]*view.State // id -> state
}

func NewViewSessions() *ViewSessions {
	return &ViewSessions{
		views: make(map[string]*view.State),
	}
}

// Open создает сессию с начальным видом и возвращает ее id.
func (m *ViewSessions) Open(initial view.Viewpoint) (string, view.Viewpoint) {
	state := view.NewState(initial)

	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	m.views[id] = state
	return id, state.Snapshot()
}

func (m *ViewSessions) state(id string) (*view.State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.views[id]
	return state, ok
}

// Snapshot возвращает согласованный снимок вида для кадра.
func (m *ViewSessions) Snapshot(id string) (view.Viewpoint, error) {
	state, ok := m.state(id)
	if !ok {
		return view.Viewpoint{}, ErrSessionNotFound
	}
	return state.Snapshot(), nil
}

// Apply применяет жест к виду сессии. Блокировка самого вида своя,
// поэтому жесты разных сессий не ждут друг друга.
func (m *ViewSessions) Apply(id string, fn func(view.Viewpoint) view.Viewpoint) (view.Viewpoint, error) {
	state, ok := m.state(id)
	if !ok {
		return view.Viewpoint{}, ErrSessionNotFound
	}
	return state.Apply(fn), nil
}

func (m *ViewSessions) Close(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.views[id]; !ok {
		return false
	}
	delete(m.views, id)
	return true
}

func (m *ViewSessions) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.views)
}
