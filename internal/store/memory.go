package store

import (
	"context"
	"slices"
	"sync"

	"github.com/GregMSThompson/vehicle-dashboard/internal/models"
)

// MemoryLayouts keeps encoded layouts in process. Used for tests and local runs.
type MemoryLayouts struct {
	mu       sync.Mutex
	payloads map[string][]byte
}

func NewMemoryLayouts() *MemoryLayouts {
	return &MemoryLayouts{payloads: make(map[string][]byte)}
}

func (m *MemoryLayouts) LoadLayout(_ context.Context, owner string) ([]models.Widget, error) {
	m.mu.Lock()
	payload := m.payloads[owner]
	m.mu.Unlock()
	return decodeWidgets(payload)
}

func (m *MemoryLayouts) SaveLayout(_ context.Context, owner string, widgets []models.Widget) error {
	payload, err := encodeWidgets(widgets)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payloads[owner] = payload
	return nil
}

// Put stores a raw payload, bypassing the encoder.
func (m *MemoryLayouts) Put(owner string, payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payloads[owner] = slices.Clone(payload)
}

// MemoryModules keeps module preferences in process.
type MemoryModules struct {
	mu    sync.Mutex
	prefs map[string]map[string]models.ModulePreference
}

func NewMemoryModules() *MemoryModules {
	return &MemoryModules{prefs: make(map[string]map[string]models.ModulePreference)}
}

func (m *MemoryModules) ListModules(_ context.Context, uid string) ([]models.ModulePreference, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.ModulePreference, 0, len(m.prefs[uid]))
	for _, p := range m.prefs[uid] {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b models.ModulePreference) int { return a.Position - b.Position })
	return out, nil
}

func (m *MemoryModules) SaveModules(_ context.Context, uid string, prefs []models.ModulePreference) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.prefs[uid] == nil {
		m.prefs[uid] = make(map[string]models.ModulePreference)
	}
	for _, p := range prefs {
		m.prefs[uid][p.ModuleID] = p
	}
	return nil
}

func (m *MemoryModules) BulkUpdatePositions(_ context.Context, uid string, positions map[string]int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, pos := range positions {
		p, ok := m.prefs[uid][id]
		if !ok {
			continue
		}
		p.Position = pos
		m.prefs[uid][id] = p
	}
	return nil
}
