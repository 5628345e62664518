package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/domain"
)

// MemoryKeys is a process-local key store for deployments without a
// gemini_key table. Rotation happens under one mutex.
type MemoryKeys struct {
	mu     sync.Mutex
	rows   []domain.APIKey
	nextID int64
	now    func() time.Time
}

func NewMemoryKeys() *MemoryKeys {
	return &MemoryKeys{nextID: 1, now: func() time.Time { return time.Now().UTC() }}
}

func (m *MemoryKeys) ActiveKey(_ context.Context) (*domain.APIKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.activeIndex(); i >= 0 {
		k := m.rows[i]
		return &k, nil
	}
	return nil, fmt.Errorf("active api key: %w", ErrNotFound)
}

func (m *MemoryKeys) Replace(_ context.Context, apiKey string) (*domain.APIKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for i := range m.rows {
		if m.rows[i].IsActive {
			m.rows[i].IsActive = false
			m.rows[i].UpdatedAt = now
		}
	}
	k := m.insert(apiKey, now)
	return &k, nil
}

func (m *MemoryKeys) UpsertActive(_ context.Context, apiKey string) (*domain.APIKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	cur := m.activeIndex()
	if cur < 0 {
		k := m.insert(apiKey, now)
		return &k, nil
	}
	for i := range m.rows {
		if i != cur && m.rows[i].IsActive {
			m.rows[i].IsActive = false
			m.rows[i].UpdatedAt = now
		}
	}
	m.rows[cur].APIKey = apiKey
	m.rows[cur].UpdatedAt = now
	k := m.rows[cur]
	return &k, nil
}

// All returns a copy of every stored row, active or not.
func (m *MemoryKeys) All() []domain.APIKey {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.APIKey(nil), m.rows...)
}

// activeIndex picks the most recently updated active row, newest id on ties.
func (m *MemoryKeys) activeIndex() int {
	best := -1
	for i, k := range m.rows {
		if !k.IsActive {
			continue
		}
		if best < 0 || k.UpdatedAt.After(m.rows[best].UpdatedAt) ||
			(k.UpdatedAt.Equal(m.rows[best].UpdatedAt) && k.ID > m.rows[best].ID) {
			best = i
		}
	}
	return best
}

func (m *MemoryKeys) insert(apiKey string, now time.Time) domain.APIKey {
	k := domain.APIKey{ID: m.nextID, APIKey: apiKey, CreatedAt: now, UpdatedAt: now, IsActive: true}
	m.nextID++
	m.rows = append(m.rows, k)
	return k
}
