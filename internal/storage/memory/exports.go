package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/frankiefreesbie/glucko-server/internal/storage"
	"github.com/google/uuid"
)

type exportsStorage struct {
	mu      sync.RWMutex
	exports map[uuid.UUID]*storage.ExportMeta
}

func newExportsStorage() *exportsStorage {
	return &exportsStorage{
		exports: make(map[uuid.UUID]*storage.ExportMeta),
	}
}

func (m *MemoryStorage) CreateExport(ctx context.Context, meta *storage.ExportMeta) error {
	s := m.exports
	s.mu.Lock()
	defer s.mu.Unlock()

	if meta.ID == uuid.Nil {
		meta.ID = uuid.New()
	}
	meta.CreatedAt = time.Now().UTC()

	stored := *meta
	s.exports[meta.ID] = &stored
	return nil
}

func (m *MemoryStorage) GetExport(ctx context.Context, ownerUserID string, id uuid.UUID) (*storage.ExportMeta, error) {
	s := m.exports
	s.mu.RLock()
	defer s.mu.RUnlock()

	meta, ok := s.exports[id]
	if !ok || meta.OwnerUserID != ownerUserID {
		return nil, ErrNotFound
	}

	copied := *meta
	return &copied, nil
}

func (m *MemoryStorage) ListExports(ctx context.Context, ownerUserID string, limit int) ([]storage.ExportMeta, error) {
	s := m.exports
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []storage.ExportMeta
	for _, meta := range s.exports {
		if meta.OwnerUserID == ownerUserID {
			result = append(result, *meta)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}

	return result, nil
}
