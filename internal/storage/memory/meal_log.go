package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/frankiefreesbie/glucko-server/internal/storage"
	"github.com/google/uuid"
)

type mealLogStorage struct {
	mu    sync.RWMutex
	meals map[string][]storage.LoggedMeal // key: ownerUserID
}

func newMealLogStorage() *mealLogStorage {
	return &mealLogStorage{
		meals: make(map[string][]storage.LoggedMeal),
	}
}

func (m *MemoryStorage) InsertLoggedMeal(ctx context.Context, meal *storage.LoggedMeal) error {
	s := m.mealLog
	s.mu.Lock()
	defer s.mu.Unlock()

	if meal.ID == uuid.Nil {
		meal.ID = uuid.New()
	}
	if meal.LoggedAt.IsZero() {
		meal.LoggedAt = time.Now().UTC()
	}

	s.meals[meal.OwnerUserID] = append(s.meals[meal.OwnerUserID], *meal)
	return nil
}

func (m *MemoryStorage) ListLoggedMeals(ctx context.Context, ownerUserID string, from, to time.Time) ([]storage.LoggedMeal, error) {
	s := m.mealLog
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []storage.LoggedMeal
	for _, meal := range s.meals[ownerUserID] {
		if meal.LoggedAt.Before(from) || meal.LoggedAt.After(to) {
			continue
		}
		result = append(result, meal)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].LoggedAt.Before(result[j].LoggedAt)
	})

	return result, nil
}

func (m *MemoryStorage) GetUserPoints(ctx context.Context, ownerUserID string) (int, error) {
	s := m.mealLog
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, meal := range s.meals[ownerUserID] {
		total += meal.PointsEarned
	}

	return total, nil
}
