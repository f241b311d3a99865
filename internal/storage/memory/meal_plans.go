package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/frankiefreesbie/glucko-server/internal/storage"
)

type mealPlansStorage struct {
	mu    sync.RWMutex
	plans map[string]*storage.DailyPlan // key: "ownerUserID:date"
}

func newMealPlansStorage() *mealPlansStorage {
	return &mealPlansStorage{
		plans: make(map[string]*storage.DailyPlan),
	}
}

func planKey(ownerUserID, date string) string {
	return fmt.Sprintf("%s:%s", ownerUserID, date)
}

func (m *MemoryStorage) GetDailyPlan(ctx context.Context, ownerUserID string, date string) (storage.DailyPlan, bool, error) {
	s := m.mealPlans
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, ok := s.plans[planKey(ownerUserID, date)]
	if !ok {
		return storage.DailyPlan{}, false, nil
	}

	return *plan, true, nil
}

func (m *MemoryStorage) SetDailyPlan(ctx context.Context, plan storage.DailyPlan) error {
	s := m.mealPlans
	s.mu.Lock()
	defer s.mu.Unlock()

	key := planKey(plan.OwnerUserID, plan.Date)

	// Пустой план не храним — его всегда можно синтезировать.
	if plan.IsEmpty() {
		delete(s.plans, key)
		return nil
	}

	now := time.Now().UTC()
	if existing, ok := s.plans[key]; ok {
		plan.CreatedAt = existing.CreatedAt
	} else {
		plan.CreatedAt = now
	}
	plan.UpdatedAt = now

	stored := plan
	s.plans[key] = &stored
	return nil
}

func (m *MemoryStorage) DeleteDailyPlan(ctx context.Context, ownerUserID string, date string) error {
	s := m.mealPlans
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.plans, planKey(ownerUserID, date))
	return nil
}
