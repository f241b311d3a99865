package memory

import (
	"errors"
)

var (
	ErrNotFound = errors.New("not found")
)

// MemoryStorage — in-memory реализация storage.Storage. Используется в
// локальной разработке и в тестах, когда DATABASE_URL не задан.
type MemoryStorage struct {
	recipes   *recipesStorage
	mealPlans *mealPlansStorage
	grocery   *groceryStorage
	exports   *exportsStorage
	mealLog   *mealLogStorage
}

// New создаёт пустой MemoryStorage
func New() *MemoryStorage {
	return &MemoryStorage{
		recipes:   newRecipesStorage(),
		mealPlans: newMealPlansStorage(),
		grocery:   newGroceryStorage(),
		exports:   newExportsStorage(),
		mealLog:   newMealLogStorage(),
	}
}

func (m *MemoryStorage) Close() error {
	return nil
}
