package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/frankiefreesbie/glucko-server/internal/storage"
	"github.com/google/uuid"
)

type recipesStorage struct {
	mu           sync.RWMutex
	recipes      map[uuid.UUID]*storage.Recipe
	ingredients  map[uuid.UUID][]storage.Ingredient // key: recipe_id
	instructions map[uuid.UUID][]string             // key: recipe_id
}

func newRecipesStorage() *recipesStorage {
	return &recipesStorage{
		recipes:      make(map[uuid.UUID]*storage.Recipe),
		ingredients:  make(map[uuid.UUID][]storage.Ingredient),
		instructions: make(map[uuid.UUID][]string),
	}
}

func (m *MemoryStorage) ListRecipes(ctx context.Context, ownerUserID string) ([]storage.Recipe, error) {
	s := m.recipes
	s.mu.RLock()
	defer s.mu.RUnlock()

	recipes := make([]storage.Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		recipes = append(recipes, *r)
	}

	// Map iteration order is random; keep listings stable.
	sort.Slice(recipes, func(i, j int) bool {
		return recipes[i].Name < recipes[j].Name
	})

	return recipes, nil
}

func (m *MemoryStorage) GetRecipe(ctx context.Context, ownerUserID string, id uuid.UUID) (*storage.Recipe, error) {
	s := m.recipes
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipes[id]
	if !ok {
		return nil, ErrNotFound
	}

	copied := *r
	return &copied, nil
}

func (m *MemoryStorage) CreateRecipe(ctx context.Context, ownerUserID string, recipe *storage.Recipe, ingredients []storage.Ingredient, instructions []string) error {
	s := m.recipes
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if recipe.ID == uuid.Nil {
		recipe.ID = uuid.New()
	}
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	stored := *recipe
	s.recipes[recipe.ID] = &stored

	items := make([]storage.Ingredient, len(ingredients))
	for i, ing := range ingredients {
		if ing.ID == uuid.Nil {
			ing.ID = uuid.New()
		}
		ing.RecipeID = recipe.ID
		ing.Position = i
		items[i] = ing
	}
	s.ingredients[recipe.ID] = items
	s.instructions[recipe.ID] = append([]string(nil), instructions...)

	return nil
}

func (m *MemoryStorage) GetRecipeIngredients(ctx context.Context, ownerUserID string, recipeID uuid.UUID) ([]storage.Ingredient, error) {
	s := m.recipes
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.recipes[recipeID]; !ok {
		return nil, ErrNotFound
	}

	return append([]storage.Ingredient(nil), s.ingredients[recipeID]...), nil
}

func (m *MemoryStorage) GetRecipeInstructions(ctx context.Context, ownerUserID string, recipeID uuid.UUID) ([]string, error) {
	s := m.recipes
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.recipes[recipeID]; !ok {
		return nil, ErrNotFound
	}

	return append([]string(nil), s.instructions[recipeID]...), nil
}

func (m *MemoryStorage) SetFavorite(ctx context.Context, ownerUserID string, recipeID uuid.UUID, favorite bool) error {
	s := m.recipes
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.recipes[recipeID]
	if !ok {
		return ErrNotFound
	}

	r.IsFavorite = favorite
	r.UpdatedAt = time.Now().UTC()
	return nil
}
