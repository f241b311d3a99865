package meallog

import (
	"context"
	"fmt"
	"time"

	"github.com/frankiefreesbie/glucko-server/internal/storage"
	"github.com/google/uuid"
)

// Service handles the meal journal: logging eaten meals and the running
// points total.
type Service struct {
	log     storage.MealLogStorage
	recipes storage.RecipesStorage
}

// NewService creates a new meal log service.
func NewService(log storage.MealLogStorage, recipes storage.RecipesStorage) *Service {
	return &Service{log: log, recipes: recipes}
}

// Log records that a recipe was eaten and awards points. The recipe name is
// denormalized into the entry so the journal survives recipe deletion.
func (s *Service) Log(ctx context.Context, ownerUserID string, req LogMealRequest) (*LoggedMeal, int, error) {
	if err := req.Validate(); err != nil {
		return nil, 0, fmt.Errorf("validation failed: %w", err)
	}

	recipe, err := s.recipes.GetRecipe(ctx, ownerUserID, req.RecipeID)
	if err != nil {
		return nil, 0, fmt.Errorf("recipe not found: %w", err)
	}

	loggedAt := time.Now().UTC()
	if req.LoggedAt != nil {
		loggedAt = req.LoggedAt.UTC()
	}

	row := storage.LoggedMeal{
		ID:           uuid.New(),
		OwnerUserID:  ownerUserID,
		RecipeID:     recipe.ID,
		RecipeName:   recipe.Name,
		MealType:     req.MealType,
		LoggedAt:     loggedAt,
		PointsEarned: PointsPerMeal,
	}

	if err := s.log.InsertLoggedMeal(ctx, &row); err != nil {
		return nil, 0, err
	}

	total, err := s.log.GetUserPoints(ctx, ownerUserID)
	if err != nil {
		return nil, 0, err
	}

	meal := toLoggedMeal(row)
	return &meal, total, nil
}

// List returns journal entries in [from, to], newest first per the store's
// ordering.
func (s *Service) List(ctx context.Context, ownerUserID string, from, to time.Time) ([]LoggedMeal, error) {
	rows, err := s.log.ListLoggedMeals(ctx, ownerUserID, from, to)
	if err != nil {
		return nil, err
	}

	meals := make([]LoggedMeal, len(rows))
	for i, row := range rows {
		meals[i] = toLoggedMeal(row)
	}
	return meals, nil
}

// Points returns the user's lifetime points total.
func (s *Service) Points(ctx context.Context, ownerUserID string) (int, error) {
	return s.log.GetUserPoints(ctx, ownerUserID)
}

func toLoggedMeal(row storage.LoggedMeal) LoggedMeal {
	return LoggedMeal{
		ID:           row.ID,
		RecipeID:     row.RecipeID,
		RecipeName:   row.RecipeName,
		MealType:     row.MealType,
		LoggedAt:     row.LoggedAt,
		PointsEarned: row.PointsEarned,
	}
}
