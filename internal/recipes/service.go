package recipes

import (
	"context"
	"fmt"

	"github.com/frankiefreesbie/glucko-server/internal/storage"
	"github.com/google/uuid"
)

// Service handles the recipe catalog business logic.
type Service struct {
	storage storage.RecipesStorage
}

// NewService creates a new recipes service.
func NewService(storage storage.RecipesStorage) *Service {
	return &Service{storage: storage}
}

// List returns all recipes in summary form (no ingredients/instructions).
func (s *Service) List(ctx context.Context, ownerUserID string) ([]Recipe, error) {
	rows, err := s.storage.ListRecipes(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}

	recipes := make([]Recipe, len(rows))
	for i, row := range rows {
		recipes[i] = toRecipe(row, nil, nil)
	}

	return recipes, nil
}

// Favorites returns the recipes marked as favorite, in summary form.
func (s *Service) Favorites(ctx context.Context, ownerUserID string) ([]Recipe, error) {
	rows, err := s.storage.ListRecipes(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}

	var recipes []Recipe
	for _, row := range rows {
		if row.IsFavorite {
			recipes = append(recipes, toRecipe(row, nil, nil))
		}
	}

	return recipes, nil
}

// Get returns a recipe in detail form, including ingredients and
// instructions.
func (s *Service) Get(ctx context.Context, ownerUserID string, id uuid.UUID) (*Recipe, error) {
	row, err := s.storage.GetRecipe(ctx, ownerUserID, id)
	if err != nil {
		return nil, err
	}

	ingredients, err := s.storage.GetRecipeIngredients(ctx, ownerUserID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load ingredients: %w", err)
	}

	instructions, err := s.storage.GetRecipeInstructions(ctx, ownerUserID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load instructions: %w", err)
	}

	recipe := toRecipe(*row, ingredients, instructions)
	return &recipe, nil
}

// Ingredients returns the parsed ingredient list of a recipe. Used by the
// grocery list builder as its lazy detail fetch.
func (s *Service) Ingredients(ctx context.Context, ownerUserID string, recipeID uuid.UUID) ([]Ingredient, error) {
	rows, err := s.storage.GetRecipeIngredients(ctx, ownerUserID, recipeID)
	if err != nil {
		return nil, err
	}

	return toIngredients(rows), nil
}

// Create validates and stores a new recipe. Free-text ingredient amounts
// are parsed here; structured quantities pass through untouched.
func (s *Service) Create(ctx context.Context, ownerUserID string, req CreateRecipeRequest) (*Recipe, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	row := storage.Recipe{
		ID:          uuid.New(),
		Name:        req.Name,
		PrepMinutes: req.PrepMinutes,
		Tags:        req.Tags,
		Description: req.Description,
		Protein:     req.Protein,
		Carbs:       req.Carbs,
		Fat:         req.Fat,
		Calories:    req.Calories,
		ImageURL:    req.ImageURL,
	}

	ingredients := make([]storage.Ingredient, len(req.Ingredients))
	for i, input := range req.Ingredients {
		ingredients[i] = buildIngredient(input)
	}

	if err := s.storage.CreateRecipe(ctx, ownerUserID, &row, ingredients, req.Instructions); err != nil {
		return nil, err
	}

	recipe := toRecipe(row, ingredients, req.Instructions)
	return &recipe, nil
}

// SetFavorite marks or unmarks a recipe as favorite.
func (s *Service) SetFavorite(ctx context.Context, ownerUserID string, id uuid.UUID, favorite bool) error {
	return s.storage.SetFavorite(ctx, ownerUserID, id, favorite)
}

// buildIngredient converts an IngredientInput to a storage row. A non-empty
// Amount wins and goes through NewIngredientFromAmount; otherwise the
// structured fields are taken as-is, with ShowInList defaulting to "has a
// value".
func buildIngredient(input IngredientInput) storage.Ingredient {
	if input.Amount != "" {
		ing := NewIngredientFromAmount(input.Name, input.Amount)
		return storage.Ingredient{
			ID:            ing.ID,
			Name:          ing.Name,
			QuantityValue: ing.QuantityValue,
			QuantityUnit:  ing.QuantityUnit,
			IsOptional:    ing.IsOptional,
			ShowInList:    ing.ShowInList,
		}
	}

	row := storage.Ingredient{
		ID:   uuid.New(),
		Name: input.Name,
	}

	if input.IsOptional != nil && *input.IsOptional {
		// Vague amounts never carry a number and never hit the list.
		row.IsOptional = true
		return row
	}

	row.QuantityValue = input.QuantityValue
	row.QuantityUnit = input.QuantityUnit
	if input.ShowInList != nil {
		row.ShowInList = *input.ShowInList
	} else {
		row.ShowInList = input.QuantityValue != nil
	}
	return row
}

func toRecipe(row storage.Recipe, ingredients []storage.Ingredient, instructions []string) Recipe {
	return Recipe{
		ID:           row.ID,
		Name:         row.Name,
		PrepMinutes:  row.PrepMinutes,
		Tags:         row.Tags,
		Description:  row.Description,
		Ingredients:  toIngredients(ingredients),
		Instructions: instructions,
		Protein:      row.Protein,
		Carbs:        row.Carbs,
		Fat:          row.Fat,
		Calories:     row.Calories,
		ImageURL:     row.ImageURL,
		IsFavorite:   row.IsFavorite,
	}
}

func toIngredients(rows []storage.Ingredient) []Ingredient {
	if rows == nil {
		return nil
	}
	out := make([]Ingredient, len(rows))
	for i, row := range rows {
		out[i] = Ingredient{
			ID:            row.ID,
			Name:          row.Name,
			QuantityValue: row.QuantityValue,
			QuantityUnit:  row.QuantityUnit,
			IsOptional:    row.IsOptional,
			ShowInList:    row.ShowInList,
		}
	}
	return out
}
