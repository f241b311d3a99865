package grocery

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/frankiefreesbie/glucko-server/internal/mealplans"
	"github.com/frankiefreesbie/glucko-server/internal/recipes"
	"github.com/google/uuid"
)

// PlanSource yields the resolved meal plan for a date.
type PlanSource interface {
	PlanForDate(ctx context.Context, ownerUserID string, date string) (mealplans.DailyMealPlan, error)
}

// IngredientSource yields the parsed ingredient list of a recipe.
type IngredientSource interface {
	Ingredients(ctx context.Context, ownerUserID string, recipeID uuid.UUID) ([]recipes.Ingredient, error)
}

// Builder assembles shopping lists from planned meals. Ingredient fetches
// run concurrently per distinct recipe, but entries are merged in plan
// order (date ascending, breakfast/lunch/dinner within a day) so the
// aggregator sees a deterministic sequence.
type Builder struct {
	plans       PlanSource
	ingredients IngredientSource
}

// NewBuilder creates a grocery list builder.
func NewBuilder(plans PlanSource, ingredients IngredientSource) *Builder {
	return &Builder{plans: plans, ingredients: ingredients}
}

// BuildDay builds the shopping list for a single date.
func (b *Builder) BuildDay(ctx context.Context, ownerUserID string, date string, completed map[string]bool) ([]GroceryItem, error) {
	return b.BuildRange(ctx, ownerUserID, date, 1, completed)
}

// BuildRange builds the shopping list covering `days` consecutive dates
// starting at startDate. A recipe whose ingredients cannot be loaded
// contributes nothing; the rest of the list still builds.
func (b *Builder) BuildRange(ctx context.Context, ownerUserID string, startDate string, days int, completed map[string]bool) ([]GroceryItem, error) {
	start, err := mealplans.ParseDate(startDate)
	if err != nil {
		return nil, err
	}

	var meals []mealplans.RecipeSummary
	for offset := 0; offset < days; offset++ {
		date := mealplans.DateKey(start.AddDate(0, 0, offset))
		plan, err := b.plans.PlanForDate(ctx, ownerUserID, date)
		if err != nil {
			return nil, fmt.Errorf("failed to load plan for %s: %w", date, err)
		}
		meals = append(meals, plan.Meals()...)
	}

	byRecipe := b.fetchIngredients(ctx, ownerUserID, meals)

	var entries []Entry
	for _, meal := range meals {
		for _, ing := range byRecipe[meal.ID] {
			entries = append(entries, Entry{Ingredient: ing, RecipeName: meal.Name})
		}
	}

	return buildItems(Aggregate(entries), completed), nil
}

// fetchIngredients loads ingredient lists for the distinct recipes among
// the meals, one goroutine per recipe.
func (b *Builder) fetchIngredients(ctx context.Context, ownerUserID string, meals []mealplans.RecipeSummary) map[uuid.UUID][]recipes.Ingredient {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, meal := range meals {
		if !seen[meal.ID] {
			seen[meal.ID] = true
			ids = append(ids, meal.ID)
		}
	}

	byRecipe := make(map[uuid.UUID][]recipes.Ingredient, len(ids))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, id := range ids {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			ings, err := b.ingredients.Ingredients(ctx, ownerUserID, id)
			if err != nil {
				log.Printf("grocery list: failed to load ingredients for recipe %s: %v", id, err)
				return
			}
			mu.Lock()
			byRecipe[id] = ings
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	return byRecipe
}

// buildItems turns aggregation buckets into display rows, sorted by name
// case-insensitively. Completion state is keyed by lower-cased name and
// survives regeneration of the plan.
func buildItems(aggregated map[Key]*AggregatedIngredient, completed map[string]bool) []GroceryItem {
	items := make([]GroceryItem, 0, len(aggregated))
	for key, agg := range aggregated {
		items = append(items, GroceryItem{
			Name:        agg.Name,
			Amount:      agg.DisplayAmount(),
			IsCompleted: completed[key.Name],
			Subtitle:    subtitle(agg.Recipes),
		})
	}

	sort.Slice(items, func(i, j int) bool {
		a, b := strings.ToLower(items[i].Name), strings.ToLower(items[j].Name)
		if a != b {
			return a < b
		}
		return items[i].Amount < items[j].Amount
	})

	return items
}

func subtitle(recipeNames []string) *string {
	if len(recipeNames) == 0 {
		return nil
	}
	s := recipeNames[0]
	if len(recipeNames) > 1 {
		s = fmt.Sprintf("Used in %d recipes", len(recipeNames))
	}
	return &s
}
