package mealplans

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/frankiefreesbie/glucko-server/internal/storage"
	"github.com/google/uuid"
)

// Service handles meal plan business logic. All generator operations build
// a new plan value and commit it through the plan store; nothing mutates a
// stored plan in place.
type Service struct {
	plans     storage.MealPlansStorage
	recipes   storage.RecipesStorage
	generator *Generator
}

// NewService creates a new meal plans service.
func NewService(plans storage.MealPlansStorage, recipes storage.RecipesStorage, generator *Generator) *Service {
	return &Service{plans: plans, recipes: recipes, generator: generator}
}

// PlanForDate returns the plan for a date, synthesizing an empty plan for
// dates that were never written.
func (s *Service) PlanForDate(ctx context.Context, ownerUserID string, date string) (DailyMealPlan, error) {
	if _, err := ParseDate(date); err != nil {
		return DailyMealPlan{}, err
	}

	row, found, err := s.plans.GetDailyPlan(ctx, ownerUserID, date)
	if err != nil {
		return DailyMealPlan{}, err
	}
	if !found {
		return DailyMealPlan{Date: date}, nil
	}

	return s.resolve(ctx, ownerUserID, row), nil
}

// SetMeal assigns a recipe to a slot.
func (s *Service) SetMeal(ctx context.Context, ownerUserID string, date string, slot Slot, recipeID uuid.UUID) (DailyMealPlan, error) {
	if _, err := ParseDate(date); err != nil {
		return DailyMealPlan{}, err
	}

	recipe, err := s.recipes.GetRecipe(ctx, ownerUserID, recipeID)
	if err != nil {
		return DailyMealPlan{}, fmt.Errorf("recipe not found: %w", err)
	}

	plan, err := s.PlanForDate(ctx, ownerUserID, date)
	if err != nil {
		return DailyMealPlan{}, err
	}

	summary := toSummary(*recipe)
	plan.setSlot(slot, &summary)

	if err := s.commit(ctx, ownerUserID, plan); err != nil {
		return DailyMealPlan{}, err
	}

	return plan, nil
}

// RemoveMeal clears a slot.
func (s *Service) RemoveMeal(ctx context.Context, ownerUserID string, date string, slot Slot) (DailyMealPlan, error) {
	plan, err := s.PlanForDate(ctx, ownerUserID, date)
	if err != nil {
		return DailyMealPlan{}, err
	}

	plan.setSlot(slot, nil)

	if err := s.commit(ctx, ownerUserID, plan); err != nil {
		return DailyMealPlan{}, err
	}

	return plan, nil
}

// ClearDay removes all assignments for a date.
func (s *Service) ClearDay(ctx context.Context, ownerUserID string, date string) error {
	if _, err := ParseDate(date); err != nil {
		return err
	}
	return s.plans.DeleteDailyPlan(ctx, ownerUserID, date)
}

// SwapMeal replaces the slot's recipe with a random other one from the
// catalog. Returns nil (and leaves the slot unchanged) when the catalog has
// no alternative.
func (s *Service) SwapMeal(ctx context.Context, ownerUserID string, date string, slot Slot) (*RecipeSummary, error) {
	plan, err := s.PlanForDate(ctx, ownerUserID, date)
	if err != nil {
		return nil, err
	}

	pool, err := s.loadPool(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}

	var currentID *uuid.UUID
	if current := plan.slot(slot); current != nil {
		currentID = &current.ID
	}

	picked := s.generator.Swap(pool, currentID)
	if picked == nil {
		return nil, nil
	}

	plan.setSlot(slot, picked)
	if err := s.commit(ctx, ownerUserID, plan); err != nil {
		return nil, err
	}

	return picked, nil
}

// GenerateDay fills the date's plan with three random distinct recipes,
// excluding any already assigned that day, and replaces the stored plan.
// With fewer than three usable recipes the stored plan stays unchanged and
// ErrNotEnoughRecipes is returned.
func (s *Service) GenerateDay(ctx context.Context, ownerUserID string, date string) (DailyMealPlan, error) {
	current, err := s.PlanForDate(ctx, ownerUserID, date)
	if err != nil {
		return DailyMealPlan{}, err
	}

	pool, err := s.loadPool(ctx, ownerUserID)
	if err != nil {
		return DailyMealPlan{}, err
	}

	generated, err := s.generator.GenerateDay(pool, current.UsedRecipeIDs())
	if err != nil {
		return DailyMealPlan{}, err
	}

	generated.Date = date
	if err := s.commit(ctx, ownerUserID, generated); err != nil {
		return DailyMealPlan{}, err
	}

	return generated, nil
}

// GenerateWeek fills the 7 days of the week containing anchor (Monday
// start) and commits every generated day.
func (s *Service) GenerateWeek(ctx context.Context, ownerUserID string, anchor time.Time) (string, []DailyMealPlan, error) {
	pool, err := s.loadPool(ctx, ownerUserID)
	if err != nil {
		return "", nil, err
	}

	weekStart := MondayOf(anchor)
	week, err := s.generator.GenerateWeek(pool, weekStart)
	if err != nil {
		return "", nil, err
	}

	days := make([]DailyMealPlan, 0, len(week))
	for _, plan := range week {
		if err := s.commit(ctx, ownerUserID, plan); err != nil {
			return "", nil, err
		}
		days = append(days, plan)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	return DateKey(weekStart), days, nil
}

func (s *Service) loadPool(ctx context.Context, ownerUserID string) ([]RecipeSummary, error) {
	rows, err := s.recipes.ListRecipes(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}

	pool := make([]RecipeSummary, len(rows))
	for i, row := range rows {
		pool[i] = toSummary(row)
	}
	return pool, nil
}

func (s *Service) commit(ctx context.Context, ownerUserID string, plan DailyMealPlan) error {
	row := storage.DailyPlan{
		OwnerUserID: ownerUserID,
		Date:        plan.Date,
	}
	if plan.Breakfast != nil {
		row.BreakfastID = &plan.Breakfast.ID
	}
	if plan.Lunch != nil {
		row.LunchID = &plan.Lunch.ID
	}
	if plan.Dinner != nil {
		row.DinnerID = &plan.Dinner.ID
	}
	return s.plans.SetDailyPlan(ctx, row)
}

// resolve turns a stored plan row into a DTO. A slot whose recipe has been
// deleted resolves to empty rather than failing the whole plan.
func (s *Service) resolve(ctx context.Context, ownerUserID string, row storage.DailyPlan) DailyMealPlan {
	plan := DailyMealPlan{Date: row.Date}

	ids := map[Slot]*uuid.UUID{
		SlotBreakfast: row.BreakfastID,
		SlotLunch:     row.LunchID,
		SlotDinner:    row.DinnerID,
	}

	for _, slot := range Slots {
		id := ids[slot]
		if id == nil {
			continue
		}
		recipe, err := s.recipes.GetRecipe(ctx, ownerUserID, *id)
		if err != nil {
			log.Printf("meal plan %s: slot %s references missing recipe %s", row.Date, slot, id)
			continue
		}
		summary := toSummary(*recipe)
		plan.setSlot(slot, &summary)
	}

	return plan
}

func toSummary(row storage.Recipe) RecipeSummary {
	return RecipeSummary{
		ID:          row.ID,
		Name:        row.Name,
		PrepMinutes: row.PrepMinutes,
		Calories:    row.Calories,
		ImageURL:    row.ImageURL,
	}
}
