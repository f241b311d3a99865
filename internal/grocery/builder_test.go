package grocery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/frankiefreesbie/glucko-server/internal/mealplans"
	"github.com/frankiefreesbie/glucko-server/internal/recipes"
	"github.com/google/uuid"
)

type mockPlanSource struct {
	plans map[string]mealplans.DailyMealPlan
}

func (m *mockPlanSource) PlanForDate(ctx context.Context, ownerUserID string, date string) (mealplans.DailyMealPlan, error) {
	if plan, ok := m.plans[date]; ok {
		return plan, nil
	}
	return mealplans.DailyMealPlan{Date: date}, nil
}

type mockIngredientSource struct {
	byRecipe map[uuid.UUID][]recipes.Ingredient
	failFor  map[uuid.UUID]bool
}

func (m *mockIngredientSource) Ingredients(ctx context.Context, ownerUserID string, recipeID uuid.UUID) ([]recipes.Ingredient, error) {
	if m.failFor[recipeID] {
		return nil, errors.New("storage unavailable")
	}
	return m.byRecipe[recipeID], nil
}

func ing(name string, value *float64, unit *string, show bool) recipes.Ingredient {
	return recipes.Ingredient{
		ID:            uuid.New(),
		Name:          name,
		QuantityValue: value,
		QuantityUnit:  unit,
		ShowInList:    show,
	}
}

func summary(id uuid.UUID, name string) *mealplans.RecipeSummary {
	return &mealplans.RecipeSummary{ID: id, Name: name}
}

func TestBuildDayAggregatesAcrossMeals(t *testing.T) {
	oatsID := uuid.New()
	bowlID := uuid.New()

	plans := &mockPlanSource{plans: map[string]mealplans.DailyMealPlan{
		"2026-03-02": {
			Date:      "2026-03-02",
			Breakfast: summary(oatsID, "Overnight Oats"),
			Lunch:     summary(bowlID, "Granola Bowl"),
		},
	}}
	ingredients := &mockIngredientSource{byRecipe: map[uuid.UUID][]recipes.Ingredient{
		oatsID: {
			ing("Oats", fptr(200), sptr("g"), true),
			ing("Salt", nil, nil, false),
		},
		bowlID: {
			ing("Oats", fptr(100), sptr("g"), true),
			ing("Honey", fptr(2), sptr("tbsp"), true),
		},
	}}

	builder := NewBuilder(plans, ingredients)
	items, err := builder.BuildDay(context.Background(), "default", "2026-03-02", map[string]bool{"honey": true})
	if err != nil {
		t.Fatalf("BuildDay failed: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d: %+v", len(items), items)
	}

	// Sorted case-insensitively by name: Honey before Oats.
	honey := items[0]
	if honey.Name != "Honey" || honey.Amount != "2 tbsp" {
		t.Errorf("unexpected first item: %+v", honey)
	}
	if !honey.IsCompleted {
		t.Error("expected honey checked via completion state")
	}
	if honey.Subtitle == nil || *honey.Subtitle != "Granola Bowl" {
		t.Errorf("expected single-recipe subtitle, got %v", honey.Subtitle)
	}

	oats := items[1]
	if oats.Name != "Oats" || oats.Amount != "300 g" {
		t.Errorf("expected merged oats 300 g, got %+v", oats)
	}
	if oats.IsCompleted {
		t.Error("oats should not be checked")
	}
	if oats.Subtitle == nil || *oats.Subtitle != "Used in 2 recipes" {
		t.Errorf("expected multi-recipe subtitle, got %v", oats.Subtitle)
	}
}

func TestBuildRangeCoversAllDays(t *testing.T) {
	eggsID := uuid.New()
	toastID := uuid.New()

	plans := &mockPlanSource{plans: map[string]mealplans.DailyMealPlan{
		"2026-03-02": {Date: "2026-03-02", Breakfast: summary(eggsID, "Scrambled Eggs")},
		"2026-03-03": {Date: "2026-03-03", Dinner: summary(toastID, "Avocado Toast")},
	}}
	ingredients := &mockIngredientSource{byRecipe: map[uuid.UUID][]recipes.Ingredient{
		eggsID:  {ing("Eggs", fptr(2), nil, true)},
		toastID: {ing("Eggs", fptr(1), nil, true), ing("Avocado", fptr(1), nil, true)},
	}}

	builder := NewBuilder(plans, ingredients)
	items, err := builder.BuildRange(context.Background(), "default", "2026-03-02", 7, nil)
	if err != nil {
		t.Fatalf("BuildRange failed: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Name != "Avocado" {
		t.Errorf("expected Avocado first, got %q", items[0].Name)
	}
	if items[1].Name != "Eggs" || items[1].Amount != "3" {
		t.Errorf("expected eggs merged across days to 3, got %+v", items[1])
	}
}

func TestBuildDayInvalidDate(t *testing.T) {
	builder := NewBuilder(&mockPlanSource{}, &mockIngredientSource{})

	if _, err := builder.BuildDay(context.Background(), "default", "03/02/2026", nil); err == nil {
		t.Fatal("expected error for invalid date")
	}
}

func TestBuildDayEmptyPlan(t *testing.T) {
	builder := NewBuilder(&mockPlanSource{}, &mockIngredientSource{})

	items, err := builder.BuildDay(context.Background(), "default", "2026-03-02", nil)
	if err != nil {
		t.Fatalf("BuildDay failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty list, got %d items", len(items))
	}
}

func TestBuildDaySkipsFailedRecipe(t *testing.T) {
	okID := uuid.New()
	brokenID := uuid.New()

	plans := &mockPlanSource{plans: map[string]mealplans.DailyMealPlan{
		"2026-03-02": {
			Date:      "2026-03-02",
			Breakfast: summary(okID, "Smoothie"),
			Lunch:     summary(brokenID, "Mystery Meal"),
		},
	}}
	ingredients := &mockIngredientSource{
		byRecipe: map[uuid.UUID][]recipes.Ingredient{
			okID: {ing("Banana", fptr(1), nil, true)},
		},
		failFor: map[uuid.UUID]bool{brokenID: true},
	}

	builder := NewBuilder(plans, ingredients)
	items, err := builder.BuildDay(context.Background(), "default", "2026-03-02", nil)
	if err != nil {
		t.Fatalf("expected degraded build, got error: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Banana" {
		t.Errorf("expected only the loadable recipe's items, got %+v", items)
	}
}

func TestShareTextSkipsCheckedItems(t *testing.T) {
	items := []GroceryItem{
		{Name: "Eggs", Amount: "2", IsCompleted: false},
		{Name: "Flour", Amount: "500 g", IsCompleted: true},
		{Name: "Milk", Amount: "1 l", IsCompleted: false},
	}

	got := ShareText(items)
	want := "• Eggs: 2\n• Milk: 1 l"
	if got != want {
		t.Errorf("ShareText = %q, want %q", got, want)
	}
}

func TestDailyShareMessage(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	items := []GroceryItem{{Name: "Eggs", Amount: "2"}}

	got := DailyShareMessage(date, items)
	want := "Grocery list for Mar 2, 2026:\n\n• Eggs: 2"
	if got != want {
		t.Errorf("DailyShareMessage = %q, want %q", got, want)
	}
}

func TestWeeklyShareMessage(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 6)
	items := []GroceryItem{{Name: "Eggs", Amount: "14"}}

	got := WeeklyShareMessage(start, end, items)
	want := "Weekly grocery list (Mar 2, 2026 - Mar 8, 2026):\n\n• Eggs: 14"
	if got != want {
		t.Errorf("WeeklyShareMessage = %q, want %q", got, want)
	}
}
