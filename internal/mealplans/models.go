package mealplans

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Slot is one of the three meal slots of a day.
type Slot string

const (
	SlotBreakfast Slot = "breakfast"
	SlotLunch     Slot = "lunch"
	SlotDinner    Slot = "dinner"
)

// Slots lists the slots in their fixed assignment order.
var Slots = []Slot{SlotBreakfast, SlotLunch, SlotDinner}

func ParseSlot(s string) (Slot, error) {
	switch Slot(s) {
	case SlotBreakfast, SlotLunch, SlotDinner:
		return Slot(s), nil
	}
	return "", fmt.Errorf("invalid meal slot: %q", s)
}

// RecipeSummary is the slice of a recipe a meal plan needs: enough to show
// a slot card and to key the grocery list builder.
type RecipeSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	PrepMinutes int       `json:"prep_minutes"`
	Calories    int       `json:"calories"`
	ImageURL    *string   `json:"image_url,omitempty"`
}

// DailyMealPlan is the plan for one calendar day. Unassigned slots are nil.
// Plans for unvisited dates are synthesized empty on access, never stored.
type DailyMealPlan struct {
	Date      string         `json:"date"`
	Breakfast *RecipeSummary `json:"breakfast,omitempty"`
	Lunch     *RecipeSummary `json:"lunch,omitempty"`
	Dinner    *RecipeSummary `json:"dinner,omitempty"`
}

// Meals returns the assigned recipes in slot order (breakfast, lunch,
// dinner), skipping empty slots. Order matters downstream: the grocery list
// builder relies on it for deterministic provenance.
func (p DailyMealPlan) Meals() []RecipeSummary {
	var meals []RecipeSummary
	for _, slot := range Slots {
		if r := p.slot(slot); r != nil {
			meals = append(meals, *r)
		}
	}
	return meals
}

// UsedRecipeIDs returns the ids currently assigned in the plan.
func (p DailyMealPlan) UsedRecipeIDs() map[uuid.UUID]bool {
	used := make(map[uuid.UUID]bool)
	for _, meal := range p.Meals() {
		used[meal.ID] = true
	}
	return used
}

func (p DailyMealPlan) slot(s Slot) *RecipeSummary {
	switch s {
	case SlotBreakfast:
		return p.Breakfast
	case SlotLunch:
		return p.Lunch
	case SlotDinner:
		return p.Dinner
	}
	return nil
}

func (p *DailyMealPlan) setSlot(s Slot, r *RecipeSummary) {
	switch s {
	case SlotBreakfast:
		p.Breakfast = r
	case SlotLunch:
		p.Lunch = r
	case SlotDinner:
		p.Dinner = r
	}
}

// DateLayout — ключ плана: локальный календарный день без таймзоны
const DateLayout = "2006-01-02"

// DateKey formats a time as the canonical plan key (yyyy-MM-dd).
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate validates a yyyy-MM-dd plan key.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, expected YYYY-MM-DD")
	}
	return t, nil
}

// MondayOf returns the most recent Monday on or before t.
func MondayOf(t time.Time) time.Time {
	// time.Weekday: Sunday=0 ... Saturday=6; shift so Monday=0.
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

type SetMealRequest struct {
	RecipeID uuid.UUID `json:"recipe_id"`
}

type GenerateWeekResponse struct {
	WeekStart string          `json:"week_start"`
	Days      []DailyMealPlan `json:"days"`
}

type SwapResponse struct {
	Swapped bool           `json:"swapped"`
	Recipe  *RecipeSummary `json:"recipe,omitempty"`
}
