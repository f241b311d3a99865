package meallog

import (
	"fmt"
	"time"

	"github.com/frankiefreesbie/glucko-server/internal/mealplans"
	"github.com/google/uuid"
)

// PointsPerMeal is awarded for every logged meal.
const PointsPerMeal = 120

// LoggedMeal is one journal entry: a recipe eaten at a meal slot.
type LoggedMeal struct {
	ID           uuid.UUID `json:"id"`
	RecipeID     uuid.UUID `json:"recipe_id"`
	RecipeName   string    `json:"recipe_name"`
	MealType     string    `json:"meal_type"`
	LoggedAt     time.Time `json:"logged_at"`
	PointsEarned int       `json:"points_earned"`
}

type LogMealRequest struct {
	RecipeID uuid.UUID  `json:"recipe_id"`
	MealType string     `json:"meal_type"`
	LoggedAt *time.Time `json:"logged_at,omitempty"`
}

func (r *LogMealRequest) Validate() error {
	if r.RecipeID == uuid.Nil {
		return fmt.Errorf("recipe_id is required")
	}
	if _, err := mealplans.ParseSlot(r.MealType); err != nil {
		return fmt.Errorf("meal_type must be one of: breakfast, lunch, dinner")
	}
	return nil
}

type LogMealResponse struct {
	Meal        LoggedMeal `json:"meal"`
	TotalPoints int        `json:"total_points"`
}

type ListResponse struct {
	Meals []LoggedMeal `json:"meals"`
}

type PointsResponse struct {
	TotalPoints int `json:"total_points"`
}
