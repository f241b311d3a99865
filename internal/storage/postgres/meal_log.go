package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/frankiefreesbie/glucko-server/internal/storage"
	"github.com/google/uuid"
)

func (p *PostgresStorage) InsertLoggedMeal(ctx context.Context, meal *storage.LoggedMeal) error {
	if meal.ID == uuid.Nil {
		meal.ID = uuid.New()
	}
	if meal.LoggedAt.IsZero() {
		meal.LoggedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO logged_meals (id, owner_user_id, recipe_id, recipe_name, meal_type, logged_at, points_earned)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := p.pool.Exec(ctx, query,
		meal.ID, meal.OwnerUserID, meal.RecipeID, meal.RecipeName, meal.MealType, meal.LoggedAt, meal.PointsEarned,
	)
	if err != nil {
		return fmt.Errorf("failed to insert logged meal: %w", err)
	}

	return nil
}

func (p *PostgresStorage) ListLoggedMeals(ctx context.Context, ownerUserID string, from, to time.Time) ([]storage.LoggedMeal, error) {
	query := `
		SELECT id, owner_user_id, recipe_id, recipe_name, meal_type, logged_at, points_earned
		FROM logged_meals
		WHERE owner_user_id = $1 AND logged_at >= $2 AND logged_at <= $3
		ORDER BY logged_at
	`

	rows, err := p.pool.Query(ctx, query, ownerUserID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list logged meals: %w", err)
	}
	defer rows.Close()

	var meals []storage.LoggedMeal
	for rows.Next() {
		var meal storage.LoggedMeal
		err := rows.Scan(
			&meal.ID,
			&meal.OwnerUserID,
			&meal.RecipeID,
			&meal.RecipeName,
			&meal.MealType,
			&meal.LoggedAt,
			&meal.PointsEarned,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan logged meal: %w", err)
		}
		meals = append(meals, meal)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating logged meals: %w", rows.Err())
	}

	return meals, nil
}

func (p *PostgresStorage) GetUserPoints(ctx context.Context, ownerUserID string) (int, error) {
	query := `
		SELECT COALESCE(SUM(points_earned), 0)
		FROM logged_meals
		WHERE owner_user_id = $1
	`

	var total int
	if err := p.pool.QueryRow(ctx, query, ownerUserID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to get user points: %w", err)
	}

	return total, nil
}
