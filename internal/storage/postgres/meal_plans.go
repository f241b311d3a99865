package postgres

import (
	"context"
	"fmt"

	"github.com/frankiefreesbie/glucko-server/internal/storage"
	"github.com/jackc/pgx/v5"
)

func (p *PostgresStorage) GetDailyPlan(ctx context.Context, ownerUserID string, date string) (storage.DailyPlan, bool, error) {
	query := `
		SELECT owner_user_id, date, breakfast_id, lunch_id, dinner_id, created_at, updated_at
		FROM daily_meal_plans
		WHERE owner_user_id = $1 AND date = $2
	`

	var plan storage.DailyPlan
	err := p.pool.QueryRow(ctx, query, ownerUserID, date).Scan(
		&plan.OwnerUserID,
		&plan.Date,
		&plan.BreakfastID,
		&plan.LunchID,
		&plan.DinnerID,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return storage.DailyPlan{}, false, nil
	}
	if err != nil {
		return storage.DailyPlan{}, false, fmt.Errorf("failed to get daily plan: %w", err)
	}

	return plan, true, nil
}

func (p *PostgresStorage) SetDailyPlan(ctx context.Context, plan storage.DailyPlan) error {
	// Пустой план не храним.
	if plan.IsEmpty() {
		return p.DeleteDailyPlan(ctx, plan.OwnerUserID, plan.Date)
	}

	query := `
		INSERT INTO daily_meal_plans (owner_user_id, date, breakfast_id, lunch_id, dinner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (owner_user_id, date)
		DO UPDATE SET breakfast_id = $3, lunch_id = $4, dinner_id = $5, updated_at = NOW()
	`

	_, err := p.pool.Exec(ctx, query, plan.OwnerUserID, plan.Date, plan.BreakfastID, plan.LunchID, plan.DinnerID)
	if err != nil {
		return fmt.Errorf("failed to set daily plan: %w", err)
	}

	return nil
}

func (p *PostgresStorage) DeleteDailyPlan(ctx context.Context, ownerUserID string, date string) error {
	query := `
		DELETE FROM daily_meal_plans
		WHERE owner_user_id = $1 AND date = $2
	`

	if _, err := p.pool.Exec(ctx, query, ownerUserID, date); err != nil {
		return fmt.Errorf("failed to delete daily plan: %w", err)
	}

	return nil
}
