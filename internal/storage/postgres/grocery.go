package postgres

import (
	"context"
	"fmt"
	"strings"
)

func (p *PostgresStorage) GetCompletionStates(ctx context.Context, ownerUserID string) (map[string]bool, error) {
	query := `
		SELECT ingredient_name, completed
		FROM grocery_completion_states
		WHERE owner_user_id = $1
	`

	rows, err := p.pool.Query(ctx, query, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get completion states: %w", err)
	}
	defer rows.Close()

	states := make(map[string]bool)
	for rows.Next() {
		var name string
		var completed bool
		if err := rows.Scan(&name, &completed); err != nil {
			return nil, fmt.Errorf("failed to scan completion state: %w", err)
		}
		states[name] = completed
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating completion states: %w", rows.Err())
	}

	return states, nil
}

func (p *PostgresStorage) SetCompletionState(ctx context.Context, ownerUserID string, nameLower string, completed bool) error {
	query := `
		INSERT INTO grocery_completion_states (owner_user_id, ingredient_name, completed, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (owner_user_id, ingredient_name)
		DO UPDATE SET completed = $3, updated_at = NOW()
	`

	_, err := p.pool.Exec(ctx, query, ownerUserID, strings.ToLower(nameLower), completed)
	if err != nil {
		return fmt.Errorf("failed to set completion state: %w", err)
	}

	return nil
}
