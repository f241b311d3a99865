package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/frankiefreesbie/glucko-server/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (p *PostgresStorage) ListRecipes(ctx context.Context, ownerUserID string) ([]storage.Recipe, error) {
	query := `
		SELECT id, name, prep_minutes, tags, description, protein, carbs, fat, calories,
		       image_url, is_favorite, created_at, updated_at
		FROM recipes
		WHERE owner_user_id = $1
		ORDER BY name
	`

	rows, err := p.pool.Query(ctx, query, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []storage.Recipe
	for rows.Next() {
		var r storage.Recipe
		err := rows.Scan(
			&r.ID,
			&r.Name,
			&r.PrepMinutes,
			&r.Tags,
			&r.Description,
			&r.Protein,
			&r.Carbs,
			&r.Fat,
			&r.Calories,
			&r.ImageURL,
			&r.IsFavorite,
			&r.CreatedAt,
			&r.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, r)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating recipes: %w", rows.Err())
	}

	return recipes, nil
}

func (p *PostgresStorage) GetRecipe(ctx context.Context, ownerUserID string, id uuid.UUID) (*storage.Recipe, error) {
	query := `
		SELECT id, name, prep_minutes, tags, description, protein, carbs, fat, calories,
		       image_url, is_favorite, created_at, updated_at
		FROM recipes
		WHERE owner_user_id = $1 AND id = $2
	`

	var r storage.Recipe
	err := p.pool.QueryRow(ctx, query, ownerUserID, id).Scan(
		&r.ID,
		&r.Name,
		&r.PrepMinutes,
		&r.Tags,
		&r.Description,
		&r.Protein,
		&r.Carbs,
		&r.Fat,
		&r.Calories,
		&r.ImageURL,
		&r.IsFavorite,
		&r.CreatedAt,
		&r.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	return &r, nil
}

func (p *PostgresStorage) CreateRecipe(ctx context.Context, ownerUserID string, recipe *storage.Recipe, ingredients []storage.Ingredient, instructions []string) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	if recipe.ID == uuid.Nil {
		recipe.ID = uuid.New()
	}
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	recipeQuery := `
		INSERT INTO recipes (id, owner_user_id, name, prep_minutes, tags, description,
		                     protein, carbs, fat, calories, image_url, is_favorite, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err = tx.Exec(ctx, recipeQuery,
		recipe.ID, ownerUserID, recipe.Name, recipe.PrepMinutes, recipe.Tags, recipe.Description,
		recipe.Protein, recipe.Carbs, recipe.Fat, recipe.Calories, recipe.ImageURL, recipe.IsFavorite,
		recipe.CreatedAt, recipe.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert recipe: %w", err)
	}

	ingredientQuery := `
		INSERT INTO recipe_ingredients (id, recipe_id, name, quantity_value, quantity_unit,
		                                is_optional, show_in_list, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for i, ing := range ingredients {
		id := ing.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		_, err = tx.Exec(ctx, ingredientQuery,
			id, recipe.ID, ing.Name, ing.QuantityValue, ing.QuantityUnit,
			ing.IsOptional, ing.ShowInList, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert ingredient: %w", err)
		}
	}

	instructionQuery := `
		INSERT INTO recipe_instructions (recipe_id, position, body)
		VALUES ($1, $2, $3)
	`

	for i, step := range instructions {
		if _, err = tx.Exec(ctx, instructionQuery, recipe.ID, i, step); err != nil {
			return fmt.Errorf("failed to insert instruction: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit recipe: %w", err)
	}

	return nil
}

func (p *PostgresStorage) GetRecipeIngredients(ctx context.Context, ownerUserID string, recipeID uuid.UUID) ([]storage.Ingredient, error) {
	query := `
		SELECT ri.id, ri.recipe_id, ri.name, ri.quantity_value, ri.quantity_unit,
		       ri.is_optional, ri.show_in_list, ri.position
		FROM recipe_ingredients ri
		JOIN recipes r ON r.id = ri.recipe_id
		WHERE r.owner_user_id = $1 AND ri.recipe_id = $2
		ORDER BY ri.position
	`

	rows, err := p.pool.Query(ctx, query, ownerUserID, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []storage.Ingredient
	for rows.Next() {
		var ing storage.Ingredient
		err := rows.Scan(
			&ing.ID,
			&ing.RecipeID,
			&ing.Name,
			&ing.QuantityValue,
			&ing.QuantityUnit,
			&ing.IsOptional,
			&ing.ShowInList,
			&ing.Position,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		ingredients = append(ingredients, ing)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating ingredients: %w", rows.Err())
	}

	return ingredients, nil
}

func (p *PostgresStorage) GetRecipeInstructions(ctx context.Context, ownerUserID string, recipeID uuid.UUID) ([]string, error) {
	query := `
		SELECT i.body
		FROM recipe_instructions i
		JOIN recipes r ON r.id = i.recipe_id
		WHERE r.owner_user_id = $1 AND i.recipe_id = $2
		ORDER BY i.position
	`

	rows, err := p.pool.Query(ctx, query, ownerUserID, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe instructions: %w", err)
	}
	defer rows.Close()

	var instructions []string
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("failed to scan instruction: %w", err)
		}
		instructions = append(instructions, body)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating instructions: %w", rows.Err())
	}

	return instructions, nil
}

func (p *PostgresStorage) SetFavorite(ctx context.Context, ownerUserID string, recipeID uuid.UUID, favorite bool) error {
	query := `
		UPDATE recipes
		SET is_favorite = $3, updated_at = NOW()
		WHERE owner_user_id = $1 AND id = $2
	`

	tag, err := p.pool.Exec(ctx, query, ownerUserID, recipeID, favorite)
	if err != nil {
		return fmt.Errorf("failed to set favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
