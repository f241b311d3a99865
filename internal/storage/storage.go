package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Recipe — строка каталога рецептов. Ингредиенты и шаги хранятся отдельно
// и подгружаются по требованию (summary vs detail).
type Recipe struct {
	ID          uuid.UUID
	Name        string
	PrepMinutes int
	Tags        []string
	Description string
	Protein     int
	Carbs       int
	Fat         int
	Calories    int
	ImageURL    *string
	IsFavorite  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Ingredient — структурированный ингредиент рецепта. QuantityValue и
// QuantityUnit уже распарсены при создании; Position сохраняет порядок.
type Ingredient struct {
	ID            uuid.UUID
	RecipeID      uuid.UUID
	Name          string
	QuantityValue *float64
	QuantityUnit  *string
	IsOptional    bool
	ShowInList    bool
	Position      int
}

// RecipesStorage — интерфейс каталога рецептов
type RecipesStorage interface {
	// ListRecipes возвращает все рецепты (summary, без ингредиентов)
	ListRecipes(ctx context.Context, ownerUserID string) ([]Recipe, error)

	// GetRecipe возвращает рецепт по ID
	GetRecipe(ctx context.Context, ownerUserID string, id uuid.UUID) (*Recipe, error)

	// CreateRecipe создаёт рецепт вместе с ингредиентами и шагами
	CreateRecipe(ctx context.Context, ownerUserID string, recipe *Recipe, ingredients []Ingredient, instructions []string) error

	// GetRecipeIngredients возвращает ингредиенты рецепта в порядке Position
	GetRecipeIngredients(ctx context.Context, ownerUserID string, recipeID uuid.UUID) ([]Ingredient, error)

	// GetRecipeInstructions возвращает шаги приготовления по порядку
	GetRecipeInstructions(ctx context.Context, ownerUserID string, recipeID uuid.UUID) ([]string, error)

	// SetFavorite помечает рецепт как избранный
	SetFavorite(ctx context.Context, ownerUserID string, recipeID uuid.UUID, favorite bool) error
}

// DailyPlan — план питания на один календарный день (ключ yyyy-MM-dd,
// без таймзоны). Пустые планы не сохраняются.
type DailyPlan struct {
	OwnerUserID string
	Date        string // yyyy-MM-dd
	BreakfastID *uuid.UUID
	LunchID     *uuid.UUID
	DinnerID    *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsEmpty reports whether no slot is assigned.
func (p DailyPlan) IsEmpty() bool {
	return p.BreakfastID == nil && p.LunchID == nil && p.DinnerID == nil
}

// MealPlansStorage — интерфейс хранилища планов питания
type MealPlansStorage interface {
	// GetDailyPlan возвращает план на дату; found=false если плана нет
	GetDailyPlan(ctx context.Context, ownerUserID string, date string) (DailyPlan, bool, error)

	// SetDailyPlan сохраняет план на дату (upsert); пустой план удаляется
	SetDailyPlan(ctx context.Context, plan DailyPlan) error

	// DeleteDailyPlan удаляет план на дату
	DeleteDailyPlan(ctx context.Context, ownerUserID string, date string) error
}

// GroceryStorage — отметки "куплено" в списке покупок. Ключ — имя
// ингредиента в нижнем регистре, глобально для пользователя (не по датам).
type GroceryStorage interface {
	// GetCompletionStates возвращает все отметки пользователя
	GetCompletionStates(ctx context.Context, ownerUserID string) (map[string]bool, error)

	// SetCompletionState сохраняет отметку по имени ингредиента
	SetCompletionState(ctx context.Context, ownerUserID string, nameLower string, completed bool) error
}

// ExportMeta — метаданные сгенерированного экспорта списка покупок
type ExportMeta struct {
	ID          uuid.UUID
	OwnerUserID string
	FromDate    string // yyyy-MM-dd
	ToDate      string // yyyy-MM-dd
	Format      string // "txt" or "pdf"
	ObjectKey   *string
	SizeBytes   int64
	Status      string // "ready" or "failed"
	CreatedAt   time.Time
	Data        []byte // inline document when no blob store is configured
}

// ExportsStorage — интерфейс хранилища экспортов
type ExportsStorage interface {
	CreateExport(ctx context.Context, meta *ExportMeta) error
	GetExport(ctx context.Context, ownerUserID string, id uuid.UUID) (*ExportMeta, error)
	ListExports(ctx context.Context, ownerUserID string, limit int) ([]ExportMeta, error)
}

// LoggedMeal — запись о съеденном блюде
type LoggedMeal struct {
	ID           uuid.UUID
	OwnerUserID  string
	RecipeID     uuid.UUID
	RecipeName   string
	MealType     string // "breakfast" | "lunch" | "dinner"
	LoggedAt     time.Time
	PointsEarned int
}

// MealLogStorage — интерфейс журнала приёмов пищи
type MealLogStorage interface {
	InsertLoggedMeal(ctx context.Context, meal *LoggedMeal) error
	ListLoggedMeals(ctx context.Context, ownerUserID string, from, to time.Time) ([]LoggedMeal, error)

	// GetUserPoints возвращает суммарные баллы пользователя
	GetUserPoints(ctx context.Context, ownerUserID string) (int, error)
}

// Storage — полный интерфейс хранилища (Memory или Postgres)
type Storage interface {
	RecipesStorage
	MealPlansStorage
	GroceryStorage
	ExportsStorage
	MealLogStorage

	// Close закрывает соединение (для Postgres)
	Close() error
}
