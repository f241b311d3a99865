package recipes

import (
	"fmt"

	"github.com/frankiefreesbie/glucko-server/internal/quantity"
	"github.com/google/uuid"
)

// Ingredient is a recipe ingredient with an already-parsed quantity.
// Immutable after construction.
type Ingredient struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	QuantityValue *float64  `json:"quantity_value,omitempty"`
	QuantityUnit  *string   `json:"quantity_unit,omitempty"`
	IsOptional    bool      `json:"is_optional"`
	ShowInList    bool      `json:"show_in_list"`
}

// NewIngredientFromAmount builds an Ingredient from a raw name + free-text
// amount pair (legacy/manual entry), parsing the amount string.
func NewIngredientFromAmount(name, amount string) Ingredient {
	parsed := quantity.Parse(amount)
	return Ingredient{
		ID:            uuid.New(),
		Name:          name,
		QuantityValue: parsed.Value,
		QuantityUnit:  parsed.Unit,
		IsOptional:    parsed.IsOptional,
		ShowInList:    parsed.ShowInList,
	}
}

// DisplayAmount renders the quantity for UI display. Ingredients without a
// determinable numeric amount — vague or unparsed — all render as "To taste".
func (i Ingredient) DisplayAmount() string {
	switch {
	case i.QuantityValue != nil && i.QuantityUnit != nil:
		return fmt.Sprintf("%s %s", quantity.FormatValue(*i.QuantityValue), *i.QuantityUnit)
	case i.QuantityValue != nil:
		return quantity.FormatValue(*i.QuantityValue)
	default:
		return "To taste"
	}
}

// GroceryListDisplay renders "<name>: <amount>" for grocery lists. Only
// meaningful when ShowInList is true; otherwise just the name.
func (i Ingredient) GroceryListDisplay() string {
	if !i.ShowInList {
		return i.Name
	}
	return fmt.Sprintf("%s: %s", i.Name, i.DisplayAmount())
}

// Recipe is the full recipe aggregate. Ingredients may be empty on a
// summary-loaded recipe until a detail fetch completes.
type Recipe struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	PrepMinutes  int          `json:"prep_minutes"`
	Tags         []string     `json:"tags"`
	Description  string       `json:"description"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`
	Protein      int          `json:"protein"`
	Carbs        int          `json:"carbs"`
	Fat          int          `json:"fat"`
	Calories     int          `json:"calories"`
	ImageURL     *string      `json:"image_url,omitempty"`
	IsFavorite   bool         `json:"is_favorite"`
}

// GroceryListIngredients returns the ingredients that belong on a grocery
// list (vague and unparseable amounts excluded).
func (r Recipe) GroceryListIngredients() []Ingredient {
	var out []Ingredient
	for _, ing := range r.Ingredients {
		if ing.ShowInList {
			out = append(out, ing)
		}
	}
	return out
}

// IngredientInput accepts either a structured quantity or a legacy free-text
// amount. When Amount is set it wins and is parsed server-side.
type IngredientInput struct {
	Name          string   `json:"name"`
	Amount        string   `json:"amount,omitempty"`
	QuantityValue *float64 `json:"quantity_value,omitempty"`
	QuantityUnit  *string  `json:"quantity_unit,omitempty"`
	IsOptional    *bool    `json:"is_optional,omitempty"`
	ShowInList    *bool    `json:"show_in_list,omitempty"`
}

type CreateRecipeRequest struct {
	Name         string            `json:"name"`
	PrepMinutes  int               `json:"prep_minutes"`
	Tags         []string          `json:"tags"`
	Description  string            `json:"description"`
	Ingredients  []IngredientInput `json:"ingredients"`
	Instructions []string          `json:"instructions"`
	Protein      int               `json:"protein"`
	Carbs        int               `json:"carbs"`
	Fat          int               `json:"fat"`
	Calories     int               `json:"calories"`
	ImageURL     *string           `json:"image_url,omitempty"`
}

func (r *CreateRecipeRequest) Validate() error {
	if len(r.Name) < 1 || len(r.Name) > 200 {
		return fmt.Errorf("name must be between 1 and 200 characters")
	}
	if r.PrepMinutes < 0 || r.PrepMinutes > 24*60 {
		return fmt.Errorf("prep_minutes must be 0-1440")
	}
	for _, v := range []struct {
		name  string
		value int
	}{
		{"protein", r.Protein},
		{"carbs", r.Carbs},
		{"fat", r.Fat},
		{"calories", r.Calories},
	} {
		if v.value < 0 || v.value > 10000 {
			return fmt.Errorf("%s must be 0-10000", v.name)
		}
	}
	for i, ing := range r.Ingredients {
		if ing.Name == "" {
			return fmt.Errorf("ingredient[%d]: name is required", i)
		}
	}
	return nil
}

type ListRecipesResponse struct {
	Recipes []Recipe `json:"recipes"`
}

type ToggleFavoriteRequest struct {
	IsFavorite bool `json:"is_favorite"`
}
