package recipes

import (
	"testing"

	"github.com/google/uuid"
)

func listedIngredient(name string, value float64, unit string) Ingredient {
	return Ingredient{
		ID:            uuid.New(),
		Name:          name,
		QuantityValue: &value,
		QuantityUnit:  &unit,
		ShowInList:    true,
	}
}

func TestNewIngredientFromAmount(t *testing.T) {
	ing := NewIngredientFromAmount("Spaghetti", "400 g")

	if ing.ID == uuid.Nil {
		t.Error("expected a generated id")
	}
	if ing.Name != "Spaghetti" {
		t.Errorf("expected name Spaghetti, got %q", ing.Name)
	}
	if ing.QuantityValue == nil || *ing.QuantityValue != 400 {
		t.Errorf("expected value 400, got %v", ing.QuantityValue)
	}
	if ing.QuantityUnit == nil || *ing.QuantityUnit != "g" {
		t.Errorf("expected unit g, got %v", ing.QuantityUnit)
	}
	if !ing.ShowInList {
		t.Error("expected show_in_list for a parsed amount")
	}
}

func TestNewIngredientFromAmountVague(t *testing.T) {
	ing := NewIngredientFromAmount("Salt", "to taste")

	if ing.QuantityValue != nil || ing.QuantityUnit != nil {
		t.Errorf("vague amount must carry no quantity, got %v %v", ing.QuantityValue, ing.QuantityUnit)
	}
	if !ing.IsOptional {
		t.Error("expected is_optional for a vague amount")
	}
	if ing.ShowInList {
		t.Error("vague amounts must stay off the grocery list")
	}
}

func TestGroceryListDisplay(t *testing.T) {
	listed := listedIngredient("Spaghetti", 400, "g")
	if got := listed.GroceryListDisplay(); got != "Spaghetti: 400 g" {
		t.Errorf("expected 'Spaghetti: 400 g', got %q", got)
	}

	unlisted := NewIngredientFromAmount("Salt", "to taste")
	if got := unlisted.GroceryListDisplay(); got != "Salt" {
		t.Errorf("unlisted ingredient must render name only, got %q", got)
	}
}

func TestGroceryListIngredients(t *testing.T) {
	recipe := Recipe{
		Name: "Pasta",
		Ingredients: []Ingredient{
			listedIngredient("Spaghetti", 400, "g"),
			NewIngredientFromAmount("Salt", "to taste"),
			listedIngredient("Garlic", 2, "cloves"),
		},
	}

	out := recipe.GroceryListIngredients()
	if len(out) != 2 {
		t.Fatalf("expected 2 listed ingredients, got %d", len(out))
	}
	if out[0].Name != "Spaghetti" || out[1].Name != "Garlic" {
		t.Errorf("unexpected listed ingredients: %+v", out)
	}
}
