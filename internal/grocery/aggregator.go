package grocery

import "strings"

// Aggregate merges ingredient occurrences into buckets keyed by
// (lower-cased name, unit). Occurrences with ShowInList=false never enter
// the result, no matter how many recipes reference them.
//
// Within a bucket, values are summed with an absent value treated as 0, and
// every occurrence's recipe name is appended to provenance in input order.
// Map ordering is not deterministic: callers must sort before display.
func Aggregate(entries []Entry) map[Key]*AggregatedIngredient {
	result := make(map[Key]*AggregatedIngredient)

	for _, entry := range entries {
		ing := entry.Ingredient
		if !ing.ShowInList {
			continue
		}

		key := Key{Name: strings.ToLower(ing.Name)}
		if ing.QuantityUnit != nil {
			key.Unit = *ing.QuantityUnit
		}

		existing, ok := result[key]
		if !ok {
			result[key] = &AggregatedIngredient{
				Name:          ing.Name,
				QuantityValue: copyFloat(ing.QuantityValue),
				QuantityUnit:  ing.QuantityUnit,
				Recipes:       []string{entry.RecipeName},
			}
			continue
		}

		sum := floatOrZero(existing.QuantityValue) + floatOrZero(ing.QuantityValue)
		existing.QuantityValue = &sum
		existing.Recipes = append(existing.Recipes, entry.RecipeName)
	}

	return result
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
