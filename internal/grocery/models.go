package grocery

import (
	"fmt"
	"time"

	"github.com/frankiefreesbie/glucko-server/internal/quantity"
	"github.com/frankiefreesbie/glucko-server/internal/recipes"
	"github.com/google/uuid"
)

// Entry is one ingredient occurrence feeding the aggregator, tagged with
// the recipe it came from.
type Entry struct {
	Ingredient recipes.Ingredient
	RecipeName string
}

// Key identifies an aggregation bucket. Aggregating by (name, unit) rather
// than name alone keeps "2 cloves" of garlic and "400 g" of garlic as two
// line items instead of silently summing across units.
type Key struct {
	Name string // lower-cased ingredient name
	Unit string // empty when the quantity has no unit
}

// AggregatedIngredient is the transient merge result for one bucket.
type AggregatedIngredient struct {
	Name          string
	QuantityValue *float64
	QuantityUnit  *string
	Recipes       []string
}

// DisplayAmount renders the merged quantity the same way a single
// ingredient renders.
func (a AggregatedIngredient) DisplayAmount() string {
	switch {
	case a.QuantityValue != nil && a.QuantityUnit != nil:
		return fmt.Sprintf("%s %s", quantity.FormatValue(*a.QuantityValue), *a.QuantityUnit)
	case a.QuantityValue != nil:
		return quantity.FormatValue(*a.QuantityValue)
	default:
		return "To taste"
	}
}

// GroceryItem is one row of the final shopping list.
type GroceryItem struct {
	Name        string  `json:"name"`
	Amount      string  `json:"amount"`
	IsCompleted bool    `json:"is_completed"`
	Subtitle    *string `json:"subtitle,omitempty"`
}

type ListResponse struct {
	Items []GroceryItem `json:"items"`
}

type SetCompletionRequest struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

type ShareResponse struct {
	Message string `json:"message"`
}

const (
	FormatTXT = "txt"
	FormatPDF = "pdf"
)

type CreateExportRequest struct {
	Date   string `json:"date,omitempty"`
	Week   bool   `json:"week,omitempty"`
	Format string `json:"format"`
}

func (r *CreateExportRequest) Validate() error {
	if r.Format != FormatTXT && r.Format != FormatPDF {
		return fmt.Errorf("format must be %q or %q", FormatTXT, FormatPDF)
	}
	if r.Date != "" {
		if _, err := time.Parse("2006-01-02", r.Date); err != nil {
			return fmt.Errorf("invalid date format, expected YYYY-MM-DD")
		}
	}
	return nil
}

// Export is the API view of a stored grocery list export.
type Export struct {
	ID          uuid.UUID `json:"id"`
	FromDate    string    `json:"from_date"`
	ToDate      string    `json:"to_date"`
	Format      string    `json:"format"`
	SizeBytes   int64     `json:"size_bytes"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	DownloadURL *string   `json:"download_url,omitempty"`
}

type ListExportsResponse struct {
	Exports []Export `json:"exports"`
}
