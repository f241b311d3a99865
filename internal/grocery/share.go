package grocery

import (
	"fmt"
	"strings"
	"time"
)

// ShareText renders the still-unchecked items as bullet lines:
//
//	• Eggs: 2
//	• Milk: 1 l
func ShareText(items []GroceryItem) string {
	var lines []string
	for _, item := range items {
		if item.IsCompleted {
			continue
		}
		lines = append(lines, fmt.Sprintf("• %s: %s", item.Name, item.Amount))
	}
	return strings.Join(lines, "\n")
}

// DailyShareMessage wraps the list for a single day.
func DailyShareMessage(date time.Time, items []GroceryItem) string {
	return fmt.Sprintf("Grocery list for %s:\n\n%s", date.Format("Jan 2, 2006"), ShareText(items))
}

// WeeklyShareMessage wraps the list covering start..end inclusive.
func WeeklyShareMessage(start, end time.Time, items []GroceryItem) string {
	return fmt.Sprintf("Weekly grocery list (%s - %s):\n\n%s",
		start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"), ShareText(items))
}
