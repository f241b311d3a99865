package grocery

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// renderTXT renders the full list (checked items included, marked) as a
// plain-text document.
func renderTXT(title string, items []GroceryItem) []byte {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")
	for _, item := range items {
		mark := "[ ]"
		if item.IsCompleted {
			mark = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s: %s", mark, item.Name, item.Amount))
		if item.Subtitle != nil {
			b.WriteString(fmt.Sprintf("  (%s)", *item.Subtitle))
		}
		b.WriteString("\n")
	}
	return []byte(b.String())
}

// renderPDF renders the list as a single-column A4 document.
func renderPDF(title string, items []GroceryItem) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	for _, item := range items {
		mark := "[ ]"
		if item.IsCompleted {
			mark = "[x]"
		}
		pdf.Cell(0, 6, fmt.Sprintf("%s %s: %s", mark, item.Name, item.Amount))
		pdf.Ln(5)
		if item.Subtitle != nil {
			pdf.SetFont("Arial", "I", 9)
			pdf.SetTextColor(120, 120, 120)
			pdf.Cell(0, 5, "    "+*item.Subtitle)
			pdf.SetTextColor(0, 0, 0)
			pdf.SetFont("Arial", "", 11)
			pdf.Ln(5)
		}
		pdf.Ln(1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
