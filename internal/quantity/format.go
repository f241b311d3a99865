package quantity

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatValue renders a quantity value for display. Whole numbers render
// without a decimal point; everything else renders with one decimal digit
// and a trailing ".0" stripped. Values like 2.50 are not rounded specially —
// only the exact ".0" suffix is removed.
func FormatValue(v float64) string {
	if v == math.Trunc(v) {
		return strconv.Itoa(int(v))
	}
	return strings.TrimSuffix(fmt.Sprintf("%.1f", v), ".0")
}
