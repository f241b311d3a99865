package quantity

import (
	"regexp"
	"strconv"
	"strings"
)

// ParsedQuantity is the structured result of parsing a free-text amount
// string such as "400g", "1/2 cup" or "to taste".
//
// When IsOptional is true the amount was a vague phrase and both Value and
// Unit are nil. ShowInList reports whether the ingredient is usable on a
// grocery list: vague phrases and unparseable residual text are excluded.
type ParsedQuantity struct {
	Value      *float64
	Unit       *string
	IsOptional bool
	ShowInList bool
}

// vagueMarkers are checked before any numeric pattern, so "a few cloves"
// is vague rather than "few" cloves.
var vagueMarkers = []string{
	"to taste",
	"as needed",
	"optional",
	"a pinch",
	"a dash",
	"drizzle",
	"sprinkle",
	"handful",
	"few",
	"some",
}

// unitPattern is the fixed unit vocabulary: metric mass and volume, common
// count words and US customary units. Singular and plural forms both match.
const unitPattern = `(g|kg|ml|l|cloves?|medium|large|small|cups?|tablespoons?|teaspoons?|tbsp|tsp|ounces?|oz|pounds?|lbs?|pieces?|slices?|bunches?|heads?|cans?|packages?|bottles?)`

var (
	reSimple   = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*` + unitPattern + `$`)
	reRange    = regexp.MustCompile(`^(\d+)-(\d+)\s*` + unitPattern + `$`)
	reFraction = regexp.MustCompile(`^(\d+)/(\d+)\s*` + unitPattern + `$`)
	reTrailing = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*` + unitPattern + `\s+.+$`)
)

// Parse converts a free-text amount string into a ParsedQuantity.
//
// The input is lower-cased and trimmed, then matched against an ordered set
// of cases, first match wins:
//
//  1. vague phrase ("to taste", "a pinch", ...) — optional, never listed
//  2. decimal + unit ("400g", "1.5 cups")
//  3. integer range + unit ("2-3 tablespoons") — value is the mean
//  4. fraction + unit ("1/2 cup")
//  5. decimal + unit + trailing text ("400g canned") — trailing words dropped
//
// Anything else yields a result with no value that is excluded from grocery
// lists. Parse never fails: ambiguity is not an error.
func Parse(raw string) ParsedQuantity {
	s := strings.ToLower(strings.TrimSpace(raw))

	for _, marker := range vagueMarkers {
		if strings.Contains(s, marker) {
			return ParsedQuantity{IsOptional: true}
		}
	}

	if m := reSimple.FindStringSubmatch(s); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return listed(v, m[2])
		}
	}

	if m := reRange.FindStringSubmatch(s); m != nil {
		lo, err1 := strconv.ParseFloat(m[1], 64)
		hi, err2 := strconv.ParseFloat(m[2], 64)
		if err1 == nil && err2 == nil {
			// Arithmetic mean of the bounds: good enough for shopping.
			return listed((lo+hi)/2, m[3])
		}
	}

	if m := reFraction.FindStringSubmatch(s); m != nil {
		num, err1 := strconv.ParseFloat(m[1], 64)
		den, err2 := strconv.ParseFloat(m[2], 64)
		if err1 == nil && err2 == nil && den != 0 {
			return listed(num/den, m[3])
		}
	}

	if m := reTrailing.FindStringSubmatch(s); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return listed(v, m[2])
		}
	}

	return ParsedQuantity{}
}

func listed(value float64, unit string) ParsedQuantity {
	return ParsedQuantity{
		Value:      &value,
		Unit:       &unit,
		ShowInList: true,
	}
}
