package catalog

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Filter returns the items matching category and query, in their original
// order. AllCategories disables the category constraint; an empty query
// matches everything. The query is matched case-insensitively against title
// and description and literally against the decimal lot number.
func Filter(items []Item, category Category, query string) []Item {
	fold := cases.Fold()
	needle := fold.String(norm.NFC.String(query))

	out := make([]Item, 0, len(items))
	for _, it := range items {
		if category != AllCategories && it.Category != category {
			continue
		}
		if query != "" && !matches(fold, it, needle, query) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matches(fold cases.Caser, it Item, needle, raw string) bool {
	if strings.Contains(fold.String(norm.NFC.String(it.Title)), needle) {
		return true
	}
	if strings.Contains(fold.String(norm.NFC.String(it.Description)), needle) {
		return true
	}
	return strings.Contains(strconv.Itoa(it.LotNumber), raw)
}

// ParseCategory maps a tab label to a Category, ignoring case. An empty
// label means AllCategories. Unknown labels come back as given, so they
// match no lot.
func ParseCategory(s string) Category {
	s = norm.NFC.String(strings.TrimSpace(s))
	if s == "" {
		return AllCategories
	}
	for _, c := range []Category{AllCategories, CategoryRealEstate, CategoryVehicles, CategoryArt, CategoryJudicial, CategoryOther} {
		if strings.EqualFold(s, string(c)) {
			return c
		}
	}
	return Category(s)
}
