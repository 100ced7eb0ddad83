package dataprep

import (
	"fmt"
	"sort"
	"strings"
)

// CategoryOrder decides how ordinal codes are assigned to distinct values.
type CategoryOrder int

const (
	// OrderAppearance numbers values in the order they are first seen.
	OrderAppearance CategoryOrder = iota
	// OrderSorted numbers values in lexical order.
	OrderSorted
)

func (o CategoryOrder) String() string {
	if o == OrderSorted {
		return "sorted"
	}
	return "appearance"
}

// ParseCategoryOrder maps a config string to a CategoryOrder.
func ParseCategoryOrder(s string) (CategoryOrder, error) {
	switch strings.ToLower(s) {
	case "", "appearance":
		return OrderAppearance, nil
	case "sorted":
		return OrderSorted, nil
	}
	return 0, fmt.Errorf("unknown category order %q", s)
}

// FitCategories lists the distinct values of data; a value's index in the
// result is its ordinal code.
func FitCategories(data []string, order CategoryOrder) []string {
	seen := map[string]struct{}{}
	var cats []string
	for _, v := range data {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			cats = append(cats, v)
		}
	}
	if order == OrderSorted {
		sort.Strings(cats)
	}
	return cats
}
