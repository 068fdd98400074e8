package model

import "strings"

// Category is one of the lending-protocol activity types a record can carry.
type Category int

// Recognised transaction categories. The order is the column order used in
// totals and exports.
const (
	Deposit Category = iota
	Withdraw
	Borrow
	Repay
	Liquidate
)

// NumCategories is the number of recognised categories.
const NumCategories = 5

var categoryNames = [NumCategories]string{
	"Deposit",
	"Withdraw",
	"Borrow",
	"Repay",
	"Liquidate",
}

// Categories returns every recognised category in column order.
func Categories() []Category {
	return []Category{Deposit, Withdraw, Borrow, Repay, Liquidate}
}

// Valid reports whether c is one of the recognised categories.
func (c Category) Valid() bool {
	return c >= 0 && int(c) < NumCategories
}

func (c Category) String() string {
	if !c.Valid() {
		return "Unknown"
	}
	return categoryNames[c]
}

// Key returns the plural document key the category is stored under, e.g. "deposits".
func (c Category) Key() string {
	return strings.ToLower(c.String()) + "s"
}

// Column returns the export column name for the category total, e.g. "total_deposit".
func (c Category) Column() string {
	return "total_" + strings.ToLower(c.String())
}

// ParseCategory resolves a category from either its document key ("repays")
// or its singular name ("Repay"). Matching is case-insensitive and a single
// trailing "s" is dropped before comparison.
func ParseCategory(s string) (Category, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return 0, false
	}
	name = strings.TrimSuffix(name, "s")

	for i, candidate := range categoryNames {
		if strings.ToLower(candidate) == name {
			return Category(i), true
		}
	}
	return 0, false
}
