package models

import (
	"fmt"
	"strings"
)

// Category is an expense category. The backend encodes it as the position
// in a fixed list of twelve names, so the order of these constants is part
// of the wire contract.
type Category int

const (
	CategoryOther Category = iota
	CategoryBills
	CategoryFood
	CategoryEntertainment
	CategoryTransportation
	CategoryEMI
	CategoryHealthcare
	CategoryEducation
	CategoryInvestment
	CategoryShopping
	CategoryFuel
	CategoryGroceries
)

// DefaultCategory is preselected when the expense form opens.
const DefaultCategory = CategoryFood

var categoryNames = [...]string{
	"Other",
	"Bills",
	"Food",
	"Entertainment",
	"Transportation",
	"EMI",
	"Healthcare",
	"Education",
	"Investment",
	"Shopping",
	"Fuel",
	"Groceries",
}

var categoryEmojis = [...]string{
	"🔖",
	"🧾",
	"🍽️",
	"🎮",
	"🚗",
	"💳",
	"🏥",
	"🎓",
	"💼",
	"🛒",
	"⛽",
	"🛍️",
}

// Categories returns every category in wire order.
func Categories() []Category {
	out := make([]Category, len(categoryNames))
	for i := range categoryNames {
		out[i] = Category(i)
	}
	return out
}

// Valid reports whether c is one of the twelve known categories.
func (c Category) Valid() bool {
	return c >= 0 && int(c) < len(categoryNames)
}

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Emoji returns the display emoji for c, or an empty string if c is unknown.
func (c Category) Emoji() string {
	if !c.Valid() {
		return ""
	}
	return categoryEmojis[c]
}

// ParseCategory resolves a category name, case-insensitively.
func ParseCategory(name string) (Category, error) {
	for i, n := range categoryNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown category: %q", name)
}
