package models

import (
	"strings"
	"time"
)

// Category enumerates the fixed player card categories.
type Category string

const (
	CategoryManagers    Category = "managers"
	CategoryDefenders   Category = "defenders"
	CategoryMidfielders Category = "midfielders"
	CategoryForwards    Category = "forwards"
)

var categoryOrder = []Category{
	CategoryManagers,
	CategoryDefenders,
	CategoryMidfielders,
	CategoryForwards,
}

// Categories returns every category in display order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// ParseCategory returns the category named by s, or false when s is not one of them.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	for _, known := range categoryOrder {
		if c == known {
			return true
		}
	}
	return false
}

// Label returns the display name of the category.
func (c Category) Label() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// PlayerCard is a card image shown on an account's detail page.
// Cards belong to exactly one account and are removed with it.
type PlayerCard struct {
	ID        int64     `db:"id" json:"id,omitempty"`
	AccountID int64     `db:"account_id" json:"-"`
	Image     string    `db:"image" json:"image"`
	Category  Category  `db:"category" json:"category"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}
