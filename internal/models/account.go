package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultRating is applied when an account is stored without a rating.
const DefaultRating = 5

// Account represents a pre-made game account listed in the catalog.
// Fields are tagged for both DB scanning and JSON serialization.
type Account struct {
	ID          int64               `db:"id" json:"id"`
	Name        string              `db:"name" json:"name"`
	Price       decimal.Decimal     `db:"price" json:"price"`
	PromoPrice  decimal.NullDecimal `db:"promo_price" json:"promo_price"`
	Rating      int                 `db:"rating" json:"rating"`
	ImageNormal string              `db:"image_normal" json:"image_normal"`
	ImageHover  string              `db:"image_hover" json:"image_hover"`
	ImageDetail string              `db:"image_detail" json:"image_detail"`
	Description string              `db:"description" json:"description"`
	IsActive    bool                `db:"is_active" json:"is_active"`
	IsNew       bool                `db:"is_new" json:"is_new"`
	IsPromo     bool                `db:"is_promo" json:"is_promo"`
	CreatedAt   time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time           `db:"updated_at" json:"-"`

	PlayerCards []PlayerCard `db:"-" json:"player_cards"`

	// Derived fields, computed on read and never stored.
	EffectivePrice    decimal.Decimal `db:"-" json:"effective_price"`
	HasDiscount       bool            `db:"-" json:"has_discount"`
	IsRecentlyCreated bool            `db:"-" json:"is_recently_created"`
}

// StarCount returns the rating used for display, falling back to the default.
func (a *Account) StarCount() int {
	if a.Rating < 1 || a.Rating > 5 {
		return DefaultRating
	}
	return a.Rating
}

// AccountInput is the create/replace payload for an account.
type AccountInput struct {
	Name        string              `json:"name"`
	Price       decimal.Decimal     `json:"price"`
	PromoPrice  decimal.NullDecimal `json:"promo_price"`
	Rating      int                 `json:"rating"`
	ImageNormal string              `json:"image_normal"`
	ImageHover  string              `json:"image_hover"`
	ImageDetail string              `json:"image_detail"`
	Description string              `json:"description"`
	IsNew       bool                `json:"is_new"`
	IsPromo     bool                `json:"is_promo"`
	PlayerCards []CardInput         `json:"player_cards"`
}

// CardInput is one player card inside an AccountInput.
type CardInput struct {
	Category Category `json:"category"`
	Image    string   `json:"image"`
}
