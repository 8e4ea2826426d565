// Package pricing derives the displayed price, discount and badges of an account.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BergomiStore/bergomi_store/internal/models"
)

// RecentWindow is how long after creation an account counts as recently created.
const RecentWindow = 7 * 24 * time.Hour

// Input holds the raw pricing flags of an account.
type Input struct {
	Price      decimal.Decimal
	PromoPrice decimal.NullDecimal
	IsPromo    bool
	IsNew      bool
}

// Result is the resolved pricing state. ShowPromo is always equal to HasDiscount.
type Result struct {
	EffectivePrice decimal.Decimal
	HasDiscount    bool
	Savings        decimal.Decimal
	ShowNew        bool
	ShowPromo      bool
}

// Resolve computes the pricing state from the raw flags. The promo flag alone
// never produces a discount: a promo price must be present and strictly lower
// than the regular price.
func Resolve(in Input) Result {
	res := Result{
		EffectivePrice: in.Price,
		Savings:        decimal.Zero,
		ShowNew:        in.IsNew,
	}
	if in.IsPromo && in.PromoPrice.Valid && in.PromoPrice.Decimal.LessThan(in.Price) {
		res.HasDiscount = true
		res.ShowPromo = true
		res.EffectivePrice = in.PromoPrice.Decimal
		res.Savings = in.Price.Sub(in.PromoPrice.Decimal).Round(2)
	}
	return res
}

// ForAccount resolves pricing for a stored account, ignoring any derived
// fields the server may have sent.
func ForAccount(a models.Account) Result {
	return Resolve(Input{
		Price:      a.Price,
		PromoPrice: a.PromoPrice,
		IsPromo:    a.IsPromo,
		IsNew:      a.IsNew,
	})
}

// Apply fills the derived fields of a.
func Apply(a *models.Account, now time.Time) {
	res := ForAccount(*a)
	a.EffectivePrice = res.EffectivePrice
	a.HasDiscount = res.HasDiscount
	a.IsRecentlyCreated = IsRecentlyCreated(a.CreatedAt, now)
}

// IsRecentlyCreated reports whether createdAt falls within RecentWindow of now.
func IsRecentlyCreated(createdAt, now time.Time) bool {
	if createdAt.IsZero() {
		return false
	}
	return !createdAt.Before(now.Add(-RecentWindow))
}
