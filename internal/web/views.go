package web

import (
	"github.com/shopspring/decimal"

	"github.com/BergomiStore/bergomi_store/internal/editor"
	"github.com/BergomiStore/bergomi_store/internal/gallery"
	"github.com/BergomiStore/bergomi_store/internal/models"
	"github.com/BergomiStore/bergomi_store/internal/pricing"
)

// AccountView is an account paired with its resolved pricing state.
type AccountView struct {
	models.Account
	Pricing pricing.Result
	Stars   int
}

func newAccountView(acc models.Account) AccountView {
	return AccountView{
		Account: acc,
		Pricing: pricing.ForAccount(acc),
		Stars:   acc.StarCount(),
	}
}

func newAccountViews(accounts []models.Account) []AccountView {
	out := make([]AccountView, 0, len(accounts))
	for _, acc := range accounts {
		out = append(out, newAccountView(acc))
	}
	return out
}

type catalogPage struct {
	Title    string
	Accounts []AccountView
}

type detailPage struct {
	Title       string
	Account     AccountView
	Sections    []gallery.Section
	HasCards    bool
	ContactLink string
}

// BuyLabel is the text of the buy control.
func (p detailPage) BuyLabel() string {
	return "Buy Now - " + pricing.FormatPrice(p.Account.Pricing.EffectivePrice)
}

type adminPage struct {
	Title string
	Base  string
	Msg   string
}

type dashboardPage struct {
	adminPage
	ContactLink string
	Accounts    []AccountView
	Unverified  bool
}

type deletePage struct {
	adminPage
	Account AccountView
}

type deniedPage struct {
	Title string
}

// cardGroup is one category block in the card manager.
type cardGroup struct {
	Category models.Category
	Label    string
	Cards    []editor.Card
}

// ShowScrollHint mirrors the storefront gallery hint.
func (g cardGroup) ShowScrollHint() bool {
	return len(g.Cards) > gallery.ScrollHintThreshold
}

type draftPage struct {
	adminPage
	Draft    *editor.Draft
	Preview  pricing.Result
	Warnings []string
	Groups   []cardGroup
	Images   []imageSlot
}

type imageSlot struct {
	Field editor.ImageField
	Label string
	Value string
}

// PromoPriceInput is the promo price as an input value.
func (p draftPage) PromoPriceInput() string {
	if !p.Draft.PromoPrice.Valid {
		return ""
	}
	return p.Draft.PromoPrice.Decimal.String()
}

// SaveLabel names the primary submit action.
func (p draftPage) SaveLabel() string {
	if p.Draft.Persisted() {
		return "Update Account"
	}
	return "Create Account"
}

var imageLabels = map[editor.ImageField]string{
	editor.ImageNormal: "Normal Image",
	editor.ImageHover:  "Hover Image",
	editor.ImageDetail: "Detail Image (Large)",
}

func newDraftPage(base, msg string, d *editor.Draft) draftPage {
	page := draftPage{
		adminPage: adminPage{Title: "Edit Account", Base: base, Msg: msg},
		Draft:     d,
		Preview:   d.Preview(),
		Warnings:  d.Warnings(),
	}
	if !d.Persisted() {
		page.Title = "Add New Account"
	}
	for _, f := range editor.ImageFields {
		page.Images = append(page.Images, imageSlot{Field: f, Label: imageLabels[f], Value: d.Image(f)})
	}
	for _, cat := range models.Categories() {
		page.Groups = append(page.Groups, cardGroup{Category: cat, Label: cat.Label(), Cards: d.CardsIn(cat)})
	}
	return page
}

func parseDecimal(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
