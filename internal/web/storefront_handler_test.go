package web

import (
	"errors"
	"net/http"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BergomiStore/bergomi_store/internal/models"
)

func promoAccount() models.Account {
	return models.Account{
		ID:          1,
		Name:        "Legends Pack",
		Price:       decimal.RequireFromString("100.00"),
		PromoPrice:  decimal.NewNullDecimal(decimal.RequireFromString("80.00")),
		Rating:      4,
		ImageNormal: "data:image/png;base64,AAAA",
		ImageHover:  "data:image/png;base64,BBBB",
		ImageDetail: "data:image/png;base64,CCCC",
		Description: "**Top** squad\n<script>alert(1)</script>",
		IsPromo:     true,
		IsNew:       true,
		PlayerCards: []models.PlayerCard{
			{ID: 1, Category: models.CategoryForwards, Image: "data:image/png;base64,F1"},
			{ID: 2, Category: models.CategoryManagers, Image: "data:image/png;base64,M1"},
			{ID: 3, Category: models.CategoryForwards, Image: "data:image/png;base64,F2"},
		},
	}
}

func plainAccount() models.Account {
	return models.Account{
		ID:          2,
		Name:        "Budget XI",
		Price:       decimal.RequireFromString("50.00"),
		ImageNormal: "data:image/png;base64,AAAA",
		ImageHover:  "data:image/png;base64,BBBB",
		ImageDetail: "data:image/png;base64,CCCC",
		Description: "plain",
		// server-side flags that must not be trusted
		HasDiscount: true,
	}
}

func TestDetailWithDiscount(t *testing.T) {
	api := newFakeAPI(promoAccount())
	api.link = "https://chat.example/group"
	app := newTestApp(t, api, false)

	w := app.get("/account/1")
	require.Equal(t, http.StatusOK, w.Code)
	doc := parseDoc(t, w)

	assert.Equal(t, "$100", text(doc, "#original-price"))
	assert.Equal(t, "$80", text(doc, "#promo-price"))
	assert.Equal(t, "$20.00", text(doc, "#you-save"))
	assert.Equal(t, "Promo Price: $80", text(doc, "#purchase .row:nth-of-type(2)"))
	assert.Equal(t, "Buy Now - $80", text(doc, "#buy-now"))
	href, _ := doc.Find("#buy-now").Attr("href")
	assert.Equal(t, "https://chat.example/group", href)
	assert.Equal(t, 0, doc.Find("#total-price").Length())

	assert.Equal(t, 1, doc.Find(".badge-promo").Length())
	assert.Equal(t, "SAVE $20.00", text(doc, ".badge-save"))
	assert.Equal(t, 1, doc.Find(".badge-new").Length())
	assert.Equal(t, "4/5 Stars", text(doc, "#rating"))
}

func TestDetailWithoutDiscount(t *testing.T) {
	api := newFakeAPI(plainAccount())
	api.link = "https://chat.example/group"
	doc := parseDoc(t, newTestApp(t, api, false).get("/account/2"))

	assert.Equal(t, "$50", text(doc, "#total-price"))
	assert.Equal(t, "Total Price: $50", text(doc, "#purchase .row"))
	assert.Equal(t, "Buy Now - $50", text(doc, "#buy-now"))
	assert.Equal(t, 0, doc.Find("#promo-price").Length())
	assert.Equal(t, 0, doc.Find(".badge-promo").Length())
	assert.Equal(t, "5/5 Stars", text(doc, "#rating"))
}

func TestDetailWithoutContactLink(t *testing.T) {
	api := newFakeAPI(plainAccount())
	api.linkErr = errors.New("boom")
	doc := parseDoc(t, newTestApp(t, api, false).get("/account/2"))

	btn := doc.Find("button#buy-now")
	require.Equal(t, 1, btn.Length())
	_, disabled := btn.Attr("disabled")
	assert.True(t, disabled)
	assert.Equal(t, "Contact info not available", text(doc, "#buy-now"))
}

func TestDetailGallery(t *testing.T) {
	doc := parseDoc(t, newTestApp(t, newFakeAPI(promoAccount()), false).get("/account/1"))

	var order []string
	doc.Find("#best-players .category").Each(func(_ int, s *goquery.Selection) {
		cat, _ := s.Attr("data-category")
		order = append(order, cat)
	})
	assert.Equal(t, []string{"managers", "forwards"}, order)
	assert.Equal(t, 2, doc.Find(`.category[data-category="forwards"] img.player-card`).Length())
	assert.Equal(t, 0, doc.Find("#no-cards").Length())
	assert.Equal(t, 0, doc.Find(".scroll-hint").Length())
}

func TestDetailScrollHint(t *testing.T) {
	acc := plainAccount()
	for i := 0; i < 5; i++ {
		acc.PlayerCards = append(acc.PlayerCards, models.PlayerCard{ID: int64(i), Category: models.CategoryDefenders, Image: "data:image/png;base64,D"})
	}
	doc := parseDoc(t, newTestApp(t, newFakeAPI(acc), false).get("/account/2"))
	assert.Equal(t, 1, doc.Find(".scroll-hint").Length())
}

func TestDetailWithoutCards(t *testing.T) {
	doc := parseDoc(t, newTestApp(t, newFakeAPI(plainAccount()), false).get("/account/2"))
	assert.Equal(t, "No player cards available for this account.", text(doc, "#no-cards"))
	assert.Equal(t, 0, doc.Find("#best-players .category").Length())
}

func TestDetailDescriptionIsSanitised(t *testing.T) {
	doc := parseDoc(t, newTestApp(t, newFakeAPI(promoAccount()), false).get("/account/1"))
	desc := doc.Find("#description")
	assert.Equal(t, "Top", desc.Find("strong").Text())
	assert.Equal(t, 0, desc.Find("script").Length())
}

func TestDetailRedirects(t *testing.T) {
	app := newTestApp(t, newFakeAPI(plainAccount()), false)

	for _, path := range []string{"/account/abc", "/account/0", "/account/999"} {
		w := app.get(path)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/", w.Header().Get("Location"), path)
	}

	app.api.getErr = errUnreachable
	w := app.get("/account/2")
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestCatalog(t *testing.T) {
	app := newTestApp(t, newFakeAPI(promoAccount(), plainAccount()), false)
	w := app.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	doc := parseDoc(t, w)

	cards := doc.Find(".account")
	require.Equal(t, 2, cards.Length())

	first := cards.Eq(0)
	assert.Equal(t, "Legends Pack", first.Find(".name").Text())
	assert.Equal(t, "$80", first.Find(".current-price").Text())
	assert.Equal(t, "$100", first.Find(".original-price").Text())
	assert.Equal(t, 1, first.Find(".badge-new").Length())
	assert.Equal(t, 1, first.Find(".badge-promo").Length())
	hover, _ := first.Find("img").Attr("data-hover")
	assert.Equal(t, "data:image/png;base64,BBBB", hover)

	second := cards.Eq(1)
	assert.Equal(t, "$50", second.Find(".current-price").Text())
	assert.Equal(t, 0, second.Find(".badge-promo").Length(), "server has_discount is ignored")
	assert.Equal(t, 5, len([]rune(second.Find(".stars").Text())))
	assert.Equal(t, 0, doc.Find("#empty-state").Length())
}

func TestCatalogEmptyStates(t *testing.T) {
	app := newTestApp(t, newFakeAPI(), false)
	doc := parseDoc(t, app.get("/"))
	assert.Equal(t, "No accounts available yet.", text(doc, "#empty-state"))

	app.api.listErr = errUnreachable
	w := app.get("/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "No accounts available yet.", text(parseDoc(t, w), "#empty-state"))
}

func TestHealth(t *testing.T) {
	w := newTestApp(t, newFakeAPI(), false).get("/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}
