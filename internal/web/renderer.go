// Package web serves the storefront and the admin panel as server-rendered
// HTML on top of the catalog API client.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/BergomiStore/bergomi_store/internal/gallery"
	"github.com/BergomiStore/bergomi_store/internal/models"
	"github.com/BergomiStore/bergomi_store/internal/pricing"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{
	"catalog.html",
	"detail.html",
	"admin_dashboard.html",
	"admin_form.html",
	"admin_cards.html",
	"admin_delete.html",
	"admin_denied.html",
}

// Renderer executes page templates inside the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page once.
func NewRenderer() (*Renderer, error) {
	funcs := templateFuncs()
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		tpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.pages[page] = tpl
	}
	return r, nil
}

// HTML renders page with data and writes it with status.
func (r *Renderer) HTML(c *gin.Context, status int, page string, data any) {
	tpl, ok := r.pages[page]
	if !ok {
		log.Error().Str("page", page).Msg("Unknown template")
		c.String(http.StatusInternalServerError, "template not found")
		return
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Error().Err(err).Str("page", page).Msg("Failed to render template")
		c.String(http.StatusInternalServerError, "render error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"price":              pricing.FormatPrice,
		"savings":            pricing.FormatSavings,
		"stars":              stars,
		"markdown":           renderMarkdown,
		"img":                imageSource,
		"categoryLabel":      func(c models.Category) string { return c.Label() },
		"cardPlaceholder":    func() template.URL { return template.URL(gallery.CardPlaceholder) },
		"catalogPlaceholder": func() template.URL { return template.URL(gallery.CatalogPlaceholder) },
		"decimalInput":       decimalInput,
		"pathEscape":         url.PathEscape,
		"ratings":            func() []int { return []int{1, 2, 3, 4, 5} },
	}
}

func stars(n int) []struct{} {
	if n < 1 || n > 5 {
		n = models.DefaultRating
	}
	return make([]struct{}, n)
}

// imageSource lets stored data URLs and plain http(s) URLs through as image
// sources. Anything else falls back to the card placeholder.
func imageSource(src string) template.URL {
	switch {
	case strings.HasPrefix(src, "data:image/"),
		strings.HasPrefix(src, "https://"),
		strings.HasPrefix(src, "http://"),
		strings.HasPrefix(src, "/"):
		return template.URL(src)
	}
	return template.URL(gallery.CardPlaceholder)
}

func decimalInput(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}
