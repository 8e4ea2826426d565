package web

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BergomiStore/bergomi_store/internal/gallery"
	"github.com/BergomiStore/bergomi_store/internal/models"
)

// Catalog is the read side of the catalog API.
type Catalog interface {
	ListAccounts(ctx context.Context) ([]models.Account, error)
	GetAccount(ctx context.Context, id int64) (*models.Account, error)
	GetContactLink(ctx context.Context) (string, error)
}

// StorefrontHandler serves the public catalog and detail pages.
type StorefrontHandler struct {
	catalog  Catalog
	renderer *Renderer
}

// NewStorefrontHandler creates a new StorefrontHandler.
func NewStorefrontHandler(catalog Catalog, renderer *Renderer) *StorefrontHandler {
	return &StorefrontHandler{catalog: catalog, renderer: renderer}
}

// Register mounts the storefront routes.
func (h *StorefrontHandler) Register(r gin.IRouter) {
	r.GET("/", h.Catalog)
	r.GET("/account/:id", h.Detail)
	r.GET("/healthz", h.Health)
}

// Catalog renders the account grid. Fetch failures render the empty state.
func (h *StorefrontHandler) Catalog(c *gin.Context) {
	accounts, err := h.catalog.ListAccounts(c.Request.Context())
	if err != nil {
		log.Warn().Err(err).Msg("Failed to fetch accounts")
		accounts = nil
	}

	h.renderer.HTML(c, http.StatusOK, "catalog.html", catalogPage{
		Title:    "Bergomi Store",
		Accounts: newAccountViews(accounts),
	})
}

// Detail renders one account. Any failure to load it redirects to the catalog.
func (h *StorefrontHandler) Detail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.Redirect(http.StatusFound, "/")
		return
	}

	ctx := c.Request.Context()
	acc, err := h.catalog.GetAccount(ctx, id)
	if err != nil {
		log.Warn().Err(err).Int64("account_id", id).Msg("Failed to fetch account")
		c.Redirect(http.StatusFound, "/")
		return
	}

	link, err := h.catalog.GetContactLink(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to fetch contact link")
		link = ""
	}

	h.renderer.HTML(c, http.StatusOK, "detail.html", detailPage{
		Title:       acc.Name,
		Account:     newAccountView(*acc),
		Sections:    gallery.Partition(acc.PlayerCards),
		HasCards:    len(acc.PlayerCards) > 0,
		ContactLink: link,
	})
}

// Health reports liveness of the web server.
func (h *StorefrontHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
