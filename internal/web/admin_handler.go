package web

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/BergomiStore/bergomi_store/internal/admin"
	"github.com/BergomiStore/bergomi_store/internal/editor"
	"github.com/BergomiStore/bergomi_store/internal/imageenc"
	"github.com/BergomiStore/bergomi_store/internal/models"
)

// Flash messages.
const (
	MsgSaved           = "Account saved successfully!"
	MsgDeleted         = "Account deleted successfully!"
	MsgDeleteFailed    = "Error deleting account."
	MsgLinkUpdated     = "WhatsApp link updated successfully!"
	MsgLinkFailed      = "Error updating WhatsApp link."
	MsgImageFailed     = "Error processing image. Please try again."
	MsgDraftExpired    = "This edit session has expired. Please start again."
	MsgAccountNotFound = "Account could not be loaded."
	MsgCardNotFound    = "Card not found."
)

// AdminHandler serves the admin panel under /admin/:token.
type AdminHandler struct {
	manager  *admin.Manager
	drafts   *editor.Store
	renderer *Renderer
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(manager *admin.Manager, drafts *editor.Store, renderer *Renderer) *AdminHandler {
	return &AdminHandler{manager: manager, drafts: drafts, renderer: renderer}
}

// Register mounts the admin routes on a group that already carries the gate.
func (h *AdminHandler) Register(g gin.IRouter) {
	g.GET("", h.Dashboard)
	g.POST("/contact-link", h.SetContactLink)

	g.GET("/new", h.NewAccount)
	g.GET("/accounts/:id/edit", h.EditAccount)
	g.GET("/accounts/:id/cards", h.EditCards)
	g.GET("/accounts/:id/delete", h.ConfirmDelete)
	g.POST("/accounts/:id/delete", h.DeleteAccount)

	g.GET("/drafts/:draft", h.DraftForm)
	g.POST("/drafts/:draft", h.UpdateDraft)
	g.POST("/drafts/:draft/save", h.SaveDraft)
	g.POST("/drafts/:draft/cancel", h.CancelDraft)

	g.GET("/drafts/:draft/cards", h.CardManager)
	g.POST("/drafts/:draft/cards", h.AddCard)
	g.POST("/drafts/:draft/upload", h.UploadCardImage)
	g.POST("/drafts/:draft/cards/:key/image", h.ReplaceCardImage)
	g.POST("/drafts/:draft/cards/:key/remove", h.RemoveCard)
}

// Dashboard lists accounts and the contact link.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	accounts, err := h.manager.List(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to fetch accounts")
	}
	link, err := h.manager.ContactLink(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to fetch contact link")
	}

	h.renderer.HTML(c, http.StatusOK, "admin_dashboard.html", dashboardPage{
		adminPage:   h.page(c, "Bergomi Store Admin Panel"),
		ContactLink: link,
		Accounts:    newAccountViews(accounts),
		Unverified:  !c.GetBool(ctxAdminVerified),
	})
}

// SetContactLink stores the contact URL.
func (h *AdminHandler) SetContactLink(c *gin.Context) {
	if err := h.manager.SetContactLink(c.Request.Context(), c.PostForm("link")); err != nil {
		h.redirect(c, "", MsgLinkFailed)
		return
	}
	h.redirect(c, "", MsgLinkUpdated)
}

// NewAccount opens a draft for a new account.
func (h *AdminHandler) NewAccount(c *gin.Context) {
	id := h.drafts.Put(editor.NewDraft())
	h.redirect(c, "/drafts/"+id, "")
}

// EditAccount opens a draft for an existing account.
func (h *AdminHandler) EditAccount(c *gin.Context) {
	h.openDraft(c, "")
}

// EditCards opens a draft for an existing account at the card manager.
func (h *AdminHandler) EditCards(c *gin.Context) {
	h.openDraft(c, "/cards")
}

func (h *AdminHandler) openDraft(c *gin.Context, suffix string) {
	id, ok := accountID(c)
	if !ok {
		h.redirect(c, "", MsgAccountNotFound)
		return
	}
	d, err := h.manager.Open(c.Request.Context(), id)
	if err != nil {
		log.Warn().Err(err).Int64("account_id", id).Msg("Failed to open account")
		h.redirect(c, "", MsgAccountNotFound)
		return
	}
	h.redirect(c, "/drafts/"+h.drafts.Put(d)+suffix, "")
}

// ConfirmDelete asks before removing an account.
func (h *AdminHandler) ConfirmDelete(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		h.redirect(c, "", MsgAccountNotFound)
		return
	}
	acc, err := h.manager.Get(c.Request.Context(), id)
	if err != nil {
		log.Warn().Err(err).Int64("account_id", id).Msg("Failed to load account for deletion")
		h.redirect(c, "", MsgAccountNotFound)
		return
	}
	h.renderer.HTML(c, http.StatusOK, "admin_delete.html", deletePage{
		adminPage: h.page(c, "Delete Account"),
		Account:   newAccountView(*acc),
	})
}

// DeleteAccount removes the account after confirmation.
func (h *AdminHandler) DeleteAccount(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		h.redirect(c, "", MsgDeleteFailed)
		return
	}
	if err := h.manager.Delete(c.Request.Context(), id); err != nil {
		h.redirect(c, "", MsgDeleteFailed)
		return
	}
	h.redirect(c, "", MsgDeleted)
}

// DraftForm renders the account form with its live preview.
func (h *AdminHandler) DraftForm(c *gin.Context) {
	d, ok := h.loadDraft(c)
	if !ok {
		return
	}
	page := newDraftPage(h.base(c), c.Query("msg"), d)
	h.renderer.HTML(c, http.StatusOK, "admin_form.html", page)
}

// CardManager renders the per-category card editor.
func (h *AdminHandler) CardManager(c *gin.Context) {
	d, ok := h.loadDraft(c)
	if !ok {
		return
	}
	page := newDraftPage(h.base(c), c.Query("msg"), d)
	page.Title = "Player Cards"
	h.renderer.HTML(c, http.StatusOK, "admin_cards.html", page)
}

type draftForm struct {
	Name        string `form:"name"`
	Price       string `form:"price"`
	PromoPrice  string `form:"promo_price"`
	Rating      int    `form:"rating" binding:"min=0,max=5"`
	Description string `form:"description"`
	IsNew       bool   `form:"is_new"`
	IsPromo     bool   `form:"is_promo"`
	Action      string `form:"action"`
}

// UpdateDraft applies the submitted form to the draft. With action=save the
// draft is then submitted.
func (h *AdminHandler) UpdateDraft(c *gin.Context) {
	id := c.Param("draft")

	var form draftForm
	if err := c.ShouldBind(&form); err != nil {
		h.redirect(c, "/drafts/"+id, "Invalid form: "+err.Error())
		return
	}
	images, err := encodeImages(c)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to encode image")
		h.redirect(c, "/drafts/"+id, MsgImageFailed)
		return
	}

	_, err = h.drafts.Update(id, func(d *editor.Draft) error {
		form.apply(d)
		for field, src := range images {
			if err := d.SetImage(field, src); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		h.draftError(c, id, err)
		return
	}

	if form.Action == "save" {
		h.SaveDraft(c)
		return
	}
	h.redirect(c, "/drafts/"+id, "")
}

func (f draftForm) apply(d *editor.Draft) {
	d.Name = f.Name
	d.Price, _ = parseDecimal(strings.TrimSpace(f.Price))
	if p, ok := parseDecimal(strings.TrimSpace(f.PromoPrice)); ok {
		d.PromoPrice = decimal.NewNullDecimal(p)
	} else {
		d.PromoPrice = decimal.NullDecimal{}
	}
	d.Rating = f.Rating
	if d.Rating == 0 {
		d.Rating = models.DefaultRating
	}
	d.Description = f.Description
	d.IsNew = f.IsNew
	d.IsPromo = f.IsPromo
}

func encodeImages(c *gin.Context) (map[editor.ImageField]string, error) {
	out := map[editor.ImageField]string{}
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return out, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	for _, field := range editor.ImageFields {
		files := form.File[string(field)]
		if len(files) == 0 || files[0].Size == 0 {
			continue
		}
		src, err := imageenc.EncodeFile(files[0])
		if err != nil {
			return nil, err
		}
		out[field] = src
	}
	return out, nil
}

// SaveDraft submits the draft. On success the draft is discarded.
func (h *AdminHandler) SaveDraft(c *gin.Context) {
	id := c.Param("draft")
	d, err := h.drafts.Get(id)
	if err != nil {
		h.draftError(c, id, err)
		return
	}

	if _, err := h.manager.Save(c.Request.Context(), d); err != nil {
		h.redirect(c, "/drafts/"+id+returnSuffix(c), admin.Describe(err))
		return
	}
	h.drafts.Delete(id)
	h.redirect(c, "", MsgSaved)
}

// CancelDraft discards the draft.
func (h *AdminHandler) CancelDraft(c *gin.Context) {
	h.drafts.Delete(c.Param("draft"))
	h.redirect(c, "", "")
}

// AddCard appends an empty card slot to a category.
func (h *AdminHandler) AddCard(c *gin.Context) {
	id := c.Param("draft")
	category, ok := models.ParseCategory(c.PostForm("category"))
	if !ok {
		h.redirect(c, "/drafts/"+id+"/cards", editor.ErrUnknownCategory.Error())
		return
	}
	_, err := h.drafts.Update(id, func(d *editor.Draft) error {
		_, err := d.AddCard(category)
		return err
	})
	if err != nil {
		h.draftError(c, id, err)
		return
	}
	h.redirect(c, "/drafts/"+id+"/cards", "")
}

// UploadCardImage writes an image at a category-relative position, appending a
// card when the position is empty.
func (h *AdminHandler) UploadCardImage(c *gin.Context) {
	id := c.Param("draft")
	category, ok := models.ParseCategory(c.PostForm("category"))
	if !ok {
		h.redirect(c, "/drafts/"+id+"/cards", editor.ErrUnknownCategory.Error())
		return
	}
	src, err := uploadedImage(c)
	if err != nil {
		h.redirect(c, "/drafts/"+id+"/cards", MsgImageFailed)
		return
	}

	_, err = h.drafts.Update(id, func(d *editor.Draft) error {
		index := len(d.CardsIn(category))
		if raw := c.PostForm("index"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				index = n
			}
		}
		_, err := d.ReplaceImageAt(category, index, src)
		return err
	})
	if err != nil {
		h.draftError(c, id, err)
		return
	}
	h.redirect(c, "/drafts/"+id+"/cards", "")
}

// ReplaceCardImage overwrites the image of one card.
func (h *AdminHandler) ReplaceCardImage(c *gin.Context) {
	id, key := c.Param("draft"), c.Param("key")
	src, err := uploadedImage(c)
	if err != nil {
		h.redirect(c, "/drafts/"+id+"/cards", MsgImageFailed)
		return
	}
	_, err = h.drafts.Update(id, func(d *editor.Draft) error {
		return d.ReplaceImage(key, src)
	})
	if err != nil {
		h.draftError(c, id, err)
		return
	}
	h.redirect(c, "/drafts/"+id+"/cards", "")
}

// RemoveCard deletes one card.
func (h *AdminHandler) RemoveCard(c *gin.Context) {
	id, key := c.Param("draft"), c.Param("key")
	_, err := h.drafts.Update(id, func(d *editor.Draft) error {
		return d.RemoveCard(key)
	})
	if err != nil {
		h.draftError(c, id, err)
		return
	}
	h.redirect(c, "/drafts/"+id+"/cards", "")
}

func uploadedImage(c *gin.Context) (string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return "", err
	}
	return imageenc.EncodeFile(fh)
}

func (h *AdminHandler) loadDraft(c *gin.Context) (*editor.Draft, bool) {
	d, err := h.drafts.Get(c.Param("draft"))
	if err != nil {
		h.redirect(c, "", MsgDraftExpired)
		return nil, false
	}
	return d, true
}

func (h *AdminHandler) draftError(c *gin.Context, id string, err error) {
	switch {
	case errors.Is(err, editor.ErrDraftNotFound):
		h.redirect(c, "", MsgDraftExpired)
	case errors.Is(err, editor.ErrCardNotFound):
		h.redirect(c, "/drafts/"+id+"/cards", MsgCardNotFound)
	default:
		log.Error().Err(err).Str("draft_id", id).Msg("Draft update failed")
		h.redirect(c, "/drafts/"+id, err.Error())
	}
}

func (h *AdminHandler) base(c *gin.Context) string {
	return "/admin/" + url.PathEscape(c.Param("token"))
}

func (h *AdminHandler) page(c *gin.Context, title string) adminPage {
	return adminPage{Title: title, Base: h.base(c), Msg: c.Query("msg")}
}

// redirect sends the browser to base+path with an optional flash message.
func (h *AdminHandler) redirect(c *gin.Context, path, msg string) {
	target := h.base(c) + path
	if msg != "" {
		target += "?msg=" + url.QueryEscape(msg)
	}
	c.Redirect(http.StatusSeeOther, target)
}

func accountID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// returnSuffix keeps the admin on the card manager when saving from there.
func returnSuffix(c *gin.Context) string {
	if c.PostForm("from") == "cards" {
		return "/cards"
	}
	return ""
}
