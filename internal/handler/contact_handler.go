package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BergomiStore/bergomi_store/internal/models"
	"github.com/BergomiStore/bergomi_store/internal/utils"
)

// ContactService is what the contact link endpoints need.
type ContactService interface {
	Active(ctx context.Context) (*models.ContactLink, error)
	Set(ctx context.Context, link string) (*models.ContactLink, error)
}

// ContactHandler handles the buyer contact link endpoints.
type ContactHandler struct {
	contact ContactService
}

// NewContactHandler constructs a ContactHandler.
func NewContactHandler(contact ContactService) *ContactHandler {
	return &ContactHandler{contact: contact}
}

// SetContactLinkRequest is the body of POST /api/whatsapp-link/.
type SetContactLinkRequest struct {
	Link string `json:"link"`
}

// GetContactLink handles GET /api/whatsapp-link/
func (h *ContactHandler) GetContactLink(c *gin.Context) {
	link, err := h.contact.Active(c.Request.Context())
	if err != nil {
		utils.Error(c, err)
		return
	}
	if link.ID == 0 {
		c.JSON(http.StatusOK, gin.H{"link": ""})
		return
	}
	c.JSON(http.StatusOK, link)
}

// SetContactLink handles POST /api/whatsapp-link/
func (h *ContactHandler) SetContactLink(c *gin.Context) {
	var req SetContactLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Detail(c, http.StatusBadRequest, "JSON parse error - "+err.Error())
		return
	}
	link, err := h.contact.Set(c.Request.Context(), req.Link)
	if err != nil {
		utils.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}
