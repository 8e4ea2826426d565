package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/BergomiStore/bergomi_store/internal/utils"
)

// Handlers groups every API handler.
type Handlers struct {
	Health  *HealthHandler
	Account *AccountHandler
	Contact *ContactHandler
	Admin   *AdminHandler
}

// SetupRoutes registers the catalog API.
func SetupRoutes(r *gin.Engine, h *Handlers) {
	r.GET("/", h.Health.GetHealth)

	api := r.Group("/api")
	{
		api.GET("/accounts/", h.Account.ListAccounts)
		api.POST("/accounts/", h.Account.CreateAccount)
		api.GET("/accounts/:id/", h.Account.GetAccount)
		api.PUT("/accounts/:id/", h.Account.UpdateAccount)
		api.DELETE("/accounts/:id/", h.Account.DeleteAccount)

		api.GET("/whatsapp-link/", h.Contact.GetContactLink)
		api.POST("/whatsapp-link/", h.Contact.SetContactLink)

		api.GET("/verify-admin/:token/", h.Admin.VerifyToken)
	}

	r.NoRoute(utils.NotFound)
}
