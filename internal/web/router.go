package web

import (
	"github.com/gin-gonic/gin"

	"github.com/BergomiStore/bergomi_store/internal/admin"
)

// MaxUploadMemory bounds the in-memory part of multipart parsing.
const MaxUploadMemory = 32 << 20

// Routes mounts the storefront and the gated admin panel on r.
func Routes(r *gin.Engine, storefront *StorefrontHandler, adminHandler *AdminHandler, gate *admin.Gate, renderer *Renderer) {
	r.MaxMultipartMemory = MaxUploadMemory

	storefront.Register(r)

	panel := r.Group("/admin/:token")
	panel.Use(AdminGateMiddleware(gate, renderer))
	adminHandler.Register(panel)
}
