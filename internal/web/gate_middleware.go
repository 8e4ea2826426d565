package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BergomiStore/bergomi_store/internal/admin"
)

const ctxAdminVerified = "admin_verified"

// AdminGateMiddleware checks the :token path parameter on every admin request.
func AdminGateMiddleware(gate *admin.Gate, renderer *Renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := gate.Check(c.Request.Context(), c.Param("token"))
		if !d.Granted {
			renderer.HTML(c, http.StatusForbidden, "admin_denied.html", deniedPage{Title: "Access Denied"})
			c.Abort()
			return
		}
		c.Set(ctxAdminVerified, d.Verified)
		c.Next()
	}
}
