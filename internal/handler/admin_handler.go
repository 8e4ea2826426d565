package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BergomiStore/bergomi_store/internal/middleware"
	"github.com/BergomiStore/bergomi_store/internal/utils"
)

// TokenVerifier checks admin tokens.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}

// AdminHandler handles admin token verification.
type AdminHandler struct {
	auth    TokenVerifier
	limiter *middleware.InvalidAuthRateLimiter
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(auth TokenVerifier, limiter *middleware.InvalidAuthRateLimiter) *AdminHandler {
	return &AdminHandler{auth: auth, limiter: limiter}
}

// VerifyToken handles GET /api/verify-admin/:token/
func (h *AdminHandler) VerifyToken(c *gin.Context) {
	ip := c.ClientIP()
	if h.limiter.Blocked(ip) {
		utils.Detail(c, http.StatusTooManyRequests, "Too many invalid attempts. Try again later.")
		return
	}

	ok, err := h.auth.Verify(c.Request.Context(), c.Param("token"))
	if err != nil {
		log.Error().Err(err).Str("request_id", utils.RequestID(c)).Msg("Admin token verification failed")
		utils.Detail(c, http.StatusInternalServerError, "Token verification failed.")
		return
	}
	if !ok {
		if !h.limiter.Allow(ip) {
			log.Warn().Str("ip", ip).Msg("Admin token rate limit reached")
			utils.Detail(c, http.StatusTooManyRequests, "Too many invalid attempts. Try again later.")
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}
