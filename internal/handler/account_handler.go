package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BergomiStore/bergomi_store/internal/models"
	"github.com/BergomiStore/bergomi_store/internal/utils"
)

// AccountService is what the account endpoints need from the catalog.
type AccountService interface {
	ListAccounts(ctx context.Context) ([]models.Account, error)
	GetAccount(ctx context.Context, id int64) (*models.Account, error)
	CreateAccount(ctx context.Context, in *models.AccountInput) (*models.Account, error)
	UpdateAccount(ctx context.Context, id int64, in *models.AccountInput) (*models.Account, error)
	DeleteAccount(ctx context.Context, id int64) error
}

// AccountHandler handles the account catalog endpoints.
type AccountHandler struct {
	accounts AccountService
}

// NewAccountHandler constructs an AccountHandler.
func NewAccountHandler(accounts AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// ListAccounts handles GET /api/accounts/
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.accounts.ListAccounts(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Str("request_id", utils.RequestID(c)).Msg("Failed to list accounts")
		utils.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// GetAccount handles GET /api/accounts/:id/
func (h *AccountHandler) GetAccount(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	acc, err := h.accounts.GetAccount(c.Request.Context(), id)
	if err != nil {
		utils.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, acc)
}

// CreateAccount handles POST /api/accounts/
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var in models.AccountInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Detail(c, http.StatusBadRequest, "JSON parse error - "+err.Error())
		return
	}
	acc, err := h.accounts.CreateAccount(c.Request.Context(), &in)
	if err != nil {
		logWriteError(c, err, "Failed to create account")
		utils.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, acc)
}

// UpdateAccount handles PUT /api/accounts/:id/
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	var in models.AccountInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Detail(c, http.StatusBadRequest, "JSON parse error - "+err.Error())
		return
	}
	acc, err := h.accounts.UpdateAccount(c.Request.Context(), id, &in)
	if err != nil {
		logWriteError(c, err, "Failed to update account")
		utils.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, acc)
}

// DeleteAccount handles DELETE /api/accounts/:id/
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	if err := h.accounts.DeleteAccount(c.Request.Context(), id); err != nil {
		utils.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// accountID parses :id, answering 404 for anything that is not a positive integer.
func accountID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		utils.NotFound(c)
		return 0, false
	}
	return id, true
}

func logWriteError(c *gin.Context, err error, msg string) {
	var fe utils.FieldErrors
	if errors.As(err, &fe) {
		log.Debug().Str("request_id", utils.RequestID(c)).Interface("fields", fe).Msg(msg)
		return
	}
	log.Error().Err(err).Str("request_id", utils.RequestID(c)).Msg(msg)
}
