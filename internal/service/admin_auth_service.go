package service

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/BergomiStore/bergomi_store/internal/models"
	"github.com/BergomiStore/bergomi_store/internal/utils"
)

// bcrypt ignores input past 72 bytes; longer tokens can never match.
const maxTokenLength = 72

// AdminTokenStore is the persistence for issued admin tokens.
type AdminTokenStore interface {
	ListActive(ctx context.Context) ([]models.AdminToken, error)
	Create(ctx context.Context, hash string) (*models.AdminToken, error)
}

type AdminAuthService struct {
	tokens      AdminTokenStore
	staticToken string
}

func NewAdminAuthService(tokens AdminTokenStore, staticToken string) *AdminAuthService {
	return &AdminAuthService{tokens: tokens, staticToken: staticToken}
}

// Verify reports whether token is the configured token or an active issued one.
func (s *AdminAuthService) Verify(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	if s.staticToken != "" && subtle.ConstantTimeCompare([]byte(token), []byte(s.staticToken)) == 1 {
		return true, nil
	}
	if len(token) > maxTokenLength {
		return false, nil
	}

	active, err := s.tokens.ListActive(ctx)
	if err != nil {
		return false, fmt.Errorf("list admin tokens: %w", err)
	}
	for _, t := range active {
		if bcrypt.CompareHashAndPassword([]byte(t.TokenHash), []byte(token)) == nil {
			log.Debug().Int64("token_id", t.ID).Msg("Admin token verified")
			return true, nil
		}
	}
	return false, nil
}

// IssueToken creates a new admin token and stores its hash. The plain token
// is returned once and never persisted.
func (s *AdminAuthService) IssueToken(ctx context.Context) (string, error) {
	token, err := utils.GenerateAdminToken()
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	stored, err := s.tokens.Create(ctx, string(hash))
	if err != nil {
		return "", fmt.Errorf("store admin token: %w", err)
	}
	log.Info().Int64("token_id", stored.ID).Msg("Admin token issued")
	return token, nil
}
