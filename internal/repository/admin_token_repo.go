package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/BergomiStore/bergomi_store/internal/models"
)

// AdminTokenRepository provides data access methods for admin_tokens table.
type AdminTokenRepository struct {
	db *sqlx.DB
}

// NewAdminTokenRepository creates a new AdminTokenRepository.
func NewAdminTokenRepository(db *sqlx.DB) *AdminTokenRepository {
	return &AdminTokenRepository{db: db}
}

// ListActive returns every active token hash.
func (r *AdminTokenRepository) ListActive(ctx context.Context) ([]models.AdminToken, error) {
	var tokens []models.AdminToken
	err := r.db.SelectContext(ctx, &tokens,
		`SELECT id, token_hash, is_active, created_at FROM admin_tokens WHERE is_active = TRUE ORDER BY id`)
	return tokens, err
}

// Create stores a new active token hash.
func (r *AdminTokenRepository) Create(ctx context.Context, hash string) (*models.AdminToken, error) {
	t := &models.AdminToken{TokenHash: hash}
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO admin_tokens (token_hash, is_active) VALUES ($1, TRUE) RETURNING id, is_active, created_at`,
		hash,
	).Scan(&t.ID, &t.IsActive, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}
