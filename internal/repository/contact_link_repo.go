package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/BergomiStore/bergomi_store/internal/database"
	"github.com/BergomiStore/bergomi_store/internal/models"
)

// ContactLinkRepository provides data access methods for whatsapp_links table.
type ContactLinkRepository struct {
	db *sqlx.DB
}

// NewContactLinkRepository creates a new ContactLinkRepository.
func NewContactLinkRepository(db *sqlx.DB) *ContactLinkRepository {
	return &ContactLinkRepository{db: db}
}

// GetActive returns the most recent active link, or sql.ErrNoRows.
func (r *ContactLinkRepository) GetActive(ctx context.Context) (*models.ContactLink, error) {
	query := `SELECT id, link, is_active, created_at, updated_at
		FROM whatsapp_links
		WHERE is_active = TRUE
		ORDER BY created_at DESC, id DESC
		LIMIT 1`

	var l models.ContactLink
	if err := r.db.GetContext(ctx, &l, query); err != nil {
		return nil, err
	}
	return &l, nil
}

// Replace deactivates every existing link and stores link as the active one.
func (r *ContactLinkRepository) Replace(ctx context.Context, link string) (*models.ContactLink, error) {
	l := &models.ContactLink{Link: link}
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE whatsapp_links SET is_active = FALSE, updated_at = NOW() WHERE is_active = TRUE`,
		); err != nil {
			return fmt.Errorf("deactivate links: %w", err)
		}
		return tx.QueryRowxContext(ctx,
			`INSERT INTO whatsapp_links (link, is_active) VALUES ($1, TRUE)
			RETURNING id, is_active, created_at, updated_at`,
			link,
		).Scan(&l.ID, &l.IsActive, &l.CreatedAt, &l.UpdatedAt)
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}
