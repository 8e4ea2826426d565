package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/BergomiStore/bergomi_store/internal/database"
	"github.com/BergomiStore/bergomi_store/internal/models"
)

const accountColumns = `id, name, price, promo_price, rating, image_normal, image_hover, image_detail,
	description, is_active, is_new, is_promo, created_at, updated_at`

// AccountRepository provides data access methods for accounts and their player cards.
type AccountRepository struct {
	db *sqlx.DB
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// List returns all active accounts, newest first, with their cards.
func (r *AccountRepository) List(ctx context.Context) ([]models.Account, error) {
	query := `SELECT ` + accountColumns + `
		FROM accounts
		WHERE is_active = TRUE
		ORDER BY created_at DESC, id DESC`

	var accounts []models.Account
	if err := r.db.SelectContext(ctx, &accounts, query); err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return []models.Account{}, nil
	}

	ids := make([]int64, len(accounts))
	for i := range accounts {
		ids[i] = accounts[i].ID
	}
	cards, err := r.cardsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		accounts[i].PlayerCards = cards[accounts[i].ID]
		if accounts[i].PlayerCards == nil {
			accounts[i].PlayerCards = []models.PlayerCard{}
		}
	}
	return accounts, nil
}

// GetByID returns one active account with its cards, or sql.ErrNoRows.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 AND is_active = TRUE LIMIT 1`

	var acc models.Account
	if err := r.db.GetContext(ctx, &acc, query, id); err != nil {
		return nil, err
	}
	cards, err := r.cardsFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	acc.PlayerCards = cards[id]
	if acc.PlayerCards == nil {
		acc.PlayerCards = []models.PlayerCard{}
	}
	return &acc, nil
}

// Create inserts an account and its cards in one transaction.
func (r *AccountRepository) Create(ctx context.Context, in *models.AccountInput) (*models.Account, error) {
	acc := accountFromInput(in)
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `INSERT INTO accounts (name, price, promo_price, rating, image_normal, image_hover, image_detail,
				description, is_active, is_new, is_promo)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE, $9, $10)
			RETURNING id, is_active, created_at, updated_at`

		if err := tx.QueryRowxContext(ctx, query,
			acc.Name,
			acc.Price,
			acc.PromoPrice,
			acc.Rating,
			acc.ImageNormal,
			acc.ImageHover,
			acc.ImageDetail,
			acc.Description,
			acc.IsNew,
			acc.IsPromo,
		).Scan(&acc.ID, &acc.IsActive, &acc.CreatedAt, &acc.UpdatedAt); err != nil {
			return fmt.Errorf("insert account: %w", err)
		}

		cards, err := insertCards(ctx, tx, acc.ID, in.PlayerCards)
		if err != nil {
			return err
		}
		acc.PlayerCards = cards
		return nil
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

// Update replaces every field and every card of an active account in one
// transaction. Returns sql.ErrNoRows when the account does not exist.
func (r *AccountRepository) Update(ctx context.Context, id int64, in *models.AccountInput) (*models.Account, error) {
	acc := accountFromInput(in)
	acc.ID = id
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `UPDATE accounts
			SET name = $1, price = $2, promo_price = $3, rating = $4, image_normal = $5, image_hover = $6,
				image_detail = $7, description = $8, is_new = $9, is_promo = $10, updated_at = NOW()
			WHERE id = $11 AND is_active = TRUE
			RETURNING is_active, created_at, updated_at`

		if err := tx.QueryRowxContext(ctx, query,
			acc.Name,
			acc.Price,
			acc.PromoPrice,
			acc.Rating,
			acc.ImageNormal,
			acc.ImageHover,
			acc.ImageDetail,
			acc.Description,
			acc.IsNew,
			acc.IsPromo,
			id,
		).Scan(&acc.IsActive, &acc.CreatedAt, &acc.UpdatedAt); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM player_cards WHERE account_id = $1`, id); err != nil {
			return fmt.Errorf("clear cards: %w", err)
		}
		cards, err := insertCards(ctx, tx, id, in.PlayerCards)
		if err != nil {
			return err
		}
		acc.PlayerCards = cards
		return nil
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

// Delete removes an account; its cards go with it through the foreign key.
func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// cardsFor loads the cards of all ids in one query, grouped by account id.
func (r *AccountRepository) cardsFor(ctx context.Context, ids []int64) (map[int64][]models.PlayerCard, error) {
	query := `SELECT id, account_id, image, category, created_at
		FROM player_cards
		WHERE account_id = ANY($1)
		ORDER BY id ASC`

	var cards []models.PlayerCard
	if err := r.db.SelectContext(ctx, &cards, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("load cards: %w", err)
	}
	out := make(map[int64][]models.PlayerCard, len(ids))
	for _, c := range cards {
		out[c.AccountID] = append(out[c.AccountID], c)
	}
	return out, nil
}

// insertCards stores cards in order, skipping empty images.
func insertCards(ctx context.Context, tx *sqlx.Tx, accountID int64, in []models.CardInput) ([]models.PlayerCard, error) {
	query := `INSERT INTO player_cards (account_id, image, category)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	cards := make([]models.PlayerCard, 0, len(in))
	for _, ci := range in {
		if ci.Image == "" {
			continue
		}
		card := models.PlayerCard{AccountID: accountID, Image: ci.Image, Category: ci.Category}
		if err := tx.QueryRowxContext(ctx, query, accountID, ci.Image, string(ci.Category)).
			Scan(&card.ID, &card.CreatedAt); err != nil {
			return nil, fmt.Errorf("insert card: %w", err)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func accountFromInput(in *models.AccountInput) *models.Account {
	return &models.Account{
		Name:        in.Name,
		Price:       in.Price,
		PromoPrice:  in.PromoPrice,
		Rating:      in.Rating,
		ImageNormal: in.ImageNormal,
		ImageHover:  in.ImageHover,
		ImageDetail: in.ImageDetail,
		Description: in.Description,
		IsNew:       in.IsNew,
		IsPromo:     in.IsPromo,
	}
}
