package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/BergomiStore/bergomi_store/internal/models"
	"github.com/BergomiStore/bergomi_store/internal/pricing"
	"github.com/BergomiStore/bergomi_store/internal/utils"
)

const (
	maxNameLength   = 200
	maxPriceDigits  = 10
	maxPricePlaces  = 2
	msgRequired     = "This field is required."
	msgInvalidPrice = "Ensure this value is greater than 0."
)

// AccountStore is the persistence the catalog needs.
type AccountStore interface {
	List(ctx context.Context) ([]models.Account, error)
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	Create(ctx context.Context, in *models.AccountInput) (*models.Account, error)
	Update(ctx context.Context, id int64, in *models.AccountInput) (*models.Account, error)
	Delete(ctx context.Context, id int64) error
}

// AccountCache caches catalog reads. Implementations may be slow or down;
// callers log and bypass errors.
type AccountCache interface {
	Accounts(ctx context.Context) ([]models.Account, bool, error)
	SetAccounts(ctx context.Context, accounts []models.Account) error
	Account(ctx context.Context, id int64) (*models.Account, bool, error)
	SetAccount(ctx context.Context, acc *models.Account) error
	InvalidateAccount(ctx context.Context, id int64) error
}

// CatalogService handles account business logic.
type CatalogService struct {
	repo  AccountStore
	cache AccountCache
	now   func() time.Time
}

// NewCatalogService constructs a CatalogService. cache may be nil.
func NewCatalogService(repo AccountStore, cache AccountCache) *CatalogService {
	return &CatalogService{repo: repo, cache: cache, now: time.Now}
}

// ListAccounts returns active accounts, newest first, with derived pricing.
func (s *CatalogService) ListAccounts(ctx context.Context) ([]models.Account, error) {
	if s.cache != nil {
		accounts, ok, err := s.cache.Accounts(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Account list cache read failed")
		}
		if ok {
			return s.derive(accounts), nil
		}
	}

	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.SetAccounts(ctx, accounts); err != nil {
			log.Warn().Err(err).Msg("Account list cache write failed")
		}
	}
	return s.derive(accounts), nil
}

// GetAccount returns one active account or utils.ErrAccountNotFound.
func (s *CatalogService) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	if s.cache != nil {
		acc, ok, err := s.cache.Account(ctx, id)
		if err != nil {
			log.Warn().Err(err).Int64("account_id", id).Msg("Account cache read failed")
		}
		if ok {
			pricing.Apply(acc, s.now())
			return acc, nil
		}
	}

	acc, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, utils.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get account %d: %w", id, err)
	}
	if s.cache != nil {
		if err := s.cache.SetAccount(ctx, acc); err != nil {
			log.Warn().Err(err).Int64("account_id", id).Msg("Account cache write failed")
		}
	}
	pricing.Apply(acc, s.now())
	return acc, nil
}

// CreateAccount validates and stores a new account with its cards.
func (s *CatalogService) CreateAccount(ctx context.Context, in *models.AccountInput) (*models.Account, error) {
	if fe := ValidateAccountInput(in); !fe.Empty() {
		return nil, fe
	}
	acc, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	s.invalidate(ctx, acc.ID)
	log.Info().Int64("account_id", acc.ID).Int("cards", len(acc.PlayerCards)).Msg("Account created")

	pricing.Apply(acc, s.now())
	return acc, nil
}

// UpdateAccount replaces an account and all of its cards.
func (s *CatalogService) UpdateAccount(ctx context.Context, id int64, in *models.AccountInput) (*models.Account, error) {
	if fe := ValidateAccountInput(in); !fe.Empty() {
		return nil, fe
	}
	acc, err := s.repo.Update(ctx, id, in)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, utils.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update account %d: %w", id, err)
	}
	s.invalidate(ctx, id)
	log.Info().Int64("account_id", id).Int("cards", len(acc.PlayerCards)).Msg("Account updated")

	pricing.Apply(acc, s.now())
	return acc, nil
}

// DeleteAccount removes an account and its cards.
func (s *CatalogService) DeleteAccount(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return utils.ErrAccountNotFound
	}
	if err != nil {
		return fmt.Errorf("delete account %d: %w", id, err)
	}
	s.invalidate(ctx, id)
	log.Info().Int64("account_id", id).Msg("Account deleted")
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAccount(ctx, id); err != nil {
		log.Warn().Err(err).Int64("account_id", id).Msg("Account cache invalidation failed")
	}
}

func (s *CatalogService) derive(accounts []models.Account) []models.Account {
	now := s.now()
	for i := range accounts {
		pricing.Apply(&accounts[i], now)
	}
	return accounts
}

// ValidateAccountInput normalizes in and returns every field error found.
// Text fields are trimmed and a zero rating becomes the default.
func ValidateAccountInput(in *models.AccountInput) utils.FieldErrors {
	fe := utils.FieldErrors{}

	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)

	if in.Name == "" {
		fe.Add("name", msgRequired)
	} else if len([]rune(in.Name)) > maxNameLength {
		fe.Add("name", fmt.Sprintf("Ensure this field has no more than %d characters.", maxNameLength))
	}

	if !in.Price.IsPositive() {
		fe.Add("price", msgInvalidPrice)
	} else if msg := decimalFormatError(in.Price); msg != "" {
		fe.Add("price", msg)
	}

	if in.PromoPrice.Valid {
		switch {
		case !in.PromoPrice.Decimal.IsPositive():
			fe.Add("promo_price", msgInvalidPrice)
		case decimalFormatError(in.PromoPrice.Decimal) != "":
			fe.Add("promo_price", decimalFormatError(in.PromoPrice.Decimal))
		case in.IsPromo && !in.PromoPrice.Decimal.LessThan(in.Price):
			fe.Add("promo_price", "Promotional price must be lower than regular price.")
		}
	}

	if in.Rating == 0 {
		in.Rating = models.DefaultRating
	}
	if in.Rating < 1 || in.Rating > 5 {
		fe.Add("rating", fmt.Sprintf("\"%d\" is not a valid choice.", in.Rating))
	}

	if in.ImageNormal == "" {
		fe.Add("image_normal", msgRequired)
	}
	if in.ImageHover == "" {
		fe.Add("image_hover", msgRequired)
	}
	if in.ImageDetail == "" {
		fe.Add("image_detail", msgRequired)
	}
	if in.Description == "" {
		fe.Add("description", msgRequired)
	}

	for _, card := range in.PlayerCards {
		if !card.Category.Valid() {
			fe.Add("player_cards", fmt.Sprintf("\"%s\" is not a valid choice.", card.Category))
		}
	}
	if in.PlayerCards == nil {
		in.PlayerCards = []models.CardInput{}
	}
	return fe
}

// decimalFormatError checks d against a NUMERIC(10,2) column.
func decimalFormatError(d decimal.Decimal) string {
	exp := int(d.Exponent())
	places := 0
	if exp < 0 {
		places = -exp
	}
	coef := d.Coefficient()
	digits := len(coef.Abs(coef).String())
	if exp > 0 {
		digits += exp
	}

	switch {
	case digits > maxPriceDigits:
		return fmt.Sprintf("Ensure that there are no more than %d digits in total.", maxPriceDigits)
	case places > maxPricePlaces:
		return fmt.Sprintf("Ensure that there are no more than %d decimal places.", maxPricePlaces)
	case digits-places > maxPriceDigits-maxPricePlaces:
		return fmt.Sprintf("Ensure that there are no more than %d digits before the decimal point.", maxPriceDigits-maxPricePlaces)
	}
	return ""
}
