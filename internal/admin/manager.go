package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/BergomiStore/bergomi_store/internal/editor"
	"github.com/BergomiStore/bergomi_store/internal/models"
)

// CatalogAPI is the part of the API client the manager needs.
type CatalogAPI interface {
	Ping(ctx context.Context) error
	ListAccounts(ctx context.Context) ([]models.Account, error)
	GetAccount(ctx context.Context, id int64) (*models.Account, error)
	CreateAccount(ctx context.Context, in *models.AccountInput) (*models.Account, error)
	UpdateAccount(ctx context.Context, id int64, in *models.AccountInput) (*models.Account, error)
	DeleteAccount(ctx context.Context, id int64) error
	GetContactLink(ctx context.Context) (string, error)
	SetContactLink(ctx context.Context, link string) (*models.ContactLink, error)
}

// Manager runs the admin write path.
type Manager struct {
	api CatalogAPI
}

func NewManager(api CatalogAPI) *Manager {
	return &Manager{api: api}
}

// List returns all accounts for the dashboard.
func (m *Manager) List(ctx context.Context) ([]models.Account, error) {
	return m.api.ListAccounts(ctx)
}

// Get returns one account.
func (m *Manager) Get(ctx context.Context, id int64) (*models.Account, error) {
	return m.api.GetAccount(ctx, id)
}

// Open loads an existing account into a fresh draft.
func (m *Manager) Open(ctx context.Context, id int64) (*editor.Draft, error) {
	acc, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return editor.FromAccount(*acc), nil
}

// Save validates d, probes the API, then creates or replaces the account.
// Nothing is sent when validation or the probe fails.
func (m *Manager) Save(ctx context.Context, d *editor.Draft) (*models.Account, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := m.api.Ping(ctx); err != nil {
		return nil, err
	}

	payload := d.Payload()
	var (
		acc *models.Account
		err error
	)
	if d.Persisted() {
		acc, err = m.api.UpdateAccount(ctx, d.AccountID, payload)
	} else {
		acc, err = m.api.CreateAccount(ctx, payload)
	}
	if err != nil {
		log.Error().Err(err).Int64("account_id", d.AccountID).Str("class", Classify(err).String()).Msg("Failed to save account")
		return nil, err
	}

	log.Info().Int64("account_id", acc.ID).Int("cards", len(payload.PlayerCards)).Msg("Account saved")
	return acc, nil
}

// Delete removes an account.
func (m *Manager) Delete(ctx context.Context, id int64) error {
	if err := m.api.DeleteAccount(ctx, id); err != nil {
		log.Error().Err(err).Int64("account_id", id).Msg("Failed to delete account")
		return fmt.Errorf("delete account %d: %w", id, err)
	}
	log.Info().Int64("account_id", id).Msg("Account deleted")
	return nil
}

// ContactLink returns the current contact URL.
func (m *Manager) ContactLink(ctx context.Context) (string, error) {
	return m.api.GetContactLink(ctx)
}

// SetContactLink stores a new contact URL.
func (m *Manager) SetContactLink(ctx context.Context, link string) error {
	if _, err := m.api.SetContactLink(ctx, strings.TrimSpace(link)); err != nil {
		log.Error().Err(err).Msg("Failed to update contact link")
		return fmt.Errorf("set contact link: %w", err)
	}
	return nil
}
