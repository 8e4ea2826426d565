package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/BergomiStore/bergomi_store/internal/models"
	"github.com/BergomiStore/bergomi_store/internal/utils"
)

// ContactLinkStore is the persistence for the contact link.
type ContactLinkStore interface {
	GetActive(ctx context.Context) (*models.ContactLink, error)
	Replace(ctx context.Context, link string) (*models.ContactLink, error)
}

// ContactLinkCache caches the active contact link.
type ContactLinkCache interface {
	ContactLink(ctx context.Context) (*models.ContactLink, bool, error)
	SetContactLink(ctx context.Context, link *models.ContactLink) error
	InvalidateContactLink(ctx context.Context) error
}

// ContactService manages the buyer contact link.
type ContactService struct {
	repo  ContactLinkStore
	cache ContactLinkCache
}

// NewContactService constructs a ContactService. cache may be nil.
func NewContactService(repo ContactLinkStore, cache ContactLinkCache) *ContactService {
	return &ContactService{repo: repo, cache: cache}
}

// Active returns the active link. The zero ContactLink means none is configured.
func (s *ContactService) Active(ctx context.Context) (*models.ContactLink, error) {
	if s.cache != nil {
		link, ok, err := s.cache.ContactLink(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Contact link cache read failed")
		}
		if ok {
			return link, nil
		}
	}

	link, err := s.repo.GetActive(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		link, err = &models.ContactLink{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get contact link: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.SetContactLink(ctx, link); err != nil {
			log.Warn().Err(err).Msg("Contact link cache write failed")
		}
	}
	return link, nil
}

// Set validates raw and makes it the only active link.
func (s *ContactService) Set(ctx context.Context, raw string) (*models.ContactLink, error) {
	link := strings.TrimSpace(raw)
	if fe := validateLink(link); !fe.Empty() {
		return nil, fe
	}

	stored, err := s.repo.Replace(ctx, link)
	if err != nil {
		return nil, fmt.Errorf("replace contact link: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.InvalidateContactLink(ctx); err != nil {
			log.Warn().Err(err).Msg("Contact link cache invalidation failed")
		}
	}
	log.Info().Int64("link_id", stored.ID).Msg("Contact link updated")
	return stored, nil
}

func validateLink(link string) utils.FieldErrors {
	fe := utils.FieldErrors{}
	if link == "" {
		fe.Add("link", msgRequired)
		return fe
	}
	u, err := url.ParseRequestURI(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		fe.Add("link", "Enter a valid URL.")
	}
	return fe
}
