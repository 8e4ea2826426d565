package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/BergomiStore/bergomi_store/internal/models"
)

const (
	keyAccountList = "catalog:accounts"
	keyContactLink = "catalog:contact_link"
)

func keyAccount(id int64) string {
	return fmt.Sprintf("catalog:account:%d", id)
}

// CatalogCache stores catalog reads in Redis as JSON.
type CatalogCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewCatalogCache creates a new CatalogCache.
func NewCatalogCache(redis *RedisClient, ttl time.Duration) *CatalogCache {
	return &CatalogCache{redis: redis, ttl: ttl}
}

// Accounts returns the cached account list. ok is false on a miss.
func (c *CatalogCache) Accounts(ctx context.Context) (accounts []models.Account, ok bool, err error) {
	ok, err = c.get(ctx, keyAccountList, &accounts)
	return accounts, ok, err
}

// SetAccounts caches the account list.
func (c *CatalogCache) SetAccounts(ctx context.Context, accounts []models.Account) error {
	return c.set(ctx, keyAccountList, accounts)
}

// Account returns one cached account.
func (c *CatalogCache) Account(ctx context.Context, id int64) (*models.Account, bool, error) {
	var acc models.Account
	ok, err := c.get(ctx, keyAccount(id), &acc)
	if !ok || err != nil {
		return nil, ok, err
	}
	return &acc, true, nil
}

// SetAccount caches one account.
func (c *CatalogCache) SetAccount(ctx context.Context, acc *models.Account) error {
	return c.set(ctx, keyAccount(acc.ID), acc)
}

// InvalidateAccount drops the list and the given account.
func (c *CatalogCache) InvalidateAccount(ctx context.Context, id int64) error {
	return c.redis.Delete(ctx, keyAccountList, keyAccount(id))
}

// ContactLink returns the cached contact link. A cached zero link means no
// link is configured.
func (c *CatalogCache) ContactLink(ctx context.Context) (*models.ContactLink, bool, error) {
	var link models.ContactLink
	ok, err := c.get(ctx, keyContactLink, &link)
	if !ok || err != nil {
		return nil, ok, err
	}
	return &link, true, nil
}

// SetContactLink caches the contact link.
func (c *CatalogCache) SetContactLink(ctx context.Context, link *models.ContactLink) error {
	return c.set(ctx, keyContactLink, link)
}

// InvalidateContactLink drops the cached contact link.
func (c *CatalogCache) InvalidateContactLink(ctx context.Context) error {
	return c.redis.Delete(ctx, keyContactLink)
}

func (c *CatalogCache) get(ctx context.Context, key string, out any) (bool, error) {
	raw, err := c.redis.Get(ctx, key)
	if errors.Is(err, ErrMiss) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (c *CatalogCache) set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := c.redis.Set(ctx, key, string(data), c.ttl); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}
