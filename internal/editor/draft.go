// Package editor holds the admin edit buffer for one account and its player
// cards. Nothing here talks to the API; a draft is submitted as a whole.
package editor

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BergomiStore/bergomi_store/internal/models"
	"github.com/BergomiStore/bergomi_store/internal/pricing"
)

var (
	ErrCardNotFound    = errors.New("card not found")
	ErrUnknownCategory = errors.New("unknown card category")
	ErrUnknownImage    = errors.New("unknown image field")
)

// ImageField names one of the three account images.
type ImageField string

const (
	ImageNormal ImageField = "image_normal"
	ImageHover  ImageField = "image_hover"
	ImageDetail ImageField = "image_detail"
)

// ImageFields lists the account image fields in form order.
var ImageFields = []ImageField{ImageNormal, ImageHover, ImageDetail}

// Card is a player card inside a draft. Key is assigned when the card enters
// the draft and stays stable until it is removed.
type Card struct {
	Key      string
	ID       int64
	Category models.Category
	Image    string
}

// Draft is the edit buffer for a new or existing account.
type Draft struct {
	ID          string
	AccountID   int64
	Name        string
	Price       decimal.Decimal
	PromoPrice  decimal.NullDecimal
	Rating      int
	ImageNormal string
	ImageHover  string
	ImageDetail string
	Description string
	IsNew       bool
	IsPromo     bool
	Cards       []Card
}

// NewDraft returns an empty draft for a new account.
func NewDraft() *Draft {
	return &Draft{Rating: models.DefaultRating}
}

// FromAccount copies a stored account into a new draft.
func FromAccount(acc models.Account) *Draft {
	d := &Draft{
		AccountID:   acc.ID,
		Name:        acc.Name,
		Price:       acc.Price,
		PromoPrice:  acc.PromoPrice,
		Rating:      acc.StarCount(),
		ImageNormal: acc.ImageNormal,
		ImageHover:  acc.ImageHover,
		ImageDetail: acc.ImageDetail,
		Description: acc.Description,
		IsNew:       acc.IsNew,
		IsPromo:     acc.IsPromo,
	}
	for _, pc := range acc.PlayerCards {
		d.Cards = append(d.Cards, Card{
			Key:      newKey(),
			ID:       pc.ID,
			Category: pc.Category,
			Image:    pc.Image,
		})
	}
	return d
}

// Persisted reports whether the draft edits an existing account.
func (d *Draft) Persisted() bool {
	return d.AccountID > 0
}

// Clone returns a deep copy of d.
func (d *Draft) Clone() *Draft {
	c := *d
	c.Cards = append([]Card(nil), d.Cards...)
	return &c
}

// Image returns the value of an image field.
func (d *Draft) Image(field ImageField) string {
	switch field {
	case ImageNormal:
		return d.ImageNormal
	case ImageHover:
		return d.ImageHover
	case ImageDetail:
		return d.ImageDetail
	}
	return ""
}

// SetImage overwrites one of the account images.
func (d *Draft) SetImage(field ImageField, image string) error {
	switch field {
	case ImageNormal:
		d.ImageNormal = image
	case ImageHover:
		d.ImageHover = image
	case ImageDetail:
		d.ImageDetail = image
	default:
		return ErrUnknownImage
	}
	return nil
}

// Preview resolves the pricing state of the draft as it would be displayed.
func (d *Draft) Preview() pricing.Result {
	return pricing.Resolve(pricing.Input{
		Price:      d.Price,
		PromoPrice: d.PromoPrice,
		IsPromo:    d.IsPromo,
		IsNew:      d.IsNew,
	})
}

// AddCard appends a card with an empty image to category and returns its key.
func (d *Draft) AddCard(category models.Category) (string, error) {
	if !category.Valid() {
		return "", ErrUnknownCategory
	}
	key := newKey()
	d.Cards = append(d.Cards, Card{Key: key, Category: category})
	return key, nil
}

// CardsIn returns the cards of one category in their current order.
func (d *Draft) CardsIn(category models.Category) []Card {
	var out []Card
	for _, c := range d.Cards {
		if c.Category == category {
			out = append(out, c)
		}
	}
	return out
}

// KeyAt resolves a category-relative position to a card key.
func (d *Draft) KeyAt(category models.Category, index int) (string, bool) {
	if index < 0 {
		return "", false
	}
	n := 0
	for _, c := range d.Cards {
		if c.Category != category {
			continue
		}
		if n == index {
			return c.Key, true
		}
		n++
	}
	return "", false
}

// ReplaceImage overwrites the image of the card identified by key.
func (d *Draft) ReplaceImage(key, image string) error {
	i := d.indexOf(key)
	if i < 0 {
		return ErrCardNotFound
	}
	d.Cards[i].Image = image
	return nil
}

// ReplaceImageAt overwrites the image of the card at a category-relative
// position. When no card exists there a new card holding image is appended.
func (d *Draft) ReplaceImageAt(category models.Category, index int, image string) (string, error) {
	if !category.Valid() {
		return "", ErrUnknownCategory
	}
	if key, ok := d.KeyAt(category, index); ok {
		return key, d.ReplaceImage(key, image)
	}
	key := newKey()
	d.Cards = append(d.Cards, Card{Key: key, Category: category, Image: image})
	return key, nil
}

// RemoveCard deletes the card identified by key.
func (d *Draft) RemoveCard(key string) error {
	i := d.indexOf(key)
	if i < 0 {
		return ErrCardNotFound
	}
	d.Cards = append(d.Cards[:i], d.Cards[i+1:]...)
	return nil
}

// RemoveCardAt deletes the card at a category-relative position.
func (d *Draft) RemoveCardAt(category models.Category, index int) error {
	key, ok := d.KeyAt(category, index)
	if !ok {
		return ErrCardNotFound
	}
	return d.RemoveCard(key)
}

// Payload builds the write body for the draft.
func (d *Draft) Payload() *models.AccountInput {
	in := &models.AccountInput{
		Name:        strings.TrimSpace(d.Name),
		Price:       d.Price,
		Rating:      d.Rating,
		ImageNormal: d.ImageNormal,
		ImageHover:  d.ImageHover,
		ImageDetail: d.ImageDetail,
		Description: strings.TrimSpace(d.Description),
		IsNew:       d.IsNew,
		IsPromo:     d.IsPromo,
		PlayerCards: []models.CardInput{},
	}
	if in.Rating < 1 || in.Rating > 5 {
		in.Rating = models.DefaultRating
	}
	if d.IsPromo && d.PromoPrice.Valid {
		in.PromoPrice = d.PromoPrice
	}
	for _, c := range d.Cards {
		if c.Image == "" {
			continue
		}
		in.PlayerCards = append(in.PlayerCards, models.CardInput{Category: c.Category, Image: c.Image})
	}
	return in
}

func (d *Draft) indexOf(key string) int {
	for i, c := range d.Cards {
		if c.Key == key {
			return i
		}
	}
	return -1
}

func newKey() string {
	return uuid.NewString()
}
