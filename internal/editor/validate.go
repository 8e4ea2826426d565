package editor

import "strings"

// ValidationError is a rule violation detected before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Validate checks the draft against the submission rules and returns the first
// violation, or nil.
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return invalid("name", "Account name is required")
	}
	if !d.Price.IsPositive() {
		return invalid("price", "Price must be greater than 0")
	}
	if d.IsPromo {
		if !d.PromoPrice.Valid {
			return invalid("promo_price", "Promotional price is required when promotion is enabled")
		}
		if !d.PromoPrice.Decimal.IsPositive() {
			return invalid("promo_price", "Promotional price must be greater than 0")
		}
		if !d.PromoPrice.Decimal.LessThan(d.Price) {
			return invalid("promo_price", "Promotional price must be lower than regular price")
		}
	}
	if d.ImageNormal == "" {
		return invalid(string(ImageNormal), "Normal image is required")
	}
	if d.ImageHover == "" {
		return invalid(string(ImageHover), "Hover image is required")
	}
	if d.ImageDetail == "" {
		return invalid(string(ImageDetail), "Detail image is required")
	}
	if strings.TrimSpace(d.Description) == "" {
		return invalid("description", "Description is required")
	}
	return nil
}

// Warnings returns the inline hints shown next to the live preview. They do not
// block editing; Validate is authoritative at submission.
func (d *Draft) Warnings() []string {
	var out []string
	if d.IsPromo && d.PromoPrice.Valid && !d.PromoPrice.Decimal.LessThan(d.Price) {
		out = append(out, "Promotional price must be lower than regular price")
	}
	return out
}
