// Package gallery groups player cards into the per-category sections shown on
// the account detail page.
package gallery

import "github.com/BergomiStore/bergomi_store/internal/models"

// Section is one rendered category with its cards in their original order.
type Section struct {
	Category models.Category
	Label    string
	Cards    []models.PlayerCard
}

// ScrollHintThreshold is the card count above which the desktop row shows a
// scroll indicator.
const ScrollHintThreshold = 4

// ShowScrollHint reports whether the section overflows the desktop row.
func (s Section) ShowScrollHint() bool {
	return len(s.Cards) > ScrollHintThreshold
}

// Partition splits cards by category in display order. Empty categories are
// omitted and cards with a category outside the fixed set are dropped.
func Partition(cards []models.PlayerCard) []Section {
	buckets := make(map[models.Category][]models.PlayerCard, 4)
	for _, card := range cards {
		if !card.Category.Valid() {
			continue
		}
		buckets[card.Category] = append(buckets[card.Category], card)
	}

	sections := make([]Section, 0, len(buckets))
	for _, cat := range models.Categories() {
		if len(buckets[cat]) == 0 {
			continue
		}
		sections = append(sections, Section{
			Category: cat,
			Label:    cat.Label(),
			Cards:    buckets[cat],
		})
	}
	return sections
}
