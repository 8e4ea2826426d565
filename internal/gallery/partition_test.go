package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BergomiStore/bergomi_store/internal/models"
)

func card(id int64, cat models.Category) models.PlayerCard {
	return models.PlayerCard{ID: id, Category: cat, Image: "img"}
}

func TestPartitionOrdersSectionsAndOmitsEmpty(t *testing.T) {
	t.Parallel()

	cards := []models.PlayerCard{
		card(1, models.CategoryForwards),
		card(2, models.CategoryManagers),
		card(3, models.CategoryForwards),
	}
	sections := Partition(cards)

	require.Len(t, sections, 2)
	assert.Equal(t, models.CategoryManagers, sections[0].Category)
	assert.Equal(t, "Managers", sections[0].Label)
	assert.Equal(t, models.CategoryForwards, sections[1].Category)
	assert.Equal(t, []int64{1, 3}, ids(sections[1].Cards))
}

func TestPartitionReconstructsEachCardOnce(t *testing.T) {
	t.Parallel()

	cards := []models.PlayerCard{
		card(1, models.CategoryDefenders),
		card(2, models.CategoryMidfielders),
		card(3, "goalkeepers"),
		card(4, models.CategoryDefenders),
		card(5, models.CategoryManagers),
		card(6, models.CategoryForwards),
		card(7, models.CategoryMidfielders),
	}
	sections := Partition(cards)

	seen := map[int64]int{}
	for _, s := range sections {
		require.True(t, s.Category.Valid())
		for _, c := range s.Cards {
			assert.Equal(t, s.Category, c.Category)
			seen[c.ID]++
		}
	}
	for _, c := range cards {
		if c.Category.Valid() {
			assert.Equal(t, 1, seen[c.ID], "card %d", c.ID)
		} else {
			assert.Zero(t, seen[c.ID], "card %d", c.ID)
		}
	}
}

func TestPartitionEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Partition(nil))
}

func TestShowScrollHint(t *testing.T) {
	t.Parallel()

	s := Section{Cards: make([]models.PlayerCard, ScrollHintThreshold)}
	assert.False(t, s.ShowScrollHint())
	s.Cards = append(s.Cards, models.PlayerCard{})
	assert.True(t, s.ShowScrollHint())
}

func ids(cards []models.PlayerCard) []int64 {
	out := make([]int64, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}
