package absa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"absa_dashboard/internal/absa"
	"absa_dashboard/internal/domain"
)

func TestRank_StableDescending(t *testing.T) {
	t.Parallel()

	in := []domain.PlatformScore{
		{Platform: "a", Score: 4.0},
		{Platform: "b", Score: 4.0},
		{Platform: "c", Score: 2.0},
	}
	got := absa.Rank(in)

	require.Len(t, got, 3)
	assert.Equal(t, domain.Platform("a"), got[0].Platform)
	assert.Equal(t, domain.Platform("b"), got[1].Platform)
	assert.Equal(t, domain.Platform("c"), got[2].Platform)
	assert.Equal(t, []int{1, 2, 3}, []int{got[0].Rank, got[1].Rank, got[2].Rank})

	// input untouched
	assert.Zero(t, in[0].Rank)
}

func TestRank_ReordersByScore(t *testing.T) {
	t.Parallel()

	got := absa.Rank([]domain.PlatformScore{
		{Platform: domain.ShopeeFood, Score: 3.1},
		{Platform: domain.GrabFood, Score: 4.25},
		{Platform: domain.FoodPanda, Score: 0},
	})

	assert.Equal(t, domain.GrabFood, got[0].Platform)
	assert.Equal(t, domain.ShopeeFood, got[1].Platform)
	assert.Equal(t, domain.FoodPanda, got[2].Platform)
	assert.Equal(t, 3, got[2].Rank)
}

func TestRank_Empty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, absa.Rank(nil))
}
