package absa

import (
	"cmp"
	"slices"

	"absa_dashboard/internal/domain"
)

// Rank returns a copy of scores ordered by score descending with 1-based
// rank positions. Equal scores keep their input order.
func Rank(scores []domain.PlatformScore) []domain.PlatformScore {
	out := slices.Clone(scores)
	slices.SortStableFunc(out, func(a, b domain.PlatformScore) int {
		return cmp.Compare(b.Score, a.Score)
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
