package absa

import (
	"math"

	"absa_dashboard/internal/domain"
)

var labelScores = map[string]float64{
	"positive": 5,
	"neutral":  3,
	"negative": 1,
}

// LabelScore maps a sentiment label to the 1..5 scale. Unknown labels report false.
func LabelScore(label string) (float64, bool) {
	v, ok := labelScores[domain.Normalize(label)]
	return v, ok
}

// Score averages the mapped labels of one platform's records, rounded to
// two decimals. Records without a recognised label are excluded; a subset
// with nothing to score yields 0.
func Score(records []domain.ReviewRecord) float64 {
	var sum float64
	var n int
	for _, r := range records {
		if r.Sentiment == nil {
			continue
		}
		if v, ok := LabelScore(*r.Sentiment); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return round2(sum / float64(n))
}

// Filter returns the records whose normalized platform equals p, in row order.
func Filter(records []domain.ReviewRecord, p domain.Platform) []domain.ReviewRecord {
	var out []domain.ReviewRecord
	for _, r := range records {
		if domain.Platform(domain.Normalize(r.Platform)) == p {
			out = append(out, r)
		}
	}
	return out
}

// Scores computes one unranked PlatformScore per platform of the fixed set,
// in domain.Platforms order. Rows for other platforms are ignored.
func Scores(records []domain.ReviewRecord, catalogue map[domain.Platform]domain.PlatformInfo) []domain.PlatformScore {
	out := make([]domain.PlatformScore, 0, len(domain.Platforms))
	for _, p := range domain.Platforms {
		info := catalogue[p]
		out = append(out, domain.PlatformScore{
			Platform: p,
			Name:     info.Name,
			Emoji:    info.Emoji,
			Score:    Score(Filter(records, p)),
		})
	}
	return out
}

// round2 rounds half to even, so 4.125 becomes 4.12 and 2.375 becomes 2.38.
func round2(f float64) float64 {
	return math.RoundToEven(f*100) / 100
}
