package absa

import (
	"strings"

	"absa_dashboard/internal/domain"
)

// AggregateText joins the non-missing sentences of platform p with single
// spaces, in row order. A platform without rows reports TextNoData; one whose
// blob is empty or whitespace-only reports TextNoText.
func AggregateText(records []domain.ReviewRecord, p domain.Platform) domain.TextBlob {
	subset := Filter(records, p)
	if len(subset) == 0 {
		return domain.TextBlob{Platform: p, Status: domain.TextNoData}
	}

	parts := make([]string, 0, len(subset))
	for _, r := range subset {
		if r.Sentence == nil {
			continue
		}
		parts = append(parts, *r.Sentence)
	}
	text := strings.Join(parts, " ")
	if strings.TrimSpace(text) == "" {
		return domain.TextBlob{Platform: p, Status: domain.TextNoText}
	}
	return domain.TextBlob{Platform: p, Text: text, Status: domain.TextOK}
}
