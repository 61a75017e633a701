package absa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"absa_dashboard/internal/absa"
	"absa_dashboard/internal/domain"
)

func TestAggregateText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		records  []domain.ReviewRecord
		want     string
		wantStat domain.TextStatus
	}{
		{
			name: "missing sentences are skipped",
			records: []domain.ReviewRecord{
				rec("grabfood", "positive", "Good food"),
				rec("grabfood", "neutral", ""),
				rec("grabfood", "positive", "Fast delivery"),
			},
			want:     "Good food Fast delivery",
			wantStat: domain.TextOK,
		},
		{
			name: "row order preserved and other platforms ignored",
			records: []domain.ReviewRecord{
				rec("GrabFood", "", "first"),
				rec("foodpanda", "", "elsewhere"),
				rec(" grabfood", "", "second"),
			},
			want:     "first second",
			wantStat: domain.TextOK,
		},
		{
			name: "all sentences missing",
			records: []domain.ReviewRecord{
				rec("grabfood", "positive", ""),
				rec("grabfood", "negative", ""),
			},
			wantStat: domain.TextNoText,
		},
		{
			name: "whitespace-only blob",
			records: []domain.ReviewRecord{
				rec("grabfood", "positive", "   "),
				rec("grabfood", "positive", "\t"),
			},
			wantStat: domain.TextNoText,
		},
		{
			name: "no rows for platform",
			records: []domain.ReviewRecord{
				rec("foodpanda", "positive", "nice"),
			},
			wantStat: domain.TextNoData,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := absa.AggregateText(tt.records, domain.GrabFood)
			assert.Equal(t, domain.GrabFood, got.Platform)
			assert.Equal(t, tt.wantStat, got.Status)
			assert.Equal(t, tt.want, got.Text)
		})
	}
}

func TestTextBlobErr(t *testing.T) {
	t.Parallel()

	assert.NoError(t, domain.TextBlob{Status: domain.TextOK}.Err())
	assert.ErrorIs(t, domain.TextBlob{Status: domain.TextNoData}.Err(), domain.ErrNoData)
	assert.ErrorIs(t, domain.TextBlob{Status: domain.TextNoText}.Err(), domain.ErrNoText)
}
