package absa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"absa_dashboard/internal/absa"
	"absa_dashboard/internal/domain"
)

func TestTerms(t *testing.T) {
	t.Parallel()

	got, err := absa.Terms("Rider was late. The rider's bike! Late late, 30 minutes RM 5 app", absa.TermOptions{})
	require.NoError(t, err)

	assert.Equal(t, []domain.TermCount{
		{Term: "late", Count: 3},
		{Term: "rider", Count: 2},
		{Term: "bike", Count: 1},
		{Term: "minutes", Count: 1},
	}, got)
}

func TestTerms_FoldsPlurals(t *testing.T) {
	t.Parallel()

	got, err := absa.Terms("voucher vouchers vouchers glass glasses", absa.TermOptions{})
	require.NoError(t, err)

	assert.Equal(t, []domain.TermCount{
		{Term: "voucher", Count: 3},
		{Term: "glass", Count: 1},
		{Term: "glasses", Count: 1},
	}, got)
}

func TestTerms_MaxWords(t *testing.T) {
	t.Parallel()

	got, err := absa.Terms("beta alpha gamma alpha", absa.TermOptions{MaxWords: 2})
	require.NoError(t, err)
	assert.Equal(t, []domain.TermCount{{Term: "alpha", Count: 2}, {Term: "beta", Count: 1}}, got)
}

func TestTerms_CustomStopwords(t *testing.T) {
	t.Parallel()

	got, err := absa.Terms("mamak mamak nasi", absa.TermOptions{Stopwords: absa.StopwordSet("Mamak")})
	require.NoError(t, err)
	assert.Equal(t, []domain.TermCount{{Term: "nasi", Count: 1}}, got)
}

func TestTerms_NothingLeft(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "   ", "the food delivery app", "12 34 a"} {
		_, err := absa.Terms(in, absa.TermOptions{})
		assert.ErrorIs(t, err, domain.ErrNoText, "input %q", in)
	}
}
