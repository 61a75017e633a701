package absa

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"absa_dashboard/internal/domain"
)

const defaultMaxWords = 200

// two or more word characters, apostrophes allowed after the first
var tokenRe = regexp.MustCompile(`[\p{L}\p{N}_][\p{L}\p{N}_']+`)

// TermOptions tunes term extraction. A nil Stopwords set means DefaultStopwords.
type TermOptions struct {
	MaxWords  int
	Stopwords map[string]struct{}
}

// Terms counts the words of a review blob for the word cloud.
//
// Pipeline: NFC normalize -> tokenize -> lowercase -> strip trailing 's ->
// drop numbers -> drop stopwords -> fold plurals into an existing singular ->
// count. Results are ordered by count descending with lexical tie-breaking
// and cut to MaxWords. ErrNoText is returned when nothing survives.
func Terms(text string, opts TermOptions) ([]domain.TermCount, error) {
	if opts.MaxWords <= 0 {
		opts.MaxWords = defaultMaxWords
	}
	stop := opts.Stopwords
	if stop == nil {
		stop = DefaultStopwords()
	}

	counts := map[string]int{}
	for _, tok := range tokenRe.FindAllString(norm.NFC.String(text), -1) {
		w := strings.ToLower(tok)
		w = strings.TrimSuffix(w, "'s")
		if w == "" || isNumeric(w) {
			continue
		}
		if _, ok := stop[w]; ok {
			continue
		}
		counts[w]++
	}
	foldPlurals(counts)
	if len(counts) == 0 {
		return nil, domain.ErrNoText
	}

	out := make([]domain.TermCount, 0, len(counts))
	for w, n := range counts {
		out = append(out, domain.TermCount{Term: w, Count: n})
	}
	slices.SortFunc(out, func(a, b domain.TermCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Term, b.Term)
	})
	if len(out) > opts.MaxWords {
		out = out[:opts.MaxWords]
	}
	return out, nil
}

// foldPlurals merges "xs" into "x" when both were seen. "ss" endings are kept.
func foldPlurals(counts map[string]int) {
	for w, n := range counts {
		if !strings.HasSuffix(w, "s") || strings.HasSuffix(w, "ss") {
			continue
		}
		singular := strings.TrimSuffix(w, "s")
		if _, ok := counts[singular]; ok {
			counts[singular] += n
			delete(counts, w)
		}
	}
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
