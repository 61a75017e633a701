package domain

import "strings"

// Canonical column names, after header normalization.
const (
	ColPlatform  = "related_ofd"
	ColSentiment = "review_sentiment"
	ColSentence  = "sentence"
)

// RequiredColumns lists the columns every source must provide.
var RequiredColumns = []string{ColPlatform, ColSentiment, ColSentence}

// ReviewRecord is one labelled review sentence. Platform and Sentiment are
// always stored normalized; nil pointers mean the cell was missing.
type ReviewRecord struct {
	Platform  string  `json:"platform"`
	Sentiment *string `json:"sentiment,omitempty"`
	Sentence  *string `json:"sentence,omitempty"`
}

// NewReviewRecord builds a record from raw cell values. Empty cells are
// passed as "" and become nil (missing).
func NewReviewRecord(platform, sentiment, sentence string) ReviewRecord {
	rec := ReviewRecord{Platform: Normalize(platform)}
	if s := Normalize(sentiment); s != "" {
		rec.Sentiment = &s
	}
	if sentence != "" {
		rec.Sentence = &sentence
	}
	return rec
}

// Table is the in-memory result of one load.
type Table struct {
	Source  string         `json:"source"`
	Columns []string       `json:"columns"`
	Records []ReviewRecord `json:"-"`
}

// Normalize trims and lowercases identifiers such as platform names,
// sentiment labels and column headers.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
