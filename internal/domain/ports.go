package domain

import "context"

// RecordSource loads the full review table. Each call performs a fresh read.
type RecordSource interface {
	Load(ctx context.Context) (Table, error)
}

// RecordWriter is implemented by sources that can import records (MySQL).
type RecordWriter interface {
	UpsertRecords(ctx context.Context, sourceFile string, rs []ReviewRecord) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Renderer turns aggregated data into images.
type Renderer interface {
	WordCloud(terms []TermCount, opts CloudOptions) ([]byte, error)
	RankingChart(scores []PlatformScore) ([]byte, error)
}

// Read models

type PlatformScore struct {
	Platform Platform `json:"platform"`
	Name     string   `json:"name"`
	Emoji    string   `json:"emoji"`
	Score    float64  `json:"score"`
	Rank     int      `json:"rank"`
}

type TextStatus string

const (
	TextOK     TextStatus = "ok"
	TextNoText TextStatus = "no_text"
	TextNoData TextStatus = "no_data"
)

// TextBlob is the concatenated review text of one platform.
type TextBlob struct {
	Platform Platform   `json:"platform"`
	Text     string     `json:"-"`
	Status   TextStatus `json:"status"`
}

// Err maps a non-OK status to its sentinel error.
func (b TextBlob) Err() error {
	switch b.Status {
	case TextNoData:
		return ErrNoData
	case TextNoText:
		return ErrNoText
	}
	return nil
}

type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

type CloudOptions struct {
	Width    int `json:"width" validate:"min=100,max=2000"`
	Height   int `json:"height" validate:"min=100,max=2000"`
	MaxWords int `json:"max_words" validate:"min=1,max=1000"`
}

type CloudView struct {
	Platform Platform   `json:"platform"`
	Name     string     `json:"name"`
	Status   TextStatus `json:"status"`
	Message  string     `json:"message,omitempty"`
	ImageURL string     `json:"image_url,omitempty"`
}

type Dashboard struct {
	Source  string          `json:"source"`
	Ranking []PlatformScore `json:"ranking"`
	Clouds  []CloudView     `json:"word_clouds"`
}
