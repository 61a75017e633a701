package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"absa_dashboard/internal/absa"
	"absa_dashboard/internal/adapters/observability"
	"absa_dashboard/internal/domain"
)

// Options configures a DashboardService. Zero fields take defaults.
type Options struct {
	SourceName string
	Catalogue  map[domain.Platform]domain.PlatformInfo
	Stopwords  map[string]struct{}
	Cloud      domain.CloudOptions
	CacheTTL   time.Duration
}

// DashboardService answers every dashboard query with a fresh load of the
// review table. Only rendered images are cached, keyed by a hash of the
// renderer input.
type DashboardService struct {
	src      domain.RecordSource
	renderer domain.Renderer
	cache    domain.Cache
	opts     Options
}

func NewDashboardService(src domain.RecordSource, r domain.Renderer, c domain.Cache, opts Options) *DashboardService {
	if opts.SourceName == "" {
		opts.SourceName = "default"
	}
	if opts.Catalogue == nil {
		opts.Catalogue = domain.DefaultCatalogue()
	}
	if opts.Stopwords == nil {
		opts.Stopwords = absa.DefaultStopwords()
	}
	if opts.Cloud.Width == 0 {
		opts.Cloud.Width = 400
	}
	if opts.Cloud.Height == 0 {
		opts.Cloud.Height = 250
	}
	if opts.Cloud.MaxWords == 0 {
		opts.Cloud.MaxWords = 200
	}
	return &DashboardService{src: src, renderer: r, cache: c, opts: opts}
}

// CloudDefaults returns the word-cloud options used when a request sets none.
func (s *DashboardService) CloudDefaults() domain.CloudOptions { return s.opts.Cloud }

// Catalogue lists platform display metadata in ranking input order.
func (s *DashboardService) Catalogue() []domain.PlatformInfo {
	out := make([]domain.PlatformInfo, 0, len(domain.Platforms))
	for _, p := range domain.Platforms {
		out = append(out, s.info(p))
	}
	return out
}

func (s *DashboardService) info(p domain.Platform) domain.PlatformInfo {
	if info, ok := s.opts.Catalogue[p]; ok {
		return info
	}
	return domain.PlatformInfo{ID: p, Name: string(p)}
}

func (s *DashboardService) load(ctx context.Context) (domain.Table, error) {
	start := time.Now()
	t, err := s.src.Load(ctx)
	observability.ObserveLoad(s.opts.SourceName, len(t.Records), err, time.Since(start))
	if err != nil {
		log.Error().Err(err).Str("source", s.opts.SourceName).Msg("load review table failed")
		return domain.Table{}, err
	}
	log.Debug().Str("source", t.Source).Int("rows", len(t.Records)).Dur("took", time.Since(start)).Msg("review table loaded")
	return t, nil
}

// Dashboard loads once and builds the ranking plus the word-cloud section.
func (s *DashboardService) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	t, err := s.load(ctx)
	if err != nil {
		return domain.Dashboard{}, err
	}

	out := domain.Dashboard{
		Source:  t.Source,
		Ranking: absa.Rank(absa.Scores(t.Records, s.opts.Catalogue)),
		Clouds:  make([]domain.CloudView, 0, len(domain.CloudOrder)),
	}
	for _, p := range domain.CloudOrder {
		view := domain.CloudView{Platform: p, Name: s.info(p).Name}
		_, err := s.terms(t, p)
		switch {
		case err == nil:
			view.Status = domain.TextOK
			view.ImageURL = fmt.Sprintf("/v1/platforms/%s/wordcloud.png", p)
		case errors.Is(err, domain.ErrNoData):
			view.Status, view.Message = domain.TextNoData, "No data for this platform."
		default:
			view.Status, view.Message = domain.TextNoText, "No review text found."
		}
		out.Clouds = append(out.Clouds, view)
	}
	return out, nil
}

// Ranking returns ranked platform scores.
func (s *DashboardService) Ranking(ctx context.Context) ([]domain.PlatformScore, error) {
	t, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return absa.Rank(absa.Scores(t.Records, s.opts.Catalogue)), nil
}

// PlatformScore returns one platform's ranked score.
func (s *DashboardService) PlatformScore(ctx context.Context, p domain.Platform) (domain.PlatformScore, error) {
	ranking, err := s.Ranking(ctx)
	if err != nil {
		return domain.PlatformScore{}, err
	}
	for _, ps := range ranking {
		if ps.Platform == p {
			return ps, nil
		}
	}
	return domain.PlatformScore{}, domain.ErrUnknownPlatform
}

// Terms returns up to limit word counts for platform p.
func (s *DashboardService) Terms(ctx context.Context, p domain.Platform, limit int) ([]domain.TermCount, error) {
	t, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	terms, err := s.terms(t, p)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(terms) > limit {
		terms = terms[:limit]
	}
	return terms, nil
}

func (s *DashboardService) terms(t domain.Table, p domain.Platform) ([]domain.TermCount, error) {
	blob := absa.AggregateText(t.Records, p)
	if err := blob.Err(); err != nil {
		return nil, err
	}
	return absa.Terms(blob.Text, absa.TermOptions{MaxWords: s.opts.Cloud.MaxWords, Stopwords: s.opts.Stopwords})
}

// WordCloud renders platform p's word cloud as PNG. Platforms without
// text report ErrNoData or ErrNoText and the renderer is not called.
func (s *DashboardService) WordCloud(ctx context.Context, p domain.Platform, opts domain.CloudOptions) ([]byte, error) {
	if opts.MaxWords == 0 {
		opts.MaxWords = s.opts.Cloud.MaxWords
	}
	t, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	terms, err := s.terms(t, p)
	if err != nil {
		observability.ObserveRender("wordcloud", observability.LabelErr(err))
		return nil, err
	}

	key := fmt.Sprintf("wordcloud:%s:%s:%dx%d:%d", p, digest(terms), opts.Width, opts.Height, opts.MaxWords)
	return s.cachedRender(ctx, "wordcloud", key, func() ([]byte, error) {
		return s.renderer.WordCloud(terms, opts)
	})
}

// RankingChart renders the ranking as a PNG bar chart.
func (s *DashboardService) RankingChart(ctx context.Context) ([]byte, error) {
	ranking, err := s.Ranking(ctx)
	if err != nil {
		return nil, err
	}
	key := "ranking:" + digest(ranking)
	return s.cachedRender(ctx, "ranking", key, func() ([]byte, error) {
		return s.renderer.RankingChart(ranking)
	})
}

// cachedRender serves key from the cache or renders and stores it. Cache
// errors never fail the request.
func (s *DashboardService) cachedRender(ctx context.Context, kind, key string, render func() ([]byte, error)) ([]byte, error) {
	if s.cache != nil {
		var png []byte
		if ok, err := s.cache.Get(ctx, key, &png); err == nil && ok && len(png) > 0 {
			observability.ObserveRender(kind, "cached")
			return png, nil
		} else if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("image cache get failed")
		}
	}

	png, err := render()
	if err != nil {
		observability.ObserveRender(kind, "error")
		return nil, err
	}
	observability.ObserveRender(kind, "ok")

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, png, int(s.opts.CacheTTL.Seconds())); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("image cache set failed")
		}
	}
	return png, nil
}

// digest hashes the JSON form of v; identical renderer input gives an identical key.
func digest(v any) string {
	b, _ := json.Marshal(v)
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
