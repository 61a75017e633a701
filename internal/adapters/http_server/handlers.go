package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"absa_dashboard/internal/app"
	"absa_dashboard/internal/domain"
)

type Handlers struct {
	D *app.DashboardService
	v *validator.Validate
}

func NewHandlers(d *app.DashboardService) *Handlers {
	return &Handlers{D: d, v: validator.New()}
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/dashboard", h.getDashboard)
	s.mux.Get("/v1/platforms", h.listPlatforms)
	s.mux.Get("/v1/ranking.png", h.getRankingChart)
	s.mux.Route("/v1/platforms/{platform}", func(r chi.Router) {
		r.Get("/score", h.getScore)
		r.Get("/terms", h.listTerms)
		r.Get("/wordcloud.png", h.getWordCloud)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps domain errors onto problem responses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrLoadFailure):
		writeProblem(w, http.StatusServiceUnavailable, "Data Unavailable", err.Error())
	case errors.Is(err, domain.ErrMissingColumn):
		writeProblem(w, http.StatusInternalServerError, "Malformed Data", err.Error())
	case errors.Is(err, domain.ErrNoData):
		writeProblem(w, http.StatusNotFound, "No data for this platform.", "")
	case errors.Is(err, domain.ErrNoText):
		writeProblem(w, http.StatusNotFound, "No review text found.", "")
	case errors.Is(err, domain.ErrUnknownPlatform):
		writeProblem(w, http.StatusNotFound, "Not Found", "unknown platform")
	default:
		log.Error().Err(err).Msg("unhandled error")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func writePNG(w http.ResponseWriter, png []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		log.Error().Err(err).Msg("failed to write png body")
	}
}

func platformParam(w http.ResponseWriter, r *http.Request) (domain.Platform, bool) {
	p, ok := domain.ParsePlatform(chi.URLParam(r, "platform"))
	if !ok {
		writeError(w, domain.ErrUnknownPlatform)
	}
	return p, ok
}

// intParam parses an optional integer query parameter, falling back to def.
func intParam(r *http.Request, name string, def int) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

func (h *Handlers) getDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.D.Dashboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, d)
}

func (h *Handlers) listPlatforms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, h.D.Catalogue())
}

func (h *Handlers) getScore(w http.ResponseWriter, r *http.Request) {
	p, ok := platformParam(w, r)
	if !ok {
		return
	}
	s, err := h.D.PlatformScore(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, s)
}

func (h *Handlers) listTerms(w http.ResponseWriter, r *http.Request) {
	p, ok := platformParam(w, r)
	if !ok {
		return
	}
	limit, err := intParam(r, "limit", 50)
	if err != nil || limit <= 0 || limit > 200 {
		writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
		return
	}
	terms, err := h.D.Terms(r.Context(), p, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, struct {
		Platform domain.Platform    `json:"platform"`
		Terms    []domain.TermCount `json:"terms"`
	}{p, terms})
}

func (h *Handlers) getWordCloud(w http.ResponseWriter, r *http.Request) {
	p, ok := platformParam(w, r)
	if !ok {
		return
	}
	opts := h.D.CloudDefaults()
	var err error
	if opts.Width, err = intParam(r, "width", opts.Width); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid width", "width must be an integer")
		return
	}
	if opts.Height, err = intParam(r, "height", opts.Height); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid height", "height must be an integer")
		return
	}
	if err := h.v.Struct(opts); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid size", "width and height must be between 100 and 2000")
		return
	}
	png, err := h.D.WordCloud(r.Context(), p, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writePNG(w, png)
}

func (h *Handlers) getRankingChart(w http.ResponseWriter, r *http.Request) {
	png, err := h.D.RankingChart(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writePNG(w, png)
}
