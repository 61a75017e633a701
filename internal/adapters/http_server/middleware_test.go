package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRemoteIP(t *testing.T) {
	cases := []struct {
		name string
		hdr  map[string]string
		addr string
		want string
	}{
		{"forwarded for", map[string]string{"X-Forwarded-For": " 10.0.0.1 , 10.0.0.2"}, "1.1.1.1:80", "10.0.0.1"},
		{"real ip", map[string]string{"X-Real-IP": "10.0.0.9"}, "1.1.1.1:80", "10.0.0.9"},
		{"remote addr", nil, "1.1.1.1:80", "1.1.1.1"},
		{"bare addr", nil, "pipe", "pipe"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tc.addr
			for k, v := range tc.hdr {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tc.want, remoteIP(r))
		})
	}
}

func TestIPLimiter(t *testing.T) {
	l := NewIPLimiter(1, 2)
	now := time.Unix(1_700_000_000, 0)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"), "buckets are per IP")

	now = now.Add(time.Second)
	assert.True(t, l.Allow("a"), "refills at rps")

	now = now.Add(10 * time.Minute)
	l.Allow("c")
	assert.Equal(t, 1, l.size(), "idle buckets swept")
}

func TestRateLimitMiddleware(t *testing.T) {
	s := New(Options{RateLimitRPS: 1, RateLimitBurst: 1})
	s.mux.Get("/x", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

	call := func(ip string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "/x", nil)
		r.RemoteAddr = ip + ":1234"
		rr := httptest.NewRecorder()
		s.Mux().ServeHTTP(rr, r)
		return rr
	}

	assert.Equal(t, http.StatusNoContent, call("10.1.1.1").Code)
	rr := call("10.1.1.1")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))
	assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))
	assert.Equal(t, http.StatusNoContent, call("10.1.1.2").Code)
}

func TestCORSPreflight(t *testing.T) {
	s := New(Options{CORSOrigins: []string{"https://dash.example"}})
	s.mux.Get("/x", func(w http.ResponseWriter, r *http.Request) {})

	r := httptest.NewRequest(http.MethodOptions, "/x", nil)
	r.Header.Set("Origin", "https://dash.example")
	r.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := httptest.NewRecorder()
	s.Mux().ServeHTTP(rr, r)
	assert.Equal(t, "https://dash.example", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestIPLimiter_OverflowBucket(t *testing.T) {
	l := NewIPLimiter(1, 1)
	l.maxBuckets = 2
	now := time.Unix(1_700_000_000, 0)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))
	assert.True(t, l.Allow("c"), "first unseen IP past the cap uses the overflow bucket")
	assert.False(t, l.Allow("d"), "overflow bucket is shared")
	assert.Equal(t, 2, l.size())
}

func TestRateLimit_ForwardedFor(t *testing.T) {
	cases := []struct {
		name       string
		trustProxy bool
		second     int
	}{
		{"header ignored without trusted proxy", false, http.StatusTooManyRequests},
		{"header honoured behind trusted proxy", true, http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := New(Options{RateLimitRPS: 1, RateLimitBurst: 1, TrustProxy: tc.trustProxy})
			s.mux.Get("/x", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

			call := func(xff string) int {
				r := httptest.NewRequest(http.MethodGet, "/x", nil)
				r.RemoteAddr = "10.9.9.9:4000"
				r.Header.Set("X-Forwarded-For", xff)
				rr := httptest.NewRecorder()
				s.Mux().ServeHTTP(rr, r)
				return rr.Code
			}
			assert.Equal(t, http.StatusNoContent, call("203.0.113.1"))
			assert.Equal(t, tc.second, call("203.0.113.2"))
		})
	}
}

func TestTimeout(t *testing.T) {
	s := New(Options{Timeout: 20 * time.Millisecond})
	s.mux.Get("/slow", func(w http.ResponseWriter, r *http.Request) { <-r.Context().Done() })

	rr := httptest.NewRecorder()
	s.Mux().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "request timed out", rr.Body.String())
	assert.NotEqual(t, "application/problem+json", rr.Header().Get("Content-Type"))
}
