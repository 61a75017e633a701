package shared_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"absa_dashboard/internal/domain"
	"absa_dashboard/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "HTTP_ADDR", "DATA_SOURCE", "DATA_FILE", "REDIS_ADDR", "DASHBOARD_CONFIG", "CACHE_TTL_SECONDS", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	c, err := shared.Load()
	require.NoError(t, err)
	assert.Equal(t, "prod", c.AppEnv)
	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, "file", c.DataSource)
	assert.Equal(t, "absa_ModelResults.xlsx", c.DataFile)
	assert.Equal(t, 900*time.Second, c.CacheTTL)
	assert.Empty(t, c.RedisAddr)
	assert.Equal(t, []string{"https://*", "http://*"}, c.CORSOrigins)
	assert.Equal(t, domain.DefaultCatalogue(), c.Catalogue())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATA_SOURCE", "MySQL")
	t.Setenv("MYSQL_DSN", "u:p@tcp(db:3306)/absa")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("INGEST_WORKERS", "not-a-number")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")

	c, err := shared.Load()
	require.NoError(t, err)
	assert.Equal(t, "mysql", c.DataSource)
	assert.Equal(t, "u:p@tcp(db:3306)/absa", c.MySQLDSN)
	assert.Equal(t, time.Minute, c.CacheTTL)
	assert.Equal(t, 4, c.IngestWorkers)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.CORSOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("DATA_SOURCE", "s3")
	_, err := shared.Load()
	assert.ErrorContains(t, err, "DataSource")

	t.Setenv("DATA_SOURCE", "file")
	t.Setenv("LOG_LEVEL", "loud")
	_, err = shared.Load()
	assert.ErrorContains(t, err, "LogLevel")
}

func TestLoad_YAMLOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dashboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
platforms:
  - id: " GrabFood "
    name: Grab
  - id: deliveroo
    name: Nope
stopwords: [mamak, teh]
wordCloud:
  width: 800
  maxWords: 50
`), 0o644))
	t.Setenv("DASHBOARD_CONFIG", path)

	c, err := shared.Load()
	require.NoError(t, err)

	cat := c.Catalogue()
	assert.Equal(t, "Grab", cat[domain.GrabFood].Name)
	assert.Equal(t, "🍔", cat[domain.GrabFood].Emoji)
	assert.Len(t, cat, 3)
	assert.Equal(t, []string{"mamak", "teh"}, c.Dashboard.Stopwords)
	assert.Equal(t, domain.CloudOptions{Width: 800, MaxWords: 50}, c.CloudOptions())
}

func TestLoad_YAMLWordCloudOutOfRange(t *testing.T) {
	cases := map[string]string{
		"width too small":    "wordCloud:\n  width: 50\n",
		"height too large":   "wordCloud:\n  height: 2001\n",
		"too many max words": "wordCloud:\n  maxWords: 5000\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "dashboard.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			t.Setenv("DASHBOARD_CONFIG", path)

			_, err := shared.Load()
			assert.ErrorContains(t, err, "WordCloud")
		})
	}
}

func TestLoad_TrustProxy(t *testing.T) {
	t.Setenv("TRUST_PROXY", "true")
	c, err := shared.Load()
	require.NoError(t, err)
	assert.True(t, c.TrustProxy)

	t.Setenv("TRUST_PROXY", "")
	c, err = shared.Load()
	require.NoError(t, err)
	assert.False(t, c.TrustProxy)
}

func TestLoad_YAMLMissing(t *testing.T) {
	t.Setenv("DASHBOARD_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := shared.Load()
	assert.Error(t, err)
}
