package shared

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"absa_dashboard/internal/domain"
)

type Config struct {
	AppEnv         string `validate:"required"`
	LogLevel       string `validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	HTTPAddr       string `validate:"required"`
	MetricsAddr    string
	DataSource     string `validate:"oneof=file mysql"`
	DataFile       string `validate:"required_if=DataSource file"`
	DataSheet      string
	MySQLDSN       string `validate:"required_if=DataSource mysql"`
	RedisAddr      string
	RedisPass      string
	RedisDB        int           `validate:"min=0,max=15"`
	CacheTTL       time.Duration `validate:"min=0"`
	RateLimitRPS   int           `validate:"min=0"`
	RateLimitBurst int           `validate:"min=1"`
	IngestWorkers  int           `validate:"min=1,max=64"`
	TrustProxy     bool
	CORSOrigins    []string
	ConfigPath     string
	Dashboard      DashboardFile
}

// DashboardFile is the optional YAML overlay at DASHBOARD_CONFIG.
type DashboardFile struct {
	Platforms []domain.PlatformInfo `yaml:"platforms"`
	Stopwords []string              `yaml:"stopwords"`
	// Zero keeps the built-in default.
	WordCloud struct {
		Width    int `yaml:"width" validate:"omitempty,min=100,max=2000"`
		Height   int `yaml:"height" validate:"omitempty,min=100,max=2000"`
		MaxWords int `yaml:"maxWords" validate:"omitempty,min=1,max=1000"`
	} `yaml:"wordCloud"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads .env (if present), the environment and the optional YAML
// overlay, then validates the result.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file, using process environment")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Int("default", def).Msg("invalid integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		LogLevel:       strings.ToLower(env("LOG_LEVEL", "info")),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		MetricsAddr:    os.Getenv("METRICS_ADDR"),
		DataSource:     strings.ToLower(env("DATA_SOURCE", "file")),
		DataFile:       env("DATA_FILE", "absa_ModelResults.xlsx"),
		DataSheet:      os.Getenv("DATA_SHEET"),
		MySQLDSN:       env("MYSQL_DSN", "root:root@tcp(localhost:3306)/absa?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPass:      env("REDIS_PASSWORD", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		RateLimitRPS:   atoi("RATE_LIMIT_RPS", 20),
		RateLimitBurst: atoi("RATE_LIMIT_BURST", 40),
		IngestWorkers:  atoi("INGEST_WORKERS", 4),
		TrustProxy:     boolEnv("TRUST_PROXY"),
		CORSOrigins:    splitList(env("CORS_ORIGINS", "https://*,http://*")),
		ConfigPath:     os.Getenv("DASHBOARD_CONFIG"),
	}

	if c.ConfigPath != "" {
		raw, err := os.ReadFile(c.ConfigPath)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", c.ConfigPath, err)
		}
		if err := yaml.Unmarshal(raw, &c.Dashboard); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", c.ConfigPath, err)
		}
	}

	if err := validate.Struct(c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if c.RedisAddr == "" {
		log.Info().Msg("REDIS_ADDR is empty, image cache disabled")
	}
	return c, nil
}

// Catalogue merges YAML platform entries over the built-in catalogue.
// Entries for platforms outside the fixed set are ignored.
func (c Config) Catalogue() map[domain.Platform]domain.PlatformInfo {
	cat := domain.DefaultCatalogue()
	for _, p := range c.Dashboard.Platforms {
		id, ok := domain.ParsePlatform(string(p.ID))
		if !ok {
			log.Warn().Str("platform", string(p.ID)).Msg("config: unknown platform ignored")
			continue
		}
		cur := cat[id]
		if p.Name != "" {
			cur.Name = p.Name
		}
		if p.Emoji != "" {
			cur.Emoji = p.Emoji
		}
		if p.Blurb != "" {
			cur.Blurb = p.Blurb
		}
		cat[id] = cur
	}
	return cat
}

// CloudOptions returns the configured word-cloud defaults; zero values are
// filled in by the dashboard service.
func (c Config) CloudOptions() domain.CloudOptions {
	return domain.CloudOptions{
		Width:    c.Dashboard.WordCloud.Width,
		Height:   c.Dashboard.WordCloud.Height,
		MaxWords: c.Dashboard.WordCloud.MaxWords,
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func boolEnv(k string) bool {
	v := os.Getenv(k)
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warn().Str("key", k).Str("value", v).Msg("invalid boolean, using false")
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
