package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv        string
	HTTPAddr      string
	MetricsAddr   string
	ContentDir    string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	IdentityBase  string
	IdentityKey   string
	SiteBase      string
	SessionCookie string
	SessionVerify string // presence | provider
	SessionTTL    time.Duration
	CacheTTL      time.Duration
	Workers       int
	Watch         bool
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:        env("APP_ENV", "prod"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		MetricsAddr:   env("METRICS_ADDR", ":9100"),
		ContentDir:    env("CONTENT_DIR", "content"),
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		IdentityBase:  env("IDENTITY_BASE_URL", ""),
		IdentityKey:   env("IDENTITY_API_KEY", ""),
		SiteBase:      env("SITE_BASE_URL", "http://localhost:8080"),
		SessionCookie: env("SESSION_COOKIE", "sb-auth-token"),
		SessionVerify: env("SESSION_VERIFY", "presence"),
		SessionTTL:    time.Duration(atoi("SESSION_TTL_SECONDS", 8*3600)) * time.Second,
		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		Workers:       atoi("COMPILE_WORKERS", 8),
		Watch:         env("CONTENT_WATCH", "") != "",
	}
	if c.IdentityKey == "" {
		log.Warn().Msg("IDENTITY_API_KEY is empty; magic-link sign-in disabled")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
