package main

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	server "snowbird_docs/internal/adapters/http_server"
	"snowbird_docs/internal/adapters/identity"
	"snowbird_docs/internal/adapters/observability"
	redisad "snowbird_docs/internal/adapters/redis"
	"snowbird_docs/internal/app"
	"snowbird_docs/internal/content"
	"snowbird_docs/internal/domain"
	"snowbird_docs/internal/shared"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// content
	store, err := content.Compile(ctx, cfg.ContentDir, cfg.Workers)
	if err != nil {
		log.Fatal().Err(err).Msg("content compile failed")
	}
	holder := content.NewHolder(store)
	observability.SetContentDocs(store.Counts())
	log.Info().Interface("documents", store.Counts()).Msg("content compiled")

	// deps
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	q := app.NewQueryService(holder, content.LineScanner{}, cache, cfg.CacheTTL)

	var ident *identity.Client
	if cfg.IdentityKey != "" && cfg.IdentityBase != "" {
		ident, err = identity.New(cfg.IdentityBase, cfg.IdentityKey, 5)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize identity client")
		}
	}

	var verifier domain.SessionVerifier = identity.PresenceVerifier{}
	if cfg.SessionVerify == "provider" {
		if ident == nil {
			log.Fatal().Msg("SESSION_VERIFY=provider requires IDENTITY_BASE_URL and IDENTITY_API_KEY")
		}
		verifier = identity.NewTokenVerifier(ident)
	}

	// http
	gate := &server.AccessGate{
		CookieName: cfg.SessionCookie,
		LoginPath:  "/auth/login",
		AdminPath:  "/admin",
		Protected:  []string{"/admin", "/debug"},
		Verifier:   verifier,
	}
	srv := server.New(gate)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))

	h := &server.Handlers{
		Q:        q,
		SiteBase: cfg.SiteBase,
		Cookie:   server.SessionCookie{Name: cfg.SessionCookie, TTL: cfg.SessionTTL},
	}
	if ident != nil {
		h.Identity = ident
	}
	srv.MountHandlers(h)

	if cfg.Watch {
		go func() {
			err := content.Watch(ctx, cfg.ContentDir, cfg.Workers, holder, func(old, next *content.Store) {
				observability.SetContentDocs(next.Counts())
				for _, p := range old.Properties() {
					q.InvalidateProperty(ctx, p.Slug)
				}
				for _, p := range next.Properties() {
					q.InvalidateProperty(ctx, p.Slug)
				}
				q.InvalidateLists(ctx)
			})
			if err != nil {
				log.Error().Err(err).Msg("content watcher failed")
			}
		}()
	}

	log.Info().Str("addr", cfg.HTTPAddr).Msg("site listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
