package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"snowbird_docs/internal/adapters/observability"
	"snowbird_docs/internal/content"
	"snowbird_docs/internal/domain"
	"snowbird_docs/internal/shared"
)

// Compiles the content directory and reports what each property resolves to.
// Useful as a pre-deploy check: a malformed document fails the run, a missing
// document just shows up as false in the report.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("dir", cfg.ContentDir).
		Int("workers", cfg.Workers).
		Msg("compiler starting")

	store, err := content.Compile(ctx, cfg.ContentDir, cfg.Workers)
	if err != nil {
		log.Fatal().Err(err).Msg("compile failed")
	}

	wifi := content.LineScanner{}
	for _, p := range store.Properties() {
		_, hasRules := store.HouseRulesFor(p.Slug)
		instr, hasInstr := store.InstructionsFor(p.Slug)
		_, hasCrit := store.CriticalInfoFor(p.Slug)
		_, hasGuide := store.GuideFor(domain.LocationSlug(p.Location))

		hasWifi := false
		if hasInstr {
			info := wifi.Extract(instr.Body)
			hasWifi = info.Network != nil || info.Password != nil
		}

		log.Info().
			Str("slug", p.Slug).
			Str("location", p.Location).
			Str("access", string(p.Access)).
			Bool("house_rules", hasRules).
			Bool("instructions", hasInstr).
			Bool("critical_info", hasCrit).
			Bool("local_guide", hasGuide).
			Bool("wifi", hasWifi).
			Msg("property")
	}

	log.Info().Interface("documents", store.Counts()).Msg("compile completed")
}
