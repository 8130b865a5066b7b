package app

import (
	"context"
	"time"

	"snowbird_docs/internal/domain"
)

const (
	keyPropertyPrefix = "property:"
	keyPublicList     = "properties:public"
	keyFullList       = "properties:all"
)

type QueryService struct {
	repo     domain.ContentRepository
	wifi     domain.WifiExtractor
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.ContentRepository, x domain.WifiExtractor, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, wifi: x, cache: c, cacheTTL: ttl}
}

// GetProperty resolves a property page view: the property record, its three
// property-scoped documents by slug, the local guide by normalized location,
// and wifi credentials extracted from the instructions body. Unknown slug is
// terminal; document absence is a valid state.
func (s *QueryService) GetProperty(ctx context.Context, slug string) (domain.PropertyView, error) {
	key := keyPropertyPrefix + slug
	var pv domain.PropertyView
	if ok, _ := s.cache.Get(ctx, key, &pv); ok {
		return pv, nil
	}

	p, err := s.repo.PropertyBySlug(slug)
	if err != nil {
		return domain.PropertyView{}, err
	}

	pv = domain.PropertyView{Property: p}
	if d, ok := s.repo.HouseRulesFor(p.Slug); ok {
		pv.HouseRules = &d
	}
	if d, ok := s.repo.InstructionsFor(p.Slug); ok {
		pv.Instructions = &d
		pv.Wifi = s.wifi.Extract(d.Body)
	}
	if d, ok := s.repo.CriticalInfoFor(p.Slug); ok {
		pv.CriticalInfo = &d
	}
	if g, ok := s.repo.GuideFor(domain.LocationSlug(p.Location)); ok {
		pv.LocalGuide = &g
	}

	_ = s.cache.Set(ctx, key, pv, int(s.cacheTTL.Seconds()))
	return pv, nil
}

// ListProperties returns the catalog; includePrivate is the admin view,
// otherwise access=private properties are hidden from listings.
func (s *QueryService) ListProperties(ctx context.Context, includePrivate bool) ([]domain.Property, error) {
	key := keyPublicList
	if includePrivate {
		key = keyFullList
	}
	var out []domain.Property
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	for _, p := range s.repo.Properties() {
		if !includePrivate && p.Access != domain.AccessPublic {
			continue
		}
		out = append(out, p)
	}
	_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

// Invalidation hooks for the content watcher: a recompile evicts per-slug
// views and both listing variants so stale snapshots don't outlive the TTL.

func (s *QueryService) InvalidateProperty(ctx context.Context, slug string) {
	_ = s.cache.Del(ctx, keyPropertyPrefix+slug)
}

func (s *QueryService) InvalidateLists(ctx context.Context) {
	_ = s.cache.Del(ctx, keyPublicList)
	_ = s.cache.Del(ctx, keyFullList)
}
