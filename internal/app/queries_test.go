package app_test

import (
	"context"
	"testing"
	"time"

	"snowbird_docs/internal/app"
	"snowbird_docs/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	prop       domain.Property
	rules      *domain.HouseRulesDoc
	instr      *domain.InstructionsDoc
	crit       *domain.CriticalInfoDoc
	guide      *domain.LocalGuideDoc
	docLookups int
}

func (f *fakeRepo) PropertyBySlug(slug string) (domain.Property, error) {
	if slug != f.prop.Slug {
		return domain.Property{}, domain.ErrNotFound
	}
	return f.prop, nil
}

func (f *fakeRepo) Properties() []domain.Property { return []domain.Property{f.prop} }

func (f *fakeRepo) HouseRulesFor(slug string) (domain.HouseRulesDoc, bool) {
	f.docLookups++
	if f.rules == nil {
		return domain.HouseRulesDoc{}, false
	}
	return *f.rules, true
}

func (f *fakeRepo) InstructionsFor(slug string) (domain.InstructionsDoc, bool) {
	f.docLookups++
	if f.instr == nil {
		return domain.InstructionsDoc{}, false
	}
	return *f.instr, true
}

func (f *fakeRepo) CriticalInfoFor(slug string) (domain.CriticalInfoDoc, bool) {
	f.docLookups++
	if f.crit == nil {
		return domain.CriticalInfoDoc{}, false
	}
	return *f.crit, true
}

func (f *fakeRepo) GuideFor(locationSlug string) (domain.LocalGuideDoc, bool) {
	f.docLookups++
	if f.guide == nil || f.guide.LocationSlug != locationSlug {
		return domain.LocalGuideDoc{}, false
	}
	return *f.guide, true
}

type fakeCache struct {
	store map[string]any
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *domain.PropertyView:
		*d = v.(domain.PropertyView)
	case *[]domain.Property:
		*d = v.([]domain.Property)
	}
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

type fakeExtractor struct{ calls int }

func (x *fakeExtractor) Extract(body string) domain.WifiInfo {
	x.calls++
	n := "Lodge-5G"
	return domain.WifiInfo{Network: &n}
}

// ---- tests ----

func newRepo() *fakeRepo {
	return &fakeRepo{
		prop: domain.Property{
			Slug: "alpine-lodge", Title: "Alpine Lodge",
			Location: "Kelvin Heights Peninsula", Capacity: 8, Access: domain.AccessPublic,
		},
		instr: &domain.InstructionsDoc{PropertySlug: "alpine-lodge", Title: "User Instructions", Body: "## WiFi Access\nNetwork: Lodge-5G\n"},
		guide: &domain.LocalGuideDoc{LocationSlug: "kelvin-heights-peninsula", Title: "Kelvin Heights Guide"},
	}
}

func TestGetProperty_CacheMissThenHit(t *testing.T) {
	repo := newRepo()
	cache := &fakeCache{}
	x := &fakeExtractor{}
	q := app.NewQueryService(repo, x, cache, 10*time.Minute)

	// Miss (first time, populates cache)
	pv, err := q.GetProperty(context.Background(), "alpine-lodge")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if pv.Property.Title != "Alpine Lodge" {
		t.Fatalf("unexpected view: %+v", pv)
	}
	if pv.Instructions == nil || pv.HouseRules != nil {
		t.Fatalf("doc resolution wrong: %+v", pv)
	}
	if pv.Wifi.Network == nil || *pv.Wifi.Network != "Lodge-5G" {
		t.Fatalf("wifi not extracted: %+v", pv.Wifi)
	}
	if pv.LocalGuide == nil || pv.LocalGuide.Title != "Kelvin Heights Guide" {
		t.Fatalf("local guide not matched by location: %+v", pv.LocalGuide)
	}

	// Mutate repo to ensure second read indeed comes from cache
	repo.prop.Title = "SHOULD NOT SEE THIS"

	pv2, err := q.GetProperty(context.Background(), "alpine-lodge")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if pv2.Property.Title != "Alpine Lodge" {
		t.Fatalf("expected cached view, got %q", pv2.Property.Title)
	}
	if x.calls != 1 {
		t.Fatalf("extractor should run once, ran %d times", x.calls)
	}
}

func TestGetProperty_NotFoundSkipsDocLookups(t *testing.T) {
	repo := newRepo()
	q := app.NewQueryService(repo, &fakeExtractor{}, &fakeCache{}, time.Minute)

	if _, err := q.GetProperty(context.Background(), "nope"); err == nil {
		t.Fatalf("expected not-found error")
	}
	if repo.docLookups != 0 {
		t.Fatalf("expected no document lookups on unknown slug, got %d", repo.docLookups)
	}
}

func TestListProperties_HidesPrivate(t *testing.T) {
	repo := newRepo()
	repo.prop.Access = domain.AccessPrivate
	q := app.NewQueryService(repo, &fakeExtractor{}, &fakeCache{}, time.Minute)

	pub, err := q.ListProperties(context.Background(), false)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(pub) != 0 {
		t.Fatalf("private property leaked into public listing: %+v", pub)
	}

	all, err := q.ListProperties(context.Background(), true)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("admin listing should include private: %+v", all)
	}
}

func TestInvalidateProperty_EvictsCachedView(t *testing.T) {
	repo := newRepo()
	cache := &fakeCache{}
	q := app.NewQueryService(repo, &fakeExtractor{}, cache, 10*time.Minute)

	if _, err := q.GetProperty(context.Background(), "alpine-lodge"); err != nil {
		t.Fatalf("err: %v", err)
	}
	repo.prop.Title = "Renamed Lodge"
	q.InvalidateProperty(context.Background(), "alpine-lodge")

	pv, err := q.GetProperty(context.Background(), "alpine-lodge")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if pv.Property.Title != "Renamed Lodge" {
		t.Fatalf("expected fresh view after invalidation, got %q", pv.Property.Title)
	}
}
