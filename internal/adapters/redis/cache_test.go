package redisad_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	redisad "snowbird_docs/internal/adapters/redis"
	"snowbird_docs/internal/domain"
)

func TestCache_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	title := "Alpine Lodge"
	in := domain.Property{Slug: "alpine-lodge", Title: title, Location: "Kelvin Heights Peninsula", Capacity: 8, Access: domain.AccessPublic}
	if err := c.Set(ctx, "property:alpine-lodge", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out domain.Property
	ok, err := c.Get(ctx, "property:alpine-lodge", &out)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if out.Title != title || out.Capacity != 8 {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestCache_MissAndDel(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	var out domain.Property
	ok, err := c.Get(ctx, "property:nope", &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected miss")
	}

	if err := c.Set(ctx, "property:gone", domain.Property{Slug: "gone"}, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Del(ctx, "property:gone"); err != nil {
		t.Fatalf("del: %v", err)
	}
	ok, err = c.Get(ctx, "property:gone", &out)
	if err != nil || ok {
		t.Fatalf("expected miss after del: ok=%v err=%v", ok, err)
	}
}
