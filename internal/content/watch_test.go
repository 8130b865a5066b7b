package content_test

import (
	"context"
	"testing"
	"time"

	"snowbird_docs/internal/content"
)

func TestWatch_FailedRecompileKeepsSnapshot(t *testing.T) {
	dir := testContentDir(t)
	store, err := content.Compile(context.Background(), dir, 4)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	h := content.NewHolder(store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	swapped := make(chan struct{}, 8)
	go func() {
		_ = content.Watch(ctx, dir, 4, h, func(old, next *content.Store) {
			swapped <- struct{}{}
		})
	}()

	waitSwap := func(d time.Duration) bool {
		select {
		case <-swapped:
			return true
		case <-time.After(d):
			return false
		}
	}

	// Warm up: keep touching a file until the watcher proves it is live.
	// Writes are spaced wider than the debounce so a received event fires.
	live := false
	for i := 0; i < 10 && !live; i++ {
		writeDoc(t, dir, "properties/alpine-lodge/property.mdx",
			"---\ntitle: Alpine Lodge\nlocation: Kelvin Heights Peninsula\ncapacity: 8\n---\nWelcome to the lodge.\n")
		live = waitSwap(time.Second)
	}
	if !live {
		t.Fatalf("watcher never recompiled after content changes")
	}
	// Late swaps from the warm-up writes.
	time.Sleep(time.Second)
drained:
	for {
		select {
		case <-swapped:
		default:
			break drained
		}
	}

	// Break the document: the recompile must fail and the previous snapshot
	// must keep serving.
	writeDoc(t, dir, "properties/alpine-lodge/property.mdx",
		"---\ntitle: Broken Lodge\nlocation: Kelvin Heights Peninsula\n---\nno capacity\n")
	if waitSwap(2 * time.Second) {
		t.Fatalf("broken content must not replace the snapshot")
	}
	p, err := h.PropertyBySlug("alpine-lodge")
	if err != nil {
		t.Fatalf("previous snapshot lost: %v", err)
	}
	if p.Title != "Alpine Lodge" || p.Capacity != 8 {
		t.Fatalf("previous snapshot corrupted: %+v", p)
	}

	// Fix the document: the next recompile swaps the snapshot in.
	writeDoc(t, dir, "properties/alpine-lodge/property.mdx",
		"---\ntitle: Alpine Lodge Reborn\nlocation: Kelvin Heights Peninsula\ncapacity: 10\n---\nWelcome back.\n")
	if !waitSwap(5 * time.Second) {
		t.Fatalf("repaired content was not recompiled")
	}
	p, err = h.PropertyBySlug("alpine-lodge")
	if err != nil {
		t.Fatalf("PropertyBySlug after swap: %v", err)
	}
	if p.Title != "Alpine Lodge Reborn" || p.Capacity != 10 {
		t.Fatalf("swap did not install the new snapshot: %+v", p)
	}
	if _, err := h.PropertyBySlug("staff-hut"); err != nil {
		t.Fatalf("unrelated property missing after swap: %v", err)
	}
}
