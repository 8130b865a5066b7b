package content

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

const rebuildDebounce = 500 * time.Millisecond

// Watch recompiles the content directory whenever source files change and
// swaps the holder's snapshot. A failed compile keeps the previous snapshot.
// onSwap (optional) runs after each successful swap with the old and new
// stores, so callers can invalidate caches and refresh gauges. Blocks until
// ctx is done.
func Watch(ctx context.Context, dir string, workers int, h *Holder, onSwap func(old, next *Store)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addTree(w, dir); err != nil {
		return err
	}
	log.Info().Str("dir", dir).Msg("watching content")

	timer := time.NewTimer(rebuildDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			// New subdirectories need their own watch.
			if ev.Op.Has(fsnotify.Create) {
				_ = addTree(w, ev.Name)
			}
			// Drain a fired-but-unread timer so Reset starts a clean window.
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(rebuildDebounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("content watcher error")

		case <-timer.C:
			next, err := Compile(ctx, dir, workers)
			if err != nil {
				log.Warn().Err(err).Msg("recompile failed; keeping previous snapshot")
				continue
			}
			old := h.Swap(next)
			log.Info().Interface("documents", next.Counts()).Msg("content recompiled")
			if onSwap != nil {
				onSwap(old, next)
			}
		}
	}
}

// addTree registers path and every directory below it. Non-directory paths
// are ignored so Create events for files can be passed in as-is.
func addTree(w *fsnotify.Watcher, path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // transient: entries can vanish mid-walk
		}
		if d.IsDir() {
			return w.Add(p)
		}
		return nil
	})
}
