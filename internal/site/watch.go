package site

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for writes to stop before
// reporting a change.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reports changes to a deck source and any extra watched paths.
type Watcher struct {
	Debounce time.Duration

	fw      *fsnotify.Watcher
	pattern string   // deck pattern, or a single file
	dirs    []string // deck directories matched by any .md file
	extra   []string
}

// NewWatcher watches deckPath, which may be a file, a directory of .md
// files or a doublestar glob, plus the given extra files or directories.
func NewWatcher(deckPath string, extra []string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	w := &Watcher{Debounce: DefaultDebounce, fw: fw}

	var watch []string
	switch info, err := os.Stat(deckPath); {
	case err == nil && info.IsDir():
		dir := filepath.Clean(deckPath)
		w.dirs = append(w.dirs, dir)
		watch = append(watch, dir)
	case strings.ContainsAny(deckPath, "*?[{"):
		w.pattern = filepath.ToSlash(filepath.Clean(deckPath))
		base, _ := doublestar.SplitPattern(w.pattern)
		dirs, err := globDirs(base)
		if err != nil {
			fw.Close()
			return nil, err
		}
		watch = append(watch, dirs...)
	default:
		w.pattern = filepath.ToSlash(filepath.Clean(deckPath))
		watch = append(watch, filepath.Dir(deckPath))
	}

	for _, p := range extra {
		p = filepath.Clean(p)
		w.extra = append(w.extra, p)
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			watch = append(watch, p)
		} else {
			watch = append(watch, filepath.Dir(p))
		}
	}

	for _, dir := range watch {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	return w, nil
}

// globDirs lists base and every directory below it, since fsnotify does
// not watch recursively.
func globDirs(base string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(filepath.FromSlash(base), func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", base, err)
	}
	return dirs, nil
}

// relevant reports whether an event on name affects the deck.
func (w *Watcher) relevant(name string) bool {
	clean := filepath.Clean(name)
	slashed := filepath.ToSlash(clean)

	for _, dir := range w.dirs {
		if filepath.Dir(clean) == dir && strings.HasSuffix(clean, ".md") {
			return true
		}
	}
	if w.pattern != "" {
		if slashed == w.pattern {
			return true
		}
		if ok, _ := doublestar.Match(w.pattern, slashed); ok {
			return true
		}
	}
	for _, p := range w.extra {
		if clean == p || strings.HasPrefix(clean, p+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Run calls onChange once per burst of relevant filesystem events until ctx
// is cancelled.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if ev.Op == fsnotify.Chmod || !w.relevant(ev.Name) {
				continue
			}
			log.Printf("watch: %s %s", ev.Op, ev.Name)
			timer.Reset(debounce)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch: %v", err)
		case <-timer.C:
			onChange()
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fw.Close()
}
