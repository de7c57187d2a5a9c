// Package watch re-runs a build whenever the repository's HEAD moves or a
// watched input file changes.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docstamp/internal/git"
	"git.home.luguber.info/inful/docstamp/internal/logfields"
)

// DefaultDebounce collapses bursts of events (a commit touches several refs).
const DefaultDebounce = 300 * time.Millisecond

// RebuildFunc runs one build. Errors are logged and do not stop the watcher.
type RebuildFunc func(ctx context.Context) error

// Watcher monitors git metadata and input files and triggers serial rebuilds.
type Watcher struct {
	watcher  *fsnotify.Watcher
	rebuild  RebuildFunc
	debounce time.Duration
	logger   *slog.Logger

	// files restricts events inside a watched directory to these paths.
	// Directories added via AddDir match every entry except ignored ones.
	files map[string]bool
	dirs  map[string]bool
	// trees holds directories whose new subdirectories are watched too.
	trees map[string]bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option { return func(w *Watcher) { w.debounce = d } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(w *Watcher) { w.logger = l } }

// New creates a Watcher that calls rebuild once at start and after every burst of changes.
func New(rebuild RebuildFunc, opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w := &Watcher{
		watcher:  fw,
		rebuild:  rebuild,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
		files:    map[string]bool{},
		dirs:     map[string]bool{},
		trees:    map[string]bool{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// AddGitDir watches the places a commit, checkout or reset writes to: the
// git directory itself (HEAD), every directory below refs/heads (branch names
// may contain slashes) and packed-refs. For a linked work tree the branch refs
// live in the common directory, which is watched as well.
func (w *Watcher) AddGitDir(gitDir string) error {
	if err := w.AddDir(gitDir); err != nil {
		return err
	}
	common, err := git.CommonDir(gitDir)
	if err != nil {
		return fmt.Errorf("failed to read commondir of %s: %w", gitDir, err)
	}
	if err := w.AddTree(filepath.Join(common, "refs", "heads")); err != nil {
		return err
	}
	if filepath.Clean(common) != filepath.Clean(gitDir) {
		return w.AddFile(filepath.Join(common, "packed-refs"))
	}
	return nil
}

// AddTree watches root and every directory below it, including directories
// created later. A missing root is skipped.
func (w *Watcher) AddTree(root string) error {
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.AddDir(path); err != nil {
			return err
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		w.trees[abs] = true
		return nil
	})
}

// AddDir watches every entry of dir.
func (w *Watcher) AddDir(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	if err := w.watcher.Add(abs); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", abs, err)
	}
	w.dirs[abs] = true
	return nil
}

// AddFile watches a single file. Its directory is watched, which survives
// editors that save by renaming over the original.
func (w *Watcher) AddFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	dir := filepath.Dir(abs)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	w.files[abs] = true
	return nil
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Run builds once, then rebuilds serially after changes until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			w.logger.Debug("Error closing file watcher", logfields.Error(err))
		}
	}()

	w.build(ctx)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.followNewDir(event)
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("Change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			timer.Reset(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", logfields.Error(err))
		case <-timer.C:
			w.build(ctx)
		}
	}
}

func (w *Watcher) build(ctx context.Context) {
	if err := w.rebuild(ctx); err != nil {
		w.logger.Error("Rebuild failed", logfields.Error(err))
	}
}

// followNewDir extends a watched tree to a directory created inside it, such
// as refs/heads/feature when the first feature/* branch is made.
func (w *Watcher) followNewDir(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) {
		return
	}
	name := filepath.Clean(event.Name)
	if !w.trees[filepath.Dir(name)] {
		return
	}
	if info, err := os.Stat(name); err != nil || !info.IsDir() {
		return
	}
	if err := w.AddTree(name); err != nil {
		w.logger.Warn("Failed to watch new directory", logfields.Path(name), logfields.Error(err))
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Clean(event.Name)
	if w.files[name] {
		return true
	}
	if !w.dirs[filepath.Dir(name)] {
		return false
	}
	return !ignoredGitEntry(filepath.Base(name))
}

// ignoredGitEntry filters git bookkeeping that changes without moving HEAD.
func ignoredGitEntry(base string) bool {
	switch {
	case strings.HasSuffix(base, ".lock"):
		return true
	case base == "index", base == "FETCH_HEAD", base == "COMMIT_EDITMSG", base == "objects":
		return true
	}
	return false
}
