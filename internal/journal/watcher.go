package journal

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher publishes a fresh Listing whenever journal files in a directory
// change. The directory is also rescanned periodically so a folder that does
// not exist yet (game not installed, drive not mounted) is picked up later.
type Watcher struct {
	Dir string

	// Debounce batches rapid writes (the game appends to the journal
	// constantly while running).
	Debounce time.Duration
	// PollInterval is the fallback rescan interval.
	PollInterval time.Duration

	log *zap.Logger
	out chan Listing

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	watched bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewWatcher(dir string, log *zap.Logger) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		Dir:          dir,
		Debounce:     250 * time.Millisecond,
		PollInterval: 10 * time.Second,
		log:          log,
		out:          make(chan Listing, 1),
	}
}

// Listings delivers the latest Listing. Only the newest undelivered snapshot
// is kept. The channel is closed when the watcher stops.
func (w *Watcher) Listings() <-chan Listing { return w.out }

// Start scans the directory once and begins watching in a goroutine.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	if w.done != nil {
		w.mu.Unlock()
		return
	}
	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		w.log.Warn("file notifications unavailable; polling only", zap.Error(err))
	} else {
		w.fsw = fsw
	}
	w.mu.Unlock()

	w.tryWatch()
	go w.run(ctx)
}

// Stop ends the watch loop and waits for it to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fsw != nil {
		if err := w.fsw.Close(); err != nil {
			w.log.Warn("closing journal watcher", zap.Error(err))
		}
		w.fsw = nil
	}
}

func (w *Watcher) tryWatch() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fsw == nil || w.watched || w.Dir == "" {
		return
	}
	if err := w.fsw.Add(w.Dir); err != nil {
		w.log.Debug("journal directory not watchable yet", zap.String("dir", w.Dir), zap.Error(err))
		return
	}
	w.watched = true
	w.log.Info("watching journal directory", zap.String("dir", w.Dir))
}

// unwatch forgets the directory watch after the directory went away so the
// next poll adds it again once the directory is back.
func (w *Watcher) unwatch() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.watched {
		return
	}
	w.watched = false
	if w.fsw != nil {
		// The kernel usually drops the watch on its own.
		_ = w.fsw.Remove(w.Dir)
	}
	w.log.Info("journal directory went away", zap.String("dir", w.Dir))
}

func (w *Watcher) watching() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.watched
}

func (w *Watcher) isDir(name string) bool {
	return w.Dir != "" && filepath.Clean(name) == filepath.Clean(w.Dir)
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)
	defer close(w.out)

	var (
		events <-chan fsnotify.Event
		errs   <-chan error
	)
	w.mu.Lock()
	if w.fsw != nil {
		events, errs = w.fsw.Events, w.fsw.Errors
	}
	w.mu.Unlock()

	poll := time.NewTicker(w.PollInterval)
	defer poll.Stop()

	var debounce *time.Timer
	var debounceC <-chan time.Time
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	last := Scan(w.Dir)
	w.publish(ctx, last)

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if w.isDir(ev.Name) && ev.Has(fsnotify.Remove|fsnotify.Rename) {
				w.unwatch()
			} else if !IsJournalFile(ev.Name) {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(w.Debounce)
			} else {
				debounce.Reset(w.Debounce)
			}
			debounceC = debounce.C

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			w.log.Warn("journal watcher error", zap.Error(err))

		case <-debounceC:
			debounceC = nil
			last = Scan(w.Dir)
			w.publish(ctx, last)

		case <-poll.C:
			w.tryWatch()
			next := Scan(w.Dir)
			if !sameFiles(last, next) {
				last = next
				w.publish(ctx, last)
			}
		}
	}
}

func (w *Watcher) publish(ctx context.Context, l Listing) {
	select {
	case w.out <- l:
		return
	default:
	}
	// Replace the stale snapshot nobody has read yet.
	select {
	case <-w.out:
	default:
	}
	select {
	case w.out <- l:
	case <-ctx.Done():
	}
}

func sameFiles(a, b Listing) bool {
	if (a.Err == nil) != (b.Err == nil) || len(a.Files) != len(b.Files) {
		return false
	}
	for i := range a.Files {
		fa, fb := a.Files[i], b.Files[i]
		if fa.Name != fb.Name || fa.Size != fb.Size || !fa.ModTime.Equal(fb.ModTime) {
			return false
		}
	}
	return true
}
