package app

import (
	"context"
	"time"
)

// DefaultAutosaveInterval is how often the ticker requests a save.
const DefaultAutosaveInterval = 30 * time.Second

// Autosave periodically sends AutoSave messages to the UI loop.
type Autosave struct {
	out    chan Message
	cancel context.CancelFunc
	done   chan struct{}
}

// StartAutosave starts the ticker goroutine. It exits when ctx is cancelled
// or Stop is called, closing the channel returned by Messages.
func StartAutosave(ctx context.Context, interval time.Duration) *Autosave {
	if interval <= 0 {
		interval = DefaultAutosaveInterval
	}
	ctx, cancel := context.WithCancel(ctx)
	a := &Autosave{
		out:    make(chan Message, 1),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go a.run(ctx, interval)
	return a
}

func (a *Autosave) run(ctx context.Context, interval time.Duration) {
	defer close(a.done)
	defer close(a.out)

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			select {
			case a.out <- AutoSave{}:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (a *Autosave) Messages() <-chan Message { return a.out }

// Stop cancels the ticker and waits for its goroutine to exit.
func (a *Autosave) Stop() {
	a.cancel()
	<-a.done
}
