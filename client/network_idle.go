package client

import (
	"context"
	"sync"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
)

// networkAlmostIdle is fired by Chrome once a document has had no more than
// two network connections for 500 ms.
const networkAlmostIdle = "networkAlmostIdle"

// networkIdleWaiter records lifecycle events per loader so a navigation can
// wait for its own document to settle, even if the event arrives before
// page.Navigate returns the loader id.
type networkIdleWaiter struct {
	mu      sync.Mutex
	reached map[cdp.LoaderID]bool
	changed chan struct{}
}

func newNetworkIdleWaiter() *networkIdleWaiter {
	return &networkIdleWaiter{
		reached: make(map[cdp.LoaderID]bool),
		changed: make(chan struct{}),
	}
}

// handleEvent is meant to be registered with chromedp.ListenTarget.
func (w *networkIdleWaiter) handleEvent(ev interface{}) {
	e, ok := ev.(*page.EventLifecycleEvent)
	if !ok || e.Name != networkAlmostIdle {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.reached[e.LoaderID] {
		return
	}
	w.reached[e.LoaderID] = true
	close(w.changed)
	w.changed = make(chan struct{})
}

func (w *networkIdleWaiter) wait(ctx context.Context, loaderID cdp.LoaderID) error {
	for {
		w.mu.Lock()
		if w.reached[loaderID] {
			w.mu.Unlock()
			return nil
		}
		changed := w.changed
		w.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changed:
		}
	}
}
