package persist

import (
	"context"
	"sync"
	"time"

	"LessonBoard/internal/logging"
)

// Dispatcher issues fire-and-forget saves. Callers never wait on a save and
// saves carry no ordering token: when two overlap, whichever finishes last
// wins. A failed save is logged and dropped.
type Dispatcher struct {
	gw      Gateway
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDispatcher wraps gw. Each save gets its own timeout; zero means none.
func NewDispatcher(gw Gateway, timeout time.Duration) *Dispatcher {
	return &Dispatcher{gw: gw, timeout: timeout}
}

// Save starts writing data for lesson in the background and returns at once.
func (d *Dispatcher) Save(lesson string, data []byte) {
	if d == nil || d.gw == nil {
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx := context.Background()
		if d.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d.timeout)
			defer cancel()
		}
		if err := d.gw.Save(ctx, lesson, data); err != nil {
			logging.Logger().Warn("save failed", "lesson", lesson, "bytes", len(data), "err", err)
			return
		}
		logging.Logger().Debug("saved drawing", "lesson", lesson, "bytes", len(data))
	}()
}

// Wait blocks until every save issued so far has finished. Used on shutdown.
func (d *Dispatcher) Wait() {
	if d == nil {
		return
	}
	d.wg.Wait()
}
