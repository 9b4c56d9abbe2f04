package debounce

import (
	"sync"
	"time"

	"github.com/and161185/pedidos/internal/clock"
)

// Debouncer runs only the last function handed to Trigger, once delay has
// passed without another Trigger.
type Debouncer struct {
	mu    sync.Mutex
	clock clock.Clock
	delay time.Duration
	timer clock.Timer
	gen   uint64
}

func New(c clock.Clock, delay time.Duration) *Debouncer {
	return &Debouncer{clock: c, delay: delay}
}

func (d *Debouncer) Trigger(f func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// a Trigger or Stop raced with the timer firing
		if gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		f()
	})
}

// Stop drops any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}
