package debounce

import (
	"testing"
	"time"

	"github.com/and161185/pedidos/internal/clock"
	"github.com/stretchr/testify/assert"
)

func TestTriggerRestartsDelay(t *testing.T) {
	c := clock.NewManual(time.Now())
	d := New(c, 500*time.Millisecond)

	var calls []int
	d.Trigger(func() { calls = append(calls, 1) })
	c.Advance(300 * time.Millisecond)
	d.Trigger(func() { calls = append(calls, 2) })
	c.Advance(300 * time.Millisecond)

	assert.Empty(t, calls, "second keystroke must restart the delay")

	c.Advance(200 * time.Millisecond)
	assert.Equal(t, []int{2}, calls)
	assert.Zero(t, c.Pending())
}

func TestStopDropsPendingCall(t *testing.T) {
	c := clock.NewManual(time.Now())
	d := New(c, 500*time.Millisecond)

	called := false
	d.Trigger(func() { called = true })
	d.Stop()
	c.Advance(time.Second)

	assert.False(t, called)
}

func TestSequentialTriggersEachFire(t *testing.T) {
	c := clock.NewManual(time.Now())
	d := New(c, 100*time.Millisecond)

	count := 0
	d.Trigger(func() { count++ })
	c.Advance(150 * time.Millisecond)
	d.Trigger(func() { count++ })
	c.Advance(150 * time.Millisecond)

	assert.Equal(t, 2, count)
}
