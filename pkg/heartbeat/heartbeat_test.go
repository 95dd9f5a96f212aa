package heartbeat

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2026, 10, 18, 6, 59, 58, 0, time.Local)

func TestManual_FiresOnEveryInterval(t *testing.T) {
	m := NewManual(epoch)
	count := 0
	m.Every(time.Second, func() { count++ })

	m.Advance(500 * time.Millisecond)
	assert.Equal(t, 0, count)

	m.Advance(3500 * time.Millisecond)
	assert.Equal(t, 4, count)
	assert.Equal(t, epoch.Add(4*time.Second), m.Now())
}

func TestManual_ClockVisibleInsideCallback(t *testing.T) {
	m := NewManual(epoch)
	var seen []time.Time
	m.Every(time.Second, func() { seen = append(seen, m.Now()) })

	m.Advance(2 * time.Second)
	assert.Equal(t, []time.Time{epoch.Add(time.Second), epoch.Add(2 * time.Second)}, seen)
}

func TestManual_OrdersByDueTime(t *testing.T) {
	m := NewManual(epoch)
	var order []string
	m.Every(time.Second, func() { order = append(order, "slow") })
	m.Every(400*time.Millisecond, func() { order = append(order, "fast") })

	m.Advance(time.Second)
	assert.Equal(t, []string{"fast", "fast", "slow"}, order)
}

func TestManual_CancelStopsFurtherCalls(t *testing.T) {
	m := NewManual(epoch)
	count := 0
	h := m.Every(time.Second, func() { count++ })

	m.Advance(2 * time.Second)
	h.Cancel()
	h.Cancel()
	m.Advance(10 * time.Second)

	assert.Equal(t, 2, count)
	assert.Equal(t, 0, m.Active())
	assert.True(t, h.Cancelled())
}

func TestManual_CancelFromInsideCallback(t *testing.T) {
	m := NewManual(epoch)
	count := 0
	var h *Handle
	h = m.Every(time.Second, func() {
		count++
		if count == 3 {
			h.Cancel()
		}
	})

	m.Advance(time.Minute)
	assert.Equal(t, 3, count)
	assert.Equal(t, 0, m.Active())
}

func TestManual_HandlesAreIndependent(t *testing.T) {
	m := NewManual(epoch)
	a, b := 0, 0
	ha := m.Every(time.Second, func() { a++ })
	m.Every(time.Second, func() { b++ })

	m.Advance(2 * time.Second)
	ha.Cancel()
	m.Advance(2 * time.Second)

	assert.Equal(t, 2, a)
	assert.Equal(t, 4, b)
	assert.Equal(t, 1, m.Active())
}

func TestManual_SetDoesNotFire(t *testing.T) {
	m := NewManual(epoch)
	count := 0
	m.Every(time.Second, func() { count++ })

	m.Set(epoch.Add(time.Hour))
	assert.Equal(t, 0, count)

	m.Advance(time.Second)
	assert.Equal(t, 1, count)
}

func TestNilHandleCancel(t *testing.T) {
	var h *Handle
	assert.NotPanics(t, h.Cancel)
	assert.True(t, h.Cancelled())
}

func TestTicker_CancelStopsGoroutine(t *testing.T) {
	ticker := NewTicker()
	var count atomic.Int32
	h := ticker.Every(5*time.Millisecond, func() { count.Add(1) })

	assert.Eventually(t, func() bool { return count.Load() >= 2 }, time.Second, time.Millisecond)
	h.Cancel()

	<-h.Done()
	// Allow one in-flight callback to drain before sampling
	time.Sleep(20 * time.Millisecond)
	stopped := count.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, stopped, count.Load())
}

func TestTicker_NonPositiveInterval(t *testing.T) {
	h := NewTicker().Every(0, func() { t.Fatal("must not run") })
	assert.True(t, h.Cancelled())
}
