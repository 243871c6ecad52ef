package engine

import (
	"sync/atomic"
	"testing"
	"time"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestRealClock_AfterFunc(t *testing.T) {
	c := NewRealClock()
	done := make(chan struct{})
	c.AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("real AfterFunc never fired")
	}
}

func TestRealClock_Stop(t *testing.T) {
	c := NewRealClock()
	var fired atomic.Bool
	timer := c.AfterFunc(50*time.Millisecond, func() { fired.Store(true) })
	if !timer.Stop() {
		t.Fatal("Stop on pending timer returned false")
	}
	time.Sleep(100 * time.Millisecond)
	if fired.Load() {
		t.Error("stopped timer fired")
	}
}

func TestFakeClock_Now(t *testing.T) {
	c := NewFakeClock(epoch)
	if !c.Now().Equal(epoch) {
		t.Fatalf("Now = %v, want %v", c.Now(), epoch)
	}
	c.Advance(90 * time.Second)
	if got := c.Now().Sub(epoch); got != 90*time.Second {
		t.Errorf("elapsed = %v, want 90s", got)
	}
}

func TestFakeClock_FiresInDeadlineOrder(t *testing.T) {
	c := NewFakeClock(epoch)
	var order []int

	c.AfterFunc(30*time.Millisecond, func() { order = append(order, 3) })
	c.AfterFunc(10*time.Millisecond, func() { order = append(order, 1) })
	c.AfterFunc(20*time.Millisecond, func() { order = append(order, 2) })
	c.AfterFunc(20*time.Millisecond, func() { order = append(order, 22) })

	c.Advance(25 * time.Millisecond)
	want := []int{1, 2, 22}
	if len(order) != len(want) {
		t.Fatalf("fired %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("fired %v, want %v", order, want)
		}
	}

	c.Advance(5 * time.Millisecond)
	if len(order) != 4 || order[3] != 3 {
		t.Errorf("after second advance fired %v", order)
	}
}

func TestFakeClock_NowInsideCallback(t *testing.T) {
	c := NewFakeClock(epoch)
	var seen time.Time
	c.AfterFunc(40*time.Millisecond, func() { seen = c.Now() })
	c.Advance(time.Second)
	if got := seen.Sub(epoch); got != 40*time.Millisecond {
		t.Errorf("callback observed %v, want 40ms", got)
	}
}

func TestFakeClock_RescheduleFromCallback(t *testing.T) {
	c := NewFakeClock(epoch)
	count := 0
	var tick func()
	tick = func() {
		count++
		c.AfterFunc(10*time.Millisecond, tick)
	}
	c.AfterFunc(10*time.Millisecond, tick)

	c.Advance(55 * time.Millisecond)
	if count != 5 {
		t.Errorf("ticks = %d, want 5", count)
	}
	if c.Pending() != 1 {
		t.Errorf("pending = %d, want 1", c.Pending())
	}
}

func TestFakeClock_Stop(t *testing.T) {
	c := NewFakeClock(epoch)
	fired := false
	timer := c.AfterFunc(10*time.Millisecond, func() { fired = true })

	if !timer.Stop() {
		t.Fatal("Stop on pending timer returned false")
	}
	if timer.Stop() {
		t.Error("second Stop returned true")
	}

	c.Advance(time.Second)
	if fired {
		t.Error("stopped timer fired")
	}
	if c.Pending() != 0 {
		t.Errorf("pending = %d", c.Pending())
	}
}

func TestFakeClock_StopAfterFire(t *testing.T) {
	c := NewFakeClock(epoch)
	timer := c.AfterFunc(0, func() {})
	c.Advance(0)
	if timer.Stop() {
		t.Error("Stop after fire returned true")
	}
}

func TestFakeClock_ZeroDelayDeferred(t *testing.T) {
	c := NewFakeClock(epoch)
	fired := false
	c.AfterFunc(0, func() { fired = true })
	if fired {
		t.Fatal("zero delay fired before Advance")
	}
	c.Advance(0)
	if !fired {
		t.Error("zero delay did not fire on Advance(0)")
	}
}
