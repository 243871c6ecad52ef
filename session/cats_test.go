package session

import (
	"testing"
	"time"

	"github.com/lixenwraith/typewall/status"
)

func TestCatTarget(t *testing.T) {
	thresholds := []int{5, 25, 100, 500, 2000}
	tests := []struct {
		count, want int
	}{
		{0, 0},
		{4, 0},
		{5, 1},
		{24, 1},
		{25, 2},
		{499, 3},
		{2000, 5},
		{10000, 5},
	}
	for _, tt := range tests {
		if got := CatTarget(tt.count, thresholds); got != tt.want {
			t.Errorf("CatTarget(%d) = %d, want %d", tt.count, got, tt.want)
		}
	}
}

func TestCatTarget_Monotonic(t *testing.T) {
	// Unsorted thresholds still never decrease with count
	thresholds := []int{100, 5, 50, 5}
	prev := 0
	for n := 0; n <= 200; n++ {
		got := CatTarget(n, thresholds)
		if got < prev {
			t.Fatalf("CatTarget(%d) = %d < CatTarget(%d) = %d", n, got, n-1, prev)
		}
		prev = got
	}
}

func TestCats_FollowWindowCount(t *testing.T) {
	cfg := testConfig()
	cfg.CatThresholds = []int{2, 4}
	h := newHarness(t, cfg, testStore(t, "a"))

	steps := []struct {
		count, cats int
	}{
		{1, 0},
		{2, 1},
		{5, 2},
		{3, 1},
		{1, 0},
	}
	for _, s := range steps {
		h.c.SetCount(s.count)
		if got := len(h.c.Cats()); got != s.cats {
			t.Errorf("count %d: cats = %d, want %d", s.count, got, s.cats)
		}
		if got := h.reg.Ints.Get(status.Cats).Load(); got != int64(s.cats) {
			t.Errorf("count %d: cats metric = %d, want %d", s.count, got, s.cats)
		}
	}

	// Only the typing timer remains once the last cat is gone
	if got := h.clock.Pending(); got != 1 {
		t.Errorf("pending timers = %d, want 1", got)
	}
}

func TestCats_StayInViewport(t *testing.T) {
	cfg := testConfig()
	cfg.CatThresholds = []int{1, 1, 1}
	h := newHarness(t, cfg, testStore(t, "a"))
	h.c.SetCount(1)

	start := h.c.Cats()
	for range 50 {
		h.clock.Advance(200 * time.Millisecond)
		for _, k := range h.c.Cats() {
			p := k.Position
			if p.X < 0 || p.Y < 0 || p.X > 160-cfg.CatSize.Width || p.Y > 48-cfg.CatSize.Height {
				t.Fatalf("cat %s left viewport: %+v", k.ID, p)
			}
		}
	}

	moved := false
	for i, k := range h.c.Cats() {
		if k.ID != start[i].ID {
			t.Errorf("cat %d id changed", i)
		}
		if k.Position != start[i].Position {
			moved = true
		}
	}
	if !moved {
		t.Error("no cat moved")
	}
	if d := h.reg.Floats.Get(status.CatDistance).Get(); d <= 0 {
		t.Errorf("cat distance = %v, want positive", d)
	}
}

func TestCats_MoveWhilePaused(t *testing.T) {
	cfg := testConfig()
	cfg.CatThresholds = []int{1}
	h := newHarness(t, cfg, testStore(t, "a"))
	h.c.SetCount(1)
	h.c.SetEnabled(false)

	start := h.c.Cats()[0].Position
	h.clock.Advance(3 * time.Second)
	if h.c.Cats()[0].Position == start {
		t.Error("cat frozen while typing paused")
	}
}

func TestCats_StaleFrameCountedApart(t *testing.T) {
	cfg := testConfig()
	cfg.CatThresholds = []int{2}
	h := newHarness(t, cfg, testStore(t, "a"))
	h.c.SetCount(2)

	h.c.mu.Lock()
	token := h.c.catToken
	h.c.mu.Unlock()

	// Dropping below the threshold cancels the frame timer and bumps the token
	h.c.SetCount(1)
	h.c.catTick(token)

	if got := h.reg.Ints.Get(status.CatTicksStale).Load(); got != 1 {
		t.Errorf("cats.stale = %d, want 1", got)
	}
	if got := h.reg.Ints.Get(status.ZombieTicks).Load(); got != 0 {
		t.Errorf("timers.zombie = %d, want 0", got)
	}
}
