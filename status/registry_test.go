package status

import (
	"strings"
	"sync"
	"testing"
)

func TestMetricMap_GetReturnsSamePointer(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get(WindowsTotal)
	b := r.Ints.Get(WindowsTotal)
	if a != b {
		t.Fatal("Get returned different pointers for one key")
	}
	a.Store(42)
	if b.Load() != 42 {
		t.Errorf("shared pointer value = %d", b.Load())
	}
}

func TestMetricMap_ConcurrentGet(t *testing.T) {
	m := NewMetricMap[int]()
	var wg sync.WaitGroup
	ptrs := make([]*int, 32)
	for i := range ptrs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ptrs[i] = m.Get("k")
		}(i)
	}
	wg.Wait()
	for _, p := range ptrs {
		if p != ptrs[0] {
			t.Fatal("concurrent Get created duplicate metrics")
		}
	}
	if m.Count() != 1 {
		t.Errorf("Count = %d", m.Count())
	}
}

func TestMetricMap_RangeSorted(t *testing.T) {
	m := NewMetricMap[int]()
	for _, k := range []string{"c", "a", "b", "a"} {
		*m.Get(k)++
	}

	var keys []string
	var total int
	m.Range(func(k string, v *int) {
		keys = append(keys, k)
		total += *v
	})
	if strings.Join(keys, ",") != "a,b,c" || total != 4 {
		t.Errorf("Range saw %v total %d", keys, total)
	}
	if m.Count() != 3 {
		t.Errorf("Count = %d", m.Count())
	}
}

func TestRegistry_SnapshotAndFormat(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(WindowsLive).Store(80)
	r.Bools.Get(Paused).Store(true)
	r.Floats.Get("load").Set(0.5)

	snap := r.Snapshot()
	if snap[WindowsLive] != "80" || snap[Paused] != "true" || snap["load"] != "0.50" {
		t.Errorf("snapshot = %v", snap)
	}

	if got := r.Format(WindowsLive, "missing", Paused); got != "windows.live=80 paused=true" {
		t.Errorf("Format = %q", got)
	}
	if got := r.Format(); got != "load=0.50 paused=true windows.live=80" {
		t.Errorf("Format() = %q", got)
	}
	if r.TotalCount() != 3 {
		t.Errorf("TotalCount = %d", r.TotalCount())
	}
}

func TestAtomicFloat_Add(t *testing.T) {
	var f AtomicFloat
	f.Set(1.5)
	if got := f.Add(2.25); got != 3.75 {
		t.Errorf("Add = %f", got)
	}
}
