package service

import (
	"errors"
	"strings"
	"testing"
)

type fakeService struct {
	name    string
	deps    []string
	initErr error
	log     *[]string
	stops   int
}

func (f *fakeService) Name() string           { return f.name }
func (f *fakeService) Dependencies() []string { return f.deps }
func (f *fakeService) Init() error {
	*f.log = append(*f.log, "init:"+f.name)
	return f.initErr
}
func (f *fakeService) Start() error {
	*f.log = append(*f.log, "start:"+f.name)
	return nil
}
func (f *fakeService) Stop() error {
	f.stops++
	*f.log = append(*f.log, "stop:"+f.name)
	return nil
}

func TestHub_DependencyOrder(t *testing.T) {
	var log []string
	h := NewHub(nil)
	for _, s := range []*fakeService{
		{name: "session", deps: []string{"content", "status"}, log: &log},
		{name: "content", log: &log},
		{name: "status", log: &log},
		{name: "audio", deps: []string{"status"}, log: &log},
	} {
		if err := h.Register(s); err != nil {
			t.Fatal(err)
		}
	}

	if err := h.InitAll(); err != nil {
		t.Fatalf("InitAll: %v", err)
	}
	if err := h.StartAll(); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	h.StopAll()

	pos := make(map[string]int)
	for i, entry := range log {
		pos[entry] = i
	}
	if pos["init:session"] < pos["init:content"] || pos["init:session"] < pos["init:status"] {
		t.Errorf("session initialized before its dependencies: %v", log)
	}
	if pos["init:audio"] < pos["init:status"] {
		t.Errorf("audio initialized before status: %v", log)
	}
	if pos["stop:status"] < pos["stop:session"] {
		t.Errorf("status stopped before dependent session: %v", log)
	}
}

func TestHub_DuplicateRegister(t *testing.T) {
	var log []string
	h := NewHub(nil)
	_ = h.Register(&fakeService{name: "a", log: &log})
	if err := h.Register(&fakeService{name: "a", log: &log}); err == nil {
		t.Error("duplicate registration accepted")
	}
}

func TestHub_MissingDependency(t *testing.T) {
	var log []string
	h := NewHub(nil)
	_ = h.Register(&fakeService{name: "a", deps: []string{"ghost"}, log: &log})
	err := h.InitAll()
	if err == nil || !strings.Contains(err.Error(), "ghost") {
		t.Errorf("err = %v", err)
	}
}

func TestHub_Cycle(t *testing.T) {
	var log []string
	h := NewHub(nil)
	_ = h.Register(&fakeService{name: "a", deps: []string{"b"}, log: &log})
	_ = h.Register(&fakeService{name: "b", deps: []string{"a"}, log: &log})
	if err := h.InitAll(); err == nil {
		t.Error("cycle not detected")
	}
}

func TestHub_InitRollback(t *testing.T) {
	var log []string
	h := NewHub(nil)
	first := &fakeService{name: "first", log: &log}
	bad := &fakeService{name: "second", deps: []string{"first"}, initErr: errors.New("nope"), log: &log}
	_ = h.Register(first)
	_ = h.Register(bad)

	if err := h.InitAll(); err == nil {
		t.Fatal("expected init failure")
	}
	if first.stops != 1 {
		t.Errorf("initialized service stopped %d times, want 1", first.stops)
	}
	if bad.stops != 0 {
		t.Errorf("failed service stopped %d times, want 0", bad.stops)
	}
}

func TestHub_StartBeforeInit(t *testing.T) {
	h := NewHub(nil)
	if err := h.StartAll(); err == nil {
		t.Error("StartAll before InitAll succeeded")
	}
}

func TestMustGet(t *testing.T) {
	var log []string
	h := NewHub(nil)
	svc := &fakeService{name: "a", log: &log}
	_ = h.Register(svc)

	if got := MustGet[*fakeService](h, "a"); got != svc {
		t.Error("MustGet returned wrong instance")
	}

	defer func() {
		if recover() == nil {
			t.Error("MustGet on missing service did not panic")
		}
	}()
	MustGet[*fakeService](h, "missing")
}
