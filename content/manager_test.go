package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleScript = `
sequences:
  - name: hello
    lines:
      - text: "$ echo hi"
        color: command
        bold: true
      - text: "hi"
        delay_ms: 250
  - name: second
    lines:
      - text: "x"
`

func TestLoadScripts(t *testing.T) {
	seqs, err := LoadScripts(strings.NewReader(sampleScript))
	if err != nil {
		t.Fatalf("LoadScripts: %v", err)
	}
	if len(seqs) != 2 {
		t.Fatalf("got %d sequences, want 2", len(seqs))
	}

	hello := seqs[0]
	if hello.Name != "hello" || len(hello.Lines) != 2 {
		t.Fatalf("unexpected first sequence %+v", hello)
	}
	if hello.Lines[0].Role != RoleCommand || !hello.Lines[0].Bold {
		t.Errorf("line 0 = %+v", hello.Lines[0])
	}
	if hello.Lines[1].Delay != 250*time.Millisecond {
		t.Errorf("delay = %v, want 250ms", hello.Lines[1].Delay)
	}
	if hello.Lines[1].Role != RoleDefault {
		t.Errorf("missing color should be default, got %v", hello.Lines[1].Role)
	}
}

func TestLoadScripts_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown role", "sequences:\n  - name: a\n    lines:\n      - text: x\n        color: mauve\n"},
		{"missing name", "sequences:\n  - lines:\n      - text: x\n"},
		{"negative delay", "sequences:\n  - name: a\n    lines:\n      - text: x\n        delay_ms: -5\n"},
		{"unknown field", "sequences:\n  - name: a\n    speed: 3\n"},
		{"not yaml", "sequences: [unterminated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadScripts(strings.NewReader(tt.doc)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadScripts_EmptyDocument(t *testing.T) {
	seqs, err := LoadScripts(strings.NewReader(""))
	if err != nil || len(seqs) != 0 {
		t.Errorf("empty doc = %v, %v", seqs, err)
	}
}

func TestLoadScripts_TruncatesLongLines(t *testing.T) {
	long := strings.Repeat("é", MaxLineLength+20)
	doc := "sequences:\n  - name: a\n    lines:\n      - text: \"" + long + "\"\n"
	seqs, err := LoadScripts(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if n := len([]rune(seqs[0].Lines[0].Text)); n != MaxLineLength {
		t.Errorf("line runes = %d, want %d", n, MaxLineLength)
	}
}

func TestDiscoverScriptFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"one.yaml":    sampleScript,
		"two.yml":     "sequences:\n  - name: third\n    lines:\n      - text: z\n",
		".hidden.yml": sampleScript,
		"notes.txt":   "ignored",
		"broken.yaml": "sequences: [",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.yaml"), 0755); err != nil {
		t.Fatal(err)
	}

	m := NewManager(dir, nil)
	if err := m.DiscoverScriptFiles(); err != nil {
		t.Fatalf("DiscoverScriptFiles: %v", err)
	}
	if got := len(m.ScriptFiles()); got != 3 {
		t.Fatalf("discovered %d files, want 3: %v", got, m.ScriptFiles())
	}

	store := NewStore()
	n, err := m.LoadAll(store)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if n != 3 {
		t.Errorf("loaded %d sequences, want 3 (broken file skipped)", n)
	}
	for _, name := range []string{"hello", "second", "third"} {
		if _, err := store.Sequence(name); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestDiscoverScriptFiles_MissingDirectory(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "nope"), nil)
	if err := m.DiscoverScriptFiles(); err != nil {
		t.Errorf("missing dir should not error, got %v", err)
	}
	if len(m.ScriptFiles()) != 0 {
		t.Errorf("expected no files, got %v", m.ScriptFiles())
	}
}

func TestLoadBuiltins(t *testing.T) {
	store := NewStore()
	if err := NewManager("", nil).LoadBuiltins(store); err != nil {
		t.Fatalf("LoadBuiltins: %v", err)
	}
	if store.Len() == 0 {
		t.Fatal("no builtin sequences")
	}
	for _, name := range store.Names() {
		seq, _ := store.Sequence(name)
		if seq.Empty() {
			t.Errorf("builtin %s is empty", name)
		}
	}
}

func TestService_DuplicateFromDirSkipped(t *testing.T) {
	dir := t.TempDir()
	body := "sequences:\n  - name: boot\n    lines:\n      - text: clash\n  - name: extra\n    lines:\n      - text: ok\n"
	if err := os.WriteFile(filepath.Join(dir, "dup.yaml"), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	svc := NewService(dir, nil)
	if err := svc.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	boot, err := svc.Store().Sequence("boot")
	if err != nil {
		t.Fatal(err)
	}
	if boot.Lines[0].Text == "clash" {
		t.Error("directory script overrode builtin")
	}
	if _, err := svc.Store().Sequence("extra"); err != nil {
		t.Errorf("extra not loaded: %v", err)
	}
}
