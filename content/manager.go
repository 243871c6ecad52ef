package content

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

const (
	// MaxLineLength truncates authored lines, wider text would never fit a window anyway
	MaxLineLength = 160
)

//go:embed scripts/*.yaml
var builtinScripts embed.FS

// scriptFile is the on-disk layout of a script document
type scriptFile struct {
	Sequences []scriptSequence `yaml:"sequences"`
}

type scriptSequence struct {
	Name  string       `yaml:"name"`
	Lines []scriptLine `yaml:"lines"`
}

type scriptLine struct {
	Text    string    `yaml:"text"`
	Color   ColorRole `yaml:"color"`
	Bold    bool      `yaml:"bold"`
	DelayMs int       `yaml:"delay_ms"`
}

// LoadScripts decodes one YAML script document into sequences
func LoadScripts(r io.Reader) ([]Sequence, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc scriptFile
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode scripts: %w", err)
	}

	out := make([]Sequence, 0, len(doc.Sequences))
	for i, raw := range doc.Sequences {
		name := strings.TrimSpace(raw.Name)
		if name == "" {
			return nil, fmt.Errorf("sequence %d: missing name", i)
		}

		lines := make([]Line, 0, len(raw.Lines))
		for j, l := range raw.Lines {
			if l.DelayMs < 0 {
				return nil, fmt.Errorf("sequence %q line %d: negative delay_ms", name, j)
			}
			text := strings.TrimRight(l.Text, "\r\n")
			if r := []rune(text); len(r) > MaxLineLength {
				text = string(r[:MaxLineLength])
			}
			lines = append(lines, Line{
				Text:  text,
				Role:  l.Color,
				Bold:  l.Bold,
				Delay: time.Duration(l.DelayMs) * time.Millisecond,
			})
		}
		out = append(out, Sequence{Name: name, Lines: lines})
	}
	return out, nil
}

// Manager discovers script files and loads them into a Store
type Manager struct {
	dataDir     string
	scriptFiles []string
	logger      *log.Logger
}

// NewManager creates a manager scanning dataDir, empty dataDir disables discovery
func NewManager(dataDir string, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{
		dataDir: dataDir,
		logger:  logger,
	}
}

// DiscoverScriptFiles scans the data directory for .yaml/.yml files
// Missing directories are not an error, hidden files are skipped
func (m *Manager) DiscoverScriptFiles() error {
	m.scriptFiles = nil

	if m.dataDir == "" {
		return nil
	}

	entries, err := os.ReadDir(m.dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			m.logger.Warn("script directory does not exist", "dir", m.dataDir)
			return nil
		}
		return fmt.Errorf("failed to read script directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			m.logger.Debug("skipping hidden file", "file", name)
			continue
		}

		switch strings.ToLower(filepath.Ext(name)) {
		case ".yaml", ".yml":
			path := filepath.Join(m.dataDir, name)
			m.scriptFiles = append(m.scriptFiles, path)
			m.logger.Debug("discovered script file", "path", path)
		}
	}

	m.logger.Info("script discovery done", "dir", m.dataDir, "files", len(m.scriptFiles))
	return nil
}

// ScriptFiles returns the discovered file paths
func (m *Manager) ScriptFiles() []string {
	return m.scriptFiles
}

// LoadBuiltins registers the embedded scripts
func (m *Manager) LoadBuiltins(store *Store) error {
	return m.loadFS(store, builtinScripts, "scripts")
}

// LoadAll registers every discovered file into store
// A broken file is logged and skipped; duplicates inside a good file are skipped individually
func (m *Manager) LoadAll(store *Store) (int, error) {
	loaded := 0
	for _, path := range m.scriptFiles {
		f, err := os.Open(path)
		if err != nil {
			m.logger.Warn("cannot open script file", "path", path, "err", err)
			continue
		}
		seqs, err := LoadScripts(f)
		f.Close()
		if err != nil {
			m.logger.Warn("cannot parse script file", "path", path, "err", err)
			continue
		}
		loaded += m.register(store, seqs, path)
	}
	return loaded, nil
}

func (m *Manager) loadFS(store *Store, fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read builtin scripts: %w", err)
	}
	for _, entry := range entries {
		path := dir + "/" + entry.Name()
		f, err := fsys.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		seqs, err := LoadScripts(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("builtin %s: %w", path, err)
		}
		m.register(store, seqs, path)
	}
	return nil
}

func (m *Manager) register(store *Store, seqs []Sequence, source string) int {
	n := 0
	for _, seq := range seqs {
		if err := store.Register(seq); err != nil {
			m.logger.Warn("skipping sequence", "source", source, "err", err)
			continue
		}
		n++
	}
	return n
}
