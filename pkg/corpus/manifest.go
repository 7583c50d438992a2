package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Manifest declares the chains to build and the sources that feed them.
//
//	chains:
//	  titles:
//	    order: 2
//	    sources:
//	      - file: texts/1600s/1600s_titles.txt
//	  recipes:
//	    min_frequency: 1
//	    sources:
//	      - glob: texts/1600s/*_STRIPPED.txt
//	      - sqlite:
//	          dsn: data/receipts.db
//	          query: SELECT body FROM receipts
//
// Relative paths are resolved against the manifest's directory.
type Manifest struct {
	Chains  map[string]ChainSpec `yaml:"chains"`
	baseDir string
}

// ChainSpec describes one chain. Order 0 selects markov.DefaultOrder.
// A positive MinFrequency prunes links seen that many times or fewer before
// the model is finalized.
type ChainSpec struct {
	Order        int          `yaml:"order,omitempty"`
	MinFrequency int          `yaml:"min_frequency,omitempty"`
	Sources      []SourceSpec `yaml:"sources"`
}

// SourceSpec sets exactly one of its fields.
type SourceSpec struct {
	File   string      `yaml:"file,omitempty"`
	Glob   string      `yaml:"glob,omitempty"`
	SQLite *SQLiteSpec `yaml:"sqlite,omitempty"`
}

// SQLiteSpec is the manifest form of a SQLiteSource.
type SQLiteSpec struct {
	DSN   string `yaml:"dsn"`
	Query string `yaml:"query"`
}

// LoadManifest reads and validates a YAML manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	m, err := ParseManifest(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return m, nil
}

// ParseManifest decodes and validates YAML manifest data. Relative paths in
// it are resolved against baseDir.
func ParseManifest(data []byte, baseDir string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	m.baseDir = baseDir
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that every chain has sources and every source sets
// exactly one kind.
func (m *Manifest) Validate() error {
	if len(m.Chains) == 0 {
		return errors.New("no chains defined")
	}
	var errs []error
	for _, name := range m.ChainNames() {
		spec := m.Chains[name]
		if spec.Order < 0 {
			errs = append(errs, fmt.Errorf("chain '%s': negative order %d", name, spec.Order))
		}
		if spec.MinFrequency < 0 {
			errs = append(errs, fmt.Errorf("chain '%s': negative min_frequency %d", name, spec.MinFrequency))
		}
		if len(spec.Sources) == 0 {
			errs = append(errs, fmt.Errorf("chain '%s': no sources", name))
		}
		for i, src := range spec.Sources {
			if _, err := src.source(""); err != nil {
				errs = append(errs, fmt.Errorf("chain '%s' source %d: %w", name, i+1, err))
			}
		}
	}
	return errors.Join(errs...)
}

// ChainNames returns the chain names in sorted order.
func (m *Manifest) ChainNames() []string {
	names := make([]string, 0, len(m.Chains))
	for name := range m.Chains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sources resolves the sources of the named chain.
func (m *Manifest) Sources(chain string) ([]Source, error) {
	spec, ok := m.Chains[chain]
	if !ok {
		return nil, fmt.Errorf("chain '%s' not in manifest", chain)
	}
	sources := make([]Source, 0, len(spec.Sources))
	for i, src := range spec.Sources {
		s, err := src.source(m.baseDir)
		if err != nil {
			return nil, fmt.Errorf("chain '%s' source %d: %w", chain, i+1, err)
		}
		sources = append(sources, s)
	}
	return sources, nil
}

func (s SourceSpec) source(baseDir string) (Source, error) {
	set := 0
	var out Source
	if s.File != "" {
		set++
		out = FileSource{Path: resolve(baseDir, s.File)}
	}
	if s.Glob != "" {
		set++
		out = GlobSource{Pattern: resolve(baseDir, s.Glob)}
	}
	if s.SQLite != nil {
		set++
		if s.SQLite.DSN == "" || s.SQLite.Query == "" {
			return nil, errors.New("sqlite source needs both dsn and query")
		}
		out = SQLiteSource{DSN: resolve(baseDir, s.SQLite.DSN), Query: s.SQLite.Query}
	}
	if set != 1 {
		return nil, fmt.Errorf("exactly one of file, glob or sqlite must be set, got %d", set)
	}
	return out, nil
}

func resolve(baseDir, path string) string {
	if baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
