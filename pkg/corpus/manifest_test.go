package corpus

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const testManifest = `
chains:
  titles:
    order: 3
    sources:
      - file: texts/titles.txt
  recipes:
    min_frequency: 1
    sources:
      - glob: texts/*_STRIPPED.txt
      - sqlite:
          dsn: /var/lib/receipts.db
          query: SELECT body FROM receipts
`

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest([]byte(testManifest), "/srv/cookery")
	if err != nil {
		t.Fatalf("ParseManifest() error = %v", err)
	}

	if names := m.ChainNames(); !reflect.DeepEqual(names, []string{"recipes", "titles"}) {
		t.Errorf("ChainNames() = %v", names)
	}
	if m.Chains["titles"].Order != 3 || m.Chains["recipes"].Order != 0 {
		t.Errorf("unexpected orders: %+v", m.Chains)
	}
	if m.Chains["titles"].MinFrequency != 0 || m.Chains["recipes"].MinFrequency != 1 {
		t.Errorf("unexpected min frequencies: %+v", m.Chains)
	}

	sources, err := m.Sources("recipes")
	if err != nil {
		t.Fatalf("Sources() error = %v", err)
	}
	expected := []Source{
		GlobSource{Pattern: filepath.Join("/srv/cookery", "texts/*_STRIPPED.txt")},
		SQLiteSource{DSN: "/var/lib/receipts.db", Query: "SELECT body FROM receipts"},
	}
	if !reflect.DeepEqual(sources, expected) {
		t.Errorf("Sources() = %+v, want %+v", sources, expected)
	}

	if _, err := m.Sources("desserts"); err == nil {
		t.Error("expected an error for an unknown chain")
	}
}

func TestParseManifestInvalid(t *testing.T) {
	testCases := []struct {
		name          string
		yaml          string
		errorContains string
	}{
		{
			name:          "Malformed YAML",
			yaml:          "chains: [",
			errorContains: "failed to parse manifest",
		},
		{
			name:          "No chains",
			yaml:          "chains: {}",
			errorContains: "no chains defined",
		},
		{
			name:          "No sources",
			yaml:          "chains:\n  titles:\n    order: 2\n",
			errorContains: "no sources",
		},
		{
			name:          "Negative order",
			yaml:          "chains:\n  titles:\n    order: -1\n    sources:\n      - file: a.txt\n",
			errorContains: "negative order",
		},
		{
			name:          "Negative min frequency",
			yaml:          "chains:\n  titles:\n    min_frequency: -2\n    sources:\n      - file: a.txt\n",
			errorContains: "negative min_frequency",
		},
		{
			name:          "Two kinds in one source",
			yaml:          "chains:\n  titles:\n    sources:\n      - file: a.txt\n        glob: '*.txt'\n",
			errorContains: "exactly one of file, glob or sqlite",
		},
		{
			name:          "Empty source",
			yaml:          "chains:\n  titles:\n    sources:\n      - {}\n",
			errorContains: "exactly one of file, glob or sqlite",
		},
		{
			name:          "SQLite without query",
			yaml:          "chains:\n  titles:\n    sources:\n      - sqlite:\n          dsn: a.db\n",
			errorContains: "needs both dsn and query",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tc.yaml), "")
			if err == nil {
				t.Fatal("expected an error but got none")
			}
			if !strings.Contains(err.Error(), tc.errorContains) {
				t.Errorf("expected error to contain %q, but got %q", tc.errorContains, err.Error())
			}
		})
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "corpora.yaml", "chains:\n  titles:\n    sources:\n      - file: titles.txt\n")

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}
	sources, _ := m.Sources("titles")
	if want := (FileSource{Path: filepath.Join(dir, "titles.txt")}); len(sources) != 1 || sources[0] != want {
		t.Errorf("Sources() = %+v, want [%+v]", sources, want)
	}

	if _, err := LoadManifest(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing manifest")
	}
}
