package corpus

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/CTAG07/Cookery/pkg/markov"
)

func TestBuildChains(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "titles.txt", "A Tart of Cream. A Tart of Eggs. A Tart")
	writeFile(t, dir, "accomplisht_STRIPPED.txt", "Boil the eggs. Boil the")
	writeFile(t, dir, "digby_STRIPPED.txt", "Boil the broth. Boil the")
	dsn := setupTestDB(t, "Boil the cream. Boil the")

	manifest := `
chains:
  titles:
    order: 3
    sources:
      - file: titles.txt
  recipes:
    sources:
      - glob: "*_STRIPPED.txt"
      - sqlite:
          dsn: ` + dsn + `
          query: SELECT body FROM receipts
`
	m, err := ParseManifest([]byte(manifest), dir)
	if err != nil {
		t.Fatalf("ParseManifest() error = %v", err)
	}

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	models, err := BuildChains(t.Context(), m, logger)
	if err != nil {
		t.Fatalf("BuildChains() error = %v", err)
	}

	titles, recipes := models["titles"], models["recipes"]
	if titles == nil || recipes == nil {
		t.Fatalf("expected titles and recipes chains, got %v", models)
	}
	if titles.Order() != 3 || recipes.Order() != markov.DefaultOrder {
		t.Errorf("orders = %d, %d; want 3, %d", titles.Order(), recipes.Order(), markov.DefaultOrder)
	}
	if !titles.Finalized() || !recipes.Finalized() {
		t.Error("built chains should be finalized")
	}

	// Three corpora each contribute one (Boil, the) transition.
	table, ok := recipes.Successors(markov.Context{"Boil", "the"})
	if !ok || table.Total() != 3 {
		t.Fatalf("expected (Boil, the) with 3 transitions, got %v", table)
	}
	for _, s := range []string{"eggs.", "broth.", "cream."} {
		if table.Count(s) != 1 {
			t.Errorf("Count(%q) = %d, want 1", s, table.Count(s))
		}
	}

	title, err := titles.GenerateBounded(markov.NewRand(1), 2)
	if err != nil {
		t.Fatalf("GenerateBounded() error = %v", err)
	}
	if !strings.HasPrefix(title, "A Tart of") {
		t.Errorf("title = %q, want prefix %q", title, "A Tart of")
	}

	if !strings.Contains(logs.String(), "chain=recipes") {
		t.Errorf("expected chain attribute in logs, got %q", logs.String())
	}
}

func TestBuildChainsPrunes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "a b c. a b d. x. z q")
	manifest := "chains:\n" +
		"  raw:\n    order: 1\n    sources:\n      - file: notes.txt\n" +
		"  pruned:\n    order: 1\n    min_frequency: 1\n    sources:\n      - file: notes.txt\n"
	m, err := ParseManifest([]byte(manifest), dir)
	if err != nil {
		t.Fatalf("ParseManifest() error = %v", err)
	}

	var logs bytes.Buffer
	models, err := BuildChains(t.Context(), m, slog.New(slog.NewTextHandler(&logs, nil)))
	if err != nil {
		t.Fatalf("BuildChains() error = %v", err)
	}

	if got := models["raw"].Stats().Contexts; got != 6 {
		t.Errorf("raw chain has %d contexts, want 6", got)
	}
	pruned := models["pruned"]
	if !pruned.Finalized() {
		t.Error("pruned chain should be finalized")
	}
	if stats := pruned.Stats(); stats.Contexts != 1 || stats.TotalFrequency != 2 {
		t.Errorf("pruned chain stats = %+v, want one context with frequency 2", stats)
	}
	if !strings.Contains(logs.String(), "Model pruned") {
		t.Errorf("expected prune log line, got %q", logs.String())
	}
}

func TestBuildChainsSourceError(t *testing.T) {
	dir := t.TempDir()
	m, err := ParseManifest([]byte("chains:\n  titles:\n    sources:\n      - file: missing.txt\n"), dir)
	if err != nil {
		t.Fatalf("ParseManifest() error = %v", err)
	}
	_, err = BuildChains(t.Context(), m, nil)
	if err == nil || !strings.Contains(err.Error(), "chain 'titles'") {
		t.Errorf("BuildChains() error = %v, want it to name the chain", err)
	}
}

func TestBuildChainInvalidOrder(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "a b c.")
	_, err := BuildChain(t.Context(), []Source{FileSource{Path: path}}, nil, markov.WithOrder(0))
	if !errors.Is(err, markov.ErrInvalidOrder) {
		t.Errorf("BuildChain() error = %v, want ErrInvalidOrder", err)
	}
}
