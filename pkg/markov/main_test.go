package markov

import (
	"context"
	"go/build"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// cyclicCorpus is a corpus in which every context has a successor, so walks
// never dead-end.
const cyclicCorpus = "Boil the eggs. Boil the broth. Boil the"

// newTestModel trains a finalized model of the given order on text.
func newTestModel(t *testing.T, order int, text string) *Model {
	t.Helper()
	m, err := BuildFromReaders(context.Background(), []io.Reader{strings.NewReader(text)}, WithOrder(order))
	if err != nil {
		t.Fatalf("BuildFromReaders() error = %v", err)
	}
	return m
}

// newBenchModel trains a finalized bigram model on the benchmark corpus.
func newBenchModel(b *testing.B) *Model {
	b.Helper()
	m, err := NewModel()
	if err != nil {
		b.Fatalf("NewModel() error = %v", err)
	}
	if err := m.Train(context.Background(), strings.NewReader(createBenchmarkCorpus())); err != nil {
		b.Fatalf("Train() error = %v", err)
	}
	m.Finalize()
	return m
}

var (
	benchmarkCorpus string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a corpus for benchmarking.
func createBenchmarkCorpus() string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = "this is a fallback corpus for benchmarking. it is not very long but will prevent a crash. this is"
				return
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}
