package corpus

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// Source yields one or more corpora. Each calls fn once per corpus, in a
// stable order, and stops at the first error fn returns.
type Source interface {
	Name() string
	Each(ctx context.Context, fn func(name string, r io.Reader) error) error
}

// FileSource is a single text file.
type FileSource struct {
	Path string
}

// Name identifies the source in logs and errors.
func (s FileSource) Name() string { return "file:" + s.Path }

// Each opens the file and passes it to fn as one corpus.
func (s FileSource) Each(ctx context.Context, fn func(string, io.Reader) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return fmt.Errorf("could not open corpus file: %w", err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)
	return fn(s.Path, f)
}

// GlobSource is every file matching Pattern, in lexical order. A pattern
// matching nothing is an error, since it almost always means a typo.
type GlobSource struct {
	Pattern string
}

// Name identifies the source in logs and errors.
func (s GlobSource) Name() string { return "glob:" + s.Pattern }

// Each passes every matching file to fn, one corpus per file.
func (s GlobSource) Each(ctx context.Context, fn func(string, io.Reader) error) error {
	matches, err := filepath.Glob(s.Pattern)
	if err != nil {
		return fmt.Errorf("bad glob pattern '%s': %w", s.Pattern, err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("glob pattern '%s' matched no files", s.Pattern)
	}
	sort.Strings(matches)
	for _, path := range matches {
		if err := (FileSource{Path: path}).Each(ctx, fn); err != nil {
			return err
		}
	}
	return nil
}
