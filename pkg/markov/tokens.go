package markov

import (
	"io"
)

// Token represents a single normalized unit of text. EOC is set when the
// token ends a sentence (its last rune is a terminal mark).
type Token struct {
	Text string
	EOC  bool
}

// Tokenizer is an interface that defines the contract for splitting input
// text into tokens and deciding which tokens end a sentence. This allows the
// chain logic to be independent of the specific tokenization strategy.
type Tokenizer interface {
	// NewStream returns a stateful StreamTokenizer for processing an io.Reader.
	// Tokens it returns are already normalized.
	NewStream(io.Reader) StreamTokenizer
	// Normalize strips configured marks from a raw token. An empty result
	// means the token should be dropped.
	Normalize(raw string) string
	// IsTerminal reports whether a normalized token ends a sentence.
	IsTerminal(token string) bool
}

// StreamTokenizer is an interface for a stateful tokenizer that processes a
// stream of data, returning one token at a time.
type StreamTokenizer interface {
	// Next returns the next token from the stream. It returns io.EOF as the
	// error when the stream is fully consumed.
	Next() (*Token, error)
}
