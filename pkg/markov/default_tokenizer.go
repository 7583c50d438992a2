package markov

import (
	"bufio"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultStripMarks are removed from every token. Sentence punctuation is
	// kept because terminal detection depends on it.
	DefaultStripMarks = `"()[]_/*`
	// DefaultTerminalMarks end a sentence when they are a token's last rune.
	DefaultTerminalMarks = "."
	// maxLineLength bounds a single corpus line held in memory.
	maxLineLength = 1 << 20
)

// DefaultTokenizer is a default implementation of the Tokenizer interface.
// It splits text on whitespace, removes a configurable set of marks from each
// token and treats tokens ending in a terminal mark as End-Of-Chain tokens.
// Its behavior can be customized with functional options.
type DefaultTokenizer struct {
	stripMarks    string
	terminalMarks string
	splitRegex    *regexp.Regexp
}

// Option Is a function that configures a DefaultTokenizer.
type Option func(*DefaultTokenizer)

// WithStripMarks sets the characters removed from every token.
// Default: DefaultStripMarks
func WithStripMarks(marks string) Option {
	return func(t *DefaultTokenizer) {
		t.stripMarks = marks
	}
}

// WithTerminalMarks sets the characters that end a sentence.
// Default: "."
func WithTerminalMarks(marks string) Option {
	return func(t *DefaultTokenizer) {
		t.terminalMarks = marks
	}
}

// WithSplitRegex sets the regex string used to find tokens in a line.
// Default: `\S+`
func WithSplitRegex(splitRegex string) Option {
	return func(t *DefaultTokenizer) {
		t.splitRegex = regexp.MustCompile(splitRegex)
	}
}

// NewDefaultTokenizer creates a new tokenizer with default settings, which can be
// overridden by providing one or more Option functions.
func NewDefaultTokenizer(opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{
		stripMarks:    DefaultStripMarks,
		terminalMarks: DefaultTerminalMarks,
		splitRegex:    regexp.MustCompile(`\S+`),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Normalize removes every configured strip mark from raw.
func (t *DefaultTokenizer) Normalize(raw string) string {
	if t.stripMarks == "" {
		return raw
	}
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(t.stripMarks, r) {
			return -1
		}
		return r
	}, raw)
}

// IsTerminal reports whether the last rune of token is a terminal mark.
func (t *DefaultTokenizer) IsTerminal(token string) bool {
	if token == "" {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(token)
	return strings.ContainsRune(t.terminalMarks, r)
}

// NewStream Returns the stream processor.
func (t *DefaultTokenizer) NewStream(r io.Reader) StreamTokenizer {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return &DefaultStreamTokenizer{
		scanner:   scanner,
		buffer:    []string{},
		tokenizer: t,
	}
}

// DefaultStreamTokenizer is the default implementation of the StreamTokenizer interface.
// It uses a bufio.Scanner and a regular expression to read and tokenize a stream.
type DefaultStreamTokenizer struct {
	scanner   *bufio.Scanner
	buffer    []string
	tokenizer *DefaultTokenizer
}

// Next returns the next token from the stream. It returns a Token and a nil error on
// success. When the stream is exhausted, it returns a nil Token and io.EOF.
// Any other error indicates a problem reading from the underlying stream.
func (s *DefaultStreamTokenizer) Next() (*Token, error) {
	for {
		for len(s.buffer) == 0 { // Loop until we have tokens
			if !s.scanner.Scan() {
				if err := s.scanner.Err(); err != nil {
					return nil, err
				}
				return nil, io.EOF
			}
			s.buffer = s.tokenizer.splitRegex.FindAllString(s.scanner.Text(), -1)
		}

		word := s.tokenizer.Normalize(s.buffer[0])
		s.buffer = s.buffer[1:] // Consume the token
		if word == "" {
			continue
		}

		return &Token{Text: word, EOC: s.tokenizer.IsTerminal(word)}, nil
	}
}
