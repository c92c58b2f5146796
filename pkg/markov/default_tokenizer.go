package markov

import (
	"bufio"
	"io"
	"regexp"
)

// maxLineSize bounds a single line (or, without a split regex, a single word)
// read by the default stream tokenizer.
const maxLineSize = 1 << 20

// DefaultTokenizer is a default implementation of the Tokenizer interface.
// It splits input on whitespace, so punctuation stays attached to the word it
// follows, and joins generated tokens with a single space.
// Its behavior can be customized with functional options.
type DefaultTokenizer struct {
	separator  string
	splitRegex *regexp.Regexp
}

// Option Is a function that configures a DefaultTokenizer.
type Option func(*DefaultTokenizer)

// WithSeparator Sets the string used for joining tokens during generation.
// Default: " "
func WithSeparator(sep string) Option {
	return func(t *DefaultTokenizer) {
		t.separator = sep
	}
}

// WithSplitRegex sets a regex whose matches become the tokens of each line,
// replacing whitespace splitting. An empty string restores the default.
func WithSplitRegex(splitRegex string) Option {
	return func(t *DefaultTokenizer) {
		if splitRegex == "" {
			t.splitRegex = nil
			return
		}
		t.splitRegex = regexp.MustCompile(splitRegex)
	}
}

// NewDefaultTokenizer creates a new tokenizer with default settings, which can be
// overridden by providing one or more Option functions.
func NewDefaultTokenizer(opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{
		separator: " ",
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Separator Returns the configured separator string.
func (t *DefaultTokenizer) Separator(_, _ string) string {
	return t.separator
}

// NewStream Returns the stream processor.
func (t *DefaultTokenizer) NewStream(r io.Reader) StreamTokenizer {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	if t.splitRegex == nil {
		// One word per Scan, so a corpus joined into a single line has no size limit.
		scanner.Split(bufio.ScanWords)
	}
	return &DefaultStreamTokenizer{
		scanner:    scanner,
		buffer:     []string{},
		splitRegex: t.splitRegex,
	}
}

// DefaultStreamTokenizer is the default implementation of the StreamTokenizer interface.
// It reads words from a bufio.Scanner, or whole lines when a split regex is set.
type DefaultStreamTokenizer struct {
	scanner    *bufio.Scanner
	buffer     []string
	splitRegex *regexp.Regexp
}

// Next returns the next token from the stream. It returns a Token and a nil error on
// success. When the stream is exhausted, it returns a nil Token and io.EOF.
// Any other error indicates a problem reading from the underlying stream.
func (s *DefaultStreamTokenizer) Next() (*Token, error) {
	for len(s.buffer) == 0 { // Loop until we have tokens
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
		if s.splitRegex == nil {
			return &Token{Text: s.scanner.Text()}, nil
		}
		s.buffer = s.splitRegex.FindAllString(s.scanner.Text(), -1)
	}

	word := s.buffer[0]
	s.buffer = s.buffer[1:]

	return &Token{Text: word}, nil
}
