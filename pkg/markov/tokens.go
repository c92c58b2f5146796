package markov

import (
	"errors"
	"io"
)

// Token represents a single tokenized unit of text: one whitespace-delimited
// word, including any punctuation attached to it.
type Token struct {
	Text string
}

// Tokenizer is an interface that defines the contract for splitting input text
// into tokens. This allows the chain building logic to be independent of the
// specific tokenization strategy.
type Tokenizer interface {
	// NewStream returns a stateful StreamTokenizer for processing an io.Reader.
	NewStream(io.Reader) StreamTokenizer
	// Separator returns the string that should be used to join tokens
	// when building a final generated string, using the previous and current
	// tokens.
	Separator(prev, current string) string
}

// StreamTokenizer is an interface for a stateful tokenizer that processes a
// stream of data, returning one token at a time.
type StreamTokenizer interface {
	// Next returns the next token from the stream. It returns io.EOF as the
	// error when the stream is fully consumed.
	Next() (*Token, error)
}

// Tokenize drains r through the tokenizer and returns the token texts in order.
func Tokenize(t Tokenizer, r io.Reader) ([]string, error) {
	stream := t.NewStream(r)
	var tokens []string
	for {
		token, err := stream.Next()
		if errors.Is(err, io.EOF) {
			return tokens, nil
		}
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token.Text)
	}
}

// Join builds the display string for a generated sequence.
func Join(t Tokenizer, tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	size := 0
	for _, tok := range tokens {
		size += len(tok) + 1
	}
	buf := make([]byte, 0, size)
	buf = append(buf, tokens[0]...)
	for i := 1; i < len(tokens); i++ {
		buf = append(buf, t.Separator(tokens[i-1], tokens[i])...)
		buf = append(buf, tokens[i]...)
	}
	return string(buf)
}
