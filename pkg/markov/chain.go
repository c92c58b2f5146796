package markov

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// ErrInvalidOrder is returned when a chain is requested with an order below 1.
	ErrInvalidOrder = errors.New("markov: order must be at least 1")
	// ErrNoValidStart is returned by the generation functions when the chain
	// holds no key that can start a sentence.
	ErrNoValidStart = errors.New("markov: no valid start key in chain")
)

// Key is an ordered tuple of consecutive tokens used to index a Chain.
type Key []string

// String returns the tokens of the key joined by single spaces, for display.
// Distinct keys may share a String when tokens contain spaces.
func (k Key) String() string {
	return strings.Join(k, " ")
}

// index returns the map index of the key. Every token is prefixed with its
// byte length, so two keys share an index only when their tokens are equal.
func (k Key) index() string {
	size := 0
	for _, tok := range k {
		size += len(tok) + 4
	}
	buf := make([]byte, 0, size)
	for _, tok := range k {
		buf = strconv.AppendInt(buf, int64(len(tok)), 10)
		buf = append(buf, ':')
		buf = append(buf, tok...)
	}
	return string(buf)
}

// IsStart reports whether the key may open a generated sequence, i.e. its
// first token begins with an upper-case letter.
func (k Key) IsStart() bool {
	if len(k) == 0 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(k[0])
	if r == utf8.RuneError {
		return false
	}
	return unicode.IsLetter(r) && unicode.IsUpper(r)
}

// Chain maps every Key of Order tokens to the tokens that followed it in the
// source, in source order and with duplicates kept. A Chain is immutable once
// built; its accessors return copies.
type Chain struct {
	order  int
	links  map[string][]string
	keys   []Key // first-seen order
	starts []Key
	tail   Key // last order tokens of the source
}

// Build slides a window of `order` tokens across `tokens` and records, for each
// window, the token that follows it. The last `order` tokens never become a
// key of their own since nothing follows them. Fewer than order+1 tokens
// yield an empty chain.
func Build(tokens []string, order int) (*Chain, error) {
	if order < 1 {
		return nil, ErrInvalidOrder
	}

	c := &Chain{
		order: order,
		links: make(map[string][]string),
	}

	for i := 0; i+order < len(tokens); i++ {
		window := tokens[i : i+order]
		prefixKey := Key(window).index()

		successors, ok := c.links[prefixKey]
		if !ok {
			key := make(Key, order)
			copy(key, window)
			c.keys = append(c.keys, key)
			if key.IsStart() {
				c.starts = append(c.starts, key)
			}
		}
		c.links[prefixKey] = append(successors, tokens[i+order])
	}

	if len(tokens) >= order {
		c.tail = append(Key(nil), tokens[len(tokens)-order:]...)
	}

	return c, nil
}

// Order returns the number of tokens in every key of the chain.
func (c *Chain) Order() int {
	return c.order
}

// Len returns the number of distinct keys in the chain.
func (c *Chain) Len() int {
	return len(c.keys)
}

// Keys returns every key in the order it was first seen in the source.
func (c *Chain) Keys() []Key {
	return cloneKeys(c.keys)
}

// StartKeys returns the keys that generation may start from, in first-seen order.
func (c *Chain) StartKeys() []Key {
	return cloneKeys(c.starts)
}

// Successors returns a copy of the tokens observed after key. The boolean is
// false when the key is not in the chain.
func (c *Chain) Successors(key Key) ([]string, bool) {
	successors, ok := c.lookup(key)
	if !ok {
		return nil, false
	}
	out := make([]string, len(successors))
	copy(out, successors)
	return out, true
}

// lookup returns the internal successor list without copying it.
func (c *Chain) lookup(key Key) ([]string, bool) {
	if len(key) != c.order {
		return nil, false
	}
	successors, ok := c.links[key.index()]
	return successors, ok
}

func cloneKeys(keys []Key) []Key {
	out := make([]Key, len(keys))
	for i, k := range keys {
		out[i] = append(Key(nil), k...)
	}
	return out
}
