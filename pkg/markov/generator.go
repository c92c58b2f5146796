package markov

import (
	"io"
	"log/slog"
	"math/rand/v2"
)

// DefaultOrder is the order used when callers do not pick one.
const DefaultOrder = 3

// Generator is the main entry point for training chains and generating text
// from them. It holds the tokenizer used to split input, the random source
// used for sampling, and a logger.
//
// A Generator is not safe for concurrent use.
type Generator struct {
	tokenizer Tokenizer
	rng       *rand.Rand
	logger    *slog.Logger
}

// NewGenerator creates and returns a new Generator using the given Tokenizer.
// A nil tokenizer falls back to NewDefaultTokenizer. The random source is
// seeded from the runtime's entropy; use SetSeed for reproducible output.
func NewGenerator(tokenizer Tokenizer) *Generator {
	if tokenizer == nil {
		tokenizer = NewDefaultTokenizer()
	}
	return &Generator{
		tokenizer: tokenizer,
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger for the Generator. By default, all logs are discarded.
func (g *Generator) SetLogger(logger *slog.Logger) {
	if logger != nil {
		g.logger = logger
	}
}

// SetTokenizer replaces the tokenizer used by Train and GenerateString.
func (g *Generator) SetTokenizer(tokenizer Tokenizer) {
	if tokenizer != nil {
		g.tokenizer = tokenizer
	}
}

// SetSeed reseeds the random source. Two generators with the same seed that
// walk the same chain produce the same output.
func (g *Generator) SetSeed(seed uint64) {
	g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
