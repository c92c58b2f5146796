package markov

import (
	"context"
	"fmt"
	"log/slog"
)

// DefaultMaxLength is the output length cap applied when WithMaxLength is not
// given. A walk over a real corpus normally dead-ends long before it.
const DefaultMaxLength = 10000

// generateOptions Is used by the generate functions to configure default options.
type generateOptions struct {
	maxLength int
}

// GenerateOption is a function that configures generation parameters. It's used
// as a variadic argument in Generate and GenerateString.
type GenerateOption func(*generateOptions)

// WithMaxLength caps the number of tokens in the generated sequence, seed
// included. A cap below the chain order is raised to the order. A value of 0
// removes the cap, so the walk runs until it reaches a window with no key.
// Output shorter than the cap is identical to the uncapped walk.
func WithMaxLength(n int) GenerateOption {
	return func(o *generateOptions) { o.maxLength = n }
}

// Generate walks the chain and returns the generated tokens. It starts from a
// start key chosen uniformly at random, copies its tokens, and then keeps
// appending a uniformly chosen successor of the trailing window until that
// window is not a key of the chain.
//
// ErrNoValidStart is returned if the chain is empty or none of its keys begins
// with an upper-case letter.
func (g *Generator) Generate(ctx context.Context, chain *Chain, opts ...GenerateOption) ([]string, error) {
	options := &generateOptions{
		maxLength: DefaultMaxLength,
	}
	for _, opt := range opts {
		opt(options)
	}

	if chain == nil || len(chain.starts) == 0 {
		return nil, ErrNoValidStart
	}

	order := chain.order
	maxLength := options.maxLength
	if maxLength > 0 && maxLength < order {
		maxLength = order
	}

	start := chain.starts[g.rng.IntN(len(chain.starts))]
	words := make([]string, 0, 4*order)
	words = append(words, start...)

	for maxLength == 0 || len(words) < maxLength {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generation interrupted after %d tokens: %w", len(words), err)
		}

		choices, ok := chain.lookup(words[len(words)-order:])
		if !ok { // Dead end in chain
			g.logger.DebugContext(ctx, "Generation terminated due to dead-end",
				slog.String("last_key", Key(words[len(words)-order:]).String()),
				slog.Int("generated_length", len(words)),
			)
			return words, nil
		}

		words = append(words, choices[g.rng.IntN(len(choices))])
	}

	g.logger.DebugContext(ctx, "Generation terminated by reaching maxLength",
		slog.Int("max_length", maxLength),
		slog.Int("generated_length", len(words)),
	)
	return words, nil
}

// GenerateString is a convenience wrapper around Generate that joins the
// generated tokens with the Generator's Tokenizer.
func (g *Generator) GenerateString(ctx context.Context, chain *Chain, opts ...GenerateOption) (string, error) {
	words, err := g.Generate(ctx, chain, opts...)
	if err != nil {
		return "", err
	}
	return Join(g.tokenizer, words), nil
}
