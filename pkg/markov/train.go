package markov

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Train tokenizes everything readable from data with the Generator's
// Tokenizer and builds a chain of the given order from the tokens.
// A corpus shorter than order+1 tokens produces an empty chain, not an error.
func (g *Generator) Train(ctx context.Context, data io.Reader, order int) (*Chain, error) {
	if order < 1 {
		return nil, ErrInvalidOrder
	}

	tokens, err := Tokenize(g.tokenizer, data)
	if err != nil {
		return nil, fmt.Errorf("tokenizer error: %w", err)
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	chain, err := Build(tokens, order)
	if err != nil {
		return nil, err
	}

	g.logger.InfoContext(ctx, "Training completed",
		slog.Int("order", order),
		slog.Int("tokens_processed", len(tokens)),
		slog.Int("keys", chain.Len()),
		slog.Int("start_keys", len(chain.starts)),
	)
	if chain.Len() == 0 {
		g.logger.WarnContext(ctx, "Corpus too short to produce any key",
			slog.Int("order", order),
			slog.Int("tokens_processed", len(tokens)),
		)
	}

	return chain, nil
}
