package markov

import (
	"context"
	"go/build"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// setupTestGenerator creates a seeded Generator so test output is reproducible.
func setupTestGenerator(t testing.TB) *Generator {
	t.Helper()
	g := NewGenerator(NewDefaultTokenizer())
	g.SetSeed(42)
	return g
}

// setupTestChain is a convenience helper that also trains a chain of the given order.
func setupTestChain(t *testing.T, corpus string, order int) (context.Context, *Generator, *Chain) {
	t.Helper()
	g := setupTestGenerator(t)
	ctx := context.Background()
	chain, err := g.Train(ctx, strings.NewReader(corpus), order)
	if err != nil {
		t.Fatalf("setup: Train() failed: %v", err)
	}
	return ctx, g, chain
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
				benchmarkCorpus = "This is a fallback corpus for benchmarking. It is not very long but will prevent a crash. "
				return
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}
