package markov

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"
)

func TestTrain(t *testing.T) {
	_, _, chain := setupTestChain(t, "hi there mary\nhi there juanita\n", 2)

	if chain.Order() != 2 {
		t.Errorf("expected order 2, got %d", chain.Order())
	}
	if chain.Len() != 3 {
		t.Errorf("expected 3 keys, got %d", chain.Len())
	}
	got, ok := chain.Successors(Key{"hi", "there"})
	if !ok || !reflect.DeepEqual(got, []string{"mary", "juanita"}) {
		t.Errorf("successors of 'hi there' = %v, %v", got, ok)
	}
}

func TestTrainMatchesBuild(t *testing.T) {
	corpus := "The cat sat on the mat.\nThe dog sat on the log.\n"
	_, _, trained := setupTestChain(t, corpus, 2)
	built, err := Build(strings.Fields(corpus), 2)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(trained.Keys(), built.Keys()) {
		t.Errorf("Train and Build disagree on keys: %v vs %v", trained.Keys(), built.Keys())
	}
}

func TestTrainInvalidOrder(t *testing.T) {
	g := setupTestGenerator(t)
	_, err := g.Train(context.Background(), strings.NewReader("A b c"), 0)
	if !errors.Is(err, ErrInvalidOrder) {
		t.Errorf("expected ErrInvalidOrder, got %v", err)
	}
}

func TestTrainLogs(t *testing.T) {
	var buf bytes.Buffer
	g := setupTestGenerator(t)
	g.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	if _, err := g.Train(context.Background(), strings.NewReader("too short"), 3); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Training completed") || !strings.Contains(out, "tokens_processed=2") {
		t.Errorf("missing training summary in log output: %q", out)
	}
	if !strings.Contains(out, "Corpus too short") {
		t.Errorf("missing short corpus warning in log output: %q", out)
	}
}

func BenchmarkTrain(b *testing.B) {
	corpus := createBenchmarkCorpus()
	ctx := context.Background()
	g := setupTestGenerator(b)

	b.ReportAllocs()
	b.SetBytes(int64(len(corpus)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := g.Train(ctx, strings.NewReader(corpus), DefaultOrder); err != nil {
			b.Fatalf("Train() failed: %v", err)
		}
	}
}
