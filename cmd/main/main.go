package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/CTAG07/markovtext/pkg/corpus"
	"github.com/CTAG07/markovtext/pkg/markov"
	"github.com/natefinch/atomic"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// options holds the command line flags of a single run.
type options struct {
	configPath string
	order      int
	maxLength  int
	seed       uint64
	seedSet    bool
	text       string
	corpusName string
	ingestName string
	removeName string
	list       bool
	stats      bool
	outputPath string
	version    bool
	path       string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("markovtext", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: markovtext [flags] [path]\n\nGenerates random text from an n-gram Markov chain built over a corpus.\n\nFlags:\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.configPath, "config", "config.json", "path of the JSON config file, created with defaults if missing")
	fs.IntVar(&opts.order, "order", 0, "number of words per chain key (0 uses the config value)")
	fs.IntVar(&opts.maxLength, "max-length", -1, "cap on generated words, 0 for no cap (-1 uses the config value)")
	fs.Uint64Var(&opts.seed, "seed", 0, "random seed for reproducible output, any value including 0 (unset uses the config value, or a random seed)")
	fs.StringVar(&opts.text, "text", "", "use this text as the corpus instead of a file")
	fs.StringVar(&opts.corpusName, "corpus", "", "use a corpus stored in the library")
	fs.StringVar(&opts.ingestName, "ingest", "", "store the input corpus in the library under this name and exit")
	fs.StringVar(&opts.removeName, "remove", "", "remove the named corpus from the library and exit")
	fs.BoolVar(&opts.list, "list", false, "list the corpora stored in the library and exit")
	fs.BoolVar(&opts.stats, "stats", false, "print chain statistics to stderr before generating")
	fs.StringVar(&opts.outputPath, "o", "", "write the generated text to this file instead of stdout")
	fs.BoolVar(&opts.version, "version", false, "print version information and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.seedSet = true
		}
	})
	if fs.NArg() > 1 {
		return nil, fmt.Errorf("expected at most one corpus path, got %d", fs.NArg())
	}
	opts.path = fs.Arg(0)

	sources := 0
	for _, set := range []bool{opts.path != "", opts.text != "", opts.corpusName != ""} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, fmt.Errorf("only one of a path, -text or -corpus may be given")
	}
	return opts, nil
}

// applyFlags overrides config values with the ones given on the command line.
func (o *options) applyFlags(config *Config) {
	if o.order != 0 {
		config.Order = o.order
	}
	if o.maxLength >= 0 {
		config.MaxLength = o.maxLength
	}
	if o.seedSet {
		seed := o.seed
		config.Seed = &seed
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("markovtext failed", "error", err)
		stop()
		os.Exit(1)
	}
}

// run executes one invocation of the program. Generated text goes to stdout,
// logs and statistics to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if opts.version {
		_, _ = fmt.Fprintf(stdout, "markovtext %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		return nil
	}

	config, err := LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	opts.applyFlags(config)
	if err = config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: config.logLevel()}))

	var store *corpus.Store
	if opts.list || opts.corpusName != "" || opts.ingestName != "" || opts.removeName != "" {
		var db *sql.DB
		db, store, err = openLibrary(config.DatabasePath, logger)
		if err != nil {
			return err
		}
		defer func() {
			store.Close()
			if err := db.Close(); err != nil {
				logger.Error("Failed to close database", "error", err)
			}
		}()
	}

	if opts.list {
		return listCorpora(ctx, store, stdout)
	}

	if opts.removeName != "" {
		err = store.Remove(ctx, opts.removeName)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("corpus %q not found in library", opts.removeName)
		}
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(stdout, "removed corpus %q\n", opts.removeName)
		return nil
	}

	text, err := loadCorpus(ctx, opts, config, store)
	if err != nil {
		return err
	}

	if opts.ingestName != "" {
		doc, err := store.Put(ctx, opts.ingestName, text)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(stdout, "stored corpus %q (%d tokens)\n", doc.Name, doc.TokenCount)
		return nil
	}

	gen := markov.NewGenerator(markov.NewDefaultTokenizer())
	gen.SetLogger(logger)
	if config.Seed != nil {
		gen.SetSeed(*config.Seed)
	}

	chain, err := gen.Train(ctx, strings.NewReader(text), config.Order)
	if err != nil {
		return fmt.Errorf("failed to build chain: %w", err)
	}

	if opts.stats {
		printStats(stderr, chain.Stats())
	}

	output, err := gen.GenerateString(ctx, chain, markov.WithMaxLength(config.MaxLength))
	if err != nil {
		if errors.Is(err, markov.ErrNoValidStart) {
			return fmt.Errorf("corpus has no %d-word sequence starting with an upper-case letter: %w", config.Order, err)
		}
		return fmt.Errorf("failed to generate text: %w", err)
	}

	if opts.outputPath != "" {
		if err = atomic.WriteFile(opts.outputPath, strings.NewReader(output+"\n")); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Info("Generated text written", "path", opts.outputPath, "bytes", len(output)+1)
		return nil
	}

	_, err = fmt.Fprintln(stdout, output)
	return err
}

// loadCorpus returns the normalized corpus text from whichever source was
// selected, prompting for a file path when none was.
func loadCorpus(ctx context.Context, opts *options, config *Config, store *corpus.Store) (string, error) {
	var loaderOpts []corpus.LoaderOption
	if !config.Normalize {
		loaderOpts = append(loaderOpts, corpus.WithoutNormalization())
	}
	loader := corpus.NewLoader(loaderOpts...)

	switch {
	case opts.corpusName != "":
		text, err := store.Get(ctx, opts.corpusName)
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("corpus %q not found in library", opts.corpusName)
		}
		if err != nil {
			return "", fmt.Errorf("failed to load corpus %q: %w", opts.corpusName, err)
		}
		return text, nil
	case opts.text != "":
		return loader.Read(strings.NewReader(opts.text))
	}

	path := opts.path
	if path == "" {
		var err error
		if path, err = promptPath(config.Prompt); err != nil {
			return "", err
		}
	}
	return loader.ReadFile(path)
}

func listCorpora(ctx context.Context, store *corpus.Store, stdout io.Writer) error {
	docs, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list corpora: %w", err)
	}
	w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tTOKENS\tADDED")
	for _, doc := range docs {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\n", doc.Name, doc.TokenCount, doc.AddedAt.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func printStats(w io.Writer, stats markov.ChainStats) {
	_, _ = fmt.Fprintf(w, "order:      %d\n", stats.Order)
	_, _ = fmt.Fprintf(w, "keys:       %d\n", stats.Keys)
	_, _ = fmt.Fprintf(w, "links:      %d\n", stats.Links)
	_, _ = fmt.Fprintf(w, "start keys: %d\n", stats.StartKeys)
	_, _ = fmt.Fprintf(w, "vocabulary: %d\n", stats.VocabSize)
	_, _ = fmt.Fprintf(w, "max fanout: %d\n", stats.MaxFanout)
	if stats.DeadEndKey != nil {
		_, _ = fmt.Fprintf(w, "dead end:   %q\n", stats.DeadEndKey.String())
	}
}
