package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Loader turns raw text into the normalized, space-joined form consumed by
// the chain builder.
type Loader struct {
	form      norm.Form
	normalize bool
}

// LoaderOption Is a function that configures a Loader.
type LoaderOption func(*Loader)

// WithNormalization sets the Unicode normalization form applied while reading.
// Default: norm.NFC
func WithNormalization(form norm.Form) LoaderOption {
	return func(l *Loader) {
		l.form = form
		l.normalize = true
	}
}

// WithoutNormalization leaves the input bytes as they are.
func WithoutNormalization() LoaderOption {
	return func(l *Loader) {
		l.normalize = false
	}
}

// NewLoader creates a Loader with default settings, which can be overridden
// by providing one or more LoaderOption functions.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		form:      norm.NFC,
		normalize: true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Read consumes r and returns its lines, each stripped of trailing whitespace
// and followed by a single space.
func (l *Loader) Read(r io.Reader) (string, error) {
	if l.normalize {
		r = transform.NewReader(r, l.form)
	}

	br := bufio.NewReader(r)

	var sb strings.Builder
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			sb.WriteString(strings.TrimRightFunc(line, unicode.IsSpace))
			sb.WriteByte(' ')
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read corpus: %w", err)
		}
	}
	return sb.String(), nil
}

// ReadFile opens the file at path and reads it with Read.
func (l *Loader) ReadFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("could not open corpus file: %w", err)
	}
	defer func(file *os.File) {
		_ = file.Close()
	}(file)

	text, err := l.Read(file)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return text, nil
}
