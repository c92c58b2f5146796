package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
)

// promptPath asks on the terminal for the corpus file path. Ctrl-C or EOF
// abandon the prompt; empty answers ask again.
func promptPath(prompt string) (string, error) {
	input := liner.NewLiner()
	defer input.Close()

	input.SetCtrlCAborts(true)

	for {
		line, err := input.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return "", fmt.Errorf("no corpus file given")
		}
		if err != nil {
			return "", fmt.Errorf("failed to read file path: %w", err)
		}

		line = strings.TrimSpace(line)
		if line != "" {
			input.AppendHistory(line)
			return line, nil
		}
	}
}
