package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

const continuationPrompt = "| "

// readExpression reads lines until they make up one program.
// It returns io.EOF at the end of input.
func readExpression(prompt func(string) (string, error), prompt1 string) (*Program, error) {
	var b strings.Builder
	for {
		p := prompt1
		if b.Len() != 0 {
			p = continuationPrompt
		}
		line, err := prompt(p)
		if err != nil {
			if err == io.EOF && b.Len() != 0 {
				return Parse(b.String())
			}
			return nil, err
		}
		if b.Len() == 0 && strings.TrimSpace(line) == "" {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
		prgm, err := Parse(b.String())
		if errors.Is(err, ErrIncomplete) {
			continue
		}
		return prgm, err
	}
}

// repl evaluates programs read by prompt until the end of input.
// Errors of each program are written to errOut and do not stop the loop.
func repl(cfg *Config, prompt func(string) (string, error),
	out, errOut io.Writer, logger *slog.Logger) error {
	for {
		prgm, err := readExpression(prompt, cfg.Prompt)
		switch {
		case err == io.EOF:
			fmt.Fprintln(out, "Goodby")
			return nil
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case err != nil:
			var se *SyntaxError
			if !errors.As(err, &se) {
				return err
			}
			fmt.Fprintln(errOut, err)
			continue
		}
		if err := Run(cfg, prgm, out, logger); err != nil {
			fmt.Fprintln(errOut, err)
		}
	}
}

// ReadEvalPrintLoop repeats read-eval-print on the terminal until
// End-Of-File, keeping a line history.
func ReadEvalPrintLoop(cfg *Config, logger *slog.Logger) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := cfg.History
	if histPath != "" && !filepath.IsAbs(histPath) {
		if home, err := os.UserHomeDir(); err == nil {
			histPath = filepath.Join(home, histPath)
		}
	}
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	prompt := func(p string) (string, error) {
		line, err := ln.Prompt(p)
		if err == nil && strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		return line, err
	}
	return repl(cfg, prompt, os.Stdout, os.Stderr, logger)
}
