package main

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

// script returns a prompt function answering with lines, then io.EOF.
func script(lines ...string) (func(string) (string, error), *[]string) {
	var prompts []string
	return func(p string) (string, error) {
		prompts = append(prompts, p)
		if len(lines) == 0 {
			return "", io.EOF
		}
		line := lines[0]
		lines = lines[1:]
		return line, nil
	}, &prompts
}

func TestReadExpressionContinues(t *testing.T) {
	prompt, prompts := script("", "let x = 5", "in -(x, 1)")
	prgm, err := readExpression(prompt, "> ")
	if err != nil {
		t.Fatal(err)
	}
	if prgm.String() != "let x = 5 in -(x, 1)" {
		t.Fatalf("got %v", prgm)
	}
	expected := []string{"> ", "> ", "| "}
	if strings.Join(*prompts, ",") != strings.Join(expected, ",") {
		t.Fatalf("expected prompts %q, got %q", expected, *prompts)
	}
}

func TestRepl(t *testing.T) {
	prompt, _ := script(
		"let x = 5",
		"in -(x, 1)",
		"zero?(1)",
		"let in",
		"y",
		"letrec f(n) = n",
	)
	var out, errOut bytes.Buffer
	cfg := DefaultConfig()
	if err := repl(cfg, prompt, &out, &errOut, nil); err != nil {
		t.Fatal(err)
	}
	expected := "End of computation.\n4\nEnd of computation.\n#f\nGoodby\n"
	if out.String() != expected {
		t.Fatalf("expected %q, got %q", expected, out.String())
	}
	errs := strings.Split(strings.TrimSpace(errOut.String()), "\n")
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %q", errOut.String())
	}
	if !strings.Contains(errs[0], "identifier is expected") ||
		errs[1] != "no binding for y" ||
		errs[2] != "unexpected end of input" && !strings.HasSuffix(errs[2], ": unexpected end of input") {
		t.Fatalf("unexpected errors %q", errs)
	}
}

func TestReplDirect(t *testing.T) {
	prompt, _ := script("(proc (a) -(a, 1) 1)")
	var out, errOut bytes.Buffer
	cfg := DefaultConfig()
	cfg.Evaluator = EvalDirect
	if err := repl(cfg, prompt, &out, &errOut, nil); err != nil {
		t.Fatal(err)
	}
	if out.String() != "0\nGoodby\n" || errOut.Len() != 0 {
		t.Fatalf("got %q and %q", out.String(), errOut.String())
	}
}
