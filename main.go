// A little PROC interpreter in Go: the language of procedures and
// letrec, evaluated in continuation-passing style.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// ValueOfProgram evaluates a program with the continuation-passing
// evaluator in the empty environment and prints its value to out.
// The machine's completion notice precedes the value.
func ValueOfProgram(prgm *Program, out io.Writer, m *Machine) error {
	env := EmptyEnvironment()
	val, err := Safely(func() Value {
		return m.ValueOfK(prgm.Exp, env, &EndCont{})
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, val)
	for env != nil {
		env = env.Pop()
	}
	return nil
}

// valueOfProgramDirect is ValueOfProgram with the direct evaluator.
func valueOfProgramDirect(prgm *Program, out io.Writer) error {
	val, err := Safely(func() Value {
		return ValueOf(prgm.Exp, EmptyEnvironment())
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, val)
	return nil
}

// Run evaluates a program as configured, writing to out.
func Run(cfg *Config, prgm *Program, out io.Writer, logger *slog.Logger) error {
	if cfg.Evaluator == EvalDirect {
		return valueOfProgramDirect(prgm, out)
	}
	return ValueOfProgram(prgm, out, NewMachine(out, logger))
}

// newLoggerTo returns a logger writing text records to w; trace enables
// the debug records of the machine.
func newLoggerTo(w io.Writer, trace bool) *slog.Logger {
	level := slog.LevelInfo
	if trace {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Load evaluates the program of a file.
func Load(cfg *Config, fileName string, logger *slog.Logger) error {
	prgm, err := ParseFile(fileName)
	if err != nil {
		return err
	}
	return Run(cfg, prgm, os.Stdout, logger)
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [flags] [file.proc [-]]\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", "", "YAML configuration `file`")
	evaluator := flag.String("eval", "", "evaluator: cps or direct")
	trace := flag.Bool("trace", false, "log continuation and environment frames")
	flag.Usage = usage
	flag.Parse()

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = LoadConfig(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if *evaluator != "" {
		cfg.Evaluator = *evaluator
		if err := cfg.validate(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if *trace {
		cfg.Trace = true
	}
	logger := newLoggerTo(os.Stderr, cfg.Trace)

	if flag.NArg() >= 1 {
		if err := Load(cfg, flag.Arg(0), logger); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if flag.NArg() < 2 || flag.Arg(1) != "-" {
			return
		}
	}
	if err := ReadEvalPrintLoop(cfg, logger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
