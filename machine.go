package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Machine evaluates expressions in continuation-passing style.
// valueOfK and applyCont never call each other; each returns the next
// step as a bounce and run loops over the bounces, so the depth of the
// evaluated program does not grow the Go stack.
type Machine struct {
	// Out receives the completion notice of EndCont.
	Out io.Writer
	Log *slog.Logger

	debug  bool
	frames int // live environment extensions
	steps  int
}

// NewMachine returns a machine which writes its completion notice to out.
func NewMachine(out io.Writer, logger *slog.Logger) *Machine {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Machine{Out: out, Log: logger,
		debug: logger.Enabled(context.Background(), slog.LevelDebug)}
}

// Frames returns the number of environment extensions not yet popped.
func (m *Machine) Frames() int { return m.frames }

// Steps returns the number of bounces taken so far.
func (m *Machine) Steps() int { return m.steps }

// bounce is the next step of evaluation: either evaluate Exp in Env
// with K, or pass Val to K.  Done marks the final value.
type bounce struct {
	Eval bool
	Exp  Node
	Env  *Environment
	K    Cont
	Val  Value
	Done bool
}

func evalStep(exp Node, env *Environment, k Cont) bounce {
	return bounce{Eval: true, Exp: exp, Env: env, K: k}
}

func contStep(k Cont, val Value) bounce {
	return bounce{K: k, Val: val}
}

// ValueOfK evaluates an expression in an environment with a continuation.
func (m *Machine) ValueOfK(exp Node, env *Environment, k Cont) Value {
	return m.run(evalStep(exp, env, k))
}

// ApplyCont passes a value to a continuation.
func (m *Machine) ApplyCont(k Cont, val Value) Value {
	return m.run(contStep(k, val))
}

func (m *Machine) run(b bounce) Value {
	for !b.Done {
		m.steps++
		if b.Eval {
			b = m.valueOfK(b.Exp, b.Env, b.K)
		} else {
			b = m.applyCont(b.K, b.Val)
		}
	}
	return b.Val
}

func (m *Machine) push(k Cont) Cont {
	if !m.debug {
		return k
	}
	m.Log.Debug("push continuation",
		slog.String("frame", k.String()),
		slog.Int("depth", ContDepth(k)))
	return k
}

func (m *Machine) extend(env *Environment) *Environment {
	m.frames++
	if !m.debug {
		return env
	}
	m.Log.Debug("push environment frame",
		slog.String("var", env.Sym.String()),
		slog.Int("frames", m.frames))
	return env
}

func (m *Machine) pop(env *Environment) {
	env.Pop()
	m.frames--
	if !m.debug {
		return
	}
	m.Log.Debug("pop environment frame",
		slog.String("var", env.Sym.String()),
		slog.Int("frames", m.frames))
}

func (m *Machine) valueOfK(exp Node, env *Environment, k Cont) bounce {
	switch x := exp.(type) {
	case *ConstExp:
		return contStep(k, Int(x.Num))
	case *VarExp:
		return contStep(k, env.Lookup(x.Var).Copy())
	case *ProcExp:
		return contStep(k, &Procedure{x.Var, x.Body, env})
	case *LetRecExp:
		env = m.extend(env.ExtendRec(x.ProcName, x.ProcVar, x.ProcBody))
		return evalStep(x.LetRecBody, env, m.push(&LetRecCont{env, k}))
	case *ZeroExp:
		return evalStep(x.Exp1, env, m.push(&ZeroCont{k}))
	case *IfExp:
		return evalStep(x.Cond, env, m.push(&IfCont{x.Exp1, x.Exp2, env, k}))
	case *LetExp:
		return evalStep(x.Exp1, env, m.push(&LetCont{x.Var, x.Body, env, k}))
	case *DiffExp:
		return evalStep(x.Exp1, env, m.push(&Diff1Cont{x.Exp2, env, k}))
	case *CallExp:
		return evalStep(x.Rator, env, m.push(&RatorCont{x.Rand, env, k}))
	}
	raise(MalformedTree, kindOfNode(exp))
	return bounce{}
}

func (m *Machine) applyCont(k Cont, val Value) bounce {
	switch c := k.(type) {
	case *EndCont:
		fmt.Fprintln(m.Out, "End of computation.")
		if m.debug {
			m.Log.Debug("end of computation", slog.Int("steps", m.steps))
		}
		return bounce{Val: val, Done: true}
	case *ZeroCont:
		return contStep(c.K, Bool(AsInt(val) == 0))
	case *LetCont:
		env := m.extend(c.Env.Extend(c.Var, val))
		return evalStep(c.Body, env, m.push(&LetBodyCont{env, c.K}))
	case *LetBodyCont:
		m.pop(c.Env)
		return contStep(c.K, val)
	case *LetRecCont:
		m.pop(c.Env)
		return contStep(c.K, val)
	case *IfCont:
		if AsBool(val) {
			return evalStep(c.Exp1, c.Env, c.K)
		}
		return evalStep(c.Exp2, c.Env, c.K)
	case *Diff1Cont:
		return evalStep(c.Exp2, c.Env, m.push(&Diff2Cont{val, c.K}))
	case *Diff2Cont:
		return contStep(c.K, diff(AsInt(c.Val1), AsInt(val)))
	case *RatorCont:
		return evalStep(c.Rand, c.Env, m.push(&RandCont{val, c.K}))
	case *RandCont:
		return m.applyProcedureK(AsProc(c.Rator), val, c.K)
	case *ApplyProcCont:
		m.pop(c.Env)
		return contStep(c.K, val)
	}
	raise(MalformedContinuation, fmt.Sprintf("%T", k))
	return bounce{}
}

func (m *Machine) applyProcedureK(proc *Procedure, arg Value, k Cont) bounce {
	if m.debug {
		m.Log.Debug("apply procedure", slog.String("proc", proc.String()),
			slog.String("arg", arg.String()))
	}
	env := m.extend(proc.Env.Extend(proc.Var, arg.Copy()))
	return evalStep(proc.Body, env, m.push(&ApplyProcCont{env, k}))
}
