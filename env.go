package main

import (
	"fmt"
	"sync"
)

// EnvKind is the tag of an environment frame.
type EnvKind int

const (
	EmptyEnv EnvKind = iota
	ExtendEnv
	ExtendRecEnv
)

// Environment represents one frame of a persistent chain of bindings.
// An ExtendEnv frame binds Sym to Val; an ExtendRecEnv frame binds Sym
// to a procedure of ProcVar and ProcBody whose closure is built on first
// lookup and remembered in Val.
type Environment struct {
	kind     EnvKind
	Sym      *Symbol
	Val      Value
	ProcVar  *Symbol
	ProcBody Node
	Next     *Environment

	once   sync.Once
	popped bool
}

// EmptyEnvironment returns a new terminal frame.
func EmptyEnvironment() *Environment {
	return &Environment{kind: EmptyEnv}
}

// Extend returns a new frame binding sym to val over env.
// The frame takes ownership of val.
func (env *Environment) Extend(sym *Symbol, val Value) *Environment {
	return &Environment{kind: ExtendEnv, Sym: sym, Val: val, Next: env}
}

// ExtendRec returns a new frame binding pname to a recursive procedure.
func (env *Environment) ExtendRec(pname, pvar *Symbol, pbody Node) *Environment {
	return &Environment{kind: ExtendRecEnv, Sym: pname,
		ProcVar: pvar, ProcBody: pbody, Next: env}
}

// Kind returns the tag of the frame.
func (env *Environment) Kind() EnvKind {
	return env.kind
}

// Lookup searches the environment for a symbol, innermost frame first.
func (env *Environment) Lookup(key *Symbol) Value {
	for e := env; e != nil; e = e.Next {
		switch e.kind {
		case EmptyEnv:
			raise(UnboundVariable, key.String())
		case ExtendEnv:
			if e.Sym.Equal(key) {
				return e.Val
			}
		case ExtendRecEnv:
			if e.Sym.Equal(key) {
				return e.recProc()
			}
		default:
			panic(fmt.Sprintf("bad environment: %p", e))
		}
	}
	raise(UnboundVariable, key.String())
	return nil
}

// recProc returns the closure of a recursive frame, building it once.
// The closure's environment is the frame itself.
func (env *Environment) recProc() Value {
	env.once.Do(func() {
		env.Val = &Procedure{env.ProcVar, env.ProcBody, env}
	})
	return env.Val
}

// Pop releases the frame and returns its parent.
// Popping the empty frame yields nil.
func (env *Environment) Pop() *Environment {
	if env.kind == EmptyEnv {
		return nil
	}
	if env.popped {
		raise(DoublePop, env.Sym.String())
	}
	env.popped = true
	return env.Next
}

// Popped reports whether the frame has been released.
func (env *Environment) Popped() bool {
	return env.popped
}

// Depth returns the number of frames above the empty frame.
func (env *Environment) Depth() int {
	n := 0
	for e := env; e != nil && e.kind != EmptyEnv; e = e.Next {
		n++
	}
	return n
}

func (env *Environment) String() string {
	return fmt.Sprintf("#%p", env)
}
