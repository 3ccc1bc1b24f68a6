package main

import (
	"errors"
	"sync"
	"testing"
)

func TestLookupShadowing(t *testing.T) {
	x, y := Intern("x"), Intern("y")
	env := EmptyEnvironment().Extend(x, Int(1)).Extend(y, Int(2)).Extend(x, Int(3))
	if v := env.Lookup(x); v != Int(3) {
		t.Fatalf("x: expected 3, got %v", v)
	}
	if v := env.Lookup(y); v != Int(2) {
		t.Fatalf("y: expected 2, got %v", v)
	}
	if env.Depth() != 3 {
		t.Fatalf("expected depth 3, got %d", env.Depth())
	}
}

func TestLookupComparesNames(t *testing.T) {
	s1, s2 := Symbol("z"), Symbol("z")
	env := EmptyEnvironment().Extend(&s1, Bool(true))
	if v := env.Lookup(&s2); v != Bool(true) {
		t.Fatalf("expected #t, got %v", v)
	}
}

func TestLookupUnbound(t *testing.T) {
	env := EmptyEnvironment().Extend(Intern("a"), Int(1))
	_, err := Safely(func() Value { return env.Lookup(Intern("b")) })
	var e *EvalError
	if !errors.As(err, &e) || e.Kind != UnboundVariable || e.Name != "b" {
		t.Fatalf("expected unbound b, got %v", err)
	}
}

func TestExtendPopIsLIFO(t *testing.T) {
	e := EmptyEnvironment()
	ext := e.Extend(Intern("v"), Int(42))
	if ext.Kind() != ExtendEnv {
		t.Fatalf("expected an ExtendEnv frame, got %v", ext.Kind())
	}
	if parent := ext.Pop(); parent != e {
		t.Fatalf("pop(extend(s, v, e)) is not e")
	}
	if !ext.Popped() {
		t.Fatalf("popped frame not released")
	}
	_, err := Safely(func() Value { ext.Pop(); return nil })
	if !errors.Is(err, &EvalError{Kind: DoublePop}) {
		t.Fatalf("expected double pop, got %v", err)
	}
	if e.Pop() != nil {
		t.Fatalf("popping the empty frame yields a frame")
	}
	if e.Pop() != nil {
		t.Fatalf("popping the empty frame twice yields a frame")
	}
}

func recursiveFrame() (*Environment, *Symbol) {
	f, n := Intern("f"), Intern("n")
	body := NewCall(NewVar(f), NewVar(n))
	return EmptyEnvironment().ExtendRec(f, n, body), f
}

func TestRecursiveBindingIsMemoized(t *testing.T) {
	env, f := recursiveFrame()
	if env.Kind() != ExtendRecEnv {
		t.Fatalf("expected an ExtendRecEnv frame, got %v", env.Kind())
	}
	v1 := env.Lookup(f)
	v2 := env.Extend(Intern("x"), Int(0)).Lookup(f)
	if v1 != v2 {
		t.Fatalf("lookups of one binding returned different closures")
	}
	p := AsProc(v1)
	if p.Env != env {
		t.Fatalf("closure's environment is not its recursive frame")
	}
	if !p.Var.Equal(Intern("n")) {
		t.Fatalf("expected parameter n, got %v", p.Var)
	}

	other, _ := recursiveFrame()
	q := AsProc(other.Lookup(f))
	if q == p || q.Env == p.Env {
		t.Fatalf("two recursive bindings share a closure")
	}
}

func TestRecursiveBindingConcurrentLookup(t *testing.T) {
	env, f := recursiveFrame()
	const n = 16
	results := make([]Value, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = env.Lookup(f)
		}(i)
	}
	wg.Wait()
	for i := 1; i < n; i++ {
		if results[i] != results[0] {
			t.Fatalf("lookup %d returned a different closure", i)
		}
	}
}

func TestVarCopiesRecursiveClosure(t *testing.T) {
	env, f := recursiveFrame()
	memo := AsProc(env.Lookup(f))
	got := AsProc(ValueOf(NewVar(f), env))
	if got == memo {
		t.Fatalf("variable reference returned the memoized closure itself")
	}
	if got.Env != memo.Env || got.Body != memo.Body {
		t.Fatalf("copy does not share body and environment")
	}
}

func TestClosureSurvivesPop(t *testing.T) {
	x, y := Intern("x"), Intern("y")
	env := EmptyEnvironment().Extend(x, Int(200))
	proc := AsProc(ValueOf(NewProc(y, NewDiff(NewVar(y), NewVar(x))), env))
	env.Pop()
	if v := ApplyProcedure(proc, Int(1)); v != Int(-199) {
		t.Fatalf("expected -199, got %v", v)
	}
}
