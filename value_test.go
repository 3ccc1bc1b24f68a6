package main

import (
	"errors"
	"testing"
)

func TestCopyIsIndependent(t *testing.T) {
	a := Int(5)
	b := a.Copy()
	a = 6
	if b != Int(5) || a != Int(6) {
		t.Fatalf("copy changed with its source: %v %v", a, b)
	}

	t1 := Bool(true)
	t2 := t1.Copy()
	t1 = false
	if t2 != Bool(true) {
		t.Fatalf("copy changed with its source: %v", t2)
	}
}

func TestCopyProcedureSharesEnvironment(t *testing.T) {
	env := EmptyEnvironment().Extend(Intern("k"), Int(1))
	body := NewVar(Intern("k"))
	p := &Procedure{Intern("u"), body, env}
	q := AsProc(p.Copy())
	if q == p {
		t.Fatalf("copy of a procedure is the same wrapper")
	}
	if q.Env != env || q.Body != body || q.Var != p.Var {
		t.Fatalf("copy of a procedure does not share its parts")
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		val      Value
		expected string
	}{
		{Int(0), "0"},
		{Int(-12), "-12"},
		{Bool(true), "#t"},
		{Bool(false), "#f"},
		{&Procedure{Intern("x"), NewVar(Intern("x")), EmptyEnvironment()}, "(procedure (x) ...)"},
	}
	for _, tt := range tests {
		if s := tt.val.String(); s != tt.expected {
			t.Fatalf("expected %q, got %q", tt.expected, s)
		}
	}
}

func TestCoercions(t *testing.T) {
	proc := &Procedure{Intern("x"), NewVar(Intern("x")), EmptyEnvironment()}
	if AsInt(Int(7)) != 7 || !AsBool(Bool(true)) || AsProc(proc) != proc {
		t.Fatalf("coercion of a matching value failed")
	}

	tests := []struct {
		f        func() Value
		expected string
	}{
		{func() Value { AsInt(Bool(true)); return nil }, "number"},
		{func() Value { AsBool(Int(0)); return nil }, "boolean"},
		{func() Value { AsProc(Int(1)); return nil }, "procedure"},
		{func() Value { AsProc(nil); return nil }, "procedure"},
	}
	for _, tt := range tests {
		_, err := Safely(tt.f)
		want := &EvalError{Kind: TypeMismatch, Name: tt.expected}
		if !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	}
}

func TestSafelyPassesForeignPanics(t *testing.T) {
	defer func() {
		if r := recover(); r != "boom" {
			t.Fatalf("expected the panic to propagate, got %v", r)
		}
	}()
	Safely(func() Value { panic("boom") })
}
