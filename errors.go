package main

import (
	"fmt"
)

// ErrorKind classifies the fatal conditions of evaluation.
type ErrorKind int

const (
	UnboundVariable ErrorKind = iota
	TypeMismatch
	MalformedTree
	MalformedContinuation
	ArithmeticOverflow
	DoublePop
)

var errorKindStr = [...]string{
	"UnboundVariable", "TypeMismatch", "MalformedTree",
	"MalformedContinuation", "ArithmeticOverflow", "DoublePop",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindStr) {
		return errorKindStr[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// EvalError is a fatal evaluation error.
// Name is the offending identifier or the expected/unknown kind.
type EvalError struct {
	Kind ErrorKind
	Name string
}

func (e *EvalError) Error() string {
	switch e.Kind {
	case UnboundVariable:
		return "no binding for " + e.Name
	case TypeMismatch:
		return "not a valid exp val of type " + e.Name + "!"
	case MalformedTree:
		return "unknown type of expression: " + e.Name
	case MalformedContinuation:
		return "unknown type of continuation: " + e.Name
	case ArithmeticOverflow:
		return "integer overflow in " + e.Name
	case DoublePop:
		return "environment frame popped twice: " + e.Name
	}
	return e.Kind.String() + ": " + e.Name
}

// Is matches another *EvalError of the same kind, so that
// errors.Is(err, &EvalError{Kind: TypeMismatch}) works for any name.
func (e *EvalError) Is(target error) bool {
	t, ok := target.(*EvalError)
	return ok && t.Kind == e.Kind && (t.Name == "" || t.Name == e.Name)
}

func raise(kind ErrorKind, name string) {
	panic(&EvalError{kind, name})
}

// Safely calls f and returns its value, or the *EvalError it raised.
// Panics of other types are not ours and propagate.
func Safely(f func() Value) (result Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(*EvalError); ok {
				result, err = nil, e
			} else {
				panic(r)
			}
		}
	}()
	return f(), nil
}
