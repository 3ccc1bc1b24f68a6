package main

import (
	"math/big"
	"strconv"

	"github.com/nukata/goarith"
)

// Kind is the tag of an expressed value.
type Kind int

const (
	NumVal Kind = iota
	BoolVal
	ProcVal
)

var kindStr = [...]string{"number", "boolean", "procedure"}

func (k Kind) String() string {
	if int(k) < len(kindStr) {
		return kindStr[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is an expressed value: Int, Bool or *Procedure.
type Value interface {
	Kind() Kind
	// Copy returns a value that can be owned independently of the receiver.
	Copy() Value
	String() string
}

// Int is a number value.
type Int int64

// Bool is a boolean value.
type Bool bool

// Procedure represents a closure: a parameter and a body with the
// environment of its definition.  Body is shared with the tree.
type Procedure struct {
	Var  *Symbol
	Body Node
	Env  *Environment
}

func (Int) Kind() Kind        { return NumVal }
func (Bool) Kind() Kind       { return BoolVal }
func (*Procedure) Kind() Kind { return ProcVal }
func (i Int) Copy() Value     { return i }
func (b Bool) Copy() Value    { return b }
func (i Int) String() string  { return strconv.FormatInt(int64(i), 10) }

func (p *Procedure) Copy() Value {
	return &Procedure{p.Var, p.Body, p.Env}
}

func (b Bool) String() string {
	if b {
		return "#t"
	}
	return "#f"
}

func (p *Procedure) String() string {
	return "(procedure (" + p.Var.String() + ") ...)"
}

//----------------------------------------------------------------------

// AsBool returns the payload of a boolean value.
func AsBool(v Value) bool {
	if b, ok := v.(Bool); ok {
		return bool(b)
	}
	raise(TypeMismatch, BoolVal.String())
	return false
}

// AsInt returns the payload of a number value.
func AsInt(v Value) int64 {
	if i, ok := v.(Int); ok {
		return int64(i)
	}
	raise(TypeMismatch, NumVal.String())
	return 0
}

// AsProc returns the closure of a procedure value.
func AsProc(v Value) *Procedure {
	if p, ok := v.(*Procedure); ok && p != nil {
		return p
	}
	raise(TypeMismatch, ProcVal.String())
	return nil
}

// diff returns x - y, checking the result against the exact
// difference computed in goarith's numeric tower.
func diff(x, y int64) Int {
	d := x - y
	exact := goarith.AsNumber(big.NewInt(x)).Sub(goarith.AsNumber(big.NewInt(y)))
	if exact.Cmp(goarith.AsNumber(big.NewInt(d))) != 0 {
		raise(ArithmeticOverflow, "-("+strconv.FormatInt(x, 10)+", "+
			strconv.FormatInt(y, 10)+")")
	}
	return Int(d)
}
