package main

import (
	"strings"
)

// Cont is a continuation frame: what to do with the upcoming value.
// Each frame links to the continuation that encloses it; EndCont ends
// the chain.
type Cont interface {
	// Next returns the enclosing continuation, or nil for EndCont.
	Next() Cont
	String() string
	cont()
}

// EndCont finishes the computation.
type EndCont struct{}

// ZeroCont tests the value against 0.
type ZeroCont struct {
	K Cont
}

// LetCont binds the value of the right-hand side and evaluates Body.
type LetCont struct {
	Var  *Symbol
	Body Node
	Env  *Environment
	K    Cont
}

// LetBodyCont pops the binding made by LetCont once Body has a value.
type LetBodyCont struct {
	Env *Environment
	K   Cont
}

// LetRecCont pops the recursive binding once the letrec body has a value.
type LetRecCont struct {
	Env *Environment
	K   Cont
}

// IfCont chooses Exp1 or Exp2 by the value of the condition.
type IfCont struct {
	Exp1 Node
	Exp2 Node
	Env  *Environment
	K    Cont
}

// Diff1Cont holds the left operand's value and evaluates Exp2.
type Diff1Cont struct {
	Exp2 Node
	Env  *Environment
	K    Cont
}

// Diff2Cont subtracts the value from Val1.
type Diff2Cont struct {
	Val1 Value
	K    Cont
}

// RatorCont holds the operator's value and evaluates Rand.
type RatorCont struct {
	Rand Node
	Env  *Environment
	K    Cont
}

// RandCont applies Rator to the value.
type RandCont struct {
	Rator Value
	K     Cont
}

// ApplyProcCont pops the parameter binding once the procedure body has
// a value.
type ApplyProcCont struct {
	Env *Environment
	K   Cont
}

func (*EndCont) Next() Cont         { return nil }
func (k *ZeroCont) Next() Cont      { return k.K }
func (k *LetCont) Next() Cont       { return k.K }
func (k *LetBodyCont) Next() Cont   { return k.K }
func (k *LetRecCont) Next() Cont    { return k.K }
func (k *IfCont) Next() Cont        { return k.K }
func (k *Diff1Cont) Next() Cont     { return k.K }
func (k *Diff2Cont) Next() Cont     { return k.K }
func (k *RatorCont) Next() Cont     { return k.K }
func (k *RandCont) Next() Cont      { return k.K }
func (k *ApplyProcCont) Next() Cont { return k.K }

func (*EndCont) cont()       {}
func (*ZeroCont) cont()      {}
func (*LetCont) cont()       {}
func (*LetBodyCont) cont()   {}
func (*LetRecCont) cont()    {}
func (*IfCont) cont()        {}
func (*Diff1Cont) cont()     {}
func (*Diff2Cont) cont()     {}
func (*RatorCont) cont()     {}
func (*RandCont) cont()      {}
func (*ApplyProcCont) cont() {}

func (*EndCont) String() string     { return "End" }
func (*ZeroCont) String() string    { return "Zero" }
func (k *LetCont) String() string   { return "Let:" + k.Var.String() + ":" + k.Body.String() }
func (*LetBodyCont) String() string { return "LetBody" }
func (*LetRecCont) String() string  { return "LetRec" }
func (k *IfCont) String() string    { return "If:" + k.Exp1.String() + ":" + k.Exp2.String() }
func (k *Diff1Cont) String() string { return "Diff1:" + k.Exp2.String() }
func (k *Diff2Cont) String() string { return "Diff2:" + k.Val1.String() }
func (k *RatorCont) String() string { return "Rator:" + k.Rand.String() }
func (k *RandCont) String() string  { return "Rand:" + k.Rator.String() }

func (*ApplyProcCont) String() string { return "ApplyProc" }

// ContDepth returns the number of frames in a continuation, EndCont
// included.
func ContDepth(k Cont) int {
	n := 0
	for ; k != nil; k = k.Next() {
		n++
	}
	return n
}

// StringifyCont returns the frames of a continuation, innermost first.
func StringifyCont(k Cont) string {
	ss := make([]string, 0, 16)
	for ; k != nil; k = k.Next() {
		ss = append(ss, "<"+k.String()+">")
	}
	return "#<" + strings.Join(ss, "\n\t") + ">"
}
