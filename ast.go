package main

import (
	"fmt"
	"strconv"
	"sync"
)

//----------------------------------------------------------------------

// Symbol represents an identifier of PROC.
type Symbol string

// The mapping from string to *Symbol
var Symbols sync.Map

// Intern interns a name as a symbol.
func Intern(name string) *Symbol {
	newSym := Symbol(name)
	sym, _ := Symbols.LoadOrStore(name, &newSym)
	return sym.(*Symbol)
}

// Equal reports whether two symbols have the same name.
func (s *Symbol) Equal(t *Symbol) bool {
	return s == t || (s != nil && t != nil && *s == *t)
}

func (s *Symbol) String() string {
	return string(*s)
}

//----------------------------------------------------------------------

// Node is an expression of the abstract syntax tree.
// The set of variants is closed; see the types below.
type Node interface {
	fmt.Stringer
	node()
}

// ConstExp is a number literal.
type ConstExp struct {
	Num int64
}

// VarExp is a variable reference.
type VarExp struct {
	Var *Symbol
}

// ProcExp is proc (Var) Body.
type ProcExp struct {
	Var  *Symbol
	Body Node
}

// LetRecExp is letrec ProcName(ProcVar) = ProcBody in LetRecBody.
type LetRecExp struct {
	ProcName   *Symbol
	ProcVar    *Symbol
	ProcBody   Node
	LetRecBody Node
}

// ZeroExp is zero?(Exp1).
type ZeroExp struct {
	Exp1 Node
}

// IfExp is if Cond then Exp1 else Exp2.
type IfExp struct {
	Cond Node
	Exp1 Node
	Exp2 Node
}

// LetExp is let Var = Exp1 in Body.
type LetExp struct {
	Var  *Symbol
	Exp1 Node
	Body Node
}

// DiffExp is -(Exp1, Exp2).
type DiffExp struct {
	Exp1 Node
	Exp2 Node
}

// CallExp is (Rator Rand).
type CallExp struct {
	Rator Node
	Rand  Node
}

func (*ConstExp) node()  {}
func (*VarExp) node()    {}
func (*ProcExp) node()   {}
func (*LetRecExp) node() {}
func (*ZeroExp) node()   {}
func (*IfExp) node()     {}
func (*LetExp) node()    {}
func (*DiffExp) node()   {}
func (*CallExp) node()   {}

// Program is the root of a parsed source.
type Program struct {
	Exp Node
}

//----------------------------------------------------------------------

func NewConst(num int64) Node { return &ConstExp{num} }

func NewVar(v *Symbol) Node { return &VarExp{v} }

func NewProc(v *Symbol, body Node) Node { return &ProcExp{v, body} }

func NewLetRec(pname, pvar *Symbol, pbody, body Node) Node {
	return &LetRecExp{pname, pvar, pbody, body}
}

func NewZero(exp Node) Node { return &ZeroExp{exp} }

func NewIf(cond, exp1, exp2 Node) Node { return &IfExp{cond, exp1, exp2} }

func NewLet(v *Symbol, exp1, body Node) Node { return &LetExp{v, exp1, body} }

func NewDiff(exp1, exp2 Node) Node { return &DiffExp{exp1, exp2} }

func NewCall(rator, rand Node) Node { return &CallExp{rator, rand} }

func NewProgram(exp Node) *Program { return &Program{exp} }

//----------------------------------------------------------------------
// Each node renders back to concrete syntax that Parse accepts.

func (e *ConstExp) String() string { return strconv.FormatInt(e.Num, 10) }

func (e *VarExp) String() string { return e.Var.String() }

func (e *ProcExp) String() string {
	return "proc (" + e.Var.String() + ") " + e.Body.String()
}

func (e *LetRecExp) String() string {
	return "letrec " + e.ProcName.String() + "(" + e.ProcVar.String() + ") = " +
		e.ProcBody.String() + " in " + e.LetRecBody.String()
}

func (e *ZeroExp) String() string { return "zero?(" + e.Exp1.String() + ")" }

func (e *IfExp) String() string {
	return "if " + e.Cond.String() + " then " + e.Exp1.String() +
		" else " + e.Exp2.String()
}

func (e *LetExp) String() string {
	return "let " + e.Var.String() + " = " + e.Exp1.String() +
		" in " + e.Body.String()
}

func (e *DiffExp) String() string {
	return "-(" + e.Exp1.String() + ", " + e.Exp2.String() + ")"
}

func (e *CallExp) String() string {
	return "(" + e.Rator.String() + " " + e.Rand.String() + ")"
}

func (p *Program) String() string { return p.Exp.String() }

// kindOfNode names the variant of a node for diagnostics.
func kindOfNode(exp Node) string {
	switch exp.(type) {
	case *ConstExp:
		return "const"
	case *VarExp:
		return "var"
	case *ProcExp:
		return "proc"
	case *LetRecExp:
		return "letrec"
	case *ZeroExp:
		return "zero"
	case *IfExp:
		return "if"
	case *LetExp:
		return "let"
	case *DiffExp:
		return "diff"
	case *CallExp:
		return "call"
	}
	return fmt.Sprintf("%T", exp)
}
