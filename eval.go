package main

// ValueOf evaluates an expression in an environment by recursion in Go.
// It serves as the reference against which Machine is tested.
func ValueOf(exp Node, env *Environment) Value {
	switch x := exp.(type) {
	case *ConstExp:
		return Int(x.Num)
	case *VarExp:
		return env.Lookup(x.Var).Copy()
	case *ProcExp:
		return &Procedure{x.Var, x.Body, env}
	case *LetRecExp:
		env = env.ExtendRec(x.ProcName, x.ProcVar, x.ProcBody)
		val := ValueOf(x.LetRecBody, env)
		env.Pop()
		return val
	case *ZeroExp:
		return Bool(AsInt(ValueOf(x.Exp1, env)) == 0)
	case *IfExp:
		if AsBool(ValueOf(x.Cond, env)) {
			return ValueOf(x.Exp1, env)
		}
		return ValueOf(x.Exp2, env)
	case *LetExp:
		val1 := ValueOf(x.Exp1, env)
		env = env.Extend(x.Var, val1)
		val2 := ValueOf(x.Body, env)
		env.Pop()
		return val2
	case *DiffExp:
		val1 := ValueOf(x.Exp1, env)
		val2 := ValueOf(x.Exp2, env)
		return diff(AsInt(val1), AsInt(val2))
	case *CallExp:
		rator := ValueOf(x.Rator, env)
		rand := ValueOf(x.Rand, env)
		return ApplyProcedure(AsProc(rator), rand)
	}
	raise(MalformedTree, kindOfNode(exp))
	return nil
}

// ApplyProcedure binds the parameter of proc to a copy of arg in the
// environment of proc and evaluates the body there.
func ApplyProcedure(proc *Procedure, arg Value) Value {
	env := proc.Env.Extend(proc.Var, arg.Copy())
	val := ValueOf(proc.Body, env)
	env.Pop()
	return val
}
