//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package yal

//
// Tree-walking evaluator. Special forms and built-ins are both
// dispatch tables keyed by symbol name (see specialforms.go and
// builtins.go), the same shape as this language's earlier swatcl
// functionTable/commandTable: special forms are simply not first-class
// data, so there is no reason to unify them with Closure.
//

// specialForm is a special form's implementation: given the
// unevaluated argument list, the call scope, the call's ScopeState,
// and the call position, produce a result or an Exception.
type specialForm struct {
	maxState ScopeState
	fn       func(scope *Scope, state ScopeState, args *Value, pos *Position) (*Value, *Exception)
}

// specialForms is the name -> implementation table, populated in
// specialforms.go's init.
var specialForms = make(map[Symbol]*specialForm)

// NewGlobalScope constructs the top-level scope: every built-in bound
// under its name, plus nil and true.
func NewGlobalScope() *Scope {
	g := NewScope(nil)
	for name, fn := range builtins {
		fn := fn
		g.Define(name, &Value{Payload: &Closure{Name: name, Builtin: fn}})
	}
	g.Define("nil", NewNil(nil))
	g.Define("true", True())
	return g
}

// Interpret parses and evaluates every top-level expression in input
// against a freshly constructed global scope, stopping at the first
// error of either kind. It mirrors this language's earlier top-level
// test helper, returning the value of the last top-level expression.
func Interpret(input string) (*Value, error) {
	forms, lerr := Parse(input)
	if lerr != nil {
		return nil, lerr
	}
	scope := NewGlobalScope()
	var result *Value = NewNil(nil)
	for _, form := range forms {
		var exc *Exception
		result, exc = Eval(scope, ScopeGlobal, form)
		if exc != nil {
			return nil, exc
		}
	}
	return result, nil
}

// Eval evaluates v in scope under the given ScopeState, per the
// dispatch described atop this file.
func Eval(scope *Scope, state ScopeState, v *Value) (*Value, *Exception) {
	if IsNil(v) {
		return v, nil
	}
	switch p := v.Payload.(type) {
	case Number, Str, *Closure, *StructType, *Struct:
		return v, nil
	case Symbol:
		val, exc := scope.Lookup(string(p))
		if exc != nil {
			return nil, exc.Push(v.Pos)
		}
		return val, nil
	case *Quoted:
		return evalQuoted(scope, p, v.Pos)
	case *Pair:
		return evalPair(scope, state, p, v.Pos)
	default:
		return v, nil
	}
}

// evalQuoted implements the language's quasi-quotation: a quoted Pair
// is rebuilt element-wise, under Expression state; anything else
// quoted is an error.
func evalQuoted(scope *Scope, q *Quoted, pos *Position) (*Value, *Exception) {
	pair, ok := AsPair(q.Inner)
	if !ok {
		return nil, Raise("Only pair could be quoted").Push(pos)
	}
	rebuilt, exc := evalListShape(scope, ScopeExpression, pair)
	if exc != nil {
		return nil, exc.Push(pos)
	}
	return rebuilt, nil
}

// evalListShape evaluates every element of a (possibly improper) Pair
// chain, preserving its shape: a terminal non-Nil, non-Pair tail is
// itself evaluated rather than treated as an element.
func evalListShape(scope *Scope, state ScopeState, p *Pair) (*Value, *Exception) {
	left, exc := Eval(scope, state, p.Left)
	if exc != nil {
		return nil, exc
	}
	if IsNil(p.Right) {
		return NewPair(left, NewNil(nil)), nil
	}
	if rp, ok := AsPair(p.Right); ok {
		right, exc := evalListShape(scope, state, rp)
		if exc != nil {
			return nil, exc
		}
		return NewPair(left, right), nil
	}
	right, exc := Eval(scope, state, p.Right)
	if exc != nil {
		return nil, exc
	}
	return NewPair(left, right), nil
}

// evalPair implements call dispatch on Pair{left, right}.
func evalPair(scope *Scope, state ScopeState, p *Pair, pos *Position) (*Value, *Exception) {
	if sym, ok := AsSymbol(p.Left); ok {
		if sf, ok := specialForms[sym]; ok {
			if !state.allowedAt(sf.maxState) {
				return nil, Raise("%s is allowed for %s scope but %s scope is given",
					sym, sf.maxState, state).Push(pos)
			}
			val, exc := sf.fn(scope, state, p.Right, pos)
			if exc != nil {
				return nil, exc.Push(pos)
			}
			return val, nil
		}
	}

	fn, exc := Eval(scope, ScopeExpression, p.Left)
	if exc != nil {
		return nil, exc.Push(pos)
	}
	var evaledArgs *Value
	if IsNil(p.Right) {
		evaledArgs = NewNil(nil)
	} else if rp, ok := AsPair(p.Right); ok {
		evaledArgs, exc = evalListShape(scope, ScopeExpression, rp)
	} else {
		evaledArgs, exc = Eval(scope, ScopeExpression, p.Right)
	}
	if exc != nil {
		return nil, exc.Push(pos)
	}

	closure, ok := AsClosure(fn)
	if !ok {
		return nil, Raise("%s is not a function or special form", Stringify(fn)).Push(pos)
	}
	val, exc := callClosure(closure, evaledArgs)
	if exc != nil {
		return nil, exc.Push(pos)
	}
	return val, nil
}

// callClosure invokes a Closure, built-in or user-defined, on an
// already-evaluated proper argument list.
func callClosure(c *Closure, args *Value) (*Value, *Exception) {
	if c.Builtin != nil {
		return c.Builtin(args)
	}
	callScope := NewScope(c.Env)
	if exc := bindParams(callScope, c.Params, args); exc != nil {
		return nil, exc
	}
	return Eval(callScope, ScopeLocal, c.Body)
}

// bindParams binds the proper or improper Params list against the
// evaluated args, per the closure arity rules.
func bindParams(scope *Scope, params *Value, args *Value) *Exception {
	items, tail := ListItems(params)
	argItems, argTail := ListItems(args)

	if tailSym, ok := AsSymbol(tail); ok {
		if len(argItems) < len(items) {
			return Raise("Arguments count error")
		}
		for i, name := range items {
			sym, _ := AsSymbol(name)
			scope.Define(string(sym), argItems[i])
		}
		rest := NewList(argItems[len(items):]...)
		if !IsNil(argTail) {
			rest = NewImproperList(argTail, argItems[len(items):]...)
		}
		scope.Define(string(tailSym), rest)
		return nil
	}

	if len(argItems) != len(items) || !IsNil(argTail) {
		return Raise("Arguments count error")
	}
	for i, name := range items {
		sym, _ := AsSymbol(name)
		scope.Define(string(sym), argItems[i])
	}
	return nil
}
