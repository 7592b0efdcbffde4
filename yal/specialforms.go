//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package yal

// init populates the specialForms dispatch table. Special forms
// receive the unevaluated argument list and decide for themselves
// which parts, if any, to evaluate.
func init() {
	specialForms["let"] = &specialForm{ScopeLocal, sfLet}
	specialForms["def"] = &specialForm{ScopeLocal, sfDef}
	specialForms["lambda"] = &specialForm{ScopeExpression, sfLambda}
	specialForms["do"] = &specialForm{ScopeExpression, sfDo}
	specialForms["if"] = &specialForm{ScopeExpression, sfIf}
	specialForms["and"] = &specialForm{ScopeExpression, sfAnd}
	specialForms["or"] = &specialForm{ScopeExpression, sfOr}
	specialForms["struct"] = &specialForm{ScopeGlobal, sfStruct}
	specialForms["::"] = &specialForm{ScopeExpression, sfField}
}

// sfLet implements (let NAME EXPR).
func sfLet(scope *Scope, state ScopeState, args *Value, pos *Position) (*Value, *Exception) {
	items, _ := ListItems(args)
	if len(items) != 2 {
		return nil, Raise("let requires exactly 2 arguments")
	}
	name, ok := AsSymbol(items[0])
	if !ok {
		return nil, Raise("let requires a symbol name")
	}
	val, exc := Eval(scope, ScopeExpression, items[1])
	if exc != nil {
		return nil, exc
	}
	if exc := scope.Define(string(name), val); exc != nil {
		return nil, exc
	}
	return NewNil(nil), nil
}

// sfDef implements (def (NAME . PARAMS) BODY).
func sfDef(scope *Scope, state ScopeState, args *Value, pos *Position) (*Value, *Exception) {
	items, _ := ListItems(args)
	if len(items) < 2 {
		return nil, Raise("def requires a name/params form and a body")
	}
	header, ok := AsPair(items[0])
	if !ok {
		return nil, Raise("def requires (NAME . PARAMS) as its first argument")
	}
	name, ok := AsSymbol(header.Left)
	if !ok {
		return nil, Raise("def requires a symbol name")
	}
	closure := &Value{Payload: &Closure{
		Name:   string(name),
		Params: header.Right,
		Body:   bodyOf(items[1:]),
		Env:    scope,
	}}
	if exc := scope.Define(string(name), closure); exc != nil {
		return nil, exc
	}
	return NewNil(nil), nil
}

// sfLambda implements (lambda PARAMS BODY): like def without a name.
func sfLambda(scope *Scope, state ScopeState, args *Value, pos *Position) (*Value, *Exception) {
	items, _ := ListItems(args)
	if len(items) < 2 {
		return nil, Raise("lambda requires a params list and a body")
	}
	closure := &Value{Payload: &Closure{
		Params: items[0],
		Body:   bodyOf(items[1:]),
		Env:    scope,
	}}
	return closure, nil
}

// bodyOf wraps multiple body expressions in an implicit do; a single
// expression is used directly.
func bodyOf(exprs []*Value) *Value {
	if len(exprs) == 1 {
		return exprs[0]
	}
	doSym := &Value{Payload: Symbol("do")}
	return NewPair(doSym, NewList(exprs...))
}

// sfDo implements (do E1 E2 ... En): sequential evaluation in a fresh
// Local scope, returning the last value. An empty body is an error.
func sfDo(scope *Scope, state ScopeState, args *Value, pos *Position) (*Value, *Exception) {
	items, _ := ListItems(args)
	if len(items) == 0 {
		return nil, Raise("do requires at least one expression")
	}
	inner := NewScope(scope)
	var result *Value
	for _, item := range items {
		var exc *Exception
		result, exc = Eval(inner, ScopeLocal, item)
		if exc != nil {
			return nil, exc
		}
	}
	return result, nil
}

// sfIf implements (if C T E).
func sfIf(scope *Scope, state ScopeState, args *Value, pos *Position) (*Value, *Exception) {
	items, _ := ListItems(args)
	if len(items) != 3 {
		return nil, Raise("if requires exactly 3 arguments")
	}
	cond, exc := Eval(scope, ScopeExpression, items[0])
	if exc != nil {
		return nil, exc
	}
	if IsTruthy(cond) {
		return Eval(scope, ScopeExpression, items[1])
	}
	return Eval(scope, ScopeExpression, items[2])
}

// sfAnd implements short-circuiting and.
func sfAnd(scope *Scope, state ScopeState, args *Value, pos *Position) (*Value, *Exception) {
	items, _ := ListItems(args)
	for _, item := range items {
		v, exc := Eval(scope, ScopeExpression, item)
		if exc != nil {
			return nil, exc
		}
		if !IsTruthy(v) {
			return NewNil(nil), nil
		}
	}
	return True(), nil
}

// sfOr implements short-circuiting or.
func sfOr(scope *Scope, state ScopeState, args *Value, pos *Position) (*Value, *Exception) {
	items, _ := ListItems(args)
	for _, item := range items {
		v, exc := Eval(scope, ScopeExpression, item)
		if exc != nil {
			return nil, exc
		}
		if IsTruthy(v) {
			return True(), nil
		}
	}
	return NewNil(nil), nil
}

// sfStruct implements (struct NAME (F1 F2 ...)).
func sfStruct(scope *Scope, state ScopeState, args *Value, pos *Position) (*Value, *Exception) {
	items, _ := ListItems(args)
	if len(items) != 2 {
		return nil, Raise("struct requires a name and a field list")
	}
	name, ok := AsSymbol(items[0])
	if !ok {
		return nil, Raise("struct requires a symbol name")
	}
	fieldValues, _ := ListItems(items[1])
	fields := make([]string, len(fieldValues))
	for i, fv := range fieldValues {
		sym, ok := AsSymbol(fv)
		if !ok {
			return nil, Raise("struct fields must be symbols")
		}
		fields[i] = string(sym)
	}
	decl := &Value{Payload: &StructType{Name: string(name), Fields: fields}}
	if exc := scope.Define(string(name), decl); exc != nil {
		return nil, exc
	}
	return NewNil(nil), nil
}

// sfField implements (:: EXPR FIELD).
func sfField(scope *Scope, state ScopeState, args *Value, pos *Position) (*Value, *Exception) {
	items, _ := ListItems(args)
	if len(items) != 2 {
		return nil, Raise(":: requires exactly 2 arguments")
	}
	val, exc := Eval(scope, ScopeExpression, items[0])
	if exc != nil {
		return nil, exc
	}
	strct, ok := AsStruct(val)
	if !ok {
		return nil, Raise("%s is not a struct", Stringify(val))
	}
	field, ok := AsSymbol(items[1])
	if !ok {
		return nil, Raise(":: requires a symbol field name")
	}
	fieldItems, _ := ListItems(strct.Data)
	for i, f := range strct.Type.Fields {
		if f == string(field) {
			return fieldItems[i], nil
		}
	}
	return nil, Raise("%s is not found", field)
}
