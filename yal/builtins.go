//
// Copyright 2011-2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package yal

//
// Built-in primitives, dispatched by name the same way this
// language's earlier swatcl functionTable worked: a flat map from
// name to a func([]interface{}) style implementation, here
// func(*Value) (*Value, *Exception) over an already-evaluated proper
// argument list.
//

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var stdout = bufio.NewWriter(os.Stdout)
var stdin = bufio.NewReader(os.Stdin)

// builtins is the name -> implementation table.
var builtins = make(map[string]func(args *Value) (*Value, *Exception))

func init() {
	builtins["+"] = biAdd
	builtins["-"] = biSub
	builtins["*"] = biMul
	builtins["/"] = biDiv
	builtins["%"] = biMod
	builtins["="] = biEq
	builtins["!="] = biNeq
	builtins["<"] = biLt
	builtins["<="] = biLe
	builtins[">"] = biGt
	builtins[">="] = biGe
	builtins["cmp"] = biCmp
	builtins["pair"] = biPair
	builtins["left"] = biLeft
	builtins["right"] = biRight
	builtins["concat"] = biConcat
	builtins["number"] = biNumber
	builtins["str"] = biStr
	builtins["split"] = biSplit
	builtins["print"] = biPrint
	builtins["println"] = biPrintln
	builtins["input"] = biInput
	builtins["new"] = biNew
	builtins["apply"] = biApply
}

// argList checks that args is a proper list, returning its elements
// or a list-shape error naming who.
func argList(who string, args *Value) ([]*Value, *Exception) {
	items, tail := ListItems(args)
	if !IsNil(tail) {
		return nil, Raise("%s requires a proper argument list", who)
	}
	return items, nil
}

func numbers(who string, items []*Value) ([]float64, *Exception) {
	out := make([]float64, len(items))
	for i, v := range items {
		n, ok := AsNumber(v)
		if !ok {
			return nil, Raise("%s requires numbers", who)
		}
		out[i] = float64(n)
	}
	return out, nil
}

func biAdd(args *Value) (*Value, *Exception) {
	items, exc := argList("+", args)
	if exc != nil {
		return nil, exc
	}
	ns, exc := numbers("+", items)
	if exc != nil {
		return nil, exc
	}
	sum := 0.0
	for _, n := range ns {
		sum += n
	}
	return NewNumber(sum), nil
}

func biSub(args *Value) (*Value, *Exception) {
	items, exc := argList("-", args)
	if exc != nil {
		return nil, exc
	}
	ns, exc := numbers("-", items)
	if exc != nil {
		return nil, exc
	}
	if len(ns) == 0 {
		return nil, Raise("- requires at least one argument")
	}
	if len(ns) == 1 {
		return NewNumber(-ns[0]), nil
	}
	result := ns[0]
	for _, n := range ns[1:] {
		result -= n
	}
	return NewNumber(result), nil
}

func biMul(args *Value) (*Value, *Exception) {
	items, exc := argList("*", args)
	if exc != nil {
		return nil, exc
	}
	ns, exc := numbers("*", items)
	if exc != nil {
		return nil, exc
	}
	product := 1.0
	for _, n := range ns {
		product *= n
	}
	return NewNumber(product), nil
}

func biDiv(args *Value) (*Value, *Exception) {
	items, exc := argList("/", args)
	if exc != nil {
		return nil, exc
	}
	ns, exc := numbers("/", items)
	if exc != nil {
		return nil, exc
	}
	if len(ns) < 2 {
		return nil, Raise("/ requires at least two arguments")
	}
	result := ns[0]
	for _, n := range ns[1:] {
		result /= n
	}
	return NewNumber(result), nil
}

func biMod(args *Value) (*Value, *Exception) {
	items, exc := argList("%", args)
	if exc != nil {
		return nil, exc
	}
	if len(items) != 2 {
		return nil, Raise("%% requires exactly 2 arguments")
	}
	ns, exc := numbers("%", items)
	if exc != nil {
		return nil, exc
	}
	return NewNumber(float64(int64(ns[0]) % int64(ns[1]))), nil
}

func biEq(args *Value) (*Value, *Exception) {
	items, exc := argList("=", args)
	if exc != nil {
		return nil, exc
	}
	for i := 1; i < len(items); i++ {
		if !ValuesEqual(items[0], items[i]) {
			return NewNil(nil), nil
		}
	}
	return True(), nil
}

func biNeq(args *Value) (*Value, *Exception) {
	items, exc := argList("!=", args)
	if exc != nil {
		return nil, exc
	}
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			if ValuesEqual(items[i], items[j]) {
				return NewNil(nil), nil
			}
		}
	}
	return True(), nil
}

// compareChain walks items pairwise, checking ok(cmp(a,b)) for each
// adjacent pair; an uncomparable pair is an error.
func compareChain(who string, items []*Value, ok func(cmp int) bool) (*Value, *Exception) {
	for i := 0; i+1 < len(items); i++ {
		a, aok := AsNumber(items[i])
		b, bok := AsNumber(items[i+1])
		if aok && bok {
			if !ok(compareFloat(float64(a), float64(b))) {
				return NewNil(nil), nil
			}
			continue
		}
		sa, saok := AsStr(items[i])
		sb, sbok := AsStr(items[i+1])
		if saok && sbok {
			if !ok(strings.Compare(string(sa), string(sb))) {
				return NewNil(nil), nil
			}
			continue
		}
		return nil, Raise("%s cannot compare %s and %s", who, Stringify(items[i]), Stringify(items[i+1]))
	}
	return True(), nil
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func biLt(args *Value) (*Value, *Exception) {
	items, exc := argList("<", args)
	if exc != nil {
		return nil, exc
	}
	return compareChain("<", items, func(c int) bool { return c < 0 })
}

func biLe(args *Value) (*Value, *Exception) {
	items, exc := argList("<=", args)
	if exc != nil {
		return nil, exc
	}
	return compareChain("<=", items, func(c int) bool { return c <= 0 })
}

func biGt(args *Value) (*Value, *Exception) {
	items, exc := argList(">", args)
	if exc != nil {
		return nil, exc
	}
	return compareChain(">", items, func(c int) bool { return c > 0 })
}

func biGe(args *Value) (*Value, *Exception) {
	items, exc := argList(">=", args)
	if exc != nil {
		return nil, exc
	}
	return compareChain(">=", items, func(c int) bool { return c >= 0 })
}

func biCmp(args *Value) (*Value, *Exception) {
	items, exc := argList("cmp", args)
	if exc != nil {
		return nil, exc
	}
	if len(items) != 2 {
		return nil, Raise("cmp requires exactly 2 arguments")
	}
	a, aok := AsNumber(items[0])
	b, bok := AsNumber(items[1])
	if aok && bok {
		return NewNumber(float64(compareFloat(float64(a), float64(b)))), nil
	}
	sa, saok := AsStr(items[0])
	sb, sbok := AsStr(items[1])
	if saok && sbok {
		return NewNumber(float64(strings.Compare(string(sa), string(sb)))), nil
	}
	return nil, Raise("cmp cannot compare %s and %s", Stringify(items[0]), Stringify(items[1]))
}

func biPair(args *Value) (*Value, *Exception) {
	items, exc := argList("pair", args)
	if exc != nil {
		return nil, exc
	}
	if len(items) != 2 {
		return nil, Raise("pair requires exactly 2 arguments")
	}
	return NewPair(items[0], items[1]), nil
}

func biLeft(args *Value) (*Value, *Exception) {
	items, exc := argList("left", args)
	if exc != nil {
		return nil, exc
	}
	if len(items) != 1 {
		return nil, Raise("left requires exactly 1 argument")
	}
	p, ok := AsPair(items[0])
	if !ok {
		return nil, Raise("left requires a pair")
	}
	return p.Left, nil
}

func biRight(args *Value) (*Value, *Exception) {
	items, exc := argList("right", args)
	if exc != nil {
		return nil, exc
	}
	if len(items) != 1 {
		return nil, Raise("right requires exactly 1 argument")
	}
	p, ok := AsPair(items[0])
	if !ok {
		return nil, Raise("right requires a pair")
	}
	return p.Right, nil
}

func biConcat(args *Value) (*Value, *Exception) {
	items, exc := argList("concat", args)
	if exc != nil {
		return nil, exc
	}
	var sb strings.Builder
	for _, v := range items {
		sb.WriteString(Stringify(v))
	}
	return NewStr(sb.String()), nil
}

func biNumber(args *Value) (*Value, *Exception) {
	items, exc := argList("number", args)
	if exc != nil {
		return nil, exc
	}
	if len(items) != 1 {
		return nil, Raise("number requires exactly 1 argument")
	}
	v := items[0]
	if IsNil(v) {
		return NewNumber(0), nil
	}
	if n, ok := AsNumber(v); ok {
		return NewNumber(float64(n)), nil
	}
	if s, ok := AsStr(v); ok {
		f, err := strconv.ParseFloat(string(s), 64)
		if err != nil {
			return nil, Raise("number: %q is not a valid number", string(s))
		}
		return NewNumber(f), nil
	}
	return nil, Raise("number requires nil, a number, or a string")
}

func biStr(args *Value) (*Value, *Exception) {
	items, exc := argList("str", args)
	if exc != nil {
		return nil, exc
	}
	if len(items) != 1 {
		return nil, Raise("str requires exactly 1 argument")
	}
	return NewStr(Stringify(items[0])), nil
}

func biSplit(args *Value) (*Value, *Exception) {
	items, exc := argList("split", args)
	if exc != nil {
		return nil, exc
	}
	if len(items) < 1 || len(items) > 2 {
		return nil, Raise("split requires 1 or 2 arguments")
	}
	s, ok := AsStr(items[0])
	if !ok {
		return nil, Raise("split requires a string")
	}
	var parts []string
	if len(items) == 2 {
		sep, ok := AsStr(items[1])
		if !ok {
			return nil, Raise("split requires a string separator")
		}
		parts = strings.Split(string(s), string(sep))
	} else {
		parts = strings.Fields(string(s))
	}
	vals := make([]*Value, len(parts))
	for i, p := range parts {
		vals[i] = NewStr(p)
	}
	return NewList(vals...), nil
}

func biPrint(args *Value) (*Value, *Exception) {
	items, exc := argList("print", args)
	if exc != nil {
		return nil, exc
	}
	for _, v := range items {
		fmt.Fprint(stdout, Stringify(v))
	}
	stdout.Flush()
	return NewNil(nil), nil
}

func biPrintln(args *Value) (*Value, *Exception) {
	items, exc := argList("println", args)
	if exc != nil {
		return nil, exc
	}
	for _, v := range items {
		fmt.Fprintln(stdout, Stringify(v))
	}
	stdout.Flush()
	return NewNil(nil), nil
}

func biInput(args *Value) (*Value, *Exception) {
	items, exc := argList("input", args)
	if exc != nil {
		return nil, exc
	}
	if len(items) != 0 {
		return nil, Raise("input takes no arguments")
	}
	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return NewNil(nil), nil
	}
	return NewStr(strings.TrimRight(line, "\n")), nil
}

func biNew(args *Value) (*Value, *Exception) {
	items, exc := argList("new", args)
	if exc != nil {
		return nil, exc
	}
	if len(items) < 1 {
		return nil, Raise("new requires a record type")
	}
	decl, ok := AsStructType(items[0])
	if !ok {
		return nil, Raise("new requires a record type as its first argument")
	}
	fieldVals := items[1:]
	if len(fieldVals) != len(decl.Fields) {
		return nil, Raise("Arguments count error")
	}
	return &Value{Payload: &Struct{Type: decl, Data: NewList(fieldVals...)}}, nil
}

func biApply(args *Value) (*Value, *Exception) {
	items, exc := argList("apply", args)
	if exc != nil {
		return nil, exc
	}
	if len(items) != 2 {
		return nil, Raise("apply requires exactly 2 arguments")
	}
	closure, ok := AsClosure(items[0])
	if !ok {
		return nil, Raise("apply requires a closure as its first argument")
	}
	return callClosure(closure, items[1])
}
