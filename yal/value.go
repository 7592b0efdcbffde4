//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package yal implements the lexer, parser, and tree-walking evaluator
// for a small s-expression language in the Lisp tradition.
package yal

import (
	"bytes"
	"fmt"
	"strconv"
)

// Position marks a (line, column) pair in the original source text.
// Both fields are 1-indexed. A nil *Position means the Value carrying
// it was constructed at runtime rather than parsed from source.
type Position struct {
	Line int
	Col  int
}

func (p *Position) String() string {
	if p == nil {
		return "?:?"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Value is the single runtime datum of the language: a tagged payload
// plus an optional source position. Values are passed around by
// pointer; sharing a *Value between two parents is how the language
// achieves structural sharing without copying.
type Value struct {
	Payload interface{}
	Pos     *Position
}

// The payload of a Value is one of the following eight types, or nil
// for the Nil/false value:
//
//	nil        -- Nil
//	Number     -- 64-bit float
//	Str        -- immutable text
//	Symbol     -- identifier
//	*Quoted    -- a value that evaluates to its inner payload
//	*Pair      -- the single cons cell
//	*Closure   -- callable, built-in or user-defined
//	*StructType -- record schema
//	*Struct    -- record instance
type (
	Number float64
	Str    string
	Symbol string
)

// Quoted wraps a Value that the evaluator reassembles element-wise
// rather than simply returning, implementing the language's
// quasi-quotation (see Eval).
type Quoted struct {
	Inner *Value
}

// Pair is the single cons cell of the language. Proper lists end with
// a Nil-payload Value in Right; improper lists end with anything else.
type Pair struct {
	Left  *Value
	Right *Value
}

// Closure is a callable Value. A Closure is either a built-in,
// identified by a non-nil Builtin func, or a user-defined function
// with Params/Body/Env set and Builtin nil.
type Closure struct {
	Name    string
	Params  *Value // proper or improper list of Symbol, or a single Symbol
	Body    *Value
	Env     *Scope
	Builtin func(args *Value) (*Value, *Exception)
}

// StructType is a record schema: a name plus an ordered list of field
// names. StructTypes are created by the struct special form at global
// scope and are immutable once built.
type StructType struct {
	Name   string
	Fields []string
}

// Struct is a record instance: a shared StructType plus a proper list
// of field values whose length equals len(Type.Fields).
type Struct struct {
	Type *StructType
	Data *Value
}

// NewNil constructs the empty-list/false Value at the given position.
// pos may be nil for a runtime-constructed Nil.
func NewNil(pos *Position) *Value {
	return &Value{Pos: pos}
}

// NewNumber constructs a Number Value with no source position.
func NewNumber(n float64) *Value {
	return &Value{Payload: Number(n)}
}

// NewStr constructs a Str Value with no source position.
func NewStr(s string) *Value {
	return &Value{Payload: Str(s)}
}

// NewSymbol constructs a Symbol Value with no source position.
func NewSymbol(s string) *Value {
	return &Value{Payload: Symbol(s)}
}

// NewPair constructs a Pair Value with no source position.
func NewPair(left, right *Value) *Value {
	return &Value{Payload: &Pair{Left: left, Right: right}}
}

// NewQuoted constructs a Quoted Value with no source position.
func NewQuoted(inner *Value) *Value {
	return &Value{Payload: &Quoted{Inner: inner}}
}

// True is the canonical truth value bound to the global name "true".
func True() *Value {
	return NewNumber(1.0)
}

// IsNil reports whether v's payload is the Nil variant.
func IsNil(v *Value) bool {
	return v == nil || v.Payload == nil
}

// IsTruthy reports whether v counts as true in a conditional context.
// Every value is truthy except Nil.
func IsTruthy(v *Value) bool {
	return !IsNil(v)
}

// AsPair returns the Pair payload of v, or ok=false if v is not a Pair.
func AsPair(v *Value) (*Pair, bool) {
	if v == nil {
		return nil, false
	}
	p, ok := v.Payload.(*Pair)
	return p, ok
}

// AsSymbol returns the Symbol payload of v, or ok=false if v is not a Symbol.
func AsSymbol(v *Value) (Symbol, bool) {
	if v == nil {
		return "", false
	}
	s, ok := v.Payload.(Symbol)
	return s, ok
}

// AsNumber returns the Number payload of v, or ok=false if v is not a Number.
func AsNumber(v *Value) (Number, bool) {
	if v == nil {
		return 0, false
	}
	n, ok := v.Payload.(Number)
	return n, ok
}

// AsStr returns the Str payload of v, or ok=false if v is not a Str.
func AsStr(v *Value) (Str, bool) {
	if v == nil {
		return "", false
	}
	s, ok := v.Payload.(Str)
	return s, ok
}

// AsClosure returns the Closure payload of v, or ok=false if v is not a Closure.
func AsClosure(v *Value) (*Closure, bool) {
	if v == nil {
		return nil, false
	}
	c, ok := v.Payload.(*Closure)
	return c, ok
}

// AsStruct returns the Struct payload of v, or ok=false if v is not a Struct.
func AsStruct(v *Value) (*Struct, bool) {
	if v == nil {
		return nil, false
	}
	s, ok := v.Payload.(*Struct)
	return s, ok
}

// AsStructType returns the StructType payload of v, or ok=false if v
// is not a StructDeclare.
func AsStructType(v *Value) (*StructType, bool) {
	if v == nil {
		return nil, false
	}
	s, ok := v.Payload.(*StructType)
	return s, ok
}

// ListItems walks a chain of Pairs starting at v, returning each
// Left element in order along with the terminal, non-Pair tail (Nil
// for a proper list).
func ListItems(v *Value) (items []*Value, tail *Value) {
	for {
		pair, ok := AsPair(v)
		if !ok {
			return items, v
		}
		items = append(items, pair.Left)
		v = pair.Right
	}
}

// NewList builds a proper, Nil-terminated list from items.
func NewList(items ...*Value) *Value {
	var result *Value = NewNil(nil)
	for i := len(items) - 1; i >= 0; i-- {
		result = NewPair(items[i], result)
	}
	return result
}

// NewImproperList builds a list from items terminated by tail rather
// than Nil.
func NewImproperList(tail *Value, items ...*Value) *Value {
	result := tail
	for i := len(items) - 1; i >= 0; i-- {
		result = NewPair(items[i], result)
	}
	return result
}

// ValuesEqual implements the language's "=" payload equality: Number,
// Str, Nil, Pair, and Quoted compare structurally; Symbol and Closure
// never compare equal, even to themselves; every cross-variant
// comparison is false.
func ValuesEqual(a, b *Value) bool {
	if IsNil(a) {
		return IsNil(b)
	}
	if IsNil(b) {
		return false
	}
	switch av := a.Payload.(type) {
	case Number:
		bv, ok := b.Payload.(Number)
		return ok && av == bv
	case Str:
		bv, ok := b.Payload.(Str)
		return ok && av == bv
	case *Quoted:
		bv, ok := b.Payload.(*Quoted)
		return ok && ValuesEqual(av.Inner, bv.Inner)
	case *Pair:
		bv, ok := b.Payload.(*Pair)
		return ok && ValuesEqual(av.Left, bv.Left) && ValuesEqual(av.Right, bv.Right)
	default:
		// Symbol, Closure, StructType, and Struct never compare equal,
		// by design: symbols are identifiers rather than data, and the
		// others have no meaningful structural equality here.
		return false
	}
}

// Stringify renders v in the language's canonical textual form.
func Stringify(v *Value) string {
	buf := new(bytes.Buffer)
	stringifyInto(v, buf)
	return buf.String()
}

func stringifyInto(v *Value, buf *bytes.Buffer) {
	if IsNil(v) {
		buf.WriteString("nil")
		return
	}
	switch p := v.Payload.(type) {
	case Number:
		buf.WriteString(strconv.FormatFloat(float64(p), 'g', -1, 64))
	case Str:
		buf.WriteString(string(p))
	case Symbol:
		buf.WriteString(string(p))
	case *Quoted:
		buf.WriteString("'")
		stringifyInto(p.Inner, buf)
	case *Pair:
		stringifyPair(p, buf)
	case *Closure:
		if p.Name != "" {
			fmt.Fprintf(buf, "#<closure %s>", p.Name)
		} else {
			buf.WriteString("#<closure>")
		}
	case *StructType:
		fmt.Fprintf(buf, "(record %s (", p.Name)
		for i, f := range p.Fields {
			if i > 0 {
				buf.WriteString(" ")
			}
			buf.WriteString(f)
		}
		buf.WriteString("))")
	case *Struct:
		fmt.Fprintf(buf, "(%s (", p.Type.Name)
		items, _ := ListItems(p.Data)
		for i, f := range p.Type.Fields {
			if i > 0 {
				buf.WriteString(" ")
			}
			buf.WriteString("(")
			buf.WriteString(f)
			buf.WriteString(" ")
			if i < len(items) {
				stringifyInto(items[i], buf)
			}
			buf.WriteString(")")
		}
		buf.WriteString("))")
	default:
		fmt.Fprintf(buf, "%v", p)
	}
}

func stringifyPair(p *Pair, buf *bytes.Buffer) {
	buf.WriteString("(")
	stringifyInto(p.Left, buf)
	cur := p.Right
	for {
		if IsNil(cur) {
			break
		}
		if next, ok := AsPair(cur); ok {
			buf.WriteString(" ")
			stringifyInto(next.Left, buf)
			cur = next.Right
			continue
		}
		buf.WriteString(" . ")
		stringifyInto(cur, buf)
		break
	}
	buf.WriteString(")")
}
