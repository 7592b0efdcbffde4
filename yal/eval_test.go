//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package yal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// verifyInterpret runs each input through Interpret and checks the
// stringified result, the way this language's earlier interpreter
// tests verified end-to-end behavior.
func verifyInterpret(t *testing.T, inputs map[string]string) {
	t.Helper()
	for in, want := range inputs {
		result, err := Interpret(in)
		if !assert.NoError(t, err, "Interpret(%q)", in) {
			continue
		}
		assert.Equal(t, want, Stringify(result), "Interpret(%q)", in)
	}
}

func verifyInterpretError(t *testing.T, inputs map[string]string) {
	t.Helper()
	for in, want := range inputs {
		_, err := Interpret(in)
		if !assert.Error(t, err, "Interpret(%q) should have failed", in) {
			continue
		}
		assert.Contains(t, err.Error(), want, "Interpret(%q)", in)
	}
}

func TestEvalSelfEvaluating(t *testing.T) {
	verifyInterpret(t, map[string]string{
		"1":     "1",
		"\"hi\"": "hi",
		"nil":   "nil",
		"true":  "1",
	})
}

func TestEvalArithmetic(t *testing.T) {
	verifyInterpret(t, map[string]string{
		"(+ 1 2 3)": "6",
		"(- 5 2)":   "3",
		"(- 5)":     "-5",
		"(* 2 3 4)": "24",
		"(/ 10 2)":  "5",
		"(% 10 3)":  "1",
	})
}

func TestEvalComparisonAndEquality(t *testing.T) {
	verifyInterpret(t, map[string]string{
		"(= 1 1 1)":  "1",
		"(= 1 2)":    "nil",
		"(!= 1 2 3)": "1",
		"(< 1 2 3)":  "1",
		"(>= 3 3 2)": "1",
		"(cmp 1 2)":  "-1",
	})
}

func TestEvalLetAndDef(t *testing.T) {
	verifyInterpret(t, map[string]string{
		"(let x 10) x":                 "10",
		"(def (add a b) (+ a b)) (add 2 3)": "5",
	})
}

func TestEvalLambdaClosure(t *testing.T) {
	verifyInterpret(t, map[string]string{
		"(let f (lambda (x) (* x x))) (f 5)": "25",
		"(let n 10) (let adder (lambda (x) (+ x n))) (adder 5)": "15",
	})
}

func TestEvalVariadicParams(t *testing.T) {
	verifyInterpret(t, map[string]string{
		"(def (first a . rest) a) (first 1 2 3)": "1",
		"(def (listall . rest) rest) (listall 1 2 3)": "(1 2 3)",
	})
}

func TestEvalIfAndAndOr(t *testing.T) {
	verifyInterpret(t, map[string]string{
		"(if nil 1 2)":       "2",
		"(if 1 1 2)":         "1",
		"(and 1 2 3)":        "1",
		"(and 1 nil 3)":      "nil",
		"(or nil nil 3)":     "1",
		"(or nil nil)":       "nil",
	})
}

func TestEvalDo(t *testing.T) {
	verifyInterpret(t, map[string]string{
		"(do (let x 1) (let y 2) (+ x y))": "3",
	})
}

func TestEvalQuote(t *testing.T) {
	verifyInterpret(t, map[string]string{
		"'(1 2 3)":            "(1 2 3)",
		"(let x 5) '(x x)":    "(5 5)",
	})
}

func TestEvalStructs(t *testing.T) {
	verifyInterpret(t, map[string]string{
		"(struct point (x y)) (let p (new point 1 2)) (:: p x)": "1",
		"(struct point (x y)) (let p (new point 1 2)) (:: p y)": "2",
	})
}

func TestEvalErrors(t *testing.T) {
	verifyInterpretError(t, map[string]string{
		"x":                         "undefined",
		"(let x 1) (let x 2)":       "already exists",
		"(def (f a) a) (f 1 2)":     "Arguments count error",
		"(1 2 3)":                   "not a function",
		"'x":                        "Only pair could be quoted",
		"(struct point (x y)) (let p (new point 1 2)) (:: p z)": "not found",
	})
}

func TestEvalScopeStateGating(t *testing.T) {
	verifyInterpretError(t, map[string]string{
		"(if 1 (let x 1) 2)": "scope is given",
		"(+ 1 (struct s (a)))": "scope is given",
	})
}

func TestEvalTraceback(t *testing.T) {
	_, err := Interpret("(+ 1 x)")
	require.Error(t, err)
	exc, ok := err.(*Exception)
	require.True(t, ok)
	assert.NotEmpty(t, exc.Traceback)
}
