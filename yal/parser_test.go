//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package yal

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// valueCmp ignores Position, which isn't relevant to structural shape.
var valueCmp = cmp.Options{
	cmpopts.IgnoreFields(Value{}, "Pos"),
}

func TestParseEmptyList(t *testing.T) {
	forms, err := Parse("()")
	require.Nil(t, err)
	require.Len(t, forms, 1)
	assert.True(t, IsNil(forms[0]))
}

func TestParseProperList(t *testing.T) {
	forms, err := Parse("(1 2 3)")
	require.Nil(t, err)
	require.Len(t, forms, 1)
	want := NewList(NewNumber(1), NewNumber(2), NewNumber(3))
	if diff := cmp.Diff(want, forms[0], valueCmp); diff != "" {
		t.Errorf("parsed tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDottedPair(t *testing.T) {
	forms, err := Parse("(1 . 2)")
	require.Nil(t, err)
	want := NewPair(NewNumber(1), NewNumber(2))
	if diff := cmp.Diff(want, forms[0], valueCmp); diff != "" {
		t.Errorf("parsed tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParseImproperTail(t *testing.T) {
	forms, err := Parse("(1 2 . 3)")
	require.Nil(t, err)
	want := NewImproperList(NewNumber(3), NewNumber(1), NewNumber(2))
	if diff := cmp.Diff(want, forms[0], valueCmp); diff != "" {
		t.Errorf("parsed tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParseQuote(t *testing.T) {
	forms, err := Parse("'foo")
	require.Nil(t, err)
	want := NewQuoted(NewSymbol("foo"))
	if diff := cmp.Diff(want, forms[0], valueCmp); diff != "" {
		t.Errorf("parsed tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMultipleTopLevelForms(t *testing.T) {
	forms, err := Parse("1 2 3")
	require.Nil(t, err)
	assert.Len(t, forms, 3)
}

func TestParsePositionOfFirstLexeme(t *testing.T) {
	forms, err := Parse("\n  (a b)")
	require.Nil(t, err)
	require.Len(t, forms, 1)
	require.NotNil(t, forms[0].Pos)
	assert.Equal(t, 2, forms[0].Pos.Line)
	assert.Equal(t, 3, forms[0].Pos.Col)
}

func TestParseUnexpectedCloseBracket(t *testing.T) {
	_, err := Parse(")")
	require.NotNil(t, err)
	assert.Equal(t, ESYNTAX, err.Code)
}

func TestParseUnexpectedEOFInList(t *testing.T) {
	_, err := Parse("(1 2")
	require.NotNil(t, err)
	assert.Equal(t, ESYNTAX, err.Code)
}

func TestParseMalformedDottedPair(t *testing.T) {
	_, err := Parse("(1 . 2 3)")
	require.NotNil(t, err)
	assert.Equal(t, ESYNTAX, err.Code)
}

func TestRoundTripStringify(t *testing.T) {
	// Str prints as raw text with no surrounding quotes, so only
	// non-string inputs round-trip literally through Stringify.
	inputs := []string{"(1 2 3)", "(1 . 2)", "'foo", "bar"}
	for _, in := range inputs {
		forms, err := Parse(in)
		require.Nil(t, err)
		require.Len(t, forms, 1)
		assert.Equal(t, in, Stringify(forms[0]))
	}
}
