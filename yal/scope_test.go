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

func TestScopeDefineAndLookup(t *testing.T) {
	s := NewScope(nil)
	require.Nil(t, s.Define("foo", NewNumber(42)))
	v, exc := s.Lookup("foo")
	require.Nil(t, exc)
	assert.Equal(t, "42", Stringify(v))
}

func TestScopeLookupMissing(t *testing.T) {
	s := NewScope(nil)
	_, exc := s.Lookup("foo")
	require.NotNil(t, exc)
	assert.Contains(t, exc.Error(), "foo is undefined")
}

func TestScopeDefineDuplicate(t *testing.T) {
	s := NewScope(nil)
	require.Nil(t, s.Define("foo", NewNumber(1)))
	exc := s.Define("foo", NewNumber(2))
	require.NotNil(t, exc)
	assert.Contains(t, exc.Error(), "foo already exists")
}

func TestScopeOuterChain(t *testing.T) {
	outer := NewScope(nil)
	require.Nil(t, outer.Define("foo", NewNumber(1)))
	inner := NewScope(outer)
	v, exc := inner.Lookup("foo")
	require.Nil(t, exc)
	assert.Equal(t, "1", Stringify(v))
}

func TestScopeInnerShadowsWithoutError(t *testing.T) {
	outer := NewScope(nil)
	require.Nil(t, outer.Define("foo", NewNumber(1)))
	inner := NewScope(outer)
	require.Nil(t, inner.Define("foo", NewNumber(2)))
	v, exc := inner.Lookup("foo")
	require.Nil(t, exc)
	assert.Equal(t, "2", Stringify(v))
}

func TestScopeStateAllowedAt(t *testing.T) {
	assert.True(t, ScopeGlobal.allowedAt(ScopeLocal))
	assert.True(t, ScopeLocal.allowedAt(ScopeLocal))
	assert.False(t, ScopeExpression.allowedAt(ScopeLocal))
	assert.True(t, ScopeExpression.allowedAt(ScopeExpression))
}
