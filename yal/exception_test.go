//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package yal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRaiseFormatsMessage(t *testing.T) {
	exc := Raise("%s is undefined", "foo")
	assert.Equal(t, "foo is undefined", exc.Error())
}

func TestExceptionPushAccumulatesMostRecentFirst(t *testing.T) {
	exc := NewException(NewStr("boom"))
	exc.Push(&Position{1, 1}).Push(&Position{2, 2})
	assert.Len(t, exc.Traceback, 2)
	assert.Equal(t, 1, exc.Traceback[0].Line)
	assert.Equal(t, 2, exc.Traceback[1].Line)
}

func TestExceptionPushAllowsNilPosition(t *testing.T) {
	exc := NewException(NewStr("boom"))
	exc.Push(nil)
	assert.Len(t, exc.Traceback, 1)
	assert.Nil(t, exc.Traceback[0])
}

func TestLispErrorFormatting(t *testing.T) {
	err := NewLispError(ESYNTAX, Position{3, 4}, "Unexpected token")
	assert.Equal(t, "3:4: Unexpected token", err.Error())
}
