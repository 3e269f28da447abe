// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package sexp

import (
	"testing"

	"github.com/consensys/go-bounds/pkg/util/assert"
	"github.com/consensys/go-bounds/pkg/util/source"
)

func Test_SExp_01(t *testing.T) {
	checkSExp(t, "x", "x")
	checkSExp(t, "()", "()")
	checkSExp(t, "[]", "[]")
	checkSExp(t, "(+ x 1)", "(+ x 1)")
	checkSExp(t, "(  +\tx\n1 )", "(+ x 1)")
	checkSExp(t, "(f [x (y z)] [])", "(f [x (y z)] [])")
}

func Test_SExp_02(t *testing.T) {
	checkSExp(t, "; leading\n(a ; inner\n b) ; trailing", "(a b)")
	checkSExp(t, "(assert x \"a (b) c\")", "(assert x \"a (b) c\")")
	checkSExp(t, "\"a \\\" b\"", "\"a \\\" b\"")
}

func Test_SExp_03(t *testing.T) {
	checkSExpError(t, "", "(", ")", "(a]", "[a)", "(a b", "a b", "(a))")
}

func Test_SExp_04(t *testing.T) {
	terms, _, err := ParseAll(source.NewFile("test", []byte("a (b c) ; done\n [d]")))
	//
	assert.True(t, err == nil)
	assert.Equal(t, 3, len(terms))
	assert.Equal(t, "a", terms[0].String(false))
	assert.Equal(t, "(b c)", terms[1].String(false))
	assert.Equal(t, "[d]", terms[2].String(false))
}

func Test_SExp_05(t *testing.T) {
	var file = source.NewFile("test", []byte("(a\n  (b c))"))
	//
	term, srcmap, err := Parse(file)
	assert.True(t, err == nil)
	//
	inner := term.AsList().Get(1)
	span := srcmap.Get(inner)
	//
	assert.Equal(t, 5, span.Start())
	assert.Equal(t, 10, span.End())
	//
	line := file.EnclosingLine(span)
	assert.Equal(t, 2, line.Number())
	assert.Equal(t, "  (b c))", line.String())
}

func Test_SExp_06(t *testing.T) {
	_, _, err := ParseAll(source.NewFile("test", []byte("(a)\n (b")))
	//
	assert.True(t, err != nil)
	assert.Equal(t, "test:2:4: unexpected end-of-file", err.Error())
}

func Test_SExp_07(t *testing.T) {
	var list = NewList([]SExp{NewSymbol("f"), NewSymbol("x"), NewSymbol("y")})
	//
	assert.Equal(t, "f", list.Head())
	assert.True(t, list.MatchSymbols(2, "f", "x"))
	assert.False(t, list.MatchSymbols(2, "f", "y"))
	assert.False(t, list.MatchSymbols(4, "f"))
	assert.Equal(t, "", NewList(nil).Head())
	// Symbols containing delimiters are quoted on request
	assert.Equal(t, "\"a b\"", NewSymbol("a b").String(true))
	assert.Equal(t, "a b", NewSymbol("a b").String(false))
}

// ===================================================================

func checkSExp(t *testing.T, input string, expected string) {
	t.Helper()
	//
	term, _, err := Parse(source.NewFile("test", []byte(input)))
	//
	if err != nil {
		t.Errorf("parsing %q: %s", input, err.Error())
	} else if actual := term.String(false); actual != expected {
		t.Errorf("parsing %q: expected %s, got %s", input, expected, actual)
	}
}

func checkSExpError(t *testing.T, inputs ...string) {
	t.Helper()
	//
	for _, input := range inputs {
		term, _, err := Parse(source.NewFile("test", []byte(input)))
		//
		if err == nil && term != nil {
			t.Errorf("parsing %q: expected error, got %s", input, term.String(false))
		}
	}
}
