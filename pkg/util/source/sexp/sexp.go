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
	"fmt"
	"strings"
	"unicode"
)

// SExp is an S-Expression, which is either a list, an array or a symbol.
type SExp interface {
	// AsList returns this S-Expression as a list, or nil if it is not one.
	AsList() *List
	// AsArray returns this S-Expression as an array, or nil if it is not one.
	AsArray() *Array
	// AsSymbol returns this S-Expression as a symbol, or nil if it is not one.
	AsSymbol() *Symbol
	// String generates a string representation, where symbols are optionally
	// quoted when they contain whitespace or braces.
	String(quote bool) string
}

// ============================================================================
// List
// ============================================================================

// List represents a sequence of zero or more S-Expressions enclosed in round
// braces.
type List struct {
	Elements []SExp
}

var _ SExp = (*List)(nil)

// NewList creates a new list from a given array of S-Expressions.
func NewList(elements []SExp) *List {
	return &List{elements}
}

// AsArray implementation for SExp interface.
func (l *List) AsArray() *Array { return nil }

// AsList implementation for SExp interface.
func (l *List) AsList() *List { return l }

// AsSymbol implementation for SExp interface.
func (l *List) AsSymbol() *Symbol { return nil }

// Len gets the number of elements in this list.
func (l *List) Len() int { return len(l.Elements) }

// Get the ith element of this list
func (l *List) Get(i int) SExp { return l.Elements[i] }

// Head returns the first element of this list if it is a symbol, or the empty
// string otherwise.
func (l *List) Head() string {
	if len(l.Elements) > 0 {
		if s := l.Elements[0].AsSymbol(); s != nil {
			return s.Value
		}
	}
	//
	return ""
}

func (l *List) String(quote bool) string {
	return join("(", l.Elements, ")", quote)
}

// MatchSymbols checks whether this list has at least n elements, where the
// leading elements are symbols matching those given.
func (l *List) MatchSymbols(n int, symbols ...string) bool {
	if len(l.Elements) < n || len(symbols) > n {
		return false
	}
	//
	for i, sym := range symbols {
		if s := l.Elements[i].AsSymbol(); s == nil || s.Value != sym {
			return false
		}
	}
	//
	return true
}

// ============================================================================
// Array
// ============================================================================

// Array represents a sequence of zero or more S-Expressions enclosed in square
// braces.
type Array struct {
	Elements []SExp
}

var _ SExp = (*Array)(nil)

// NewArray creates a new array from a given array of S-Expressions.
func NewArray(elements []SExp) *Array {
	return &Array{elements}
}

// AsArray implementation for SExp interface.
func (a *Array) AsArray() *Array { return a }

// AsList implementation for SExp interface.
func (a *Array) AsList() *List { return nil }

// AsSymbol implementation for SExp interface.
func (a *Array) AsSymbol() *Symbol { return nil }

// Len gets the number of elements in this array.
func (a *Array) Len() int { return len(a.Elements) }

// Get the ith element of this array
func (a *Array) Get(i int) SExp { return a.Elements[i] }

func (a *Array) String(quote bool) string {
	return join("[", a.Elements, "]", quote)
}

// ============================================================================
// Symbol
// ============================================================================

// Symbol represents a terminating word, such as a name or a literal.
type Symbol struct {
	Value string
}

var _ SExp = (*Symbol)(nil)

// NewSymbol creates a new symbol from a given string.
func NewSymbol(value string) *Symbol {
	return &Symbol{value}
}

// AsArray implementation for SExp interface.
func (s *Symbol) AsArray() *Array { return nil }

// AsList implementation for SExp interface.
func (s *Symbol) AsList() *List { return nil }

// AsSymbol implementation for SExp interface.
func (s *Symbol) AsSymbol() *Symbol { return s }

func (s *Symbol) String(quote bool) string {
	if quote && strings.ContainsFunc(s.Value, isDelimiter) {
		return fmt.Sprintf("\"%s\"", s.Value)
	}
	//
	return s.Value
}

func isDelimiter(r rune) bool {
	return r == '(' || r == ')' || r == '[' || r == ']' || unicode.IsSpace(r)
}

func join(open string, elements []SExp, close string, quote bool) string {
	var builder strings.Builder
	//
	builder.WriteString(open)
	//
	for i, e := range elements {
		if i != 0 {
			builder.WriteString(" ")
		}
		//
		builder.WriteString(e.String(quote))
	}
	//
	builder.WriteString(close)
	//
	return builder.String()
}
