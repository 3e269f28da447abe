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
package ir

import (
	"github.com/consensys/go-bounds/pkg/util/source/sexp"
)

const (
	// EQ indicates an equals (==) relationship
	EQ uint8 = 0
	// NE indicates a not-equals (!=) relationship
	NE uint8 = 1
	// LT indicates a less-than (<) relationship
	LT uint8 = 2
	// LE indicates a less-than-or-equals (<=) relationship
	LE uint8 = 3
	// GT indicates a greater-than (>) relationship
	GT uint8 = 4
	// GE indicates a greater-than-or-equals (>=) relationship
	GE uint8 = 5
)

var comparisonSymbols = []string{"==", "!=", "<", "<=", ">", ">="}

// Compare represents a comparison between two expressions of the same type,
// producing a boolean.
type Compare struct {
	Op uint8
	A  Expr
	B  Expr
}

// NewCompare constructs a comparison of a given kind.
func NewCompare(op uint8, a Expr, b Expr) *Compare {
	if op > GE {
		panic("invalid comparison")
	}
	//
	checkTypes(comparisonSymbols[op], a, b)
	//
	return &Compare{op, a, b}
}

// NewEQ constructs an equality comparison a == b.
func NewEQ(a Expr, b Expr) *Compare { return NewCompare(EQ, a, b) }

// NewNE constructs a non-equality comparison a != b.
func NewNE(a Expr, b Expr) *Compare { return NewCompare(NE, a, b) }

// NewLT constructs a comparison a < b.
func NewLT(a Expr, b Expr) *Compare { return NewCompare(LT, a, b) }

// NewLE constructs a comparison a <= b.
func NewLE(a Expr, b Expr) *Compare { return NewCompare(LE, a, b) }

// NewGT constructs a comparison a > b.
func NewGT(a Expr, b Expr) *Compare { return NewCompare(GT, a, b) }

// NewGE constructs a comparison a >= b.
func NewGE(a Expr, b Expr) *Compare { return NewCompare(GE, a, b) }

// Symbol returns the operator symbol of this comparison.
func (p *Compare) Symbol() string { return comparisonSymbols[p.Op] }

// Type implementation for Expr interface.
func (p *Compare) Type() Type { return Bool() }

// Lisp implementation for Node interface.
func (p *Compare) Lisp() sexp.SExp { return lispOf(p.Symbol(), p.A, p.B) }

func (p *Compare) String() string { return p.Lisp().String(false) }

// ComparisonOp returns the comparison operator for a given symbol (e.g. "<=").
func ComparisonOp(symbol string) (uint8, bool) {
	for i, s := range comparisonSymbols {
		if s == symbol {
			return uint8(i), true
		}
	}
	//
	return 0, false
}
