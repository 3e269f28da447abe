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

// And represents the logical conjunction of two boolean expressions.
type And struct{ A, B Expr }

// NewAnd constructs a logical conjunction.
func NewAnd(a Expr, b Expr) *And {
	checkBool("&&", a, b)
	return &And{a, b}
}

// Type implementation for Expr interface.
func (p *And) Type() Type { return Bool() }

// Lisp implementation for Node interface.
func (p *And) Lisp() sexp.SExp { return lispOf("&&", p.A, p.B) }

func (p *And) String() string { return p.Lisp().String(false) }

// Or represents the logical disjunction of two boolean expressions.
type Or struct{ A, B Expr }

// NewOr constructs a logical disjunction.
func NewOr(a Expr, b Expr) *Or {
	checkBool("||", a, b)
	return &Or{a, b}
}

// Type implementation for Expr interface.
func (p *Or) Type() Type { return Bool() }

// Lisp implementation for Node interface.
func (p *Or) Lisp() sexp.SExp { return lispOf("||", p.A, p.B) }

func (p *Or) String() string { return p.Lisp().String(false) }

// Not represents the logical negation of a boolean expression.
type Not struct{ A Expr }

// NewNot constructs a logical negation.
func NewNot(a Expr) *Not {
	checkBool("!", a)
	return &Not{a}
}

// Type implementation for Expr interface.
func (p *Not) Type() Type { return Bool() }

// Lisp implementation for Node interface.
func (p *Not) Lisp() sexp.SExp { return lispOf("!", p.A) }

func (p *Not) String() string { return p.Lisp().String(false) }

func checkBool(op string, args ...Expr) {
	for _, arg := range args {
		if arg == nil || !arg.Type().IsBool() {
			panic("non-boolean operand for \"" + op + "\"")
		}
	}
}
