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

import "github.com/consensys/go-bounds/pkg/util/source/sexp"

// ============================================================================
// Add
// ============================================================================

// Add represents the sum of two expressions.
type Add struct{ A, B Expr }

// NewAdd constructs a new + node.  Both operands must have the same type.
func NewAdd(a Expr, b Expr) *Add {
	checkTypes("+", a, b)
	return &Add{a, b}
}

// Type implementation for Expr interface.
func (p *Add) Type() Type { return p.A.Type() }

// Lisp implementation for Node interface.
func (p *Add) Lisp() sexp.SExp { return lispOf("+", p.A, p.B) }

func (p *Add) String() string { return p.Lisp().String(false) }

// ============================================================================
// Sub
// ============================================================================

// Sub represents the difference of two expressions.
type Sub struct{ A, B Expr }

// NewSub constructs a new - node.  Both operands must have the same type.
func NewSub(a Expr, b Expr) *Sub {
	checkTypes("-", a, b)
	return &Sub{a, b}
}

// Type implementation for Expr interface.
func (p *Sub) Type() Type { return p.A.Type() }

// Lisp implementation for Node interface.
func (p *Sub) Lisp() sexp.SExp { return lispOf("-", p.A, p.B) }

func (p *Sub) String() string { return p.Lisp().String(false) }

// ============================================================================
// Mul
// ============================================================================

// Mul represents the product of two expressions.
type Mul struct{ A, B Expr }

// NewMul constructs a new * node.  Both operands must have the same type.
func NewMul(a Expr, b Expr) *Mul {
	checkTypes("*", a, b)
	return &Mul{a, b}
}

// Type implementation for Expr interface.
func (p *Mul) Type() Type { return p.A.Type() }

// Lisp implementation for Node interface.
func (p *Mul) Lisp() sexp.SExp { return lispOf("*", p.A, p.B) }

func (p *Mul) String() string { return p.Lisp().String(false) }

// ============================================================================
// Div
// ============================================================================

// Div represents the quotient of two expressions.  Integer division is Euclidean, meaning the
// remainder is never negative, and division by zero yields zero.
type Div struct{ A, B Expr }

// NewDiv constructs a new / node.  Both operands must have the same type.
func NewDiv(a Expr, b Expr) *Div {
	checkTypes("/", a, b)
	return &Div{a, b}
}

// Type implementation for Expr interface.
func (p *Div) Type() Type { return p.A.Type() }

// Lisp implementation for Node interface.
func (p *Div) Lisp() sexp.SExp { return lispOf("/", p.A, p.B) }

func (p *Div) String() string { return p.Lisp().String(false) }

// ============================================================================
// Mod
// ============================================================================

// Mod represents the Euclidean remainder of two expressions, which for integers always lies
// within 0 .. |b|-1.  The remainder of division by zero is zero.
type Mod struct{ A, B Expr }

// NewMod constructs a new % node.  Both operands must have the same type.
func NewMod(a Expr, b Expr) *Mod {
	checkTypes("%", a, b)
	return &Mod{a, b}
}

// Type implementation for Expr interface.
func (p *Mod) Type() Type { return p.A.Type() }

// Lisp implementation for Node interface.
func (p *Mod) Lisp() sexp.SExp { return lispOf("%", p.A, p.B) }

func (p *Mod) String() string { return p.Lisp().String(false) }

// ============================================================================
// Min
// ============================================================================

// Min represents the smaller of two expressions.
type Min struct{ A, B Expr }

// NewMin constructs a new min node.  Both operands must have the same type.
func NewMin(a Expr, b Expr) *Min {
	checkTypes("min", a, b)
	return &Min{a, b}
}

// Type implementation for Expr interface.
func (p *Min) Type() Type { return p.A.Type() }

// Lisp implementation for Node interface.
func (p *Min) Lisp() sexp.SExp { return lispOf("min", p.A, p.B) }

func (p *Min) String() string { return p.Lisp().String(false) }

// ============================================================================
// Max
// ============================================================================

// Max represents the larger of two expressions.
type Max struct{ A, B Expr }

// NewMax constructs a new max node.  Both operands must have the same type.
func NewMax(a Expr, b Expr) *Max {
	checkTypes("max", a, b)
	return &Max{a, b}
}

// Type implementation for Expr interface.
func (p *Max) Type() Type { return p.A.Type() }

// Lisp implementation for Node interface.
func (p *Max) Lisp() sexp.SExp { return lispOf("max", p.A, p.B) }

func (p *Max) String() string { return p.Lisp().String(false) }

// Clamp constrains a value to lie within a given (inclusive) range.
func Clamp(value Expr, lower Expr, upper Expr) Expr {
	return NewMax(NewMin(value, upper), lower)
}
