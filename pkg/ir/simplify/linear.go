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
package simplify

import (
	"github.com/consensys/go-bounds/pkg/ir"
)

// Sum represents an integer expression in linear form.  That is, a weighted sum
// of opaque terms plus a constant offset.  All arithmetic is performed modulo
// 2^n, where n is the width of the underlying type.
type Sum struct {
	typ      ir.Type
	terms    []ir.Expr
	coeffs   []int64
	constant int64
}

// Linearise an integer expression by flattening any tree of additions,
// subtractions and multiplications by constants into a single sum.
func Linearise(e ir.Expr) *Sum {
	var sum = &Sum{typ: e.Type()}
	//
	sum.add(e, 1)
	//
	return sum
}

// Sub constructs the difference of two linear sums over the same type.
func (p *Sum) Sub(other *Sum) *Sum {
	var sum = &Sum{typ: p.typ, constant: p.constant - other.constant}
	//
	sum.terms = append(sum.terms, p.terms...)
	sum.coeffs = append(sum.coeffs, p.coeffs...)
	//
	for i, t := range other.terms {
		sum.addTerm(t, -other.coeffs[i])
	}
	//
	return sum
}

// Constant returns the constant value of this sum, or false if it has one or
// more (non-zero) terms.
func (p *Sum) Constant() (int64, bool) {
	for _, c := range p.coeffs {
		if p.typ.Wrap(c) != 0 {
			return 0, false
		}
	}
	//
	return p.typ.Wrap(p.constant), true
}

// Expr rebuilds an expression from this sum.  Terms appear in order of first
// appearance, with positively weighted terms first followed by the subtraction
// of negatively weighted terms, and finally the constant offset.
func (p *Sum) Expr() ir.Expr {
	var (
		result ir.Expr
		// Signed view of coefficients, used to determine their sign.
		view     = ir.Int(p.typ.Bits)
		negative []int
	)
	//
	for i, t := range p.terms {
		c := view.Wrap(p.coeffs[i])
		//
		if c < 0 {
			negative = append(negative, i)
		} else if c > 0 {
			result = plus(result, p.scale(t, c))
		}
	}
	//
	constant := p.typ.Wrap(p.constant)
	// Leading constant when there are no positive terms
	if result == nil && (constant != 0 || len(negative) == 0) {
		result = ir.NewIntImm(p.typ, constant)
		constant = 0
	} else if result == nil {
		result = ir.NewIntImm(p.typ, 0)
	}
	//
	for _, i := range negative {
		result = ir.NewSub(result, p.scale(p.terms[i], -view.Wrap(p.coeffs[i])))
	}
	//
	if c := view.Wrap(constant); c < 0 && p.typ.IsInt() {
		result = ir.NewSub(result, ir.NewIntImm(p.typ, -c))
	} else if constant != 0 {
		result = ir.NewAdd(result, ir.NewIntImm(p.typ, constant))
	}
	//
	return result
}

func (p *Sum) scale(term ir.Expr, c int64) ir.Expr {
	if c == 1 {
		return term
	}
	//
	return ir.NewMul(term, ir.NewIntImm(p.typ, c))
}

func (p *Sum) add(e ir.Expr, scale int64) {
	switch e := e.(type) {
	case *ir.IntImm:
		p.constant += scale * e.Value
	case *ir.Add:
		p.add(e.A, scale)
		p.add(e.B, scale)
	case *ir.Sub:
		p.add(e.A, scale)
		p.add(e.B, -scale)
	case *ir.Mul:
		if b, ok := e.B.(*ir.IntImm); ok {
			p.add(e.A, scale*b.Value)
		} else if a, ok := e.A.(*ir.IntImm); ok {
			p.add(e.B, scale*a.Value)
		} else {
			p.addTerm(e, scale)
		}
	default:
		p.addTerm(e, scale)
	}
}

func (p *Sum) addTerm(term ir.Expr, coeff int64) {
	for i, t := range p.terms {
		if ir.Equal(t, term) {
			p.coeffs[i] += coeff
			return
		}
	}
	//
	p.terms = append(p.terms, term)
	p.coeffs = append(p.coeffs, coeff)
}

func plus(lhs ir.Expr, rhs ir.Expr) ir.Expr {
	if lhs == nil {
		return rhs
	}
	//
	return ir.NewAdd(lhs, rhs)
}
