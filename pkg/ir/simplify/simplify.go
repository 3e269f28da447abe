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
	"slices"

	"github.com/consensys/go-bounds/pkg/ir"
)

// Simplify an expression into an equivalent (and typically smaller) form.  This
// folds constants, cancels common terms in integer arithmetic, discharges
// comparisons whose outcome is fixed and eliminates trivial lets.  Comparisons
// between signed integers of 32bits or more are simplified under the assumption
// that the arithmetic involved does not overflow.  A nil expression simplifies
// to nil.
func Simplify(e ir.Expr) ir.Expr {
	if e == nil {
		return nil
	}
	//
	return simplify(e)
}

// IsTrue checks whether an expression simplifies to the literal true.
func IsTrue(e ir.Expr) bool {
	c, ok := Simplify(e).(*ir.IntImm)
	//
	return ok && c.Type().IsBool() && c.Value == 1
}

// IsFalse checks whether an expression simplifies to the literal false.
func IsFalse(e ir.Expr) bool {
	c, ok := Simplify(e).(*ir.IntImm)
	//
	return ok && c.Type().IsBool() && c.Value == 0
}

func simplify(e ir.Expr) ir.Expr {
	switch e := e.(type) {
	case *ir.IntImm, *ir.FloatImm, *ir.Variable:
		return e
	case *ir.Let:
		return simplifyLet(e)
	}
	// Bottom up
	e = ir.MapChildren(e, simplify)
	//
	switch e := e.(type) {
	case *ir.Cast:
		return simplifyCast(e)
	case *ir.Add:
		return simplifyArith('+', e, e.A, e.B)
	case *ir.Sub:
		return simplifyArith('-', e, e.A, e.B)
	case *ir.Mul:
		return simplifyArith('*', e, e.A, e.B)
	case *ir.Div:
		return simplifyDiv(e)
	case *ir.Mod:
		return simplifyMod(e)
	case *ir.Min:
		return simplifyMinMax('<', e, e.A, e.B)
	case *ir.Max:
		return simplifyMinMax('>', e, e.A, e.B)
	case *ir.Compare:
		return simplifyCompare(e)
	case *ir.And:
		return simplifyAnd(e)
	case *ir.Or:
		return simplifyOr(e)
	case *ir.Not:
		return simplifyNot(e)
	case *ir.Select:
		return simplifySelect(e)
	}
	//
	return e
}

func simplifyLet(e *ir.Let) ir.Expr {
	value := simplify(e.Value)
	// Constants and variables are always inlined.
	switch value.(type) {
	case *ir.IntImm, *ir.FloatImm, *ir.Variable:
		return simplify(ir.Substitute(e.Body, map[string]ir.Expr{e.Name: value}))
	}
	//
	body := simplify(e.Body)
	// Drop dead lets
	if !slices.Contains(ir.Variables(body), e.Name) {
		return body
	} else if value == e.Value && body == e.Body {
		return e
	}
	//
	return ir.NewLet(e.Name, value, body)
}

func simplifyCast(e *ir.Cast) ir.Expr {
	if ir.IsConst(e.Value) {
		return foldCast(e.Type(), e.Value)
	} else if e.Value.Type() == e.Type() {
		return e.Value
	}
	//
	return e
}

func simplifyArith(op rune, e ir.Expr, a ir.Expr, b ir.Expr) ir.Expr {
	var t = e.Type()
	//
	if ir.IsConst(a) && ir.IsConst(b) {
		return foldArith(op, a, b)
	} else if !t.IsFloat() {
		return canonical(e)
	}
	// Floating point identities
	switch {
	case op == '+' && ir.IsZero(b):
		return a
	case op == '+' && ir.IsZero(a):
		return b
	case op == '-' && ir.IsZero(b):
		return a
	case op == '*' && ir.IsOne(b):
		return a
	case op == '*' && ir.IsOne(a):
		return b
	case (op == '+' || op == '*') && ir.IsConst(a):
		// Constants to the right
		if op == '+' {
			return ir.NewAdd(b, a)
		}
		//
		return ir.NewMul(b, a)
	}
	//
	return e
}

// Rewrite an integer expression into its canonical linear form, whilst
// preserving the original where nothing changes.
func canonical(e ir.Expr) ir.Expr {
	var result = Linearise(e).Expr()
	//
	if ir.Equal(result, e) {
		return e
	}
	//
	return result
}

func simplifyDiv(e *ir.Div) ir.Expr {
	switch {
	case ir.IsConst(e.A) && ir.IsConst(e.B):
		return foldArith('/', e.A, e.B)
	case ir.IsOne(e.B):
		return e.A
	case !e.Type().IsFloat() && ir.IsZero(e.B):
		return ir.Zero(e.Type())
	case !e.Type().IsFloat() && ir.IsZero(e.A):
		return e.A
	}
	//
	return e
}

func simplifyMod(e *ir.Mod) ir.Expr {
	switch {
	case ir.IsConst(e.A) && ir.IsConst(e.B):
		return foldArith('%', e.A, e.B)
	case !e.Type().IsFloat() && (ir.IsOne(e.B) || ir.IsZero(e.B) || ir.IsZero(e.A)):
		return ir.Zero(e.Type())
	}
	//
	return e
}

func simplifyMinMax(op rune, e ir.Expr, a ir.Expr, b ir.Expr) ir.Expr {
	var t = e.Type()
	//
	switch {
	case ir.IsConst(a) && ir.IsConst(b):
		return foldArith(op, a, b)
	case ir.Equal(a, b):
		return a
	case ir.IsConst(a):
		// Constants to the right
		return minmax(op, b, a)
	}
	// Determine outcome from the difference (when it is fixed).
	if t.IsInt() && t.Bits >= 32 {
		if diff, ok := Linearise(a).Sub(Linearise(b)).Constant(); ok {
			if (diff <= 0) == (op == '<') {
				return a
			}
			//
			return b
		}
	}
	// Fold nested constants, as in min(min(x,c1),c2) ==> min(x,min(c1,c2))
	if ir.IsConst(b) {
		if inner, ok := nested(op, a); ok && ir.IsConst(inner[1]) {
			return minmax(op, inner[0], foldArith(op, inner[1], b))
		}
	}
	//
	return e
}

func nested(op rune, e ir.Expr) ([2]ir.Expr, bool) {
	switch e := e.(type) {
	case *ir.Min:
		return [2]ir.Expr{e.A, e.B}, op == '<'
	case *ir.Max:
		return [2]ir.Expr{e.A, e.B}, op == '>'
	}
	//
	return [2]ir.Expr{}, false
}

func minmax(op rune, a ir.Expr, b ir.Expr) ir.Expr {
	if op == '<' {
		return ir.NewMin(a, b)
	}
	//
	return ir.NewMax(a, b)
}

func simplifyCompare(e *ir.Compare) ir.Expr {
	var t = e.A.Type()
	//
	if ir.IsConst(e.A) && ir.IsConst(e.B) {
		return foldCompare(e.Op, e.A, e.B)
	} else if t.IsFloat() {
		return e
	} else if ir.Equal(e.A, e.B) {
		return boolean(holds(e.Op, 0))
	}
	//
	diff, ok := Linearise(e.A).Sub(Linearise(e.B)).Constant()
	//
	switch {
	case !ok:
		return e
	case e.Op == ir.EQ || e.Op == ir.NE:
		// Equality is preserved under modular arithmetic.
		return boolean(holds(e.Op, sign(diff)))
	case t.IsInt() && t.Bits >= 32:
		return boolean(holds(e.Op, sign(diff)))
	}
	//
	return e
}

func sign(val int64) int {
	switch {
	case val < 0:
		return -1
	case val > 0:
		return 1
	}
	//
	return 0
}

func simplifyAnd(e *ir.And) ir.Expr {
	switch {
	case ir.IsZero(e.A) || ir.IsZero(e.B):
		return ir.False()
	case ir.IsOne(e.A):
		return e.B
	case ir.IsOne(e.B) || ir.Equal(e.A, e.B):
		return e.A
	}
	//
	return e
}

func simplifyOr(e *ir.Or) ir.Expr {
	switch {
	case ir.IsOne(e.A) || ir.IsOne(e.B):
		return ir.True()
	case ir.IsZero(e.A):
		return e.B
	case ir.IsZero(e.B) || ir.Equal(e.A, e.B):
		return e.A
	}
	//
	return e
}

func simplifyNot(e *ir.Not) ir.Expr {
	switch a := e.A.(type) {
	case *ir.IntImm:
		return boolean(a.Value == 0)
	case *ir.Not:
		return a.A
	case *ir.Compare:
		// Floating point comparisons cannot be negated (because of NaN)
		if !a.A.Type().IsFloat() {
			return ir.NewCompare(negate(a.Op), a.A, a.B)
		}
	}
	//
	return e
}

func negate(op uint8) uint8 {
	switch op {
	case ir.EQ:
		return ir.NE
	case ir.NE:
		return ir.EQ
	case ir.LT:
		return ir.GE
	case ir.LE:
		return ir.GT
	case ir.GT:
		return ir.LE
	default:
		return ir.LT
	}
}

func simplifySelect(e *ir.Select) ir.Expr {
	switch {
	case ir.IsOne(e.Cond):
		return e.True
	case ir.IsZero(e.Cond):
		return e.False
	case ir.Equal(e.True, e.False):
		return e.True
	}
	//
	return e
}
