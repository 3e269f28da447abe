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
	"math"

	"github.com/consensys/go-bounds/pkg/ir"
)

// Fold a binary arithmetic operation over two literals of the same type.  This
// respects the wrap-around semantics of fixed-width integers, and the
// Euclidean semantics of integer division and modulus.
func foldArith(op rune, lhs ir.Expr, rhs ir.Expr) ir.Expr {
	switch l := lhs.(type) {
	case *ir.IntImm:
		var (
			t = l.Type()
			a = l.Value
			b = rhs.(*ir.IntImm).Value
		)
		//
		switch op {
		case '+':
			return ir.NewIntImm(t, a+b)
		case '-':
			return ir.NewIntImm(t, a-b)
		case '*':
			return ir.NewIntImm(t, a*b)
		case '/':
			return ir.NewIntImm(t, intDiv(t, a, b))
		case '%':
			return ir.NewIntImm(t, intMod(t, a, b))
		case '<':
			if t.CompareInts(a, b) <= 0 {
				return lhs
			}
			//
			return rhs
		case '>':
			if t.CompareInts(a, b) >= 0 {
				return lhs
			}
			//
			return rhs
		}
	case *ir.FloatImm:
		var (
			t = l.Type()
			a = l.Value
			b = rhs.(*ir.FloatImm).Value
		)
		//
		switch op {
		case '+':
			return ir.NewFloatImm(t, a+b)
		case '-':
			return ir.NewFloatImm(t, a-b)
		case '*':
			return ir.NewFloatImm(t, a*b)
		case '/':
			return ir.NewFloatImm(t, a/b)
		case '%':
			return ir.NewFloatImm(t, floatMod(a, b))
		case '<':
			return ir.NewFloatImm(t, math.Min(a, b))
		case '>':
			return ir.NewFloatImm(t, math.Max(a, b))
		}
	}
	//
	panic("invalid constant folding")
}

// Fold a comparison between two literals of the same type.
func foldCompare(op uint8, lhs ir.Expr, rhs ir.Expr) ir.Expr {
	var c int
	//
	switch l := lhs.(type) {
	case *ir.IntImm:
		c = l.Type().CompareInts(l.Value, rhs.(*ir.IntImm).Value)
	case *ir.FloatImm:
		a, b := l.Value, rhs.(*ir.FloatImm).Value
		// Comparisons involving NaN are false, except for inequality.
		if math.IsNaN(a) || math.IsNaN(b) {
			return boolean(op == ir.NE)
		} else if a < b {
			c = -1
		} else if a > b {
			c = 1
		}
	}
	//
	return boolean(holds(op, c))
}

// Determine whether a given comparison holds, given the result of comparing its
// two operands.
func holds(op uint8, c int) bool {
	switch op {
	case ir.EQ:
		return c == 0
	case ir.NE:
		return c != 0
	case ir.LT:
		return c < 0
	case ir.LE:
		return c <= 0
	case ir.GT:
		return c > 0
	default:
		return c >= 0
	}
}

// Fold a cast of a literal into a given type.
func foldCast(t ir.Type, value ir.Expr) ir.Expr {
	switch v := value.(type) {
	case *ir.IntImm:
		if t.IsFloat() && v.Type().IsUInt() {
			return ir.NewFloatImm(t, float64(uint64(v.Value)))
		} else if t.IsFloat() {
			return ir.NewFloatImm(t, float64(v.Value))
		}
		// Integer to integer conversion wraps
		return ir.NewIntImm(t, v.Value)
	case *ir.FloatImm:
		if t.IsFloat() {
			return ir.NewFloatImm(t, v.Value)
		}
		// Floating point to integer conversion truncates (and saturates at the
		// limits of a 64bit value).
		f := math.Trunc(v.Value)
		//
		switch {
		case math.IsNaN(f):
			return ir.NewIntImm(t, 0)
		case t.IsUInt() && f >= math.MaxInt64:
			return ir.NewIntImm(t, int64(uint64(min(f, math.MaxUint64))))
		case f >= math.MaxInt64:
			return ir.NewIntImm(t, math.MaxInt64)
		case f <= math.MinInt64:
			return ir.NewIntImm(t, math.MinInt64)
		}
		//
		return ir.NewIntImm(t, int64(f))
	}
	//
	panic("invalid constant folding")
}

func intDiv(t ir.Type, a int64, b int64) int64 {
	if b == 0 {
		return 0
	} else if t.IsUInt() {
		return int64(uint64(a) / uint64(b))
	}
	//
	q := a / b
	// Euclidean division rounds such that the remainder is never negative.
	if a%b < 0 {
		if b > 0 {
			q--
		} else {
			q++
		}
	}
	//
	return q
}

func intMod(t ir.Type, a int64, b int64) int64 {
	if b == 0 {
		return 0
	} else if t.IsUInt() {
		return int64(uint64(a) % uint64(b))
	}
	//
	r := a % b
	//
	if r < 0 {
		if b > 0 {
			r += b
		} else {
			r -= b
		}
	}
	//
	return r
}

func floatMod(a float64, b float64) float64 {
	if b == 0 {
		return 0
	}
	//
	return a - b*math.Floor(a/b)
}

func boolean(val bool) ir.Expr {
	if val {
		return ir.True()
	}
	//
	return ir.False()
}
