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
package bounds

import (
	"math/rand/v2"
	"testing"

	"github.com/consensys/go-bounds/pkg/ir"
	"github.com/consensys/go-bounds/pkg/ir/simplify"
	"github.com/consensys/go-bounds/pkg/util/assert"
)

func Test_Bounds_Basic_01(t *testing.T) {
	checkBounds(t, xScope(), "x", "0", "10")
}

func Test_Bounds_Basic_02(t *testing.T) {
	checkBounds(t, xScope(), "(+ x 1)", "1", "11")
}

func Test_Bounds_Basic_03(t *testing.T) {
	checkBounds(t, xScope(), "(* (+ x 1) 2)", "2", "22")
}

func Test_Bounds_Basic_04(t *testing.T) {
	checkBounds(t, xScope(), "(* x x)", "0", "100")
}

func Test_Bounds_Basic_05(t *testing.T) {
	checkBounds(t, xScope(), "(- 5 x)", "-5", "5")
}

func Test_Bounds_Basic_06(t *testing.T) {
	// Occurrences of x are treated independently
	checkBounds(t, xScope(), "(* x (- 5 x))", "-50", "50")
}

func Test_Bounds_Basic_07(t *testing.T) {
	checkBounds(t, xScope(), "(select (< x 4) x (+ x 100))", "0", "110")
}

func Test_Bounds_Basic_08(t *testing.T) {
	checkBounds(t, nil, "42", "42", "42")
	checkBounds(t, nil, "1.5", "1.5", "1.5")
}

func Test_Bounds_Symbolic_01(t *testing.T) {
	checkBounds(t, xScope(), "(+ x y)", "y", "(+ y 10)")
}

func Test_Bounds_Symbolic_02(t *testing.T) {
	// Unbound variables are left symbolic
	checkBounds(t, nil, "y", "y", "y")
	checkBounds(t, nil, "(* (+ y 1) z)", "(* (+ y 1) z)", "(* (+ y 1) z)")
}

func Test_Bounds_Symbolic_03(t *testing.T) {
	checkBounds(t, xScope(), "(min x y)", "(min y 0)", "(min y 10)")
	checkBounds(t, xScope(), "(max x y)", "(max y 0)", "(max y 10)")
}

func Test_Bounds_Symbolic_04(t *testing.T) {
	// Sign of y is unknown
	checkBounds(t, xScope(), "(* x y)", "(select (>= y 0) 0 (* y 10))", "(select (>= y 0) (* y 10) 0)")
	checkBounds(t, xScope(), "(/ x y)", "(select (> y 0) 0 (/ 10 y))", "(select (> y 0) (/ 10 y) 0)")
}

func Test_Bounds_Div_01(t *testing.T) {
	// Divisor may span zero
	checkBounds(t, xScope(), "(/ x (+ x y))", "_", "_")
}

func Test_Bounds_Div_02(t *testing.T) {
	checkBounds(t, xScope(), "(/ 11 (+ x 1))", "1", "11")
}

func Test_Bounds_Div_03(t *testing.T) {
	checkBounds(t, xScope(), "(/ x 0)", "_", "_")
	checkBounds(t, xScope(), "(/ x 3)", "0", "3")
	checkBounds(t, xScope(), "(/ x -2)", "-5", "0")
	checkBounds(t, xScope(), "(/ x (- x 20))", "-1", "0")
}

func Test_Bounds_Mod_01(t *testing.T) {
	checkBounds(t, xScope(), "(% x 3)", "0", "2")
	checkBounds(t, xScope(), "(% 7 3)", "1", "1")
	checkBounds(t, xScope(), "(% 7 (+ x 1))", "0", "10")
	checkBounds(t, xScope(), "(% x (/ 1 (- x 2)))", "_", "_")
}

func Test_Bounds_Mod_02(t *testing.T) {
	checkBounds(t, fScope(), "(% f:f32 2.5)", "0.0", "2.5")
}

func Test_Bounds_Mod_03(t *testing.T) {
	// Divisors which are zero or negative
	checkBounds(t, xScope(), "(% x 0)", "_", "_")
	checkBounds(t, xScope(), "(% x -3)", "0", "2")
	checkBounds(t, xScope(), "(% 7 (- x 5))", "0", "4")
}

func Test_Bounds_MinMax_01(t *testing.T) {
	// Only one side need be bounded
	checkBounds(t, xScope(), "(min x (/ x (+ x y)))", "_", "10")
	checkBounds(t, xScope(), "(max x (/ x (+ x y)))", "0", "_")
	checkBounds(t, xScope(), "(min (/ x (+ x y)) (/ x (+ x y)))", "_", "_")
}

func Test_Bounds_MinMax_02(t *testing.T) {
	checkBounds(t, xScope(), "(max (min (/ 1 (- x 2)) (+ x 10)) (- x 10))", "-10", "20")
}

func Test_Bounds_Select_01(t *testing.T) {
	checkBounds(t, xScope(), "(select (< x 4) x (/ x (+ x y)))", "_", "_")
}

func Test_Bounds_Logical_01(t *testing.T) {
	checkBounds(t, xScope(), "(< x 4)", "_", "_")
	checkBounds(t, xScope(), "(&& (< x 4) (> x 1))", "_", "_")
	checkBounds(t, xScope(), "(! (< x 4))", "_", "_")
}

func Test_Bounds_Let_01(t *testing.T) {
	checkBounds(t, xScope(), "(+ y (let y (+ x 3) (+ (- y x) 10)))", "(+ y 3)", "(+ y 23)")
}

func Test_Bounds_Let_02(t *testing.T) {
	checkBounds(t, xScope(), "(let z (* x 2) (+ z 1))", "1", "21")
	// Binding does not escape
	checkBounds(t, xScope(), "(+ (let z x z) z)", "z", "(+ z 10)")
}

func Test_Bounds_Load_01(t *testing.T) {
	checkBounds(t, xScope(), "(load i8 buf x)", "-128:i8", "127:i8")
	checkBounds(t, xScope(), "(load i32 buf x)", "_", "_")
	checkBounds(t, xScope(), "(load u16 buf (- x x))", "0:u16", "65535:u16")
	checkBounds(t, xScope(), "(load i32 buf 3)", "(load i32 buf 3)", "(load i32 buf 3)")
}

func Test_Bounds_Call_01(t *testing.T) {
	checkBounds(t, xScope(), "(image in:u8 3 4)", "(image in:u8 3 4)", "(image in:u8 3 4)")
	checkBounds(t, xScope(), "(image in:u8 3 x)", "0:u8", "255:u8")
	checkBounds(t, xScope(), "(extern sqrt 2)", "(extern sqrt 2)", "(extern sqrt 2)")
	checkBounds(t, xScope(), "(call f 3)", "_", "_")
	checkBounds(t, xScope(), "(call f:i16 3)", "-32768:i16", "32767:i16")
}

func Test_Bounds_Abs_01(t *testing.T) {
	checkBounds(t, xScope(), "(abs (- x 5))", "0", "5")
	checkBounds(t, xScope(), "(abs (- x 20))", "0", "20")
	checkBounds(t, xScope(), "(abs (/ x (+ x y)))", "0", "_")
}

func Test_Bounds_Abs_02(t *testing.T) {
	i8 := ir.Int(8)
	// Negating -128 wraps around
	checkBounds(t, vScope(i8, -128, 5), "(abs v:i8)", "-128:i8", "127:i8")
	checkBounds(t, vScope(i8, -20, 5), "(abs v:i8)", "0:i8", "20:i8")
	checkBounds(t, vScope(i8, -127, 5), "(abs v:i8)", "0:i8", "127:i8")
}

func Test_Bounds_Cast_01(t *testing.T) {
	checkBounds(t, xScope(), "(cast u8 x)", "0:u8", "10:u8")
	checkBounds(t, xScope(), "(cast i64 x)", "0:i64", "10:i64")
	checkBounds(t, xScope(), "(cast f32 x)", "0.0", "10.0")
	checkBounds(t, xScope(), "(cast i16 (cast u8 x))", "0:i16", "10:i16")
}

func Test_Bounds_Cast_02(t *testing.T) {
	// Cannot rule out overflow
	checkBounds(t, xScope(), "(cast i8 (* x 100))", "-128:i8", "127:i8")
	checkBounds(t, xScope(), "(cast u8 (- x 1))", "0:u8", "255:u8")
	checkBounds(t, xScope(), "(cast u16 (cast i8 (- x 1)))", "0:u16", "65535:u16")
}

func Test_Bounds_Cast_03(t *testing.T) {
	checkBounds(t, xScope(), "(cast i32 1.5)", "1", "1")
	checkBounds(t, nil, "(cast u32 y)", "(cast u32 y)", "(cast u32 y)")
	checkBounds(t, fScope(), "(cast u8 f:f32)", "0:u8", "100:u8")
	checkBounds(t, fScope(), "(cast i8 f:f32)", "0:i8", "100:i8")
	checkBounds(t, fScope(), "(cast i8 (+ f:f32 1.0))", "-128:i8", "127:i8")
}

func Test_Bounds_Cast_04(t *testing.T) {
	// Wider destinations
	checkBounds(t, fScope(), "(cast u64 f:f32)", "0:u64", "100:u64")
	checkBounds(t, fScope(), "(cast i64 f:f32)", "0:i64", "100:i64")
	checkBounds(t, xScope(), "(cast u64 x)", "0:u64", "10:u64")
}

func Test_Bounds_Narrow_01(t *testing.T) {
	checkBounds(t, xScope(), "(+ (cast u8 x) 250:u8)", "0:u8", "255:u8")
	checkBounds(t, xScope(), "(+ (cast u8 x) 240:u8)", "240:u8", "250:u8")
}

func Test_Bounds_Narrow_02(t *testing.T) {
	checkBounds(t, xScope(), "(* (+ (cast u8 x) 10:u8) 20:u8)", "0:u8", "255:u8")
	checkBounds(t, xScope(), "(* (+ (cast u8 x) 10:u8) 10:u8)", "100:u8", "200:u8")
}

func Test_Bounds_Narrow_03(t *testing.T) {
	checkBounds(t, xScope(), "(* (+ (cast u8 x) 10:u8) (+ (cast u8 x) 5:u8))", "0:u8", "255:u8")
	checkBounds(t, xScope(), "(* (+ (cast u8 x) 10:u8) (cast u8 x))", "0:u8", "200:u8")
}

func Test_Bounds_Narrow_04(t *testing.T) {
	checkBounds(t, xScope(), "(- (+ (cast u8 x) 10:u8) (+ (cast u8 x) 5:u8))", "0:u8", "255:u8")
	checkBounds(t, xScope(), "(- (+ (cast u8 x) 20:u8) (+ (cast u8 x) 5:u8))", "5:u8", "25:u8")
}

func Test_Bounds_Narrow_05(t *testing.T) {
	checkBounds(t, xScope(), "(- (cast i8 x) 100:i8)", "-100:i8", "-90:i8")
	checkBounds(t, xScope(), "(- (cast i8 x) -120:i8)", "-128:i8", "127:i8")
	checkBounds(t, xScope(), "(* (cast i16 x) -3000:i16)", "-30000:i16", "0:i16")
	checkBounds(t, xScope(), "(* (cast i16 x) -4000:i16)", "-32768:i16", "32767:i16")
}

func Test_Bounds_Vector_01(t *testing.T) {
	assert.Panics(t, func() { Of(parseExpr(t, "(ramp x 1 4)"), nil) })
	assert.Panics(t, func() { Of(parseExpr(t, "(+ x (broadcast 1 4))"), nil) })
}

// ===================================================================
// Properties
// ===================================================================

func Test_Bounds_Sound_01(t *testing.T) {
	var (
		rng   = rand.New(rand.NewPCG(1, 2))
		x, y  = ir.Var("x"), ir.Var("y")
		scope = NewScope()
	)
	//
	scope.Push("x", constInterval(-10, 10))
	scope.Push("y", constInterval(0, 5))
	//
	for i := 0; i < 2000; i++ {
		e := randomExpr(rng, ir.Int(32), []ir.Expr{x, y}, 3)
		checkSound(t, rng, e, scope, map[string][2]int64{"x": {-10, 10}, "y": {0, 5}})
	}
}

func Test_Bounds_Sound_02(t *testing.T) {
	var (
		rng   = rand.New(rand.NewPCG(3, 4))
		u8    = ir.UInt(8)
		v     = ir.NewVariable("v", u8)
		scope = NewScope()
	)
	//
	scope.Push("v", Interval{ir.Const(u8, 3), ir.Const(u8, 40)})
	//
	for i := 0; i < 2000; i++ {
		e := randomExpr(rng, u8, []ir.Expr{v}, 3)
		checkSound(t, rng, e, scope, map[string][2]int64{"v": {3, 40}})
	}
}

func Test_Bounds_Sound_03(t *testing.T) {
	var (
		rng   = rand.New(rand.NewPCG(5, 6))
		i8    = ir.Int(8)
		v     = ir.NewVariable("v", i8)
		scope = NewScope()
	)
	//
	scope.Push("v", Interval{ir.Const(i8, -20), ir.Const(i8, 20)})
	//
	for i := 0; i < 2000; i++ {
		e := randomExpr(rng, i8, []ir.Expr{v}, 3)
		checkSound(t, rng, e, scope, map[string][2]int64{"v": {-20, 20}})
	}
}

// ===================================================================

func checkBounds(t *testing.T, scope *Scope, input string, lo string, hi string) {
	t.Helper()
	//
	expected := Interval{parseBound(t, lo), parseBound(t, hi)}
	actual := Of(parseExpr(t, input), scope).Simplify()
	//
	if !actual.Equal(expected) {
		t.Errorf("bounds of %s: expected %s, got %s", input, expected, actual)
	}
}

// Check the bounds of a given expression enclose its value for a number of
// randomly chosen assignments.  Variables are given as a range of values.
func checkSound(t *testing.T, rng *rand.Rand, e ir.Expr, scope *Scope, vars map[string][2]int64) {
	t.Helper()
	//
	var (
		typ      = e.Type()
		interval = Of(e, scope).Simplify()
		lo, hi   = constBound(t, e, interval.Min), constBound(t, e, interval.Max)
	)
	//
	for i := 0; i < 20; i++ {
		var mapping = make(map[string]ir.Expr)
		//
		for name, r := range vars {
			mapping[name] = ir.Const(typ, r[0]+rng.Int64N(r[1]-r[0]+1))
		}
		//
		val := evaluate(t, e, mapping)
		//
		if lo != nil && typ.CompareInts(lo.Value, val.Value) > 0 {
			t.Fatalf("%s = %s under %v, which is below %s", e, val, mapping, interval)
		} else if hi != nil && typ.CompareInts(val.Value, hi.Value) > 0 {
			t.Fatalf("%s = %s under %v, which is above %s", e, val, mapping, interval)
		} else if interval.IsSinglePoint() && lo.Value != val.Value {
			t.Fatalf("%s = %s under %v, but bounds are exactly %s", e, val, mapping, interval)
		}
	}
}

func constBound(t *testing.T, e ir.Expr, bound ir.Expr) *ir.IntImm {
	if bound == nil {
		return nil
	} else if c, ok := bound.(*ir.IntImm); ok && c.Type() == e.Type() {
		return c
	}
	//
	t.Fatalf("bound %s of %s is not a literal of type %s", bound, e, e.Type())
	//
	return nil
}

func evaluate(t *testing.T, e ir.Expr, mapping map[string]ir.Expr) *ir.IntImm {
	val, ok := simplify.Simplify(ir.Substitute(e, mapping)).(*ir.IntImm)
	//
	if !ok {
		t.Fatalf("failed evaluating %s", e)
	}
	//
	return val
}

// Generate a random integer expression of bounded depth over given variables.
// Divisors and moduli are kept to positive literals, except for signed 32bit
// types where arbitrary divisors (including zero) are used.
func randomExpr(rng *rand.Rand, t ir.Type, vars []ir.Expr, depth int) ir.Expr {
	if depth == 0 || rng.IntN(5) == 0 {
		if rng.IntN(3) == 0 {
			return ir.Const(t, rng.Int64N(11)-5)
		}
		//
		return vars[rng.IntN(len(vars))]
	}
	//
	a := randomExpr(rng, t, vars, depth-1)
	b := randomExpr(rng, t, vars, depth-1)
	divisor := ir.Const(t, 1+rng.Int64N(7))
	//
	switch rng.IntN(10) {
	case 0:
		return ir.NewAdd(a, b)
	case 1:
		return ir.NewSub(a, b)
	case 2:
		return ir.NewMul(a, b)
	case 3:
		if t == ir.Int(32) {
			return ir.NewDiv(a, b)
		}
		//
		return ir.NewDiv(a, divisor)
	case 4:
		if t == ir.Int(32) {
			return ir.NewMod(a, b)
		}
		//
		return ir.NewMod(a, divisor)
	case 5:
		return ir.NewMin(a, b)
	case 6:
		return ir.NewMax(a, b)
	case 7:
		c := randomExpr(rng, t, vars, depth-1)
		return ir.NewSelect(ir.NewLT(a, b), c, a)
	case 8:
		// Let values are kept shallow to avoid overflow in the body.
		z := ir.NewVariable("z", t)
		value := randomExpr(rng, t, vars, 1)
		body := randomExpr(rng, t, append([]ir.Expr{z}, vars...), depth-1)
		//
		return ir.NewLet("z", value, body)
	default:
		return ir.Clamp(a, ir.Const(t, -3), ir.Const(t, 7))
	}
}

func xScope() *Scope {
	scope := NewScope()
	scope.Push("x", constInterval(0, 10))
	//
	return scope
}

func fScope() *Scope {
	scope := NewScope()
	scope.Push("f", Interval{ir.Float32(0), ir.Float32(100)})
	//
	return scope
}

func vScope(t ir.Type, lo int64, hi int64) *Scope {
	scope := NewScope()
	scope.Push("v", Interval{ir.Const(t, lo), ir.Const(t, hi)})
	//
	return scope
}

func parseExpr(t *testing.T, input string) ir.Expr {
	t.Helper()
	//
	e, err := ir.ParseExpr(input)
	if err != nil {
		t.Fatalf("failed parsing %s: %v", input, err)
	}
	//
	return e
}

func parseBound(t *testing.T, input string) ir.Expr {
	if input == "_" {
		return nil
	}
	//
	return parseExpr(t, input)
}
