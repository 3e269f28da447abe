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
	"testing"

	"github.com/consensys/go-bounds/pkg/ir"
	"github.com/consensys/go-bounds/pkg/util/assert"
)

const TRUE = "1:u1"
const FALSE = "0:u1"

// Constant folding

func Test_Fold_01(t *testing.T) {
	checkSimplify(t, "3", "(+ 1 2)", "(- 5 2)", "(* 1 3)", "(+ (* 2 2) (- 0 1))")
}

func Test_Fold_02(t *testing.T) {
	checkSimplify(t, "-2", "(- 3 5)", "(- (* 2 3) 8)")
}

func Test_Fold_03(t *testing.T) {
	// Fixed-width arithmetic wraps
	checkSimplify(t, "144:u8", "(* 200:u8 2:u8)")
	checkSimplify(t, "-128:i8", "(+ 127:i8 1:i8)")
	checkSimplify(t, "255:u8", "(- 0:u8 1:u8)")
	checkSimplify(t, "127:u8", "(/ 255:u8 2:u8)")
}

func Test_Fold_04(t *testing.T) {
	// Euclidean division
	checkSimplify(t, "3", "(/ 7 2)")
	checkSimplify(t, "-4", "(/ -7 2)")
	checkSimplify(t, "-3", "(/ 7 -2)")
	checkSimplify(t, "4", "(/ -7 -2)")
	checkSimplify(t, "1", "(% 7 2)", "(% -7 2)", "(% 7 -2)", "(% -7 -2)")
}

func Test_Fold_05(t *testing.T) {
	// Division by zero yields zero
	checkSimplify(t, "0", "(/ 7 0)", "(% 7 0)", "(/ x 0)", "(% x 0)", "(% x 1)", "(/ 0 x)", "(% 0 x)")
}

func Test_Fold_06(t *testing.T) {
	checkSimplify(t, "1.5", "(% 5.5 2.0)", "(+ 1.0 0.5)", "(/ 3.0 2.0)")
	checkSimplify(t, "3.0", "(% -1.0 4.0)")
	checkSimplify(t, "0.25:f64", "(* 0.5:f64 0.5:f64)")
}

func Test_Fold_07(t *testing.T) {
	checkSimplify(t, "3", "(min 3 5)", "(max 3 -5)", "(min (max 1 3) 10)")
	checkSimplify(t, "250:u8", "(max 250:u8 3:u8)")
	checkSimplify(t, "1.5", "(min 1.5 2.5)")
}

func Test_Fold_08(t *testing.T) {
	checkSimplify(t, "44:u8", "(cast u8 300)")
	checkSimplify(t, "255:u8", "(cast u8 -1)")
	checkSimplify(t, "-1", "(cast i32 -1.5)")
	checkSimplify(t, "3.0", "(cast f32 3:u8)")
	checkSimplify(t, "x", "(cast i32 x)")
}

// Linear arithmetic

func Test_Linear_01(t *testing.T) {
	checkSimplify(t, "1", "(- (+ x 1) x)", "(- (+ x y 1) (+ y x))")
	checkSimplify(t, "0", "(- (+ x 1) (+ x 1))", "(- (* x 2) (+ x x))")
}

func Test_Linear_02(t *testing.T) {
	checkSimplify(t, "(* x 5)", "(+ (* x 2) (* 3 x))", "(- (* x 6) x)")
}

func Test_Linear_03(t *testing.T) {
	checkSimplify(t, "(- x (* y 2))", "(- x (* 2 y))", "(- (+ x y) (* y 3))")
}

func Test_Linear_04(t *testing.T) {
	checkSimplify(t, "(- 0 x)", "(- 0 x)", "(- (- 5 x) 5)")
	checkSimplify(t, "(+ (- y x) 5)", "(+ (- 5 x) y)")
}

func Test_Linear_05(t *testing.T) {
	checkSimplify(t, "(- x 3)", "(- x 3)", "(+ x -3)", "(- (+ x 1) 4)")
	checkSimplify(t, "(+ x 3)", "(+ 3 x)", "(- x -3)")
}

func Test_Linear_06(t *testing.T) {
	// Unsigned offsets wrap
	checkSimplify(t, "(+ x:u8 253:u8)", "(- x:u8 3:u8)")
	checkSimplify(t, "x:u8", "(+ (- x:u8 3:u8) 3:u8)")
}

func Test_Linear_07(t *testing.T) {
	// Non-linear terms are opaque
	checkSimplify(t, "(* x y)", "(* x y)")
	checkSimplify(t, "(+ (* x y) 1)", "(- (+ (* x y) 2) 1)")
}

func Test_Linear_08(t *testing.T) {
	// Floating point is never rearranged
	checkSimplify(t, "(- (+ f:f32 1.0) f:f32)", "(- (+ f:f32 1.0) f:f32)")
	checkSimplify(t, "f:f32", "(+ f:f32 0.0)", "(+ 0.0 f:f32)", "(* 1.0 f:f32)", "(- f:f32 0.0)")
	checkSimplify(t, "(* f:f32 2.0)", "(* 2.0 f:f32)")
}

// Min / Max

func Test_MinMax_01(t *testing.T) {
	checkSimplify(t, "(min x 3)", "(min 3 x)", "(min x 3)", "(min (min x 5) 3)", "(min (min x 3) 5)")
	checkSimplify(t, "(max x 5)", "(max 5 x)", "(max (max x 5) 3)")
}

func Test_MinMax_02(t *testing.T) {
	checkSimplify(t, "x", "(min x (+ x 1))", "(max x (- x 1))", "(min x x)")
	checkSimplify(t, "(+ x 1)", "(max x (+ x 1))")
}

func Test_MinMax_03(t *testing.T) {
	// Unsigned arithmetic may wrap
	checkSimplify(t, "(min x:u8 (+ x:u8 1:u8))", "(min x:u8 (+ x:u8 1:u8))")
	checkSimplify(t, "(min x y)", "(min x y)")
}

// Comparisons

func Test_Compare_01(t *testing.T) {
	checkSimplify(t, TRUE, "(< 1 2)", "(<= x (+ x 3))", "(== x x)", "(!= x (+ x 1))", "(>= (+ x 1) x)")
	checkSimplify(t, FALSE, "(> 1 2)", "(> x (+ x 3))", "(!= x x)", "(== x (+ x 1))", "(< x x)")
}

func Test_Compare_02(t *testing.T) {
	// Equality is discharged for any integer type, ordering is not.
	checkSimplify(t, TRUE, "(== x:u8 (+ x:u8 0:u8))", "(!= x:i8 (+ x:i8 1:i8))")
	checkSimplify(t, "(< x:u8 (+ x:u8 1:u8))", "(< x:u8 (+ x:u8 1:u8))")
	checkSimplify(t, "(< x y)", "(< x y)")
}

func Test_Compare_03(t *testing.T) {
	checkSimplify(t, TRUE, "(< 1.5 2.5)", "(== 1:u8 1:u8)", "(> 255:u8 0:u8)")
	checkSimplify(t, FALSE, "(< -1:i8 -2:i8)", "(< 255:u8 1:u8)")
	checkSimplify(t, "(< f:f32 f:f32)", "(< f:f32 f:f32)")
}

// Logical

func Test_Logical_01(t *testing.T) {
	checkSimplify(t, "(< x y)", "(&& (< x y) (== x x))", "(&& (== x x) (< x y))", "(&& (< x y) (< x y))")
	checkSimplify(t, FALSE, "(&& (< x y) (!= x x))")
}

func Test_Logical_02(t *testing.T) {
	checkSimplify(t, "(< x y)", "(|| (< x y) (!= x x))", "(|| (!= x x) (< x y))")
	checkSimplify(t, TRUE, "(|| (< x y) (== x x))")
}

func Test_Logical_03(t *testing.T) {
	checkSimplify(t, "(>= x y)", "(! (< x y))")
	checkSimplify(t, "(< x y)", "(! (! (< x y)))", "(! (>= x y))")
	checkSimplify(t, TRUE, "(! (< 2 1))")
	// NaN prevents negation
	checkSimplify(t, "(! (< f:f32 1.0))", "(! (< f:f32 1.0))")
}

func Test_Select_01(t *testing.T) {
	checkSimplify(t, "x", "(select (< 1 2) x y)", "(select (> 1 2) y x)", "(select (< y z) x x)")
	checkSimplify(t, "(select (< y z) x 1)", "(select (< y z) x (- 2 1))")
}

// Lets

func Test_Let_01(t *testing.T) {
	checkSimplify(t, "(+ x 3)", "(let z 3 (+ z x))", "(let z x (+ z 3))", "(let z (+ 1 2) (+ x z))")
}

func Test_Let_02(t *testing.T) {
	checkSimplify(t, "(let z (+ x y) (* z 2))", "(let z (+ x y) (* z 2))", "(let z (+ x y 0) (* z 2))")
}

func Test_Let_03(t *testing.T) {
	// Dead lets
	checkSimplify(t, "5", "(let z (+ x y) 5)", "(let z (* x y) (- (+ z 5) z))")
}

func Test_Let_04(t *testing.T) {
	// Inner bindings shadow outer ones
	checkSimplify(t, "(+ x 1)", "(let z 1 (let z x (+ z 1)))")
	checkSimplify(t, "2", "(let z 1 (+ z (let z 1 z)))")
}

// Top-level

func Test_Truth_01(t *testing.T) {
	assert.True(t, IsTrue(parse(t, "(<= x (+ x 3))")))
	assert.True(t, IsFalse(parse(t, "(> x (+ x 3))")))
	assert.False(t, IsTrue(parse(t, "(< x y)")))
	assert.False(t, IsFalse(parse(t, "(< x y)")))
	// Only booleans are truths
	assert.False(t, IsTrue(parse(t, "1")))
	assert.False(t, IsFalse(parse(t, "0")))
}

func Test_Truth_02(t *testing.T) {
	assert.True(t, Simplify(nil) == nil)
}

func Test_Linearise_01(t *testing.T) {
	var (
		lhs = Linearise(parse(t, "(+ (* x 3) (- y 2))"))
		rhs = Linearise(parse(t, "(+ y (* 2 x) x)"))
	)
	//
	c, ok := lhs.Sub(rhs).Constant()
	assert.True(t, ok)
	assert.Equal(t, int64(-2), c)
	//
	_, ok = lhs.Constant()
	assert.False(t, ok)
}

// =========================================================================================

// Check that every input simplifies to exactly the expected expression.
func checkSimplify(t *testing.T, expected string, inputs ...string) {
	t.Helper()
	//
	var expect = parse(t, expected)
	//
	for _, input := range inputs {
		if actual := Simplify(parse(t, input)); !ir.Equal(expect, actual) {
			t.Errorf("simplifying %s: expected %s, got %s", input, expect, actual)
		}
	}
}

func parse(t *testing.T, input string) ir.Expr {
	t.Helper()
	//
	e, err := ir.ParseExpr(input)
	if err != nil {
		t.Fatalf("failed parsing %s: %v", input, err)
	}
	//
	return e
}
