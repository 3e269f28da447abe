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
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/consensys/go-bounds/pkg/util/source/sexp"
)

// ============================================================================
// Integer Constant
// ============================================================================

// IntImm represents an integer literal of a given (signed or unsigned) type.
// The value is always held in wrapped form for its type.
type IntImm struct {
	typ   Type
	Value int64
}

// NewIntImm constructs an integer literal of the given type, wrapping the value
// as necessary.
func NewIntImm(t Type, value int64) *IntImm {
	if t.IsFloat() {
		panic("integer literal of floating point type")
	}
	//
	return &IntImm{t, t.Wrap(value)}
}

// Type implementation for Expr interface.
func (p *IntImm) Type() Type { return p.typ }

// Lisp implementation for Node interface.
func (p *IntImm) Lisp() sexp.SExp {
	var val string
	//
	if p.typ.IsUInt() {
		val = strconv.FormatUint(uint64(p.Value), 10)
	} else {
		val = strconv.FormatInt(p.Value, 10)
	}
	//
	if p.typ != Int(32) {
		val = fmt.Sprintf("%s:%s", val, p.typ)
	}
	//
	return sexp.NewSymbol(val)
}

func (p *IntImm) String() string { return p.Lisp().String(false) }

// ============================================================================
// Float Constant
// ============================================================================

// FloatImm represents a floating point literal.
type FloatImm struct {
	typ   Type
	Value float64
}

// NewFloatImm constructs a floating point literal, rounding the value to the
// precision of the given type.
func NewFloatImm(t Type, value float64) *FloatImm {
	if !t.IsFloat() {
		panic("floating point literal of integer type")
	}
	//
	return &FloatImm{t, t.RoundFloat(value)}
}

// Type implementation for Expr interface.
func (p *FloatImm) Type() Type { return p.typ }

// Lisp implementation for Node interface.
func (p *FloatImm) Lisp() sexp.SExp {
	val := strconv.FormatFloat(p.Value, 'g', -1, 64)
	// Ensure this cannot be confused with an integer literal
	if !math.IsInf(p.Value, 0) && !math.IsNaN(p.Value) && !strings.ContainsAny(val, ".e") {
		val = val + ".0"
	}
	//
	if p.typ != Float(32) {
		val = fmt.Sprintf("%s:%s", val, p.typ)
	}
	//
	return sexp.NewSymbol(val)
}

func (p *FloatImm) String() string { return p.Lisp().String(false) }

// ============================================================================
// Helpers
// ============================================================================

// Const constructs a literal of the given type holding the given value.
func Const(t Type, value int64) Expr {
	if t.IsFloat() {
		return NewFloatImm(t, float64(value))
	}
	//
	return NewIntImm(t, value)
}

// Int32 constructs a 32bit signed integer literal.
func Int32(value int64) Expr {
	return NewIntImm(Int(32), value)
}

// Float32 constructs a 32bit floating point literal.
func Float32(value float64) Expr {
	return NewFloatImm(Float(32), value)
}

// Zero constructs the literal zero of a given type.
func Zero(t Type) Expr { return Const(t, 0) }

// One constructs the literal one of a given type.
func One(t Type) Expr { return Const(t, 1) }

// True constructs the boolean literal true.
func True() Expr { return NewIntImm(Bool(), 1) }

// False constructs the boolean literal false.
func False() Expr { return NewIntImm(Bool(), 0) }

// IsConst checks whether a given expression is a literal.
func IsConst(e Expr) bool {
	switch e.(type) {
	case *IntImm, *FloatImm:
		return true
	default:
		return false
	}
}

// IsZero checks whether a given expression is a literal zero.
func IsZero(e Expr) bool {
	switch e := e.(type) {
	case *IntImm:
		return e.Value == 0
	case *FloatImm:
		return e.Value == 0
	default:
		return false
	}
}

// IsOne checks whether a given expression is a literal one (which includes the
// boolean literal true).
func IsOne(e Expr) bool {
	switch e := e.(type) {
	case *IntImm:
		return e.Value == 1
	case *FloatImm:
		return e.Value == 1
	default:
		return false
	}
}

// IsPositiveConst checks whether a given expression is a literal strictly
// greater than zero.
func IsPositiveConst(e Expr) bool {
	switch e := e.(type) {
	case *IntImm:
		return e.typ.CompareInts(e.Value, 0) > 0
	case *FloatImm:
		return e.Value > 0
	default:
		return false
	}
}

// IsNegativeConst checks whether a given expression is a literal strictly less
// than zero.
func IsNegativeConst(e Expr) bool {
	switch e := e.(type) {
	case *IntImm:
		return e.typ.CompareInts(e.Value, 0) < 0
	case *FloatImm:
		return e.Value < 0
	default:
		return false
	}
}
