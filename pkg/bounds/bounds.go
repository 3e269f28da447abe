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
	"fmt"
	"math"

	"github.com/consensys/go-bounds/pkg/ir"
	"github.com/consensys/go-bounds/pkg/ir/simplify"
	log "github.com/sirupsen/logrus"
)

// Of computes an interval containing every value a given expression can take,
// assuming every variable bound in the given scope takes a value within its
// interval.  Variables not bound in the scope are left symbolic.  A nil scope
// is treated as empty.  Since expressions cannot be vectors, attempting to
// bound a vector construct (e.g. a ramp) is a contract violation.
func Of(e ir.Expr, scope *Scope) Interval {
	if scope == nil {
		scope = NewScope()
	}
	//
	engine := &boundsEngine{scope.Nest()}
	//
	return engine.bounds(e)
}

// TypeRange returns the interval of values representable in a given type.  This
// is unbounded for types of 32bits or more, since the engine relies upon its
// overflow analysis for such types.
func TypeRange(t ir.Type) Interval {
	if t.IsFloat() || t.Bits > 16 {
		return Everything()
	}
	//
	return Interval{ir.Const(t, t.MinInt()), ir.Const(t, t.MaxInt())}
}

// The engine carries its own nested scope for the lets it encounters, leaving
// the caller's scope untouched.
type boundsEngine struct {
	scope *Scope
}

func (p *boundsEngine) bounds(e ir.Expr) Interval {
	switch e := e.(type) {
	case *ir.IntImm, *ir.FloatImm:
		return Exactly(e)
	case *ir.Variable:
		return p.boundsOfVariable(e)
	case *ir.Cast:
		return p.boundsOfCast(e)
	case *ir.Add:
		return p.boundsOfAdd(e)
	case *ir.Sub:
		return p.boundsOfSub(e)
	case *ir.Mul:
		return p.boundsOfMul(e)
	case *ir.Div:
		return p.boundsOfDiv(e)
	case *ir.Mod:
		return p.boundsOfMod(e)
	case *ir.Min:
		return p.boundsOfMin(e)
	case *ir.Max:
		return p.boundsOfMax(e)
	case *ir.Compare, *ir.And, *ir.Or, *ir.Not:
		return Everything()
	case *ir.Select:
		return p.boundsOfSelect(e)
	case *ir.Load:
		return p.boundsOfLoad(e)
	case *ir.Call:
		return p.boundsOfCall(e)
	case *ir.Let:
		return p.boundsOfLet(e)
	case *ir.Ramp, *ir.Broadcast:
		panic(fmt.Sprintf("bounds of vector (%s)", e.String()))
	}
	//
	panic(fmt.Sprintf("unknown expression encountered (%T)", e))
}

func (p *boundsEngine) boundsOfVariable(e *ir.Variable) Interval {
	if binding := p.scope.Lookup(e.Name); binding.HasValue() {
		return binding.Unwrap()
	}
	//
	log.Tracef("variable %s not in scope, so it is left symbolic", e.Name)
	//
	return Exactly(e)
}

// ============================================================================
// Casts
// ============================================================================

func (p *boundsEngine) boundsOfCast(e *ir.Cast) Interval {
	var (
		from = e.Value.Type()
		to   = e.Type()
		a    = p.bounds(e.Value)
	)
	//
	if unchanged(a, e.Value) {
		return Exactly(e)
	} else if a.IsSinglePoint() {
		return Exactly(ir.NewCast(to, a.Min))
	} else if couldOverflow(from, to, a) {
		return TypeRange(to)
	}
	// Narrow range of source type by whatever bounds are known.
	result := TypeRange(from)
	//
	if a.Min != nil {
		result.Min = a.Min
	}
	//
	if a.Max != nil {
		result.Max = a.Max
	}
	//
	return Interval{castOf(to, result.Min), castOf(to, result.Max)}
}

// Determine whether or not casting a value within a given interval from one
// type to another could overflow.  Casts into signed integer types of 32bits or
// more are assumed never to overflow.
func couldOverflow(from ir.Type, to ir.Type, a Interval) bool {
	switch {
	case to.IsFloat():
		return false
	case to.IsInt() && from.IsInt() && to.Bits >= from.Bits:
		return false
	case to.IsUInt() && from.IsUInt() && to.Bits >= from.Bits:
		return false
	case to.IsInt() && from.IsUInt() && to.Bits > from.Bits:
		return false
	case to.IsInt() && to.Bits >= 32:
		return false
	}
	// Constant bounds may show the cast is safe.
	if lo, hi, ok := intBounds(a); ok && from == ir.Int(32) {
		if to.IsUInt() {
			return lo < 0 || (to.Bits < 32 && hi >= int64(1)<<to.Bits)
		}
		//
		return lo < -(int64(1)<<(to.Bits-1)) || hi >= int64(1)<<(to.Bits-1)
	} else if lo, hi, ok := floatBounds(a); ok && from == ir.Float(32) {
		magnitude := math.Pow(2, float64(to.Bits-1))
		//
		if to.IsUInt() {
			return lo < 0 || hi >= 2*magnitude
		}
		//
		return lo < -magnitude || hi >= magnitude
	}
	//
	return true
}

func intBounds(a Interval) (int64, int64, bool) {
	lo, ok1 := a.Min.(*ir.IntImm)
	hi, ok2 := a.Max.(*ir.IntImm)
	//
	if ok1 && ok2 {
		return lo.Value, hi.Value, true
	}
	//
	return 0, 0, false
}

func floatBounds(a Interval) (float64, float64, bool) {
	lo, ok1 := a.Min.(*ir.FloatImm)
	hi, ok2 := a.Max.(*ir.FloatImm)
	//
	if ok1 && ok2 {
		return lo.Value, hi.Value, true
	}
	//
	return 0, 0, false
}

func castOf(t ir.Type, e ir.Expr) ir.Expr {
	if e == nil {
		return nil
	}
	//
	return ir.CastTo(t, e)
}

// ============================================================================
// Arithmetic
// ============================================================================

func (p *boundsEngine) boundsOfAdd(e *ir.Add) Interval {
	var (
		a      = p.bounds(e.A)
		b      = p.bounds(e.B)
		result Interval
	)
	//
	if unchanged(a, e.A) && unchanged(b, e.B) {
		return Exactly(e)
	}
	//
	if a.Min != nil && b.Min != nil {
		result.Min = ir.NewAdd(a.Min, b.Min)
	}
	//
	if a.IsSinglePoint() && b.IsSinglePoint() {
		result.Max = result.Min
	} else if a.Max != nil && b.Max != nil {
		result.Max = ir.NewAdd(a.Max, b.Max)
	}
	//
	if isNarrow(e.Type()) {
		widened := func(x, y ir.Expr) ir.Expr { return ir.NewAdd(widen(x), widen(y)) }
		//
		if !provablyExact(result.Max, widened, a.Max, b.Max) ||
			!provablyExact(result.Min, widened, a.Min, b.Min) {
			log.Tracef("cannot rule out overflow in %s", e)
			return TypeRange(e.Type())
		}
	}
	//
	return result
}

func (p *boundsEngine) boundsOfSub(e *ir.Sub) Interval {
	var (
		a      = p.bounds(e.A)
		b      = p.bounds(e.B)
		result Interval
	)
	//
	if unchanged(a, e.A) && unchanged(b, e.B) {
		return Exactly(e)
	}
	//
	if a.Min != nil && b.Max != nil {
		result.Min = ir.NewSub(a.Min, b.Max)
	}
	//
	if a.IsSinglePoint() && b.IsSinglePoint() {
		result.Max = result.Min
	} else if a.Max != nil && b.Min != nil {
		result.Max = ir.NewSub(a.Max, b.Min)
	}
	//
	if isNarrow(e.Type()) {
		widened := func(x, y ir.Expr) ir.Expr { return ir.NewSub(widen(x), widen(y)) }
		//
		if !provablyExact(result.Max, widened, a.Max, b.Min) ||
			!provablyExact(result.Min, widened, a.Min, b.Max) {
			log.Tracef("cannot rule out overflow in %s", e)
			return TypeRange(e.Type())
		}
	}
	// Unsigned subtraction must not underflow.
	if e.Type().IsUInt() && result.Min != nil && !simplify.IsTrue(ir.NewLE(b.Max, a.Min)) {
		log.Tracef("cannot rule out underflow in %s", e)
		return TypeRange(e.Type())
	}
	//
	return result
}

func (p *boundsEngine) boundsOfMul(e *ir.Mul) Interval {
	var (
		t = e.Type()
		a = p.bounds(e.A)
		b = p.bounds(e.B)
	)
	//
	if !a.IsBounded() || !b.IsBounded() {
		return Everything()
	} else if unchanged(a, e.A) && unchanged(b, e.B) {
		return Exactly(e)
	}
	//
	var result Interval
	//
	switch {
	case a.IsSinglePoint() && b.IsSinglePoint():
		result = Exactly(ir.NewMul(a.Min, b.Min))
	case a.IsSinglePoint():
		result = scale(t, b, a.Min)
	case b.IsSinglePoint():
		result = scale(t, a, b.Min)
	default:
		result = extrema(ir.NewMul(a.Min, b.Min), ir.NewMul(a.Min, b.Max),
			ir.NewMul(a.Max, b.Min), ir.NewMul(a.Max, b.Max))
	}
	//
	if isNarrow(t) {
		var proof ir.Expr = ir.True()
		// Every product of endpoints must fit.
		for _, x := range []ir.Expr{a.Min, a.Max} {
			for _, y := range []ir.Expr{b.Min, b.Max} {
				test := ir.NewEQ(ir.NewMul(widen(x), widen(y)), widen(ir.NewMul(x, y)))
				proof = ir.NewAnd(proof, test)
			}
		}
		//
		if !simplify.IsTrue(proof) {
			log.Tracef("cannot rule out overflow in %s", e)
			return TypeRange(t)
		}
	}
	//
	return result
}

// Multiply an interval by a single (symbolic) value, splitting on the sign of
// that value when it is not known.
func scale(t ir.Type, a Interval, c ir.Expr) Interval {
	switch {
	case ir.IsZero(c):
		return Exactly(c)
	case ir.IsPositiveConst(c) || t.IsUInt():
		return Interval{ir.NewMul(a.Min, c), ir.NewMul(a.Max, c)}
	case ir.IsNegativeConst(c):
		return Interval{ir.NewMul(a.Max, c), ir.NewMul(a.Min, c)}
	}
	//
	cmp := ir.NewGE(c, ir.Zero(t))
	//
	return Interval{
		ir.NewSelect(cmp, ir.NewMul(a.Min, c), ir.NewMul(a.Max, c)),
		ir.NewSelect(cmp, ir.NewMul(a.Max, c), ir.NewMul(a.Min, c)),
	}
}

func (p *boundsEngine) boundsOfDiv(e *ir.Div) Interval {
	var (
		t = e.Type()
		a = p.bounds(e.A)
		b = p.bounds(e.B)
	)
	//
	if !a.IsBounded() || !b.IsBounded() {
		return Everything()
	} else if unchanged(a, e.A) && unchanged(b, e.B) {
		return Exactly(e)
	}
	//
	if b.IsSinglePoint() {
		c := b.Min
		//
		switch {
		case ir.IsZero(c):
			log.Tracef("cannot bound division by zero in %s", e)
			return Everything()
		case ir.IsPositiveConst(c) || t.IsUInt():
			return Interval{ir.NewDiv(a.Min, c), ir.NewDiv(a.Max, c)}
		case ir.IsNegativeConst(c):
			return Interval{ir.NewDiv(a.Max, c), ir.NewDiv(a.Min, c)}
		}
		// Sign of divisor unknown
		lo, hi := ir.NewDiv(a.Min, c), ir.NewDiv(a.Max, c)
		cmp := ir.NewGT(c, ir.Zero(t))
		//
		return Interval{ir.NewSelect(cmp, lo, hi), ir.NewSelect(cmp, hi, lo)}
	}
	// Divisor must not span zero
	positive := ir.IsPositiveConst(b.Min) || simplify.IsTrue(ir.NewGT(b.Min, ir.Zero(t)))
	negative := ir.IsNegativeConst(b.Max) || simplify.IsTrue(ir.NewLT(b.Max, ir.Zero(t)))
	//
	if !positive && !negative && !ir.Equal(b.Min, b.Max) {
		log.Tracef("divisor of %s may span zero", e)
		return Everything()
	}
	//
	return extrema(ir.NewDiv(a.Min, b.Min), ir.NewDiv(a.Min, b.Max),
		ir.NewDiv(a.Max, b.Min), ir.NewDiv(a.Max, b.Max))
}

func (p *boundsEngine) boundsOfMod(e *ir.Mod) Interval {
	var (
		t    = e.Type()
		zero = ir.Zero(t)
		a    = p.bounds(e.A)
		b    = p.bounds(e.B)
	)
	//
	if !b.IsBounded() {
		return Everything()
	} else if unchanged(a, e.A) && unchanged(b, e.B) {
		return Exactly(e)
	} else if b.IsSinglePoint() && ir.IsZero(b.Min) {
		log.Tracef("cannot bound modulus by zero in %s", e)
		return Everything()
	} else if a.IsSinglePoint() && b.IsSinglePoint() {
		return Exactly(ir.NewMod(a.Min, b.Min))
	}
	// The remainder is non-negative, and smaller than the divisor's magnitude.
	positive := ir.IsPositiveConst(b.Min) || simplify.IsTrue(ir.NewGT(b.Min, zero))
	//
	switch {
	case t.IsFloat() && positive:
		return Interval{zero, b.Max}
	case t.IsFloat():
		log.Tracef("divisor of %s may not be positive", e)
		return Everything()
	case positive || t.IsUInt():
		return Interval{zero, ir.NewSub(b.Max, ir.One(t))}
	case isNarrow(t):
		return Interval{zero, ir.Const(t, t.MaxInt())}
	}
	// Divisor may be negative or zero
	magnitude := ir.NewMax(ir.NewSub(zero, b.Min), b.Max)
	//
	return Interval{zero, ir.NewMax(ir.NewSub(magnitude, ir.One(t)), zero)}
}

// ============================================================================
// Min / Max
// ============================================================================

func (p *boundsEngine) boundsOfMin(e *ir.Min) Interval {
	var (
		a      = p.bounds(e.A)
		b      = p.bounds(e.B)
		result Interval
	)
	//
	if unchanged(a, e.A) && unchanged(b, e.B) {
		return Exactly(e)
	} else if ir.SameAs(a.Min, b.Min) && ir.SameAs(a.Max, b.Max) {
		return a
	}
	//
	if a.Min != nil && b.Min != nil {
		result.Min = ir.NewMin(a.Min, b.Min)
	}
	// Either upper bound is sufficient
	switch {
	case a.Max != nil && b.Max != nil:
		result.Max = ir.NewMin(a.Max, b.Max)
	case a.Max != nil:
		result.Max = a.Max
	default:
		result.Max = b.Max
	}
	//
	log.Tracef("bounds of %s are %s", e, result)
	//
	return result
}

func (p *boundsEngine) boundsOfMax(e *ir.Max) Interval {
	var (
		a      = p.bounds(e.A)
		b      = p.bounds(e.B)
		result Interval
	)
	//
	if unchanged(a, e.A) && unchanged(b, e.B) {
		return Exactly(e)
	} else if ir.SameAs(a.Min, b.Min) && ir.SameAs(a.Max, b.Max) {
		return a
	}
	// Either lower bound is sufficient
	switch {
	case a.Min != nil && b.Min != nil:
		result.Min = ir.NewMax(a.Min, b.Min)
	case a.Min != nil:
		result.Min = a.Min
	default:
		result.Min = b.Min
	}
	//
	if a.Max != nil && b.Max != nil {
		result.Max = ir.NewMax(a.Max, b.Max)
	}
	//
	log.Tracef("bounds of %s are %s", e, result)
	//
	return result
}

// ============================================================================
// Other
// ============================================================================

func (p *boundsEngine) boundsOfSelect(e *ir.Select) Interval {
	var (
		a = p.bounds(e.True)
		b = p.bounds(e.False)
	)
	//
	if !a.IsBounded() || !b.IsBounded() {
		return Everything()
	}
	//
	return Interval{minOf(a.Min, b.Min), maxOf(a.Max, b.Max)}
}

func (p *boundsEngine) boundsOfLoad(e *ir.Load) Interval {
	if index := p.bounds(e.Index); index.IsSinglePoint() {
		return Exactly(ir.NewLoad(e.Type(), e.Name, index.Min))
	}
	//
	return TypeRange(e.Type())
}

func (p *boundsEngine) boundsOfCall(e *ir.Call) Interval {
	var t = e.Type()
	//
	if e.CallType == ir.IMAGE_CALL || e.CallType == ir.EXTERN_CALL {
		if args, ok := p.exactArgs(e.Args); ok {
			return Exactly(ir.NewCall(t, e.Name, args, e.CallType))
		}
	}
	//
	if e.IsIntrinsic(ir.ABS) && len(e.Args) == 1 {
		return p.boundsOfAbs(t, e.Args[0])
	}
	//
	return TypeRange(t)
}

func (p *boundsEngine) boundsOfAbs(t ir.Type, arg ir.Expr) Interval {
	var (
		zero = ir.Zero(t)
		a    = p.bounds(arg)
	)
	//
	if isNarrow(t) && t.IsInt() {
		// Negating the most negative value wraps around.
		if !a.IsBounded() || !provablyExact(ir.NewSub(zero, a.Min), widenedSub, zero, a.Min) {
			log.Tracef("cannot rule out overflow in abs of %s", arg)
			return TypeRange(t)
		}
	} else if !a.IsBounded() {
		return Interval{zero, nil}
	}
	//
	return Interval{zero, ir.NewMax(ir.NewSub(zero, a.Min), a.Max)}
}

func widenedSub(x, y ir.Expr) ir.Expr {
	return ir.NewSub(widen(x), widen(y))
}

// Determine the arguments of a call when they all resolve to single points.
func (p *boundsEngine) exactArgs(args []ir.Expr) ([]ir.Expr, bool) {
	var nargs = make([]ir.Expr, len(args))
	//
	for i, arg := range args {
		b := p.bounds(arg)
		//
		if !b.IsSinglePoint() {
			return nil, false
		}
		//
		nargs[i] = b.Min
	}
	//
	return nargs, true
}

func (p *boundsEngine) boundsOfLet(e *ir.Let) Interval {
	p.scope.Push(e.Name, p.bounds(e.Value))
	//
	defer p.scope.Pop(e.Name)
	//
	return p.bounds(e.Body)
}

// ============================================================================
// Helpers
// ============================================================================

// Check whether the bounds computed for an expression are that expression
// itself.
func unchanged(a Interval, e ir.Expr) bool {
	return ir.SameAs(a.Min, e) && ir.SameAs(a.Max, e)
}

// Fixed-width integer types narrower than 32bits require an explicit check for
// overflow.
func isNarrow(t ir.Type) bool {
	return !t.IsFloat() && t.Bits < 32
}

func widen(e ir.Expr) ir.Expr {
	return ir.NewCast(ir.Int(32), e)
}

// Check whether a bound computed in a narrow type provably equals the same
// computation carried out in 32bits.  An undefined bound trivially passes.
func provablyExact(bound ir.Expr, widened func(ir.Expr, ir.Expr) ir.Expr, x ir.Expr, y ir.Expr) bool {
	if bound == nil {
		return true
	}
	//
	return simplify.IsTrue(ir.NewEQ(widened(x, y), widen(bound)))
}

// Construct the smallest interval enclosing four candidate extrema.
func extrema(a, b, c, d ir.Expr) Interval {
	return Interval{
		ir.NewMin(ir.NewMin(a, b), ir.NewMin(c, d)),
		ir.NewMax(ir.NewMax(a, b), ir.NewMax(c, d)),
	}
}
