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

	"github.com/consensys/go-bounds/pkg/ir"
	"github.com/consensys/go-bounds/pkg/ir/simplify"
	log "github.com/sirupsen/logrus"
)

// Interval represents a (symbolic) range of values [Min, Max], where both ends
// are inclusive.  A nil bound indicates the interval is unbounded in that
// direction.  This arises whenever no sound bound can be established, and is a
// valid result rather than an error.
type Interval struct {
	Min ir.Expr
	Max ir.Expr
}

// Everything returns the interval which is unbounded in both directions.
func Everything() Interval {
	return Interval{}
}

// Exactly returns the interval containing exactly one (symbolic) value.
func Exactly(e ir.Expr) Interval {
	return Interval{e, e}
}

// NewInterval constructs an interval from a given pair of bounds (either of
// which may be nil).
func NewInterval(min ir.Expr, max ir.Expr) Interval {
	return Interval{min, max}
}

// IsBounded checks whether this interval is bounded in both directions.
func (p Interval) IsBounded() bool {
	return p.Min != nil && p.Max != nil
}

// IsEverything checks whether this interval is unbounded in both directions.
func (p Interval) IsEverything() bool {
	return p.Min == nil && p.Max == nil
}

// IsSinglePoint checks whether this interval is known to contain exactly one
// value.  That is, its bounds are the same node or equal literals.
func (p Interval) IsSinglePoint() bool {
	if p.Min == nil {
		return false
	}
	//
	return ir.SameAs(p.Min, p.Max) || (ir.IsConst(p.Min) && ir.Equal(p.Min, p.Max))
}

// Equal checks whether two intervals are structurally equal.
func (p Interval) Equal(other Interval) bool {
	return ir.Equal(p.Min, other.Min) && ir.Equal(p.Max, other.Max)
}

// Simplify both bounds of this interval.
func (p Interval) Simplify() Interval {
	return Interval{simplify.Simplify(p.Min), simplify.Simplify(p.Max)}
}

func (p Interval) String() string {
	return fmt.Sprintf("[%s, %s]", bound(p.Min), bound(p.Max))
}

// IntervalUnion returns the smallest interval enclosing both of the given
// intervals.  The union is unbounded in a given direction if either interval
// is.
func IntervalUnion(a Interval, b Interval) Interval {
	var result Interval
	//
	if a.Max != nil && b.Max != nil {
		result.Max = maxOf(a.Max, b.Max)
	}
	//
	if a.Min != nil && b.Min != nil {
		result.Min = minOf(a.Min, b.Min)
	}
	//
	log.Tracef("union of %s and %s is %s", a, b, result)
	//
	return result
}

func minOf(a ir.Expr, b ir.Expr) ir.Expr {
	if ir.SameAs(a, b) {
		return a
	}
	//
	return ir.NewMin(a, b)
}

func maxOf(a ir.Expr, b ir.Expr) ir.Expr {
	if ir.SameAs(a, b) {
		return a
	}
	//
	return ir.NewMax(a, b)
}

func bound(e ir.Expr) string {
	if e == nil {
		return "_"
	}
	//
	return e.String()
}
