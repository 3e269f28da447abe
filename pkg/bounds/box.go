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
	"slices"
	"strings"

	"github.com/consensys/go-bounds/pkg/ir"
	"github.com/consensys/go-bounds/pkg/ir/simplify"
)

// Box is a multi-dimensional region of an array, given as one interval per
// dimension.  An empty box carries no information, and is the identity for
// merging.
type Box []Interval

// IsEmpty checks whether this box carries no information.
func (p Box) IsEmpty() bool {
	return len(p) == 0
}

// Equal checks whether two boxes are structurally equal.
func (p Box) Equal(other Box) bool {
	return slices.EqualFunc(p, other, Interval.Equal)
}

// Merge another box into this one, such that it encloses both.
func (p *Box) Merge(other Box) {
	MergeBoxes(p, other)
}

func (p Box) String() string {
	var parts = make([]string, len(p))
	//
	for i, interval := range p {
		parts[i] = interval.String()
	}
	//
	return "{" + strings.Join(parts, ", ") + "}"
}

// MergeBoxes updates an accumulated box in place to be the smallest box
// enclosing both it and the given addition.  Merging boxes of different
// dimensionality is a contract violation.
func MergeBoxes(acc *Box, addition Box) {
	if addition.IsEmpty() {
		return
	} else if acc.IsEmpty() {
		*acc = slices.Clone(addition)
		return
	} else if len(*acc) != len(addition) {
		panic(fmt.Sprintf("cannot merge boxes of different dimensions (%d vs %d)", len(*acc), len(addition)))
	}
	//
	for i, ith := range addition {
		interval := &(*acc)[i]
		//
		if !ir.SameAs(interval.Min, ith.Min) {
			if interval.Min != nil && ith.Min != nil {
				interval.Min = ir.NewMin(interval.Min, ith.Min)
			} else {
				interval.Min = nil
			}
		}
		//
		if !ir.SameAs(interval.Max, ith.Max) {
			if interval.Max != nil && ith.Max != nil {
				interval.Max = ir.NewMax(interval.Max, ith.Max)
			} else {
				interval.Max = nil
			}
		}
	}
}

// RegionUnion returns the smallest region enclosing two regions of the same
// dimensionality, where each dimension is given by its minimum and extent.
func RegionUnion(a ir.Region, b ir.Region) ir.Region {
	if len(a) != len(b) {
		panic(fmt.Sprintf("cannot union regions of different dimensions (%d vs %d)", len(a), len(b)))
	}
	//
	var result = make(ir.Region, len(a))
	//
	for i := range a {
		lo := simplify.Simplify(ir.NewMin(a[i].Min, b[i].Min))
		hi := ir.NewMax(ir.NewAdd(a[i].Min, a[i].Extent), ir.NewAdd(b[i].Min, b[i].Extent))
		result[i] = ir.Range{Min: lo, Extent: simplify.Simplify(ir.NewSub(hi, lo))}
	}
	//
	return result
}

// Simplify the bounds of every dimension of this box.
func (p Box) Simplify() Box {
	var result = make(Box, len(p))
	//
	for i, interval := range p {
		result[i] = interval.Simplify()
	}
	//
	return result
}
