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
	"testing"

	"github.com/consensys/go-bounds/pkg/ir"
	"github.com/consensys/go-bounds/pkg/util/assert"
)

func Test_Box_Merge_01(t *testing.T) {
	var (
		box   Box
		other = Box{constInterval(1, 5), constInterval(0, 0)}
	)
	// Empty is the identity
	MergeBoxes(&box, other)
	assert.True(t, box.Equal(other))
	MergeBoxes(&box, Box{})
	assert.True(t, box.Equal(other))
}

func Test_Box_Merge_02(t *testing.T) {
	var (
		a = Box{constInterval(1, 5)}
		b = Box{constInterval(3, 9)}
	)
	//
	ab, ba := mergeOf(a, b), mergeOf(b, a)
	//
	checkBox(t, ab, "1", "9")
	checkBox(t, ba, "1", "9")
	// Inputs are unaffected
	checkBox(t, a, "1", "5")
	checkBox(t, b, "3", "9")
}

func Test_Box_Merge_03(t *testing.T) {
	var (
		a = Box{constInterval(1, 5), constInterval(-3, 2)}
		b = Box{constInterval(3, 9), constInterval(4, 4)}
		c = Box{constInterval(-2, 0), constInterval(0, 1)}
	)
	//
	lhs := mergeOf(mergeOf(a, b), c)
	rhs := mergeOf(a, mergeOf(b, c))
	//
	checkBox(t, lhs, "-2", "9", "-3", "4")
	checkBox(t, rhs, "-2", "9", "-3", "4")
}

func Test_Box_Merge_04(t *testing.T) {
	var box = Box{Interval{ir.Int32(0), nil}}
	// Unbounded ends remain unbounded
	MergeBoxes(&box, Box{constInterval(1, 5)})
	checkBox(t, box, "0", "_")
	MergeBoxes(&box, Box{Interval{nil, ir.Int32(3)}})
	checkBox(t, box, "_", "_")
}

func Test_Box_Merge_05(t *testing.T) {
	var (
		x   = ir.Var("x")
		box = Box{Exactly(x)}
	)
	// Identical bounds are not duplicated
	box.Merge(Box{Exactly(x)})
	assert.True(t, ir.SameAs(box[0].Min, x))
	assert.True(t, ir.SameAs(box[0].Max, x))
}

func Test_Box_Merge_06(t *testing.T) {
	var box = Box{constInterval(1, 5)}
	//
	assert.Panics(t, func() { MergeBoxes(&box, Box{constInterval(1, 5), constInterval(1, 5)}) })
}

func Test_Box_String_01(t *testing.T) {
	var box = Box{constInterval(1, 5), Interval{nil, ir.Var("n")}}
	//
	assert.Equal(t, "{[1, 5], [_, n]}", box.String())
	assert.Equal(t, "{}", Box{}.String())
}

func Test_Region_Union_01(t *testing.T) {
	var (
		a = ir.Region{{Min: ir.Int32(0), Extent: ir.Int32(10)}}
		b = ir.Region{{Min: ir.Int32(5), Extent: ir.Int32(10)}}
	)
	//
	ab := RegionUnion(a, b)
	checkRegion(t, ab, 0, 15)
	// Idempotent
	checkRegion(t, RegionUnion(ab, b), 0, 15)
	checkRegion(t, RegionUnion(a, a), 0, 10)
}

func Test_Region_Union_02(t *testing.T) {
	var (
		a = ir.Region{{Min: ir.Int32(2), Extent: ir.Int32(3)}, {Min: ir.Int32(-4), Extent: ir.Int32(1)}}
		b = ir.Region{{Min: ir.Int32(0), Extent: ir.Int32(1)}, {Min: ir.Int32(0), Extent: ir.Int32(1)}}
	)
	//
	ab := RegionUnion(a, b)
	checkRegion(t, ab, 0, 5, -4, 5)
}

func Test_Region_Union_03(t *testing.T) {
	var (
		a = ir.Region{{Min: ir.Int32(0), Extent: ir.Int32(10)}}
		b = ir.Region{}
	)
	//
	assert.Panics(t, func() { RegionUnion(a, b) })
}

// ===================================================================

func mergeOf(a Box, b Box) Box {
	var result Box
	//
	MergeBoxes(&result, a)
	MergeBoxes(&result, b)
	//
	return result
}

func checkRegion(t *testing.T, region ir.Region, ranges ...int64) {
	t.Helper()
	//
	assert.Equal(t, len(ranges)/2, len(region))
	//
	for i := range region {
		min, extent := ir.Int32(ranges[2*i]), ir.Int32(ranges[2*i+1])
		//
		if !ir.Equal(region[i].Min, min) || !ir.Equal(region[i].Extent, extent) {
			t.Errorf("dimension %d: expected (%s %s), got (%s %s)", i, min, extent, region[i].Min, region[i].Extent)
		}
	}
}
