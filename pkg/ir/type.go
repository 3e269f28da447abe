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
)

// INT_KIND identifies signed two's complement integer types.
const INT_KIND = uint8(0)

// UINT_KIND identifies unsigned integer types.
const UINT_KIND = uint8(1)

// FLOAT_KIND identifies IEEE floating point types.
const FLOAT_KIND = uint8(2)

// Type describes the concrete numeric type carried by every expression node.
// Integer types are between 1 and 64 bits wide, whilst floating point types are
// either 32 or 64 bits wide.  Booleans are represented as one bit unsigned
// integers.
type Type struct {
	Kind uint8
	Bits uint
}

// Int constructs a signed integer type of the given width.
func Int(bits uint) Type {
	return Type{INT_KIND, bits}
}

// UInt constructs an unsigned integer type of the given width.
func UInt(bits uint) Type {
	return Type{UINT_KIND, bits}
}

// Float constructs a floating point type of the given width.
func Float(bits uint) Type {
	return Type{FLOAT_KIND, bits}
}

// Bool returns the type used for the results of comparisons and logical
// connectives.
func Bool() Type {
	return UInt(1)
}

// IsInt checks whether this is a signed integer type.
func (t Type) IsInt() bool { return t.Kind == INT_KIND }

// IsUInt checks whether this is an unsigned integer type.
func (t Type) IsUInt() bool { return t.Kind == UINT_KIND }

// IsFloat checks whether this is a floating point type.
func (t Type) IsFloat() bool { return t.Kind == FLOAT_KIND }

// IsBool checks whether this is the boolean type.
func (t Type) IsBool() bool { return t == Bool() }

// Wrap reduces an arbitrary integer value modulo 2^n, where n is the width of
// this type, and reinterprets the result according to the signedness of this
// type.  Unsigned 64bit values are held in their two's complement form.
func (t Type) Wrap(val int64) int64 {
	if t.IsFloat() {
		panic("cannot wrap floating point value")
	} else if t.Bits >= 64 {
		return val
	}
	//
	mask := uint64(1)<<t.Bits - 1
	bits := uint64(val) & mask
	// Sign extend (if applicable)
	if t.IsInt() && bits&(uint64(1)<<(t.Bits-1)) != 0 {
		bits |= ^mask
	}
	//
	return int64(bits)
}

// CompareInts compares two (wrapped) integer values of this type, returning -1,
// 0 or 1.  This respects the signedness of the type.
func (t Type) CompareInts(lhs, rhs int64) int {
	if t.IsUInt() {
		l, r := uint64(lhs), uint64(rhs)
		if l < r {
			return -1
		} else if l > r {
			return 1
		}
		//
		return 0
	} else if lhs < rhs {
		return -1
	} else if lhs > rhs {
		return 1
	}
	//
	return 0
}

// RoundFloat rounds a given floating point value to the precision of this type.
func (t Type) RoundFloat(val float64) float64 {
	if t.Bits == 32 {
		return float64(float32(val))
	}
	//
	return val
}

// MinInt returns the smallest value representable in this integer type.
func (t Type) MinInt() int64 {
	if t.IsUInt() {
		return 0
	} else if t.Bits >= 64 {
		return math.MinInt64
	}
	//
	return -(int64(1) << (t.Bits - 1))
}

// MaxInt returns the largest value representable in this integer type.  For
// unsigned 64bit integers, this is returned in two's complement form (i.e. -1).
func (t Type) MaxInt() int64 {
	if t.IsUInt() {
		if t.Bits >= 64 {
			return -1
		}
		//
		return int64(1)<<t.Bits - 1
	} else if t.Bits >= 64 {
		return math.MaxInt64
	}
	//
	return int64(1)<<(t.Bits-1) - 1
}

// CanRepresent checks whether a given (mathematical) integer value lies within
// the range of this integer type.
func (t Type) CanRepresent(val int64) bool {
	if t.IsUInt() {
		return val >= 0 && (t.Bits >= 64 || val <= t.MaxInt())
	}
	//
	return val >= t.MinInt() && val <= t.MaxInt()
}

func (t Type) String() string {
	switch t.Kind {
	case INT_KIND:
		return fmt.Sprintf("i%d", t.Bits)
	case UINT_KIND:
		return fmt.Sprintf("u%d", t.Bits)
	default:
		return fmt.Sprintf("f%d", t.Bits)
	}
}

// ParseType parses a type name such as "i32", "u8" or "f64".
func ParseType(name string) (Type, error) {
	if len(name) < 2 {
		return Type{}, fmt.Errorf("invalid type \"%s\"", name)
	}
	//
	bits, err := strconv.ParseUint(name[1:], 10, 8)
	if err != nil || bits == 0 || bits > 64 {
		return Type{}, fmt.Errorf("invalid type width \"%s\"", name)
	}
	//
	switch {
	case strings.HasPrefix(name, "i"):
		return Int(uint(bits)), nil
	case strings.HasPrefix(name, "u"):
		return UInt(uint(bits)), nil
	case strings.HasPrefix(name, "f") && (bits == 32 || bits == 64):
		return Float(uint(bits)), nil
	}
	//
	return Type{}, fmt.Errorf("invalid type \"%s\"", name)
}
