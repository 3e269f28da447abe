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

	"github.com/consensys/go-bounds/pkg/util/source/sexp"
)

const (
	// IMAGE_CALL identifies a lookup into an input image.
	IMAGE_CALL uint8 = 0
	// EXTERN_CALL identifies a call to an externally defined pure function.
	EXTERN_CALL uint8 = 1
	// FUNC_CALL identifies a call to a function defined within the pipeline.
	// Such calls access the (multi-dimensional) realization of that function.
	FUNC_CALL uint8 = 2
	// INTRINSIC_CALL identifies a call to a built-in operation.
	INTRINSIC_CALL uint8 = 3
)

// ABS is the name of the absolute value intrinsic.
const ABS = "abs"

// ADDRESS_OF is the name of the intrinsic taking the address of a call site.
// No memory access occurs through it.
const ADDRESS_OF = "address_of"

var callKeywords = []string{"image", "extern", "call", "intrinsic"}

// Call represents a call to a named function or image with zero or more
// arguments.  For images and pipeline functions, the arguments identify the
// (multi-dimensional) index being accessed.
type Call struct {
	typ      Type
	Name     string
	Args     []Expr
	CallType uint8
}

// NewCall constructs a new call node.
func NewCall(t Type, name string, args []Expr, callType uint8) *Call {
	if callType > INTRINSIC_CALL {
		panic(fmt.Sprintf("invalid call type %d", callType))
	}
	//
	for _, arg := range args {
		if arg == nil {
			panic(fmt.Sprintf("undefined argument in call to %s", name))
		}
	}
	//
	return &Call{t, name, args, callType}
}

// NewAbs constructs a call to the absolute value intrinsic.
func NewAbs(arg Expr) *Call {
	return NewCall(arg.Type(), ABS, []Expr{arg}, INTRINSIC_CALL)
}

// NewAddressOf constructs a call to the address-of intrinsic for a given call
// site.
func NewAddressOf(site *Call) *Call {
	return NewCall(UInt(64), ADDRESS_OF, []Expr{site}, INTRINSIC_CALL)
}

// IsIntrinsic checks whether this is a call to a given intrinsic.
func (p *Call) IsIntrinsic(name string) bool {
	return p.CallType == INTRINSIC_CALL && p.Name == name
}

// Type implementation for Expr interface.
func (p *Call) Type() Type { return p.typ }

// Lisp implementation for Node interface.
func (p *Call) Lisp() sexp.SExp {
	var list []sexp.SExp
	//
	if p.IsIntrinsic(ABS) || p.IsIntrinsic(ADDRESS_OF) {
		list = append(list, sexp.NewSymbol(p.Name))
	} else {
		list = append(list, sexp.NewSymbol(callKeywords[p.CallType]))
		//
		if p.typ != Int(32) {
			list = append(list, sexp.NewSymbol(fmt.Sprintf("%s:%s", p.Name, p.typ)))
		} else {
			list = append(list, sexp.NewSymbol(p.Name))
		}
	}
	//
	for _, arg := range p.Args {
		list = append(list, arg.Lisp())
	}
	//
	return sexp.NewList(list)
}

func (p *Call) String() string { return p.Lisp().String(false) }
