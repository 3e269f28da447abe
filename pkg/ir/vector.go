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

// Ramp represents the vector [base, base+stride, ..., base+(lanes-1)*stride].
// Vector constructs only arise after vectorization and cannot be bounded.
type Ramp struct {
	Base   Expr
	Stride Expr
	Lanes  uint
}

// NewRamp constructs a new ramp node.
func NewRamp(base Expr, stride Expr, lanes uint) *Ramp {
	checkTypes("ramp", base, stride)
	return &Ramp{base, stride, lanes}
}

// Type implementation for Expr interface.  This is the element type.
func (p *Ramp) Type() Type { return p.Base.Type() }

// Lisp implementation for Node interface.
func (p *Ramp) Lisp() sexp.SExp {
	return sexp.NewList([]sexp.SExp{
		sexp.NewSymbol("ramp"),
		p.Base.Lisp(),
		p.Stride.Lisp(),
		sexp.NewSymbol(fmt.Sprintf("%d", p.Lanes)),
	})
}

func (p *Ramp) String() string { return p.Lisp().String(false) }

// Broadcast represents a vector with every lane holding the same value.
type Broadcast struct {
	Value Expr
	Lanes uint
}

// NewBroadcast constructs a new broadcast node.
func NewBroadcast(value Expr, lanes uint) *Broadcast {
	return &Broadcast{value, lanes}
}

// Type implementation for Expr interface.  This is the element type.
func (p *Broadcast) Type() Type { return p.Value.Type() }

// Lisp implementation for Node interface.
func (p *Broadcast) Lisp() sexp.SExp {
	return sexp.NewList([]sexp.SExp{
		sexp.NewSymbol("broadcast"),
		p.Value.Lisp(),
		sexp.NewSymbol(fmt.Sprintf("%d", p.Lanes)),
	})
}

func (p *Broadcast) String() string { return p.Lisp().String(false) }
