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
	"github.com/consensys/go-bounds/pkg/util/source/sexp"
)

// Cast converts a value into a given numeric type.  Conversions between integer
// types wrap, whilst conversions from floating point to integer types truncate
// towards zero.
type Cast struct {
	typ   Type
	Value Expr
}

// NewCast constructs a cast of a given expression into a given type.
func NewCast(t Type, value Expr) *Cast {
	if value == nil {
		panic("cast of undefined expression")
	}
	//
	return &Cast{t, value}
}

// CastTo converts an expression into a given type, returning the expression
// itself when it already has that type.
func CastTo(t Type, value Expr) Expr {
	if value.Type() == t {
		return value
	}
	//
	return NewCast(t, value)
}

// Type implementation for Expr interface.
func (p *Cast) Type() Type { return p.typ }

// Lisp implementation for Node interface.
func (p *Cast) Lisp() sexp.SExp {
	return sexp.NewList([]sexp.SExp{
		sexp.NewSymbol("cast"),
		sexp.NewSymbol(p.typ.String()),
		p.Value.Lisp(),
	})
}

func (p *Cast) String() string { return p.Lisp().String(false) }
