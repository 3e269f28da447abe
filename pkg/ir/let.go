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

// Let binds a name to a value for the duration of evaluating a body
// expression.  Inner bindings shadow outer bindings of the same name.
type Let struct {
	Name  string
	Value Expr
	Body  Expr
}

// NewLet constructs a new let node.
func NewLet(name string, value Expr, body Expr) *Let {
	if value == nil || body == nil {
		panic("let with undefined value or body")
	}
	//
	return &Let{name, value, body}
}

// Type implementation for Expr interface.
func (p *Let) Type() Type { return p.Body.Type() }

// Lisp implementation for Node interface.
func (p *Let) Lisp() sexp.SExp {
	return sexp.NewList([]sexp.SExp{
		sexp.NewSymbol("let"),
		sexp.NewSymbol(p.Name),
		p.Value.Lisp(),
		p.Body.Lisp(),
	})
}

func (p *Let) String() string { return p.Lisp().String(false) }
