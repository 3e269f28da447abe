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

// Load represents reading an element of a given type from a named, flat buffer
// at a given index.
type Load struct {
	typ   Type
	Name  string
	Index Expr
}

// NewLoad constructs a new load node.
func NewLoad(t Type, name string, index Expr) *Load {
	if index == nil {
		panic("load with undefined index")
	}
	//
	return &Load{t, name, index}
}

// Type implementation for Expr interface.
func (p *Load) Type() Type { return p.typ }

// Lisp implementation for Node interface.
func (p *Load) Lisp() sexp.SExp {
	return sexp.NewList([]sexp.SExp{
		sexp.NewSymbol("load"),
		sexp.NewSymbol(p.typ.String()),
		sexp.NewSymbol(p.Name),
		p.Index.Lisp(),
	})
}

func (p *Load) String() string { return p.Lisp().String(false) }
