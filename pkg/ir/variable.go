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

// Variable represents a reference to a named value, such as a loop variable or
// a let-bound name.
type Variable struct {
	typ  Type
	Name string
}

// NewVariable constructs a variable reference of a given type.
func NewVariable(name string, t Type) *Variable {
	return &Variable{t, name}
}

// Var constructs a reference to a 32bit signed integer variable.
func Var(name string) *Variable {
	return NewVariable(name, Int(32))
}

// Type implementation for Expr interface.
func (p *Variable) Type() Type { return p.typ }

// Lisp implementation for Node interface.
func (p *Variable) Lisp() sexp.SExp {
	if p.typ == Int(32) {
		return sexp.NewSymbol(p.Name)
	}
	//
	return sexp.NewSymbol(fmt.Sprintf("%s:%s", p.Name, p.typ))
}

func (p *Variable) String() string { return p.Lisp().String(false) }
