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

// Select represents a ternary choice between two values of the same type,
// based on a boolean condition.
type Select struct {
	Cond  Expr
	True  Expr
	False Expr
}

// NewSelect constructs a new select node.
func NewSelect(cond Expr, tt Expr, ff Expr) *Select {
	checkBool("select", cond)
	checkTypes("select", tt, ff)
	//
	return &Select{cond, tt, ff}
}

// Type implementation for Expr interface.
func (p *Select) Type() Type { return p.True.Type() }

// Lisp implementation for Node interface.
func (p *Select) Lisp() sexp.SExp { return lispOf("select", p.Cond, p.True, p.False) }

func (p *Select) String() string { return p.Lisp().String(false) }
