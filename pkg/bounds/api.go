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

	"github.com/consensys/go-bounds/pkg/ir"
)

// Query describes a walk over an expression and/or a statement (either of
// which may be nil), determining the boxes of arrays accessed.  Calls identify
// the boxes read, whilst provides identify the boxes written.  When Func is
// non-empty, only accesses to that array are considered.
type Query struct {
	Expr     ir.Expr
	Stmt     ir.Stmt
	Calls    bool
	Provides bool
	Func     string
	Scope    *Scope
}

// Boxes runs this query, returning the box touched for each array accessed.
func (q Query) Boxes() map[string]Box {
	var scope = q.Scope
	//
	if scope == nil {
		scope = NewScope()
	}
	//
	walker := &boxesTouched{scope.Nest(), q.Calls, q.Provides, q.Func, make(map[string]Box)}
	//
	if q.Expr != nil {
		walker.visitExpr(q.Expr)
	}
	//
	if q.Stmt != nil {
		walker.visitStmt(q.Stmt)
	}
	//
	return walker.boxes
}

// Box runs this query, returning the box touched for the array it is restricted
// to.  This is empty if the array is not accessed.
func (q Query) Box() Box {
	if q.Func == "" {
		panic("query not restricted to an array")
	}
	//
	return q.Boxes()[q.Func]
}

// BoxesRequired returns the box read from each array accessed within a given
// expression or statement.
func BoxesRequired(node ir.Node, scope *Scope) map[string]Box {
	return newQuery(node, true, false, "", scope).Boxes()
}

// BoxesProvided returns the box written to each array within a given expression
// or statement.
func BoxesProvided(node ir.Node, scope *Scope) map[string]Box {
	return newQuery(node, false, true, "", scope).Boxes()
}

// BoxesTouched returns the box read or written for each array accessed within
// a given expression or statement.
func BoxesTouched(node ir.Node, scope *Scope) map[string]Box {
	return newQuery(node, true, true, "", scope).Boxes()
}

// BoxRequired returns the box read from a given array.
func BoxRequired(node ir.Node, fn string, scope *Scope) Box {
	return newQuery(node, true, false, fn, scope).Box()
}

// BoxProvided returns the box written to a given array.
func BoxProvided(node ir.Node, fn string, scope *Scope) Box {
	return newQuery(node, false, true, fn, scope).Box()
}

// BoxTouched returns the box read or written for a given array.
func BoxTouched(node ir.Node, fn string, scope *Scope) Box {
	return newQuery(node, true, true, fn, scope).Box()
}

func newQuery(node ir.Node, calls bool, provides bool, fn string, scope *Scope) Query {
	var q = Query{Calls: calls, Provides: provides, Func: fn, Scope: scope}
	//
	switch n := node.(type) {
	case ir.Expr:
		q.Expr = n
	case ir.Stmt:
		q.Stmt = n
	default:
		panic(fmt.Sprintf("unknown node encountered (%T)", node))
	}
	//
	return q
}
