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

// Node captures any component of the intermediate representation, whether an
// expression or a statement.
type Node interface {
	fmt.Stringer
	// Lisp converts this node into a simple S-Expression, for example so it can
	// be printed.
	Lisp() sexp.SExp
}

// Expr represents an immutable expression tree.  Expression nodes may be
// shared between trees, hence the identity of a node (see SameAs) is
// meaningful and distinct from its structural equality (see Equal).
type Expr interface {
	Node
	// Type returns the numeric type of the value produced by this expression.
	Type() Type
}

// Stmt represents an immutable statement tree.  Statements produce no value.
type Stmt interface {
	Node
	// Statements are never expressions.
	isStmt()
}

// SameAs checks whether two expressions are literally the same node (or are
// both undefined).  This is a constant time check, unlike Equal.
func SameAs(lhs Expr, rhs Expr) bool {
	return lhs == rhs
}

// Check two expressions have the same type, otherwise panic.  Mixing types
// within a binary node is a contract violation on the part of the caller.
func checkTypes(op string, lhs Expr, rhs Expr) {
	if lhs == nil || rhs == nil {
		panic(fmt.Sprintf("undefined operand for \"%s\"", op))
	} else if lhs.Type() != rhs.Type() {
		panic(fmt.Sprintf("mismatched operand types for \"%s\" (%s vs %s)", op, lhs.Type(), rhs.Type()))
	}
}

func lispOf(op string, args ...Node) sexp.SExp {
	arr := make([]sexp.SExp, 1+len(args))
	arr[0] = sexp.NewSymbol(op)
	// Translate arguments
	for i, e := range args {
		arr[i+1] = e.Lisp()
	}
	// Done
	return sexp.NewList(arr)
}

func lispOfExprs(exprs []Expr) sexp.SExp {
	arr := make([]sexp.SExp, len(exprs))
	//
	for i, e := range exprs {
		arr[i] = e.Lisp()
	}
	//
	return sexp.NewArray(arr)
}
