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
	"slices"
)

// Children returns the immediate sub-expressions of a given expression, in
// evaluation order.
// nolint
func Children(e Expr) []Expr {
	switch e := e.(type) {
	case *IntImm, *FloatImm, *Variable:
		return nil
	case *Cast:
		return []Expr{e.Value}
	case *Add:
		return []Expr{e.A, e.B}
	case *Sub:
		return []Expr{e.A, e.B}
	case *Mul:
		return []Expr{e.A, e.B}
	case *Div:
		return []Expr{e.A, e.B}
	case *Mod:
		return []Expr{e.A, e.B}
	case *Min:
		return []Expr{e.A, e.B}
	case *Max:
		return []Expr{e.A, e.B}
	case *Compare:
		return []Expr{e.A, e.B}
	case *And:
		return []Expr{e.A, e.B}
	case *Or:
		return []Expr{e.A, e.B}
	case *Not:
		return []Expr{e.A}
	case *Select:
		return []Expr{e.Cond, e.True, e.False}
	case *Load:
		return []Expr{e.Index}
	case *Call:
		return e.Args
	case *Let:
		return []Expr{e.Value, e.Body}
	case *Ramp:
		return []Expr{e.Base, e.Stride}
	case *Broadcast:
		return []Expr{e.Value}
	}
	//
	panic(fmt.Sprintf("unknown expression encountered (%T)", e))
}

// MapChildren rebuilds an expression by applying a given function to each of
// its immediate sub-expressions.  If the function leaves every sub-expression
// unchanged (i.e. SameAs), then the original expression itself is returned.
// nolint
func MapChildren(e Expr, fn func(Expr) Expr) Expr {
	var (
		children  = Children(e)
		nchildren = make([]Expr, len(children))
		changed   = false
	)
	//
	for i, child := range children {
		nchildren[i] = fn(child)
		changed = changed || !SameAs(child, nchildren[i])
	}
	//
	if !changed {
		return e
	}
	//
	c := nchildren
	//
	switch e := e.(type) {
	case *Cast:
		return NewCast(e.Type(), c[0])
	case *Add:
		return NewAdd(c[0], c[1])
	case *Sub:
		return NewSub(c[0], c[1])
	case *Mul:
		return NewMul(c[0], c[1])
	case *Div:
		return NewDiv(c[0], c[1])
	case *Mod:
		return NewMod(c[0], c[1])
	case *Min:
		return NewMin(c[0], c[1])
	case *Max:
		return NewMax(c[0], c[1])
	case *Compare:
		return NewCompare(e.Op, c[0], c[1])
	case *And:
		return NewAnd(c[0], c[1])
	case *Or:
		return NewOr(c[0], c[1])
	case *Not:
		return NewNot(c[0])
	case *Select:
		return NewSelect(c[0], c[1], c[2])
	case *Load:
		return NewLoad(e.Type(), e.Name, c[0])
	case *Call:
		return NewCall(e.Type(), e.Name, c, e.CallType)
	case *Let:
		return NewLet(e.Name, c[0], c[1])
	case *Ramp:
		return NewRamp(c[0], c[1], e.Lanes)
	case *Broadcast:
		return NewBroadcast(c[0], e.Lanes)
	}
	//
	panic(fmt.Sprintf("unknown expression encountered (%T)", e))
}

// StmtChildren returns the expressions and statements immediately contained
// within a given statement.
func StmtChildren(s Stmt) ([]Expr, []Stmt) {
	switch s := s.(type) {
	case *LetStmt:
		return []Expr{s.Value}, []Stmt{s.Body}
	case *AssertStmt:
		return []Expr{s.Cond}, nil
	case *Pipeline:
		stmts := []Stmt{s.Produce, s.Update, s.Consume}
		// Update is optional
		return nil, slices.DeleteFunc(stmts, func(s Stmt) bool { return s == nil })
	case *For:
		return []Expr{s.Min, s.Extent}, []Stmt{s.Body}
	case *Store:
		return []Expr{s.Value, s.Index}, nil
	case *Provide:
		return append(slices.Clone(s.Values), s.Args...), nil
	case *Allocate:
		return []Expr{s.Size}, []Stmt{s.Body}
	case *Realize:
		var exprs []Expr
		for _, r := range s.Bounds {
			exprs = append(exprs, r.Min, r.Extent)
		}
		//
		return exprs, []Stmt{s.Body}
	case *Block:
		return nil, []Stmt{s.First, s.Rest}
	}
	//
	panic(fmt.Sprintf("unknown statement encountered (%T)", s))
}

// Variables returns the names of all variables referenced (but not bound)
// within a given expression.
func Variables(e Expr) []string {
	var names []string
	//
	collectVariables(e, nil, &names)
	//
	return names
}

func collectVariables(e Expr, bound []string, names *[]string) {
	switch e := e.(type) {
	case *Variable:
		if !slices.Contains(bound, e.Name) && !slices.Contains(*names, e.Name) {
			*names = append(*names, e.Name)
		}
	case *Let:
		collectVariables(e.Value, bound, names)
		collectVariables(e.Body, append(slices.Clone(bound), e.Name), names)
	default:
		for _, child := range Children(e) {
			collectVariables(child, bound, names)
		}
	}
}
