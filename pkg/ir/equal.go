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
	"cmp"
	"fmt"
	"strings"
)

// Equal compares two nodes for equality of value, by traversing both trees in
// their entirety.  For equality of reference, use SameAs.
func Equal(lhs Node, rhs Node) bool {
	return CompareNodes(lhs, rhs) == 0
}

// CompareNodes computes a lexical ordering on nodes, returning -1 if the first node
// comes before the second, 0 if they are structurally equal, and 1 otherwise.
// Undefined nodes come before all others.
func CompareNodes(lhs Node, rhs Node) int {
	if lhs == rhs {
		return 0
	} else if lhs == nil {
		return -1
	} else if rhs == nil {
		return 1
	} else if c := cmp.Compare(kindOf(lhs), kindOf(rhs)); c != 0 {
		return c
	}
	//
	switch l := lhs.(type) {
	case Expr:
		return compareExpr(l, rhs.(Expr))
	case Stmt:
		return compareStmt(l, rhs.(Stmt))
	}
	//
	panic(fmt.Sprintf("unknown node encountered (%T)", lhs))
}

// nolint
func compareExpr(lhs Expr, rhs Expr) int {
	if c := compareTypes(lhs.Type(), rhs.Type()); c != 0 {
		return c
	}
	//
	switch l := lhs.(type) {
	case *IntImm:
		return cmp.Compare(l.Value, rhs.(*IntImm).Value)
	case *FloatImm:
		return cmp.Compare(l.Value, rhs.(*FloatImm).Value)
	case *Variable:
		return strings.Compare(l.Name, rhs.(*Variable).Name)
	case *Cast:
		return CompareNodes(l.Value, rhs.(*Cast).Value)
	case *Add:
		r := rhs.(*Add)
		return compareNodes(l.A, r.A, l.B, r.B)
	case *Sub:
		r := rhs.(*Sub)
		return compareNodes(l.A, r.A, l.B, r.B)
	case *Mul:
		r := rhs.(*Mul)
		return compareNodes(l.A, r.A, l.B, r.B)
	case *Div:
		r := rhs.(*Div)
		return compareNodes(l.A, r.A, l.B, r.B)
	case *Mod:
		r := rhs.(*Mod)
		return compareNodes(l.A, r.A, l.B, r.B)
	case *Min:
		r := rhs.(*Min)
		return compareNodes(l.A, r.A, l.B, r.B)
	case *Max:
		r := rhs.(*Max)
		return compareNodes(l.A, r.A, l.B, r.B)
	case *Compare:
		r := rhs.(*Compare)
		if c := cmp.Compare(l.Op, r.Op); c != 0 {
			return c
		}
		//
		return compareNodes(l.A, r.A, l.B, r.B)
	case *And:
		r := rhs.(*And)
		return compareNodes(l.A, r.A, l.B, r.B)
	case *Or:
		r := rhs.(*Or)
		return compareNodes(l.A, r.A, l.B, r.B)
	case *Not:
		return CompareNodes(l.A, rhs.(*Not).A)
	case *Select:
		r := rhs.(*Select)
		return compareNodes(l.Cond, r.Cond, l.True, r.True, l.False, r.False)
	case *Load:
		r := rhs.(*Load)
		if c := strings.Compare(l.Name, r.Name); c != 0 {
			return c
		}
		//
		return CompareNodes(l.Index, r.Index)
	case *Call:
		r := rhs.(*Call)
		if c := cmp.Compare(l.CallType, r.CallType); c != 0 {
			return c
		} else if c := strings.Compare(l.Name, r.Name); c != 0 {
			return c
		}
		//
		return compareExprs(l.Args, r.Args)
	case *Let:
		r := rhs.(*Let)
		if c := strings.Compare(l.Name, r.Name); c != 0 {
			return c
		}
		//
		return compareNodes(l.Value, r.Value, l.Body, r.Body)
	case *Ramp:
		r := rhs.(*Ramp)
		if c := cmp.Compare(l.Lanes, r.Lanes); c != 0 {
			return c
		}
		//
		return compareNodes(l.Base, r.Base, l.Stride, r.Stride)
	case *Broadcast:
		r := rhs.(*Broadcast)
		if c := cmp.Compare(l.Lanes, r.Lanes); c != 0 {
			return c
		}
		//
		return CompareNodes(l.Value, r.Value)
	}
	//
	panic(fmt.Sprintf("unknown expression encountered (%T)", lhs))
}

// nolint
func compareStmt(lhs Stmt, rhs Stmt) int {
	switch l := lhs.(type) {
	case *LetStmt:
		r := rhs.(*LetStmt)
		if c := strings.Compare(l.Name, r.Name); c != 0 {
			return c
		}
		//
		return compareNodes(l.Value, r.Value, l.Body, r.Body)
	case *AssertStmt:
		r := rhs.(*AssertStmt)
		if c := strings.Compare(l.Message, r.Message); c != 0 {
			return c
		}
		//
		return CompareNodes(l.Cond, r.Cond)
	case *Pipeline:
		r := rhs.(*Pipeline)
		if c := strings.Compare(l.Name, r.Name); c != 0 {
			return c
		}
		//
		return compareNodes(l.Produce, r.Produce, l.Update, r.Update, l.Consume, r.Consume)
	case *For:
		r := rhs.(*For)
		if c := strings.Compare(l.Name, r.Name); c != 0 {
			return c
		} else if c := cmp.Compare(l.ForType, r.ForType); c != 0 {
			return c
		}
		//
		return compareNodes(l.Min, r.Min, l.Extent, r.Extent, l.Body, r.Body)
	case *Store:
		r := rhs.(*Store)
		if c := strings.Compare(l.Name, r.Name); c != 0 {
			return c
		}
		//
		return compareNodes(l.Value, r.Value, l.Index, r.Index)
	case *Provide:
		r := rhs.(*Provide)
		if c := strings.Compare(l.Name, r.Name); c != 0 {
			return c
		} else if c := compareExprs(l.Values, r.Values); c != 0 {
			return c
		}
		//
		return compareExprs(l.Args, r.Args)
	case *Allocate:
		r := rhs.(*Allocate)
		if c := strings.Compare(l.Name, r.Name); c != 0 {
			return c
		} else if c := compareTypes(l.ElemType, r.ElemType); c != 0 {
			return c
		}
		//
		return compareNodes(l.Size, r.Size, l.Body, r.Body)
	case *Realize:
		r := rhs.(*Realize)
		if c := strings.Compare(l.Name, r.Name); c != 0 {
			return c
		} else if c := cmp.Compare(len(l.Types), len(r.Types)); c != 0 {
			return c
		}
		//
		for i := range l.Types {
			if c := compareTypes(l.Types[i], r.Types[i]); c != 0 {
				return c
			}
		}
		//
		if c := cmp.Compare(len(l.Bounds), len(r.Bounds)); c != 0 {
			return c
		}
		//
		for i := range l.Bounds {
			if c := compareNodes(l.Bounds[i].Min, r.Bounds[i].Min, l.Bounds[i].Extent, r.Bounds[i].Extent); c != 0 {
				return c
			}
		}
		//
		return CompareNodes(l.Body, r.Body)
	case *Block:
		r := rhs.(*Block)
		return compareNodes(l.First, r.First, l.Rest, r.Rest)
	}
	//
	panic(fmt.Sprintf("unknown statement encountered (%T)", lhs))
}

// Compare pairs of nodes in order, where the nodes are given as lhs1, rhs1,
// lhs2, rhs2, etc.  Undefined statements (e.g. a missing update) are permitted.
func compareNodes(nodes ...any) int {
	for i := 0; i < len(nodes); i += 2 {
		if c := CompareNodes(asNode(nodes[i]), asNode(nodes[i+1])); c != 0 {
			return c
		}
	}
	//
	return 0
}

// Convert an expression or statement into a node, taking care to map undefined
// expressions or statements onto an undefined node.
func asNode(item any) Node {
	switch n := item.(type) {
	case Expr:
		return n
	case Stmt:
		return n
	default:
		return nil
	}
}

func compareExprs(lhs []Expr, rhs []Expr) int {
	if c := cmp.Compare(len(lhs), len(rhs)); c != 0 {
		return c
	}
	//
	for i := range lhs {
		if c := CompareNodes(lhs[i], rhs[i]); c != 0 {
			return c
		}
	}
	//
	return 0
}

func compareTypes(lhs Type, rhs Type) int {
	if c := cmp.Compare(lhs.Kind, rhs.Kind); c != 0 {
		return c
	}
	//
	return cmp.Compare(lhs.Bits, rhs.Bits)
}

// nolint
func kindOf(node Node) int {
	switch node.(type) {
	case *IntImm:
		return 0
	case *FloatImm:
		return 1
	case *Variable:
		return 2
	case *Cast:
		return 3
	case *Add:
		return 4
	case *Sub:
		return 5
	case *Mul:
		return 6
	case *Div:
		return 7
	case *Mod:
		return 8
	case *Min:
		return 9
	case *Max:
		return 10
	case *Compare:
		return 11
	case *And:
		return 12
	case *Or:
		return 13
	case *Not:
		return 14
	case *Select:
		return 15
	case *Load:
		return 16
	case *Call:
		return 17
	case *Let:
		return 18
	case *Ramp:
		return 19
	case *Broadcast:
		return 20
	case *LetStmt:
		return 21
	case *AssertStmt:
		return 22
	case *Pipeline:
		return 23
	case *For:
		return 24
	case *Store:
		return 25
	case *Provide:
		return 26
	case *Allocate:
		return 27
	case *Realize:
		return 28
	case *Block:
		return 29
	}
	//
	panic(fmt.Sprintf("unknown node encountered (%T)", node))
}
