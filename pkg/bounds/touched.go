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
	log "github.com/sirupsen/logrus"
)

// LOOP_MIN_SUFFIX identifies a scope entry holding a precomputed lower bound
// for a loop variable (e.g. "x.loop_min").  Such entries take precedence over
// the bounds of the loop's own minimum.
const LOOP_MIN_SUFFIX = ".loop_min"

// LOOP_MAX_SUFFIX identifies a scope entry holding a precomputed upper bound
// for a loop variable (e.g. "x.loop_max").
const LOOP_MAX_SUFFIX = ".loop_max"

// Walks expressions and statements accumulating, for each array, the box of
// indices accessed.  Calls (reads) and provides (writes) are considered
// independently, and both can be restricted to a single array.
type boxesTouched struct {
	scope    *Scope
	calls    bool
	provides bool
	fn       string
	boxes    map[string]Box
}

func (p *boxesTouched) visitExpr(e ir.Expr) {
	switch e := e.(type) {
	case *ir.Let:
		p.visitLet(e)
	case *ir.Call:
		p.visitCall(e)
	default:
		for _, child := range ir.Children(e) {
			p.visitExpr(child)
		}
	}
}

func (p *boxesTouched) visitLet(e *ir.Let) {
	if !p.calls {
		return
	}
	//
	p.visitExpr(e.Value)
	p.scope.Push(e.Name, Of(e.Value, p.scope))
	//
	defer p.scope.Pop(e.Name)
	//
	p.visitExpr(e.Body)
}

func (p *boxesTouched) visitCall(e *ir.Call) {
	if !p.calls {
		return
	} else if e.IsIntrinsic(ir.ADDRESS_OF) {
		site, ok := e.Args[0].(*ir.Call)
		if !ok {
			panic(fmt.Sprintf("%s expects a call (%s)", ir.ADDRESS_OF, e))
		}
		// No access occurs through the call site itself.
		for _, arg := range site.Args {
			p.visitExpr(arg)
		}
		//
		return
	}
	//
	for _, arg := range e.Args {
		p.visitExpr(arg)
	}
	//
	if e.CallType == ir.INTRINSIC_CALL || e.CallType == ir.EXTERN_CALL {
		return
	}
	//
	p.record(e.Name, e.Args)
}

func (p *boxesTouched) visitStmt(s ir.Stmt) {
	switch s := s.(type) {
	case *ir.LetStmt:
		p.visitLetStmt(s)
	case *ir.For:
		p.visitFor(s)
	case *ir.Provide:
		p.visitProvide(s)
	default:
		exprs, stmts := ir.StmtChildren(s)
		//
		for _, e := range exprs {
			p.visitExpr(e)
		}
		//
		for _, child := range stmts {
			p.visitStmt(child)
		}
	}
}

func (p *boxesTouched) visitLetStmt(s *ir.LetStmt) {
	if p.calls {
		p.visitExpr(s.Value)
	}
	//
	p.scope.Push(s.Name, Of(s.Value, p.scope))
	//
	defer p.scope.Pop(s.Name)
	//
	p.visitStmt(s.Body)
}

func (p *boxesTouched) visitFor(s *ir.For) {
	if p.calls {
		p.visitExpr(s.Min)
		p.visitExpr(s.Extent)
	}
	//
	var loop Interval
	//
	if b := p.scope.Lookup(s.Name + LOOP_MIN_SUFFIX); b.HasValue() {
		loop.Min = b.Unwrap().Min
	} else {
		loop.Min = Of(s.Min, p.scope).Min
	}
	//
	if b := p.scope.Lookup(s.Name + LOOP_MAX_SUFFIX); b.HasValue() {
		loop.Max = b.Unwrap().Max
	} else {
		loop.Max = lastIteration(Of(s.Min, p.scope).Max, Of(s.Extent, p.scope).Max)
	}
	//
	log.Tracef("loop %s ranges over %s", s.Name, loop)
	//
	p.scope.Push(s.Name, loop)
	//
	defer p.scope.Pop(s.Name)
	//
	p.visitStmt(s.Body)
}

// The last iteration of a loop is min + extent - 1, where the extent is assumed
// to be at least one.
func lastIteration(min ir.Expr, extent ir.Expr) ir.Expr {
	if min == nil || extent == nil {
		return nil
	}
	//
	return ir.NewSub(ir.NewAdd(extent, min), ir.One(min.Type()))
}

func (p *boxesTouched) visitProvide(s *ir.Provide) {
	if p.provides {
		p.record(s.Name, s.Args)
	}
	//
	if p.calls {
		for _, value := range s.Values {
			p.visitExpr(value)
		}
		//
		for _, arg := range s.Args {
			p.visitExpr(arg)
		}
	}
}

// Record an access to a given array at a given (multi-dimensional) index.
func (p *boxesTouched) record(name string, args []ir.Expr) {
	if p.fn != "" && p.fn != name {
		return
	}
	//
	var box = make(Box, len(args))
	//
	for i, arg := range args {
		box[i] = Of(arg, p.scope)
	}
	//
	log.Tracef("%s touched at %s", name, box)
	//
	acc := p.boxes[name]
	MergeBoxes(&acc, box)
	p.boxes[name] = acc
}
