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
	"strconv"

	"github.com/consensys/go-bounds/pkg/util/source/sexp"
)

// ============================================================================
// Ranges & Regions
// ============================================================================

// Range describes the extent of one dimension of a region using a (symbolic)
// minimum and (symbolic) number of elements.
type Range struct {
	Min    Expr
	Extent Expr
}

// Region describes a multi-dimensional, rectangular area using one range per
// dimension.
type Region []Range

// Lisp converts this region into an S-Expression.
func (p Region) Lisp() sexp.SExp {
	arr := make([]sexp.SExp, len(p))
	//
	for i, r := range p {
		arr[i] = sexp.NewList([]sexp.SExp{r.Min.Lisp(), r.Extent.Lisp()})
	}
	//
	return sexp.NewArray(arr)
}

// ============================================================================
// LetStmt
// ============================================================================

// LetStmt binds a name to a value for the duration of a statement.
type LetStmt struct {
	Name  string
	Value Expr
	Body  Stmt
}

func (p *LetStmt) isStmt() {}

// Lisp implementation for Node interface.
func (p *LetStmt) Lisp() sexp.SExp {
	return sexp.NewList([]sexp.SExp{sexp.NewSymbol("letstmt"), sexp.NewSymbol(p.Name), p.Value.Lisp(), p.Body.Lisp()})
}

func (p *LetStmt) String() string { return p.Lisp().String(false) }

// ============================================================================
// AssertStmt
// ============================================================================

// AssertStmt checks a condition holds at runtime, failing with the given
// message otherwise.
type AssertStmt struct {
	Cond    Expr
	Message string
}

func (p *AssertStmt) isStmt() {}

// Lisp implementation for Node interface.
func (p *AssertStmt) Lisp() sexp.SExp {
	return sexp.NewList([]sexp.SExp{sexp.NewSymbol("assert"), p.Cond.Lisp(), sexp.NewSymbol(strconv.Quote(p.Message))})
}

func (p *AssertStmt) String() string { return p.Lisp().String(false) }

// ============================================================================
// Pipeline
// ============================================================================

// Pipeline represents the production of a named function (with an optional
// update step), followed by its consumption.
type Pipeline struct {
	Name    string
	Produce Stmt
	// Update is optional and may be nil.
	Update  Stmt
	Consume Stmt
}

func (p *Pipeline) isStmt() {}

// Lisp implementation for Node interface.
func (p *Pipeline) Lisp() sexp.SExp {
	list := []sexp.SExp{sexp.NewSymbol("pipeline"), sexp.NewSymbol(p.Name), p.Produce.Lisp()}
	//
	if p.Update != nil {
		list = append(list, p.Update.Lisp())
	}
	//
	return sexp.NewList(append(list, p.Consume.Lisp()))
}

func (p *Pipeline) String() string { return p.Lisp().String(false) }

// ============================================================================
// For
// ============================================================================

const (
	// SERIAL_LOOP executes iterations in order.
	SERIAL_LOOP uint8 = 0
	// PARALLEL_LOOP executes iterations concurrently.
	PARALLEL_LOOP uint8 = 1
	// VECTORIZED_LOOP executes iterations as vector lanes.
	VECTORIZED_LOOP uint8 = 2
	// UNROLLED_LOOP executes iterations as straight-line code.
	UNROLLED_LOOP uint8 = 3
)

var loopKeywords = []string{"for", "parallel", "vectorized", "unrolled"}

// For represents a loop over a named variable covering the values min ..
// min+extent-1.  The loop type affects code generation only.
type For struct {
	Name    string
	Min     Expr
	Extent  Expr
	ForType uint8
	Body    Stmt
}

// NewFor constructs a serial loop.
func NewFor(name string, min Expr, extent Expr, body Stmt) *For {
	return &For{name, min, extent, SERIAL_LOOP, body}
}

func (p *For) isStmt() {}

// Lisp implementation for Node interface.
func (p *For) Lisp() sexp.SExp {
	return sexp.NewList([]sexp.SExp{
		sexp.NewSymbol(loopKeywords[p.ForType]),
		sexp.NewSymbol(p.Name),
		p.Min.Lisp(),
		p.Extent.Lisp(),
		p.Body.Lisp(),
	})
}

func (p *For) String() string { return p.Lisp().String(false) }

// LoopType returns the loop type for a given keyword (e.g. "parallel").
func LoopType(keyword string) (uint8, bool) {
	for i, k := range loopKeywords {
		if k == keyword {
			return uint8(i), true
		}
	}
	//
	return 0, false
}

// ============================================================================
// Store
// ============================================================================

// Store writes a value into a named, flat buffer at a given index.
type Store struct {
	Name  string
	Value Expr
	Index Expr
}

func (p *Store) isStmt() {}

// Lisp implementation for Node interface.
func (p *Store) Lisp() sexp.SExp {
	return sexp.NewList([]sexp.SExp{sexp.NewSymbol("store"), sexp.NewSymbol(p.Name), p.Value.Lisp(), p.Index.Lisp()})
}

func (p *Store) String() string { return p.Lisp().String(false) }

// ============================================================================
// Provide
// ============================================================================

// Provide writes one or more values into a named multi-dimensional function
// at the index given by its arguments.
type Provide struct {
	Name   string
	Values []Expr
	Args   []Expr
}

// NewProvide constructs a provide statement.
func NewProvide(name string, values []Expr, args []Expr) *Provide {
	return &Provide{name, values, args}
}

func (p *Provide) isStmt() {}

// Lisp implementation for Node interface.
func (p *Provide) Lisp() sexp.SExp {
	return sexp.NewList([]sexp.SExp{
		sexp.NewSymbol("provide"),
		sexp.NewSymbol(p.Name),
		lispOfExprs(p.Values),
		lispOfExprs(p.Args),
	})
}

func (p *Provide) String() string { return p.Lisp().String(false) }

// ============================================================================
// Allocate
// ============================================================================

// Allocate reserves a flat buffer of a given element type and size for the
// duration of its body.
type Allocate struct {
	Name     string
	ElemType Type
	Size     Expr
	Body     Stmt
}

func (p *Allocate) isStmt() {}

// Lisp implementation for Node interface.
func (p *Allocate) Lisp() sexp.SExp {
	return sexp.NewList([]sexp.SExp{
		sexp.NewSymbol("allocate"),
		sexp.NewSymbol(p.Name),
		sexp.NewSymbol(p.ElemType.String()),
		p.Size.Lisp(),
		p.Body.Lisp(),
	})
}

func (p *Allocate) String() string { return p.Lisp().String(false) }

// ============================================================================
// Realize
// ============================================================================

// Realize allocates storage for a multi-dimensional function over a given
// region for the duration of its body.
type Realize struct {
	Name   string
	Types  []Type
	Bounds Region
	Body   Stmt
}

func (p *Realize) isStmt() {}

// Lisp implementation for Node interface.
func (p *Realize) Lisp() sexp.SExp {
	types := make([]sexp.SExp, len(p.Types))
	//
	for i, t := range p.Types {
		types[i] = sexp.NewSymbol(t.String())
	}
	//
	return sexp.NewList([]sexp.SExp{
		sexp.NewSymbol("realize"),
		sexp.NewSymbol(p.Name),
		sexp.NewArray(types),
		p.Bounds.Lisp(),
		p.Body.Lisp(),
	})
}

func (p *Realize) String() string { return p.Lisp().String(false) }

// ============================================================================
// Block
// ============================================================================

// Block executes one statement followed by another.
type Block struct {
	First Stmt
	Rest  Stmt
}

// NewBlock sequences one or more statements together.
func NewBlock(stmts ...Stmt) Stmt {
	if len(stmts) == 0 {
		panic("empty block")
	} else if len(stmts) == 1 {
		return stmts[0]
	}
	//
	return &Block{stmts[0], NewBlock(stmts[1:]...)}
}

func (p *Block) isStmt() {}

// Lisp implementation for Node interface.
func (p *Block) Lisp() sexp.SExp {
	return lispOf("block", p.First, p.Rest)
}

func (p *Block) String() string { return p.Lisp().String(false) }
