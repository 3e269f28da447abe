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
package query

import (
	"fmt"
	"slices"
	"strings"

	"github.com/consensys/go-bounds/pkg/bounds"
	"github.com/consensys/go-bounds/pkg/ir"
	"github.com/consensys/go-bounds/pkg/util/source"
	"github.com/consensys/go-bounds/pkg/util/source/sexp"
)

// Kind identifies what is being asked of a given node.
type Kind uint8

const (
	// BOUNDS asks for the interval of values an expression can take.
	BOUNDS Kind = iota
	// REQUIRED asks for the boxes read from each array.
	REQUIRED
	// PROVIDED asks for the boxes written to each array.
	PROVIDED
	// TOUCHED asks for the boxes read or written for each array.
	TOUCHED
)

var kindNames = []string{"bounds", "required", "provided", "touched"}

func (k Kind) String() string {
	return kindNames[k]
}

// Query is a single question asked of the bounds engine.  The scope is a
// snapshot of the bindings in force at the point the query was written, hence
// queries can be answered independently of one another.
type Query struct {
	Kind Kind
	// Node is an expression for BOUNDS queries, and either an expression or a
	// statement otherwise.
	Node ir.Node
	// Func (when non-empty) restricts a box query to a single array.
	Func  string
	Scope *bounds.Scope
	// Line on which the query starts.
	Line int
	span source.Span
}

// Script is a sequence of queries read from a source file.
type Script struct {
	File    *source.File
	Queries []Query
}

// Read a script from a given source file.  A script consists of scope bindings
// and queries, where each binding is in force for all subsequent queries:
//
//	(scope x 0 10)
//	(bounds (+ x 1))
//	(required (for i 0 n (provide out [(call in i)] [i])) in)
//
// Either end of a binding can be "_", indicating it is unbounded.
func Read(srcfile *source.File) (*Script, []source.SyntaxError) {
	terms, srcmap, err := sexp.ParseAll(srcfile)
	//
	if err != nil {
		return nil, []source.SyntaxError{*err}
	}
	//
	reader := &scriptReader{srcmap, ir.NewParser(srcmap), bounds.NewScope()}
	script := &Script{File: srcfile}
	//
	var errs []source.SyntaxError
	//
	for _, term := range terms {
		q, errs2 := reader.readTerm(term)
		//
		if len(errs2) > 0 {
			errs = append(errs, errs2...)
		} else if q != nil {
			script.Queries = append(script.Queries, *q)
		}
	}
	//
	return script, errs
}

type scriptReader struct {
	srcmap *source.Map[sexp.SExp]
	parser *ir.Parser
	// Bindings made so far
	scope *bounds.Scope
}

// Read a top-level term, returning a query (if the term was one).
func (p *scriptReader) readTerm(term sexp.SExp) (*Query, []source.SyntaxError) {
	list := term.AsList()
	//
	if list == nil {
		return nil, p.errors(term, "expected scope or query")
	} else if list.Head() == "scope" {
		return nil, p.readScope(list)
	} else if kind := slices.Index(kindNames, list.Head()); kind >= 0 {
		return p.readQuery(Kind(kind), list)
	}
	//
	return nil, p.errors(term, "unknown declaration")
}

func (p *scriptReader) readScope(list *sexp.List) []source.SyntaxError {
	if list.Len() != 4 || list.Get(1).AsSymbol() == nil {
		return p.errors(list, "expected (scope name min max)")
	}
	//
	// Any type annotation on the name is ignored
	name, _, _ := strings.Cut(list.Get(1).AsSymbol().Value, ":")
	lo, errs := p.readBound(list.Get(2))
	hi, errs2 := p.readBound(list.Get(3))
	//
	if errs = append(errs, errs2...); len(errs) > 0 {
		return errs
	} else if lo != nil && hi != nil && lo.Type() != hi.Type() {
		return p.errors(list, "mismatched bound types")
	}
	//
	p.scope.Push(name, bounds.NewInterval(lo, hi))
	//
	return nil
}

func (p *scriptReader) readBound(term sexp.SExp) (ir.Expr, []source.SyntaxError) {
	if sym := term.AsSymbol(); sym != nil && sym.Value == "_" {
		return nil, nil
	} else if ir.IsStmt(term) {
		return nil, p.errors(term, "expected expression")
	}
	//
	return p.parser.Expr(term)
}

func (p *scriptReader) readQuery(kind Kind, list *sexp.List) (*Query, []source.SyntaxError) {
	var (
		node ir.Node
		errs []source.SyntaxError
		fn   string
	)
	//
	switch {
	case kind == BOUNDS && list.Len() != 2:
		return nil, p.errors(list, "expected (bounds expr)")
	case kind != BOUNDS && (list.Len() < 2 || list.Len() > 3):
		return nil, p.errors(list, fmt.Sprintf("expected (%s node [name])", kind))
	case kind == BOUNDS && ir.IsStmt(list.Get(1)):
		return nil, p.errors(list.Get(1), "expected expression")
	}
	//
	if node, errs = p.parser.Node(list.Get(1)); len(errs) > 0 {
		return nil, errs
	}
	//
	if list.Len() == 3 {
		if sym := list.Get(2).AsSymbol(); sym != nil {
			fn = sym.Value
		} else {
			return nil, p.errors(list.Get(2), "expected array name")
		}
	}
	//
	span := p.srcmap.Get(list)
	line := p.srcmap.Source().EnclosingLine(span)
	//
	return &Query{kind, node, fn, p.scope.Freeze(), line.Number(), span}, nil
}

func (p *scriptReader) errors(s sexp.SExp, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.srcmap.SyntaxError(s, msg)}
}
