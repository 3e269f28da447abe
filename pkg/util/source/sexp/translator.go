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
package sexp

import (
	"fmt"

	"github.com/consensys/go-bounds/pkg/util/source"
)

// SymbolRule converts a symbol into a term of type T.  A rule which does not
// apply to a given symbol returns false, allowing subsequent rules to be tried.
type SymbolRule[T comparable] func(string) (T, bool, error)

// ListRule converts a list into a term of type T.  The rule is responsible for
// translating any arguments itself.
type ListRule[T comparable] func(*List) (T, []source.SyntaxError)

// RecursiveRule converts a list whose arguments have already been translated
// (by the enclosing translator) into a term of type T.
type RecursiveRule[T comparable] func(string, []T) (T, error)

// ===================================================================
// Translator
// ===================================================================

// Translator is a generic mechanism for translating S-Expressions into some
// structured form T, whilst maintaining a source map for the translated terms.
type Translator[T comparable] struct {
	srcfile *source.File
	// Rules for lists, indexed by their head symbol.
	lists map[string]ListRule[T]
	// Rules for symbols, tried in order.
	symbols []SymbolRule[T]
	// Spans of the S-Expressions being translated.
	oldSrcmap *source.Map[SExp]
	// Spans of the translated terms.
	newSrcmap *source.Map[T]
}

// NewTranslator constructs a new translator for S-Expressions parsed from a
// given file.
func NewTranslator[T comparable](srcmap *source.Map[SExp]) *Translator[T] {
	return &Translator[T]{
		srcfile:   srcmap.Source(),
		lists:     make(map[string]ListRule[T]),
		oldSrcmap: srcmap,
		newSrcmap: source.NewMap[T](srcmap.Source()),
	}
}

// SourceMap returns the source map for terms constructed by this translator.
func (p *Translator[T]) SourceMap() *source.Map[T] {
	return p.newSrcmap
}

// Translate a given S-Expression into a term.
func (p *Translator[T]) Translate(sexp SExp) (T, []source.SyntaxError) {
	return translateSExp(p, sexp)
}

// AddListRule adds a raw list rule for lists with the given head symbol.
func (p *Translator[T]) AddListRule(name string, rule ListRule[T]) {
	p.lists[name] = rule
}

// AddRecursiveListRule adds a list rule for lists with the given head symbol,
// whose arguments are translated recursively before the rule is applied.
func (p *Translator[T]) AddRecursiveListRule(name string, rule RecursiveRule[T]) {
	p.lists[name] = func(l *List) (T, []source.SyntaxError) {
		var (
			empty  T
			errors []source.SyntaxError
			args   = make([]T, len(l.Elements)-1)
		)
		//
		for i, s := range l.Elements[1:] {
			var errs []source.SyntaxError
			args[i], errs = translateSExp(p, s)
			errors = append(errors, errs...)
		}
		//
		if len(errors) > 0 {
			return empty, errors
		}
		//
		term, err := rule(l.Head(), args)
		if err != nil {
			return empty, p.SyntaxErrors(l, err.Error())
		}
		//
		return term, nil
	}
}

// AddSymbolRule adds a new symbol rule to this translator.
func (p *Translator[T]) AddSymbolRule(rule SymbolRule[T]) {
	p.symbols = append(p.symbols, rule)
}

// SyntaxError constructs a syntax error for a given S-Expression.
func (p *Translator[T]) SyntaxError(s SExp, msg string) *source.SyntaxError {
	return p.srcfile.SyntaxError(p.oldSrcmap.Get(s), msg)
}

// SyntaxErrors constructs a singleton array of syntax errors for a given
// S-Expression.
func (p *Translator[T]) SyntaxErrors(s SExp, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.SyntaxError(s, msg)}
}

// ===================================================================
// Private
// ===================================================================

func translateSExp[T comparable](p *Translator[T], s SExp) (T, []source.SyntaxError) {
	var empty T
	//
	switch e := s.(type) {
	case *List:
		return translateSExpList(p, e)
	case *Symbol:
		for _, rule := range p.symbols {
			node, ok, err := rule(e.Value)
			//
			if ok && err != nil {
				return empty, p.SyntaxErrors(s, err.Error())
			} else if ok {
				p.newSrcmap.Put(node, p.oldSrcmap.Get(s))
				return node, nil
			}
		}
		//
		return empty, p.SyntaxErrors(s, fmt.Sprintf("unknown symbol \"%s\"", e.Value))
	}
	//
	return empty, p.SyntaxErrors(s, "unexpected array")
}

func translateSExpList[T comparable](p *Translator[T], l *List) (T, []source.SyntaxError) {
	var empty T
	//
	if l.Head() == "" {
		return empty, p.SyntaxErrors(l, "invalid list")
	}
	//
	rule, ok := p.lists[l.Head()]
	if !ok {
		return empty, p.SyntaxErrors(l, fmt.Sprintf("unknown operator \"%s\"", l.Head()))
	}
	//
	node, errors := rule(l)
	//
	if len(errors) == 0 && !p.newSrcmap.Has(node) {
		p.newSrcmap.Put(node, p.oldSrcmap.Get(l))
	}
	//
	return node, errors
}
