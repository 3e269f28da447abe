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
	"unicode"

	"github.com/consensys/go-bounds/pkg/util/source"
)

// Parse a given file into a single S-Expression, along with a source map which
// records the span of every parsed term.  Anything after the first term (other
// than whitespace or comments) is reported as an error.
func Parse(s *source.File) (SExp, *source.Map[SExp], *source.SyntaxError) {
	p := NewParser(s)
	term, err := p.Parse()
	//
	if err == nil {
		p.SkipWhiteSpace()
		//
		if p.index != len(p.text) {
			return nil, nil, p.error("unexpected remainder")
		}
	}
	//
	return term, p.srcmap, err
}

// ParseAll parses a given file into zero or more S-Expressions, along with a
// source map recording the span of every parsed term.
func ParseAll(s *source.File) ([]SExp, *source.Map[SExp], *source.SyntaxError) {
	var (
		p     = NewParser(s)
		terms []SExp
	)
	//
	for {
		term, err := p.Parse()
		//
		if err != nil {
			return terms, p.srcmap, err
		} else if term == nil {
			return terms, p.srcmap, nil
		}
		//
		terms = append(terms, term)
	}
}

// Parser represents a parser in the process of parsing a given string into one
// or more S-Expressions.  Line comments begin with ';', and symbols enclosed in
// double quotes may contain whitespace or braces.
type Parser struct {
	srcfile *source.File
	text    []rune
	index   int
	srcmap  *source.Map[SExp]
}

// NewParser constructs a new parser for a given source file.
func NewParser(srcfile *source.File) *Parser {
	return &Parser{
		srcfile: srcfile,
		text:    srcfile.Contents(),
		srcmap:  source.NewMap[SExp](srcfile),
	}
}

// SourceMap returns the source map constructed so far.
func (p *Parser) SourceMap() *source.Map[SExp] {
	return p.srcmap
}

// Parse the next S-Expression, returning nil if none remains.
func (p *Parser) Parse() (SExp, *source.SyntaxError) {
	var term SExp
	//
	p.SkipWhiteSpace()
	//
	start := p.index
	token := p.next()
	//
	switch {
	case token == nil:
		return nil, nil
	case isClose(token):
		p.index--
		return nil, p.error("unexpected end-of-list")
	case len(token) == 1 && token[0] == '(':
		elements, err := p.parseSequence(')')
		if err != nil {
			return nil, err
		}
		//
		term = NewList(elements)
	case len(token) == 1 && token[0] == '[':
		elements, err := p.parseSequence(']')
		if err != nil {
			return nil, err
		}
		//
		term = NewArray(elements)
	default:
		term = NewSymbol(string(token))
	}
	//
	p.srcmap.Put(term, source.NewSpan(start, p.index))
	//
	return term, nil
}

// SkipWhiteSpace skips over any whitespace and comments.
func (p *Parser) SkipWhiteSpace() {
	for p.index < len(p.text) {
		if p.text[p.index] == ';' {
			for p.index < len(p.text) && p.text[p.index] != '\n' {
				p.index++
			}
		} else if unicode.IsSpace(p.text[p.index]) {
			p.index++
		} else {
			return
		}
	}
}

func (p *Parser) next() []rune {
	p.SkipWhiteSpace()
	//
	if p.index == len(p.text) {
		return nil
	} else if isBrace(p.text[p.index]) {
		p.index++
		return p.text[p.index-1 : p.index]
	}
	// Symbol
	start := p.index
	// Quoted symbols extend to the closing quote
	if p.text[p.index] == '"' {
		for p.index++; p.index < len(p.text) && p.text[p.index] != '"'; p.index++ {
			if p.text[p.index] == '\\' {
				p.index++
			}
		}
		//
		p.index = min(p.index+1, len(p.text))
		//
		return p.text[start:p.index]
	}
	//
	for p.index < len(p.text) && !isBrace(p.text[p.index]) && !unicode.IsSpace(p.text[p.index]) &&
		p.text[p.index] != ';' {
		p.index++
	}
	//
	return p.text[start:p.index]
}

func (p *Parser) parseSequence(terminator rune) ([]SExp, *source.SyntaxError) {
	var elements []SExp
	//
	for {
		p.SkipWhiteSpace()
		//
		if p.index == len(p.text) {
			return nil, p.error("unexpected end-of-file")
		} else if p.text[p.index] == terminator {
			p.index++
			return elements, nil
		}
		//
		element, err := p.Parse()
		if err != nil {
			return nil, err
		}
		//
		elements = append(elements, element)
	}
}

func (p *Parser) error(msg string) *source.SyntaxError {
	end := min(p.index+1, len(p.text))
	//
	return p.srcfile.SyntaxError(source.NewSpan(p.index, end), msg)
}

func isBrace(r rune) bool {
	return r == '(' || r == ')' || r == '[' || r == ']'
}

func isClose(token []rune) bool {
	return len(token) == 1 && (token[0] == ')' || token[0] == ']')
}
