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
	"strconv"
	"strings"
	"unicode"

	"github.com/consensys/go-bounds/pkg/util/source"
	"github.com/consensys/go-bounds/pkg/util/source/sexp"
)

// ParseExpr parses a string into an expression, reporting the first syntax
// error encountered (if any).
func ParseExpr(input string) (Expr, error) {
	term, parser, err := parseOne(input)
	//
	if err != nil {
		return nil, err
	}
	//
	expr, errs := parser.Expr(term)
	//
	return expr, firstError(errs)
}

// ParseStmt parses a string into a statement, reporting the first syntax error
// encountered (if any).
func ParseStmt(input string) (Stmt, error) {
	term, parser, err := parseOne(input)
	//
	if err != nil {
		return nil, err
	}
	//
	stmt, errs := parser.Stmt(term)
	//
	return stmt, firstError(errs)
}

func parseOne(input string) (sexp.SExp, *Parser, error) {
	srcfile := source.NewFile("input", []byte(input))
	term, srcmap, err := sexp.Parse(srcfile)
	//
	if err != nil {
		return nil, nil, err
	} else if term == nil {
		return nil, nil, srcfile.SyntaxError(source.NewSpan(0, 0), "empty input")
	}
	//
	return term, NewParser(srcmap), nil
}

func firstError(errs []source.SyntaxError) error {
	if len(errs) > 0 {
		return &errs[0]
	}
	//
	return nil
}

// ============================================================================
// Parser
// ============================================================================

// Parser translates S-Expressions into expressions and statements.  Symbols
// are literals (e.g. "10", "250:u8" or "1.5:f64") or variables (e.g. "x" or
// "x:u16"), where int32 (resp. float32) is assumed when no type is given.
type Parser struct {
	srcmap     *source.Map[sexp.SExp]
	translator *sexp.Translator[Expr]
}

// NewParser constructs a parser for S-Expressions with a given source map.
func NewParser(srcmap *source.Map[sexp.SExp]) *Parser {
	p := &Parser{srcmap, sexp.NewTranslator[Expr](srcmap)}
	t := p.translator
	//
	t.AddSymbolRule(parseSymbol)
	// Arithmetic
	t.AddRecursiveListRule("+", nary(func(a, b Expr) Expr { return NewAdd(a, b) }))
	t.AddRecursiveListRule("-", subRule)
	t.AddRecursiveListRule("*", nary(func(a, b Expr) Expr { return NewMul(a, b) }))
	t.AddRecursiveListRule("/", binary(func(a, b Expr) Expr { return NewDiv(a, b) }))
	t.AddRecursiveListRule("%", binary(func(a, b Expr) Expr { return NewMod(a, b) }))
	t.AddRecursiveListRule("min", nary(func(a, b Expr) Expr { return NewMin(a, b) }))
	t.AddRecursiveListRule("max", nary(func(a, b Expr) Expr { return NewMax(a, b) }))
	// Comparisons
	for _, symbol := range comparisonSymbols {
		t.AddRecursiveListRule(symbol, compareRule)
	}
	// Logical
	t.AddRecursiveListRule("&&", logical(func(a, b Expr) Expr { return NewAnd(a, b) }))
	t.AddRecursiveListRule("||", logical(func(a, b Expr) Expr { return NewOr(a, b) }))
	t.AddRecursiveListRule("!", notRule)
	t.AddRecursiveListRule("select", selectRule)
	// Intrinsics
	t.AddRecursiveListRule(ABS, absRule)
	t.AddRecursiveListRule(ADDRESS_OF, addressOfRule)
	// Others
	t.AddListRule("cast", p.castRule)
	t.AddListRule("load", p.loadRule)
	t.AddListRule("let", p.letRule)
	t.AddListRule("ramp", p.rampRule)
	t.AddListRule("broadcast", p.broadcastRule)
	//
	for _, keyword := range callKeywords {
		t.AddListRule(keyword, p.callRule)
	}
	//
	return p
}

// IsStmt determines whether a given S-Expression denotes a statement (rather
// than an expression).
func IsStmt(s sexp.SExp) bool {
	if l := s.AsList(); l != nil {
		switch l.Head() {
		case "letstmt", "assert", "pipeline", "store", "provide", "allocate", "realize", "block":
			return true
		default:
			_, ok := LoopType(l.Head())
			return ok
		}
	}
	//
	return false
}

// Expr translates an S-Expression into an expression.
func (p *Parser) Expr(s sexp.SExp) (Expr, []source.SyntaxError) {
	return p.translator.Translate(s)
}

// Node translates an S-Expression into either a statement or an expression.
func (p *Parser) Node(s sexp.SExp) (Node, []source.SyntaxError) {
	if IsStmt(s) {
		return p.Stmt(s)
	}
	//
	return p.Expr(s)
}

// ============================================================================
// Expressions
// ============================================================================

func parseSymbol(symbol string) (Expr, bool, error) {
	var (
		name, typename, typed = strings.Cut(symbol, ":")
		t                     = Int(32)
		err                   error
	)
	//
	if typed {
		if t, err = ParseType(typename); err != nil {
			return nil, true, err
		}
	}
	//
	switch {
	case isNumber(name):
		if !typed && strings.ContainsAny(name, ".eE") {
			t = Float(32)
		}
		//
		return parseNumber(name, t)
	case isIdentifier(name):
		return NewVariable(name, t), true, nil
	}
	//
	return nil, false, nil
}

func parseNumber(number string, t Type) (Expr, bool, error) {
	if t.IsFloat() {
		val, err := strconv.ParseFloat(number, 64)
		if err != nil {
			return nil, true, fmt.Errorf("invalid literal \"%s\"", number)
		}
		//
		return NewFloatImm(t, val), true, nil
	} else if val, err := strconv.ParseInt(number, 10, 64); err == nil && t.CanRepresent(val) {
		return NewIntImm(t, val), true, nil
	} else if val, err := strconv.ParseUint(number, 10, 64); err == nil && t == UInt(64) {
		return NewIntImm(t, int64(val)), true, nil
	}
	//
	return nil, true, fmt.Errorf("invalid %s literal \"%s\"", t, number)
}

func isNumber(name string) bool {
	name = strings.TrimLeft(name, "+-")
	//
	return len(name) > 0 && (unicode.IsDigit(rune(name[0])) || name[0] == '.')
}

func isIdentifier(name string) bool {
	for i, c := range name {
		if !unicode.IsLetter(c) && c != '_' && (i == 0 || (!unicode.IsDigit(c) && c != '.')) {
			return false
		}
	}
	//
	return len(name) > 0
}

func checkArgs(n int, args []Expr) error {
	if len(args) != n {
		return fmt.Errorf("expected %d arguments, found %d", n, len(args))
	}
	//
	return nil
}

func checkSameType(args ...Expr) error {
	for _, arg := range args[1:] {
		if arg.Type() != args[0].Type() {
			return fmt.Errorf("mismatched types (%s vs %s)", args[0].Type(), arg.Type())
		}
	}
	//
	return nil
}

func checkBoolean(args ...Expr) error {
	for _, arg := range args {
		if !arg.Type().IsBool() {
			return fmt.Errorf("expected boolean, found %s", arg.Type())
		}
	}
	//
	return nil
}

// Construct a rule for an operator with two or more operands, which associates
// to the left.
func nary(ctor func(Expr, Expr) Expr) sexp.RecursiveRule[Expr] {
	return func(_ string, args []Expr) (Expr, error) {
		if len(args) < 2 {
			return nil, fmt.Errorf("expected at least 2 arguments, found %d", len(args))
		} else if err := checkSameType(args...); err != nil {
			return nil, err
		}
		//
		result := args[0]
		//
		for _, arg := range args[1:] {
			result = ctor(result, arg)
		}
		//
		return result, nil
	}
}

func binary(ctor func(Expr, Expr) Expr) sexp.RecursiveRule[Expr] {
	return func(_ string, args []Expr) (Expr, error) {
		if err := checkArgs(2, args); err != nil {
			return nil, err
		} else if err := checkSameType(args...); err != nil {
			return nil, err
		}
		//
		return ctor(args[0], args[1]), nil
	}
}

func logical(ctor func(Expr, Expr) Expr) sexp.RecursiveRule[Expr] {
	rule := nary(ctor)
	//
	return func(head string, args []Expr) (Expr, error) {
		if err := checkBoolean(args...); err != nil {
			return nil, err
		}
		//
		return rule(head, args)
	}
}

// Subtraction is either binary, or unary negation.
func subRule(_ string, args []Expr) (Expr, error) {
	if len(args) == 1 {
		return NewSub(Zero(args[0].Type()), args[0]), nil
	} else if err := checkArgs(2, args); err != nil {
		return nil, err
	} else if err := checkSameType(args...); err != nil {
		return nil, err
	}
	//
	return NewSub(args[0], args[1]), nil
}

func compareRule(head string, args []Expr) (Expr, error) {
	op, _ := ComparisonOp(head)
	//
	if err := checkArgs(2, args); err != nil {
		return nil, err
	} else if err := checkSameType(args...); err != nil {
		return nil, err
	}
	//
	return NewCompare(op, args[0], args[1]), nil
}

func notRule(_ string, args []Expr) (Expr, error) {
	if err := checkArgs(1, args); err != nil {
		return nil, err
	} else if err := checkBoolean(args...); err != nil {
		return nil, err
	}
	//
	return NewNot(args[0]), nil
}

func selectRule(_ string, args []Expr) (Expr, error) {
	if err := checkArgs(3, args); err != nil {
		return nil, err
	} else if err := checkBoolean(args[0]); err != nil {
		return nil, err
	} else if err := checkSameType(args[1:]...); err != nil {
		return nil, err
	}
	//
	return NewSelect(args[0], args[1], args[2]), nil
}

func absRule(_ string, args []Expr) (Expr, error) {
	if err := checkArgs(1, args); err != nil {
		return nil, err
	}
	//
	return NewAbs(args[0]), nil
}

func addressOfRule(_ string, args []Expr) (Expr, error) {
	if err := checkArgs(1, args); err != nil {
		return nil, err
	} else if site, ok := args[0].(*Call); ok {
		return NewAddressOf(site), nil
	}
	//
	return nil, fmt.Errorf("%s expects a call", ADDRESS_OF)
}

func (p *Parser) castRule(l *sexp.List) (Expr, []source.SyntaxError) {
	if l.Len() != 3 {
		return nil, p.errors(l, "expected (cast TYPE EXPR)")
	}
	//
	t, errs := p.typeOf(l.Get(1))
	value, errs2 := p.Expr(l.Get(2))
	//
	if errs = append(errs, errs2...); len(errs) > 0 {
		return nil, errs
	}
	//
	return NewCast(t, value), nil
}

func (p *Parser) loadRule(l *sexp.List) (Expr, []source.SyntaxError) {
	if l.Len() != 4 {
		return nil, p.errors(l, "expected (load TYPE NAME INDEX)")
	}
	//
	t, errs := p.typeOf(l.Get(1))
	name, errs2 := p.name(l.Get(2))
	index, errs3 := p.Expr(l.Get(3))
	//
	if errs = append(append(errs, errs2...), errs3...); len(errs) > 0 {
		return nil, errs
	}
	//
	return NewLoad(t, name, index), nil
}

func (p *Parser) letRule(l *sexp.List) (Expr, []source.SyntaxError) {
	if l.Len() != 4 {
		return nil, p.errors(l, "expected (let NAME VALUE BODY)")
	}
	//
	name, errs := p.name(l.Get(1))
	value, errs2 := p.Expr(l.Get(2))
	body, errs3 := p.Expr(l.Get(3))
	//
	if errs = append(append(errs, errs2...), errs3...); len(errs) > 0 {
		return nil, errs
	}
	//
	return NewLet(name, value, body), nil
}

func (p *Parser) callRule(l *sexp.List) (Expr, []source.SyntaxError) {
	var (
		errs     []source.SyntaxError
		args     []Expr
		callType uint8
	)
	//
	for i, keyword := range callKeywords {
		if keyword == l.Head() {
			callType = uint8(i)
		}
	}
	//
	if l.Len() < 2 || l.Get(1).AsSymbol() == nil {
		return nil, p.errors(l, fmt.Sprintf("expected (%s NAME ARGS...)", l.Head()))
	}
	// Return type is optional
	name, typename, typed := strings.Cut(l.Get(1).AsSymbol().Value, ":")
	t := Int(32)
	//
	if callType == INTRINSIC_CALL && (name == ABS || name == ADDRESS_OF) {
		return nil, p.errors(l, fmt.Sprintf("expected (%s ARG)", name))
	}
	//
	if typed {
		var err error
		//
		if t, err = ParseType(typename); err != nil {
			errs = p.errors(l.Get(1), err.Error())
		}
	}
	//
	for _, arg := range l.Elements[2:] {
		e, errs2 := p.Expr(arg)
		errs = append(errs, errs2...)
		args = append(args, e)
	}
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return NewCall(t, name, args, callType), nil
}

func (p *Parser) rampRule(l *sexp.List) (Expr, []source.SyntaxError) {
	if l.Len() != 4 {
		return nil, p.errors(l, "expected (ramp BASE STRIDE LANES)")
	}
	//
	base, errs := p.Expr(l.Get(1))
	stride, errs2 := p.Expr(l.Get(2))
	lanes, errs3 := p.lanes(l.Get(3))
	//
	if errs = append(append(errs, errs2...), errs3...); len(errs) > 0 {
		return nil, errs
	} else if base.Type() != stride.Type() {
		return nil, p.errors(l, "mismatched types")
	}
	//
	return NewRamp(base, stride, lanes), nil
}

func (p *Parser) broadcastRule(l *sexp.List) (Expr, []source.SyntaxError) {
	if l.Len() != 3 {
		return nil, p.errors(l, "expected (broadcast VALUE LANES)")
	}
	//
	value, errs := p.Expr(l.Get(1))
	lanes, errs2 := p.lanes(l.Get(2))
	//
	if errs = append(errs, errs2...); len(errs) > 0 {
		return nil, errs
	}
	//
	return NewBroadcast(value, lanes), nil
}

// ============================================================================
// Statements
// ============================================================================

// Stmt translates an S-Expression into a statement.
func (p *Parser) Stmt(s sexp.SExp) (Stmt, []source.SyntaxError) {
	var l = s.AsList()
	//
	if l == nil || !IsStmt(l) {
		return nil, p.errors(s, "expected statement")
	}
	//
	switch l.Head() {
	case "letstmt":
		return p.letStmt(l)
	case "assert":
		return p.assertStmt(l)
	case "pipeline":
		return p.pipelineStmt(l)
	case "store":
		return p.storeStmt(l)
	case "provide":
		return p.provideStmt(l)
	case "allocate":
		return p.allocateStmt(l)
	case "realize":
		return p.realizeStmt(l)
	case "block":
		return p.blockStmt(l)
	default:
		return p.forStmt(l)
	}
}

func (p *Parser) letStmt(l *sexp.List) (Stmt, []source.SyntaxError) {
	if l.Len() != 4 {
		return nil, p.errors(l, "expected (letstmt NAME VALUE BODY)")
	}
	//
	name, errs := p.name(l.Get(1))
	value, errs2 := p.Expr(l.Get(2))
	body, errs3 := p.Stmt(l.Get(3))
	//
	if errs = append(append(errs, errs2...), errs3...); len(errs) > 0 {
		return nil, errs
	}
	//
	return &LetStmt{name, value, body}, nil
}

func (p *Parser) assertStmt(l *sexp.List) (Stmt, []source.SyntaxError) {
	if l.Len() != 3 || l.Get(2).AsSymbol() == nil {
		return nil, p.errors(l, "expected (assert COND MESSAGE)")
	}
	//
	cond, errs := p.Expr(l.Get(1))
	message, err := strconv.Unquote(l.Get(2).AsSymbol().Value)
	//
	if err != nil {
		errs = append(errs, p.errors(l.Get(2), "invalid message")...)
	}
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return &AssertStmt{cond, message}, nil
}

func (p *Parser) pipelineStmt(l *sexp.List) (Stmt, []source.SyntaxError) {
	if l.Len() != 4 && l.Len() != 5 {
		return nil, p.errors(l, "expected (pipeline NAME PRODUCE [UPDATE] CONSUME)")
	}
	//
	name, errs := p.name(l.Get(1))
	stmts, errs2 := p.stmts(l.Elements[2:])
	//
	if errs = append(errs, errs2...); len(errs) > 0 {
		return nil, errs
	} else if len(stmts) == 2 {
		return &Pipeline{name, stmts[0], nil, stmts[1]}, nil
	}
	//
	return &Pipeline{name, stmts[0], stmts[1], stmts[2]}, nil
}

func (p *Parser) forStmt(l *sexp.List) (Stmt, []source.SyntaxError) {
	if l.Len() != 5 {
		return nil, p.errors(l, fmt.Sprintf("expected (%s NAME MIN EXTENT BODY)", l.Head()))
	}
	//
	forType, _ := LoopType(l.Head())
	name, errs := p.name(l.Get(1))
	min, errs2 := p.Expr(l.Get(2))
	extent, errs3 := p.Expr(l.Get(3))
	body, errs4 := p.Stmt(l.Get(4))
	//
	if errs = append(append(append(errs, errs2...), errs3...), errs4...); len(errs) > 0 {
		return nil, errs
	}
	//
	return &For{name, min, extent, forType, body}, nil
}

func (p *Parser) storeStmt(l *sexp.List) (Stmt, []source.SyntaxError) {
	if l.Len() != 4 {
		return nil, p.errors(l, "expected (store NAME VALUE INDEX)")
	}
	//
	name, errs := p.name(l.Get(1))
	value, errs2 := p.Expr(l.Get(2))
	index, errs3 := p.Expr(l.Get(3))
	//
	if errs = append(append(errs, errs2...), errs3...); len(errs) > 0 {
		return nil, errs
	}
	//
	return &Store{name, value, index}, nil
}

func (p *Parser) provideStmt(l *sexp.List) (Stmt, []source.SyntaxError) {
	if l.Len() != 4 {
		return nil, p.errors(l, "expected (provide NAME [VALUES] [ARGS])")
	}
	//
	name, errs := p.name(l.Get(1))
	values, errs2 := p.exprs(l.Get(2))
	args, errs3 := p.exprs(l.Get(3))
	//
	if errs = append(append(errs, errs2...), errs3...); len(errs) > 0 {
		return nil, errs
	}
	//
	return NewProvide(name, values, args), nil
}

func (p *Parser) allocateStmt(l *sexp.List) (Stmt, []source.SyntaxError) {
	if l.Len() != 5 {
		return nil, p.errors(l, "expected (allocate NAME TYPE SIZE BODY)")
	}
	//
	name, errs := p.name(l.Get(1))
	t, errs2 := p.typeOf(l.Get(2))
	size, errs3 := p.Expr(l.Get(3))
	body, errs4 := p.Stmt(l.Get(4))
	//
	if errs = append(append(append(errs, errs2...), errs3...), errs4...); len(errs) > 0 {
		return nil, errs
	}
	//
	return &Allocate{name, t, size, body}, nil
}

func (p *Parser) realizeStmt(l *sexp.List) (Stmt, []source.SyntaxError) {
	if l.Len() != 5 || l.Get(2).AsArray() == nil || l.Get(3).AsArray() == nil {
		return nil, p.errors(l, "expected (realize NAME [TYPES] [(MIN EXTENT)...] BODY)")
	}
	//
	var (
		name, errs = p.name(l.Get(1))
		types      []Type
		region     Region
	)
	//
	for _, s := range l.Get(2).AsArray().Elements {
		t, errs2 := p.typeOf(s)
		errs = append(errs, errs2...)
		types = append(types, t)
	}
	//
	for _, s := range l.Get(3).AsArray().Elements {
		if r := s.AsList(); r == nil || r.Len() != 2 {
			errs = append(errs, p.errors(s, "expected (MIN EXTENT)")...)
		} else {
			min, errs2 := p.Expr(r.Get(0))
			extent, errs3 := p.Expr(r.Get(1))
			errs = append(append(errs, errs2...), errs3...)
			region = append(region, Range{min, extent})
		}
	}
	//
	body, errs2 := p.Stmt(l.Get(4))
	//
	if errs = append(errs, errs2...); len(errs) > 0 {
		return nil, errs
	}
	//
	return &Realize{name, types, region, body}, nil
}

func (p *Parser) blockStmt(l *sexp.List) (Stmt, []source.SyntaxError) {
	if l.Len() < 2 {
		return nil, p.errors(l, "expected (block STMT...)")
	}
	//
	stmts, errs := p.stmts(l.Elements[1:])
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return NewBlock(stmts...), nil
}

// ============================================================================
// Helpers
// ============================================================================

func (p *Parser) stmts(terms []sexp.SExp) ([]Stmt, []source.SyntaxError) {
	var (
		stmts = make([]Stmt, len(terms))
		errs  []source.SyntaxError
	)
	//
	for i, s := range terms {
		var errs2 []source.SyntaxError
		stmts[i], errs2 = p.Stmt(s)
		errs = append(errs, errs2...)
	}
	//
	return stmts, errs
}

func (p *Parser) exprs(s sexp.SExp) ([]Expr, []source.SyntaxError) {
	var (
		arr   = s.AsArray()
		exprs []Expr
		errs  []source.SyntaxError
	)
	//
	if arr == nil {
		return nil, p.errors(s, "expected array")
	}
	//
	for _, element := range arr.Elements {
		e, errs2 := p.Expr(element)
		errs = append(errs, errs2...)
		exprs = append(exprs, e)
	}
	//
	return exprs, errs
}

func (p *Parser) name(s sexp.SExp) (string, []source.SyntaxError) {
	if sym := s.AsSymbol(); sym != nil && isIdentifier(sym.Value) {
		return sym.Value, nil
	}
	//
	return "", p.errors(s, "expected name")
}

func (p *Parser) typeOf(s sexp.SExp) (Type, []source.SyntaxError) {
	if sym := s.AsSymbol(); sym != nil {
		if t, err := ParseType(sym.Value); err == nil {
			return t, nil
		}
	}
	//
	return Type{}, p.errors(s, "expected type")
}

func (p *Parser) lanes(s sexp.SExp) (uint, []source.SyntaxError) {
	if sym := s.AsSymbol(); sym != nil {
		if n, err := strconv.ParseUint(sym.Value, 10, 32); err == nil && n > 1 {
			return uint(n), nil
		}
	}
	//
	return 0, p.errors(s, "expected lane count")
}

func (p *Parser) errors(s sexp.SExp, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.srcmap.SyntaxError(s, msg)}
}
