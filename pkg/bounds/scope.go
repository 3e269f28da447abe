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
	"maps"
	"slices"

	"github.com/consensys/go-bounds/pkg/util"
	"github.com/consensys/go-bounds/pkg/util/collection/stack"
)

// Scope maps variable names to intervals, modelling the lexical nesting of
// let bindings and loop variables.  Each name has a stack of bindings, of which
// only the most recent is visible.  A scope may be nested within an enclosing
// scope, which it can read but never modifies.  Thus, a nested scope can be
// used freely whilst the enclosing scope is shared (read-only) between
// concurrent queries.
type Scope struct {
	parent   *Scope
	bindings map[string]*stack.Stack[Interval]
}

// NewScope constructs an empty scope.
func NewScope() *Scope {
	return &Scope{nil, make(map[string]*stack.Stack[Interval])}
}

// Nest constructs an empty scope nested within this scope.
func (p *Scope) Nest() *Scope {
	return &Scope{p, make(map[string]*stack.Stack[Interval])}
}

// Push a new binding for a given name, which shadows any existing binding until
// it is popped.
func (p *Scope) Push(name string, interval Interval) {
	bindings, ok := p.bindings[name]
	//
	if !ok {
		bindings = stack.NewStack[Interval]()
		p.bindings[name] = bindings
	}
	//
	bindings.Push(interval)
}

// Pop the most recent binding for a given name.  Bindings in an enclosing scope
// cannot be popped.
func (p *Scope) Pop(name string) {
	bindings, ok := p.bindings[name]
	//
	if !ok || bindings.IsEmpty() {
		panic(fmt.Sprintf("name \"%s\" not bound in scope", name))
	}
	//
	bindings.Pop()
	//
	if bindings.IsEmpty() {
		delete(p.bindings, name)
	}
}

// Contains checks whether a given name is bound in this scope (or an enclosing
// scope).
func (p *Scope) Contains(name string) bool {
	return p.Lookup(name).HasValue()
}

// Lookup the innermost binding for a given name, returning None if there is no
// binding.
func (p *Scope) Lookup(name string) util.Option[Interval] {
	for s := p; s != nil; s = s.parent {
		if bindings, ok := s.bindings[name]; ok {
			return util.Some(bindings.Peek(0))
		}
	}
	//
	return util.None[Interval]()
}

// Get the innermost binding for a given name, which must exist.
func (p *Scope) Get(name string) Interval {
	if binding := p.Lookup(name); binding.HasValue() {
		return binding.Unwrap()
	}
	//
	panic(fmt.Sprintf("name \"%s\" not bound in scope", name))
}

// Names returns the (sorted) names visible in this scope.
func (p *Scope) Names() []string {
	var names = make(map[string]bool)
	//
	for s := p; s != nil; s = s.parent {
		for name := range s.bindings {
			names[name] = true
		}
	}
	//
	return slices.Sorted(maps.Keys(names))
}

// Freeze returns a flattened copy of this scope holding only the visible
// bindings, which is unaffected by any subsequent changes to this scope.
func (p *Scope) Freeze() *Scope {
	var frozen = NewScope()
	//
	for _, name := range p.Names() {
		frozen.Push(name, p.Get(name))
	}
	//
	return frozen
}
