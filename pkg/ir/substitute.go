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

// Substitute replaces every free occurrence of a variable named in the given
// mapping with its corresponding expression.  Variables bound by an enclosing
// Let are not free, and are therefore left alone.  Subtrees containing no
// substitutions are returned unchanged (i.e. the same node).
func Substitute(e Expr, mapping map[string]Expr) Expr {
	switch e := e.(type) {
	case *Variable:
		if v, ok := mapping[e.Name]; ok {
			if v.Type() != e.Type() {
				panic("substitution changes type of variable " + e.Name)
			}
			//
			return v
		}
		//
		return e
	case *Let:
		value := Substitute(e.Value, mapping)
		body := Substitute(e.Body, shadow(mapping, e.Name))
		//
		if SameAs(value, e.Value) && SameAs(body, e.Body) {
			return e
		}
		//
		return NewLet(e.Name, value, body)
	default:
		return MapChildren(e, func(child Expr) Expr { return Substitute(child, mapping) })
	}
}

// Remove a given name from a mapping, whilst leaving the original mapping
// intact.
func shadow(mapping map[string]Expr, name string) map[string]Expr {
	if _, ok := mapping[name]; !ok {
		return mapping
	}
	//
	nmapping := make(map[string]Expr, len(mapping))
	//
	for k, v := range mapping {
		if k != name {
			nmapping[k] = v
		}
	}
	//
	return nmapping
}
