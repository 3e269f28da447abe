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
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/consensys/go-bounds/pkg/bounds"
	"github.com/consensys/go-bounds/pkg/ir"
	"github.com/consensys/go-bounds/pkg/util/termio"
)

// Formatter writes results in a line-oriented textual form, where each line is
// prefixed with the location of its query.  When colour is enabled, unbounded
// ends are highlighted.
type Formatter struct {
	out    io.Writer
	colour bool
}

// NewFormatter constructs a formatter writing to a given output.
func NewFormatter(out io.Writer, colour bool) *Formatter {
	return &Formatter{out, colour}
}

// Write a set of results.
func (p *Formatter) Write(filename string, results []Result) error {
	for _, r := range results {
		for _, line := range p.Lines(r) {
			if _, err := fmt.Fprintf(p.out, "%s:%d: %s\n", filename, r.Query.Line, line); err != nil {
				return err
			}
		}
	}
	//
	return nil
}

// Lines formats a single result.  Boxes are reported one per line, in order of
// array name.
func (p *Formatter) Lines(r Result) []string {
	if r.Query.Kind == BOUNDS {
		return []string{p.Interval(r.Interval)}
	} else if len(r.Boxes) == 0 {
		return []string{"none"}
	}
	//
	var lines []string
	//
	for _, name := range slices.Sorted(maps.Keys(r.Boxes)) {
		label := termio.BoldAnsiEscape().Wrap(name, p.colour)
		lines = append(lines, label+" "+p.Box(r.Boxes[name]))
	}
	//
	return lines
}

// Box formats a box, such as "{[0, 9], [_, n]}".
func (p *Formatter) Box(box bounds.Box) string {
	var parts = make([]string, len(box))
	//
	for i, interval := range box {
		parts[i] = p.Interval(interval)
	}
	//
	return "{" + strings.Join(parts, ", ") + "}"
}

// Interval formats an interval, such as "[0, (+ n 1)]".
func (p *Formatter) Interval(interval bounds.Interval) string {
	return fmt.Sprintf("[%s, %s]", p.bound(interval.Min), p.bound(interval.Max))
}

func (p *Formatter) bound(e ir.Expr) string {
	if e == nil {
		return termio.BoldAnsiEscape().FgColour(termio.TERM_RED).Wrap("_", p.colour)
	}
	//
	return e.String()
}
