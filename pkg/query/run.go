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
	"context"
	"fmt"
	"runtime"

	"github.com/consensys/go-bounds/pkg/bounds"
	"github.com/consensys/go-bounds/pkg/ir"
	"github.com/consensys/go-bounds/pkg/util"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Config determines how a script is evaluated.
type Config struct {
	// Maximum number of queries evaluated at once.  When zero, the number of
	// CPUs is used.
	Jobs int
	// Simplify determines whether results are simplified before being reported.
	Simplify bool
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{runtime.NumCPU(), true}
}

// Result holds the answer to a single query.  For a BOUNDS query this is an
// interval, otherwise it is the box of each array accessed.
type Result struct {
	Query    *Query
	Interval bounds.Interval
	Boxes    map[string]bounds.Box
}

// Run evaluates every query of a given script, returning the results in the
// order the queries were written.  Since each query carries its own snapshot of
// the scope, queries are evaluated concurrently.  A query violating a contract
// of the bounds engine (e.g. bounding a vector expression) halts evaluation
// with an error reported against the offending query.
func Run(ctx context.Context, script *Script, config Config) ([]Result, error) {
	var (
		stats   = util.NewPerfStats()
		results = make([]Result, len(script.Queries))
		jobs    = config.Jobs
	)
	//
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	//
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	//
	for i := range script.Queries {
		query := &script.Queries[i]
		//
		g.Go(func() (err error) {
			if err = gctx.Err(); err != nil {
				return err
			}
			// Contract violations are reported against the query
			defer func() {
				if r := recover(); r != nil {
					err = script.File.SyntaxError(query.span, fmt.Sprint(r))
				}
			}()
			//
			results[i] = Evaluate(query, config.Simplify)
			//
			return nil
		})
	}
	//
	if err := g.Wait(); err != nil {
		return nil, err
	}
	//
	stats.Log(fmt.Sprintf("Evaluating %d queries (%s)", len(results), script.File.Filename()))
	//
	return results, nil
}

// Evaluate a single query, optionally simplifying the result.
func Evaluate(query *Query, simplify bool) Result {
	var result = Result{Query: query}
	//
	log.Debugf("evaluating %s query on line %d", query.Kind, query.Line)
	//
	switch query.Kind {
	case BOUNDS:
		result.Interval = bounds.Of(query.Node.(ir.Expr), query.Scope)
		//
		if simplify {
			result.Interval = result.Interval.Simplify()
		}
	default:
		q := bounds.Query{
			Calls:    query.Kind != PROVIDED,
			Provides: query.Kind != REQUIRED,
			Func:     query.Func,
			Scope:    query.Scope,
		}
		//
		switch n := query.Node.(type) {
		case ir.Expr:
			q.Expr = n
		case ir.Stmt:
			q.Stmt = n
		}
		//
		result.Boxes = q.Boxes()
		//
		if simplify {
			for name, box := range result.Boxes {
				result.Boxes[name] = box.Simplify()
			}
		}
	}
	//
	return result
}
