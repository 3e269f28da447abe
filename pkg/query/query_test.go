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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/consensys/go-bounds/pkg/util/assert"
	"github.com/consensys/go-bounds/pkg/util/source"
)

func Test_Query_Basic(t *testing.T) {
	checkScript(t, "basic", 4)
}

func Test_Query_Loop(t *testing.T) {
	checkScript(t, "loop", 4)
}

func Test_Query_Sequential(t *testing.T) {
	checkScript(t, "basic", 1)
	checkScript(t, "loop", 1)
}

func Test_Query_Errors(t *testing.T) {
	srcfile := readTestFile(t, "errors.lisp")
	_, errs := Read(srcfile)
	//
	var lines []string
	for _, err := range errs {
		lines = append(lines, err.Error())
	}
	//
	assert.Equal(t, readExpected(t, "errors.out"), strings.Join(lines, "\n")+"\n")
}

func Test_Query_Scope_01(t *testing.T) {
	script := readScript(t, "(scope x 0 10)\n(bounds x)\n(scope x 1 2)\n(bounds x)\n(scope y 5 5)\n(bounds (+ x y))")
	//
	assert.Equal(t, 3, len(script.Queries))
	assert.Equal(t, []string{"x"}, script.Queries[0].Scope.Names())
	assert.Equal(t, []string{"x", "y"}, script.Queries[2].Scope.Names())
	assert.Equal(t, "[1, 2]", script.Queries[1].Scope.Get("x").String())
	// Earlier snapshots are unaffected by later bindings
	assert.Equal(t, "[0, 10]", script.Queries[0].Scope.Get("x").String())
}

func Test_Query_Scope_02(t *testing.T) {
	script := readScript(t, "(scope x:u8 _ 7:u8)\n(bounds x)")
	//
	assert.Equal(t, "[_, 7:u8]", script.Queries[0].Scope.Get("x").String())
	assert.Equal(t, 2, script.Queries[0].Line)
}

func Test_Query_NoSimplify(t *testing.T) {
	lines := runScript(t, "(scope x 0 10)\n(bounds (+ x 1))", Config{Jobs: 2, Simplify: false}, false)
	//
	assert.Equal(t, []string{"input:2: [(+ 0 1), (+ 10 1)]"}, lines)
}

func Test_Query_Colour(t *testing.T) {
	lines := runScript(t, "(scope x _ _)\n(bounds x)", DefaultConfig(), true)
	unbounded := "\033[1;31m_\033[0m"
	//
	assert.Equal(t, []string{"input:2: [" + unbounded + ", " + unbounded + "]"}, lines)
}

func Test_Query_Colour_02(t *testing.T) {
	lines := runScript(t, "(required (call f 1))", DefaultConfig(), true)
	//
	assert.Equal(t, []string{"input:1: \033[1mf\033[0m {[1, 1]}"}, lines)
}

func Test_Query_Contract_01(t *testing.T) {
	// Bounding a vector is a contract violation
	script := readScript(t, "(bounds 1)\n(bounds (ramp x 1 4))")
	_, err := Run(context.Background(), script, DefaultConfig())
	//
	assert.True(t, err != nil)
	assert.True(t, strings.HasPrefix(err.Error(), "input:2:1: "), err.Error())
}

func Test_Query_Cancelled_01(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	//
	_, err := Run(ctx, readScript(t, "(bounds 1)"), DefaultConfig())
	//
	assert.True(t, err != nil)
}

func Test_Query_Empty_01(t *testing.T) {
	results, err := Run(context.Background(), readScript(t, "; nothing\n(scope x 0 1)"), DefaultConfig())
	//
	assert.NoError(t, err)
	assert.Equal(t, 0, len(results))
}

// ============================================================================
// Helpers
// ============================================================================

// Check the results of a script in the testdata directory against its
// expected output.
func checkScript(t *testing.T, name string, jobs int) {
	t.Helper()
	//
	var (
		buf     bytes.Buffer
		srcfile = readTestFile(t, name+".lisp")
		config  = Config{Jobs: jobs, Simplify: true}
	)
	//
	script, errs := Read(srcfile)
	if len(errs) > 0 {
		t.Fatalf("%s", errs[0].Error())
	}
	//
	results, err := Run(context.Background(), script, config)
	assert.NoError(t, err)
	assert.NoError(t, NewFormatter(&buf, false).Write(name+".lisp", results))
	assert.Equal(t, readExpected(t, name+".out"), buf.String())
}

func runScript(t *testing.T, input string, config Config, colour bool) []string {
	t.Helper()
	//
	var buf bytes.Buffer
	//
	results, err := Run(context.Background(), readScript(t, input), config)
	assert.NoError(t, err)
	assert.NoError(t, NewFormatter(&buf, colour).Write("input", results))
	//
	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
}

func readScript(t *testing.T, input string) *Script {
	t.Helper()
	//
	script, errs := Read(source.NewFile("input", []byte(input)))
	if len(errs) > 0 {
		t.Fatalf("%s", errs[0].Error())
	}
	//
	return script
}

func readTestFile(t *testing.T, name string) *source.File {
	t.Helper()
	//
	bytes, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	//
	return source.NewFile(name, bytes)
}

func readExpected(t *testing.T, name string) string {
	t.Helper()
	//
	return string(readTestFile(t, name).Contents())
}
