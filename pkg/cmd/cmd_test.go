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
package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/consensys/go-bounds/pkg/query"
	"github.com/consensys/go-bounds/pkg/util/assert"
)

func Test_Check_01(t *testing.T) {
	filename := writeScript(t, "a.lisp", "(scope x 0 10)\n(bounds (+ x 1))\n")
	//
	out, ok := check(t, filename)
	//
	assert.True(t, ok)
	assert.Equal(t, filename+":2: [1, 11]\n", out)
}

func Test_Check_02(t *testing.T) {
	filename := writeScript(t, "a.lisp", "(bounds (foo 1))\n")
	//
	out, ok := check(t, filename)
	//
	assert.False(t, ok)
	assert.Equal(t, filename+":1:9: unknown operator \"foo\"\n(bounds (foo 1))\n        ^^^^^^^\n", out)
}

func Test_Check_03(t *testing.T) {
	// Evaluation continues past a missing file
	filename := writeScript(t, "b.lisp", "(required (call f 3))\n")
	missing := filepath.Join(filepath.Dir(filename), "missing.lisp")
	//
	out, ok := check(t, missing, filename)
	//
	assert.False(t, ok)
	assert.True(t, strings.HasSuffix(out, filename+":1: f {[3, 3]}\n"), out)
}

func Test_Check_04(t *testing.T) {
	// Contract violations are reported against the offending query
	filename := writeScript(t, "c.lisp", "(bounds (ramp x 1 4))\n")
	//
	out, ok := check(t, filename)
	//
	assert.False(t, ok)
	assert.True(t, strings.HasPrefix(out, filename+":1:1: "), out)
}

func Test_Watch_01(t *testing.T) {
	var (
		filename    = writeScript(t, "w.lisp", "(bounds 1)\n")
		changed     = make(chan string, 16)
		ctx, cancel = context.WithCancel(context.Background())
		done        = make(chan error)
	)
	//
	go func() {
		done <- watchFiles(ctx, []string{filename}, func(name string) {
			select {
			case changed <- name:
			default:
			}
		})
	}()
	// Keep writing until the watcher notices.
	timeout := time.After(5 * time.Second)
	ticker := time.NewTicker(50 * time.Millisecond)
	//
	defer ticker.Stop()
	//
	for name := ""; name == ""; {
		select {
		case name = <-changed:
			assert.Equal(t, filename, name)
		case <-ticker.C:
			writeFile(t, filename, "(bounds 2)\n")
		case <-timeout:
			cancel()
			t.Fatal("no change observed")
		}
	}
	// Cancelling stops the watch
	cancel()
	assert.NoError(t, <-done)
}

func check(t *testing.T, filenames ...string) (string, bool) {
	t.Helper()
	//
	var buf bytes.Buffer
	//
	ok := checkFiles(context.Background(), &buf, filenames, query.DefaultConfig(), false)
	//
	return buf.String(), ok
}

func writeScript(t *testing.T, name string, contents string) string {
	t.Helper()
	//
	filename := filepath.Join(t.TempDir(), name)
	writeFile(t, filename, contents)
	//
	return filename
}

func writeFile(t *testing.T, filename string, contents string) {
	t.Helper()
	//
	if err := os.WriteFile(filename, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
}
