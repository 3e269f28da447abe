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
package assert

import (
	"fmt"
	"reflect"
	"testing"
)

// Equal errors if actual is not equal to expected.
func Equal(t *testing.T, expected, actual any, msg ...any) {
	t.Helper()
	//
	if reflect.DeepEqual(expected, actual) {
		return
	}
	//
	t.Errorf("expected: %v, actual: %v%s", expected, actual, message(msg))
	t.FailNow()
}

// True errors if condition is false.
func True(t *testing.T, condition bool, msg ...any) {
	t.Helper()
	//
	if !condition {
		t.Errorf("condition is false%s", message(msg))
		t.FailNow()
	}
}

// False errors if condition is true.
func False(t *testing.T, condition bool, msg ...any) {
	t.Helper()
	//
	if condition {
		t.Errorf("condition is true%s", message(msg))
		t.FailNow()
	}
}

// NoError errors if err is not nil.
func NoError(t *testing.T, err error, msg ...any) {
	t.Helper()
	//
	if err != nil {
		t.Errorf("unexpected error: %v%s", err, message(msg))
		t.FailNow()
	}
}

// Panics errors if the given function returns without panicking.
func Panics(t *testing.T, fn func(), msg ...any) {
	t.Helper()
	//
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic%s", message(msg))
			t.FailNow()
		}
	}()
	//
	fn()
}

func message(msg []any) string {
	if len(msg) == 0 {
		return ""
	} else if format, ok := msg[0].(string); ok {
		return " (" + fmt.Sprintf(format, msg[1:]...) + ")"
	}
	//
	return fmt.Sprintf(" %v", msg)
}
