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
package termio

import (
	"testing"

	"github.com/consensys/go-bounds/pkg/util/assert"
)

func Test_Escape_01(t *testing.T) {
	assert.Equal(t, "\033[0m", ResetAnsiEscape().Build())
	assert.Equal(t, "\033[1m", BoldAnsiEscape().Build())
	assert.Equal(t, "\033[1;31m", BoldAnsiEscape().FgColour(TERM_RED).Build())
}

func Test_Escape_02(t *testing.T) {
	bold := BoldAnsiEscape()
	red := bold.FgColour(TERM_RED)
	// Extending an escape leaves the original alone
	assert.Equal(t, "\033[1m", bold.Build())
	assert.Equal(t, "\033[1;31m_\033[0m", red.Wrap("_", true))
	assert.Equal(t, "_", red.Wrap("_", false))
}
