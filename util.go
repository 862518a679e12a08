// Copyright 2026 肖其顿 (XIAO QI DUN)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package jwwdecode

import (
	"strconv"
	"strings"
)

// splitPipe splits a "^@BM" payload on the literal '|' separator.
func splitPipe(s string) []string {
	return strings.Split(s, "|")
}

// parseFloatDefault parses a decimal float, defaulting to 0 when the
// field is empty or malformed.
func parseFloatDefault(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
