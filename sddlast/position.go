// Copyright 2020-2023 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package sddlast implements the lexer, recursive-descent parser, and
// concrete syntax tree for the schema grammar of §6. Since no generated
// parser tables ship alongside this repository, the parser is hand-written
// in the spirit of the teacher's own lexer/parser split, rather than
// goyacc-generated: a Lexer producing positioned Tokens, consumed by a
// descent Parser that builds typed declaration nodes.
package sddlast

import (
	"fmt"
	"os"
	"path/filepath"
)

// Position identifies a source location by file and line, matching the
// granularity every diagnostic in this compiler carries (§4.8 and §7 only
// ever need file:line, never column).
type Position struct {
	File string
	Line int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// initialWD is captured once, at process start, so DisplayPath always
// renders relative to where the process was launched rather than wherever
// the current directory happens to be by the time an error is formatted.
var initialWD, _ = os.Getwd()

// DisplayPath renders a file path the way every diagnostic in this compiler
// shows it (§4.8): relative to the process's initial working directory when
// the path is absolute, with platform-native separators. A path that is
// already relative (the common case - schema paths are usually given
// relative to the working directory, or are synthetic names with no
// backing file, as in tests) is left alone but still separator-normalized.
func DisplayPath(path string) string {
	p := path
	if initialWD != "" && filepath.IsAbs(p) {
		if rel, err := filepath.Rel(initialWD, p); err == nil {
			p = rel
		}
	}
	return filepath.FromSlash(p)
}
