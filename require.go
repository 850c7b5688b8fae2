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

package sddl

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kralicky/sddl/sddlast"
)

// FileReader loads the contents of a schema file by path. The zero value
// of Compiler uses osReader, reading directly from the filesystem; tests
// (and embedders compiling from something other than a directory tree,
// e.g. an archive) provide their own.
type FileReader interface {
	ReadFile(path string) (string, error)
}

type osReader struct{}

func (osReader) ReadFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// canonicalPath normalizes a path for require-graph deduplication (§4.1):
// slashes are made platform independent and "." / ".." segments are
// collapsed, so two require items that name the same file textually
// differently are only ever loaded once.
func canonicalPath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// resolveRequirePath resolves a require item's literal path relative to
// the directory of the file that required it, matching how every other
// path-bearing directive in the grammar is resolved relative to its
// source file.
func resolveRequirePath(fromFile, reqPath string) string {
	return filepath.ToSlash(filepath.Join(filepath.Dir(fromFile), reqPath))
}

// resolveRequires depth-first loads and parses every file reachable from
// entryPaths, recursing into each file's require block before appending
// the file itself to the returned order - so a file's dependencies always
// precede it. Dedup is by canonicalPath: requiring the same file from two
// different places (or indirectly, via a cycle) loads it exactly once.
func resolveRequires(reader FileReader, entryPaths []string) ([]*sddlast.File, error) {
	visited := make(map[string]bool)
	var order []*sddlast.File

	var load func(path string) error
	load = func(path string) error {
		canon := canonicalPath(path)
		if visited[canon] {
			return nil
		}
		visited[canon] = true

		src, err := reader.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		f, err := sddlast.Parse(path, src)
		if err != nil {
			return err
		}
		for _, item := range f.Require {
			if err := load(resolveRequirePath(path, item.Path)); err != nil {
				return err
			}
		}
		order = append(order, f)
		return nil
	}

	for _, p := range entryPaths {
		if err := load(p); err != nil {
			return nil, err
		}
	}
	return order, nil
}
