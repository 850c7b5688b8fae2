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
	"github.com/kralicky/sddl/reporter"
	"github.com/kralicky/sddl/target"
)

// Compiler runs the whole SDDL pipeline in one batch (§5): resolve
// requires, enter and collect constants, enter and collect messages,
// enter and collect typedefs and rpcs, then optionally emit. It holds no
// state between calls to Compile; every call is a fresh, self-contained
// compilation, matching the "single run, abort on first error" model of
// §7.
type Compiler struct {
	// Reader loads file contents by path. A nil Reader reads directly from
	// the local filesystem.
	Reader FileReader
	// Reporter is invoked for every diagnostic. A nil Reporter uses the
	// default policy: the first error reported aborts the compile.
	Reporter reporter.Reporter
}

// Compile resolves every file reachable (via require) from paths, and
// collects constants, messages, typedefs, and rpcs across the whole set.
// It returns as soon as any single error is reported, returning that error
// (or whatever a configured Reporter returned in its place) and a nil
// Result. If a configured Reporter suppressed every error it was given,
// Compile returns reporter.ErrInvalidSource instead.
func (c *Compiler) Compile(paths ...string) (*Result, error) {
	reader := c.Reader
	if reader == nil {
		reader = osReader{}
	}
	h := reporter.NewHandler(c.Reporter)

	files, err := resolveRequires(reader, paths)
	if err != nil {
		return nil, err
	}

	constants := newConstantCollector(h)
	for _, f := range files {
		if err := constants.enterFile(f); err != nil {
			return nil, err
		}
	}
	if err := constants.collect(); err != nil {
		return nil, err
	}

	messages := newMessageCollector(h)
	for _, f := range files {
		if err := messages.enterFile(f, constants.constantsFor(f.Name)); err != nil {
			return nil, err
		}
	}
	if err := messages.collect(); err != nil {
		return nil, err
	}

	typedefs := newTypedefCollector(h)
	for _, f := range files {
		if err := typedefs.enterFile(f); err != nil {
			return nil, err
		}
	}

	rpcs := newRPCCollector(h)
	for _, f := range files {
		if err := rpcs.enterFile(f); err != nil {
			return nil, err
		}
	}

	// A configured Reporter may have suppressed every error it saw (by
	// returning nil), letting each stage above run to completion over
	// incomplete state instead of aborting. Reported catches that case so
	// Compile never reports success when something was actually wrong.
	if h.Reported() {
		return nil, reporter.ErrInvalidSource
	}

	return &Result{
		Constants: constants.public,
		Messages:  messages.public,
		Typedefs:  typedefs.public,
		RPCs:      rpcs.public,
		Files:     files,
	}, nil
}

// Emit drives target through the emission sequence of §4.5 over a
// previously compiled Result, writing to sink.
func (c *Compiler) Emit(t target.Target, sink target.Sink, res *Result) error {
	return emit(t, sink, res)
}
