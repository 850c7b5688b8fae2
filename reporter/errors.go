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

// Package reporter implements the error strategy of §4.9: every diagnostic
// the compiler raises carries a file and line, adapted directly from the
// teacher's reporter/errors.go (ast.SourcePosInfo generalized to
// sddlast.Position, the proto-specific AlreadyDefinedError generalized to
// the constant/message/typedef/rpc name and place conflicts of §7).
package reporter

import (
	"errors"
	"fmt"

	"github.com/kralicky/sddl/sddlast"
)

// ErrInvalidSource is a sentinel error that is returned by Compiler.Compile
// when one or more errors is reported but the configured Reporter always
// returns nil.
var ErrInvalidSource = errors.New("compile failed: invalid schema source")

// ErrorWithPos is an error about a schema source file that adds information
// about the location in the file that caused the error.
type ErrorWithPos interface {
	error
	// GetPosition returns the source position that caused the underlying error.
	GetPosition() sddlast.Position
	// Unwrap returns the underlying error.
	Unwrap() error
}

// Error creates a new ErrorWithPos from the given error and source position.
func Error(pos sddlast.Position, err error) ErrorWithPos {
	return errorWithSourcePos{pos: pos, underlying: err}
}

// Errorf creates a new ErrorWithPos whose underlying error is created using the
// given message format and arguments (via fmt.Errorf).
func Errorf(pos sddlast.Position, format string, args ...interface{}) ErrorWithPos {
	return errorWithSourcePos{pos: pos, underlying: fmt.Errorf(format, args...)}
}

type errorWithSourcePos struct {
	underlying error
	pos        sddlast.Position
}

func (e errorWithSourcePos) Error() string {
	sourcePos := e.GetPosition()
	return fmt.Sprintf("%s: %v", sourcePos, e.underlying)
}

func (e errorWithSourcePos) GetPosition() sddlast.Position {
	return e.pos
}

func (e errorWithSourcePos) Unwrap() error {
	return e.underlying
}

var _ ErrorWithPos = errorWithSourcePos{}

// Custom error types that contain additional information for each error kind
// named in §7.

// AlreadyDefinedError is a name conflict: redeclaration of a constant,
// message, typedef, or rpc, or a duplicated field/alias/call name within a
// single block.
type AlreadyDefinedError struct {
	PreviousDefinition sddlast.Position
}

func AlreadyDefined(previousDefinition sddlast.Position) AlreadyDefinedError {
	return AlreadyDefinedError{PreviousDefinition: previousDefinition}
}

func (e AlreadyDefinedError) Error() string {
	return fmt.Sprintf("already defined at %s", e.PreviousDefinition)
}

// PlaceConflictError is a duplicated place number within a message, typedef,
// or rpc block.
type PlaceConflictError struct {
	Place              int
	PreviousDefinition sddlast.Position
}

func PlaceConflict(place int, previousDefinition sddlast.Position) PlaceConflictError {
	return PlaceConflictError{Place: place, PreviousDefinition: previousDefinition}
}

func (e PlaceConflictError) Error() string {
	return fmt.Sprintf("place conflict: @%d already used at %s", e.Place, e.PreviousDefinition)
}

// CircularReferenceError is a dependency cycle among constants or among
// messages.
type CircularReferenceError struct{}

func CircularReference() CircularReferenceError { return CircularReferenceError{} }

func (e CircularReferenceError) Error() string {
	return "unable to evaluate expression due to circular reference"
}

// UnresolvedReferenceError is a constant or message name that is never
// defined, reported at the first referring site.
type UnresolvedReferenceError struct {
	Name string
	Noun string // "variable" for constants, "type" for messages
}

func (e UnresolvedReferenceError) Error() string {
	noun := e.Noun
	if noun == "" {
		noun = "variable"
	}
	// §4.2's unresolved variable message leaves the name bare ("variable X
	// could not be found"); §4.3's unresolved type message quotes it
	// ("type 'X' could not be found").
	if noun == "type" {
		return fmt.Sprintf("type '%s' could not be found", e.Name)
	}
	return fmt.Sprintf("%s %s could not be found", noun, e.Name)
}

// TypeMismatchError is a value or expression that cannot be typed, or whose
// type does not satisfy a declared kind.
type TypeMismatchError struct {
	Detail string
}

func (e TypeMismatchError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "type mismatch in the expression"
}
