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
	"github.com/kralicky/sddl/sddlast"
)

// report hands err to h, attaching fallbackPos unless err already carries
// its own position (e.g. it was produced by a nested reporter.Error call
// closer to the actual offending token).
func report(h *reporter.Handler, fallbackPos sddlast.Position, err error) error {
	if ep, ok := err.(reporter.ErrorWithPos); ok {
		return h.HandleError(ep)
	}
	return h.HandleError(reporter.Error(fallbackPos, err))
}
