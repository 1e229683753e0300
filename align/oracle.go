// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package align is the load alignment rewriter: it walks a statement's
// IR and replaces vector loads that are narrow, oversized, strided, or
// statically unaligned with a composition of aligned loads and lane
// shuffles, using the modrem package to reason about alignment and the
// target package to learn the active target's required alignment.
package align

import (
	"github.com/ajroetker/vecalign/ir"
	"github.com/ajroetker/vecalign/modrem"
	"github.com/ajroetker/vecalign/target"
)

// lanesOff consults the oracle for ramp against hostAlignmentBytes and
// the policy's current required alignment for an element of elemBytes
// width. It returns (off, true) when the ramp's base is provably
// congruent to off modulo the natural lane count N; (0, false) means
// unknown. The dense unit-stride case then leaves the load untouched;
// the stride-2 case treats it like a non-zero offset.
//
// The conservative rule guards both directions of the check: an
// hostAlignmentBytes that isn't a multiple of the required alignment
// can never licence a claim of alignment, no matter what the context
// knows about the base expression.
func lanesOff(p *target.Policy, ramp *ir.Ramp, hostAlignmentBytes, elemBytes int, ctx *modrem.Context) (int64, bool) {
	if hostAlignmentBytes <= 0 || hostAlignmentBytes%p.RequiredAlignment != 0 {
		return 0, false
	}
	n := int64(p.NaturalVectorLanes(elemBytes))
	return modrem.ReduceModulo(ramp.Base, n, ctx)
}
