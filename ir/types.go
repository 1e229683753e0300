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

// Package ir defines the small slice of a tensor/array language's
// intermediate representation that the alignment rewriter inspects or
// produces: scalar/vector types, memory loads and stores, ramps,
// cross-lane shuffles, let bindings, and device-tagged loops. Everything
// else a real compiler's IR would carry (arithmetic beyond what the
// rewriter's arithmetic collaborators need, control flow, calls into
// user code) is intentionally absent; those nodes are out of scope for
// this pass and would pass through a host compiler's own IR unchanged.
package ir

import "fmt"

// Type describes the element type and lane count of an expression.
// Lanes == 1 means scalar; Lanes > 1 means vector.
type Type struct {
	// ElemName is the element type's display name, e.g. "int8", "float32".
	ElemName string
	// ElemBytes is the element's width in bytes.
	ElemBytes int
	// Lanes is the number of vector lanes, or 1 for a scalar.
	Lanes int
}

// Int32 is the scalar 32-bit integer type used for indices and loop
// variables throughout this package.
var Int32 = Type{ElemName: "int32", ElemBytes: 4, Lanes: 1}

// IsVector reports whether t has more than one lane.
func (t Type) IsVector() bool { return t.Lanes > 1 }

// Bytes returns the element width in bytes.
func (t Type) Bytes() int { return t.ElemBytes }

// WithLanes returns a copy of t with its lane count replaced.
func (t Type) WithLanes(lanes int) Type {
	t.Lanes = lanes
	return t
}

// Elem returns the scalar (single-lane) version of t.
func (t Type) Elem() Type { return t.WithLanes(1) }

// Equal reports whether two types describe the same element and lane count.
func (t Type) Equal(o Type) bool {
	return t.ElemName == o.ElemName && t.ElemBytes == o.ElemBytes && t.Lanes == o.Lanes
}

func (t Type) String() string {
	if t.Lanes <= 1 {
		return t.ElemName
	}
	return fmt.Sprintf("%sx%d", t.ElemName, t.Lanes)
}

// DeviceAPI tags a For loop with the execution model its body runs under.
type DeviceAPI int

const (
	// DeviceNone is the ordinary host execution model.
	DeviceNone DeviceAPI = iota
	// DeviceHexagonHVX tags a loop body that runs on a wide-vector Hexagon
	// DSP; its presence is what causes the Target Policy to switch the
	// required alignment (see the target package).
	DeviceHexagonHVX
)

func (d DeviceAPI) String() string {
	switch d {
	case DeviceHexagonHVX:
		return "hexagon_hvx"
	default:
		return "none"
	}
}

// Image marks a Load's buffer as external: its base address is supplied
// by the caller and is not known to satisfy any particular alignment.
// A nil *Image means the buffer is internal.
type Image struct {
	// Name identifies the image/buffer for diagnostics only.
	Name string
}

// Param describes a buffer passed in as a runtime parameter. Unlike an
// Image, a Param may carry a user-declared host alignment.
type Param struct {
	// Name identifies the parameter for diagnostics only.
	Name string
	// HostAlignmentBytes is the alignment (in bytes) the caller has
	// promised for the buffer's base address. Zero means unknown.
	HostAlignmentBytes int
}

// HostAlignment returns p's declared alignment, or 0 if p is nil.
func (p *Param) HostAlignment() int {
	if p == nil {
		return 0
	}
	return p.HostAlignmentBytes
}
