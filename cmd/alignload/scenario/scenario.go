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

// Package scenario packages a handful of hand-built IR fragments, each
// exercising one case of the load alignment rewriter, for the alignload
// command's demo subcommand.
package scenario

import (
	"github.com/ajroetker/vecalign/align"
	"github.com/ajroetker/vecalign/ir"
	"github.com/ajroetker/vecalign/target"
)

// Scenario names and builds one rewriter demonstration.
type Scenario struct {
	Name  string
	build func() ir.Stmt
	desc  target.Description
}

// Run builds the scenario's statement and rewrites it, returning both
// the input and the output (or an error, for the scenarios that exist
// to demonstrate the internal invariant failure). opts is forwarded to
// align.Rewrite unchanged, e.g. to install a trace sink.
func (s Scenario) Run(opts ...align.Option) (before, after ir.Stmt, err error) {
	before = s.build()
	after, err = align.Rewrite(before, s.desc, opts...)
	return before, after, err
}

type fixedDescription struct {
	vectorBytes int
	features    map[target.Feature]bool
}

func (f fixedDescription) NaturalVectorSize(elemBytes int) int { return f.vectorBytes * elemBytes }
func (f fixedDescription) HasFeature(feat target.Feature) bool { return f.features[feat] }

var narrowVec16 = fixedDescription{vectorBytes: 16}

var int8Elem = ir.Type{ElemName: "int8", ElemBytes: 1, Lanes: 1}

func int8Vec(lanes int) ir.Type { return int8Elem.WithLanes(lanes) }

var registry = []Scenario{
	{
		Name: "narrow",
		desc: narrowVec16,
		build: func() ir.Stmt {
			load := ir.NewLoad(int8Vec(8), "buf", ir.NewRamp(ir.NewInt(0), ir.NewInt(1), 8), nil, nil)
			return &ir.Evaluate{Value: load}
		},
	},
	{
		Name: "misaligned-dense",
		desc: narrowVec16,
		build: func() ir.Stmt {
			x := ir.NewVar("x")
			base := ir.NewAdd(x, ir.NewInt(3))
			load := ir.NewLoad(int8Vec(16), "buf", ir.NewRamp(base, ir.NewInt(1), 16), nil, nil)
			// Binding x to 16*k proves x ≡ 0 (mod 16) to the alignment
			// context before the load is visited.
			return ir.NewLetStmt("x", ir.NewMul(ir.NewInt(16), ir.NewVar("k")), &ir.Evaluate{Value: load})
		},
	},
	{
		Name: "stride2-param",
		desc: narrowVec16,
		build: func() ir.Stmt {
			x := ir.NewVar("x")
			param := &ir.Param{Name: "p", HostAlignmentBytes: 16}
			load := ir.NewLoad(int8Vec(16), "buf", ir.NewRamp(x, ir.NewInt(2), 16), nil, param)
			return &ir.Evaluate{Value: load}
		},
	},
	{
		Name: "oversized",
		desc: narrowVec16,
		build: func() ir.Stmt {
			b := ir.NewVar("b")
			load := ir.NewLoad(int8Vec(48), "buf", ir.NewRamp(b, ir.NewInt(1), 48), nil, nil)
			return &ir.Evaluate{Value: load}
		},
	},
	{
		Name: "hvx128-device-loop",
		desc: fixedDescription{vectorBytes: 16, features: map[target.Feature]bool{target.FeatureHVX128: true}},
		build: func() ir.Stmt {
			b := ir.NewVar("b")
			load := ir.NewLoad(int8Vec(128), "buf", ir.NewRamp(ir.NewMul(ir.NewInt(128), b), ir.NewInt(1), 128), nil, nil)
			return ir.NewFor("i", ir.NewInt(0), ir.NewInt(1024), &ir.Evaluate{Value: load}, ir.DeviceHexagonHVX)
		},
	},
	{
		Name: "unknown-hvx-mode",
		desc: narrowVec16,
		build: func() ir.Stmt {
			return ir.NewFor("i", ir.NewInt(0), ir.NewInt(16), &ir.Block{}, ir.DeviceHexagonHVX)
		},
	},
}

// All returns every registered scenario, in registration order.
func All() []Scenario { return registry }

// Lookup finds a scenario by name.
func Lookup(name string) (Scenario, bool) {
	for _, s := range registry {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}
