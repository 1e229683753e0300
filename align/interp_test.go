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

package align

import (
	"testing"

	"github.com/ajroetker/vecalign/ir"
	"github.com/ajroetker/vecalign/modrem"
	"github.com/stretchr/testify/require"
)

// evalVec is a minimal interpreter over the subset of the IR this
// package rewrites. It exists only to empirically check semantic
// preservation: it evaluates an expression against a flat buffer and an
// environment of free-variable bindings, returning one int64 per lane.
// It understands exactly the node kinds the rewriter produces or
// consumes, nothing more.
func evalVec(e ir.Expr, buf []int64, env map[string]int64) []int64 {
	switch n := e.(type) {
	case *ir.Var:
		return []int64{env[n.Name]}
	case *ir.IntImm:
		return []int64{n.Value}
	case *ir.BinExpr:
		a := evalVec(n.A, buf, env)[0]
		b := evalVec(n.B, buf, env)[0]
		switch n.Op {
		case ir.OpAdd:
			return []int64{a + b}
		case ir.OpSub:
			return []int64{a - b}
		case ir.OpMul:
			return []int64{a * b}
		}
	case *ir.Ramp:
		base := evalVec(n.Base, buf, env)[0]
		stride := evalVec(n.Stride, buf, env)[0]
		out := make([]int64, n.Lanes)
		for i := range out {
			out[i] = base + int64(i)*stride
		}
		return out
	case *ir.Load:
		idx := evalVec(n.Index, buf, env)
		out := make([]int64, len(idx))
		for i, off := range idx {
			out[i] = buf[off]
		}
		return out
	case *ir.Call:
		switch n.Kind {
		case ir.ConcatVectors:
			var out []int64
			for _, a := range n.Args {
				out = append(out, evalVec(a, buf, env)...)
			}
			return out
		case ir.ShuffleVector:
			src := evalVec(n.Args[0], buf, env)
			out := make([]int64, len(n.Indices))
			for i, idx := range n.Indices {
				out[i] = src[idx]
			}
			return out
		}
	case *ir.Let:
		v := evalVec(n.Value, buf, env)[0]
		inner := make(map[string]int64, len(env)+1)
		for k, val := range env {
			inner[k] = val
		}
		inner[n.Name] = v
		return evalVec(n.Body, buf, inner)
	}
	panic("evalVec: unhandled node")
}

func iotaBuffer(n int) []int64 {
	buf := make([]int64, n)
	for i := range buf {
		buf[i] = int64(i)
	}
	return buf
}

// Semantic preservation for scenario 2: a misaligned-by-3 dense load
// rewritten to concat-and-shuffle reads the same lane values as the
// original ramp, for every consistent valuation of x.
func TestSemanticPreservationMisalignedDenseLoad(t *testing.T) {
	r := newTestRewriter()
	r.ctx.Push("x", modrem.Pair{Modulus: 16, Remainder: 0})
	defer r.ctx.Pop("x")

	xVar := ir.NewVar("x")
	original := ir.NewLoad(int8Type(16), "buf", ir.NewRamp(ir.NewAdd(xVar, ir.NewInt(3)), ir.NewInt(1), 16), nil, nil)
	rewritten := r.rewriteLoad(original)

	buf := iotaBuffer(64)
	for _, xVal := range []int64{0, 16, 32} {
		env := map[string]int64{"x": xVal}
		want := evalVec(original, buf, env)
		got := evalVec(rewritten, buf, env)
		require.Equal(t, want, got, "x=%d", xVal)
	}
}

// Semantic preservation for scenario 7: an oversized 48-lane load
// rewritten into three sliced loads still reads the same 48 values.
func TestSemanticPreservationOversizedLoad(t *testing.T) {
	r := newTestRewriter()
	bVar := ir.NewVar("b")
	original := ir.NewLoad(int8Type(48), "buf", ir.NewRamp(bVar, ir.NewInt(1), 48), nil, nil)
	rewritten := r.rewriteLoad(original)

	buf := iotaBuffer(128)
	env := map[string]int64{"b": 10}
	require.Equal(t, evalVec(original, buf, env), evalVec(rewritten, buf, env))
}

// Semantic preservation for the stride-2 case, including the
// buffer-end-shift subcase: the deinterleaved result matches the
// original strided reads exactly.
func TestSemanticPreservationStride2(t *testing.T) {
	r := newTestRewriter()
	xVar := ir.NewVar("x")
	param := &ir.Param{Name: "p", HostAlignmentBytes: 16}
	original := ir.NewLoad(int8Type(16), "buf", ir.NewRamp(xVar, ir.NewInt(2), 16), nil, param)
	rewritten := r.rewriteLoad(original)

	buf := iotaBuffer(64)
	env := map[string]int64{"x": 5}
	require.Equal(t, evalVec(original, buf, env), evalVec(rewritten, buf, env))
}
