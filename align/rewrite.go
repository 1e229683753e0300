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
	"github.com/ajroetker/vecalign/ir"
	"github.com/ajroetker/vecalign/simplify"
)

// rewriteLoad is the case analysis of the load rewriter. Scalar and
// external loads are returned as they are. For every other load, l's
// index is recursively mutated here before the case analysis;
// non-matching shapes still carry the mutated index so sub-expression
// rewrites (e.g. a let-bound base) aren't lost even when the load
// itself passes through.
func (r *Rewriter) rewriteLoad(l *ir.Load) ir.Expr {
	if !l.ResultType.IsVector() {
		return l
	}
	if l.External() {
		return l
	}

	idx := r.rewriteExpr(l.Index)
	ramp, ok := idx.(*ir.Ramp)
	if !ok {
		return rebuildLoad(l, idx)
	}

	stride, ok := constStride(ramp.Stride)
	if !ok {
		return rebuildLoad(l, ramp)
	}

	elem := l.ResultType.Elem()
	v := l.ResultType.Lanes
	n := r.policy.NaturalVectorLanes(elem.Bytes())

	switch {
	case v < n:
		return r.rewriteNarrow(l, ramp, stride, n)
	case v > n:
		return r.rewriteOversized(l, ramp, n)
	case stride == 1:
		return r.rewriteDenseUnitStride(l, ramp, n)
	case stride == 2:
		return r.rewriteStride2(l, ramp, n)
	default:
		return rebuildLoad(l, ramp)
	}
}

// rewriteNarrow implements the V < N case: widen to a natural N-lane
// load, let the recursive rewrite reduce that to an aligned form, and
// take the V-lane prefix we actually need.
func (r *Rewriter) rewriteNarrow(l *ir.Load, ramp *ir.Ramp, stride int64, n int) ir.Expr {
	if stride > 2 {
		return rebuildLoad(l, ramp)
	}
	widened := ir.NewLoad(l.ResultType.WithLanes(n), l.Buffer, ir.NewRamp(ramp.Base, ramp.Stride, n), l.Image, l.Param)
	rewritten := r.rewriteLoad(widened)
	return ir.NewShuffle(rewritten, indexRange(l.ResultType.Lanes)...)
}

// rewriteOversized implements the V > N case: slice into ceil(V/N)
// pieces of at most N lanes and let the generic recursion into the
// synthesized concat_vectors apply the dense/narrow cases to each
// piece independently.
func (r *Rewriter) rewriteOversized(l *ir.Load, ramp *ir.Ramp, n int) ir.Expr {
	v := l.ResultType.Lanes
	var slices []ir.Expr
	for i := 0; i < v; i += n {
		w := n
		if v-i < w {
			w = v - i
		}
		base := simplify.Expr(ir.NewAdd(ramp.Base, ir.NewInt(int64(i))))
		sliceIndex := ir.NewRamp(base, ramp.Stride, w)
		slices = append(slices, ir.NewLoad(l.ResultType.WithLanes(w), l.Buffer, sliceIndex, l.Image, l.Param))
	}
	return r.rewriteExpr(ir.NewConcat(slices...))
}

// rewriteDenseUnitStride implements the s==1, V==N case: the only case
// that ever proves an existing load already aligned, or needs to split
// it into two aligned loads joined by a single concat-and-shuffle.
func (r *Rewriter) rewriteDenseUnitStride(l *ir.Load, ramp *ir.Ramp, n int) ir.Expr {
	elem := l.ResultType.Elem()
	hostAlign := r.policy.RequiredAlignment
	if l.Param != nil {
		hostAlign = l.Param.HostAlignment()
	}

	off, ok := lanesOff(r.policy, ramp, hostAlign, elem.Bytes(), r.ctx)
	if !ok {
		r.trace("dense load on %s: alignment unknown, leaving unchanged", l.Buffer)
		return rebuildLoad(l, ramp)
	}
	if off == 0 {
		r.trace("dense load on %s: already aligned", l.Buffer)
		return rebuildLoad(l, ramp)
	}
	r.trace("dense load on %s: misaligned by %d lanes, splitting", l.Buffer, off)

	baseLow := simplify.Expr(ir.NewSub(ramp.Base, ir.NewInt(off)))
	rampLow := ir.NewRamp(baseLow, ir.NewInt(1), n)
	rampHigh := ir.NewRamp(simplify.Expr(ir.NewAdd(baseLow, ir.NewInt(int64(n)))), ir.NewInt(1), n)
	loadLow := ir.NewLoad(l.ResultType, l.Buffer, rampLow, l.Image, l.Param)
	loadHigh := ir.NewLoad(l.ResultType, l.Buffer, rampHigh, l.Image, l.Param)
	return concatAndShuffleRange(loadLow, loadHigh, int(off), n)
}

// rewriteStride2 implements the s==2, V==N case, including the
// buffer-end safety adjustment of §4.5.4: base_b is nudged left by one
// lane, with the shift compensated in the shuffle indices, whenever
// base_a isn't proven aligned and the buffer might end right after it.
func (r *Rewriter) rewriteStride2(l *ir.Load, ramp *ir.Ramp, n int) ir.Expr {
	elem := l.ResultType.Elem()
	baseA := ramp.Base
	baseB := simplify.Expr(ir.NewAdd(ramp.Base, ir.NewInt(int64(n))))

	bShift := 0
	if l.Param != nil {
		off, ok := lanesOff(r.policy, ramp, l.Param.HostAlignment(), elem.Bytes(), r.ctx)
		if !ok || off != 0 {
			r.trace("stride-2 load on %s: base_a not proven aligned, shifting base_b", l.Buffer)
			baseB = simplify.Expr(ir.NewSub(baseB, ir.NewInt(1)))
			bShift = 1
		}
	}

	vecA := r.rewriteLoad(ir.NewLoad(l.ResultType, l.Buffer, ir.NewRamp(baseA, ir.NewInt(1), n), l.Image, l.Param))
	vecB := r.rewriteLoad(ir.NewLoad(l.ResultType, l.Buffer, ir.NewRamp(baseB, ir.NewInt(1), n), l.Image, l.Param))

	indices := make([]int, n)
	for i := 0; i < n/2; i++ {
		indices[i] = 2 * i
	}
	for i := n / 2; i < n; i++ {
		indices[i] = 2*i + bShift
	}
	return concatAndShuffleIndices(vecA, vecB, indices)
}

func rebuildLoad(l *ir.Load, idx ir.Expr) *ir.Load {
	return ir.NewLoad(l.ResultType, l.Buffer, idx, l.Image, l.Param)
}

// constStride reports the stride as a compile-time integer, after
// simplification, or false if it isn't statically known.
func constStride(e ir.Expr) (int64, bool) {
	imm, ok := simplify.Expr(e).(*ir.IntImm)
	if !ok {
		return 0, false
	}
	return imm.Value, true
}

func indexRange(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
