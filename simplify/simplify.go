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

// Package simplify constant-folds and canonicalizes the scalar integer
// expressions the alignment rewriter synthesizes (shifted ramp bases
// like base - lanes_off, base_low + N, base + i). It is a small,
// self-contained peephole simplifier, not a general-purpose one; a host
// compiler would supply its own and the rewriter would call that
// instead.
package simplify

import "github.com/ajroetker/vecalign/ir"

// Expr constant-folds and canonicalizes e. It is idempotent:
// Expr(Expr(e)) is structurally identical to Expr(e).
func Expr(e ir.Expr) ir.Expr {
	switch n := e.(type) {
	case *ir.BinExpr:
		a := Expr(n.A)
		b := Expr(n.B)
		return foldBin(n.Op, a, b)
	default:
		return e
	}
}

func foldBin(op ir.BinOp, a, b ir.Expr) ir.Expr {
	ai, aIsConst := a.(*ir.IntImm)
	bi, bIsConst := b.(*ir.IntImm)

	if aIsConst && bIsConst {
		switch op {
		case ir.OpAdd:
			return ir.NewInt(ai.Value + bi.Value)
		case ir.OpSub:
			return ir.NewInt(ai.Value - bi.Value)
		case ir.OpMul:
			return ir.NewInt(ai.Value * bi.Value)
		}
	}

	switch op {
	case ir.OpAdd:
		if isZero(a) {
			return b
		}
		if isZero(b) {
			return a
		}
		// Fold (x + c1) + c2 => x + (c1+c2), and symmetric shapes, so
		// repeated shifts of a ramp base collapse to one offset.
		if inner, c1, ok := asAddConst(a); ok && bIsConst {
			return foldBin(ir.OpAdd, inner, ir.NewInt(c1+bi.Value))
		}
		if inner, c1, ok := asAddConst(b); ok && aIsConst {
			return foldBin(ir.OpAdd, inner, ir.NewInt(c1+ai.Value))
		}
	case ir.OpSub:
		if isZero(b) {
			return a
		}
		if inner, c1, ok := asAddConst(a); ok && bIsConst {
			return foldBin(ir.OpAdd, inner, ir.NewInt(c1-bi.Value))
		}
	case ir.OpMul:
		if isZero(a) || isZero(b) {
			return ir.NewInt(0)
		}
		if isOne(a) {
			return b
		}
		if isOne(b) {
			return a
		}
	}

	return &ir.BinExpr{Op: op, A: a, B: b}
}

// asAddConst matches x +/- c, returning (x, c, true) with c negated for
// subtraction so the caller can always add it back.
func asAddConst(e ir.Expr) (ir.Expr, int64, bool) {
	bin, ok := e.(*ir.BinExpr)
	if !ok {
		return nil, 0, false
	}
	switch bin.Op {
	case ir.OpAdd:
		if c, ok := bin.B.(*ir.IntImm); ok {
			return bin.A, c.Value, true
		}
		if c, ok := bin.A.(*ir.IntImm); ok {
			return bin.B, c.Value, true
		}
	case ir.OpSub:
		if c, ok := bin.B.(*ir.IntImm); ok {
			return bin.A, -c.Value, true
		}
	}
	return nil, 0, false
}

func isZero(e ir.Expr) bool {
	c, ok := e.(*ir.IntImm)
	return ok && c.Value == 0
}

func isOne(e ir.Expr) bool {
	c, ok := e.(*ir.IntImm)
	return ok && c.Value == 1
}
