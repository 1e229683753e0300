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

// Package modrem implements the modular-arithmetic summarizer the
// alignment rewriter consults to decide whether an index expression is
// statically known to land on an aligned boundary. It is the rewriter's
// only collaborator for reasoning about the value of integer
// expressions; the rewriter itself never pattern-matches arithmetic.
package modrem

import "github.com/ajroetker/vecalign/ir"

// Pair is a modulus-remainder summary: the value of some integer
// expression is congruent to Remainder modulo Modulus for every
// valuation of its free variables consistent with the active Context.
//
// Modulus == 0 is a distinguished case meaning "the value is this exact
// compile-time constant, valid modulo any base" (constants don't need a
// periodicity, they're known outright). Otherwise Modulus >= 1 and
// 0 <= Remainder < Modulus.
type Pair struct {
	Modulus   int64
	Remainder int64
}

// NoInfo is the (1, 0) summary: no information about the expression's
// alignment is known.
var NoInfo = Pair{Modulus: 1, Remainder: 0}

// Exact returns the summary for a known compile-time-constant value.
func Exact(value int64) Pair {
	return Pair{Modulus: 0, Remainder: value}
}

// isExact reports whether p denotes an exactly-known constant.
func (p Pair) isExact() bool { return p.Modulus == 0 }

// ModuloN reduces p to (p.Remainder mod n), returning false if p's
// period isn't a multiple of n (so no claim about alignment to n can
// be made).
func (p Pair) ModuloN(n int64) (int64, bool) {
	if n <= 0 {
		return 0, false
	}
	if p.isExact() {
		return normMod(p.Remainder, n), true
	}
	if p.Modulus%n != 0 {
		return 0, false
	}
	return normMod(p.Remainder, n), true
}

func normMod(v, n int64) int64 {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Summarize computes the modulus-remainder summary of e under ctx. It
// understands ir.IntImm, ir.Var (looked up in ctx), and ir.BinExpr over
// OpAdd/OpSub/OpMul; any other node (or a product of two non-constant
// operands, whose period the summarizer can't express as a single
// modulus) summarizes to NoInfo. This mirrors a real compiler's
// symbolic modular-arithmetic pass, kept to exactly the operators the
// rewriter's synthesized bases can contain.
func Summarize(e ir.Expr, ctx *Context) Pair {
	switch n := e.(type) {
	case *ir.IntImm:
		return Exact(n.Value)
	case *ir.Var:
		if p, ok := ctx.Lookup(n.Name); ok {
			return p
		}
		return NoInfo
	case *ir.BinExpr:
		a := Summarize(n.A, ctx)
		b := Summarize(n.B, ctx)
		switch n.Op {
		case ir.OpAdd:
			return combineAdd(a, b)
		case ir.OpSub:
			return combineAdd(a, negate(b))
		case ir.OpMul:
			return combineMul(a, b)
		}
	}
	return NoInfo
}

func negate(p Pair) Pair {
	if p.isExact() {
		return Exact(-p.Remainder)
	}
	return Pair{Modulus: p.Modulus, Remainder: normMod(-p.Remainder, p.Modulus)}
}

func combineAdd(a, b Pair) Pair {
	if a.isExact() && b.isExact() {
		return Exact(a.Remainder + b.Remainder)
	}
	if a.isExact() {
		a, b = b, a
	}
	// a is periodic (or NoInfo, itself periodic with modulus 1);
	// b may be exact or periodic.
	if b.isExact() {
		return Pair{Modulus: a.Modulus, Remainder: normMod(a.Remainder+b.Remainder, a.Modulus)}
	}
	m := gcd(a.Modulus, b.Modulus)
	if m == 0 {
		return NoInfo
	}
	return Pair{Modulus: m, Remainder: normMod(a.Remainder+b.Remainder, m)}
}

func combineMul(a, b Pair) Pair {
	if a.isExact() && b.isExact() {
		return Exact(a.Remainder * b.Remainder)
	}
	// Scaling a periodic summary by a known constant scales both the
	// modulus and remainder; the product of two unknown periods isn't
	// generally a single modulus, so fall back to NoInfo.
	if a.isExact() {
		a, b = b, a
	}
	if b.isExact() {
		c := b.Remainder
		if c == 0 {
			return Exact(0)
		}
		m := a.Modulus * abs(c)
		return Pair{Modulus: m, Remainder: normMod(a.Remainder*c, m)}
	}
	return NoInfo
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
