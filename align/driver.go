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
	"fmt"

	"github.com/ajroetker/vecalign/ir"
	"github.com/ajroetker/vecalign/modrem"
	"github.com/ajroetker/vecalign/target"
)

// Rewriter holds the state a single traversal threads through the IR:
// the current required-alignment policy and the lexical alignment
// context. Neither is safe to share across concurrently running
// traversals; callers that want parallelism construct one Rewriter per
// goroutine (see RewriteAll).
type Rewriter struct {
	policy *target.Policy
	ctx    *modrem.Context
	trace  func(format string, args ...any)
}

func newRewriter(desc target.Description) *Rewriter {
	return &Rewriter{
		policy: target.NewPolicy(desc),
		ctx:    modrem.NewContext(),
		trace:  func(string, ...any) {},
	}
}

// internalErr tags a panic raised for the one condition this pass
// considers an internal invariant violation (an unrecognized
// wide-vector device mode), so the top-level entry point can recover it
// specifically and translate it to a returned error without catching
// any other, genuinely unexpected, panic.
type internalErr struct{ err error }

// rewriteStmt is the generic post-order statement traversal. Let/For
// carry the pass's own specializations; everything else just recurses
// into its children.
func (r *Rewriter) rewriteStmt(s ir.Stmt) ir.Stmt {
	switch n := s.(type) {
	case nil:
		return nil
	case *ir.LetStmt:
		return r.rewriteLetStmt(n)
	case *ir.For:
		return r.rewriteFor(n)
	case *ir.Block:
		stmts := make([]ir.Stmt, len(n.Stmts))
		for i, st := range n.Stmts {
			stmts[i] = r.rewriteStmt(st)
		}
		return &ir.Block{Stmts: stmts}
	case *ir.Store:
		return &ir.Store{Buffer: n.Buffer, Index: r.rewriteExpr(n.Index), Value: r.rewriteExpr(n.Value)}
	case *ir.Evaluate:
		return &ir.Evaluate{Value: r.rewriteExpr(n.Value)}
	default:
		panic(fmt.Sprintf("align: unhandled statement kind %T", s))
	}
}

// rewriteExpr is the generic post-order expression traversal. Load
// carries the pass's case analysis (see rewrite.go); Let carries the
// same context-threading specialization as LetStmt; everything else
// just recurses into its children.
func (r *Rewriter) rewriteExpr(e ir.Expr) ir.Expr {
	switch n := e.(type) {
	case nil:
		return nil
	case *ir.Var, *ir.IntImm:
		return n
	case *ir.BinExpr:
		return &ir.BinExpr{Op: n.Op, A: r.rewriteExpr(n.A), B: r.rewriteExpr(n.B)}
	case *ir.Ramp:
		return ir.NewRamp(r.rewriteExpr(n.Base), r.rewriteExpr(n.Stride), n.Lanes)
	case *ir.Load:
		return r.rewriteLoad(n)
	case *ir.Call:
		args := make([]ir.Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = r.rewriteExpr(a)
		}
		return &ir.Call{ResultType: n.ResultType, Kind: n.Kind, Args: args, Indices: n.Indices}
	case *ir.Let:
		return r.rewriteLet(n)
	default:
		panic(fmt.Sprintf("align: unhandled expression kind %T", e))
	}
}

// rewriteLetStmt and rewriteLet share the same context-threading rule:
// a bound integer-typed value's alignment summary is pushed under its
// name for the extent of the body, and popped again on every exit path
// via Context.WithBinding, including when visiting the body panics.
func (r *Rewriter) rewriteLetStmt(n *ir.LetStmt) *ir.LetStmt {
	if !isIntegerScalar(n.Value.Type()) {
		return &ir.LetStmt{Name: n.Name, Value: r.rewriteExpr(n.Value), Body: r.rewriteStmt(n.Body)}
	}
	summary := modrem.Summarize(n.Value, r.ctx)
	var out *ir.LetStmt
	r.ctx.WithBinding(n.Name, summary, func() {
		out = &ir.LetStmt{Name: n.Name, Value: r.rewriteExpr(n.Value), Body: r.rewriteStmt(n.Body)}
	})
	return out
}

func (r *Rewriter) rewriteLet(n *ir.Let) *ir.Let {
	if !isIntegerScalar(n.Value.Type()) {
		return &ir.Let{Name: n.Name, Value: r.rewriteExpr(n.Value), Body: r.rewriteExpr(n.Body)}
	}
	summary := modrem.Summarize(n.Value, r.ctx)
	var out *ir.Let
	r.ctx.WithBinding(n.Name, summary, func() {
		out = &ir.Let{Name: n.Name, Value: r.rewriteExpr(n.Value), Body: r.rewriteExpr(n.Body)}
	})
	return out
}

// rewriteFor applies the target policy's scoped alignment override
// before visiting the loop body, and restores it on every exit path —
// including the internal-invariant panic raised here when
// EnterDeviceLoop reports an unrecognized device mode.
func (r *Rewriter) rewriteFor(n *ir.For) *ir.For {
	restore, err := r.policy.EnterDeviceLoop(n.DeviceAPI)
	defer restore()
	if err != nil {
		panic(internalErr{err})
	}

	min := r.rewriteExpr(n.Min)
	extent := r.rewriteExpr(n.Extent)
	body := r.rewriteStmt(n.Body)
	return &ir.For{Var: n.Var, Min: min, Extent: extent, Body: body, DeviceAPI: n.DeviceAPI}
}

func isIntegerScalar(t ir.Type) bool {
	return !t.IsVector() && t.Equal(ir.Int32)
}
