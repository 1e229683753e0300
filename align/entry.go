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
	"context"
	"fmt"

	"github.com/ajroetker/vecalign/ir"
	"github.com/ajroetker/vecalign/target"
	"golang.org/x/sync/errgroup"
)

// InternalError wraps the one condition this pass treats as an
// internal invariant violation rather than an unsupported shape: a For
// loop tagged for the wide-vector DSP whose target description
// recognizes neither supported lane-width feature. Rewrite never
// recovers any other panic; those propagate to the caller as a crash,
// the same way an out-of-bounds slice access would.
type InternalError struct {
	Err error
}

func (e InternalError) Error() string { return fmt.Sprintf("align: internal invariant violated: %v", e.Err) }
func (e InternalError) Unwrap() error { return e.Err }

// Option configures a Rewrite or RewriteAll call. The only option
// today is WithTrace; more may be added without breaking callers.
type Option func(*Rewriter)

// WithTrace installs a diagnostic trace sink. Traces are out-of-band
// (§9): they report what the rewriter decided at a Load, never
// influence it, and are never errors.
func WithTrace(fn func(format string, args ...any)) Option {
	return func(r *Rewriter) { r.trace = fn }
}

// Rewrite is the pass's single entry point: given a statement and a
// target description, it returns a semantically equivalent statement
// in which narrow, oversized, stride-2 and provably misaligned vector
// loads are rewritten into compositions of natural-width loads and
// shuffles. Loads on external images, dense loads whose alignment is
// unknown, and strides other than 1 or 2 are left unchanged.
func Rewrite(s ir.Stmt, desc target.Description, opts ...Option) (out ir.Stmt, err error) {
	r := newRewriter(desc)
	for _, opt := range opts {
		opt(r)
	}
	defer func() {
		if p := recover(); p != nil {
			ie, ok := p.(internalErr)
			if !ok {
				panic(p)
			}
			err = InternalError{Err: ie.err}
		}
	}()

	out = r.rewriteStmt(s)
	if r.ctx.Depth() != 0 {
		panic(fmt.Sprintf("align: alignment context not balanced after rewrite, depth=%d", r.ctx.Depth()))
	}
	return out, nil
}

// RewriteAll rewrites several independent statement roots concurrently,
// each under its own Rewriter instance. The pass itself performs no
// intra-traversal parallelism (§5); this is purely a convenience for
// callers who have many independent roots and want them rewritten
// concurrently against the same target description.
func RewriteAll(ctx context.Context, stmts []ir.Stmt, desc target.Description, opts ...Option) ([]ir.Stmt, error) {
	out := make([]ir.Stmt, len(stmts))
	g, _ := errgroup.WithContext(ctx)
	for i, s := range stmts {
		i, s := i, s
		g.Go(func() error {
			rewritten, err := Rewrite(s, desc, opts...)
			if err != nil {
				return fmt.Errorf("align: rewriting root %d: %w", i, err)
			}
			out[i] = rewritten
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
