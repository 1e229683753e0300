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

package modrem

// Context is a lexically-scoped stack of name -> Pair bindings. It
// models the alignment facts in scope at a given point in the IR: each
// Let or LetStmt the traversal driver enters pushes a frame, and pops
// it on the way back out, so a name's binding is visible only for the
// lifetime of its let.
//
// Context deliberately allows shadowing: pushing a name already bound
// hides (rather than replaces) the outer binding, which Pop then
// correctly restores.
type Context struct {
	frames []frame
}

type frame struct {
	name string
	pair Pair
}

// NewContext returns an empty scope.
func NewContext() *Context {
	return &Context{}
}

// Push introduces name bound to pair for the extent of the enclosing
// let. Callers must pair every Push with exactly one Pop, on every
// control-flow path — see WithBinding for a helper that guarantees this.
func (c *Context) Push(name string, pair Pair) {
	c.frames = append(c.frames, frame{name: name, pair: pair})
}

// Pop removes the most recently pushed binding for name. It panics if
// the top frame doesn't match name, which would indicate a push/pop
// mismatch in the traversal driver rather than a condition callers
// should handle.
func (c *Context) Pop(name string) {
	n := len(c.frames)
	if n == 0 || c.frames[n-1].name != name {
		panic("modrem: Pop(" + name + ") does not match the top of the context stack")
	}
	c.frames = c.frames[:n-1]
}

// Lookup returns the innermost binding for name, if any.
func (c *Context) Lookup(name string) (Pair, bool) {
	for i := len(c.frames) - 1; i >= 0; i-- {
		if c.frames[i].name == name {
			return c.frames[i].pair, true
		}
	}
	return Pair{}, false
}

// Depth returns the number of frames currently pushed. Tests use this
// to assert the scope is balanced after a full rewrite.
func (c *Context) Depth() int {
	return len(c.frames)
}

// WithBinding pushes name=pair, invokes fn, and pops name again even if
// fn panics. This is the mechanism the traversal driver uses to keep
// every Let/LetStmt's push matched with a pop on every exit path,
// including the internal-invariant panic the driver raises when the
// target policy rejects a device loop.
func (c *Context) WithBinding(name string, pair Pair, fn func()) {
	c.Push(name, pair)
	defer c.Pop(name)
	fn()
}
