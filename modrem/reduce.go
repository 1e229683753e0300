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

import "github.com/ajroetker/vecalign/ir"

// ReduceModulo computes ((e mod n) + n) mod n and reports true, but only
// when e's summary proves this value is the same for every valuation —
// i.e. when the summary's period is a multiple of n (or e is an exact
// constant). Otherwise it reports false: nothing is claimed.
func ReduceModulo(e ir.Expr, n int64, ctx *Context) (int64, bool) {
	return Summarize(e, ctx).ModuloN(n)
}
