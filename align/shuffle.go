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
	"github.com/samber/lo"
)

// concatAndShuffleIndices emits shuffle_vector(concat_vectors(a, b), indices...).
// Every index must address a lane of the concatenation; this is checked
// here rather than left to the emitted IR's own validation, since a bad
// index at this point always means a bug in this package.
func concatAndShuffleIndices(a, b ir.Expr, indices []int) ir.Expr {
	total := a.Type().Lanes + b.Type().Lanes
	for _, idx := range indices {
		if idx < 0 || idx >= total {
			panic(fmt.Sprintf("align: shuffle index %d out of range [0, %d)", idx, total))
		}
	}
	return ir.NewShuffle(ir.NewConcat(a, b), indices...)
}

// concatAndShuffleRange is concatAndShuffleIndices with indices built as
// size contiguous lanes of the concatenation starting at lane start.
func concatAndShuffleRange(a, b ir.Expr, start, size int) ir.Expr {
	indices := lo.Map(lo.Range(size), func(i, _ int) int { return start + i })
	return concatAndShuffleIndices(a, b, indices)
}
