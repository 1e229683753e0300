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

package simplify

import (
	"testing"

	"github.com/ajroetker/vecalign/ir"
)

func TestExprFoldsConstants(t *testing.T) {
	e := ir.NewAdd(ir.NewInt(3), ir.NewInt(4))
	got := Expr(e)
	if !ir.Equal(got, ir.NewInt(7)) {
		t.Fatalf("Expr(3+4) = %s, want 7", ir.Sprint(got))
	}
}

func TestExprCollapsesRepeatedOffset(t *testing.T) {
	x := ir.NewVar("x")
	e := ir.NewAdd(ir.NewSub(x, ir.NewInt(3)), ir.NewInt(16))
	got := Expr(e)
	want := ir.NewAdd(x, ir.NewInt(13))
	if !ir.Equal(got, want) {
		t.Fatalf("Expr((x-3)+16) = %s, want %s", ir.Sprint(got), ir.Sprint(want))
	}
}

func TestExprDropsZeroOffset(t *testing.T) {
	x := ir.NewVar("x")
	got := Expr(ir.NewAdd(x, ir.NewInt(0)))
	if !ir.Equal(got, x) {
		t.Fatalf("Expr(x+0) = %s, want x", ir.Sprint(got))
	}
}

func TestExprIdempotent(t *testing.T) {
	x := ir.NewVar("x")
	e := ir.NewAdd(ir.NewSub(x, ir.NewInt(3)), ir.NewInt(16))
	once := Expr(e)
	twice := Expr(once)
	if !ir.Equal(once, twice) {
		t.Fatalf("Expr not idempotent: %s vs %s", ir.Sprint(once), ir.Sprint(twice))
	}
}
