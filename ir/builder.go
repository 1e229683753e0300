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

package ir

// NewVar returns a reference to the integer-valued name.
func NewVar(name string) *Var { return &Var{Name: name} }

// NewInt returns an integer literal.
func NewInt(v int64) *IntImm { return &IntImm{Value: v} }

// NewAdd, NewSub and NewMul build the scalar arithmetic nodes the
// rewriter synthesizes when shifting ramp bases.
func NewAdd(a, b Expr) *BinExpr { return &BinExpr{Op: OpAdd, A: a, B: b} }
func NewSub(a, b Expr) *BinExpr { return &BinExpr{Op: OpSub, A: a, B: b} }
func NewMul(a, b Expr) *BinExpr { return &BinExpr{Op: OpMul, A: a, B: b} }

// NewRamp builds base + i*stride for i in [0, lanes).
func NewRamp(base, stride Expr, lanes int) *Ramp {
	return &Ramp{Base: base, Stride: stride, Lanes: lanes}
}

// NewLoad builds a load of resultType from buffer at index. image and
// param may both be nil (an ordinary internal buffer).
func NewLoad(resultType Type, buffer string, index Expr, image *Image, param *Param) *Load {
	return &Load{ResultType: resultType, Buffer: buffer, Index: index, Image: image, Param: param}
}

// NewConcat concatenates args lane-wise.
func NewConcat(args ...Expr) *Call {
	lanes := 0
	var elem Type
	for _, a := range args {
		lanes += a.Type().Lanes
		elem = a.Type()
	}
	return &Call{ResultType: elem.WithLanes(lanes), Kind: ConcatVectors, Args: args}
}

// NewShuffle selects indices lanes of vec.
func NewShuffle(vec Expr, indices ...int) *Call {
	return &Call{
		ResultType: vec.Type().WithLanes(len(indices)),
		Kind:       ShuffleVector,
		Args:       []Expr{vec},
		Indices:    indices,
	}
}

// NewLet binds name to value within body.
func NewLet(name string, value, body Expr) *Let {
	return &Let{Name: name, Value: value, Body: body}
}

// NewLetStmt binds name to value within a statement body.
func NewLetStmt(name string, value Expr, body Stmt) *LetStmt {
	return &LetStmt{Name: name, Value: value, Body: body}
}

// NewFor builds a loop over [min, min+extent) under the given device API.
func NewFor(v string, min, extent Expr, body Stmt, api DeviceAPI) *For {
	return &For{Var: v, Min: min, Extent: extent, Body: body, DeviceAPI: api}
}

// Equal reports whether two expressions denote the same syntax tree.
// Used by tests asserting idempotence and exact rewrite shapes; it is
// not a semantic/value equivalence check.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *Var:
		y, ok := b.(*Var)
		return ok && x.Name == y.Name
	case *IntImm:
		y, ok := b.(*IntImm)
		return ok && x.Value == y.Value
	case *BinExpr:
		y, ok := b.(*BinExpr)
		return ok && x.Op == y.Op && Equal(x.A, y.A) && Equal(x.B, y.B)
	case *Ramp:
		y, ok := b.(*Ramp)
		return ok && x.Lanes == y.Lanes && Equal(x.Base, y.Base) && Equal(x.Stride, y.Stride)
	case *Load:
		y, ok := b.(*Load)
		if !ok || x.Buffer != y.Buffer || !x.ResultType.Equal(y.ResultType) {
			return false
		}
		if (x.Image == nil) != (y.Image == nil) || (x.Param == nil) != (y.Param == nil) {
			return false
		}
		return Equal(x.Index, y.Index)
	case *Call:
		y, ok := b.(*Call)
		if !ok || x.Kind != y.Kind || len(x.Args) != len(y.Args) || len(x.Indices) != len(y.Indices) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		for i := range x.Indices {
			if x.Indices[i] != y.Indices[i] {
				return false
			}
		}
		return true
	case *Let:
		y, ok := b.(*Let)
		return ok && x.Name == y.Name && Equal(x.Value, y.Value) && Equal(x.Body, y.Body)
	default:
		return false
	}
}
