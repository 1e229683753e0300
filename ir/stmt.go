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

// Stmt is any node with no result value, only effect or control flow.
type Stmt interface {
	stmtNode()
}

// LetStmt binds Name to Value within Body, in statement position.
type LetStmt struct {
	Name  string
	Value Expr
	Body  Stmt
}

func (*LetStmt) stmtNode() {}

// For is a loop over [Min, Min+Extent) tagged with the device execution
// model its Body runs under.
type For struct {
	Var       string
	Min       Expr
	Extent    Expr
	Body      Stmt
	DeviceAPI DeviceAPI
}

func (*For) stmtNode() {}

// Block is a sequence of statements executed in order.
type Block struct {
	Stmts []Stmt
}

func (*Block) stmtNode() {}

// Store writes Value's elements to Index's offsets in Buffer.
type Store struct {
	Buffer string
	Index  Expr
	Value  Expr
}

func (*Store) stmtNode() {}

// Evaluate is a statement whose only purpose is to evaluate Value for
// its side effects (if any the host IR's Expr kinds carry); the
// rewriter recurses into it generically.
type Evaluate struct {
	Value Expr
}

func (*Evaluate) stmtNode() {}
