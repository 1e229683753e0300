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

import (
	"fmt"
	"strings"
)

// Sprint renders e as a debug s-expression. It exists for debug output
// and test failure messages, never for round-tripping.
func Sprint(e Expr) string {
	var sb strings.Builder
	writeExpr(&sb, e)
	return sb.String()
}

// SprintStmt renders s as a debug s-expression.
func SprintStmt(s Stmt) string {
	var sb strings.Builder
	writeStmt(&sb, s)
	return sb.String()
}

func writeExpr(sb *strings.Builder, e Expr) {
	switch n := e.(type) {
	case nil:
		sb.WriteString("<nil>")
	case *Var:
		sb.WriteString(n.Name)
	case *IntImm:
		fmt.Fprintf(sb, "%d", n.Value)
	case *BinExpr:
		sb.WriteByte('(')
		writeExpr(sb, n.A)
		fmt.Fprintf(sb, " %s ", n.Op)
		writeExpr(sb, n.B)
		sb.WriteByte(')')
	case *Ramp:
		fmt.Fprintf(sb, "ramp(")
		writeExpr(sb, n.Base)
		sb.WriteString(", ")
		writeExpr(sb, n.Stride)
		fmt.Fprintf(sb, ", %d)", n.Lanes)
	case *Load:
		fmt.Fprintf(sb, "load(%s, %s, ", n.Buffer, n.ResultType)
		writeExpr(sb, n.Index)
		if n.External() {
			sb.WriteString(", image")
		}
		if n.Param != nil {
			fmt.Fprintf(sb, ", param(host_align=%d)", n.Param.HostAlignmentBytes)
		}
		sb.WriteByte(')')
	case *Call:
		fmt.Fprintf(sb, "%s(", n.Kind)
		for i, a := range n.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeExpr(sb, a)
		}
		for _, idx := range n.Indices {
			fmt.Fprintf(sb, ", %d", idx)
		}
		sb.WriteByte(')')
	case *Let:
		fmt.Fprintf(sb, "(let %s = ", n.Name)
		writeExpr(sb, n.Value)
		sb.WriteString(" in ")
		writeExpr(sb, n.Body)
		sb.WriteByte(')')
	default:
		fmt.Fprintf(sb, "<unknown expr %T>", n)
	}
}

func writeStmt(sb *strings.Builder, s Stmt) {
	switch n := s.(type) {
	case nil:
		sb.WriteString("<nil>")
	case *LetStmt:
		fmt.Fprintf(sb, "let %s = ", n.Name)
		writeExpr(sb, n.Value)
		sb.WriteString(" in ")
		writeStmt(sb, n.Body)
	case *For:
		fmt.Fprintf(sb, "for %s in [", n.Var)
		writeExpr(sb, n.Min)
		sb.WriteString(", +")
		writeExpr(sb, n.Extent)
		fmt.Fprintf(sb, ") device=%s {", n.DeviceAPI)
		writeStmt(sb, n.Body)
		sb.WriteByte('}')
	case *Block:
		sb.WriteString("{")
		for i, st := range n.Stmts {
			if i > 0 {
				sb.WriteString("; ")
			}
			writeStmt(sb, st)
		}
		sb.WriteString("}")
	case *Store:
		fmt.Fprintf(sb, "store(%s, ", n.Buffer)
		writeExpr(sb, n.Index)
		sb.WriteString(", ")
		writeExpr(sb, n.Value)
		sb.WriteByte(')')
	case *Evaluate:
		writeExpr(sb, n.Value)
	default:
		fmt.Fprintf(sb, "<unknown stmt %T>", n)
	}
}
