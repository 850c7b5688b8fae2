// Copyright 2020-2023 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sddl

import (
	"fmt"

	"github.com/kralicky/sddl/sddlast"
	"github.com/kralicky/sddl/sddlexpr"
)

// identResolver turns a bare identifier atom into an evaluable expression,
// typically a sddlexpr.Ref bound to a collector's in-progress table. It is
// the one seam between the concrete syntax tree (sddlast) and the
// evaluable expression tree (sddlexpr).
type identResolver func(name string, pos sddlast.Position) (sddlexpr.Expr, error)

// buildExpr walks a parsed expression tree and produces its evaluable
// counterpart, resolving every IdentExpr leaf through resolve.
func buildExpr(n sddlast.ExprNode, resolve identResolver) (sddlexpr.Expr, error) {
	switch e := n.(type) {
	case *sddlast.LiteralExpr:
		return sddlexpr.NewLeaf(e.Value), nil
	case *sddlast.IdentExpr:
		return resolve(e.Name, e.Pos)
	case *sddlast.UnaryExpr:
		operand, err := buildExpr(e.Operand, resolve)
		if err != nil {
			return nil, err
		}
		return sddlexpr.NewNot(operand), nil
	case *sddlast.BinaryExpr:
		return buildBinary(e, resolve)
	default:
		return nil, fmt.Errorf("%s: unsupported expression node %T", n.Position(), n)
	}
}

func buildBinary(e *sddlast.BinaryExpr, resolve identResolver) (sddlexpr.Expr, error) {
	left, err := buildExpr(e.Left, resolve)
	if err != nil {
		return nil, err
	}
	right, err := buildExpr(e.Right, resolve)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case sddlast.OpAdd:
		return sddlexpr.NewArithmetic(sddlexpr.Add, left, right), nil
	case sddlast.OpSub:
		return sddlexpr.NewArithmetic(sddlexpr.Sub, left, right), nil
	case sddlast.OpMul:
		return sddlexpr.NewArithmetic(sddlexpr.Mul, left, right), nil
	case sddlast.OpDiv:
		return sddlexpr.NewArithmetic(sddlexpr.Div, left, right), nil
	case sddlast.OpMod:
		return sddlexpr.NewArithmetic(sddlexpr.Mod, left, right), nil
	case sddlast.OpPow:
		return sddlexpr.NewArithmetic(sddlexpr.Pow, left, right), nil
	case sddlast.OpAnd:
		return sddlexpr.NewLogical(sddlexpr.And, left, right), nil
	case sddlast.OpOr:
		return sddlexpr.NewLogical(sddlexpr.Or, left, right), nil
	case sddlast.OpEq:
		return sddlexpr.NewEquality(false, left, right), nil
	case sddlast.OpNe:
		return sddlexpr.NewEquality(true, left, right), nil
	case sddlast.OpLt:
		return sddlexpr.NewComparison(sddlexpr.Lt, left, right), nil
	case sddlast.OpLe:
		return sddlexpr.NewComparison(sddlexpr.Le, left, right), nil
	case sddlast.OpGt:
		return sddlexpr.NewComparison(sddlexpr.Gt, left, right), nil
	case sddlast.OpGe:
		return sddlexpr.NewComparison(sddlexpr.Ge, left, right), nil
	case sddlast.OpConcat:
		return sddlexpr.NewConcat(left, right), nil
	default:
		return nil, fmt.Errorf("%s: unknown operator %q", e.Pos, e.Op)
	}
}
