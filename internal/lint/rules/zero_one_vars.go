package rules

import (
	"github.com/erikvader/MiniZinc-linter/internal/ast"
	"github.com/erikvader/MiniZinc-linter/internal/lint"
	"github.com/erikvader/MiniZinc-linter/internal/search"
)

// zeroOneVars flags two shapes that abuse a 0..1 integer domain to stand
// in for a bool: `sum(i in ..)(bool2int(arr[i] = 1))` over a whole 0/1
// array, and `(e1 = v) -> (e2 = v)` implications between two 0/1-valued
// expressions, both of which read better with a plain comparison.
// Grounded on original_source/src/linter/rules/zero-one-variables.cpp's
// case_sum/case_impl pair.
//
// Simplification: the original's is_zero_one_expr calls MiniZinc's
// compute_int_bounds, a general bounds-propagation pass this port has no
// equivalent of; here an expression counts as 0/1-valued only if it
// resolves (directly, or through a single array access) to a declaration
// whose own domain is exactly 0..1.
func zeroOneVars(env *lint.Env) {
	zeroOneCaseSum(env)
	zeroOneCaseImpl(env, ast.BotLq, 1)
	zeroOneCaseImpl(env, ast.BotGq, 0)
}

func zeroOneCaseSum(env *lint.Env) {
	s := env.UserdefOnlyBuilder().InEverywhere().
		Under(ast.KindCall).Capture().
		Direct(ast.KindComprehension).Capture().Filter(search.FilterComprehensionBody).
		Direct(ast.KindCall).Capture().
		DirectBinOp(ast.BotEq).Capture().
		Direct(ast.KindArrayAccess).Capture().Filter(search.FilterArrayAccessName).
		Direct(ast.KindIdent).Capture().
		Build()
	ms := s.SearchModel(env.Model())
	for ms.Next() {
		sum := ms.Capture(0).(*ast.Call)
		if sum.Name != "sum" {
			continue
		}
		bool2int := ms.Capture(2).(*ast.Call)
		if bool2int.Name != "bool2int" {
			continue
		}
		comp := ms.Capture(1).(*ast.Comprehension)
		eq := ms.Capture(3).(*ast.BinaryExpr)
		access := ms.Capture(4).(*ast.ArrayAccess)
		id := ms.Capture(5).(*ast.Ident)
		decl, ok := id.Decl.(*ast.VarDeclItem)
		if !ok || decl == nil {
			continue
		}
		rhs := ast.OtherSide(eq, access)
		if !ast.IsIntExpr(rhs, 1) {
			continue
		}
		if !ast.IsArrayAccessSimple(access) {
			continue
		}
		if !ast.ComprehensionSatisfiesArrayAccess(comp, access) {
			continue
		}
		if ast.ComprehensionContainsWhere(comp) {
			continue
		}
		if !ast.ComprehensionCoversWholeArray(comp, decl) {
			continue
		}
		if decl.Ti == nil || !isZeroOneDomain(decl.Ti) {
			continue
		}
		r := lint.LintResult{
			RuleID:        22,
			Message:       "abuses a 0..1 domain, prefer sum directly on the bool array",
			FileContents:  lint.LocationToFileContents(sum.Location),
			DependsOnInst: decl.Ti.Domain != nil && ast.DependsOnInstance(decl.Ti.Domain),
			Sub: []lint.Sub{{
				Message:      "has domain 0..1",
				FileContents: lint.LocationToFileContents(access.Location),
			}},
		}
		r.SetRewrite(&ast.Call{Location: ast.Synthetic(sum.Location), Name: "sum", Args: []ast.Expr{id}})
		env.Report(r)
	}
}

func zeroOneCaseImpl(env *lint.Env, rewriteOp ast.BinOp, val int64) {
	s := env.UserdefOnlyBuilder().InEverywhere().UnderBinOp(ast.BotImpl).Capture().Build()
	ms := s.SearchModel(env.Model())
	for ms.Next() {
		impl := ms.Capture(0).(*ast.BinaryExpr)
		lhsEq, ok := ast.FollowId(impl.X).(*ast.BinaryExpr)
		if !ok || lhsEq.Op != ast.BotEq {
			continue
		}
		rhsEq, ok := ast.FollowId(impl.Y).(*ast.BinaryExpr)
		if !ok || rhsEq.Op != ast.BotEq {
			continue
		}
		expr1, ok := matchEqLiteral(lhsEq, val)
		if !ok {
			continue
		}
		expr2, ok := matchEqLiteral(rhsEq, val)
		if !ok {
			continue
		}
		if !isZeroOneExpr(expr1) || !isZeroOneExpr(expr2) {
			continue
		}
		r := lint.LintResult{
			RuleID:        22,
			Message:       "abuses a 0..1 domain, prefer a direct comparison",
			FileContents:  lint.LocationToFileContents(impl.Location),
			DependsOnInst: ast.DependsOnInstance(expr1) || ast.DependsOnInstance(expr2),
			Sub: []lint.Sub{
				{Message: "has domain 0..1", FileContents: lint.LocationToFileContents(expr1.Loc())},
				{Message: "has domain 0..1", FileContents: lint.LocationToFileContents(expr2.Loc())},
			},
		}
		r.SetRewrite(ast.NewBin(rewriteOp, expr1, expr2))
		env.Report(r)
	}
}

func matchEqLiteral(bin *ast.BinaryExpr, val int64) (ast.Expr, bool) {
	if ast.IsIntExpr(bin.X, val) {
		return bin.Y, true
	}
	if ast.IsIntExpr(bin.Y, val) {
		return bin.X, true
	}
	return nil, false
}

func isZeroOneExpr(e ast.Expr) bool {
	switch x := ast.FollowId(e).(type) {
	case *ast.Ident:
		decl, ok := x.Decl.(*ast.VarDeclItem)
		return ok && decl != nil && decl.Ti != nil && isZeroOneDomain(decl.Ti)
	case *ast.ArrayAccess:
		id, ok := x.Array.(*ast.Ident)
		if !ok {
			return false
		}
		decl, ok := id.Decl.(*ast.VarDeclItem)
		return ok && decl != nil && decl.Ti != nil && isZeroOneDomain(decl.Ti)
	default:
		return false
	}
}

func isZeroOneDomain(ti *ast.TypeInst) bool {
	if ti.Domain == nil {
		return false
	}
	switch d := ast.FollowId(ti.Domain).(type) {
	case *ast.SetLit:
		if d.IsRange {
			return ast.IsIntExpr(d.Lo, 0) && ast.IsIntExpr(d.Hi, 1)
		}
		hasZero, hasOne := false, false
		for _, e := range d.Elements {
			if ast.IsIntExpr(e, 0) {
				hasZero = true
			}
			if ast.IsIntExpr(e, 1) {
				hasOne = true
			}
		}
		return hasZero && hasOne && len(d.Elements) == 2
	case *ast.BinaryExpr:
		return d.Op == ast.BotDotDot && ast.IsIntExpr(d.X, 0) && ast.IsIntExpr(d.Y, 1)
	default:
		return false
	}
}
