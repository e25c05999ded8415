package rules

import (
	"github.com/erikvader/MiniZinc-linter/internal/ast"
	"github.com/erikvader/MiniZinc-linter/internal/lint"
)

// compactedIf flags a single-branch if-then-else where exactly one of
// then/else is the literal zero, suggesting `cond * nonzero` (or
// `not(cond) * nonzero`) instead. Grounded on
// original_source/src/linter/rules/compacted-if.cpp.
//
// Simplification: the original also requires then/else to share the same
// number type (both int or both float); this port has no general
// expression type checker to confirm that for arbitrary operands, so it
// only requires that exactly one side follow to a zero literal.
func compactedIf(env *lint.Env) {
	s := env.UserdefOnlyBuilder().InEverywhere().Under(ast.KindIfThenElse).Capture().Build()
	ms := s.SearchModel(env.Model())
	for ms.Next() {
		ite := ms.Capture(0).(*ast.IfThenElse)
		if !isCompactableIte(ite) {
			continue
		}
		r := lint.LintResult{
			RuleID:       20,
			Message:      "should be compacted",
			FileContents: lint.LocationToFileContents(ite.Location),
		}
		r.SetRewrite(compactedIfRewrite(ite))
		env.Report(r)
	}
}

func isCompactableIte(ite *ast.IfThenElse) bool {
	if ite.Else == nil {
		return false
	}
	if _, chained := ite.Else.(*ast.IfThenElse); chained {
		return false
	}
	return isZero(ite.Then) != isZero(ite.Else)
}

func isZero(e ast.Expr) bool {
	return ast.IsIntExpr(e, 0) || ast.IsFloatExpr(e, 0)
}

func compactedIfRewrite(ite *ast.IfThenElse) ast.Expr {
	elseZero := isZero(ite.Else)
	var nonzero, cond ast.Expr
	if elseZero {
		nonzero, cond = ite.Then, ite.If
	} else {
		nonzero, cond = ite.Else, ast.NewNot(ite.If)
	}
	return ast.NewBin(ast.BotMult, cond, nonzero)
}
