package rules

import (
	"github.com/erikvader/MiniZinc-linter/internal/ast"
	"github.com/erikvader/MiniZinc-linter/internal/lint"
)

// oneBasedArrays flags array index sets that don't start at 1, MiniZinc's
// usual convention. Grounded on
// original_source/src/linter/rules/one-based-arrays.cpp.
func oneBasedArrays(env *lint.Env) {
	for _, decl := range env.UserDefinedVariableDeclarations() {
		if decl.Ti == nil || !decl.Ti.Type.IsArray() {
			continue
		}
		for _, r := range decl.Ti.Ranges {
			if startsAtOne(r) {
				continue
			}
			env.Report(lint.LintResult{
				RuleID:       19,
				Message:      "better to start array index sets at 1",
				FileContents: lint.LocationToFileContents(r.Loc()),
			})
		}
	}
}

func startsAtOne(rangeExpr ast.Expr) bool {
	switch d := ast.FollowId(rangeExpr).(type) {
	case *ast.SetLit:
		if d.IsRange {
			return ast.IsIntExpr(d.Lo, 1)
		}
		for _, e := range d.Elements {
			if ast.IsIntExpr(e, 1) {
				return true
			}
		}
		return false
	case *ast.BinaryExpr:
		return d.Op == ast.BotDotDot && ast.IsIntExpr(d.X, 1)
	default:
		return false
	}
}
