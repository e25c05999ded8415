package rules

import (
	"github.com/erikvader/MiniZinc-linter/internal/ast"
	"github.com/erikvader/MiniZinc-linter/internal/lint"
)

// varInIfWhere flags var-typed conditions inside comprehension
// where-clauses and if-then-else branches: both force the solver to
// reify a branch instead of the compiler deciding it once. Grounded on
// original_source/src/linter/rules/var-in-if-where.cpp's find_where/
// find_if pair. Unlike the original, which distinguishes a stdlib-
// inclusive get_builder() from userdef_only_builder(), this port always
// uses the latter: the bundled frontend never resolves a separate model
// for a stdlib include, so the two builders would behave identically
// anyway.
func varInIfWhere(env *lint.Env) {
	findWhere(env)
	findIf(env)
}

func findWhere(env *lint.Env) {
	for _, comp := range env.Comprehensions() {
		if comp.Where == nil || !ast.IsVarExpr(comp.Where) {
			continue
		}
		env.Report(lint.LintResult{
			RuleID:       26,
			Message:      "avoid var-expressions in where clauses",
			FileContents: lint.LocationToFileContents(comp.Where.Loc()),
		})
	}
}

func findIf(env *lint.Env) {
	s := env.UserdefOnlyBuilder().InEverywhere().Under(ast.KindIfThenElse).Capture().Build()
	ms := s.SearchModel(env.Model())
	for ms.Next() {
		ite := ms.Capture(0).(*ast.IfThenElse)
		for branch := ite; branch != nil; branch, _ = branch.Else.(*ast.IfThenElse) {
			if !ast.IsVarExpr(branch.If) {
				continue
			}
			env.Report(lint.LintResult{
				RuleID:       26,
				Message:      "avoid var-expressions in if statements",
				FileContents: lint.LocationToFileContents(branch.If.Loc()),
			})
		}
	}
}
