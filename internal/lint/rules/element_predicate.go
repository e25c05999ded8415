package rules

import (
	"github.com/erikvader/MiniZinc-linter/internal/ast"
	"github.com/erikvader/MiniZinc-linter/internal/lint"
)

// elementPredicate flags calls to the global `element(idx, array, val)`
// predicate, which reads much better as a plain array access. Grounded on
// original_source/src/linter/rules/element-predicate.cpp.
func elementPredicate(env *lint.Env) {
	s := env.UserdefOnlyBuilder().InEverywhere().Under(ast.KindCall).Capture().Build()
	ms := s.SearchModel(env.Model())
	for ms.Next() {
		call := ms.Capture(0).(*ast.Call)
		if call.Name != "element" || len(call.Args) != 3 {
			continue
		}
		r := lint.LintResult{
			RuleID:       15,
			Message:      "hard to read array access, prefer array[index] notation",
			FileContents: lint.LocationToFileContents(call.Location),
		}
		r.SetRewrite(ast.NewBin(ast.BotEq, &ast.ArrayAccess{
			Location: call.Location,
			Array:    call.Args[1],
			Index:    []ast.Expr{call.Args[0]},
		}, call.Args[2]))
		env.Report(r)
	}
}
