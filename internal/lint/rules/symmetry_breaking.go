package rules

import (
	"github.com/erikvader/MiniZinc-linter/internal/ast"
	"github.com/erikvader/MiniZinc-linter/internal/lint"
)

// symmetryBreakers lists the global constraints MiniZinc ships that are
// commonly used for breaking symmetry; the rule suggests wrapping each
// such call in `symmetry_breaking_constraint(...)`.
var symmetryBreakers = map[string]bool{
	"lex2": true, "lex_greater": true, "lex_greatereq": true,
	"lex_less": true, "lex_lesseq": true, "strict_lex2": true,
	"seq_precede_chain": true, "value_precede": true,
	"value_precede_chain": true, "increasing": true, "decreasing": true,
}

// symmetryBreaking flags top-level constraints whose outermost call is
// already one of MiniZinc's own symmetry breakers, suggesting the solver
// be told explicitly via symmetry_breaking_constraint so it is free to
// treat it as redundant rather than load-bearing. Grounded on
// original_source/src/linter/rules/symmetry-breaking.cpp.
func symmetryBreaking(env *lint.Env) {
	s := env.UserdefOnlyBuilder().InConstraint(true).Direct(ast.KindCall).Capture().Build()
	ms := s.SearchModel(env.Model())
	for ms.Next() {
		call := ms.Capture(0).(*ast.Call)
		if !symmetryBreakers[call.Name] {
			continue
		}
		r := lint.LintResult{
			RuleID:       6,
			Message:      "common symmetry breaker, consider wrapping in symmetry_breaking_constraint",
			FileContents: lint.LocationToFileContents(call.Location),
		}
		r.SetRewrite(&ast.Call{
			Location: ast.Synthetic(call.Location),
			Name:     "symmetry_breaking_constraint",
			Args:     []ast.Expr{call},
		})
		env.Report(r)
	}
}
