package rules

import (
	"github.com/erikvader/MiniZinc-linter/internal/ast"
	"github.com/erikvader/MiniZinc-linter/internal/lint"
)

// varInGen flags comprehension generators that range over a var set of
// int: the solver has to enumerate the set at search time instead of the
// compiler fixing it once, which is usually a modelling mistake rather
// than intentional. Grounded on
// original_source/src/linter/rules/var-in-gen.cpp.
func varInGen(env *lint.Env) {
	for _, comp := range env.Comprehensions() {
		for _, gen := range comp.Generators {
			if !ast.IsVarSet(gen.In) {
				continue
			}
			env.Report(lint.LintResult{
				RuleID:       7,
				Message:      "avoid variables in generator expressions",
				FileContents: lint.LocationToFileContents(gen.In.Loc()),
			})
		}
	}
}
