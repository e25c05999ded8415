package rules

import (
	"github.com/erikvader/MiniZinc-linter/internal/ast"
	"github.com/erikvader/MiniZinc-linter/internal/lint"
)

// constantVariable flags decision variables whose only assigned or
// constraint-bound value turns out to be par (known at compile time),
// meaning they never needed to be declared `var` at all. Grounded on
// original_source/src/linter/rules/constant-variable.cpp.
func constantVariable(env *lint.Env) {
	for _, decl := range env.UserDefinedVariableDeclarations() {
		if decl.Ti == nil || !decl.Ti.Type.IsVar {
			continue
		}
		if decl.Ti.Type.IsArray() {
			constantVariableArray(env, decl)
			continue
		}
		rhs := decl.Value
		if rhs == nil {
			var ok bool
			rhs, ok = env.GetEqualConstrainedRHS(decl)
			if !ok {
				continue
			}
		}
		if ast.DependsOnInstance(rhs) {
			continue
		}
		env.Report(lint.LintResult{
			RuleID:       4,
			Message:      "is only ever assigned par values, doesn't need to be var",
			FileContents: lint.LocationToFileContents(decl.Location),
		})
	}
}

// constantVariableArray is EqualConstrained's array counterpart: an array
// that is never assigned directly but is fully pinned down, index by index,
// by a conjunctive constraint such as `forall(i in 1..n)(a[i] = rhs)` for
// an `array[1..n]` declaration (the generator's range must be written the
// same way as the declared index range) counts as constant too, as long as that rhs is itself par.
// Only one witness constraint is tracked per array (Env.ArrayEqualConstrained
// keeps the first binding it finds), so the sub-result lists that single
// witness rather than every access site the original's fuller analysis
// would collect.
func constantVariableArray(env *lint.Env, decl *ast.VarDeclItem) {
	if decl.Value != nil || !env.IsEveryIndexTouched(decl) {
		return
	}
	rhs, ok := env.ArrayEqualConstrained()[decl]
	if !ok || ast.DependsOnInstance(rhs) {
		return
	}
	r := lint.LintResult{
		RuleID:       4,
		Message:      "is only ever assigned par values, doesn't need to be var",
		FileContents: lint.LocationToFileContents(decl.Location),
	}
	r.Sub = append(r.Sub, lint.Sub{
		Message:      "constrained here",
		FileContents: lint.LocationToFileContents(rhs.Loc()),
	})
	env.Report(r)
}
