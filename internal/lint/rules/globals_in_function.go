package rules

import (
	"fmt"

	"github.com/erikvader/MiniZinc-linter/internal/ast"
	"github.com/erikvader/MiniZinc-linter/internal/lint"
)

// globalsInFunction flags user-defined functions that reach into a
// top-level decision variable instead of taking it as a parameter, which
// makes the function harder to reuse and to reason about in isolation.
// Grounded on original_source/src/linter/rules/globals-in-function.cpp.
func globalsInFunction(env *lint.Env) {
	toplevel := map[*ast.VarDeclItem]bool{}
	for _, d := range env.UserDefinedVariableDeclarations() {
		toplevel[d] = true
	}

	s := env.UserdefOnlyBuilder().Under(ast.KindIdent).Capture().Build()
	for _, fn := range env.UserDefinedFunctions() {
		if fn.Body == nil {
			continue
		}
		es := s.SearchExpr(fn.Body)
		for es.Next() {
			id := es.Capture(0).(*ast.Ident)
			decl, ok := id.Decl.(*ast.VarDeclItem)
			if !ok || decl == nil || !toplevel[decl] {
				continue
			}
			if decl.Ti == nil || !decl.Ti.Type.IsVar {
				continue
			}
			env.Report(lint.LintResult{
				RuleID:       5,
				Message:      fmt.Sprintf("avoid using global %q in a function, pass it as an argument instead", decl.Name),
				FileContents: lint.LocationToFileContents(id.Location),
			})
		}
	}
}
