package rules

import (
	"github.com/erikvader/MiniZinc-linter/internal/ast"
	"github.com/erikvader/MiniZinc-linter/internal/lint"
)

// unboundedVariable flags int/float decision variables (scalars or arrays)
// declared with no domain at all, which most solver backends either reject or
// silently default to a huge range for. Grounded on the isNoDomainVar
// predicate in original_source/src/linter/rules/no-domain-var-decl.cpp —
// that file's own do_run is an unfinished stdout-printing draft (it never
// calls into the result-reporting machinery every other rule uses), so
// only its detection predicate is ported here; the reporting follows the
// same pattern as every other cataloged rule.
func unboundedVariable(env *lint.Env) {
	for _, decl := range env.UserDefinedVariableDeclarations() {
		if !isUnboundedVar(env, decl) {
			continue
		}
		env.Report(lint.LintResult{
			RuleID:       13,
			Message:      "variable has no explicit domain",
			FileContents: lint.LocationToFileContents(decl.Location),
		})
	}

	// Restricted to constraint/var-decl/assign/solve/output bodies, not
	// function parameters: a parameter with no domain just inherits its
	// caller's, so flagging it here would be noise rather than a finding.
	s := env.UserdefOnlyBuilder().InConstraint(true).InFunctionBody(true).InVarDecl(true).
		InAssign(true).InSolve(true).InOutput(true).Under(ast.KindVarDeclExpr).Capture().Build()
	ms := s.SearchModel(env.Model())
	for ms.Next() {
		vde := ms.Capture(0).(*ast.VarDeclExpr)
		if !isUnboundedVar(env, vde.Decl) {
			continue
		}
		env.Report(lint.LintResult{
			RuleID:       13,
			Message:      "variable has no explicit domain",
			FileContents: lint.LocationToFileContents(vde.Decl.Location),
		})
	}
}

// isUnboundedVar reports whether decl is an int/float decision variable
// (scalar or array) with no domain, no RHS of its own, and no equal-constrained RHS
// supplied elsewhere in the model — any one of the latter two would give it
// a domain indirectly.
func isUnboundedVar(env *lint.Env, vd *ast.VarDeclItem) bool {
	if !isNoDomainVar(vd) {
		return false
	}
	if vd.Value != nil {
		return false
	}
	_, ok := env.GetEqualConstrainedRHS(vd)
	return !ok
}

func isNoDomainVar(vd *ast.VarDeclItem) bool {
	if vd == nil || vd.Ti == nil {
		return false
	}
	t := vd.Ti.Type
	return t.IsVar && t.Set == ast.StPlain &&
		(t.Base == ast.BtInt || t.Base == ast.BtFloat) &&
		t.Present && vd.Ti.Domain == nil
}
