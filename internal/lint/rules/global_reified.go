package rules

import (
	"github.com/erikvader/MiniZinc-linter/internal/ast"
	"github.com/erikvader/MiniZinc-linter/internal/lint"
)

// knownGlobalPredicates are global constraints commonly used in a
// reified (var bool) position, the shape global-reified warns is
// expensive because the solver must propagate the whole global just to
// produce one truth value.
var knownGlobalPredicates = map[string]bool{
	"all_different": true, "alldifferent": true, "all_equal": true,
	"among": true, "at_least": true, "at_most": true, "bin_packing": true,
	"circuit": true, "count": true, "cumulative": true, "diffn": true,
	"disjoint": true, "global_cardinality": true, "increasing": true,
	"decreasing": true, "inverse": true, "lex2": true, "lex_less": true,
	"lex_lesseq": true, "nvalue": true, "regular": true, "table": true,
}

// globalReified flags a known global constraint call appearing somewhere
// other than a purely conjunctive position, i.e. used as a reified
// boolean rather than posted directly, which is usually far more
// expensive to propagate. Grounded on
// original_source/src/linter/rules/global-constraint-reified.cpp.
//
// Simplification: the original consults the call's resolved function
// declaration (decl->ti()->type().isvarbool(), decl->fromStdLib()) to
// decide which calls qualify; this frontend never parses the standard
// library, so those calls are always unresolved (FuncDecl == nil) and
// this port falls back to a fixed name table of commonly reified globals
// instead.
func globalReified(env *lint.Env) {
	s := env.UserdefOnlyBuilder().InConstraint(true).Under(ast.KindCall).Capture().Build()
	for _, con := range env.Constraints() {
		es := s.SearchExpr(con.Expr)
		for es.Next() {
			call := es.Capture(0).(*ast.Call)
			if call.FuncDecl != nil || !knownGlobalPredicates[call.Name] {
				continue
			}
			if lint.IsNotReified(lint.Reversed(es.CurrentPath())) {
				continue
			}
			env.Report(lint.LintResult{
				RuleID:       17,
				Message:      "reified global constraint",
				FileContents: lint.LocationToFileContents(call.Location),
			})
		}
	}
}
