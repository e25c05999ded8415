package lint

import "github.com/erikvader/MiniZinc-linter/internal/ast"

// IsNotReified and IsConjunctive both walk a capture's ancestor path
// looking for evidence the matched expression sits inside a plain
// top-level conjunction rather than, say, the condition of an
// if-then-else or the argument of some other predicate where its truth
// value is reified into a variable. They are intentionally two different,
// overlapping checks (ported from original_source/src/linter/utils.hpp's
// is_not_reified and is_conjunctive) and must stay that way:
//
//   - IsNotReified is the narrow, conservative check used where a false
//     negative is cheap but a false positive is not: every ancestor must
//     be a plain `/\` conjunction.
//   - IsConjunctive is the broader check used where `let` expressions and
//     `forall` over a comprehension should also count as "still at the
//     top level of the model", e.g. Env's equal-constrained indices and
//     non-func-hint (global-reified uses IsNotReified).
//
// Both expect path ordered innermost-first: path[0] is the direct parent
// of the matched node, and path[len(path)-1] is the root of the search
// (this is the reverse of ExprSearcher.CurrentPath/ModelSearcher.CurrentPath,
// which return the chain root-first; callers pass path through Reversed).

// Reversed returns path with its order flipped, turning a root-first
// ancestor chain (as returned by CurrentPath) into the innermost-first
// order IsNotReified and IsConjunctive expect.
func Reversed(path []ast.Expr) []ast.Expr {
	out := make([]ast.Expr, len(path))
	for i, e := range path {
		out[len(path)-1-i] = e
	}
	return out
}

// IsNotReified reports whether every ancestor in path (innermost-first) is
// a `/\` binary expression, i.e. the search is certainly not inside a
// reified context. A false result means "not sure", not "is reified".
func IsNotReified(path []ast.Expr) bool {
	for _, e := range path {
		bo, ok := e.(*ast.BinaryExpr)
		if !ok || bo.Op != ast.BotAnd {
			return false
		}
	}
	return true
}

// IsConjunctive reports whether path (innermost-first) consists only of
// `/\`, `let`, and `forall([...| ...])`, assuming only comprehension
// bodies ever appear on the path (i.e. the search that produced path used
// FilterComprehensionBody or an equivalent restriction).
func IsConjunctive(path []ast.Expr) bool {
	lastComp := false
	for _, e := range path {
		if lastComp {
			lastComp = false
			call, ok := e.(*ast.Call)
			if !ok || call.Name != "forall" {
				return false
			}
			continue
		}
		switch x := e.(type) {
		case *ast.BinaryExpr:
			if x.Op != ast.BotAnd {
				return false
			}
		case *ast.Let:
			// always acceptable
		case *ast.Comprehension:
			lastComp = true
		default:
			return false
		}
	}
	return !lastComp
}
