package rules

import (
	"github.com/erikvader/MiniZinc-linter/internal/ast"
	"github.com/erikvader/MiniZinc-linter/internal/lint"
)

// nonFuncHint flags decision variables that are declared without a
// value, are not bound by an equality constraint (directly, array-wise,
// or transitively through a user-defined predicate/function that itself
// functionally defines one of its parameters), and are not named in a
// search annotation: the solver has nothing telling it how to find this
// variable's value other than plain search, which a modeller usually
// wants to at least see flagged. Grounded on
// original_source/src/linter/rules/functionally-defined-search-hint.cpp.
func nonFuncHint(env *lint.Env) {
	equalConstrained := env.EqualConstrained()
	arrayEqualConstrained := env.ArrayEqualConstrained()

	candidates := map[*ast.VarDeclItem]bool{}
	for _, decl := range env.UserDefinedVariableDeclarations() {
		if decl.Value != nil {
			continue
		}
		if decl.Ti == nil || !decl.Ti.Type.IsVar {
			continue
		}
		if env.IsSearchHinted(decl) {
			continue
		}
		if _, ok := equalConstrained[decl]; ok {
			continue
		}
		if _, ok := arrayEqualConstrained[decl]; ok {
			continue
		}
		candidates[decl] = true
	}

	clearFunctionallyDefinedArgs(env, candidates)

	for decl := range candidates {
		env.Report(lint.LintResult{
			RuleID:       9,
			Message:      "possibly non-functionally defined variable not in a search hint",
			FileContents: lint.LocationToFileContents(decl.Location),
		})
	}
}

// clearFunctionallyDefinedArgs is the conjunctive-path analysis: for every
// conjunctive call to a user-defined predicate/function, whichever of its
// own parameters that function functionally defines (via a chain of
// conjunctive equalities, possibly running through further conjunctive
// calls to other user-defined functions) has its corresponding argument
// declaration cleared out of candidates, the same as a direct equality
// constraint would.
func clearFunctionallyDefinedArgs(env *lint.Env, candidates map[*ast.VarDeclItem]bool) {
	for _, call := range conjunctiveUserCalls(env) {
		defined := functionallyDefinedParams(call.FuncDecl, map[*ast.FunctionItem]bool{})
		for argIdx, arg := range call.Args {
			if !defined[argIdx] {
				continue
			}
			id, ok := arg.(*ast.Ident)
			if !ok {
				continue
			}
			if decl, ok := id.Decl.(*ast.VarDeclItem); ok {
				delete(candidates, decl)
			}
		}
	}
}

// conjunctiveUserCalls returns every call, anywhere in the user's own
// program, to a user-defined function or predicate that sits in a purely
// conjunctive context (see lint.IsConjunctive).
func conjunctiveUserCalls(env *lint.Env) []*ast.Call {
	var out []*ast.Call
	s := env.UserdefOnlyBuilder().InConstraint(true).InFunctionBody(true).
		Under(ast.KindCall).Capture().Build()
	ms := s.SearchModel(env.Model())
	for ms.Next() {
		call := ms.Capture(0).(*ast.Call)
		if call.FuncDecl == nil {
			continue
		}
		if !lint.IsConjunctive(lint.Reversed(ms.CurrentPath())) {
			continue
		}
		out = append(out, call)
	}
	return out
}

// functionallyDefinedParams reports which of fn's own parameters, by
// index, fn's body binds via a chain of conjunctive equalities — directly
// (`param = rhs`), or by passing param on as an argument to a further
// conjunctive call whose own callee functionally defines that argument's
// position in turn. visited is threaded through the recursion and is
// shared across one top-level callsite's whole chain, so a cycle of
// functions calling each other conjunctively terminates instead of
// recursing forever; each top-level call in conjunctiveUserCalls starts
// the chain with its own fresh visited set.
func functionallyDefinedParams(fn *ast.FunctionItem, visited map[*ast.FunctionItem]bool) map[int]bool {
	out := map[int]bool{}
	if fn == nil || fn.Body == nil || visited[fn] {
		return out
	}
	visited[fn] = true

	paramIndex := map[*ast.VarDeclItem]int{}
	for i, p := range fn.Params {
		paramIndex[p] = i
	}

	var eqs []*ast.BinaryExpr
	var calls []*ast.Call
	collectConjunctiveParts(fn.Body, &eqs, &calls)

	for _, eq := range eqs {
		markParamSide(eq.X, paramIndex, out)
		markParamSide(eq.Y, paramIndex, out)
	}

	for _, call := range calls {
		if call.FuncDecl == nil {
			continue
		}
		sub := functionallyDefinedParams(call.FuncDecl, visited)
		for argIdx, arg := range call.Args {
			if !sub[argIdx] {
				continue
			}
			id, ok := arg.(*ast.Ident)
			if !ok {
				continue
			}
			decl, ok := id.Decl.(*ast.VarDeclItem)
			if !ok {
				continue
			}
			if pIdx, isParam := paramIndex[decl]; isParam {
				out[pIdx] = true
			}
		}
	}
	return out
}

func markParamSide(side ast.Expr, paramIndex map[*ast.VarDeclItem]int, out map[int]bool) {
	id, ok := side.(*ast.Ident)
	if !ok {
		return
	}
	decl, ok := id.Decl.(*ast.VarDeclItem)
	if !ok {
		return
	}
	if idx, isParam := paramIndex[decl]; isParam {
		out[idx] = true
	}
}

// collectConjunctiveParts walks e the way lint.IsConjunctive's ancestor
// check allows — through `/\`, `let`, and `forall(comprehension)` — and
// collects every `=` it finds and every call to a user-defined function it
// finds, at the point each stops being conjunctively nested any further.
func collectConjunctiveParts(e ast.Expr, eqs *[]*ast.BinaryExpr, calls *[]*ast.Call) {
	switch x := e.(type) {
	case *ast.BinaryExpr:
		switch x.Op {
		case ast.BotAnd:
			collectConjunctiveParts(x.X, eqs, calls)
			collectConjunctiveParts(x.Y, eqs, calls)
		case ast.BotEq:
			*eqs = append(*eqs, x)
		}
	case *ast.Let:
		collectConjunctiveParts(x.Body, eqs, calls)
	case *ast.Call:
		if x.Name == "forall" && len(x.Args) == 1 {
			if comp, ok := x.Args[0].(*ast.Comprehension); ok {
				collectConjunctiveParts(comp.Body, eqs, calls)
				return
			}
		}
		if x.FuncDecl != nil {
			*calls = append(*calls, x)
		}
	}
}
