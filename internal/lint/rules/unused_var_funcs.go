package rules

import (
	"fmt"

	"github.com/erikvader/MiniZinc-linter/internal/ast"
	"github.com/erikvader/MiniZinc-linter/internal/lint"
)

// unusedVarFuncs flags user-defined variable declarations and functions
// that nothing reachable from the model's constraints, solve item, or
// output item ever refers to. Grounded on
// original_source/src/linter/rules/unused-var-funcs.cpp's
// collect-dependants-then-remove-reachable algorithm, simplified from its
// Graph/VarGraph class pair into a single reference map plus two
// reachability passes (one over the whole graph to find the used set, one
// restricted to the unused set to implement its "a decl contained inside
// an already-reported decl isn't separately reported" containment rule).
func unusedVarFuncs(env *lint.Env) {
	decls := env.UserDefinedVariableDeclarations()
	funcs := env.UserDefinedFunctions()

	refs := map[ast.Decl][]ast.Decl{}
	for _, d := range decls {
		refs[d] = referencedDecls(d.Value)
	}
	for _, f := range funcs {
		refs[f] = referencedDecls(f.Body)
	}

	roots := rootExprs(env)
	used := map[ast.Decl]bool{}
	var mark func(ast.Decl)
	mark = func(d ast.Decl) {
		if d == nil || used[d] {
			return
		}
		used[d] = true
		for _, dep := range refs[d] {
			mark(dep)
		}
	}
	for _, r := range roots {
		for _, d := range referencedDecls(r) {
			mark(d)
		}
	}

	var unused []ast.Decl
	unusedSet := map[ast.Decl]bool{}
	for _, d := range decls {
		if !used[d] {
			unused = append(unused, d)
			unusedSet[d] = true
		}
	}
	for _, f := range funcs {
		if !used[f] {
			unused = append(unused, f)
			unusedSet[f] = true
		}
	}

	contained := map[ast.Decl]bool{}
	for _, d := range unused {
		if contained[d] {
			continue
		}
		for _, dep := range refs[d] {
			markContained(dep, refs, unusedSet, contained, map[ast.Decl]bool{d: true})
		}
	}

	for _, d := range unused {
		if contained[d] {
			continue
		}
		loc := d.Loc()
		kind := "variable"
		if _, ok := d.(*ast.FunctionItem); ok {
			kind = "function"
		}
		env.Report(lint.LintResult{
			RuleID:       1,
			Message:      fmt.Sprintf("%s %q is never used", kind, declName(d)),
			FileContents: lint.LocationToFileContents(loc),
		})
	}
}

func markContained(d ast.Decl, refs map[ast.Decl][]ast.Decl, unusedSet, contained map[ast.Decl]bool, visiting map[ast.Decl]bool) {
	if d == nil || !unusedSet[d] || contained[d] || visiting[d] {
		return
	}
	contained[d] = true
	visiting[d] = true
	for _, dep := range refs[d] {
		markContained(dep, refs, unusedSet, contained, visiting)
	}
	delete(visiting, d)
}

func declName(d ast.Decl) string {
	switch x := d.(type) {
	case *ast.VarDeclItem:
		return x.Name
	case *ast.FunctionItem:
		return x.Name
	default:
		return "?"
	}
}

func rootExprs(env *lint.Env) []ast.Expr {
	var out []ast.Expr
	for _, c := range env.Constraints() {
		out = append(out, c.Expr)
	}
	for _, it := range env.Model().Items {
		switch x := it.(type) {
		case *ast.OutputItem:
			out = append(out, x.Value)
		case *ast.SolveItem:
			if x.Objective != nil {
				out = append(out, x.Objective)
			}
			for _, ann := range x.Annotations {
				out = append(out, ann.Args...)
			}
		}
	}
	return out
}

// referencedDecls returns the user declarations e directly or
// transitively mentions through Ident/Call nodes (not following into
// those declarations' own definitions — that's refs' job one level at a
// time, so cycles can't cause unbounded recursion here).
func referencedDecls(e ast.Expr) []ast.Decl {
	var out []ast.Decl
	var walk func(ast.Expr)
	walk = func(e ast.Expr) {
		if e == nil {
			return
		}
		switch x := e.(type) {
		case *ast.Ident:
			if x.Decl != nil {
				out = append(out, x.Decl)
			}
			return
		case *ast.Call:
			if x.FuncDecl != nil {
				out = append(out, x.FuncDecl)
			}
		}
		for _, c := range ast.Children(e) {
			walk(c)
		}
	}
	walk(e)
	return out
}
