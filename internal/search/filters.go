package search

import "github.com/erikvader/MiniZinc-linter/internal/ast"

// Common filters, ported from the free functions forward-declared in
// original_source/src/linter/searcher.hpp. The .cpp snapshot in
// original_source never wires SearchNode's filter into children_of (see
// DESIGN.md); this port completes that wiring so these filters behave as
// their names and the surrounding specification promise.

// FilterOutAnnotations excludes a node's own annotation expressions from
// traversal, so a search does not match inside `:: search_guided_by(...)`
// style decorations.
func FilterOutAnnotations(root, child ast.Expr) bool {
	_, isAnn := child.(*ast.Annotation)
	return !isAnn
}

// FilterOutVarDecls excludes nested var-decl expressions (e.g. a let's
// local declarations) from traversal.
func FilterOutVarDecls(root, child ast.Expr) bool {
	_, isVd := child.(*ast.VarDeclExpr)
	return !isVd
}

// FilterArrayAccessName, applied while expanding an ArrayAccess match,
// keeps only the array operand (index 0 child) and drops the index
// expressions.
func FilterArrayAccessName(root, child ast.Expr) bool {
	access, ok := root.(*ast.ArrayAccess)
	if !ok {
		return true
	}
	return child == access.Array
}

// FilterArrayAccessIdx is the dual of FilterArrayAccessName: keep the
// index expressions, drop the array operand.
func FilterArrayAccessIdx(root, child ast.Expr) bool {
	access, ok := root.(*ast.ArrayAccess)
	if !ok {
		return true
	}
	return child != access.Array
}

// FilterComprehensionBody, applied while expanding a Comprehension match,
// keeps only the body expression and drops generators/where-clauses —
// used by searches that must not match inside a comprehension's own
// iteration machinery.
func FilterComprehensionBody(root, child ast.Expr) bool {
	comp, ok := root.(*ast.Comprehension)
	if !ok {
		return true
	}
	return child == comp.Body
}

// FilterGlobalComprehensionBody is FilterComprehensionBody applied as a
// global filter: it keeps the restriction in effect for every
// comprehension encountered anywhere in the traversal, not just the one
// the most recently matched pattern node targeted.
func FilterGlobalComprehensionBody(root, child ast.Expr) bool {
	return FilterComprehensionBody(root, child)
}
