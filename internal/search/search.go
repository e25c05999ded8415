// Package search implements the declarative AST pattern language described
// by the linter's component design: a path of matchers compiled by
// Builder into an immutable Search, and two stateful iterators
// (ExprSearcher over a single expression tree, ModelSearcher over a whole
// model's top-level items) that walk the tree one hit at a time rather
// than collecting every match up front.
//
// Ported field-for-field from original_source/src/linter/searcher.{hpp,cpp};
// see DESIGN.md for the one place (filter wiring) where that C++ snapshot
// left SearchNode.run_filter declared but unused and this port completes it
// per the surrounding specification.
package search

import "github.com/erikvader/MiniZinc-linter/internal/ast"

// Attachment says whether a Node must match a direct child of the
// previous match (Direct) or may match anywhere in its subtree (Under).
type Attachment int

const (
	Direct Attachment = iota
	Under
)

// Filter decides whether child, reached while expanding root's children,
// should be descended into at all.
type Filter func(root, child ast.Expr) bool

// Node is one step of a compiled search path: a target expression kind
// (optionally narrowed to one operator subkind), how it attaches to the
// previous step, whether it should be captured, and an optional filter
// applied when later expanding its own matched node's children.
type Node struct {
	att        Attachment
	kind       ast.Kind
	hasBinOp   bool
	binOp      ast.BinOp
	hasUnOp    bool
	unOp       ast.UnOp
	capturable bool
	filterFn   Filter
}

func (n Node) IsDirect() bool { return n.att == Direct }
func (n Node) IsUnder() bool  { return n.att == Under }
func (n Node) Capturable() bool { return n.capturable }

// Match reports whether e is the kind (and operator subkind, if any) this
// node targets.
func (n Node) Match(e ast.Expr) bool {
	if e.Kind() != n.kind {
		return false
	}
	if n.hasBinOp {
		b, ok := e.(*ast.BinaryExpr)
		return ok && b.Op == n.binOp
	}
	if n.hasUnOp {
		u, ok := e.(*ast.UnaryExpr)
		return ok && u.Op == n.unOp
	}
	return true
}

func (n Node) runFilter(root, child ast.Expr) bool {
	if n.filterFn == nil {
		return true
	}
	return n.filterFn(root, child)
}

// Locations mirrors Impl::SearchLocs: which kinds of top-level item are
// entry points for a search.
type Locations struct {
	Include        bool
	VarDecl        bool
	Constraint     bool
	Solve          bool
	Output         bool
	FunctionBody   bool
	FunctionParams bool
	FunctionReturn bool
	AssignRHS      bool
	AssignDecl     bool
}

// ShouldVisit reports whether it is a kind of item this Locations set
// enters at all.
func (l Locations) ShouldVisit(it ast.Item) bool {
	switch it.(type) {
	case *ast.AssignItem:
		return l.AssignRHS || l.AssignDecl
	case *ast.VarDeclItem:
		return l.VarDecl
	case *ast.ConstraintItem:
		return l.Constraint
	case *ast.FunctionItem:
		return l.FunctionBody || l.FunctionParams || l.FunctionReturn
	case *ast.IncludeItem:
		return l.Include
	case *ast.OutputItem:
		return l.Output
	case *ast.SolveItem:
		return l.Solve
	default:
		return false
	}
}

func (l Locations) Any() bool {
	return l.Include || l.VarDecl || l.Constraint || l.Solve || l.Output ||
		l.FunctionBody || l.FunctionParams || l.FunctionReturn || l.AssignRHS || l.AssignDecl
}

// Search is an immutable, reusable compiled pattern, built only through
// Builder.
type Search struct {
	nodes         []Node
	locations     Locations
	numCaptures   int
	globalFilters []Filter
	includePath   []string // nil unless OnlyUserDefined was set
	recursive     bool
}

// IsUserDefinedOnly reports whether this search was built with
// OnlyUserDefined, i.e. it skips standard-library includes.
func (s *Search) IsUserDefinedOnly() bool { return s.includePath != nil }

// IsRecursive reports whether included models should be visited too.
func (s *Search) IsRecursive() bool { return s.recursive }

// IncludePath returns the standard-library prefixes configured by
// OnlyUserDefined, or nil.
func (s *Search) IncludePath() []string { return s.includePath }

// IsUserDefinedInclude reports whether inc points outside the configured
// standard-library include path, i.e. whether it is worth recursing into.
func (s *Search) IsUserDefinedInclude(inc *ast.IncludeItem) bool {
	if s.includePath == nil {
		return true
	}
	for _, prefix := range s.includePath {
		if pathHasPrefix(inc.Path, prefix) {
			return false
		}
	}
	return true
}

func pathHasPrefix(path, prefix string) bool {
	if len(path) < len(prefix) {
		return false
	}
	return path[:len(prefix)] == prefix
}

// SearchExpr starts an iterator over e's subtree.
func (s *Search) SearchExpr(e ast.Expr) *ExprSearcher {
	es := newExprSearcher(s.nodes, s.globalFilters)
	es.NewSearch(e)
	return es
}

// SearchModel starts an iterator over m's top-level items.
func (s *Search) SearchModel(m *ast.Model) *ModelSearcher {
	return newModelSearcher(m, s)
}
