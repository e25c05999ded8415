package search

import "github.com/erikvader/MiniZinc-linter/internal/ast"

type modelFrame struct {
	items []ast.Item
	idx   int
}

// ModelSearcher walks a model's top-level items, running the compiled
// Search's ExprSearcher (if any) over each item's search-relevant
// sub-expression one at a time. Ported from Impl::ModelSearcher /
// Search::ModelSearcher.
//
// Unlike the original_source snapshot (whose next_item walks a single
// flat Model::iterator pair and never follows IncludeI), this port
// threads a stack of item-slices so that Search.Recursive, combined with
// OnlyUserDefined, actually descends into included user models — the
// behavior the component design for Search explicitly calls for.
type ModelSearcher struct {
	s      *Search
	frames []modelFrame

	itemChild int
	curItem   ast.Item

	expr *ExprSearcher // nil when s.nodes is empty (items-only search)
}

func newModelSearcher(m *ast.Model, s *Search) *ModelSearcher {
	ms := &ModelSearcher{
		s:      s,
		frames: []modelFrame{{items: m.Items}},
	}
	if !ms.isItemsOnly() {
		ms.expr = newExprSearcher(s.nodes, s.globalFilters)
	}
	ms.advance()
	return ms
}

func (ms *ModelSearcher) isItemsOnly() bool { return len(ms.s.nodes) == 0 }

// advance moves curItem to the next top-level item this search visits,
// transparently flattening recursive includes onto the frame stack. It
// returns false once there is nothing left anywhere.
func (ms *ModelSearcher) advance() bool {
	for len(ms.frames) > 0 {
		fi := len(ms.frames) - 1
		if ms.frames[fi].idx >= len(ms.frames[fi].items) {
			ms.frames = ms.frames[:fi]
			continue
		}
		it := ms.frames[fi].items[ms.frames[fi].idx]
		ms.frames[fi].idx++

		if inc, ok := it.(*ast.IncludeItem); ok &&
			ms.s.recursive && inc.Model != nil && ms.s.IsUserDefinedInclude(inc) {
			ms.frames = append(ms.frames, modelFrame{items: inc.Model.Items})
			continue
		}

		ms.itemChild = 0
		if ms.s.locations.ShouldVisit(it) {
			ms.curItem = it
			return true
		}
	}
	ms.curItem = nil
	return false
}

// nextStartingPoint picks the next search-relevant sub-expression of
// curItem, in the order: function body, function return type, function
// params; assign rhs, assign decl; var decl value; constraint expr;
// output expr; solve objective. Returns false once curItem has none left.
func (ms *ModelSearcher) nextStartingPoint() bool {
	var next ast.Expr

	switch x := ms.curItem.(type) {
	case *ast.FunctionItem:
		switch {
		case ms.itemChild == 0:
			if ms.s.locations.FunctionBody {
				next = x.Body
			}
		case ms.itemChild == 1:
			if ms.s.locations.FunctionReturn {
				next = x.Ti
			}
		case ms.itemChild-2 < len(x.Params):
			if ms.s.locations.FunctionParams {
				p := x.Params[ms.itemChild-2]
				next = &ast.VarDeclExpr{Location: p.Location, Decl: p}
			}
		default:
			return false
		}
	case *ast.AssignItem:
		switch ms.itemChild {
		case 0:
			if ms.s.locations.AssignRHS {
				next = x.Value
			}
		case 1:
			if ms.s.locations.AssignDecl && x.Decl != nil {
				next = &ast.VarDeclExpr{Location: x.Decl.Location, Decl: x.Decl}
			}
		default:
			return false
		}
	case *ast.VarDeclItem:
		if ms.itemChild != 0 {
			return false
		}
		next = x.Value
	case *ast.ConstraintItem:
		if ms.itemChild != 0 {
			return false
		}
		next = x.Expr
	case *ast.OutputItem:
		if ms.itemChild != 0 {
			return false
		}
		next = x.Value
	case *ast.SolveItem:
		if ms.itemChild != 0 {
			return false
		}
		next = x.Objective
	default:
		return false
	}

	ms.itemChild++
	if next == nil {
		return ms.nextStartingPoint()
	}
	ms.expr.NewSearch(next)
	return true
}

// Next advances to the next hit, returning false once the whole model has
// been exhausted.
func (ms *ModelSearcher) Next() bool {
	if ms.curItem == nil {
		return false
	}

	if ms.isItemsOnly() {
		return ms.advance()
	}

	if !ms.expr.IsSearching() {
		for !ms.nextStartingPoint() {
			if !ms.advance() {
				return false
			}
		}
	}

	ms.expr.Next()
	if ms.expr.HasResult() {
		return true
	}
	return ms.Next()
}

// CurItem returns the item the latest hit (or items-only advance) was
// found in.
func (ms *ModelSearcher) CurItem() ast.Item { return ms.curItem }

// Capture returns the n-th captured node of the current hit.
func (ms *ModelSearcher) Capture(n int) ast.Expr { return ms.expr.Capture(n) }

// CurrentPath returns the ancestor chain of the current hit.
func (ms *ModelSearcher) CurrentPath() []ast.Expr {
	if ms.expr == nil {
		return nil
	}
	return ms.expr.CurrentPath()
}

// SkipItem abandons any remaining search within the current item and
// moves on to the next visitable one.
func (ms *ModelSearcher) SkipItem() bool {
	if ms.expr != nil {
		ms.expr.Abort()
	}
	return ms.advance()
}
