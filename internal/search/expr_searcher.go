package search

import "github.com/erikvader/MiniZinc-linter/internal/ast"

// ExprSearcher is the stateful depth-first iterator over one expression
// subtree, ported field-for-field from Impl::ExprSearcher:
//
//   - dfsStack: the raw DFS work stack.
//   - path: the ancestor chain of the node currently being visited,
//     mirrored onto dfsStack so popping a node off dfsStack that equals
//     path's top means "we are leaving this subtree."
//   - hits: the prefix of nodes-stack that has matched so far.
//   - nodesPos: how many pattern nodes have matched, i.e. len(hits).
type ExprSearcher struct {
	nodes         []Node
	globalFilters []Filter

	path     []ast.Expr
	dfsStack []ast.Expr
	hits     []ast.Expr
	nodesPos int
}

func newExprSearcher(nodes []Node, globalFilters []Filter) *ExprSearcher {
	return &ExprSearcher{
		nodes:         nodes,
		globalFilters: globalFilters,
		hits:          make([]ast.Expr, 0, len(nodes)),
	}
}

// HasResult reports whether every pattern node has matched.
func (s *ExprSearcher) HasResult() bool { return s.nodesPos == len(s.nodes) }

// IsSearching reports whether there is still work left in this subtree.
func (s *ExprSearcher) IsSearching() bool { return len(s.dfsStack) > 0 }

// Capture returns the n-th captured node of the current hit.
func (s *ExprSearcher) Capture(n int) ast.Expr {
	for i := range s.hits {
		if s.nodes[i].Capturable() {
			if n == 0 {
				return s.hits[i]
			}
			n--
		}
	}
	panic("search: capture index out of range")
}

// NewSearch resets the iterator and starts it at e.
func (s *ExprSearcher) NewSearch(e ast.Expr) {
	s.Abort()
	s.dfsStack = append(s.dfsStack, e)
}

// Abort clears all iterator state.
func (s *ExprSearcher) Abort() {
	s.dfsStack = s.dfsStack[:0]
	s.path = s.path[:0]
	s.hits = s.hits[:0]
	s.nodesPos = 0
}

// CurrentPath returns the ancestor chain of the latest hit, root first,
// NOT including the hit itself: s.path mirrors the open DFS stack and so
// still has the just-matched node as its own last element at the moment
// a hit is reported, which callers checking ancestor-only context
// (IsNotReified, IsConjunctive) must not see as if it were its own
// ancestor.
func (s *ExprSearcher) CurrentPath() []ast.Expr {
	if len(s.path) == 0 {
		return nil
	}
	out := make([]ast.Expr, len(s.path)-1)
	copy(out, s.path[:len(s.path)-1])
	return out
}

// Next advances to the next hit, returning false once the subtree is
// exhausted. This is the literal translation of ExprSearcher::next(): a
// manual DFS where descending into a node's children is gated by whether
// the current pattern node allows matching anywhere under it (Under) or
// only directly (Direct).
func (s *ExprSearcher) Next() bool {
	// Resuming after a reported hit: un-hit the terminal match so the
	// children already queued for it (Under terminal) are searched against
	// the same last pattern node again.
	if s.HasResult() && len(s.hits) > 0 {
		s.hits = s.hits[:len(s.hits)-1]
		s.nodesPos--
	}
	for len(s.dfsStack) > 0 {
		cur := s.dfsStack[len(s.dfsStack)-1]
		s.dfsStack = s.dfsStack[:len(s.dfsStack)-1]

		if len(s.path) > 0 && s.path[len(s.path)-1] == cur {
			s.path = s.path[:len(s.path)-1]
			if len(s.hits) > 0 && s.hits[len(s.hits)-1] == cur {
				s.hits = s.hits[:len(s.hits)-1]
				s.nodesPos--
				if s.nodes[s.nodesPos].IsUnder() {
					s.path = append(s.path, cur)
					s.dfsStack = append(s.dfsStack, cur)
					s.queueChildren(cur)
				}
			}
			continue
		}

		tar := s.nodes[s.nodesPos]
		matched := tar.Match(cur)
		if matched {
			s.hits = append(s.hits, cur)
			s.nodesPos++
		} else if tar.IsDirect() {
			continue
		}

		s.path = append(s.path, cur)
		s.dfsStack = append(s.dfsStack, cur)
		if !s.HasResult() || s.nodes[len(s.nodes)-1].IsUnder() {
			s.queueChildren(cur)
		}

		if s.HasResult() {
			return true
		}
	}
	return false
}

// queueChildren pushes cur's direct children, left to right, filtered by
// the active node's own filter (the node whose match is being expanded,
// i.e. the last hit) and by every global filter.
func (s *ExprSearcher) queueChildren(cur ast.Expr) {
	var active *Node
	if len(s.hits) > 0 && s.hits[len(s.hits)-1] == cur {
		active = &s.nodes[s.nodesPos-1]
	}
	for _, child := range ast.Children(cur) {
		if active != nil && !active.runFilter(cur, child) {
			continue
		}
		if !passesGlobalFilters(s.globalFilters, cur, child) {
			continue
		}
		s.dfsStack = append(s.dfsStack, child)
	}
}

func passesGlobalFilters(fs []Filter, root, child ast.Expr) bool {
	for _, f := range fs {
		if !f(root, child) {
			return false
		}
	}
	return true
}
