package search

import "github.com/erikvader/MiniZinc-linter/internal/ast"

// Builder is the fluent compiler for Search, ported from SearchBuilder.
// Each call returns the same *Builder so calls chain.
type Builder struct {
	nodes         []Node
	locations     Locations
	numCaptures   int
	globalFilters []Filter
	includePath   []string
	recursive     bool
}

// NewBuilder starts an empty search pattern.
func NewBuilder() *Builder { return &Builder{} }

// OnlyUserDefined restricts ModelSearcher.advance to skip includes whose
// path falls under one of the given standard-library prefixes, and marks
// the Search as user-defined-only for IsUserDefinedOnly.
func (b *Builder) OnlyUserDefined(stdlibIncludePath []string) *Builder {
	b.includePath = stdlibIncludePath
	return b
}

// Recursive marks included user models as additional search targets.
func (b *Builder) Recursive(r bool) *Builder {
	b.recursive = r
	return b
}

func (b *Builder) InInclude(visit bool) *Builder        { b.locations.Include = visit; return b }
func (b *Builder) InConstraint(visit bool) *Builder     { b.locations.Constraint = visit; return b }
func (b *Builder) InFunctionBody(visit bool) *Builder   { b.locations.FunctionBody = visit; return b }
func (b *Builder) InFunctionParams(visit bool) *Builder { b.locations.FunctionParams = visit; return b }
func (b *Builder) InFunctionReturn(visit bool) *Builder { b.locations.FunctionReturn = visit; return b }

func (b *Builder) InFunction(visit bool) *Builder {
	return b.InFunctionBody(visit).InFunctionParams(visit).InFunctionReturn(visit)
}

func (b *Builder) InVarDecl(visit bool) *Builder   { b.locations.VarDecl = visit; return b }
func (b *Builder) InAssignRHS(visit bool) *Builder  { b.locations.AssignRHS = visit; return b }
func (b *Builder) InAssignDecl(visit bool) *Builder { b.locations.AssignDecl = visit; return b }

func (b *Builder) InAssign(visit bool) *Builder {
	return b.InAssignRHS(visit).InAssignDecl(visit)
}

func (b *Builder) InSolve(visit bool) *Builder  { b.locations.Solve = visit; return b }
func (b *Builder) InOutput(visit bool) *Builder { b.locations.Output = visit; return b }

func (b *Builder) InEverywhere() *Builder {
	return b.InInclude(true).InConstraint(true).InFunction(true).
		InVarDecl(true).InAssign(true).InSolve(true).InOutput(true)
}

// GlobalFilter adds a filter run on every node considered anywhere in the
// traversal, regardless of which pattern node is currently expanding.
func (b *Builder) GlobalFilter(f Filter) *Builder {
	b.globalFilters = append(b.globalFilters, f)
	return b
}

// Filter attaches f to the most recently added pattern node (Direct or
// Under); it panics if there is no node yet, mirroring the original's
// std::logic_error on an empty node list.
func (b *Builder) Filter(f Filter) *Builder {
	if len(b.nodes) == 0 {
		panic("search: there is nothing to add a filter to")
	}
	b.nodes[len(b.nodes)-1].filterFn = f
	return b
}

func (b *Builder) Direct(kind ast.Kind) *Builder {
	b.nodes = append(b.nodes, Node{att: Direct, kind: kind})
	return b
}

func (b *Builder) DirectBinOp(op ast.BinOp) *Builder {
	b.nodes = append(b.nodes, Node{att: Direct, kind: ast.KindBinaryExpr, hasBinOp: true, binOp: op})
	return b
}

func (b *Builder) DirectUnOp(op ast.UnOp) *Builder {
	b.nodes = append(b.nodes, Node{att: Direct, kind: ast.KindUnaryExpr, hasUnOp: true, unOp: op})
	return b
}

func (b *Builder) Under(kind ast.Kind) *Builder {
	b.nodes = append(b.nodes, Node{att: Under, kind: kind})
	return b
}

func (b *Builder) UnderBinOp(op ast.BinOp) *Builder {
	b.nodes = append(b.nodes, Node{att: Under, kind: ast.KindBinaryExpr, hasBinOp: true, binOp: op})
	return b
}

func (b *Builder) UnderUnOp(op ast.UnOp) *Builder {
	b.nodes = append(b.nodes, Node{att: Under, kind: ast.KindUnaryExpr, hasUnOp: true, unOp: op})
	return b
}

// Capture marks the most recently added pattern node as capturable; it
// panics if there is no node yet.
func (b *Builder) Capture() *Builder {
	if len(b.nodes) == 0 {
		panic("search: there is nothing to capture")
	}
	b.numCaptures++
	b.nodes[len(b.nodes)-1].capturable = true
	return b
}

// Build finalizes the pattern into an immutable, reusable Search.
func (b *Builder) Build() *Search {
	return &Search{
		nodes:         append([]Node{}, b.nodes...),
		locations:     b.locations,
		numCaptures:   b.numCaptures,
		globalFilters: append([]Filter{}, b.globalFilters...),
		includePath:   b.includePath,
		recursive:     b.recursive,
	}
}
