package ast

// Synthetic builds a Location for a rewrite node that has no direct
// source counterpart: both endpoints collapse to from's start, and
// Introduced is set. This stands in for the GCLock-scoped allocation the
// original C++ linter uses when it fabricates replacement expressions —
// Go needs no scope guard since the garbage collector owns the node
// either way, but the Introduced flag it sets still matters to callers
// that want to tell synthesized nodes apart from parsed ones.
func Synthetic(from Location) Location {
	return Location{First: from.First, Last: from.First, Introduced: true}
}

// NewNot builds a synthetic logical negation of x.
func NewNot(x Expr) *UnaryExpr {
	return &UnaryExpr{Location: Synthetic(x.Loc()), Op: UotNot, X: x}
}

// NewBin builds a synthetic binary expression combining x and y.
func NewBin(op BinOp, x, y Expr) *BinaryExpr {
	return &BinaryExpr{Location: Synthetic(x.Loc()), Op: op, X: x, Y: y}
}
