package ast

// FollowId dereferences chains of identifiers bound to a value (`int: x =
// y; int: y = 3;`) down to the first non-identifier expression, or to an
// identifier with no bound value (a decision variable or an undefined
// parameter). A visited set guards against the cyclic assignments a
// malformed model could otherwise spin on.
//
// Grounded on original_source/src/linter/utils.hpp's follow_id.
func FollowId(e Expr) Expr {
	seen := map[*VarDeclItem]bool{}
	for {
		id, ok := e.(*Ident)
		if !ok {
			return e
		}
		decl, ok := id.Decl.(*VarDeclItem)
		if !ok || decl == nil || decl.Value == nil || seen[decl] {
			return e
		}
		seen[decl] = true
		e = decl.Value
	}
}

// FollowIdToDecl returns the declaration e resolves to, or nil if e is not
// an identifier or is unresolved.
func FollowIdToDecl(e Expr) Decl {
	id, ok := e.(*Ident)
	if !ok {
		return nil
	}
	return id.Decl
}

// IsIntExpr reports whether e, after following identifier chains, is the
// integer literal i.
func IsIntExpr(e Expr, i int64) bool {
	lit, ok := FollowId(e).(*IntLit)
	return ok && lit.Value == i
}

// IsFloatExpr reports whether e, after following identifier chains, is the
// float literal f.
func IsFloatExpr(e Expr, f float64) bool {
	lit, ok := FollowId(e).(*FloatLit)
	return ok && lit.Value == f
}

// DependsOnInstance reports whether e transitively refers to any
// declaration that is a decision variable or an as-yet-unassigned
// parameter, as opposed to being fully determined by literals. Used by
// rules that must tell apart "provably constant" sub-expressions from
// ones that depend on instance data (e.g. constant-variable,
// zero-one-vars).
func DependsOnInstance(e Expr) bool {
	return dependsOnInstance(e, map[Expr]bool{})
}

func dependsOnInstance(e Expr, visiting map[Expr]bool) bool {
	if e == nil || visiting[e] {
		return false
	}
	visiting[e] = true
	defer delete(visiting, e)

	if id, ok := e.(*Ident); ok {
		decl, ok := id.Decl.(*VarDeclItem)
		if !ok || decl == nil {
			return true // unresolved: assume the worst
		}
		if decl.Ti != nil && decl.Ti.Type.IsVar {
			return true
		}
		if decl.Value == nil {
			return true // undefined parameter
		}
		return dependsOnInstance(decl.Value, visiting)
	}

	for _, c := range Children(e) {
		if dependsOnInstance(c, visiting) {
			return true
		}
	}
	return false
}

// IsVarExpr approximates whether e is decision-variable-typed, without a
// full type checker: it propagates var-ness through identifier lookup and
// the usual structural carriers (array access, binary/unary operators,
// if-then-else, user-defined calls), defaulting to false for anything it
// can't resolve. Grounded on the var()-checking in
// original_source/src/linter/rules/operators-on-var.cpp,
// var-in-gen.cpp and var-in-if-where.cpp, which all lean on
// MiniZinc::Type::isvar() rather than a dedicated inference pass.
func IsVarExpr(e Expr) bool {
	switch x := e.(type) {
	case nil:
		return false
	case *Ident:
		decl, ok := x.Decl.(*VarDeclItem)
		if !ok || decl == nil || decl.Ti == nil {
			return false
		}
		return decl.Ti.Type.IsVar
	case *ArrayAccess:
		return IsVarExpr(x.Array)
	case *BinaryExpr:
		return IsVarExpr(x.X) || IsVarExpr(x.Y)
	case *UnaryExpr:
		return IsVarExpr(x.X)
	case *IfThenElse:
		return IsVarExpr(x.If) || IsVarExpr(x.Then) || IsVarExpr(x.Else)
	case *Call:
		if x.FuncDecl != nil && x.FuncDecl.Ti != nil {
			return x.FuncDecl.Ti.Type.IsVar
		}
		for _, a := range x.Args {
			if IsVarExpr(a) {
				return true
			}
		}
		return false
	case *VarDeclExpr:
		return x.Decl != nil && x.Decl.Ti != nil && x.Decl.Ti.Type.IsVar
	default:
		return false
	}
}

// IsVarSet reports whether e is a variable-typed set of int, the shape
// var-in-gen.cpp flags when it appears as a generator's `in` expression.
func IsVarSet(e Expr) bool {
	id, ok := e.(*Ident)
	if !ok {
		return false
	}
	decl, ok := id.Decl.(*VarDeclItem)
	if !ok || decl == nil || decl.Ti == nil {
		return false
	}
	t := decl.Ti.Type
	return t.IsVar && t.Set == StSet
}

// OtherSide returns the operand of parent that is not side, useful once a
// search has captured one side of a commutative/symmetric comparison.
func OtherSide(parent *BinaryExpr, side Expr) Expr {
	if parent.X == side {
		return parent.Y
	}
	return parent.X
}

// IsArrayAccessSimple reports whether every index expression of access is
// a bare identifier (as opposed to an arithmetic expression), matching
// the original's is_array_access_simple.
func IsArrayAccessSimple(access *ArrayAccess) bool {
	for _, idx := range access.Index {
		if _, ok := idx.(*Ident); !ok {
			return false
		}
	}
	return true
}

// ComprehensionSatisfiesArrayAccess reports whether every index of access
// is an identifier bound by one of comp's generators, in order.
func ComprehensionSatisfiesArrayAccess(comp *Comprehension, access *ArrayAccess) bool {
	if !IsArrayAccessSimple(access) {
		return false
	}
	names := generatorNames(comp)
	if len(names) != len(access.Index) {
		return false
	}
	for i, idx := range access.Index {
		id := idx.(*Ident)
		if id.Name != names[i] {
			return false
		}
	}
	return true
}

func generatorNames(comp *Comprehension) []string {
	var names []string
	for _, g := range comp.Generators {
		names = append(names, g.Names...)
	}
	return names
}

// ComprehensionCoversWholeArray reports whether comp's generators, as a
// multiset of `in` expressions (one per bound name, since `i, j in S`
// binds two names off a single generator), are structurally equal to
// array's own declared index-set ranges — one range expression per
// dimension. This is a purely syntactic comparison (see StructurallyEqual):
// a generator over the named set `ns` covers an array declared `array[ns]
// of ...`, but a generator over `4..5` does not cover that same array even
// if `ns = 4..5`, matching
// original_source/tests/LinterEnv.test.cpp's "value equal" case.
func ComprehensionCoversWholeArray(comp *Comprehension, array *VarDeclItem) bool {
	if array.Ti == nil || len(array.Ti.Ranges) == 0 {
		return false
	}
	return exprMultisetEqual(comprehensionIns(comp), array.Ti.Ranges)
}

// comprehensionIns flattens comp's generators into one `in` expression per
// bound name, in generator order.
func comprehensionIns(comp *Comprehension) []Expr {
	var ins []Expr
	for _, g := range comp.Generators {
		for range g.Names {
			ins = append(ins, g.In)
		}
	}
	return ins
}

// StructurallyEqual reports whether a and b are the same expression shape
// syntactically, without resolving identifiers to the values they're bound
// to (contrast FollowId). Two identifiers are equal only if they resolve to
// the same declaration (or, lacking one, share a name); everything else
// compares by recursing down operator/argument structure. Used wherever
// spec's "compared by structural expression equality" wording appears,
// e.g. ComprehensionCoversWholeArray.
func StructurallyEqual(a, b Expr) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case *Ident:
		y, ok := b.(*Ident)
		if !ok {
			return false
		}
		if x.Decl != nil || y.Decl != nil {
			return x.Decl == y.Decl
		}
		return x.Name == y.Name
	case *IntLit:
		y, ok := b.(*IntLit)
		return ok && x.Value == y.Value
	case *FloatLit:
		y, ok := b.(*FloatLit)
		return ok && x.Value == y.Value
	case *BoolLit:
		y, ok := b.(*BoolLit)
		return ok && x.Value == y.Value
	case *StringLit:
		y, ok := b.(*StringLit)
		return ok && x.Value == y.Value
	case *SetLit:
		y, ok := b.(*SetLit)
		if !ok || x.IsRange != y.IsRange {
			return false
		}
		if x.IsRange {
			return StructurallyEqual(x.Lo, y.Lo) && StructurallyEqual(x.Hi, y.Hi)
		}
		return exprSliceEqual(x.Elements, y.Elements)
	case *ArrayLit:
		y, ok := b.(*ArrayLit)
		return ok && x.Dims == y.Dims && exprSliceEqual(x.Elements, y.Elements)
	case *ArrayAccess:
		y, ok := b.(*ArrayAccess)
		return ok && StructurallyEqual(x.Array, y.Array) && exprSliceEqual(x.Index, y.Index)
	case *BinaryExpr:
		y, ok := b.(*BinaryExpr)
		return ok && x.Op == y.Op && StructurallyEqual(x.X, y.X) && StructurallyEqual(x.Y, y.Y)
	case *UnaryExpr:
		y, ok := b.(*UnaryExpr)
		return ok && x.Op == y.Op && StructurallyEqual(x.X, y.X)
	case *Call:
		y, ok := b.(*Call)
		return ok && x.Name == y.Name && exprSliceEqual(x.Args, y.Args)
	default:
		return false
	}
}

func exprSliceEqual(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !StructurallyEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// exprMultisetEqual reports whether a and b contain the same expressions
// with the same multiplicities, ignoring order, comparing elements with
// StructurallyEqual.
func exprMultisetEqual(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, x := range a {
		found := false
		for j, y := range b {
			if used[j] {
				continue
			}
			if StructurallyEqual(x, y) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ComprehensionContainsWhere reports whether comp filters its generators.
func ComprehensionContainsWhere(comp *Comprehension) bool {
	return comp.Where != nil
}

// LocationEqual compares two Locations by their source span only, as the
// original's operator==(Location,Location) does (ignoring Introduced and
// NonAlloc, which are derived flags rather than part of the identity of a
// source span).
func LocationEqual(a, b Location) bool {
	return a.First == b.First && a.Last == b.Last
}

// LocationBetween returns the single-line span from the end of left to
// the start of right, both endpoint columns included, or ok=false if they are not on the same
// line or are not ordered left-before-right.
func LocationBetween(left, right Location) (line, startCol, endCol int, ok bool) {
	if left.Last.Line != right.First.Line {
		return 0, 0, 0, false
	}
	if left.Last.Column > right.First.Column {
		return 0, 0, 0, false
	}
	return left.Last.Line, left.Last.Column, right.First.Column, true
}
