package ast

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/erikvader/MiniZinc-linter/internal/token"
)

func ident(name string, decl Decl) *Ident {
	return &Ident{Name: name, Decl: decl}
}

func intLit(v int64) *IntLit { return &IntLit{Value: v} }

func TestChildrenBinaryExpr(t *testing.T) {
	x, y := intLit(1), intLit(2)
	bin := &BinaryExpr{Op: BotPlus, X: x, Y: y}
	got := Children(bin)
	want := []Expr{x, y}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Children(BinaryExpr) mismatch (-want +got):\n%s", diff)
	}
}

func TestChildrenArrayAccess(t *testing.T) {
	arr := ident("a", nil)
	i, j := ident("i", nil), ident("j", nil)
	aa := &ArrayAccess{Array: arr, Index: []Expr{i, j}}
	got := Children(aa)
	want := []Expr{arr, i, j}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Children(ArrayAccess) mismatch (-want +got):\n%s", diff)
	}
}

func TestChildrenComprehension(t *testing.T) {
	in := ident("S", nil)
	where := ident("w", nil)
	body := ident("b", nil)
	comp := &Comprehension{
		Body:       body,
		Generators: []Generator{{Names: []string{"i"}, In: in}},
		Where:      where,
	}
	got := Children(comp)
	want := []Expr{in, where, body}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Children(Comprehension) mismatch (-want +got):\n%s", diff)
	}
}

func TestChildrenLetWrapsVarDecl(t *testing.T) {
	decl := &VarDeclItem{Name: "x", Ti: &TypeInst{Type: Type{Base: BtInt}}}
	body := ident("x", decl)
	let := &Let{Decls: []LetDecl{{VarDecl: decl}}, Body: body}

	children := Children(let)
	if len(children) != 2 {
		t.Fatalf("want 2 children, got %d", len(children))
	}
	wrapped, ok := children[0].(*VarDeclExpr)
	if !ok {
		t.Fatalf("want first child to be *VarDeclExpr, got %T", children[0])
	}
	if wrapped.Decl != decl {
		t.Errorf("wrapped decl = %v, want %v", wrapped.Decl, decl)
	}
}

func TestChildrenSetLitRangeVsEnumerated(t *testing.T) {
	lo, hi := intLit(1), intLit(3)
	rng := &SetLit{IsRange: true, Lo: lo, Hi: hi}
	if diff := cmp.Diff([]Expr{lo, hi}, Children(rng)); diff != "" {
		t.Errorf("Children(range SetLit) mismatch (-want +got):\n%s", diff)
	}

	a, b := intLit(1), intLit(2)
	enum := &SetLit{Elements: []Expr{a, b}}
	if diff := cmp.Diff([]Expr{a, b}, Children(enum)); diff != "" {
		t.Errorf("Children(enumerated SetLit) mismatch (-want +got):\n%s", diff)
	}
}

func TestChildrenLeaves(t *testing.T) {
	for _, e := range []Expr{&BadExpr{}, ident("x", nil), intLit(1), &FloatLit{Value: 1.5}, &BoolLit{Value: true}, &StringLit{Value: "s"}} {
		if got := Children(e); got != nil {
			t.Errorf("Children(%T) = %v, want nil", e, got)
		}
	}
}

func TestItemExprVarDeclWrapsItself(t *testing.T) {
	decl := &VarDeclItem{Name: "x"}
	e, ok := ItemExpr(decl)
	if !ok {
		t.Fatal("want ok=true")
	}
	wrapped, ok := e.(*VarDeclExpr)
	if !ok || wrapped.Decl != decl {
		t.Fatalf("ItemExpr(VarDeclItem) = %#v, want wrapped %v", e, decl)
	}
}

func TestItemExprFunctionWithoutBody(t *testing.T) {
	fn := &FunctionItem{Name: "f"}
	if _, ok := ItemExpr(fn); ok {
		t.Error("want ok=false for a body-less function declaration")
	}
}

func TestItemExprInclude(t *testing.T) {
	if _, ok := ItemExpr(&IncludeItem{Path: "globals.mzn"}); ok {
		t.Error("want ok=false for an include item")
	}
}

func TestFollowIdChain(t *testing.T) {
	three := intLit(3)
	y := &VarDeclItem{Name: "y", Value: three}
	x := &VarDeclItem{Name: "x", Value: ident("y", y)}

	got := FollowId(ident("x", x))
	if got != three {
		t.Errorf("FollowId chain = %v, want the literal %v", got, three)
	}
}

func TestFollowIdStopsAtUndefined(t *testing.T) {
	decl := &VarDeclItem{Name: "v"} // no Value: a decision variable
	id := ident("v", decl)
	if got := FollowId(id); got != id {
		t.Errorf("FollowId(undefined decl) = %v, want the identifier itself", got)
	}
}

func TestFollowIdCycleTerminates(t *testing.T) {
	a := &VarDeclItem{Name: "a"}
	b := &VarDeclItem{Name: "b"}
	a.Value = ident("b", b)
	b.Value = ident("a", a)

	// a malformed, cyclically-assigned model must not spin forever; the
	// seen-set in FollowId must break the cycle and return something.
	if got := FollowId(ident("a", a)); got == nil {
		t.Error("FollowId on a cyclic chain returned nil")
	}
}

func TestDependsOnInstance(t *testing.T) {
	par := &VarDeclItem{Name: "n", Ti: &TypeInst{Type: Type{Base: BtInt}}, Value: intLit(3)}
	if DependsOnInstance(ident("n", par)) {
		t.Error("a par bound to a literal should not depend on instance data")
	}

	varDecl := &VarDeclItem{Name: "x", Ti: &TypeInst{Type: Type{Base: BtInt, IsVar: true}}}
	if !DependsOnInstance(ident("x", varDecl)) {
		t.Error("a decision variable should always depend on instance data")
	}

	undefinedPar := &VarDeclItem{Name: "u", Ti: &TypeInst{Type: Type{Base: BtInt}}}
	if !DependsOnInstance(ident("u", undefinedPar)) {
		t.Error("an undefined parameter should depend on instance data")
	}

	if !DependsOnInstance(ident("unresolved", nil)) {
		t.Error("an unresolved identifier should be assumed to depend on instance data")
	}
}

func TestIsVarExprPropagatesThroughOperators(t *testing.T) {
	varDecl := &VarDeclItem{Ti: &TypeInst{Type: Type{IsVar: true}}}
	parDecl := &VarDeclItem{Ti: &TypeInst{Type: Type{IsVar: false}}}
	v := ident("v", varDecl)
	p := ident("p", parDecl)

	cases := []struct {
		name string
		e    Expr
		want bool
	}{
		{"par ident", p, false},
		{"var ident", v, true},
		{"bin with var operand", &BinaryExpr{X: p, Y: v}, true},
		{"bin all par", &BinaryExpr{X: p, Y: p}, false},
		{"unary over var", &UnaryExpr{X: v}, true},
		{"array access into var array", &ArrayAccess{Array: v, Index: []Expr{p}}, true},
		{"ite with var condition", &IfThenElse{If: v, Then: p, Else: p}, true},
		{"unresolved call arg is var", &Call{Name: "f", Args: []Expr{v}}, true},
		{"unresolved call all par", &Call{Name: "f", Args: []Expr{p}}, false},
	}
	for _, c := range cases {
		if got := IsVarExpr(c.e); got != c.want {
			t.Errorf("%s: IsVarExpr = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestIsVarExprResolvedCallUsesFuncDeclType(t *testing.T) {
	p := ident("p", &VarDeclItem{Ti: &TypeInst{Type: Type{IsVar: false}}})
	fn := &FunctionItem{Name: "f", Ti: &TypeInst{Type: Type{IsVar: true}}}
	call := &Call{Name: "f", Args: []Expr{p}, FuncDecl: fn}
	if !IsVarExpr(call) {
		t.Error("a call resolved to a var-returning function should be var even with par args")
	}
}

func TestIsVarSet(t *testing.T) {
	varSetDecl := &VarDeclItem{Ti: &TypeInst{Type: Type{IsVar: true, Set: StSet}}}
	varIntDecl := &VarDeclItem{Ti: &TypeInst{Type: Type{IsVar: true, Set: StPlain}}}
	parSetDecl := &VarDeclItem{Ti: &TypeInst{Type: Type{IsVar: false, Set: StSet}}}

	if !IsVarSet(ident("s", varSetDecl)) {
		t.Error("var set of int should be recognized")
	}
	if IsVarSet(ident("x", varIntDecl)) {
		t.Error("a plain var int must not be a var set")
	}
	if IsVarSet(ident("s", parSetDecl)) {
		t.Error("a par set must not be a var set")
	}
	if IsVarSet(intLit(3)) {
		t.Error("a non-identifier must not be a var set")
	}
}

func TestIsArrayAccessSimple(t *testing.T) {
	simple := &ArrayAccess{Array: ident("a", nil), Index: []Expr{ident("i", nil)}}
	if !IsArrayAccessSimple(simple) {
		t.Error("want simple access to be simple")
	}
	arith := &ArrayAccess{Array: ident("a", nil), Index: []Expr{&BinaryExpr{Op: BotPlus, X: ident("i", nil), Y: intLit(1)}}}
	if IsArrayAccessSimple(arith) {
		t.Error("want an arithmetic index to not be simple")
	}
}

func TestComprehensionSatisfiesArrayAccess(t *testing.T) {
	arrDecl := &VarDeclItem{Name: "a"}
	comp := &Comprehension{
		Generators: []Generator{{Names: []string{"i", "j"}}},
	}
	good := &ArrayAccess{Array: ident("a", arrDecl), Index: []Expr{ident("i", nil), ident("j", nil)}}
	if !ComprehensionSatisfiesArrayAccess(comp, good) {
		t.Error("want matching generator names, in order, to satisfy the access")
	}

	bad := &ArrayAccess{Array: ident("a", arrDecl), Index: []Expr{ident("j", nil), ident("i", nil)}}
	if ComprehensionSatisfiesArrayAccess(comp, bad) {
		t.Error("want swapped generator order to not satisfy the access")
	}
}

func TestComprehensionCoversWholeArray(t *testing.T) {
	rng := &BinaryExpr{Op: BotDotDot, X: &IntLit{Value: 1}, Y: &IntLit{Value: 3}}
	arrDecl := &VarDeclItem{Name: "a", Ti: &TypeInst{Type: Type{Dim: 1}, Ranges: []Expr{rng}}}
	comp := &Comprehension{
		Generators: []Generator{{Names: []string{"i"}, In: rng}},
	}
	if !ComprehensionCoversWholeArray(comp, arrDecl) {
		t.Error("a single generator ranging over exactly a's declared index range should cover the whole array")
	}

	literalSameValue := &Comprehension{
		Generators: []Generator{{Names: []string{"i"}, In: &BinaryExpr{Op: BotDotDot, X: &IntLit{Value: 1}, Y: &IntLit{Value: 4}}}},
	}
	if ComprehensionCoversWholeArray(literalSameValue, arrDecl) {
		t.Error("a generator over a different range must not cover the array")
	}
}

func TestStructurallyEqualIsSyntacticNotByValue(t *testing.T) {
	nsDecl := &VarDeclItem{Name: "ns", Value: &BinaryExpr{Op: BotDotDot, X: &IntLit{Value: 4}, Y: &IntLit{Value: 5}}}
	nsIdent := ident("ns", nsDecl)
	sameIdent := ident("ns", nsDecl)
	if !StructurallyEqual(nsIdent, sameIdent) {
		t.Error("two identifiers resolving to the same declaration must compare equal")
	}

	literal := &BinaryExpr{Op: BotDotDot, X: &IntLit{Value: 4}, Y: &IntLit{Value: 5}}
	if StructurallyEqual(nsIdent, literal) {
		t.Error("an identifier must not compare equal to the literal it happens to be bound to")
	}
}

func TestLocationBetween(t *testing.T) {
	left := Location{Last: mkpos(1, 5)}
	right := Location{First: mkpos(1, 10)}
	line, start, end, ok := LocationBetween(left, right)
	if !ok || line != 1 || start != 5 || end != 10 {
		t.Fatalf("LocationBetween = (%d,%d,%d,%v), want (1,5,10,true)", line, start, end, ok)
	}

	diffLines := Location{Last: mkpos(1, 5)}
	right2 := Location{First: mkpos(2, 10)}
	if _, _, _, ok := LocationBetween(diffLines, right2); ok {
		t.Error("want ok=false across different lines")
	}
}

func TestSynthAndSprint(t *testing.T) {
	x := ident("x", nil)
	y := ident("y", nil)
	not := NewNot(x)
	if !not.Loc().Introduced {
		t.Error("a synthesized node must be marked Introduced")
	}
	if got, want := Sprint(not), "not x"; got != want {
		t.Errorf("Sprint(NewNot(x)) = %q, want %q", got, want)
	}

	bin := NewBin(BotEq, x, y)
	if got, want := Sprint(bin), "x = y"; got != want {
		t.Errorf("Sprint(NewBin) = %q, want %q", got, want)
	}
}

func TestSprintParenthesizesByPrecedence(t *testing.T) {
	// (a \/ b) /\ c must keep its parens; a /\ b \/ c would change meaning.
	a, b, c := ident("a", nil), ident("b", nil), ident("c", nil)
	or := &BinaryExpr{Op: BotOr, X: a, Y: b}
	and := &BinaryExpr{Op: BotAnd, X: or, Y: c}
	if got, want := Sprint(and), "(a \\/ b) /\\ c"; got != want {
		t.Errorf("Sprint = %q, want %q", got, want)
	}
}

func mkpos(line, col int) token.Position {
	return token.Position{Line: line, Column: col}
}
