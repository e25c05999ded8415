package lint

import (
	"testing"

	"github.com/erikvader/MiniZinc-linter/internal/ast"
)

func and(x, y ast.Expr) *ast.BinaryExpr { return &ast.BinaryExpr{Op: ast.BotAnd, X: x, Y: y} }

func TestReversed(t *testing.T) {
	a, b, c := &ast.Ident{Name: "a"}, &ast.Ident{Name: "b"}, &ast.Ident{Name: "c"}
	got := Reversed([]ast.Expr{a, b, c})
	want := []ast.Expr{c, b, a}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Reversed = %v, want %v", got, want)
		}
	}
}

func TestIsNotReifiedAllConjunctions(t *testing.T) {
	path := []ast.Expr{and(nil, nil), and(nil, nil)}
	if !IsNotReified(path) {
		t.Error("a chain of pure /\\ ancestors must be considered not-reified")
	}
}

func TestIsNotReifiedRejectsNonAndAncestor(t *testing.T) {
	ite := &ast.IfThenElse{}
	path := []ast.Expr{ite, and(nil, nil)}
	if IsNotReified(path) {
		t.Error("an if-then-else ancestor must disqualify not-reified")
	}
}

func TestIsNotReifiedRejectsOrAncestor(t *testing.T) {
	or := &ast.BinaryExpr{Op: ast.BotOr}
	if IsNotReified([]ast.Expr{or}) {
		t.Error("\\/ is a reifying context, not a conjunctive one")
	}
}

func TestIsConjunctiveAcceptsLet(t *testing.T) {
	path := []ast.Expr{and(nil, nil), &ast.Let{}}
	if !IsConjunctive(path) {
		t.Error("a let ancestor must be acceptable to IsConjunctive")
	}
}

func TestIsConjunctiveAcceptsForallOverComprehension(t *testing.T) {
	comp := &ast.Comprehension{}
	forall := &ast.Call{Name: "forall"}
	path := []ast.Expr{comp, forall}
	if !IsConjunctive(path) {
		t.Error("a comprehension immediately wrapped in forall(...) must be acceptable")
	}
}

func TestIsConjunctiveRejectsComprehensionWithoutForall(t *testing.T) {
	comp := &ast.Comprehension{}
	notForall := &ast.Call{Name: "exists"}
	path := []ast.Expr{comp, notForall}
	if IsConjunctive(path) {
		t.Error("a comprehension wrapped in something other than forall must be rejected")
	}
}

func TestIsConjunctiveRejectsComprehensionAtRoot(t *testing.T) {
	comp := &ast.Comprehension{}
	if IsConjunctive([]ast.Expr{comp}) {
		t.Error("a comprehension with nothing wrapping it cannot be conjunctive")
	}
}

func TestIsConjunctiveRejectsArbitraryCall(t *testing.T) {
	call := &ast.Call{Name: "element"}
	if IsConjunctive([]ast.Expr{call}) {
		t.Error("an arbitrary call ancestor must disqualify IsConjunctive")
	}
}
