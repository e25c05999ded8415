package lint

import (
	"testing"

	"github.com/erikvader/MiniZinc-linter/internal/ast"
)

func varType(isVar bool) *ast.TypeInst { return &ast.TypeInst{Type: ast.Type{Base: ast.BtInt, IsVar: isVar}} }

func TestEnvEqualConstrainedTopLevel(t *testing.T) {
	xDecl := &ast.VarDeclItem{Name: "x", Ti: varType(true)}
	xIdent := &ast.Ident{Name: "x", Decl: xDecl}
	three := &ast.IntLit{Value: 3}
	eq := &ast.BinaryExpr{Op: ast.BotEq, X: xIdent, Y: three}
	model := &ast.Model{Items: []ast.Item{xDecl, &ast.ConstraintItem{Expr: eq}}}

	env := NewEnv(model, nil)
	rhs, ok := env.GetEqualConstrainedRHS(xDecl)
	if !ok {
		t.Fatal("want x to be recognized as equal-constrained to the literal 3")
	}
	if lit, ok := rhs.(*ast.IntLit); !ok || lit.Value != 3 {
		t.Errorf("rhs = %v, want the literal 3", rhs)
	}
}

func TestEnvEqualConstrainedInsideConjunction(t *testing.T) {
	xDecl := &ast.VarDeclItem{Name: "x", Ti: varType(true)}
	xIdent := &ast.Ident{Name: "x", Decl: xDecl}
	three := &ast.IntLit{Value: 3}
	eq := &ast.BinaryExpr{Op: ast.BotEq, X: xIdent, Y: three}
	other := &ast.BoolLit{Value: true}
	and := &ast.BinaryExpr{Op: ast.BotAnd, X: other, Y: eq}
	model := &ast.Model{Items: []ast.Item{xDecl, &ast.ConstraintItem{Expr: and}}}

	env := NewEnv(model, nil)
	if _, ok := env.GetEqualConstrainedRHS(xDecl); !ok {
		t.Error("an equality nested one level inside a /\\ conjunction must still count")
	}
}

func TestEnvEqualConstrainedNotInsideDisjunction(t *testing.T) {
	xDecl := &ast.VarDeclItem{Name: "x", Ti: varType(true)}
	xIdent := &ast.Ident{Name: "x", Decl: xDecl}
	three := &ast.IntLit{Value: 3}
	eq := &ast.BinaryExpr{Op: ast.BotEq, X: xIdent, Y: three}
	other := &ast.BoolLit{Value: true}
	or := &ast.BinaryExpr{Op: ast.BotOr, X: other, Y: eq}
	model := &ast.Model{Items: []ast.Item{xDecl, &ast.ConstraintItem{Expr: or}}}

	env := NewEnv(model, nil)
	if _, ok := env.GetEqualConstrainedRHS(xDecl); ok {
		t.Error("an equality nested inside a \\/ must not count as equal-constrained")
	}
}

func TestEnvEqualConstrainedRejectsRHSDependingOnInstance(t *testing.T) {
	xDecl := &ast.VarDeclItem{Name: "x", Ti: varType(true)}
	yDecl := &ast.VarDeclItem{Name: "y", Ti: varType(true)} // also a decision variable
	xIdent := &ast.Ident{Name: "x", Decl: xDecl}
	yIdent := &ast.Ident{Name: "y", Decl: yDecl}
	eq := &ast.BinaryExpr{Op: ast.BotEq, X: xIdent, Y: yIdent}
	model := &ast.Model{Items: []ast.Item{xDecl, yDecl, &ast.ConstraintItem{Expr: eq}}}

	env := NewEnv(model, nil)
	if _, ok := env.GetEqualConstrainedRHS(xDecl); ok {
		t.Error("x = y, with y itself a decision variable, must not count as constant-equal-constrained")
	}
}

func TestEnvUserDefinedVariableDeclarations(t *testing.T) {
	a := &ast.VarDeclItem{Name: "a"}
	b := &ast.VarDeclItem{Name: "b"}
	model := &ast.Model{Items: []ast.Item{a, &ast.ConstraintItem{Expr: &ast.BoolLit{Value: true}}, b}}

	env := NewEnv(model, nil)
	got := env.UserDefinedVariableDeclarations()
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("got %v, want [a b] in source order", got)
	}
}

func TestEnvSearchHintedVariables(t *testing.T) {
	xDecl := &ast.VarDeclItem{Name: "x"}
	xIdent := &ast.Ident{Name: "x", Decl: xDecl}
	solve := &ast.SolveItem{
		Kind: ast.SolveSatisfy,
		Annotations: []*ast.Annotation{
			{Name: "int_search", Args: []ast.Expr{&ast.ArrayLit{Elements: []ast.Expr{xIdent}}}},
		},
	}
	model := &ast.Model{Items: []ast.Item{xDecl, solve}}

	env := NewEnv(model, nil)
	if !env.IsSearchHinted(xDecl) {
		t.Error("x appears inside a solve annotation's search argument and should be hinted")
	}
	yDecl := &ast.VarDeclItem{Name: "y"}
	if env.IsSearchHinted(yDecl) {
		t.Error("y never appears in any annotation and must not be hinted")
	}
}

// buildArrayWitnessModel builds `array a[rng] of var int: a; constraint
// forall(i in genIn)(a[i] = 5);` and returns the model and a's declaration,
// so tests can vary rng vs genIn to probe the structural-equality check.
func buildArrayWitnessModel(rng, genIn ast.Expr) (*ast.Model, *ast.VarDeclItem) {
	arrDecl := &ast.VarDeclItem{
		Name: "a",
		Ti: &ast.TypeInst{
			Type:   ast.Type{Base: ast.BtInt, Dim: 1, IsVar: true, Present: true},
			Ranges: []ast.Expr{rng},
		},
	}
	arrIdent := &ast.Ident{Name: "a", Decl: arrDecl}
	iIdent := &ast.Ident{Name: "i"}
	access := &ast.ArrayAccess{Array: arrIdent, Index: []ast.Expr{iIdent}}
	eq := &ast.BinaryExpr{Op: ast.BotEq, X: access, Y: &ast.IntLit{Value: 5}}
	comp := &ast.Comprehension{
		Body:       eq,
		Generators: []ast.Generator{{Names: []string{"i"}, In: genIn}},
	}
	forall := &ast.Call{Name: "forall", Args: []ast.Expr{comp}}
	model := &ast.Model{Items: []ast.Item{arrDecl, &ast.ConstraintItem{Expr: forall}}}
	return model, arrDecl
}

func TestEnvIsEveryIndexTouched(t *testing.T) {
	rng := &ast.BinaryExpr{Op: ast.BotDotDot, X: &ast.IntLit{Value: 1}, Y: &ast.IntLit{Value: 3}}
	model, arrDecl := buildArrayWitnessModel(rng, rng)

	env := NewEnv(model, nil)
	if !env.IsEveryIndexTouched(arrDecl) {
		t.Error("a witness whose generator ranges over exactly a's declared index range should count as touching every index")
	}

	otherDecl := &ast.VarDeclItem{Name: "b", Ti: &ast.TypeInst{Type: ast.Type{Dim: 1}}}
	if env.IsEveryIndexTouched(otherDecl) {
		t.Error("an array with no witness at all must not be reported as touched")
	}
}

func TestEnvIsEveryIndexTouchedRequiresStructuralMatch(t *testing.T) {
	nsDecl := &ast.VarDeclItem{Name: "ns", Value: &ast.BinaryExpr{Op: ast.BotDotDot, X: &ast.IntLit{Value: 4}, Y: &ast.IntLit{Value: 5}}}
	nsIdent := &ast.Ident{Name: "ns", Decl: nsDecl}
	literalRange := &ast.BinaryExpr{Op: ast.BotDotDot, X: &ast.IntLit{Value: 4}, Y: &ast.IntLit{Value: 5}}

	// Array declared over the identifier ns; generator also ranges over ns: structurally equal.
	modelSame, declSame := buildArrayWitnessModel(nsIdent, nsIdent)
	envSame := NewEnv(modelSame, nil)
	if !envSame.IsEveryIndexTouched(declSame) {
		t.Error("generator ranging over the same identifier ns as the array's declared domain should match")
	}

	// Array declared over ns; generator ranges over the literal 4..5 instead: same value, different
	// expression shape, must NOT match (this is the whole point of structural, not value, equality).
	modelDiff, declDiff := buildArrayWitnessModel(nsIdent, literalRange)
	envDiff := NewEnv(modelDiff, nil)
	if envDiff.IsEveryIndexTouched(declDiff) {
		t.Error("generator ranging over the literal 4..5 must not match an array declared over the identifier ns, even though ns == 4..5")
	}
}
