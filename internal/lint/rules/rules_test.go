package rules

import (
	"strings"
	"testing"

	"github.com/erikvader/MiniZinc-linter/internal/ast"
	"github.com/erikvader/MiniZinc-linter/internal/lint"
	"github.com/erikvader/MiniZinc-linter/internal/token"
)

func intVarTi() *ast.TypeInst {
	return &ast.TypeInst{Type: ast.Type{Base: ast.BtInt, Set: ast.StPlain, IsVar: true, Present: true}}
}

func at(line int) ast.Location {
	return ast.Location{
		First: token.Position{Filename: "m.mzn", Line: line, Column: 1},
		Last:  token.Position{Filename: "m.mzn", Line: line, Column: 10},
	}
}

func hasRuleAtLine(results []lint.LintResult, ruleID, line int) bool {
	for _, r := range results {
		if r.RuleID == ruleID && r.Region.Kind == lint.RegionOneLineMarked && r.Region.Line == line {
			return true
		}
		if r.RuleID == ruleID && r.Region.Kind == lint.RegionMultiLine && r.Region.StartLine == line {
			return true
		}
	}
	return false
}

func TestUnboundedVariableRespectsRHSAndEqualConstrained(t *testing.T) {
	xDecl := &ast.VarDeclItem{Location: at(1), Name: "x", Ti: intVarTi()}
	yDecl := &ast.VarDeclItem{Location: at(2), Name: "y", Ti: intVarTi(), Value: &ast.IntLit{Value: 3}}
	zDecl := &ast.VarDeclItem{Location: at(3), Name: "z", Ti: intVarTi()}
	zIdent := &ast.Ident{Name: "z", Decl: zDecl}
	zEq := &ast.BinaryExpr{Op: ast.BotEq, X: zIdent, Y: &ast.IntLit{Value: 5}}
	model := &ast.Model{Items: []ast.Item{xDecl, yDecl, zDecl, &ast.ConstraintItem{Expr: zEq}}}

	env := lint.NewEnv(model, nil)
	unboundedVariable(env)
	results := env.Results()

	if !hasRuleAtLine(results, 13, 1) {
		t.Error("x has no domain, no rhs, and no equal-constraint: want it flagged")
	}
	if hasRuleAtLine(results, 13, 2) {
		t.Error("y is assigned a literal rhs directly: must not be flagged")
	}
	if hasRuleAtLine(results, 13, 3) {
		t.Error("z is equal-constrained by a top-level constraint: must not be flagged")
	}
}

func TestConstantVariableScalarParRHS(t *testing.T) {
	xDecl := &ast.VarDeclItem{Location: at(1), Name: "x", Ti: intVarTi(), Value: &ast.IntLit{Value: 7}}
	model := &ast.Model{Items: []ast.Item{xDecl}}

	env := lint.NewEnv(model, nil)
	constantVariable(env)
	if !hasRuleAtLine(env.Results(), 4, 1) {
		t.Error("x is always assigned the par literal 7: want it flagged as constant")
	}
}

func TestConstantVariableScalarVarRHSNotFlagged(t *testing.T) {
	xDecl := &ast.VarDeclItem{Location: at(1), Name: "x", Ti: intVarTi()}
	yDecl := &ast.VarDeclItem{Location: at(2), Name: "y", Ti: intVarTi()}
	xDecl.Value = &ast.Ident{Name: "y", Decl: yDecl}
	model := &ast.Model{Items: []ast.Item{xDecl, yDecl}}

	env := lint.NewEnv(model, nil)
	constantVariable(env)
	if hasRuleAtLine(env.Results(), 4, 1) {
		t.Error("x is assigned another decision variable, not a par value: must not be flagged")
	}
}

func TestConstantVariableArraySkipsWhenAssignedDirectly(t *testing.T) {
	arrDecl := &ast.VarDeclItem{
		Location: at(1), Name: "a",
		Ti:    &ast.TypeInst{Type: ast.Type{Base: ast.BtInt, Dim: 1, IsVar: true, Present: true}},
		Value: &ast.ArrayLit{Elements: []ast.Expr{&ast.IntLit{Value: 1}, &ast.IntLit{Value: 2}}},
	}
	model := &ast.Model{Items: []ast.Item{arrDecl}}

	env := lint.NewEnv(model, nil)
	constantVariable(env)
	if hasRuleAtLine(env.Results(), 4, 1) {
		t.Error("an array with its own direct rhs is skipped by the array check, which only considers arrays pinned by equality constraints: must not be flagged")
	}
}

func TestCompactedIfRewriteUsesMultiplication(t *testing.T) {
	aDecl := &ast.VarDeclItem{Name: "a", Ti: intVarTi()}
	aIdent := &ast.Ident{Name: "a", Decl: aDecl}
	cond := &ast.BinaryExpr{Op: ast.BotEq, X: aIdent, Y: &ast.IntLit{Value: 1}}
	bDecl := &ast.VarDeclItem{Name: "b", Ti: intVarTi()}
	bIdent := &ast.Ident{Name: "b", Decl: bDecl}
	ite := &ast.IfThenElse{Location: at(3), If: cond, Then: bIdent, Else: &ast.IntLit{Value: 0}}
	model := &ast.Model{Items: []ast.Item{aDecl, bDecl, &ast.ConstraintItem{Expr: &ast.BinaryExpr{
		Op: ast.BotEq, X: ite, Y: &ast.IntLit{Value: 0},
	}}}}

	env := lint.NewEnv(model, nil)
	compactedIf(env)
	results := env.Results()
	if !hasRuleAtLine(results, 20, 3) {
		t.Fatal("a one-branch if with a zero arm should be flagged")
	}
	for _, r := range results {
		if r.RuleID == 20 {
			if r.Rewrite == nil || !strings.Contains(*r.Rewrite, "*") {
				t.Errorf("rewrite = %v, want a multiplication", r.Rewrite)
			}
		}
	}
}

func TestCompactedIfSkipsDoubleNonzeroBranches(t *testing.T) {
	aDecl := &ast.VarDeclItem{Name: "a", Ti: intVarTi()}
	aIdent := &ast.Ident{Name: "a", Decl: aDecl}
	cond := &ast.BinaryExpr{Op: ast.BotEq, X: aIdent, Y: &ast.IntLit{Value: 1}}
	ite := &ast.IfThenElse{Location: at(3), If: cond, Then: &ast.IntLit{Value: 5}, Else: &ast.IntLit{Value: 6}}
	model := &ast.Model{Items: []ast.Item{aDecl, &ast.ConstraintItem{Expr: ite}}}

	env := lint.NewEnv(model, nil)
	compactedIf(env)
	if hasRuleAtLine(env.Results(), 20, 3) {
		t.Error("neither branch is zero: must not be flagged")
	}
}

func TestSymmetryBreakingFlagsOnlyRootCall(t *testing.T) {
	xs := &ast.Ident{Name: "xs"}
	rootCall := &ast.Call{Location: at(1), Name: "increasing", Args: []ast.Expr{xs}}
	nestedCall := &ast.Call{Location: at(2), Name: "increasing", Args: []ast.Expr{xs}}
	wrapped := &ast.UnaryExpr{Op: ast.UotNot, X: nestedCall}
	model := &ast.Model{Items: []ast.Item{
		&ast.ConstraintItem{Expr: rootCall},
		&ast.ConstraintItem{Expr: wrapped},
	}}

	env := lint.NewEnv(model, nil)
	symmetryBreaking(env)
	results := env.Results()
	if !hasRuleAtLine(results, 6, 1) {
		t.Error("a constraint whose root is directly a symmetry breaker should be flagged")
	}
	if hasRuleAtLine(results, 6, 2) {
		t.Error("a symmetry breaker nested under `not` is not the constraint's root: must not be flagged")
	}
}

func TestElementPredicateRewrite(t *testing.T) {
	idx := &ast.Ident{Name: "i"}
	arr := &ast.Ident{Name: "a"}
	val := &ast.Ident{Name: "v"}
	call := &ast.Call{Location: at(1), Name: "element", Args: []ast.Expr{idx, arr, val}}
	model := &ast.Model{Items: []ast.Item{&ast.ConstraintItem{Expr: call}}}

	env := lint.NewEnv(model, nil)
	elementPredicate(env)
	results := env.Results()
	if !hasRuleAtLine(results, 15, 1) {
		t.Fatal("a 3-arg element() call should be flagged")
	}
	for _, r := range results {
		if r.RuleID == 15 && (r.Rewrite == nil || !strings.Contains(*r.Rewrite, "=")) {
			t.Errorf("rewrite = %v, want an array-access equality", r.Rewrite)
		}
	}
}

func TestGlobalReifiedGoodVsBad(t *testing.T) {
	xs := &ast.Ident{Name: "xs"}
	call1 := &ast.Call{Location: at(1), Name: "alldifferent", Args: []ast.Expr{xs}}
	call2 := &ast.Call{Location: at(1), Name: "alldifferent", Args: []ast.Expr{xs}}
	or := &ast.BinaryExpr{Op: ast.BotOr, X: call1, Y: call2}
	bad := &ast.Model{Items: []ast.Item{&ast.ConstraintItem{Expr: or}}}

	env := lint.NewEnv(bad, nil)
	globalReified(env)
	if len(env.Results()) != 2 {
		t.Errorf("want both disjuncts flagged under \\/, got %d results", len(env.Results()))
	}

	call3 := &ast.Call{Location: at(1), Name: "alldifferent", Args: []ast.Expr{xs}}
	call4 := &ast.Call{Location: at(1), Name: "alldifferent", Args: []ast.Expr{xs}}
	and := &ast.BinaryExpr{Op: ast.BotAnd, X: call3, Y: call4}
	good := &ast.Model{Items: []ast.Item{&ast.ConstraintItem{Expr: and}}}

	env2 := lint.NewEnv(good, nil)
	globalReified(env2)
	if len(env2.Results()) != 0 {
		t.Errorf("want no findings under /\\, got %d results", len(env2.Results()))
	}
}

func TestNonFuncHintClearsArgsFunctionallyDefinedByCallee(t *testing.T) {
	xParam := &ast.VarDeclItem{Name: "x", Ti: intVarTi()}
	yParam := &ast.VarDeclItem{Name: "y", Ti: intVarTi()}
	xIdent := &ast.Ident{Name: "x", Decl: xParam}
	// pred's body functionally defines x (x = 5) but says nothing about y.
	predBody := &ast.BinaryExpr{Op: ast.BotEq, X: xIdent, Y: &ast.IntLit{Value: 5}}
	pred := &ast.FunctionItem{Name: "pred", Params: []*ast.VarDeclItem{xParam, yParam}, Body: predBody}

	aDecl := &ast.VarDeclItem{Location: at(1), Name: "a", Ti: intVarTi()}
	bDecl := &ast.VarDeclItem{Location: at(2), Name: "b", Ti: intVarTi()}
	aIdent := &ast.Ident{Name: "a", Decl: aDecl}
	bIdent := &ast.Ident{Name: "b", Decl: bDecl}
	call := &ast.Call{Location: at(3), Name: "pred", Args: []ast.Expr{aIdent, bIdent}, FuncDecl: pred}
	model := &ast.Model{Items: []ast.Item{pred, aDecl, bDecl, &ast.ConstraintItem{Expr: call}}}

	env := lint.NewEnv(model, nil)
	nonFuncHint(env)
	results := env.Results()
	if hasRuleAtLine(results, 9, 1) {
		t.Error("a is passed as pred's first argument, which pred's body functionally defines via x = 5: must not be flagged")
	}
	if !hasRuleAtLine(results, 9, 2) {
		t.Error("b is passed as pred's second argument, which pred's body never constrains: should still be flagged")
	}
}

func TestOneBasedArraysMultiDim(t *testing.T) {
	mkRange := func(line, lo, hi int) ast.Expr {
		return &ast.BinaryExpr{
			Location: at(line), Op: ast.BotDotDot,
			X: &ast.IntLit{Value: int64(lo)}, Y: &ast.IntLit{Value: int64(hi)},
		}
	}
	arrDecl := &ast.VarDeclItem{
		Name: "xs",
		Ti: &ast.TypeInst{
			Type:   ast.Type{Base: ast.BtInt, Dim: 3, IsVar: true, Present: true},
			Ranges: []ast.Expr{mkRange(1, 2, 5), mkRange(2, 1, 1), mkRange(3, 2, 7)},
		},
	}
	model := &ast.Model{Items: []ast.Item{arrDecl}}

	env := lint.NewEnv(model, nil)
	oneBasedArrays(env)
	results := env.Results()
	if !hasRuleAtLine(results, 19, 1) || !hasRuleAtLine(results, 19, 3) {
		t.Error("the two ranges not starting at 1 should both be flagged")
	}
	if hasRuleAtLine(results, 19, 2) {
		t.Error("the range 1..1 already starts at 1 and must not be flagged")
	}
}
