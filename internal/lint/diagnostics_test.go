package lint

import (
	"testing"

	"github.com/erikvader/MiniZinc-linter/internal/ast"
	"github.com/erikvader/MiniZinc-linter/internal/token"
)

func pos(file string, line, col int) token.Position {
	return token.Position{Filename: file, Line: line, Column: col}
}

func TestLintResultEqualIgnoresMessage(t *testing.T) {
	fc := FileContents{Filename: "a.mzn", Region: OneLineMarked(1, 1, 5)}
	a := LintResult{RuleID: 1, Message: "first wording", FileContents: fc}
	b := LintResult{RuleID: 1, Message: "a totally different wording", FileContents: fc}
	if !a.Equal(b) {
		t.Error("two results at the same rule+location must be equal regardless of message text")
	}

	c := LintResult{RuleID: 2, Message: "first wording", FileContents: fc}
	if a.Equal(c) {
		t.Error("a different rule id must not be equal even at the same location")
	}
}

func TestSortResultsOrdersByFileThenPositionThenRule(t *testing.T) {
	mk := func(file string, line, col, rule int) LintResult {
		return LintResult{RuleID: rule, FileContents: FileContents{Filename: file, Region: OneLineMarked(line, col, col)}}
	}
	rs := []LintResult{
		mk("b.mzn", 1, 1, 1),
		mk("a.mzn", 2, 1, 1),
		mk("a.mzn", 1, 5, 1),
		mk("a.mzn", 1, 1, 2),
		mk("a.mzn", 1, 1, 1),
	}
	SortResults(rs)
	want := []LintResult{
		mk("a.mzn", 1, 1, 1),
		mk("a.mzn", 1, 1, 2),
		mk("a.mzn", 1, 5, 1),
		mk("a.mzn", 2, 1, 1),
		mk("b.mzn", 1, 1, 1),
	}
	for i := range want {
		if !rs[i].Equal(want[i]) {
			t.Fatalf("rs[%d] = %+v, want %+v", i, rs[i], want[i])
		}
	}
}

func TestLocationToFileContentsCollapsesSingleLine(t *testing.T) {
	loc := ast.Location{
		First: pos("m.mzn", 3, 2),
		Last:  pos("m.mzn", 3, 9),
	}
	fc := LocationToFileContents(loc)
	if fc.Region.Kind != RegionOneLineMarked || fc.Region.Line != 3 || fc.Region.StartCol != 2 || fc.Region.EndCol != 9 {
		t.Errorf("got %+v, want a one-line-marked region at 3:2-9", fc.Region)
	}
}

func TestLocationToFileContentsSpansMultipleLines(t *testing.T) {
	loc := ast.Location{
		First: pos("m.mzn", 3, 2),
		Last:  pos("m.mzn", 5, 1),
	}
	fc := LocationToFileContents(loc)
	if fc.Region.Kind != RegionMultiLine || fc.Region.StartLine != 3 || fc.Region.EndLine != 5 {
		t.Errorf("got %+v, want a multi-line region spanning 3-5", fc.Region)
	}
}

func TestSetRewriteRendersExpr(t *testing.T) {
	var r LintResult
	r.SetRewrite(&ast.Ident{Name: "x"})
	if r.Rewrite == nil || *r.Rewrite != "x" {
		t.Errorf("Rewrite = %v, want \"x\"", r.Rewrite)
	}
}
