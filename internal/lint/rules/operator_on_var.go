package rules

import (
	"fmt"

	"github.com/erikvader/MiniZinc-linter/internal/ast"
	"github.com/erikvader/MiniZinc-linter/internal/lint"
)

// discouragedVarBinOps are the binary operators that are either expensive
// or outright suspicious to reify over decision variables. MiniZinc's
// `**` has no BinOp of its own in this AST, so unlike the original it
// can't be checked here; div/mod/idiv/xor/or/impl/rimpl/equiv cover the
// rest of the original's list.
var discouragedVarBinOps = map[ast.BinOp]string{
	ast.BotDiv:   "/",
	ast.BotIDiv:  "div",
	ast.BotMod:   "mod",
	ast.BotXor:   "xor",
	ast.BotOr:    "\\/",
	ast.BotImpl:  "->",
	ast.BotRImpl: "<-",
	ast.BotEquiv: "<->",
}

// operatorOnVar flags binary and unary operators applied to var operands
// when doing so is usually a performance trap (reified division/modulo,
// reified logical connectives) rather than what the modeller intended.
// Grounded on original_source/src/linter/rules/operators-on-var.cpp's
// find_binop/find_unop pair.
func operatorOnVar(env *lint.Env) {
	findBinOp(env)
	findUnOp(env)
}

func findBinOp(env *lint.Env) {
	s := env.UserdefOnlyBuilder().InEverywhere().Under(ast.KindBinaryExpr).Capture().Build()
	ms := s.SearchModel(env.Model())
	for ms.Next() {
		bin := ms.Capture(0).(*ast.BinaryExpr)
		sym, watched := discouragedVarBinOps[bin.Op]
		if !watched {
			continue
		}
		if !ast.IsVarExpr(bin.X) && !ast.IsVarExpr(bin.Y) {
			continue
		}
		fc := lint.LocationToFileContents(bin.Location)
		if line, startCol, endCol, ok := ast.LocationBetween(bin.X.Loc(), bin.Y.Loc()); ok {
			fc = lint.FileContents{Filename: bin.Location.First.Filename, Region: lint.OneLineMarked(line, startCol, endCol)}
		}
		env.Report(lint.LintResult{
			RuleID:       18,
			Message:      fmt.Sprintf("avoid using %q on var-expressions", sym),
			FileContents: fc,
		})
	}
}

func findUnOp(env *lint.Env) {
	s := env.UserdefOnlyBuilder().InEverywhere().UnderUnOp(ast.UotNot).Capture().Build()
	ms := s.SearchModel(env.Model())
	for ms.Next() {
		un := ms.Capture(0).(*ast.UnaryExpr)
		if !ast.IsVarExpr(un.X) {
			continue
		}
		env.Report(lint.LintResult{
			RuleID:       18,
			Message:      "avoid using not on var-expressions",
			FileContents: lint.FileContents{
				Filename: un.Location.First.Filename,
				Region:   lint.OneLineMarked(un.Location.First.Line, un.Location.First.Column, un.X.Loc().First.Column),
			},
		})
	}
}
