package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Sprint renders e as MiniZinc source text. It is used only to serialize
// the rewrite expressions rules synthesize (internal/lint's LintResult.Rewrite),
// so it does not need to round-trip comments or preserve original
// formatting the way a full pretty-printer would — every Expr it sees was
// built fresh by a rule, not read from a file.
func Sprint(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e, 0)
	return b.String()
}

// precedence mirrors MiniZinc's operator precedence closely enough to
// decide when writeExpr must parenthesize a BinaryExpr/UnaryExpr operand.
func precedence(op BinOp) int {
	switch op {
	case BotEquiv:
		return 1
	case BotImpl, BotRImpl:
		return 2
	case BotOr, BotXor:
		return 3
	case BotAnd:
		return 4
	case BotEq, BotNq, BotLe, BotLq, BotGr, BotGq, BotIn, BotSubset, BotSuperset:
		return 5
	case BotDotDot:
		return 6
	case BotPlus, BotMinus, BotUnion, BotDiff, BotSymDiff:
		return 7
	case BotMult, BotDiv, BotIDiv, BotMod, BotIntersect:
		return 8
	case BotPlusPlus:
		return 9
	default:
		return 0
	}
}

func binOpSym(op BinOp) string {
	switch op {
	case BotAnd:
		return "/\\"
	case BotOr:
		return "\\/"
	case BotImpl:
		return "->"
	case BotRImpl:
		return "<-"
	case BotEquiv:
		return "<->"
	case BotEq:
		return "="
	case BotNq:
		return "!="
	case BotLe:
		return "<"
	case BotLq:
		return "<="
	case BotGr:
		return ">"
	case BotGq:
		return ">="
	case BotPlus:
		return "+"
	case BotMinus:
		return "-"
	case BotMult:
		return "*"
	case BotDiv:
		return "/"
	case BotIDiv:
		return "div"
	case BotMod:
		return "mod"
	case BotUnion:
		return "union"
	case BotDiff:
		return "diff"
	case BotSymDiff:
		return "symdiff"
	case BotIntersect:
		return "intersect"
	case BotDotDot:
		return ".."
	case BotPlusPlus:
		return "++"
	case BotIn:
		return "in"
	case BotSubset:
		return "subset"
	case BotSuperset:
		return "superset"
	case BotXor:
		return "xor"
	default:
		return "?"
	}
}

func unOpSym(op UnOp) string {
	switch op {
	case UotNot:
		return "not "
	case UotPlus:
		return "+"
	case UotMinus:
		return "-"
	default:
		return "?"
	}
}

func writeExpr(b *strings.Builder, e Expr, parentPrec int) {
	switch x := e.(type) {
	case nil:
		return
	case *BadExpr:
		b.WriteString("<bad>")
	case *Ident:
		b.WriteString(x.Name)
	case *IntLit:
		b.WriteString(strconv.FormatInt(x.Value, 10))
	case *FloatLit:
		b.WriteString(strconv.FormatFloat(x.Value, 'g', -1, 64))
	case *BoolLit:
		if x.Value {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case *StringLit:
		fmt.Fprintf(b, "%q", x.Value)
	case *SetLit:
		if x.IsRange {
			writeExpr(b, x.Lo, 6)
			b.WriteString("..")
			writeExpr(b, x.Hi, 6)
			return
		}
		b.WriteString("{")
		writeList(b, x.Elements)
		b.WriteString("}")
	case *ArrayLit:
		b.WriteString("[")
		writeList(b, x.Elements)
		b.WriteString("]")
	case *ArrayAccess:
		writeExpr(b, x.Array, 100)
		b.WriteString("[")
		writeList(b, x.Index)
		b.WriteString("]")
	case *BinaryExpr:
		prec := precedence(x.Op)
		needParen := prec < parentPrec
		if needParen {
			b.WriteString("(")
		}
		writeExpr(b, x.X, prec)
		b.WriteString(" ")
		b.WriteString(binOpSym(x.Op))
		b.WriteString(" ")
		writeExpr(b, x.Y, prec+1)
		if needParen {
			b.WriteString(")")
		}
	case *UnaryExpr:
		b.WriteString(unOpSym(x.Op))
		writeExpr(b, x.X, 10)
	case *Call:
		b.WriteString(x.Name)
		b.WriteString("(")
		writeList(b, x.Args)
		b.WriteString(")")
	case *Comprehension:
		if x.IsSet {
			b.WriteString("{")
		} else {
			b.WriteString("[")
		}
		writeExpr(b, x.Body, 0)
		b.WriteString(" | ")
		for i, g := range x.Generators {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strings.Join(g.Names, ", "))
			b.WriteString(" in ")
			writeExpr(b, g.In, 0)
		}
		if x.Where != nil {
			b.WriteString(" where ")
			writeExpr(b, x.Where, 0)
		}
		if x.IsSet {
			b.WriteString("}")
		} else {
			b.WriteString("]")
		}
	case *IfThenElse:
		b.WriteString("if ")
		writeExpr(b, x.If, 0)
		b.WriteString(" then ")
		writeExpr(b, x.Then, 0)
		if x.Else != nil {
			b.WriteString(" else ")
			writeExpr(b, x.Else, 0)
		}
		b.WriteString(" endif")
	case *Let:
		b.WriteString("let { ")
		for i, d := range x.Decls {
			if i > 0 {
				b.WriteString("; ")
			}
			if d.VarDecl != nil {
				writeVarDecl(b, d.VarDecl)
			} else {
				b.WriteString("constraint ")
				writeExpr(b, d.Constr, 0)
			}
		}
		b.WriteString(" } in ")
		writeExpr(b, x.Body, 0)
	case *VarDeclExpr:
		writeVarDecl(b, x.Decl)
	case *TypeInst:
		writeType(b, x)
	case *Annotation:
		b.WriteString("::")
		b.WriteString(x.Name)
		if len(x.Args) > 0 {
			b.WriteString("(")
			writeList(b, x.Args)
			b.WriteString(")")
		}
	default:
		b.WriteString("<?>")
	}
}

func writeVarDecl(b *strings.Builder, v *VarDeclItem) {
	if v.Ti != nil {
		writeType(b, v.Ti)
	}
	b.WriteString(": ")
	b.WriteString(v.Name)
	if v.Value != nil {
		b.WriteString(" = ")
		writeExpr(b, v.Value, 0)
	}
}

func writeType(b *strings.Builder, ti *TypeInst) {
	if ti.Type.IsVar {
		b.WriteString("var ")
	}
	if ti.Domain != nil {
		writeExpr(b, ti.Domain, 6)
		return
	}
	switch ti.Type.Base {
	case BtBool:
		b.WriteString("bool")
	case BtInt:
		b.WriteString("int")
	case BtFloat:
		b.WriteString("float")
	case BtString:
		b.WriteString("string")
	case BtAnn:
		b.WriteString("ann")
	default:
		b.WriteString("<?>")
	}
}

func writeList(b *strings.Builder, es []Expr) {
	for i, e := range es {
		if i > 0 {
			b.WriteString(", ")
		}
		writeExpr(b, e, 0)
	}
}
