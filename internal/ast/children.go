package ast

// Children enumerates the direct expression children of n in evaluation
// order. It is the single place that knows the shape of every node kind;
// the search engine's traversal (internal/search) is built entirely on
// top of this function and never type-switches on a node itself.
//
// Modelled on cue/ast.Walk's big type switch, but returning a slice
// instead of driving a visitor callback, since ExprSearcher needs to push
// children onto its own explicit stack rather than recurse.
func Children(n Expr) []Expr {
	switch x := n.(type) {
	case *BadExpr, *Ident, *IntLit, *FloatLit, *BoolLit, *StringLit:
		return nil

	case *SetLit:
		if x.IsRange {
			return nonNil(x.Lo, x.Hi)
		}
		return x.Elements

	case *ArrayLit:
		return x.Elements

	case *ArrayAccess:
		out := make([]Expr, 0, 1+len(x.Index))
		out = append(out, x.Array)
		out = append(out, x.Index...)
		return out

	case *BinaryExpr:
		return nonNil(x.X, x.Y)

	case *UnaryExpr:
		return nonNil(x.X)

	case *Call:
		return x.Args

	case *Comprehension:
		out := make([]Expr, 0, len(x.Generators)+2)
		for _, g := range x.Generators {
			out = append(out, g.In)
		}
		if x.Where != nil {
			out = append(out, x.Where)
		}
		out = append(out, x.Body)
		return out

	case *IfThenElse:
		return nonNil(x.If, x.Then, x.Else)

	case *Let:
		out := make([]Expr, 0, len(x.Decls)+1)
		for _, d := range x.Decls {
			if d.VarDecl != nil {
				out = append(out, &VarDeclExpr{Location: d.VarDecl.Location, Decl: d.VarDecl})
			} else {
				out = append(out, d.Constr)
			}
		}
		out = append(out, x.Body)
		return out

	case *VarDeclExpr:
		return vardeclChildren(x.Decl)

	case *TypeInst:
		out := append([]Expr{}, x.Ranges...)
		if x.Domain != nil {
			out = append(out, x.Domain)
		}
		return out

	case *Annotation:
		return x.Args

	default:
		return nil
	}
}

func vardeclChildren(v *VarDeclItem) []Expr {
	out := make([]Expr, 0, 2)
	if v.Ti != nil {
		out = append(out, v.Ti)
	}
	if v.Value != nil {
		out = append(out, v.Value)
	}
	return out
}

func nonNil(es ...Expr) []Expr {
	out := make([]Expr, 0, len(es))
	for _, e := range es {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}

// ItemExpr returns the single expression an item contributes as a search
// starting point, and false if the item has none (e.g. an include).
func ItemExpr(it Item) (Expr, bool) {
	switch x := it.(type) {
	case *ConstraintItem:
		return x.Expr, true
	case *AssignItem:
		return x.Value, true
	case *OutputItem:
		return x.Value, true
	case *VarDeclItem:
		return &VarDeclExpr{Location: x.Location, Decl: x}, true
	case *FunctionItem:
		if x.Body == nil {
			return nil, false
		}
		return x.Body, true
	case *SolveItem:
		if x.Objective == nil {
			return nil, false
		}
		return x.Objective, true
	default:
		return nil, false
	}
}
