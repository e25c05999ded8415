package frontend

import (
	"github.com/erikvader/MiniZinc-linter/internal/ast"
	"github.com/erikvader/MiniZinc-linter/internal/errs"
)

// resolver links every Ident to the declaration it names and every Call
// to the user-defined function it invokes (builtins are left unlinked —
// FuncDecl stays nil), using a simple stack of lexical scopes: the model's
// top-level declarations, then one pushed scope per let, comprehension,
// or function body.
type resolver struct {
	global map[string]ast.Decl
	scopes []map[string]ast.Decl
	errs   errs.List
}

// resolve annotates m's Idents and Calls in place.
func resolve(m *ast.Model, errList errs.List) {
	r := &resolver{global: map[string]ast.Decl{}}
	for _, it := range m.Items {
		switch x := it.(type) {
		case *ast.VarDeclItem:
			r.global[x.Name] = x
		case *ast.FunctionItem:
			r.global[x.Name] = x
		}
	}
	for _, it := range m.Items {
		r.resolveItem(it)
	}
	_ = errList
}

func (r *resolver) lookup(name string) ast.Decl {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if d, ok := r.scopes[i][name]; ok {
			return d
		}
	}
	return r.global[name]
}

func (r *resolver) push() { r.scopes = append(r.scopes, map[string]ast.Decl{}) }
func (r *resolver) pop()  { r.scopes = r.scopes[:len(r.scopes)-1] }
func (r *resolver) bind(name string, d ast.Decl) {
	r.scopes[len(r.scopes)-1][name] = d
}

func (r *resolver) resolveItem(it ast.Item) {
	switch x := it.(type) {
	case *ast.VarDeclItem:
		r.resolveTypeInst(x.Ti)
		r.resolveExpr(x.Value)
		r.resolveAnnotations(x.Annotations)
	case *ast.AssignItem:
		x.Decl, _ = r.lookup(x.Name).(*ast.VarDeclItem)
		r.resolveExpr(x.Value)
	case *ast.ConstraintItem:
		r.resolveExpr(x.Expr)
	case *ast.OutputItem:
		r.resolveExpr(x.Value)
	case *ast.SolveItem:
		r.resolveExpr(x.Objective)
		r.resolveAnnotations(x.Annotations)
	case *ast.FunctionItem:
		r.push()
		for _, p := range x.Params {
			r.resolveTypeInst(p.Ti)
			r.bind(p.Name, p)
		}
		r.resolveTypeInst(x.Ti)
		r.resolveExpr(x.Body)
		r.resolveAnnotations(x.Annotations)
		r.pop()
	case *ast.IncludeItem:
		// nothing to resolve locally; Model, if set, is resolved on its own.
	}
}

func (r *resolver) resolveAnnotations(anns []*ast.Annotation) {
	for _, a := range anns {
		for _, arg := range a.Args {
			r.resolveExpr(arg)
		}
	}
}

func (r *resolver) resolveTypeInst(ti *ast.TypeInst) {
	if ti == nil {
		return
	}
	r.resolveExpr(ti.Domain)
	for _, rg := range ti.Ranges {
		r.resolveExpr(rg)
	}
}

func (r *resolver) resolveExpr(e ast.Expr) {
	switch x := e.(type) {
	case nil:
		return
	case *ast.Ident:
		x.Decl = r.lookup(x.Name)
	case *ast.Call:
		if fn, ok := r.global[x.Name].(*ast.FunctionItem); ok {
			x.FuncDecl = fn
		}
		for _, a := range x.Args {
			r.resolveExpr(a)
		}
	case *ast.Comprehension:
		r.push()
		for i := range x.Generators {
			r.resolveExpr(x.Generators[i].In)
			x.Generators[i].Decls = nil
			for _, name := range x.Generators[i].Names {
				d := &ast.VarDeclItem{Name: name}
				x.Generators[i].Decls = append(x.Generators[i].Decls, d)
				r.bind(name, d)
			}
		}
		r.resolveExpr(x.Where)
		r.resolveExpr(x.Body)
		r.pop()
	case *ast.Let:
		r.push()
		for _, d := range x.Decls {
			if d.VarDecl != nil {
				r.resolveTypeInst(d.VarDecl.Ti)
				r.resolveExpr(d.VarDecl.Value)
				r.bind(d.VarDecl.Name, d.VarDecl)
			} else {
				r.resolveExpr(d.Constr)
			}
		}
		r.resolveExpr(x.Body)
		r.pop()
	case *ast.VarDeclExpr:
		r.resolveTypeInst(x.Decl.Ti)
		r.resolveExpr(x.Decl.Value)
	default:
		for _, c := range ast.Children(e) {
			r.resolveExpr(c)
		}
	}
}
