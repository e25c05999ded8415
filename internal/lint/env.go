package lint

import (
	"github.com/erikvader/MiniZinc-linter/internal/ast"
	"github.com/erikvader/MiniZinc-linter/internal/search"
)

// Env is the shared context every rule's AnalyzeFunc receives: the model
// being linted, the standard-library include path used to tell
// user-defined code apart from stdlib, the accumulated diagnostics, and a
// handful of semantic indices computed at most once and cached for the
// lifetime of the run. Grounded on the per-rule private Search objects in
// original_source/src/linter/rules/*.cpp, centralized here exactly as
// spec's component design for LintEnv asks for.
type Env struct {
	model       *ast.Model
	includePath []string

	results []LintResult

	equalConstrained      map[*ast.VarDeclItem]ast.Expr
	arrayEqualConstrained map[*ast.VarDeclItem]ast.Expr
	arrayWitnesses        map[*ast.VarDeclItem][]arrayWitness
	userDefinedFunctions  []*ast.FunctionItem
	userDefinedVarDecls   []*ast.VarDeclItem
	searchHintedVariables map[*ast.VarDeclItem]bool
	comprehensions        []*ast.Comprehension
	constraints           []*ast.ConstraintItem
}

// NewEnv builds a fresh Env over model. includePath lists the directory
// prefixes that hold standard-library files; it may be nil if the
// frontend could not resolve any of them.
func NewEnv(model *ast.Model, includePath []string) *Env {
	return &Env{model: model, includePath: includePath}
}

func (e *Env) Model() *ast.Model      { return e.model }
func (e *Env) IncludePath() []string  { return e.includePath }

// Report records a finding. Rules call this rather than returning a
// slice, so a rule can report zero, one, or many findings without special
// casing.
func (e *Env) Report(r LintResult) { e.results = append(e.results, r) }

// Results returns every finding reported so far, sorted for deterministic
// output.
func (e *Env) Results() []LintResult {
	out := append([]LintResult{}, e.results...)
	SortResults(out)
	return out
}

// UserdefOnlyBuilder returns a fresh search.Builder already configured to
// skip standard-library includes and to recurse into the rest of the
// user's own program, the combination every cataloged rule that isn't
// purely local to one file starts from.
func (e *Env) UserdefOnlyBuilder() *search.Builder {
	return search.NewBuilder().OnlyUserDefined(e.includePath).Recursive(true)
}

// walkUserModels visits m and, recursively, every included model that is
// not under e.includePath, calling visit once per model in the tree.
func (e *Env) walkUserModels(m *ast.Model, visited map[*ast.Model]bool, visit func(*ast.Model)) {
	if m == nil || visited[m] {
		return
	}
	visited[m] = true
	visit(m)
	for _, it := range m.Items {
		inc, ok := it.(*ast.IncludeItem)
		if !ok || inc.Model == nil {
			continue
		}
		if isStdlibPath(inc.Path, e.includePath) {
			continue
		}
		e.walkUserModels(inc.Model, visited, visit)
	}
}

func isStdlibPath(path string, includePath []string) bool {
	for _, prefix := range includePath {
		if len(path) >= len(prefix) && path[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}

// UserDefinedFunctions returns every function declared anywhere in the
// user's own program (the main model plus any non-stdlib includes),
// computed once and cached.
func (e *Env) UserDefinedFunctions() []*ast.FunctionItem {
	if e.userDefinedFunctions != nil {
		return e.userDefinedFunctions
	}
	var out []*ast.FunctionItem
	e.walkUserModels(e.model, map[*ast.Model]bool{}, func(m *ast.Model) {
		for _, it := range m.Items {
			if f, ok := it.(*ast.FunctionItem); ok {
				out = append(out, f)
			}
		}
	})
	e.userDefinedFunctions = out
	return out
}

// UserDefinedVariableDeclarations returns every top-level variable
// declaration in the user's own program.
func (e *Env) UserDefinedVariableDeclarations() []*ast.VarDeclItem {
	if e.userDefinedVarDecls != nil {
		return e.userDefinedVarDecls
	}
	var out []*ast.VarDeclItem
	e.walkUserModels(e.model, map[*ast.Model]bool{}, func(m *ast.Model) {
		for _, it := range m.Items {
			if v, ok := it.(*ast.VarDeclItem); ok {
				out = append(out, v)
			}
		}
	})
	e.userDefinedVarDecls = out
	return out
}

// Constraints returns every top-level constraint item in the user's own
// program. Grounded directly on global-constraint-reified.cpp's
// `env.constraints()` use.
func (e *Env) Constraints() []*ast.ConstraintItem {
	if e.constraints != nil {
		return e.constraints
	}
	var out []*ast.ConstraintItem
	e.walkUserModels(e.model, map[*ast.Model]bool{}, func(m *ast.Model) {
		for _, it := range m.Items {
			if c, ok := it.(*ast.ConstraintItem); ok {
				out = append(out, c)
			}
		}
	})
	e.constraints = out
	return out
}

// Comprehensions returns every comprehension expression anywhere in the
// user's own program.
func (e *Env) Comprehensions() []*ast.Comprehension {
	if e.comprehensions != nil {
		return e.comprehensions
	}
	var out []*ast.Comprehension
	s := e.UserdefOnlyBuilder().InEverywhere().Under(ast.KindComprehension).Capture().Build()
	ms := s.SearchModel(e.model)
	for ms.Next() {
		out = append(out, ms.Capture(0).(*ast.Comprehension))
	}
	e.comprehensions = out
	return out
}

// SearchHintedVariables returns the set of variable declarations that
// appear as search arguments inside a solve item's annotations (e.g.
// `solve :: int_search(xs, ...) satisfy`), used by non-func-hint to avoid
// flagging variables the modeller has already hand-guided.
func (e *Env) SearchHintedVariables() map[*ast.VarDeclItem]bool {
	if e.searchHintedVariables != nil {
		return e.searchHintedVariables
	}
	out := map[*ast.VarDeclItem]bool{}
	for _, it := range e.model.Items {
		solve, ok := it.(*ast.SolveItem)
		if !ok {
			continue
		}
		for _, ann := range solve.Annotations {
			for _, arg := range ann.Args {
				collectIdentDecls(arg, out)
			}
		}
	}
	e.searchHintedVariables = out
	return out
}

func collectIdentDecls(e ast.Expr, out map[*ast.VarDeclItem]bool) {
	if e == nil {
		return
	}
	if id, ok := e.(*ast.Ident); ok {
		if decl, ok := id.Decl.(*ast.VarDeclItem); ok {
			out[decl] = true
		}
		return
	}
	for _, c := range ast.Children(e) {
		collectIdentDecls(c, out)
	}
}

// IsSearchHinted reports whether decl was named in a solve annotation.
func (e *Env) IsSearchHinted(decl *ast.VarDeclItem) bool {
	return e.SearchHintedVariables()[decl]
}

// EqualConstrained returns, for every scalar decision variable that a
// conjunctively-nested equality in a constraint item or a function body
// binds with `var = rhs` or
// `rhs = var` where rhs does not itself depend on instance data, that rhs
// expression. Grounded on the equal_constrained searches built ad hoc in
// several of original_source's rule files (e.g.
// functionally-defined-search-hint.cpp), centralized here per spec.
func (e *Env) EqualConstrained() map[*ast.VarDeclItem]ast.Expr {
	if e.equalConstrained != nil {
		return e.equalConstrained
	}
	out := map[*ast.VarDeclItem]ast.Expr{}
	s := e.UserdefOnlyBuilder().InConstraint(true).InFunctionBody(true).
		UnderBinOp(ast.BotEq).Capture().Build()
	ms := s.SearchModel(e.model)
	for ms.Next() {
		bin := ms.Capture(0).(*ast.BinaryExpr)
		if !IsConjunctive(Reversed(ms.CurrentPath())) {
			continue
		}
		tryBindEqualConstrained(out, bin.X, bin.Y)
		tryBindEqualConstrained(out, bin.Y, bin.X)
	}
	e.equalConstrained = out
	return out
}

func tryBindEqualConstrained(out map[*ast.VarDeclItem]ast.Expr, side, other ast.Expr) {
	id, ok := side.(*ast.Ident)
	if !ok {
		return
	}
	decl, ok := id.Decl.(*ast.VarDeclItem)
	if !ok || decl == nil || decl.Ti == nil || !decl.Ti.Type.IsVar || decl.Ti.Type.IsArray() {
		return
	}
	if ast.DependsOnInstance(other) {
		return
	}
	if _, exists := out[decl]; !exists {
		out[decl] = other
	}
}

// GetEqualConstrainedRHS looks decl up in EqualConstrained.
func (e *Env) GetEqualConstrainedRHS(decl *ast.VarDeclItem) (ast.Expr, bool) {
	rhs, ok := e.EqualConstrained()[decl]
	return rhs, ok
}

// arrayWitness is one occurrence of `array[idx] = rhs` (or `rhs =
// array[idx]`) found in a purely conjunctive context, together with the
// comprehension it was found under, if any. IsEveryIndexTouched inspects
// these directly rather than every comprehension in the program, per
// spec's "some witness in array_equal_constrained[d]" wording.
type arrayWitness struct {
	access *ast.ArrayAccess
	comp   *ast.Comprehension // nil if this equality isn't under a comprehension
	rhs    ast.Expr
}

// ArrayEqualConstrained is EqualConstrained's array-valued counterpart: it
// maps an array variable declaration to the other side of an element
// equality `arr[idx] = rhs` (or `rhs = arr[idx]`), found on its own or
// inside a comprehension such as `forall(i in ..)(arr[i] = rhs)`, again
// only when that is reachable through a purely conjunctive context. A
// whole-array equality `arr = rhs` is not recorded. Where more than one such
// equality exists for the same array, the first one found wins.
func (e *Env) ArrayEqualConstrained() map[*ast.VarDeclItem]ast.Expr {
	e.computeArrayEqualConstrained()
	return e.arrayEqualConstrained
}

func (e *Env) computeArrayEqualConstrained() {
	if e.arrayEqualConstrained != nil {
		return
	}
	rhsOut := map[*ast.VarDeclItem]ast.Expr{}
	witOut := map[*ast.VarDeclItem][]arrayWitness{}
	s := e.UserdefOnlyBuilder().InConstraint(true).InFunctionBody(true).
		UnderBinOp(ast.BotEq).Capture().Build()
	ms := s.SearchModel(e.model)
	for ms.Next() {
		bin := ms.Capture(0).(*ast.BinaryExpr)
		path := Reversed(ms.CurrentPath())
		if !IsConjunctive(path) {
			continue
		}
		comp := enclosingComprehension(path)
		tryBindArrayEqualConstrained(rhsOut, witOut, comp, bin.X, bin.Y)
		tryBindArrayEqualConstrained(rhsOut, witOut, comp, bin.Y, bin.X)
	}
	e.arrayEqualConstrained = rhsOut
	e.arrayWitnesses = witOut
}

// enclosingComprehension returns the innermost comprehension on path
// (innermost-first), or nil if the equality isn't under one.
func enclosingComprehension(path []ast.Expr) *ast.Comprehension {
	for _, e := range path {
		if c, ok := e.(*ast.Comprehension); ok {
			return c
		}
	}
	return nil
}

func tryBindArrayEqualConstrained(rhsOut map[*ast.VarDeclItem]ast.Expr, witOut map[*ast.VarDeclItem][]arrayWitness, comp *ast.Comprehension, side, other ast.Expr) {
	access, ok := side.(*ast.ArrayAccess)
	if !ok {
		return
	}
	id, ok := access.Array.(*ast.Ident)
	if !ok {
		return
	}
	decl, ok := id.Decl.(*ast.VarDeclItem)
	if !ok || decl == nil || decl.Ti == nil || !decl.Ti.Type.IsArray() {
		return
	}
	if _, exists := rhsOut[decl]; !exists {
		rhsOut[decl] = other
	}
	witOut[decl] = append(witOut[decl], arrayWitness{access: access, comp: comp, rhs: other})
}

// IsEveryIndexTouched reports whether array has a witness in
// ArrayEqualConstrained whose array access is simple, whose enclosing
// comprehension's bound variables exactly cover that access with no
// where-clause narrowing it, and whose generators range over exactly
// array's own declared index domains — i.e. whether some equality
// constraint genuinely pins down array's value at every index, as opposed
// to merely mentioning it somewhere.
func (e *Env) IsEveryIndexTouched(array *ast.VarDeclItem) bool {
	e.computeArrayEqualConstrained()
	for _, w := range e.arrayWitnesses[array] {
		if w.comp == nil || !ast.IsArrayAccessSimple(w.access) {
			continue
		}
		if !ast.ComprehensionSatisfiesArrayAccess(w.comp, w.access) {
			continue
		}
		if ast.ComprehensionContainsWhere(w.comp) {
			continue
		}
		if !ast.ComprehensionCoversWholeArray(w.comp, array) {
			continue
		}
		return true
	}
	return false
}
