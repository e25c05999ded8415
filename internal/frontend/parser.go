package frontend

import (
	"github.com/erikvader/MiniZinc-linter/internal/ast"
	"github.com/erikvader/MiniZinc-linter/internal/errs"
	"github.com/erikvader/MiniZinc-linter/internal/token"
)

type binOpInfo struct {
	op   ast.BinOp
	prec int
}

var binOps = map[string]binOpInfo{
	"<->":      {ast.BotEquiv, 1},
	"->":       {ast.BotImpl, 2},
	"<-":       {ast.BotRImpl, 2},
	"\\/":      {ast.BotOr, 3},
	"xor":      {ast.BotXor, 3},
	"/\\":      {ast.BotAnd, 4},
	"=":        {ast.BotEq, 5},
	"==":       {ast.BotEq, 5},
	"!=":       {ast.BotNq, 5},
	"<":        {ast.BotLe, 5},
	"<=":       {ast.BotLq, 5},
	">":        {ast.BotGr, 5},
	">=":       {ast.BotGq, 5},
	"in":       {ast.BotIn, 5},
	"subset":   {ast.BotSubset, 5},
	"superset": {ast.BotSuperset, 5},
	"..":       {ast.BotDotDot, 6},
	"union":    {ast.BotUnion, 7},
	"diff":     {ast.BotDiff, 7},
	"symdiff":  {ast.BotSymDiff, 7},
	"+":        {ast.BotPlus, 8},
	"-":        {ast.BotMinus, 8},
	"intersect": {ast.BotIntersect, 9},
	"*":        {ast.BotMult, 10},
	"/":        {ast.BotDiv, 10},
	"div":      {ast.BotIDiv, 10},
	"mod":      {ast.BotMod, 10},
	"++":       {ast.BotPlusPlus, 11},
}

// parser is a hand-written recursive-descent parser, in the style of
// cue/parser: a single token of lookahead, panic-based error recovery
// caught per item by parseItemRecovering, and position tracking via token.Position
// rather than an interned offset table (internal/ast.Location doesn't
// need one — see SPEC_FULL.md's position-model rationale).
type parser struct {
	filename string
	sc       *scanner
	cur      lexToken
	errors   errs.List
}

// ParseModel scans and parses src as a MiniZinc-subset source file named
// filename, returning the resulting Model and any errors encountered.
// Parsing does not stop at the first error: bad items are skipped up to
// the next ';' so later, unrelated errors are still reported in one pass.
func ParseModel(filename string, src []byte) (*ast.Model, errs.List) {
	p := &parser{filename: filename, sc: newScanner(filename, src)}
	p.advance()

	m := &ast.Model{Filename: filename}
	for p.cur.kind != tEOF {
		it := p.parseItemRecovering()
		if it != nil {
			m.Items = append(m.Items, it)
		}
	}
	resolve(m, p.errors)
	return m, p.errors
}

func (p *parser) advance() {
	tok, err := p.sc.Next()
	if err != nil {
		p.errors = append(p.errors, errs.Parse(p.sc.pos(), "%s", err.Error()))
		p.cur = lexToken{kind: tEOF, pos: p.sc.pos()}
		return
	}
	p.cur = tok
}

func (p *parser) atPunct(lit string) bool   { return p.cur.kind == tPunct && p.cur.lit == lit }
func (p *parser) atKeyword(lit string) bool { return p.cur.kind == tKeyword && p.cur.lit == lit }

func (p *parser) expectPunct(lit string) token.Position {
	pos := p.cur.pos
	if !p.atPunct(lit) {
		p.errorf("expected %q, got %q", lit, p.cur.lit)
	} else {
		p.advance()
	}
	return pos
}

func (p *parser) expectKeyword(lit string) {
	if !p.atKeyword(lit) {
		p.errorf("expected %q, got %q", lit, p.cur.lit)
		return
	}
	p.advance()
}

func (p *parser) expectIdent() (string, token.Position) {
	if p.cur.kind != tIdent {
		p.errorf("expected identifier, got %q", p.cur.lit)
		return "<error>", p.cur.pos
	}
	name, pos := p.cur.lit, p.cur.pos
	p.advance()
	return name, pos
}

func (p *parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, errs.Parse(p.cur.pos, format, args...))
	panic(parseAbort{})
}

// parseAbort unwinds the current item on a syntax error; parseItemRecovering
// catches it and resynchronizes at the next ';'.
type parseAbort struct{}

func (p *parser) parseItemRecovering() (it ast.Item) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseAbort); !ok {
				panic(r)
			}
			it = nil
			for p.cur.kind != tEOF && !p.atPunct(";") {
				p.advance()
			}
			if p.atPunct(";") {
				p.advance()
			}
		}
	}()
	return p.parseItem()
}

func (p *parser) parseItem() ast.Item {
	pos := p.cur.pos
	switch {
	case p.atKeyword("include"):
		p.advance()
		path := p.parseStringLit()
		p.expectPunct(";")
		return &ast.IncludeItem{Location: loc1(pos, path), Path: path}

	case p.atKeyword("constraint"):
		p.advance()
		e := p.parseExpr()
		p.skipTrailingAnnotations()
		p.expectPunct(";")
		return &ast.ConstraintItem{Location: spanOf(pos, e), Expr: e}

	case p.atKeyword("output"):
		p.advance()
		e := p.parseExpr()
		p.expectPunct(";")
		return &ast.OutputItem{Location: spanOf(pos, e), Value: e}

	case p.atKeyword("solve"):
		p.advance()
		anns := p.parseAnnotations()
		item := &ast.SolveItem{Location: toLoc(pos), Annotations: anns}
		switch {
		case p.atKeyword("satisfy"):
			p.advance()
			item.Kind = ast.SolveSatisfy
			anns = append(anns, p.parseAnnotations()...)
		case p.atKeyword("minimize"):
			p.advance()
			item.Kind = ast.SolveMinimize
			item.Objective = p.parseExpr()
		case p.atKeyword("maximize"):
			p.advance()
			item.Kind = ast.SolveMaximize
			item.Objective = p.parseExpr()
		default:
			p.errorf("expected satisfy, minimize or maximize")
		}
		item.Annotations = anns
		p.expectPunct(";")
		return item

	case p.atKeyword("function"), p.atKeyword("predicate"), p.atKeyword("test"):
		return p.parseFunction()

	default:
		return p.parseVarDeclOrAssign()
	}
}

func (p *parser) parseFunction() ast.Item {
	pos := p.cur.pos
	isPred := p.atKeyword("predicate") || p.atKeyword("test")
	p.advance()

	var ti *ast.TypeInst
	if isPred {
		ti = &ast.TypeInst{Type: ast.Type{Base: ast.BtBool, IsVar: true, Present: true}}
	} else {
		ti = p.parseTypeInst()
		p.expectPunct(":")
	}
	name, _ := p.expectIdent()
	p.expectPunct("(")
	var params []*ast.VarDeclItem
	for !p.atPunct(")") {
		pti := p.parseTypeInst()
		p.expectPunct(":")
		pname, ppos := p.expectIdent()
		params = append(params, &ast.VarDeclItem{Location: toLoc(ppos), Name: pname, Ti: pti})
		if p.atPunct(",") {
			p.advance()
		} else {
			break
		}
	}
	p.expectPunct(")")
	anns := p.parseAnnotations()

	f := &ast.FunctionItem{Location: toLoc(pos), Name: name, Ti: ti, Params: params, Annotations: anns}
	if p.atPunct("=") {
		p.advance()
		f.Body = p.parseExpr()
	}
	p.expectPunct(";")
	return f
}

func (p *parser) parseVarDeclOrAssign() ast.Item {
	pos := p.cur.pos
	if p.cur.kind == tIdent {
		// Look ahead one token without consuming: an assignment is
		// `IDENT = expr;` with no leading type-inst.
		save := *p.sc
		saveCur := p.cur
		name := p.cur.lit
		p.advance()
		if p.atPunct("=") {
			p.advance()
			val := p.parseExpr()
			p.expectPunct(";")
			return &ast.AssignItem{Location: spanOf(pos, val), Name: name, Value: val}
		}
		*p.sc = save
		p.cur = saveCur
	}

	ti := p.parseTypeInst()
	p.expectPunct(":")
	name, _ := p.expectIdent()
	anns := p.parseAnnotations()
	v := &ast.VarDeclItem{Location: spanOf(pos, ti), Name: name, Ti: ti, Annotations: anns}
	if p.atPunct("=") {
		p.advance()
		v.Value = p.parseExpr()
	}
	p.expectPunct(";")
	return v
}

// parseAnnotations consumes zero or more `:: ident(args)?` suffixes.
func (p *parser) parseAnnotations() []*ast.Annotation {
	var out []*ast.Annotation
	for p.atPunct("::") {
		p.advance()
		pos := p.cur.pos
		name, _ := p.expectIdent()
		var args []ast.Expr
		if p.atPunct("(") {
			p.advance()
			for !p.atPunct(")") {
				args = append(args, p.parseExpr())
				if p.atPunct(",") {
					p.advance()
				} else {
					break
				}
			}
			p.expectPunct(")")
		}
		out = append(out, &ast.Annotation{Location: toLoc(pos), Name: name, Args: args})
	}
	return out
}

// skipTrailingAnnotations discards `:: ann` suffixes on a constraint
// expression; the engine has no generic annotated-expression node, and no
// catalogued rule needs these, only item-level ones.
func (p *parser) skipTrailingAnnotations() { p.parseAnnotations() }

func (p *parser) parseStringLit() string {
	if p.cur.kind != tStringLit {
		p.errorf("expected string literal, got %q", p.cur.lit)
	}
	s := p.cur.lit
	p.advance()
	return s
}

// ---- type-inst ----

func (p *parser) parseTypeInst() *ast.TypeInst {
	pos := p.cur.pos
	isVar := false
	switch {
	case p.atKeyword("var"):
		isVar = true
		p.advance()
	case p.atKeyword("par"):
		p.advance()
	}

	if p.atKeyword("array") {
		p.advance()
		p.expectPunct("[")
		var ranges []ast.Expr
		ranges = append(ranges, p.parseExpr())
		for p.atPunct(",") {
			p.advance()
			ranges = append(ranges, p.parseExpr())
		}
		p.expectPunct("]")
		p.expectKeyword("of")
		inner := p.parseTypeInst()
		if isVar {
			inner.Type.IsVar = true
		}
		inner.Ranges = ranges
		inner.Type.Dim = len(ranges)
		inner.Location = toLoc(pos)
		return inner
	}

	isSet := false
	if p.atKeyword("set") {
		p.advance()
		p.expectKeyword("of")
		isSet = true
	}

	base := ast.BtUnknown
	var domain ast.Expr
	switch {
	case p.atKeyword("bool"):
		base = ast.BtBool
		p.advance()
	case p.atKeyword("int"):
		base = ast.BtInt
		p.advance()
	case p.atKeyword("float"):
		base = ast.BtFloat
		p.advance()
	case p.atKeyword("string"):
		base = ast.BtString
		p.advance()
	case p.atKeyword("ann"):
		base = ast.BtAnn
		p.advance()
	default:
		domain = p.parseExpr()
		base = ast.BtInt
	}

	t := &ast.TypeInst{
		Location: toLoc(pos),
		Type:     ast.Type{Base: base, IsVar: isVar, Present: true},
		Domain:   domain,
	}
	if isSet {
		t.Type.Set = ast.StSet
	}
	return t
}

// ---- expressions ----

func (p *parser) parseExpr() ast.Expr {
	return p.parseBinExpr(1)
}

func (p *parser) parseBinExpr(minPrec int) ast.Expr {
	lhs := p.parseUnary()
	for {
		info, ok := p.lookaheadBinOp()
		if !ok || info.prec < minPrec {
			return lhs
		}
		opPos := p.cur.pos
		p.advance()
		rhs := p.parseBinExpr(info.prec + 1)
		lhs = &ast.BinaryExpr{Location: spanOf2(lhs, rhs, opPos), Op: info.op, X: lhs, Y: rhs}
	}
}

func (p *parser) lookaheadBinOp() (binOpInfo, bool) {
	if p.cur.kind != tPunct && p.cur.kind != tKeyword {
		return binOpInfo{}, false
	}
	info, ok := binOps[p.cur.lit]
	return info, ok
}

func (p *parser) parseUnary() ast.Expr {
	pos := p.cur.pos
	switch {
	case p.atKeyword("not"):
		p.advance()
		x := p.parseUnary()
		return &ast.UnaryExpr{Location: spanOf(pos, x), Op: ast.UotNot, X: x}
	case p.atPunct("-"):
		p.advance()
		x := p.parseUnary()
		return &ast.UnaryExpr{Location: spanOf(pos, x), Op: ast.UotMinus, X: x}
	case p.atPunct("+"):
		p.advance()
		x := p.parseUnary()
		return &ast.UnaryExpr{Location: spanOf(pos, x), Op: ast.UotPlus, X: x}
	default:
		return p.parsePostfix()
	}
}

func (p *parser) parsePostfix() ast.Expr {
	e := p.parsePrimary()
	for p.atPunct("[") {
		pos := p.cur.pos
		p.advance()
		var idx []ast.Expr
		idx = append(idx, p.parseExpr())
		for p.atPunct(",") {
			p.advance()
			idx = append(idx, p.parseExpr())
		}
		end := p.expectPunct("]")
		e = &ast.ArrayAccess{Location: loc2(pos, end), Array: e, Index: idx}
	}
	return e
}

func (p *parser) parsePrimary() ast.Expr {
	pos := p.cur.pos
	switch {
	case p.cur.kind == tIntLit:
		v, err := parseIntLit(p.cur.lit)
		if err != nil {
			p.errorf("bad integer literal %q", p.cur.lit)
		}
		p.advance()
		return &ast.IntLit{Location: toLoc(pos), Value: v}

	case p.cur.kind == tFloatLit:
		v, err := parseFloatLit(p.cur.lit)
		if err != nil {
			p.errorf("bad float literal %q", p.cur.lit)
		}
		p.advance()
		return &ast.FloatLit{Location: toLoc(pos), Value: v}

	case p.cur.kind == tStringLit:
		v := p.cur.lit
		p.advance()
		return &ast.StringLit{Location: toLoc(pos), Value: v}

	case p.atKeyword("true"):
		p.advance()
		return &ast.BoolLit{Location: toLoc(pos), Value: true}
	case p.atKeyword("false"):
		p.advance()
		return &ast.BoolLit{Location: toLoc(pos), Value: false}

	case p.atKeyword("if"):
		return p.parseIfThenElse()

	case p.atKeyword("let"):
		return p.parseLet()

	case p.atPunct("("):
		p.advance()
		e := p.parseExpr()
		p.expectPunct(")")
		return e

	case p.atPunct("["):
		return p.parseArrayLitOrComprehension()

	case p.atPunct("{"):
		return p.parseSetLitOrComprehension()

	case p.cur.kind == tIdent:
		name, ipos := p.expectIdent()
		if p.atPunct("(") {
			p.advance()
			var args []ast.Expr
			for !p.atPunct(")") {
				args = append(args, p.parseExpr())
				if p.atPunct(",") {
					p.advance()
				} else {
					break
				}
			}
			end := p.expectPunct(")")
			return &ast.Call{Location: loc2(ipos, end), Name: name, Args: args}
		}
		return &ast.Ident{Location: toLoc(ipos), Name: name}

	default:
		p.errorf("unexpected token %q", p.cur.lit)
		return &ast.BadExpr{Location: toLoc(pos)}
	}
}

func (p *parser) parseIfThenElse() ast.Expr {
	pos := p.cur.pos
	p.advance()
	cond := p.parseExpr()
	p.expectKeyword("then")
	then := p.parseExpr()
	if p.atKeyword("elseif") {
		p.cur.lit = "if" // reuse this parse function for the elseif chain
		elseBranch := p.parseIfThenElse()
		return &ast.IfThenElse{Location: spanOf(pos, elseBranch), If: cond, Then: then, Else: elseBranch}
	}
	var elseBranch ast.Expr
	if p.atKeyword("else") {
		p.advance()
		elseBranch = p.parseExpr()
	}
	end := p.cur.pos
	p.expectKeyword("endif")
	loc := loc2(pos, end)
	return &ast.IfThenElse{Location: loc, If: cond, Then: then, Else: elseBranch}
}

func (p *parser) parseLet() ast.Expr {
	pos := p.cur.pos
	p.advance()
	p.expectPunct("{")
	var decls []ast.LetDecl
	for !p.atPunct("}") {
		if p.atKeyword("constraint") {
			p.advance()
			decls = append(decls, ast.LetDecl{Constr: p.parseExpr()})
		} else {
			dpos := p.cur.pos
			ti := p.parseTypeInst()
			p.expectPunct(":")
			name, _ := p.expectIdent()
			v := &ast.VarDeclItem{Location: spanOf(dpos, ti), Name: name, Ti: ti}
			if p.atPunct("=") {
				p.advance()
				v.Value = p.parseExpr()
			}
			decls = append(decls, ast.LetDecl{VarDecl: v})
		}
		if p.atPunct(";") {
			p.advance()
		} else {
			break
		}
	}
	p.expectPunct("}")
	p.expectKeyword("in")
	body := p.parseExpr()
	return &ast.Let{Location: spanOf(pos, body), Decls: decls, Body: body}
}

func (p *parser) parseGenerators() ([]ast.Generator, ast.Expr) {
	var gens []ast.Generator
	for {
		var names []string
		n, _ := p.expectIdent()
		names = append(names, n)
		for p.atPunct(",") {
			// lookahead: comma could separate generator-names or
			// generators themselves; a name followed by "in" continues
			// the name list, otherwise it starts a new generator.
			save := *p.sc
			saveCur := p.cur
			p.advance()
			if p.cur.kind == tIdent {
				n2 := p.cur.lit
				p.advance()
				if p.atKeyword("in") {
					names = append(names, n2)
					continue
				}
			}
			*p.sc = save
			p.cur = saveCur
			break
		}
		p.expectKeyword("in")
		in := p.parseExpr()
		gens = append(gens, ast.Generator{Names: names, In: in})
		if p.atPunct(",") {
			p.advance()
			continue
		}
		break
	}
	var where ast.Expr
	if p.atKeyword("where") {
		p.advance()
		where = p.parseExpr()
	}
	return gens, where
}

func (p *parser) parseArrayLitOrComprehension() ast.Expr {
	pos := p.cur.pos
	p.advance()
	if p.atPunct("]") {
		end := p.cur.pos
		p.advance()
		return &ast.ArrayLit{Location: loc2(pos, end), Dims: 1}
	}
	first := p.parseExpr()
	if p.atPunct("|") {
		p.advance()
		gens, where := p.parseGenerators()
		end := p.expectPunct("]")
		return &ast.Comprehension{Location: loc2(pos, end), Body: first, Generators: gens, Where: where}
	}
	elems := []ast.Expr{first}
	for p.atPunct(",") {
		p.advance()
		if p.atPunct("]") {
			break
		}
		elems = append(elems, p.parseExpr())
	}
	end := p.expectPunct("]")
	return &ast.ArrayLit{Location: loc2(pos, end), Elements: elems, Dims: 1}
}

func (p *parser) parseSetLitOrComprehension() ast.Expr {
	pos := p.cur.pos
	p.advance()
	if p.atPunct("}") {
		end := p.cur.pos
		p.advance()
		return &ast.SetLit{Location: loc2(pos, end)}
	}
	first := p.parseExpr()
	if p.atPunct("|") {
		p.advance()
		gens, where := p.parseGenerators()
		end := p.expectPunct("}")
		return &ast.Comprehension{Location: loc2(pos, end), Body: first, Generators: gens, Where: where, IsSet: true}
	}
	elems := []ast.Expr{first}
	for p.atPunct(",") {
		p.advance()
		if p.atPunct("}") {
			break
		}
		elems = append(elems, p.parseExpr())
	}
	end := p.expectPunct("}")
	return &ast.SetLit{Location: loc2(pos, end), Elements: elems}
}

// ---- position helpers ----

func toLoc(pos token.Position) ast.Location {
	return ast.Location{First: pos, Last: pos}
}

func loc1(pos token.Position, _ string) ast.Location { return toLoc(pos) }

func loc2(start, end token.Position) ast.Location {
	return ast.Location{First: start, Last: end}
}

func spanOf(start token.Position, e ast.Expr) ast.Location {
	if e == nil {
		return toLoc(start)
	}
	return ast.Location{First: start, Last: e.Loc().Last}
}

func spanOf2(x, y ast.Expr, fallback token.Position) ast.Location {
	if x == nil || y == nil {
		return toLoc(fallback)
	}
	return ast.Location{First: x.Loc().First, Last: y.Loc().Last}
}
