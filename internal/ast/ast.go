// Package ast defines the abstract syntax tree the search and lint
// packages operate on, plus a small set of adapter helpers (Children,
// Sprint, and the is_not_reified/is_conjunctive style context checks live
// in internal/lint, since they need the search path, not just the tree).
//
// The node set mirrors the MiniZinc expression grammar closely enough to
// host the rule catalogue; it is not a general-purpose AST for the whole
// language (e.g. there is one representation per operator subkind rather
// than per concrete surface syntax).
package ast

import "github.com/erikvader/MiniZinc-linter/internal/token"

// Kind discriminates the dynamic type of an Expr without a type switch.
// Rules and search patterns target Kind (plus, for BinaryExpr/UnaryExpr,
// the operator subkind) rather than Go's concrete type, mirroring
// MiniZinc::Expression::eid() in the original implementation.
type Kind int

const (
	KindBadExpr Kind = iota
	KindIdent
	KindIntLit
	KindFloatLit
	KindBoolLit
	KindStringLit
	KindSetLit
	KindArrayLit
	KindArrayAccess
	KindBinaryExpr
	KindUnaryExpr
	KindCall
	KindComprehension
	KindIfThenElse
	KindLet
	KindVarDeclExpr
	KindTypeInst
	KindAnnotation
)

func (k Kind) String() string {
	switch k {
	case KindBadExpr:
		return "BadExpr"
	case KindIdent:
		return "Ident"
	case KindIntLit:
		return "IntLit"
	case KindFloatLit:
		return "FloatLit"
	case KindBoolLit:
		return "BoolLit"
	case KindStringLit:
		return "StringLit"
	case KindSetLit:
		return "SetLit"
	case KindArrayLit:
		return "ArrayLit"
	case KindArrayAccess:
		return "ArrayAccess"
	case KindBinaryExpr:
		return "BinaryExpr"
	case KindUnaryExpr:
		return "UnaryExpr"
	case KindCall:
		return "Call"
	case KindComprehension:
		return "Comprehension"
	case KindIfThenElse:
		return "IfThenElse"
	case KindLet:
		return "Let"
	case KindVarDeclExpr:
		return "VarDeclExpr"
	case KindTypeInst:
		return "TypeInst"
	case KindAnnotation:
		return "Annotation"
	default:
		return "?"
	}
}

// BinOp is the closed set of binary operator subkinds, ported from
// MiniZinc::BinOpType.
type BinOp int

const (
	BotAnd BinOp = iota
	BotOr
	BotImpl
	BotRImpl
	BotEquiv
	BotEq
	BotNq
	BotLe
	BotLq
	BotGr
	BotGq
	BotPlus
	BotMinus
	BotMult
	BotDiv
	BotIDiv
	BotMod
	BotUnion
	BotDiff
	BotSymDiff
	BotIntersect
	BotDotDot
	BotPlusPlus
	BotIn
	BotSubset
	BotSuperset
	BotXor
)

// UnOp is the closed set of unary operator subkinds.
type UnOp int

const (
	UotNot UnOp = iota
	UotPlus
	UotMinus
)

// BaseType is the scalar base type of a Type.
type BaseType int

const (
	BtUnknown BaseType = iota
	BtBool
	BtInt
	BtFloat
	BtString
	BtAnn
	BtBot
)

// SetType distinguishes plain values from sets; optionality is carried
// by Type.Present instead.
type SetType int

const (
	StPlain SetType = iota
	StSet
)

// Type is the flattened MiniZinc type used for bounds/variable classification.
type Type struct {
	Base    BaseType
	Set     SetType
	Dim     int // array dimensionality, 0 for scalars
	IsVar   bool
	Present bool // false => opt
	IsAnn   bool
}

func (t Type) IsArray() bool { return t.Dim > 0 }

// Node is implemented by every AST node, expression or item.
type Node interface {
	Loc() Location
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	Kind() Kind
	exprNode()
}

// Decl is implemented by declarations that introduce a name: VarDeclItem
// and FunctionItem.
type Decl interface {
	Node
	DeclName() string
}

// Item is implemented by every top-level model item.
type Item interface {
	Node
	itemNode()
}

// Location mirrors MiniZinc::Location: a half-open source span plus the
// two rewrite-relevant flags used by the diagnostic renderer.
type Location struct {
	First      token.Position
	Last       token.Position
	Introduced bool // synthesized by the type checker, not in source
	NonAlloc   bool // does not own a distinct source region (e.g. sugar)
}

func (l Location) Loc() Location { return l }

// ---- expressions ----

type BadExpr struct{ Location }

func (*BadExpr) Kind() Kind { return KindBadExpr }
func (*BadExpr) exprNode()  {}

type Ident struct {
	Location
	Name string
	Decl Decl // resolved declaration, nil if unresolved or builtin
}

func (*Ident) Kind() Kind { return KindIdent }
func (*Ident) exprNode()  {}

type IntLit struct {
	Location
	Value int64
}

func (*IntLit) Kind() Kind { return KindIntLit }
func (*IntLit) exprNode()  {}

type FloatLit struct {
	Location
	Value float64
}

func (*FloatLit) Kind() Kind { return KindFloatLit }
func (*FloatLit) exprNode()  {}

type BoolLit struct {
	Location
	Value bool
}

func (*BoolLit) Kind() Kind { return KindBoolLit }
func (*BoolLit) exprNode()  {}

type StringLit struct {
	Location
	Value string
}

func (*StringLit) Kind() Kind { return KindStringLit }
func (*StringLit) exprNode()  {}

// SetLit covers both enumerated sets ({1,2,3}) and interval sets (lo..hi),
// matching how the rule catalogue inspects them (e.g. one-based-arrays
// looks at either shape).
type SetLit struct {
	Location
	Elements []Expr // enumerated form; nil when IsRange
	IsRange  bool
	Lo, Hi   Expr // range form
}

func (*SetLit) Kind() Kind { return KindSetLit }
func (*SetLit) exprNode()  {}

type ArrayLit struct {
	Location
	Elements []Expr
	Dims     int // 1 for array1d literals, >1 for array2d/.. literals
}

func (*ArrayLit) Kind() Kind { return KindArrayLit }
func (*ArrayLit) exprNode()  {}

type ArrayAccess struct {
	Location
	Array Expr
	Index []Expr
}

func (*ArrayAccess) Kind() Kind { return KindArrayAccess }
func (*ArrayAccess) exprNode()  {}

type BinaryExpr struct {
	Location
	Op   BinOp
	X, Y Expr
}

func (*BinaryExpr) Kind() Kind { return KindBinaryExpr }
func (*BinaryExpr) exprNode()  {}

type UnaryExpr struct {
	Location
	Op UnOp
	X  Expr
}

func (*UnaryExpr) Kind() Kind { return KindUnaryExpr }
func (*UnaryExpr) exprNode()  {}

// Call covers both user-defined function calls and built-in/global
// constraint calls; FuncDecl is nil for built-ins resolved only by name.
type Call struct {
	Location
	Name     string
	Args     []Expr
	FuncDecl *FunctionItem
}

func (*Call) Kind() Kind { return KindCall }
func (*Call) exprNode()  {}

// Generator is one `x, y in set` clause of a comprehension.
type Generator struct {
	Names []string
	Decls []*VarDeclItem
	In    Expr
}

type Comprehension struct {
	Location
	Body       Expr
	Generators []Generator
	Where      Expr // nil if no where-clause
	IsSet      bool
}

func (*Comprehension) Kind() Kind { return KindComprehension }
func (*Comprehension) exprNode()  {}

type IfThenElse struct {
	Location
	If   Expr
	Then Expr
	Else Expr // nil if there is no else branch (the frontend leaves it nil for an `if ... then ... endif` without `else`)
}

func (*IfThenElse) Kind() Kind { return KindIfThenElse }
func (*IfThenElse) exprNode()  {}

type LetDecl struct {
	VarDecl *VarDeclItem // nil when this let-decl is a constraint
	Constr  Expr
}

type Let struct {
	Location
	Decls []LetDecl
	Body  Expr
}

func (*Let) Kind() Kind { return KindLet }
func (*Let) exprNode()  {}

// VarDeclExpr wraps a VarDeclItem so it can appear as an expression, as
// MiniZinc::VarDecl does (it is simultaneously Item and Expr in the
// original AST).
type VarDeclExpr struct {
	Location
	Decl *VarDeclItem
}

func (*VarDeclExpr) Kind() Kind { return KindVarDeclExpr }
func (*VarDeclExpr) exprNode()  {}

type TypeInst struct {
	Location
	Type   Type
	Ranges []Expr // one per array dimension, nil/elided for inferred dims
	Domain Expr   // nil if unconstrained
}

func (*TypeInst) Kind() Kind { return KindTypeInst }
func (*TypeInst) exprNode()  {}

type Annotation struct {
	Location
	Name string
	Args []Expr
}

func (*Annotation) Kind() Kind { return KindAnnotation }
func (*Annotation) exprNode()  {}

// ---- items ----

type VarDeclItem struct {
	Location
	Name        string
	Ti          *TypeInst
	Value       Expr // nil if undefined
	Annotations []*Annotation
}

func (*VarDeclItem) itemNode()         {}
func (v *VarDeclItem) DeclName() string { return v.Name }

type AssignItem struct {
	Location
	Name  string
	Decl  *VarDeclItem
	Value Expr
}

func (*AssignItem) itemNode() {}

type ConstraintItem struct {
	Location
	Expr Expr
}

func (*ConstraintItem) itemNode() {}

type FunctionItem struct {
	Location
	Name        string
	Ti          *TypeInst // return type
	Params      []*VarDeclItem
	Body        Expr // nil if this is a declaration without a body
	Annotations []*Annotation
}

func (*FunctionItem) itemNode()          {}
func (f *FunctionItem) DeclName() string { return f.Name }

type IncludeItem struct {
	Location
	Path string
	// Model is the parsed contents of Path, or nil if it could not be
	// resolved/parsed (e.g. a stdlib include the frontend does not ship).
	Model *Model
}

func (*IncludeItem) itemNode() {}

type SolveKind int

const (
	SolveSatisfy SolveKind = iota
	SolveMinimize
	SolveMaximize
)

type SolveItem struct {
	Location
	Kind        SolveKind
	Objective   Expr // nil for satisfy
	Annotations []*Annotation
}

func (*SolveItem) itemNode() {}

type OutputItem struct {
	Location
	Value Expr
}

func (*OutputItem) itemNode() {}

// Model is a single parsed file: its items in source order, plus the
// path it was loaded from, as given to the frontend.
type Model struct {
	Filename string
	Items    []Item
}
