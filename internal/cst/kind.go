package cst

// Kind tags a concrete syntax node with the production that built it.
type Kind uint16

const (
	KindInvalid Kind = iota

	// Error wraps tokens skipped during recovery.
	Error

	// module structure
	Module
	ModuleDeclaration
	Modid
	Exports
	Export
	Body
	ImportDeclaration
	ImportList
	ImportItem
	QName
	Op

	// declarations
	TypeSignature
	ValueDeclaration
	DataDeclaration
	NewtypeDeclaration
	TypeDeclaration
	TypeFamilyDeclaration
	TypeInstanceDeclaration
	ClassDeclaration
	InstanceDeclaration
	DefaultDeclaration
	DerivingDeclaration
	FixityDeclaration
	ForeignDeclaration
	CdeclDataDeclaration
	DefaultSignature
	SpliceDeclaration

	// declaration parts
	Context
	Simpletype
	KindSignature
	Constr
	Fielddecl
	GadtBody
	GadtConstr
	Deriving
	Fundeps
	Fundep
	Cdecls
	Idecls
	Decls
	WhereBindings
	Rhs
	GuardedRhs
	TypeEquations
	TypeEquation
	Ttype

	// types
	TypeCon
	TypeVar
	TypeApp
	TypeInfix
	TypeArrow
	TypeForall
	TypeQualified
	TypeList
	TypeTuple
	TypeParen
	TypeBang
	TypeLazy
	TypeKinded
	TypePromoted
	TypeLiteral
	TypeWildcard

	// expressions and patterns
	ExprVar
	ExprCon
	ExprLit
	ExprApp
	ExprInfix
	ExprNeg
	ExprLambda
	ExprLambdaCase
	ExprLet
	ExprIf
	ExprCase
	Alts
	Alt
	ExprDo
	Stmts
	BindStmt
	LetStmt
	ExprStmt
	ExprParen
	ExprTuple
	ExprLeftSection
	ExprRightSection
	ExprList
	ExprSeq
	ExprComprehension
	ExprRecord
	FieldBind
	ExprTyped
	ExprWildcard
	ExprAs
	ExprLazy
	ExprBang
	ExprTypeApp
	ExprPragma

	// pragmas
	MinimalPragma
	SccPragma
	SpecializePragma
	InlinelikePragma
	CtypePragma
	LanguagePragma
	OtherPragma
	GeneralPragmaContent

	kindCount
)

var kindNames = [...]string{
	KindInvalid: "Invalid",
	Error:       "Error",

	Module: "Module", ModuleDeclaration: "ModuleDeclaration", Modid: "Modid",
	Exports: "Exports", Export: "Export", Body: "Body",
	ImportDeclaration: "ImportDeclaration", ImportList: "ImportList", ImportItem: "ImportItem",
	QName: "QName", Op: "Op",

	TypeSignature: "TypeSignature", ValueDeclaration: "ValueDeclaration",
	DataDeclaration: "DataDeclaration", NewtypeDeclaration: "NewtypeDeclaration",
	TypeDeclaration: "TypeDeclaration", TypeFamilyDeclaration: "TypeFamilyDeclaration",
	TypeInstanceDeclaration: "TypeInstanceDeclaration", ClassDeclaration: "ClassDeclaration",
	InstanceDeclaration: "InstanceDeclaration", DefaultDeclaration: "DefaultDeclaration",
	DerivingDeclaration: "DerivingDeclaration", FixityDeclaration: "FixityDeclaration",
	ForeignDeclaration: "ForeignDeclaration", CdeclDataDeclaration: "CdeclDataDeclaration",
	DefaultSignature: "DefaultSignature", SpliceDeclaration: "SpliceDeclaration",

	Context: "Context", Simpletype: "Simpletype", KindSignature: "KindSignature",
	Constr: "Constr", Fielddecl: "Fielddecl", GadtBody: "GadtBody", GadtConstr: "GadtConstr",
	Deriving: "Deriving", Fundeps: "Fundeps", Fundep: "Fundep",
	Cdecls: "Cdecls", Idecls: "Idecls", Decls: "Decls", WhereBindings: "WhereBindings",
	Rhs: "Rhs", GuardedRhs: "GuardedRhs",
	TypeEquations: "TypeEquations", TypeEquation: "TypeEquation", Ttype: "Ttype",

	TypeCon: "TypeCon", TypeVar: "TypeVar", TypeApp: "TypeApp", TypeInfix: "TypeInfix",
	TypeArrow: "TypeArrow", TypeForall: "TypeForall", TypeQualified: "TypeQualified",
	TypeList: "TypeList", TypeTuple: "TypeTuple", TypeParen: "TypeParen",
	TypeBang: "TypeBang", TypeLazy: "TypeLazy", TypeKinded: "TypeKinded",
	TypePromoted: "TypePromoted", TypeLiteral: "TypeLiteral", TypeWildcard: "TypeWildcard",

	ExprVar: "ExprVar", ExprCon: "ExprCon", ExprLit: "ExprLit", ExprApp: "ExprApp",
	ExprInfix: "ExprInfix", ExprNeg: "ExprNeg", ExprLambda: "ExprLambda",
	ExprLambdaCase: "ExprLambdaCase", ExprLet: "ExprLet", ExprIf: "ExprIf",
	ExprCase: "ExprCase", Alts: "Alts", Alt: "Alt", ExprDo: "ExprDo", Stmts: "Stmts",
	BindStmt: "BindStmt", LetStmt: "LetStmt", ExprStmt: "ExprStmt",
	ExprParen: "ExprParen", ExprTuple: "ExprTuple",
	ExprLeftSection: "ExprLeftSection", ExprRightSection: "ExprRightSection",
	ExprList: "ExprList", ExprSeq: "ExprSeq", ExprComprehension: "ExprComprehension",
	ExprRecord: "ExprRecord", FieldBind: "FieldBind", ExprTyped: "ExprTyped",
	ExprWildcard: "ExprWildcard", ExprAs: "ExprAs", ExprLazy: "ExprLazy",
	ExprBang: "ExprBang", ExprTypeApp: "ExprTypeApp", ExprPragma: "ExprPragma",

	MinimalPragma: "MinimalPragma", SccPragma: "SccPragma",
	SpecializePragma: "SpecializePragma", InlinelikePragma: "InlinelikePragma",
	CtypePragma: "CtypePragma", LanguagePragma: "LanguagePragma", OtherPragma: "OtherPragma",
	GeneralPragmaContent: "GeneralPragmaContent",
}

func (k Kind) String() string {
	if k < kindCount && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// KindByName maps a printed kind name back to its tag.
func KindByName(name string) (Kind, bool) {
	for k := KindInvalid + 1; k < kindCount; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return KindInvalid, false
}

// IsDeclaration reports whether k is a top-level or nested declaration.
func (k Kind) IsDeclaration() bool {
	return k >= TypeSignature && k <= SpliceDeclaration
}

// IsType reports whether k is a type expression.
func (k Kind) IsType() bool {
	return k >= TypeCon && k <= TypeWildcard
}

// IsExpr reports whether k is an expression or pattern.
func (k Kind) IsExpr() bool {
	return k >= ExprVar && k <= ExprPragma && k != Alts && k != Alt && k != Stmts &&
		k != BindStmt && k != LetStmt && k != ExprStmt && k != FieldBind
}

// IsPragma reports whether k is one of the pragma productions.
func (k Kind) IsPragma() bool {
	return k >= MinimalPragma && k <= OtherPragma
}
