package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates a character the lexer could not classify.
	Invalid Kind = iota
	// EOF marks the end of input.
	EOF

	VarId   // x, foldr'
	ConId   // Maybe
	QVarId  // Data.Map.lookup
	QConId  // Data.Map.Map
	VarSym  // +, <$>, !
	ConSym  // :+, :|
	QVarSym // Prelude.+
	QConSym // M.:+

	IntLit
	FloatLit
	CharLit
	StringLit

	// keywords
	KwCase
	KwClass
	KwData
	KwDefault
	KwDeriving
	KwDo
	KwElse
	KwForeign
	KwIf
	KwImport
	KwIn
	KwInfix
	KwInfixl
	KwInfixr
	KwInstance
	KwLet
	KwModule
	KwNewtype
	KwOf
	KwThen
	KwType
	KwWhere
	Underscore // _

	// reserved operators
	DotDot      // ..
	Colon       // :
	DoubleColon // ::
	Equals      // =
	Backslash   // \
	Bar         // |
	LArrow      // <-
	RArrow      // ->
	At          // @
	Tilde       // ~
	DArrow      // =>

	// special
	LParen   // (
	RParen   // )
	Comma    // ,
	Semi     // ;
	LBracket // [
	RBracket // ]
	Backtick // `
	LBrace   // {
	RBrace   // }
	Tick     // ' (promotion, TH name quotes)

	// trivia
	Whitespace
	Newline
	LineComment
	BlockComment

	// pragmas
	PragmaOpen  // {-#
	PragmaName  // first word after {-#
	PragmaClose // #-}

	// layout, inserted by the resolver
	VOpen
	VSemi
	VClose
)

var kindNames = [...]string{
	Invalid: "Invalid", EOF: "EOF",
	VarId: "VarId", ConId: "ConId", QVarId: "QVarId", QConId: "QConId",
	VarSym: "VarSym", ConSym: "ConSym", QVarSym: "QVarSym", QConSym: "QConSym",
	IntLit: "IntLit", FloatLit: "FloatLit", CharLit: "CharLit", StringLit: "StringLit",
	KwCase: "case", KwClass: "class", KwData: "data", KwDefault: "default",
	KwDeriving: "deriving", KwDo: "do", KwElse: "else", KwForeign: "foreign",
	KwIf: "if", KwImport: "import", KwIn: "in", KwInfix: "infix", KwInfixl: "infixl",
	KwInfixr: "infixr", KwInstance: "instance", KwLet: "let", KwModule: "module",
	KwNewtype: "newtype", KwOf: "of", KwThen: "then", KwType: "type", KwWhere: "where",
	Underscore: "_",
	DotDot:     "..", Colon: ":", DoubleColon: "::", Equals: "=", Backslash: "\\", Bar: "|",
	LArrow: "<-", RArrow: "->", At: "@", Tilde: "~", DArrow: "=>",
	LParen: "(", RParen: ")", Comma: ",", Semi: ";", LBracket: "[", RBracket: "]",
	Backtick: "`", LBrace: "{", RBrace: "}", Tick: "'",
	Whitespace: "Whitespace", Newline: "Newline", LineComment: "LineComment",
	BlockComment: "BlockComment",
	PragmaOpen:   "{-#", PragmaName: "PragmaName", PragmaClose: "#-}",
	VOpen: "VOpen", VSemi: "VSemi", VClose: "VClose",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsTrivia reports whether k carries no syntax (spaces, newlines, comments).
func (k Kind) IsTrivia() bool {
	switch k {
	case Whitespace, Newline, LineComment, BlockComment:
		return true
	default:
		return false
	}
}

// IsVirtual reports whether k is produced by the layout resolver.
func (k Kind) IsVirtual() bool {
	return k == VOpen || k == VSemi || k == VClose
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwCase && k <= KwWhere
}

// IsLiteral reports whether k is a literal.
func (k Kind) IsLiteral() bool {
	return k >= IntLit && k <= StringLit
}

// IsVar reports whether k names a variable (possibly qualified).
func (k Kind) IsVar() bool {
	return k == VarId || k == QVarId
}

// IsCon reports whether k names a constructor, type or class (possibly qualified).
func (k Kind) IsCon() bool {
	return k == ConId || k == QConId
}

// IsIdent reports whether k is an alphanumeric name.
func (k Kind) IsIdent() bool {
	return k.IsVar() || k.IsCon()
}

// IsSym reports whether k is a symbolic operator name (not a reserved op).
func (k Kind) IsSym() bool {
	switch k {
	case VarSym, ConSym, QVarSym, QConSym:
		return true
	default:
		return false
	}
}

// IsQualified reports whether k carries a module prefix.
func (k Kind) IsQualified() bool {
	switch k {
	case QVarId, QConId, QVarSym, QConSym:
		return true
	default:
		return false
	}
}
