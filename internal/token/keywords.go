package token

var keywords = map[string]Kind{
	"case":     KwCase,
	"class":    KwClass,
	"data":     KwData,
	"default":  KwDefault,
	"deriving": KwDeriving,
	"do":       KwDo,
	"else":     KwElse,
	"foreign":  KwForeign,
	"if":       KwIf,
	"import":   KwImport,
	"in":       KwIn,
	"infix":    KwInfix,
	"infixl":   KwInfixl,
	"infixr":   KwInfixr,
	"instance": KwInstance,
	"let":      KwLet,
	"module":   KwModule,
	"newtype":  KwNewtype,
	"of":       KwOf,
	"then":     KwThen,
	"type":     KwType,
	"where":    KwWhere,
	"_":        Underscore,
}

var reservedOps = map[string]Kind{
	"..": DotDot,
	":":  Colon,
	"::": DoubleColon,
	"=":  Equals,
	`\`:  Backslash,
	"|":  Bar,
	"<-": LArrow,
	"->": RArrow,
	"@":  At,
	"~":  Tilde,
	"=>": DArrow,
	// unicode syntax
	"∷": DoubleColon,
	"⇒": DArrow,
	"→": RArrow,
	"←": LArrow,
}

// LookupKeyword returns the keyword kind for ident, if any.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// LookupReservedOp returns the kind of a reserved operator spelling.
func LookupReservedOp(op string) (Kind, bool) {
	k, ok := reservedOps[op]
	return k, ok
}

// OpensLayout reports whether a block follows k ("let", "where", "do", "of").
func OpensLayout(k Kind) bool {
	switch k {
	case KwLet, KwWhere, KwDo, KwOf:
		return true
	default:
		return false
	}
}
