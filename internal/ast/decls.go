package ast

import (
	"strconv"
	"strings"

	"hsfront/internal/cst"
	"hsfront/internal/source"
	"hsfront/internal/token"
)

// Declaration is any top-level or nested declaration.
type Declaration interface {
	Kind() cst.Kind
	Span() source.Span
	Text() string
	// DeclaredName is the name the declaration introduces, "" for
	// declarations that introduce none (pattern bindings, defaults,
	// instances of unnamed heads) or when recovery lost it.
	DeclaredName() string
}

// AsDeclaration wraps n in its typed declaration wrapper.
func AsDeclaration(n Node) (Declaration, bool) {
	switch n.Kind() {
	case cst.TypeSignature:
		return TypeSignature{n}, true
	case cst.DefaultSignature:
		return DefaultSignature{TypeSignature{n}}, true
	case cst.ValueDeclaration:
		return ValueDeclaration{n}, true
	case cst.DataDeclaration:
		return DataDeclaration{dataDecl{n}}, true
	case cst.NewtypeDeclaration:
		return NewtypeDeclaration{dataDecl{n}}, true
	case cst.TypeDeclaration:
		return TypeDeclaration{n}, true
	case cst.TypeFamilyDeclaration:
		return TypeFamilyDeclaration{n}, true
	case cst.TypeInstanceDeclaration:
		return TypeInstanceDeclaration{n}, true
	case cst.ClassDeclaration:
		return ClassDeclaration{n}, true
	case cst.InstanceDeclaration:
		return InstanceDeclaration{n}, true
	case cst.DefaultDeclaration:
		return DefaultDeclaration{n}, true
	case cst.DerivingDeclaration:
		return DerivingDeclaration{n}, true
	case cst.FixityDeclaration:
		return FixityDeclaration{n}, true
	case cst.ForeignDeclaration:
		return ForeignDeclaration{n}, true
	case cst.CdeclDataDeclaration:
		return CdeclDataDeclaration{n}, true
	case cst.SpliceDeclaration:
		return SpliceDeclaration{n}, true
	}
	return nil, false
}

func qnames(n Node) []QName {
	return wrapAll(n.childrenOf(cst.QName), func(n Node) QName { return QName{n} })
}

func firstName(names []QName) string {
	if len(names) == 0 {
		return ""
	}
	return names[0].Name()
}

// TypeSignature is "f, g :: t".
type TypeSignature struct{ Node }

func (s TypeSignature) QNames() []QName { return qnames(s.Node) }

func (s TypeSignature) Ttype() (Ttype, error) {
	n, err := s.required(cst.Ttype)
	return wrapRequired(n, err, func(n Node) Ttype { return Ttype{n} })
}

func (s TypeSignature) DeclaredName() string { return firstName(s.QNames()) }

// DefaultSignature is "default f :: t" inside a class.
type DefaultSignature struct{ TypeSignature }

// ValueDeclaration is a function or pattern binding.
type ValueDeclaration struct{ Node }

// Lhs returns the left-hand side, parsed as an expression.
func (d ValueDeclaration) Lhs() (Node, bool) {
	kids := d.Children()
	if len(kids) == 0 || kids[0].Kind() == cst.Rhs {
		return Node{}, false
	}
	return kids[0], true
}

func (d ValueDeclaration) Rhs() (Rhs, error) {
	n, err := d.required(cst.Rhs)
	return wrapRequired(n, err, func(n Node) Rhs { return Rhs{n} })
}

// DeclaredName returns the bound function or operator; pattern bindings
// bind no single name.
func (d ValueDeclaration) DeclaredName() string {
	lhs, ok := d.Lhs()
	if !ok {
		return ""
	}
	return boundName(lhs)
}

func boundName(n Node) string {
	switch n.Kind() {
	case cst.ExprVar:
		return QName{n}.Name()
	case cst.ExprApp:
		kids := n.Children()
		if len(kids) > 0 {
			return boundName(kids[0])
		}
	case cst.ExprParen:
		// (f x) y = …
		if kids := n.Children(); len(kids) == 1 && kids[0].Kind() == cst.ExprApp {
			return boundName(kids[0])
		}
	case cst.ExprInfix:
		if op, ok := n.childOf(cst.Op); ok {
			if name := (QName{op}).Name(); name != "" && !strings.HasPrefix(name, ":") {
				return name
			}
		}
	}
	return ""
}

// Rhs is "= e" or a list of guarded alternatives, with optional where
// bindings.
type Rhs struct{ Node }

// Expr returns the body of an unguarded right-hand side.
func (r Rhs) Expr() (Node, bool) {
	for _, c := range r.Children() {
		if c.Kind().IsExpr() {
			return c, true
		}
	}
	return Node{}, false
}

func (r Rhs) Guards() []Node { return r.childrenOf(cst.GuardedRhs) }

// Where returns the declarations of the where clause.
func (r Rhs) Where() []Declaration {
	w, ok := r.childOf(cst.WhereBindings)
	if !ok {
		return nil
	}
	decls, _ := w.childOf(cst.Decls)
	return declarationsOf(decls)
}

func declarationsOf(n Node) []Declaration {
	var out []Declaration
	for _, c := range n.Children() {
		if d, ok := AsDeclaration(c); ok {
			out = append(out, d)
		}
	}
	return out
}

// dataDecl holds what data and newtype declarations share.
type dataDecl struct{ Node }

func (d dataDecl) CtypePragma() (CtypePragma, bool) {
	n, ok := d.childOf(cst.CtypePragma)
	return wrapOne(n, ok, func(n Node) CtypePragma { return CtypePragma{Pragma{n}} })
}

func (d dataDecl) Context() (Node, bool) { return d.childOf(cst.Context) }

func (d dataDecl) Simpletype() (Simpletype, error) {
	n, err := d.required(cst.Simpletype)
	return wrapRequired(n, err, func(n Node) Simpletype { return Simpletype{n} })
}

func (d dataDecl) KindSignature() (KindSignature, bool) {
	n, ok := d.childOf(cst.KindSignature)
	return wrapOne(n, ok, func(n Node) KindSignature { return KindSignature{n} })
}

func (d dataDecl) Constrs() []Constr {
	return wrapAll(d.childrenOf(cst.Constr), func(n Node) Constr { return Constr{n} })
}

// GadtConstrs returns the constructor signatures of a GADT-style body.
func (d dataDecl) GadtConstrs() []TypeSignature {
	body, ok := d.childOf(cst.GadtBody)
	if !ok {
		return nil
	}
	return wrapAll(body.childrenOf(cst.GadtConstr), func(n Node) TypeSignature { return TypeSignature{n} })
}

func (d dataDecl) Deriving() []Node { return d.childrenOf(cst.Deriving) }

func (d dataDecl) DeclaredName() string {
	st, err := d.Simpletype()
	if err != nil {
		return ""
	}
	return st.DeclaredName()
}

type DataDeclaration struct{ dataDecl }

type NewtypeDeclaration struct{ dataDecl }

// TypeDeclaration is a type synonym, a standalone kind signature or a
// role annotation.
type TypeDeclaration struct{ Node }

func (d TypeDeclaration) Simpletype() (Simpletype, bool) {
	n, ok := d.childOf(cst.Simpletype)
	return wrapOne(n, ok, func(n Node) Simpletype { return Simpletype{n} })
}

func (d TypeDeclaration) KindSignature() (KindSignature, bool) {
	n, ok := d.childOf(cst.KindSignature)
	return wrapOne(n, ok, func(n Node) KindSignature { return KindSignature{n} })
}

func (d TypeDeclaration) Ttype() (Ttype, bool) {
	n, ok := d.childOf(cst.Ttype)
	return wrapOne(n, ok, func(n Node) Ttype { return Ttype{n} })
}

// IsRole reports "type role T r…".
func (d TypeDeclaration) IsRole() bool {
	for _, tok := range d.Tokens() {
		if tok.Is("role") {
			return true
		}
	}
	return false
}

func (d TypeDeclaration) DeclaredName() string {
	if st, ok := d.Simpletype(); ok {
		return st.DeclaredName()
	}
	return firstName(qnames(d.Node))
}

// TypeFamilyDeclaration is "type family" or "data family".
type TypeFamilyDeclaration struct{ Node }

func (d TypeFamilyDeclaration) IsData() bool {
	_, ok := d.token(token.KwData)
	return ok
}

func (d TypeFamilyDeclaration) Simpletype() (Simpletype, error) {
	n, err := d.required(cst.Simpletype)
	return wrapRequired(n, err, func(n Node) Simpletype { return Simpletype{n} })
}

func (d TypeFamilyDeclaration) KindSignature() (KindSignature, bool) {
	n, ok := d.childOf(cst.KindSignature)
	return wrapOne(n, ok, func(n Node) KindSignature { return KindSignature{n} })
}

// Equations returns the equations of a closed family.
func (d TypeFamilyDeclaration) Equations() []Node {
	eqs, ok := d.childOf(cst.TypeEquations)
	if !ok {
		return nil
	}
	return eqs.childrenOf(cst.TypeEquation)
}

func (d TypeFamilyDeclaration) DeclaredName() string {
	st, err := d.Simpletype()
	if err != nil {
		return ""
	}
	return st.DeclaredName()
}

// TypeInstanceDeclaration is a type, data or newtype instance.
type TypeInstanceDeclaration struct{ Node }

func (d TypeInstanceDeclaration) DeclaredName() string {
	for _, c := range d.Children() {
		if c.Kind().IsType() {
			return headName(c)
		}
	}
	return ""
}

// ClassDeclaration is "class ctx => C a | fundeps where cdecls".
type ClassDeclaration struct{ Node }

func (d ClassDeclaration) Context() (Node, bool) { return d.childOf(cst.Context) }

func (d ClassDeclaration) Simpletype() (Simpletype, error) {
	n, err := d.required(cst.Simpletype)
	return wrapRequired(n, err, func(n Node) Simpletype { return Simpletype{n} })
}

func (d ClassDeclaration) Fundeps() []Node {
	fd, ok := d.childOf(cst.Fundeps)
	if !ok {
		return nil
	}
	return fd.childrenOf(cst.Fundep)
}

func (d ClassDeclaration) Cdecls() (Cdecls, bool) {
	n, ok := d.childOf(cst.Cdecls)
	return wrapOne(n, ok, func(n Node) Cdecls { return Cdecls{n} })
}

func (d ClassDeclaration) DeclaredName() string {
	st, err := d.Simpletype()
	if err != nil {
		return ""
	}
	return st.DeclaredName()
}

// Cdecls is the body of a class.
type Cdecls struct{ Node }

func (c Cdecls) Declarations() []Declaration { return declarationsOf(c.Node) }

func (c Cdecls) Signatures() []TypeSignature {
	return wrapAll(c.childrenOf(cst.TypeSignature), func(n Node) TypeSignature { return TypeSignature{n} })
}

func (c Cdecls) DataDeclarations() []CdeclDataDeclaration {
	return wrapAll(c.childrenOf(cst.CdeclDataDeclaration), func(n Node) CdeclDataDeclaration { return CdeclDataDeclaration{n} })
}

// Minimal returns the class's MINIMAL pragma.
func (c Cdecls) Minimal() (MinimalPragma, bool) {
	n, ok := c.childOf(cst.MinimalPragma)
	return wrapOne(n, ok, func(n Node) MinimalPragma { return MinimalPragma{Pragma{n}} })
}

// InstanceDeclaration is "instance [overlap] ctx => C t where idecls".
type InstanceDeclaration struct{ Node }

// OverlapPragma returns OVERLAPPING and friends.
func (d InstanceDeclaration) OverlapPragma() (OtherPragma, bool) {
	n, ok := d.childOf(cst.OtherPragma)
	return wrapOne(n, ok, func(n Node) OtherPragma { return OtherPragma{Pragma{n}} })
}

func (d InstanceDeclaration) Ttype() (Ttype, error) {
	n, err := d.required(cst.Ttype)
	return wrapRequired(n, err, func(n Node) Ttype { return Ttype{n} })
}

func (d InstanceDeclaration) Idecls() (Idecls, bool) {
	n, ok := d.childOf(cst.Idecls)
	return wrapOne(n, ok, func(n Node) Idecls { return Idecls{n} })
}

// DeclaredName returns the class being instantiated.
func (d InstanceDeclaration) DeclaredName() string {
	t, err := d.Ttype()
	if err != nil {
		return ""
	}
	return t.HeadName()
}

// Idecls is the body of an instance.
type Idecls struct{ Node }

func (i Idecls) Declarations() []Declaration { return declarationsOf(i.Node) }

func (i Idecls) Bindings() []ValueDeclaration {
	return wrapAll(i.childrenOf(cst.ValueDeclaration), func(n Node) ValueDeclaration { return ValueDeclaration{n} })
}

// DefaultDeclaration is "default (t, …)".
type DefaultDeclaration struct{ Node }

func (d DefaultDeclaration) Types() []Node {
	var out []Node
	for _, c := range d.Children() {
		if c.Kind().IsType() {
			out = append(out, c)
		}
	}
	return out
}

func (DefaultDeclaration) DeclaredName() string { return "" }

// DerivingDeclaration is a standalone "deriving instance".
type DerivingDeclaration struct{ Node }

func (d DerivingDeclaration) Ttype() (Ttype, error) {
	n, err := d.required(cst.Ttype)
	return wrapRequired(n, err, func(n Node) Ttype { return Ttype{n} })
}

func (d DerivingDeclaration) DeclaredName() string {
	t, err := d.Ttype()
	if err != nil {
		return ""
	}
	return t.HeadName()
}

// FixityDeclaration is "infixl 6 <+>, `op`".
type FixityDeclaration struct{ Node }

// Keyword returns infix, infixl or infixr.
func (d FixityDeclaration) Keyword() string {
	toks := d.Tokens()
	if len(toks) == 0 {
		return ""
	}
	return toks[0].Text
}

// Precedence returns the declared precedence, false when omitted.
func (d FixityDeclaration) Precedence() (int, bool) {
	tok, ok := d.token(token.IntLit)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(tok.Text)
	return n, err == nil
}

func (d FixityDeclaration) Operators() []QName { return qnames(d.Node) }

func (d FixityDeclaration) DeclaredName() string { return firstName(d.Operators()) }

// SpliceDeclaration is a naked top-level expression.
type SpliceDeclaration struct{ Node }

func (SpliceDeclaration) DeclaredName() string { return "" }

// Cdecl is the accessor set foreign declarations share with associated
// data declarations.
type Cdecl interface {
	Declaration
	QNames() []QName
	KindSignatures() []KindSignature
	CtypePragma() (CtypePragma, bool)
	Ttype() (Ttype, error)
}

var (
	_ Cdecl = ForeignDeclaration{}
	_ Cdecl = CdeclDataDeclaration{}
)

// ForeignDeclaration is "foreign import/export callconv [safety] [entity] v :: t".
type ForeignDeclaration struct{ Node }

func (d ForeignDeclaration) QNames() []QName { return qnames(d.Node) }

func (d ForeignDeclaration) KindSignatures() []KindSignature {
	return wrapAll(d.childrenOf(cst.KindSignature), func(n Node) KindSignature { return KindSignature{n} })
}

func (d ForeignDeclaration) CtypePragma() (CtypePragma, bool) {
	n, ok := d.childOf(cst.CtypePragma)
	return wrapOne(n, ok, func(n Node) CtypePragma { return CtypePragma{Pragma{n}} })
}

func (d ForeignDeclaration) Ttype() (Ttype, error) {
	n, err := d.required(cst.Ttype)
	return wrapRequired(n, err, func(n Node) Ttype { return Ttype{n} })
}

// Direction returns "import" or "export".
func (d ForeignDeclaration) Direction() string {
	toks := d.Tokens()
	if len(toks) < 2 {
		return ""
	}
	if toks[1].Kind == token.KwImport || toks[1].Is("export") {
		return toks[1].Text
	}
	return ""
}

var (
	callConvWords = map[string]bool{
		"ccall": true, "capi": true, "stdcall": true, "cplusplus": true,
		"jvm": true, "dotnet": true, "javascript": true, "prim": true,
	}
	safetyWords = map[string]bool{"safe": true, "unsafe": true, "interruptible": true}
)

func (d ForeignDeclaration) CallConv() string {
	w, _ := d.word(callConvWords)
	return w
}

// Safety returns the safety annotation, "" when omitted.
func (d ForeignDeclaration) Safety() string {
	w, _ := d.word(safetyWords)
	return w
}

// Entity returns the unquoted entity string.
func (d ForeignDeclaration) Entity() (string, bool) {
	tok, ok := d.token(token.StringLit)
	if !ok {
		return "", false
	}
	return unquote(tok.Text), true
}

func (d ForeignDeclaration) DeclaredName() string { return firstName(d.QNames()) }

// CdeclDataDeclaration is an associated type or data family declared in a
// class body.
type CdeclDataDeclaration struct{ Node }

func (d CdeclDataDeclaration) Simpletype() (Simpletype, error) {
	n, err := d.required(cst.Simpletype)
	return wrapRequired(n, err, func(n Node) Simpletype { return Simpletype{n} })
}

// QNames returns the declared family name.
func (d CdeclDataDeclaration) QNames() []QName {
	st, err := d.Simpletype()
	if err != nil {
		return nil
	}
	return qnames(st.Node)
}

func (d CdeclDataDeclaration) KindSignatures() []KindSignature {
	return wrapAll(d.childrenOf(cst.KindSignature), func(n Node) KindSignature { return KindSignature{n} })
}

func (d CdeclDataDeclaration) CtypePragma() (CtypePragma, bool) {
	n, ok := d.childOf(cst.CtypePragma)
	return wrapOne(n, ok, func(n Node) CtypePragma { return CtypePragma{Pragma{n}} })
}

// Ttype returns the default of "type T a = t"; families declared without
// one report a MissingChildError.
func (d CdeclDataDeclaration) Ttype() (Ttype, error) {
	n, err := d.required(cst.Ttype)
	return wrapRequired(n, err, func(n Node) Ttype { return Ttype{n} })
}

func (d CdeclDataDeclaration) DeclaredName() string { return firstName(d.QNames()) }

// Simpletype is the head of a type declaration: T a b or a :+: b.
type Simpletype struct{ Node }

func (s Simpletype) QName() (QName, error) {
	n, err := s.required(cst.QName)
	return wrapRequired(n, err, func(n Node) QName { return QName{n} })
}

// Binders returns the type variable binders in order.
func (s Simpletype) Binders() []Node {
	var out []Node
	for _, c := range s.Children() {
		if c.Kind() != cst.QName {
			out = append(out, c)
		}
	}
	return out
}

func (s Simpletype) DeclaredName() string {
	q, err := s.QName()
	if err != nil {
		return ""
	}
	return q.Name()
}

// Constr is one data constructor.
type Constr struct{ Node }

func (c Constr) QName() (QName, error) {
	n, err := c.required(cst.QName)
	return wrapRequired(n, err, func(n Node) QName { return QName{n} })
}

func (c Constr) Context() (Node, bool) { return c.childOf(cst.Context) }

// IsRecord reports the record form C { f :: t }.
func (c Constr) IsRecord() bool {
	_, ok := c.token(token.LBrace)
	return ok
}

// Fields returns the record field declarations.
func (c Constr) Fields() []Node { return c.childrenOf(cst.Fielddecl) }

// FieldNames flattens the field names of a record constructor.
func (c Constr) FieldNames() []QName {
	var out []QName
	for _, f := range c.Fields() {
		out = append(out, qnames(f)...)
	}
	return out
}

// Args returns the argument types of a positional or infix constructor;
// existential binders are left out.
func (c Constr) Args() []Node {
	var out []Node
	seenCon := false
	for _, k := range c.Children() {
		switch {
		case k.Kind() == cst.QName:
			seenCon = true
		case k.Kind() == cst.Context || k.Kind() == cst.Fielddecl:
		case k.Kind().IsType():
			// infix form: the left operand comes before the name
			if seenCon || c.isInfix() {
				out = append(out, k)
			}
		}
	}
	return out
}

func (c Constr) isInfix() bool {
	q, err := c.QName()
	return err == nil && q.IsOperator()
}

// KindSignature is ":: k".
type KindSignature struct{ Node }

// Type returns the kind.
func (k KindSignature) Type() (Node, error) {
	return firstType(k.Node)
}

// Ttype is a top-level type: a signature's type or an instance head.
type Ttype struct{ Node }

// Type returns the wrapped type expression.
func (t Ttype) Type() (Node, error) {
	return firstType(t.Node)
}

// HeadName returns the constructor at the head of the type, looking
// through forall, context and application: "Show (T a)" -> "Show".
func (t Ttype) HeadName() string {
	ty, err := t.Type()
	if err != nil {
		return ""
	}
	return headName(ty)
}

func firstType(n Node) (Node, error) {
	for _, c := range n.Children() {
		if c.Kind().IsType() {
			return c, nil
		}
	}
	return Node{}, &MissingChildError{Parent: n.Kind(), Want: cst.KindInvalid, Span: n.Span()}
}

func headName(n Node) string {
	kids := n.Children()
	switch n.Kind() {
	case cst.TypeCon:
		return QName{n}.Name()
	case cst.TypeForall, cst.TypeQualified:
		if len(kids) > 0 {
			return headName(kids[len(kids)-1])
		}
	case cst.TypeApp, cst.TypeParen, cst.TypeKinded:
		if len(kids) > 0 {
			return headName(kids[0])
		}
	case cst.TypeInfix:
		if op, ok := n.childOf(cst.Op); ok {
			return QName{op}.Name()
		}
	}
	return ""
}

func unquote(s string) string {
	if u, err := strconv.Unquote(s); err == nil {
		return u
	}
	return strings.Trim(s, `"`)
}
