package token

import (
	"strings"

	"hsfront/internal/source"
)

// Token is one lexeme with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	Pos  source.LineCol // line and layout column of Span.Start
}

// IsTrivia reports whether the token is whitespace or a comment.
func (t Token) IsTrivia() bool { return t.Kind.IsTrivia() }

// IsLiteral reports whether the token is a numeric, char or string literal.
func (t Token) IsLiteral() bool { return t.Kind.IsLiteral() }

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// Is reports whether the token is a VarId spelled word. Used for contextual
// keywords such as "qualified" or "family".
func (t Token) Is(word string) bool {
	return t.Kind == VarId && t.Text == word
}

// IsOp reports whether the token is a VarSym spelled op ("!", "-", ".").
func (t Token) IsOp(op string) bool {
	return t.Kind == VarSym && t.Text == op
}

// Qualifier splits a qualified name into module prefix and local part:
// "Data.Map.lookup" -> ("Data.Map", "lookup"), "M.:+" -> ("M", ":+").
// Unqualified tokens return an empty qualifier.
func (t Token) Qualifier() (module, name string) {
	if !t.Kind.IsQualified() {
		return "", t.Text
	}
	return SplitQualified(t.Text)
}

// SplitQualified splits text at the dot that ends the module prefix.
func SplitQualified(text string) (module, name string) {
	// модульный префикс: последовательность ConId, разделённых точками
	i := 0
	last := -1
	for i < len(text) {
		if text[i] < 'A' || text[i] > 'Z' {
			if last < 0 {
				return "", text
			}
			break
		}
		j := i
		for j < len(text) && isIdentByte(text[j]) {
			j++
		}
		if j < len(text) && text[j] == '.' && j+1 < len(text) {
			last = j
			i = j + 1
			continue
		}
		break
	}
	if last < 0 {
		return "", text
	}
	return text[:last], text[last+1:]
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '\'' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

// Virtual builds a layout token of kind k at the start of span.
func Virtual(k Kind, at source.Span, pos source.LineCol) Token {
	return Token{Kind: k, Span: at.ZeroAt(), Pos: pos}
}

// String renders the token for dumps: Kind("text").
func (t Token) String() string {
	var sb strings.Builder
	sb.WriteString(t.Kind.String())
	if t.Text != "" && t.Kind.String() != t.Text {
		sb.WriteString("(")
		sb.WriteString(quoteText(t.Text))
		sb.WriteString(")")
	}
	return sb.String()
}

func quoteText(s string) string {
	r := strings.NewReplacer("\n", `\n`, "\t", `\t`, "\r", `\r`)
	return r.Replace(s)
}
