package fixity

import (
	"fmt"
	"strconv"

	"hsfront/internal/diag"
	"hsfront/internal/token"
)

// Collect is the pre-pass over a module's raw tokens: every
// infix/infixl/infixr declaration, top level or nested, lands in t before
// any expression is parsed. It returns the number of operators declared.
func Collect(toks []token.Token, t *Table, r diag.Reporter) int {
	sig := make([]token.Token, 0, len(toks))
	for _, tok := range toks {
		if !tok.IsTrivia() {
			sig = append(sig, tok)
		}
	}

	declared := 0
	for i := 0; i < len(sig); i++ {
		assoc, ok := assocOf(sig[i].Kind)
		if !ok {
			continue
		}
		kw := sig[i]
		f := Fixity{Assoc: assoc, Prec: 9}
		j := i + 1
		if j < len(sig) && sig[j].Kind == token.IntLit {
			f.Prec = precedence(sig[j], r)
			j++
		}
		for j < len(sig) {
			name, next := operatorAt(sig, j)
			if next == j {
				break
			}
			sp := kw.Span.Cover(sig[next-1].Span)
			if prev, dup := t.Declare(name, f, sig[j].Span); dup {
				diag.ReportWarning(r, diag.FixDuplicate, sp, fmt.Sprintf("fixity of %q declared twice", name)).
					WithNote(prev.Span, "previous declaration").
					Emit()
			}
			declared++
			j = next
			if j < len(sig) && sig[j].Kind == token.Comma {
				j++
				continue
			}
			break
		}
		i = j - 1
	}
	return declared
}

func assocOf(k token.Kind) (Assoc, bool) {
	switch k {
	case token.KwInfixl:
		return Left, true
	case token.KwInfixr:
		return Right, true
	case token.KwInfix:
		return None, true
	default:
		return Left, false
	}
}

// precedence reads the digit of a fixity declaration; anything outside 0..9
// is reported and clamped.
func precedence(tok token.Token, r diag.Reporter) int {
	n, err := strconv.Atoi(tok.Text)
	switch {
	case err != nil:
		diag.ReportWarning(r, diag.FixBadPrecedence, tok.Span, fmt.Sprintf("bad precedence %q, using 9", tok.Text)).
			WithRecovery(diag.RecoverDefaultFixity).
			Emit()
		return 9
	case n > 9:
		diag.ReportWarning(r, diag.FixBadPrecedence, tok.Span, fmt.Sprintf("precedence %d out of range 0..9, using 9", n)).
			WithRecovery(diag.RecoverDefaultFixity).
			Emit()
		return 9
	}
	return n
}

// operatorAt recognises `op` or a symbol at sig[i]. It returns the name and
// the index after it; next == i means no operator there.
func operatorAt(sig []token.Token, i int) (name string, next int) {
	tok := sig[i]
	switch {
	case tok.Kind == token.VarSym || tok.Kind == token.ConSym || tok.Kind == token.Tilde:
		return tok.Text, i + 1
	case tok.Kind == token.Backtick && i+2 < len(sig) && sig[i+1].Kind.IsIdent() && sig[i+2].Kind == token.Backtick:
		return sig[i+1].Text, i + 3
	default:
		return "", i
	}
}

// Conflicts reports whether an operator with fixity next cannot follow one
// with fixity prev at the same nesting level without parentheses.
func Conflicts(prev, next Fixity) bool {
	return prev.Prec == next.Prec && (prev.Assoc != next.Assoc || prev.Assoc == None)
}
