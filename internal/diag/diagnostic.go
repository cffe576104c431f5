package diag

import (
	"hsfront/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// Recovery records what a phase did to continue past a problem.
type Recovery uint8

const (
	RecoverNone Recovery = iota
	// RecoverSynthesizedEnd: a literal, comment or pragma was closed at end of input.
	RecoverSynthesizedEnd
	// RecoverForcedClose: implicit layout blocks were closed to match a brace.
	RecoverForcedClose
	// RecoverSkippedTokens: tokens up to the next declaration boundary were skipped.
	RecoverSkippedTokens
	// RecoverInsertedToken: a missing closing token was assumed.
	RecoverInsertedToken
	// RecoverDefaultFixity: the operator was treated as infixl 9.
	RecoverDefaultFixity
	// RecoverLeftAssoc: a precedence conflict was resolved left-associatively.
	RecoverLeftAssoc
)

func (r Recovery) String() string {
	switch r {
	case RecoverSynthesizedEnd:
		return "synthesized-end"
	case RecoverForcedClose:
		return "forced-close"
	case RecoverSkippedTokens:
		return "skipped-tokens"
	case RecoverInsertedToken:
		return "inserted-token"
	case RecoverDefaultFixity:
		return "default-fixity"
	case RecoverLeftAssoc:
		return "left-assoc"
	}
	return ""
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Recovery Recovery
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// Class is shorthand for d.Code.Class().
func (d Diagnostic) Class() Class {
	return d.Code.Class()
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithRecovery(r Recovery) Diagnostic {
	d.Recovery = r
	return d
}
