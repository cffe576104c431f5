package lexer

import (
	"hsfront/internal/diag"
	"hsfront/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil — тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
}

func (lx *Lexer) errRecovered(code diag.Code, sp source.Span, msg string) {
	diag.ReportError(lx.opts.Reporter, code, sp, msg).
		WithRecovery(diag.RecoverSynthesizedEnd).
		Emit()
}
