// Package token defines the lexical vocabulary of Haskell source.
// Invariants:
//   - Token.Text is exactly the source bytes under Token.Span, so the raw
//     token stream (trivia included) tiles the input.
//   - Virtual layout tokens (VOpen, VSemi, VClose) have empty Text and a
//     zero-width span; the lexer never produces them.
//   - Contextual words (qualified, as, hiding, family, forall, ...) are VarId;
//     the parser recognises them by text.
//   - Inside a pragma the lexer emits PragmaOpen, PragmaName, ordinary content
//     tokens and PragmaClose.
package token
