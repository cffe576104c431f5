package lexer_test

import (
	"strings"
	"testing"

	"hsfront/internal/diag"
	"hsfront/internal/lexer"
	"hsfront/internal/source"
	"hsfront/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.hs", []byte(src)))
	bag := diag.NewBag(0)
	return lexer.Tokenize(f, lexer.Options{Reporter: diag.BagReporter{Bag: bag}}), bag
}

// significant drops trivia and EOF.
func significant(toks []token.Token) []token.Token {
	var out []token.Token
	for _, tk := range toks {
		if !tk.IsTrivia() && tk.Kind != token.EOF {
			out = append(out, tk)
		}
	}
	return out
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tk := range toks {
		out[i] = tk.Kind
	}
	return out
}

func assertKinds(t *testing.T, src string, want ...token.Kind) []token.Token {
	t.Helper()
	toks, _ := lexAll(t, src)
	sig := significant(toks)
	got := kinds(sig)
	if len(got) != len(want) {
		t.Fatalf("%q: got %v, want %v", src, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d = %v(%q), want %v", src, i, got[i], sig[i].Text, want[i])
		}
	}
	return sig
}

func TestTokensTileInput(t *testing.T) {
	inputs := []string{
		"module Main where\n\nmain :: IO ()\nmain = do\n  print 1 -- hi\n",
		"{- outer {- inner -} still -}\nx = 'a' : \"s\\n\" ++ show 0x1F",
		"{-# LANGUAGE TypeFamilies #-}\n\tf x = x\r\n",
		"\"unterminated\nnext",
		"x = y {- open",
		"αβ = λ → ∀",
		"",
	}
	for _, src := range inputs {
		toks, _ := lexAll(t, src)
		var sb strings.Builder
		var off uint32
		for _, tk := range toks {
			if tk.Span.Start != off {
				t.Fatalf("%q: gap or overlap at %d (token starts at %d)", src, off, tk.Span.Start)
			}
			sb.WriteString(tk.Text)
			off = tk.Span.End
		}
		if sb.String() != src {
			t.Errorf("tokens do not reconstruct input:\n got %q\nwant %q", sb.String(), src)
		}
		if toks[len(toks)-1].Kind != token.EOF {
			t.Errorf("%q: last token is %v, want EOF", src, toks[len(toks)-1].Kind)
		}
	}
}

func TestIdentifiersAndQualifiedNames(t *testing.T) {
	sig := assertKinds(t, "foldl' Data.Map.lookup M.Map M.:+ Prelude.+ x_1 _ _x",
		token.VarId, token.QVarId, token.QConId, token.QConSym, token.QVarSym,
		token.VarId, token.Underscore, token.VarId)
	if sig[0].Text != "foldl'" {
		t.Errorf("prime not part of identifier: %q", sig[0].Text)
	}

	// keyword after module prefix is not qualified
	assertKinds(t, "M.where", token.ConId, token.VarSym, token.KwWhere)
	// A.. is the operator . qualified by A; a sequence needs a space
	assertKinds(t, "[A..B]", token.LBracket, token.QVarSym, token.ConId, token.RBracket)
	assertKinds(t, "[A .. B]", token.LBracket, token.ConId, token.DotDot, token.ConId, token.RBracket)
}

func TestKeywordsAndReservedOps(t *testing.T) {
	assertKinds(t, "data T = A | B deriving Show",
		token.KwData, token.ConId, token.Equals, token.ConId, token.Bar, token.ConId,
		token.KwDeriving, token.ConId)
	assertKinds(t, `\x -> x <- y :: a => b ~ c @d .. :`,
		token.Backslash, token.VarId, token.RArrow, token.VarId, token.LArrow, token.VarId,
		token.DoubleColon, token.VarId, token.DArrow, token.VarId, token.Tilde, token.VarId,
		token.At, token.VarId, token.DotDot, token.Colon)
	assertKinds(t, "a <$> b :| c ==> d", token.VarId, token.VarSym, token.VarId, token.ConSym,
		token.VarId, token.VarSym, token.VarId)
	assertKinds(t, "f ∷ a → b", token.VarId, token.DoubleColon, token.VarId, token.RArrow, token.VarId)
}

func TestCommentsVersusOperators(t *testing.T) {
	assertKinds(t, "a --> b", token.VarId, token.VarSym, token.VarId)
	toks, _ := lexAll(t, "a -- comment\nb ---- also\nc")
	var comments int
	for _, tk := range toks {
		if tk.Kind == token.LineComment {
			comments++
		}
	}
	if comments != 2 {
		t.Errorf("expected 2 line comments, got %d", comments)
	}
	toks, _ = lexAll(t, "{- a {- b -} c -} x")
	if toks[0].Kind != token.BlockComment || toks[0].Text != "{- a {- b -} c -}" {
		t.Errorf("nested comment lexed as %v %q", toks[0].Kind, toks[0].Text)
	}
}

func TestNumbers(t *testing.T) {
	sig := assertKinds(t, "42 0x1F 0o17 0b101 1_000_000 3.14 1e10 2.5e-3 1..2",
		token.IntLit, token.IntLit, token.IntLit, token.IntLit, token.IntLit,
		token.FloatLit, token.FloatLit, token.FloatLit, token.IntLit, token.DotDot, token.IntLit)
	if sig[4].Text != "1_000_000" {
		t.Errorf("underscored literal = %q", sig[4].Text)
	}
	assertKinds(t, "0xg", token.IntLit, token.VarId)
}

func TestCharsAndTicks(t *testing.T) {
	assertKinds(t, `'a' '\n' '\'' '"' '\x41' '\SOH'`,
		token.CharLit, token.CharLit, token.CharLit, token.CharLit, token.CharLit, token.CharLit)
	assertKinds(t, "'Just ''T 'foo", token.Tick, token.ConId, token.Tick, token.Tick, token.ConId, token.Tick, token.VarId)
}

func TestStrings(t *testing.T) {
	sig := assertKinds(t, "\"a\\\"b\" \"gap\\   \\end\" \"\\1234\\&5\"",
		token.StringLit, token.StringLit, token.StringLit)
	if sig[1].Text != `"gap\   \end"` {
		t.Errorf("string gap lexed as %q", sig[1].Text)
	}
}

func TestPragmaTriple(t *testing.T) {
	sig := assertKinds(t, "{-# MINIMAL foo | bar, baz #-}",
		token.PragmaOpen, token.PragmaName, token.VarId, token.Bar, token.VarId, token.Comma,
		token.VarId, token.PragmaClose)
	if sig[1].Text != "MINIMAL" {
		t.Errorf("pragma name = %q", sig[1].Text)
	}
	// the content operator must not swallow the closing delimiter
	assertKinds(t, "{-# RULES \"x\" f . g = h#-}",
		token.PragmaOpen, token.PragmaName, token.StringLit, token.VarId, token.VarSym,
		token.VarId, token.Equals, token.VarId, token.PragmaClose)
	// line comments are not recognised inside pragmas
	assertKinds(t, "{-# OPTIONS_GHC --fast #-}",
		token.PragmaOpen, token.PragmaName, token.VarSym, token.VarId, token.PragmaClose)
}

func TestLexErrorsRecover(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
		last string
	}{
		{"string at eol", "s = \"abc\nt = 1", diag.LexUnterminatedString, `"abc`},
		{"string at eof", "s = \"abc", diag.LexUnterminatedString, `"abc`},
		{"block comment", "x {- never", diag.LexUnterminatedBlockComment, "{- never"},
		{"char", `c = '\n`, diag.LexUnterminatedChar, `'\n`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, bag := lexAll(t, tt.src)
			if bag.Len() == 0 || bag.Items()[0].Code != tt.code {
				t.Fatalf("diagnostics = %v, want %s", bag.Items(), tt.code.ID())
			}
			if bag.Items()[0].Recovery != diag.RecoverSynthesizedEnd {
				t.Errorf("recovery = %v, want synthesized-end", bag.Items()[0].Recovery)
			}
			found := false
			for _, tk := range toks {
				if tk.Text == tt.last {
					found = true
				}
			}
			if !found {
				t.Errorf("no token with text %q", tt.last)
			}
		})
	}

	_, bag := lexAll(t, "{-# INLINE f")
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnterminatedPragma {
		t.Errorf("unterminated pragma diagnostics = %v", bag.Items())
	}
	_, bag = lexAll(t, `"\q"`)
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexBadEscape {
		t.Errorf("bad escape diagnostics = %v", bag.Items())
	}
}

func TestPositionsUseLayoutColumns(t *testing.T) {
	toks, _ := lexAll(t, "f = do\n\tx\n        y")
	sig := significant(toks)
	x, y := sig[3], sig[4]
	if x.Pos.Col != 9 || y.Pos.Col != 9 {
		t.Errorf("tab column = %d, space column = %d; want 9 and 9", x.Pos.Col, y.Pos.Col)
	}
	if x.Pos.Line != 2 || y.Pos.Line != 3 {
		t.Errorf("lines = %d, %d", x.Pos.Line, y.Pos.Line)
	}
}

func TestCheckpointRestore(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("t.hs", []byte("{-# SCC x #-} y")))
	lx := lexer.New(f, lexer.Options{})
	lx.Next() // {-#
	cp := lx.Checkpoint()
	first := []token.Token{lx.Next(), lx.Next(), lx.Next()}
	lx.Restore(cp)
	for i := range first {
		if got := lx.Next(); got != first[i] {
			t.Fatalf("after restore token %d = %v, want %v", i, got, first[i])
		}
	}

	// a checkpoint taken after Peek resumes before the peeked token
	lx.Restore(cp)
	peeked := lx.Peek()
	cp2 := lx.Checkpoint()
	lx.Next()
	lx.Restore(cp2)
	if got := lx.Next(); got != peeked {
		t.Errorf("restore after peek = %v, want %v", got, peeked)
	}
	if cp2.Offset() != 3 {
		t.Errorf("checkpoint offset = %d, want 3", cp2.Offset())
	}
}

func TestCursor(t *testing.T) {
	fs := source.NewFileSet()
	c := lexer.NewCursor(fs.Get(fs.AddVirtual("c.hs", []byte("{-# λ"))))
	if !c.HasPrefix("{-#") || c.HasPrefix("{-# λx") {
		t.Error("HasPrefix")
	}
	c.Advance(4)
	if !c.HasPrefix("λ") {
		t.Errorf("at %d, want the rune", c.Off)
	}
	c.Advance(len("λ"))
	if !c.EOF() || c.HasPrefix(" ") {
		t.Errorf("at %d, want EOF", c.Off)
	}
}
