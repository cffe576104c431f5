package parser

import (
	"testing"

	"hsfront/internal/cst"
	"hsfront/internal/diag"
)

func TestExpressions(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"var", "x = y", "(ExprVar y)"},
		{"literal", "x = 42", "(ExprLit 42)"},
		{"application", "x = f a b", "(ExprApp (ExprVar f) (ExprVar a) (ExprVar b))"},
		{"qualified", "x = M.f", "(ExprVar M.f)"},
		{"precedence", "x = a + b * c",
			"(ExprInfix (ExprVar a) (Op +) (ExprInfix (ExprVar b) (Op *) (ExprVar c)))"},
		{"left assoc", "x = a - b - c",
			"(ExprInfix (ExprInfix (ExprVar a) (Op -) (ExprVar b)) (Op -) (ExprVar c))"},
		{"right assoc", "x = a ++ b ++ c",
			"(ExprInfix (ExprVar a) (Op ++) (ExprInfix (ExprVar b) (Op ++) (ExprVar c)))"},
		{"dollar", "x = f $ g $ h",
			"(ExprInfix (ExprVar f) (Op $) (ExprInfix (ExprVar g) (Op $) (ExprVar h)))"},
		{"backtick", "x = a `div` b",
			"(ExprInfix (ExprVar a) (Op ` div `) (ExprVar b))"},
		{"application binds tighter", "x = f a + g b",
			"(ExprInfix (ExprApp (ExprVar f) (ExprVar a)) (Op +) (ExprApp (ExprVar g) (ExprVar b)))"},
		{"negation", "x = - a * b",
			"(ExprNeg (Op -) (ExprInfix (ExprVar a) (Op *) (ExprVar b)))"},
		{"negation then plus", "x = - a + b",
			"(ExprInfix (ExprNeg (Op -) (ExprVar a)) (Op +) (ExprVar b))"},
		{"unit", "x = ()", "(ExprCon ( ))"},
		{"tuple constructor", "x = (,)", "(ExprCon ( , ))"},
		{"operator var", "x = (+)", "(ExprVar ( + ))"},
		{"parens", "x = (a)", "(ExprParen ( (ExprVar a) ))"},
		{"tuple", "x = (a, b)", "(ExprTuple ( (ExprVar a) , (ExprVar b) ))"},
		{"tuple section", "x = (, b)", "(ExprTuple ( , (ExprVar b) ))"},
		{"left section", "x = (1 +)", "(ExprLeftSection ( (ExprLit 1) (Op +) ))"},
		{"right section", "x = (+ 1)", "(ExprRightSection ( (Op +) (ExprLit 1) ))"},
		{"backtick section", "x = (`div` 2)", "(ExprRightSection ( (Op ` div `) (ExprLit 2) ))"},
		{"negative in parens", "x = (- 1)", "(ExprParen ( (ExprNeg (Op -) (ExprLit 1)) ))"},
		{"empty list", "x = []", "(ExprCon [ ])"},
		{"list", "x = [a, b]", "(ExprList [ (ExprVar a) , (ExprVar b) ])"},
		{"sequence", "x = [1, 3 .. 9]", "(ExprSeq [ (ExprLit 1) , (ExprLit 3) .. (ExprLit 9) ])"},
		{"open sequence", "x = [1 ..]", "(ExprSeq [ (ExprLit 1) .. ])"},
		{"comprehension", "x = [y | y <- ys, odd y]",
			"(ExprComprehension [ (ExprVar y) | (BindStmt (ExprVar y) <- (ExprVar ys)) , (ExprStmt (ExprApp (ExprVar odd) (ExprVar y))) ])"},
		{"typed", "x = 1 :: Int", "(ExprTyped (ExprLit 1) :: (Ttype (TypeCon Int)))"},
		{"lambda", `x = \y -> y`, `(ExprLambda \ (ExprVar y) -> (ExprVar y))`},
		{"if", "x = if c then a else b", "(ExprIf if (ExprVar c) then (ExprVar a) else (ExprVar b))"},
		{"let", "x = let y = 1 in y",
			"(ExprLet let (Decls (ValueDeclaration (ExprVar y) (Rhs = (ExprLit 1)))) in (ExprVar y))"},
		{"record construction", "x = R { f = 1 }",
			"(ExprRecord (ExprCon R) { (FieldBind (QName f) = (ExprLit 1)) })"},
		{"record update", "x = r { f = 1, g = 2 }",
			"(ExprRecord (ExprVar r) { (FieldBind (QName f) = (ExprLit 1)) , (FieldBind (QName g) = (ExprLit 2)) })"},
		{"type application", "x = show @Int 1",
			"(ExprApp (ExprVar show) (ExprTypeApp @ (TypeCon Int)) (ExprLit 1))"},
		{"scc pragma", `x = {-# SCC "here" #-} f y`,
			`(ExprPragma (SccPragma {-# SCC (GeneralPragmaContent "here") #-}) (ExprApp (ExprVar f) (ExprVar y)))`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rhsExpr(t, tt.src); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestPatterns(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"as pattern", "f xs@(y:_) = y",
			"(ExprApp (ExprVar f) (ExprAs (ExprVar xs) @ (ExprParen ( (ExprInfix (ExprVar y) (Op :) (ExprWildcard _)) ))))"},
		{"bang pattern", "f !x = x",
			"(ExprApp (ExprVar f) (ExprBang ! (ExprVar x)))"},
		{"bang in parens", "f (!x) = x",
			"(ExprApp (ExprVar f) (ExprParen ( (ExprBang ! (ExprVar x)) )))"},
		{"lazy pattern", "f ~(a, b) = a",
			"(ExprApp (ExprVar f) (ExprLazy ~ (ExprTuple ( (ExprVar a) , (ExprVar b) ))))"},
		{"infix definition", "x <> y = x",
			"(ExprInfix (ExprVar x) (Op <>) (ExprVar y))"},
		{"record wildcard", "f R{..} = 1",
			"(ExprApp (ExprVar f) (ExprRecord (ExprCon R) { (FieldBind ..) }))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parseClean(t, tt.src)
			decl := bodyDecls(t, tree)[0]
			lhs := tree.ChildNodes(decl)[0]
			if got := sexpr(tree, lhs); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestBangOperatorStaysInfix(t *testing.T) {
	got := rhsExpr(t, "x = arr ! 3")
	want := "(ExprInfix (ExprVar arr) (Op !) (ExprLit 3))"
	if got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestDoBlock(t *testing.T) {
	src := "main = do\n  x <- getLine\n  let y = x\n  putStrLn y\n"
	want := "(ExprDo do (Stmts" +
		" (BindStmt (ExprVar x) <- (ExprVar getLine))" +
		" (LetStmt let (Decls (ValueDeclaration (ExprVar y) (Rhs = (ExprVar x)))))" +
		" (ExprStmt (ExprApp (ExprVar putStrLn) (ExprVar y)))))"
	if got := rhsExpr(t, src); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestDoExplicitBraces(t *testing.T) {
	src := "main = do { a; b }\n"
	want := "(ExprDo do (Stmts { (ExprStmt (ExprVar a)) ; (ExprStmt (ExprVar b)) }))"
	if got := rhsExpr(t, src); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestIfInsideDo(t *testing.T) {
	src := "main = do\n  if c\n  then a\n  else b\n"
	tree := parseClean(t, src)
	ifNode := firstOfKind(tree, tree.Root, cst.ExprIf)
	if ifNode == cst.NoNode {
		t.Fatalf("no ExprIf in %s", sexpr(tree, tree.Root))
	}
	if got := len(tree.ChildNodes(ifNode)); got != 3 {
		t.Errorf("if has %d sub-expressions, want 3: %s", got, sexpr(tree, ifNode))
	}
}

func TestCaseAlternatives(t *testing.T) {
	src := "f x = case x of\n  Just y -> y\n  Nothing -> 0\n"
	want := "(ExprCase case (ExprVar x) of (Alts" +
		" (Alt (ExprApp (ExprCon Just) (ExprVar y)) (Rhs -> (ExprVar y)))" +
		" (Alt (ExprCon Nothing) (Rhs -> (ExprLit 0)))))"
	if got := rhsExpr(t, src); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestCaseWithGuards(t *testing.T) {
	src := "f x = case x of\n  n | n > 0 -> 1\n    | otherwise -> 0\n"
	tree := parseClean(t, src)
	alt := firstOfKind(tree, tree.Root, cst.Alt)
	rhs := firstOfKind(tree, alt, cst.Rhs)
	if got := len(tree.ChildNodes(rhs)); got != 2 {
		t.Errorf("want 2 guarded alternatives, got %d: %s", got, sexpr(tree, rhs))
	}
}

func TestLambdaCase(t *testing.T) {
	src := "f = \\case\n  Just y -> y\n  _ -> 0\n"
	want := `(ExprLambdaCase \ case (Alts` +
		" (Alt (ExprApp (ExprCon Just) (ExprVar y)) (Rhs -> (ExprVar y)))" +
		" (Alt (ExprWildcard _) (Rhs -> (ExprLit 0)))))"
	if got := rhsExpr(t, src); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestMultiWayIf(t *testing.T) {
	src := "x = if | a -> 1\n       | otherwise -> 2\n"
	tree := parseClean(t, src)
	ifNode := firstOfKind(tree, tree.Root, cst.ExprIf)
	if got := len(tree.ChildNodes(ifNode)); got != 2 {
		t.Errorf("want 2 guards, got %d: %s", got, sexpr(tree, ifNode))
	}
}

func TestFixityConflicts(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
		want string
	}{
		{
			name: "non-associative chain",
			src:  "x = a == b == c",
			code: diag.FixNonAssocChain,
			want: "(ExprInfix (ExprInfix (ExprVar a) (Op ==) (ExprVar b)) (Op ==) (ExprVar c))",
		},
		{
			name: "left then right",
			src:  "infixl 5 +++\ninfixr 5 ***\nx = a +++ b *** c",
			code: diag.FixConflict,
			want: "(ExprInfix (ExprInfix (ExprVar a) (Op +++) (ExprVar b)) (Op ***) (ExprVar c))",
		},
		{
			name: "right then left",
			src:  "infixl 5 +++\ninfixr 5 ***\nx = a *** b +++ c",
			code: diag.FixConflict,
			want: "(ExprInfix (ExprInfix (ExprVar a) (Op ***) (ExprVar b)) (Op +++) (ExprVar c))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, bag := parseSource(t, tt.src)
			if got := countCode(bag, tt.code); got != 1 {
				t.Fatalf("want one %s, got: %s", tt.code.ID(), diagnosticsSummary(bag))
			}
			if bag.HasErrors() {
				t.Errorf("fixity conflicts are warnings: %s", diagnosticsSummary(bag))
			}
			rhs := firstOfKind(tree, tree.Root, cst.Rhs)
			if got := sexpr(tree, tree.ChildNodes(rhs)[0]); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestLocalFixityDeclaration(t *testing.T) {
	src := "x = a |> b |> c\n  where\n    infixr 1 |>\n"
	tree := parseClean(t, src)
	rhs := firstOfKind(tree, tree.Root, cst.Rhs)
	got := sexpr(tree, tree.ChildNodes(rhs)[0])
	want := "(ExprInfix (ExprVar a) (Op |>) (ExprInfix (ExprVar b) (Op |>) (ExprVar c)))"
	if got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestDefaultFixityWarning(t *testing.T) {
	_, bag := parseSource(t, "x = a <+> b <+> c\ny = a <+> b\n")
	if got := countCode(bag, diag.FixDefaulted); got != 1 {
		t.Fatalf("want a single default-fixity warning, got: %s", diagnosticsSummary(bag))
	}

	res := ParseText("quiet.hs", "x = a <+> b\n", Options{QuietDefaultFixity: true})
	if res.Bag.Len() != 0 {
		t.Errorf("quiet mode still reports: %s", diagnosticsSummary(res.Bag))
	}

	// backticked functions default silently
	res = ParseText("tick.hs", "x = a `op` b\n", Options{})
	if res.Bag.Len() != 0 {
		t.Errorf("backtick operator reported: %s", diagnosticsSummary(res.Bag))
	}
}
