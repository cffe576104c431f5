package fixity

// prelude lists the fixities every module sees without importing anything
// special: the Haskell 2010 Prelude plus the base operators people use
// without a second thought.
var prelude = map[string]Fixity{
	".":  {Right, 9},
	"!!": {Left, 9},
	"!":  {Left, 9},

	"^":  {Right, 8},
	"^^": {Right, 8},
	"**": {Right, 8},

	"*":    {Left, 7},
	"/":    {Left, 7},
	"quot": {Left, 7},
	"rem":  {Left, 7},
	"div":  {Left, 7},
	"mod":  {Left, 7},

	"+":  {Left, 6},
	"-":  {Left, 6},
	"<>": {Right, 6},

	":":  {Right, 5},
	"++": {Right, 5},
	":|": {Right, 5},

	"==":      {None, 4},
	"/=":      {None, 4},
	"<":       {None, 4},
	"<=":      {None, 4},
	">=":      {None, 4},
	">":       {None, 4},
	"elem":    {None, 4},
	"notElem": {None, 4},
	"~":       {None, 4},
	"<$>":     {Left, 4},
	"<$":      {Left, 4},
	"$>":      {Left, 4},
	"<*>":     {Left, 4},
	"*>":      {Left, 4},
	"<*":      {Left, 4},

	"&&":  {Right, 3},
	"<|>": {Left, 3},
	"&&&": {Right, 3},

	"||":  {Right, 2},
	"***": {Right, 2},

	">>":  {Left, 1},
	">>=": {Left, 1},
	"=<<": {Right, 1},
	">=>": {Right, 1},
	"<=<": {Right, 1},
	">>>": {Right, 1},
	"<<<": {Right, 1},
	"&":   {Left, 1},
	"<&>": {Left, 1},

	"$":   {Right, 0},
	"$!":  {Right, 0},
	"seq": {Right, 0},
	"on":  {Left, 0},
}
