// Package fixity holds operator fixities: the Prelude defaults plus whatever
// infix declarations a module makes.
package fixity

import (
	"fmt"
	"strings"

	"hsfront/internal/source"
)

// Assoc is an operator's associativity.
type Assoc uint8

const (
	Left Assoc = iota
	Right
	None
)

func (a Assoc) String() string {
	switch a {
	case Left:
		return "infixl"
	case Right:
		return "infixr"
	default:
		return "infix"
	}
}

// Fixity is associativity plus precedence 0..9.
type Fixity struct {
	Assoc Assoc
	Prec  int
}

// Default applies to operators nobody declared.
var Default = Fixity{Assoc: Left, Prec: 9}

func (f Fixity) String() string {
	return fmt.Sprintf("%s %d", f.Assoc, f.Prec)
}

// Origin says where a table entry came from.
type Origin uint8

const (
	Builtin Origin = iota
	Declared
)

// Entry is one operator in a Table.
type Entry struct {
	Fixity
	Origin Origin
	Span   source.Span // declaration site for Declared entries
}

// Table maps operator names to fixities. Qualified names are looked up by
// their unqualified part.
type Table struct {
	ops map[string]Entry
}

// NewTable returns a table seeded with the Prelude fixities.
func NewTable() *Table {
	t := &Table{ops: make(map[string]Entry, len(prelude)+16)}
	for op, f := range prelude {
		t.ops[op] = Entry{Fixity: f, Origin: Builtin}
	}
	return t
}

// Declare records a fixity declaration. It returns the previous declared
// entry when op was already declared in this module.
func (t *Table) Declare(op string, f Fixity, sp source.Span) (Entry, bool) {
	prev, ok := t.ops[op]
	t.ops[op] = Entry{Fixity: f, Origin: Declared, Span: sp}
	return prev, ok && prev.Origin == Declared
}

// Lookup returns the fixity of op, or false when it is unknown.
func (t *Table) Lookup(op string) (Entry, bool) {
	e, ok := t.ops[unqualify(op)]
	return e, ok
}

// Len returns the number of known operators.
func (t *Table) Len() int { return len(t.ops) }

// unqualify drops a module prefix: "Data.Map.!" -> "!", "M.elem" -> "elem".
func unqualify(op string) string {
	// оператор сам может содержать точки, поэтому режем только ConId-сегменты
	i := 0
	for i < len(op) && op[i] >= 'A' && op[i] <= 'Z' {
		j := strings.IndexByte(op[i:], '.')
		if j < 0 || j+i+1 >= len(op) {
			break
		}
		seg := op[i : i+j]
		if !isModSegment(seg) {
			break
		}
		i += j + 1
	}
	return op[i:]
}

func isModSegment(s string) bool {
	if s == "" || s[0] < 'A' || s[0] > 'Z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if c != '_' && c != '\'' && (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
