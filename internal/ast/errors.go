package ast

import (
	"fmt"

	"hsfront/internal/cst"
	"hsfront/internal/source"
)

// MissingChildError is returned by accessors of required children when
// recovery left the node without one. Hosts usually skip such nodes.
type MissingChildError struct {
	Parent cst.Kind
	Want   cst.Kind
	Span   source.Span
}

func (e *MissingChildError) Error() string {
	want := e.Want.String()
	if e.Want == cst.KindInvalid {
		want = "type"
	}
	return fmt.Sprintf("%s at %s has no %s", e.Parent, e.Span, want)
}
