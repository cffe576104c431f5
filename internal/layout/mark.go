package layout

import "slices"

// Mark is a saved resolver state.
type Mark struct {
	st state
}

// Mark saves the current state. Virtual tokens created after the mark are
// discarded by Reset.
func (r *Resolver) Mark() Mark {
	st := r.st
	st.queue = slices.Clone(r.st.queue)
	st.stack = slices.Clone(r.st.stack)
	return Mark{st: st}
}

// Reset restores a saved state. Raw tokens already lexed stay in the table.
func (r *Resolver) Reset(m Mark) {
	r.st = m.st
	r.st.queue = slices.Clone(m.st.queue)
	r.st.stack = slices.Clone(m.st.stack)
}

// PeekN returns the item n positions ahead (0 is Peek) without consuming
// anything. Consumption effects (braces, layout keywords) are applied on
// the way so the answer matches what Next would produce.
func (r *Resolver) PeekN(n int) Item {
	if n == 0 {
		return r.Peek()
	}
	m := r.Mark()
	for range n {
		r.Next()
	}
	it := r.Peek()
	r.Reset(m)
	return it
}
