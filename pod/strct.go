package pod

import (
	"github.com/podwire/podcodec/pod/internal/layout"
)

// StructView reads a struct pod: a concatenation of independently
// self-delimiting child pods of any type.
type StructView struct {
	view View
}

// Fields returns a fresh iterator over the child pods in wire order.
// Iteration is lazy and restartable.
func (s StructView) Fields() *FieldIterator {
	return &FieldIterator{body: s.view.Body()}
}

// FieldIterator walks the child pods of a struct body.
type FieldIterator struct {
	body []byte
	off  int
	cur  View
	err  error
}

// Next advances to the next field, returning false at the end or on
// error. Child headers are validated here, not when the struct view was
// created.
func (it *FieldIterator) Next() bool {
	if it.err != nil || it.off >= len(it.body) {
		return false
	}
	child, err := decodeAt(it.body[it.off:], []string{"Struct"})
	if err != nil {
		it.err = err
		return false
	}
	it.cur = child
	it.off += int(layout.WireSize(child.Size()))
	return true
}

// Pod returns the field decoded by the last successful Next.
func (it *FieldIterator) Pod() View {
	return it.cur
}

// Err returns the first error hit during iteration, if any.
func (it *FieldIterator) Err() error {
	return it.err
}
