package pod

import (
	"github.com/podwire/podcodec/errors"
	"github.com/podwire/podcodec/pod/internal/layout"
)

// ArrayView reads an array pod: headerless elements of one fixed-size
// type, packed at stride = align8(child size).
type ArrayView struct {
	view      View
	childTag  Tag
	childSize uint32
	elems     []byte
}

func newArrayView(v View) (ArrayView, error) {
	body := v.Body()
	if len(body) < 8 {
		return ArrayView{}, errors.MalformedPod([]string{"Array"}, "body of %d bytes is too short for the element header", len(body))
	}
	childSize := layout.ByteOrder.Uint32(body[0:4])
	childTag := Tag(layout.ByteOrder.Uint32(body[4:8]))
	if fixed, ok := childTag.FixedSize(); ok && fixed != childSize {
		return ArrayView{}, errors.MalformedPod([]string{"Array"}, "element tag %s requires size %d, header declares %d", childTag, fixed, childSize)
	}
	return ArrayView{
		view:      v,
		childTag:  childTag,
		childSize: childSize,
		elems:     body[8:],
	}, nil
}

// ChildTag returns the shared element type.
func (a ArrayView) ChildTag() Tag {
	return a.childTag
}

// ChildSize returns the declared per-element size.
func (a ArrayView) ChildSize() uint32 {
	return a.childSize
}

// Len returns the element count. A final element without trailing
// stride padding still counts.
func (a ArrayView) Len() int {
	if a.childSize == 0 {
		return 0
	}
	avail := uint32(len(a.elems))
	if avail < a.childSize {
		return 0
	}
	return int(1 + (avail-a.childSize)/layout.Stride(a.childSize))
}

// At decodes the i-th element.
func (a ArrayView) At(i int) (Value, error) {
	n := a.Len()
	if i < 0 || i >= n {
		return nil, errors.OutOfBounds(errors.PhaseDecode, []string{"Array"}, i, n)
	}
	off := uint32(i) * layout.Stride(a.childSize)
	return decodeRawValue(a.childTag, a.elems[off:off+a.childSize])
}

// Elements returns a fresh iterator over all elements. Iteration is
// lazy and restartable; each call re-reads from the buffer.
func (a ArrayView) Elements() *ElementIterator {
	return newElementIterator(a.childTag, a.childSize, a.elems)
}

// ElementIterator walks the raw elements of an array or choice body.
type ElementIterator struct {
	tag  Tag
	size uint32
	data []byte
	off  uint32
	cur  Value
	err  error
}

func newElementIterator(tag Tag, size uint32, data []byte) *ElementIterator {
	return &ElementIterator{tag: tag, size: size, data: data}
}

// Next advances to the next element, returning false at the end or on
// error.
func (it *ElementIterator) Next() bool {
	if it.err != nil || it.size == 0 {
		return false
	}
	if uint64(it.off)+uint64(it.size) > uint64(len(it.data)) {
		return false
	}
	v, err := decodeRawValue(it.tag, it.data[it.off:it.off+it.size])
	if err != nil {
		it.err = err
		return false
	}
	it.cur = v
	it.off += layout.Stride(it.size)
	return true
}

// Value returns the element decoded by the last successful Next.
func (it *ElementIterator) Value() Value {
	return it.cur
}

// Err returns the first error hit during iteration, if any.
func (it *ElementIterator) Err() error {
	return it.err
}
