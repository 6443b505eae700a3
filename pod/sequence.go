package pod

import (
	"github.com/podwire/podcodec/errors"
	"github.com/podwire/podcodec/pod/internal/layout"
)

// SequenceView reads a sequence pod: timed control values ordered by
// offset within a media quantum.
type SequenceView struct {
	view     View
	unit     uint32
	controls []byte
}

func newSequenceView(v View) (SequenceView, error) {
	body := v.Body()
	if len(body) < 8 {
		return SequenceView{}, errors.MalformedPod([]string{"Sequence"}, "body of %d bytes is too short for the unit header", len(body))
	}
	return SequenceView{
		view:     v,
		unit:     layout.ByteOrder.Uint32(body[0:4]),
		controls: body[8:],
	}, nil
}

// Unit returns the unit the control offsets are expressed in.
func (s SequenceView) Unit() uint32 {
	return s.unit
}

// Controls returns a fresh iterator over the controls in wire order.
// Iteration is lazy and restartable.
func (s SequenceView) Controls() *ControlIterator {
	return &ControlIterator{data: s.controls}
}

// ControlIterator walks the (offset, type, value) entries of a sequence
// body.
type ControlIterator struct {
	data   []byte
	off    int
	offset uint32
	ctype  uint32
	cur    View
	err    error
}

// Next advances to the next control, returning false at the end or on
// error.
func (it *ControlIterator) Next() bool {
	if it.err != nil || it.off >= len(it.data) {
		return false
	}
	if len(it.data)-it.off < 8 {
		it.err = errors.MalformedPod([]string{"Sequence"}, "%d trailing bytes are too short for a control header", len(it.data)-it.off)
		return false
	}
	it.offset = layout.ByteOrder.Uint32(it.data[it.off : it.off+4])
	it.ctype = layout.ByteOrder.Uint32(it.data[it.off+4 : it.off+8])
	value, err := decodeAt(it.data[it.off+8:], []string{"Sequence"})
	if err != nil {
		it.err = err
		return false
	}
	it.cur = value
	it.off += 8 + int(layout.WireSize(value.Size()))
	return true
}

// Offset returns the time offset of the current control.
func (it *ControlIterator) Offset() uint32 {
	return it.offset
}

// ControlType returns the registry type of the current control.
func (it *ControlIterator) ControlType() uint32 {
	return it.ctype
}

// Value returns the value pod of the current control.
func (it *ControlIterator) Value() View {
	return it.cur
}

// Err returns the first error hit during iteration, if any.
func (it *ControlIterator) Err() error {
	return it.err
}
