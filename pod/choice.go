package pod

import (
	"github.com/podwire/podcodec/errors"
	"github.com/podwire/podcodec/pod/internal/layout"
)

// ChoiceView reads a choice pod: a base type plus a negotiation mode
// over alternatives. Element 0 is the default/current value; the
// meaning of the rest depends on the mode.
type ChoiceView struct {
	view      View
	mode      ChoiceMode
	childTag  Tag
	childSize uint32
	elems     []byte
}

func newChoiceView(v View) (ChoiceView, error) {
	body := v.Body()
	if len(body) < 16 {
		return ChoiceView{}, errors.MalformedPod([]string{"Choice"}, "body of %d bytes is too short for mode and element header", len(body))
	}
	mode := ChoiceMode(layout.ByteOrder.Uint32(body[0:4]))
	if !mode.Valid() {
		return ChoiceView{}, errors.InvalidChoice(errors.PhaseDecode, "unknown negotiation mode %d", uint32(mode))
	}
	childSize := layout.ByteOrder.Uint32(body[8:12])
	childTag := Tag(layout.ByteOrder.Uint32(body[12:16]))
	if fixed, ok := childTag.FixedSize(); ok && fixed != childSize {
		return ChoiceView{}, errors.MalformedPod([]string{"Choice"}, "element tag %s requires size %d, header declares %d", childTag, fixed, childSize)
	}
	return ChoiceView{
		view:      v,
		mode:      mode,
		childTag:  childTag,
		childSize: childSize,
		elems:     body[16:],
	}, nil
}

// Mode returns the negotiation mode.
func (c ChoiceView) Mode() ChoiceMode {
	return c.mode
}

// ChildTag returns the shared element type.
func (c ChoiceView) ChildTag() Tag {
	return c.childTag
}

// ChildSize returns the declared per-element size.
func (c ChoiceView) ChildSize() uint32 {
	return c.childSize
}

// Len returns how many elements the body carries, default included.
func (c ChoiceView) Len() int {
	if c.childSize == 0 {
		return 0
	}
	avail := uint32(len(c.elems))
	if avail < c.childSize {
		return 0
	}
	return int(1 + (avail-c.childSize)/layout.Stride(c.childSize))
}

// Default decodes element 0, the default/current value.
func (c ChoiceView) Default() (Value, error) {
	if c.Len() == 0 {
		return nil, errors.MalformedPod([]string{"Choice"}, "no elements")
	}
	return decodeRawValue(c.childTag, c.elems[:c.childSize])
}

// Alternatives returns a fresh iterator over the elements after the
// default. For None mode the alternatives carry no meaning but still
// iterate, so they survive a decode/re-encode round trip. Iteration is
// lazy and restartable; each call re-reads from the buffer.
func (c ChoiceView) Alternatives() *ElementIterator {
	stride := layout.Stride(c.childSize)
	if c.childSize == 0 || uint32(len(c.elems)) < stride {
		return newElementIterator(c.childTag, c.childSize, nil)
	}
	return newElementIterator(c.childTag, c.childSize, c.elems[stride:])
}

// Elements returns a fresh iterator over all elements, default first.
func (c ChoiceView) Elements() *ElementIterator {
	return newElementIterator(c.childTag, c.childSize, c.elems)
}
