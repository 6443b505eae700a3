package pod

import (
	"github.com/podwire/podcodec/errors"
	"github.com/podwire/podcodec/pod/internal/layout"
)

// View is a zero-copy read cursor over one encoded pod. The zero View is
// invalid; obtain one from Decode or from a parent view's iterators. A
// View borrows the backing buffer and is only valid while the buffer is
// alive and unmodified.
type View struct {
	buf []byte // header + body, trailing padding trimmed
}

// Decode validates the outer header of buf and returns a view over the
// first pod in it. Nested content is validated lazily, when accessed.
func Decode(buf []byte) (View, error) {
	return decodeAt(buf, nil)
}

func decodeAt(buf []byte, path []string) (View, error) {
	if len(buf) < layout.HeaderSize {
		return View{}, errors.MalformedPod(path, "buffer of %d bytes is shorter than the %d byte header", len(buf), layout.HeaderSize)
	}
	size := layout.ByteOrder.Uint32(buf[0:4])
	if uint64(size) > uint64(len(buf)-layout.HeaderSize) {
		return View{}, errors.MalformedPod(path, "declared size %d exceeds remaining %d bytes", size, len(buf)-layout.HeaderSize)
	}
	return View{buf: buf[:layout.HeaderSize+int(size)]}, nil
}

// Tag returns the wire type tag from the header.
func (v View) Tag() Tag {
	return Tag(layout.ByteOrder.Uint32(v.buf[4:8]))
}

// Size returns the declared body size, excluding header and padding.
func (v View) Size() uint32 {
	return layout.ByteOrder.Uint32(v.buf[0:4])
}

// Body returns the raw body bytes. Raw access always succeeds; typed
// interpretation is what can fail.
func (v View) Body() []byte {
	return v.buf[layout.HeaderSize:]
}

// WireSize returns the full on-wire footprint: header plus padded body.
func (v View) WireSize() uint32 {
	return layout.WireSize(v.Size())
}

// Downcast returns v unchanged if its tag matches, and a type_mismatch
// error otherwise. Object body-type identifiers downcast as Object.
func (v View) Downcast(tag Tag) (View, error) {
	got := v.Tag()
	if got == tag {
		return v, nil
	}
	if tag == TagObject && got.IsObjectType() {
		return v, nil
	}
	return View{}, errors.TypeMismatch(errors.PhaseDecode, nil, tag.String(), got.String())
}

// AsArray downcasts to an array view, validating the element header.
func (v View) AsArray() (ArrayView, error) {
	if _, err := v.Downcast(TagArray); err != nil {
		return ArrayView{}, err
	}
	return newArrayView(v)
}

// AsStruct downcasts to a struct view.
func (v View) AsStruct() (StructView, error) {
	if _, err := v.Downcast(TagStruct); err != nil {
		return StructView{}, err
	}
	return StructView{view: v}, nil
}

// AsChoice downcasts to a choice view, validating the body prefix.
func (v View) AsChoice() (ChoiceView, error) {
	if _, err := v.Downcast(TagChoice); err != nil {
		return ChoiceView{}, err
	}
	return newChoiceView(v)
}

// AsObject downcasts to an object view, validating the body prefix.
func (v View) AsObject() (ObjectView, error) {
	if _, err := v.Downcast(TagObject); err != nil {
		return ObjectView{}, err
	}
	return newObjectView(v)
}

// AsSequence downcasts to a sequence view, validating the body prefix.
func (v View) AsSequence() (SequenceView, error) {
	if _, err := v.Downcast(TagSequence); err != nil {
		return SequenceView{}, err
	}
	return newSequenceView(v)
}

// Pod unwraps a nested pod value.
func (v View) Pod() (View, error) {
	if _, err := v.Downcast(TagPod); err != nil {
		return View{}, err
	}
	return decodeAt(v.Body(), []string{"Pod"})
}
