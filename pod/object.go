package pod

import (
	"github.com/podwire/podcodec/errors"
	"github.com/podwire/podcodec/pod/internal/layout"
)

// ObjectView reads an object pod: a keyed, ordered property collection
// grouped by a body-type from the external registry.
type ObjectView struct {
	view     View
	bodyType Tag
	objectID uint32
	props    []byte
}

func newObjectView(v View) (ObjectView, error) {
	body := v.Body()
	if len(body) < 8 {
		return ObjectView{}, errors.MalformedPod([]string{"Object"}, "body of %d bytes is too short for body-type and id", len(body))
	}
	return ObjectView{
		view:     v,
		bodyType: Tag(layout.ByteOrder.Uint32(body[0:4])),
		objectID: layout.ByteOrder.Uint32(body[4:8]),
		props:    body[8:],
	}, nil
}

// BodyType returns the domain-level kind of the object (format,
// buffers, meta, ...). Opaque to the codec.
func (o ObjectView) BodyType() Tag {
	return o.bodyType
}

// ObjectID returns the object id field.
func (o ObjectView) ObjectID() uint32 {
	return o.objectID
}

// Prop is one decoded property entry.
type Prop struct {
	Key   uint32
	Flags uint32
	Value View
}

// Properties returns a fresh iterator over the properties in wire
// order. Keys are not required to be unique; duplicates are yielded as
// they appear. Iteration is lazy and restartable.
func (o ObjectView) Properties() *PropertyIterator {
	return &PropertyIterator{data: o.props}
}

// Lookup scans the properties in wire order and returns the first one
// with the given key. found is false when the key is absent; err
// reports malformed property data hit during the scan.
func (o ObjectView) Lookup(key uint32) (prop Prop, found bool, err error) {
	it := o.Properties()
	for it.Next() {
		if p := it.Prop(); p.Key == key {
			return p, true, nil
		}
	}
	return Prop{}, false, it.Err()
}

// PropertyIterator walks the (key, flags, value) entries of an object
// body.
type PropertyIterator struct {
	data []byte
	off  int
	cur  Prop
	err  error
}

// Next advances to the next property, returning false at the end or on
// error.
func (it *PropertyIterator) Next() bool {
	if it.err != nil || it.off >= len(it.data) {
		return false
	}
	if len(it.data)-it.off < 8 {
		it.err = errors.MalformedPod([]string{"Object"}, "%d trailing bytes are too short for a property header", len(it.data)-it.off)
		return false
	}
	key := layout.ByteOrder.Uint32(it.data[it.off : it.off+4])
	flags := layout.ByteOrder.Uint32(it.data[it.off+4 : it.off+8])
	value, err := decodeAt(it.data[it.off+8:], []string{"Object"})
	if err != nil {
		it.err = err
		return false
	}
	it.cur = Prop{Key: key, Flags: flags, Value: value}
	it.off += 8 + int(layout.WireSize(value.Size()))
	return true
}

// Prop returns the property decoded by the last successful Next.
func (it *PropertyIterator) Prop() Prop {
	return it.cur
}

// Err returns the first error hit during iteration, if any.
func (it *PropertyIterator) Err() error {
	return it.err
}
