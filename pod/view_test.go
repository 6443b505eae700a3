package pod

import (
	"encoding/binary"
	"testing"

	"github.com/podwire/podcodec/errors"
)

// rawPod hand-assembles a header and body without builder validation.
func rawPod(size uint32, tag Tag, body []byte) []byte {
	buf := make([]byte, 8, 8+len(body))
	binary.LittleEndian.PutUint32(buf[0:4], size)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(tag))
	buf = append(buf, body...)
	for len(buf)%8 != 0 {
		buf = append(buf, 0)
	}
	return buf
}

func TestDecodeShortBuffer(t *testing.T) {
	for _, n := range []int{0, 1, 7} {
		if _, err := Decode(make([]byte, n)); !errors.IsKind(err, errors.KindMalformedPod) {
			t.Errorf("Decode(%d bytes) error = %v, want malformed_pod", n, err)
		}
	}
}

func TestDecodeOversizedDeclaration(t *testing.T) {
	buf := rawPod(64, TagInt, []byte{1, 0, 0, 0})
	if _, err := Decode(buf); !errors.IsKind(err, errors.KindMalformedPod) {
		t.Fatalf("Decode() error = %v, want malformed_pod", err)
	}
}

func TestDecodeIgnoresTrailingBytes(t *testing.T) {
	b := NewBuilder()
	if err := b.WriteInt(7); err != nil {
		t.Fatalf("WriteInt() error = %v", err)
	}
	buf := mustFinish(t, b)
	buf = append(buf, 0xaa, 0xbb, 0xcc)

	v := mustDecode(t, buf)
	if got, err := v.Int(); err != nil || got != 7 {
		t.Errorf("Int() = %d, %v, want 7, nil", got, err)
	}
}

func TestDowncastMismatch(t *testing.T) {
	b := NewBuilder()
	if err := b.WriteInt(1); err != nil {
		t.Fatalf("WriteInt() error = %v", err)
	}
	v := mustDecode(t, mustFinish(t, b))

	if _, err := v.AsStruct(); !errors.IsKind(err, errors.KindTypeMismatch) {
		t.Errorf("AsStruct() error = %v, want type_mismatch", err)
	}
	if _, err := v.Long(); !errors.IsKind(err, errors.KindTypeMismatch) {
		t.Errorf("Long() error = %v, want type_mismatch", err)
	}
	if _, err := v.Downcast(TagInt); err != nil {
		t.Errorf("Downcast(Int) error = %v, want nil", err)
	}
}

func TestFixedSizeDisagreement(t *testing.T) {
	// An Int header declaring 8 body bytes is corruption, not a wrong
	// downcast.
	buf := rawPod(8, TagInt, []byte{1, 0, 0, 0, 0, 0, 0, 0})
	v := mustDecode(t, buf)
	if _, err := v.Int(); !errors.IsKind(err, errors.KindMalformedPod) {
		t.Fatalf("Int() error = %v, want malformed_pod", err)
	}
}

func TestTextMissingTerminator(t *testing.T) {
	buf := rawPod(3, TagString, []byte{'a', 'b', 'c'})
	v := mustDecode(t, buf)
	if _, err := v.Text(); !errors.IsKind(err, errors.KindMalformedPod) {
		t.Fatalf("Text() error = %v, want malformed_pod", err)
	}
}

func TestTextInvalidUTF8(t *testing.T) {
	buf := rawPod(3, TagString, []byte{0xff, 0xfe, 0x00})
	v := mustDecode(t, buf)
	if _, err := v.Text(); !errors.IsKind(err, errors.KindInvalidUTF8) {
		t.Fatalf("Text() error = %v, want invalid_utf8", err)
	}
}

func TestTextStopsAtTerminator(t *testing.T) {
	buf := rawPod(7, TagString, []byte{'h', 'i', 0, 'x', 'y', 'z', 0})
	v := mustDecode(t, buf)
	got, err := v.Text()
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if got != "hi" {
		t.Errorf("Text() = %q, want %q", got, "hi")
	}
}

func TestArrayRoundTrip(t *testing.T) {
	b := NewBuilder()
	b.BeginArray(TagInt)
	for _, v := range []int32{10, 20, 30} {
		b.WriteInt(v)
	}
	b.EndArray()
	buf := mustFinish(t, b)

	a, err := mustDecode(t, buf).AsArray()
	if err != nil {
		t.Fatalf("AsArray() error = %v", err)
	}
	if a.ChildTag() != TagInt {
		t.Errorf("ChildTag() = %s, want Int", a.ChildTag())
	}
	if a.Len() != 3 {
		t.Errorf("Len() = %d, want 3", a.Len())
	}

	want := []int32{10, 20, 30}
	for i, w := range want {
		got, err := a.At(i)
		if err != nil {
			t.Fatalf("At(%d) error = %v", i, err)
		}
		if got != Int(w) {
			t.Errorf("At(%d) = %v, want Int(%d)", i, got, w)
		}
	}
	if _, err := a.At(3); !errors.IsKind(err, errors.KindOutOfBounds) {
		t.Errorf("At(3) error = %v, want out_of_bounds", err)
	}
}

func TestArrayIteratorRestartable(t *testing.T) {
	b := NewBuilder()
	b.BeginArray(TagID)
	b.WriteID(1)
	b.WriteID(2)
	b.EndArray()
	a, err := mustDecode(t, mustFinish(t, b)).AsArray()
	if err != nil {
		t.Fatalf("AsArray() error = %v", err)
	}

	collect := func() []Value {
		var out []Value
		it := a.Elements()
		for it.Next() {
			out = append(out, it.Value())
		}
		if err := it.Err(); err != nil {
			t.Fatalf("Err() = %v", err)
		}
		return out
	}

	first, second := collect(), collect()
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("iterations saw %d and %d elements, want 2 and 2", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("element %d differs between iterations: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestStructFieldIteration(t *testing.T) {
	b := NewBuilder()
	b.BeginStruct()
	b.WriteInt(1)
	b.WriteString("two")
	b.WriteDouble(3.0)
	b.EndStruct()
	s, err := mustDecode(t, mustFinish(t, b)).AsStruct()
	if err != nil {
		t.Fatalf("AsStruct() error = %v", err)
	}

	var tags []Tag
	it := s.Fields()
	for it.Next() {
		tags = append(tags, it.Pod().Tag())
	}
	if err := it.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}

	want := []Tag{TagInt, TagString, TagDouble}
	if len(tags) != len(want) {
		t.Fatalf("Fields() yielded %d pods, want %d", len(tags), len(want))
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("field %d tag = %s, want %s", i, tags[i], want[i])
		}
	}
}

func TestObjectPropertiesReiterate(t *testing.T) {
	b := NewBuilder()
	b.BeginObject(ObjectStart+2, 2)
	b.Property(0x101, 0)
	b.WriteInt(5)
	b.Property(0x10001, 0)
	b.WriteFloat(1.0)
	b.Property(0x101, 0) // duplicate key, passed through
	b.WriteInt(6)
	b.EndObject()
	o, err := mustDecode(t, mustFinish(t, b)).AsObject()
	if err != nil {
		t.Fatalf("AsObject() error = %v", err)
	}

	collect := func() []Prop {
		var out []Prop
		it := o.Properties()
		for it.Next() {
			out = append(out, it.Prop())
		}
		if err := it.Err(); err != nil {
			t.Fatalf("Err() = %v", err)
		}
		return out
	}

	first, second := collect(), collect()
	if len(first) != 3 {
		t.Fatalf("Properties() yielded %d entries, want 3", len(first))
	}
	for i := range first {
		if first[i].Key != second[i].Key || first[i].Flags != second[i].Flags {
			t.Errorf("property %d differs between iterations", i)
		}
	}
	if first[0].Key != 0x101 || first[2].Key != 0x101 {
		t.Errorf("duplicate keys not preserved in wire order: %v", []uint32{first[0].Key, first[1].Key, first[2].Key})
	}
}

func TestObjectLookup(t *testing.T) {
	b := NewBuilder()
	b.BeginObject(ObjectStart+2, 0)
	b.Property(1, 0)
	b.WriteInt(10)
	b.Property(1, 0)
	b.WriteInt(20)
	b.EndObject()
	o, err := mustDecode(t, mustFinish(t, b)).AsObject()
	if err != nil {
		t.Fatalf("AsObject() error = %v", err)
	}

	p, found, err := o.Lookup(1)
	if err != nil || !found {
		t.Fatalf("Lookup(1) = %v, %t, want found", err, found)
	}
	if got, err := p.Value.Int(); err != nil || got != 10 {
		t.Errorf("Lookup(1) value = %d, %v, want the first match 10", got, err)
	}

	if _, found, err := o.Lookup(9); err != nil || found {
		t.Errorf("Lookup(9) = %t, %v, want not found", found, err)
	}
}

func TestFormatObjectScenario(t *testing.T) {
	const (
		format       = ObjectStart + 3
		mediaType    = 1
		mediaSubtype = 2
		audio        = 1
		raw          = 1
	)

	b := NewBuilder()
	b.BeginObject(format, 0)
	b.Property(mediaType, 0)
	b.WriteID(audio)
	b.Property(mediaSubtype, 0)
	b.WriteID(raw)
	b.EndObject()
	buf := mustFinish(t, b)

	o, err := mustDecode(t, buf).AsObject()
	if err != nil {
		t.Fatalf("AsObject() error = %v", err)
	}
	if o.BodyType() != format {
		t.Errorf("BodyType() = %#x, want %#x", uint32(o.BodyType()), uint32(format))
	}
	if o.ObjectID() != 0 {
		t.Errorf("ObjectID() = %d, want 0", o.ObjectID())
	}

	want := []struct {
		key uint32
		id  uint32
	}{{mediaType, audio}, {mediaSubtype, raw}}

	it := o.Properties()
	for _, w := range want {
		if !it.Next() {
			t.Fatalf("Properties() ended early: %v", it.Err())
		}
		p := it.Prop()
		if p.Key != w.key {
			t.Errorf("key = %d, want %d", p.Key, w.key)
		}
		got, err := p.Value.ID()
		if err != nil || got != w.id {
			t.Errorf("value = %d, %v, want Id %d", got, err, w.id)
		}
	}
	if it.Next() {
		t.Error("Properties() yielded extra entries")
	}
}

func TestRangeChoiceScenario(t *testing.T) {
	b := NewBuilder()
	b.BeginChoice(ChoiceRange, TagInt)
	b.WriteInt(44100)
	b.WriteInt(8000)
	b.WriteInt(192000)
	b.EndChoice()
	buf := mustFinish(t, b)

	c, err := mustDecode(t, buf).AsChoice()
	if err != nil {
		t.Fatalf("AsChoice() error = %v", err)
	}
	if c.Mode() != ChoiceRange {
		t.Errorf("Mode() = %s, want Range", c.Mode())
	}
	if c.ChildTag() != TagInt {
		t.Errorf("ChildTag() = %s, want Int", c.ChildTag())
	}

	def, err := c.Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if def != Int(44100) {
		t.Errorf("Default() = %v, want Int(44100)", def)
	}

	var alts []Value
	it := c.Alternatives()
	for it.Next() {
		alts = append(alts, it.Value())
	}
	if err := it.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	if len(alts) != 2 || alts[0] != Int(8000) || alts[1] != Int(192000) {
		t.Errorf("Alternatives() = %v, want [8000 192000]", alts)
	}
}

func TestNoneModeChoiceKeepsExtras(t *testing.T) {
	b := NewBuilder()
	b.BeginChoice(ChoiceNone, TagInt)
	b.WriteInt(1)
	b.WriteInt(2)
	b.WriteInt(3)
	b.EndChoice()
	buf := mustFinish(t, b)

	c, err := mustDecode(t, buf).AsChoice()
	if err != nil {
		t.Fatalf("AsChoice() error = %v", err)
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3: extra alternatives must survive", c.Len())
	}

	// Re-encode from the materialized value and compare structurally.
	val, err := mustDecode(t, buf).Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	again, err := Encode(val)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !Equal(mustDecode(t, buf), mustDecode(t, again)) {
		t.Error("re-encoded choice is not equal to the original")
	}
}

func TestChoiceInvalidModeOnDecode(t *testing.T) {
	body := make([]byte, 24)
	binary.LittleEndian.PutUint32(body[0:4], 99) // mode
	binary.LittleEndian.PutUint32(body[8:12], 4) // child size
	binary.LittleEndian.PutUint32(body[12:16], uint32(TagInt))
	buf := rawPod(24, TagChoice, body)

	if _, err := mustDecode(t, buf).AsChoice(); !errors.IsKind(err, errors.KindInvalidChoice) {
		t.Fatalf("AsChoice() error = %v, want invalid_choice", err)
	}
}

func TestSequenceRoundTrip(t *testing.T) {
	b := NewBuilder()
	b.BeginSequence(3)
	b.Control(0, 1)
	b.WriteFloat(0.25)
	b.Control(128, 2)
	b.WriteFloat(0.75)
	b.EndSequence()
	buf := mustFinish(t, b)

	s, err := mustDecode(t, buf).AsSequence()
	if err != nil {
		t.Fatalf("AsSequence() error = %v", err)
	}
	if s.Unit() != 3 {
		t.Errorf("Unit() = %d, want 3", s.Unit())
	}

	want := []struct {
		offset uint32
		ctype  uint32
		value  float32
	}{{0, 1, 0.25}, {128, 2, 0.75}}

	it := s.Controls()
	for _, w := range want {
		if !it.Next() {
			t.Fatalf("Controls() ended early: %v", it.Err())
		}
		if it.Offset() != w.offset || it.ControlType() != w.ctype {
			t.Errorf("control = (%d, %d), want (%d, %d)", it.Offset(), it.ControlType(), w.offset, w.ctype)
		}
		got, err := it.Value().Float()
		if err != nil || got != w.value {
			t.Errorf("control value = %g, %v, want %g", got, err, w.value)
		}
	}
	if it.Next() {
		t.Error("Controls() yielded extra entries")
	}
}

func TestTruncatedChildDetectedLazily(t *testing.T) {
	// A struct whose declared size covers a child header that lies about
	// its own size. The outer decode succeeds; the iterator fails.
	child := rawPod(64, TagInt, []byte{1, 0, 0, 0})
	buf := rawPod(uint32(len(child)), TagStruct, child)

	s, err := mustDecode(t, buf).AsStruct()
	if err != nil {
		t.Fatalf("AsStruct() error = %v", err)
	}
	it := s.Fields()
	for it.Next() {
	}
	if !errors.IsKind(it.Err(), errors.KindMalformedPod) {
		t.Fatalf("Err() = %v, want malformed_pod", it.Err())
	}
}
