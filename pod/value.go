package pod

import (
	"math"
	"unicode/utf8"

	"github.com/podwire/podcodec/errors"
	"github.com/podwire/podcodec/pod/internal/layout"
)

// Value is the materialized, tagged-union form of a pod. Each wire kind
// has one concrete Go type. Values own their data; unlike views they
// stay valid after the source buffer is gone.
type Value interface {
	Tag() Tag
}

type None struct{}

type Bool bool

// ID is a numeric identifier from the external registry.
type ID uint32

type Int int32

type Long int64

type Float float32

type Double float64

type String string

type Bytes []byte

type Rectangle struct {
	Width  uint32
	Height uint32
}

type Fraction struct {
	Num   uint32
	Denom uint32
}

type Bitmap []byte

type Fd int64

type Pointer struct {
	Type  uint32
	Value uint64
}

// Array holds elements that all share ChildTag and its fixed size.
type Array struct {
	ChildTag Tag
	Elements []Value
}

// Struct holds an ordered sequence of heterogeneous fields.
type Struct struct {
	Fields []Value
}

// Choice is a negotiable value: Entries[0] is the default, the meaning
// of the rest depends on Mode.
type Choice struct {
	Mode     ChoiceMode
	ChildTag Tag
	Entries  []Value
}

// Property is one keyed entry of an Object. Keys may repeat on the
// wire; the codec passes duplicates through untouched.
type Property struct {
	Key   uint32
	Flags uint32
	Value Value
}

// Object is a keyed, ordered property collection under a body-type.
type Object struct {
	BodyType   Tag
	ID         uint32
	Properties []Property
}

// Control is one timed entry of a Sequence.
type Control struct {
	Offset      uint32
	ControlType uint32
	Value       Value
}

type Sequence struct {
	Unit     uint32
	Controls []Control
}

// Nested wraps a value carried as a pod-typed pod.
type Nested struct {
	Value Value
}

func (None) Tag() Tag      { return TagNone }
func (Bool) Tag() Tag      { return TagBool }
func (ID) Tag() Tag        { return TagID }
func (Int) Tag() Tag       { return TagInt }
func (Long) Tag() Tag      { return TagLong }
func (Float) Tag() Tag     { return TagFloat }
func (Double) Tag() Tag    { return TagDouble }
func (String) Tag() Tag    { return TagString }
func (Bytes) Tag() Tag     { return TagBytes }
func (Rectangle) Tag() Tag { return TagRectangle }
func (Fraction) Tag() Tag  { return TagFraction }
func (Bitmap) Tag() Tag    { return TagBitmap }
func (Fd) Tag() Tag        { return TagFd }
func (Pointer) Tag() Tag   { return TagPointer }
func (Array) Tag() Tag     { return TagArray }
func (Struct) Tag() Tag    { return TagStruct }
func (Choice) Tag() Tag    { return TagChoice }
func (Object) Tag() Tag    { return TagObject }
func (Sequence) Tag() Tag  { return TagSequence }
func (Nested) Tag() Tag    { return TagPod }

// Value materializes the pod into its owned tagged-union form. This
// copies; keep using views where zero-copy access matters.
func (v View) Value() (Value, error) {
	switch tag := v.Tag(); tag {
	case TagNone:
		if v.Size() != 0 {
			return nil, errors.MalformedPod(nil, "None must declare size 0, got %d", v.Size())
		}
		return None{}, nil

	case TagBool:
		b, err := v.Bool()
		if err != nil {
			return nil, err
		}
		return Bool(b), nil

	case TagID:
		id, err := v.ID()
		if err != nil {
			return nil, err
		}
		return ID(id), nil

	case TagInt:
		i, err := v.Int()
		if err != nil {
			return nil, err
		}
		return Int(i), nil

	case TagLong:
		l, err := v.Long()
		if err != nil {
			return nil, err
		}
		return Long(l), nil

	case TagFloat:
		f, err := v.Float()
		if err != nil {
			return nil, err
		}
		return Float(f), nil

	case TagDouble:
		d, err := v.Double()
		if err != nil {
			return nil, err
		}
		return Double(d), nil

	case TagString:
		s, err := v.Text()
		if err != nil {
			return nil, err
		}
		return String(s), nil

	case TagBytes:
		b, err := v.Bytes()
		if err != nil {
			return nil, err
		}
		out := make(Bytes, len(b))
		copy(out, b)
		return out, nil

	case TagBitmap:
		b, err := v.Bitmap()
		if err != nil {
			return nil, err
		}
		out := make(Bitmap, len(b))
		copy(out, b)
		return out, nil

	case TagRectangle:
		r, err := v.Rectangle()
		if err != nil {
			return nil, err
		}
		return r, nil

	case TagFraction:
		f, err := v.Fraction()
		if err != nil {
			return nil, err
		}
		return f, nil

	case TagFd:
		fd, err := v.Fd()
		if err != nil {
			return nil, err
		}
		return Fd(fd), nil

	case TagPointer:
		p, err := v.Pointer()
		if err != nil {
			return nil, err
		}
		return p, nil

	case TagArray:
		return v.arrayValue()

	case TagStruct:
		return v.structValue()

	case TagChoice:
		return v.choiceValue()

	case TagObject:
		return v.objectValue()

	case TagSequence:
		return v.sequenceValue()

	case TagPod:
		inner, err := v.Pod()
		if err != nil {
			return nil, err
		}
		iv, err := inner.Value()
		if err != nil {
			return nil, err
		}
		return Nested{Value: iv}, nil

	default:
		return nil, errors.Unsupported(errors.PhaseDecode, "cannot materialize tag "+tag.String())
	}
}

func (v View) arrayValue() (Value, error) {
	av, err := v.AsArray()
	if err != nil {
		return nil, err
	}
	out := Array{ChildTag: av.ChildTag()}
	it := av.Elements()
	for it.Next() {
		out.Elements = append(out.Elements, it.Value())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (v View) structValue() (Value, error) {
	sv, err := v.AsStruct()
	if err != nil {
		return nil, err
	}
	var out Struct
	it := sv.Fields()
	for it.Next() {
		fv, err := it.Pod().Value()
		if err != nil {
			return nil, err
		}
		out.Fields = append(out.Fields, fv)
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (v View) choiceValue() (Value, error) {
	cv, err := v.AsChoice()
	if err != nil {
		return nil, err
	}
	out := Choice{Mode: cv.Mode(), ChildTag: cv.ChildTag()}
	it := cv.Elements()
	for it.Next() {
		out.Entries = append(out.Entries, it.Value())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (v View) objectValue() (Value, error) {
	ov, err := v.AsObject()
	if err != nil {
		return nil, err
	}
	out := Object{BodyType: ov.BodyType(), ID: ov.ObjectID()}
	it := ov.Properties()
	for it.Next() {
		p := it.Prop()
		pv, err := p.Value.Value()
		if err != nil {
			return nil, err
		}
		out.Properties = append(out.Properties, Property{Key: p.Key, Flags: p.Flags, Value: pv})
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (v View) sequenceValue() (Value, error) {
	sv, err := v.AsSequence()
	if err != nil {
		return nil, err
	}
	out := Sequence{Unit: sv.Unit()}
	it := sv.Controls()
	for it.Next() {
		cv, err := it.Value().Value()
		if err != nil {
			return nil, err
		}
		out.Controls = append(out.Controls, Control{Offset: it.Offset(), ControlType: it.ControlType(), Value: cv})
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// decodeRawValue interprets a headerless array or choice element.
func decodeRawValue(tag Tag, b []byte) (Value, error) {
	want, ok := tag.FixedSize()
	if !ok {
		return nil, errors.Unsupported(errors.PhaseDecode, "element tag "+tag.String()+" has no fixed size")
	}
	if uint32(len(b)) < want {
		return nil, errors.MalformedPod(nil, "element of tag %s needs %d bytes, have %d", tag, want, len(b))
	}
	b = b[:want]
	switch tag {
	case TagNone:
		return None{}, nil
	case TagBool:
		return Bool(layout.ByteOrder.Uint32(b) != 0), nil
	case TagID:
		return ID(layout.ByteOrder.Uint32(b)), nil
	case TagInt:
		return Int(int32(layout.ByteOrder.Uint32(b))), nil
	case TagLong:
		return Long(int64(layout.ByteOrder.Uint64(b))), nil
	case TagFloat:
		return Float(math.Float32frombits(layout.ByteOrder.Uint32(b))), nil
	case TagDouble:
		return Double(math.Float64frombits(layout.ByteOrder.Uint64(b))), nil
	case TagRectangle:
		return Rectangle{
			Width:  layout.ByteOrder.Uint32(b[0:4]),
			Height: layout.ByteOrder.Uint32(b[4:8]),
		}, nil
	case TagFraction:
		return Fraction{
			Num:   layout.ByteOrder.Uint32(b[0:4]),
			Denom: layout.ByteOrder.Uint32(b[4:8]),
		}, nil
	case TagFd:
		return Fd(int64(layout.ByteOrder.Uint64(b))), nil
	case TagPointer:
		return Pointer{
			Type:  layout.ByteOrder.Uint32(b[0:4]),
			Value: layout.ByteOrder.Uint64(b[8:16]),
		}, nil
	default:
		return nil, errors.Unsupported(errors.PhaseDecode, "element tag "+tag.String())
	}
}

// Encode builds the wire form of a value in one call.
func Encode(v Value) ([]byte, error) {
	b := NewBuilder()
	if err := b.WriteValue(v); err != nil {
		return nil, err
	}
	return b.Finish()
}

// WriteValue appends the wire form of a materialized value.
func (b *Builder) WriteValue(v Value) error {
	switch val := v.(type) {
	case None:
		return b.WriteNone()
	case Bool:
		return b.WriteBool(bool(val))
	case ID:
		return b.WriteID(uint32(val))
	case Int:
		return b.WriteInt(int32(val))
	case Long:
		return b.WriteLong(int64(val))
	case Float:
		return b.WriteFloat(float32(val))
	case Double:
		return b.WriteDouble(float64(val))
	case String:
		if !utf8.ValidString(string(val)) {
			return b.fail(errors.InvalidUTF8(errors.PhaseBuild, nil, []byte(val)))
		}
		return b.WriteString(string(val))
	case Bytes:
		return b.WriteBytes([]byte(val))
	case Bitmap:
		return b.WriteBitmap([]byte(val))
	case Rectangle:
		return b.WriteRectangle(val.Width, val.Height)
	case Fraction:
		return b.WriteFraction(val.Num, val.Denom)
	case Fd:
		return b.WriteFd(int64(val))
	case Pointer:
		return b.WritePointer(val.Type, val.Value)
	case Array:
		if err := b.BeginArray(val.ChildTag); err != nil {
			return err
		}
		for _, e := range val.Elements {
			if err := b.WriteValue(e); err != nil {
				return err
			}
		}
		return b.EndArray()
	case Struct:
		if err := b.BeginStruct(); err != nil {
			return err
		}
		for _, f := range val.Fields {
			if err := b.WriteValue(f); err != nil {
				return err
			}
		}
		return b.EndStruct()
	case Choice:
		if err := b.BeginChoice(val.Mode, val.ChildTag); err != nil {
			return err
		}
		for _, e := range val.Entries {
			if err := b.WriteValue(e); err != nil {
				return err
			}
		}
		return b.EndChoice()
	case Object:
		if err := b.BeginObject(val.BodyType, val.ID); err != nil {
			return err
		}
		for _, p := range val.Properties {
			if err := b.AddProperty(p.Key, p.Flags, p.Value); err != nil {
				return err
			}
		}
		return b.EndObject()
	case Sequence:
		if err := b.BeginSequence(val.Unit); err != nil {
			return err
		}
		for _, c := range val.Controls {
			if err := b.Control(c.Offset, c.ControlType); err != nil {
				return err
			}
			if err := b.WriteValue(c.Value); err != nil {
				return err
			}
		}
		return b.EndSequence()
	case Nested:
		inner, err := Encode(val.Value)
		if err != nil {
			return b.fail(err)
		}
		return b.WritePod(inner)
	case nil:
		return b.fail(errors.InvalidData(errors.PhaseBuild, nil, "nil value"))
	default:
		return b.fail(errors.Unsupported(errors.PhaseBuild, "value tag "+v.Tag().String()))
	}
}
