package pod

import (
	"math"

	"go.uber.org/zap"

	"github.com/podwire/podcodec/errors"
	"github.com/podwire/podcodec/pod/internal/layout"
)

type builderState uint8

const (
	stateEmpty builderState = iota
	stateWriting
	stateFinished
)

type frameKind uint8

const (
	frameArray frameKind = iota
	frameStruct
	frameObject
	frameChoice
	frameSequence
)

var frameKindNames = [...]string{
	frameArray:    "Array",
	frameStruct:   "Struct",
	frameObject:   "Object",
	frameChoice:   "Choice",
	frameSequence: "Sequence",
}

func (k frameKind) String() string {
	return frameKindNames[k]
}

// frame records the reserved header of an open compound pod so its size
// can be back-patched once the contents are known.
type frame struct {
	kind      frameKind
	headerOff int
	elemsOff  int // start of the element area, for array and choice frames
	childTag  Tag
	childSize uint32
	mode      ChoiceMode
	elems     int
}

// Builder is an append-only writer producing one encoded pod. It owns
// its growable output buffer exclusively until Finish transfers the
// immutable result to the caller. A Builder is for single-writer use
// and must not be reused after Finish.
//
// Any failed call poisons the builder: Bytes() stays readable for
// inspection, but every later mutation and Finish return the original
// error.
type Builder struct {
	buf    []byte
	frames []frame
	state  builderState
	err    error
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Bytes returns the bytes written so far, including placeholder headers
// of open frames. Valid for inspection even on a poisoned builder; the
// returned slice aliases the builder's buffer.
func (b *Builder) Bytes() []byte {
	return b.buf
}

// Err returns the error that poisoned the builder, if any.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) fail(err error) error {
	if b.err == nil {
		b.err = err
		Logger().Debug("builder poisoned",
			zap.Error(err),
			zap.Int("written", len(b.buf)),
			zap.Int("open_frames", len(b.frames)))
	}
	return err
}

func (b *Builder) ready() error {
	if b.err != nil {
		return b.err
	}
	if b.state == stateFinished {
		return errors.BuilderFinished()
	}
	b.state = stateWriting
	return nil
}

func (b *Builder) appendU32(v uint32) {
	var tmp [4]byte
	layout.ByteOrder.PutUint32(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}

func (b *Builder) appendU64(v uint64) {
	var tmp [8]byte
	layout.ByteOrder.PutUint64(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}

func (b *Builder) padTo(boundary uint32) {
	for uint32(len(b.buf))%boundary != 0 {
		b.buf = append(b.buf, 0)
	}
}

func (b *Builder) topFrame() *frame {
	if len(b.frames) == 0 {
		return nil
	}
	return &b.frames[len(b.frames)-1]
}

// writePrimitive appends one scalar. Inside an array or choice frame
// the value is written as a raw element at the frame's stride; anywhere
// else it becomes a complete pod with header and padding.
func (b *Builder) writePrimitive(tag Tag, body []byte) error {
	if err := b.ready(); err != nil {
		return err
	}
	if top := b.topFrame(); top != nil && (top.kind == frameArray || top.kind == frameChoice) {
		if tag != top.childTag {
			return b.fail(errors.TypeMismatch(errors.PhaseBuild, []string{top.kind.String()}, top.childTag.String(), tag.String()))
		}
		b.buf = append(b.buf, body...)
		// Stride padding is relative to the element area, not the
		// buffer: the area itself may start on a smaller boundary.
		stride := int(layout.Stride(top.childSize))
		for (len(b.buf)-top.elemsOff)%stride != 0 {
			b.buf = append(b.buf, 0)
		}
		top.elems++
		return nil
	}
	b.appendU32(uint32(len(body)))
	b.appendU32(uint32(tag))
	b.buf = append(b.buf, body...)
	b.padTo(layout.Alignment)
	return nil
}

// WriteNone appends a None pod.
func (b *Builder) WriteNone() error {
	return b.writePrimitive(TagNone, nil)
}

// WriteBool appends a Bool pod.
func (b *Builder) WriteBool(v bool) error {
	var raw uint32
	if v {
		raw = 1
	}
	var body [4]byte
	layout.ByteOrder.PutUint32(body[:], raw)
	return b.writePrimitive(TagBool, body[:])
}

// WriteID appends an Id pod.
func (b *Builder) WriteID(v uint32) error {
	var body [4]byte
	layout.ByteOrder.PutUint32(body[:], v)
	return b.writePrimitive(TagID, body[:])
}

// WriteInt appends an Int pod.
func (b *Builder) WriteInt(v int32) error {
	var body [4]byte
	layout.ByteOrder.PutUint32(body[:], uint32(v))
	return b.writePrimitive(TagInt, body[:])
}

// WriteLong appends a Long pod.
func (b *Builder) WriteLong(v int64) error {
	var body [8]byte
	layout.ByteOrder.PutUint64(body[:], uint64(v))
	return b.writePrimitive(TagLong, body[:])
}

// WriteFloat appends a Float pod.
func (b *Builder) WriteFloat(v float32) error {
	var body [4]byte
	layout.ByteOrder.PutUint32(body[:], math.Float32bits(v))
	return b.writePrimitive(TagFloat, body[:])
}

// WriteDouble appends a Double pod.
func (b *Builder) WriteDouble(v float64) error {
	var body [8]byte
	layout.ByteOrder.PutUint64(body[:], math.Float64bits(v))
	return b.writePrimitive(TagDouble, body[:])
}

// WriteFd appends an Fd pod.
func (b *Builder) WriteFd(v int64) error {
	var body [8]byte
	layout.ByteOrder.PutUint64(body[:], uint64(v))
	return b.writePrimitive(TagFd, body[:])
}

// WriteRectangle appends a Rectangle pod.
func (b *Builder) WriteRectangle(width, height uint32) error {
	var body [8]byte
	layout.ByteOrder.PutUint32(body[0:4], width)
	layout.ByteOrder.PutUint32(body[4:8], height)
	return b.writePrimitive(TagRectangle, body[:])
}

// WriteFraction appends a Fraction pod.
func (b *Builder) WriteFraction(num, denom uint32) error {
	var body [8]byte
	layout.ByteOrder.PutUint32(body[0:4], num)
	layout.ByteOrder.PutUint32(body[4:8], denom)
	return b.writePrimitive(TagFraction, body[:])
}

// WritePointer appends a Pointer pod.
func (b *Builder) WritePointer(ptrType uint32, value uint64) error {
	var body [16]byte
	layout.ByteOrder.PutUint32(body[0:4], ptrType)
	layout.ByteOrder.PutUint64(body[8:16], value)
	return b.writePrimitive(TagPointer, body[:])
}

// WriteString appends a String pod. The body is NUL-terminated on the
// wire; s itself must not contain a NUL.
func (b *Builder) WriteString(s string) error {
	if err := b.ready(); err != nil {
		return err
	}
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			return b.fail(errors.InvalidData(errors.PhaseBuild, []string{"String"}, "string contains a NUL byte"))
		}
	}
	body := make([]byte, len(s)+1)
	copy(body, s)
	return b.writePrimitive(TagString, body)
}

// WriteBytes appends a Bytes pod.
func (b *Builder) WriteBytes(p []byte) error {
	return b.writePrimitive(TagBytes, p)
}

// WriteBitmap appends a Bitmap pod.
func (b *Builder) WriteBitmap(p []byte) error {
	return b.writePrimitive(TagBitmap, p)
}

// WritePod appends an already encoded pod as a Pod-typed value. The
// encoding is validated the same way Decode validates received bytes.
func (b *Builder) WritePod(encoded []byte) error {
	if err := b.ready(); err != nil {
		return err
	}
	if _, err := Decode(encoded); err != nil {
		return b.fail(errors.Wrap(errors.PhaseBuild, errors.KindInvalidData, err, "nested pod does not decode"))
	}
	return b.writePrimitive(TagPod, encoded)
}

func (b *Builder) begin(kind frameKind) (*frame, error) {
	if err := b.ready(); err != nil {
		return nil, err
	}
	if top := b.topFrame(); top != nil && (top.kind == frameArray || top.kind == frameChoice) {
		return nil, b.fail(errors.Unsupported(errors.PhaseBuild, "compound elements inside "+top.kind.String()))
	}
	b.frames = append(b.frames, frame{kind: kind, headerOff: len(b.buf)})
	return b.topFrame(), nil
}

func elementTagSize(tag Tag) (uint32, error) {
	size, ok := tag.FixedSize()
	if !ok {
		return 0, errors.Unsupported(errors.PhaseBuild, "element tag "+tag.String()+" has no fixed size")
	}
	if size == 0 {
		return 0, errors.Unsupported(errors.PhaseBuild, "element tag "+tag.String()+" has zero size")
	}
	return size, nil
}

// BeginArray opens an array frame over a fixed-size element type.
// Subsequent scalar writes of that type append elements until EndArray.
func (b *Builder) BeginArray(childTag Tag) error {
	if err := b.ready(); err != nil {
		return err
	}
	size, err := elementTagSize(childTag)
	if err != nil {
		return b.fail(err)
	}
	f, err := b.begin(frameArray)
	if err != nil {
		return err
	}
	f.childTag = childTag
	f.childSize = size
	b.appendU32(0) // size, patched by EndArray
	b.appendU32(uint32(TagArray))
	b.appendU32(size)
	b.appendU32(uint32(childTag))
	f.elemsOff = len(b.buf)
	return nil
}

// BeginStruct opens a struct frame. Any complete pods written before
// EndStruct become its fields.
func (b *Builder) BeginStruct() error {
	if _, err := b.begin(frameStruct); err != nil {
		return err
	}
	b.appendU32(0) // size, patched by EndStruct
	b.appendU32(uint32(TagStruct))
	return nil
}

// BeginObject opens an object frame with the given body-type and object
// id. Both identifiers come from the external registry and are not
// validated for meaning.
func (b *Builder) BeginObject(bodyType Tag, objectID uint32) error {
	if _, err := b.begin(frameObject); err != nil {
		return err
	}
	b.appendU32(0) // size, patched by EndObject
	b.appendU32(uint32(TagObject))
	b.appendU32(uint32(bodyType))
	b.appendU32(objectID)
	return nil
}

// BeginChoice opens a choice frame. The first element written is the
// default; the meaning of the rest depends on mode.
func (b *Builder) BeginChoice(mode ChoiceMode, childTag Tag) error {
	if err := b.ready(); err != nil {
		return err
	}
	if !mode.Valid() {
		return b.fail(errors.InvalidChoice(errors.PhaseBuild, "unknown negotiation mode %d", uint32(mode)))
	}
	size, err := elementTagSize(childTag)
	if err != nil {
		return b.fail(err)
	}
	f, err := b.begin(frameChoice)
	if err != nil {
		return err
	}
	f.childTag = childTag
	f.childSize = size
	f.mode = mode
	b.appendU32(0) // size, patched by EndChoice
	b.appendU32(uint32(TagChoice))
	b.appendU32(uint32(mode))
	b.appendU32(0) // flags
	b.appendU32(size)
	b.appendU32(uint32(childTag))
	f.elemsOff = len(b.buf)
	return nil
}

// BeginSequence opens a sequence frame with the given offset unit.
func (b *Builder) BeginSequence(unit uint32) error {
	if _, err := b.begin(frameSequence); err != nil {
		return err
	}
	b.appendU32(0) // size, patched by EndSequence
	b.appendU32(uint32(TagSequence))
	b.appendU32(unit)
	b.appendU32(0) // pad
	return nil
}

// Property appends a property header inside the open object frame. The
// next complete pod written is the property's value. Keys may repeat;
// wire order is whatever the caller writes.
func (b *Builder) Property(key, flags uint32) error {
	if err := b.ready(); err != nil {
		return err
	}
	top := b.topFrame()
	if top == nil || top.kind != frameObject {
		return b.fail(errors.InvalidData(errors.PhaseBuild, []string{"Object"}, "property header outside an object frame"))
	}
	b.appendU32(key)
	b.appendU32(flags)
	return nil
}

// AddProperty appends one complete property from a materialized value.
func (b *Builder) AddProperty(key, flags uint32, v Value) error {
	if err := b.Property(key, flags); err != nil {
		return err
	}
	return b.WriteValue(v)
}

// Control appends a control header inside the open sequence frame. The
// next complete pod written is the control's value.
func (b *Builder) Control(offset, controlType uint32) error {
	if err := b.ready(); err != nil {
		return err
	}
	top := b.topFrame()
	if top == nil || top.kind != frameSequence {
		return b.fail(errors.InvalidData(errors.PhaseBuild, []string{"Sequence"}, "control header outside a sequence frame"))
	}
	b.appendU32(offset)
	b.appendU32(controlType)
	return nil
}

func (b *Builder) end(kind frameKind) error {
	if err := b.ready(); err != nil {
		return err
	}
	top := b.topFrame()
	if top == nil {
		return b.fail(errors.FrameMismatch(kind.String(), "no open frame"))
	}
	if top.kind != kind {
		return b.fail(errors.FrameMismatch(kind.String(), top.kind.String()))
	}
	if kind == frameChoice {
		if err := b.validateChoice(top); err != nil {
			return b.fail(err)
		}
	}
	size := uint32(len(b.buf) - top.headerOff - layout.HeaderSize)
	layout.ByteOrder.PutUint32(b.buf[top.headerOff:top.headerOff+4], size)
	b.frames = b.frames[:len(b.frames)-1]
	b.padTo(layout.Alignment)
	return nil
}

// validateChoice enforces the build-time choice rules: at least one
// element, the per-mode minimum alternative count, and a strictly
// positive step for Step mode.
func (b *Builder) validateChoice(f *frame) error {
	if f.elems == 0 {
		return errors.InvalidChoice(errors.PhaseBuild, "choice requires at least one element")
	}
	if min := 1 + f.mode.MinAlternatives(); f.elems < min {
		return errors.InvalidChoice(errors.PhaseBuild, "%s mode requires %d elements, got %d", f.mode, min, f.elems)
	}
	if f.mode != ChoiceStep {
		return nil
	}
	// Step layout is (default, min, max, step); the step lives at
	// element index 3.
	stepOff := f.elemsOff + 3*int(layout.Stride(f.childSize))
	step := b.buf[stepOff : stepOff+int(f.childSize)]
	switch f.childTag {
	case TagInt:
		if int32(layout.ByteOrder.Uint32(step)) <= 0 {
			return errors.InvalidChoice(errors.PhaseBuild, "step must be strictly greater than zero")
		}
	case TagLong:
		if int64(layout.ByteOrder.Uint64(step)) <= 0 {
			return errors.InvalidChoice(errors.PhaseBuild, "step must be strictly greater than zero")
		}
	case TagFloat:
		if math.Float32frombits(layout.ByteOrder.Uint32(step)) <= 0 {
			return errors.InvalidChoice(errors.PhaseBuild, "step must be strictly greater than zero")
		}
	case TagDouble:
		if math.Float64frombits(layout.ByteOrder.Uint64(step)) <= 0 {
			return errors.InvalidChoice(errors.PhaseBuild, "step must be strictly greater than zero")
		}
	}
	return nil
}

// EndArray closes the open array frame and back-patches its size.
func (b *Builder) EndArray() error {
	return b.end(frameArray)
}

// EndStruct closes the open struct frame and back-patches its size.
func (b *Builder) EndStruct() error {
	return b.end(frameStruct)
}

// EndObject closes the open object frame and back-patches its size.
func (b *Builder) EndObject() error {
	return b.end(frameObject)
}

// EndChoice closes the open choice frame, validates it, and
// back-patches its size.
func (b *Builder) EndChoice() error {
	return b.end(frameChoice)
}

// EndSequence closes the open sequence frame and back-patches its size.
func (b *Builder) EndSequence() error {
	return b.end(frameSequence)
}

// Finish seals the builder and returns the owned encoding. It fails
// with unclosed_frame while compounds are open, and like every other
// call it returns the poisoning error of an earlier failure. After a
// successful Finish the builder accepts no further writes.
func (b *Builder) Finish() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.state == stateFinished {
		return nil, errors.BuilderFinished()
	}
	if n := len(b.frames); n > 0 {
		return nil, b.fail(errors.UnclosedFrame(n))
	}
	b.state = stateFinished
	return b.buf, nil
}
