package pod

import (
	"bytes"
	"math"
	"unicode/utf8"

	"github.com/podwire/podcodec/errors"
	"github.com/podwire/podcodec/pod/internal/layout"
)

// requireFixed checks both the tag and the mandatory body size of a
// fixed-size scalar. Size disagreement on a matching tag is wire
// corruption, not a wrong downcast.
func (v View) requireFixed(tag Tag) error {
	if got := v.Tag(); got != tag {
		return errors.TypeMismatch(errors.PhaseDecode, nil, tag.String(), got.String())
	}
	want, _ := tag.FixedSize()
	if v.Size() != want {
		return errors.MalformedPod(nil, "%s must declare size %d, got %d", tag, want, v.Size())
	}
	return nil
}

// Bool decodes a Bool pod. Any non-zero body is true.
func (v View) Bool() (bool, error) {
	if err := v.requireFixed(TagBool); err != nil {
		return false, err
	}
	return layout.ByteOrder.Uint32(v.Body()) != 0, nil
}

// ID decodes an Id pod: a numeric identifier from the external registry.
func (v View) ID() (uint32, error) {
	if err := v.requireFixed(TagID); err != nil {
		return 0, err
	}
	return layout.ByteOrder.Uint32(v.Body()), nil
}

// Int decodes an Int pod.
func (v View) Int() (int32, error) {
	if err := v.requireFixed(TagInt); err != nil {
		return 0, err
	}
	return int32(layout.ByteOrder.Uint32(v.Body())), nil
}

// Long decodes a Long pod.
func (v View) Long() (int64, error) {
	if err := v.requireFixed(TagLong); err != nil {
		return 0, err
	}
	return int64(layout.ByteOrder.Uint64(v.Body())), nil
}

// Float decodes a Float pod.
func (v View) Float() (float32, error) {
	if err := v.requireFixed(TagFloat); err != nil {
		return 0, err
	}
	return math.Float32frombits(layout.ByteOrder.Uint32(v.Body())), nil
}

// Double decodes a Double pod.
func (v View) Double() (float64, error) {
	if err := v.requireFixed(TagDouble); err != nil {
		return 0, err
	}
	return math.Float64frombits(layout.ByteOrder.Uint64(v.Body())), nil
}

// Fd decodes an Fd pod. The descriptor number only has meaning on the
// transport that carried it.
func (v View) Fd() (int64, error) {
	if err := v.requireFixed(TagFd); err != nil {
		return 0, err
	}
	return int64(layout.ByteOrder.Uint64(v.Body())), nil
}

// Rectangle decodes a Rectangle pod.
func (v View) Rectangle() (Rectangle, error) {
	if err := v.requireFixed(TagRectangle); err != nil {
		return Rectangle{}, err
	}
	b := v.Body()
	return Rectangle{
		Width:  layout.ByteOrder.Uint32(b[0:4]),
		Height: layout.ByteOrder.Uint32(b[4:8]),
	}, nil
}

// Fraction decodes a Fraction pod.
func (v View) Fraction() (Fraction, error) {
	if err := v.requireFixed(TagFraction); err != nil {
		return Fraction{}, err
	}
	b := v.Body()
	return Fraction{
		Num:   layout.ByteOrder.Uint32(b[0:4]),
		Denom: layout.ByteOrder.Uint32(b[4:8]),
	}, nil
}

// Pointer decodes a Pointer pod. The value is only meaningful inside
// the process that produced it.
func (v View) Pointer() (Pointer, error) {
	if err := v.requireFixed(TagPointer); err != nil {
		return Pointer{}, err
	}
	b := v.Body()
	return Pointer{
		Type:  layout.ByteOrder.Uint32(b[0:4]),
		Value: layout.ByteOrder.Uint64(b[8:16]),
	}, nil
}

// Bytes returns the body of a Bytes pod without copying.
func (v View) Bytes() ([]byte, error) {
	if _, err := v.Downcast(TagBytes); err != nil {
		return nil, err
	}
	return v.Body(), nil
}

// Bitmap returns the body of a Bitmap pod without copying.
func (v View) Bitmap() ([]byte, error) {
	if _, err := v.Downcast(TagBitmap); err != nil {
		return nil, err
	}
	return v.Body(), nil
}

// Text interprets a String pod as UTF-8 text. The wire body is
// NUL-terminated; the terminator and anything after it are not part of
// the text. Use Body for raw access, which always succeeds.
func (v View) Text() (string, error) {
	if _, err := v.Downcast(TagString); err != nil {
		return "", err
	}
	body := v.Body()
	idx := bytes.IndexByte(body, 0)
	if idx < 0 {
		return "", errors.MalformedPod(nil, "String body is not NUL-terminated")
	}
	text := body[:idx]
	if !utf8.Valid(text) {
		return "", errors.InvalidUTF8(errors.PhaseDecode, nil, text)
	}
	return string(text), nil
}
