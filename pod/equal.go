package pod

import (
	"bytes"

	"github.com/podwire/podcodec/pod/internal/layout"
)

// Equal reports structural equality of two pods: same tag, same decoded
// content, padding and buffer placement ignored. Pods that do not parse
// are equal only if their raw bodies match byte for byte.
func Equal(a, b View) bool {
	if a.Tag() != b.Tag() {
		return false
	}
	switch a.Tag() {
	case TagArray:
		return equalArray(a, b)
	case TagStruct:
		return equalStruct(a, b)
	case TagChoice:
		return equalChoice(a, b)
	case TagObject:
		return equalObject(a, b)
	case TagSequence:
		return equalSequence(a, b)
	case TagPod:
		ia, erra := a.Pod()
		ib, errb := b.Pod()
		if erra != nil || errb != nil {
			return bytes.Equal(a.Body(), b.Body())
		}
		return Equal(ia, ib)
	default:
		// Object-subtype tags downcast to objects, so compare them
		// structurally too.
		if a.Tag().IsObjectType() {
			return equalObject(a, b)
		}
		return bytes.Equal(a.Body(), b.Body())
	}
}

func equalElements(tag Tag, size uint32, n int, ae, be []byte) bool {
	stride := layout.Stride(size)
	for i := 0; i < n; i++ {
		off := uint32(i) * stride
		if !bytes.Equal(ae[off:off+size], be[off:off+size]) {
			return false
		}
	}
	return true
}

func equalArray(a, b View) bool {
	av, erra := a.AsArray()
	bv, errb := b.AsArray()
	if erra != nil || errb != nil {
		return bytes.Equal(a.Body(), b.Body())
	}
	if av.ChildTag() != bv.ChildTag() || av.ChildSize() != bv.ChildSize() || av.Len() != bv.Len() {
		return false
	}
	return equalElements(av.ChildTag(), av.ChildSize(), av.Len(), av.elems, bv.elems)
}

func equalChoice(a, b View) bool {
	av, erra := a.AsChoice()
	bv, errb := b.AsChoice()
	if erra != nil || errb != nil {
		return bytes.Equal(a.Body(), b.Body())
	}
	if av.Mode() != bv.Mode() || av.ChildTag() != bv.ChildTag() ||
		av.ChildSize() != bv.ChildSize() || av.Len() != bv.Len() {
		return false
	}
	return equalElements(av.ChildTag(), av.ChildSize(), av.Len(), av.elems, bv.elems)
}

func equalStruct(a, b View) bool {
	av, erra := a.AsStruct()
	bv, errb := b.AsStruct()
	if erra != nil || errb != nil {
		return bytes.Equal(a.Body(), b.Body())
	}
	ita, itb := av.Fields(), bv.Fields()
	for {
		oka, okb := ita.Next(), itb.Next()
		if oka != okb {
			return false
		}
		if !oka {
			return ita.Err() == nil && itb.Err() == nil
		}
		if !Equal(ita.Pod(), itb.Pod()) {
			return false
		}
	}
}

func equalObject(a, b View) bool {
	av, erra := a.AsObject()
	bv, errb := b.AsObject()
	if erra != nil || errb != nil {
		return bytes.Equal(a.Body(), b.Body())
	}
	if av.BodyType() != bv.BodyType() || av.ObjectID() != bv.ObjectID() {
		return false
	}
	ita, itb := av.Properties(), bv.Properties()
	for {
		oka, okb := ita.Next(), itb.Next()
		if oka != okb {
			return false
		}
		if !oka {
			return ita.Err() == nil && itb.Err() == nil
		}
		pa, pb := ita.Prop(), itb.Prop()
		if pa.Key != pb.Key || pa.Flags != pb.Flags || !Equal(pa.Value, pb.Value) {
			return false
		}
	}
}

func equalSequence(a, b View) bool {
	av, erra := a.AsSequence()
	bv, errb := b.AsSequence()
	if erra != nil || errb != nil {
		return bytes.Equal(a.Body(), b.Body())
	}
	if av.Unit() != bv.Unit() {
		return false
	}
	ita, itb := av.Controls(), bv.Controls()
	for {
		oka, okb := ita.Next(), itb.Next()
		if oka != okb {
			return false
		}
		if !oka {
			return ita.Err() == nil && itb.Err() == nil
		}
		if ita.Offset() != itb.Offset() || ita.ControlType() != itb.ControlType() ||
			!Equal(ita.Value(), itb.Value()) {
			return false
		}
	}
}
