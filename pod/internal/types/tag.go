package types

import "strconv"

// Tag is the wire type tag carried in every pod header.
type Tag uint32

const (
	TagNone      Tag = 1
	TagBool      Tag = 2
	TagID        Tag = 3
	TagInt       Tag = 4
	TagLong      Tag = 5
	TagFloat     Tag = 6
	TagDouble    Tag = 7
	TagString    Tag = 8
	TagBytes     Tag = 9
	TagRectangle Tag = 10
	TagFraction  Tag = 11
	TagBitmap    Tag = 12
	TagArray     Tag = 13
	TagStruct    Tag = 14
	TagObject    Tag = 15
	TagSequence  Tag = 16
	TagPointer   Tag = 17
	TagFd        Tag = 18
	TagChoice    Tag = 19
	TagPod       Tag = 20
)

// Range starts for the extensible parts of the registry. Identifiers in
// these ranges are defined externally and never validated for meaning.
const (
	PointerStart Tag = 0x10000
	EventStart   Tag = 0x20000
	CommandStart Tag = 0x30000
	ObjectStart  Tag = 0x40000
)

var tagNames = [...]string{
	TagNone:      "None",
	TagBool:      "Bool",
	TagID:        "Id",
	TagInt:       "Int",
	TagLong:      "Long",
	TagFloat:     "Float",
	TagDouble:    "Double",
	TagString:    "String",
	TagBytes:     "Bytes",
	TagRectangle: "Rectangle",
	TagFraction:  "Fraction",
	TagBitmap:    "Bitmap",
	TagArray:     "Array",
	TagStruct:    "Struct",
	TagObject:    "Object",
	TagSequence:  "Sequence",
	TagPointer:   "Pointer",
	TagFd:        "Fd",
	TagChoice:    "Choice",
	TagPod:       "Pod",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) && tagNames[t] != "" {
		return tagNames[t]
	}
	if t.IsObjectType() {
		return "Object(0x" + strconv.FormatUint(uint64(t), 16) + ")"
	}
	return "Tag(0x" + strconv.FormatUint(uint64(t), 16) + ")"
}

// IsObjectType reports whether t is an object body-type identifier.
func (t Tag) IsObjectType() bool {
	return t >= ObjectStart
}

// FixedSize returns the mandatory body size for fixed-size scalar tags.
// ok is false for variable-size and compound tags.
func (t Tag) FixedSize() (size uint32, ok bool) {
	switch t {
	case TagNone:
		return 0, true
	case TagBool, TagID, TagInt, TagFloat:
		return 4, true
	case TagLong, TagDouble, TagFd:
		return 8, true
	case TagRectangle, TagFraction:
		return 8, true
	case TagPointer:
		return 16, true
	default:
		return 0, false
	}
}

// IsCompound reports whether bodies of t contain nested pods or elements.
func (t Tag) IsCompound() bool {
	switch t {
	case TagArray, TagStruct, TagObject, TagSequence, TagChoice:
		return true
	}
	return t.IsObjectType()
}
