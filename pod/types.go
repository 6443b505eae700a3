package pod

import (
	"github.com/podwire/podcodec/pod/internal/types"
)

type Tag = types.Tag

const (
	TagNone      = types.TagNone
	TagBool      = types.TagBool
	TagID        = types.TagID
	TagInt       = types.TagInt
	TagLong      = types.TagLong
	TagFloat     = types.TagFloat
	TagDouble    = types.TagDouble
	TagString    = types.TagString
	TagBytes     = types.TagBytes
	TagRectangle = types.TagRectangle
	TagFraction  = types.TagFraction
	TagBitmap    = types.TagBitmap
	TagArray     = types.TagArray
	TagStruct    = types.TagStruct
	TagObject    = types.TagObject
	TagSequence  = types.TagSequence
	TagPointer   = types.TagPointer
	TagFd        = types.TagFd
	TagChoice    = types.TagChoice
	TagPod       = types.TagPod
)

// Range starts of the externally defined registry regions.
const (
	PointerStart = types.PointerStart
	EventStart   = types.EventStart
	CommandStart = types.CommandStart
	ObjectStart  = types.ObjectStart
)

type ChoiceMode = types.ChoiceMode

const (
	ChoiceNone  = types.ChoiceNone
	ChoiceRange = types.ChoiceRange
	ChoiceStep  = types.ChoiceStep
	ChoiceEnum  = types.ChoiceEnum
	ChoiceFlags = types.ChoiceFlags
)
