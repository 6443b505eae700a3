package param

import (
	"fmt"

	"github.com/podwire/podcodec/pod"
)

// Object body types.
const (
	ObjectPropInfo            pod.Tag = pod.ObjectStart + 1
	ObjectProps               pod.Tag = pod.ObjectStart + 2
	ObjectFormat              pod.Tag = pod.ObjectStart + 3
	ObjectParamBuffers        pod.Tag = pod.ObjectStart + 4
	ObjectParamMeta           pod.Tag = pod.ObjectStart + 5
	ObjectParamIO             pod.Tag = pod.ObjectStart + 6
	ObjectParamProfile        pod.Tag = pod.ObjectStart + 7
	ObjectParamPortConfig     pod.Tag = pod.ObjectStart + 8
	ObjectParamRoute          pod.Tag = pod.ObjectStart + 9
	ObjectProfiler            pod.Tag = pod.ObjectStart + 10
	ObjectParamLatency        pod.Tag = pod.ObjectStart + 11
	ObjectParamProcessLatency pod.Tag = pod.ObjectStart + 12
)

// Parameter ids, commonly carried in the object id field to say which
// negotiation round an object belongs to.
const (
	ParamInvalid uint32 = iota
	ParamPropInfo
	ParamProps
	ParamEnumFormat
	ParamFormat
	ParamBuffers
	ParamMeta
	ParamIO
	ParamEnumProfile
	ParamProfile
	ParamEnumPortConfig
	ParamPortConfig
	ParamEnumRoute
	ParamRoute
	ParamControl
	ParamLatency
	ParamProcessLatency
)

// Format object keys.
const (
	FormatMediaType    uint32 = 1
	FormatMediaSubtype uint32 = 2

	FormatAudioFormat   uint32 = 0x10001
	FormatAudioFlags    uint32 = 0x10002
	FormatAudioRate     uint32 = 0x10003
	FormatAudioChannels uint32 = 0x10004
	FormatAudioPosition uint32 = 0x10005

	FormatVideoFormat    uint32 = 0x20001
	FormatVideoModifier  uint32 = 0x20002
	FormatVideoSize      uint32 = 0x20003
	FormatVideoFramerate uint32 = 0x20004
)

// Media type ids used as Id values under FormatMediaType.
const (
	MediaTypeUnknown uint32 = iota
	MediaTypeAudio
	MediaTypeVideo
	MediaTypeImage
	MediaTypeBinary
	MediaTypeStream
	MediaTypeApplication
)

// Media subtype ids used as Id values under FormatMediaSubtype.
const (
	MediaSubtypeUnknown uint32 = iota
	MediaSubtypeRaw
	MediaSubtypeDSP
	MediaSubtypeIEC958
	MediaSubtypeDSD
)

// Buffers object keys.
const (
	BuffersBuffers uint32 = iota + 1
	BuffersBlocks
	BuffersSize
	BuffersStride
	BuffersAlign
	BuffersDataType
)

// Meta object keys.
const (
	MetaType uint32 = iota + 1
	MetaSize
)

// IO object keys.
const (
	IOID uint32 = iota + 1
	IOSize
)

// Props object keys.
const (
	PropDevice     uint32 = 0x101
	PropDeviceName uint32 = 0x102

	PropVolume uint32 = 0x10001
	PropMute   uint32 = 0x10002
)

var objectTypeNames = map[pod.Tag]string{
	ObjectPropInfo:            "PropInfo",
	ObjectProps:               "Props",
	ObjectFormat:              "Format",
	ObjectParamBuffers:        "ParamBuffers",
	ObjectParamMeta:           "ParamMeta",
	ObjectParamIO:             "ParamIO",
	ObjectParamProfile:        "ParamProfile",
	ObjectParamPortConfig:     "ParamPortConfig",
	ObjectParamRoute:          "ParamRoute",
	ObjectProfiler:            "Profiler",
	ObjectParamLatency:        "ParamLatency",
	ObjectParamProcessLatency: "ParamProcessLatency",
}

var formatKeyNames = map[uint32]string{
	FormatMediaType:      "mediaType",
	FormatMediaSubtype:   "mediaSubtype",
	FormatAudioFormat:    "audio.format",
	FormatAudioFlags:     "audio.flags",
	FormatAudioRate:      "audio.rate",
	FormatAudioChannels:  "audio.channels",
	FormatAudioPosition:  "audio.position",
	FormatVideoFormat:    "video.format",
	FormatVideoModifier:  "video.modifier",
	FormatVideoSize:      "video.size",
	FormatVideoFramerate: "video.framerate",
}

var buffersKeyNames = map[uint32]string{
	BuffersBuffers:  "buffers",
	BuffersBlocks:   "blocks",
	BuffersSize:     "size",
	BuffersStride:   "stride",
	BuffersAlign:    "align",
	BuffersDataType: "dataType",
}

var metaKeyNames = map[uint32]string{
	MetaType: "type",
	MetaSize: "size",
}

var ioKeyNames = map[uint32]string{
	IOID:   "id",
	IOSize: "size",
}

var propKeyNames = map[uint32]string{
	PropDevice:     "device",
	PropDeviceName: "deviceName",
	PropVolume:     "volume",
	PropMute:       "mute",
}

var keyTables = map[pod.Tag]map[uint32]string{
	ObjectFormat:       formatKeyNames,
	ObjectParamBuffers: buffersKeyNames,
	ObjectParamMeta:    metaKeyNames,
	ObjectParamIO:      ioKeyNames,
	ObjectProps:        propKeyNames,
}

// ObjectTypeName resolves an object body type to its registry name, or
// a hex form when unknown.
func ObjectTypeName(t pod.Tag) string {
	if name, ok := objectTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("0x%x", uint32(t))
}

// KeyName resolves a property key within the given object body type, or
// a numeric form when unknown.
func KeyName(bodyType pod.Tag, key uint32) string {
	if table, ok := keyTables[bodyType]; ok {
		if name, ok := table[key]; ok {
			return name
		}
	}
	return fmt.Sprintf("key(%d)", key)
}

var mediaTypeNames = [...]string{
	MediaTypeUnknown:     "unknown",
	MediaTypeAudio:       "audio",
	MediaTypeVideo:       "video",
	MediaTypeImage:       "image",
	MediaTypeBinary:      "binary",
	MediaTypeStream:      "stream",
	MediaTypeApplication: "application",
}

var mediaSubtypeNames = [...]string{
	MediaSubtypeUnknown: "unknown",
	MediaSubtypeRaw:     "raw",
	MediaSubtypeDSP:     "dsp",
	MediaSubtypeIEC958:  "iec958",
	MediaSubtypeDSD:     "dsd",
}

var paramNames = [...]string{
	ParamInvalid:        "Invalid",
	ParamPropInfo:       "PropInfo",
	ParamProps:          "Props",
	ParamEnumFormat:     "EnumFormat",
	ParamFormat:         "Format",
	ParamBuffers:        "Buffers",
	ParamMeta:           "Meta",
	ParamIO:             "IO",
	ParamEnumProfile:    "EnumProfile",
	ParamProfile:        "Profile",
	ParamEnumPortConfig: "EnumPortConfig",
	ParamPortConfig:     "PortConfig",
	ParamEnumRoute:      "EnumRoute",
	ParamRoute:          "Route",
	ParamControl:        "Control",
	ParamLatency:        "Latency",
	ParamProcessLatency: "ProcessLatency",
}

// MediaTypeName resolves a media type id to its name.
func MediaTypeName(id uint32) string {
	if id < uint32(len(mediaTypeNames)) {
		return mediaTypeNames[id]
	}
	return fmt.Sprintf("mediaType(%d)", id)
}

// MediaSubtypeName resolves a media subtype id to its name.
func MediaSubtypeName(id uint32) string {
	if id < uint32(len(mediaSubtypeNames)) {
		return mediaSubtypeNames[id]
	}
	return fmt.Sprintf("mediaSubtype(%d)", id)
}

// ParamName resolves a parameter id to its name.
func ParamName(id uint32) string {
	if id < uint32(len(paramNames)) {
		return paramNames[id]
	}
	return fmt.Sprintf("param(%d)", id)
}
